package matchday

import (
	"time"

	"github.com/kickoffhq/matchday/internal/domain/rules"
)

// Matchday is one scheduled event: a set of teams, a set of games and one
// immutable rules snapshot resolved at creation time.
type Matchday struct {
	ID        string
	Name      string
	Date      time.Time
	Rules     rules.Rules
	CreatedAt time.Time
}
