package rules

import (
	"errors"
	"fmt"
)

var (
	ErrNegativePoints       = errors.New("point values must not be negative")
	ErrInvalidPenaltyWeight = errors.New("penalty win weight must be between 0 and 1")
	ErrInvalidGoalThreshold = errors.New("max goals to win must not be negative")
	ErrInvalidMinKicks      = errors.New("minimum penalty kicks must be greater than zero")
	ErrInvalidRosterSize    = errors.New("roster size must be greater than zero")
)

// Points holds the base point values per game outcome.
type Points struct {
	Loss            int
	Draw            int
	RegulationWin   int
	PenaltyBonusWin int
}

// Rules is the scoring policy snapshot of one matchday. It is resolved once
// when the matchday is created and passed by value into every derivation;
// nothing downstream mutates or re-defaults it.
type Rules struct {
	Points           Points
	PenaltyWinWeight float64
	// MaxGoalsToWin ends an active game early once either side reaches it.
	// Zero disables the early finish.
	MaxGoalsToWin   int
	MinPenaltyKicks int
	RosterSize      int
}

func Default() Rules {
	return Rules{
		Points: Points{
			Loss:            0,
			Draw:            1,
			RegulationWin:   3,
			PenaltyBonusWin: 2,
		},
		PenaltyWinWeight: 0.5,
		MaxGoalsToWin:    5,
		MinPenaltyKicks:  5,
		RosterSize:       5,
	}
}

func (r Rules) Validate() error {
	if r.Points.Loss < 0 || r.Points.Draw < 0 || r.Points.RegulationWin < 0 || r.Points.PenaltyBonusWin < 0 {
		return fmt.Errorf("%w: %+v", ErrNegativePoints, r.Points)
	}
	if r.PenaltyWinWeight < 0 || r.PenaltyWinWeight > 1 {
		return fmt.Errorf("%w: got %v", ErrInvalidPenaltyWeight, r.PenaltyWinWeight)
	}
	if r.MaxGoalsToWin < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidGoalThreshold, r.MaxGoalsToWin)
	}
	if r.MinPenaltyKicks <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidMinKicks, r.MinPenaltyKicks)
	}
	if r.RosterSize <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidRosterSize, r.RosterSize)
	}
	return nil
}
