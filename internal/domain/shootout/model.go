package shootout

import (
	"errors"

	"github.com/kickoffhq/matchday/internal/domain/game"
	"github.com/kickoffhq/matchday/internal/domain/rules"
)

const (
	StatusActive    = "active"
	StatusCompleted = "completed"
)

const (
	ResultGoal = "goal"
	ResultMiss = "miss"
	ResultSave = "save"
)

var (
	ErrGameNotCompleted  = errors.New("shootout requires a completed game")
	ErrGameNotTied       = errors.New("shootout requires a tied game")
	ErrAlreadyExists     = errors.New("game already has a shootout")
	ErrShootoutOver      = errors.New("shootout is already completed")
	ErrKickerRequired    = errors.New("kicker id is required")
	ErrTeamNotInShootout = errors.New("team is not part of this shootout")
	ErrUnknownResult     = errors.New("unknown kick result")
)

// Shootout is the tie-breaking sub-contest of one game. At most one exists
// per game; it is created only when the game ended level.
type Shootout struct {
	ID           string
	GameID       string
	HomeTeamID   string
	AwayTeamID   string
	HomeScore    int
	AwayScore    int
	Status       string
	WinnerTeamID string
}

// Kick is one ordered attempt. Order is 1-based per shootout and strictly
// increasing; side alternation is convention and not enforced here.
type Kick struct {
	ID         string
	ShootoutID string
	PlayerID   string
	TeamID     string
	Order      int
	Result     string
}

// Outcome is the message a decided shootout emits; the game lifecycle
// consumes it separately.
type Outcome struct {
	Decided      bool
	WinnerTeamID string
}

// Begin validates the entry conditions against the owning game and its
// ledger-derived score, then returns the new shootout in active state.
func Begin(id string, g game.Game, events []game.GoalEvent, hasExisting bool) (Shootout, error) {
	if g.Status != game.StatusCompleted {
		return Shootout{}, ErrGameNotCompleted
	}
	if hasExisting {
		return Shootout{}, ErrAlreadyExists
	}
	if home, away := game.Score(g, events); home != away {
		return Shootout{}, ErrGameNotTied
	}

	return Shootout{
		ID:         id,
		GameID:     g.ID,
		HomeTeamID: g.HomeTeamID,
		AwayTeamID: g.AwayTeamID,
		Status:     StatusActive,
	}, nil
}

// KickInput is one attempt before it is assigned an order.
type KickInput struct {
	PlayerID string
	TeamID   string
	Result   string
}

// RecordKick appends an attempt and evaluates the termination rules. It
// returns the updated shootout, the materialized kick (without an id) and the
// outcome; a decided outcome also flips the shootout to completed.
func RecordKick(s Shootout, kicks []Kick, in KickInput, r rules.Rules) (Shootout, Kick, Outcome, error) {
	if s.Status != StatusActive {
		return Shootout{}, Kick{}, Outcome{}, ErrShootoutOver
	}
	if in.PlayerID == "" {
		return Shootout{}, Kick{}, Outcome{}, ErrKickerRequired
	}
	if in.TeamID != s.HomeTeamID && in.TeamID != s.AwayTeamID {
		return Shootout{}, Kick{}, Outcome{}, ErrTeamNotInShootout
	}
	switch in.Result {
	case ResultGoal, ResultMiss, ResultSave:
	default:
		return Shootout{}, Kick{}, Outcome{}, ErrUnknownResult
	}

	kick := Kick{
		ShootoutID: s.ID,
		PlayerID:   in.PlayerID,
		TeamID:     in.TeamID,
		Order:      len(kicks) + 1,
		Result:     in.Result,
	}
	if in.Result == ResultGoal {
		if in.TeamID == s.HomeTeamID {
			s.HomeScore++
		} else {
			s.AwayScore++
		}
	}

	outcome := decide(s, append(kicks, kick), r.MinPenaltyKicks)
	if outcome.Decided {
		s.Status = StatusCompleted
		s.WinnerTeamID = outcome.WinnerTeamID
	}
	return s, kick, outcome, nil
}

// decide applies the standard termination rules after each kick. Before both
// sides reach the minimum kick count the insurmountable-lead rule applies;
// from then on the shootout resolves at the first equal-kick-count checkpoint
// with an unequal score (sudden death).
func decide(s Shootout, kicks []Kick, minKicks int) Outcome {
	homeTaken, awayTaken := 0, 0
	for _, k := range kicks {
		if k.TeamID == s.HomeTeamID {
			homeTaken++
		} else {
			awayTaken++
		}
	}

	if homeTaken < minKicks || awayTaken < minKicks {
		homeRemaining := remaining(minKicks, homeTaken)
		awayRemaining := remaining(minKicks, awayTaken)
		if s.HomeScore > s.AwayScore+awayRemaining {
			return Outcome{Decided: true, WinnerTeamID: s.HomeTeamID}
		}
		if s.AwayScore > s.HomeScore+homeRemaining {
			return Outcome{Decided: true, WinnerTeamID: s.AwayTeamID}
		}
		return Outcome{}
	}

	// Sudden death checkpoints occur whenever both sides have taken the same
	// number of kicks past the minimum.
	if homeTaken == awayTaken && s.HomeScore != s.AwayScore {
		winner := s.HomeTeamID
		if s.AwayScore > s.HomeScore {
			winner = s.AwayTeamID
		}
		return Outcome{Decided: true, WinnerTeamID: winner}
	}
	return Outcome{}
}

func remaining(minKicks, taken int) int {
	if taken >= minKicks {
		return 0
	}
	return minKicks - taken
}
