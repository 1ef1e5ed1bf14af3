package game

import (
	"errors"
	"time"
)

const (
	StatusPending   = "pending"
	StatusActive    = "active"
	StatusCompleted = "completed"
)

const (
	EndReasonRegulation  = "regulation"
	EndReasonEarlyFinish = "early_finish"
	EndReasonPenalties   = "penalties"
)

var (
	ErrSameTeams        = errors.New("home and away team must differ")
	ErrGameNotPending   = errors.New("game has already started")
	ErrGameNotActive    = errors.New("game is not active")
	ErrGameCompleted    = errors.New("game is already completed")
	ErrRosterIncomplete = errors.New("team roster is below the required size")
	ErrTeamNotInGame    = errors.New("team is not playing in this game")
	ErrScorerRequired   = errors.New("scorer id is required")
	ErrAssistIsScorer   = errors.New("assist player must differ from the scorer")
	ErrNoGoalsToUndo    = errors.New("no goals to undo")
	ErrGoalNotFound     = errors.New("no active goal with that id")
)

// Game is one contest between two teams of a matchday. The score fields are a
// cached projection of the active goal events and are overwritten by Project
// on every ledger change; they never act as a source of truth.
type Game struct {
	ID           string
	MatchdayID   string
	HomeTeamID   string
	AwayTeamID   string
	Status       string
	HomeScore    int
	AwayScore    int
	WinnerTeamID string
	EndReason    string
	StartedAt    *time.Time
	EndedAt      *time.Time
	DurationMin  int
}

func New(id, matchdayID, homeTeamID, awayTeamID string) (Game, error) {
	if homeTeamID == awayTeamID {
		return Game{}, ErrSameTeams
	}
	return Game{
		ID:         id,
		MatchdayID: matchdayID,
		HomeTeamID: homeTeamID,
		AwayTeamID: awayTeamID,
		Status:     StatusPending,
	}, nil
}

func (g Game) HasTeam(teamID string) bool {
	return teamID != "" && (teamID == g.HomeTeamID || teamID == g.AwayTeamID)
}

func (g Game) Opponent(teamID string) string {
	switch teamID {
	case g.HomeTeamID:
		return g.AwayTeamID
	case g.AwayTeamID:
		return g.HomeTeamID
	default:
		return ""
	}
}

// IsDraw reports a true draw: a completed game with no winner, not decided by
// penalties.
func (g Game) IsDraw() bool {
	return g.Status == StatusCompleted && g.WinnerTeamID == "" && g.EndReason != EndReasonPenalties
}

func (g Game) LoserTeamID() string {
	if g.WinnerTeamID == "" {
		return ""
	}
	return g.Opponent(g.WinnerTeamID)
}

func durationMinutes(startedAt *time.Time, now time.Time) int {
	if startedAt == nil || now.Before(*startedAt) {
		return 0
	}
	return int(now.Sub(*startedAt).Minutes())
}
