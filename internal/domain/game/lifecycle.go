package game

import (
	"fmt"
	"time"

	"github.com/kickoffhq/matchday/internal/domain/rules"
)

// Start moves a pending game to active. Both rosters must meet the matchday's
// required size unless the caller overrides; the guard is advisory, not an
// invariant of later derivations.
func Start(g Game, homeRoster, awayRoster int, r rules.Rules, override bool, now time.Time) (Game, error) {
	switch g.Status {
	case StatusPending:
	case StatusActive:
		return Game{}, ErrGameNotPending
	default:
		return Game{}, ErrGameCompleted
	}
	if !override && (homeRoster < r.RosterSize || awayRoster < r.RosterSize) {
		return Game{}, fmt.Errorf("%w: need %d, have home=%d away=%d",
			ErrRosterIncomplete, r.RosterSize, homeRoster, awayRoster)
	}

	g.Status = StatusActive
	g.StartedAt = &now
	return g, nil
}

// End completes an active game on an explicit request, with reason
// regulation. A level score leaves WinnerTeamID empty; the caller may then
// begin a shootout.
func End(g Game, events []GoalEvent, now time.Time) (Game, error) {
	if g.Status != StatusActive {
		if g.Status == StatusCompleted {
			return Game{}, ErrGameCompleted
		}
		return Game{}, ErrGameNotActive
	}

	g.HomeScore, g.AwayScore = Score(g, events)
	g.Status = StatusCompleted
	g.EndReason = EndReasonRegulation
	g.WinnerTeamID = leader(g)
	g.EndedAt = &now
	g.DurationMin = durationMinutes(g.StartedAt, now)
	return g, nil
}

// Project reconciles the cached game state with the active ledger. The score
// fields are always overwritten from Score. An active game crossing the
// early-finish threshold completes; a game completed by early_finish whose
// ledger dropped below the threshold reopens. Games ended by regulation or
// penalties are never reopened by ledger edits.
func Project(g Game, events []GoalEvent, r rules.Rules, now time.Time) Game {
	g.HomeScore, g.AwayScore = Score(g, events)

	threshold := r.MaxGoalsToWin
	reached := threshold > 0 && (g.HomeScore >= threshold || g.AwayScore >= threshold)

	switch {
	case g.Status == StatusActive && reached:
		g.Status = StatusCompleted
		g.EndReason = EndReasonEarlyFinish
		g.WinnerTeamID = leader(g)
		g.EndedAt = &now
		g.DurationMin = durationMinutes(g.StartedAt, now)
	case g.Status == StatusCompleted && g.EndReason == EndReasonEarlyFinish && !reached:
		g.Status = StatusActive
		g.EndReason = ""
		g.WinnerTeamID = ""
		g.EndedAt = nil
		g.DurationMin = 0
	case g.Status == StatusCompleted:
		// Keep endReason/endedAt, refresh the winner for score corrections on
		// regulation-ended games; penalty results are owned by the shootout.
		if g.EndReason != EndReasonPenalties {
			g.WinnerTeamID = leader(g)
		}
	}
	return g
}

// CompleteFromShootout consumes a decided shootout outcome. The game stays
// completed; only the end reason, winner and duration change.
func CompleteFromShootout(g Game, winnerTeamID string, now time.Time) (Game, error) {
	if g.Status != StatusCompleted {
		return Game{}, ErrGameNotActive
	}
	if !g.HasTeam(winnerTeamID) {
		return Game{}, ErrTeamNotInGame
	}

	g.EndReason = EndReasonPenalties
	g.WinnerTeamID = winnerTeamID
	g.EndedAt = &now
	g.DurationMin = durationMinutes(g.StartedAt, now)
	return g, nil
}

func leader(g Game) string {
	switch {
	case g.HomeScore > g.AwayScore:
		return g.HomeTeamID
	case g.AwayScore > g.HomeScore:
		return g.AwayTeamID
	default:
		return ""
	}
}
