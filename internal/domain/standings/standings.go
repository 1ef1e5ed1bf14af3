package standings

import (
	"sort"

	"github.com/kickoffhq/matchday/internal/domain/game"
	"github.com/kickoffhq/matchday/internal/domain/rules"
	"github.com/kickoffhq/matchday/internal/domain/team"
)

// TeamStanding is the aggregated record of one team over a set of completed
// games. It is recomputed on every query, never stored.
type TeamStanding struct {
	TeamID         string
	TeamName       string
	Played         int
	Wins           int
	Draws          int
	Losses         int
	PenaltyWins    int
	PenaltyLosses  int
	GoalsFor       int
	GoalsAgainst   int
	GoalDifference int
	Points         float64
}

// PointsFor awards points to one side of a game under the matchday's policy.
// Both sides of a penalty shootout receive draw points; the shootout winner
// additionally gets the weighted penalty bonus, which may be fractional.
func PointsFor(g game.Game, teamID string, r rules.Rules) float64 {
	if g.Status != game.StatusCompleted || !g.HasTeam(teamID) {
		return 0
	}

	if g.EndReason == game.EndReasonPenalties {
		points := float64(r.Points.Draw)
		if g.WinnerTeamID == teamID {
			points += float64(r.Points.PenaltyBonusWin) * r.PenaltyWinWeight
		}
		return points
	}

	switch {
	case g.WinnerTeamID == teamID:
		return float64(r.Points.RegulationWin)
	case g.WinnerTeamID == "":
		return float64(r.Points.Draw)
	default:
		return float64(r.Points.Loss)
	}
}

// Compute folds every completed game into both teams' totals. Goals are
// re-derived from the active ledger of each game, not read from cached score
// fields. Ordering: points desc, goal difference desc, goals for desc, then
// team name asc so equal records rank identically across runs.
func Compute(games []game.Game, eventsByGame map[string][]game.GoalEvent, teams []team.Team, r rules.Rules) []TeamStanding {
	byTeam := make(map[string]*TeamStanding, len(teams))
	order := make([]string, 0, len(teams))
	for _, t := range teams {
		byTeam[t.ID] = &TeamStanding{TeamID: t.ID, TeamName: t.Name}
		order = append(order, t.ID)
	}

	for _, g := range games {
		if g.Status != game.StatusCompleted {
			continue
		}
		home, away := game.Score(g, eventsByGame[g.ID])
		fold(byTeam[g.HomeTeamID], g, g.HomeTeamID, home, away, r)
		fold(byTeam[g.AwayTeamID], g, g.AwayTeamID, away, home, r)
	}

	out := make([]TeamStanding, 0, len(order))
	for _, id := range order {
		out = append(out, *byTeam[id])
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Points != out[j].Points {
			return out[i].Points > out[j].Points
		}
		if out[i].GoalDifference != out[j].GoalDifference {
			return out[i].GoalDifference > out[j].GoalDifference
		}
		if out[i].GoalsFor != out[j].GoalsFor {
			return out[i].GoalsFor > out[j].GoalsFor
		}
		return out[i].TeamName < out[j].TeamName
	})
	return out
}

func fold(s *TeamStanding, g game.Game, teamID string, scored, conceded int, r rules.Rules) {
	if s == nil {
		return
	}

	s.Played++
	s.GoalsFor += scored
	s.GoalsAgainst += conceded
	s.GoalDifference = s.GoalsFor - s.GoalsAgainst
	s.Points += PointsFor(g, teamID, r)

	decidedByPenalties := g.EndReason == game.EndReasonPenalties
	switch {
	case g.WinnerTeamID == teamID:
		s.Wins++
		if decidedByPenalties {
			s.PenaltyWins++
		}
	case g.WinnerTeamID == "":
		s.Draws++
	default:
		s.Losses++
		if decidedByPenalties {
			s.PenaltyLosses++
		}
	}
}
