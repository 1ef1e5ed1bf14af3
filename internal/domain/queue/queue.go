package queue

import (
	"errors"
	"sort"

	"github.com/kickoffhq/matchday/internal/domain/game"
	"github.com/kickoffhq/matchday/internal/domain/team"
)

var ErrNeedThreeTeams = errors.New("queue suggestion needs exactly three teams")

// Suggestion is the proposed next pairing of a winner-stays rotation. It is
// advisory; callers create whatever game they like.
type Suggestion struct {
	HomeTeamID    string
	AwayTeamID    string
	WaitingTeamID string
}

// Next derives the next pairing from the ordered completed-game history of a
// three-team matchday. The previous winner stays on as home side, the team
// that sat out comes in as away side, the loser waits. With no usable history
// (no completed games, or the last game had no determinable winner) the
// fallback is the first two teams in name order, third waiting.
func Next(completed []game.Game, teams []team.Team) (Suggestion, error) {
	if len(teams) != 3 {
		return Suggestion{}, ErrNeedThreeTeams
	}

	last, ok := lastDecided(completed)
	if !ok {
		ordered := make([]team.Team, len(teams))
		copy(ordered, teams)
		sort.Slice(ordered, func(i, j int) bool { return ordered[i].Name < ordered[j].Name })
		return Suggestion{
			HomeTeamID:    ordered[0].ID,
			AwayTeamID:    ordered[1].ID,
			WaitingTeamID: ordered[2].ID,
		}, nil
	}

	waiting := ""
	for _, t := range teams {
		if !last.HasTeam(t.ID) {
			waiting = t.ID
			break
		}
	}

	return Suggestion{
		HomeTeamID:    last.WinnerTeamID,
		AwayTeamID:    waiting,
		WaitingTeamID: last.LoserTeamID(),
	}, nil
}

func lastDecided(completed []game.Game) (game.Game, bool) {
	if len(completed) == 0 {
		return game.Game{}, false
	}
	last := completed[len(completed)-1]
	if last.Status != game.StatusCompleted || last.WinnerTeamID == "" {
		return game.Game{}, false
	}
	return last, true
}
