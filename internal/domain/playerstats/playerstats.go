package playerstats

import (
	"sort"

	"github.com/kickoffhq/matchday/internal/domain/game"
	"github.com/kickoffhq/matchday/internal/domain/player"
	"github.com/kickoffhq/matchday/internal/domain/shootout"
)

// PlayerStat is one player's aggregated record within a single matchday. Only
// players with at least one active event in a completed game appear.
type PlayerStat struct {
	PlayerID      string
	PlayerName    string
	TeamID        string
	GamesPlayed   int
	Goals         int
	Assists       int
	GoalsPerGame  float64
	PenaltyGoals  int
	PenaltyMisses int
}

// OverallPlayerStat spans matchdays. Players are matched across matchdays by
// name, since each matchday registers its own player rows.
type OverallPlayerStat struct {
	PlayerName      string
	GamesPlayed     int
	Goals           int
	Assists         int
	GoalsPerGame    float64
	PenaltyGoals    int
	PenaltyMisses   int
	MatchdaysPlayed int
	Wins            int
	WinRate         float64
}

// Input is the closed set of one matchday's completed games with their
// ledgers and shootout kicks.
type Input struct {
	MatchdayID   string
	Games        []game.Game
	EventsByGame map[string][]game.GoalEvent
	KicksByGame  map[string][]shootout.Kick
	Players      []player.Player
}

// Compute derives per-matchday player stats. A game counts as played for a
// player when they have at least one active goal or assist event in it.
func Compute(in Input) []PlayerStat {
	nameByID := make(map[string]string, len(in.Players))
	for _, p := range in.Players {
		nameByID[p.ID] = p.Name
	}

	type acc struct {
		stat        PlayerStat
		gamesPlayed map[string]struct{}
	}
	byPlayer := make(map[string]*acc)

	track := func(playerID, teamID string) *acc {
		a, ok := byPlayer[playerID]
		if !ok {
			a = &acc{
				stat: PlayerStat{
					PlayerID:   playerID,
					PlayerName: nameByID[playerID],
					TeamID:     teamID,
				},
				gamesPlayed: make(map[string]struct{}),
			}
			byPlayer[playerID] = a
		}
		return a
	}

	for _, g := range in.Games {
		if g.Status != game.StatusCompleted {
			continue
		}
		for _, ev := range in.EventsByGame[g.ID] {
			if !ev.Active || ev.PlayerID == "" {
				continue
			}
			a := track(ev.PlayerID, ev.TeamID)
			a.gamesPlayed[g.ID] = struct{}{}
			switch ev.Type {
			case game.EventGoal:
				a.stat.Goals++
			case game.EventAssist:
				a.stat.Assists++
			}
		}
	}

	// Kicks contribute penalty tallies only for players already grounded by a
	// ledger event; a shootout appearance alone does not count as playing.
	for _, g := range in.Games {
		for _, k := range in.KicksByGame[g.ID] {
			a, ok := byPlayer[k.PlayerID]
			if !ok {
				continue
			}
			if k.Result == shootout.ResultGoal {
				a.stat.PenaltyGoals++
			} else {
				a.stat.PenaltyMisses++
			}
		}
	}

	out := make([]PlayerStat, 0, len(byPlayer))
	for _, a := range byPlayer {
		a.stat.GamesPlayed = len(a.gamesPlayed)
		if a.stat.GamesPlayed == 0 {
			continue
		}
		a.stat.GoalsPerGame = float64(a.stat.Goals) / float64(a.stat.GamesPlayed)
		out = append(out, a.stat)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PlayerName < out[j].PlayerName })
	return out
}

// ComputeOverall folds any number of matchday inputs into cross-matchday
// stats, adding distinct matchdays played and the win rate over games the
// player actually appeared in.
func ComputeOverall(inputs []Input) []OverallPlayerStat {
	type acc struct {
		stat      OverallPlayerStat
		matchdays map[string]struct{}
	}
	byName := make(map[string]*acc)

	for _, in := range inputs {
		gamesByID := make(map[string]game.Game, len(in.Games))
		for _, g := range in.Games {
			gamesByID[g.ID] = g
		}

		for _, stat := range Compute(in) {
			if stat.PlayerName == "" {
				continue
			}
			a, ok := byName[stat.PlayerName]
			if !ok {
				a = &acc{
					stat:      OverallPlayerStat{PlayerName: stat.PlayerName},
					matchdays: make(map[string]struct{}),
				}
				byName[stat.PlayerName] = a
			}
			a.stat.GamesPlayed += stat.GamesPlayed
			a.stat.Goals += stat.Goals
			a.stat.Assists += stat.Assists
			a.stat.PenaltyGoals += stat.PenaltyGoals
			a.stat.PenaltyMisses += stat.PenaltyMisses
			a.matchdays[in.MatchdayID] = struct{}{}
			a.stat.Wins += winsWhilePlaying(stat, in, gamesByID)
		}
	}

	out := make([]OverallPlayerStat, 0, len(byName))
	for _, a := range byName {
		a.stat.MatchdaysPlayed = len(a.matchdays)
		if a.stat.GamesPlayed > 0 {
			a.stat.GoalsPerGame = float64(a.stat.Goals) / float64(a.stat.GamesPlayed)
			a.stat.WinRate = float64(a.stat.Wins) / float64(a.stat.GamesPlayed) * 100
		}
		out = append(out, a.stat)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PlayerName < out[j].PlayerName })
	return out
}

func winsWhilePlaying(stat PlayerStat, in Input, gamesByID map[string]game.Game) int {
	wins := 0
	for gameID, events := range in.EventsByGame {
		g, ok := gamesByID[gameID]
		if !ok || g.Status != game.StatusCompleted {
			continue
		}
		for _, ev := range events {
			if ev.Active && ev.PlayerID == stat.PlayerID {
				if g.WinnerTeamID != "" && g.WinnerTeamID == ev.TeamID {
					wins++
				}
				break
			}
		}
	}
	return wins
}

// TopScorers orders by goals, then assists, then goals per game.
func TopScorers(stats []PlayerStat, n int) []PlayerStat {
	out := make([]PlayerStat, len(stats))
	copy(out, stats)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Goals != out[j].Goals {
			return out[i].Goals > out[j].Goals
		}
		if out[i].Assists != out[j].Assists {
			return out[i].Assists > out[j].Assists
		}
		return out[i].GoalsPerGame > out[j].GoalsPerGame
	})
	return clip(out, n)
}

// TopAssists orders by assists, then goals, then goals per game.
func TopAssists(stats []PlayerStat, n int) []PlayerStat {
	out := make([]PlayerStat, len(stats))
	copy(out, stats)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Assists != out[j].Assists {
			return out[i].Assists > out[j].Assists
		}
		if out[i].Goals != out[j].Goals {
			return out[i].Goals > out[j].Goals
		}
		return out[i].GoalsPerGame > out[j].GoalsPerGame
	})
	return clip(out, n)
}

func clip(stats []PlayerStat, n int) []PlayerStat {
	if n <= 0 || n >= len(stats) {
		return stats
	}
	return stats[:n]
}
