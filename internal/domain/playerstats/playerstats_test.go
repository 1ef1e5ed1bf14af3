package playerstats

import (
	"testing"

	"github.com/kickoffhq/matchday/internal/domain/game"
	"github.com/kickoffhq/matchday/internal/domain/player"
	"github.com/kickoffhq/matchday/internal/domain/shootout"
)

func sampleInput() Input {
	return Input{
		MatchdayID: "md1",
		Games: []game.Game{
			{ID: "g1", HomeTeamID: "red", AwayTeamID: "blue", Status: game.StatusCompleted, WinnerTeamID: "red"},
			{ID: "g2", HomeTeamID: "red", AwayTeamID: "blue", Status: game.StatusCompleted},
			{ID: "g3", HomeTeamID: "red", AwayTeamID: "blue", Status: game.StatusActive},
		},
		EventsByGame: map[string][]game.GoalEvent{
			"g1": {
				{ID: "e1", GameID: "g1", PlayerID: "p1", TeamID: "red", Type: game.EventGoal, Active: true},
				{ID: "e2", GameID: "g1", PlayerID: "p2", TeamID: "red", Type: game.EventAssist, Active: true, LinkID: "e1"},
				{ID: "e3", GameID: "g1", PlayerID: "p1", TeamID: "red", Type: game.EventGoal, Active: false},
			},
			"g2": {
				{ID: "e4", GameID: "g2", PlayerID: "p1", TeamID: "red", Type: game.EventGoal, Active: true},
			},
			"g3": {
				{ID: "e5", GameID: "g3", PlayerID: "p3", TeamID: "blue", Type: game.EventGoal, Active: true},
			},
		},
		KicksByGame: map[string][]shootout.Kick{
			"g2": {
				{ID: "k1", PlayerID: "p1", TeamID: "red", Order: 1, Result: shootout.ResultGoal},
				{ID: "k2", PlayerID: "p1", TeamID: "red", Order: 3, Result: shootout.ResultSave},
				{ID: "k3", PlayerID: "p9", TeamID: "blue", Order: 2, Result: shootout.ResultGoal},
			},
		},
		Players: []player.Player{
			{ID: "p1", TeamID: "red", Name: "Andre"},
			{ID: "p2", TeamID: "red", Name: "Bima"},
			{ID: "p3", TeamID: "blue", Name: "Calvin"},
		},
	}
}

func statByID(stats []PlayerStat, playerID string) (PlayerStat, bool) {
	for _, s := range stats {
		if s.PlayerID == playerID {
			return s, true
		}
	}
	return PlayerStat{}, false
}

func TestCompute(t *testing.T) {
	t.Parallel()

	stats := Compute(sampleInput())

	p1, ok := statByID(stats, "p1")
	if !ok {
		t.Fatal("p1 missing from stats")
	}
	if p1.Goals != 2 || p1.Assists != 0 || p1.GamesPlayed != 2 {
		t.Fatalf("unexpected p1 stats: %+v", p1)
	}
	if p1.GoalsPerGame != 1 {
		t.Fatalf("expected 1 goal per game, got %v", p1.GoalsPerGame)
	}
	if p1.PenaltyGoals != 1 || p1.PenaltyMisses != 1 {
		t.Fatalf("unexpected penalty tallies: %+v", p1)
	}

	p2, ok := statByID(stats, "p2")
	if !ok {
		t.Fatal("p2 missing from stats")
	}
	if p2.Assists != 1 || p2.GamesPlayed != 1 {
		t.Fatalf("unexpected p2 stats: %+v", p2)
	}

	// p3 only appears in an active game.
	if _, ok := statByID(stats, "p3"); ok {
		t.Fatal("active-game-only player must not appear")
	}
	// p9 took a kick but has no ledger event.
	if _, ok := statByID(stats, "p9"); ok {
		t.Fatal("shootout-only player must not appear")
	}
}

func TestCompute_SortedByName(t *testing.T) {
	t.Parallel()

	stats := Compute(sampleInput())
	for i := 1; i < len(stats); i++ {
		if stats[i-1].PlayerName > stats[i].PlayerName {
			t.Fatalf("stats not name-sorted: %+v", stats)
		}
	}
}

func TestComputeOverall_MatchesByName(t *testing.T) {
	t.Parallel()

	first := sampleInput()
	second := Input{
		MatchdayID: "md2",
		Games: []game.Game{
			{ID: "g9", HomeTeamID: "t9", AwayTeamID: "t8", Status: game.StatusCompleted, WinnerTeamID: "t9"},
		},
		EventsByGame: map[string][]game.GoalEvent{
			"g9": {
				// Same person as p1, registered fresh for this matchday.
				{ID: "e9", GameID: "g9", PlayerID: "px", TeamID: "t9", Type: game.EventGoal, Active: true},
			},
		},
		Players: []player.Player{{ID: "px", TeamID: "t9", Name: "Andre"}},
	}

	overall := ComputeOverall([]Input{first, second})

	var andre *OverallPlayerStat
	for i := range overall {
		if overall[i].PlayerName == "Andre" {
			andre = &overall[i]
		}
	}
	if andre == nil {
		t.Fatal("Andre missing from overall stats")
	}
	if andre.Goals != 3 || andre.GamesPlayed != 3 || andre.MatchdaysPlayed != 2 {
		t.Fatalf("unexpected overall stats: %+v", andre)
	}
	// Wins: g1 (red won while p1 played) and g9; g2 had no winner.
	if andre.Wins != 2 {
		t.Fatalf("expected 2 wins, got %d", andre.Wins)
	}
	if andre.WinRate < 66 || andre.WinRate > 67 {
		t.Fatalf("expected win rate ~66.7, got %v", andre.WinRate)
	}
}

func TestTopScorersAndAssists(t *testing.T) {
	t.Parallel()

	stats := []PlayerStat{
		{PlayerID: "a", Goals: 1, Assists: 5},
		{PlayerID: "b", Goals: 3, Assists: 0},
		{PlayerID: "c", Goals: 3, Assists: 2},
	}

	scorers := TopScorers(stats, 2)
	if len(scorers) != 2 || scorers[0].PlayerID != "c" || scorers[1].PlayerID != "b" {
		t.Fatalf("unexpected top scorers: %+v", scorers)
	}

	assists := TopAssists(stats, 0)
	if len(assists) != 3 || assists[0].PlayerID != "a" {
		t.Fatalf("unexpected top assists: %+v", assists)
	}
}
