package usecase

import (
	"errors"
	"testing"

	"github.com/kickoffhq/matchday/internal/domain/game"
	"github.com/kickoffhq/matchday/internal/domain/shootout"
)

func TestStandings_OrderAndPoints(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)
	md, teams, players := e.seedMatchday(t, looseRules(), "Red Bibs", "Blue Bibs", "Green Bibs")

	g, err := e.games.CreateGame(t.Context(), md.ID, teams[0].ID, teams[1].ID)
	if err != nil {
		t.Fatalf("create game: %v", err)
	}
	if _, err := e.games.StartGame(t.Context(), g.ID, false); err != nil {
		t.Fatalf("start game: %v", err)
	}
	if _, err := e.games.AddGoal(t.Context(), g.ID, game.GoalInput{TeamID: teams[0].ID, ScorerID: players[0].ID}); err != nil {
		t.Fatalf("goal: %v", err)
	}
	if _, err := e.games.EndGame(t.Context(), g.ID); err != nil {
		t.Fatalf("end game: %v", err)
	}

	table, err := e.standings.Standings(t.Context(), md.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(table) != 3 {
		t.Fatalf("expected 3 rows, got %+v", table)
	}
	if table[0].TeamID != teams[0].ID || table[0].Points != 3 || table[0].Wins != 1 {
		t.Fatalf("unexpected leader: %+v", table[0])
	}
	// Blue and Green are level on zero points; Blue's -1 goal difference
	// drops it below idle Green.
	if table[1].TeamName != "Green Bibs" || table[2].TeamName != "Blue Bibs" {
		t.Fatalf("unexpected tail order: %+v", table)
	}
	if table[1].Played != 0 || table[2].Played != 1 {
		t.Fatalf("unexpected played counts: %+v", table)
	}
}

func TestStandings_PenaltyPointsAreWeighted(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)
	md, teams, players, g := tiedGame(t, e)

	if _, err := e.shootouts.Begin(t.Context(), g.ID); err != nil {
		t.Fatalf("begin: %v", err)
	}
	kicks := []shootout.KickInput{
		{PlayerID: players[0].ID, TeamID: teams[0].ID, Result: shootout.ResultGoal},
		{PlayerID: players[1].ID, TeamID: teams[1].ID, Result: shootout.ResultMiss},
		{PlayerID: players[0].ID, TeamID: teams[0].ID, Result: shootout.ResultGoal},
	}
	for i, in := range kicks {
		if _, _, err := e.shootouts.RecordKick(t.Context(), g.ID, in); err != nil {
			t.Fatalf("kick %d: %v", i+1, err)
		}
	}

	table, err := e.standings.Standings(t.Context(), md.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Draw point plus the weighted bonus: 1 + 2*0.5.
	if table[0].TeamID != teams[0].ID || table[0].Points != 2 {
		t.Fatalf("unexpected penalty winner row: %+v", table[0])
	}
	if table[0].PenaltyWins != 1 || table[1].PenaltyLosses != 1 {
		t.Fatalf("unexpected penalty tallies: %+v", table)
	}
	if table[1].Points != 1 {
		t.Fatalf("penalty loser keeps the draw point: %+v", table[1])
	}
}

func TestStandings_CacheInvalidatedByScoring(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)
	md, teams, players := e.seedMatchday(t, looseRules(), "Red Bibs", "Blue Bibs")

	g, err := e.games.CreateGame(t.Context(), md.ID, teams[0].ID, teams[1].ID)
	if err != nil {
		t.Fatalf("create game: %v", err)
	}
	if _, err := e.games.StartGame(t.Context(), g.ID, false); err != nil {
		t.Fatalf("start game: %v", err)
	}

	before, err := e.standings.Standings(t.Context(), md.ID)
	if err != nil {
		t.Fatalf("standings: %v", err)
	}
	if before[0].Points != 0 {
		t.Fatalf("unexpected initial table: %+v", before)
	}

	if _, err := e.games.AddGoal(t.Context(), g.ID, game.GoalInput{TeamID: teams[0].ID, ScorerID: players[0].ID}); err != nil {
		t.Fatalf("goal: %v", err)
	}
	if _, err := e.games.EndGame(t.Context(), g.ID); err != nil {
		t.Fatalf("end game: %v", err)
	}

	after, err := e.standings.Standings(t.Context(), md.ID)
	if err != nil {
		t.Fatalf("standings: %v", err)
	}
	if after[0].TeamID != teams[0].ID || after[0].Points != 3 {
		t.Fatalf("stale standings served after scoring write: %+v", after)
	}
}

func TestSuggestNextGame(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)
	md, teams, players := e.seedMatchday(t, looseRules(), "Red Bibs", "Blue Bibs", "Green Bibs")

	// No history: first two by name play, the third waits.
	s, err := e.standings.SuggestNextGame(t.Context(), md.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.HomeTeamID != teams[1].ID || s.AwayTeamID != teams[2].ID || s.WaitingTeamID != teams[0].ID {
		t.Fatalf("unexpected fallback pairing: %+v", s)
	}

	g, err := e.games.CreateGame(t.Context(), md.ID, teams[0].ID, teams[1].ID)
	if err != nil {
		t.Fatalf("create game: %v", err)
	}
	if _, err := e.games.StartGame(t.Context(), g.ID, false); err != nil {
		t.Fatalf("start game: %v", err)
	}
	if _, err := e.games.AddGoal(t.Context(), g.ID, game.GoalInput{TeamID: teams[0].ID, ScorerID: players[0].ID}); err != nil {
		t.Fatalf("goal: %v", err)
	}
	if _, err := e.games.EndGame(t.Context(), g.ID); err != nil {
		t.Fatalf("end game: %v", err)
	}

	s, err = e.standings.SuggestNextGame(t.Context(), md.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.HomeTeamID != teams[0].ID || s.AwayTeamID != teams[2].ID || s.WaitingTeamID != teams[1].ID {
		t.Fatalf("winner must stay on: %+v", s)
	}
}

func TestSuggestNextGame_RequiresThreeTeams(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)
	md, _, _ := e.seedMatchday(t, looseRules(), "Red Bibs", "Blue Bibs")

	if _, err := e.standings.SuggestNextGame(t.Context(), md.ID); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
}

func TestStandings_UnknownMatchday(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)

	if _, err := e.standings.Standings(t.Context(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
