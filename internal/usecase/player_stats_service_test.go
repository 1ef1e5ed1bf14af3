package usecase

import (
	"errors"
	"testing"

	"github.com/kickoffhq/matchday/internal/domain/game"
	"github.com/kickoffhq/matchday/internal/domain/playerstats"
	"github.com/kickoffhq/matchday/internal/domain/shootout"
)

func TestMatchdayStats(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)
	md, teams, players := e.seedMatchday(t, looseRules(), "Red Bibs", "Blue Bibs")

	winger, err := e.matchdays.AddPlayer(t.Context(), teams[0].ID, "Red Winger")
	if err != nil {
		t.Fatalf("add player: %v", err)
	}

	g, err := e.games.CreateGame(t.Context(), md.ID, teams[0].ID, teams[1].ID)
	if err != nil {
		t.Fatalf("create game: %v", err)
	}
	if _, err := e.games.StartGame(t.Context(), g.ID, false); err != nil {
		t.Fatalf("start game: %v", err)
	}
	if _, err := e.games.AddGoal(t.Context(), g.ID, game.GoalInput{
		TeamID:         teams[0].ID,
		ScorerID:       players[0].ID,
		AssistPlayerID: winger.ID,
	}); err != nil {
		t.Fatalf("goal: %v", err)
	}
	if _, err := e.games.EndGame(t.Context(), g.ID); err != nil {
		t.Fatalf("end game: %v", err)
	}

	stats, err := e.stats.MatchdayStats(t.Context(), md.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("expected scorer and assister only, got %+v", stats)
	}

	byID := make(map[string]playerstats.PlayerStat, len(stats))
	for _, s := range stats {
		byID[s.PlayerID] = s
	}
	scorer := byID[players[0].ID]
	if scorer.Goals != 1 || scorer.GamesPlayed != 1 || scorer.GoalsPerGame != 1 {
		t.Fatalf("unexpected scorer stats: %+v", scorer)
	}
	assister := byID[winger.ID]
	if assister.Assists != 1 || assister.Goals != 0 {
		t.Fatalf("unexpected assister stats: %+v", assister)
	}
	// The away captain never touched the ball.
	if _, ok := byID[players[1].ID]; ok {
		t.Fatalf("player without ledger events must not appear: %+v", stats)
	}
}

func TestMatchdayStats_IncludesPenaltyTallies(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)
	md, teams, players, g := tiedGame(t, e)

	// A second game puts the home captain on the score sheet; shootout
	// tallies only land on players who appear in some ledger.
	g2, err := e.games.CreateGame(t.Context(), md.ID, teams[0].ID, teams[1].ID)
	if err != nil {
		t.Fatalf("create game: %v", err)
	}
	if _, err := e.games.StartGame(t.Context(), g2.ID, false); err != nil {
		t.Fatalf("start game: %v", err)
	}
	if _, err := e.games.AddGoal(t.Context(), g2.ID, game.GoalInput{TeamID: teams[0].ID, ScorerID: players[0].ID}); err != nil {
		t.Fatalf("goal: %v", err)
	}
	if _, err := e.games.EndGame(t.Context(), g2.ID); err != nil {
		t.Fatalf("end game: %v", err)
	}

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

	stats, err := e.stats.MatchdayStats(t.Context(), md.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var captain *playerstats.PlayerStat
	for i := range stats {
		if stats[i].PlayerID == players[0].ID {
			captain = &stats[i]
		}
	}
	if captain == nil {
		t.Fatalf("captain missing: %+v", stats)
	}
	if captain.PenaltyGoals != 2 || captain.PenaltyMisses != 0 {
		t.Fatalf("unexpected penalty tallies: %+v", captain)
	}
}

func TestTopScorersService(t *testing.T) {
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
	if _, err := e.games.AddGoal(t.Context(), g.ID, game.GoalInput{TeamID: teams[0].ID, ScorerID: players[0].ID}); err != nil {
		t.Fatalf("goal: %v", err)
	}
	if _, err := e.games.EndGame(t.Context(), g.ID); err != nil {
		t.Fatalf("end game: %v", err)
	}

	scorers, err := e.stats.TopScorers(t.Context(), md.ID, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(scorers) != 1 || scorers[0].PlayerID != players[0].ID {
		t.Fatalf("unexpected top scorers: %+v", scorers)
	}

	assists, err := e.stats.TopAssists(t.Context(), md.ID, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(assists) != 1 || assists[0].Assists != 0 {
		t.Fatalf("unexpected top assists: %+v", assists)
	}
}

func TestOverallStats_AggregatesAcrossMatchdays(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)

	// Same person appears in two matchdays under fresh registrations.
	for i := 0; i < 2; i++ {
		md, teams, _ := e.seedMatchday(t, looseRules(), "Red Bibs", "Blue Bibs")
		scorer, err := e.matchdays.AddPlayer(t.Context(), teams[0].ID, "Andre")
		if err != nil {
			t.Fatalf("add player: %v", err)
		}

		g, err := e.games.CreateGame(t.Context(), md.ID, teams[0].ID, teams[1].ID)
		if err != nil {
			t.Fatalf("create game: %v", err)
		}
		if _, err := e.games.StartGame(t.Context(), g.ID, false); err != nil {
			t.Fatalf("start game: %v", err)
		}
		if _, err := e.games.AddGoal(t.Context(), g.ID, game.GoalInput{TeamID: teams[0].ID, ScorerID: scorer.ID}); err != nil {
			t.Fatalf("goal: %v", err)
		}
		if _, err := e.games.EndGame(t.Context(), g.ID); err != nil {
			t.Fatalf("end game: %v", err)
		}
	}

	overall, err := e.stats.OverallStats(t.Context())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var andre *playerstats.OverallPlayerStat
	for i := range overall {
		if overall[i].PlayerName == "Andre" {
			andre = &overall[i]
		}
	}
	if andre == nil {
		t.Fatalf("Andre missing: %+v", overall)
	}
	if andre.Goals != 2 || andre.GamesPlayed != 2 || andre.MatchdaysPlayed != 2 {
		t.Fatalf("unexpected overall row: %+v", andre)
	}
	if andre.Wins != 2 || andre.WinRate != 100 {
		t.Fatalf("unexpected win rate: %+v", andre)
	}
}

func TestMatchdayStats_UnknownMatchday(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)

	if _, err := e.stats.MatchdayStats(t.Context(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
