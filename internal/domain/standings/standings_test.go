package standings

import (
	"testing"

	"github.com/kickoffhq/matchday/internal/domain/game"
	"github.com/kickoffhq/matchday/internal/domain/rules"
	"github.com/kickoffhq/matchday/internal/domain/team"
)

func completedGame(id, home, away string, homeGoals, awayGoals int, endReason, winner string) (game.Game, []game.GoalEvent) {
	g := game.Game{
		ID:         id,
		MatchdayID: "md1",
		HomeTeamID: home,
		AwayTeamID: away,
		Status:     game.StatusCompleted,
		EndReason:  endReason,
	}
	events := make([]game.GoalEvent, 0, homeGoals+awayGoals)
	for i := 0; i < homeGoals; i++ {
		events = append(events, game.GoalEvent{ID: id + "-h" + string(rune('a'+i)), GameID: id, TeamID: home, Type: game.EventGoal, Active: true})
	}
	for i := 0; i < awayGoals; i++ {
		events = append(events, game.GoalEvent{ID: id + "-a" + string(rune('a'+i)), GameID: id, TeamID: away, Type: game.EventGoal, Active: true})
	}

	if winner != "" {
		g.WinnerTeamID = winner
	} else if homeGoals > awayGoals {
		g.WinnerTeamID = home
	} else if awayGoals > homeGoals {
		g.WinnerTeamID = away
	}
	return g, events
}

func TestPointsFor(t *testing.T) {
	t.Parallel()

	r := rules.Default()

	regulation, _ := completedGame("g1", "a", "b", 2, 0, game.EndReasonRegulation, "")
	if got := PointsFor(regulation, "a", r); got != 3 {
		t.Fatalf("regulation win: expected 3, got %v", got)
	}
	if got := PointsFor(regulation, "b", r); got != 0 {
		t.Fatalf("loss: expected 0, got %v", got)
	}

	draw, _ := completedGame("g2", "a", "b", 1, 1, game.EndReasonRegulation, "")
	if got := PointsFor(draw, "a", r); got != 1 {
		t.Fatalf("draw: expected 1, got %v", got)
	}

	// Penalty bonus: draw point plus weighted bonus, fractional under the
	// default half weight.
	penalties, _ := completedGame("g3", "a", "b", 2, 2, game.EndReasonPenalties, "a")
	if got := PointsFor(penalties, "a", r); got != 2 {
		t.Fatalf("penalty win: expected 2 (1 + 2*0.5), got %v", got)
	}
	if got := PointsFor(penalties, "b", r); got != 1 {
		t.Fatalf("penalty loss: expected draw point, got %v", got)
	}

	active := regulation
	active.Status = game.StatusActive
	if got := PointsFor(active, "a", r); got != 0 {
		t.Fatalf("active game must award nothing, got %v", got)
	}
	if got := PointsFor(regulation, "outsider", r); got != 0 {
		t.Fatalf("non-participant must get nothing, got %v", got)
	}
}

func TestCompute_OrderingAndTallies(t *testing.T) {
	t.Parallel()

	r := rules.Default()
	teams := []team.Team{
		{ID: "a", Name: "Alpha"},
		{ID: "b", Name: "Bravo"},
		{ID: "c", Name: "Charlie"},
	}

	g1, e1 := completedGame("g1", "a", "b", 3, 1, game.EndReasonRegulation, "")
	g2, e2 := completedGame("g2", "a", "c", 1, 1, game.EndReasonPenalties, "c")
	g3, e3 := completedGame("g3", "b", "c", 0, 2, game.EndReasonRegulation, "")

	table := Compute(
		[]game.Game{g1, g2, g3},
		map[string][]game.GoalEvent{"g1": e1, "g2": e2, "g3": e3},
		teams,
		r,
	)
	if len(table) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(table))
	}

	// a: win (3) + penalty loss (1) = 4; c: penalty win (2) + win (3) = 5.
	if table[0].TeamID != "c" || table[0].Points != 5 {
		t.Fatalf("unexpected leader: %+v", table[0])
	}
	if table[1].TeamID != "a" || table[1].Points != 4 {
		t.Fatalf("unexpected runner-up: %+v", table[1])
	}
	if table[2].TeamID != "b" || table[2].Points != 0 {
		t.Fatalf("unexpected last place: %+v", table[2])
	}

	if table[0].PenaltyWins != 1 || table[1].PenaltyLosses != 1 {
		t.Fatalf("penalty tallies wrong: %+v / %+v", table[0], table[1])
	}
	if table[1].GoalsFor != 4 || table[1].GoalsAgainst != 2 || table[1].GoalDifference != 2 {
		t.Fatalf("goal tallies wrong: %+v", table[1])
	}
}

func TestCompute_EqualRecordsOrderByName(t *testing.T) {
	t.Parallel()

	r := rules.Default()
	teams := []team.Team{
		{ID: "z", Name: "Zulu"},
		{ID: "a", Name: "Alpha"},
	}

	table := Compute(nil, nil, teams, r)
	if table[0].TeamName != "Alpha" || table[1].TeamName != "Zulu" {
		t.Fatalf("expected name-ascending order for equal records, got %+v", table)
	}
}

func TestCompute_IgnoresUnfinishedGames(t *testing.T) {
	t.Parallel()

	r := rules.Default()
	teams := []team.Team{{ID: "a", Name: "Alpha"}, {ID: "b", Name: "Bravo"}}
	g, events := completedGame("g1", "a", "b", 2, 0, game.EndReasonRegulation, "")
	g.Status = game.StatusActive
	g.WinnerTeamID = ""

	table := Compute([]game.Game{g}, map[string][]game.GoalEvent{"g1": events}, teams, r)
	for _, row := range table {
		if row.Played != 0 || row.Points != 0 {
			t.Fatalf("active game leaked into standings: %+v", row)
		}
	}
}
