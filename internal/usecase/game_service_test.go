package usecase

import (
	"errors"
	"testing"

	"github.com/kickoffhq/matchday/internal/domain/game"
	"github.com/kickoffhq/matchday/internal/domain/matchday"
	"github.com/kickoffhq/matchday/internal/domain/player"
	"github.com/kickoffhq/matchday/internal/domain/team"
)

// startedGame seeds two one-player teams and returns an active game.
func startedGame(t *testing.T, e *testEnv) (matchday.Matchday, []team.Team, []player.Player, game.Game) {
	t.Helper()

	md, teams, players := e.seedMatchday(t, looseRules(), "Red Bibs", "Blue Bibs")
	g, err := e.games.CreateGame(t.Context(), md.ID, teams[0].ID, teams[1].ID)
	if err != nil {
		t.Fatalf("create game: %v", err)
	}
	g, err = e.games.StartGame(t.Context(), g.ID, false)
	if err != nil {
		t.Fatalf("start game: %v", err)
	}
	return md, teams, players, g
}

func TestCreateGame_Validation(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)
	md, teams, _ := e.seedMatchday(t, looseRules(), "Red Bibs", "Blue Bibs")

	if _, err := e.games.CreateGame(t.Context(), md.ID, teams[0].ID, teams[0].ID); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("same team twice must be rejected, got %v", err)
	}
	if _, err := e.games.CreateGame(t.Context(), "nope", teams[0].ID, teams[1].ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown matchday, got %v", err)
	}

	_, otherTeams, _ := e.seedMatchday(t, looseRules(), "Green Bibs")
	if _, err := e.games.CreateGame(t.Context(), md.ID, teams[0].ID, otherTeams[0].ID); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("team from another matchday must be rejected, got %v", err)
	}
}

func TestStartGame_RosterGuard(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)

	r := looseRules()
	r.RosterSize = 5
	md, teams, _ := e.seedMatchday(t, r, "Red Bibs", "Blue Bibs")

	g, err := e.games.CreateGame(t.Context(), md.ID, teams[0].ID, teams[1].ID)
	if err != nil {
		t.Fatalf("create game: %v", err)
	}

	if _, err := e.games.StartGame(t.Context(), g.ID, false); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("short roster without override must fail, got %v", err)
	}

	started, err := e.games.StartGame(t.Context(), g.ID, true)
	if err != nil {
		t.Fatalf("override start: %v", err)
	}
	if started.Status != game.StatusActive || started.StartedAt == nil {
		t.Fatalf("unexpected started game: %+v", started)
	}
}

func TestAddGoal_UpdatesScore(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)
	_, teams, players, g := startedGame(t, e)

	updated, err := e.games.AddGoal(t.Context(), g.ID, game.GoalInput{
		TeamID:   teams[0].ID,
		ScorerID: players[0].ID,
		Minute:   7,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.HomeScore != 1 || updated.AwayScore != 0 {
		t.Fatalf("unexpected score: %d-%d", updated.HomeScore, updated.AwayScore)
	}

	_, events, err := e.games.GetGame(t.Context(), g.ID)
	if err != nil {
		t.Fatalf("get game: %v", err)
	}
	if len(events) != 1 || events[0].Type != game.EventGoal {
		t.Fatalf("unexpected ledger: %+v", events)
	}
}

func TestAddGoal_WithAssistLandsBothEvents(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)
	_, teams, players, g := startedGame(t, e)

	assist, err := e.matchdays.AddPlayer(t.Context(), teams[0].ID, "Red Winger")
	if err != nil {
		t.Fatalf("add player: %v", err)
	}

	if _, err := e.games.AddGoal(t.Context(), g.ID, game.GoalInput{
		TeamID:         teams[0].ID,
		ScorerID:       players[0].ID,
		AssistPlayerID: assist.ID,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, events, err := e.games.GetGame(t.Context(), g.ID)
	if err != nil {
		t.Fatalf("get game: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected goal plus assist, got %+v", events)
	}
	if events[1].Type != game.EventAssist || events[1].LinkID != events[0].ID {
		t.Fatalf("assist must link its goal: %+v", events)
	}
}

func TestAddGoal_Validation(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)
	_, teams, players, g := startedGame(t, e)

	if _, err := e.games.AddGoal(t.Context(), g.ID, game.GoalInput{
		TeamID:   teams[0].ID,
		ScorerID: players[0].ID,
		Minute:   -1,
	}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("negative minute, got %v", err)
	}

	// Scorer from the other team's roster.
	if _, err := e.games.AddGoal(t.Context(), g.ID, game.GoalInput{
		TeamID:   teams[0].ID,
		ScorerID: players[1].ID,
	}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("foreign scorer, got %v", err)
	}
}

func TestAddGoal_EarlyFinishCompletesGame(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)

	r := looseRules()
	r.MaxGoalsToWin = 2
	md, teams, players := e.seedMatchday(t, r, "Red Bibs", "Blue Bibs")
	g, err := e.games.CreateGame(t.Context(), md.ID, teams[0].ID, teams[1].ID)
	if err != nil {
		t.Fatalf("create game: %v", err)
	}
	if g, err = e.games.StartGame(t.Context(), g.ID, false); err != nil {
		t.Fatalf("start game: %v", err)
	}

	in := game.GoalInput{TeamID: teams[0].ID, ScorerID: players[0].ID}
	if _, err := e.games.AddGoal(t.Context(), g.ID, in); err != nil {
		t.Fatalf("first goal: %v", err)
	}
	final, err := e.games.AddGoal(t.Context(), g.ID, in)
	if err != nil {
		t.Fatalf("second goal: %v", err)
	}

	if final.Status != game.StatusCompleted || final.EndReason != game.EndReasonEarlyFinish {
		t.Fatalf("threshold must complete the game: %+v", final)
	}
	if final.WinnerTeamID != teams[0].ID {
		t.Fatalf("unexpected winner: %+v", final)
	}

	// Further scoring is rejected once completed.
	if _, err := e.games.AddGoal(t.Context(), g.ID, in); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
}

func TestUndoLastGoal_ReopensEarlyFinish(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)

	r := looseRules()
	r.MaxGoalsToWin = 2
	md, teams, players := e.seedMatchday(t, r, "Red Bibs", "Blue Bibs")
	g, err := e.games.CreateGame(t.Context(), md.ID, teams[0].ID, teams[1].ID)
	if err != nil {
		t.Fatalf("create game: %v", err)
	}
	if g, err = e.games.StartGame(t.Context(), g.ID, false); err != nil {
		t.Fatalf("start game: %v", err)
	}

	in := game.GoalInput{TeamID: teams[0].ID, ScorerID: players[0].ID}
	for i := 0; i < 2; i++ {
		if _, err := e.games.AddGoal(t.Context(), g.ID, in); err != nil {
			t.Fatalf("goal %d: %v", i, err)
		}
	}

	reopened, err := e.games.UndoLastGoal(t.Context(), g.ID)
	if err != nil {
		t.Fatalf("undo: %v", err)
	}
	if reopened.Status != game.StatusActive || reopened.EndReason != "" || reopened.WinnerTeamID != "" {
		t.Fatalf("undo must reopen the early finish: %+v", reopened)
	}
	if reopened.HomeScore != 1 {
		t.Fatalf("unexpected score: %d", reopened.HomeScore)
	}
}

func TestUndoLastGoal_RegulationGameIsFinal(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)
	_, teams, players, g := startedGame(t, e)

	if _, err := e.games.AddGoal(t.Context(), g.ID, game.GoalInput{TeamID: teams[0].ID, ScorerID: players[0].ID}); err != nil {
		t.Fatalf("goal: %v", err)
	}
	if _, err := e.games.EndGame(t.Context(), g.ID); err != nil {
		t.Fatalf("end game: %v", err)
	}

	if _, err := e.games.UndoLastGoal(t.Context(), g.ID); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("regulation result must not be undone, got %v", err)
	}
}

func TestEndGame_SetsWinnerAndDuration(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)
	_, teams, players, g := startedGame(t, e)

	if _, err := e.games.AddGoal(t.Context(), g.ID, game.GoalInput{TeamID: teams[1].ID, ScorerID: players[1].ID}); err != nil {
		t.Fatalf("goal: %v", err)
	}

	ended, err := e.games.EndGame(t.Context(), g.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ended.Status != game.StatusCompleted || ended.EndReason != game.EndReasonRegulation {
		t.Fatalf("unexpected end state: %+v", ended)
	}
	if ended.WinnerTeamID != teams[1].ID {
		t.Fatalf("unexpected winner: %+v", ended)
	}

	if _, err := e.games.EndGame(t.Context(), g.ID); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("double end, got %v", err)
	}
}

func TestEditGoal_ReassignsScorer(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)
	_, teams, players, g := startedGame(t, e)

	second, err := e.matchdays.AddPlayer(t.Context(), teams[0].ID, "Red Winger")
	if err != nil {
		t.Fatalf("add player: %v", err)
	}
	if _, err := e.games.AddGoal(t.Context(), g.ID, game.GoalInput{TeamID: teams[0].ID, ScorerID: players[0].ID}); err != nil {
		t.Fatalf("goal: %v", err)
	}
	_, events, err := e.games.GetGame(t.Context(), g.ID)
	if err != nil {
		t.Fatalf("get game: %v", err)
	}
	goalID := events[0].ID

	updated, err := e.games.EditGoal(t.Context(), g.ID, goalID, game.GoalEdit{
		ScorerID:       second.ID,
		AssistPlayerID: players[0].ID,
	})
	if err != nil {
		t.Fatalf("edit goal: %v", err)
	}
	if updated.HomeScore != 1 {
		t.Fatalf("edit must not change the score: %+v", updated)
	}

	_, events, err = e.games.GetGame(t.Context(), g.ID)
	if err != nil {
		t.Fatalf("get game: %v", err)
	}
	var goals, assists int
	for _, ev := range events {
		if !ev.Active {
			continue
		}
		switch ev.Type {
		case game.EventGoal:
			goals++
			if ev.PlayerID != second.ID {
				t.Fatalf("scorer not reassigned: %+v", ev)
			}
		case game.EventAssist:
			assists++
			if ev.PlayerID != players[0].ID || ev.LinkID != goalID {
				t.Fatalf("unexpected assist: %+v", ev)
			}
		}
	}
	if goals != 1 || assists != 1 {
		t.Fatalf("unexpected active events: %+v", events)
	}
}

func TestEditGoal_UnknownGoal(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)
	_, _, players, g := startedGame(t, e)

	if _, err := e.games.EditGoal(t.Context(), g.ID, "nope", game.GoalEdit{ScorerID: players[0].ID}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteGoal_RemovesSpecificGoal(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)
	_, teams, players, g := startedGame(t, e)

	in := game.GoalInput{TeamID: teams[0].ID, ScorerID: players[0].ID}
	for i := 0; i < 2; i++ {
		if _, err := e.games.AddGoal(t.Context(), g.ID, in); err != nil {
			t.Fatalf("goal %d: %v", i, err)
		}
	}
	_, events, err := e.games.GetGame(t.Context(), g.ID)
	if err != nil {
		t.Fatalf("get game: %v", err)
	}
	firstGoalID := events[0].ID

	updated, err := e.games.DeleteGoal(t.Context(), g.ID, firstGoalID)
	if err != nil {
		t.Fatalf("delete goal: %v", err)
	}
	if updated.HomeScore != 1 {
		t.Fatalf("unexpected score after delete: %+v", updated)
	}

	if _, err := e.games.DeleteGoal(t.Context(), g.ID, firstGoalID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete must miss, got %v", err)
	}
}

func TestListGames_UnknownMatchday(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)

	if _, err := e.games.ListGames(t.Context(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
