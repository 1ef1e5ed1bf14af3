package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kickoffhq/matchday/internal/domain/game"
	"github.com/kickoffhq/matchday/internal/domain/matchday"
	"github.com/kickoffhq/matchday/internal/domain/player"
	"github.com/kickoffhq/matchday/internal/domain/rules"
	"github.com/kickoffhq/matchday/internal/domain/team"
	"github.com/kickoffhq/matchday/internal/platform/cache"
	"github.com/kickoffhq/matchday/internal/platform/id"
)

// GameService drives the game lifecycle and the scoring ledger. Every ledger
// write goes through reproject, so the cached game state never drifts from
// the active events for longer than one operation.
type GameService struct {
	matchdayRepo matchday.Repository
	teamRepo     team.Repository
	playerRepo   player.Repository
	gameRepo     game.Repository
	idGen        id.Generator
	views        *cache.Store
	now          func() time.Time
}

func NewGameService(
	matchdayRepo matchday.Repository,
	teamRepo team.Repository,
	playerRepo player.Repository,
	gameRepo game.Repository,
	idGen id.Generator,
	views *cache.Store,
) *GameService {
	return &GameService{
		matchdayRepo: matchdayRepo,
		teamRepo:     teamRepo,
		playerRepo:   playerRepo,
		gameRepo:     gameRepo,
		idGen:        idGen,
		views:        views,
		now:          time.Now,
	}
}

func (s *GameService) CreateGame(ctx context.Context, matchdayID, homeTeamID, awayTeamID string) (game.Game, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameService.CreateGame")
	defer span.End()

	matchdayID = strings.TrimSpace(matchdayID)
	if matchdayID == "" {
		return game.Game{}, fmt.Errorf("%w: matchday id is required", ErrInvalidInput)
	}
	if _, exists, err := s.matchdayRepo.GetByID(ctx, matchdayID); err != nil {
		return game.Game{}, fmt.Errorf("get matchday: %w", err)
	} else if !exists {
		return game.Game{}, fmt.Errorf("%w: matchday=%s", ErrNotFound, matchdayID)
	}

	for _, teamID := range []string{homeTeamID, awayTeamID} {
		t, exists, err := s.teamRepo.GetByID(ctx, teamID)
		if err != nil {
			return game.Game{}, fmt.Errorf("get team: %w", err)
		}
		if !exists || t.MatchdayID != matchdayID {
			return game.Game{}, fmt.Errorf("%w: team %s is not part of matchday %s", ErrInvalidInput, teamID, matchdayID)
		}
	}

	newID, err := s.idGen.NewID()
	if err != nil {
		return game.Game{}, fmt.Errorf("generate game id: %w", err)
	}

	g, err := game.New(newID, matchdayID, homeTeamID, awayTeamID)
	if err != nil {
		return game.Game{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.gameRepo.Create(ctx, g); err != nil {
		return game.Game{}, fmt.Errorf("create game: %w", err)
	}
	return g, nil
}

// StartGame activates a pending game. The roster-size guard can be
// overridden for informal sessions that play short-handed.
func (s *GameService) StartGame(ctx context.Context, gameID string, override bool) (game.Game, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameService.StartGame")
	defer span.End()

	g, r, err := s.loadGame(ctx, gameID)
	if err != nil {
		return game.Game{}, err
	}

	homeRoster, err := s.rosterSize(ctx, g.HomeTeamID)
	if err != nil {
		return game.Game{}, err
	}
	awayRoster, err := s.rosterSize(ctx, g.AwayTeamID)
	if err != nil {
		return game.Game{}, err
	}

	started, err := game.Start(g, homeRoster, awayRoster, r, override, s.now().UTC())
	if err != nil {
		return game.Game{}, fmt.Errorf("%w: %v", ErrInvalidState, err)
	}
	if err := s.gameRepo.Update(ctx, started); err != nil {
		return game.Game{}, fmt.Errorf("update game: %w", err)
	}
	return started, nil
}

// EndGame completes an active game with reason regulation. A level score is
// allowed; the caller may then begin a shootout.
func (s *GameService) EndGame(ctx context.Context, gameID string) (game.Game, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameService.EndGame")
	defer span.End()

	g, _, err := s.loadGame(ctx, gameID)
	if err != nil {
		return game.Game{}, err
	}
	events, err := s.gameRepo.ListEvents(ctx, gameID)
	if err != nil {
		return game.Game{}, fmt.Errorf("list game events: %w", err)
	}

	ended, err := game.End(g, events, s.now().UTC())
	if err != nil {
		return game.Game{}, fmt.Errorf("%w: %v", ErrInvalidState, err)
	}
	if err := s.gameRepo.Update(ctx, ended); err != nil {
		return game.Game{}, fmt.Errorf("update game: %w", err)
	}
	s.invalidateViews(ctx, ended.MatchdayID)
	return ended, nil
}

// GetGame returns the game reconciled against its ledger. A stale cached
// state (for example after a crash between append and update) is repaired
// and persisted on the way out.
func (s *GameService) GetGame(ctx context.Context, gameID string) (game.Game, []game.GoalEvent, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameService.GetGame")
	defer span.End()

	g, r, err := s.loadGame(ctx, gameID)
	if err != nil {
		return game.Game{}, nil, err
	}
	projected, events, err := s.reproject(ctx, g, r)
	if err != nil {
		return game.Game{}, nil, err
	}
	return projected, events, nil
}

func (s *GameService) ListGames(ctx context.Context, matchdayID string) ([]game.Game, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameService.ListGames")
	defer span.End()

	md, exists, err := s.matchdayRepo.GetByID(ctx, matchdayID)
	if err != nil {
		return nil, fmt.Errorf("get matchday: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: matchday=%s", ErrNotFound, matchdayID)
	}

	games, err := s.gameRepo.ListByMatchday(ctx, matchdayID)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	out := make([]game.Game, 0, len(games))
	for _, g := range games {
		projected, _, projErr := s.reproject(ctx, g, md.Rules)
		if projErr != nil {
			return nil, projErr
		}
		out = append(out, projected)
	}
	return out, nil
}

// AddGoal appends a goal, and its assist when given, to the ledger. Both
// events land atomically; the cached score and an early finish follow from
// the reprojection.
func (s *GameService) AddGoal(ctx context.Context, gameID string, in game.GoalInput) (game.Game, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameService.AddGoal")
	defer span.End()

	g, r, err := s.loadGame(ctx, gameID)
	if err != nil {
		return game.Game{}, err
	}
	if in.Minute < 0 {
		return game.Game{}, fmt.Errorf("%w: minute must not be negative", ErrInvalidInput)
	}
	if err := game.ValidateGoal(g, in); err != nil {
		if errors.Is(err, game.ErrGameNotActive) {
			return game.Game{}, fmt.Errorf("%w: %v", ErrInvalidState, err)
		}
		return game.Game{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.requirePlayerOnTeam(ctx, in.ScorerID, in.TeamID); err != nil {
		return game.Game{}, err
	}
	if in.AssistPlayerID != "" {
		if err := s.requirePlayerOnTeam(ctx, in.AssistPlayerID, in.TeamID); err != nil {
			return game.Game{}, err
		}
	}

	goalID, err := s.idGen.NewID()
	if err != nil {
		return game.Game{}, fmt.Errorf("generate goal id: %w", err)
	}
	assistID := ""
	if in.AssistPlayerID != "" {
		if assistID, err = s.idGen.NewID(); err != nil {
			return game.Game{}, fmt.Errorf("generate assist id: %w", err)
		}
	}

	if err := s.gameRepo.AppendEvents(ctx, game.BuildGoal(g, in, goalID, assistID)); err != nil {
		return game.Game{}, fmt.Errorf("append goal events: %w", err)
	}

	projected, _, err := s.reproject(ctx, g, r)
	if err != nil {
		return game.Game{}, err
	}
	return projected, nil
}

// UndoLastGoal deactivates the most recent active goal and its linked
// assist. The events stay in the ledger; a game completed by an early finish
// reopens when the score drops back under the threshold.
func (s *GameService) UndoLastGoal(ctx context.Context, gameID string) (game.Game, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameService.UndoLastGoal")
	defer span.End()

	g, r, err := s.loadGame(ctx, gameID)
	if err != nil {
		return game.Game{}, err
	}
	if g.Status == game.StatusCompleted && g.EndReason != game.EndReasonEarlyFinish {
		return game.Game{}, fmt.Errorf("%w: game ended by %s", ErrInvalidState, g.EndReason)
	}

	events, err := s.gameRepo.ListEvents(ctx, gameID)
	if err != nil {
		return game.Game{}, fmt.Errorf("list game events: %w", err)
	}
	ids, err := game.UndoLastGoal(events)
	if err != nil {
		return game.Game{}, fmt.Errorf("%w: %v", ErrInvalidState, err)
	}
	if err := s.gameRepo.DeactivateEvents(ctx, gameID, ids); err != nil {
		return game.Game{}, fmt.Errorf("deactivate goal events: %w", err)
	}

	projected, _, err := s.reproject(ctx, g, r)
	if err != nil {
		return game.Game{}, err
	}
	return projected, nil
}

// EditGoal reassigns scorer and assist of an existing goal without touching
// the score. Removing or replacing an assist deactivates the old one.
func (s *GameService) EditGoal(ctx context.Context, gameID, goalID string, edit game.GoalEdit) (game.Game, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameService.EditGoal")
	defer span.End()

	g, r, err := s.loadGame(ctx, gameID)
	if err != nil {
		return game.Game{}, err
	}
	events, err := s.gameRepo.ListEvents(ctx, gameID)
	if err != nil {
		return game.Game{}, fmt.Errorf("list game events: %w", err)
	}

	updated, oldAssistID, newAssist, err := game.ReassignGoal(g, events, goalID, edit)
	if err != nil {
		if errors.Is(err, game.ErrGoalNotFound) {
			return game.Game{}, fmt.Errorf("%w: goal=%s", ErrNotFound, goalID)
		}
		return game.Game{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.requirePlayerOnTeam(ctx, edit.ScorerID, updated.TeamID); err != nil {
		return game.Game{}, err
	}
	if newAssist != nil {
		if err := s.requirePlayerOnTeam(ctx, newAssist.PlayerID, newAssist.TeamID); err != nil {
			return game.Game{}, err
		}
	}

	if err := s.gameRepo.UpdateEvent(ctx, updated); err != nil {
		return game.Game{}, fmt.Errorf("update goal event: %w", err)
	}
	if oldAssistID != "" {
		if err := s.gameRepo.DeactivateEvents(ctx, gameID, []string{oldAssistID}); err != nil {
			return game.Game{}, fmt.Errorf("deactivate replaced assist: %w", err)
		}
	}
	if newAssist != nil {
		assistID, idErr := s.idGen.NewID()
		if idErr != nil {
			return game.Game{}, fmt.Errorf("generate assist id: %w", idErr)
		}
		newAssist.ID = assistID
		if err := s.gameRepo.AppendEvents(ctx, []game.GoalEvent{*newAssist}); err != nil {
			return game.Game{}, fmt.Errorf("append replacement assist: %w", err)
		}
	}

	projected, _, err := s.reproject(ctx, g, r)
	if err != nil {
		return game.Game{}, err
	}
	return projected, nil
}

// DeleteGoal deactivates a specific goal, not necessarily the latest.
func (s *GameService) DeleteGoal(ctx context.Context, gameID, goalID string) (game.Game, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameService.DeleteGoal")
	defer span.End()

	g, r, err := s.loadGame(ctx, gameID)
	if err != nil {
		return game.Game{}, err
	}
	if g.Status == game.StatusCompleted && g.EndReason == game.EndReasonPenalties {
		return game.Game{}, fmt.Errorf("%w: game was decided by penalties", ErrInvalidState)
	}

	events, err := s.gameRepo.ListEvents(ctx, gameID)
	if err != nil {
		return game.Game{}, fmt.Errorf("list game events: %w", err)
	}
	ids, err := game.DeactivateGoal(events, goalID)
	if err != nil {
		return game.Game{}, fmt.Errorf("%w: goal=%s", ErrNotFound, goalID)
	}
	if err := s.gameRepo.DeactivateEvents(ctx, gameID, ids); err != nil {
		return game.Game{}, fmt.Errorf("deactivate goal events: %w", err)
	}

	projected, _, err := s.reproject(ctx, g, r)
	if err != nil {
		return game.Game{}, err
	}
	return projected, nil
}

func (s *GameService) loadGame(ctx context.Context, gameID string) (game.Game, rules.Rules, error) {
	gameID = strings.TrimSpace(gameID)
	if gameID == "" {
		return game.Game{}, rules.Rules{}, fmt.Errorf("%w: game id is required", ErrInvalidInput)
	}

	g, exists, err := s.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return game.Game{}, rules.Rules{}, fmt.Errorf("get game: %w", err)
	}
	if !exists {
		return game.Game{}, rules.Rules{}, fmt.Errorf("%w: game=%s", ErrNotFound, gameID)
	}

	md, exists, err := s.matchdayRepo.GetByID(ctx, g.MatchdayID)
	if err != nil {
		return game.Game{}, rules.Rules{}, fmt.Errorf("get matchday: %w", err)
	}
	if !exists {
		return game.Game{}, rules.Rules{}, fmt.Errorf("%w: game %s references missing matchday %s", ErrConsistency, g.ID, g.MatchdayID)
	}
	return g, md.Rules, nil
}

// reproject rebuilds the cached game state from the ledger and persists it
// when it changed. All four scoring mutations funnel through here.
func (s *GameService) reproject(ctx context.Context, g game.Game, r rules.Rules) (game.Game, []game.GoalEvent, error) {
	events, err := s.gameRepo.ListEvents(ctx, g.ID)
	if err != nil {
		return game.Game{}, nil, fmt.Errorf("list game events: %w", err)
	}
	if err := game.CheckLedger(g, events); err != nil {
		return game.Game{}, nil, fmt.Errorf("%w: %v", ErrConsistency, err)
	}

	projected := game.Project(g, events, r, s.now().UTC())
	if projected != g {
		if err := s.gameRepo.Update(ctx, projected); err != nil {
			return game.Game{}, nil, fmt.Errorf("update projected game: %w", err)
		}
		s.invalidateViews(ctx, projected.MatchdayID)
	}
	return projected, events, nil
}

func (s *GameService) rosterSize(ctx context.Context, teamID string) (int, error) {
	players, err := s.playerRepo.ListByTeam(ctx, teamID)
	if err != nil {
		return 0, fmt.Errorf("list players: %w", err)
	}
	return len(players), nil
}

func (s *GameService) requirePlayerOnTeam(ctx context.Context, playerID, teamID string) error {
	p, exists, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return fmt.Errorf("get player: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
	}
	if p.TeamID != teamID {
		return fmt.Errorf("%w: player %s is not on team %s", ErrInvalidInput, playerID, teamID)
	}
	return nil
}

func (s *GameService) invalidateViews(ctx context.Context, matchdayID string) {
	if s.views == nil {
		return
	}
	s.views.DeletePrefix(ctx, viewKeyPrefix(matchdayID))
	s.views.Delete(ctx, overallStatsKey)
}
