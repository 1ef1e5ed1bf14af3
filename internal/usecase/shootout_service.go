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
	"github.com/kickoffhq/matchday/internal/domain/shootout"
	"github.com/kickoffhq/matchday/internal/platform/cache"
	"github.com/kickoffhq/matchday/internal/platform/id"
)

// ShootoutService runs the penalty tie-breaker. A decided shootout emits an
// outcome which this service relays into the game lifecycle; the shootout
// never mutates the game directly.
type ShootoutService struct {
	matchdayRepo matchday.Repository
	gameRepo     game.Repository
	playerRepo   player.Repository
	shootoutRepo shootout.Repository
	idGen        id.Generator
	views        *cache.Store
	now          func() time.Time
}

func NewShootoutService(
	matchdayRepo matchday.Repository,
	gameRepo game.Repository,
	playerRepo player.Repository,
	shootoutRepo shootout.Repository,
	idGen id.Generator,
	views *cache.Store,
) *ShootoutService {
	return &ShootoutService{
		matchdayRepo: matchdayRepo,
		gameRepo:     gameRepo,
		playerRepo:   playerRepo,
		shootoutRepo: shootoutRepo,
		idGen:        idGen,
		views:        views,
		now:          time.Now,
	}
}

// Begin opens the shootout for a completed, tied game. At most one shootout
// exists per game.
func (s *ShootoutService) Begin(ctx context.Context, gameID string) (shootout.Shootout, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ShootoutService.Begin")
	defer span.End()

	g, err := s.requireGame(ctx, gameID)
	if err != nil {
		return shootout.Shootout{}, err
	}
	events, err := s.gameRepo.ListEvents(ctx, gameID)
	if err != nil {
		return shootout.Shootout{}, fmt.Errorf("list game events: %w", err)
	}
	_, hasExisting, err := s.shootoutRepo.GetByGame(ctx, gameID)
	if err != nil {
		return shootout.Shootout{}, fmt.Errorf("get shootout: %w", err)
	}

	newID, err := s.idGen.NewID()
	if err != nil {
		return shootout.Shootout{}, fmt.Errorf("generate shootout id: %w", err)
	}

	so, err := shootout.Begin(newID, g, events, hasExisting)
	if err != nil {
		return shootout.Shootout{}, fmt.Errorf("%w: %v", ErrInvalidState, err)
	}
	if err := s.shootoutRepo.Create(ctx, so); err != nil {
		return shootout.Shootout{}, fmt.Errorf("create shootout: %w", err)
	}
	return so, nil
}

// RecordKick appends one attempt. When the kick decides the shootout, the
// outcome is applied to the game in the same call: end reason penalties,
// winner set, standings views invalidated.
func (s *ShootoutService) RecordKick(ctx context.Context, gameID string, in shootout.KickInput) (shootout.Shootout, shootout.Outcome, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ShootoutService.RecordKick")
	defer span.End()

	g, err := s.requireGame(ctx, gameID)
	if err != nil {
		return shootout.Shootout{}, shootout.Outcome{}, err
	}
	md, exists, err := s.matchdayRepo.GetByID(ctx, g.MatchdayID)
	if err != nil {
		return shootout.Shootout{}, shootout.Outcome{}, fmt.Errorf("get matchday: %w", err)
	}
	if !exists {
		return shootout.Shootout{}, shootout.Outcome{}, fmt.Errorf("%w: game %s references missing matchday %s", ErrConsistency, g.ID, g.MatchdayID)
	}

	so, exists, err := s.shootoutRepo.GetByGame(ctx, gameID)
	if err != nil {
		return shootout.Shootout{}, shootout.Outcome{}, fmt.Errorf("get shootout: %w", err)
	}
	if !exists {
		return shootout.Shootout{}, shootout.Outcome{}, fmt.Errorf("%w: game %s has no shootout", ErrNotFound, gameID)
	}
	kicks, err := s.shootoutRepo.ListKicks(ctx, so.ID)
	if err != nil {
		return shootout.Shootout{}, shootout.Outcome{}, fmt.Errorf("list kicks: %w", err)
	}

	if err := s.requirePlayerOnTeam(ctx, in.PlayerID, in.TeamID); err != nil {
		return shootout.Shootout{}, shootout.Outcome{}, err
	}

	updated, kick, outcome, err := shootout.RecordKick(so, kicks, in, md.Rules)
	if err != nil {
		if errors.Is(err, shootout.ErrShootoutOver) {
			return shootout.Shootout{}, shootout.Outcome{}, fmt.Errorf("%w: %v", ErrInvalidState, err)
		}
		return shootout.Shootout{}, shootout.Outcome{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	kickID, err := s.idGen.NewID()
	if err != nil {
		return shootout.Shootout{}, shootout.Outcome{}, fmt.Errorf("generate kick id: %w", err)
	}
	kick.ID = kickID
	if err := s.shootoutRepo.AppendKick(ctx, kick); err != nil {
		return shootout.Shootout{}, shootout.Outcome{}, fmt.Errorf("append kick: %w", err)
	}
	if err := s.shootoutRepo.Update(ctx, updated); err != nil {
		return shootout.Shootout{}, shootout.Outcome{}, fmt.Errorf("update shootout: %w", err)
	}

	if outcome.Decided {
		decided, decideErr := game.CompleteFromShootout(g, outcome.WinnerTeamID, s.now().UTC())
		if decideErr != nil {
			return shootout.Shootout{}, shootout.Outcome{}, fmt.Errorf("%w: %v", ErrConsistency, decideErr)
		}
		if err := s.gameRepo.Update(ctx, decided); err != nil {
			return shootout.Shootout{}, shootout.Outcome{}, fmt.Errorf("update game after shootout: %w", err)
		}
		if s.views != nil {
			s.views.DeletePrefix(ctx, viewKeyPrefix(g.MatchdayID))
			s.views.Delete(ctx, overallStatsKey)
		}
	}

	return updated, outcome, nil
}

// Get returns the shootout with its ordered kicks.
func (s *ShootoutService) Get(ctx context.Context, gameID string) (shootout.Shootout, []shootout.Kick, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ShootoutService.Get")
	defer span.End()

	if _, err := s.requireGame(ctx, gameID); err != nil {
		return shootout.Shootout{}, nil, err
	}
	so, exists, err := s.shootoutRepo.GetByGame(ctx, gameID)
	if err != nil {
		return shootout.Shootout{}, nil, fmt.Errorf("get shootout: %w", err)
	}
	if !exists {
		return shootout.Shootout{}, nil, fmt.Errorf("%w: game %s has no shootout", ErrNotFound, gameID)
	}
	kicks, err := s.shootoutRepo.ListKicks(ctx, so.ID)
	if err != nil {
		return shootout.Shootout{}, nil, fmt.Errorf("list kicks: %w", err)
	}
	return so, kicks, nil
}

func (s *ShootoutService) requireGame(ctx context.Context, gameID string) (game.Game, error) {
	gameID = strings.TrimSpace(gameID)
	if gameID == "" {
		return game.Game{}, fmt.Errorf("%w: game id is required", ErrInvalidInput)
	}
	g, exists, err := s.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return game.Game{}, fmt.Errorf("get game: %w", err)
	}
	if !exists {
		return game.Game{}, fmt.Errorf("%w: game=%s", ErrNotFound, gameID)
	}
	return g, nil
}

func (s *ShootoutService) requirePlayerOnTeam(ctx context.Context, playerID, teamID string) error {
	if playerID == "" {
		return fmt.Errorf("%w: kicker id is required", ErrInvalidInput)
	}
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
