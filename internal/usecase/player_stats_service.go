package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/sourcegraph/conc/pool"

	"github.com/kickoffhq/matchday/internal/domain/game"
	"github.com/kickoffhq/matchday/internal/domain/matchday"
	"github.com/kickoffhq/matchday/internal/domain/player"
	"github.com/kickoffhq/matchday/internal/domain/playerstats"
	"github.com/kickoffhq/matchday/internal/domain/shootout"
	"github.com/kickoffhq/matchday/internal/platform/cache"
)

const overallLoadConcurrency = 4

// PlayerStatsService serves per-matchday and cross-matchday player
// aggregates. The overall view fans out one loader per matchday, bounded by
// overallLoadConcurrency.
type PlayerStatsService struct {
	matchdayRepo matchday.Repository
	playerRepo   player.Repository
	gameRepo     game.Repository
	shootoutRepo shootout.Repository
	views        *cache.Store
}

func NewPlayerStatsService(
	matchdayRepo matchday.Repository,
	playerRepo player.Repository,
	gameRepo game.Repository,
	shootoutRepo shootout.Repository,
	views *cache.Store,
) *PlayerStatsService {
	return &PlayerStatsService{
		matchdayRepo: matchdayRepo,
		playerRepo:   playerRepo,
		gameRepo:     gameRepo,
		shootoutRepo: shootoutRepo,
		views:        views,
	}
}

func (s *PlayerStatsService) MatchdayStats(ctx context.Context, matchdayID string) ([]playerstats.PlayerStat, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerStatsService.MatchdayStats")
	defer span.End()

	matchdayID = strings.TrimSpace(matchdayID)
	if matchdayID == "" {
		return nil, fmt.Errorf("%w: matchday id is required", ErrInvalidInput)
	}
	if _, exists, err := s.matchdayRepo.GetByID(ctx, matchdayID); err != nil {
		return nil, fmt.Errorf("get matchday: %w", err)
	} else if !exists {
		return nil, fmt.Errorf("%w: matchday=%s", ErrNotFound, matchdayID)
	}

	load := func(ctx context.Context) (any, error) {
		in, err := s.loadInput(ctx, matchdayID)
		if err != nil {
			return nil, err
		}
		return playerstats.Compute(in), nil
	}

	if s.views == nil {
		value, err := load(ctx)
		if err != nil {
			return nil, err
		}
		return value.([]playerstats.PlayerStat), nil
	}

	value, err := s.views.GetOrLoad(ctx, playerStatsKey(matchdayID), load)
	if err != nil {
		return nil, err
	}
	return value.([]playerstats.PlayerStat), nil
}

func (s *PlayerStatsService) TopScorers(ctx context.Context, matchdayID string, n int) ([]playerstats.PlayerStat, error) {
	stats, err := s.MatchdayStats(ctx, matchdayID)
	if err != nil {
		return nil, err
	}
	return playerstats.TopScorers(stats, n), nil
}

func (s *PlayerStatsService) TopAssists(ctx context.Context, matchdayID string, n int) ([]playerstats.PlayerStat, error) {
	stats, err := s.MatchdayStats(ctx, matchdayID)
	if err != nil {
		return nil, err
	}
	return playerstats.TopAssists(stats, n), nil
}

// OverallStats aggregates across every matchday, matching players by name.
func (s *PlayerStatsService) OverallStats(ctx context.Context) ([]playerstats.OverallPlayerStat, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerStatsService.OverallStats")
	defer span.End()

	load := func(ctx context.Context) (any, error) {
		ids, err := s.matchdayRepo.ListIDs(ctx)
		if err != nil {
			return nil, fmt.Errorf("list matchday ids: %w", err)
		}

		p := pool.NewWithResults[playerstats.Input]().
			WithContext(ctx).
			WithMaxGoroutines(overallLoadConcurrency)
		for _, matchdayID := range ids {
			p.Go(func(ctx context.Context) (playerstats.Input, error) {
				return s.loadInput(ctx, matchdayID)
			})
		}
		inputs, err := p.Wait()
		if err != nil {
			return nil, err
		}
		return playerstats.ComputeOverall(inputs), nil
	}

	if s.views == nil {
		value, err := load(ctx)
		if err != nil {
			return nil, err
		}
		return value.([]playerstats.OverallPlayerStat), nil
	}

	value, err := s.views.GetOrLoad(ctx, overallStatsKey, load)
	if err != nil {
		return nil, err
	}
	return value.([]playerstats.OverallPlayerStat), nil
}

func (s *PlayerStatsService) loadInput(ctx context.Context, matchdayID string) (playerstats.Input, error) {
	games, err := s.gameRepo.ListByMatchday(ctx, matchdayID)
	if err != nil {
		return playerstats.Input{}, fmt.Errorf("list games: %w", err)
	}

	eventsByGame := make(map[string][]game.GoalEvent, len(games))
	gameIDs := make([]string, 0, len(games))
	for _, g := range games {
		events, err := s.gameRepo.ListEvents(ctx, g.ID)
		if err != nil {
			return playerstats.Input{}, fmt.Errorf("list events for game %s: %w", g.ID, err)
		}
		eventsByGame[g.ID] = events
		gameIDs = append(gameIDs, g.ID)
	}

	kicksByGame, err := s.shootoutRepo.ListKicksByGames(ctx, gameIDs)
	if err != nil {
		return playerstats.Input{}, fmt.Errorf("list kicks by games: %w", err)
	}

	players, err := s.playerRepo.ListByMatchday(ctx, matchdayID)
	if err != nil {
		return playerstats.Input{}, fmt.Errorf("list players: %w", err)
	}

	return playerstats.Input{
		MatchdayID:   matchdayID,
		Games:        games,
		EventsByGame: eventsByGame,
		KicksByGame:  kicksByGame,
		Players:      players,
	}, nil
}
