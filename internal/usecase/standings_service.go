package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/kickoffhq/matchday/internal/domain/game"
	"github.com/kickoffhq/matchday/internal/domain/matchday"
	"github.com/kickoffhq/matchday/internal/domain/queue"
	"github.com/kickoffhq/matchday/internal/domain/standings"
	"github.com/kickoffhq/matchday/internal/domain/team"
	"github.com/kickoffhq/matchday/internal/platform/cache"
)

// StandingsService serves the matchday table and the winner-stays pairing
// suggestion. Standings are recomputed from the ledgers on demand and held
// in the view cache until the next scoring write invalidates them.
type StandingsService struct {
	matchdayRepo matchday.Repository
	teamRepo     team.Repository
	gameRepo     game.Repository
	views        *cache.Store
}

func NewStandingsService(
	matchdayRepo matchday.Repository,
	teamRepo team.Repository,
	gameRepo game.Repository,
	views *cache.Store,
) *StandingsService {
	return &StandingsService{
		matchdayRepo: matchdayRepo,
		teamRepo:     teamRepo,
		gameRepo:     gameRepo,
		views:        views,
	}
}

func (s *StandingsService) Standings(ctx context.Context, matchdayID string) ([]standings.TeamStanding, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.Standings")
	defer span.End()

	md, err := s.requireMatchday(ctx, matchdayID)
	if err != nil {
		return nil, err
	}

	load := func(ctx context.Context) (any, error) {
		teams, err := s.teamRepo.ListByMatchday(ctx, matchdayID)
		if err != nil {
			return nil, fmt.Errorf("list teams: %w", err)
		}
		games, eventsByGame, err := s.loadLedgers(ctx, matchdayID)
		if err != nil {
			return nil, err
		}
		return standings.Compute(games, eventsByGame, teams, md.Rules), nil
	}

	if s.views == nil {
		value, err := load(ctx)
		if err != nil {
			return nil, err
		}
		return value.([]standings.TeamStanding), nil
	}

	value, err := s.views.GetOrLoad(ctx, standingsKey(matchdayID), load)
	if err != nil {
		return nil, err
	}
	return value.([]standings.TeamStanding), nil
}

// SuggestNextGame proposes the next winner-stays pairing for a three-team
// matchday. The suggestion is advisory and never cached; it depends on
// completion order, which a scoring edit can change at any moment.
func (s *StandingsService) SuggestNextGame(ctx context.Context, matchdayID string) (queue.Suggestion, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.SuggestNextGame")
	defer span.End()

	if _, err := s.requireMatchday(ctx, matchdayID); err != nil {
		return queue.Suggestion{}, err
	}

	teams, err := s.teamRepo.ListByMatchday(ctx, matchdayID)
	if err != nil {
		return queue.Suggestion{}, fmt.Errorf("list teams: %w", err)
	}
	games, err := s.gameRepo.ListByMatchday(ctx, matchdayID)
	if err != nil {
		return queue.Suggestion{}, fmt.Errorf("list games: %w", err)
	}

	completed := make([]game.Game, 0, len(games))
	for _, g := range games {
		if g.Status == game.StatusCompleted {
			completed = append(completed, g)
		}
	}
	sort.SliceStable(completed, func(i, j int) bool {
		switch {
		case completed[i].EndedAt == nil:
			return true
		case completed[j].EndedAt == nil:
			return false
		default:
			return completed[i].EndedAt.Before(*completed[j].EndedAt)
		}
	})

	suggestion, err := queue.Next(completed, teams)
	if err != nil {
		return queue.Suggestion{}, fmt.Errorf("%w: %v", ErrInvalidState, err)
	}
	return suggestion, nil
}

func (s *StandingsService) requireMatchday(ctx context.Context, matchdayID string) (matchday.Matchday, error) {
	matchdayID = strings.TrimSpace(matchdayID)
	if matchdayID == "" {
		return matchday.Matchday{}, fmt.Errorf("%w: matchday id is required", ErrInvalidInput)
	}
	md, exists, err := s.matchdayRepo.GetByID(ctx, matchdayID)
	if err != nil {
		return matchday.Matchday{}, fmt.Errorf("get matchday: %w", err)
	}
	if !exists {
		return matchday.Matchday{}, fmt.Errorf("%w: matchday=%s", ErrNotFound, matchdayID)
	}
	return md, nil
}

func (s *StandingsService) loadLedgers(ctx context.Context, matchdayID string) ([]game.Game, map[string][]game.GoalEvent, error) {
	games, err := s.gameRepo.ListByMatchday(ctx, matchdayID)
	if err != nil {
		return nil, nil, fmt.Errorf("list games: %w", err)
	}
	eventsByGame := make(map[string][]game.GoalEvent, len(games))
	for _, g := range games {
		events, err := s.gameRepo.ListEvents(ctx, g.ID)
		if err != nil {
			return nil, nil, fmt.Errorf("list events for game %s: %w", g.ID, err)
		}
		eventsByGame[g.ID] = events
	}
	return games, eventsByGame, nil
}
