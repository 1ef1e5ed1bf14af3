package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/kickoffhq/matchday/internal/domain/game"
	"github.com/kickoffhq/matchday/internal/domain/matchday"
	"github.com/kickoffhq/matchday/internal/platform/cache"
)

const (
	recomputeStatusClean    = "clean"
	recomputeStatusRepaired = "repaired"
	recomputeStatusFailed   = "failed"
)

const defaultRecomputeWorkers = 8

// RecomputeService is the internal repair job: it re-derives every game's
// cached state from its ledger and fixes whatever drifted. Useful after a
// crash between a ledger append and the projection update, or after manual
// database surgery.
type RecomputeService struct {
	matchdayRepo   matchday.Repository
	gameRepo       game.Repository
	views          *cache.Store
	defaultWorkers int
	now            func() time.Time
}

func NewRecomputeService(
	matchdayRepo matchday.Repository,
	gameRepo game.Repository,
	views *cache.Store,
	defaultWorkers int,
) *RecomputeService {
	if defaultWorkers <= 0 {
		defaultWorkers = defaultRecomputeWorkers
	}
	return &RecomputeService{
		matchdayRepo:   matchdayRepo,
		gameRepo:       gameRepo,
		views:          views,
		defaultWorkers: defaultWorkers,
		now:            time.Now,
	}
}

type RecomputeInput struct {
	// MatchdayID restricts the run to one matchday; empty means all.
	MatchdayID string
	MaxWorkers int
}

type RecomputeGameResult struct {
	MatchdayID string
	GameID     string
	Status     string
	Message    string
}

type RecomputeResult struct {
	GameCount     int
	WorkerCount   int
	CleanCount    int
	RepairedCount int
	FailedCount   int
	Games         []RecomputeGameResult
}

type recomputeTask struct {
	game     game.Game
	matchday matchday.Matchday
}

func (s *RecomputeService) Recompute(ctx context.Context, input RecomputeInput) (RecomputeResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RecomputeService.Recompute")
	defer span.End()

	matchdays, err := s.resolveMatchdays(ctx, input.MatchdayID)
	if err != nil {
		return RecomputeResult{}, err
	}

	tasks := make([]recomputeTask, 0)
	for _, md := range matchdays {
		games, listErr := s.gameRepo.ListByMatchday(ctx, md.ID)
		if listErr != nil {
			return RecomputeResult{}, fmt.Errorf("list games for matchday %s: %w", md.ID, listErr)
		}
		for _, g := range games {
			tasks = append(tasks, recomputeTask{game: g, matchday: md})
		}
	}

	workerCount := input.MaxWorkers
	if workerCount <= 0 {
		workerCount = s.defaultWorkers
	}
	if workerCount > len(tasks) && len(tasks) > 0 {
		workerCount = len(tasks)
	}

	result := RecomputeResult{
		GameCount:   len(tasks),
		WorkerCount: workerCount,
		Games:       make([]RecomputeGameResult, 0, len(tasks)),
	}
	if len(tasks) == 0 {
		return result, nil
	}

	rows := make(chan RecomputeGameResult, len(tasks))

	var cleanCount atomic.Int32
	var repairedCount atomic.Int32
	var failedCount atomic.Int32

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return RecomputeResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for _, task := range tasks {
		task := task
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			row := RecomputeGameResult{
				MatchdayID: task.game.MatchdayID,
				GameID:     task.game.ID,
			}
			status, message := s.recomputeGame(ctx, task)
			row.Status = status
			row.Message = message

			switch status {
			case recomputeStatusClean:
				cleanCount.Add(1)
			case recomputeStatusRepaired:
				repairedCount.Add(1)
			default:
				failedCount.Add(1)
			}

			rows <- row
		}); err != nil {
			workers.Done()
			return RecomputeResult{}, fmt.Errorf("submit game to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(rows)

	for row := range rows {
		result.Games = append(result.Games, row)
	}
	sort.SliceStable(result.Games, func(i, j int) bool {
		if result.Games[i].MatchdayID != result.Games[j].MatchdayID {
			return result.Games[i].MatchdayID < result.Games[j].MatchdayID
		}
		return result.Games[i].GameID < result.Games[j].GameID
	})

	result.CleanCount = int(cleanCount.Load())
	result.RepairedCount = int(repairedCount.Load())
	result.FailedCount = int(failedCount.Load())

	if result.RepairedCount > 0 && s.views != nil {
		for _, md := range matchdays {
			s.views.DeletePrefix(ctx, viewKeyPrefix(md.ID))
		}
		s.views.Delete(ctx, overallStatsKey)
	}
	return result, nil
}

func (s *RecomputeService) recomputeGame(ctx context.Context, task recomputeTask) (string, string) {
	events, err := s.gameRepo.ListEvents(ctx, task.game.ID)
	if err != nil {
		return recomputeStatusFailed, fmt.Sprintf("list events: %v", err)
	}
	if err := game.CheckLedger(task.game, events); err != nil {
		return recomputeStatusFailed, fmt.Sprintf("ledger check: %v", err)
	}

	projected := game.Project(task.game, events, task.matchday.Rules, s.now().UTC())
	if projected == task.game {
		return recomputeStatusClean, ""
	}

	if err := s.gameRepo.Update(ctx, projected); err != nil {
		return recomputeStatusFailed, fmt.Sprintf("persist projection: %v", err)
	}
	return recomputeStatusRepaired, fmt.Sprintf("score %d-%d status %s", projected.HomeScore, projected.AwayScore, projected.Status)
}

func (s *RecomputeService) resolveMatchdays(ctx context.Context, matchdayID string) ([]matchday.Matchday, error) {
	matchdayID = strings.TrimSpace(matchdayID)
	if matchdayID != "" {
		md, exists, err := s.matchdayRepo.GetByID(ctx, matchdayID)
		if err != nil {
			return nil, fmt.Errorf("get matchday: %w", err)
		}
		if !exists {
			return nil, fmt.Errorf("%w: matchday=%s", ErrNotFound, matchdayID)
		}
		return []matchday.Matchday{md}, nil
	}

	matchdays, err := s.matchdayRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list matchdays: %w", err)
	}
	return matchdays, nil
}
