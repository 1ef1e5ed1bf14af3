package usecase

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/kickoffhq/matchday/internal/domain/matchday"
	"github.com/kickoffhq/matchday/internal/domain/player"
	"github.com/kickoffhq/matchday/internal/domain/rules"
	"github.com/kickoffhq/matchday/internal/domain/team"
	"github.com/kickoffhq/matchday/internal/infrastructure/repository/memory"
	"github.com/kickoffhq/matchday/internal/platform/cache"
)

var testNow = time.Date(2026, 8, 21, 19, 0, 0, 0, time.UTC)

// seqGen hands out deterministic ids so tests can assert on them.
type seqGen struct {
	mu sync.Mutex
	n  int
}

func (g *seqGen) NewID() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("id-%03d", g.n), nil
}

type testEnv struct {
	store     *memory.Store
	views     *cache.Store
	matchdays *MatchdayService
	games     *GameService
	shootouts *ShootoutService
	standings *StandingsService
	stats     *PlayerStatsService
	recompute *RecomputeService

	gameRepo     *memory.GameRepository
	shootoutRepo *memory.ShootoutRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := memory.NewStore()
	views := cache.NewStore(time.Minute)
	gen := &seqGen{}

	matchdayRepo := memory.NewMatchdayRepository(store)
	teamRepo := memory.NewTeamRepository(store)
	playerRepo := memory.NewPlayerRepository(store)
	gameRepo := memory.NewGameRepository(store)
	shootoutRepo := memory.NewShootoutRepository(store)

	e := &testEnv{
		store:        store,
		views:        views,
		matchdays:    NewMatchdayService(matchdayRepo, teamRepo, playerRepo, gameRepo, gen, views),
		games:        NewGameService(matchdayRepo, teamRepo, playerRepo, gameRepo, gen, views),
		shootouts:    NewShootoutService(matchdayRepo, gameRepo, playerRepo, shootoutRepo, gen, views),
		standings:    NewStandingsService(matchdayRepo, teamRepo, gameRepo, views),
		stats:        NewPlayerStatsService(matchdayRepo, playerRepo, gameRepo, shootoutRepo, views),
		recompute:    NewRecomputeService(matchdayRepo, gameRepo, views, 2),
		gameRepo:     gameRepo,
		shootoutRepo: shootoutRepo,
	}

	clock := func() time.Time { return testNow }
	e.matchdays.now = clock
	e.games.now = clock
	e.shootouts.now = clock
	e.recompute.now = clock

	return e
}

// seedMatchday creates a matchday with the given rules plus teams with one
// player each, named after the team.
func (e *testEnv) seedMatchday(t *testing.T, r rules.Rules, teamNames ...string) (matchday.Matchday, []team.Team, []player.Player) {
	t.Helper()

	md, err := e.matchdays.CreateMatchday(t.Context(), CreateMatchdayInput{
		Name:  "Friday Night Fives",
		Rules: &r,
	})
	if err != nil {
		t.Fatalf("create matchday: %v", err)
	}

	teams := make([]team.Team, 0, len(teamNames))
	players := make([]player.Player, 0, len(teamNames))
	for _, name := range teamNames {
		tm, err := e.matchdays.AddTeam(t.Context(), md.ID, name)
		if err != nil {
			t.Fatalf("add team %s: %v", name, err)
		}
		teams = append(teams, tm)

		p, err := e.matchdays.AddPlayer(t.Context(), tm.ID, name+" Captain")
		if err != nil {
			t.Fatalf("add player for %s: %v", name, err)
		}
		players = append(players, p)
	}
	return md, teams, players
}

// looseRules keeps rosters and shootouts small so fixtures stay short.
func looseRules() rules.Rules {
	r := rules.Default()
	r.RosterSize = 1
	r.MinPenaltyKicks = 2
	return r
}
