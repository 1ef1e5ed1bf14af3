package app

import (
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"

	"github.com/kickoffhq/matchday/internal/config"
	"github.com/kickoffhq/matchday/internal/domain/game"
	"github.com/kickoffhq/matchday/internal/domain/matchday"
	"github.com/kickoffhq/matchday/internal/domain/player"
	"github.com/kickoffhq/matchday/internal/domain/shootout"
	"github.com/kickoffhq/matchday/internal/domain/team"
	"github.com/kickoffhq/matchday/internal/infrastructure/repository/memory"
	"github.com/kickoffhq/matchday/internal/infrastructure/repository/postgres"
	"github.com/kickoffhq/matchday/internal/interfaces/httpapi"
	"github.com/kickoffhq/matchday/internal/platform/cache"
	idgen "github.com/kickoffhq/matchday/internal/platform/id"
	"github.com/kickoffhq/matchday/internal/platform/logging"
	"github.com/kickoffhq/matchday/internal/usecase"
)

type repositories struct {
	matchday matchday.Repository
	team     team.Repository
	player   player.Repository
	game     game.Repository
	shootout shootout.Repository
}

// NewHTTPServer wires storage, services and the router into a ready server.
// The returned close function releases storage resources and must be called
// after the server has shut down.
func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}

	repos, closeStorage, err := buildRepositories(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	var views *cache.Store
	if cfg.CacheEnabled {
		views = cache.NewStore(cfg.CacheTTL)
	}

	gen := idgen.NewRandomGenerator()
	matchdaySvc := usecase.NewMatchdayService(repos.matchday, repos.team, repos.player, repos.game, gen, views)
	gameSvc := usecase.NewGameService(repos.matchday, repos.team, repos.player, repos.game, gen, views)
	shootoutSvc := usecase.NewShootoutService(repos.matchday, repos.game, repos.player, repos.shootout, gen, views)
	standingsSvc := usecase.NewStandingsService(repos.matchday, repos.team, repos.game, views)
	playerStatsSvc := usecase.NewPlayerStatsService(repos.matchday, repos.player, repos.game, repos.shootout, views)
	recomputeSvc := usecase.NewRecomputeService(repos.matchday, repos.game, views, cfg.RecomputeWorkers)

	handler := httpapi.NewHandler(
		matchdaySvc,
		gameSvc,
		shootoutSvc,
		standingsSvc,
		playerStatsSvc,
		recomputeSvc,
		logger,
	)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	if server.Addr == "" {
		closeErr := closeStorage()
		if closeErr != nil {
			logger.Warn("close storage", "error", closeErr)
		}
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, closeStorage, nil
}

func buildRepositories(cfg config.Config, logger *logging.Logger) (repositories, func() error, error) {
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		db, err := openDB(cfg)
		if err != nil {
			return repositories{}, nil, err
		}
		logger.Info("storage ready", "driver", config.StoragePostgres, "database", dbNameFromURL(cfg.DBURL))
		return repositories{
			matchday: postgres.NewMatchdayRepository(db),
			team:     postgres.NewTeamRepository(db),
			player:   postgres.NewPlayerRepository(db),
			game:     postgres.NewGameRepository(db),
			shootout: postgres.NewShootoutRepository(db),
		}, db.Close, nil
	default:
		store := memory.NewStore()
		if cfg.SeedDemoData {
			if err := memory.Seed(store); err != nil {
				return repositories{}, nil, fmt.Errorf("seed demo data: %w", err)
			}
			logger.Info("demo data seeded", "matchday_id", memory.MatchdayIDFridayNight)
		}
		logger.Info("storage ready", "driver", config.StorageMemory)
		return repositories{
			matchday: memory.NewMatchdayRepository(store),
			team:     memory.NewTeamRepository(store),
			player:   memory.NewPlayerRepository(store),
			game:     memory.NewGameRepository(store),
			shootout: memory.NewShootoutRepository(store),
		}, func() error { return nil }, nil
	}
}

func openDB(cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)
	db, err := otelsqlx.Connect("postgres", dsn,
		otelsql.WithAttributes(semconv.DBSystemPostgreSQL),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
	)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	return db, nil
}
