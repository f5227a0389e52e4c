package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/chess-tournament/internal/config"
	"github.com/riskibarqy/chess-tournament/internal/domain/pairing"
	"github.com/riskibarqy/chess-tournament/internal/domain/player"
	"github.com/riskibarqy/chess-tournament/internal/domain/round"
	"github.com/riskibarqy/chess-tournament/internal/domain/score"
	"github.com/riskibarqy/chess-tournament/internal/domain/tournament"
	cacherepo "github.com/riskibarqy/chess-tournament/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/chess-tournament/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/chess-tournament/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/chess-tournament/internal/interfaces/httpapi"
	"github.com/riskibarqy/chess-tournament/internal/platform/logging"
	"github.com/riskibarqy/chess-tournament/internal/usecase"
)

// repositories is the storage set every service is built from.
type repositories struct {
	players     player.Repository
	tournaments tournament.Repository
	history     pairing.HistoryRepository
	rounds      round.Repository
	matches     round.MatchRepository
	scores      score.Repository
	close       func() error
}

// NewHTTPServer builds the API server. The returned cleanup releases the
// storage backend and must run after the server has shut down.
func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	repos, err := newRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	playerRepo := repos.players
	if cfg.CacheEnabled {
		playerRepo = cacherepo.NewPlayerRepository(repos.players, cfg.CacheTTL)
		logger.Info("player cache enabled", "ttl", cfg.CacheTTL.String())
	}

	ranking := usecase.NewRankingService(repos.tournaments, playerRepo, repos.scores)
	handler := httpapi.NewHandler(
		usecase.NewPlayerService(playerRepo, logger),
		usecase.NewTournamentService(repos.tournaments, playerRepo, repos.history, cfg.DefaultNbRounds, logger),
		usecase.NewRoundService(repos.tournaments, playerRepo, repos.history, repos.rounds, repos.matches, repos.scores, logger),
		ranking,
		usecase.NewReportService(playerRepo, repos.tournaments, repos.rounds, repos.matches, ranking, cfg.ReportWorkers, logger),
		logger,
	)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return server, repos.close, nil
}

func newRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, error) {
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		return newPostgresRepositories(ctx, cfg, logger)
	case config.StorageMemory, "":
		return newMemoryRepositories(ctx, cfg, logger)
	default:
		return repositories{}, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}
}

func newMemoryRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, error) {
	store := memory.NewStore()
	if cfg.SeedDemoPlayers {
		if err := memory.Seed(ctx, store); err != nil {
			return repositories{}, fmt.Errorf("seed memory store: %w", err)
		}
	}
	logger.Info("storage ready", "driver", config.StorageMemory, "demo_players", cfg.SeedDemoPlayers)

	return repositories{
		players:     memory.NewPlayerRepository(store),
		tournaments: memory.NewTournamentRepository(store),
		history:     memory.NewPairingHistoryRepository(store),
		rounds:      memory.NewRoundRepository(store),
		matches:     memory.NewMatchRepository(store),
		scores:      memory.NewScoreRepository(store),
		close:       func() error { return nil },
	}, nil
}

func newPostgresRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, error) {
	db, err := OpenDB(ctx, cfg)
	if err != nil {
		return repositories{}, err
	}
	if cfg.SeedDemoPlayers {
		if err := postgres.BootstrapSeed(ctx, db); err != nil {
			_ = db.Close()
			return repositories{}, fmt.Errorf("seed database: %w", err)
		}
	}
	logger.Info("storage ready",
		"driver", config.StoragePostgres,
		"database", dbNameFromURL(cfg.DBURL),
		"demo_players", cfg.SeedDemoPlayers,
	)

	return repositories{
		players:     postgres.NewPlayerRepository(db),
		tournaments: postgres.NewTournamentRepository(db),
		history:     postgres.NewPairingHistoryRepository(db),
		rounds:      postgres.NewRoundRepository(db),
		matches:     postgres.NewMatchRepository(db),
		scores:      postgres.NewScoreRepository(db),
		close:       db.Close,
	}, nil
}

// OpenDB opens a traced PostgreSQL pool and checks it is reachable.
func OpenDB(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	db, err := otelsqlx.Open("postgres", withApplicationName(cfg.DBURL, cfg.ServiceName),
		otelsql.WithAttributes(attribute.String("db.system", "postgresql")),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxOpenConns)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}
