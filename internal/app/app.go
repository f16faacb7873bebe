package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/riskibarqy/fantasy-league-hub/external/sleeper"
	"github.com/riskibarqy/fantasy-league-hub/internal/config"
	"github.com/riskibarqy/fantasy-league-hub/internal/domain/adp"
	"github.com/riskibarqy/fantasy-league-hub/internal/domain/draft"
	"github.com/riskibarqy/fantasy-league-hub/internal/domain/snapshot"
	memoryblob "github.com/riskibarqy/fantasy-league-hub/internal/infrastructure/objectstore/memory"
	"github.com/riskibarqy/fantasy-league-hub/internal/infrastructure/objectstore/r2"
	cacherepo "github.com/riskibarqy/fantasy-league-hub/internal/infrastructure/repository/cache"
	memoryrepo "github.com/riskibarqy/fantasy-league-hub/internal/infrastructure/repository/memory"
	postgresrepo "github.com/riskibarqy/fantasy-league-hub/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/fantasy-league-hub/internal/interfaces/httpapi"
	"github.com/riskibarqy/fantasy-league-hub/internal/platform/cache"
	"github.com/riskibarqy/fantasy-league-hub/internal/platform/id"
	"github.com/riskibarqy/fantasy-league-hub/internal/platform/logging"
	"github.com/riskibarqy/fantasy-league-hub/internal/platform/resilience"
	"github.com/riskibarqy/fantasy-league-hub/internal/usecase"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
)

// Services is the wired use case layer shared by the HTTP server and the CLI.
type Services struct {
	Source    draft.Source
	Directory *usecase.LeagueDirectoryService
	Resolver  *usecase.DraftResolver
	ADP       *usecase.ADPService
	Snapshots *usecase.SnapshotService

	closers []func() error
}

// Close releases storage handles in reverse order of acquisition.
func (s *Services) Close() error {
	var firstErr error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	s.closers = nil
	return firstErr
}

func NewServices(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Services, error) {
	if logger == nil {
		logger = logging.Default()
	}

	source := sleeper.NewClient(sleeper.ClientConfig{
		BaseURL:        cfg.SleeperBaseURL,
		Sport:          cfg.SleeperSport,
		Timeout:        cfg.SleeperTimeout,
		MaxRetries:     cfg.SleeperMaxRetries,
		RetryBaseDelay: cfg.SleeperRetryBaseDelay,
		UserAgent:      cfg.ServiceName + "/" + cfg.ServiceVersion,
		Logger:         logger.Named("sleeper"),
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.SleeperCircuitEnabled,
			FailureThreshold: cfg.SleeperCircuitFailureCount,
			OpenTimeout:      cfg.SleeperCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.SleeperCircuitHalfOpenMaxReq,
		},
	})

	var results *cache.Store[adp.LeagueResult]
	if cfg.CacheEnabled {
		results = cache.NewStore[adp.LeagueResult](cfg.CacheTTL, cache.WithMaxEntries(cfg.CacheMaxEntries))
	}

	adpLogger := logger.Named("adp")
	resolver := usecase.NewDraftResolver(source, adpLogger)
	adpService := usecase.NewADPService(resolver, results, usecase.ADPConfig{
		FetchConcurrency: cfg.ADPFetchConcurrency,
	}, adpLogger)

	services := &Services{
		Source:    source,
		Directory: usecase.NewLeagueDirectoryService(source),
		Resolver:  resolver,
		ADP:       adpService,
	}

	repo, err := services.snapshotRepository(cfg, logger)
	if err != nil {
		_ = services.Close()
		return nil, err
	}
	blobs, err := newBlobStore(ctx, cfg, logger)
	if err != nil {
		_ = services.Close()
		return nil, err
	}
	groups, err := config.LoadSnapshotGroups(cfg.ADPGroupsFile)
	if err != nil {
		_ = services.Close()
		return nil, err
	}

	services.Snapshots = usecase.NewSnapshotService(
		adpService,
		repo,
		blobs,
		id.NewUUIDGenerator(),
		usecase.SnapshotConfig{Groups: groups, RebuildWorkers: cfg.SnapshotRebuildWorkers},
		logger.Named("snapshot"),
	)

	logger.Info("services wired",
		"storage_driver", cfg.StorageDriver,
		"blob_driver", cfg.BlobDriver,
		"cache_enabled", cfg.CacheEnabled,
		"snapshot_groups", len(groups),
	)
	return services, nil
}

func (s *Services) snapshotRepository(cfg config.Config, logger *logging.Logger) (snapshot.Repository, error) {
	var repo snapshot.Repository
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		db, err := openPostgres(cfg)
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, db.Close)
		logger.Info("postgres connected", "db_name", dbNameFromURL(cfg.DBURL))
		repo = postgresrepo.NewSnapshotRepository(db)
	default:
		repo = memoryrepo.NewSnapshotRepository()
	}

	if cfg.CacheEnabled {
		repo = cacherepo.NewSnapshotRepository(repo, cfg.CacheTTL)
	}
	return repo, nil
}

func openPostgres(cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	var (
		db  *sqlx.DB
		err error
	)
	if cfg.DBTraceEnabled {
		db, err = otelsqlx.Open("postgres", dsn,
			otelsql.WithDBSystem("postgresql"),
			otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
			otelsql.WithQueryFormatter(formatDBQueryForTrace),
		)
	} else {
		db, err = sqlx.Open("postgres", dsn)
	}
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return db, nil
}

func newBlobStore(ctx context.Context, cfg config.Config, logger *logging.Logger) (snapshot.BlobStore, error) {
	if cfg.BlobDriver != config.BlobR2 {
		return memoryblob.NewStore(), nil
	}

	store, err := r2.New(ctx, r2.Config{
		AccountID:       cfg.R2AccountID,
		AccessKeyID:     cfg.R2AccessKeyID,
		SecretAccessKey: cfg.R2SecretAccessKey,
		Bucket:          cfg.R2Bucket,
		Endpoint:        cfg.R2Endpoint,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("create r2 store: %w", err)
	}
	return store, nil
}

// NewHTTPServer wires the API. The returned Services must be closed after the server stops.
func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*http.Server, *Services, error) {
	if cfg.HTTPAddr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	services, err := NewServices(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	handler := httpapi.NewHandler(services.Directory, services.Resolver, services.ADP, services.Snapshots, logger.Named("http"))
	router := httpapi.NewRouter(handler, logger.Named("http"), cfg.SwaggerEnabled, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
	}

	return server, services, nil
}
