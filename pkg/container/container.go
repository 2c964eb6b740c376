package container

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"

	"coursemanager-backend/internal/config"
	authorRepo "coursemanager-backend/internal/domains/author/repository"
	authorService "coursemanager-backend/internal/domains/author/service"
	infraCache "coursemanager-backend/internal/infrastructure/cache"
	"coursemanager-backend/internal/infrastructure/database"
	"coursemanager-backend/pkg/cache"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container holds every dependency of the catalog, root of the dependency graph
type Container struct {
	// Infrastructure, one instance for the process lifetime
	Config   *config.Config
	Postgres *database.PostgresDB // set when DB_DRIVER=postgres
	SQLite   *sql.DB              // set when DB_DRIVER=sqlite
	Cache    cache.Cache          // nil when caching is disabled
	Logger   zerolog.Logger

	// Repositories
	AuthorStore authorRepo.Store
	Countries   *authorRepo.CountryCatalog

	// Services
	AuthorService *authorService.AuthorService

	redis *infraCache.RedisCache
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer loads the configuration from the environment and builds the graph.
func NewContainer(ctx context.Context, logger zerolog.Logger) (*Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return NewContainerWithConfig(ctx, cfg, logger)
}

// NewContainerWithConfig builds the graph from cfg.
//
// Order matters:
// 1. Storage (PostgreSQL or SQLite) - depends on Config
// 2. Cache - depends on Config, optional
// 3. Repositories - depend on storage and cache
// 4. Services - depend on repositories
func NewContainerWithConfig(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*Container, error) {
	c := &Container{
		Config: cfg,
		Logger: logger,
	}

	// STEP 1: STORAGE
	if err := c.initStorage(ctx); err != nil {
		c.Cleanup()
		return nil, err
	}

	// STEP 2: CACHE
	c.initCache(ctx)

	// STEP 3: REPOSITORIES
	c.initRepositories()

	// STEP 4: SERVICES
	c.initServices()

	logger.Info().
		Str("app", cfg.App.Name).
		Str("version", cfg.App.Version).
		Str("driver", cfg.Database.Driver).
		Bool("cache", c.Cache != nil).
		Msg("container initialized")

	return c, nil
}

// ========================================
// PRIVATE INITIALIZATION METHODS
// ========================================

func (c *Container) initStorage(ctx context.Context) error {
	switch c.Config.Database.Driver {
	case config.DriverSQLite:
		db, err := database.OpenSQLite(ctx, c.Config.Database.SQLitePath)
		if err != nil {
			return fmt.Errorf("failed to open sqlite: %w", err)
		}
		c.SQLite = db
		c.AuthorStore = authorRepo.NewSQLiteStore(db)
		c.Logger.Info().Str("path", c.Config.Database.SQLitePath).Msg("sqlite opened")

	default:
		dbConfig, err := config.LoadDatabaseConfig()
		if err != nil {
			return fmt.Errorf("failed to load database config: %w", err)
		}

		db := database.NewPostgresDB(dbConfig, c.Logger)
		if err := db.Connect(ctx); err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		c.Postgres = db
		c.AuthorStore = authorRepo.NewPostgresStore(db.Pool)
	}

	return nil
}

// initCache connects Redis when enabled. A Redis failure is not critical:
// the catalog falls back to the store.
func (c *Container) initCache(ctx context.Context) {
	if !c.Config.Redis.Enabled {
		return
	}

	rc := infraCache.NewRedisCache(c.Config.Redis.Host, c.Config.Redis.Password, c.Config.Redis.DB, c.Logger)
	if err := rc.Connect(ctx); err != nil {
		c.Logger.Warn().Err(err).Msg("redis connection failed, country cache disabled")
		_ = rc.Close()
		return
	}

	c.redis = rc
	c.Cache = rc
}

func (c *Container) initRepositories() {
	c.Countries = authorRepo.NewCountryCatalog(c.AuthorStore, c.Cache, c.Config.Catalog.CountryCacheTTL)
}

func (c *Container) initServices() {
	c.AuthorService = authorService.NewAuthorService(
		c.AuthorStore,
		c.Countries,
		c.Config.Catalog.DefaultCountryID,
		c.Logger.With().Str("component", "author_service").Logger(),
	)
}

// ========================================
// HELPER METHODS
// ========================================

// EnsureSchema creates the catalog tables on the configured store
func (c *Container) EnsureSchema(ctx context.Context) error {
	if c.SQLite != nil {
		return database.EnsureSQLiteSchema(ctx, c.SQLite)
	}
	return database.EnsurePostgresSchema(ctx, c.Postgres.Pool)
}

// Ping checks the configured store
func (c *Container) Ping(ctx context.Context) error {
	if c.SQLite != nil {
		return c.SQLite.PingContext(ctx)
	}
	return c.Postgres.Ping(ctx)
}

// Cleanup releases the database and Redis connections
func (c *Container) Cleanup() {
	if c.Postgres != nil {
		_ = c.Postgres.Close()
	}

	if c.SQLite != nil {
		if err := c.SQLite.Close(); err != nil {
			c.Logger.Warn().Err(err).Msg("failed to close sqlite")
		}
		c.SQLite = nil
	}

	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			c.Logger.Warn().Err(err).Msg("failed to close redis")
		}
		c.redis = nil
		c.Cache = nil
	}

	c.Logger.Debug().Msg("container cleanup completed")
}
