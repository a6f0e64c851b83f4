// Package app provides dependency injection container for assembling application components.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"gocloud.dev/blob"

	"github.com/allisson/shepatra/internal/config"
	"github.com/allisson/shepatra/internal/database"
	"github.com/allisson/shepatra/internal/http"
	"github.com/allisson/shepatra/internal/i18n"
	"github.com/allisson/shepatra/internal/metrics"
	recipeService "github.com/allisson/shepatra/internal/recipe/service"
	recipeUseCase "github.com/allisson/shepatra/internal/recipe/usecase"
)

// Container holds all application dependencies and provides methods to access them.
// Components are created on first access.
type Container struct {
	config    *config.Config
	logOutput io.Writer

	// Infrastructure
	logger *slog.Logger
	db     *sql.DB
	bucket *blob.Bucket

	// Managers
	txManager database.TxManager

	// Recipes
	recipeRepo     recipeUseCase.RecipeRepository
	chainExecutor  recipeService.ChainExecutor
	recipeUseCase  recipeUseCase.RecipeUseCase
	catalog        *i18n.Catalog
	metricsProv    *metrics.Provider
	businessMetric metrics.BusinessMetrics

	// Servers
	httpServer    *http.Server
	metricsServer *http.MetricsServer

	mu                 sync.Mutex
	loggerInit         sync.Once
	dbInit             sync.Once
	bucketInit         sync.Once
	txManagerInit      sync.Once
	recipeRepoInit     sync.Once
	chainExecutorInit  sync.Once
	recipeUseCaseInit  sync.Once
	catalogInit        sync.Once
	metricsInit        sync.Once
	businessMetricInit sync.Once
	httpServerInit     sync.Once
	metricsServerInit  sync.Once
	initErrors         map[string]error
}

// Option customizes a Container.
type Option func(*Container)

// WithLogOutput sends logs to w instead of stdout. Interactive commands log to stderr so
// prompts stay readable.
func WithLogOutput(w io.Writer) Option {
	return func(c *Container) {
		c.logOutput = w
	}
}

// NewContainer creates a new dependency injection container with the provided configuration.
func NewContainer(cfg *config.Config, opts ...Option) *Container {
	c := &Container{
		config:     cfg,
		logOutput:  os.Stdout,
		initErrors: make(map[string]error),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the structured logger, leveled by LOG_LEVEL.
func (c *Container) Logger() *slog.Logger {
	c.loggerInit.Do(func() {
		c.logger = c.initLogger()
	})
	return c.logger
}

// storeErr records the error of a failed initialization.
func (c *Container) storeErr(component string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.initErrors[component] = err
}

// loadErr returns the error recorded for component, if any.
func (c *Container) loadErr(component string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.initErrors[component]
}

// DB returns the database connection.
func (c *Container) DB() (*sql.DB, error) {
	c.dbInit.Do(func() {
		db, err := c.initDB()
		if err != nil {
			c.storeErr("db", err)
			return
		}
		c.db = db
	})
	if err := c.loadErr("db"); err != nil {
		return nil, err
	}
	return c.db, nil
}

// TxManager returns the transaction manager.
func (c *Container) TxManager() (database.TxManager, error) {
	c.txManagerInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.storeErr("txManager", fmt.Errorf("failed to get database for tx manager: %w", err))
			return
		}
		c.txManager = database.NewTxManager(db)
	})
	if err := c.loadErr("txManager"); err != nil {
		return nil, err
	}
	return c.txManager, nil
}

// Bucket returns the blob bucket holding recipes.json.
func (c *Container) Bucket() (*blob.Bucket, error) {
	c.bucketInit.Do(func() {
		bucket, err := c.initBucket()
		if err != nil {
			c.storeErr("bucket", err)
			return
		}
		c.bucket = bucket
	})
	if err := c.loadErr("bucket"); err != nil {
		return nil, err
	}
	return c.bucket, nil
}

// I18n returns the catalog of the configured language.
func (c *Container) I18n() (*i18n.Catalog, error) {
	c.catalogInit.Do(func() {
		language := c.config.Language
		if language == "" {
			language = i18n.DefaultLanguage
		}
		catalog, err := i18n.Load(language)
		if err != nil {
			c.storeErr("catalog", err)
			return
		}
		c.catalog = catalog
	})
	if err := c.loadErr("catalog"); err != nil {
		return nil, err
	}
	return c.catalog, nil
}

// Shutdown stops the servers and releases every initialized resource.
func (c *Container) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var shutdownErrors []error

	if c.httpServer != nil {
		if err := c.httpServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("http server shutdown: %w", err))
		}
	}

	if c.metricsServer != nil {
		if err := c.metricsServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics server shutdown: %w", err))
		}
	}

	if c.metricsProv != nil {
		if err := c.metricsProv.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics provider shutdown: %w", err))
		}
	}

	if c.bucket != nil {
		if err := c.bucket.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("bucket close: %w", err))
		}
	}

	if c.db != nil {
		if err := c.db.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("database close: %w", err))
		}
	}

	return errors.Join(shutdownErrors...)
}

// initLogger creates a JSON logger at the configured level.
func (c *Container) initLogger() *slog.Logger {
	var logLevel slog.Level
	switch c.config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	return slog.New(slog.NewJSONHandler(c.logOutput, &slog.HandlerOptions{Level: logLevel}))
}

// initDB connects to the configured database.
func (c *Container) initDB() (*sql.DB, error) {
	db, err := database.Connect(context.Background(), database.Config{
		Driver:             c.config.DBDriver,
		ConnectionString:   c.config.DBConnectionString,
		MaxOpenConnections: c.config.DBMaxOpenConnections,
		MaxIdleConnections: c.config.DBMaxIdleConnections,
		ConnMaxLifetime:    c.config.DBConnMaxLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}
