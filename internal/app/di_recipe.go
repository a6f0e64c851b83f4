package app

import (
	"context"
	"fmt"

	"gocloud.dev/blob"

	"github.com/allisson/shepatra/internal/config"
	"github.com/allisson/shepatra/internal/database"
	"github.com/allisson/shepatra/internal/http"
	"github.com/allisson/shepatra/internal/metrics"
	recipeHTTP "github.com/allisson/shepatra/internal/recipe/http"
	recipeRepository "github.com/allisson/shepatra/internal/recipe/repository"
	recipeService "github.com/allisson/shepatra/internal/recipe/service"
	recipeUseCase "github.com/allisson/shepatra/internal/recipe/usecase"
)

// RecipeRepository returns the recipe store selected by RECIPE_STORE.
func (c *Container) RecipeRepository() (recipeUseCase.RecipeRepository, error) {
	c.recipeRepoInit.Do(func() {
		repo, err := c.initRecipeRepository()
		if err != nil {
			c.storeErr("recipeRepo", err)
			return
		}
		c.recipeRepo = repo
	})
	if err := c.loadErr("recipeRepo"); err != nil {
		return nil, err
	}
	return c.recipeRepo, nil
}

// ChainExecutor returns the hash chain executor.
func (c *Container) ChainExecutor() recipeService.ChainExecutor {
	c.chainExecutorInit.Do(func() {
		c.chainExecutor = recipeService.NewChainExecutor()
	})
	return c.chainExecutor
}

// RecipeUseCase returns the recipe use case, decorated with metrics when enabled.
func (c *Container) RecipeUseCase() (recipeUseCase.RecipeUseCase, error) {
	c.recipeUseCaseInit.Do(func() {
		useCase, err := c.initRecipeUseCase()
		if err != nil {
			c.storeErr("recipeUseCase", err)
			return
		}
		c.recipeUseCase = useCase
	})
	if err := c.loadErr("recipeUseCase"); err != nil {
		return nil, err
	}
	return c.recipeUseCase, nil
}

// MetricsProvider returns the metrics provider, or nil when metrics are disabled.
func (c *Container) MetricsProvider() (*metrics.Provider, error) {
	c.metricsInit.Do(func() {
		if !c.config.MetricsEnabled {
			return
		}
		provider, err := metrics.NewProvider(c.config.MetricsNamespace)
		if err != nil {
			c.storeErr("metricsProvider", fmt.Errorf("failed to create metrics provider: %w", err))
			return
		}
		c.metricsProv = provider
	})
	if err := c.loadErr("metricsProvider"); err != nil {
		return nil, err
	}
	return c.metricsProv, nil
}

// BusinessMetrics returns the recipe metrics, a no-op implementation when disabled.
func (c *Container) BusinessMetrics() (metrics.BusinessMetrics, error) {
	c.businessMetricInit.Do(func() {
		bm, err := c.initBusinessMetrics()
		if err != nil {
			c.storeErr("businessMetrics", err)
			return
		}
		c.businessMetric = bm
	})
	if err := c.loadErr("businessMetrics"); err != nil {
		return nil, err
	}
	return c.businessMetric, nil
}

// HTTPServer returns the recipe API server.
func (c *Container) HTTPServer() (*http.Server, error) {
	c.httpServerInit.Do(func() {
		server, err := c.initHTTPServer()
		if err != nil {
			c.storeErr("httpServer", err)
			return
		}
		c.httpServer = server
	})
	if err := c.loadErr("httpServer"); err != nil {
		return nil, err
	}
	return c.httpServer, nil
}

// MetricsServer returns the Prometheus metrics server, or nil when metrics are disabled.
func (c *Container) MetricsServer() (*http.MetricsServer, error) {
	c.metricsServerInit.Do(func() {
		provider, err := c.MetricsProvider()
		if err != nil {
			c.storeErr("metricsServer", err)
			return
		}
		if provider == nil {
			return
		}
		c.metricsServer = http.NewMetricsServer(c.config.ServerHost, c.config.MetricsPort, c.Logger(), provider)
	})
	if err := c.loadErr("metricsServer"); err != nil {
		return nil, err
	}
	return c.metricsServer, nil
}

// ReadinessCheck reports whether the configured recipe store is reachable.
func (c *Container) ReadinessCheck() http.ReadinessCheck {
	return func(ctx context.Context) error {
		if c.config.RecipeStore == config.RecipeStoreDatabase {
			db, err := c.DB()
			if err != nil {
				return err
			}
			return db.PingContext(ctx)
		}

		bucket, err := c.Bucket()
		if err != nil {
			return err
		}
		accessible, err := bucket.IsAccessible(ctx)
		if err != nil {
			return err
		}
		if !accessible {
			return fmt.Errorf("recipe bucket is not accessible")
		}
		return nil
	}
}

// initBucket opens the bucket from RECIPES_URL, or the recipes directory.
func (c *Container) initBucket() (*blob.Bucket, error) {
	dir := ""
	if c.config.RecipesURL == "" {
		var err error
		if dir, err = c.config.RecipesDir(); err != nil {
			return nil, fmt.Errorf("failed to resolve recipes directory: %w", err)
		}
	}

	bucket, err := recipeRepository.OpenBucket(context.Background(), c.config.RecipesURL, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open recipe bucket: %w", err)
	}
	return bucket, nil
}

// initRecipeRepository creates the blob or SQL recipe repository.
func (c *Container) initRecipeRepository() (recipeUseCase.RecipeRepository, error) {
	switch c.config.RecipeStore {
	case config.RecipeStoreBlob:
		bucket, err := c.Bucket()
		if err != nil {
			return nil, err
		}
		return recipeRepository.NewBlobRecipeRepository(bucket, config.RecipesFilename), nil
	case config.RecipeStoreDatabase:
		db, err := c.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get database for recipe repository: %w", err)
		}
		switch c.config.DBDriver {
		case database.DriverMySQL:
			return recipeRepository.NewMySQLRecipeRepository(db), nil
		case database.DriverPostgres:
			return recipeRepository.NewPostgreSQLRecipeRepository(db), nil
		default:
			return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	default:
		return nil, fmt.Errorf("unsupported recipe store: %s", c.config.RecipeStore)
	}
}

// initRecipeUseCase wires the repository and executor into the use case.
func (c *Container) initRecipeUseCase() (recipeUseCase.RecipeUseCase, error) {
	repo, err := c.RecipeRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get recipe repository for recipe use case: %w", err)
	}

	useCase := recipeUseCase.NewRecipeUseCase(repo, c.ChainExecutor())
	if !c.config.MetricsEnabled {
		return useCase, nil
	}

	bm, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for recipe use case: %w", err)
	}
	return recipeUseCase.NewRecipeUseCaseWithMetrics(useCase, bm), nil
}

func (c *Container) initBusinessMetrics() (metrics.BusinessMetrics, error) {
	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return metrics.NewNoOpBusinessMetrics(), nil
	}

	bm, err := metrics.NewBusinessMetrics(provider.MeterProvider(), c.config.MetricsNamespace)
	if err != nil {
		return nil, fmt.Errorf("failed to create business metrics: %w", err)
	}
	return bm, nil
}

// initHTTPServer creates the API server with all its dependencies.
func (c *Container) initHTTPServer() (*http.Server, error) {
	logger := c.Logger()

	useCase, err := c.RecipeUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get recipe use case for http server: %w", err)
	}

	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for http server: %w", err)
	}

	return http.NewServer(
		c.config.ServerHost,
		c.config.ServerPort,
		logger,
		recipeHTTP.NewRecipeHandler(useCase, logger),
		http.ServerOptions{
			CORSEnabled:             c.config.CORSEnabled,
			CORSAllowOrigins:        c.config.CORSAllowOrigins,
			RateLimitEnabled:        c.config.RateLimitEnabled,
			RateLimitRequestsPerSec: c.config.RateLimitRequestsPerSec,
			RateLimitBurst:          c.config.RateLimitBurst,
			MetricsProvider:         provider,
			MetricsNamespace:        c.config.MetricsNamespace,
			Readiness:               c.ReadinessCheck(),
		},
	), nil
}
