package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		validate func(t *testing.T, cfg *Config)
	}{
		{
			name:    "load default configuration",
			envVars: map[string]string{},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "0.0.0.0", cfg.ServerHost)
				assert.Equal(t, 8080, cfg.ServerPort)
				assert.Equal(t, 15*time.Second, cfg.ShutdownTimeout)
				assert.Equal(t, "postgres", cfg.DBDriver)
				assert.Equal(t, 25, cfg.DBMaxOpenConnections)
				assert.Equal(t, 5, cfg.DBMaxIdleConnections)
				assert.Equal(t, 5*time.Minute, cfg.DBConnMaxLifetime)
				assert.Equal(t, "info", cfg.LogLevel)
				assert.Equal(t, "en", cfg.Language)
				assert.Equal(t, RecipeStoreBlob, cfg.RecipeStore)
				assert.Empty(t, cfg.RecipesURL)
				assert.Equal(t, ".", cfg.RecipesPath)
				assert.True(t, cfg.RecipesPathRelative)
				assert.True(t, cfg.RecipesPathFromExeDir)
				assert.False(t, cfg.RecipesPathFromCwd)
				assert.True(t, cfg.RateLimitEnabled)
				assert.Equal(t, 10.0, cfg.RateLimitRequestsPerSec)
				assert.Equal(t, 20, cfg.RateLimitBurst)
				assert.False(t, cfg.CORSEnabled)
				assert.True(t, cfg.MetricsEnabled)
				assert.Equal(t, "shepatra", cfg.MetricsNamespace)
				assert.Equal(t, 8081, cfg.MetricsPort)
			},
		},
		{
			name: "load custom server configuration",
			envVars: map[string]string{
				"SERVER_HOST":              "localhost",
				"SERVER_PORT":              "9090",
				"SHUTDOWN_TIMEOUT_SECONDS": "3",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "localhost", cfg.ServerHost)
				assert.Equal(t, 9090, cfg.ServerPort)
				assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
			},
		},
		{
			name: "load custom database configuration",
			envVars: map[string]string{
				"RECIPE_STORE":            "database",
				"DB_DRIVER":               "mysql",
				"DB_CONNECTION_STRING":    "user:password@tcp(localhost:3306)/testdb",
				"DB_MAX_OPEN_CONNECTIONS": "50",
				"DB_MAX_IDLE_CONNECTIONS": "10",
				"DB_CONN_MAX_LIFETIME":    "10",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, RecipeStoreDatabase, cfg.RecipeStore)
				assert.Equal(t, "mysql", cfg.DBDriver)
				assert.Equal(t, "user:password@tcp(localhost:3306)/testdb", cfg.DBConnectionString)
				assert.Equal(t, 50, cfg.DBMaxOpenConnections)
				assert.Equal(t, 10, cfg.DBMaxIdleConnections)
				assert.Equal(t, 10*time.Minute, cfg.DBConnMaxLifetime)
			},
		},
		{
			name: "load custom recipe storage configuration",
			envVars: map[string]string{
				"RECIPES_URL":              "mem://",
				"RECIPES_PATH":             "/srv/recipes",
				"RECIPES_PATH_RELATIVE":    "false",
				"RECIPES_PATH_FROM_EXEDIR": "false",
				"RECIPES_PATH_FROM_CWD":    "true",
				"LANGUAGE":                 "ja",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "mem://", cfg.RecipesURL)
				assert.Equal(t, "/srv/recipes", cfg.RecipesPath)
				assert.False(t, cfg.RecipesPathRelative)
				assert.False(t, cfg.RecipesPathFromExeDir)
				assert.True(t, cfg.RecipesPathFromCwd)
				assert.Equal(t, "ja", cfg.Language)
			},
		},
		{
			name: "load custom log level",
			envVars: map[string]string{
				"LOG_LEVEL": "debug",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "debug", cfg.LogLevel)
				assert.Equal(t, "debug", cfg.GetGinMode())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Clear environment
			os.Clearenv()

			// Set test environment variables
			for key, value := range tt.envVars {
				err := os.Setenv(key, value)
				require.NoError(t, err)
			}

			cfg := Load()

			tt.validate(t, cfg)
		})
	}
}

func TestGetGinMode(t *testing.T) {
	for _, level := range []string{"info", "warn", "error", "bogus"} {
		cfg := &Config{LogLevel: level}
		assert.Equal(t, "release", cfg.GetGinMode(), level)
	}
}

func TestRecipesDir(t *testing.T) {
	t.Run("absolute path is used as-is", func(t *testing.T) {
		cfg := &Config{RecipesPath: "/srv/recipes", RecipesPathRelative: false, RecipesPathFromExeDir: true}

		dir, err := cfg.RecipesDir()
		require.NoError(t, err)
		assert.Equal(t, "/srv/recipes", dir)
	})

	t.Run("relative to executable directory", func(t *testing.T) {
		cfg := &Config{RecipesPath: "data", RecipesPathRelative: true, RecipesPathFromExeDir: true}

		exe, err := os.Executable()
		require.NoError(t, err)

		dir, err := cfg.RecipesDir()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(filepath.Dir(exe), "data"), dir)
	})

	t.Run("relative to working directory", func(t *testing.T) {
		cfg := &Config{RecipesPath: "data", RecipesPathRelative: true, RecipesPathFromCwd: true}

		cwd, err := os.Getwd()
		require.NoError(t, err)

		dir, err := cfg.RecipesDir()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(cwd, "data"), dir)
	})

	t.Run("relative without a base", func(t *testing.T) {
		cfg := &Config{RecipesPath: "data", RecipesPathRelative: true}

		dir, err := cfg.RecipesDir()
		require.NoError(t, err)
		assert.Equal(t, "data", dir)
	})
}
