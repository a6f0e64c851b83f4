package commands

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/allisson/shepatra/internal/database"
)

// MigrationsDir is where the recipe schema migrations live, relative to the working
// directory.
const MigrationsDir = "migrations"

// RunMigrations applies the pending recipe schema migrations of driver. Having nothing
// to apply is not an error.
func RunMigrations(logger *slog.Logger, driver, connectionString, dir string) error {
	logger.Info("running database migrations", slog.String("driver", driver))

	source, err := database.MigrationsSource(dir, driver)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	m, err := migrate.New(source, connectionString)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer closeMigrate(m, logger)

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("migrations completed successfully")
	return nil
}
