package database

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/medtransit/fare-engine/pkg/config"
)

// RunMigrations applies all pending up migrations from the configured
// migrations directory. A database already at the latest version is not an
// error.
func RunMigrations(cfg *config.DatabaseConfig) error {
	m, err := migrate.New(
		fmt.Sprintf("file://%s", cfg.MigrationsPath),
		cfg.MigrateURL(),
	)
	if err != nil {
		return fmt.Errorf("unable to initialize migrations: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("unable to apply migrations: %w", err)
	}

	return nil
}
