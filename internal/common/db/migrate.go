package db

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/DeepthiAddanki/Fleetrace/internal/common/logger"
)

// RunMigrations applies every pending migration from migrationsDir.
// The database URL must use the pgx5 scheme understood by golang-migrate.
func RunMigrations(migrationsDir, databaseURL string) error {
	logger.Info("db_migrations_start", "Running database migrations")

	m, err := migrate.New("file://"+migrationsDir, "pgx5://"+trimScheme(databaseURL))
	if err != nil {
		logger.Error("db_migrations_init_failed", "Failed to init migrations", err)
		return fmt.Errorf("failed to init migrations: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Info("db_migrations_skip", "No pending migrations")
			return nil
		}
		logger.Error("db_migrations_failed", "Migrations failed", err)
		return fmt.Errorf("migrations failed: %w", err)
	}

	logger.Info("db_migrations_done", "Migrations applied successfully")
	return nil
}

func trimScheme(url string) string {
	const scheme = "postgres://"
	if len(url) > len(scheme) && url[:len(scheme)] == scheme {
		return url[len(scheme):]
	}
	return url
}
