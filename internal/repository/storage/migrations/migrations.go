package migrations

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	// register the postgres:// database driver.
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed sql/*.sql
var sqlFS embed.FS

type Migrator struct {
	logger  *slog.Logger
	source  source.Driver
	migrate *migrate.Migrate
}

func New(logger *slog.Logger, databaseURL string) (*Migrator, error) {
	src, err := iofs.New(sqlFS, "sql")
	if err != nil {
		return nil, fmt.Errorf("failed to open migration source: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrator: %w", err)
	}

	return &Migrator{
		logger:  logger.With("component", "migrator"),
		source:  src,
		migrate: m,
	}, nil
}

// Up applies every pending migration. A dirty schema is forced back to the
// version before the failed one so that migration runs again.
func (that *Migrator) Up() error {
	log := that.logger.With("method", "Up")

	version, dirty, err := that.migrate.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	if dirty {
		var target int
		if target, err = previousVersion(that.source, version); err != nil {
			return err
		}

		log.Warn("schema is dirty, forcing previous version", "version", version, "target", target)

		if err = that.migrate.Force(target); err != nil {
			return fmt.Errorf("failed to force version %d: %w", target, err)
		}
	}

	err = that.migrate.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		log.Info("schema is up to date", "version", version)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	version, _, _ = that.migrate.Version()
	log.Info("schema migrated", "version", version)

	return nil
}

func (that *Migrator) Close() error {
	sourceErr, dbErr := that.migrate.Close()
	if sourceErr != nil {
		return fmt.Errorf("failed to close migration source: %w", sourceErr)
	}

	if dbErr != nil {
		return fmt.Errorf("failed to close migration database: %w", dbErr)
	}

	return nil
}

// previousVersion returns the version preceding version in src, or database.NilVersion
// when version is the first one.
func previousVersion(src source.Driver, version uint) (int, error) {
	prev, err := src.Prev(version)
	if errors.Is(err, fs.ErrNotExist) {
		return database.NilVersion, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to find version before %d: %w", version, err)
	}

	return int(prev), nil //nolint:gosec // versions are small sequence numbers
}
