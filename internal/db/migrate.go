package db

import (
	"embed"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/sirupsen/logrus"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

type migrationLogger struct {
	logger logrus.FieldLogger
}

func (l migrationLogger) Printf(format string, v ...any) {
	l.logger.Infof(format, v...)
}

func (l migrationLogger) Verbose() bool {
	return false
}

// Migrator applies the embedded SQL migrations.
type Migrator struct {
	m      *migrate.Migrate
	logger logrus.FieldLogger
}

func NewMigrator(databaseURL string, logger logrus.FieldLogger) (*Migrator, error) {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("open embedded migrations: %w", err)
	}

	migrateURL, err := MigrateURL(databaseURL)
	if err != nil {
		return nil, err
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, migrateURL)
	if err != nil {
		return nil, fmt.Errorf("create migrate instance: %w", err)
	}
	m.Log = migrationLogger{logger: logger}

	return &Migrator{m: m, logger: logger}, nil
}

// MigrateURL rewrites a postgres:// url for the pgx5 migrate driver.
func MigrateURL(databaseURL string) (string, error) {
	u, err := url.Parse(databaseURL)
	if err != nil {
		return "", fmt.Errorf("parse database url: %w", err)
	}

	switch u.Scheme {
	case "postgres", "postgresql", "pgx5":
	default:
		return "", fmt.Errorf("unsupported database url scheme %q", u.Scheme)
	}
	u.Scheme = "pgx5"

	return u.String(), nil
}

func (m *Migrator) Up() error {
	started := time.Now()

	err := m.m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		m.logger.Info("no new migrations to apply")
		return nil
	}
	if err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	m.logger.WithField("duration_ms", time.Since(started).Milliseconds()).Info("migrations applied")
	return nil
}

// Down rolls back the given number of steps.
func (m *Migrator) Down(steps int) error {
	if steps <= 0 {
		return fmt.Errorf("steps must be positive")
	}

	err := m.m.Steps(-steps)
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("roll back %d migration(s): %w", steps, err)
	}

	return nil
}

func (m *Migrator) Version() (uint, bool, error) {
	version, dirty, err := m.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return version, dirty, err
}

func (m *Migrator) Close() error {
	sourceErr, dbErr := m.m.Close()
	return errors.Join(sourceErr, dbErr)
}
