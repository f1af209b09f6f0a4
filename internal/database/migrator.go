package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sync"

	"github.com/deppfellow/pizza-restaurants/internal/config"
	"github.com/jackc/pgx/v5"
	tern "github.com/jackc/tern/v2/migrate"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"
)

// Both directories create the same schema in their dialect. PostgreSQL
// files use tern's layout, SQLite files use goose annotations.
//
//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrations embed.FS

// goose keeps its base FS and dialect in package globals.
var gooseMu sync.Mutex

// Migrate brings the configured database up to the latest schema through
// a connection of its own.
//
// It is safe to run on every start: already applied migrations are skipped.
// An in-memory SQLite database lives only as long as its handle, so callers
// that go on to use the database should call MigrateOpen instead.
func Migrate(ctx context.Context, logger *zerolog.Logger, cfg *config.Config) error {
	switch cfg.Database.Driver() {
	case config.DriverPostgres:
		return migratePostgres(ctx, logger, cfg.Database.URL)
	default:
		db, err := New(cfg, logger, nil)
		if err != nil {
			return err
		}
		defer db.Close()
		return MigrateSQLite(ctx, logger, db)
	}
}

// MigrateOpen migrates the database behind db, which stays open. SQLite
// migrations run on db's own handle.
func MigrateOpen(ctx context.Context, logger *zerolog.Logger, cfg *config.Config, db *Database) error {
	switch db.Driver {
	case config.DriverPostgres:
		return migratePostgres(ctx, logger, cfg.Database.URL)
	default:
		return MigrateSQLite(ctx, logger, db)
	}
}

// migratePostgres runs tern over a dedicated connection and records the
// applied version in the schema_version table.
func migratePostgres(ctx context.Context, logger *zerolog.Logger, dsn string) error {
	conn, err := pgx.Connect(ctx, dsn)
	if err != nil {
		return err
	}
	defer conn.Close(ctx)

	m, err := tern.NewMigrator(ctx, conn, "schema_version")
	if err != nil {
		return fmt.Errorf("constructing database migrator: %w", err)
	}

	subtree, err := fs.Sub(migrations, "migrations/postgres")
	if err != nil {
		return fmt.Errorf("retrieving database migrations subtree: %w", err)
	}

	if err := m.LoadMigrations(subtree); err != nil {
		return fmt.Errorf("loading database migrations: %w", err)
	}

	from, err := m.GetCurrentVersion(ctx)
	if err != nil {
		return fmt.Errorf("retrieving current database migration version: %w", err)
	}

	if err := m.Migrate(ctx); err != nil {
		return err
	}

	if from == int32(len(m.Migrations)) {
		logger.Info().Msgf("database schema up to date, version %d", len(m.Migrations))
	} else {
		logger.Info().Msgf("migrated database schema, from %d to %d", from, len(m.Migrations))
	}
	return nil
}

// MigrateSQLite applies the embedded goose migrations to an open SQLite
// database.
func MigrateSQLite(ctx context.Context, logger *zerolog.Logger, db *Database) error {
	if db.SQL == nil {
		return fmt.Errorf("sqlite migrations need a sqlite database, got %s", db.Driver)
	}

	gooseMu.Lock()
	defer func() {
		goose.SetBaseFS(nil)
		gooseMu.Unlock()
	}()

	goose.SetBaseFS(migrations)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	from, err := goose.GetDBVersionContext(ctx, db.SQL)
	if err != nil {
		return fmt.Errorf("retrieving current database migration version: %w", err)
	}

	if err := goose.UpContext(ctx, db.SQL, "migrations/sqlite"); err != nil {
		return fmt.Errorf("apply sqlite migrations: %w", err)
	}

	to, err := goose.GetDBVersionContext(ctx, db.SQL)
	if err != nil {
		return fmt.Errorf("retrieving database migration version: %w", err)
	}

	if from == to {
		logger.Info().Msgf("database schema up to date, version %d", to)
	} else {
		logger.Info().Msgf("migrated database schema, from %d to %d", from, to)
	}
	return nil
}
