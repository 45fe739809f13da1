package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	"github.com/deppfellow/foodgram/internal/config"
	"github.com/jackc/pgx/v5"
	tern "github.com/jackc/tern/v2/migrate"
	"github.com/rs/zerolog"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Migrate brings the schema to the latest embedded version over a single
// connection.
func Migrate(ctx context.Context, logger *zerolog.Logger, cfg *config.Config) error {
	conn, err := pgx.Connect(ctx, DSN(&cfg.Database))
	if err != nil {
		return fmt.Errorf("connecting for migrations: %w", err)
	}
	defer conn.Close(ctx)

	from, to, err := MigrateConn(ctx, conn)
	if err != nil {
		return err
	}

	if from == to {
		logger.Info().Msgf("database schema up to date, version %d", to)
	} else {
		logger.Info().Msgf("migrated database schema, from %d to %d", from, to)
	}
	return nil
}

// MigrateConn applies the embedded migrations on conn, in whatever schema its
// search_path selects. The applied version lives in schema_version.
func MigrateConn(ctx context.Context, conn *pgx.Conn) (from, to int32, err error) {
	m, err := tern.NewMigrator(ctx, conn, "schema_version")
	if err != nil {
		return 0, 0, fmt.Errorf("constructing database migrator: %w", err)
	}

	subtree, err := fs.Sub(migrations, "migrations")
	if err != nil {
		return 0, 0, fmt.Errorf("retrieving database migrations subtree: %w", err)
	}

	if err := m.LoadMigrations(subtree); err != nil {
		return 0, 0, fmt.Errorf("loading database migrations: %w", err)
	}

	from, err = m.GetCurrentVersion(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("retrieving current database migration version: %w", err)
	}

	if err := m.Migrate(ctx); err != nil {
		return 0, 0, fmt.Errorf("applying database migrations: %w", err)
	}

	return from, int32(len(m.Migrations)), nil
}
