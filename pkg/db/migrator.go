package db

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/pressly/goose/v3/database"
)

// Migrate applies the goose migrations in dir of fsys, recording them in
// migrationTable. Each instance gets its own provider, so packages can
// migrate from different embedded filesystems.
func Migrate(ctx context.Context, pool *pgxpool.Pool, fsys fs.FS, dir, migrationTable string, log *slog.Logger) error {
	migrations, err := fs.Sub(fsys, dir)
	if err != nil {
		return errors.Join(ErrMigrate, err)
	}

	store, err := database.NewStore(database.DialectPostgres, migrationTable)
	if err != nil {
		return errors.Join(ErrMigrate, err)
	}

	// The *sql.DB shares the pool's connections and must not be closed here.
	provider, err := goose.NewProvider("", stdlib.OpenDBFromPool(pool), migrations, goose.WithStore(store))
	if err != nil {
		return errors.Join(ErrMigrate, err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return errors.Join(ErrMigrate, err)
	}
	for _, res := range results {
		log.InfoContext(ctx, "migration applied",
			slog.Int64("version", res.Source.Version),
			slog.Duration("duration", res.Duration),
		)
	}
	return nil
}
