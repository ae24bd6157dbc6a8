// Package db connects to PostgreSQL with [github.com/jackc/pgx/v5/pgxpool]
// and applies schema migrations with [github.com/pressly/goose/v3].
//
// The storefront uses Postgres only as an optional session store
// (SESSION_STORE=postgres):
//
//	pool, err := db.Connect(ctx, cfg.DB)
//	if err != nil {
//		return err
//	}
//	if err := db.Migrate(ctx, pool, session.Migrations, "migrations", cfg.DB.MigrationsTable, log); err != nil {
//		return err
//	}
//	store := session.NewPostgresStore(pool)
//
// [Healthcheck] plugs into the readiness endpoint and [Shutdown] into the
// app's shutdown hooks.
//
// Configuration is read from the environment:
//
//	DATABASE_URL                - PostgreSQL connection URL
//	DATABASE_MAX_OPEN_CONNS     - Maximum open connections (default: 5)
//	DATABASE_MIN_CONNS          - Minimum idle connections (default: 1)
//	DATABASE_HEALTHCHECK_PERIOD - Health check interval (default: 1m)
//	DATABASE_MAX_CONN_IDLE_TIME - Maximum connection idle time (default: 10m)
//	DATABASE_MAX_CONN_LIFETIME  - Maximum connection lifetime (default: 30m)
//	DATABASE_RETRY_ATTEMPTS     - Connection retry attempts (default: 3)
//	DATABASE_RETRY_INTERVAL     - Base retry interval (default: 5s)
//	DATABASE_MIGRATIONS_TABLE   - Migrations table name (default: schema_migrations)
//
// Errors are wrapped with [errors.Join] around the package sentinels.
package db
