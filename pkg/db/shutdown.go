package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Shutdown closes the pool as an app shutdown hook:
//
//	app.Run(addr, storefront.ShutdownHook(db.Shutdown(pool)))
func Shutdown(pool *pgxpool.Pool) func(context.Context) error {
	return func(context.Context) error {
		pool.Close()
		return nil
	}
}
