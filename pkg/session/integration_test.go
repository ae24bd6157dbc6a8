//go:build integration

package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/storefront/internal/testhelpers"
	"github.com/dmitrymomot/storefront/pkg/db"
	"github.com/dmitrymomot/storefront/pkg/logger"
	"github.com/dmitrymomot/storefront/pkg/redis"
	"github.com/dmitrymomot/storefront/pkg/session"
)

func TestRedisStore(t *testing.T) {
	ctx := context.Background()
	client, err := redis.Open(ctx, testhelpers.RedisURL(t))
	require.NoError(t, err, "failed to connect to Redis")
	t.Cleanup(func() { _ = client.Close() })

	runStoreSuite(t, func(t *testing.T) session.Store {
		prefix := "test-session-" + uuid.NewString() + ":"
		return session.NewRedisStore(client, session.WithRedisPrefix(prefix))
	})

	t.Run("delete expired is a no-op", func(t *testing.T) {
		n, err := session.NewRedisStore(client).DeleteExpired(ctx)
		require.NoError(t, err)
		assert.Zero(t, n)
	})
}

func TestPostgresStore(t *testing.T) {
	ctx := context.Background()
	pool, err := db.Connect(ctx, db.Config{
		ConnectionString: testhelpers.PostgresURL(t),
		RetryAttempts:    1,
		MaxOpenConns:     4,
		MinConns:         1,
	})
	require.NoError(t, err, "failed to connect to Postgres")
	t.Cleanup(pool.Close)

	require.NoError(t, db.Migrate(ctx, pool, session.Migrations, "migrations", "schema_migrations", logger.NewNope()))

	runStoreSuite(t, func(t *testing.T) session.Store {
		_, err := pool.Exec(ctx, "TRUNCATE sessions")
		require.NoError(t, err)
		return session.NewPostgresStore(pool)
	})

	t.Run("delete expired", func(t *testing.T) {
		store := session.NewPostgresStore(pool)
		require.NoError(t, store.Create(ctx, session.New(uuid.NewString(), uuid.NewString(), time.Now().Add(-time.Minute))))

		n, err := store.DeleteExpired(ctx)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, int64(1))
	})
}
