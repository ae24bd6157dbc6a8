package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/storefront/pkg/session"
)

// runStoreSuite exercises the Store contract; the integration tests reuse it.
func runStoreSuite(t *testing.T, newStore func(t *testing.T) session.Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("get missing returns ErrNotFound", func(t *testing.T) {
		store := newStore(t)
		_, err := store.Get(ctx, "nope")
		assert.ErrorIs(t, err, session.ErrNotFound)
	})

	t.Run("create then get", func(t *testing.T) {
		store := newStore(t)
		s := session.New("id-create", "tok-create", time.Now().Add(time.Hour))
		s.SetEmail("ana@example.com")
		require.NoError(t, store.Create(ctx, s))

		got, err := store.Get(ctx, "tok-create")
		require.NoError(t, err)
		assert.Equal(t, "id-create", got.ID)
		assert.Equal(t, "ana@example.com", got.Email)
	})

	t.Run("create rejects missing token", func(t *testing.T) {
		store := newStore(t)
		err := store.Create(ctx, session.New("id", "", time.Now().Add(time.Hour)))
		assert.ErrorIs(t, err, session.ErrInvalidSession)
	})

	t.Run("update follows token rotation", func(t *testing.T) {
		store := newStore(t)
		s := session.New("id-rotate", "tok-old", time.Now().Add(time.Hour))
		require.NoError(t, store.Create(ctx, s))

		s.Token = "tok-new"
		s.SetEmail("luis@example.com")
		require.NoError(t, store.Update(ctx, s))

		_, err := store.Get(ctx, "tok-old")
		assert.ErrorIs(t, err, session.ErrNotFound)

		got, err := store.Get(ctx, "tok-new")
		require.NoError(t, err)
		assert.Equal(t, "luis@example.com", got.Email)
	})

	t.Run("update unknown returns ErrNotFound", func(t *testing.T) {
		store := newStore(t)
		err := store.Update(ctx, session.New("ghost", "ghost-tok", time.Now().Add(time.Hour)))
		assert.ErrorIs(t, err, session.ErrNotFound)
	})

	t.Run("delete by id", func(t *testing.T) {
		store := newStore(t)
		require.NoError(t, store.Create(ctx, session.New("id-del", "tok-del", time.Now().Add(time.Hour))))
		require.NoError(t, store.Delete(ctx, "id-del"))
		require.NoError(t, store.Delete(ctx, "id-del"))

		_, err := store.Get(ctx, "tok-del")
		assert.ErrorIs(t, err, session.ErrNotFound)
	})
}

func TestMemoryStore(t *testing.T) {
	t.Parallel()

	runStoreSuite(t, func(t *testing.T) session.Store {
		return session.NewMemoryStore()
	})
}

func TestMemoryStore_Expiry(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := session.NewMemoryStore()
	require.NoError(t, store.Create(ctx, session.New("live", "live-tok", time.Now().Add(time.Hour))))
	require.NoError(t, store.Create(ctx, session.New("dead", "dead-tok", time.Now().Add(-time.Minute))))

	_, err := store.Get(ctx, "dead-tok")
	assert.ErrorIs(t, err, session.ErrExpired)

	n, err := store.DeleteExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Equal(t, 1, store.Len())

	_, err = store.Get(ctx, "live-tok")
	assert.NoError(t, err)
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := session.NewMemoryStore()
	s := session.New("id", "tok", time.Now().Add(time.Hour))
	require.NoError(t, store.Create(ctx, s))

	got, err := store.Get(ctx, "tok")
	require.NoError(t, err)
	got.SetEmail("changed@example.com")

	again, err := store.Get(ctx, "tok")
	require.NoError(t, err)
	assert.Empty(t, again.Email)
}
