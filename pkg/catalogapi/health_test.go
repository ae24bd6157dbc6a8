package catalogapi_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/storefront/pkg/catalogapi"
)

func TestHealthcheck(t *testing.T) {
	t.Parallel()

	t.Run("any answer below 500 is healthy", func(t *testing.T) {
		t.Parallel()
		mux := http.NewServeMux()
		mux.HandleFunc("HEAD /api/products", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})
		client := newServer(t, mux)

		require.NoError(t, catalogapi.Healthcheck(client)(context.Background()))
	})

	t.Run("server error", func(t *testing.T) {
		t.Parallel()
		mux := http.NewServeMux()
		mux.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})
		client := newServer(t, mux)

		err := catalogapi.Healthcheck(client)(context.Background())
		require.ErrorIs(t, err, catalogapi.ErrUnreachable)
		assert.Equal(t, http.StatusBadGateway, catalogapi.StatusCode(err))
	})

	t.Run("connection refused", func(t *testing.T) {
		t.Parallel()
		client := catalogapi.New("http://127.0.0.1:1/api")

		require.ErrorIs(t, catalogapi.Healthcheck(client)(context.Background()), catalogapi.ErrUnreachable)
	})
}
