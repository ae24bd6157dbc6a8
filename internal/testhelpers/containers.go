// Package testhelpers starts the Redis and Postgres instances the
// integration tests run against.
//
// REDIS_URL and DATABASE_URL win when set, so CI can point the tests at
// service containers; otherwise a throwaway container is started with
// testcontainers-go and terminated through t.Cleanup. Docker must be
// reachable in that case.
package testhelpers

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	redisImage    = "redis:7-alpine"
	postgresImage = "postgres:16-alpine"
	startTimeout  = 2 * time.Minute
)

// RedisURL returns a redis:// URL for a usable Redis.
func RedisURL(t *testing.T) string {
	t.Helper()
	if url := os.Getenv("REDIS_URL"); url != "" {
		return url
	}

	addr := start(t, testcontainers.ContainerRequest{
		Image:        redisImage,
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(startTimeout),
	})
	return fmt.Sprintf("redis://%s/0", addr)
}

// PostgresURL returns a connection string for an empty Postgres database.
func PostgresURL(t *testing.T) string {
	t.Helper()
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}

	addr := start(t, testcontainers.ContainerRequest{
		Image:        postgresImage,
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "storefront",
			"POSTGRES_PASSWORD": "storefront",
			"POSTGRES_DB":       "storefront_test",
		},
		// Postgres restarts once after initdb; the second "ready" line is the real one.
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(startTimeout),
	})
	return fmt.Sprintf("postgres://storefront:storefront@%s/storefront_test?sslmode=disable", addr)
}

// start runs req and returns host:port of its only exposed port.
func start(t *testing.T, req testcontainers.ContainerRequest) string {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("start %s container: %v", req.Image, err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("terminate %s container: %v", req.Image, err)
		}
	})

	addr, err := container.Endpoint(ctx, "")
	if err != nil {
		t.Fatalf("container endpoint: %v", err)
	}
	return addr
}
