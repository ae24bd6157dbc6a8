// Command storefront serves the public product catalog and the admin grid.
//
// Configuration comes from the environment; see config.go for variables
// and defaults. API_URL is required.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/storefront"
	"github.com/dmitrymomot/storefront/handlers"
	"github.com/dmitrymomot/storefront/middlewares"
	"github.com/dmitrymomot/storefront/pkg/cache"
	"github.com/dmitrymomot/storefront/pkg/catalogapi"
	"github.com/dmitrymomot/storefront/pkg/cookie"
	"github.com/dmitrymomot/storefront/pkg/credential"
	"github.com/dmitrymomot/storefront/pkg/db"
	"github.com/dmitrymomot/storefront/pkg/i18n"
	"github.com/dmitrymomot/storefront/pkg/job"
	"github.com/dmitrymomot/storefront/pkg/logger"
	"github.com/dmitrymomot/storefront/pkg/redis"
	"github.com/dmitrymomot/storefront/pkg/session"
	"github.com/dmitrymomot/storefront/views"
)

const appName = "storefront"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	figure.NewFigure(appName, "cybermedium", true).Print()
	fmt.Println()

	log, flush := logger.New(cfg.Log, middlewares.RequestIDExtractor())
	ctx := context.Background()

	// The public pages and the grid talk to separately configured APIs.
	remote := catalogapi.New(cfg.APIURL, catalogapi.WithTimeout(cfg.APITimeout))
	admin := catalogapi.New(cfg.AdminAPIURL, catalogapi.WithTimeout(cfg.APITimeout))

	var (
		runOpts = []storefront.RunOption{storefront.ShutdownTimeout(cfg.ShutdownTimeout)}
		checks  = []storefront.HealthOption{
			storefront.WithReadinessCheck("catalog_api", catalogapi.Healthcheck(remote)),
			storefront.WithReadinessCheck("admin_api", catalogapi.Healthcheck(admin)),
		}
		// Connections close after everything that uses them has stopped.
		closers     []storefront.RunOption
		redisClient goredis.UniversalClient
		pool        *pgxpool.Pool
	)

	// Redis serves both sessions and grid state when selected.
	if cfg.SessionStore == storeRedis {
		redisClient, err = redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		checks = append(checks, storefront.WithReadinessCheck("redis", redis.Healthcheck(redisClient)))
		closers = append(closers, storefront.ShutdownHook(redis.Shutdown(redisClient)))
	}
	if cfg.SessionStore == storePostgres {
		pool, err = db.Connect(ctx, cfg.Database)
		if err != nil {
			return fmt.Errorf("connect database: %w", err)
		}
		if err := db.Migrate(ctx, pool, session.Migrations, "migrations", cfg.Database.MigrationsTable, logger.Component(log, "migrate")); err != nil {
			pool.Close()
			return fmt.Errorf("migrate: %w", err)
		}
		checks = append(checks, storefront.WithReadinessCheck("postgres", db.Healthcheck(pool)))
		closers = append(closers, storefront.ShutdownHook(db.Shutdown(pool)))
	}

	var store session.Store
	switch {
	case redisClient != nil:
		store = session.NewRedisStore(redisClient)
	case pool != nil:
		store = session.NewPostgresStore(pool)
	default:
		store = session.NewMemoryStore()
	}

	jobs, err := job.NewManager(
		job.WithLogger(logger.Component(log, "jobs")),
		job.WithTaskTimeout(time.Minute),
		job.WithScheduledTask(session.NewSweeper(store, cfg.SessionSweepSchedule, logger.Component(log, "sessions"))),
	)
	if err != nil {
		return err
	}
	checks = append(checks, storefront.WithReadinessCheck("jobs", job.Healthcheck(jobs)))
	runOpts = append(runOpts, storefront.StartupHook(jobs.StartFunc()), storefront.ShutdownHook(jobs.Shutdown()))

	var gridCache cache.Cache[handlers.GridState]
	if redisClient != nil {
		gridCache = cache.NewRedis[handlers.GridState](redisClient, "storefront:grid", cfg.GridStateTTL)
	} else {
		gridCache = cache.NewMemory[handlers.GridState](cache.WithDefaultTTL(cfg.GridStateTTL), cache.WithMaxEntries(10_000))
	}
	gridState := cache.NewLoader(gridCache, cfg.GridStateTTL)
	runOpts = append(runOpts, storefront.ShutdownHook(func(context.Context) error { return gridState.Close() }))

	translations, err := i18n.New(
		i18n.WithDefaultLanguage(cfg.DefaultLanguage),
		i18n.WithLanguages("es", "en"),
		i18n.WithYAMLDir(views.Locales()),
		i18n.WithMissingKeyHandler(func(lang, namespace, key string) {
			log.Warn("missing translation", slog.String("lang", lang), slog.String("namespace", namespace), slog.String("key", key))
		}),
	)
	if err != nil {
		return fmt.Errorf("load translations: %w", err)
	}

	cookies := cookie.New(
		cookie.WithSecret(cfg.CookieSecret),
		cookie.WithSecure(cfg.CookieSecure),
	)
	if !cookies.HasSecret() {
		log.Warn("COOKIE_SECRET is unset or shorter than 32 bytes; token cookies are stored in clear text")
	}
	credentials := credential.New(cookies, credential.WithCookieName(cfg.TokenCookieName))

	grid := handlers.NewAdmin(admin, gridState, handlers.WithSurfacedMutationErrors(cfg.SurfaceMutationErrors))

	app := storefront.New(
		storefront.WithLogger(log),
		storefront.WithCookieManager(cookies),
		storefront.WithSession(store, storefront.WithSessionSecure(cfg.CookieSecure)),
		storefront.WithMiddleware(
			middlewares.RequestID(),
			middlewares.Recover(),
			middlewares.Timeout(cfg.RequestTimeout),
			middlewares.I18n(translations, middlewares.WithI18nNamespace(views.Namespace)),
			middlewares.SessionScope(credentials, remote, middlewares.OnIdentityCleared(grid.ForgetSession)),
		),
		storefront.WithHandlers(
			handlers.NewCatalog(remote),
			handlers.NewAuth(),
			grid,
		),
		storefront.WithErrorHandler(handlers.ErrorHandler),
		storefront.WithNotFoundHandler(handlers.NotFound),
		storefront.WithHealthChecks(checks...),
	)

	log.Info("starting",
		slog.String("api_url", cfg.APIURL),
		slog.String("admin_api_url", cfg.AdminAPIURL),
		slog.String("session_store", cfg.SessionStore),
	)

	runOpts = append(runOpts, closers...)
	// Flush last so shutdown errors still reach Sentry.
	runOpts = append(runOpts, storefront.ShutdownHook(flush))
	return app.Run(cfg.Address, runOpts...)
}
