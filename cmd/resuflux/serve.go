package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonathan/resuflux/internal/cache"
	"github.com/jonathan/resuflux/internal/config"
	"github.com/jonathan/resuflux/internal/db"
	"github.com/jonathan/resuflux/internal/email"
	"github.com/jonathan/resuflux/internal/fetch"
	"github.com/jonathan/resuflux/internal/logger"
	"github.com/jonathan/resuflux/internal/metrics"
	"github.com/jonathan/resuflux/internal/server"
	"github.com/jonathan/resuflux/internal/server/ratelimit"
	"github.com/spf13/cobra"
)

var (
	servePort       int
	serveMaxCompare int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: "Start an HTTP server that exposes the scoring pipeline. PostgreSQL (DATABASE_URL), Redis (REDIS_URL) " +
		"and JWT auth (JWT_SECRET) are optional; routes that need a missing collaborator answer 503.",
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to listen on (default 8080)")
	serveCmd.Flags().IntVar(&serveMaxCompare, "max-compare", server.DefaultMaxCompare, "Résumés accepted per comparison")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	if servePort != 0 {
		settings.Port = servePort
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	log := newLogger(settings)
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps, cleanup, err := buildDeps(ctx, settings, log)
	if err != nil {
		return err
	}
	defer cleanup()

	srv := server.New(server.Config{Port: settings.Port, MaxCompare: serveMaxCompare}, deps)
	return srv.Start(ctx)
}

// buildDeps connects the optional collaborators named by settings. The returned cleanup
// releases whatever was opened.
func buildDeps(ctx context.Context, settings config.Config, log logger.Logger) (server.Deps, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}
	fail := func(err error) (server.Deps, func(), error) {
		cleanup()
		return server.Deps{}, nil, err
	}

	m := metrics.New()
	deps := server.Deps{
		Scraper: fetch.NewScraper(log),
		Limiter: ratelimit.NewLimiter(ratelimit.LoadConfig()),
		Metrics: m,
		Log:     log,
	}
	closers = append(closers, deps.Limiter.Stop)

	scorer, err := newScorer(settings)
	if err != nil {
		return fail(err)
	}
	deps.Scorer = scorer

	advisor, closeAdvisor, err := newAdvisor(ctx, settings, log)
	if err != nil {
		return fail(err)
	}
	deps.Advisor = advisor
	closers = append(closers, closeAdvisor)

	if settings.DatabaseURL != "" {
		database, err := db.Connect(ctx, settings.DatabaseURL)
		if err != nil {
			return fail(err)
		}
		closers = append(closers, database.Close)
		if err := database.EnsureSchema(ctx); err != nil {
			return fail(err)
		}
		deps.Store = database
	} else {
		log.Warn("DATABASE_URL not set, résumé storage disabled", nil)
	}

	if settings.RedisURL != "" {
		client, err := cache.NewClient(ctx, settings.RedisURL)
		if err != nil {
			return fail(err)
		}
		closers = append(closers, func() { _ = client.Close() })
		deps.Cache = cache.NewScoreCache(client, cache.DefaultTTL, m)
		deps.History = cache.NewHistory(client)
	} else {
		log.Warn("REDIS_URL not set, score cache and history disabled", nil)
	}

	if os.Getenv("JWT_SECRET") != "" {
		jwtCfg, err := config.NewJWTConfig()
		if err != nil {
			return fail(fmt.Errorf("invalid JWT configuration: %w", err))
		}
		deps.JWT = server.NewJWTService(jwtCfg)
	} else {
		log.Warn("JWT_SECRET not set, résumé routes disabled", nil)
	}

	if settings.EmailTemplate != "" {
		tpl, err := email.LoadTemplate(settings.EmailTemplate)
		if err != nil {
			return fail(err)
		}
		deps.EmailTemplate = &tpl
	}

	return deps, cleanup, nil
}
