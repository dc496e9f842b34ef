// Package grimoireservice boots the crystal grimoire HTTP service and
// blocks until shutdown.
package grimoireservice

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/crystal-grimoire/backend/internal/api"
	"github.com/crystal-grimoire/backend/internal/auth"
	"github.com/crystal-grimoire/backend/internal/catalog"
	"github.com/crystal-grimoire/backend/internal/config"
	"github.com/crystal-grimoire/backend/internal/docstore"
	"github.com/crystal-grimoire/backend/internal/docstore/memory"
	"github.com/crystal-grimoire/backend/internal/docstore/postgres"
	"github.com/crystal-grimoire/backend/internal/docstore/sqlite"
	"github.com/crystal-grimoire/backend/internal/gemini"
	"github.com/crystal-grimoire/backend/internal/payments"
	"github.com/crystal-grimoire/backend/internal/platform/logger"
	"github.com/crystal-grimoire/backend/internal/profile"
	"github.com/crystal-grimoire/backend/internal/services"
	"github.com/crystal-grimoire/backend/internal/support"
	"github.com/crystal-grimoire/backend/internal/usage"
)

// Run starts the grimoire HTTP server and blocks until shutdown or error.
// A non-empty buildTarget overrides GRIMOIRE_BUILD_TARGET.
func Run(buildTarget string) error {
	log := logger.New("grimoire-service")

	cfg, err := config.New()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load configuration")
		return err
	}
	if buildTarget != "" {
		cfg.BuildTarget = buildTarget
		if err := cfg.ResolveDefaults(); err != nil {
			log.Error().Err(err).Msg("Invalid build-target override")
			return err
		}
	}

	log.Info().
		Str("build_target", cfg.BuildTarget).
		Str("docstore_driver", cfg.DocstoreDriver).
		Int("http_port", cfg.HTTPPort).
		Msg("Grimoire service starting")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := newStore(ctx, cfg, log)
	if err != nil {
		log.Error().Stack().Err(err).Msg("Document store unavailable")
		return err
	}
	defer func() { _ = store.Close() }()

	deps, cleanup, err := buildDeps(ctx, cfg, store, log)
	if err != nil {
		return err
	}
	defer cleanup()

	router := api.NewRouter(deps)

	server := &http.Server{
		Addr:              cfg.GetHTTPAddr(),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
	errCh := serveHTTP(server, log, cfg)

	select {
	case <-ctx.Done():
		log.Info().Msg("Shutting down server")
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctxShutdown); err != nil {
			log.Error().Stack().Err(err).Msg("Server forced to shutdown")
			return err
		}
		log.Info().Msg("Server exited")
		return nil
	case err := <-errCh:
		log.Error().Stack().Err(err).Msg("HTTP server failed")
		return err
	}
}

// newStore opens the document store the configuration asks for.
func newStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (docstore.Store, error) {
	switch cfg.DocstoreDriver {
	case "memory":
		log.Info().Msg("Using in-memory document store")
		return memory.New(), nil
	case "sqlite":
		log.Info().Str("path", cfg.SQLitePath).Msg("Opening sqlite document store")
		return sqlite.Open(cfg.SQLitePath)
	case "postgres":
		log.Info().Msg("Opening postgres document store")
		return postgres.Open(ctx, cfg.PostgresDSN)
	default:
		return nil, fmt.Errorf("unsupported docstore driver: %s", cfg.DocstoreDriver)
	}
}

// buildDeps assembles the domain services behind the router. The AI and
// payment collaborators are optional; endpoints that need an absent one
// report failed precondition instead of keeping the whole service down.
func buildDeps(ctx context.Context, cfg *config.Config, store docstore.Store, log zerolog.Logger) (api.Deps, func(), error) {
	cat := catalog.Default()
	ledger := usage.NewLedger(store)
	wallet := usage.NewWallet(ledger)
	profiles := profile.NewService(store)
	tickets := support.NewService(store)

	cleanup := func() {}

	var identifier services.Identifier
	var advisor services.Advisor
	if cfg.GeminiAPIKey != "" {
		analyzer, err := gemini.New(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			log.Error().Stack().Err(err).Msg("Gemini client unavailable")
			return api.Deps{}, cleanup, err
		}
		identifier = analyzer
		advisor = analyzer
		cleanup = func() { _ = analyzer.Close() }
	} else {
		log.Warn().Msg("GEMINI_API_KEY not set; identification and guidance disabled")
	}

	var pay services.PaymentProvider
	if cfg.StripeSecretKey != "" {
		client, err := payments.New(cfg.StripeSecretKey, cfg.StripeBaseURL)
		if err != nil {
			return api.Deps{}, cleanup, err
		}
		pay = client
	} else {
		log.Warn().Msg("STRIPE_SECRET_KEY not set; plan upgrades disabled")
	}

	var authenticator auth.Authenticator
	if cfg.DevMode {
		log.Warn().Msg("Dev mode authentication enabled")
		authenticator = auth.DevAuthenticator{}
	} else {
		authenticator = auth.NewStaticAuthenticator(nil)
	}

	deps := api.Deps{
		Auth:          authenticator,
		Catalog:       cat,
		Profiles:      profiles,
		Support:       tickets,
		Identify:      services.NewIdentifyService(store, ledger, wallet, profiles, cat, identifier),
		Guidance:      services.NewGuidanceService(store, ledger, profiles, advisor),
		Recommend:     services.NewRecommendService(ledger, profiles, cat),
		Rituals:       services.NewRitualService(ledger, wallet, profiles, cat),
		Plans:         services.NewPlanService(ledger, profiles, pay),
		Usage:         services.NewUsageService(ledger, wallet, profiles),
		SupportAPIKey: cfg.SupportAPIKey,
	}
	return deps, cleanup, nil
}

func serveHTTP(server *http.Server, log zerolog.Logger, cfg *config.Config) <-chan error {
	errCh := make(chan error, 1)
	go func() {
		log.Info().Int("port", cfg.HTTPPort).Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()
	return errCh
}
