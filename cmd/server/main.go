package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
	"golang.org/x/sync/errgroup"

	"github.com/mmynk/konta/internal/amqp"
	"github.com/mmynk/konta/internal/auth"
	"github.com/mmynk/konta/internal/config"
	"github.com/mmynk/konta/internal/ledger"
	"github.com/mmynk/konta/internal/metrics"
	"github.com/mmynk/konta/internal/middleware"
	"github.com/mmynk/konta/internal/service"
	"github.com/mmynk/konta/internal/storage/sqlite"
	"github.com/mmynk/konta/internal/web"
	"github.com/mmynk/konta/pkg/api"
	"github.com/mmynk/konta/pkg/logging"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load .env for local development; missing file is fine
	_ = godotenv.Load()

	cfg := config.Load()
	logger := logging.Setup(cfg.LogLevel, cfg.LogFormat)

	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	if err := run(cfg, logger); err != nil {
		logger.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()
	logger.Info("Storage initialized", "database", cfg.DBPath)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	opts := []ledger.Option{ledger.WithMetrics(m), ledger.WithLogger(logger)}
	if cfg.AMQPURL != "" {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPRoutingKey)
		if err != nil {
			logger.Warn("Failed to initialize AMQP client, log entries will not be published", "error", err)
		} else {
			defer client.Close()
			opts = append(opts, ledger.WithPublisher(client))
			logger.Info("AMQP publishing enabled", "exchange", cfg.AMQPExchange, "routing_key", cfg.AMQPRoutingKey)
		}
	}
	l := ledger.New(store, opts...)

	tokens := auth.NewJWTManager(cfg.JWTSecret, cfg.SessionTTL)
	guard := auth.NewGuard(
		auth.NewPasswordAuthenticator(store),
		tokens,
		auth.NewThrottle(cfg.LoginMaxAttempts, cfg.LoginLockout),
		logger,
	)

	pages, err := web.New(l, guard,
		web.WithMetrics(m),
		web.WithLogger(logger),
		web.WithStaticMaxAge(cfg.StaticCacheSeconds),
		web.WithSecureCookies(cfg.SecureCookies),
	)
	if err != nil {
		return err
	}

	mux := http.NewServeMux()

	authPath, authHandler := api.NewAuthServiceHandler(
		service.NewAuthService(guard, logger),
		connect.WithInterceptors(middleware.LoggingInterceptor(m), middleware.OptionalAuth(tokens)),
	)
	mux.Handle(authPath, authHandler)

	ledgerPath, ledgerHandler := api.NewLedgerServiceHandler(
		service.NewLedgerService(l),
		connect.WithInterceptors(middleware.LoggingInterceptor(m), middleware.RequireAuth(tokens)),
	)
	mux.Handle(ledgerPath, ledgerHandler)

	mux.Handle("GET /metrics", metrics.Handler(registry))
	mux.Handle("/", pages.Handler())

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           h2c.NewHandler(mux, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Server starting", "address", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
