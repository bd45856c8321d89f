// Package main runs the storefront API server.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	gcs "cloud.google.com/go/storage"
	_ "github.com/lib/pq"

	app "github.com/udvasito/storefront/internal/app"
	"github.com/udvasito/storefront/internal/app/auth"
	"github.com/udvasito/storefront/internal/app/httpapi"
	"github.com/udvasito/storefront/internal/app/metrics"
	"github.com/udvasito/storefront/internal/app/storage/memory"
	"github.com/udvasito/storefront/internal/app/storage/postgres"
	"github.com/udvasito/storefront/internal/config"
	"github.com/udvasito/storefront/internal/imagehost"
	"github.com/udvasito/storefront/internal/logging"
	"github.com/udvasito/storefront/internal/mailer"
	"github.com/udvasito/storefront/internal/middleware"
)

func main() {
	addr := flag.String("addr", "", "listen address, overrides SERVER_HOST/SERVER_PORT")
	auditFile := flag.String("audit-file", "", "path for the JSONL admin audit log")
	seed := flag.Bool("seed", true, "seed an empty catalog with the launch inventory")
	flag.Parse()

	if v := os.Getenv("AUDIT_FILE"); v != "" {
		*auditFile = v
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	log := logging.New(cfg.Logging)
	log.WithFields(map[string]any{
		"host": cfg.Server.Host,
		"port": cfg.Server.Port,
	}).Info("starting storefront server")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stores, dbClose, err := buildStores(ctx, cfg, log)
	if err != nil {
		log.WithError(err).Error("initialise storage")
		os.Exit(1)
	}
	if dbClose != nil {
		defer dbClose()
	}

	opts := app.Options{
		Auth: auth.NewManager(cfg.Admin.Password, cfg.Admin.JWTSecret),
	}
	if cfg.Email.APIKey != "" {
		notifier, err := mailer.NewSendGridNotifier(cfg.Email)
		if err != nil {
			log.WithError(err).Error("configure email provider")
			os.Exit(1)
		}
		opts.Notifier = notifier
	}
	if cfg.ImageHost.Bucket != "" {
		client, err := gcs.NewClient(ctx)
		if err != nil {
			log.WithError(err).Error("configure image host client")
			os.Exit(1)
		}
		defer client.Close()
		uploader, err := imagehost.NewGCSUploader(client, cfg.ImageHost)
		if err != nil {
			log.WithError(err).Error("configure image host")
			os.Exit(1)
		}
		opts.Uploader = uploader
	} else {
		log.Warn("IMAGE_BUCKET not set; image uploads disabled")
	}
	if !opts.Auth.Enabled() {
		log.Warn("ADMIN_PASSWORD not set; catalog mutations are unauthenticated")
	}

	application, err := app.New(stores, opts, log)
	if err != nil {
		log.WithError(err).Error("build application")
		os.Exit(1)
	}
	if *seed {
		if err := app.Seed(ctx, stores.Books, stores.Portfolio); err != nil {
			log.WithError(err).Error("seed catalog")
			os.Exit(1)
		}
	}

	if err := application.Start(ctx); err != nil {
		log.WithError(err).Error("start application")
		os.Exit(1)
	}
	defer application.Stop(context.Background())

	api := httpapi.New(application, log)
	if *auditFile != "" {
		if err := api.EnableAuditFile(*auditFile); err != nil {
			log.WithError(err).Error("open audit file")
			os.Exit(1)
		}
	}

	handler := buildMiddleware(api.Router(), cfg, log)

	listenAddr := *addr
	if listenAddr == "" {
		listenAddr = fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	}
	server := &http.Server{
		Addr:         listenAddr,
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("listening on %s", listenAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		log.WithError(err).Error("server error")
		os.Exit(1)
	case sig := <-sigCh:
		log.Infof("received %s, shutting down", sig)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("shutdown")
		os.Exit(1)
	}
	log.Info("server stopped")
}

// buildStores selects Postgres when a DSN is configured, otherwise the
// in-memory store.
func buildStores(ctx context.Context, cfg *config.Config, log *logging.Logger) (app.Stores, func(), error) {
	if cfg.Database.DSN == "" {
		log.Warn("DATABASE_URL not set; using in-memory storage")
		mem := memory.New()
		return app.Stores{Books: mem, Portfolio: mem}, nil, nil
	}

	db, err := sql.Open(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		return app.Stores{}, nil, fmt.Errorf("open database: %w", err)
	}
	if cfg.Database.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	}
	if cfg.Database.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	}
	if cfg.Database.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)
	}

	pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
	defer pingCancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return app.Stores{}, nil, fmt.Errorf("ping database: %w", err)
	}
	if err := postgres.EnsureSchema(ctx, db); err != nil {
		db.Close()
		return app.Stores{}, nil, fmt.Errorf("ensure schema: %w", err)
	}

	store := postgres.New(db)
	return app.Stores{Books: store, Portfolio: store}, func() { db.Close() }, nil
}

// buildMiddleware wires the request pipeline: tracing, CORS, rate limiting,
// then metrics closest to the handler.
func buildMiddleware(handler http.Handler, cfg *config.Config, log *logging.Logger) http.Handler {
	handler = metrics.InstrumentHandler(handler)

	if cfg.Server.RateLimit > 0 {
		limiter := middleware.NewRateLimiter(cfg.Server.RateLimit, cfg.Server.RateBurst, log)
		limiter.StartCleanup(5 * time.Minute)
		handler = limiter.Handler(handler)
	}

	cors := middleware.NewCORSMiddleware(cfg.Server.Origins())
	handler = cors.Handler(handler)

	tracing := middleware.NewTracingMiddleware(log)
	return tracing.Handler(handler)
}
