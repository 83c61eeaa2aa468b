package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/safar/go-lounge-pos/internal/api"
	"github.com/safar/go-lounge-pos/internal/auth"
	"github.com/safar/go-lounge-pos/internal/config"
	"github.com/safar/go-lounge-pos/internal/database"
	"github.com/safar/go-lounge-pos/internal/ledger"
	"github.com/safar/go-lounge-pos/internal/logger"
	"github.com/safar/go-lounge-pos/internal/messaging"
	"github.com/safar/go-lounge-pos/internal/pos"
	"github.com/safar/go-lounge-pos/internal/seed"
	"github.com/safar/go-lounge-pos/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New("lounge-pos", cfg.Log.Level)

	if err := run(cfg, log); err != nil {
		log.Error("server stopped", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *slog.Logger) error {
	backend, err := openBackend(cfg, log)
	if err != nil {
		return err
	}
	collections := store.NewCollections(backend)
	defer collections.Close()

	log.Info("storage ready", slog.String("driver", cfg.Storage.Driver))

	ctx := context.Background()
	if err := seed.Run(ctx, collections, seed.Passwords{
		Admin:  cfg.Seed.AdminPassword,
		Waiter: cfg.Seed.WaiterPassword,
	}, log); err != nil {
		return fmt.Errorf("seed collections: %w", err)
	}

	opts := []pos.Option{
		pos.WithLogger(log),
		pos.WithCalendar(ledger.Calendar{
			Location:  cfg.Analytics.Location,
			WeekStart: cfg.Analytics.WeekStart,
		}),
	}

	if cfg.Broker.URL != "" {
		publisher, err := messaging.Dial(cfg.Broker.URL, cfg.Broker.Exchange, log)
		if err != nil {
			return fmt.Errorf("connect broker: %w", err)
		}
		defer publisher.Close()

		opts = append(opts, pos.WithPublisher(publisher))
		log.Info("publishing ledger events", slog.String("exchange", cfg.Broker.Exchange))
	}

	svc := pos.New(collections, opts...)

	gin.SetMode(cfg.Server.Mode)
	router := api.NewRouter(api.Deps{
		Service:        svc,
		Authenticator:  auth.NewAuthenticator(collections),
		Tokens:         auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.SessionTTL),
		Logger:         log,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		CookieSecure:   cfg.Auth.CookieSecure,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting", slog.String("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
	case sig := <-quit:
		log.Info("shutting down", slog.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	log.Info("server stopped")
	return nil
}

func openBackend(cfg *config.Config, log *slog.Logger) (store.Backend, error) {
	switch cfg.Storage.Driver {
	case config.StorageMemory:
		return store.NewMemory(), nil
	case config.StoragePostgres:
		db, err := database.NewConnection(&cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		return store.NewPostgres(db), nil
	case config.StorageSQLite:
		backend, err := store.NewSQLite(cfg.Storage.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		return backend, nil
	default:
		return store.NewFile(cfg.Storage.DataDir, log), nil
	}
}
