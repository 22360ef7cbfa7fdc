package main

import (
	"context"
	"fmt"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fadilmartias/skillsync-api/internal/auth"
	"github.com/fadilmartias/skillsync-api/internal/config"
	"github.com/fadilmartias/skillsync-api/internal/seed"
	"github.com/fadilmartias/skillsync-api/internal/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	appConfig := config.LoadAppConfig()
	authConfig := config.LoadAuthConfig()
	if err := authConfig.Validate(appConfig); err != nil {
		return err
	}

	store, closeDB, err := openStore()
	if err != nil {
		return err
	}
	defer closeDB()

	if _, err := seed.SeedCareers(ctx, store, log); err != nil {
		return err
	}

	files, err := newObjectStore(ctx)
	if err != nil {
		return err
	}
	publisher := newPublisher()
	defer publisher.Close()

	app := server.New(appConfig, server.Dependencies{
		Store:     store,
		Gateway:   newGateway(ctx),
		Files:     files,
		Publisher: publisher,
		Tokens:    auth.NewTokenIssuer(authConfig.JWTSecret, authConfig.TokenTTL),
		Log:       log,
		AccessLog: true,
	})

	go monitorGoroutines(ctx)

	errCh := make(chan error, 1)
	go func() {
		log.Info("server running", zap.String("addr", appConfig.Port), zap.String("env", appConfig.Env))
		errCh <- app.Listen(appConfig.Port)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server stopped: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return app.ShutdownWithContext(shutdownCtx)
}

func monitorGoroutines(ctx context.Context) {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			log.Debug("runtime stats", zap.Int("goroutines", runtime.NumGoroutine()))
		}
	}
}
