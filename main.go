package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"lastmile/internal/config"
	"lastmile/internal/pipeline"
	"lastmile/internal/session"
	"lastmile/ui"
)

func main() {
	// Load .env file if present (ignore errors - env vars might be set directly)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Configuration error: %v", err)
	}

	manager := session.NewManager(pipeline.NewLoader(), cfg.Data.MaxSessions)

	app, err := ui.NewApp(cfg, manager)
	if err != nil {
		log.Fatalf("❌ Failed to initialize UI: %v", err)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: app.Handler(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		log.Printf("🚚 Delivery analytics server listening on :%s (dataset: %s)",
			cfg.Server.Port, cfg.Data.SourceFile)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	group.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(),
			time.Duration(cfg.Server.ShutdownSeconds)*time.Second)
		defer cancel()
		log.Println("Shutting down...")
		return server.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		log.Fatalf("❌ Server error: %v", err)
	}
}
