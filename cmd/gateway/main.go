package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "go.uber.org/automaxprocs"

	"github.com/yourorg/gig-optimizer-gateway/internal/api"
	"github.com/yourorg/gig-optimizer-gateway/internal/config"
	"github.com/yourorg/gig-optimizer-gateway/internal/db"
	"github.com/yourorg/gig-optimizer-gateway/internal/logging"
	"github.com/yourorg/gig-optimizer-gateway/internal/ollama"
	"github.com/yourorg/gig-optimizer-gateway/internal/store"
)

func main() {

	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on environment")
	}

	cfg := config.MustLoad()

	logger := logging.New(cfg.LogLevel)
	logger.Info().
		Str("addr", cfg.HTTPAddr).
		Str("model", cfg.Model).
		Str("ollama_url", cfg.OllamaURL).
		Msg("starting gateway")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The usage ledger is optional; without DATABASE_URL the gateway needs
	// nothing but a running Ollama server.
	var usage ollama.Sink
	if cfg.DatabaseURL != "" {
		pool := db.MustConnect(ctx, cfg.DatabaseURL)
		defer pool.Close()

		if err := db.Migrate(ctx, pool); err != nil {
			logger.Fatal().Err(err).Msg("db migration failed")
		}
		usage = store.Sink{Repo: store.New(pool).Usage(), Log: logger}
		logger.Info().Msg("usage ledger enabled")
	}

	client := ollama.New(cfg, logger, usage)
	app := api.NewServer(cfg, client, logger)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info().Msg("listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("http server error")
		}
	}()

	// graceful shutdown
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	logger.Info().Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = srv.Shutdown(shutdownCtx)
}
