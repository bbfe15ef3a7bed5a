// Command claimsift runs the fact-checking pipeline as an HTTP server.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/claimsift/claimsift/internal/app"
	"github.com/claimsift/claimsift/internal/classify"
	"github.com/claimsift/claimsift/internal/config"
	"github.com/claimsift/claimsift/internal/scrape"
	"github.com/claimsift/claimsift/internal/server"
	"github.com/claimsift/claimsift/internal/session"
	"github.com/claimsift/claimsift/internal/store"
)

func main() {
	// A missing .env is fine; the environment may be set directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			zap.NewExample().Fatal("failed to load config", zap.Error(err))
		}
		cfg = config.Default()
	}
	cfg.ApplyEnv()

	logger, err := newLogger(cfg)
	if err != nil {
		os.Exit(1)
	}
	defer logger.Sync()

	if cfg.Classify.APIKey == "" {
		logger.Fatal("no API key configured",
			zap.String("provider", cfg.Classify.Provider))
	}

	sessionsRoot := cfg.Scraping.SessionsDir
	if sessionsRoot == "" {
		sessionsRoot, err = session.DefaultRoot()
		if err != nil {
			logger.Fatal("failed to resolve sessions directory", zap.Error(err))
		}
	}
	sessions := session.NewStore(sessionsRoot)

	var cache *store.ExchangeCache
	if cfg.Classify.CacheExchanges {
		cacheDir, err := config.CacheDir()
		if err != nil {
			logger.Fatal("failed to resolve cache directory", zap.Error(err))
		}
		cache = store.NewExchangeCache(filepath.Join(cacheDir, "llm"))
	}

	provider, err := classify.NewProvider(cfg.Classify, cache, logger)
	if err != nil {
		logger.Fatal("failed to build LLM provider", zap.Error(err))
	}
	extractor := classify.NewExtractor(provider, logger)

	dispatcher := scrape.NewDispatcher(
		scrape.NewRedditRetriever(logger),
		scrape.NewYouTubeRetriever(
			scrape.NewYtDlpMetadata(cfg.Scraping.YtDlpPath),
			scrape.NewYtDlpTranscript(cfg.Scraping.YtDlpPath),
			logger,
		),
		scrape.NewBrowserRetriever(sessions, cfg.ServerMode(), logger),
		logger,
	)

	pipeline := app.New(dispatcher, extractor, logger)

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: server.New(pipeline, logger),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("starting server",
			zap.String("addr", cfg.Server.Addr),
			zap.String("environment", cfg.Environment),
			zap.String("provider", cfg.Classify.Provider))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("shutdown did not complete cleanly", zap.Error(err))
	}
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.ServerMode() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
