package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/credeq/credeq/internal/adapters/cache"
	"github.com/credeq/credeq/internal/adapters/http/api"
	"github.com/credeq/credeq/internal/adapters/model"
	service "github.com/credeq/credeq/internal/app"
	"github.com/credeq/credeq/internal/config"
	"github.com/credeq/credeq/internal/domain/decision"
	"github.com/credeq/credeq/internal/domain/extract"
	"github.com/credeq/credeq/internal/domain/similarity"
	"github.com/credeq/credeq/pkg/logger"
)

// HTTP server timeout constants.
const (
	readTimeout       = 30 * time.Second
	writeTimeout      = 120 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func main() {
	// Initialize logging
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	loggerInstance := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		loggerInstance.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	// Model client shared by the scorer and the extraction fallback.
	client := model.NewClient(cfg.EmbedModel, cfg.GenerateModel,
		model.WithBaseURL(cfg.ModelBaseURL),
		model.WithTimeout(time.Duration(cfg.ModelTimeoutMS)*time.Millisecond),
		model.WithMaxConcurrent(cfg.ModelMaxConcurrent),
	)

	var scorer similarity.Scorer
	var extraOpts []service.Option
	switch cfg.Scorer {
	case "tfidf":
		scorer = similarity.NewTFIDFScorer()
	default:
		embedder := cache.New(client, cache.WithMaxSize(cfg.EmbeddingCacheSize))
		scorer = similarity.NewEmbeddingScorer(embedder)
		extraOpts = append(extraOpts, service.WithCacheSizer(embedder))
	}

	extractor := extract.New(
		extract.WithMinMatchScore(cfg.MinMatchScore),
		extract.WithWindowRadius(cfg.WindowRadius),
		extract.WithGenerator(client),
		extract.WithGenerateMaxTokens(cfg.GenerateMaxTokens),
	)

	// Create and start the service with configuration options
	opts := append([]service.Option{
		service.WithLogger(loggerInstance),
		service.WithScorer(scorer),
		service.WithExtractor(extractor),
		service.WithThresholds(decision.Thresholds{
			SimilarityMin:   cfg.SimilarityMin,
			MinPassingGrade: cfg.MinPassingGrade,
			MinCreditHours:  cfg.MinCreditHours,
		}),
	}, extraOpts...)
	svc := service.New(opts...)
	if err := svc.Start(ctx); err != nil {
		os.Stderr.WriteString("failed to start service: " + err.Error() + "\n")
		return
	}
	defer svc.Stop()

	// HTTP mux and routes.
	mux := http.NewServeMux()
	apiServer := api.NewServer(svc, svc)
	apiServer.Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	// Start the HTTP server
	go func() {
		loggerInstance.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr), logger.String("scorer", cfg.Scorer))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
			return
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	loggerInstance.Info(ctx, "shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		loggerInstance.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	loggerInstance.Info(ctx, "server stopped")
}
