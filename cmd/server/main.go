package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"inmobot/internal/config"
	"inmobot/internal/extractor"
	"inmobot/internal/logger"
	"inmobot/internal/repository"
	"inmobot/internal/search"
	"inmobot/internal/server"
	"inmobot/internal/service"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer func() { _ = log.Sync() }()

	log.Info("starting inmobot API",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
		zap.String("git_commit", GitCommit),
	)

	gin.SetMode(cfg.Server.GinMode)

	ctx := context.Background()

	// Profile store
	store, err := repository.NewStore(ctx, &cfg.Store)
	if err != nil {
		log.Fatal("failed to initialize profile store", zap.Error(err))
	}
	defer store.Close()
	log.Info("profile store ready", zap.String("backend", store.Name()))

	// Conversational model
	openaiClient := service.NewOpenAIClient(&cfg.OpenAI)
	if openaiClient.IsEnabled() {
		log.Info("OpenAI client initialized",
			zap.String("api_base", cfg.OpenAI.APIBase),
			zap.String("chat_model", openaiClient.ChatModel()),
			zap.Float64("temperature", cfg.OpenAI.ChatTemperature),
			zap.Int("max_tokens", cfg.OpenAI.ChatMaxTokens),
		)
	} else {
		log.Warn("OpenAI is disabled, /chat will fail until OPENAI_API_KEY is set")
	}
	chatService := service.NewChatService(openaiClient, openaiClient.ChatModel(),
		cfg.OpenAI.ChatTemperature, cfg.OpenAI.ChatMaxTokens, log)

	// Listing search
	if cfg.Search.APIKey == "" {
		log.Warn("TAVILY_API_KEY not set, /rank will serve fallback listings")
	}
	searchService := search.NewService(search.NewTavilyClient(&cfg.Search), cfg.Search.Domains, cfg.Search.CacheTTL, log)
	var completer extractor.Completer
	if openaiClient.IsEnabled() {
		completer = openaiClient
	}
	criteriaExtractor := extractor.New(cfg.Extractor.Mode, completer, log)
	log.Info("criteria extractor ready", zap.String("mode", cfg.Extractor.Mode))

	rankService := service.NewRankService(store, searchService, criteriaExtractor, log).WithHistory(store)

	router := server.NewRouter(server.Deps{
		Chat:    chatService,
		Store:   store,
		History: store,
		Ranker:  rankService,
		Health: server.HealthInfoFor(cfg, store.Name(), server.BuildInfo{
			Version:   Version,
			BuildTime: BuildTime,
			GitCommit: GitCommit,
		}),
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Logger:         log,
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info("listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
	}
	log.Info("server stopped")
}
