package main

import (
	"context"
	"errors"
	"io"
	"log"
	"os/signal"
	"syscall"

	"github.com/yourusername/retail-sim-bot/config"
	"github.com/yourusername/retail-sim-bot/internal/delivery/telegram"
	"github.com/yourusername/retail-sim-bot/internal/domain/repository"
	"github.com/yourusername/retail-sim-bot/internal/infrastructure/gemini"
	"github.com/yourusername/retail-sim-bot/internal/infrastructure/logging"
	"github.com/yourusername/retail-sim-bot/internal/infrastructure/parser"
	"github.com/yourusername/retail-sim-bot/internal/infrastructure/storage"
	"github.com/yourusername/retail-sim-bot/internal/usecase"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := logging.Init(logging.Options{
		Mode:     cfg.AppEnv,
		Level:    cfg.LogLevel,
		Filename: cfg.LogFile,
	})
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Session store
	locationRepo := storage.NewMemoryLocationRepository()
	workspaceRepo := storage.NewMemoryWorkspaceRepository()

	// Calculation history, SQLite when a path is configured
	var calcRepo repository.CalculationRepository
	if cfg.CalcDBPath != "" {
		calcRepo, err = storage.NewSQLiteCalculationRepository(cfg.CalcDBPath, cfg.MaxHistory)
		if err != nil {
			zap.S().Fatalf("failed to open calculation history: %v", err)
		}
		zap.S().Infof("calculation history stored in %s", cfg.CalcDBPath)
	} else {
		calcRepo = storage.NewMemoryCalculationRepository(cfg.MaxHistory)
	}

	// Optional advisor
	var aiRepo repository.AIRepository
	if cfg.AdvisorEnabled() {
		aiRepo, err = gemini.NewGeminiClient(ctx, cfg.GeminiAPIKey)
		if err != nil {
			zap.S().Fatalf("failed to create Gemini client: %v", err)
		}
		if closer, ok := aiRepo.(io.Closer); ok {
			defer closer.Close()
		}
	} else {
		zap.S().Info("GEMINI_API_KEY not set, /advice is disabled")
	}

	locationUseCase := usecase.NewLocationUseCase(locationRepo, workspaceRepo, parser.NewCatalogParser())
	metricsUseCase := usecase.NewMetricsUseCase(locationUseCase, calcRepo)
	advisorUseCase := usecase.NewAdvisorUseCase(aiRepo, locationUseCase, calcRepo)

	handler, err := telegram.NewBotHandler(cfg.TelegramToken, locationUseCase, metricsUseCase, advisorUseCase)
	if err != nil {
		zap.S().Fatalf("failed to create bot handler: %v", err)
	}

	if err := handler.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		zap.S().Fatalf("bot stopped: %v", err)
	}
	zap.S().Info("bot stopped")
}
