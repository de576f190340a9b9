package main

import (
	"context"
	"errors"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Arnobrizwan/ecosphere-ai-farming-simulator-sub004/internal/config"
	"github.com/Arnobrizwan/ecosphere-ai-farming-simulator-sub004/internal/engine/trigger"
	"github.com/Arnobrizwan/ecosphere-ai-farming-simulator-sub004/internal/repository/mongodb"
	"github.com/Arnobrizwan/ecosphere-ai-farming-simulator-sub004/internal/repository/sheets"
	"github.com/Arnobrizwan/ecosphere-ai-farming-simulator-sub004/internal/scheduler"
	"github.com/Arnobrizwan/ecosphere-ai-farming-simulator-sub004/internal/sensors"
	"github.com/Arnobrizwan/ecosphere-ai-farming-simulator-sub004/internal/server/handlers"
	"github.com/Arnobrizwan/ecosphere-ai-farming-simulator-sub004/internal/server/router"
	advisorsvc "github.com/Arnobrizwan/ecosphere-ai-farming-simulator-sub004/internal/service/advisor"
	settingssvc "github.com/Arnobrizwan/ecosphere-ai-farming-simulator-sub004/internal/service/settings"
	"github.com/Arnobrizwan/ecosphere-ai-farming-simulator-sub004/internal/store"
	"github.com/Arnobrizwan/ecosphere-ai-farming-simulator-sub004/pkg/clients/anthropic"
	"github.com/Arnobrizwan/ecosphere-ai-farming-simulator-sub004/pkg/clients/nasa"
	"github.com/Arnobrizwan/ecosphere-ai-farming-simulator-sub004/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	mongoRepo, err := mongodb.NewMongoDBRepository(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
	if err != nil {
		baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
	}
	defer func() {
		if err := mongoRepo.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}()

	var sheetsRepo sheets.Repository
	if cfg.Sheets.SpreadsheetID != "" {
		sheetsRepo, err = sheets.NewGoogleSheetRepository(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
		baseLogger.Info("sheets export enabled")
	} else {
		baseLogger.Info("sheets export disabled, no spreadsheet configured")
	}

	var cacheClient *redis.Client
	if cfg.Redis.Addr != "" {
		cacheClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		baseLogger.Info("sensor cache enabled", zap.String("addr", cfg.Redis.Addr))
	} else {
		baseLogger.Warn("redis address missing, sensor cache disabled")
	}

	nasaClient := nasa.NewClient(cfg.NASA.PowerBaseURL)
	sensorSvc := sensors.NewService(nasaClient, cacheClient, baseLogger.Named("svc.sensors"))

	// Initialize AI Client
	var aiClient anthropic.Client
	if cfg.AI.AnthropicKey != "" {
		aiClient = anthropic.NewClient(cfg.AI.AnthropicKey)
		baseLogger.Info("anthropic coach enabled")
	} else {
		baseLogger.Warn("anthropic api key missing, coach elaboration disabled")
	}

	st := store.New()
	store.SeedDemo(st, time.Now())

	dispatcher := trigger.NewDispatcher(cfg.Advisor.TriggerMinInterval, baseLogger.Named("triggers"))
	for _, t := range trigger.Defaults() {
		dispatcher.Register(t)
	}

	seed := cfg.Advisor.RandomSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	advisorSvc := advisorsvc.NewService(st, sensorSvc, dispatcher, aiClient,
		cfg.Farm.Latitude, cfg.Farm.Longitude, rng, baseLogger.Named("svc.advisor"))
	settingsSvc := settingssvc.NewService(mongoRepo, baseLogger.Named("svc.settings"))

	advisorHandler := handlers.NewAdvisorHandler(advisorSvc, st, baseLogger.Named("handlers.advisor"))
	settingsHandler := handlers.NewSettingsHandler(settingsSvc, baseLogger.Named("handlers.settings"))
	engine := router.New(advisorHandler, settingsHandler, baseLogger.Named("router"))

	// Initialize Scheduler
	sched := scheduler.NewScheduler(*cfg, advisorSvc, mongoRepo, sheetsRepo, baseLogger.Named("scheduler"))
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
