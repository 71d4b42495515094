package main

// @title Journey Microservice API
// @version 1.0.0
// @description Микросервис отслеживания поездок в транспортной симуляции. Предоставляет API для выбора ребер дорожной сети, расчета маршрутов, запуска поездок и статистики точности ETA-предсказаний.
// @description
// @description Основные возможности:
// @description - Геометрия дорожной сети, готовая к отрисовке
// @description - Выбор старта и назначения кликами по ребрам
// @description - Расчет маршрута и его геометрии
// @description - Запуск и отслеживание поездок симулируемых автомобилей
// @description - Статистика точности предсказаний (MAE, RMSE, MAPE)

// @contact.name API Support
// @contact.email support@journey-microservice.com

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/journey-microservice/docs"
	"github.com/journey-microservice/internal/config"
	httpDelivery "github.com/journey-microservice/internal/delivery/http"
	"github.com/journey-microservice/internal/delivery/http/handler"
	"github.com/journey-microservice/internal/infrastructure/simulation"
	"github.com/journey-microservice/internal/pkg/logger"
	"github.com/journey-microservice/internal/repository/cache"
	"github.com/journey-microservice/internal/repository/postgres"
	redisRepo "github.com/journey-microservice/internal/repository/redis"
	"github.com/journey-microservice/internal/usecase"
	"github.com/journey-microservice/internal/worker"
	journeyWorker "github.com/journey-microservice/internal/worker/journey"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Journey Microservice")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.String("simulation_url", cfg.Simulation.BaseURL),
	)

	// 3. Connect to PostgreSQL
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()
	log.Info("PostgreSQL connected")

	// 4. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()
	log.Info("Redis connected")

	// 5. Health checks
	healthCtx, healthCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer healthCancel()

	if err := db.Health(healthCtx); err != nil {
		log.Fatal("PostgreSQL health check failed", zap.Error(err))
	}
	if err := redisClient.Health(healthCtx); err != nil {
		log.Fatal("Redis health check failed", zap.Error(err))
	}
	log.Info("All connections healthy")

	// 6. Initialize repositories
	simRepo := simulation.NewClient(&cfg.Simulation, log)
	journeyRepo := postgres.NewJourneyRepository(db, log)
	cacheRepo := cache.NewCacheRepository(redisClient)
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), log)
	log.Info("Repositories initialized")

	// 7. Initialize use cases
	networkUC := usecase.NewNetworkUseCase(simRepo, cacheRepo, &cfg.Cache, log)
	routeUC := usecase.NewRouteUseCase(simRepo, networkUC, log)
	selectionUC := usecase.NewSelectionUseCase(networkUC, routeUC, &cfg.Tracker, log)
	statsUC := usecase.NewStatsUseCase(journeyRepo, cacheRepo, &cfg.Cache, &cfg.Stats, log)
	journeyUC := usecase.NewJourneyUseCase(simRepo, journeyRepo, streamRepo, selectionUC, statsUC, &cfg.Tracker, log)
	log.Info("Use cases initialized")

	// Прогреваем снапшот сети: отказ не фатален, загрузится лениво
	warmCtx, warmCancel := context.WithTimeout(context.Background(), cfg.Simulation.RequestTimeout)
	if _, err := networkUC.LoadNetwork(warmCtx); err != nil {
		log.Warn("Network snapshot warm-up failed, will retry on demand", zap.Error(err))
	}
	warmCancel()

	// 8. Initialize HTTP handlers
	networkHandler := handler.NewNetworkHandler(networkUC, log)
	selectionHandler := handler.NewSelectionHandler(selectionUC, log)
	journeyHandler := handler.NewJourneyHandler(journeyUC, routeUC, log)
	statsHandler := handler.NewStatsHandler(statsUC, log)
	log.Info("HTTP handlers initialized")

	// 9. Initialize HTTP server
	server := httpDelivery.NewServer(
		cfg,
		log,
		networkHandler,
		selectionHandler,
		journeyHandler,
		statsHandler,
	)
	log.Info("HTTP server initialized")

	// 10. Start the journey tracker poll loop
	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()

	workerManager := worker.NewManager(log)
	workerManager.Register(journeyWorker.NewTrackerWorker(journeyUC, cfg.Tracker.PollInterval, log))
	if err := workerManager.Start(workerCtx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	// 11. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 12. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	workerCancel()
	if err := workerManager.Stop(); err != nil {
		log.Error("Error stopping workers", zap.Error(err))
	}

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
