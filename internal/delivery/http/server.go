package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/journey-microservice/internal/config"
	"github.com/journey-microservice/internal/delivery/http/handler"
	"github.com/journey-microservice/internal/delivery/http/middleware"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"
)

// Server - HTTP сервер на основе Fiber
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	// Handlers
	networkHandler   *handler.NetworkHandler
	selectionHandler *handler.SelectionHandler
	journeyHandler   *handler.JourneyHandler
	statsHandler     *handler.StatsHandler
}

// NewServer - создание нового HTTP сервера
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	networkHandler *handler.NetworkHandler,
	selectionHandler *handler.SelectionHandler,
	journeyHandler *handler.JourneyHandler,
	statsHandler *handler.StatsHandler,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Journey Microservice",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:              app,
		config:           cfg,
		logger:           logger,
		networkHandler:   networkHandler,
		selectionHandler: selectionHandler,
		journeyHandler:   journeyHandler,
		statsHandler:     statsHandler,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// setupMiddlewares - настройка middleware
func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery())
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS())
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

// setupRoutes - настройка маршрутов
func (s *Server) setupRoutes() {
	// Swagger documentation route
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	api := s.app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// Network routes
	api.Get("/network", s.networkHandler.GetNetwork)
	api.Get("/network/geometry", s.networkHandler.GetNetworkGeometry)
	api.Post("/network/reload", s.networkHandler.ReloadNetwork)

	// Selection routes
	api.Get("/selection", s.selectionHandler.GetSelection)
	api.Post("/selection/click", s.selectionHandler.Click)
	api.Post("/selection/reset", s.selectionHandler.Reset)

	// Route calculation
	api.Post("/routes/calculate", s.journeyHandler.CalculateRoute)

	// Journey routes
	api.Get("/journeys", s.journeyHandler.GetHistory)
	api.Get("/journeys/recent", s.journeyHandler.GetRecentJourneys)
	api.Post("/journeys/start", s.journeyHandler.StartJourney)

	// Simulation routes
	api.Get("/simulation/status", s.journeyHandler.GetSimulationStatus)
	api.Get("/vehicles/active", s.journeyHandler.GetActiveVehicles)
	api.Post("/simulation/stop", s.journeyHandler.StopSimulation)

	// Stats
	api.Get("/stats", s.statsHandler.GetStatistics)
	api.Post("/stats/refresh", s.statsHandler.RefreshStatistics)
}

// Start - запуск HTTP сервера
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - graceful shutdown HTTP сервера
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// customErrorHandler - кастомный обработчик ошибок
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
		}

		logger.Error("HTTP Error",
			zap.String("path", c.Path()),
			zap.Int("status", code),
			zap.Error(err),
		)

		return c.Status(code).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    "INTERNAL_SERVER_ERROR",
				"message": err.Error(),
			},
		})
	}
}
