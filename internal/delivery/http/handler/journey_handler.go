package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/journey-microservice/internal/pkg/utils"
	"github.com/journey-microservice/internal/pkg/validator"
	"github.com/journey-microservice/internal/usecase"
	"github.com/journey-microservice/internal/usecase/dto"
	"go.uber.org/zap"
)

// JourneyHandler - обработчик поездок и состояния симуляции
type JourneyHandler struct {
	journeyUC *usecase.JourneyUseCase
	routeUC   *usecase.RouteUseCase
	logger    *zap.Logger
}

// NewJourneyHandler создает новый экземпляр JourneyHandler
func NewJourneyHandler(journeyUC *usecase.JourneyUseCase, routeUC *usecase.RouteUseCase, logger *zap.Logger) *JourneyHandler {
	return &JourneyHandler{
		journeyUC: journeyUC,
		routeUC:   routeUC,
		logger:    logger,
	}
}

// CalculateRoute godoc
// @Summary Расчет маршрута
// @Description Считает маршрут между двумя ребрами и возвращает его геометрию для отрисовки
// @Tags Journeys
// @Accept json
// @Produce json
// @Param request body dto.RouteRequest true "Ребра старта и назначения"
// @Success 200 {object} utils.SuccessResponse{data=dto.RouteResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Router /api/v1/routes/calculate [post]
func (h *JourneyHandler) CalculateRoute(c *fiber.Ctx) error {
	var req dto.RouteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	resp, err := h.routeUC.GetRoutePath(c.Context(), req.StartEdge, req.EndEdge)
	if err != nil {
		return utils.SendError(c, err)
	}

	meta := &utils.Meta{Total: len(resp.Edges)}
	if len(resp.Skipped) > 0 {
		meta.Warning = "route contains edges missing from the network snapshot"
	}
	return utils.SendSuccess(c, resp, meta)
}

// StartJourney godoc
// @Summary Запуск поездки
// @Description Добавляет автомобиль в симуляцию по маршруту и начинает отслеживание его поездки. Если маршрут не передан, он рассчитывается по паре ребер.
// @Tags Journeys
// @Accept json
// @Produce json
// @Param request body dto.StartJourneyRequest true "Параметры поездки"
// @Success 200 {object} utils.SuccessResponse{data=dto.JourneyResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Router /api/v1/journeys/start [post]
func (h *JourneyHandler) StartJourney(c *fiber.Ctx) error {
	var req dto.StartJourneyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	journey, err := h.journeyUC.StartJourney(c.Context(), req.StartEdge, req.EndEdge, req.RouteEdges)
	if err != nil {
		return utils.SendError(c, err)
	}

	resp := dto.JourneyFromDomain(journey)
	return utils.SendSuccess(c, resp, nil)
}

// GetHistory godoc
// @Summary История поездок текущей сессии
// @Description Возвращает отслеживаемые поездки, новые первыми. История ограничена по емкости.
// @Tags Journeys
// @Accept json
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.JourneyListResponse}
// @Router /api/v1/journeys [get]
func (h *JourneyHandler) GetHistory(c *fiber.Ctx) error {
	history := h.journeyUC.History()

	journeys := make([]dto.JourneyResponse, 0, len(history))
	for _, j := range history {
		journeys = append(journeys, dto.JourneyFromDomain(j))
	}

	return utils.SendSuccess(c, dto.JourneyListResponse{
		Journeys: journeys,
		Total:    len(journeys),
	}, &utils.Meta{Total: len(journeys)})
}

// GetRecentJourneys godoc
// @Summary Сохраненные поездки
// @Description Возвращает последние сохраненные поездки из хранилища
// @Tags Journeys
// @Accept json
// @Produce json
// @Param limit query int false "Максимальное количество записей" default(20)
// @Success 200 {object} utils.SuccessResponse{data=dto.JourneyListResponse}
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/journeys/recent [get]
func (h *JourneyHandler) GetRecentJourneys(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)

	page, err := h.journeyUC.RecentJourneys(c.Context(), limit)
	if err != nil {
		h.logger.Error("Failed to get recent journeys", zap.Error(err))
		return utils.SendError(c, err)
	}

	journeys := make([]dto.JourneyResponse, 0, len(page.Journeys))
	for _, j := range page.Journeys {
		journeys = append(journeys, dto.JourneyFromDomain(j))
	}

	return utils.SendSuccess(c, dto.JourneyListResponse{
		Journeys: journeys,
		Total:    page.TotalCount,
	}, &utils.Meta{Total: page.TotalCount, Limit: limit})
}

// GetSimulationStatus godoc
// @Summary Состояние симуляции
// @Description Возвращает последний известный статус симуляции и активные автомобили
// @Tags Simulation
// @Accept json
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Router /api/v1/simulation/status [get]
func (h *JourneyHandler) GetSimulationStatus(c *fiber.Ctx) error {
	return utils.SendSuccess(c, fiber.Map{
		"status":   h.journeyUC.Status(),
		"vehicles": h.journeyUC.ActiveVehicles(),
	}, nil)
}

// GetActiveVehicles godoc
// @Summary Активные автомобили
// @Description Возвращает последний снимок позиций активных автомобилей
// @Tags Simulation
// @Accept json
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Router /api/v1/vehicles/active [get]
func (h *JourneyHandler) GetActiveVehicles(c *fiber.Ctx) error {
	vehicles := h.journeyUC.ActiveVehicles()
	return utils.SendSuccess(c, fiber.Map{"vehicles": vehicles}, &utils.Meta{Total: len(vehicles)})
}

// StopSimulation godoc
// @Summary Останов симуляции
// @Description Останавливает симуляцию и сбрасывает выбор. История поездок сохраняется.
// @Tags Simulation
// @Accept json
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 502 {object} utils.ErrorResponse
// @Router /api/v1/simulation/stop [post]
func (h *JourneyHandler) StopSimulation(c *fiber.Ctx) error {
	if err := h.journeyUC.StopSimulation(c.Context()); err != nil {
		h.logger.Error("Failed to stop simulation", zap.Error(err))
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, fiber.Map{"stopped": true}, nil)
}
