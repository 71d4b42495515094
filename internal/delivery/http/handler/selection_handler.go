package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/journey-microservice/internal/pkg/utils"
	"github.com/journey-microservice/internal/pkg/validator"
	"github.com/journey-microservice/internal/usecase"
	"github.com/journey-microservice/internal/usecase/dto"
	"go.uber.org/zap"
)

// SelectionHandler - обработчик выбора ребер
type SelectionHandler struct {
	selectionUC *usecase.SelectionUseCase
	logger      *zap.Logger
}

// NewSelectionHandler создает новый экземпляр SelectionHandler
func NewSelectionHandler(selectionUC *usecase.SelectionUseCase, logger *zap.Logger) *SelectionHandler {
	return &SelectionHandler{
		selectionUC: selectionUC,
		logger:      logger,
	}
}

// Click godoc
// @Summary Клик по ребру
// @Description Обрабатывает клик по ребру: первый выбирает точку старта, второй - назначение и запускает расчет маршрута. Экспресс-дороги и повторный выбор отклоняются.
// @Tags Selection
// @Accept json
// @Produce json
// @Param request body dto.ClickRequest true "ID ребра"
// @Success 200 {object} utils.SuccessResponse{data=domain.Selection}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Router /api/v1/selection/click [post]
func (h *SelectionHandler) Click(c *fiber.Ctx) error {
	var req dto.ClickRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	sel, err := h.selectionUC.Click(c.Context(), req.EdgeID)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, sel, nil)
}

// GetSelection godoc
// @Summary Текущее состояние выбора
// @Description Возвращает выбранные ребра, рассчитанный маршрут и флаг блокировки
// @Tags Selection
// @Accept json
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=domain.Selection}
// @Router /api/v1/selection [get]
func (h *SelectionHandler) GetSelection(c *fiber.Ctx) error {
	return utils.SendSuccess(c, h.selectionUC.Selection(), nil)
}

// Reset godoc
// @Summary Сброс выбора
// @Description Сбрасывает выбор и маршрут. Допустим из любого состояния, историю поездок не трогает.
// @Tags Selection
// @Accept json
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Router /api/v1/selection/reset [post]
func (h *SelectionHandler) Reset(c *fiber.Ctx) error {
	h.selectionUC.Reset()
	return utils.SendSuccess(c, h.selectionUC.Selection(), nil)
}
