package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/journey-microservice/internal/pkg/utils"
	"github.com/journey-microservice/internal/usecase"
	"go.uber.org/zap"
)

// NetworkHandler - обработчик запросов геометрии дорожной сети
type NetworkHandler struct {
	networkUC *usecase.NetworkUseCase
	logger    *zap.Logger
}

// NewNetworkHandler создает новый экземпляр NetworkHandler
func NewNetworkHandler(networkUC *usecase.NetworkUseCase, logger *zap.Logger) *NetworkHandler {
	return &NetworkHandler{
		networkUC: networkUC,
		logger:    logger,
	}
}

// GetNetwork godoc
// @Summary Снапшот дорожной сети
// @Description Возвращает граф сети как есть: ребра, узлы и границы
// @Tags Network
// @Accept json
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=domain.NetworkGraph}
// @Failure 503 {object} utils.ErrorResponse
// @Router /api/v1/network [get]
func (h *NetworkHandler) GetNetwork(c *fiber.Ctx) error {
	graph, err := h.networkUC.GetNetwork(c.Context())
	if err != nil {
		h.logger.Error("Failed to get network", zap.Error(err))
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, graph, &utils.Meta{Total: len(graph.Edges)})
}

// GetNetworkGeometry godoc
// @Summary Геометрия дорожной сети
// @Description Возвращает отрисовываемую геометрию всех ребер сети: путь каждого ребра, его центр и признак экспресс-дороги, а также границы сети
// @Tags Network
// @Accept json
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.NetworkGeometryResponse}
// @Failure 503 {object} utils.ErrorResponse
// @Router /api/v1/network/geometry [get]
func (h *NetworkHandler) GetNetworkGeometry(c *fiber.Ctx) error {
	resp, err := h.networkUC.GetNetworkGeometry(c.Context())
	if err != nil {
		h.logger.Error("Failed to get network geometry", zap.Error(err))
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, resp, &utils.Meta{Total: resp.Total})
}

// ReloadNetwork godoc
// @Summary Перезагрузка снапшота сети
// @Description Принудительно перечитывает дорожную сеть из симуляционного backend, минуя кеш
// @Tags Network
// @Accept json
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 502 {object} utils.ErrorResponse
// @Router /api/v1/network/reload [post]
func (h *NetworkHandler) ReloadNetwork(c *fiber.Ctx) error {
	graph, err := h.networkUC.ReloadNetwork(c.Context())
	if err != nil {
		h.logger.Error("Failed to reload network", zap.Error(err))
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, fiber.Map{
		"edges":     len(graph.Edges),
		"junctions": len(graph.Junctions),
	}, nil)
}
