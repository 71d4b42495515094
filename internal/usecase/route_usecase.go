package usecase

import (
	"context"
	"fmt"

	"github.com/journey-microservice/internal/domain"
	"github.com/journey-microservice/internal/domain/repository"
	"github.com/journey-microservice/internal/geometry"
	"github.com/journey-microservice/internal/pkg/errors"
	"github.com/journey-microservice/internal/usecase/dto"
	"go.uber.org/zap"
)

// RouteUseCase считает маршруты через симуляционный backend и строит
// их геометрию для отрисовки
type RouteUseCase struct {
	simRepo   repository.SimulationRepository
	networkUC *NetworkUseCase
	logger    *zap.Logger
}

// NewRouteUseCase создает новый экземпляр RouteUseCase
func NewRouteUseCase(
	simRepo repository.SimulationRepository,
	networkUC *NetworkUseCase,
	logger *zap.Logger,
) *RouteUseCase {
	return &RouteUseCase{
		simRepo:   simRepo,
		networkUC: networkUC,
		logger:    logger,
	}
}

// CalculateRoute считает маршрут между двумя ребрами через backend.
// Пустой маршрут означает, что пути между ребрами нет.
func (uc *RouteUseCase) CalculateRoute(ctx context.Context, startEdge, endEdge string) (*domain.Route, error) {
	route, err := uc.simRepo.CalculateRouteByEdges(ctx, startEdge, endEdge)
	if err != nil {
		uc.logger.Error("Route calculation failed",
			zap.String("start_edge", startEdge),
			zap.String("end_edge", endEdge),
			zap.Error(err))
		return nil, fmt.Errorf("calculate route: %w", err)
	}

	if len(route.Edges) == 0 {
		return nil, errors.ErrRouteNotFound
	}

	uc.logger.Info("Route calculated",
		zap.String("start_edge", startEdge),
		zap.String("end_edge", endEdge),
		zap.Int("edges", len(route.Edges)),
		zap.Float64("distance", route.Distance),
		zap.Float64("duration", route.Duration))

	return route, nil
}

// GetRoutePath считает маршрут и строит его геометрию: от центра
// первого ребра через узлы и полилинии промежуточных ребер к центру
// последнего. Отсутствующие в сети ребра пропускаются с предупреждением.
func (uc *RouteUseCase) GetRoutePath(ctx context.Context, startEdge, endEdge string) (*dto.RouteResponse, error) {
	graph := uc.networkUC.Graph()
	if graph == nil {
		return nil, errors.ErrNetworkNotLoaded
	}

	route, err := uc.CalculateRoute(ctx, startEdge, endEdge)
	if err != nil {
		return nil, err
	}

	path, skipped := geometry.BuildRoutePath(graph, route.Edges)
	if len(skipped) > 0 {
		uc.logger.Warn("Route contains edges missing from network snapshot",
			zap.Strings("skipped_edges", skipped))
	}

	return &dto.RouteResponse{
		Edges:    route.Edges,
		Distance: route.Distance,
		Duration: route.Duration,
		Path:     path,
		Skipped:  skipped,
	}, nil
}
