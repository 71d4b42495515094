package usecase

import (
	"context"
	"sync"

	"github.com/journey-microservice/internal/config"
	"github.com/journey-microservice/internal/domain"
	"github.com/journey-microservice/internal/geometry"
	"github.com/journey-microservice/internal/pkg/errors"
	"go.uber.org/zap"
)

// SelectionUseCase - машина состояний выбора ребер кликом.
// Состояния: пусто -> выбран start -> выбраны start+destination (+маршрут).
// Все переходы атомарны под мьютексом.
type SelectionUseCase struct {
	networkUC *NetworkUseCase
	routeUC   *RouteUseCase
	cfg       *config.TrackerConfig
	logger    *zap.Logger

	mu        sync.Mutex
	selection domain.Selection
}

// NewSelectionUseCase создает новый экземпляр SelectionUseCase
func NewSelectionUseCase(
	networkUC *NetworkUseCase,
	routeUC *RouteUseCase,
	cfg *config.TrackerConfig,
	logger *zap.Logger,
) *SelectionUseCase {
	return &SelectionUseCase{
		networkUC: networkUC,
		routeUC:   routeUC,
		cfg:       cfg,
		logger:    logger,
	}
}

// Click обрабатывает клик по ребру и возвращает состояние выбора после
// перехода. Правила:
//   - сеть не загружена - ErrNetworkNotLoaded;
//   - неизвестное ребро - ErrEdgeNotFound;
//   - express-ребро (если не разрешено конфигом) - ErrEdgeNotSelectable;
//   - выбор заблокирован активной поездкой - ErrJourneyInFlight;
//   - оба ребра уже выбраны - ErrSelectionLocked (сначала Reset);
//   - повторный клик по start-ребру игнорируется (выбор не меняется).
//
// Выбор destination сразу запускает расчет маршрута: при ошибке расчета
// destination не фиксируется, start остается.
func (uc *SelectionUseCase) Click(ctx context.Context, edgeID string) (*domain.Selection, error) {
	graph := uc.networkUC.Graph()
	if graph == nil {
		return nil, errors.ErrNetworkNotLoaded
	}

	edge := graph.Edge(edgeID)
	if edge == nil {
		return nil, errors.ErrEdgeNotFound
	}

	if geometry.IsExpressEdge(edgeID) && !uc.cfg.AllowExpressSelection {
		uc.logger.Debug("Express edge rejected", zap.String("edge_id", edgeID))
		return nil, errors.ErrEdgeNotSelectable
	}

	mid := geometry.EdgeMidpoint(graph, edge)
	point := &domain.SelectionPoint{EdgeID: edgeID, X: mid.X, Y: mid.Y}

	uc.mu.Lock()
	if uc.selection.Locked {
		uc.mu.Unlock()
		return nil, errors.ErrJourneyInFlight
	}

	switch {
	case uc.selection.Start == nil:
		uc.selection.Start = point
		sel := uc.selection
		uc.mu.Unlock()
		uc.logger.Info("Start edge selected", zap.String("edge_id", edgeID))
		return &sel, nil

	case uc.selection.Destination == nil:
		if uc.selection.Start.EdgeID == edgeID {
			// повторный клик по тому же ребру не меняет выбор
			sel := uc.selection
			uc.mu.Unlock()
			return &sel, nil
		}
		startEdge := uc.selection.Start.EdgeID
		uc.mu.Unlock()
		return uc.selectDestination(ctx, startEdge, point)

	default:
		uc.mu.Unlock()
		return nil, errors.ErrSelectionLocked
	}
}

// selectDestination считает маршрут для пары ребер и фиксирует
// destination. Мьютекс не держится на время сетевого вызова: Selection
// и Reset не блокируются расчетом маршрута. Перед фиксацией состояние
// перепроверяется - выбор мог быть сброшен или заблокирован за время
// вызова, тогда результат отбрасывается.
func (uc *SelectionUseCase) selectDestination(ctx context.Context, startEdge string, point *domain.SelectionPoint) (*domain.Selection, error) {
	route, err := uc.routeUC.CalculateRoute(ctx, startEdge, point.EdgeID)
	if err != nil {
		uc.logger.Warn("Route calculation failed, destination not set",
			zap.String("start_edge", startEdge),
			zap.String("end_edge", point.EdgeID),
			zap.Error(err))
		return nil, err
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	if uc.selection.Locked {
		return nil, errors.ErrJourneyInFlight
	}
	if uc.selection.Start == nil || uc.selection.Start.EdgeID != startEdge {
		return nil, errors.ErrSelectionIncomplete
	}
	if uc.selection.Destination != nil {
		return nil, errors.ErrSelectionLocked
	}

	uc.selection.Destination = point
	uc.selection.Route = route
	uc.logger.Info("Destination edge selected, route calculated",
		zap.String("start_edge", startEdge),
		zap.String("end_edge", point.EdgeID),
		zap.Int("route_edges", len(route.Edges)))

	sel := uc.selection
	return &sel, nil
}

// Selection возвращает снимок текущего выбора
func (uc *SelectionUseCase) Selection() *domain.Selection {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	sel := uc.selection
	return &sel
}

// Reset сбрасывает выбор и маршрут целиком. Никогда не возвращает
// ошибку: сброс допустим из любого состояния, включая заблокированное.
func (uc *SelectionUseCase) Reset() {
	uc.mu.Lock()
	uc.selection = domain.Selection{}
	uc.mu.Unlock()
	uc.logger.Info("Selection reset")
}

// Lock блокирует выбор на время активной поездки
func (uc *SelectionUseCase) Lock() {
	uc.mu.Lock()
	uc.selection.Locked = true
	uc.mu.Unlock()
}

// Unlock снимает блокировку и очищает выбор: после завершения поездки
// пользователь начинает новый выбор с чистого состояния.
func (uc *SelectionUseCase) Unlock() {
	uc.mu.Lock()
	uc.selection = domain.Selection{}
	uc.mu.Unlock()
}
