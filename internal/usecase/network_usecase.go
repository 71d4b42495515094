package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/journey-microservice/internal/config"
	"github.com/journey-microservice/internal/domain"
	"github.com/journey-microservice/internal/domain/repository"
	"github.com/journey-microservice/internal/geometry"
	"github.com/journey-microservice/internal/pkg/errors"
	"github.com/journey-microservice/internal/usecase/dto"
	"go.uber.org/zap"
)

// NetworkUseCase загружает снапшот дорожной сети и готовит геометрию
// для отрисовки. Снапшот иммутабелен после загрузки: перезагрузка
// заменяет ссылку целиком, читатели не блокируются.
type NetworkUseCase struct {
	simRepo   repository.SimulationRepository
	cacheRepo repository.CacheRepository
	cfg       *config.CacheConfig
	logger    *zap.Logger

	mu    sync.RWMutex
	graph *domain.NetworkGraph
}

// NewNetworkUseCase создает новый экземпляр NetworkUseCase
func NewNetworkUseCase(
	simRepo repository.SimulationRepository,
	cacheRepo repository.CacheRepository,
	cfg *config.CacheConfig,
	logger *zap.Logger,
) *NetworkUseCase {
	return &NetworkUseCase{
		simRepo:   simRepo,
		cacheRepo: cacheRepo,
		cfg:       cfg,
		logger:    logger,
	}
}

// LoadNetwork загружает снапшот сети: сперва из кеша, затем из backend.
// Успешная загрузка из backend обновляет кеш.
func (uc *NetworkUseCase) LoadNetwork(ctx context.Context) (*domain.NetworkGraph, error) {
	cached, err := uc.cacheRepo.GetNetworkGraph(ctx)
	if err != nil {
		uc.logger.Warn("Failed to get network graph from cache", zap.Error(err))
	}
	if cached != nil {
		uc.logger.Debug("Network graph fetched from cache",
			zap.Int("edges", len(cached.Edges)))
		uc.setGraph(cached)
		return cached, nil
	}

	graph, err := uc.simRepo.GetNetworkData(ctx)
	if err != nil {
		return nil, fmt.Errorf("load network data: %w", err)
	}

	if err := uc.cacheRepo.SetNetworkGraph(ctx, graph, uc.cfg.NetworkCacheTTL); err != nil {
		uc.logger.Warn("Failed to cache network graph", zap.Error(err))
	}

	uc.logger.Info("Network graph loaded",
		zap.Int("edges", len(graph.Edges)),
		zap.Int("junctions", len(graph.Junctions)))

	uc.setGraph(graph)
	return graph, nil
}

// ReloadNetwork принудительно перечитывает снапшот из backend, минуя кеш
func (uc *NetworkUseCase) ReloadNetwork(ctx context.Context) (*domain.NetworkGraph, error) {
	graph, err := uc.simRepo.GetNetworkData(ctx)
	if err != nil {
		return nil, fmt.Errorf("reload network data: %w", err)
	}

	if err := uc.cacheRepo.SetNetworkGraph(ctx, graph, uc.cfg.NetworkCacheTTL); err != nil {
		uc.logger.Warn("Failed to cache reloaded network graph", zap.Error(err))
	}

	uc.setGraph(graph)
	uc.logger.Info("Network graph reloaded", zap.Int("edges", len(graph.Edges)))
	return graph, nil
}

// Graph возвращает текущий снапшот сети, nil если сеть не загружена
func (uc *NetworkUseCase) Graph() *domain.NetworkGraph {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.graph
}

func (uc *NetworkUseCase) setGraph(graph *domain.NetworkGraph) {
	uc.mu.Lock()
	uc.graph = graph
	uc.mu.Unlock()
}

// GetNetwork возвращает снапшот сети, при необходимости загружая его
func (uc *NetworkUseCase) GetNetwork(ctx context.Context) (*domain.NetworkGraph, error) {
	if graph := uc.Graph(); graph != nil {
		return graph, nil
	}

	graph, err := uc.LoadNetwork(ctx)
	if err != nil {
		return nil, errors.ErrNetworkNotLoaded.WithDetails(map[string]interface{}{
			"cause": err.Error(),
		})
	}
	return graph, nil
}

// GetNetworkGeometry возвращает геометрию всех ребер сети, готовую к
// отрисовке: путь, центр ребра и признак express для каждого.
func (uc *NetworkUseCase) GetNetworkGeometry(ctx context.Context) (*dto.NetworkGeometryResponse, error) {
	graph, err := uc.GetNetwork(ctx)
	if err != nil {
		return nil, err
	}

	edges := make([]dto.EdgeGeometry, 0, len(graph.Edges))
	for id, edge := range graph.Edges {
		edges = append(edges, dto.EdgeGeometry{
			ID:       id,
			Path:     geometry.EdgePath(graph, edge),
			Midpoint: geometry.EdgeMidpoint(graph, edge),
			Express:  geometry.IsExpressEdge(id),
			Speed:    edge.Speed,
			Length:   edge.Length,
		})
	}

	return &dto.NetworkGeometryResponse{
		Edges:  edges,
		Bounds: graph.Bounds,
		Total:  len(edges),
	}, nil
}
