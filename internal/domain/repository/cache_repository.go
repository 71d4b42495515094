package repository

import (
	"context"
	"time"

	"github.com/journey-microservice/internal/domain"
)

// CacheRepository - кеш (Redis) для снапшота сети и статистики
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error

	// GetNetworkGraph возвращает закешированный снапшот сети, nil при промахе
	GetNetworkGraph(ctx context.Context) (*domain.NetworkGraph, error)
	SetNetworkGraph(ctx context.Context, graph *domain.NetworkGraph, ttl time.Duration) error

	// GetStats возвращает закешированную статистику, nil при промахе
	GetStats(ctx context.Context) (*domain.JourneyStatistics, error)
	SetStats(ctx context.Context, stats *domain.JourneyStatistics, ttl time.Duration) error
}
