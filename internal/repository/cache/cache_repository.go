package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/journey-microservice/internal/domain"
	"github.com/journey-microservice/internal/domain/repository"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	keyNetworkGraph = "network:graph"
	keyStats        = "stats:current"
)

type cacheRepository struct {
	client *redis.Client
	logger *zap.Logger
}

func NewCacheRepository(redis *Redis) repository.CacheRepository {
	return &cacheRepository{
		client: redis.Client(),
		logger: redis.logger,
	}
}

func (r *cacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil // Cache miss
	}
	if err != nil {
		r.logger.Error("Failed to get from cache", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("cache get error: %w", err)
	}

	r.logger.Debug("Cache hit", zap.String("key", key))
	return val, nil
}

func (r *cacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	err := r.client.Set(ctx, key, value, ttl).Err()
	if err != nil {
		r.logger.Error("Failed to set cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache set error: %w", err)
	}

	r.logger.Debug("Cache set", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}

func (r *cacheRepository) Delete(ctx context.Context, key string) error {
	err := r.client.Del(ctx, key).Err()
	if err != nil {
		r.logger.Error("Failed to delete from cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache delete error: %w", err)
	}

	r.logger.Debug("Cache deleted", zap.String("key", key))
	return nil
}

// GetNetworkGraph получает снапшот сети из кеша
func (r *cacheRepository) GetNetworkGraph(ctx context.Context) (*domain.NetworkGraph, error) {
	data, err := r.Get(ctx, keyNetworkGraph)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil // Cache miss
	}

	var graph domain.NetworkGraph
	if err := json.Unmarshal(data, &graph); err != nil {
		r.logger.Error("Failed to unmarshal network graph from cache", zap.Error(err))
		return nil, fmt.Errorf("unmarshal network graph: %w", err)
	}

	return &graph, nil
}

// SetNetworkGraph сохраняет снапшот сети в кеше
func (r *cacheRepository) SetNetworkGraph(ctx context.Context, graph *domain.NetworkGraph, ttl time.Duration) error {
	data, err := json.Marshal(graph)
	if err != nil {
		r.logger.Error("Failed to marshal network graph", zap.Error(err))
		return fmt.Errorf("marshal network graph: %w", err)
	}

	return r.Set(ctx, keyNetworkGraph, data, ttl)
}

// GetStats получает статистику поездок из кеша
func (r *cacheRepository) GetStats(ctx context.Context) (*domain.JourneyStatistics, error) {
	data, err := r.Get(ctx, keyStats)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil // Cache miss
	}

	var stats domain.JourneyStatistics
	if err := json.Unmarshal(data, &stats); err != nil {
		r.logger.Error("Failed to unmarshal stats from cache", zap.Error(err))
		return nil, fmt.Errorf("unmarshal stats: %w", err)
	}

	return &stats, nil
}

// SetStats сохраняет статистику поездок в кеше
func (r *cacheRepository) SetStats(ctx context.Context, stats *domain.JourneyStatistics, ttl time.Duration) error {
	data, err := json.Marshal(stats)
	if err != nil {
		r.logger.Error("Failed to marshal stats", zap.Error(err))
		return fmt.Errorf("marshal stats: %w", err)
	}

	return r.Set(ctx, keyStats, data, ttl)
}
