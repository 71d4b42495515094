package usecase

import (
	"context"
	"fmt"

	"github.com/journey-microservice/internal/config"
	"github.com/journey-microservice/internal/domain"
	"github.com/journey-microservice/internal/domain/repository"
	"go.uber.org/zap"
)

// StatsUseCase - агрегированные метрики точности предсказаний
type StatsUseCase struct {
	journeyRepo repository.JourneyRepository
	cacheRepo   repository.CacheRepository
	cacheCfg    *config.CacheConfig
	statsCfg    *config.StatsConfig
	logger      *zap.Logger
}

// NewStatsUseCase создает новый экземпляр StatsUseCase
func NewStatsUseCase(
	journeyRepo repository.JourneyRepository,
	cacheRepo repository.CacheRepository,
	cacheCfg *config.CacheConfig,
	statsCfg *config.StatsConfig,
	logger *zap.Logger,
) *StatsUseCase {
	return &StatsUseCase{
		journeyRepo: journeyRepo,
		cacheRepo:   cacheRepo,
		cacheCfg:    cacheCfg,
		statsCfg:    statsCfg,
		logger:      logger,
	}
}

// GetStatistics возвращает статистику, используя кеш когда возможно
func (uc *StatsUseCase) GetStatistics(ctx context.Context) (*domain.JourneyStatistics, error) {
	cached, err := uc.cacheRepo.GetStats(ctx)
	if err == nil && cached != nil {
		uc.logger.Debug("Statistics fetched from cache")
		return cached, nil
	}
	if err != nil {
		uc.logger.Warn("Failed to get stats from cache", zap.Error(err))
	}

	stats, err := uc.journeyRepo.GetJourneyStatistics(ctx, uc.boundaries())
	if err != nil {
		return nil, fmt.Errorf("get journey statistics: %w", err)
	}

	if err := uc.cacheRepo.SetStats(ctx, stats, uc.cacheCfg.StatsCacheTTL); err != nil {
		uc.logger.Warn("Failed to cache stats", zap.Error(err))
	}

	return stats, nil
}

// RefreshStatistics принудительно пересчитывает статистику и обновляет кеш
func (uc *StatsUseCase) RefreshStatistics(ctx context.Context) (*domain.JourneyStatistics, error) {
	stats, err := uc.journeyRepo.GetJourneyStatistics(ctx, uc.boundaries())
	if err != nil {
		return nil, fmt.Errorf("refresh journey statistics: %w", err)
	}

	if err := uc.cacheRepo.SetStats(ctx, stats, uc.cacheCfg.StatsCacheTTL); err != nil {
		uc.logger.Warn("Failed to cache refreshed stats", zap.Error(err))
	}

	uc.logger.Debug("Statistics refreshed",
		zap.Int("total_journeys", stats.TotalJourneys),
		zap.Float64("mae", stats.MAE))
	return stats, nil
}

func (uc *StatsUseCase) boundaries() domain.BucketBoundaries {
	return domain.BucketBoundaries{
		DurationShortMax:  uc.statsCfg.DurationBucketShortMax,
		DurationMediumMax: uc.statsCfg.DurationBucketMedMax,
		DistanceShortMax:  uc.statsCfg.DistanceBucketShortMax,
		DistanceMediumMax: uc.statsCfg.DistanceBucketMedMax,
	}
}
