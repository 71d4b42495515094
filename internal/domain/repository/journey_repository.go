package repository

import (
	"context"

	"github.com/journey-microservice/internal/domain"
)

// JourneyRepository - хранилище завершенных поездок (PostgreSQL)
type JourneyRepository interface {
	// SaveJourney сохраняет поездку (запись завершенной поездки)
	SaveJourney(ctx context.Context, journey *domain.Journey) error

	// GetRecentJourneys возвращает последние поездки, новые первыми
	GetRecentJourneys(ctx context.Context, limit int) (*domain.JourneyPage, error)

	// GetJourneyStatistics считает агрегированные метрики точности
	// по сохраненным поездкам с переданными границами бакетов
	GetJourneyStatistics(ctx context.Context, bounds domain.BucketBoundaries) (*domain.JourneyStatistics, error)
}
