package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/journey-microservice/internal/domain"
	"github.com/journey-microservice/internal/domain/repository"
)

// statsSampleLimit - размер выборки для агрегатов. Дальние поездки
// быстро теряют значимость для живой статистики демо-стенда.
const statsSampleLimit = 1000

type journeyRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewJourneyRepository создает новый экземпляр journey repository
func NewJourneyRepository(db *DB, logger *zap.Logger) repository.JourneyRepository {
	return &journeyRepository{
		db:     db,
		logger: logger,
	}
}

// journeyRow - строка таблицы journeys
type journeyRow struct {
	ID                uuid.UUID      `db:"id"`
	VehicleID         string         `db:"vehicle_id"`
	StartEdge         string         `db:"start_edge"`
	EndEdge           string         `db:"end_edge"`
	RouteEdges        pq.StringArray `db:"route_edges"`
	Distance          float64        `db:"distance"`
	PredictedDuration float64        `db:"predicted_duration"`
	StartTime         float64        `db:"start_time"`
	StartTimeString   string         `db:"start_time_string"`
	Status            string         `db:"status"`
	EndTime           *float64       `db:"end_time"`
	ActualDuration    *float64       `db:"actual_duration"`
	AbsError          *float64       `db:"abs_error"`
	Accuracy          *float64       `db:"accuracy"`
}

func (r journeyRow) toDomain() *domain.Journey {
	return &domain.Journey{
		RecordID:          r.ID,
		VehicleID:         r.VehicleID,
		StartEdge:         r.StartEdge,
		EndEdge:           r.EndEdge,
		RouteEdges:        []string(r.RouteEdges),
		Distance:          r.Distance,
		PredictedDuration: r.PredictedDuration,
		StartTime:         r.StartTime,
		StartTimeString:   r.StartTimeString,
		Status:            r.Status,
		EndTime:           r.EndTime,
		ActualDuration:    r.ActualDuration,
		AbsError:          r.AbsError,
		Accuracy:          r.Accuracy,
	}
}

// SaveJourney сохраняет поездку. Upsert по record id: трекер пишет
// поездку при завершении, повторная публикация перезаписывает запись.
func (r *journeyRepository) SaveJourney(ctx context.Context, journey *domain.Journey) error {
	query := `
		INSERT INTO journeys (
			id, vehicle_id, start_edge, end_edge, route_edges,
			distance, predicted_duration, start_time, start_time_string,
			status, end_time, actual_duration, abs_error, accuracy
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (id) DO UPDATE SET
			status = EXCLUDED.status,
			end_time = EXCLUDED.end_time,
			actual_duration = EXCLUDED.actual_duration,
			abs_error = EXCLUDED.abs_error,
			accuracy = EXCLUDED.accuracy
	`

	_, err := r.db.ExecContext(ctx, query,
		journey.RecordID,
		journey.VehicleID,
		journey.StartEdge,
		journey.EndEdge,
		pq.Array(journey.RouteEdges),
		journey.Distance,
		journey.PredictedDuration,
		journey.StartTime,
		journey.StartTimeString,
		journey.Status,
		journey.EndTime,
		journey.ActualDuration,
		journey.AbsError,
		journey.Accuracy,
	)
	if err != nil {
		r.logger.Error("Failed to save journey",
			zap.String("vehicle_id", journey.VehicleID),
			zap.Error(err))
		return fmt.Errorf("save journey: %w", err)
	}

	return nil
}

// GetRecentJourneys возвращает последние поездки, новые первыми
func (r *journeyRepository) GetRecentJourneys(ctx context.Context, limit int) (*domain.JourneyPage, error) {
	if limit <= 0 {
		limit = 20
	}

	var rows []journeyRow
	query := `
		SELECT id, vehicle_id, start_edge, end_edge, route_edges,
		       distance, predicted_duration, start_time, start_time_string,
		       status, end_time, actual_duration, abs_error, accuracy
		FROM journeys
		ORDER BY start_time DESC
		LIMIT $1
	`
	if err := r.db.SelectContext(ctx, &rows, query, limit); err != nil {
		return nil, fmt.Errorf("get recent journeys: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM journeys`); err != nil {
		return nil, fmt.Errorf("count journeys: %w", err)
	}

	page := &domain.JourneyPage{
		Journeys:   make([]*domain.Journey, 0, len(rows)),
		TotalCount: total,
	}
	for _, row := range rows {
		page.Journeys = append(page.Journeys, row.toDomain())
	}
	return page, nil
}

// GetJourneyStatistics считает агрегаты по сохраненным поездкам.
// Выборка строк делается SQL, сама агрегация - domain.ComputeStatistics,
// чтобы формулы точности не дублировались между слоями.
func (r *journeyRepository) GetJourneyStatistics(ctx context.Context, bounds domain.BucketBoundaries) (*domain.JourneyStatistics, error) {
	var rows []journeyRow
	query := `
		SELECT id, vehicle_id, start_edge, end_edge, route_edges,
		       distance, predicted_duration, start_time, start_time_string,
		       status, end_time, actual_duration, abs_error, accuracy
		FROM journeys
		WHERE status = $1 AND actual_duration IS NOT NULL
		ORDER BY start_time DESC
		LIMIT $2
	`
	if err := r.db.SelectContext(ctx, &rows, query, domain.JourneyStatusFinished, statsSampleLimit); err != nil {
		r.logger.Error("Failed to load journeys for statistics", zap.Error(err))
		return nil, fmt.Errorf("get journey statistics: %w", err)
	}

	journeys := make([]*domain.Journey, 0, len(rows))
	for _, row := range rows {
		journeys = append(journeys, row.toDomain())
	}

	return domain.ComputeStatistics(journeys, bounds), nil
}
