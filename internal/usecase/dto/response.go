package dto

import (
	"github.com/journey-microservice/internal/domain"
	"github.com/journey-microservice/internal/geometry"
)

// NetworkGeometryResponse - геометрия сети для отрисовки
type NetworkGeometryResponse struct {
	Edges  []EdgeGeometry     `json:"edges"`
	Bounds domain.BoundingBox `json:"bounds"`
	Total  int                `json:"total"`
}

// EdgeGeometry - готовая к отрисовке геометрия одного ребра
type EdgeGeometry struct {
	ID       string        `json:"id"`
	Path     geometry.Path `json:"path"`
	Midpoint domain.Point  `json:"midpoint"`
	Express  bool          `json:"express"`
	Speed    float64       `json:"speed,omitempty"`
	Length   float64       `json:"length,omitempty"`
}

// RouteResponse - рассчитанный маршрут с геометрией пути
type RouteResponse struct {
	Edges    []string      `json:"edges"`
	Distance float64       `json:"distance"`
	Duration float64       `json:"duration"`
	Path     geometry.Path `json:"path,omitempty"`
	Skipped  []string      `json:"skipped_edges,omitempty"`
}

// JourneyResponse - одна поездка
type JourneyResponse struct {
	RecordID          string   `json:"record_id"`
	VehicleID         string   `json:"vehicle_id"`
	StartEdge         string   `json:"start_edge"`
	EndEdge           string   `json:"end_edge"`
	Distance          float64  `json:"distance"`
	PredictedDuration float64  `json:"predicted_duration"`
	StartTime         float64  `json:"start_time"`
	StartTimeString   string   `json:"start_time_string,omitempty"`
	Status            string   `json:"status"`
	EndTime           *float64 `json:"end_time,omitempty"`
	ActualDuration    *float64 `json:"actual_duration,omitempty"`
	AbsError          *float64 `json:"abs_error,omitempty"`
	Accuracy          *float64 `json:"accuracy,omitempty"`
}

// JourneyListResponse - список поездок
type JourneyListResponse struct {
	Journeys []JourneyResponse `json:"journeys"`
	Total    int               `json:"total"`
}

// JourneyFromDomain преобразует доменную поездку в DTO
func JourneyFromDomain(j *domain.Journey) JourneyResponse {
	return JourneyResponse{
		RecordID:          j.RecordID.String(),
		VehicleID:         j.VehicleID,
		StartEdge:         j.StartEdge,
		EndEdge:           j.EndEdge,
		Distance:          j.Distance,
		PredictedDuration: j.PredictedDuration,
		StartTime:         j.StartTime,
		StartTimeString:   j.StartTimeString,
		Status:            j.Status,
		EndTime:           j.EndTime,
		ActualDuration:    j.ActualDuration,
		AbsError:          j.AbsError,
		Accuracy:          j.Accuracy,
	}
}
