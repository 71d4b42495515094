package domain

import "github.com/google/uuid"

// Stream names (должны совпадать с потребителями аналитики)
const (
	StreamJourneyFinished = "stream:journeys:finished"
)

// JourneyFinishedEvent - событие завершения поездки для downstream-потребителей
type JourneyFinishedEvent struct {
	RecordID          uuid.UUID `json:"record_id"`
	VehicleID         string    `json:"vehicle_id"`
	StartEdge         string    `json:"start_edge"`
	EndEdge           string    `json:"end_edge"`
	Distance          float64   `json:"distance"`
	PredictedDuration float64   `json:"predicted_duration"`
	ActualDuration    float64   `json:"actual_duration"`
	AbsError          float64   `json:"abs_error"`
	Accuracy          float64   `json:"accuracy"`
	FinishedAtStep    float64   `json:"finished_at_step"`
}

// StreamMessage - сообщение из Redis Stream
type StreamMessage struct {
	ID   string
	Data string
}
