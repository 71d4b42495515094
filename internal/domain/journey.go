package domain

import (
	"math"

	"github.com/google/uuid"
)

// Статусы поездки. Отмена отдельной поездки не моделируется -
// останов всей симуляции завершает трекинг, но не меняет историю.
const (
	JourneyStatusRunning  = "running"
	JourneyStatusFinished = "finished"
)

// Journey - одна отслеживаемая поездка симулируемого автомобиля.
// Производные поля (ActualDuration, AbsError, Accuracy) заполняются
// только при завершении и всегда вместе с EndTime.
type Journey struct {
	RecordID          uuid.UUID `json:"record_id" db:"id"`
	VehicleID         string    `json:"vehicle_id" db:"vehicle_id"`
	StartEdge         string    `json:"start_edge" db:"start_edge"`
	EndEdge           string    `json:"end_edge" db:"end_edge"`
	RouteEdges        []string  `json:"route_edges" db:"route_edges"`
	Distance          float64   `json:"distance" db:"distance"`
	PredictedDuration float64   `json:"predicted_duration" db:"predicted_duration"`
	StartTime         float64   `json:"start_time" db:"start_time"`
	StartTimeString   string    `json:"start_time_string,omitempty" db:"start_time_string"`
	Status            string    `json:"status" db:"status"`
	EndTime           *float64  `json:"end_time,omitempty" db:"end_time"`
	ActualDuration    *float64  `json:"actual_duration,omitempty" db:"actual_duration"`
	AbsError          *float64  `json:"abs_error,omitempty" db:"abs_error"`
	Accuracy          *float64  `json:"accuracy,omitempty" db:"accuracy"`
}

// IsFinished сообщает, завершена ли поездка
func (j *Journey) IsFinished() bool {
	return j.Status == JourneyStatusFinished
}

// Complete переводит поездку в finished и заполняет производные метрики.
// Повторный вызов игнорируется - завершение происходит ровно один раз.
func (j *Journey) Complete(endTime float64) bool {
	if j.IsFinished() {
		return false
	}

	actual := endTime - j.StartTime
	if actual < 0 {
		actual = 0
	}
	absErr := PredictionAbsError(j.PredictedDuration, actual)
	accuracy := PredictionAccuracy(j.PredictedDuration, actual)

	j.Status = JourneyStatusFinished
	j.EndTime = &endTime
	j.ActualDuration = &actual
	j.AbsError = &absErr
	j.Accuracy = &accuracy
	return true
}

// PredictionAbsError - абсолютная ошибка предсказания в секундах.
// Единственная реализация формулы: карточки поездок, агрегаты и
// графики обязаны использовать её, а не дублировать расчет.
func PredictionAbsError(predicted, actual float64) float64 {
	return math.Abs(predicted - actual)
}

// PredictionAccuracy - точность предсказания в процентах, [0, 100].
// При нулевой фактической длительности точность определена как 0.
func PredictionAccuracy(predicted, actual float64) float64 {
	if actual <= 0 {
		return 0
	}
	accuracy := 100 - PredictionAbsError(predicted, actual)/actual*100
	if accuracy < 0 {
		return 0
	}
	if accuracy > 100 {
		return 100
	}
	return accuracy
}

// JourneyPage - страница сохраненных поездок
type JourneyPage struct {
	Journeys   []*Journey `json:"journeys"`
	TotalCount int        `json:"total_count"`
}
