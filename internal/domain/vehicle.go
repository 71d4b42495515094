package domain

// VehicleState - позиция активного автомобиля из симуляции
type VehicleState struct {
	ID     string  `json:"id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Speed  float64 `json:"speed"`
	Edge   string  `json:"edge,omitempty"`
	Type   string  `json:"type,omitempty"`
	Status string  `json:"status,omitempty"`
}

// SimulationStatus - агрегированное состояние симуляции
type SimulationStatus struct {
	IsRunning       bool    `json:"is_running"`
	Vehicles        int     `json:"vehicles"`
	VehiclesInRoute int     `json:"vehicles_in_route"`
	TripsAdded      int     `json:"trips_added"`
	CurrentStep     float64 `json:"current_step"`
	SimulationTime  string  `json:"simulation_time"`
}

// Prediction - предсказание ETA-модели для поездки
type Prediction struct {
	PredictedTravelTime float64 `json:"predicted_travel_time"`
	PredictedETA        float64 `json:"predicted_eta"`
	TrafficImpact       float64 `json:"traffic_impact"`
}

// FinishedVehicle - завершивший поездку автомобиль из отчета симуляции.
// Один и тот же автомобиль может приходить в нескольких опросах подряд,
// дедупликацию делает трекер.
type FinishedVehicle struct {
	ID              string      `json:"id"`
	Path            []string    `json:"path,omitempty"`
	TravelDistance  float64     `json:"travel_distance"`
	StartTime       float64     `json:"start_time"`
	StartTimeString string      `json:"start_time_string,omitempty"`
	EndTime         float64     `json:"end_time"`
	Prediction      *Prediction `json:"prediction,omitempty"`
}

// JourneyStart - результат запуска поездки в симуляции
type JourneyStart struct {
	VehicleID       string  `json:"vehicle_id"`
	Status          string  `json:"status"`
	StartTime       float64 `json:"start_time"`
	StartTimeString string  `json:"start_time_string"`
	Distance        float64 `json:"distance"`
	PredictedETA    float64 `json:"predicted_eta"`
}
