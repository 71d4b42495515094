package dto

// ClickRequest - запрос на выбор ребра кликом
type ClickRequest struct {
	EdgeID string `json:"edge_id" validate:"required,min=1"`
}

// RouteRequest - запрос на расчет маршрута между двумя ребрами
type RouteRequest struct {
	StartEdge string `json:"start_edge" validate:"required,min=1"`
	EndEdge   string `json:"end_edge" validate:"required,min=1"`
}

// StartJourneyRequest - запрос на запуск поездки
type StartJourneyRequest struct {
	StartEdge  string   `json:"start_edge" validate:"required,min=1"`
	EndEdge    string   `json:"end_edge" validate:"required,min=1"`
	RouteEdges []string `json:"route_edges,omitempty"`
}
