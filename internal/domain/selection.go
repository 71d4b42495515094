package domain

// SelectionPoint - выбранная пользователем точка: ребро и его центр.
// Одновременно живут максимум две: start и destination.
type SelectionPoint struct {
	EdgeID string  `json:"edge_id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

// Route - маршрут, рассчитанный backend'ом для пары (start, destination).
// Принадлежит активному выбору и сбрасывается вместе с ним.
type Route struct {
	Edges    []string `json:"edges"`
	Distance float64  `json:"distance"`
	Duration float64  `json:"duration"`
}

// Selection - текущее состояние выбора start/destination
type Selection struct {
	Start       *SelectionPoint `json:"start"`
	Destination *SelectionPoint `json:"destination"`
	Route       *Route          `json:"route"`
	Locked      bool            `json:"locked"`
}
