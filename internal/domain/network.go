package domain

// Point - точка в координатах сети SUMO (метры, не геокоординаты)
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ShapePoint - точка полилинии ребра в формате backend: [x, y]
type ShapePoint [2]float64

// Point конвертирует ShapePoint в Point
func (p ShapePoint) Point() Point {
	return Point{X: p[0], Y: p[1]}
}

// Junction - узел дорожной сети. Неизменяем после загрузки.
type Junction struct {
	ID   string  `json:"id"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Type string  `json:"type,omitempty"`
	Zone string  `json:"zone,omitempty"`
}

// Position возвращает координаты узла
func (j *Junction) Position() Point {
	return Point{X: j.X, Y: j.Y}
}

// Edge - направленное ребро (дорога) между двумя узлами.
// ShapePoints заполнены backend'ом только для части ребер;
// при <2 точках ребро рисуется прямой линией между узлами.
type Edge struct {
	ID          string       `json:"id"`
	From        string       `json:"from"`
	To          string       `json:"to"`
	Speed       float64      `json:"speed,omitempty"`
	Length      float64      `json:"length,omitempty"`
	NumLanes    int          `json:"num_lanes,omitempty"`
	Zone        string       `json:"zone,omitempty"`
	ShapePoints []ShapePoint `json:"shape_points,omitempty"`
}

// BoundingBox - охватывающий прямоугольник сети
type BoundingBox struct {
	MinX float64 `json:"min_x"`
	MaxX float64 `json:"max_x"`
	MinY float64 `json:"min_y"`
	MaxY float64 `json:"max_y"`
}

// NetworkGraph - снапшот дорожной сети, загружается один раз за сессию.
// После загрузки read-only, поэтому доступ без блокировок.
type NetworkGraph struct {
	Edges     map[string]*Edge     `json:"edges"`
	Junctions map[string]*Junction `json:"junctions"`
	Bounds    BoundingBox          `json:"bounds"`
}

// Edge возвращает ребро по id, nil если отсутствует
func (g *NetworkGraph) Edge(id string) *Edge {
	if g == nil {
		return nil
	}
	return g.Edges[id]
}

// Junction возвращает узел по id, nil если отсутствует
func (g *NetworkGraph) Junction(id string) *Junction {
	if g == nil {
		return nil
	}
	return g.Junctions[id]
}
