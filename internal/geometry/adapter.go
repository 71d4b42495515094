// Package geometry содержит чистые функции преобразования дорожной сети
// в отрисовываемые пути: полилинии ребер, центры ребер, путь маршрута.
// Пакет не обращается к backend и не держит состояния.
package geometry

import (
	"strings"

	"github.com/journey-microservice/internal/domain"
)

// Операции команд пути
const (
	OpMoveTo = "M"
	OpLineTo = "L"
)

// PathCommand - одна команда пути (move-to / line-to)
type PathCommand struct {
	Op string  `json:"op"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

// Path - последовательность команд отрисовки полилинии
type Path []PathCommand

// Points возвращает вершины пути без команд
func (p Path) Points() []domain.Point {
	points := make([]domain.Point, 0, len(p))
	for _, cmd := range p {
		points = append(points, domain.Point{X: cmd.X, Y: cmd.Y})
	}
	return points
}

// PathFromShapePoints строит путь по точкам полилинии: move-to в первую
// точку, line-to в каждую следующую. При <2 точках возвращает пустой путь -
// вызывающий обязан отрисовать ребро прямой линией между узлами.
func PathFromShapePoints(points []domain.Point) Path {
	if len(points) < 2 {
		return nil
	}

	path := make(Path, 0, len(points))
	path = append(path, PathCommand{Op: OpMoveTo, X: points[0].X, Y: points[0].Y})
	for _, p := range points[1:] {
		path = append(path, PathCommand{Op: OpLineTo, X: p.X, Y: p.Y})
	}
	return path
}

// EdgePath возвращает отрисовываемый путь одного ребра: полилиния
// по shape-точкам, либо прямая линия между узлами при их отсутствии.
// Пустой путь, если узлы ребра не найдены в графе.
func EdgePath(graph *domain.NetworkGraph, edge *domain.Edge) Path {
	if edge == nil {
		return nil
	}

	if len(edge.ShapePoints) >= 2 {
		return PathFromShapePoints(shapeToPoints(edge.ShapePoints))
	}

	from := graph.Junction(edge.From)
	to := graph.Junction(edge.To)
	if from == nil || to == nil {
		return nil
	}
	return PathFromShapePoints([]domain.Point{from.Position(), to.Position()})
}

// EdgeMidpoint возвращает точную середину ребра: для полилиний - центральная
// точка (нечетное число точек) или середина двух центральных (четное);
// без shape-точек - середина отрезка между узлами. Никогда не возвращает NaN;
// при неразрешимых узлах возвращает начало координат.
func EdgeMidpoint(graph *domain.NetworkGraph, edge *domain.Edge) domain.Point {
	if edge == nil {
		return domain.Point{}
	}

	if n := len(edge.ShapePoints); n >= 2 {
		if n%2 == 1 {
			return edge.ShapePoints[n/2].Point()
		}
		a := edge.ShapePoints[n/2-1].Point()
		b := edge.ShapePoints[n/2].Point()
		return midpoint(a, b)
	}

	from := graph.Junction(edge.From)
	to := graph.Junction(edge.To)
	if from == nil || to == nil {
		// Узлы не разрешимы - определенный fallback вместо NaN
		return domain.Point{}
	}
	return midpoint(from.Position(), to.Position())
}

// IsExpressEdge - классификация ребра как экспресс-дороги по соглашению
// об именовании (префикс E / -E). Детерминированная, без похода в backend.
func IsExpressEdge(edgeID string) bool {
	return strings.HasPrefix(edgeID, "E") || strings.HasPrefix(edgeID, "-E")
}

func midpoint(a, b domain.Point) domain.Point {
	return domain.Point{
		X: (a.X + b.X) / 2,
		Y: (a.Y + b.Y) / 2,
	}
}

func shapeToPoints(shape []domain.ShapePoint) []domain.Point {
	points := make([]domain.Point, 0, len(shape))
	for _, sp := range shape {
		points = append(points, sp.Point())
	}
	return points
}
