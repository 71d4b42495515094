package geometry

import (
	"github.com/journey-microservice/internal/domain"
)

// BuildRoutePath сшивает геометрию ребер маршрута в один непрерывный путь.
//
// Путь привязан к точным центрам крайних ребер (позиции маркеров S и D):
// центр первого ребра -> узел между edge[0] и edge[1] -> полная геометрия
// каждого промежуточного ребра -> узел между edge[n-2] и edge[n-1] ->
// центр последнего ребра. Крайние ребра рисуются частично, чтобы маршрут
// начинался и заканчивался ровно в выбранных пользователем точках.
//
// Ребра, отсутствующие в графе, пропускаются и возвращаются вторым
// значением - рендер не прерывается, путь может получиться разрывным.
func BuildRoutePath(graph *domain.NetworkGraph, routeEdges []string) (Path, []string) {
	if len(routeEdges) < 2 {
		return nil, nil
	}

	var points []domain.Point
	var skipped []string

	appendPoint := func(p domain.Point) {
		// Совпадающие соседние точки не несут информации для отрисовки
		if n := len(points); n > 0 && points[n-1] == p {
			return
		}
		points = append(points, p)
	}

	n := len(routeEdges)

	// Старт: центр первого ребра и узел, соединяющий его со вторым
	if first := graph.Edge(routeEdges[0]); first != nil {
		appendPoint(EdgeMidpoint(graph, first))
		if j := graph.Junction(first.To); j != nil {
			appendPoint(j.Position())
		}
	} else {
		skipped = append(skipped, routeEdges[0])
	}

	// Промежуточные ребра целиком: полилиния или оба узла
	for _, edgeID := range routeEdges[1 : n-1] {
		edge := graph.Edge(edgeID)
		if edge == nil {
			skipped = append(skipped, edgeID)
			continue
		}
		if len(edge.ShapePoints) >= 2 {
			for _, sp := range edge.ShapePoints {
				appendPoint(sp.Point())
			}
			continue
		}
		if from := graph.Junction(edge.From); from != nil {
			appendPoint(from.Position())
		}
		if to := graph.Junction(edge.To); to != nil {
			appendPoint(to.Position())
		}
	}

	// Финиш: узел, соединяющий предпоследнее ребро с последним, и центр последнего
	if last := graph.Edge(routeEdges[n-1]); last != nil {
		if j := graph.Junction(last.From); j != nil {
			appendPoint(j.Position())
		}
		appendPoint(EdgeMidpoint(graph, last))
	} else {
		skipped = append(skipped, routeEdges[n-1])
	}

	return PathFromShapePoints(points), skipped
}

// IsRouteEdge сообщает, является ли ребро внутренним ребром маршрута.
// Крайние ребра (индексы 0 и n-1) исключаются: они подсвечиваются
// отдельно как терминальные и рисуются частично.
func IsRouteEdge(edgeID string, routeEdges []string) bool {
	if len(routeEdges) < 3 {
		return false
	}
	for _, id := range routeEdges[1 : len(routeEdges)-1] {
		if id == edgeID {
			return true
		}
	}
	return false
}
