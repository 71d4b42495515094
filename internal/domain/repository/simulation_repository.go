package repository

import (
	"context"

	"github.com/journey-microservice/internal/domain"
)

// SimulationRepository - контракт симуляционного backend (HTTP+JSON).
// Все вызовы могут отказать транзиентно: трекер обязан переживать это
// без остановки poll-цикла.
type SimulationRepository interface {
	// GetNetworkData загружает снапшот дорожной сети
	GetNetworkData(ctx context.Context) (*domain.NetworkGraph, error)

	// CalculateRouteByEdges считает маршрут между двумя ребрами
	CalculateRouteByEdges(ctx context.Context, startEdge, endEdge string) (*domain.Route, error)

	// StartJourney добавляет автомобиль в симуляцию по рассчитанному маршруту
	StartJourney(ctx context.Context, startEdge, endEdge string, routeEdges []string) (*domain.JourneyStart, error)

	// GetSimulationStatus возвращает агрегированное состояние симуляции
	GetSimulationStatus(ctx context.Context) (*domain.SimulationStatus, error)

	// GetActiveVehicles возвращает позиции активных автомобилей
	GetActiveVehicles(ctx context.Context) ([]domain.VehicleState, error)

	// GetFinishedVehicles возвращает завершившие поездку автомобили
	GetFinishedVehicles(ctx context.Context) ([]domain.FinishedVehicle, error)

	// ClearFinishedVehicles очищает список завершенных на стороне backend
	ClearFinishedVehicles(ctx context.Context) error

	// StopSimulation останавливает симуляцию
	StopSimulation(ctx context.Context) error
}
