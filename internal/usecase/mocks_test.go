package usecase_test

import (
	"context"
	"time"

	"github.com/journey-microservice/internal/domain"
	"github.com/stretchr/testify/mock"
)

// MockSimulationRepository is a mock of SimulationRepository
type MockSimulationRepository struct {
	mock.Mock
}

func (m *MockSimulationRepository) GetNetworkData(ctx context.Context) (*domain.NetworkGraph, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.NetworkGraph), args.Error(1)
}

func (m *MockSimulationRepository) CalculateRouteByEdges(ctx context.Context, startEdge, endEdge string) (*domain.Route, error) {
	args := m.Called(ctx, startEdge, endEdge)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Route), args.Error(1)
}

func (m *MockSimulationRepository) StartJourney(ctx context.Context, startEdge, endEdge string, routeEdges []string) (*domain.JourneyStart, error) {
	args := m.Called(ctx, startEdge, endEdge, routeEdges)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JourneyStart), args.Error(1)
}

func (m *MockSimulationRepository) GetSimulationStatus(ctx context.Context) (*domain.SimulationStatus, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SimulationStatus), args.Error(1)
}

func (m *MockSimulationRepository) GetActiveVehicles(ctx context.Context) ([]domain.VehicleState, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.VehicleState), args.Error(1)
}

func (m *MockSimulationRepository) GetFinishedVehicles(ctx context.Context) ([]domain.FinishedVehicle, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FinishedVehicle), args.Error(1)
}

func (m *MockSimulationRepository) ClearFinishedVehicles(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockSimulationRepository) StopSimulation(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockJourneyRepository is a mock of JourneyRepository
type MockJourneyRepository struct {
	mock.Mock
}

func (m *MockJourneyRepository) SaveJourney(ctx context.Context, journey *domain.Journey) error {
	args := m.Called(ctx, journey)
	return args.Error(0)
}

func (m *MockJourneyRepository) GetRecentJourneys(ctx context.Context, limit int) (*domain.JourneyPage, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JourneyPage), args.Error(1)
}

func (m *MockJourneyRepository) GetJourneyStatistics(ctx context.Context, bounds domain.BucketBoundaries) (*domain.JourneyStatistics, error) {
	args := m.Called(ctx, bounds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JourneyStatistics), args.Error(1)
}

// MockCacheRepository is a mock of CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCacheRepository) GetNetworkGraph(ctx context.Context) (*domain.NetworkGraph, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.NetworkGraph), args.Error(1)
}

func (m *MockCacheRepository) SetNetworkGraph(ctx context.Context, graph *domain.NetworkGraph, ttl time.Duration) error {
	args := m.Called(ctx, graph, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) GetStats(ctx context.Context) (*domain.JourneyStatistics, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JourneyStatistics), args.Error(1)
}

func (m *MockCacheRepository) SetStats(ctx context.Context, stats *domain.JourneyStatistics, ttl time.Duration) error {
	args := m.Called(ctx, stats, ttl)
	return args.Error(0)
}

// MockStreamRepository is a mock of StreamRepository
type MockStreamRepository struct {
	mock.Mock
}

func (m *MockStreamRepository) Publish(ctx context.Context, stream string, event interface{}) error {
	args := m.Called(ctx, stream, event)
	return args.Error(0)
}

func (m *MockStreamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	args := m.Called(ctx, stream, group)
	return args.Error(0)
}

func (m *MockStreamRepository) Consume(ctx context.Context, stream, group, consumer string) (<-chan domain.StreamMessage, error) {
	args := m.Called(ctx, stream, group, consumer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(<-chan domain.StreamMessage), args.Error(1)
}

func (m *MockStreamRepository) Ack(ctx context.Context, stream, group, messageID string) error {
	args := m.Called(ctx, stream, group, messageID)
	return args.Error(0)
}

// testGraph builds a small network: four junctions on a line, three
// plain edges between them plus one express edge.
func testGraph() *domain.NetworkGraph {
	return &domain.NetworkGraph{
		Junctions: map[string]*domain.Junction{
			"J1": {ID: "J1", X: 0, Y: 0},
			"J2": {ID: "J2", X: 100, Y: 0},
			"J3": {ID: "J3", X: 200, Y: 0},
			"J4": {ID: "J4", X: 300, Y: 0},
		},
		Edges: map[string]*domain.Edge{
			"R1": {ID: "R1", From: "J1", To: "J2"},
			"R2": {ID: "R2", From: "J2", To: "J3"},
			"R3": {ID: "R3", From: "J3", To: "J4"},
			"E9": {ID: "E9", From: "J1", To: "J4"},
		},
		Bounds: domain.BoundingBox{MinX: 0, MaxX: 300, MinY: 0, MaxY: 0},
	}
}
