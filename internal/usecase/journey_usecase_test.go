package usecase_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/journey-microservice/internal/config"
	"github.com/journey-microservice/internal/domain"
	"github.com/journey-microservice/internal/pkg/errors"
	"github.com/journey-microservice/internal/usecase"
)

type journeyFixture struct {
	journeyUC   *usecase.JourneyUseCase
	selectionUC *usecase.SelectionUseCase
	simRepo     *MockSimulationRepository
	journeyRepo *MockJourneyRepository
	streamRepo  *MockStreamRepository
}

func newJourneyFixture(t *testing.T, capacity int) *journeyFixture {
	t.Helper()
	logger := zap.NewNop()
	simRepo := &MockSimulationRepository{}
	journeyRepo := &MockJourneyRepository{}
	streamRepo := &MockStreamRepository{}
	cacheRepo := &MockCacheRepository{}

	cacheRepo.On("GetNetworkGraph", mock.Anything).Return(nil, nil)
	cacheRepo.On("SetNetworkGraph", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	cacheRepo.On("GetStats", mock.Anything).Return(nil, nil)
	cacheRepo.On("SetStats", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	simRepo.On("GetNetworkData", mock.Anything).Return(testGraph(), nil)
	journeyRepo.On("GetJourneyStatistics", mock.Anything, mock.Anything).
		Return(&domain.JourneyStatistics{}, nil).Maybe()

	cacheCfg := &config.CacheConfig{}
	statsCfg := &config.StatsConfig{
		DurationBucketShortMax: 300,
		DurationBucketMedMax:   900,
		DistanceBucketShortMax: 2000,
		DistanceBucketMedMax:   5000,
	}
	trackerCfg := &config.TrackerConfig{HistoryCapacity: capacity}

	networkUC := usecase.NewNetworkUseCase(simRepo, cacheRepo, cacheCfg, logger)
	_, err := networkUC.LoadNetwork(context.Background())
	require.NoError(t, err)

	routeUC := usecase.NewRouteUseCase(simRepo, networkUC, logger)
	selectionUC := usecase.NewSelectionUseCase(networkUC, routeUC, trackerCfg, logger)
	statsUC := usecase.NewStatsUseCase(journeyRepo, cacheRepo, cacheCfg, statsCfg, logger)
	journeyUC := usecase.NewJourneyUseCase(simRepo, journeyRepo, streamRepo, selectionUC, statsUC, trackerCfg, logger)

	return &journeyFixture{
		journeyUC:   journeyUC,
		selectionUC: selectionUC,
		simRepo:     simRepo,
		journeyRepo: journeyRepo,
		streamRepo:  streamRepo,
	}
}

func TestJourneyUseCase_StartJourney(t *testing.T) {
	ctx := context.Background()

	t.Run("starts journey and locks selection", func(t *testing.T) {
		f := newJourneyFixture(t, 20)
		f.simRepo.On("StartJourney", mock.Anything, "R1", "R3", []string{"R1", "R2", "R3"}).
			Return(&domain.JourneyStart{
				VehicleID:    "veh_1",
				Status:       "started",
				StartTime:    100,
				Distance:     300,
				PredictedETA: 42.5,
			}, nil)
		f.journeyRepo.On("SaveJourney", mock.Anything, mock.Anything).Return(nil)

		journey, err := f.journeyUC.StartJourney(ctx, "R1", "R3", []string{"R1", "R2", "R3"})
		require.NoError(t, err)
		assert.Equal(t, "veh_1", journey.VehicleID)
		assert.Equal(t, domain.JourneyStatusRunning, journey.Status)
		assert.Equal(t, 42.5, journey.PredictedDuration)
		assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", journey.RecordID.String())

		assert.True(t, f.selectionUC.Selection().Locked)
		assert.Len(t, f.journeyUC.History(), 1)
	})

	t.Run("calculates route when not provided", func(t *testing.T) {
		f := newJourneyFixture(t, 20)
		f.simRepo.On("CalculateRouteByEdges", mock.Anything, "R1", "R3").
			Return(&domain.Route{Edges: []string{"R1", "R2", "R3"}, Distance: 300, Duration: 30}, nil)
		f.simRepo.On("StartJourney", mock.Anything, "R1", "R3", []string{"R1", "R2", "R3"}).
			Return(&domain.JourneyStart{VehicleID: "veh_2", StartTime: 50, Distance: 300, PredictedETA: 31}, nil)
		f.journeyRepo.On("SaveJourney", mock.Anything, mock.Anything).Return(nil)

		journey, err := f.journeyUC.StartJourney(ctx, "R1", "R3", nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"R1", "R2", "R3"}, journey.RouteEdges)
	})

	t.Run("rejects second journey while one is in flight", func(t *testing.T) {
		f := newJourneyFixture(t, 20)
		f.simRepo.On("StartJourney", mock.Anything, "R1", "R3", mock.Anything).
			Return(&domain.JourneyStart{VehicleID: "veh_3", PredictedETA: 10}, nil)
		f.journeyRepo.On("SaveJourney", mock.Anything, mock.Anything).Return(nil)

		_, err := f.journeyUC.StartJourney(ctx, "R1", "R3", []string{"R1", "R3"})
		require.NoError(t, err)

		_, err = f.journeyUC.StartJourney(ctx, "R1", "R3", []string{"R1", "R3"})
		assert.ErrorIs(t, err, errors.ErrJourneyInFlight)
	})

	t.Run("concurrent starts admit exactly one journey", func(t *testing.T) {
		f := newJourneyFixture(t, 20)
		entered := make(chan struct{})
		release := make(chan struct{})
		f.simRepo.On("StartJourney", mock.Anything, "R1", "R3", mock.Anything).
			Run(func(args mock.Arguments) {
				close(entered)
				<-release
			}).
			Return(&domain.JourneyStart{VehicleID: "veh_1", PredictedETA: 10}, nil).Once()
		f.journeyRepo.On("SaveJourney", mock.Anything, mock.Anything).Return(nil)

		firstDone := make(chan error, 1)
		go func() {
			_, err := f.journeyUC.StartJourney(ctx, "R1", "R3", []string{"R1", "R3"})
			firstDone <- err
		}()

		// второй запрос приходит, пока первый еще ждет ответа backend
		<-entered
		_, err := f.journeyUC.StartJourney(ctx, "R1", "R3", []string{"R1", "R3"})
		assert.ErrorIs(t, err, errors.ErrJourneyInFlight)

		close(release)
		require.NoError(t, <-firstDone)
		assert.Len(t, f.journeyUC.History(), 1)
	})

	t.Run("failed backend start frees the slot", func(t *testing.T) {
		f := newJourneyFixture(t, 20)
		f.simRepo.On("StartJourney", mock.Anything, "R1", "R3", mock.Anything).
			Return(nil, fmt.Errorf("backend down")).Once()
		f.simRepo.On("StartJourney", mock.Anything, "R1", "R3", mock.Anything).
			Return(&domain.JourneyStart{VehicleID: "veh_1", PredictedETA: 10}, nil).Once()
		f.journeyRepo.On("SaveJourney", mock.Anything, mock.Anything).Return(nil)

		_, err := f.journeyUC.StartJourney(ctx, "R1", "R3", []string{"R1", "R3"})
		require.Error(t, err)

		_, err = f.journeyUC.StartJourney(ctx, "R1", "R3", []string{"R1", "R3"})
		require.NoError(t, err)
	})

	t.Run("history evicts oldest beyond capacity", func(t *testing.T) {
		f := newJourneyFixture(t, 3)
		f.journeyRepo.On("SaveJourney", mock.Anything, mock.Anything).Return(nil)
		f.simRepo.On("ClearFinishedVehicles", mock.Anything).Return(nil)
		f.simRepo.On("GetSimulationStatus", mock.Anything).Return(&domain.SimulationStatus{IsRunning: true}, nil)
		f.simRepo.On("GetActiveVehicles", mock.Anything).Return([]domain.VehicleState{}, nil)
		f.streamRepo.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(nil)

		for i := 0; i < 4; i++ {
			vehicleID := fmt.Sprintf("veh_%d", i)
			f.simRepo.On("StartJourney", mock.Anything, "R1", "R3", mock.Anything).
				Return(&domain.JourneyStart{VehicleID: vehicleID, StartTime: float64(i), PredictedETA: 10}, nil).Once()

			_, err := f.journeyUC.StartJourney(ctx, "R1", "R3", []string{"R1", "R3"})
			require.NoError(t, err)

			// завершаем поездку, чтобы запустить следующую
			f.simRepo.On("GetFinishedVehicles", mock.Anything).
				Return([]domain.FinishedVehicle{{ID: vehicleID, EndTime: float64(i) + 15}}, nil).Once()
			f.journeyUC.Tick(ctx)
		}

		history := f.journeyUC.History()
		require.Len(t, history, 3)
		assert.Equal(t, "veh_3", history[0].VehicleID, "newest first")
		assert.Equal(t, "veh_1", history[2].VehicleID, "oldest evicted")
	})
}

func TestJourneyUseCase_Tick(t *testing.T) {
	ctx := context.Background()

	startJourney := func(t *testing.T, f *journeyFixture, vehicleID string) *domain.Journey {
		t.Helper()
		f.simRepo.On("StartJourney", mock.Anything, "R1", "R3", mock.Anything).
			Return(&domain.JourneyStart{VehicleID: vehicleID, StartTime: 100, Distance: 300, PredictedETA: 20}, nil).Once()
		f.journeyRepo.On("SaveJourney", mock.Anything, mock.Anything).Return(nil)
		journey, err := f.journeyUC.StartJourney(ctx, "R1", "R3", []string{"R1", "R2", "R3"})
		require.NoError(t, err)
		return journey
	}

	t.Run("completes journey and unlocks selection", func(t *testing.T) {
		f := newJourneyFixture(t, 20)
		journey := startJourney(t, f, "veh_1")

		f.simRepo.On("GetSimulationStatus", mock.Anything).Return(&domain.SimulationStatus{IsRunning: true}, nil)
		f.simRepo.On("GetActiveVehicles", mock.Anything).Return([]domain.VehicleState{}, nil)
		f.simRepo.On("GetFinishedVehicles", mock.Anything).
			Return([]domain.FinishedVehicle{{ID: "veh_1", EndTime: 124}}, nil)
		f.simRepo.On("ClearFinishedVehicles", mock.Anything).Return(nil)
		f.streamRepo.On("Publish", mock.Anything, domain.StreamJourneyFinished, mock.Anything).Return(nil)

		f.journeyUC.Tick(ctx)

		assert.Equal(t, domain.JourneyStatusFinished, journey.Status)
		require.NotNil(t, journey.ActualDuration)
		assert.Equal(t, 24.0, *journey.ActualDuration)
		require.NotNil(t, journey.AbsError)
		assert.Equal(t, 4.0, *journey.AbsError)
		require.NotNil(t, journey.Accuracy)
		assert.InDelta(t, 83.333, *journey.Accuracy, 0.001)

		assert.False(t, f.selectionUC.Selection().Locked)
		f.streamRepo.AssertCalled(t, "Publish", mock.Anything, domain.StreamJourneyFinished, mock.Anything)
		f.simRepo.AssertCalled(t, "ClearFinishedVehicles", mock.Anything)
	})

	t.Run("deduplicates finished vehicle across polls", func(t *testing.T) {
		f := newJourneyFixture(t, 20)
		startJourney(t, f, "veh_1")

		f.simRepo.On("GetSimulationStatus", mock.Anything).Return(&domain.SimulationStatus{IsRunning: true}, nil)
		f.simRepo.On("GetActiveVehicles", mock.Anything).Return([]domain.VehicleState{}, nil)
		f.simRepo.On("GetFinishedVehicles", mock.Anything).
			Return([]domain.FinishedVehicle{{ID: "veh_1", EndTime: 124}}, nil)
		f.simRepo.On("ClearFinishedVehicles", mock.Anything).Return(nil)
		f.streamRepo.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(nil)

		f.journeyUC.Tick(ctx)
		f.journeyUC.Tick(ctx)
		f.journeyUC.Tick(ctx)

		f.streamRepo.AssertNumberOfCalls(t, "Publish", 1)
	})

	t.Run("untracked finished vehicle is ignored", func(t *testing.T) {
		f := newJourneyFixture(t, 20)

		f.simRepo.On("GetSimulationStatus", mock.Anything).Return(&domain.SimulationStatus{IsRunning: true}, nil)
		f.simRepo.On("GetActiveVehicles", mock.Anything).Return([]domain.VehicleState{}, nil)
		f.simRepo.On("GetFinishedVehicles", mock.Anything).
			Return([]domain.FinishedVehicle{{ID: "stranger", EndTime: 500}}, nil)
		f.simRepo.On("ClearFinishedVehicles", mock.Anything).Return(nil)

		f.journeyUC.Tick(ctx)

		f.streamRepo.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
		assert.Empty(t, f.journeyUC.History())
	})

	t.Run("vehicle id is trackable again after finished list is cleared", func(t *testing.T) {
		f := newJourneyFixture(t, 20)

		f.simRepo.On("GetSimulationStatus", mock.Anything).Return(&domain.SimulationStatus{IsRunning: true}, nil)
		f.simRepo.On("GetActiveVehicles", mock.Anything).Return([]domain.VehicleState{}, nil)
		f.simRepo.On("ClearFinishedVehicles", mock.Anything).Return(nil)
		f.streamRepo.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(nil)

		// сторонний автомобиль приходит в отчете и очищается backend'ом
		f.simRepo.On("GetFinishedVehicles", mock.Anything).
			Return([]domain.FinishedVehicle{{ID: "veh_1", EndTime: 50}}, nil).Once()
		f.journeyUC.Tick(ctx)

		// затем под тем же id завершается уже отслеживаемая поездка
		journey := startJourney(t, f, "veh_1")
		f.simRepo.On("GetFinishedVehicles", mock.Anything).
			Return([]domain.FinishedVehicle{{ID: "veh_1", EndTime: 124}}, nil).Once()
		f.journeyUC.Tick(ctx)

		assert.Equal(t, domain.JourneyStatusFinished, journey.Status)
		f.streamRepo.AssertNumberOfCalls(t, "Publish", 1)
	})

	t.Run("survives backend failures", func(t *testing.T) {
		f := newJourneyFixture(t, 20)
		startJourney(t, f, "veh_1")

		backendDown := fmt.Errorf("connection refused")
		f.simRepo.On("GetSimulationStatus", mock.Anything).Return(nil, backendDown)
		f.simRepo.On("GetActiveVehicles", mock.Anything).Return(nil, backendDown)
		f.simRepo.On("GetFinishedVehicles", mock.Anything).Return(nil, backendDown)

		// не должен паниковать и не должен трогать историю
		f.journeyUC.Tick(ctx)

		require.Len(t, f.journeyUC.History(), 1)
		assert.Equal(t, domain.JourneyStatusRunning, f.journeyUC.History()[0].Status)
		assert.True(t, f.selectionUC.Selection().Locked)
	})

	t.Run("saves status and vehicles snapshots", func(t *testing.T) {
		f := newJourneyFixture(t, 20)

		f.simRepo.On("GetSimulationStatus", mock.Anything).
			Return(&domain.SimulationStatus{IsRunning: true, Vehicles: 7}, nil)
		f.simRepo.On("GetActiveVehicles", mock.Anything).
			Return([]domain.VehicleState{{ID: "veh_1", X: 10, Y: 20, Speed: 13.9}}, nil)
		f.simRepo.On("GetFinishedVehicles", mock.Anything).Return([]domain.FinishedVehicle{}, nil)

		f.journeyUC.Tick(ctx)

		status := f.journeyUC.Status()
		require.NotNil(t, status)
		assert.Equal(t, 7, status.Vehicles)

		vehicles := f.journeyUC.ActiveVehicles()
		require.Len(t, vehicles, 1)
		assert.Equal(t, "veh_1", vehicles[0].ID)
	})
}

func TestJourneyUseCase_StopSimulation(t *testing.T) {
	ctx := context.Background()

	t.Run("resets selection but keeps history", func(t *testing.T) {
		f := newJourneyFixture(t, 20)
		f.simRepo.On("StartJourney", mock.Anything, "R1", "R3", mock.Anything).
			Return(&domain.JourneyStart{VehicleID: "veh_1", PredictedETA: 10}, nil)
		f.journeyRepo.On("SaveJourney", mock.Anything, mock.Anything).Return(nil)
		f.simRepo.On("StopSimulation", mock.Anything).Return(nil)

		_, err := f.journeyUC.StartJourney(ctx, "R1", "R3", []string{"R1", "R3"})
		require.NoError(t, err)

		err = f.journeyUC.StopSimulation(ctx)
		require.NoError(t, err)

		sel := f.selectionUC.Selection()
		assert.Nil(t, sel.Start)
		assert.False(t, sel.Locked)
		assert.Len(t, f.journeyUC.History(), 1, "history survives stop")
	})

	t.Run("propagates backend error", func(t *testing.T) {
		f := newJourneyFixture(t, 20)
		f.simRepo.On("StopSimulation", mock.Anything).Return(fmt.Errorf("backend down"))

		err := f.journeyUC.StopSimulation(ctx)
		assert.Error(t, err)
	})
}
