package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/journey-microservice/internal/config"
	"github.com/journey-microservice/internal/domain"
	"github.com/journey-microservice/internal/domain/repository"
	"github.com/journey-microservice/internal/pkg/errors"
	"go.uber.org/zap"
)

// JourneyUseCase - трекер жизненного цикла поездок. Запускает поездки
// в симуляции, опрашивает backend и завершает поездки при появлении
// автомобиля в отчете завершенных.
//
// История ограничена cfg.HistoryCapacity записями: новые добавляются в
// начало, старейшие вытесняются. Завершенные автомобили могут приходить
// в нескольких опросах подряд - повторы отсекает множество shown.
type JourneyUseCase struct {
	simRepo     repository.SimulationRepository
	journeyRepo repository.JourneyRepository
	streamRepo  repository.StreamRepository
	selectionUC *SelectionUseCase
	statsUC     *StatsUseCase
	cfg         *config.TrackerConfig
	logger      *zap.Logger

	mu           sync.Mutex
	history      []*domain.Journey
	shown        map[string]struct{}
	inFlight     *domain.Journey
	starting     bool
	lastStatus   *domain.SimulationStatus
	lastVehicles []domain.VehicleState
}

// NewJourneyUseCase создает новый экземпляр JourneyUseCase
func NewJourneyUseCase(
	simRepo repository.SimulationRepository,
	journeyRepo repository.JourneyRepository,
	streamRepo repository.StreamRepository,
	selectionUC *SelectionUseCase,
	statsUC *StatsUseCase,
	cfg *config.TrackerConfig,
	logger *zap.Logger,
) *JourneyUseCase {
	return &JourneyUseCase{
		simRepo:     simRepo,
		journeyRepo: journeyRepo,
		streamRepo:  streamRepo,
		selectionUC: selectionUC,
		statsUC:     statsUC,
		cfg:         cfg,
		logger:      logger,
		shown:       make(map[string]struct{}),
	}
}

// StartJourney запускает поездку в симуляции. Если маршрут не передан,
// он рассчитывается через backend. Одновременно отслеживается не более
// одной поездки: выбор блокируется до её завершения.
func (uc *JourneyUseCase) StartJourney(ctx context.Context, startEdge, endEdge string, routeEdges []string) (*domain.Journey, error) {
	// Слот поездки резервируется до похода в backend: проверка и захват
	// в одной критической секции, иначе два конкурентных запроса прошли бы
	// проверку за время сетевого вызова и запустили две поездки
	uc.mu.Lock()
	if uc.inFlight != nil || uc.starting {
		uc.mu.Unlock()
		return nil, errors.ErrJourneyInFlight
	}
	uc.starting = true
	uc.mu.Unlock()

	defer func() {
		uc.mu.Lock()
		uc.starting = false
		uc.mu.Unlock()
	}()

	if len(routeEdges) == 0 {
		route, err := uc.simRepo.CalculateRouteByEdges(ctx, startEdge, endEdge)
		if err != nil {
			return nil, fmt.Errorf("calculate route before journey start: %w", err)
		}
		if len(route.Edges) == 0 {
			return nil, errors.ErrRouteNotFound
		}
		routeEdges = route.Edges
	}

	start, err := uc.simRepo.StartJourney(ctx, startEdge, endEdge, routeEdges)
	if err != nil {
		uc.logger.Error("Failed to start journey",
			zap.String("start_edge", startEdge),
			zap.String("end_edge", endEdge),
			zap.Error(err))
		return nil, fmt.Errorf("start journey: %w", err)
	}

	journey := &domain.Journey{
		RecordID:          uuid.New(),
		VehicleID:         start.VehicleID,
		StartEdge:         startEdge,
		EndEdge:           endEdge,
		RouteEdges:        routeEdges,
		Distance:          start.Distance,
		PredictedDuration: start.PredictedETA,
		StartTime:         start.StartTime,
		StartTimeString:   start.StartTimeString,
		Status:            domain.JourneyStatusRunning,
	}

	uc.mu.Lock()
	uc.inFlight = journey
	uc.prependLocked(journey)
	uc.mu.Unlock()

	uc.selectionUC.Lock()

	if err := uc.journeyRepo.SaveJourney(ctx, journey); err != nil {
		uc.logger.Warn("Failed to persist started journey", zap.Error(err))
	}

	uc.logger.Info("Journey started",
		zap.String("record_id", journey.RecordID.String()),
		zap.String("vehicle_id", journey.VehicleID),
		zap.Float64("predicted_duration", journey.PredictedDuration),
		zap.Float64("distance", journey.Distance))

	return journey, nil
}

// Tick выполняет один цикл опроса backend: статус симуляции, активные
// автомобили, завершенные поездки. Отказ любого из трех вызовов
// логируется и не прерывает остальные - transient-ошибки backend не
// должны останавливать трекер.
func (uc *JourneyUseCase) Tick(ctx context.Context) {
	if status, err := uc.simRepo.GetSimulationStatus(ctx); err != nil {
		uc.logger.Warn("Failed to fetch simulation status", zap.Error(err))
	} else {
		uc.mu.Lock()
		uc.lastStatus = status
		uc.mu.Unlock()
	}

	if vehicles, err := uc.simRepo.GetActiveVehicles(ctx); err != nil {
		uc.logger.Warn("Failed to fetch active vehicles", zap.Error(err))
	} else {
		uc.mu.Lock()
		uc.lastVehicles = vehicles
		uc.mu.Unlock()
	}

	finished, err := uc.simRepo.GetFinishedVehicles(ctx)
	if err != nil {
		uc.logger.Warn("Failed to fetch finished vehicles", zap.Error(err))
		return
	}
	if len(finished) == 0 {
		return
	}

	processed := 0
	for i := range finished {
		if uc.processFinished(ctx, &finished[i]) {
			processed++
		}
	}

	if processed > 0 {
		if _, err := uc.statsUC.RefreshStatistics(ctx); err != nil {
			uc.logger.Warn("Failed to refresh statistics after completions", zap.Error(err))
		}
	}

	if err := uc.simRepo.ClearFinishedVehicles(ctx); err != nil {
		uc.logger.Warn("Failed to clear finished vehicles", zap.Error(err))
		return
	}

	// Backend очистил список - эти автомобили больше не придут,
	// их записи дедупликации мертвы
	uc.mu.Lock()
	uc.shown = make(map[string]struct{})
	uc.mu.Unlock()
}

// processFinished обрабатывает один завершенный автомобиль, true если
// поездка была завершена этим вызовом
func (uc *JourneyUseCase) processFinished(ctx context.Context, v *domain.FinishedVehicle) bool {
	uc.mu.Lock()
	if _, seen := uc.shown[v.ID]; seen {
		uc.mu.Unlock()
		return false
	}
	uc.shown[v.ID] = struct{}{}

	journey := uc.findByVehicleLocked(v.ID)
	if journey == nil {
		uc.mu.Unlock()
		uc.logger.Debug("Finished vehicle is not tracked", zap.String("vehicle_id", v.ID))
		return false
	}

	if !journey.Complete(v.EndTime) {
		uc.mu.Unlock()
		return false
	}

	wasInFlight := uc.inFlight != nil && uc.inFlight.VehicleID == v.ID
	if wasInFlight {
		uc.inFlight = nil
	}
	uc.mu.Unlock()

	if wasInFlight {
		uc.selectionUC.Unlock()
	}

	uc.logger.Info("Journey finished",
		zap.String("record_id", journey.RecordID.String()),
		zap.String("vehicle_id", journey.VehicleID),
		zap.Float64("predicted_duration", journey.PredictedDuration),
		zap.Float64("actual_duration", *journey.ActualDuration),
		zap.Float64("accuracy", *journey.Accuracy))

	if err := uc.journeyRepo.SaveJourney(ctx, journey); err != nil {
		uc.logger.Error("Failed to persist finished journey",
			zap.String("record_id", journey.RecordID.String()),
			zap.Error(err))
	}

	event := domain.JourneyFinishedEvent{
		RecordID:          journey.RecordID,
		VehicleID:         journey.VehicleID,
		StartEdge:         journey.StartEdge,
		EndEdge:           journey.EndEdge,
		Distance:          journey.Distance,
		PredictedDuration: journey.PredictedDuration,
		ActualDuration:    *journey.ActualDuration,
		AbsError:          *journey.AbsError,
		Accuracy:          *journey.Accuracy,
		FinishedAtStep:    v.EndTime,
	}
	if err := uc.streamRepo.Publish(ctx, domain.StreamJourneyFinished, event); err != nil {
		uc.logger.Warn("Failed to publish journey finished event", zap.Error(err))
	}

	return true
}

// StopSimulation останавливает симуляцию и сбрасывает выбор.
// История поездок сохраняется.
func (uc *JourneyUseCase) StopSimulation(ctx context.Context) error {
	if err := uc.simRepo.StopSimulation(ctx); err != nil {
		return fmt.Errorf("stop simulation: %w", err)
	}

	uc.mu.Lock()
	uc.inFlight = nil
	uc.lastStatus = nil
	uc.lastVehicles = nil
	uc.shown = make(map[string]struct{})
	uc.mu.Unlock()

	uc.selectionUC.Reset()
	uc.logger.Info("Simulation stopped, selection reset")
	return nil
}

// History возвращает снимок истории поездок, новые первыми
func (uc *JourneyUseCase) History() []*domain.Journey {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	out := make([]*domain.Journey, len(uc.history))
	copy(out, uc.history)
	return out
}

// RecentJourneys возвращает сохраненные поездки из хранилища
func (uc *JourneyUseCase) RecentJourneys(ctx context.Context, limit int) (*domain.JourneyPage, error) {
	if limit <= 0 {
		limit = uc.cfg.HistoryCapacity
	}
	page, err := uc.journeyRepo.GetRecentJourneys(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("get recent journeys: %w", err)
	}
	return page, nil
}

// Status возвращает последний известный статус симуляции
func (uc *JourneyUseCase) Status() *domain.SimulationStatus {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.lastStatus
}

// ActiveVehicles возвращает последний снимок активных автомобилей
func (uc *JourneyUseCase) ActiveVehicles() []domain.VehicleState {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	out := make([]domain.VehicleState, len(uc.lastVehicles))
	copy(out, uc.lastVehicles)
	return out
}

// prependLocked добавляет поездку в начало истории, вытесняя старейшие
// сверх емкости. Вызывается под uc.mu.
func (uc *JourneyUseCase) prependLocked(journey *domain.Journey) {
	uc.history = append([]*domain.Journey{journey}, uc.history...)
	if capacity := uc.cfg.HistoryCapacity; capacity > 0 && len(uc.history) > capacity {
		uc.history = uc.history[:capacity]
	}
}

// findByVehicleLocked ищет незавершенную поездку автомобиля в истории.
// Вызывается под uc.mu.
func (uc *JourneyUseCase) findByVehicleLocked(vehicleID string) *domain.Journey {
	for _, j := range uc.history {
		if j.VehicleID == vehicleID && !j.IsFinished() {
			return j
		}
	}
	return nil
}
