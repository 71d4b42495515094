// Package journey содержит воркер опроса симуляции: раз в интервал
// трекер забирает статус, активные и завершенные автомобили.
package journey

import (
	"context"
	"time"

	"github.com/journey-microservice/internal/worker"
	"go.uber.org/zap"
)

// Ticker - один цикл опроса трекера (реализуется JourneyUseCase)
type Ticker interface {
	Tick(ctx context.Context)
}

// TrackerWorker опрашивает симуляционный backend с фиксированным
// интервалом. Тики выполняются последовательно: следующий не начнется,
// пока не завершился предыдущий, поэтому медленный backend не
// порождает параллельных опросов.
type TrackerWorker struct {
	*worker.BaseWorker
	journeyUC    Ticker
	pollInterval time.Duration
}

// NewTrackerWorker создает новый TrackerWorker
func NewTrackerWorker(
	journeyUC Ticker,
	pollInterval time.Duration,
	logger *zap.Logger,
) *TrackerWorker {
	if pollInterval <= 0 {
		pollInterval = time.Second
	}
	return &TrackerWorker{
		BaseWorker:   worker.NewBaseWorker("journey-tracker", logger),
		journeyUC:    journeyUC,
		pollInterval: pollInterval,
	}
}

// Start запускает цикл опроса
func (w *TrackerWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting journey tracker",
		zap.Duration("poll_interval", w.pollInterval))

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.StopChan():
			logger.Info("Journey tracker stopped")
			return nil

		case <-ctx.Done():
			logger.Info("Journey tracker context cancelled")
			return ctx.Err()

		case <-ticker.C:
			w.journeyUC.Tick(ctx)
		}
	}
}
