// Package stats содержит воркер пересчета статистики по событиям
// завершения поездок из Redis Stream.
package stats

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/journey-microservice/internal/domain"
	"github.com/journey-microservice/internal/domain/repository"
	"github.com/journey-microservice/internal/worker"
	"go.uber.org/zap"
)

// StatisticsRefresher - пересчет статистики (реализуется StatsUseCase)
type StatisticsRefresher interface {
	RefreshStatistics(ctx context.Context) (*domain.JourneyStatistics, error)
}

// RefreshWorker слушает события завершения поездок и пересчитывает
// агрегированную статистику. Несколько инстансов делят поток через
// consumer group.
type RefreshWorker struct {
	*worker.BaseWorker
	streamRepo    repository.StreamRepository
	statsUC       StatisticsRefresher
	consumerGroup string
	consumerName  string
}

// NewRefreshWorker создает новый RefreshWorker
func NewRefreshWorker(
	streamRepo repository.StreamRepository,
	statsUC StatisticsRefresher,
	consumerGroup string,
	logger *zap.Logger,
) *RefreshWorker {
	hostname, _ := os.Hostname()
	consumerName := fmt.Sprintf("%s-%d", hostname, os.Getpid())

	return &RefreshWorker{
		BaseWorker:    worker.NewBaseWorker("stats-refresh", logger),
		streamRepo:    streamRepo,
		statsUC:       statsUC,
		consumerGroup: consumerGroup,
		consumerName:  consumerName,
	}
}

// Start запускает воркер
func (w *RefreshWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting stats refresh worker",
		zap.String("consumer_group", w.consumerGroup),
		zap.String("consumer_name", w.consumerName))

	if err := w.streamRepo.CreateConsumerGroup(ctx, domain.StreamJourneyFinished, w.consumerGroup); err != nil {
		logger.Error("Failed to create consumer group", zap.Error(err))
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	messages, err := w.streamRepo.Consume(ctx, domain.StreamJourneyFinished, w.consumerGroup, w.consumerName)
	if err != nil {
		return fmt.Errorf("failed to start consuming: %w", err)
	}

	for {
		select {
		case <-w.StopChan():
			logger.Info("Stats refresh worker stopped")
			return nil

		case <-ctx.Done():
			logger.Info("Stats refresh worker context cancelled")
			return ctx.Err()

		case msg, ok := <-messages:
			if !ok {
				logger.Info("Stream channel closed")
				return nil
			}
			w.handleMessage(ctx, msg)
		}
	}
}

// handleMessage обрабатывает одно событие завершения поездки
func (w *RefreshWorker) handleMessage(ctx context.Context, msg domain.StreamMessage) {
	logger := w.Logger()

	var event domain.JourneyFinishedEvent
	if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
		logger.Error("Failed to parse journey finished event",
			zap.String("message_id", msg.ID),
			zap.Error(err))
		// Подтверждаем нечитаемое сообщение, чтобы не перечитывать его вечно
		w.ack(ctx, msg.ID)
		return
	}

	if _, err := w.statsUC.RefreshStatistics(ctx); err != nil {
		logger.Error("Failed to refresh statistics",
			zap.String("record_id", event.RecordID.String()),
			zap.Error(err))
		// Не подтверждаем: событие будет доставлено повторно
		return
	}

	logger.Info("Statistics refreshed after journey completion",
		zap.String("record_id", event.RecordID.String()),
		zap.String("vehicle_id", event.VehicleID),
		zap.Float64("accuracy", event.Accuracy))

	w.ack(ctx, msg.ID)
}

func (w *RefreshWorker) ack(ctx context.Context, messageID string) {
	if err := w.streamRepo.Ack(ctx, domain.StreamJourneyFinished, w.consumerGroup, messageID); err != nil {
		w.Logger().Warn("Failed to ack message",
			zap.String("message_id", messageID),
			zap.Error(err))
	}
}
