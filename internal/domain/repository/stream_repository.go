package repository

import (
	"context"

	"github.com/journey-microservice/internal/domain"
)

// StreamRepository - публикация и чтение событий через Redis Streams
type StreamRepository interface {
	// Publish добавляет событие в стрим (JSON в поле "data")
	Publish(ctx context.Context, stream string, event interface{}) error

	// CreateConsumerGroup создает consumer group для стрима
	CreateConsumerGroup(ctx context.Context, stream, group string) error

	// Consume читает сообщения стрима через consumer group
	Consume(ctx context.Context, stream, group, consumer string) (<-chan domain.StreamMessage, error)

	// Ack подтверждает обработку сообщения
	Ack(ctx context.Context, stream, group, messageID string) error
}
