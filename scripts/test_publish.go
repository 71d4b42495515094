//go:build ignore

// Ручная публикация события завершения поездки в Redis Stream.
// Используется для проверки воркера статистики без запуска симуляции:
//
//	go run scripts/test_publish.go -redis localhost:6379
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type JourneyFinishedEvent struct {
	RecordID          uuid.UUID `json:"record_id"`
	VehicleID         string    `json:"vehicle_id"`
	StartEdge         string    `json:"start_edge"`
	EndEdge           string    `json:"end_edge"`
	Distance          float64   `json:"distance"`
	PredictedDuration float64   `json:"predicted_duration"`
	ActualDuration    float64   `json:"actual_duration"`
	AbsError          float64   `json:"abs_error"`
	Accuracy          float64   `json:"accuracy"`
	FinishedAtStep    float64   `json:"finished_at_step"`
}

func main() {
	redisAddr := flag.String("redis", "localhost:6379", "Redis address for streams")
	flag.Parse()

	client := redis.NewClient(&redis.Options{
		Addr: *redisAddr,
	})
	defer client.Close()

	ctx := context.Background()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	event := JourneyFinishedEvent{
		RecordID:          uuid.New(),
		VehicleID:         "veh_manual_1",
		StartEdge:         "A1",
		EndEdge:           "B7",
		Distance:          3120.5,
		PredictedDuration: 248.0,
		ActualDuration:    262.4,
		AbsError:          14.4,
		Accuracy:          94.51,
		FinishedAtStep:    1042,
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Fatalf("Failed to marshal event: %v", err)
	}

	result, err := client.XAdd(ctx, &redis.XAddArgs{
		Stream: "stream:journeys:finished",
		Values: map[string]interface{}{
			"data": string(data),
		},
	}).Result()
	if err != nil {
		log.Fatalf("Failed to publish event: %v", err)
	}

	fmt.Printf("Event published successfully!\n")
	fmt.Printf("   Stream: stream:journeys:finished\n")
	fmt.Printf("   Message ID: %s\n", result)
	fmt.Printf("   Record ID: %s\n", event.RecordID)
	fmt.Printf("   Vehicle: %s (%s -> %s)\n", event.VehicleID, event.StartEdge, event.EndEdge)
	fmt.Printf("   Accuracy: %.2f%%\n", event.Accuracy)
}
