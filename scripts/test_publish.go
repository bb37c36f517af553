//go:build ignore

// Публикует запрос в stream:city:aggregate и ждет ответа воркера:
//
//	go run scripts/test_publish.go -city Lyon
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/city-fighting/internal/domain"
)

func main() {
	redisAddr := flag.String("redis", "localhost:6379", "Redis address for streams")
	city := flag.String("city", "Lyon", "City to aggregate")
	wait := flag.Duration("wait", 60*time.Second, "How long to wait for the worker")
	flag.Parse()

	client := redis.NewClient(&redis.Options{Addr: *redisAddr})
	defer client.Close()

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	// ответы, опубликованные до нашего запроса, не интересны
	lastID := "$"
	if info, err := client.XInfoStream(ctx, domain.StreamCityDone).Result(); err == nil {
		lastID = info.LastGeneratedID
	}

	event := domain.CityAggregateEvent{RequestID: uuid.New(), City: *city}
	data, err := json.Marshal(event)
	if err != nil {
		log.Fatalf("Failed to marshal event: %v", err)
	}

	msgID, err := client.XAdd(ctx, &redis.XAddArgs{
		Stream: domain.StreamCityAggregate,
		Values: map[string]interface{}{"data": string(data)},
	}).Result()
	if err != nil {
		log.Fatalf("Failed to publish event: %v", err)
	}

	fmt.Printf("Event published\n")
	fmt.Printf("   Stream: %s\n", domain.StreamCityAggregate)
	fmt.Printf("   Message ID: %s\n", msgID)
	fmt.Printf("   Request ID: %s\n", event.RequestID)
	fmt.Printf("   City: %s\n", event.City)
	fmt.Printf("\nWaiting for response in %s...\n", domain.StreamCityDone)

	deadline := time.Now().Add(*wait)
	for time.Now().Before(deadline) {
		streams, err := client.XRead(ctx, &redis.XReadArgs{
			Streams: []string{domain.StreamCityDone, lastID},
			Count:   10,
			Block:   time.Second,
		}).Result()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			log.Fatalf("Failed to read responses: %v", err)
		}

		for _, xs := range streams {
			for _, msg := range xs.Messages {
				lastID = msg.ID

				raw, ok := msg.Values["data"].(string)
				if !ok {
					continue
				}
				var done domain.CityDoneEvent
				if err := json.Unmarshal([]byte(raw), &done); err != nil || done.RequestID != event.RequestID {
					continue
				}

				if done.Error != "" {
					fmt.Printf("\nWorker failed: %s\n", done.Error)
					return
				}
				pretty, _ := json.MarshalIndent(done.Aggregate, "", "  ")
				fmt.Printf("\nResponse received\n%s\n", pretty)
				return
			}
		}
	}

	fmt.Println("Timeout waiting for response")
}
