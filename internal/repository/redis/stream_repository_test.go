package redis_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/city-fighting/internal/domain"
	redisRepo "github.com/city-fighting/internal/repository/redis"
)

const (
	testAggregateStream = "test:stream:city:aggregate"
	testDoneStream      = "test:stream:city:done"
)

// getTestRedisClient creates a Redis client for testing
func getTestRedisClient(t *testing.T) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   1, // Use DB 1 for tests
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available for integration tests: %v", err)
	}

	client.Del(ctx, testAggregateStream, testDoneStream)
	t.Cleanup(func() {
		client.Del(context.Background(), testAggregateStream, testDoneStream)
		client.Close()
	})

	return client
}

func TestStreamRepository_CreateConsumerGroup(t *testing.T) {
	client := getTestRedisClient(t)
	repo := redisRepo.NewStreamRepository(client, 200*time.Millisecond, zap.NewNop())
	ctx := context.Background()

	require.NoError(t, repo.CreateConsumerGroup(ctx, testAggregateStream, "test-group"))

	groups, err := client.XInfoGroups(ctx, testAggregateStream).Result()
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "test-group", groups[0].Name)

	// BUSYGROUP не считается ошибкой
	assert.NoError(t, repo.CreateConsumerGroup(ctx, testAggregateStream, "test-group"))
}

func TestStreamRepository_PublishToStream(t *testing.T) {
	client := getTestRedisClient(t)
	repo := redisRepo.NewStreamRepository(client, 200*time.Millisecond, zap.NewNop())
	ctx := context.Background()

	event := &domain.CityDoneEvent{
		RequestID: uuid.New(),
		City:      "Atlantis",
		Error:     "CITY_NOT_FOUND",
	}
	require.NoError(t, repo.PublishToStream(ctx, testDoneStream, event))

	messages, err := client.XRead(ctx, &redis.XReadArgs{
		Streams: []string{testDoneStream, "0"},
		Count:   1,
	}).Result()
	require.NoError(t, err)
	require.Len(t, messages, 1)
	require.Len(t, messages[0].Messages, 1)

	dataStr, ok := messages[0].Messages[0].Values["data"].(string)
	require.True(t, ok)

	var received domain.CityDoneEvent
	require.NoError(t, json.Unmarshal([]byte(dataStr), &received))
	assert.Equal(t, event.RequestID, received.RequestID)
	assert.Equal(t, "Atlantis", received.City)
	assert.Nil(t, received.Aggregate)
}

func TestStreamRepository_ConsumeAndAck(t *testing.T) {
	client := getTestRedisClient(t)
	repo := redisRepo.NewStreamRepository(client, 200*time.Millisecond, zap.NewNop())
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	group := "test-consume-group"
	require.NoError(t, repo.CreateConsumerGroup(ctx, testAggregateStream, group))

	requestID := uuid.New()
	require.NoError(t, repo.PublishToStream(ctx, testAggregateStream,
		&domain.CityAggregateEvent{RequestID: requestID, City: "Lyon"}))

	msgChan, err := repo.ConsumeStream(ctx, testAggregateStream, group, "test-consumer")
	require.NoError(t, err)

	select {
	case msg := <-msgChan:
		var event domain.CityAggregateEvent
		require.NoError(t, json.Unmarshal([]byte(msg.Data), &event))
		assert.Equal(t, requestID, event.RequestID)
		assert.Equal(t, "Lyon", event.City)

		pending, err := client.XPending(ctx, testAggregateStream, group).Result()
		require.NoError(t, err)
		assert.Equal(t, int64(1), pending.Count)

		require.NoError(t, repo.AckMessage(ctx, testAggregateStream, group, msg.ID))

		pending, err = client.XPending(ctx, testAggregateStream, group).Result()
		require.NoError(t, err)
		assert.Equal(t, int64(0), pending.Count)
	case <-time.After(3 * time.Second):
		t.Fatal("Timeout waiting for message")
	}
}

func TestStreamRepository_ConsumeStream_ContextCancellation(t *testing.T) {
	client := getTestRedisClient(t)
	repo := redisRepo.NewStreamRepository(client, 200*time.Millisecond, zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())

	require.NoError(t, repo.CreateConsumerGroup(ctx, testAggregateStream, "test-cancel-group"))

	msgChan, err := repo.ConsumeStream(ctx, testAggregateStream, "test-cancel-group", "test-consumer")
	require.NoError(t, err)

	time.AfterFunc(100*time.Millisecond, cancel)

	timeout := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-msgChan:
			if !ok {
				return
			}
		case <-timeout:
			t.Fatal("Channel not closed after context cancellation")
		}
	}
}

func TestStreamRepository_ClaimsStalePendingMessages(t *testing.T) {
	client := getTestRedisClient(t)
	repo := redisRepo.NewStreamRepository(client, 100*time.Millisecond, zap.NewNop(),
		redisRepo.WithClaimIdle(150*time.Millisecond))

	group := "test-claim-group"
	require.NoError(t, repo.CreateConsumerGroup(context.Background(), testAggregateStream, group))
	require.NoError(t, repo.PublishToStream(context.Background(), testAggregateStream,
		&domain.CityAggregateEvent{RequestID: uuid.New(), City: "Nantes"}))

	// первый потребитель получает сообщение и "падает" без ack
	firstCtx, stopFirst := context.WithCancel(context.Background())
	first, err := repo.ConsumeStream(firstCtx, testAggregateStream, group, "consumer-a")
	require.NoError(t, err)

	var pendingID string
	select {
	case msg := <-first:
		pendingID = msg.ID
	case <-time.After(3 * time.Second):
		t.Fatal("Timeout waiting for first delivery")
	}
	stopFirst()

	time.Sleep(300 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	second, err := repo.ConsumeStream(ctx, testAggregateStream, group, "consumer-b")
	require.NoError(t, err)

	select {
	case msg := <-second:
		assert.Equal(t, pendingID, msg.ID)
		require.NoError(t, repo.AckMessage(ctx, testAggregateStream, group, msg.ID))
	case <-time.After(3 * time.Second):
		t.Fatal("Stale message was not claimed")
	}
}

func TestStreamRepository_PublishTrimsStream(t *testing.T) {
	client := getTestRedisClient(t)
	repo := redisRepo.NewStreamRepository(client, 100*time.Millisecond, zap.NewNop(),
		redisRepo.WithMaxLen(5))
	ctx := context.Background()

	for i := 0; i < 500; i++ {
		require.NoError(t, repo.PublishToStream(ctx, testDoneStream, &domain.CityDoneEvent{RequestID: uuid.New()}))
	}

	n, err := client.XLen(ctx, testDoneStream).Result()
	require.NoError(t, err)
	assert.Less(t, n, int64(500))
}

