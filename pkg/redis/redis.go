package redis

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// ISentCache remembers the ids of messages the bot itself sent, so a later
// outgoing event with the same id can be classified as agent-generated
// instead of a human typing on the business phone.
type ISentCache interface {
	RememberSent(ctx context.Context, messageID string, ttl time.Duration) error
	WasSentByBot(ctx context.Context, messageID string) (bool, error)
}

type redisClient struct {
	client *redis.Client
}

func New() ISentCache {
	db, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	redisAddr := os.Getenv("REDIS_ADDRESS")
	redisPassword := os.Getenv("REDIS_PASSWORD")

	logrus.Info(fmt.Sprintf("Connecting to Redis at %s...", redisAddr))

	client := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: redisPassword,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		logrus.Error(fmt.Sprintf("Failed to connect to Redis: %v", err))
	} else {
		logrus.Info("Successfully connected to Redis")
	}

	return &redisClient{client: client}
}

func sentKey(messageID string) string {
	return "bot:sent:" + messageID
}

func (r *redisClient) RememberSent(ctx context.Context, messageID string, ttl time.Duration) error {
	err := r.client.Set(ctx, sentKey(messageID), "1", ttl).Err()
	if err != nil {
		logrus.Error(fmt.Sprintf("Error remembering sent message %s: %v", messageID, err))
		return err
	}
	return nil
}

func (r *redisClient) WasSentByBot(ctx context.Context, messageID string) (bool, error) {
	_, err := r.client.Get(ctx, sentKey(messageID)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	} else if err != nil {
		logrus.Error(fmt.Sprintf("Error checking sent message %s: %v", messageID, err))
		return false, err
	}
	return true, nil
}
