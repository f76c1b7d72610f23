package client

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// InitRedisClient connects the shared counter store used by rate limiting.
// Counters live here rather than in process memory so limits hold across
// replicas and restarts.
func InitRedisClient(addr string) *redis.Client {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}

	return rdb
}
