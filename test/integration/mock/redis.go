package mock

import (
	"context"
	"sync"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

var (
	redisOnce   sync.Once
	redisServer *miniredis.Miniredis
	redisClient *redis.Client
)

// Redis returns a client connected to a process-wide miniredis server.
func Redis() *redis.Client {
	redisOnce.Do(func() {
		redisServer = miniredis.NewMiniRedis()
		if err := redisServer.Start(); err != nil {
			panic(err)
		}
		redisClient = redis.NewClient(&redis.Options{Addr: redisServer.Addr()})
	})
	return redisClient
}

// FlushRedis drops every key, including those with a pending TTL.
func FlushRedis(ctx context.Context) error {
	return Redis().FlushAll(ctx).Err()
}
