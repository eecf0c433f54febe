package config

import (
	"os"

	"github.com/go-redis/redis/v8"
)

// Redis caches dashboard responses. Nil when REDIS_ADDR is unset; callers
// must treat the cache as optional.
var Redis *redis.Client

func ConnectRedis() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return
	}
	Redis = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})
}
