package config

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisClient is the global redis client. Nil when caching is disabled.
var RedisClient *redis.Client

// ConnectRedis connects to redis for the listing cache.
// Returns nil without error when REDIS_ADDR is not set.
func ConnectRedis(cfg *Config) (*redis.Client, error) {
	if cfg.Redis.Addr == "" {
		log.Println("⚠️ Redis not configured, listing cache disabled")
		return nil, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Username: cfg.Redis.Username,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	RedisClient = rdb
	log.Printf("✅ Redis connected successfully [%s]", cfg.Redis.Addr)
	return rdb, nil
}
