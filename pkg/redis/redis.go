package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/avolkova/foodgram-backend/config"
	"github.com/avolkova/foodgram-backend/pkg/logger"
	"github.com/redis/go-redis/v9"
)

var client *redis.Client

const blacklistPrefix = "token_blacklist:"

// Init initializes Redis connection
func Init(cfg *config.RedisConfig) error {
	logger.Info("Initializing Redis connection", map[string]interface{}{
		"host": cfg.Host,
		"port": cfg.Port,
		"db":   cfg.DB,
	})

	client = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("Failed to connect to Redis", err, map[string]interface{}{
			"host": cfg.Host,
			"port": cfg.Port,
		})
		// Leave no half-connected client behind; callers treat a nil
		// client as "revocation disabled" rather than an error.
		client.Close()
		client = nil
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("Redis connection established successfully", nil)
	return nil
}

// GetClient returns the Redis client instance
func GetClient() *redis.Client {
	return client
}

// Close closes the Redis connection
func Close() error {
	if client != nil {
		logger.Info("Closing Redis connection", nil)
		return client.Close()
	}
	return nil
}

// BlacklistToken adds a token to the blacklist until its natural expiry.
// Used on logout so a still-valid JWT can no longer authenticate.
func BlacklistToken(ctx context.Context, token string, expiry time.Duration) error {
	if client == nil {
		return fmt.Errorf("redis client not initialized")
	}
	return client.Set(ctx, blacklistPrefix+token, "revoked", expiry).Err()
}

// IsTokenBlacklisted reports whether a token was revoked via logout.
func IsTokenBlacklisted(ctx context.Context, token string) (bool, error) {
	if client == nil {
		// No redis in this deployment: tokens simply expire on their own.
		return false, nil
	}
	n, err := client.Exists(ctx, blacklistPrefix+token).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
