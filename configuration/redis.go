package configuration

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// connectTimeout bounds a single ping during startup.
const connectTimeout = 3 * time.Second

// InitRedis connects to Redis, retrying while the server comes up.
func InitRedis(ctx context.Context, cfg RedisConfig, log logrus.FieldLogger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Network:  "tcp",
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	var err error
	for i := 0; i < cfg.MaxRetries; i++ {
		pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
		err = client.Ping(pingCtx).Err()
		cancel()
		if err == nil {
			return client, nil
		}

		log.WithError(err).Warnf("Failed to connect to Redis (attempt %d/%d)", i+1, cfg.MaxRetries)
		if i+1 < cfg.MaxRetries {
			select {
			case <-ctx.Done():
				client.Close()
				return nil, ctx.Err()
			case <-time.After(cfg.RetryDelay):
			}
		}
	}

	client.Close()
	return nil, fmt.Errorf("connect to redis after %d attempts: %w", cfg.MaxRetries, err)
}
