// Package redis provides the go-redis client and the session snapshot
// store that keeps conversations alive across API instances.
package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/roadpenalty/appealcore/internal/config"
	"github.com/roadpenalty/appealcore/internal/infrastructure/monitoring/logging"
	apperrors "github.com/roadpenalty/appealcore/pkg/errors"
)

// NewClient connects to Redis per the configuration and verifies the
// connection with a ping.
func NewClient(ctx context.Context, cfg config.RedisConfig, logger logging.Logger) (*redis.Client, error) {
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, apperrors.Wrap(err, apperrors.ErrCodeCacheError, "redis connection failed")
	}

	logger.Info("connected to redis", logging.String("addr", cfg.Addr), logging.Int("db", cfg.DB))
	return client, nil
}
