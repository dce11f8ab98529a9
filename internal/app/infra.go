package app

import (
	"context"
	"fmt"

	"tunr-web/internal/config"
	"tunr-web/internal/db"
	"tunr-web/internal/logger"
	"tunr-web/internal/redis"
	"tunr-web/internal/session"
)

// Infra is the client-storage backend plus whatever connection it holds.
type Infra struct {
	Storage session.Backend
	DB      *db.DB
	Redis   *redis.Client
}

func setupInfra(ctx context.Context, cfg config.Config) (*Infra, error) {
	switch cfg.StorageDriver {
	case config.StorageRedis:
		client, err := redis.New(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, err
		}

		logger.Info("redis ready", map[string]any{"addr": cfg.RedisAddr})

		return &Infra{Storage: session.NewRedisBackend(client.Client), Redis: client}, nil

	case config.StoragePostgres:
		database, err := db.Open(ctx, cfg.DatabaseDSN)
		if err != nil {
			return nil, err
		}

		logger.Info("database ready", nil)

		return &Infra{Storage: session.NewPostgresBackend(database), DB: database}, nil

	case config.StorageMemory, "":
		logger.Warn("using in-memory client storage; sessions are lost on restart", nil)

		return &Infra{Storage: session.NewMemoryBackend()}, nil

	default:
		return nil, fmt.Errorf("app: unknown storage driver %q", cfg.StorageDriver)
	}
}

// Close releases the storage connection, if any.
func (i *Infra) Close() error {
	if i.Redis != nil {
		return i.Redis.Close()
	}
	if i.DB != nil {
		return i.DB.Close()
	}
	return nil
}
