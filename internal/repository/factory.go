package repository

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"inmobot/internal/config"
)

// NewStore builds the backend selected by PROFILE_STORE. The same backend
// holds profiles and search history.
func NewStore(ctx context.Context, cfg *config.StoreConfig) (Store, error) {
	switch cfg.Backend {
	case "", "memory":
		return NewMemoryStore(), nil
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.RedisAddr, err)
		}
		return NewRedisStore(client, cfg.ProfileTTL), nil
	case "postgres":
		return NewPostgresStore(ctx, cfg.GetPostgreSQLDSN(),
			cfg.PostgreSQL.MaxConnections, cfg.PostgreSQL.MaxIdleConnections)
	default:
		return nil, fmt.Errorf("unknown profile store %q", cfg.Backend)
	}
}
