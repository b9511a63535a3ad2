package redis

import (
	"carrental/config"
	"context"
	"fmt"
	"net"

	goRedis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// New connects to the session store and verifies it answers.
func New(ctx context.Context, config *config.Config) (*goRedis.Client, error) {
	store := config.Session.Redis

	client := goRedis.NewClient(&goRedis.Options{
		Addr:     net.JoinHostPort(store.Host, store.Port),
		Password: store.Password,
		DB:       store.DB,
	})

	if _, err := client.Ping(ctx).Result(); err != nil {
		_ = client.Close()

		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	log.Debug().
		Int("db", store.DB).
		Str("host", store.Host).
		Str("port", store.Port).
		Msg("Connected to Redis")

	return client, nil
}
