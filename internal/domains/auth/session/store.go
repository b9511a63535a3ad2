package session

//go:generate go run go.uber.org/mock/mockgen -source=./store.go -destination=./mocks/store_mock.go -package=mocks

import (
	"carrental/infras/otel"
	"carrental/shared/constant"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	keyPrefix        = "session:"
	otelSessionIDKey = "session.token_id"
)

var ErrSessionNotFound = errors.New("session not found")

// Store keeps sessions server-side, keyed by token id.
type Store interface {
	Save(ctx context.Context, s Session, ttl time.Duration) error
	Get(ctx context.Context, tokenID string) (Session, error)
	Delete(ctx context.Context, tokenID string) error
}

type redisStore struct {
	client *redis.Client
	otel   otel.Otel
}

func NewStore(client *redis.Client, ot otel.Otel) Store {
	return &redisStore{
		client: client,
		otel:   ot,
	}
}

func Key(tokenID string) string {
	return keyPrefix + tokenID
}

func (store *redisStore) Save(ctx context.Context, s Session, ttl time.Duration) (err error) {
	ctx, scope := store.otel.NewScope(ctx, constant.OtelSessionScopeName, constant.OtelSessionScopeName+".Save")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(otelSessionIDKey, s.TokenID)

	value, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err = store.client.Set(ctx, Key(s.TokenID), value, ttl).Err(); err != nil {
		log.Error().Err(err).Str("user", s.Username).Msg("failed to save session")

		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

// Get returns ErrSessionNotFound when the session expired or was revoked.
func (store *redisStore) Get(ctx context.Context, tokenID string) (s Session, err error) {
	ctx, scope := store.otel.NewScope(ctx, constant.OtelSessionScopeName, constant.OtelSessionScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(otelSessionIDKey, tokenID)

	value, err := store.client.Get(ctx, Key(tokenID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return s, ErrSessionNotFound
	}

	if err != nil {
		log.Error().Err(err).Msg("failed to get session")

		return s, fmt.Errorf("failed to get session: %w", err)
	}

	if err = json.Unmarshal(value, &s); err != nil {
		return s, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return s, nil
}

func (store *redisStore) Delete(ctx context.Context, tokenID string) (err error) {
	ctx, scope := store.otel.NewScope(ctx, constant.OtelSessionScopeName, constant.OtelSessionScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(otelSessionIDKey, tokenID)

	if err = store.client.Del(ctx, Key(tokenID)).Err(); err != nil {
		log.Error().Err(err).Msg("failed to delete session")

		return fmt.Errorf("failed to delete session: %w", err)
	}

	return nil
}
