package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultRedisPrefix = "session:"

// RedisStore keeps sessions in Redis as JSON with a TTL matching ExpiresAt.
// Sessions are keyed by token; a second key maps the session ID to its
// current token so Delete and token rotation work by ID.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

// RedisOption configures the RedisStore.
type RedisOption func(*RedisStore)

// WithRedisPrefix sets the key prefix (default "session:").
func WithRedisPrefix(prefix string) RedisOption {
	return func(r *RedisStore) {
		if prefix != "" {
			r.prefix = prefix
		}
	}
}

// NewRedisStore creates a Redis-backed session store.
func NewRedisStore(client redis.UniversalClient, opts ...RedisOption) *RedisStore {
	r := &RedisStore{
		client: client,
		prefix: defaultRedisPrefix,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *RedisStore) tokenKey(token string) string {
	return r.prefix + "t:" + token
}

func (r *RedisStore) idKey(id string) string {
	return r.prefix + "id:" + id
}

// Create persists a new session.
func (r *RedisStore) Create(ctx context.Context, s *Session) error {
	if s.ID == "" || s.Token == "" {
		return ErrInvalidSession
	}

	ttl := time.Until(s.ExpiresAt)
	if ttl <= 0 {
		return ErrExpired
	}

	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("session: failed to marshal: %w", err)
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, r.tokenKey(s.Token), data, ttl)
		pipe.Set(ctx, r.idKey(s.ID), s.Token, ttl)
		return nil
	})
	return err
}

// Get retrieves a session by token.
func (r *RedisStore) Get(ctx context.Context, token string) (*Session, error) {
	val, err := r.client.Get(ctx, r.tokenKey(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var s Session
	if err := json.Unmarshal(val, &s); err != nil {
		return nil, fmt.Errorf("session: failed to unmarshal: %w", err)
	}
	if s.IsExpired() {
		return nil, ErrExpired
	}

	return &s, nil
}

// Update saves the session, dropping the old token key after a rotation.
// An already expired session is deleted instead of extended.
func (r *RedisStore) Update(ctx context.Context, s *Session) error {
	if s.ID == "" || s.Token == "" {
		return ErrInvalidSession
	}

	old, err := r.client.Get(ctx, r.idKey(s.ID)).Result()
	if errors.Is(err, redis.Nil) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	ttl := time.Until(s.ExpiresAt)
	if ttl <= 0 {
		return r.Delete(ctx, s.ID)
	}

	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("session: failed to marshal: %w", err)
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		if old != s.Token {
			pipe.Del(ctx, r.tokenKey(old))
		}
		pipe.Set(ctx, r.tokenKey(s.Token), data, ttl)
		pipe.Set(ctx, r.idKey(s.ID), s.Token, ttl)
		return nil
	})
	return err
}

// Delete removes a session by ID.
func (r *RedisStore) Delete(ctx context.Context, id string) error {
	token, err := r.client.Get(ctx, r.idKey(id)).Result()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	if err != nil {
		return err
	}
	return r.client.Del(ctx, r.tokenKey(token), r.idKey(id)).Err()
}

// DeleteExpired is a no-op: Redis expires keys on its own.
func (r *RedisStore) DeleteExpired(context.Context) (int64, error) {
	return 0, nil
}
