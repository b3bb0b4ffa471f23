package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "session:"

// RedisStore persists sessions in Redis under session:<uuid> keys with TTL.
// Unlike a cache, store errors are surfaced: a failed Create must not let a
// login appear successful.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

var _ Store = (*RedisStore)(nil)

// NewRedisStore creates a Redis-backed session store.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

// Create stores the session under a fresh unguessable id and returns the id.
func (s *RedisStore) Create(ctx context.Context, sess Session) (string, error) {
	id := uuid.New().String()
	if err := s.write(ctx, id, sess); err != nil {
		return "", err
	}
	return id, nil
}

// Read returns the session payload, or ErrSessionNotFound when the id is
// unknown or expired.
func (s *RedisStore) Read(ctx context.Context, id string) (*Session, error) {
	data, err := s.client.Get(ctx, sessionKeyPrefix+id).Bytes()
	if err == redis.Nil {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &sess, nil
}

// Update overwrites the payload for an existing id, resetting its TTL.
func (s *RedisStore) Update(ctx context.Context, id string, sess Session) error {
	return s.write(ctx, id, sess)
}

// Destroy removes the session. Destroying an absent id is not an error.
func (s *RedisStore) Destroy(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, sessionKeyPrefix+id).Err(); err != nil {
		return fmt.Errorf("destroy session: %w", err)
	}
	return nil
}

func (s *RedisStore) write(ctx context.Context, id string, sess Session) error {
	payload, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := s.client.Set(ctx, sessionKeyPrefix+id, payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}
