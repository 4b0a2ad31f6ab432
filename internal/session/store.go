package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// ErrNoValue is returned when a session attribute has never been set or the
// session has expired.
var ErrNoValue = errors.New("session value not found")

// Store is an opaque key-value store scoped to one browser session. Every
// operation addresses the session by its explicit identifier; nothing is kept
// in process-wide memory, so concurrent sessions never observe each other.
type Store interface {
	Get(ctx context.Context, sessionID, key string, dest interface{}) error
	Set(ctx context.Context, sessionID, key string, value interface{}) error
	Delete(ctx context.Context, sessionID, key string) error
	Destroy(ctx context.Context, sessionID string) error
}

const defaultOperationTimeout = 5 * time.Second

// RedisStore keeps session attributes as JSON values under
// session:<id>:<key>, each with a sliding TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(addr string, ttl time.Duration) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     "",
		DB:           0,
		PoolSize:     10,
		MinIdleConns: 5,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisStore{client: client, ttl: ttl}, nil
}

func sessionKey(sessionID, key string) string {
	return "session:" + sessionID + ":" + key
}

func (s *RedisStore) operationContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, defaultOperationTimeout)
}

func (s *RedisStore) Get(ctx context.Context, sessionID, key string, dest interface{}) error {
	ctx, cancel := s.operationContext(ctx)
	defer cancel()

	val, err := s.client.Get(ctx, sessionKey(sessionID, key)).Result()
	if err == redis.Nil {
		return ErrNoValue
	} else if err != nil {
		return err
	}
	return json.Unmarshal([]byte(val), dest)
}

func (s *RedisStore) Set(ctx context.Context, sessionID, key string, value interface{}) error {
	ctx, cancel := s.operationContext(ctx)
	defer cancel()

	jsonData, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, sessionKey(sessionID, key), jsonData, s.ttl).Err()
}

func (s *RedisStore) Delete(ctx context.Context, sessionID, key string) error {
	ctx, cancel := s.operationContext(ctx)
	defer cancel()

	return s.client.Del(ctx, sessionKey(sessionID, key)).Err()
}

// Destroy removes every attribute of the session, ending it.
func (s *RedisStore) Destroy(ctx context.Context, sessionID string) error {
	ctx, cancel := s.operationContext(ctx)
	defer cancel()

	iter := s.client.Scan(ctx, 0, sessionKey(sessionID, "*"), 0).Iterator()
	for iter.Next(ctx) {
		if err := s.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
