package storage

import (
	"context"
	"errors"
	"time"

	redis "github.com/redis/go-redis/v9"

	"powerpump/internal/adapters/metrics"
)

// DefaultRedisPrefix namespaces collection keys.
const DefaultRedisPrefix = "powerpump:"

// RedisBackend keeps one string key per collection.
type RedisBackend struct {
	rdb      redis.Cmdable
	prefix   string
	recorder *metrics.Recorder
}

// NewRedisBackend creates a Backend over rdb. Keys are prefix + collection name.
// PRE: rdb is connected; recorder may be nil
func NewRedisBackend(rdb redis.Cmdable, prefix string, recorder *metrics.Recorder) *RedisBackend {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &RedisBackend{rdb: rdb, prefix: prefix, recorder: recorder}
}

// Get returns the stored document for name.
// POST: found is false when the key does not exist
func (b *RedisBackend) Get(ctx context.Context, name string) ([]byte, bool, error) {
	start := time.Now()
	body, err := b.rdb.Get(ctx, b.prefix+name).Bytes()
	b.recorder.ObserveQuery("redis", "get", time.Since(start))
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return body, true, nil
}

// Put replaces the document for name. SET is atomic for a single key.
func (b *RedisBackend) Put(ctx context.Context, name string, body []byte) error {
	start := time.Now()
	err := b.rdb.Set(ctx, b.prefix+name, body, 0).Err()
	b.recorder.ObserveQuery("redis", "set", time.Since(start))
	return err
}

// Ping checks that Redis answers.
func (b *RedisBackend) Ping(ctx context.Context) error {
	return b.rdb.Ping(ctx).Err()
}
