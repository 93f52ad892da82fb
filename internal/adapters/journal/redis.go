package journal

import (
	"context"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"
)

// Redis is a ports.Journal backed by a Redis list per day. Installations
// that run the agent on several machines point them at one Redis so logs
// land in a single place.
type Redis struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

// RedisOption configures a Redis journal.
type RedisOption func(*Redis)

// WithPrefix sets the key prefix for journal entries.
func WithPrefix(prefix string) RedisOption {
	return func(r *Redis) { r.prefix = prefix }
}

// WithTTL sets the expiration for daily journal keys. Zero keeps them forever.
func WithTTL(ttl time.Duration) RedisOption {
	return func(r *Redis) { r.ttl = ttl }
}

// NewRedis creates a Redis journal with its own client.
func NewRedis(address, password string, db int, opts ...RedisOption) *Redis {
	client := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewRedisFromClient(client, opts...)
}

// NewRedisFromClient creates a Redis journal from an existing client.
func NewRedisFromClient(client *backend.Client, opts ...RedisOption) *Redis {
	r := &Redis{
		client: client,
		prefix: "winmate:journal:",
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Redis) key(now time.Time) string {
	return r.prefix + dayKey(now)
}

// Event implements ports.Journal.
func (r *Redis) Event(ctx context.Context, message string) error {
	now := time.Now()
	key := r.key(now)

	pipe := r.client.Pipeline()
	pipe.RPush(ctx, key, formatEvent(now, message))
	if r.ttl > 0 {
		pipe.Expire(ctx, key, r.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("append journal entry to redis: %w", err)
	}
	return nil
}

// Action implements ports.Journal.
func (r *Redis) Action(ctx context.Context, name, status, detail string) error {
	return r.Event(ctx, formatAction(name, status, detail))
}

// Recent implements ports.Journal. It returns the most recent entries of
// today's list, oldest first.
func (r *Redis) Recent(ctx context.Context, limit int) ([]string, error) {
	start := int64(0)
	if limit > 0 {
		start = int64(-limit)
	}
	lines, err := r.client.LRange(ctx, r.key(time.Now()), start, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("read journal from redis: %w", err)
	}
	return lines, nil
}

// Close implements ports.Journal.
func (r *Redis) Close() error {
	return r.client.Close()
}
