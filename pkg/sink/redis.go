package sink

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Publisher is the part of a Redis client the sink needs.
// redis.UniversalClient satisfies it.
type Publisher interface {
	Publish(ctx context.Context, channel string, message any) *redis.IntCmd
}

// Redis publishes JSON-encoded values to a pub/sub channel. Delivery is
// fire-and-forget: a value published with no listener is lost.
type Redis[T any] struct {
	pub     Publisher
	channel string
}

// NewRedis creates a Redis sink publishing to channel.
func NewRedis[T any](pub Publisher, channel string) *Redis[T] {
	return &Redis[T]{pub: pub, channel: channel}
}

// Deliver encodes v and publishes it.
func (r *Redis[T]) Deliver(ctx context.Context, v T) error {
	if r.pub == nil {
		return ErrNilPublisher
	}

	payload, err := json.Marshal(v)
	if err != nil {
		return errors.Join(ErrEncode, err)
	}

	if err := r.pub.Publish(ctx, r.channel, payload).Err(); err != nil {
		return errors.Join(ErrPublish, fmt.Errorf("channel %q: %w", r.channel, err))
	}
	return nil
}

// RedisConfig configures ConnectRedis.
type RedisConfig struct {
	URL            string        `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`
	Channel        string        `env:"REDIS_EVENTS_CHANNEL" envDefault:"mintshell:events"`
	RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"5s"`
	ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"30s"`
}

// ConnectRedis dials Redis and pings it until it answers, up to
// cfg.RetryAttempts times within cfg.ConnectTimeout.
func ConnectRedis(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseRedisURL, err)
	}

	if cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
	}

	var lastErr error
	for attempt := range max(cfg.RetryAttempts, 1) {
		if attempt > 0 {
			timer := time.NewTimer(cfg.RetryInterval)
			select {
			case <-ctx.Done():
				timer.Stop()
				return nil, errors.Join(ErrRedisNotReady, ctx.Err())
			case <-timer.C:
			}
		}

		client := redis.NewClient(opts)
		if lastErr = client.Ping(ctx).Err(); lastErr == nil {
			return client, nil
		}
		_ = client.Close()
	}

	return nil, errors.Join(ErrRedisNotReady, lastErr)
}

// RedisHealthcheck returns a check function that pings client.
func RedisHealthcheck(client redis.UniversalClient) func(context.Context) error {
	return func(ctx context.Context) error {
		if err := client.Ping(ctx).Err(); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}
