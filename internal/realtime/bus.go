package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/momentumafrica/momentum-api/internal/logger"
)

// Bus fans feed events out across service instances.
type Bus interface {
	Publish(ctx context.Context, event Event) error
	StartForwarder(ctx context.Context, onEvent func(Event)) error
	Close() error
}

type redisBus struct {
	log     *logger.Logger
	rdb     *goredis.Client
	channel string
}

// NewRedisBus connects a Redis-backed bus on the given pub/sub channel.
func NewRedisBus(log *logger.Logger, addr, password string, db int, channel string) (Bus, error) {
	if addr == "" {
		return nil, fmt.Errorf("redis address required")
	}
	if channel == "" {
		channel = "momentum:feed"
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		Password:    password,
		DB:          db,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &redisBus{
		log:     log.With("service", "RedisFeedBus"),
		rdb:     rdb,
		channel: channel,
	}, nil
}

func (b *redisBus) Publish(ctx context.Context, event Event) error {
	raw, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return b.rdb.Publish(ctx, b.channel, raw).Err()
}

// StartForwarder subscribes to the bus channel and hands every decoded
// event to onEvent until ctx is done.
func (b *redisBus) StartForwarder(ctx context.Context, onEvent func(Event)) error {
	if onEvent == nil {
		return fmt.Errorf("onEvent callback required")
	}

	sub := b.rdb.Subscribe(ctx, b.channel)

	// ensures subscription actually started
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return fmt.Errorf("redis subscribe: %w", err)
	}

	go func() {
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				_ = sub.Close()
				return
			case m, ok := <-ch:
				if !ok || m == nil {
					_ = sub.Close()
					return
				}
				var event Event
				if err := json.Unmarshal([]byte(m.Payload), &event); err != nil {
					b.log.Warn("bad feed bus payload", "error", err)
					continue
				}
				onEvent(event)
			}
		}
	}()

	return nil
}

func (b *redisBus) Close() error {
	return b.rdb.Close()
}

// RedisClient exposes the underlying client of a Redis-backed bus for
// health probes. Returns nil for any other Bus.
func RedisClient(b Bus) *goredis.Client {
	if rb, ok := b.(*redisBus); ok {
		return rb.rdb
	}
	return nil
}
