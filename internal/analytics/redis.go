package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

const (
	EventsKey   = "castle:analytics:events"
	CountersKey = "castle:analytics:counts"

	// MaxStoredEvents bounds the event list; older events are trimmed.
	MaxStoredEvents = 10000
)

// RedisSink appends events to a capped Redis list and keeps a hash of
// per-event-name totals.
type RedisSink struct {
	client *redis.Client
	logger *slog.Logger
}

var _ Sink = (*RedisSink)(nil)

// NewRedisSink connects to the Redis instance at redisURL
// (e.g. "redis://localhost:6379/0").
func NewRedisSink(ctx context.Context, redisURL string, logger *slog.Logger) (*RedisSink, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.Info("Connected to Redis for analytics", "addr", opt.Addr)

	return &RedisSink{
		client: rdb,
		logger: logger,
	}, nil
}

func (r *RedisSink) Write(ctx context.Context, e Event) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.RPush(ctx, EventsKey, data)
	pipe.LTrim(ctx, EventsKey, -MaxStoredEvents, -1)
	pipe.HIncrBy(ctx, CountersKey, e.Name, 1)
	if _, err := pipe.Exec(ctx); err != nil {
		r.logger.Error("Redis analytics write failed", "event", e.Name, "error", err)
		return fmt.Errorf("redis analytics write failed: %w", err)
	}

	r.logger.Debug("Analytics event stored", "event", e.Name, "session_id", e.SessionID)
	return nil
}

// Totals returns how many times each event name has been recorded.
func (r *RedisSink) Totals(ctx context.Context) (map[string]int64, error) {
	raw, err := r.client.HGetAll(ctx, CountersKey).Result()
	if err != nil {
		return nil, fmt.Errorf("redis hgetall failed: %w", err)
	}

	totals := make(map[string]int64, len(raw))
	for name, v := range raw {
		var n int64
		if _, err := fmt.Sscan(v, &n); err != nil {
			r.logger.Warn("Skipping malformed analytics counter", "event", name, "value", v)
			continue
		}
		totals[name] = n
	}
	return totals, nil
}

// Recent returns up to n of the most recently stored events, oldest first.
func (r *RedisSink) Recent(ctx context.Context, n int64) ([]Event, error) {
	if n <= 0 {
		return []Event{}, nil
	}
	raw, err := r.client.LRange(ctx, EventsKey, -n, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis lrange failed: %w", err)
	}

	events := make([]Event, 0, len(raw))
	for _, item := range raw {
		var e Event
		if err := json.Unmarshal([]byte(item), &e); err != nil {
			r.logger.Warn("Skipping malformed analytics event", "error", err)
			continue
		}
		events = append(events, e)
	}
	return events, nil
}

func (r *RedisSink) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (r *RedisSink) Close() error {
	if err := r.client.Close(); err != nil {
		r.logger.Error("Failed to close Redis connection", "error", err)
		return err
	}
	r.logger.Info("Redis connection closed")
	return nil
}
