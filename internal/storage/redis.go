package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/jwebster45206/castle-clerk/pkg/state"
)

const (
	snapshotPrefix = "castle:session:"
	snapshotTTL    = time.Hour
)

// Snapshots persists finished or abandoned sessions so they can still be
// read after the live session is gone.
type Snapshots interface {
	Save(ctx context.Context, snap state.Snapshot) error
	Load(ctx context.Context, id uuid.UUID) (*state.Snapshot, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Ping(ctx context.Context) error
}

// RedisSnapshots stores session snapshots as JSON strings with a TTL.
type RedisSnapshots struct {
	client *redis.Client
	logger *slog.Logger
}

var _ Snapshots = (*RedisSnapshots)(nil)

func NewRedisSnapshots(ctx context.Context, redisURL string, logger *slog.Logger) (*RedisSnapshots, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	r := &RedisSnapshots{client: redis.NewClient(opt), logger: logger}
	if err := r.Ping(ctx); err != nil {
		_ = r.client.Close()
		return nil, err
	}
	return r, nil
}

func (r *RedisSnapshots) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (r *RedisSnapshots) Close() error {
	if err := r.client.Close(); err != nil {
		r.logger.Error("Failed to close Redis connection", "error", err)
		return err
	}
	return nil
}

func (r *RedisSnapshots) Save(ctx context.Context, snap state.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := r.client.Set(ctx, snapshotPrefix+snap.ID.String(), data, snapshotTTL).Err(); err != nil {
		r.logger.Error("Failed to save session", "session_id", snap.ID, "error", err)
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Load returns nil, nil when no snapshot exists.
func (r *RedisSnapshots) Load(ctx context.Context, id uuid.UUID) (*state.Snapshot, error) {
	data, err := r.client.Get(ctx, snapshotPrefix+id.String()).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var snap state.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &snap, nil
}

func (r *RedisSnapshots) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.client.Del(ctx, snapshotPrefix+id.String()).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
