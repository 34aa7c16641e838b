package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/pupilplay/game-engine/pkg/session"
)

// RedisStorage implements the Storage interface using Redis. Checkpoints
// expire after the configured TTL, mirroring a bounded play session.
type RedisStorage struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// Ensure RedisStorage implements Storage interface
var _ Storage = (*RedisStorage)(nil)

// NewRedisStorage creates a new Redis storage instance.
func NewRedisStorage(redisURL string, ttl time.Duration, logger *slog.Logger) *RedisStorage {
	rdb := redis.NewClient(&redis.Options{
		Addr: redisURL,
	})

	if ttl <= 0 {
		ttl = time.Hour
	}

	return &RedisStorage{
		client: rdb,
		ttl:    ttl,
		logger: logger,
	}
}

func sessionKey(playerID string, sessionID uuid.UUID) string {
	return fmt.Sprintf("session:%s:%s", playerID, sessionID.String())
}

func (r *RedisStorage) Ping(ctx context.Context) error {
	cmd := r.client.Ping(ctx)
	if err := cmd.Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (r *RedisStorage) Close() error {
	if err := r.client.Close(); err != nil {
		r.logger.Error("Failed to close Redis connection", "error", err)
		return err
	}
	r.logger.Info("Redis connection closed")
	return nil
}

func (r *RedisStorage) SaveSession(ctx context.Context, playerID string, sessionID uuid.UUID, s *session.State) error {
	s.UpdatedAt = time.Now()

	data, err := json.Marshal(s)
	if err != nil {
		r.logger.Error("Failed to marshal session", "session_id", sessionID, "error", err)
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	key := sessionKey(playerID, sessionID)
	cmd := r.client.Set(ctx, key, string(data), r.ttl)
	if err := cmd.Err(); err != nil {
		r.logger.Error("Failed to save session", "session_id", sessionID, "error", err)
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

func (r *RedisStorage) LoadSession(ctx context.Context, playerID string, sessionID uuid.UUID) (*session.State, error) {
	key := sessionKey(playerID, sessionID)
	cmd := r.client.Get(ctx, key)
	if err := cmd.Err(); err != nil {
		if err == redis.Nil {
			r.logger.Debug("Session not found", "session_id", sessionID)
			return nil, nil // Return nil for not found
		}
		r.logger.Error("Failed to load session", "session_id", sessionID, "error", err)
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	data := cmd.Val()
	if data == "" {
		return nil, nil
	}

	var s session.State
	if err := json.Unmarshal([]byte(data), &s); err != nil {
		r.logger.Error("Failed to unmarshal session", "session_id", sessionID, "error", err)
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return &s, nil
}

func (r *RedisStorage) DeleteSession(ctx context.Context, playerID string, sessionID uuid.UUID) error {
	key := sessionKey(playerID, sessionID)
	cmd := r.client.Del(ctx, key)
	if err := cmd.Err(); err != nil {
		r.logger.Error("Failed to delete session", "session_id", sessionID, "error", err)
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
