package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"linguachat/pkg/domain"
)

const (
	defaultHistoryCap = 20
	defaultHistoryTTL = 24 * time.Hour
)

// RedisHistoryStore keeps a bounded per-user conversation window in Redis.
// Every instance of the service sees the same window, and idle conversations
// expire on their own.
type RedisHistoryStore struct {
	client *redis.Client
	cap    int
	ttl    time.Duration
}

// NewRedisHistoryStore builds a Redis-backed history store. A cap <= 0 or
// ttl <= 0 falls back to the defaults (20 turns, 24h).
func NewRedisHistoryStore(addr, password string, cap int, ttl time.Duration) *RedisHistoryStore {
	if cap <= 0 {
		cap = defaultHistoryCap
	}
	if ttl <= 0 {
		ttl = defaultHistoryTTL
	}
	return &RedisHistoryStore{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
		}),
		cap: cap,
		ttl: ttl,
	}
}

// Append pushes a turn and trims the window to the configured cap.
func (s *RedisHistoryStore) Append(ctx context.Context, userID string, turn domain.ChatTurn) error {
	payload, err := json.Marshal(turn)
	if err != nil {
		return fmt.Errorf("marshal turn: %w", err)
	}
	key := historyKey(userID)
	pipe := s.client.TxPipeline()
	pipe.RPush(ctx, key, payload)
	pipe.LTrim(ctx, key, int64(-s.cap), -1)
	pipe.Expire(ctx, key, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("append history: %w", err)
	}
	return nil
}

// Recent returns the stored window in chronological order.
func (s *RedisHistoryStore) Recent(ctx context.Context, userID string) ([]domain.ChatTurn, error) {
	raw, err := s.client.LRange(ctx, historyKey(userID), 0, -1).Result()
	if err == redis.Nil {
		return []domain.ChatTurn{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}
	turns := make([]domain.ChatTurn, 0, len(raw))
	for _, item := range raw {
		var turn domain.ChatTurn
		if err := json.Unmarshal([]byte(item), &turn); err != nil {
			// Skip entries written by an incompatible version.
			continue
		}
		turns = append(turns, turn)
	}
	return turns, nil
}

// Clear drops the user's window.
func (s *RedisHistoryStore) Clear(ctx context.Context, userID string) error {
	if err := s.client.Del(ctx, historyKey(userID)).Err(); err != nil && err != redis.Nil {
		return err
	}
	return nil
}

func historyKey(userID string) string {
	return "linguachat:history:" + userID
}
