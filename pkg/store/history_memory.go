package store

import (
	"context"
	"sync"
	"time"

	"linguachat/pkg/domain"
)

type memoryHistoryEntry struct {
	turns   []domain.ChatTurn
	expires time.Time
}

// MemoryHistoryStore applies the same cap and TTL as the Redis store, in
// process memory. Single instance only.
type MemoryHistoryStore struct {
	mu      sync.Mutex
	entries map[string]*memoryHistoryEntry
	cap     int
	ttl     time.Duration
}

// NewMemoryHistoryStore builds an in-memory history store.
func NewMemoryHistoryStore(cap int, ttl time.Duration) *MemoryHistoryStore {
	if cap <= 0 {
		cap = defaultHistoryCap
	}
	if ttl <= 0 {
		ttl = defaultHistoryTTL
	}
	return &MemoryHistoryStore{
		entries: make(map[string]*memoryHistoryEntry),
		cap:     cap,
		ttl:     ttl,
	}
}

// Append pushes a turn, trimming the window and refreshing expiry.
func (s *MemoryHistoryStore) Append(_ context.Context, userID string, turn domain.ChatTurn) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry := s.entries[userID]
	if entry == nil || time.Now().After(entry.expires) {
		entry = &memoryHistoryEntry{}
		s.entries[userID] = entry
	}
	entry.turns = append(entry.turns, turn)
	if len(entry.turns) > s.cap {
		entry.turns = entry.turns[len(entry.turns)-s.cap:]
	}
	entry.expires = time.Now().Add(s.ttl)
	return nil
}

// Recent returns the stored window in chronological order.
func (s *MemoryHistoryStore) Recent(_ context.Context, userID string) ([]domain.ChatTurn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry := s.entries[userID]
	if entry == nil {
		return []domain.ChatTurn{}, nil
	}
	if time.Now().After(entry.expires) {
		delete(s.entries, userID)
		return []domain.ChatTurn{}, nil
	}
	out := make([]domain.ChatTurn, len(entry.turns))
	copy(out, entry.turns)
	return out, nil
}

// Clear drops the user's window.
func (s *MemoryHistoryStore) Clear(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, userID)
	return nil
}
