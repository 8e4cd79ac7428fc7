package store

import (
	"sync"

	"linguachat/pkg/domain"
)

// MemoryStore keeps users and transcripts in-process. Used by tests and
// single-node runs without Postgres.
type MemoryStore struct {
	mu    sync.RWMutex
	users map[string]domain.User // key: user ID
	email map[string]string      // email -> user ID
	turns map[string][]domain.ChatTurn
}

// NewMemoryStore initializes an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users: make(map[string]domain.User),
		email: make(map[string]string),
		turns: make(map[string][]domain.ChatTurn),
	}
}

// SaveUser registers or updates a user.
func (m *MemoryStore) SaveUser(u domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[u.ID] = u
	m.email[u.Email] = u.ID
	return nil
}

// HasUserEmail checks if email exists.
func (m *MemoryStore) HasUserEmail(email string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.email[email]
	return ok, nil
}

// GetUserByEmail looks up a user by email.
func (m *MemoryStore) GetUserByEmail(email string) (domain.User, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.email[email]
	if !ok {
		return domain.User{}, false, nil
	}
	u, ok := m.users[id]
	return u, ok, nil
}

// GetUserByID returns a user by ID.
func (m *MemoryStore) GetUserByID(id string) (domain.User, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[id]
	return u, ok, nil
}

// AppendTurn records a transcript row.
func (m *MemoryStore) AppendTurn(turn domain.ChatTurn) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.turns[turn.UserID] = append(m.turns[turn.UserID], turn)
	return nil
}

// ListTurns returns the most recent turns in chronological order.
func (m *MemoryStore) ListTurns(userID string, limit int) ([]domain.ChatTurn, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	all := m.turns[userID]
	if limit <= 0 || len(all) == 0 {
		return []domain.ChatTurn{}, nil
	}
	start := len(all) - limit
	if start < 0 {
		start = 0
	}
	out := make([]domain.ChatTurn, len(all)-start)
	copy(out, all[start:])
	return out, nil
}
