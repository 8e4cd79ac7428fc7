package store

import (
	"context"

	"linguachat/pkg/domain"
)

// Store defines persistence operations for users and chat transcripts.
type Store interface {
	// users
	SaveUser(domain.User) error
	HasUserEmail(email string) (bool, error)
	GetUserByEmail(email string) (domain.User, bool, error)
	GetUserByID(id string) (domain.User, bool, error)

	// transcript
	AppendTurn(turn domain.ChatTurn) error
	ListTurns(userID string, limit int) ([]domain.ChatTurn, error)
}

// SessionStore issues and validates session tokens.
type SessionStore interface {
	NewSession(userID string) (string, error)
	GetUserIDByToken(token string) (string, bool, error)
	DeleteSession(token string) error
}

// HistoryStore keeps the bounded per-user conversation window used for
// prompt assembly. Implementations cap the window at a fixed number of
// turns and expire idle conversations.
type HistoryStore interface {
	Append(ctx context.Context, userID string, turn domain.ChatTurn) error
	Recent(ctx context.Context, userID string) ([]domain.ChatTurn, error)
	Clear(ctx context.Context, userID string) error
}
