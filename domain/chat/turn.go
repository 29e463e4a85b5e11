// Package chat defines persisted conversation history for the reply assistant.
package chat

import (
	"context"
	"time"
)

// Role identifies who authored a conversation turn.
type Role string

// Role values.
const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one persisted message of a conversation.
type Turn struct {
	id        int64
	userID    string
	role      Role
	content   string
	createdAt time.Time
}

// NewTurn creates a Turn.
func NewTurn(userID string, role Role, content string) Turn {
	return Turn{
		userID:    userID,
		role:      role,
		content:   content,
		createdAt: time.Now().UTC(),
	}
}

// ReconstructTurn rebuilds a Turn from persisted state.
func ReconstructTurn(id int64, userID string, role Role, content string, createdAt time.Time) Turn {
	return Turn{
		id:        id,
		userID:    userID,
		role:      role,
		content:   content,
		createdAt: createdAt,
	}
}

// ID returns the database identifier.
func (t Turn) ID() int64 { return t.id }

// UserID returns the conversation owner.
func (t Turn) UserID() string { return t.userID }

// Role returns who authored the turn.
func (t Turn) Role() Role { return t.role }

// Content returns the message text.
func (t Turn) Content() string { return t.content }

// CreatedAt returns when the turn was recorded.
func (t Turn) CreatedAt() time.Time { return t.createdAt }

// Store persists conversation turns.
type Store interface {
	// Append records a turn.
	Append(ctx context.Context, turn Turn) (Turn, error)

	// Recent returns the user's last n turns in chronological order.
	Recent(ctx context.Context, userID string, n int) ([]Turn, error)
}
