package persistence

import (
	"context"
	"fmt"

	"github.com/pagepulse/pagepulse/domain/chat"
	"github.com/pagepulse/pagepulse/internal/database"
)

// ConversationStore implements chat.Store using GORM.
type ConversationStore struct {
	database.Repository[chat.Turn, TurnModel]
}

// NewConversationStore creates a new ConversationStore.
func NewConversationStore(db database.Database) ConversationStore {
	return ConversationStore{
		Repository: database.NewRepository[chat.Turn, TurnModel](db, TurnMapper{}, "conversation turn"),
	}
}

var _ chat.Store = ConversationStore{}

// Append records a conversation turn.
func (s ConversationStore) Append(ctx context.Context, turn chat.Turn) (chat.Turn, error) {
	model := s.Mapper().ToModel(turn)
	if result := s.DB(ctx).Create(&model); result.Error != nil {
		return chat.Turn{}, fmt.Errorf("append conversation turn: %w", result.Error)
	}
	return s.Mapper().ToDomain(model), nil
}

// Recent returns the user's last n turns in chronological order.
func (s ConversationStore) Recent(ctx context.Context, userID string, n int) ([]chat.Turn, error) {
	var models []TurnModel
	result := s.DB(ctx).Model(&TurnModel{}).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Limit(n).
		Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("find conversation turns: %w", result.Error)
	}

	// The query returns newest first; callers want chronological order.
	turns := make([]chat.Turn, len(models))
	for i, m := range models {
		turns[len(models)-1-i] = s.Mapper().ToDomain(m)
	}
	return turns, nil
}
