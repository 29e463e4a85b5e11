package persistence

import (
	"context"
	"fmt"

	"github.com/pagepulse/pagepulse/domain/moderation"
	"github.com/pagepulse/pagepulse/internal/database"
)

// ModerationLogStore implements moderation.LogStore using GORM.
type ModerationLogStore struct {
	database.Repository[moderation.Log, ModerationLogModel]
}

// NewModerationLogStore creates a new ModerationLogStore.
func NewModerationLogStore(db database.Database) ModerationLogStore {
	return ModerationLogStore{
		Repository: database.NewRepository[moderation.Log, ModerationLogModel](db, ModerationLogMapper{}, "moderation log"),
	}
}

var _ moderation.LogStore = ModerationLogStore{}

// Append records one moderation attempt. Log rows are never updated.
func (s ModerationLogStore) Append(ctx context.Context, log moderation.Log) (moderation.Log, error) {
	model := s.Mapper().ToModel(log)
	if result := s.DB(ctx).Create(&model); result.Error != nil {
		return moderation.Log{}, fmt.Errorf("append moderation log: %w", result.Error)
	}
	return s.Mapper().ToDomain(model), nil
}
