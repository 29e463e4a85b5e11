package persistence

import (
	"context"
	"fmt"

	"github.com/pagepulse/pagepulse/domain/rules"
	"github.com/pagepulse/pagepulse/domain/store"
	"github.com/pagepulse/pagepulse/internal/database"
)

// withActive filters rule rows by the "active" column.
func withActive() store.Option {
	return store.WithCondition("active", true)
}

// SpamPatternStore implements rules.SpamPatternStore using GORM.
type SpamPatternStore struct {
	database.Repository[rules.SpamPattern, SpamPatternModel]
}

// NewSpamPatternStore creates a new SpamPatternStore.
func NewSpamPatternStore(db database.Database) SpamPatternStore {
	return SpamPatternStore{
		Repository: database.NewRepository[rules.SpamPattern, SpamPatternModel](db, SpamPatternMapper{}, "spam pattern"),
	}
}

var _ rules.SpamPatternStore = SpamPatternStore{}

// Active returns all patterns that participate in classification.
func (s SpamPatternStore) Active(ctx context.Context) ([]rules.SpamPattern, error) {
	return s.Find(ctx, withActive())
}

// Save creates or updates a pattern.
func (s SpamPatternStore) Save(ctx context.Context, pattern rules.SpamPattern) (rules.SpamPattern, error) {
	model := s.Mapper().ToModel(pattern)
	if result := s.DB(ctx).Save(&model); result.Error != nil {
		return rules.SpamPattern{}, fmt.Errorf("save spam pattern: %w", result.Error)
	}
	return s.Mapper().ToDomain(model), nil
}

// SaveAll creates the given patterns in one batch.
func (s SpamPatternStore) SaveAll(ctx context.Context, patterns []rules.SpamPattern) error {
	if len(patterns) == 0 {
		return nil
	}
	models := make([]SpamPatternModel, len(patterns))
	for i, p := range patterns {
		models[i] = s.Mapper().ToModel(p)
	}
	if result := s.DB(ctx).Create(&models); result.Error != nil {
		return fmt.Errorf("save spam patterns: %w", result.Error)
	}
	return nil
}

// ToxicKeywordStore implements rules.ToxicKeywordStore using GORM.
type ToxicKeywordStore struct {
	database.Repository[rules.ToxicKeyword, ToxicKeywordModel]
}

// NewToxicKeywordStore creates a new ToxicKeywordStore.
func NewToxicKeywordStore(db database.Database) ToxicKeywordStore {
	return ToxicKeywordStore{
		Repository: database.NewRepository[rules.ToxicKeyword, ToxicKeywordModel](db, ToxicKeywordMapper{}, "toxic keyword"),
	}
}

var _ rules.ToxicKeywordStore = ToxicKeywordStore{}

// Active returns all keywords that participate in classification.
func (s ToxicKeywordStore) Active(ctx context.Context) ([]rules.ToxicKeyword, error) {
	return s.Find(ctx, withActive())
}

// Save creates or updates a keyword.
func (s ToxicKeywordStore) Save(ctx context.Context, keyword rules.ToxicKeyword) (rules.ToxicKeyword, error) {
	model := s.Mapper().ToModel(keyword)
	if result := s.DB(ctx).Save(&model); result.Error != nil {
		return rules.ToxicKeyword{}, fmt.Errorf("save toxic keyword: %w", result.Error)
	}
	return s.Mapper().ToDomain(model), nil
}

// SaveAll creates the given keywords in one batch.
func (s ToxicKeywordStore) SaveAll(ctx context.Context, keywords []rules.ToxicKeyword) error {
	if len(keywords) == 0 {
		return nil
	}
	models := make([]ToxicKeywordModel, len(keywords))
	for i, k := range keywords {
		models[i] = s.Mapper().ToModel(k)
	}
	if result := s.DB(ctx).Create(&models); result.Error != nil {
		return fmt.Errorf("save toxic keywords: %w", result.Error)
	}
	return nil
}

// SentimentKeywordStore implements rules.SentimentKeywordStore using GORM.
type SentimentKeywordStore struct {
	database.Repository[rules.SentimentKeyword, SentimentKeywordModel]
}

// NewSentimentKeywordStore creates a new SentimentKeywordStore.
func NewSentimentKeywordStore(db database.Database) SentimentKeywordStore {
	return SentimentKeywordStore{
		Repository: database.NewRepository[rules.SentimentKeyword, SentimentKeywordModel](db, SentimentKeywordMapper{}, "sentiment keyword"),
	}
}

var _ rules.SentimentKeywordStore = SentimentKeywordStore{}

// Active returns all keywords that participate in classification.
func (s SentimentKeywordStore) Active(ctx context.Context) ([]rules.SentimentKeyword, error) {
	return s.Find(ctx, withActive())
}

// Save creates or updates a keyword.
func (s SentimentKeywordStore) Save(ctx context.Context, keyword rules.SentimentKeyword) (rules.SentimentKeyword, error) {
	model := s.Mapper().ToModel(keyword)
	if result := s.DB(ctx).Save(&model); result.Error != nil {
		return rules.SentimentKeyword{}, fmt.Errorf("save sentiment keyword: %w", result.Error)
	}
	return s.Mapper().ToDomain(model), nil
}

// SaveAll creates the given keywords in one batch.
func (s SentimentKeywordStore) SaveAll(ctx context.Context, keywords []rules.SentimentKeyword) error {
	if len(keywords) == 0 {
		return nil
	}
	models := make([]SentimentKeywordModel, len(keywords))
	for i, k := range keywords {
		models[i] = s.Mapper().ToModel(k)
	}
	if result := s.DB(ctx).Create(&models); result.Error != nil {
		return fmt.Errorf("save sentiment keywords: %w", result.Error)
	}
	return nil
}
