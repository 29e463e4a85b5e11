package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pagepulse/pagepulse/domain/comment"
	"github.com/pagepulse/pagepulse/domain/moderation"
	"github.com/pagepulse/pagepulse/internal/database"
)

// AnalysisStore implements comment.AnalysisStore using GORM.
type AnalysisStore struct {
	database.Repository[comment.Analysis, AnalysisModel]
}

// NewAnalysisStore creates a new AnalysisStore.
func NewAnalysisStore(db database.Database) AnalysisStore {
	return AnalysisStore{
		Repository: database.NewRepository[comment.Analysis, AnalysisModel](db, AnalysisMapper{}, "analysis"),
	}
}

var _ comment.AnalysisStore = AnalysisStore{}

// Save upserts an analysis keyed by comment_id. Reprocessing a comment
// replaces the previous verdict in place instead of adding a second row.
func (s AnalysisStore) Save(ctx context.Context, analysis comment.Analysis) (comment.Analysis, error) {
	model := s.Mapper().ToModel(analysis)

	result := s.DB(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "comment_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"page_id", "message", "cleaned_message",
			"sentiment", "score", "confidence", "keywords", "language", "metadata",
			"is_spam", "is_duplicate", "duplicate_of",
			"is_toxic", "toxic_category", "toxic_score",
			"moderation_action", "moderated_at", "updated_at",
		}),
	}).Create(&model)
	if result.Error != nil {
		return comment.Analysis{}, fmt.Errorf("save analysis: %w", result.Error)
	}

	// The conflict path does not report the surviving row's id, so re-read.
	return s.ByCommentID(ctx, analysis.CommentID())
}

// ByCommentID returns the analysis for a comment.
func (s AnalysisStore) ByCommentID(ctx context.Context, commentID string) (comment.Analysis, error) {
	return s.FindOne(ctx, comment.WithCommentID(commentID))
}

// StampModeration records that an action was applied to a comment.
func (s AnalysisStore) StampModeration(ctx context.Context, commentID string, action moderation.Action, at time.Time) error {
	result := s.DB(ctx).Model(&AnalysisModel{}).
		Where("comment_id = ?", commentID).
		Updates(map[string]any{
			"moderation_action": string(action),
			"moderated_at":      at,
			"updated_at":        time.Now().UTC(),
		})
	if result.Error != nil {
		return fmt.Errorf("stamp moderation: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: analysis", database.ErrNotFound)
	}
	return nil
}

// HasRecentDuplicate reports whether another comment with the same cleaned
// text exists since the given time, returning the earliest match's comment ID.
func (s AnalysisStore) HasRecentDuplicate(ctx context.Context, cleaned, excludeCommentID string, since time.Time) (string, bool, error) {
	var model AnalysisModel
	result := s.DB(ctx).Model(&AnalysisModel{}).
		Select("comment_id").
		Where("cleaned_message = ?", cleaned).
		Where("comment_id <> ?", excludeCommentID).
		Where("created_at >= ?", since).
		Order("created_at ASC").
		First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("find duplicate: %w", result.Error)
	}
	return model.CommentID, true, nil
}

// PendingModeration returns flagged analyses awaiting enforcement, most
// toxic first.
func (s AnalysisStore) PendingModeration(ctx context.Context, limit int) ([]comment.Analysis, error) {
	enforceable := []string{string(moderation.ActionDelete), string(moderation.ActionHide)}

	var models []AnalysisModel
	result := s.DB(ctx).Model(&AnalysisModel{}).
		Where("(is_toxic = ? OR is_spam = ?)", true, true).
		Where("moderation_action IN ?", enforceable).
		Where("moderated_at IS NULL").
		Order("toxic_score DESC").
		Limit(limit).
		Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("find pending moderation: %w", result.Error)
	}

	analyses := make([]comment.Analysis, len(models))
	for i, m := range models {
		analyses[i] = s.Mapper().ToDomain(m)
	}
	return analyses, nil
}
