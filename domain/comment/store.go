package comment

import (
	"context"
	"time"

	"github.com/pagepulse/pagepulse/domain/moderation"
	"github.com/pagepulse/pagepulse/domain/store"
)

// AnalysisStore persists comment analyses.
type AnalysisStore interface {
	// Save upserts an analysis keyed by comment ID. Reprocessing a comment
	// replaces the previous analysis rather than adding a second row.
	Save(ctx context.Context, analysis Analysis) (Analysis, error)

	// ByCommentID returns the analysis for a comment.
	ByCommentID(ctx context.Context, commentID string) (Analysis, error)

	// Find returns analyses matching the given options.
	Find(ctx context.Context, options ...store.Option) ([]Analysis, error)

	// Count returns the number of analyses matching the given options.
	Count(ctx context.Context, options ...store.Option) (int64, error)

	// StampModeration records that an action was applied to a comment.
	StampModeration(ctx context.Context, commentID string, action moderation.Action, at time.Time) error

	// HasRecentDuplicate reports whether another comment with the same
	// cleaned text exists since the given time. The comment itself is
	// excluded so reprocessing never self-matches. Returns the original
	// comment's ID when a duplicate is found.
	HasRecentDuplicate(ctx context.Context, cleaned, excludeCommentID string, since time.Time) (string, bool, error)

	// PendingModeration returns flagged analyses awaiting enforcement,
	// most toxic first.
	PendingModeration(ctx context.Context, limit int) ([]Analysis, error)
}

// WithCommentID filters analyses by the "comment_id" column.
func WithCommentID(id string) store.Option {
	return store.WithCondition("comment_id", id)
}

// WithSentiment filters analyses by the "sentiment" column.
func WithSentiment(s Sentiment) store.Option {
	return store.WithCondition("sentiment", string(s))
}

// WithSpamFlag filters analyses by the "is_spam" column.
func WithSpamFlag(spam bool) store.Option {
	return store.WithCondition("is_spam", spam)
}

// WithToxicFlag filters analyses by the "is_toxic" column.
func WithToxicFlag(toxic bool) store.Option {
	return store.WithCondition("is_toxic", toxic)
}
