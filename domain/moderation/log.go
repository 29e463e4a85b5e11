package moderation

import (
	"context"
	"time"

	"github.com/pagepulse/pagepulse/domain/store"
)

// Log is an immutable record of a single moderation attempt. One row is
// appended for every platform call, successful or not.
type Log struct {
	id        int64
	commentID string
	action    Action
	reason    string
	succeeded bool
	errorMsg  string
	createdAt time.Time
}

// NewLog creates a Log for a moderation attempt.
func NewLog(commentID string, action Action, reason string, succeeded bool, errorMsg string) Log {
	return Log{
		commentID: commentID,
		action:    action,
		reason:    reason,
		succeeded: succeeded,
		errorMsg:  errorMsg,
		createdAt: time.Now().UTC(),
	}
}

// ReconstructLog rebuilds a Log from persisted state.
func ReconstructLog(id int64, commentID string, action Action, reason string, succeeded bool, errorMsg string, createdAt time.Time) Log {
	return Log{
		id:        id,
		commentID: commentID,
		action:    action,
		reason:    reason,
		succeeded: succeeded,
		errorMsg:  errorMsg,
		createdAt: createdAt,
	}
}

// ID returns the database identifier.
func (l Log) ID() int64 { return l.id }

// CommentID returns the platform comment identifier.
func (l Log) CommentID() string { return l.commentID }

// Action returns the attempted action.
func (l Log) Action() Action { return l.action }

// Reason returns the human-readable reason for the action.
func (l Log) Reason() string { return l.reason }

// Succeeded reports whether the platform call succeeded.
func (l Log) Succeeded() bool { return l.succeeded }

// ErrorMsg returns the platform error message for failed attempts.
func (l Log) ErrorMsg() string { return l.errorMsg }

// CreatedAt returns when the attempt was recorded.
func (l Log) CreatedAt() time.Time { return l.createdAt }

// LogStore persists moderation log entries.
type LogStore interface {
	Append(ctx context.Context, log Log) (Log, error)
	Find(ctx context.Context, options ...store.Option) ([]Log, error)
	Count(ctx context.Context, options ...store.Option) (int64, error)
}

// WithCommentID filters logs by the "comment_id" column.
func WithCommentID(id string) store.Option {
	return store.WithCondition("comment_id", id)
}

// WithAction filters logs by the "action" column.
func WithAction(action Action) store.Option {
	return store.WithCondition("action", string(action))
}

// WithSucceeded filters logs by the "succeeded" column.
func WithSucceeded(ok bool) store.Option {
	return store.WithCondition("succeeded", ok)
}
