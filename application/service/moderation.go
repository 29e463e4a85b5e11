// Package service provides application layer services that orchestrate domain operations.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pagepulse/pagepulse/domain/comment"
	"github.com/pagepulse/pagepulse/domain/moderation"
	"github.com/pagepulse/pagepulse/infrastructure/text"
	"github.com/pagepulse/pagepulse/internal/config"
)

// Moderation runs a comment through the analysis pipeline and persists the
// verdict. Stages run in precedence order: toxicity, then spam, then
// duplicate detection, then sentiment. A toxic or spam verdict short-circuits
// the later stages.
//
// Classifier failures never block a comment: a stage that errors is logged
// and treated as a clean result so the pipeline keeps going.
type Moderation struct {
	analyses        comment.AnalysisStore
	toxicity        moderation.ToxicityDetector
	spam            moderation.SpamDetector
	sentiment       comment.SentimentAnalyzer
	enforcer        AutoModerator
	duplicateWindow time.Duration
	logger          *slog.Logger
}

// AutoModerator enforces a flagged analysis's recommended action on the
// platform. *Actions satisfies this.
type AutoModerator interface {
	Auto(ctx context.Context, analysis comment.Analysis) (moderation.Action, error)
}

// ModerationOption configures a Moderation service.
type ModerationOption func(*Moderation)

// WithAutoModeration makes Process enforce hide and delete verdicts
// immediately after the analysis is stored. Enforcement failures are logged;
// the comment stays in the moderation queue for the sweeper.
func WithAutoModeration(enforcer AutoModerator) ModerationOption {
	return func(m *Moderation) {
		m.enforcer = enforcer
	}
}

// WithDuplicateWindow sets how far back duplicate detection looks.
func WithDuplicateWindow(d time.Duration) ModerationOption {
	return func(m *Moderation) {
		if d > 0 {
			m.duplicateWindow = d
		}
	}
}

// WithModerationLogger sets the service's logger.
func WithModerationLogger(logger *slog.Logger) ModerationOption {
	return func(m *Moderation) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// NewModeration creates a Moderation service.
func NewModeration(
	analyses comment.AnalysisStore,
	toxicity moderation.ToxicityDetector,
	spam moderation.SpamDetector,
	sentiment comment.SentimentAnalyzer,
	opts ...ModerationOption,
) *Moderation {
	m := &Moderation{
		analyses:        analyses,
		toxicity:        toxicity,
		spam:            spam,
		sentiment:       sentiment,
		duplicateWindow: config.DefaultDuplicateWindow,
		logger:          slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Process analyzes one comment and stores the verdict. Reprocessing the same
// comment replaces the stored analysis.
func (m *Moderation) Process(ctx context.Context, commentID, pageID, message string) (comment.Analysis, error) {
	cleaned := text.Clean(message)
	analysis := comment.NewAnalysis(commentID, pageID, message).
		WithText(cleaned, text.Keywords(cleaned), text.DetectLanguage(message), text.Describe(message))

	analysis = m.classify(ctx, analysis, message, cleaned)

	saved, err := m.analyses.Save(ctx, analysis)
	if err != nil {
		return comment.Analysis{}, fmt.Errorf("process comment %s: %w", commentID, err)
	}

	if m.enforcer != nil && saved.NeedsAttention() {
		applied, err := m.enforcer.Auto(ctx, saved)
		if err != nil {
			m.logger.Error("auto moderation failed, comment left in the queue",
				"comment_id", saved.CommentID(), "error", err)
		} else if applied != moderation.ActionNone {
			saved = saved.WithModeratedAt(time.Now().UTC())
		}
	}
	return saved, nil
}

// ByCommentID returns the stored analysis for a comment.
func (m *Moderation) ByCommentID(ctx context.Context, commentID string) (comment.Analysis, error) {
	return m.analyses.ByCommentID(ctx, commentID)
}

// classify applies the pipeline stages in precedence order.
func (m *Moderation) classify(ctx context.Context, analysis comment.Analysis, original, cleaned string) comment.Analysis {
	// Toxicity outranks everything: a toxic comment is stamped with a forced
	// negative sentiment and skips the remaining stages.
	toxicity, err := m.toxicity.Detect(ctx, cleaned)
	if err != nil {
		m.logger.Error("toxicity detection failed, treating comment as clean",
			"comment_id", analysis.CommentID(), "error", err)
	} else if toxicity.Toxic {
		return analysis.
			WithToxicity(toxicity.Category, toxicity.Score, toxicity.Recommended).
			WithSentiment(comment.SentimentNegative, -toxicity.Score, 0.9)
	}

	spam, err := m.spam.Detect(ctx, original)
	if err != nil {
		m.logger.Error("spam detection failed, treating comment as clean",
			"comment_id", analysis.CommentID(), "error", err)
	} else if spam.Spam {
		return analysis.WithSpam(moderation.ActionHide)
	}

	originalID, dup, err := m.analyses.HasRecentDuplicate(
		ctx, cleaned, analysis.CommentID(), time.Now().Add(-m.duplicateWindow))
	if err != nil {
		m.logger.Error("duplicate detection failed, treating comment as unique",
			"comment_id", analysis.CommentID(), "error", err)
	} else if dup {
		// Duplicates skip sentiment; the stored row carries a zeroed
		// neutral verdict.
		return analysis.
			WithDuplicate(originalID).
			WithSentiment(comment.SentimentNeutral, 0, 0)
	}

	report, err := m.sentiment.Analyze(ctx, cleaned)
	if err != nil {
		m.logger.Error("sentiment analysis failed, defaulting to neutral",
			"comment_id", analysis.CommentID(), "error", err)
		return analysis.WithSentiment(comment.SentimentNeutral, 0, 0.5)
	}
	return analysis.WithSentiment(report.Sentiment, report.Score, report.Confidence)
}
