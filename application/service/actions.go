package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/pagepulse/pagepulse/domain/comment"
	"github.com/pagepulse/pagepulse/domain/moderation"
	"github.com/pagepulse/pagepulse/internal/config"
)

// Actions applies moderation decisions through the platform and records the
// outcome. Every platform call appends a moderation log row, successful or
// not; only successful calls stamp the analysis as moderated.
type Actions struct {
	platform moderation.Platform
	analyses comment.AnalysisStore
	logs     moderation.LogStore
	limiter  *rate.Limiter
	queueCap int
	logger   *slog.Logger
}

// ActionsOption configures an Actions service.
type ActionsOption func(*Actions)

// WithRateLimit throttles platform calls during batch moderation.
func WithRateLimit(perSecond float64, burst int) ActionsOption {
	return func(a *Actions) {
		if perSecond > 0 && burst > 0 {
			a.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
		}
	}
}

// WithQueueLimit caps how many pending analyses a batch run processes.
func WithQueueLimit(n int) ActionsOption {
	return func(a *Actions) {
		if n > 0 {
			a.queueCap = n
		}
	}
}

// WithActionsLogger sets the service's logger.
func WithActionsLogger(logger *slog.Logger) ActionsOption {
	return func(a *Actions) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// NewActions creates an Actions service. A nil platform is allowed; action
// methods then return ErrPlatformNotConfigured.
func NewActions(
	platform moderation.Platform,
	analyses comment.AnalysisStore,
	logs moderation.LogStore,
	opts ...ActionsOption,
) *Actions {
	a := &Actions{
		platform: platform,
		analyses: analyses,
		logs:     logs,
		limiter:  rate.NewLimiter(rate.Limit(config.DefaultModerationRate), config.DefaultModerationBurst),
		queueCap: config.DefaultQueueLimit,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Hide hides a comment on the platform.
func (a *Actions) Hide(ctx context.Context, commentID, reason string) error {
	return a.apply(ctx, commentID, moderation.ActionHide, reason)
}

// Delete permanently removes a comment from the platform.
func (a *Actions) Delete(ctx context.Context, commentID, reason string) error {
	return a.apply(ctx, commentID, moderation.ActionDelete, reason)
}

// Restore unhides a previously hidden comment.
func (a *Actions) Restore(ctx context.Context, commentID string) error {
	return a.apply(ctx, commentID, moderation.ActionRestore, moderation.ReasonManualRestore)
}

// Auto enforces the analysis's recommended action when it needs attention.
// Returns the applied action, or ActionNone when nothing was enforced.
// Advisory actions such as manual review are left for a human.
func (a *Actions) Auto(ctx context.Context, analysis comment.Analysis) (moderation.Action, error) {
	if !analysis.NeedsAttention() {
		return moderation.ActionNone, nil
	}

	action := analysis.ModerationAction()
	if !action.IsEnforceable() {
		return moderation.ActionNone, nil
	}

	reason := moderation.ReasonSpam
	if analysis.IsToxic() {
		reason = moderation.ReasonToxic
	}

	if err := a.apply(ctx, analysis.CommentID(), action, reason); err != nil {
		return moderation.ActionNone, err
	}
	return action, nil
}

// Queue returns flagged analyses awaiting enforcement, most toxic first.
func (a *Actions) Queue(ctx context.Context) ([]comment.Analysis, error) {
	return a.analyses.PendingModeration(ctx, a.queueCap)
}

// BatchFailure records one comment the batch run could not moderate.
type BatchFailure struct {
	CommentID string
	Error     string
}

// BatchResult summarizes one batch moderation run, item by item.
type BatchResult struct {
	Processed int
	Succeeded []string
	Failed    []BatchFailure
}

// Batch enforces the pending moderation queue, rate-limited so the platform
// API is not hammered. Individual failures are collected, not fatal.
func (a *Actions) Batch(ctx context.Context) (BatchResult, error) {
	if a.platform == nil {
		return BatchResult{}, ErrPlatformNotConfigured
	}

	pending, err := a.analyses.PendingModeration(ctx, a.queueCap)
	if err != nil {
		return BatchResult{}, fmt.Errorf("load moderation queue: %w", err)
	}

	var result BatchResult
	for _, analysis := range pending {
		if err := a.limiter.Wait(ctx); err != nil {
			return result, err
		}

		result.Processed++
		if _, err := a.Auto(ctx, analysis); err != nil {
			result.Failed = append(result.Failed, BatchFailure{
				CommentID: analysis.CommentID(),
				Error:     err.Error(),
			})
			a.logger.Warn("batch moderation failed for comment",
				"comment_id", analysis.CommentID(), "error", err)
			continue
		}
		result.Succeeded = append(result.Succeeded, analysis.CommentID())
	}

	a.logger.Info("batch moderation finished",
		"processed", result.Processed,
		"succeeded", len(result.Succeeded),
		"failed", len(result.Failed),
	)
	return result, nil
}

// apply performs one platform call and records the outcome.
func (a *Actions) apply(ctx context.Context, commentID string, action moderation.Action, reason string) error {
	if a.platform == nil {
		return ErrPlatformNotConfigured
	}

	var callErr error
	switch action {
	case moderation.ActionHide:
		callErr = a.platform.Hide(ctx, commentID)
	case moderation.ActionDelete:
		callErr = a.platform.Delete(ctx, commentID)
	case moderation.ActionRestore:
		callErr = a.platform.Unhide(ctx, commentID)
	default:
		return fmt.Errorf("action %q cannot be applied to the platform", action)
	}

	errMsg := ""
	if callErr != nil {
		errMsg = callErr.Error()
	}
	if _, err := a.logs.Append(ctx, moderation.NewLog(commentID, action, reason, callErr == nil, errMsg)); err != nil {
		a.logger.Error("failed to append moderation log",
			"comment_id", commentID, "action", action, "error", err)
	}

	if callErr != nil {
		return fmt.Errorf("%s comment %s: %w", action, commentID, callErr)
	}

	if err := a.analyses.StampModeration(ctx, commentID, action, time.Now().UTC()); err != nil {
		return fmt.Errorf("record moderation of comment %s: %w", commentID, err)
	}
	return nil
}
