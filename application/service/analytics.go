package service

import (
	"context"
	"time"

	"github.com/pagepulse/pagepulse/domain/comment"
	"github.com/pagepulse/pagepulse/internal/config"
)

// Analytics exposes aggregate views over stored analyses with sensible
// defaults applied to limits and severity floors.
type Analytics struct {
	store          comment.Analytics
	reviewLimit    int
	reviewSeverity float64
}

// AnalyticsOption configures an Analytics service.
type AnalyticsOption func(*Analytics)

// WithReviewLimit caps how many toxic analyses a review listing returns.
func WithReviewLimit(n int) AnalyticsOption {
	return func(a *Analytics) {
		if n > 0 {
			a.reviewLimit = n
		}
	}
}

// WithReviewSeverity sets the default severity floor for review listings.
func WithReviewSeverity(s float64) AnalyticsOption {
	return func(a *Analytics) {
		if s > 0 {
			a.reviewSeverity = s
		}
	}
}

// NewAnalytics creates an Analytics service.
func NewAnalytics(store comment.Analytics, opts ...AnalyticsOption) *Analytics {
	a := &Analytics{
		store:          store,
		reviewLimit:    config.DefaultReviewLimit,
		reviewSeverity: config.DefaultMinReviewSeverity,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Summary returns aggregate counts and averages since the given time. An
// empty pageID aggregates across all pages.
func (a *Analytics) Summary(ctx context.Context, pageID string, since time.Time) (comment.Summary, error) {
	return a.store.Summary(ctx, pageID, since)
}

// Trend returns daily sentiment counts since the given time.
func (a *Analytics) Trend(ctx context.Context, pageID string, since time.Time) ([]comment.TrendPoint, error) {
	return a.store.Trend(ctx, pageID, since)
}

// TopKeywords returns the most frequent keywords since the given time.
func (a *Analytics) TopKeywords(ctx context.Context, pageID string, since time.Time, limit int) ([]comment.KeywordCount, error) {
	if limit <= 0 {
		limit = config.DefaultTopKeywords
	}
	return a.store.TopKeywords(ctx, pageID, since, limit)
}

// ToxicForReview returns unmoderated toxic analyses at or above the given
// severity. A non-positive severity falls back to the configured default.
func (a *Analytics) ToxicForReview(ctx context.Context, minSeverity float64) ([]comment.Analysis, error) {
	if minSeverity <= 0 {
		minSeverity = a.reviewSeverity
	}
	return a.store.ToxicForReview(ctx, minSeverity, a.reviewLimit)
}

// ModerationStats returns moderation log outcomes since the given time.
func (a *Analytics) ModerationStats(ctx context.Context, since time.Time) (comment.ModerationStats, error) {
	return a.store.ModerationStats(ctx, since)
}
