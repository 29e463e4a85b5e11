package comment

import (
	"context"
	"time"
)

// Summary aggregates analyses over a time window.
type Summary struct {
	Total          int64
	BySentiment    map[Sentiment]int64
	SpamCount      int64
	ToxicCount     int64
	DuplicateCount int64
	AvgScore       float64
	AvgConfidence  float64
}

// TrendPoint is one day's worth of comments for one sentiment.
type TrendPoint struct {
	Date      string
	Sentiment Sentiment
	Count     int64
}

// KeywordCount pairs a keyword with how often it appeared.
type KeywordCount struct {
	Keyword string
	Count   int64
}

// ModerationStats aggregates moderation log outcomes.
type ModerationStats struct {
	Total     int64
	Succeeded int64
	Failed    int64
	ByAction  map[string]int64
}

// Analytics reads aggregate views of stored analyses. Implementations run
// the aggregation in SQL where possible.
type Analytics interface {
	// Summary returns aggregate counts and averages since the given time.
	// An empty pageID aggregates across all pages.
	Summary(ctx context.Context, pageID string, since time.Time) (Summary, error)

	// Trend returns daily sentiment counts since the given time.
	Trend(ctx context.Context, pageID string, since time.Time) ([]TrendPoint, error)

	// TopKeywords returns the most frequent keywords since the given time.
	TopKeywords(ctx context.Context, pageID string, since time.Time, limit int) ([]KeywordCount, error)

	// ToxicForReview returns unmoderated toxic analyses at or above the
	// given severity, most toxic first.
	ToxicForReview(ctx context.Context, minSeverity float64, limit int) ([]Analysis, error)

	// ModerationStats returns moderation log outcomes since the given time.
	ModerationStats(ctx context.Context, since time.Time) (ModerationStats, error)
}
