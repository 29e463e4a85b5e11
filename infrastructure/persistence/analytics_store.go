package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/pagepulse/pagepulse/domain/comment"
	"github.com/pagepulse/pagepulse/internal/database"
)

// AnalyticsStore implements comment.Analytics with SQL aggregation.
type AnalyticsStore struct {
	db       database.Database
	analyses AnalysisStore
}

// NewAnalyticsStore creates a new AnalyticsStore.
func NewAnalyticsStore(db database.Database) AnalyticsStore {
	return AnalyticsStore{
		db:       db,
		analyses: NewAnalysisStore(db),
	}
}

var _ comment.Analytics = AnalyticsStore{}

func (s AnalyticsStore) scoped(ctx context.Context, pageID string, since time.Time) *gorm.DB {
	db := s.db.Session(ctx).Model(&AnalysisModel{}).Where("created_at >= ?", since)
	if pageID != "" {
		db = db.Where("page_id = ?", pageID)
	}
	return db
}

// Summary returns aggregate counts and averages since the given time.
func (s AnalyticsStore) Summary(ctx context.Context, pageID string, since time.Time) (comment.Summary, error) {
	var totals struct {
		Total         int64
		SpamCount     int64
		ToxicCount    int64
		DupCount      int64
		AvgScore      float64
		AvgConfidence float64
	}
	err := s.scoped(ctx, pageID, since).
		Select(`COUNT(*) AS total,
			COALESCE(SUM(CASE WHEN is_spam THEN 1 ELSE 0 END), 0) AS spam_count,
			COALESCE(SUM(CASE WHEN is_toxic THEN 1 ELSE 0 END), 0) AS toxic_count,
			COALESCE(SUM(CASE WHEN is_duplicate THEN 1 ELSE 0 END), 0) AS dup_count,
			COALESCE(AVG(score), 0) AS avg_score,
			COALESCE(AVG(confidence), 0) AS avg_confidence`).
		Scan(&totals).Error
	if err != nil {
		return comment.Summary{}, fmt.Errorf("summarize analyses: %w", err)
	}

	var rows []struct {
		Sentiment string
		Count     int64
	}
	err = s.scoped(ctx, pageID, since).
		Select("sentiment, COUNT(*) AS count").
		Group("sentiment").
		Scan(&rows).Error
	if err != nil {
		return comment.Summary{}, fmt.Errorf("summarize sentiment: %w", err)
	}

	bySentiment := make(map[comment.Sentiment]int64, len(rows))
	for _, r := range rows {
		bySentiment[comment.Sentiment(r.Sentiment)] = r.Count
	}

	return comment.Summary{
		Total:          totals.Total,
		BySentiment:    bySentiment,
		SpamCount:      totals.SpamCount,
		ToxicCount:     totals.ToxicCount,
		DuplicateCount: totals.DupCount,
		AvgScore:       totals.AvgScore,
		AvgConfidence:  totals.AvgConfidence,
	}, nil
}

// Trend returns daily sentiment counts since the given time, oldest first.
// DATE() works on both SQLite and PostgreSQL.
func (s AnalyticsStore) Trend(ctx context.Context, pageID string, since time.Time) ([]comment.TrendPoint, error) {
	var rows []struct {
		Date      string
		Sentiment string
		Count     int64
	}
	err := s.scoped(ctx, pageID, since).
		Select("DATE(created_at) AS date, sentiment, COUNT(*) AS count").
		Group("DATE(created_at)").
		Group("sentiment").
		Order("date ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("trend analyses: %w", err)
	}

	points := make([]comment.TrendPoint, len(rows))
	for i, r := range rows {
		points[i] = comment.TrendPoint{
			Date:      r.Date,
			Sentiment: comment.Sentiment(r.Sentiment),
			Count:     r.Count,
		}
	}
	return points, nil
}

// TopKeywords returns the most frequent extracted keywords since the given
// time. Keywords are stored as JSON arrays, so counting happens here rather
// than in dialect-specific SQL.
func (s AnalyticsStore) TopKeywords(ctx context.Context, pageID string, since time.Time, limit int) ([]comment.KeywordCount, error) {
	var rows []struct {
		Keywords json.RawMessage
	}
	err := s.scoped(ctx, pageID, since).
		Select("keywords").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("load keywords: %w", err)
	}

	counts := make(map[string]int64)
	for _, r := range rows {
		if len(r.Keywords) == 0 {
			continue
		}
		var keywords []string
		if err := json.Unmarshal(r.Keywords, &keywords); err != nil {
			continue
		}
		for _, k := range keywords {
			counts[k]++
		}
	}

	ranked := make([]comment.KeywordCount, 0, len(counts))
	for k, c := range counts {
		ranked = append(ranked, comment.KeywordCount{Keyword: k, Count: c})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Keyword < ranked[j].Keyword
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}

// ToxicForReview returns unmoderated toxic analyses at or above the given
// severity, most toxic first. Stored toxicity scores are summed severities
// divided by ten and capped at one, so the severity floor is converted to
// the same scale.
func (s AnalyticsStore) ToxicForReview(ctx context.Context, minSeverity float64, limit int) ([]comment.Analysis, error) {
	scoreFloor := math.Min(minSeverity/10, 1)

	var models []AnalysisModel
	result := s.db.Session(ctx).Model(&AnalysisModel{}).
		Where("is_toxic = ?", true).
		Where("moderated_at IS NULL").
		Where("toxic_score >= ?", scoreFloor).
		Order("toxic_score DESC").
		Limit(limit).
		Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("find toxic for review: %w", result.Error)
	}

	analyses := make([]comment.Analysis, len(models))
	for i, m := range models {
		analyses[i] = s.analyses.Mapper().ToDomain(m)
	}
	return analyses, nil
}

// ModerationStats returns moderation log outcomes since the given time.
func (s AnalyticsStore) ModerationStats(ctx context.Context, since time.Time) (comment.ModerationStats, error) {
	var rows []struct {
		Action    string
		Succeeded bool
		Count     int64
	}
	err := s.db.Session(ctx).Model(&ModerationLogModel{}).
		Where("created_at >= ?", since).
		Select("action, succeeded, COUNT(*) AS count").
		Group("action").
		Group("succeeded").
		Scan(&rows).Error
	if err != nil {
		return comment.ModerationStats{}, fmt.Errorf("summarize moderation logs: %w", err)
	}

	stats := comment.ModerationStats{ByAction: make(map[string]int64)}
	for _, r := range rows {
		stats.Total += r.Count
		if r.Succeeded {
			stats.Succeeded += r.Count
		} else {
			stats.Failed += r.Count
		}
		stats.ByAction[r.Action] += r.Count
	}
	return stats, nil
}
