package persistence_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagepulse/pagepulse/domain/comment"
	"github.com/pagepulse/pagepulse/domain/moderation"
	"github.com/pagepulse/pagepulse/infrastructure/persistence"
	"github.com/pagepulse/pagepulse/internal/testdb"
)

func seedAnalyses(t *testing.T, store persistence.AnalysisStore) {
	t.Helper()
	ctx := context.Background()
	now := time.Now().UTC()

	fixtures := []comment.Analysis{
		comment.ReconstructAnalysis(0, "cmt-1", "page-1", "tuyệt vời", "tuyệt vời",
			comment.SentimentPositive, 0.2, 0.6, []string{"vời", "tuyệt"}, "vi", comment.Metadata{},
			false, false, "", false, "", 0, moderation.ActionNone, nil, now, now),
		comment.ReconstructAnalysis(0, "cmt-2", "page-1", "quá tệ", "quá tệ",
			comment.SentimentNegative, -0.2, 0.6, []string{"vời"}, "vi", comment.Metadata{},
			false, false, "", false, "", 0, moderation.ActionNone, nil, now, now),
		comment.ReconstructAnalysis(0, "cmt-3", "page-1", "mua ngay", "mua ngay",
			comment.SentimentNeutral, 0, 0.5, nil, "vi", comment.Metadata{},
			true, false, "", false, "", 0, moderation.ActionHide, nil, now, now),
		comment.ReconstructAnalysis(0, "cmt-4", "page-2", "óc chó", "óc chó",
			comment.SentimentNegative, -0.25, 0.9, nil, "vi", comment.Metadata{},
			false, false, "", true, "insult", 0.25, moderation.ActionHide, nil, now, now),
	}
	for _, a := range fixtures {
		_, err := store.Save(ctx, a)
		require.NoError(t, err)
	}
}

func TestAnalyticsStore_Summary(t *testing.T) {
	db := testdb.New(t)
	seedAnalyses(t, persistence.NewAnalysisStore(db))
	analytics := persistence.NewAnalyticsStore(db)

	since := time.Now().UTC().Add(-time.Hour)

	summary, err := analytics.Summary(context.Background(), "", since)
	require.NoError(t, err)

	assert.Equal(t, int64(4), summary.Total)
	assert.Equal(t, int64(1), summary.BySentiment[comment.SentimentPositive])
	assert.Equal(t, int64(2), summary.BySentiment[comment.SentimentNegative])
	assert.Equal(t, int64(1), summary.BySentiment[comment.SentimentNeutral])
	assert.Equal(t, int64(1), summary.SpamCount)
	assert.Equal(t, int64(1), summary.ToxicCount)
	assert.InDelta(t, (0.2-0.2+0-0.25)/4, summary.AvgScore, 1e-9)
}

func TestAnalyticsStore_SummaryScopedToPage(t *testing.T) {
	db := testdb.New(t)
	seedAnalyses(t, persistence.NewAnalysisStore(db))
	analytics := persistence.NewAnalyticsStore(db)

	since := time.Now().UTC().Add(-time.Hour)

	summary, err := analytics.Summary(context.Background(), "page-2", since)
	require.NoError(t, err)

	assert.Equal(t, int64(1), summary.Total)
	assert.Equal(t, int64(1), summary.ToxicCount)
	assert.Zero(t, summary.SpamCount)
}

func TestAnalyticsStore_Trend(t *testing.T) {
	db := testdb.New(t)
	store := persistence.NewAnalysisStore(db)
	analytics := persistence.NewAnalyticsStore(db)
	ctx := context.Background()

	day1 := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)
	day2 := day1.Add(24 * time.Hour)

	fixtures := []comment.Analysis{
		analysisAt("cmt-1", "một", day1),
		analysisAt("cmt-2", "hai", day1.Add(time.Hour)),
		analysisAt("cmt-3", "ba", day2),
	}
	for _, a := range fixtures {
		_, err := store.Save(ctx, a)
		require.NoError(t, err)
	}

	points, err := analytics.Trend(ctx, "", day1.Add(-time.Hour))
	require.NoError(t, err)

	require.Len(t, points, 2)
	assert.Equal(t, "2026-08-25", points[0].Date)
	assert.Equal(t, int64(2), points[0].Count)
	assert.Equal(t, "2026-08-26", points[1].Date)
	assert.Equal(t, int64(1), points[1].Count)
}

func TestAnalyticsStore_TopKeywords(t *testing.T) {
	db := testdb.New(t)
	seedAnalyses(t, persistence.NewAnalysisStore(db))
	analytics := persistence.NewAnalyticsStore(db)

	since := time.Now().UTC().Add(-time.Hour)

	keywords, err := analytics.TopKeywords(context.Background(), "", since, 10)
	require.NoError(t, err)

	require.Len(t, keywords, 2)
	assert.Equal(t, "vời", keywords[0].Keyword)
	assert.Equal(t, int64(2), keywords[0].Count)
	assert.Equal(t, "tuyệt", keywords[1].Keyword)
}

func TestAnalyticsStore_ToxicForReview(t *testing.T) {
	db := testdb.New(t)
	store := persistence.NewAnalysisStore(db)
	analytics := persistence.NewAnalyticsStore(db)
	ctx := context.Background()

	// Severity 2.0 converts to a 0.2 score floor.
	above := comment.NewAnalysis("cmt-above", "page-1", "óc chó").
		WithToxicity("insult", 0.25, moderation.ActionHide)
	below := comment.NewAnalysis("cmt-below", "page-1", "đồ ngu").
		WithToxicity("insult", 0.15, moderation.ActionManualReview)
	moderated := comment.NewAnalysis("cmt-done", "page-1", "giết").
		WithToxicity("threat", 0.4, moderation.ActionDelete).
		WithModeratedAt(time.Now().UTC())

	for _, a := range []comment.Analysis{above, below, moderated} {
		_, err := store.Save(ctx, a)
		require.NoError(t, err)
	}

	got, err := analytics.ToxicForReview(ctx, 2.0, 50)
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, "cmt-above", got[0].CommentID())
}

func TestAnalyticsStore_ModerationStats(t *testing.T) {
	db := testdb.New(t)
	logs := persistence.NewModerationLogStore(db)
	analytics := persistence.NewAnalyticsStore(db)
	ctx := context.Background()

	fixtures := []moderation.Log{
		moderation.NewLog("cmt-1", moderation.ActionHide, moderation.ReasonSpam, true, ""),
		moderation.NewLog("cmt-2", moderation.ActionHide, moderation.ReasonToxic, true, ""),
		moderation.NewLog("cmt-3", moderation.ActionDelete, moderation.ReasonToxic, false, "graph api error"),
	}
	for _, l := range fixtures {
		_, err := logs.Append(ctx, l)
		require.NoError(t, err)
	}

	stats, err := analytics.ModerationStats(ctx, time.Now().UTC().Add(-time.Hour))
	require.NoError(t, err)

	assert.Equal(t, int64(3), stats.Total)
	assert.Equal(t, int64(2), stats.Succeeded)
	assert.Equal(t, int64(1), stats.Failed)
	assert.Equal(t, int64(2), stats.ByAction["hide"])
	assert.Equal(t, int64(1), stats.ByAction["delete"])
}
