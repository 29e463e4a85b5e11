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
	"github.com/pagepulse/pagepulse/internal/database"
	"github.com/pagepulse/pagepulse/internal/testdb"
)

func analysisAt(commentID, cleaned string, createdAt time.Time) comment.Analysis {
	return comment.ReconstructAnalysis(
		0, commentID, "page-1", "original text", cleaned,
		comment.SentimentNeutral, 0, 0.5,
		[]string{"phẩm"}, "vi", comment.Metadata{Length: 13, WordCount: 2},
		false, false, "",
		false, "", 0,
		moderation.ActionNone, nil,
		createdAt, createdAt,
	)
}

func TestAnalysisStore_SaveUpsertsByCommentID(t *testing.T) {
	db := testdb.New(t)
	store := persistence.NewAnalysisStore(db)
	ctx := context.Background()

	first, err := store.Save(ctx, comment.NewAnalysis("cmt-1", "page-1", "xin chào"))
	require.NoError(t, err)
	require.NotZero(t, first.ID())

	updated := first.WithSentiment(comment.SentimentPositive, 0.2, 0.6)
	second, err := store.Save(ctx, updated)
	require.NoError(t, err)

	assert.Equal(t, first.ID(), second.ID(), "reprocessing must replace, not insert")
	assert.Equal(t, comment.SentimentPositive, second.Sentiment())

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestAnalysisStore_ByCommentIDNotFound(t *testing.T) {
	db := testdb.New(t)
	store := persistence.NewAnalysisStore(db)

	_, err := store.ByCommentID(context.Background(), "missing")
	require.ErrorIs(t, err, database.ErrNotFound)
}

func TestAnalysisStore_RoundTripsJSONFields(t *testing.T) {
	db := testdb.New(t)
	store := persistence.NewAnalysisStore(db)
	ctx := context.Background()

	a := comment.NewAnalysis("cmt-1", "page-1", "Giá bao nhiêu? 😊").
		WithText("giá bao nhiêu", []string{"nhiêu"}, "vi", comment.Metadata{
			Length: 17, WordCount: 4, HasEmoji: true, Language: "vi",
		})

	saved, err := store.Save(ctx, a)
	require.NoError(t, err)
	assert.Equal(t, []string{"nhiêu"}, saved.Keywords())
	assert.True(t, saved.Metadata().HasEmoji)
	assert.Equal(t, 4, saved.Metadata().WordCount)
}

func TestAnalysisStore_StampModeration(t *testing.T) {
	db := testdb.New(t)
	store := persistence.NewAnalysisStore(db)
	ctx := context.Background()

	_, err := store.Save(ctx, comment.NewAnalysis("cmt-1", "page-1", "spam spam"))
	require.NoError(t, err)

	at := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, store.StampModeration(ctx, "cmt-1", moderation.ActionHide, at))

	got, err := store.ByCommentID(ctx, "cmt-1")
	require.NoError(t, err)
	assert.Equal(t, moderation.ActionHide, got.ModerationAction())
	require.NotNil(t, got.ModeratedAt())
	assert.WithinDuration(t, at, *got.ModeratedAt(), time.Second)
}

func TestAnalysisStore_StampModerationMissingComment(t *testing.T) {
	db := testdb.New(t)
	store := persistence.NewAnalysisStore(db)

	err := store.StampModeration(context.Background(), "missing", moderation.ActionHide, time.Now())
	require.ErrorIs(t, err, database.ErrNotFound)
}

func TestAnalysisStore_HasRecentDuplicate(t *testing.T) {
	db := testdb.New(t)
	store := persistence.NewAnalysisStore(db)
	ctx := context.Background()

	now := time.Now().UTC()
	_, err := store.Save(ctx, analysisAt("cmt-old", "mua ngay đi", now.Add(-10*24*time.Hour)))
	require.NoError(t, err)
	_, err = store.Save(ctx, analysisAt("cmt-1", "mua ngay đi", now.Add(-time.Hour)))
	require.NoError(t, err)
	_, err = store.Save(ctx, analysisAt("cmt-2", "mua ngay đi", now))
	require.NoError(t, err)

	since := now.Add(-7 * 24 * time.Hour)

	// cmt-2 duplicates cmt-1; the stale cmt-old is outside the window.
	original, found, err := store.HasRecentDuplicate(ctx, "mua ngay đi", "cmt-2", since)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "cmt-1", original)

	// A comment never duplicates itself.
	_, found, err = store.HasRecentDuplicate(ctx, "mua ngay đi", "cmt-1", since)
	require.NoError(t, err)
	assert.True(t, found, "cmt-2 still matches")

	_, found, err = store.HasRecentDuplicate(ctx, "nội dung khác", "cmt-9", since)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestAnalysisStore_PendingModeration(t *testing.T) {
	db := testdb.New(t)
	store := persistence.NewAnalysisStore(db)
	ctx := context.Background()

	toxicHigh := comment.NewAnalysis("cmt-toxic-high", "page-1", "tao giết mày").
		WithToxicity("threat", 0.4, moderation.ActionDelete)
	toxicLow := comment.NewAnalysis("cmt-toxic-low", "page-1", "óc chó").
		WithToxicity("insult", 0.25, moderation.ActionHide)
	reviewOnly := comment.NewAnalysis("cmt-review", "page-1", "đồ ngu").
		WithToxicity("insult", 0.15, moderation.ActionManualReview)
	clean := comment.NewAnalysis("cmt-clean", "page-1", "cảm ơn shop")

	for _, a := range []comment.Analysis{toxicLow, toxicHigh, reviewOnly, clean} {
		_, err := store.Save(ctx, a)
		require.NoError(t, err)
	}

	// Already-enforced comments drop out of the queue.
	enforced := comment.NewAnalysis("cmt-done", "page-1", "spam").
		WithToxicity("threat", 0.5, moderation.ActionDelete).
		WithModeratedAt(time.Now().UTC())
	_, err := store.Save(ctx, enforced)
	require.NoError(t, err)

	pending, err := store.PendingModeration(ctx, 100)
	require.NoError(t, err)

	require.Len(t, pending, 2)
	assert.Equal(t, "cmt-toxic-high", pending[0].CommentID())
	assert.Equal(t, "cmt-toxic-low", pending[1].CommentID())
}
