package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagepulse/pagepulse/domain/comment"
	"github.com/pagepulse/pagepulse/domain/moderation"
)

func TestModeration_ToxicShortCircuits(t *testing.T) {
	analyses := &fakeAnalysisStore{}
	toxicity := &fakeToxicity{report: moderation.ToxicityReport{
		Toxic:       true,
		Score:       0.25,
		MaxSeverity: 2.5,
		Category:    "insult",
		Recommended: moderation.ActionHide,
	}}
	spam := &fakeSpam{}
	sentiment := &fakeSentiment{}
	svc := NewModeration(analyses, toxicity, spam, sentiment)

	got, err := svc.Process(context.Background(), "cmt-1", "page-1", "óc chó")
	require.NoError(t, err)

	assert.True(t, got.IsToxic())
	assert.Equal(t, "insult", got.ToxicCategory())
	assert.Equal(t, moderation.ActionHide, got.ModerationAction())

	// A toxic verdict forces negative sentiment and skips the later stages.
	assert.Equal(t, comment.SentimentNegative, got.Sentiment())
	assert.Equal(t, -0.25, got.Score())
	assert.Equal(t, 0.9, got.Confidence())
	assert.Zero(t, spam.calls)
	assert.Zero(t, sentiment.calls)
}

func TestModeration_SpamShortCircuits(t *testing.T) {
	analyses := &fakeAnalysisStore{}
	spam := &fakeSpam{report: moderation.SpamReport{Spam: true, Patterns: []string{"keyword:mua ngay"}}}
	sentiment := &fakeSentiment{}
	svc := NewModeration(analyses, &fakeToxicity{}, spam, sentiment)

	got, err := svc.Process(context.Background(), "cmt-1", "page-1", "mua ngay kẻo lỡ")
	require.NoError(t, err)

	assert.True(t, got.IsSpam())
	assert.Equal(t, moderation.ActionHide, got.ModerationAction())
	assert.Zero(t, sentiment.calls)
}

func TestModeration_DuplicateShortCircuitsSentiment(t *testing.T) {
	analyses := &fakeAnalysisStore{dup: true, dupID: "cmt-original"}
	sentiment := &fakeSentiment{report: comment.SentimentReport{
		Sentiment:  comment.SentimentPositive,
		Score:      0.3,
		Confidence: 0.6,
	}}
	svc := NewModeration(analyses, &fakeToxicity{}, &fakeSpam{}, sentiment)

	got, err := svc.Process(context.Background(), "cmt-2", "page-1", "sản phẩm tuyệt vời!")
	require.NoError(t, err)

	assert.True(t, got.IsDuplicate())
	assert.Equal(t, "cmt-original", got.DuplicateOf())

	// The stored row carries a zeroed neutral verdict; the sentiment stage
	// never runs for duplicates.
	assert.Equal(t, comment.SentimentNeutral, got.Sentiment())
	assert.Zero(t, got.Score())
	assert.Zero(t, got.Confidence())
	assert.Zero(t, sentiment.calls)
}

func TestModeration_CleanCommentGetsTextFields(t *testing.T) {
	analyses := &fakeAnalysisStore{}
	sentiment := &fakeSentiment{report: comment.SentimentReport{
		Sentiment:  comment.SentimentNeutral,
		Confidence: 0.5,
	}}
	svc := NewModeration(analyses, &fakeToxicity{}, &fakeSpam{}, sentiment)

	got, err := svc.Process(context.Background(), "cmt-3", "page-1", "Giao hàng hôm qua nhé!")
	require.NoError(t, err)

	assert.Equal(t, "giao hàng hôm qua nhé", got.CleanedMessage())
	assert.Equal(t, "vi", got.Language())
	assert.False(t, got.IsSpam())
	assert.False(t, got.IsToxic())
	require.Len(t, analyses.saved, 1)
}

func TestModeration_ClassifierErrorsFailOpen(t *testing.T) {
	analyses := &fakeAnalysisStore{dupErr: errors.New("db down")}
	toxicity := &fakeToxicity{err: errors.New("rules unavailable")}
	spam := &fakeSpam{err: errors.New("rules unavailable")}
	sentiment := &fakeSentiment{err: errors.New("rules unavailable")}
	svc := NewModeration(analyses, toxicity, spam, sentiment)

	got, err := svc.Process(context.Background(), "cmt-4", "page-1", "đồ ngu")
	require.NoError(t, err, "classifier failures never block a comment")

	assert.False(t, got.IsToxic())
	assert.False(t, got.IsSpam())
	assert.False(t, got.IsDuplicate())
	assert.Equal(t, comment.SentimentNeutral, got.Sentiment())
	assert.Equal(t, 0.5, got.Confidence())
}

func TestModeration_AutoModerationEnforcesVerdict(t *testing.T) {
	analyses := &fakeAnalysisStore{}
	toxicity := &fakeToxicity{report: moderation.ToxicityReport{
		Toxic:       true,
		Score:       0.4,
		MaxSeverity: 4.0,
		Category:    "threat",
		Recommended: moderation.ActionDelete,
	}}
	enforcer := &fakeEnforcer{action: moderation.ActionDelete}
	svc := NewModeration(analyses, toxicity, &fakeSpam{}, &fakeSentiment{},
		WithAutoModeration(enforcer))

	got, err := svc.Process(context.Background(), "cmt-6", "page-1", "tao giết mày")
	require.NoError(t, err)

	assert.Equal(t, []string{"cmt-6"}, enforcer.applied)
	assert.NotNil(t, got.ModeratedAt(), "an enforced verdict is stamped")
	assert.False(t, got.NeedsAttention())
}

func TestModeration_AutoModerationFailureLeavesQueueEntry(t *testing.T) {
	analyses := &fakeAnalysisStore{}
	spam := &fakeSpam{report: moderation.SpamReport{Spam: true, Patterns: []string{"keyword:mua ngay"}}}
	enforcer := &fakeEnforcer{err: errors.New("graph api down")}
	svc := NewModeration(analyses, &fakeToxicity{}, spam, &fakeSentiment{},
		WithAutoModeration(enforcer))

	got, err := svc.Process(context.Background(), "cmt-7", "page-1", "mua ngay kẻo lỡ")
	require.NoError(t, err, "enforcement failures never fail the pipeline")

	assert.Nil(t, got.ModeratedAt())
	assert.True(t, got.NeedsAttention(), "the sweeper picks the comment up later")
}

func TestModeration_CleanCommentSkipsEnforcement(t *testing.T) {
	analyses := &fakeAnalysisStore{}
	enforcer := &fakeEnforcer{action: moderation.ActionHide}
	sentiment := &fakeSentiment{report: comment.SentimentReport{
		Sentiment:  comment.SentimentPositive,
		Score:      0.2,
		Confidence: 0.6,
	}}
	svc := NewModeration(analyses, &fakeToxicity{}, &fakeSpam{}, sentiment,
		WithAutoModeration(enforcer))

	got, err := svc.Process(context.Background(), "cmt-8", "page-1", "sản phẩm tuyệt vời lắm nha")
	require.NoError(t, err)

	assert.Empty(t, enforcer.applied)
	assert.True(t, got.ShouldReply())
}

func TestModeration_SaveErrorPropagates(t *testing.T) {
	analyses := &fakeAnalysisStore{saveErr: errors.New("disk full")}
	svc := NewModeration(analyses, &fakeToxicity{}, &fakeSpam{}, &fakeSentiment{})

	_, err := svc.Process(context.Background(), "cmt-5", "page-1", "xin chào")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cmt-5")
}
