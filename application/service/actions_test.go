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

func TestActions_HideLogsAndStamps(t *testing.T) {
	platform := &fakePlatform{}
	analyses := &fakeAnalysisStore{}
	logs := &fakeLogStore{}
	svc := NewActions(platform, analyses, logs)

	err := svc.Hide(context.Background(), "cmt-1", moderation.ReasonSpam)
	require.NoError(t, err)

	assert.Equal(t, []string{"cmt-1"}, platform.hidden)
	assert.Equal(t, []string{"cmt-1"}, analyses.stamped)

	require.Len(t, logs.appended, 1)
	entry := logs.appended[0]
	assert.Equal(t, moderation.ActionHide, entry.Action())
	assert.Equal(t, moderation.ReasonSpam, entry.Reason())
	assert.True(t, entry.Succeeded())
}

func TestActions_PlatformFailureLogsButDoesNotStamp(t *testing.T) {
	platform := &fakePlatform{deleteErr: errors.New("graph api error 190 (OAuthException): bad token")}
	analyses := &fakeAnalysisStore{}
	logs := &fakeLogStore{}
	svc := NewActions(platform, analyses, logs)

	err := svc.Delete(context.Background(), "cmt-1", moderation.ReasonToxic)
	require.Error(t, err)

	assert.Empty(t, analyses.stamped, "failed calls never mark the comment moderated")

	require.Len(t, logs.appended, 1)
	entry := logs.appended[0]
	assert.False(t, entry.Succeeded())
	assert.Contains(t, entry.ErrorMsg(), "OAuthException")
}

func TestActions_NilPlatform(t *testing.T) {
	svc := NewActions(nil, &fakeAnalysisStore{}, &fakeLogStore{})

	err := svc.Hide(context.Background(), "cmt-1", moderation.ReasonSpam)
	assert.ErrorIs(t, err, ErrPlatformNotConfigured)

	_, err = svc.Batch(context.Background())
	assert.ErrorIs(t, err, ErrPlatformNotConfigured)
}

func TestActions_RestoreUnhides(t *testing.T) {
	platform := &fakePlatform{}
	logs := &fakeLogStore{}
	svc := NewActions(platform, &fakeAnalysisStore{}, logs)

	err := svc.Restore(context.Background(), "cmt-1")
	require.NoError(t, err)

	assert.Equal(t, []string{"cmt-1"}, platform.unhidden)
	require.Len(t, logs.appended, 1)
	assert.Equal(t, moderation.ActionRestore, logs.appended[0].Action())
	assert.Equal(t, moderation.ReasonManualRestore, logs.appended[0].Reason())
}

func TestActions_AutoSkipsCleanAnalyses(t *testing.T) {
	platform := &fakePlatform{}
	svc := NewActions(platform, &fakeAnalysisStore{}, &fakeLogStore{})

	clean := comment.NewAnalysis("cmt-1", "page-1", "xin chào")
	action, err := svc.Auto(context.Background(), clean)
	require.NoError(t, err)

	assert.Equal(t, moderation.ActionNone, action)
	assert.Empty(t, platform.hidden)
	assert.Empty(t, platform.deleted)
}

func TestActions_AutoPicksReasonFromVerdict(t *testing.T) {
	platform := &fakePlatform{}
	logs := &fakeLogStore{}
	svc := NewActions(platform, &fakeAnalysisStore{}, logs)

	toxic := comment.NewAnalysis("cmt-1", "page-1", "giết").
		WithToxicity("threat", 0.4, moderation.ActionDelete)
	action, err := svc.Auto(context.Background(), toxic)
	require.NoError(t, err)

	assert.Equal(t, moderation.ActionDelete, action)
	assert.Equal(t, []string{"cmt-1"}, platform.deleted)
	require.Len(t, logs.appended, 1)
	assert.Equal(t, moderation.ReasonToxic, logs.appended[0].Reason())
}

func TestActions_AutoLeavesAdvisoryActionsToHumans(t *testing.T) {
	platform := &fakePlatform{}
	logs := &fakeLogStore{}
	svc := NewActions(platform, &fakeAnalysisStore{}, logs)

	review := comment.NewAnalysis("cmt-1", "page-1", "đồ ngu").
		WithToxicity("insult", 0.15, moderation.ActionManualReview)
	action, err := svc.Auto(context.Background(), review)
	require.NoError(t, err)

	assert.Equal(t, moderation.ActionNone, action)
	assert.Empty(t, platform.hidden)
	assert.Empty(t, platform.deleted)
	assert.Empty(t, logs.appended)
}

func TestActions_BatchReportsPerComment(t *testing.T) {
	platform := &fakePlatform{deleteErr: errors.New("rate limited")}
	analyses := &fakeAnalysisStore{pending: []comment.Analysis{
		comment.NewAnalysis("cmt-spam", "page-1", "mua ngay").
			WithSpam(moderation.ActionHide),
		comment.NewAnalysis("cmt-toxic", "page-1", "giết").
			WithToxicity("threat", 0.4, moderation.ActionDelete),
	}}
	logs := &fakeLogStore{}
	svc := NewActions(platform, analyses, logs, WithRateLimit(1000, 10))

	result, err := svc.Batch(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, result.Processed)
	assert.Equal(t, []string{"cmt-spam"}, result.Succeeded)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, "cmt-toxic", result.Failed[0].CommentID)
	assert.Contains(t, result.Failed[0].Error, "rate limited")
	assert.Equal(t, []string{"cmt-spam"}, platform.hidden)
	assert.Len(t, logs.appended, 2, "both attempts are logged")
}

func TestActions_BatchQueueErrorIsFatal(t *testing.T) {
	analyses := &fakeAnalysisStore{pendingErr: errors.New("db down")}
	svc := NewActions(&fakePlatform{}, analyses, &fakeLogStore{})

	_, err := svc.Batch(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "moderation queue")
}

func TestActions_BatchHonorsCancellation(t *testing.T) {
	analyses := &fakeAnalysisStore{pending: []comment.Analysis{
		comment.NewAnalysis("cmt-1", "page-1", "mua ngay").
			WithSpam(moderation.ActionHide),
	}}
	svc := NewActions(&fakePlatform{}, analyses, &fakeLogStore{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Batch(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
