package service

import (
	"context"
	"errors"
	"time"

	"github.com/pagepulse/pagepulse/domain/chat"
	"github.com/pagepulse/pagepulse/domain/comment"
	"github.com/pagepulse/pagepulse/domain/moderation"
	"github.com/pagepulse/pagepulse/domain/rag"
	"github.com/pagepulse/pagepulse/domain/store"
)

type fakeAnalysisStore struct {
	saved      []comment.Analysis
	saveErr    error
	pending    []comment.Analysis
	pendingErr error
	dupID      string
	dup        bool
	dupErr     error
	stamped    []string
	stampErr   error
}

func (f *fakeAnalysisStore) Save(_ context.Context, a comment.Analysis) (comment.Analysis, error) {
	if f.saveErr != nil {
		return comment.Analysis{}, f.saveErr
	}
	f.saved = append(f.saved, a)
	return a, nil
}

func (f *fakeAnalysisStore) ByCommentID(context.Context, string) (comment.Analysis, error) {
	return comment.Analysis{}, errors.New("not found")
}

func (f *fakeAnalysisStore) Find(context.Context, ...store.Option) ([]comment.Analysis, error) {
	return nil, nil
}

func (f *fakeAnalysisStore) Count(context.Context, ...store.Option) (int64, error) {
	return 0, nil
}

func (f *fakeAnalysisStore) StampModeration(_ context.Context, commentID string, _ moderation.Action, _ time.Time) error {
	if f.stampErr != nil {
		return f.stampErr
	}
	f.stamped = append(f.stamped, commentID)
	return nil
}

func (f *fakeAnalysisStore) HasRecentDuplicate(context.Context, string, string, time.Time) (string, bool, error) {
	return f.dupID, f.dup, f.dupErr
}

func (f *fakeAnalysisStore) PendingModeration(context.Context, int) ([]comment.Analysis, error) {
	return f.pending, f.pendingErr
}

type fakeToxicity struct {
	report moderation.ToxicityReport
	err    error
	calls  int
}

func (f *fakeToxicity) Detect(context.Context, string) (moderation.ToxicityReport, error) {
	f.calls++
	return f.report, f.err
}

type fakeSpam struct {
	report moderation.SpamReport
	err    error
	calls  int
}

func (f *fakeSpam) Detect(context.Context, string) (moderation.SpamReport, error) {
	f.calls++
	return f.report, f.err
}

type fakeSentiment struct {
	report comment.SentimentReport
	err    error
	calls  int
}

func (f *fakeSentiment) Analyze(context.Context, string) (comment.SentimentReport, error) {
	f.calls++
	return f.report, f.err
}

type fakeEnforcer struct {
	applied []string
	action  moderation.Action
	err     error
}

func (f *fakeEnforcer) Auto(_ context.Context, a comment.Analysis) (moderation.Action, error) {
	if f.err != nil {
		return moderation.ActionNone, f.err
	}
	f.applied = append(f.applied, a.CommentID())
	return f.action, nil
}

type fakePlatform struct {
	hidden    []string
	unhidden  []string
	deleted   []string
	hideErr   error
	unhideErr error
	deleteErr error
}

func (f *fakePlatform) Hide(_ context.Context, commentID string) error {
	if f.hideErr != nil {
		return f.hideErr
	}
	f.hidden = append(f.hidden, commentID)
	return nil
}

func (f *fakePlatform) Unhide(_ context.Context, commentID string) error {
	if f.unhideErr != nil {
		return f.unhideErr
	}
	f.unhidden = append(f.unhidden, commentID)
	return nil
}

func (f *fakePlatform) Delete(_ context.Context, commentID string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, commentID)
	return nil
}

type fakeLogStore struct {
	appended  []moderation.Log
	appendErr error
}

func (f *fakeLogStore) Append(_ context.Context, log moderation.Log) (moderation.Log, error) {
	if f.appendErr != nil {
		return moderation.Log{}, f.appendErr
	}
	f.appended = append(f.appended, log)
	return log, nil
}

func (f *fakeLogStore) Find(context.Context, ...store.Option) ([]moderation.Log, error) {
	return nil, nil
}

func (f *fakeLogStore) Count(context.Context, ...store.Option) (int64, error) {
	return 0, nil
}

type fakeRetriever struct {
	docs []rag.ScoredDocument
}

func (f *fakeRetriever) Retrieve(context.Context, string) []rag.ScoredDocument {
	return f.docs
}

type fakeGenerator struct {
	reply    string
	err      error
	messages []rag.Message
}

func (f *fakeGenerator) Generate(_ context.Context, messages []rag.Message) (string, error) {
	f.messages = messages
	return f.reply, f.err
}

type fakeChatStore struct {
	turns     []chat.Turn
	recent    []chat.Turn
	recentErr error
}

func (f *fakeChatStore) Append(_ context.Context, turn chat.Turn) (chat.Turn, error) {
	f.turns = append(f.turns, turn)
	return turn, nil
}

func (f *fakeChatStore) Recent(context.Context, string, int) ([]chat.Turn, error) {
	return f.recent, f.recentErr
}

type fakeKnowledgeCache struct {
	stats      rag.CacheStats
	refreshErr error
	refreshes  int
}

func (f *fakeKnowledgeCache) Refresh(context.Context) error {
	if f.refreshErr != nil {
		return f.refreshErr
	}
	f.refreshes++
	return nil
}

func (f *fakeKnowledgeCache) Stats() rag.CacheStats {
	return f.stats
}
