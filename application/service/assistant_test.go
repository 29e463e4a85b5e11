package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagepulse/pagepulse/domain/chat"
	"github.com/pagepulse/pagepulse/domain/rag"
)

func TestAssistant_ReplyUsesRetrievedKnowledge(t *testing.T) {
	retriever := &fakeRetriever{docs: []rag.ScoredDocument{
		{
			Document:   rag.NewDocument(rag.DocumentPost, "post-1", "Khuyến mãi tháng 8", "Giảm 20% toàn bộ menu", 120, nil),
			Similarity: 0.82,
		},
	}}
	generator := &fakeGenerator{reply: "Dạ, bên em đang giảm 20% toàn bộ menu ạ! 🌟"}
	history := &fakeChatStore{}
	svc := NewAssistant(retriever, generator, history)

	reply, err := svc.Reply(context.Background(), "user-1", "có khuyến mãi gì không?")
	require.NoError(t, err)

	assert.False(t, reply.Fallback)
	assert.Equal(t, "Dạ, bên em đang giảm 20% toàn bộ menu ạ! 🌟", reply.Text)
	require.Len(t, reply.Documents, 1)

	require.NotEmpty(t, generator.messages)
	system := generator.messages[0]
	assert.Equal(t, "system", system.Role)
	assert.Contains(t, system.Content, "Bạn là trợ lý AI thông minh")
	assert.Contains(t, system.Content, "=== THÔNG TIN TỪ BÀI VIẾT ===")
	assert.Contains(t, system.Content, "Khuyến mãi tháng 8")

	last := generator.messages[len(generator.messages)-1]
	assert.Equal(t, "user", last.Role)
	assert.Equal(t, "có khuyến mãi gì không?", last.Content)
}

func TestAssistant_ReplyReplaysHistory(t *testing.T) {
	now := time.Now().UTC()
	history := &fakeChatStore{recent: []chat.Turn{
		chat.ReconstructTurn(1, "user-1", chat.RoleUser, "shop mở cửa mấy giờ?", now.Add(-2*time.Minute)),
		chat.ReconstructTurn(2, "user-1", chat.RoleAssistant, "Dạ 8h sáng ạ! 💬", now.Add(-time.Minute)),
	}}
	generator := &fakeGenerator{reply: "Dạ chủ nhật bên em vẫn mở ạ! ✨"}
	svc := NewAssistant(&fakeRetriever{}, generator, history)

	_, err := svc.Reply(context.Background(), "user-1", "chủ nhật có mở không?")
	require.NoError(t, err)

	// system + 2 history turns + the new message
	require.Len(t, generator.messages, 4)
	assert.Equal(t, "user", generator.messages[1].Role)
	assert.Equal(t, "shop mở cửa mấy giờ?", generator.messages[1].Content)
	assert.Equal(t, "assistant", generator.messages[2].Role)
}

func TestAssistant_ReplyRecordsBothTurns(t *testing.T) {
	history := &fakeChatStore{}
	svc := NewAssistant(&fakeRetriever{}, &fakeGenerator{reply: "Chào anh/chị ạ! 🌟"}, history)

	_, err := svc.Reply(context.Background(), "user-1", "xin chào")
	require.NoError(t, err)

	require.Len(t, history.turns, 2)
	assert.Equal(t, chat.RoleUser, history.turns[0].Role())
	assert.Equal(t, "xin chào", history.turns[0].Content())
	assert.Equal(t, chat.RoleAssistant, history.turns[1].Role())
}

func TestAssistant_NilGeneratorFallsBack(t *testing.T) {
	history := &fakeChatStore{}
	svc := NewAssistant(&fakeRetriever{}, nil, history)

	reply, err := svc.Reply(context.Background(), "user-1", "xin chào")
	require.NoError(t, err)

	assert.True(t, reply.Fallback)
	assert.Equal(t, FallbackReply, reply.Text)
	assert.Len(t, history.turns, 2, "the fallback exchange is still recorded")
}

func TestAssistant_GeneratorErrorFallsBack(t *testing.T) {
	generator := &fakeGenerator{err: errors.New("upstream timeout")}
	svc := NewAssistant(&fakeRetriever{}, generator, &fakeChatStore{})

	reply, err := svc.Reply(context.Background(), "user-1", "xin chào")
	require.NoError(t, err)
	assert.True(t, reply.Fallback)
	assert.Equal(t, FallbackReply, reply.Text)
}

func TestAssistant_EmptyGenerationFallsBack(t *testing.T) {
	generator := &fakeGenerator{reply: "   "}
	svc := NewAssistant(&fakeRetriever{}, generator, &fakeChatStore{})

	reply, err := svc.Reply(context.Background(), "user-1", "xin chào")
	require.NoError(t, err)
	assert.True(t, reply.Fallback)
}

func TestAssistant_RefreshKnowledge(t *testing.T) {
	cache := &fakeKnowledgeCache{stats: rag.CacheStats{Posts: 3, Responses: 2, Insights: 1, Fresh: true}}
	svc := NewAssistant(&fakeRetriever{}, nil, &fakeChatStore{}, WithKnowledgeCache(cache))

	stats, err := svc.RefreshKnowledge(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, cache.refreshes)
	assert.Equal(t, 6, stats.Total())
}

func TestAssistant_RefreshKnowledgeError(t *testing.T) {
	cache := &fakeKnowledgeCache{refreshErr: errors.New("embedder unavailable")}
	svc := NewAssistant(&fakeRetriever{}, nil, &fakeChatStore{}, WithKnowledgeCache(cache))

	_, err := svc.RefreshKnowledge(context.Background())
	require.Error(t, err)
}

func TestAssistant_KnowledgeStatsWithoutCache(t *testing.T) {
	svc := NewAssistant(&fakeRetriever{}, nil, &fakeChatStore{})
	assert.Zero(t, svc.KnowledgeStats().Total())
}
