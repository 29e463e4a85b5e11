package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pagepulse/pagepulse/domain/chat"
	"github.com/pagepulse/pagepulse/domain/rag"
	"github.com/pagepulse/pagepulse/internal/config"
)

// FallbackReply is sent when no generator is configured or generation fails.
// The assistant replies in Vietnamese, so the canned response does too.
const FallbackReply = "Xin lỗi, tôi đang gặp sự cố kỹ thuật. " +
	"Vui lòng thử lại sau hoặc liên hệ trực tiếp với chúng tôi qua số điện thoại. 😊"

const personaPrompt = `Bạn là trợ lý AI thông minh của fanpage, chuyên phản hồi tin nhắn khách hàng về mọi lĩnh vực: du lịch, ẩm thực, làm đẹp, công nghệ, giáo dục, kinh doanh, sức khỏe, phong cách sống, v.v.

🎯 NHIỆM VỤ:
Dựa vào thông tin liên quan được tìm thấy, trả lời chính xác và hữu ích cho khách hàng.

💡 HƯỚNG DẪN PHẢN HỒI:
1. SỬ DỤNG THÔNG TIN TỪ CÁC TÀI LIỆU LIÊN QUAN ở trên để trả lời chính xác nhất
2. Nếu có bài viết liên quan, hãy đề cập đến nội dung cụ thể từ bài viết đó
3. Giọng văn thân thiện, tự nhiên, chuyên nghiệp
4. Câu trả lời ngắn gọn (2-4 câu), dễ hiểu
5. Sử dụng emoji phù hợp (🌟✨💬💌...)
6. Kết thúc bằng CTA phù hợp:
  - "Inbox em để được tư vấn chi tiết hơn nhé 💌"
  - "Anh/chị quan tâm đến sản phẩm/dịch vụ nào cụ thể ạ?"
  - "Theo dõi page để cập nhật thêm tin mới nha 🌟"

⚠️ LƯU Ý:
- Nếu KHÔNG có tài liệu liên quan (context rỗng), hãy phản hồi lịch sự và mời khách inbox
- Luôn dựa vào THÔNG TIN THỰC TẾ từ documents, không bịa đặt
- Ưu tiên thông tin từ bài viết có độ liên quan cao nhất`

// KnowledgeCache manages the embedded knowledge corpus behind the retriever.
type KnowledgeCache interface {
	// Refresh rebuilds the cache regardless of freshness.
	Refresh(ctx context.Context) error

	// Stats describes the cache's current contents.
	Stats() rag.CacheStats
}

// Reply is the outcome of one assistant exchange.
type Reply struct {
	Text      string
	Fallback  bool
	Documents []rag.ScoredDocument
}

// Assistant answers user messages with retrieval-augmented generation. Every
// reply is grounded in the knowledge corpus and the user's recent
// conversation history. Generation failures degrade to a canned reply so the
// user always hears back.
type Assistant struct {
	retriever    rag.Retriever
	generator    rag.Generator
	history      chat.Store
	cache        KnowledgeCache
	historyTurns int
	logger       *slog.Logger
}

// AssistantOption configures an Assistant.
type AssistantOption func(*Assistant)

// WithHistoryTurns sets how many past turns are replayed to the generator.
func WithHistoryTurns(n int) AssistantOption {
	return func(a *Assistant) {
		if n > 0 {
			a.historyTurns = n
		}
	}
}

// WithKnowledgeCache attaches the knowledge cache for refresh and stats.
func WithKnowledgeCache(cache KnowledgeCache) AssistantOption {
	return func(a *Assistant) {
		a.cache = cache
	}
}

// WithAssistantLogger sets the service's logger.
func WithAssistantLogger(logger *slog.Logger) AssistantOption {
	return func(a *Assistant) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// NewAssistant creates an Assistant. A nil generator is allowed; replies then
// always fall back to the canned response.
func NewAssistant(
	retriever rag.Retriever,
	generator rag.Generator,
	history chat.Store,
	opts ...AssistantOption,
) *Assistant {
	a := &Assistant{
		retriever:    retriever,
		generator:    generator,
		history:      history,
		historyTurns: config.DefaultHistoryTurns,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Reply answers one user message. The exchange is appended to the user's
// history whether generation succeeded or fell back.
func (a *Assistant) Reply(ctx context.Context, userID, message string) (Reply, error) {
	docs := a.retriever.Retrieve(ctx, message)

	reply := Reply{Documents: docs}
	text, err := a.generate(ctx, userID, message, docs)
	if err != nil {
		a.logger.Error("reply generation failed, sending fallback",
			"user_id", userID, "error", err)
		text = FallbackReply
		reply.Fallback = true
	}
	reply.Text = text

	a.record(ctx, userID, message, text)
	return reply, nil
}

// RefreshKnowledge rebuilds the knowledge cache on demand.
func (a *Assistant) RefreshKnowledge(ctx context.Context) (rag.CacheStats, error) {
	if a.cache == nil {
		return rag.CacheStats{}, nil
	}
	if err := a.cache.Refresh(ctx); err != nil {
		return rag.CacheStats{}, fmt.Errorf("refresh knowledge cache: %w", err)
	}
	return a.cache.Stats(), nil
}

// KnowledgeStats describes the knowledge cache's current contents.
func (a *Assistant) KnowledgeStats() rag.CacheStats {
	if a.cache == nil {
		return rag.CacheStats{}
	}
	return a.cache.Stats()
}

func (a *Assistant) generate(ctx context.Context, userID, message string, docs []rag.ScoredDocument) (string, error) {
	if a.generator == nil {
		return "", ErrGeneratorNotConfigured
	}

	messages := []rag.Message{{Role: "system", Content: systemPrompt(docs)}}
	history, err := a.history.Recent(ctx, userID, a.historyTurns)
	if err != nil {
		a.logger.Warn("failed to load conversation history",
			"user_id", userID, "error", err)
	}
	for _, turn := range history {
		messages = append(messages, rag.Message{Role: string(turn.Role()), Content: turn.Content()})
	}
	messages = append(messages, rag.Message{Role: "user", Content: message})

	text, err := a.generator.Generate(ctx, messages)
	if err != nil {
		return "", err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("generator returned an empty reply")
	}
	return text, nil
}

// record appends both sides of the exchange. History failures are logged,
// not surfaced: the reply already went out.
func (a *Assistant) record(ctx context.Context, userID, userMsg, assistantMsg string) {
	if _, err := a.history.Append(ctx, chat.NewTurn(userID, chat.RoleUser, userMsg)); err != nil {
		a.logger.Warn("failed to record user turn", "user_id", userID, "error", err)
	}
	if _, err := a.history.Append(ctx, chat.NewTurn(userID, chat.RoleAssistant, assistantMsg)); err != nil {
		a.logger.Warn("failed to record assistant turn", "user_id", userID, "error", err)
	}
}

// systemPrompt renders the assistant persona with the retrieved knowledge
// block appended.
func systemPrompt(docs []rag.ScoredDocument) string {
	knowledge := rag.BuildContext(docs)
	if knowledge == "" {
		return personaPrompt
	}
	return personaPrompt + "\n\n" + knowledge
}
