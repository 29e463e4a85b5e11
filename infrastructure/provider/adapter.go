package provider

import (
	"context"

	"github.com/pagepulse/pagepulse/domain/rag"
)

// EmbedderAdapter exposes an Embedder through the plain vector interface the
// retrieval layer consumes.
type EmbedderAdapter struct {
	embedder Embedder
}

// NewEmbedderAdapter creates an EmbedderAdapter.
func NewEmbedderAdapter(embedder Embedder) *EmbedderAdapter {
	return &EmbedderAdapter{embedder: embedder}
}

// Embed generates one vector per input text.
func (a *EmbedderAdapter) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	resp, err := a.embedder.Embed(ctx, NewEmbeddingRequest(texts))
	if err != nil {
		return nil, err
	}
	return resp.Embeddings(), nil
}

var _ rag.Embedder = (*EmbedderAdapter)(nil)

// GeneratorAdapter exposes a TextGenerator through the chat-style interface
// the reply assistant consumes.
type GeneratorAdapter struct {
	generator TextGenerator
}

// NewGeneratorAdapter creates a GeneratorAdapter.
func NewGeneratorAdapter(generator TextGenerator) *GeneratorAdapter {
	return &GeneratorAdapter{generator: generator}
}

// Generate produces a completion for the given conversation.
func (a *GeneratorAdapter) Generate(ctx context.Context, messages []rag.Message) (string, error) {
	msgs := make([]Message, len(messages))
	for i, m := range messages {
		msgs[i] = NewMessage(m.Role, m.Content)
	}
	resp, err := a.generator.ChatCompletion(ctx, NewChatCompletionRequest(msgs))
	if err != nil {
		return "", err
	}
	return resp.Content(), nil
}

var _ rag.Generator = (*GeneratorAdapter)(nil)
