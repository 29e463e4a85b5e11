package retrieval

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/pagepulse/pagepulse/domain/rag"
)

// Engine retrieval defaults, overridable through options.
const (
	defaultTopK      = 7
	defaultThreshold = 0.5
)

// Engine retrieves the cached documents most similar to a query. Posts and
// experiment insights are the primary material; curated responses fill the
// remaining slots. Every failure degrades to an empty result so the caller
// can still attempt a reply.
type Engine struct {
	cache     *Cache
	embedder  rag.Embedder
	topK      int
	threshold float64
	logger    *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithTopK caps how many documents a query retrieves.
func WithTopK(n int) EngineOption {
	return func(e *Engine) {
		if n > 0 {
			e.topK = n
		}
	}
}

// WithThreshold sets the minimum similarity for a document to qualify.
func WithThreshold(t float64) EngineOption {
	return func(e *Engine) { e.threshold = t }
}

// WithEngineLogger sets the engine's logger.
func WithEngineLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewEngine creates an Engine.
func NewEngine(cache *Cache, embedder rag.Embedder, opts ...EngineOption) *Engine {
	e := &Engine{
		cache:     cache,
		embedder:  embedder,
		topK:      defaultTopK,
		threshold: defaultThreshold,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var _ rag.Retriever = (*Engine)(nil)

// Retrieve returns the documents most similar to the query, best first.
// Internal failures are logged and produce an empty result.
func (e *Engine) Retrieve(ctx context.Context, query string) []rag.ScoredDocument {
	docs, err := e.retrieve(ctx, query)
	if err != nil {
		e.logger.Warn("knowledge retrieval failed", "error", err)
		return nil
	}
	return docs
}

func (e *Engine) retrieve(ctx context.Context, query string) ([]rag.ScoredDocument, error) {
	if e.embedder == nil {
		return nil, nil
	}

	posts, responses, insights, err := e.cache.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	vectors, err := e.embedder.Embed(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	if len(vectors) == 0 {
		return nil, fmt.Errorf("embed query: empty result")
	}
	queryVec := vectors[0]

	scoredPosts := e.scorePool(queryVec, posts)
	scoredInsights := e.scorePool(queryVec, insights)
	scoredResponses := e.scorePool(queryVec, responses)

	// Posts and insights are the primary material; curated responses only
	// backfill when the primary pools fall short of topK.
	candidates := append(scoredPosts, scoredInsights...)
	if len(candidates) < e.topK {
		candidates = append(candidates, scoredResponses...)
	}
	if len(candidates) > e.topK {
		candidates = candidates[:e.topK]
	}
	return candidates, nil
}

// scorePool scores a pool against the query, drops documents below the
// threshold, and sorts the survivors best first.
func (e *Engine) scorePool(queryVec []float64, docs []rag.Document) []rag.ScoredDocument {
	scored := make([]rag.ScoredDocument, 0, len(docs))
	for _, d := range docs {
		sim := CosineSimilarity(queryVec, d.Embedding())
		if sim >= e.threshold {
			scored = append(scored, rag.ScoredDocument{Document: d, Similarity: sim})
		}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Similarity > scored[j].Similarity
	})
	return scored
}
