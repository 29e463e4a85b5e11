package retrieval

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/pagepulse/pagepulse/domain/rag"
)

// Cache defaults, overridable through options.
const (
	defaultTTL             = time.Hour
	defaultLookback        = 45 * 24 * time.Hour
	defaultPostLimit       = 100
	defaultExperimentLimit = 50
)

// CorpusSources bundles the stores the cache loads knowledge from.
type CorpusSources struct {
	Posts       rag.PostStore
	Responses   rag.ResponseStore
	Experiments rag.ExperimentStore
}

// Cache holds embedded knowledge documents in memory with a TTL. A stale
// cache is rebuilt on first use; concurrent rebuild requests are collapsed
// into a single store-and-embed pass.
type Cache struct {
	sources         CorpusSources
	embedder        rag.Embedder
	ttl             time.Duration
	lookback        time.Duration
	postLimit       int
	experimentLimit int
	clock           func() time.Time
	logger          *slog.Logger

	group singleflight.Group

	mu        sync.RWMutex
	posts     []rag.Document
	responses []rag.Document
	insights  []rag.Document
	builtAt   time.Time
}

// CacheOption configures a Cache.
type CacheOption func(*Cache)

// WithTTL sets how long a built cache stays fresh.
func WithTTL(d time.Duration) CacheOption {
	return func(c *Cache) {
		if d > 0 {
			c.ttl = d
		}
	}
}

// WithLookback sets how far back posts are loaded.
func WithLookback(d time.Duration) CacheOption {
	return func(c *Cache) {
		if d > 0 {
			c.lookback = d
		}
	}
}

// WithPostLimit caps how many posts are loaded.
func WithPostLimit(n int) CacheOption {
	return func(c *Cache) {
		if n > 0 {
			c.postLimit = n
		}
	}
}

// WithExperimentLimit caps how many experiments are loaded.
func WithExperimentLimit(n int) CacheOption {
	return func(c *Cache) {
		if n > 0 {
			c.experimentLimit = n
		}
	}
}

// WithClock injects a time source, used by tests to control expiry.
func WithClock(clock func() time.Time) CacheOption {
	return func(c *Cache) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithCacheLogger sets the cache's logger.
func WithCacheLogger(logger *slog.Logger) CacheOption {
	return func(c *Cache) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewCache creates a Cache.
func NewCache(sources CorpusSources, embedder rag.Embedder, opts ...CacheOption) *Cache {
	c := &Cache{
		sources:         sources,
		embedder:        embedder,
		ttl:             defaultTTL,
		lookback:        defaultLookback,
		postLimit:       defaultPostLimit,
		experimentLimit: defaultExperimentLimit,
		clock:           time.Now,
		logger:          slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Snapshot returns the cached document pools, rebuilding first when the
// cache is stale or empty.
func (c *Cache) Snapshot(ctx context.Context) (posts, responses, insights []rag.Document, err error) {
	if c.fresh() {
		return c.pools()
	}

	if _, err, _ := c.group.Do("rebuild", func() (any, error) {
		// Another caller may have rebuilt while this one waited.
		if c.fresh() {
			return nil, nil
		}
		return nil, c.rebuild(ctx)
	}); err != nil {
		return nil, nil, nil, err
	}

	posts, responses, insights, _ = c.pools()
	return posts, responses, insights, nil
}

// Refresh discards the cached pools and rebuilds immediately.
func (c *Cache) Refresh(ctx context.Context) error {
	c.mu.Lock()
	c.builtAt = time.Time{}
	c.mu.Unlock()

	_, err, _ := c.group.Do("rebuild", func() (any, error) {
		return nil, c.rebuild(ctx)
	})
	return err
}

// Stats reports the cache's current state.
func (c *Cache) Stats() rag.CacheStats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return rag.CacheStats{
		Posts:     len(c.posts),
		Responses: len(c.responses),
		Insights:  len(c.insights),
		BuiltAt:   c.builtAt,
		Fresh:     c.freshLocked(),
	}
}

func (c *Cache) fresh() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.freshLocked()
}

// freshLocked requires at least one post: a cache built before any posts
// existed is worth rebuilding on the next query.
func (c *Cache) freshLocked() bool {
	return !c.builtAt.IsZero() &&
		c.clock().Sub(c.builtAt) < c.ttl &&
		len(c.posts) > 0
}

func (c *Cache) pools() ([]rag.Document, []rag.Document, []rag.Document, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return copyDocs(c.posts), copyDocs(c.responses), copyDocs(c.insights), nil
}

// rebuild loads all corpus sources and embeds them. Store failures abort the
// build; a single document failing to embed is skipped so one bad item never
// empties the knowledge base.
func (c *Cache) rebuild(ctx context.Context) error {
	since := c.clock().Add(-c.lookback)

	rawPosts, err := c.sources.Posts.PublishedSince(ctx, since, c.postLimit)
	if err != nil {
		return fmt.Errorf("load posts: %w", err)
	}
	rawResponses, err := c.sources.Responses.Active(ctx)
	if err != nil {
		return fmt.Errorf("load responses: %w", err)
	}
	rawExperiments, err := c.sources.Experiments.Completed(ctx, c.experimentLimit)
	if err != nil {
		return fmt.Errorf("load experiments: %w", err)
	}

	posts := make([]rag.Document, 0, len(rawPosts))
	for _, p := range rawPosts {
		emb, ok := c.embedOne(ctx, p.Text(), "post", p.ID())
		if !ok {
			continue
		}
		posts = append(posts, rag.NewDocument(rag.DocumentPost, p.ID(), p.Title(), p.Content(), p.Engagement(), emb))
	}

	responses := make([]rag.Document, 0, len(rawResponses))
	for _, r := range rawResponses {
		id := strconv.FormatInt(r.ID(), 10)
		emb, ok := c.embedOne(ctx, r.Text(), "response", id)
		if !ok {
			continue
		}
		responses = append(responses, rag.NewDocument(rag.DocumentResponse, id, "", r.Response(), 0, emb))
	}

	insights := make([]rag.Document, 0, len(rawExperiments))
	for _, e := range rawExperiments {
		best, ok := e.BestVariant()
		if !ok {
			continue
		}
		id := strconv.FormatInt(e.ID(), 10)
		emb, ok := c.embedOne(ctx, e.Name()+" "+best.Content, "experiment", id)
		if !ok {
			continue
		}
		insights = append(insights, rag.NewDocument(rag.DocumentInsight, id, e.Name(), best.Content, best.Aggregate(), emb))
	}

	c.mu.Lock()
	c.posts = posts
	c.responses = responses
	c.insights = insights
	c.builtAt = c.clock()
	c.mu.Unlock()

	c.logger.Info("knowledge cache rebuilt",
		"posts", len(posts),
		"responses", len(responses),
		"insights", len(insights),
	)
	return nil
}

// embedOne embeds a single text, returning false when the provider fails.
func (c *Cache) embedOne(ctx context.Context, text, kind, id string) ([]float64, bool) {
	if c.embedder == nil {
		return nil, false
	}
	vectors, err := c.embedder.Embed(ctx, []string{text})
	if err != nil || len(vectors) == 0 {
		c.logger.Warn("skipping document that failed to embed",
			"kind", kind,
			"id", id,
			"error", err,
		)
		return nil, false
	}
	return vectors[0], true
}

func copyDocs(docs []rag.Document) []rag.Document {
	cp := make([]rag.Document, len(docs))
	copy(cp, docs)
	return cp
}
