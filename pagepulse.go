// Package pagepulse provides a library for moderating social media comments
// and answering page messages with retrieval-augmented replies.
//
// PagePulse analyzes Vietnamese and English comments for spam, toxicity,
// duplicates, and sentiment, enforces moderation decisions through the
// platform's Graph API, and answers user messages grounded in the page's own
// posts, curated responses, and A/B test insights.
//
// Basic usage:
//
//	client, err := pagepulse.New(
//	    pagepulse.WithSQLite(".pagepulse/data.db"),
//	    pagepulse.WithChatEndpoint(config.NewEndpointWithOptions(
//	        config.WithAPIKey(os.Getenv("OPENAI_API_KEY")),
//	    )),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	// Analyze a comment
//	analysis, err := client.Moderation.Process(ctx, commentID, pageID, message)
//
//	// Answer a message
//	reply, err := client.Assistant.Reply(ctx, userID, message)
package pagepulse

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/pagepulse/pagepulse/application/service"
	"github.com/pagepulse/pagepulse/domain/moderation"
	"github.com/pagepulse/pagepulse/domain/rag"
	"github.com/pagepulse/pagepulse/infrastructure/classifier"
	"github.com/pagepulse/pagepulse/infrastructure/persistence"
	"github.com/pagepulse/pagepulse/infrastructure/platform"
	"github.com/pagepulse/pagepulse/infrastructure/provider"
	"github.com/pagepulse/pagepulse/infrastructure/retrieval"
	"github.com/pagepulse/pagepulse/internal/config"
	"github.com/pagepulse/pagepulse/internal/database"
)

// Client is the main entry point for the pagepulse library.
//
// Access resources via struct fields:
//
//	client.Moderation.Process(ctx, commentID, pageID, message)
//	client.Actions.Batch(ctx)
//	client.Assistant.Reply(ctx, userID, message)
type Client struct {
	// Public resource fields (direct service access)
	Moderation *service.Moderation
	Actions    *service.Actions
	Analytics  *service.Analytics
	Assistant  *service.Assistant
	Rules      *service.Rules

	db      database.Database
	cache   *retrieval.Cache
	sweeper *service.Sweeper

	chatProvider      *provider.OpenAIProvider
	embeddingProvider *provider.OpenAIProvider

	logger  *slog.Logger
	apiKeys []string
	closed  atomic.Bool
	mu      sync.Mutex
}

// New creates a new Client with the given options. The rule tables are
// seeded with the built-in pack when empty, and the moderation sweeper is
// started when enabled.
func New(opts ...Option) (*Client, error) {
	cfg := newClientConfig()

	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.dbURL == "" {
		return nil, ErrNoDatabase
	}

	logger := cfg.logger
	if logger == nil {
		logger = config.DefaultLogger()
	}

	ctx := context.Background()

	db, err := database.NewDatabase(ctx, cfg.dbURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := persistence.AutoMigrate(db); err != nil {
		errClose := db.Close()
		return nil, errors.Join(fmt.Errorf("auto migrate: %w", err), errClose)
	}
	if err := persistence.ValidateSchema(db); err != nil {
		errClose := db.Close()
		return nil, errors.Join(fmt.Errorf("validate schema: %w", err), errClose)
	}

	// Create stores
	analyses := persistence.NewAnalysisStore(db)
	logs := persistence.NewModerationLogStore(db)
	analyticsStore := persistence.NewAnalyticsStore(db)
	spamPatterns := persistence.NewSpamPatternStore(db)
	toxicKeywords := persistence.NewToxicKeywordStore(db)
	sentimentKeywords := persistence.NewSentimentKeywordStore(db)
	posts := persistence.NewPostStore(db)
	responses := persistence.NewResponseStore(db)
	experiments := persistence.NewExperimentStore(db)
	conversations := persistence.NewConversationStore(db)

	// Rule management, seeded when tables are empty. An empty configured
	// pack falls back to the built-in one.
	rulesSvc := service.NewRules(
		persistence.NewSeeder(db), spamPatterns, toxicKeywords, sentimentKeywords, logger)
	if _, err := rulesSvc.Seed(ctx, cfg.rulePack); err != nil {
		errClose := db.Close()
		return nil, errors.Join(fmt.Errorf("seed rules: %w", err), errClose)
	}

	// Classifiers read the rule tables on every call so operator edits take
	// effect without a restart.
	toxicity := classifier.NewToxicity(toxicKeywords, logger)
	spam := classifier.NewSpam(spamPatterns, logger)
	sentiment := classifier.NewSentiment(sentimentKeywords, logger)

	// Platform enforcement is optional: without an access token the analysis
	// pipeline still runs, but actions return an error.
	var graphAPI moderation.Platform
	if cfg.platform.IsConfigured() {
		platformOpts := []platform.FacebookOption{platform.WithTimeout(cfg.platform.Timeout())}
		if cfg.platform.BaseURL() != "" {
			platformOpts = append(platformOpts, platform.WithBaseURL(cfg.platform.BaseURL()))
		}
		graphAPI = platform.NewFacebook(cfg.platform.AccessToken(), platformOpts...)
	}

	actions := service.NewActions(graphAPI, analyses, logs,
		service.WithRateLimit(cfg.moderation.RatePerSecond(), cfg.moderation.Burst()),
		service.WithQueueLimit(cfg.moderation.QueueLimit()),
		service.WithActionsLogger(logger),
	)

	moderationOpts := []service.ModerationOption{
		service.WithDuplicateWindow(cfg.moderation.DuplicateWindow()),
		service.WithModerationLogger(logger),
	}
	if cfg.autoModerate && graphAPI != nil {
		moderationOpts = append(moderationOpts, service.WithAutoModeration(actions))
	}
	moderationSvc := service.NewModeration(analyses, toxicity, spam, sentiment, moderationOpts...)

	analytics := service.NewAnalytics(analyticsStore,
		service.WithReviewLimit(cfg.moderation.ReviewLimit()),
		service.WithReviewSeverity(cfg.moderation.MinReviewSeverity()),
	)

	// AI providers are built from endpoints unless overridden.
	chatProvider := provider.NewChatProviderFromEndpoint(cfg.chatEndpoint)
	embeddingProvider := provider.NewEmbeddingProviderFromEndpoint(cfg.embeddingEndpoint)

	embedder := cfg.embedder
	if embedder == nil && embeddingProvider != nil {
		embedder = provider.NewEmbedderAdapter(embeddingProvider)
	}
	generator := cfg.generator
	if generator == nil && chatProvider != nil {
		generator = provider.NewGeneratorAdapter(chatProvider)
	}

	// Retrieval needs an embedder; without one the assistant answers from
	// the persona prompt alone.
	var cache *retrieval.Cache
	var retriever rag.Retriever = emptyRetriever{}
	if embedder != nil {
		cache = retrieval.NewCache(
			retrieval.CorpusSources{Posts: posts, Responses: responses, Experiments: experiments},
			embedder,
			retrieval.WithTTL(cfg.retrieval.CacheTTL()),
			retrieval.WithLookback(cfg.retrieval.PostLookback()),
			retrieval.WithPostLimit(cfg.retrieval.PostLimit()),
			retrieval.WithExperimentLimit(cfg.retrieval.ExperimentLimit()),
			retrieval.WithCacheLogger(logger),
		)
		retriever = retrieval.NewEngine(cache, embedder,
			retrieval.WithTopK(cfg.retrieval.TopK()),
			retrieval.WithThreshold(cfg.retrieval.SimilarityThreshold()),
			retrieval.WithEngineLogger(logger),
		)
	}

	assistantOpts := []service.AssistantOption{
		service.WithHistoryTurns(cfg.retrieval.HistoryTurns()),
		service.WithAssistantLogger(logger),
	}
	if cache != nil {
		assistantOpts = append(assistantOpts, service.WithKnowledgeCache(cache))
	}
	assistant := service.NewAssistant(retriever, generator, conversations, assistantOpts...)

	sweeper := service.NewSweeper(actions, cfg.sweepInterval,
		cfg.sweepEnabled && graphAPI != nil, logger)

	client := &Client{
		Moderation:        moderationSvc,
		Actions:           actions,
		Analytics:         analytics,
		Assistant:         assistant,
		Rules:             rulesSvc,
		db:                db,
		cache:             cache,
		sweeper:           sweeper,
		chatProvider:      chatProvider,
		embeddingProvider: embeddingProvider,
		logger:            logger,
		apiKeys:           cfg.apiKeys,
	}

	sweeper.Start(ctx)

	return client, nil
}

// Close releases all resources and stops the background sweeper.
func (c *Client) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return ErrClientClosed
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.sweeper.Stop()

	if c.chatProvider != nil {
		if err := c.chatProvider.Close(); err != nil {
			c.logger.Error("failed to close chat provider", slog.Any("error", err))
		}
	}
	if c.embeddingProvider != nil && c.embeddingProvider != c.chatProvider {
		if err := c.embeddingProvider.Close(); err != nil {
			c.logger.Error("failed to close embedding provider", slog.Any("error", err))
		}
	}

	if err := c.db.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}

	c.logger.Info("pagepulse client closed")
	return nil
}

// Logger returns the client's logger.
func (c *Client) Logger() *slog.Logger {
	return c.logger
}

// APIKeys returns the API keys configured for HTTP authentication.
func (c *Client) APIKeys() []string {
	keys := make([]string, len(c.apiKeys))
	copy(keys, c.apiKeys)
	return keys
}

// emptyRetriever stands in when no embedding provider is configured.
type emptyRetriever struct{}

func (emptyRetriever) Retrieve(context.Context, string) []rag.ScoredDocument { return nil }
