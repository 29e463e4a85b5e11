package pagepulse

import (
	"log/slog"
	"time"

	"github.com/pagepulse/pagepulse/domain/rag"
	"github.com/pagepulse/pagepulse/domain/rules"
	"github.com/pagepulse/pagepulse/internal/config"
)

// clientConfig holds configuration for Client construction.
// Use newClientConfig() to create with defaults from internal/config.
type clientConfig struct {
	dbURL             string
	logger            *slog.Logger
	apiKeys           []string
	chatEndpoint      *config.Endpoint
	embeddingEndpoint *config.Endpoint
	platform          config.PlatformConfig
	retrieval         config.RetrievalConfig
	moderation        config.ModerationConfig
	sweepInterval     time.Duration
	sweepEnabled      bool
	autoModerate      bool
	rulePack          rules.Pack

	// Test seams: override the providers built from endpoints.
	embedder  rag.Embedder
	generator rag.Generator
}

// newClientConfig creates a clientConfig with defaults from internal/config.
func newClientConfig() *clientConfig {
	return &clientConfig{
		platform:      config.NewPlatformConfig(),
		retrieval:     config.NewRetrievalConfig(),
		moderation:    config.NewModerationConfig(),
		sweepInterval: config.DefaultSweepInterval,
		autoModerate:  true,
	}
}

// Option configures the Client.
type Option func(*clientConfig)

// WithSQLite configures SQLite as the database.
func WithSQLite(path string) Option {
	return func(c *clientConfig) {
		c.dbURL = "sqlite:///" + path
	}
}

// WithPostgres configures PostgreSQL as the database.
func WithPostgres(dsn string) Option {
	return func(c *clientConfig) {
		c.dbURL = dsn
	}
}

// WithDatabaseURL configures the database from a URL
// (sqlite:///path or postgresql://...).
func WithDatabaseURL(url string) Option {
	return func(c *clientConfig) {
		c.dbURL = url
	}
}

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *clientConfig) {
		c.logger = l
	}
}

// WithAPIKeys sets the API keys for HTTP API authentication.
func WithAPIKeys(keys ...string) Option {
	return func(c *clientConfig) {
		c.apiKeys = keys
	}
}

// WithChatEndpoint sets the chat completion endpoint used for replies.
func WithChatEndpoint(e config.Endpoint) Option {
	return func(c *clientConfig) {
		c.chatEndpoint = &e
	}
}

// WithEmbeddingEndpoint sets the embedding endpoint used for retrieval.
func WithEmbeddingEndpoint(e config.Endpoint) Option {
	return func(c *clientConfig) {
		c.embeddingEndpoint = &e
	}
}

// WithPlatformConfig sets the social platform connection.
func WithPlatformConfig(p config.PlatformConfig) Option {
	return func(c *clientConfig) {
		c.platform = p
	}
}

// WithRetrievalConfig sets the knowledge retrieval configuration.
func WithRetrievalConfig(r config.RetrievalConfig) Option {
	return func(c *clientConfig) {
		c.retrieval = r
	}
}

// WithModerationConfig sets the moderation configuration.
func WithModerationConfig(m config.ModerationConfig) Option {
	return func(c *clientConfig) {
		c.moderation = m
	}
}

// WithSweeper enables the background moderation sweeper at the given
// interval. The sweeper also requires a configured platform to take effect.
func WithSweeper(interval time.Duration) Option {
	return func(c *clientConfig) {
		if interval > 0 {
			c.sweepInterval = interval
		}
		c.sweepEnabled = true
	}
}

// WithAutoModeration toggles immediate enforcement of hide and delete
// verdicts as comments are processed. Enabled by default; disabling it
// leaves flagged comments to the queue and the sweeper.
func WithAutoModeration(enabled bool) Option {
	return func(c *clientConfig) {
		c.autoModerate = enabled
	}
}

// WithRulePack sets the rule pack seeded into empty rule tables on startup.
// Without this option the built-in Vietnamese/English pack is used.
func WithRulePack(pack rules.Pack) Option {
	return func(c *clientConfig) {
		c.rulePack = pack
	}
}

// WithEmbedder sets a custom embedder, bypassing the embedding endpoint.
func WithEmbedder(e rag.Embedder) Option {
	return func(c *clientConfig) {
		c.embedder = e
	}
}

// WithGenerator sets a custom reply generator, bypassing the chat endpoint.
func WithGenerator(g rag.Generator) Option {
	return func(c *clientConfig) {
		c.generator = g
	}
}

// WithAppConfig applies a full application config in one option: database,
// API keys, endpoints, platform, retrieval, and moderation settings.
func WithAppConfig(cfg config.AppConfig) Option {
	return func(c *clientConfig) {
		c.dbURL = cfg.DBURL()
		c.apiKeys = cfg.APIKeys()
		c.chatEndpoint = cfg.ChatEndpoint()
		c.embeddingEndpoint = cfg.EmbeddingEndpoint()
		c.platform = cfg.Platform()
		c.retrieval = cfg.Retrieval()
		c.moderation = cfg.Moderation()
		c.sweepEnabled = cfg.Moderation().SweepEnabled()
		c.sweepInterval = cfg.Moderation().SweepInterval()
		c.autoModerate = cfg.Moderation().AutoModerate()
	}
}
