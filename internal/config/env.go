// Package config provides application configuration.
package config

import (
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvConfig holds all environment-based configuration.
// Nested structs use underscore delimiter (e.g., EMBEDDING_ENDPOINT_BASE_URL).
type EnvConfig struct {
	// Host is the server host to bind to.
	// Env: HOST (default: 0.0.0.0)
	Host string `envconfig:"HOST" default:"0.0.0.0"`

	// Port is the server port to listen on.
	// Env: PORT (default: 8080)
	Port int `envconfig:"PORT" default:"8080"`

	// DBURL is the database connection URL.
	// Env: DB_URL (default: sqlite:///pagepulse.db)
	DBURL string `envconfig:"DB_URL"`

	// LogLevel is the log verbosity level.
	// Env: LOG_LEVEL (default: INFO)
	LogLevel string `envconfig:"LOG_LEVEL" default:"INFO"`

	// LogFormat is the log output format (pretty or json).
	// Env: LOG_FORMAT (default: pretty)
	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`

	// APIKeys is a comma-separated list of valid API keys.
	// Env: API_KEYS
	APIKeys string `envconfig:"API_KEYS"`

	// EmbeddingEndpoint configures the embedding AI service.
	EmbeddingEndpoint EndpointEnv `envconfig:"EMBEDDING_ENDPOINT"`

	// ChatEndpoint configures the chat completion AI service.
	ChatEndpoint EndpointEnv `envconfig:"CHAT_ENDPOINT"`

	// Facebook configures the Facebook Graph API connection.
	Facebook FacebookEnv `envconfig:"FACEBOOK"`

	// Retrieval configures the knowledge retrieval engine.
	Retrieval RetrievalEnv `envconfig:"RAG"`

	// Moderation configures comment moderation behavior.
	Moderation ModerationEnv `envconfig:"MODERATION"`
}

// EndpointEnv holds environment configuration for an AI endpoint.
type EndpointEnv struct {
	// BaseURL is the base URL for the endpoint.
	// Env: *_BASE_URL
	BaseURL string `envconfig:"BASE_URL"`

	// Model is the model identifier (e.g., text-embedding-3-small).
	// Env: *_MODEL
	Model string `envconfig:"MODEL"`

	// APIKey is the API key for authentication.
	// Env: *_API_KEY
	APIKey string `envconfig:"API_KEY"`

	// Timeout is the request timeout in seconds.
	// Env: *_TIMEOUT (default: 60)
	Timeout float64 `envconfig:"TIMEOUT" default:"60"`

	// MaxRetries is the maximum number of retries.
	// Env: *_MAX_RETRIES (default: 5)
	MaxRetries int `envconfig:"MAX_RETRIES" default:"5"`

	// InitialDelay is the initial retry delay in seconds.
	// Env: *_INITIAL_DELAY (default: 2.0)
	InitialDelay float64 `envconfig:"INITIAL_DELAY" default:"2.0"`

	// BackoffFactor is the retry backoff multiplier.
	// Env: *_BACKOFF_FACTOR (default: 2.0)
	BackoffFactor float64 `envconfig:"BACKOFF_FACTOR" default:"2.0"`
}

// FacebookEnv holds environment configuration for the Facebook Graph API.
type FacebookEnv struct {
	// AccessToken is the page access token.
	// Env: FACEBOOK_ACCESS_TOKEN
	AccessToken string `envconfig:"ACCESS_TOKEN"`

	// BaseURL overrides the Graph API base URL (for testing).
	// Env: FACEBOOK_BASE_URL
	BaseURL string `envconfig:"BASE_URL"`

	// Timeout is the request timeout in seconds.
	// Env: FACEBOOK_TIMEOUT (default: 30)
	Timeout float64 `envconfig:"TIMEOUT" default:"30"`
}

// RetrievalEnv holds environment configuration for knowledge retrieval.
type RetrievalEnv struct {
	// TopK is the maximum number of retrieved documents.
	// Env: RAG_TOP_K (default: 7)
	TopK int `envconfig:"TOP_K" default:"7"`

	// SimilarityThreshold is the minimum cosine similarity for a match.
	// Env: RAG_SIMILARITY_THRESHOLD (default: 0.5)
	SimilarityThreshold float64 `envconfig:"SIMILARITY_THRESHOLD" default:"0.5"`

	// CacheTTLSeconds is how long the knowledge cache stays fresh.
	// Env: RAG_CACHE_TTL_SECONDS (default: 3600)
	CacheTTLSeconds float64 `envconfig:"CACHE_TTL_SECONDS" default:"3600"`

	// PostLookbackDays is how far back page posts are loaded.
	// Env: RAG_POST_LOOKBACK_DAYS (default: 45)
	PostLookbackDays int `envconfig:"POST_LOOKBACK_DAYS" default:"45"`

	// PostLimit is the maximum number of posts loaded into the cache.
	// Env: RAG_POST_LIMIT (default: 100)
	PostLimit int `envconfig:"POST_LIMIT" default:"100"`

	// ExperimentLimit is the maximum number of experiments loaded.
	// Env: RAG_EXPERIMENT_LIMIT (default: 50)
	ExperimentLimit int `envconfig:"EXPERIMENT_LIMIT" default:"50"`

	// HistoryTurns is how many past conversation turns feed a reply.
	// Env: RAG_HISTORY_TURNS (default: 5)
	HistoryTurns int `envconfig:"HISTORY_TURNS" default:"5"`
}

// ModerationEnv holds environment configuration for moderation.
type ModerationEnv struct {
	// DuplicateWindowDays is how far back duplicate detection looks.
	// Env: MODERATION_DUPLICATE_WINDOW_DAYS (default: 7)
	DuplicateWindowDays int `envconfig:"DUPLICATE_WINDOW_DAYS" default:"7"`

	// RatePerSecond is the platform call rate for batch moderation.
	// Env: MODERATION_RATE_PER_SECOND (default: 10)
	RatePerSecond float64 `envconfig:"RATE_PER_SECOND" default:"10"`

	// Burst is the rate limiter burst size.
	// Env: MODERATION_BURST (default: 1)
	Burst int `envconfig:"BURST" default:"1"`

	// QueueLimit is the maximum size of the moderation queue.
	// Env: MODERATION_QUEUE_LIMIT (default: 100)
	QueueLimit int `envconfig:"QUEUE_LIMIT" default:"100"`

	// ReviewLimit is the maximum size of the manual review list.
	// Env: MODERATION_REVIEW_LIMIT (default: 50)
	ReviewLimit int `envconfig:"REVIEW_LIMIT" default:"50"`

	// MinReviewSeverity is the minimum toxicity severity for review listing.
	// Env: MODERATION_MIN_REVIEW_SEVERITY (default: 2.0)
	MinReviewSeverity float64 `envconfig:"MIN_REVIEW_SEVERITY" default:"2.0"`

	// AutoEnabled enforces hide and delete verdicts as comments come in.
	// Env: MODERATION_AUTO_ENABLED (default: true)
	AutoEnabled bool `envconfig:"AUTO_ENABLED" default:"true"`

	// SweepEnabled enables the background moderation sweeper.
	// Env: MODERATION_SWEEP_ENABLED (default: true)
	SweepEnabled bool `envconfig:"SWEEP_ENABLED" default:"true"`

	// SweepIntervalSeconds is how often the sweeper enforces the queue.
	// Env: MODERATION_SWEEP_INTERVAL_SECONDS (default: 60)
	SweepIntervalSeconds int `envconfig:"SWEEP_INTERVAL_SECONDS" default:"60"`
}

// LoadFromEnv loads configuration from environment variables.
func LoadFromEnv() (EnvConfig, error) {
	var cfg EnvConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return EnvConfig{}, err
	}
	return cfg, nil
}

// LoadFromEnvWithPrefix loads configuration with a custom prefix.
// For example, prefix "PAGEPULSE" would require PAGEPULSE_DB_URL instead of DB_URL.
func LoadFromEnvWithPrefix(prefix string) (EnvConfig, error) {
	var cfg EnvConfig
	if err := envconfig.Process(prefix, &cfg); err != nil {
		return EnvConfig{}, err
	}
	return cfg, nil
}

// ToAppConfig converts EnvConfig to AppConfig.
func (e EnvConfig) ToAppConfig() AppConfig {
	cfg := NewAppConfig()

	if e.Host != "" {
		cfg = applyOption(cfg, WithHost(e.Host))
	}
	if e.Port != 0 {
		cfg = applyOption(cfg, WithPort(e.Port))
	}
	if e.DBURL != "" {
		cfg = applyOption(cfg, WithDBURL(e.DBURL))
	}
	if e.LogLevel != "" {
		cfg = applyOption(cfg, WithLogLevel(e.LogLevel))
	}
	if e.LogFormat != "" {
		cfg = applyOption(cfg, WithLogFormat(parseLogFormat(e.LogFormat)))
	}

	if e.APIKeys != "" {
		cfg = applyOption(cfg, WithAPIKeys(ParseAPIKeys(e.APIKeys)))
	}

	if e.EmbeddingEndpoint.IsConfigured() {
		cfg = applyOption(cfg, WithEmbeddingEndpoint(e.EmbeddingEndpoint.ToEndpoint()))
	}
	if e.ChatEndpoint.IsConfigured() {
		cfg = applyOption(cfg, WithChatEndpoint(e.ChatEndpoint.ToEndpoint()))
	}

	cfg = applyOption(cfg, WithPlatformConfig(e.Facebook.ToPlatformConfig()))
	cfg = applyOption(cfg, WithRetrievalConfig(e.Retrieval.ToRetrievalConfig()))
	cfg = applyOption(cfg, WithModerationConfig(e.Moderation.ToModerationConfig()))

	return cfg
}

// applyOption applies an option to the config.
func applyOption(cfg AppConfig, opt AppConfigOption) AppConfig {
	opt(&cfg)
	return cfg
}

// IsConfigured returns true if the endpoint has an API key configured.
func (e EndpointEnv) IsConfigured() bool {
	return e.APIKey != ""
}

// ToEndpoint converts EndpointEnv to Endpoint.
func (e EndpointEnv) ToEndpoint() Endpoint {
	opts := []EndpointOption{
		WithTimeout(time.Duration(e.Timeout * float64(time.Second))),
		WithMaxRetries(e.MaxRetries),
		WithInitialDelay(time.Duration(e.InitialDelay * float64(time.Second))),
		WithBackoffFactor(e.BackoffFactor),
	}

	if e.BaseURL != "" {
		opts = append(opts, WithBaseURL(e.BaseURL))
	}
	if e.Model != "" {
		opts = append(opts, WithModel(e.Model))
	}
	if e.APIKey != "" {
		opts = append(opts, WithAPIKey(e.APIKey))
	}

	return NewEndpointWithOptions(opts...)
}

// ToPlatformConfig converts FacebookEnv to PlatformConfig.
func (f FacebookEnv) ToPlatformConfig() PlatformConfig {
	cfg := NewPlatformConfig()
	if f.AccessToken != "" {
		cfg = cfg.WithAccessToken(f.AccessToken)
	}
	if f.BaseURL != "" {
		cfg = cfg.WithPlatformBaseURL(f.BaseURL)
	}
	if f.Timeout > 0 {
		cfg = cfg.WithPlatformTimeout(time.Duration(f.Timeout * float64(time.Second)))
	}
	return cfg
}

// ToRetrievalConfig converts RetrievalEnv to RetrievalConfig.
func (r RetrievalEnv) ToRetrievalConfig() RetrievalConfig {
	cfg := NewRetrievalConfig().
		WithTopK(r.TopK).
		WithPostLimit(r.PostLimit).
		WithExperimentLimit(r.ExperimentLimit).
		WithHistoryTurns(r.HistoryTurns)
	if r.SimilarityThreshold > 0 {
		cfg = cfg.WithSimilarityThreshold(r.SimilarityThreshold)
	}
	if r.CacheTTLSeconds > 0 {
		cfg = cfg.WithCacheTTL(time.Duration(r.CacheTTLSeconds * float64(time.Second)))
	}
	if r.PostLookbackDays > 0 {
		cfg = cfg.WithPostLookback(time.Duration(r.PostLookbackDays) * 24 * time.Hour)
	}
	return cfg
}

// ToModerationConfig converts ModerationEnv to ModerationConfig.
func (m ModerationEnv) ToModerationConfig() ModerationConfig {
	cfg := NewModerationConfig().
		WithRatePerSecond(m.RatePerSecond).
		WithBurst(m.Burst).
		WithQueueLimit(m.QueueLimit).
		WithReviewLimit(m.ReviewLimit).
		WithMinReviewSeverity(m.MinReviewSeverity).
		WithAutoModerate(m.AutoEnabled).
		WithSweepEnabled(m.SweepEnabled)
	if m.DuplicateWindowDays > 0 {
		cfg = cfg.WithDuplicateWindow(time.Duration(m.DuplicateWindowDays) * 24 * time.Hour)
	}
	if m.SweepIntervalSeconds > 0 {
		cfg = cfg.WithSweepInterval(time.Duration(m.SweepIntervalSeconds) * time.Second)
	}
	return cfg
}

// parseLogFormat parses a log format string.
func parseLogFormat(s string) LogFormat {
	switch strings.ToLower(s) {
	case "json":
		return LogFormatJSON
	default:
		return LogFormatPretty
	}
}
