// Package config provides application configuration.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Default configuration values.
const (
	DefaultHost     = "0.0.0.0"
	DefaultPort     = 8080
	DefaultLogLevel = "INFO"
	DefaultDBURL    = "sqlite:///pagepulse.db"

	DefaultEndpointTimeout       = 60 * time.Second
	DefaultEndpointMaxRetries    = 5
	DefaultEndpointInitialDelay  = 2 * time.Second
	DefaultEndpointBackoffFactor = 2.0

	DefaultPlatformTimeout = 30 * time.Second

	DefaultRetrievalTopK       = 7
	DefaultSimilarityThreshold = 0.5
	DefaultKnowledgeTTL        = time.Hour
	DefaultPostLookback        = 45 * 24 * time.Hour
	DefaultPostLimit           = 100
	DefaultExperimentLimit     = 50
	DefaultHistoryTurns        = 5

	DefaultDuplicateWindow   = 7 * 24 * time.Hour
	DefaultModerationRate    = 10.0 // platform calls per second
	DefaultModerationBurst   = 1
	DefaultQueueLimit        = 100
	DefaultReviewLimit       = 50
	DefaultMinReviewSeverity = 2.0
	DefaultTopKeywords       = 10
	DefaultSweepInterval     = time.Minute
)

// LogFormat represents the log output format.
type LogFormat string

// LogFormat values.
const (
	LogFormatPretty LogFormat = "pretty"
	LogFormatJSON   LogFormat = "json"
)

// Endpoint configures an AI service endpoint.
type Endpoint struct {
	baseURL       string
	model         string
	apiKey        string
	timeout       time.Duration
	maxRetries    int
	initialDelay  time.Duration
	backoffFactor float64
}

// NewEndpoint creates a new Endpoint with defaults.
func NewEndpoint() Endpoint {
	return Endpoint{
		timeout:       DefaultEndpointTimeout,
		maxRetries:    DefaultEndpointMaxRetries,
		initialDelay:  DefaultEndpointInitialDelay,
		backoffFactor: DefaultEndpointBackoffFactor,
	}
}

// BaseURL returns the base URL for the endpoint.
func (e Endpoint) BaseURL() string { return e.baseURL }

// Model returns the model identifier.
func (e Endpoint) Model() string { return e.model }

// APIKey returns the API key.
func (e Endpoint) APIKey() string { return e.apiKey }

// Timeout returns the request timeout.
func (e Endpoint) Timeout() time.Duration { return e.timeout }

// MaxRetries returns the maximum retry count.
func (e Endpoint) MaxRetries() int { return e.maxRetries }

// InitialDelay returns the initial retry delay.
func (e Endpoint) InitialDelay() time.Duration { return e.initialDelay }

// BackoffFactor returns the retry backoff multiplier.
func (e Endpoint) BackoffFactor() float64 { return e.backoffFactor }

// IsConfigured returns true if the endpoint has required configuration.
func (e Endpoint) IsConfigured() bool {
	return e.apiKey != ""
}

// EndpointOption is a functional option for Endpoint.
type EndpointOption func(*Endpoint)

// WithBaseURL sets the base URL.
func WithBaseURL(url string) EndpointOption {
	return func(e *Endpoint) { e.baseURL = url }
}

// WithModel sets the model.
func WithModel(model string) EndpointOption {
	return func(e *Endpoint) { e.model = model }
}

// WithAPIKey sets the API key.
func WithAPIKey(key string) EndpointOption {
	return func(e *Endpoint) { e.apiKey = key }
}

// WithTimeout sets the request timeout.
func WithTimeout(d time.Duration) EndpointOption {
	return func(e *Endpoint) { e.timeout = d }
}

// WithMaxRetries sets the maximum retry count.
func WithMaxRetries(n int) EndpointOption {
	return func(e *Endpoint) { e.maxRetries = n }
}

// WithInitialDelay sets the initial retry delay.
func WithInitialDelay(d time.Duration) EndpointOption {
	return func(e *Endpoint) { e.initialDelay = d }
}

// WithBackoffFactor sets the retry backoff multiplier.
func WithBackoffFactor(f float64) EndpointOption {
	return func(e *Endpoint) { e.backoffFactor = f }
}

// NewEndpointWithOptions creates an Endpoint with functional options.
func NewEndpointWithOptions(opts ...EndpointOption) Endpoint {
	e := NewEndpoint()
	for _, opt := range opts {
		opt(&e)
	}
	return e
}

// PlatformConfig configures the social platform Graph API connection.
type PlatformConfig struct {
	accessToken string
	baseURL     string
	timeout     time.Duration
}

// NewPlatformConfig creates a new PlatformConfig with defaults.
func NewPlatformConfig() PlatformConfig {
	return PlatformConfig{
		timeout: DefaultPlatformTimeout,
	}
}

// AccessToken returns the page access token.
func (p PlatformConfig) AccessToken() string { return p.accessToken }

// BaseURL returns the Graph API base URL override (empty means the default).
func (p PlatformConfig) BaseURL() string { return p.baseURL }

// Timeout returns the request timeout.
func (p PlatformConfig) Timeout() time.Duration { return p.timeout }

// IsConfigured returns true if the platform has an access token.
func (p PlatformConfig) IsConfigured() bool {
	return p.accessToken != ""
}

// WithAccessToken returns a new config with the specified access token.
func (p PlatformConfig) WithAccessToken(token string) PlatformConfig {
	p.accessToken = token
	return p
}

// WithPlatformBaseURL returns a new config with the specified base URL.
func (p PlatformConfig) WithPlatformBaseURL(url string) PlatformConfig {
	p.baseURL = url
	return p
}

// WithPlatformTimeout returns a new config with the specified timeout.
func (p PlatformConfig) WithPlatformTimeout(d time.Duration) PlatformConfig {
	p.timeout = d
	return p
}

// RetrievalConfig configures the knowledge retrieval engine.
type RetrievalConfig struct {
	topK                int
	similarityThreshold float64
	cacheTTL            time.Duration
	postLookback        time.Duration
	postLimit           int
	experimentLimit     int
	historyTurns        int
}

// NewRetrievalConfig creates a new RetrievalConfig with defaults.
func NewRetrievalConfig() RetrievalConfig {
	return RetrievalConfig{
		topK:                DefaultRetrievalTopK,
		similarityThreshold: DefaultSimilarityThreshold,
		cacheTTL:            DefaultKnowledgeTTL,
		postLookback:        DefaultPostLookback,
		postLimit:           DefaultPostLimit,
		experimentLimit:     DefaultExperimentLimit,
		historyTurns:        DefaultHistoryTurns,
	}
}

// TopK returns the maximum number of retrieved documents.
func (r RetrievalConfig) TopK() int { return r.topK }

// SimilarityThreshold returns the minimum cosine similarity for a match.
func (r RetrievalConfig) SimilarityThreshold() float64 { return r.similarityThreshold }

// CacheTTL returns how long the knowledge cache stays fresh.
func (r RetrievalConfig) CacheTTL() time.Duration { return r.cacheTTL }

// PostLookback returns how far back page posts are loaded.
func (r RetrievalConfig) PostLookback() time.Duration { return r.postLookback }

// PostLimit returns the maximum number of posts loaded into the cache.
func (r RetrievalConfig) PostLimit() int { return r.postLimit }

// ExperimentLimit returns the maximum number of experiments loaded.
func (r RetrievalConfig) ExperimentLimit() int { return r.experimentLimit }

// HistoryTurns returns how many past conversation turns feed a reply.
func (r RetrievalConfig) HistoryTurns() int { return r.historyTurns }

// WithTopK returns a new config with the specified top-K.
func (r RetrievalConfig) WithTopK(n int) RetrievalConfig {
	if n > 0 {
		r.topK = n
	}
	return r
}

// WithSimilarityThreshold returns a new config with the specified threshold.
func (r RetrievalConfig) WithSimilarityThreshold(t float64) RetrievalConfig {
	r.similarityThreshold = t
	return r
}

// WithCacheTTL returns a new config with the specified cache TTL.
func (r RetrievalConfig) WithCacheTTL(d time.Duration) RetrievalConfig {
	if d > 0 {
		r.cacheTTL = d
	}
	return r
}

// WithPostLookback returns a new config with the specified lookback window.
func (r RetrievalConfig) WithPostLookback(d time.Duration) RetrievalConfig {
	if d > 0 {
		r.postLookback = d
	}
	return r
}

// WithPostLimit returns a new config with the specified post limit.
func (r RetrievalConfig) WithPostLimit(n int) RetrievalConfig {
	if n > 0 {
		r.postLimit = n
	}
	return r
}

// WithExperimentLimit returns a new config with the specified experiment limit.
func (r RetrievalConfig) WithExperimentLimit(n int) RetrievalConfig {
	if n > 0 {
		r.experimentLimit = n
	}
	return r
}

// WithHistoryTurns returns a new config with the specified history depth.
func (r RetrievalConfig) WithHistoryTurns(n int) RetrievalConfig {
	if n > 0 {
		r.historyTurns = n
	}
	return r
}

// ModerationConfig configures comment moderation behavior.
type ModerationConfig struct {
	duplicateWindow   time.Duration
	ratePerSecond     float64
	burst             int
	queueLimit        int
	reviewLimit       int
	minReviewSeverity float64
	autoModerate      bool
	sweepEnabled      bool
	sweepInterval     time.Duration
}

// NewModerationConfig creates a new ModerationConfig with defaults.
func NewModerationConfig() ModerationConfig {
	return ModerationConfig{
		duplicateWindow:   DefaultDuplicateWindow,
		ratePerSecond:     DefaultModerationRate,
		burst:             DefaultModerationBurst,
		queueLimit:        DefaultQueueLimit,
		reviewLimit:       DefaultReviewLimit,
		minReviewSeverity: DefaultMinReviewSeverity,
		autoModerate:      true,
		sweepInterval:     DefaultSweepInterval,
	}
}

// DuplicateWindow returns how far back duplicate detection looks.
func (m ModerationConfig) DuplicateWindow() time.Duration { return m.duplicateWindow }

// RatePerSecond returns the platform call rate for batch moderation.
func (m ModerationConfig) RatePerSecond() float64 { return m.ratePerSecond }

// Burst returns the rate limiter burst size.
func (m ModerationConfig) Burst() int { return m.burst }

// QueueLimit returns the maximum size of the moderation queue.
func (m ModerationConfig) QueueLimit() int { return m.queueLimit }

// ReviewLimit returns the maximum size of the manual review list.
func (m ModerationConfig) ReviewLimit() int { return m.reviewLimit }

// MinReviewSeverity returns the minimum toxicity severity for review listing.
func (m ModerationConfig) MinReviewSeverity() float64 { return m.minReviewSeverity }

// AutoModerate returns whether flagged comments are enforced as they are
// processed instead of waiting for the queue.
func (m ModerationConfig) AutoModerate() bool { return m.autoModerate }

// SweepEnabled returns whether the background moderation sweeper runs.
func (m ModerationConfig) SweepEnabled() bool { return m.sweepEnabled }

// SweepInterval returns how often the moderation sweeper runs.
func (m ModerationConfig) SweepInterval() time.Duration { return m.sweepInterval }

// WithDuplicateWindow returns a new config with the specified window.
func (m ModerationConfig) WithDuplicateWindow(d time.Duration) ModerationConfig {
	if d > 0 {
		m.duplicateWindow = d
	}
	return m
}

// WithRatePerSecond returns a new config with the specified call rate.
func (m ModerationConfig) WithRatePerSecond(r float64) ModerationConfig {
	if r > 0 {
		m.ratePerSecond = r
	}
	return m
}

// WithBurst returns a new config with the specified burst size.
func (m ModerationConfig) WithBurst(n int) ModerationConfig {
	if n > 0 {
		m.burst = n
	}
	return m
}

// WithQueueLimit returns a new config with the specified queue limit.
func (m ModerationConfig) WithQueueLimit(n int) ModerationConfig {
	if n > 0 {
		m.queueLimit = n
	}
	return m
}

// WithReviewLimit returns a new config with the specified review limit.
func (m ModerationConfig) WithReviewLimit(n int) ModerationConfig {
	if n > 0 {
		m.reviewLimit = n
	}
	return m
}

// WithMinReviewSeverity returns a new config with the specified severity floor.
func (m ModerationConfig) WithMinReviewSeverity(s float64) ModerationConfig {
	if s > 0 {
		m.minReviewSeverity = s
	}
	return m
}

// WithAutoModerate returns a new config with immediate enforcement toggled.
func (m ModerationConfig) WithAutoModerate(enabled bool) ModerationConfig {
	m.autoModerate = enabled
	return m
}

// WithSweepEnabled returns a new config with the sweeper toggled.
func (m ModerationConfig) WithSweepEnabled(enabled bool) ModerationConfig {
	m.sweepEnabled = enabled
	return m
}

// WithSweepInterval returns a new config with the specified sweep interval.
func (m ModerationConfig) WithSweepInterval(d time.Duration) ModerationConfig {
	if d > 0 {
		m.sweepInterval = d
	}
	return m
}

// AppConfig holds the main application configuration.
type AppConfig struct {
	host              string
	port              int
	dbURL             string
	logLevel          string
	logFormat         LogFormat
	apiKeys           []string
	embeddingEndpoint *Endpoint
	chatEndpoint      *Endpoint
	platform          PlatformConfig
	retrieval         RetrievalConfig
	moderation        ModerationConfig
}

// DefaultLogger returns the default slog logger for library consumers.
func DefaultLogger() *slog.Logger {
	return slog.Default()
}

// NewAppConfig creates a new AppConfig with defaults.
func NewAppConfig() AppConfig {
	return AppConfig{
		host:       DefaultHost,
		port:       DefaultPort,
		dbURL:      DefaultDBURL,
		logLevel:   DefaultLogLevel,
		logFormat:  LogFormatPretty,
		apiKeys:    []string{},
		platform:   NewPlatformConfig(),
		retrieval:  NewRetrievalConfig(),
		moderation: NewModerationConfig(),
	}
}

// Host returns the server host to bind to.
func (c AppConfig) Host() string { return c.host }

// Port returns the server port to listen on.
func (c AppConfig) Port() int { return c.port }

// Addr returns the combined host:port address.
func (c AppConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.host, c.port)
}

// DBURL returns the database connection URL.
func (c AppConfig) DBURL() string { return c.dbURL }

// LogLevel returns the log level.
func (c AppConfig) LogLevel() string { return c.logLevel }

// LogFormat returns the log format.
func (c AppConfig) LogFormat() LogFormat { return c.logFormat }

// APIKeys returns the configured API keys.
func (c AppConfig) APIKeys() []string {
	keys := make([]string, len(c.apiKeys))
	copy(keys, c.apiKeys)
	return keys
}

// EmbeddingEndpoint returns the embedding endpoint config.
func (c AppConfig) EmbeddingEndpoint() *Endpoint { return c.embeddingEndpoint }

// ChatEndpoint returns the chat completion endpoint config.
func (c AppConfig) ChatEndpoint() *Endpoint { return c.chatEndpoint }

// Platform returns the platform config.
func (c AppConfig) Platform() PlatformConfig { return c.platform }

// Retrieval returns the retrieval config.
func (c AppConfig) Retrieval() RetrievalConfig { return c.retrieval }

// Moderation returns the moderation config.
func (c AppConfig) Moderation() ModerationConfig { return c.moderation }

// AppConfigOption is a functional option for AppConfig.
type AppConfigOption func(*AppConfig)

// WithHost sets the server host.
func WithHost(host string) AppConfigOption {
	return func(c *AppConfig) { c.host = host }
}

// WithPort sets the server port.
func WithPort(port int) AppConfigOption {
	return func(c *AppConfig) { c.port = port }
}

// WithDBURL sets the database URL.
func WithDBURL(url string) AppConfigOption {
	return func(c *AppConfig) { c.dbURL = url }
}

// WithLogLevel sets the log level.
func WithLogLevel(level string) AppConfigOption {
	return func(c *AppConfig) { c.logLevel = level }
}

// WithLogFormat sets the log format.
func WithLogFormat(format LogFormat) AppConfigOption {
	return func(c *AppConfig) { c.logFormat = format }
}

// WithAPIKeys sets the API keys.
func WithAPIKeys(keys []string) AppConfigOption {
	return func(c *AppConfig) {
		c.apiKeys = make([]string, len(keys))
		copy(c.apiKeys, keys)
	}
}

// WithEmbeddingEndpoint sets the embedding endpoint.
func WithEmbeddingEndpoint(e Endpoint) AppConfigOption {
	return func(c *AppConfig) { c.embeddingEndpoint = &e }
}

// WithChatEndpoint sets the chat completion endpoint.
func WithChatEndpoint(e Endpoint) AppConfigOption {
	return func(c *AppConfig) { c.chatEndpoint = &e }
}

// WithPlatformConfig sets the platform config.
func WithPlatformConfig(p PlatformConfig) AppConfigOption {
	return func(c *AppConfig) { c.platform = p }
}

// WithRetrievalConfig sets the retrieval config.
func WithRetrievalConfig(r RetrievalConfig) AppConfigOption {
	return func(c *AppConfig) { c.retrieval = r }
}

// WithModerationConfig sets the moderation config.
func WithModerationConfig(m ModerationConfig) AppConfigOption {
	return func(c *AppConfig) { c.moderation = m }
}

// NewAppConfigWithOptions creates an AppConfig with functional options.
func NewAppConfigWithOptions(opts ...AppConfigOption) AppConfig {
	c := NewAppConfig()
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Apply returns a new AppConfig with the given options applied.
// This copies all fields from the receiver and then applies the options,
// making it safe to use when adding new fields to AppConfig.
func (c AppConfig) Apply(opts ...AppConfigOption) AppConfig {
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// LogAttrs returns slog attributes for logging the configuration.
// Sensitive values like API keys are masked or shown as counts.
func (c AppConfig) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.String("log_level", c.logLevel),
		slog.String("db_url", c.maskedDBURL()),
		slog.String("embedding_base_url", c.endpointBaseURL(c.embeddingEndpoint)),
		slog.String("embedding_model", c.endpointModel(c.embeddingEndpoint)),
		slog.String("chat_base_url", c.endpointBaseURL(c.chatEndpoint)),
		slog.String("chat_model", c.endpointModel(c.chatEndpoint)),
		slog.Int("api_keys_count", len(c.apiKeys)),
		slog.Bool("platform_configured", c.platform.IsConfigured()),
		slog.Int("retrieval_top_k", c.retrieval.TopK()),
		slog.Duration("knowledge_ttl", c.retrieval.CacheTTL()),
		slog.Duration("duplicate_window", c.moderation.DuplicateWindow()),
	}
}

func (c AppConfig) maskedDBURL() string {
	if c.dbURL == "" {
		return "(default)"
	}
	if len(c.dbURL) >= 7 && c.dbURL[:7] == "sqlite:" {
		return c.dbURL
	}
	return "postgres://***@***"
}

func (c AppConfig) endpointBaseURL(e *Endpoint) string {
	if e == nil {
		return "(not configured)"
	}
	return e.BaseURL()
}

func (c AppConfig) endpointModel(e *Endpoint) string {
	if e == nil {
		return "(not configured)"
	}
	return e.Model()
}

// ParseAPIKeys parses a comma-separated string of API keys.
func ParseAPIKeys(s string) []string {
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	keys := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			keys = append(keys, trimmed)
		}
	}
	return keys
}
