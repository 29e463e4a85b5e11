package provider

import (
	"github.com/pagepulse/pagepulse/internal/config"
)

// NewChatProviderFromEndpoint builds an OpenAI-compatible chat provider from
// endpoint configuration. Returns nil when the endpoint has no API key.
func NewChatProviderFromEndpoint(e *config.Endpoint) *OpenAIProvider {
	if e == nil || !e.IsConfigured() {
		return nil
	}
	return NewOpenAIProviderFromConfig(OpenAIConfig{
		APIKey:        e.APIKey(),
		BaseURL:       e.BaseURL(),
		ChatModel:     e.Model(),
		Timeout:       e.Timeout(),
		MaxRetries:    e.MaxRetries(),
		InitialDelay:  e.InitialDelay(),
		BackoffFactor: e.BackoffFactor(),
	})
}

// NewEmbeddingProviderFromEndpoint builds an OpenAI-compatible embedding
// provider from endpoint configuration. Returns nil when the endpoint has no
// API key.
func NewEmbeddingProviderFromEndpoint(e *config.Endpoint) *OpenAIProvider {
	if e == nil || !e.IsConfigured() {
		return nil
	}
	return NewOpenAIProviderFromConfig(OpenAIConfig{
		APIKey:         e.APIKey(),
		BaseURL:        e.BaseURL(),
		EmbeddingModel: e.Model(),
		Timeout:        e.Timeout(),
		MaxRetries:     e.MaxRetries(),
		InitialDelay:   e.InitialDelay(),
		BackoffFactor:  e.BackoffFactor(),
	})
}
