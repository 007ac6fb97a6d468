package embed

import (
	"fmt"
	"time"
)

// Config contains configuration for creating an embedding provider.
type Config struct {
	// Provider specifies which embedding provider to use ("http", "mock").
	Provider string

	// Endpoint is the base URL of the remote embedding service (for the
	// "http" provider), e.g. "http://127.0.0.1:8421".
	Endpoint string

	// Dimensions is the vector width the remote endpoint produces. Callers
	// need this ahead of the first Embed call to size vector-store columns.
	Dimensions int

	// Timeout bounds a single Embed call. Zero uses DefaultEmbedTimeout.
	Timeout time.Duration

	// Model name (future: for provider-specific model selection)
	Model string
}

// NewProvider creates an embedding provider based on the configuration.
// Currently supports "http" and "mock" providers. Future: OpenAI, Anthropic, etc.
func NewProvider(config Config) (Embedder, error) {
	switch config.Provider {
	case "http", "": // empty defaults to http
		return newLocalProvider(config.Endpoint, config.Dimensions, config.Timeout)

	case "mock": // for testing
		return newMockProvider(), nil

	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s (supported: http, mock)", config.Provider)
	}
}
