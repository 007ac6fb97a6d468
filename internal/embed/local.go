package embed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// DefaultEmbedTimeout is the per-call timeout for remote embedding
// requests (spec §5: "default 120s for embeddings; configurable").
const DefaultEmbedTimeout = 120 * time.Second

// RemoteProvider calls an externally-hosted embedding endpoint over HTTP.
// The endpoint's model and dimensionality are configured by the caller;
// this provider owns no model process of its own.
type RemoteProvider struct {
	endpoint   string
	dimensions int
	client     *http.Client
}

// NewRemoteProvider builds a provider against endpoint (e.g.
// "http://127.0.0.1:8421"), reporting dimensions for callers that size
// vector-store columns ahead of the first Embed call.
func NewRemoteProvider(endpoint string, dimensions int, timeout time.Duration) *RemoteProvider {
	if timeout <= 0 {
		timeout = DefaultEmbedTimeout
	}
	return &RemoteProvider{
		endpoint:   endpoint,
		dimensions: dimensions,
		client:     &http.Client{Timeout: timeout},
	}
}

// newLocalProvider wires a RemoteProvider from factory Config for the
// "http" provider kind.
func newLocalProvider(endpoint string, dimensions int, timeout time.Duration) (*RemoteProvider, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("embed: endpoint is required for the http provider")
	}
	return NewRemoteProvider(endpoint, dimensions, timeout), nil
}

// embedRequest represents the JSON request body for the /embed endpoint.
type embedRequest struct {
	Texts []string `json:"texts"`
	Mode  string   `json:"mode"` // "query" or "passage"
}

// embedResponse represents the JSON response from the /embed endpoint.
type embedResponse struct {
	Embeddings [][]float32 `json:"embeddings"`
}

// Embed converts a slice of text strings into their vector representations
// by POSTing to the configured endpoint's /embed route.
func (p *RemoteProvider) Embed(ctx context.Context, texts []string, mode EmbedMode) ([][]float32, error) {
	reqBody := embedRequest{
		Texts: texts,
		Mode:  string(mode),
	}
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshaling embed request: %w", err)
	}

	url := p.endpoint + "/embed"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("building embed request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("embedding request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("embedding server returned status %d", resp.StatusCode)
	}

	var embedResp embedResponse
	if err := json.NewDecoder(resp.Body).Decode(&embedResp); err != nil {
		return nil, fmt.Errorf("decoding embed response: %w", err)
	}
	if len(embedResp.Embeddings) != len(texts) {
		return nil, fmt.Errorf("embedding server returned %d vectors for %d texts", len(embedResp.Embeddings), len(texts))
	}

	return embedResp.Embeddings, nil
}

// Dimensions returns the dimensionality this provider was configured with.
func (p *RemoteProvider) Dimensions() int {
	return p.dimensions
}

// Close is a no-op: RemoteProvider owns no subprocess or connection pool
// beyond the stdlib http.Client's idle connections.
func (p *RemoteProvider) Close() error {
	return nil
}
