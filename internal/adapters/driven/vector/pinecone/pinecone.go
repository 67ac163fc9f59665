// Package pinecone provides a vector index adapter backed by a Pinecone
// serverless index, accessed over its REST data-plane API.
package pinecone

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/meridian-labs/stratagem-cli/internal/core/domain"
	"github.com/meridian-labs/stratagem-cli/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// DefaultTimeout is the default request timeout.
const DefaultTimeout = 30 * time.Second

// Config holds configuration for the Pinecone index.
type Config struct {
	// Host is the index data-plane host, e.g.
	// https://my-index-abc123.svc.us-east-1-aws.pinecone.io (required).
	Host string

	// APIKey is the Pinecone API key (required).
	APIKey string

	// Timeout is the request timeout (default: 30s).
	Timeout time.Duration
}

// Index talks to a single Pinecone index.
type Index struct {
	client *http.Client
	host   string
	apiKey string
}

type pineconeVector struct {
	ID       string         `json:"id"`
	Values   []float32      `json:"values"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

type upsertRequest struct {
	Vectors []pineconeVector `json:"vectors"`
}

type queryRequest struct {
	Vector          []float32      `json:"vector"`
	TopK            int            `json:"topK"`
	Filter          map[string]any `json:"filter,omitempty"`
	IncludeMetadata bool           `json:"includeMetadata"`
}

type queryResponse struct {
	Matches []struct {
		ID       string         `json:"id"`
		Score    float64        `json:"score"`
		Metadata map[string]any `json:"metadata"`
	} `json:"matches"`
}

type deleteRequest struct {
	Filter    map[string]any `json:"filter,omitempty"`
	DeleteAll bool           `json:"deleteAll,omitempty"`
}

type statsResponse struct {
	TotalVectorCount int `json:"totalVectorCount"`
}

// NewIndex creates a Pinecone index adapter.
func NewIndex(cfg Config) (*Index, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("pinecone: host is required")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("pinecone: API key is required")
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Index{
		client: &http.Client{Timeout: cfg.Timeout},
		host:   cfg.Host,
		apiKey: cfg.APIKey,
	}, nil
}

// Upsert writes the records to the index.
func (i *Index) Upsert(ctx context.Context, records []domain.EmbeddingRecord) error {
	if len(records) == 0 {
		return nil
	}

	vectors := make([]pineconeVector, 0, len(records))
	for _, r := range records {
		vectors = append(vectors, pineconeVector{
			ID:     r.ID,
			Values: r.Vector,
			Metadata: map[string]any{
				"document_id": r.DocumentID,
				"filename":    r.Filename,
				"label":       string(r.Label),
				"seq":         r.Seq,
				"text":        r.Text,
			},
		})
	}

	var resp json.RawMessage
	return i.post(ctx, "/vectors/upsert", upsertRequest{Vectors: vectors}, &resp)
}

// Query returns the topK nearest records, restricted by filter.
func (i *Index) Query(ctx context.Context, vector []float32, topK int, filter driven.Filter) ([]driven.VectorMatch, error) {
	if topK <= 0 {
		return nil, nil
	}

	req := queryRequest{
		Vector:          vector,
		TopK:            topK,
		Filter:          metadataFilter(filter),
		IncludeMetadata: true,
	}

	var resp queryResponse
	if err := i.post(ctx, "/query", req, &resp); err != nil {
		return nil, err
	}

	matches := make([]driven.VectorMatch, 0, len(resp.Matches))
	for _, m := range resp.Matches {
		matches = append(matches, driven.VectorMatch{
			ID:         m.ID,
			Score:      m.Score,
			DocumentID: metaString(m.Metadata, "document_id"),
			Filename:   metaString(m.Metadata, "filename"),
			Label:      domain.Label(metaString(m.Metadata, "label")),
			Seq:        metaInt(m.Metadata, "seq"),
			Text:       metaString(m.Metadata, "text"),
		})
	}
	return matches, nil
}

// Delete removes records matching the filter. An empty filter deletes
// everything in the index.
func (i *Index) Delete(ctx context.Context, filter driven.Filter) error {
	req := deleteRequest{Filter: metadataFilter(filter)}
	if req.Filter == nil {
		req.DeleteAll = true
	}

	var resp json.RawMessage
	return i.post(ctx, "/vectors/delete", req, &resp)
}

// Count reports the total number of vectors in the index.
func (i *Index) Count(ctx context.Context) (int, error) {
	var resp statsResponse
	if err := i.post(ctx, "/describe_index_stats", struct{}{}, &resp); err != nil {
		return 0, err
	}
	return resp.TotalVectorCount, nil
}

// Close releases resources.
func (i *Index) Close() error {
	return nil
}

func (i *Index) post(ctx context.Context, path string, body, out any) error {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, i.host+path, bytes.NewReader(jsonBody))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Api-Key", i.apiKey)

	resp, err := i.client.Do(req)
	if err != nil {
		return providerErr(true, fmt.Errorf("send request: %w", err))
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return providerErr(true, fmt.Errorf("read response: %w", err))
	}

	if resp.StatusCode != http.StatusOK {
		return providerErr(retryableStatus(resp.StatusCode), fmt.Errorf("%s: status %d: %s", path, resp.StatusCode, string(respBody)))
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return providerErr(false, fmt.Errorf("decode response: %w", err))
	}
	return nil
}

// metadataFilter converts a filter to Pinecone's $eq metadata syntax.
// Returns nil when the filter is empty.
func metadataFilter(f driven.Filter) map[string]any {
	conds := map[string]any{}
	if f.DocumentID != "" {
		conds["document_id"] = map[string]any{"$eq": f.DocumentID}
	}
	if f.Label != "" {
		conds["label"] = map[string]any{"$eq": string(f.Label)}
	}
	if len(conds) == 0 {
		return nil
	}
	return conds
}

func metaString(m map[string]any, key string) string {
	if s, ok := m[key].(string); ok {
		return s
	}
	return ""
}

func metaInt(m map[string]any, key string) int {
	// Pinecone returns numeric metadata as float64.
	if f, ok := m[key].(float64); ok {
		return int(f)
	}
	return 0
}

func retryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= 500
}

func providerErr(retryable bool, err error) error {
	return &domain.ProviderError{Provider: "vector", Retryable: retryable, Err: err}
}
