package ingestion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/spec-kit/document-service/internal/config"
)

// Client talks to the external ingestion backend. Payloads are opaque to
// this service; responses are passed through as raw JSON.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a client for the configured backend.
func NewClient(cfg config.IngestionConfig) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.Timeout()},
	}
}

type triggerRequest struct {
	DocumentID string `json:"documentId"`
}

// Trigger starts ingestion for a document.
func (c *Client) Trigger(ctx context.Context, documentID string) (json.RawMessage, error) {
	body, err := json.Marshal(triggerRequest{DocumentID: documentID})
	if err != nil {
		return nil, err
	}
	return c.do(ctx, http.MethodPost, "/ingest/start", bytes.NewReader(body))
}

// Status fetches the ingestion status for an ingestion id.
func (c *Client) Status(ctx context.Context, id string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, "/ingest/status/"+id, nil)
}

// History fetches the ingestion history.
func (c *Client) History(ctx context.Context) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, "/ingest/history", nil)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("ingestion backend returned %d", resp.StatusCode)
	}
	return json.RawMessage(payload), nil
}
