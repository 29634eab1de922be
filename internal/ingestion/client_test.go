package ingestion

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/document-service/internal/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(config.IngestionConfig{BaseURL: srv.URL, TimeoutSeconds: 5})
}

func TestTrigger_PostsDocumentID(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/ingest/start", r.URL.Path)

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.JSONEq(t, `{"documentId":"17"}`, string(body))

		w.Write([]byte(`{"ingestionId":"abc"}`))
	})

	result, err := client.Trigger(context.Background(), "17")
	require.NoError(t, err)
	require.JSONEq(t, `{"ingestionId":"abc"}`, string(result))
}

func TestStatus_PassesThroughResponse(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/ingest/status/abc", r.URL.Path)
		w.Write([]byte(`{"state":"running"}`))
	})

	result, err := client.Status(context.Background(), "abc")
	require.NoError(t, err)

	var decoded map[string]string
	require.NoError(t, json.Unmarshal(result, &decoded))
	require.Equal(t, "running", decoded["state"])
}

func TestHistory_BackendErrorSurfaces(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.History(context.Background())
	require.Error(t, err)
}

func TestTrigger_UnreachableBackend(t *testing.T) {
	client := NewClient(config.IngestionConfig{BaseURL: "http://127.0.0.1:1", TimeoutSeconds: 1})

	_, err := client.Trigger(context.Background(), "17")
	require.Error(t, err)
}
