package chat

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dtnitsch/yt-summarizer/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(url string) *Client {
	cfg := models.DefaultConfig().Chat
	cfg.Endpoint = url
	return NewClient(cfg)
}

func TestComplete_RequestShape(t *testing.T) {
	var got completionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &got))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"## Summary"}}]}`))
	}))
	defer srv.Close()

	summary, err := newTestClient(srv.URL).Complete(context.Background(), "sk-test", "the prompt")
	require.NoError(t, err)
	assert.Equal(t, "## Summary", summary)

	assert.Equal(t, completionRequest{
		Model: "deepseek-chat",
		Messages: []message{
			{Role: "system", Content: "You are a helpful assistant."},
			{Role: "user", Content: "the prompt"},
		},
		Stream: false,
	}, got)
}

func TestComplete_Responses(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		want       string
		wantStatus int
		wantErrMsg string
	}{
		{name: "content", status: 200, body: `{"choices":[{"message":{"content":"hi"}}]}`, want: "hi"},
		{name: "no choices", status: 200, body: `{"choices":[]}`, want: NoResponseText},
		{name: "empty content", status: 200, body: `{"choices":[{"message":{"content":""}}]}`, want: NoResponseText},
		{name: "unauthorized", status: 401, body: "Unauthorized", wantStatus: 401, wantErrMsg: "401 Unauthorized"},
		{name: "server error", status: 503, body: `{"error":"busy"}`, wantStatus: 503, wantErrMsg: `503 {"error":"busy"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			got, err := newTestClient(srv.URL).Complete(context.Background(), "k", "p")
			if tt.wantStatus != 0 {
				var apiErr *APIError
				require.True(t, errors.As(err, &apiErr), "error = %v", err)
				assert.Equal(t, tt.wantStatus, apiErr.StatusCode)
				assert.Equal(t, tt.wantErrMsg, err.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestComplete_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Complete(context.Background(), "k", "p")
	assert.Error(t, err)
}

func TestComplete_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := newTestClient(url).Complete(context.Background(), "k", "p")
	require.Error(t, err)
	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
}
