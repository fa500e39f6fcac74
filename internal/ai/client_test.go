package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mailmate/internal/logger"
)

func newTestClient(provider string, handler http.Handler) (*aiClient, *httptest.Server) {
	server := httptest.NewServer(handler)
	return &aiClient{
		provider:   provider,
		apiKey:     "test-key",
		baseURL:    server.URL,
		model:      getModel(provider),
		httpClient: server.Client(),
		logger:     logger.New(),
	}, server
}

// longText returns a body over the minimum summarization length.
func longText() string {
	return strings.Repeat("The quarterly report is attached for your review. ", 4)
}

func TestSummarizeEmptyTextSkipsProvider(t *testing.T) {
	client, server := newTestClient(ProviderHuggingFace, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("provider should not be called for empty text")
	}))
	defer server.Close()

	summary, err := client.Summarize(context.Background(), "   \n ")
	require.NoError(t, err)
	assert.Equal(t, "", summary)
}

func TestSummarizeShortTextReturnedVerbatim(t *testing.T) {
	client, server := newTestClient(ProviderHuggingFace, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("provider should not be called for short text")
	}))
	defer server.Close()

	short := "Lunch at noon?"
	summary, err := client.Summarize(context.Background(), short)
	require.NoError(t, err)
	assert.Equal(t, short, summary)
}

func TestSummarizeHuggingFaceRequest(t *testing.T) {
	var received hfSummarizeRequest
	client, server := newTestClient(ProviderHuggingFace, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "/models/sshleifer/distilbart-cnn-12-6", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.Write([]byte(`[{"summary_text":" A short summary. "}]`))
	}))
	defer server.Close()

	summary, err := client.Summarize(context.Background(), longText())
	require.NoError(t, err)
	assert.Equal(t, "A short summary.", summary)
	assert.Equal(t, 150, received.Parameters.MaxLength)
	assert.Equal(t, 30, received.Parameters.MinLength)
	assert.False(t, received.Parameters.DoSample)
}

func TestSummarizeTruncatesOnRuneBoundary(t *testing.T) {
	var received hfSummarizeRequest
	client, server := newTestClient(ProviderHuggingFace, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.Write([]byte(`[{"summary_text":"ok"}]`))
	}))
	defer server.Close()

	// Three-byte runes force the byte cap to land mid-character.
	_, err := client.Summarize(context.Background(), strings.Repeat("€", 400))
	require.NoError(t, err)

	assert.LessOrEqual(t, len(received.Inputs), maxInputChars)
	assert.True(t, utf8.ValidString(received.Inputs))
}

func TestSummarizeProviderError(t *testing.T) {
	client, server := newTestClient(ProviderHuggingFace, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model loading", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := client.Summarize(context.Background(), longText())
	assert.Error(t, err)
}

func TestSummarizeOpenAIProvider(t *testing.T) {
	client, server := newTestClient(ProviderOpenAI, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		var req chatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-4o-mini", req.Model)
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"A summary."}}]}`))
	}))
	defer server.Close()

	summary, err := client.Summarize(context.Background(), longText())
	require.NoError(t, err)
	assert.Equal(t, "A summary.", summary)
}
