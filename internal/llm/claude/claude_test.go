package claude

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ariel-frischer/autochangelog/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RequiresAPIKey(t *testing.T) {
	t.Parallel()
	_, err := New(llm.ModelConfig{})
	require.Error(t, err)
}

func TestCallAPI(t *testing.T) {
	t.Parallel()

	var got messagesRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, messagesPath, r.URL.Path)
		assert.Equal(t, "key", r.Header.Get(apiKeyHeaderKey))
		assert.Equal(t, apiVersion, r.Header.Get(apiVersionKey))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "msg_1",
			"type": "message",
			"model": "claude-test",
			"content": [{"type": "text", "text": "  ## [1.0.0] - May 2024  "}, {"type": "tool_use"}],
			"usage": {"input_tokens": 12, "output_tokens": 30}
		}`))
	}))
	defer srv.Close()

	agent, err := New(llm.ModelConfig{APIKey: "key", URL: srv.URL + "/"})
	require.NoError(t, err)

	resp, err := agent.CallAPI(context.Background(), llm.Request{
		Prompt:       "user prompt",
		SystemPrompt: "system prompt",
		MaxTokens:    100,
		Temperature:  0.1,
	})
	require.NoError(t, err)

	assert.Equal(t, defaultModel, got.Model)
	assert.Equal(t, "system prompt", got.System)
	assert.Equal(t, 100, got.MaxTokens)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "user", got.Messages[0].Role)
	assert.Equal(t, "user prompt", got.Messages[0].Content)

	assert.Equal(t, "## [1.0.0] - May 2024", resp.Content)
	assert.Equal(t, "claude-test", resp.Model)
	assert.Equal(t, 42, resp.TotalTokens)
}

func TestCallAPI_EmptyContent(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": "msg_1", "content": []}`))
	}))
	defer srv.Close()

	agent, err := New(llm.ModelConfig{APIKey: "key", URL: srv.URL})
	require.NoError(t, err)

	_, err = agent.CallAPI(context.Background(), llm.Request{Prompt: "p"})
	require.Error(t, err)
}
