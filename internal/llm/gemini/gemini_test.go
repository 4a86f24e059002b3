package gemini

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ariel-frischer/autochangelog/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RequiresAPIKey(t *testing.T) {
	t.Parallel()
	_, err := New(context.Background(), llm.ModelConfig{})
	require.Error(t, err)
}

func TestNew_InvalidProxy(t *testing.T) {
	t.Parallel()
	_, err := New(context.Background(), llm.ModelConfig{APIKey: "key", ProxyURL: "://bad"})
	require.Error(t, err)
}

func TestCallAPI(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/models/"+defaultModel+":generateContent"), r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"candidates": [{"content": {"role": "model", "parts": [{"text": "## [2.0.0] - June 2024\n"}]}}],
			"usageMetadata": {"promptTokenCount": 7, "candidatesTokenCount": 9, "totalTokenCount": 16},
			"modelVersion": "gemini-test"
		}`))
	}))
	defer srv.Close()

	agent, err := New(context.Background(), llm.ModelConfig{APIKey: "key", URL: srv.URL + "/"})
	require.NoError(t, err)

	resp, err := agent.CallAPI(context.Background(), llm.Request{Prompt: "p", SystemPrompt: "s", MaxTokens: 50})
	require.NoError(t, err)

	assert.Equal(t, "## [2.0.0] - June 2024", resp.Content)
	assert.Equal(t, "gemini-test", resp.Model)
	assert.Equal(t, 16, resp.TotalTokens)
}

func TestHandleAPIError(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		err  string
		want string
	}{
		"region":      {err: "User location is not supported", want: "region not supported"},
		"rate limit":  {err: "Error 429, quota", want: "rate limit exceeded"},
		"auth":        {err: "Error 403, forbidden", want: "authentication failed"},
		"unavailable": {err: "Error 503", want: "service unavailable"},
		"other":       {err: "boom", want: "Gemini API error"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got := handleAPIError(errors.New(tt.err))
			assert.Contains(t, got.Error(), tt.want)
		})
	}
}
