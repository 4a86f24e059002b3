// Package llm defines the request and response types shared by the
// text-generation backends in its subpackages.
package llm

import (
	"context"
	"time"
)

// ModelConfig represents backend-specific configuration.
type ModelConfig struct {
	APIKey    string
	Model     string
	URL       string
	ProxyURL  string
	UserAgent string
	Timeout   time.Duration
}

// Request represents a single generation request.
type Request struct {
	Prompt       string
	SystemPrompt string
	MaxTokens    int
	Temperature  float32
}

// Response represents a generation response.
type Response struct {
	CreateTime       time.Time
	Content          string
	Model            string
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// API is implemented by every generation backend.
type API interface {
	CallAPI(ctx context.Context, req Request) (Response, error)
}
