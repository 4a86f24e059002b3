// Package claude calls Anthropic's Messages API.
package claude

import (
	"context"
	"strings"
	"time"

	"github.com/ariel-frischer/autochangelog/internal/llm"
	"github.com/maxbolgarin/cliex"
	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/lang"
)

const (
	defaultModel    = "claude-3-5-sonnet-latest"
	defaultBaseURL  = "https://api.anthropic.com"
	messagesPath    = "/v1/messages"
	apiVersion      = "2023-06-01"
	apiVersionKey   = "anthropic-version"
	apiKeyHeaderKey = "x-api-key"
)

var _ llm.API = (*Agent)(nil)

// Agent implements llm.API using the Claude Messages API.
type Agent struct {
	cfg llm.ModelConfig
	cli *cliex.HTTP
}

// New creates a Claude backend.
func New(cfg llm.ModelConfig) (*Agent, error) {
	if cfg.APIKey == "" {
		return nil, errm.New("Claude API key is required")
	}
	cfg.Model = lang.Check(cfg.Model, defaultModel)
	cfg.URL = strings.TrimSuffix(lang.Check(cfg.URL, defaultBaseURL), "/")

	cli, err := cliex.NewWithConfig(cliex.Config{
		BaseURL:        cfg.URL,
		UserAgent:      cfg.UserAgent,
		ProxyAddress:   cfg.ProxyURL,
		RequestTimeout: cfg.Timeout,
	})
	if err != nil {
		return nil, errm.Wrap(err, "failed to create HTTP client")
	}
	cli.C().SetHeader(apiKeyHeaderKey, cfg.APIKey)
	cli.C().SetHeader(apiVersionKey, apiVersion)

	return &Agent{cfg: cfg, cli: cli}, nil
}

// CallAPI sends one user message and returns the concatenated text blocks.
func (a *Agent) CallAPI(ctx context.Context, req llm.Request) (llm.Response, error) {
	reqBody := messagesRequest{
		Model:       a.cfg.Model,
		System:      req.SystemPrompt,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
		Messages: []message{
			{
				Role:    "user",
				Content: req.Prompt,
			},
		},
	}

	var respBody messagesResponse
	if _, err := a.cli.Post(ctx, messagesPath, reqBody, &respBody); err != nil {
		return llm.Response{}, errm.Wrap(err, "failed to make API request")
	}

	if respBody.Error != nil {
		return llm.Response{}, errm.Errorf("Claude API error: %s", respBody.Error.Message)
	}

	if len(respBody.Content) == 0 {
		return llm.Response{}, errm.New("no content in response")
	}

	var text strings.Builder
	for _, c := range respBody.Content {
		if c.Type == "text" {
			text.WriteString(c.Text)
		}
	}

	return llm.Response{
		CreateTime:       time.Now(),
		Content:          strings.TrimSpace(text.String()),
		Model:            lang.Check(respBody.Model, a.cfg.Model),
		PromptTokens:     respBody.Usage.InputTokens,
		CompletionTokens: respBody.Usage.OutputTokens,
		TotalTokens:      respBody.Usage.InputTokens + respBody.Usage.OutputTokens,
	}, nil
}
