// Package openai calls the OpenAI Chat Completions API or any compatible
// endpoint (Azure OpenAI, local model servers) through a custom base URL.
package openai

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
	defaultModel   = "gpt-4o-mini"
	defaultBaseURL = "https://api.openai.com/v1"
	completionPath = "/chat/completions"
)

var _ llm.API = (*Agent)(nil)

// Agent implements llm.API using the Chat Completions API.
type Agent struct {
	cli *cliex.HTTP
	cfg llm.ModelConfig
}

// New creates an OpenAI backend.
func New(cfg llm.ModelConfig) (*Agent, error) {
	if cfg.APIKey == "" {
		return nil, errm.New("OpenAI API key is required")
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
	cli.C().SetAuthToken(cfg.APIKey)

	return &Agent{cli: cli, cfg: cfg}, nil
}

// CallAPI sends the system and user messages and returns the first choice.
func (a *Agent) CallAPI(ctx context.Context, req llm.Request) (llm.Response, error) {
	messages := make([]message, 0, 2)
	if req.SystemPrompt != "" {
		messages = append(messages, message{Role: "system", Content: req.SystemPrompt})
	}
	messages = append(messages, message{Role: "user", Content: req.Prompt})

	reqBody := chatCompletionRequest{
		Model:       a.cfg.Model,
		Messages:    messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}

	var respBody chatCompletionResponse
	if _, err := a.cli.Post(ctx, completionPath, reqBody, &respBody); err != nil {
		return llm.Response{}, errm.Wrap(err, "failed to make API request")
	}

	if respBody.Error != nil {
		return llm.Response{}, errm.Errorf("OpenAI API error: %s", respBody.Error.Message)
	}

	var content string
	if len(respBody.Choices) > 0 {
		content = strings.TrimSpace(respBody.Choices[0].Message.Content)
	}

	return llm.Response{
		CreateTime:       time.Unix(respBody.Created, 0),
		Content:          content,
		Model:            lang.Check(respBody.Model, a.cfg.Model),
		PromptTokens:     respBody.Usage.PromptTokens,
		CompletionTokens: respBody.Usage.CompletionTokens,
		TotalTokens:      respBody.Usage.TotalTokens,
	}, nil
}
