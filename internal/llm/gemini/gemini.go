// Package gemini calls Google's Gemini API through the genai SDK.
package gemini

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/ariel-frischer/autochangelog/internal/llm"
	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/lang"
	"google.golang.org/genai"
)

const defaultModel = "gemini-2.5-flash"

var _ llm.API = (*Agent)(nil)

// Agent implements llm.API for Google Gemini.
type Agent struct {
	client *genai.Client
	cfg    llm.ModelConfig
}

// New creates a Gemini backend.
func New(ctx context.Context, cfg llm.ModelConfig) (*Agent, error) {
	if cfg.APIKey == "" {
		return nil, errm.New("Gemini API key is required")
	}
	cfg.Model = lang.Check(cfg.Model, defaultModel)

	transport := &http.Transport{Proxy: http.ProxyFromEnvironment}
	if cfg.ProxyURL != "" {
		proxyURL, err := url.Parse(cfg.ProxyURL)
		if err != nil {
			return nil, errm.Wrap(err, "failed to parse proxy URL")
		}
		transport.Proxy = http.ProxyURL(proxyURL)
	}

	clientCfg := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
		HTTPClient: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
		},
	}
	if cfg.URL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.URL}
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, errm.Wrap(err, "failed to create Gemini client")
	}

	return &Agent{client: client, cfg: cfg}, nil
}

// CallAPI generates content from the first candidate.
func (a *Agent) CallAPI(ctx context.Context, req llm.Request) (llm.Response, error) {
	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "text/plain",
		Temperature:      &req.Temperature,
		MaxOutputTokens:  int32(req.MaxTokens),
	}
	if req.SystemPrompt != "" {
		config.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: req.SystemPrompt}}}
	}

	result, err := a.client.Models.GenerateContent(ctx,
		a.cfg.Model,
		[]*genai.Content{{Role: genai.RoleUser, Parts: []*genai.Part{{Text: req.Prompt}}}},
		config,
	)
	if err != nil {
		return llm.Response{}, handleAPIError(err)
	}

	out := llm.Response{
		CreateTime: result.CreateTime,
		Content:    strings.TrimSpace(result.Text()),
		Model:      lang.Check(result.ModelVersion, a.cfg.Model),
	}
	if result.UsageMetadata != nil {
		out.PromptTokens = int(result.UsageMetadata.PromptTokenCount)
		out.CompletionTokens = int(result.UsageMetadata.CandidatesTokenCount)
		out.TotalTokens = int(result.UsageMetadata.TotalTokenCount)
	}

	return out, nil
}

// handleAPIError maps transport failures to short, actionable errors.
func handleAPIError(err error) error {
	errStr := err.Error()

	switch {
	case strings.Contains(errStr, "location is not supported"):
		return errm.New("region not supported by Gemini API")
	case strings.Contains(errStr, "429"):
		return errm.Wrap(err, "rate limit exceeded")
	case strings.Contains(errStr, "401") || strings.Contains(errStr, "403"):
		return errm.Wrap(err, "authentication failed")
	case strings.Contains(errStr, "503"):
		return errm.Wrap(err, "Gemini API service unavailable")
	default:
		return errm.Wrap(err, "Gemini API error")
	}
}
