// Package generation turns a rendered prompt into generated text through one
// of the llm backends.
package generation

import (
	"context"
	"time"

	"github.com/ariel-frischer/autochangelog/internal/llm"
	"github.com/ariel-frischer/autochangelog/internal/llm/claude"
	"github.com/ariel-frischer/autochangelog/internal/llm/gemini"
	"github.com/ariel-frischer/autochangelog/internal/llm/openai"
	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/logze/v2"
)

// Generator performs single generation requests. It never retries.
type Generator struct {
	cfg Config
	api llm.API
	log logze.Logger
}

// New validates cfg and creates a Generator for the configured backend.
func New(ctx context.Context, cfg Config) (*Generator, error) {
	if err := cfg.PrepareAndValidate(); err != nil {
		return nil, errm.Wrap(err, "validate config")
	}

	modelCfg := llm.ModelConfig{
		APIKey:    cfg.APIKey,
		Model:     cfg.Model,
		URL:       cfg.BaseURL,
		ProxyURL:  cfg.ProxyURL,
		UserAgent: cfg.UserAgent,
		Timeout:   cfg.Timeout,
	}

	var (
		api llm.API
		err error
	)
	switch cfg.Type {
	case Claude:
		api, err = claude.New(modelCfg)
	case OpenAI:
		api, err = openai.New(modelCfg)
	case Gemini:
		api, err = gemini.New(ctx, modelCfg)
	default:
		return nil, errm.Errorf("unsupported agent type: %s", cfg.Type)
	}
	if err != nil {
		return nil, errm.Wrap(err, "failed to create agent")
	}

	return NewWithAPI(cfg, api), nil
}

// NewWithAPI creates a Generator around an existing backend.
func NewWithAPI(cfg Config, api llm.API) *Generator {
	return &Generator{
		cfg: cfg,
		api: api,
		log: logze.With("component", "generation", "agent", string(cfg.Type)),
	}
}

// Generate sends one request and returns the raw generated text. The request
// is bounded by the configured timeout.
func (g *Generator) Generate(ctx context.Context, system, user string) (string, error) {
	if g.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.cfg.Timeout)
		defer cancel()
	}

	start := time.Now()
	g.log.Debug("sending generation request", "prompt_bytes", len(user), "max_tokens", g.cfg.MaxTokens)

	resp, err := g.api.CallAPI(ctx, llm.Request{
		Prompt:       user,
		SystemPrompt: system,
		MaxTokens:    g.cfg.MaxTokens,
		Temperature:  g.cfg.temperature(),
	})
	if err != nil {
		return "", errm.Wrap(err, "failed to call API")
	}

	g.log.Info("generation finished",
		"model", resp.Model,
		"prompt_tokens", resp.PromptTokens,
		"completion_tokens", resp.CompletionTokens,
		"duration", time.Since(start).Round(time.Millisecond).String(),
	)

	return resp.Content, nil
}
