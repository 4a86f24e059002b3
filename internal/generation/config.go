package generation

import (
	"slices"
	"time"

	"github.com/ariel-frischer/autochangelog/internal/build"
	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/lang"
)

const (
	defaultTemperature = 0.1
	defaultMaxTokens   = 4000
	defaultTimeout     = 120 * time.Second
)

// AgentType represents the text-generation backend.
type AgentType string

const (
	Claude AgentType = "claude"
	OpenAI AgentType = "openai"
	Gemini AgentType = "gemini"
)

var supportedAgentTypes = []AgentType{Claude, OpenAI, Gemini}

// SupportedAgentTypes returns the accepted agent types.
func SupportedAgentTypes() []AgentType {
	return slices.Clone(supportedAgentTypes)
}

// Config represents the generation client configuration.
type Config struct {
	Type        AgentType     `koanf:"type" yaml:"type"` // claude, openai, gemini
	APIKey      string        `koanf:"api_key" yaml:"api_key"`
	Model       string        `koanf:"model" yaml:"model"`
	Temperature *float32      `koanf:"temperature" yaml:"temperature"` // nil means the default; 0 is kept
	MaxTokens   int           `koanf:"max_tokens" yaml:"max_tokens"`
	BaseURL     string        `koanf:"base_url" yaml:"base_url"` // Custom API endpoint (Azure OpenAI, local models, etc.)
	ProxyURL    string        `koanf:"proxy_url" yaml:"proxy_url"`
	Timeout     time.Duration `koanf:"timeout" yaml:"timeout"`
	UserAgent   string        `koanf:"user_agent" yaml:"user_agent"`
}

// PrepareAndValidate checks required fields and fills in defaults.
func (c *Config) PrepareAndValidate() error {
	c.Type = lang.Check(c.Type, Claude)
	if !slices.Contains(supportedAgentTypes, c.Type) {
		return errm.Errorf("invalid agent type: %s", c.Type)
	}
	if c.APIKey == "" {
		return errm.Errorf("api key is required for agent %s", c.Type)
	}

	if c.Temperature == nil {
		c.Temperature = lang.Ptr[float32](defaultTemperature)
	}
	c.MaxTokens = lang.Check(c.MaxTokens, defaultMaxTokens)
	c.Timeout = lang.Check(c.Timeout, defaultTimeout)
	c.UserAgent = lang.Check(c.UserAgent, build.UserAgent())

	return nil
}

// temperature returns the sampling temperature, falling back to the default
// for configs that skipped PrepareAndValidate.
func (c Config) temperature() float32 {
	if c.Temperature == nil {
		return defaultTemperature
	}
	return *c.Temperature
}
