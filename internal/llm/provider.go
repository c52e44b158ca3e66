package llm

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/akorzun/planassay/internal/model"
)

// Client is the low-level completion interface every provider implements.
// The capability wrappers (classifier, selection decider, scenario
// generator, verifier) are built on top of it, so the rest of the system
// never sees provider-specific types.
type Client interface {
	// Name returns the provider name
	Name() string

	// Complete sends one prompt and returns the raw completion
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// CompletionRequest is one prompt for the reasoning model
type CompletionRequest struct {
	// System sets the system/instruction message
	System string

	// Prompt is the user message
	Prompt string

	// Model overrides the configured model for this request
	Model string

	// MaxTokens limits the response length
	MaxTokens int

	// Temperature; classification and selection want low values
	Temperature float32
}

// CompletionResponse is the raw model output
type CompletionResponse struct {
	Text       string
	Model      string
	TokensUsed int
}

// Config holds provider configuration
type Config struct {
	// Provider name: "openai", "ollama", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI-compatible endpoints
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout for API requests, in seconds
	Timeout int

	// MaxTokens for response generation
	MaxTokens int

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// ConfigFromModel converts model.LLMConfig to llm.Config
func ConfigFromModel(mc model.LLMConfig) Config {
	return Config{
		Provider:   mc.Provider,
		Model:      mc.Model,
		APIKey:     mc.APIKey,
		BaseURL:    mc.BaseURL,
		Timeout:    mc.Timeout,
		MaxTokens:  mc.MaxTokens,
		HTTPProxy:  mc.HTTPProxy,
		HTTPSProxy: mc.HTTPSProxy,
		NoProxy:    mc.NoProxy,
	}
}

// NewClient creates a provider client based on configuration. An empty
// provider name returns nil (LLM-backed capabilities disabled).
func NewClient(config Config, logger *zap.Logger) (Client, error) {
	switch strings.ToLower(config.Provider) {
	case "openai":
		return NewOpenAIClient(config, logger)

	case "ollama":
		return NewOllamaClient(config)

	case "":
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: openai, ollama)", config.Provider)
	}
}
