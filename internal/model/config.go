package model

import "time"

// Config is the full runtime configuration tree
type Config struct {
	LLM      LLMConfig      `yaml:"llm"`
	Cache    CacheConfig    `yaml:"cache"`
	Batch    BatchConfig    `yaml:"batch"`
	Selector SelectorConfig `yaml:"selector"`
	Output   OutputConfig   `yaml:"output"`
}

// LLMConfig configures the external reasoning provider
type LLMConfig struct {
	// Provider name: "openai", "ollama"
	Provider string `yaml:"provider"`

	// Model name (provider-specific)
	Model string `yaml:"model"`

	// APIKey for OpenAI-compatible endpoints
	APIKey string `yaml:"-"`

	// BaseURL for custom endpoints (e.g., Ollama, proxies)
	BaseURL string `yaml:"base_url"`

	// Timeout per API request, in seconds
	Timeout int `yaml:"timeout"`

	// MaxTokens limits response length
	MaxTokens int `yaml:"max_tokens"`

	// Proxy settings for providers using raw HTTP
	HTTPProxy  string `yaml:"http_proxy"`
	HTTPSProxy string `yaml:"https_proxy"`
	NoProxy    string `yaml:"no_proxy"`
}

// CacheConfig configures the layered model-response cache
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Dir       string        `yaml:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl"`
}

// BatchConfig configures batch processing and API pacing
type BatchConfig struct {
	// Concurrency is the number of parallel workers. The default of 1
	// keeps items strictly sequential; each item's tree is independent,
	// so higher values are safe.
	Concurrency int `yaml:"concurrency"`

	// RequestsPerSecond caps the rate of external model calls
	RequestsPerSecond float64 `yaml:"requests_per_second"`

	// Burst for the rate limiter
	Burst int `yaml:"burst"`

	// CallDelay is an extra pause between batch items, for APIs whose
	// limits are stricter than the advertised rate
	CallDelay time.Duration `yaml:"call_delay"`
}

// SelectorConfig configures grounding selection
type SelectorConfig struct {
	// Mode: "llm" asks the model per candidate, "heuristic" uses the
	// deterministic keyword tables
	Mode string `yaml:"mode"`
}

// OutputConfig configures report rendering
type OutputConfig struct {
	Verbose       bool `yaml:"verbose"`
	IncludeFooter bool `yaml:"include_footer"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider:  "",
			Model:     "",
			Timeout:   60,
			MaxTokens: 2000,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       "", // resolved to ~/.planassay/cache at startup
			MemoryTTL: 30 * time.Minute,
			DiskTTL:   7 * 24 * time.Hour,
		},
		Batch: BatchConfig{
			Concurrency:       1,
			RequestsPerSecond: 1,
			Burst:             2,
			CallDelay:         0,
		},
		Selector: SelectorConfig{
			Mode: "llm",
		},
		Output: OutputConfig{
			Verbose:       false,
			IncludeFooter: true,
		},
	}
}
