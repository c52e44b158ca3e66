package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/akorzun/planassay/internal/model"
)

// LLM flag values shared by analyze, batch, and verify
var (
	llmProvider  string
	llmModel     string
	selectorMode string
	noCache      bool
	noFooter     bool
	scenarioPath string
	meetingCtx   string
)

// buildConfig assembles the runtime config from defaults, flags, and
// provider environment variables
func buildConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	cfg.LLM.Provider = llmProvider
	cfg.LLM.Model = llmModel
	cfg.Selector.Mode = selectorMode
	cfg.Cache.Enabled = !noCache
	cfg.Output.Verbose = verbose
	cfg.Output.IncludeFooter = !noFooter

	switch llmProvider {
	case "openai":
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.LLM.APIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "ollama":
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
			cfg.LLM.BaseURL = baseURL
		}
	}

	if cfg.Cache.Enabled && cfg.Cache.Dir == "" {
		home, err := os.UserHomeDir()
		if err == nil {
			cfg.Cache.Dir = filepath.Join(home, ".planassay", "cache")
		} else {
			cfg.Cache.Enabled = false
		}
	}

	return cfg, nil
}

// loadScenario reads a reference scenario from a JSON file; an empty path
// returns nil (the pipeline synthesizes one via the model instead)
func loadScenario(path string) (*model.Scenario, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}

	var scn model.Scenario
	if err := json.Unmarshal(data, &scn); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}

	return &scn, nil
}

// addLLMFlags registers the shared provider flags on a command
func addLLMFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, ollama)")
	cmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name (provider default if empty)")
	cmd.Flags().StringVar(&selectorMode, "selector", "llm", "grounding selector mode (llm, heuristic)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable model response cache")
	cmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
	cmd.Flags().StringVar(&scenarioPath, "scenario", "", "reference scenario JSON file (synthesized if empty)")
	cmd.Flags().StringVar(&meetingCtx, "context", "", "optional meeting context string")
}
