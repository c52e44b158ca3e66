package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/akorzun/planassay/internal/pipeline"
)

var (
	outJSON        string
	outMD          string
	analyzeTimeout time.Duration
	batchIndex     int
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <assertion>",
	Short: "Classify and decompose a single assertion",
	Long: `Analyze runs one free-text assertion through the full pipeline:
- Classify into one or more structural dimensions (external model)
- Select the grounding dimensions the wording actually depends on
- Decompose compound assertions into atomic parent/child units
- Bind template slots against the reference scenario
- Assign stable assertion ids

Example:
  planassay analyze "The plan includes task deadlines"
  planassay analyze "The plan states the title and date" --scenario meeting.json
  planassay analyze "..." --selector heuristic --json out.json`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (optional)")
	analyzeCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	analyzeCmd.Flags().DurationVar(&analyzeTimeout, "timeout", 3*time.Minute, "overall analysis timeout")
	analyzeCmd.Flags().IntVar(&batchIndex, "batch-index", 0, "batch index used in assertion ids")

	addLLMFlags(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	text := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), analyzeTimeout)
	defer cancel()

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	scn, err := loadScenario(scenarioPath)
	if err != nil {
		return err
	}

	logger := newLogger()
	defer func() { _ = logger.Sync() }()

	p, err := pipeline.New(cfg, logger)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Analyzing: %s\n", text)
		fmt.Fprintf(os.Stderr, "Provider:  %s\n", cfg.LLM.Provider)
		fmt.Fprintf(os.Stderr, "Selector:  %s\n\n", cfg.Selector.Mode)
	}

	report := p.Analyze(ctx, batchIndex, text, meetingCtx, scn)

	renderer := pipeline.NewRenderer(cfg.Output.IncludeFooter)
	if outJSON != "" {
		if err := renderer.RenderJSON(report, outJSON); err != nil {
			return err
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote JSON: %s\n", outJSON)
		}
	}
	if outMD != "" {
		if err := renderer.RenderMarkdown(report, outMD); err != nil {
			return err
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote Markdown: %s\n", outMD)
		}
	}

	renderer.RenderSummary(report)

	if report.Failed() {
		return fmt.Errorf("analysis failed: %s", report.Failure.Message)
	}
	return nil
}
