package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/akorzun/planassay/internal/pipeline"
	"github.com/akorzun/planassay/internal/worker"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
	callDelay    time.Duration
	callRate     float64
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Analyze multiple assertions from a file",
	Long: `Batch reads newline-delimited assertion texts (lines starting with '#'
are ignored), analyzes each one, and writes per-input reports plus a run
summary with per-dimension hit rates.

Items run sequentially by default, paced to respect the model API's rate
limits. Each input's assertion tree is independent, so --concurrency can
raise parallelism safely.

Example:
  planassay batch assertions.txt
  planassay batch assertions.txt --output-dir ./reports --delay 2s
  planassay batch assertions.txt --scenario meeting.json --selector heuristic`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", 1, "number of concurrent workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./planassay-reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 30*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().DurationVar(&callDelay, "delay", 0, "extra delay between items (rate-limit headroom)")
	batchCmd.Flags().Float64Var(&callRate, "rps", 1, "max model calls per second")

	addLLMFlags(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	cfg.Batch.Concurrency = concurrency
	cfg.Batch.CallDelay = callDelay
	cfg.Batch.RequestsPerSecond = callRate

	scn, err := loadScenario(scenarioPath)
	if err != nil {
		return err
	}

	assertions, err := worker.ReadAssertionsFromFile(file)
	if err != nil {
		return err
	}
	if len(assertions) == 0 {
		return fmt.Errorf("no assertions found in %s", file)
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	logger := newLogger()
	defer func() { _ = logger.Sync() }()

	p, err := pipeline.New(cfg, logger)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  planassay Batch Analysis\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Input file:   %s (%d assertions)\n", file, len(assertions))
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", concurrency)
	fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "  Provider:     %s\n", cfg.LLM.Provider)
	fmt.Fprintf(os.Stderr, "  Selector:     %s\n", cfg.Selector.Mode)
	fmt.Fprintf(os.Stderr, "\n")

	limiter := worker.NewLimiter(cfg.Batch.RequestsPerSecond, cfg.Batch.Burst, cfg.Batch.CallDelay)
	processor := worker.NewBatchProcessor(p, limiter, cfg.Batch.Concurrency)

	startedAt := time.Now().UTC()
	results := processor.Process(ctx, assertions, meetingCtx, scn)

	renderer := pipeline.NewRenderer(cfg.Output.IncludeFooter)
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(os.Stderr, "✗ [%04d] aborted: %v\n", r.Index, r.Err)
			continue
		}
		path := filepath.Join(outputDir, fmt.Sprintf("assertion_%04d.json", r.Index))
		if err := renderer.RenderJSON(r.Report, path); err != nil {
			return err
		}
		if r.Report.Failed() {
			fmt.Fprintf(os.Stderr, "✗ [%04d] %s: %s\n", r.Index, r.Report.Failure.Kind, r.Report.Input)
		} else if verbose {
			fmt.Fprintf(os.Stderr, "✓ [%04d] %d unit(s): %s\n", r.Index, len(r.Report.Units), r.Report.Input)
		}
	}

	summary := worker.Summarize(p.RunID(), startedAt, results)
	if err := renderer.RenderJSON(summary, filepath.Join(outputDir, "summary.json")); err != nil {
		return err
	}
	if err := renderer.RenderBatchSummaryMarkdown(summary, filepath.Join(outputDir, "summary.md")); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "\n  Done: %d succeeded, %d failed, %d units\n\n",
		summary.Succeeded, summary.Failed, summary.TotalUnits)

	return nil
}
