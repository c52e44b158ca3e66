package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/akorzun/planassay/internal/model"
	"github.com/akorzun/planassay/internal/pipeline"
)

var (
	assertionsPath string
	verifyOutJSON  string
	verifyOutMD    string
	verifyTimeout  time.Duration
)

// verifyCmd represents the verify command
var verifyCmd = &cobra.Command{
	Use:   "verify <plan-file>",
	Short: "Verify a plan document against an assertion report",
	Long: `Verify takes a generated workback plan document and a previously
produced assertion report, asks the external model for a pass/fail verdict
with evidence per assertion unit, and attaches the results.

Example:
  planassay verify plan.md --assertions out.json
  planassay verify plan.md --assertions out.json --json verified.json`,
	Args: cobra.ExactArgs(1),
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)

	verifyCmd.Flags().StringVar(&assertionsPath, "assertions", "", "assertion report JSON from analyze/batch (required)")
	verifyCmd.Flags().StringVar(&verifyOutJSON, "json", "", "output JSON path (defaults to overwriting the input report)")
	verifyCmd.Flags().StringVar(&verifyOutMD, "md", "", "output Markdown path (optional)")
	verifyCmd.Flags().DurationVar(&verifyTimeout, "timeout", 5*time.Minute, "verification timeout")
	_ = verifyCmd.MarkFlagRequired("assertions")

	addLLMFlags(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	planPath := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), verifyTimeout)
	defer cancel()

	planText, err := os.ReadFile(planPath)
	if err != nil {
		return fmt.Errorf("read plan: %w", err)
	}

	reportData, err := os.ReadFile(assertionsPath)
	if err != nil {
		return fmt.Errorf("read assertions: %w", err)
	}
	var report model.Report
	if err := json.Unmarshal(reportData, &report); err != nil {
		return fmt.Errorf("parse assertions: %w", err)
	}
	if report.Failed() {
		return fmt.Errorf("assertion report is a failed analysis (%s); nothing to verify", report.Failure.Kind)
	}

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	logger := newLogger()
	defer func() { _ = logger.Sync() }()

	p, err := pipeline.New(cfg, logger)
	if err != nil {
		return err
	}

	if err := p.Verify(ctx, string(planText), &report); err != nil {
		return fmt.Errorf("verify: %w", err)
	}

	outPath := verifyOutJSON
	if outPath == "" {
		outPath = assertionsPath
	}

	renderer := pipeline.NewRenderer(cfg.Output.IncludeFooter)
	if err := renderer.RenderJSON(&report, outPath); err != nil {
		return err
	}
	if verifyOutMD != "" {
		if err := renderer.RenderMarkdown(&report, verifyOutMD); err != nil {
			return err
		}
	}

	pass, fail := 0, 0
	for _, u := range report.Units {
		if u.Verification == nil {
			continue
		}
		if u.Verification.Status == model.VerificationPass {
			pass++
		} else {
			fail++
		}
	}
	fmt.Printf("\nVerified %d unit(s): %d pass, %d fail\n", pass+fail, pass, fail)

	return nil
}
