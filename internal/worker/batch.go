package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/akorzun/planassay/internal/model"
)

// Analyzer runs the full pipeline for one input assertion
type Analyzer interface {
	Analyze(ctx context.Context, batchIndex int, text, meetingCtx string, scn *model.Scenario) *model.Report
	RunID() string
}

// AnalyzeJob is one batch line to analyze
type AnalyzeJob struct {
	Index    int
	Text     string
	Context  string
	Scenario *model.Scenario
	Analyzer Analyzer
	Limiter  *Limiter
}

// Execute waits for rate-limit clearance and runs the analysis
func (j *AnalyzeJob) Execute(ctx context.Context) Result {
	if j.Limiter != nil {
		if err := j.Limiter.Wait(ctx); err != nil {
			return &AnalyzeResult{Index: j.Index, Err: err}
		}
	}
	return &AnalyzeResult{
		Index:  j.Index,
		Report: j.Analyzer.Analyze(ctx, j.Index, j.Text, j.Context, j.Scenario),
	}
}

// AnalyzeResult is the outcome of one batch line
type AnalyzeResult struct {
	Index  int
	Report *model.Report
	Err    error
}

// GetError returns the job-level error (cancellation); per-input analysis
// failures live inside the report instead
func (r *AnalyzeResult) GetError() error {
	return r.Err
}

// BatchProcessor runs a set of assertions through the pipeline
type BatchProcessor struct {
	analyzer    Analyzer
	limiter     *Limiter
	concurrency int
}

// NewBatchProcessor creates a batch processor
func NewBatchProcessor(analyzer Analyzer, limiter *Limiter, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		analyzer:    analyzer,
		limiter:     limiter,
		concurrency: concurrency,
	}
}

// Process analyzes all inputs and returns results ordered by batch index
func (b *BatchProcessor) Process(ctx context.Context, inputs []string, meetingCtx string, scn *model.Scenario) []*AnalyzeResult {
	if len(inputs) == 0 {
		return []*AnalyzeResult{}
	}

	pool := NewPool(b.concurrency, len(inputs))
	pool.Start()

	go func() {
		<-ctx.Done()
		pool.Shutdown()
	}()

	for i, text := range inputs {
		pool.Submit(&AnalyzeJob{
			Index:    i,
			Text:     text,
			Context:  meetingCtx,
			Scenario: scn,
			Analyzer: b.analyzer,
			Limiter:  b.limiter,
		})
	}

	results := pool.Wait()

	out := make([]*AnalyzeResult, 0, len(results))
	for _, r := range results {
		out = append(out, r.(*AnalyzeResult))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })

	return out
}

// ReadAssertionsFromFile reads newline-delimited assertion texts. Blank
// lines and lines starting with '#' are skipped; duplicate lines are kept
// because each line gets its own batch index.
func ReadAssertionsFromFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var assertions []string

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		assertions = append(assertions, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return assertions, nil
}

// Summarize aggregates batch results into the run summary
func Summarize(runID string, startedAt time.Time, results []*AnalyzeResult) *model.BatchSummary {
	summary := &model.BatchSummary{
		RunID:          runID,
		StartedAt:      startedAt,
		Duration:       time.Since(startedAt),
		Total:          len(results),
		FailuresByKind: make(map[string]int),
		DimensionHits:  make(map[string]int),
	}

	var pass, fail int
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
			summary.FailuresByKind[string(model.FailureInternal)]++
			continue
		}

		report := r.Report
		if report.Failed() {
			summary.Failed++
			summary.FailuresByKind[string(report.Failure.Kind)]++
			summary.FailedInputs = append(summary.FailedInputs, model.FailedInput{
				BatchIndex: report.BatchIndex,
				Input:      report.Input,
				Kind:       report.Failure.Kind,
				Message:    report.Failure.Message,
			})
			continue
		}

		summary.Succeeded++
		summary.TotalUnits += len(report.Units)
		for _, u := range report.Units {
			summary.DimensionHits[u.DimensionID]++
			if u.Verification != nil {
				if u.Verification.Status == model.VerificationPass {
					pass++
				} else {
					fail++
				}
			}
		}
	}

	if pass+fail > 0 {
		summary.Verification = &model.VerificationTotals{Pass: pass, Fail: fail}
	}

	if len(summary.FailuresByKind) == 0 {
		summary.FailuresByKind = nil
	}

	return summary
}
