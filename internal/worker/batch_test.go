package worker

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/akorzun/planassay/internal/model"
)

// fakeAnalyzer produces canned reports keyed by input text
type fakeAnalyzer struct {
	fail map[string]model.FailureKind
}

func (f *fakeAnalyzer) RunID() string { return "test-run" }

func (f *fakeAnalyzer) Analyze(_ context.Context, batchIndex int, text, _ string, _ *model.Scenario) *model.Report {
	report := &model.Report{
		RunID:      "test-run",
		BatchIndex: batchIndex,
		Input:      text,
		Stage:      model.StageIDAssigned,
	}
	if kind, ok := f.fail[text]; ok {
		report.Stage = model.StageClassificationFailed
		report.Failure = &model.Failure{Kind: kind, Message: "stubbed failure"}
		return report
	}
	report.Units = []model.AssertionUnit{
		{AssertionID: "A0000_S5", DimensionID: "S5", Layer: model.LayerStructural},
		{AssertionID: "A0000_G3_0", ParentAssertionID: "A0000_S5", DimensionID: "G3", Layer: model.LayerGrounding},
	}
	return report
}

func TestReadAssertionsFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "assertions.txt")

	content := `# header comment
The plan includes task deadlines

The plan lists all attendees
# another comment
  The plan states the meeting title
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	assertions, err := ReadAssertionsFromFile(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}

	if len(assertions) != 3 {
		t.Fatalf("expected 3 assertions, got %d: %v", len(assertions), assertions)
	}
	if assertions[0] != "The plan includes task deadlines" {
		t.Errorf("unexpected first assertion: %q", assertions[0])
	}
	if assertions[2] != "The plan states the meeting title" {
		t.Errorf("expected trimmed assertion, got %q", assertions[2])
	}
}

func TestReadAssertionsFromFile_Missing(t *testing.T) {
	_, err := ReadAssertionsFromFile("/nonexistent/file.txt")
	if err == nil {
		t.Error("expected error for missing file")
	}
}

func TestBatchProcessor_OrderedResults(t *testing.T) {
	processor := NewBatchProcessor(&fakeAnalyzer{}, nil, 4)

	inputs := []string{"a", "b", "c", "d", "e"}
	results := processor.Process(context.Background(), inputs, "", nil)

	if len(results) != len(inputs) {
		t.Fatalf("expected %d results, got %d", len(inputs), len(results))
	}
	for i, r := range results {
		if r.Index != i {
			t.Errorf("result %d has index %d", i, r.Index)
		}
		if r.Report.Input != inputs[i] {
			t.Errorf("result %d: expected input %q, got %q", i, inputs[i], r.Report.Input)
		}
	}
}

func TestBatchProcessor_BatchLargerThanQueues(t *testing.T) {
	// All jobs are submitted before any result is drained, so a batch much
	// larger than the worker count must not wedge on channel capacity
	processor := NewBatchProcessor(&fakeAnalyzer{}, nil, 1)

	inputs := make([]string, 20)
	for i := range inputs {
		inputs[i] = fmt.Sprintf("assertion %d", i)
	}

	done := make(chan []*AnalyzeResult, 1)
	go func() {
		done <- processor.Process(context.Background(), inputs, "", nil)
	}()

	select {
	case results := <-done:
		if len(results) != len(inputs) {
			t.Fatalf("expected %d results, got %d", len(inputs), len(results))
		}
		for i, r := range results {
			if r.Index != i {
				t.Errorf("result %d has index %d", i, r.Index)
			}
		}
	case <-time.After(5 * time.Second):
		t.Fatal("batch stalled: result collection blocked behind submission")
	}
}

func TestBatchProcessor_Empty(t *testing.T) {
	processor := NewBatchProcessor(&fakeAnalyzer{}, nil, 2)

	results := processor.Process(context.Background(), nil, "", nil)
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}

func TestBatchProcessor_FailuresDoNotAbortBatch(t *testing.T) {
	analyzer := &fakeAnalyzer{fail: map[string]model.FailureKind{
		"bad input": model.FailureClassification,
	}}
	processor := NewBatchProcessor(analyzer, nil, 1)

	results := processor.Process(context.Background(), []string{"good", "bad input", "also good"}, "", nil)

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if !results[1].Report.Failed() {
		t.Error("expected middle input to fail")
	}
	if results[0].Report.Failed() || results[2].Report.Failed() {
		t.Error("failure must not affect other inputs")
	}
}

func TestSummarize(t *testing.T) {
	analyzer := &fakeAnalyzer{fail: map[string]model.FailureKind{
		"bad": model.FailureClassification,
	}}
	processor := NewBatchProcessor(analyzer, nil, 1)

	results := processor.Process(context.Background(), []string{"good one", "bad", "good two"}, "", nil)
	summary := Summarize("test-run", time.Now().Add(-time.Second), results)

	if summary.Total != 3 {
		t.Errorf("expected total 3, got %d", summary.Total)
	}
	if summary.Succeeded != 2 {
		t.Errorf("expected 2 succeeded, got %d", summary.Succeeded)
	}
	if summary.Failed != 1 {
		t.Errorf("expected 1 failed, got %d", summary.Failed)
	}
	if summary.TotalUnits != 4 {
		t.Errorf("expected 4 units, got %d", summary.TotalUnits)
	}
	if summary.DimensionHits["S5"] != 2 || summary.DimensionHits["G3"] != 2 {
		t.Errorf("unexpected dimension hits: %v", summary.DimensionHits)
	}
	if summary.FailuresByKind[string(model.FailureClassification)] != 1 {
		t.Errorf("unexpected failure kinds: %v", summary.FailuresByKind)
	}
	if len(summary.FailedInputs) != 1 || summary.FailedInputs[0].Input != "bad" {
		t.Errorf("failed inputs must keep original text: %+v", summary.FailedInputs)
	}
	if summary.Duration <= 0 {
		t.Error("expected positive duration")
	}
}

func TestSummarize_Verification(t *testing.T) {
	pass := model.VerificationResult{Status: model.VerificationPass}
	fail := model.VerificationResult{Status: model.VerificationFail}

	results := []*AnalyzeResult{{
		Index: 0,
		Report: &model.Report{
			Stage: model.StageVerified,
			Units: []model.AssertionUnit{
				{AssertionID: "A0000_S5", DimensionID: "S5", Verification: &pass},
				{AssertionID: "A0000_G3_0", DimensionID: "G3", Verification: &fail},
			},
		},
	}}

	summary := Summarize("run", time.Now(), results)
	if summary.Verification == nil {
		t.Fatal("expected verification totals")
	}
	if summary.Verification.Pass != 1 || summary.Verification.Fail != 1 {
		t.Errorf("unexpected totals: %+v", summary.Verification)
	}
}
