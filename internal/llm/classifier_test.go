package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/akorzun/planassay/internal/model"
	"github.com/akorzun/planassay/internal/taxonomy"
)

// stubClient returns a canned completion
type stubClient struct {
	text string
	err  error
}

func (s *stubClient) Name() string { return "stub" }

func (s *stubClient) Complete(_ context.Context, _ CompletionRequest) (*CompletionResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &CompletionResponse{Text: s.text, Model: "stub-model"}, nil
}

func (s *stubClient) IsAvailable(_ context.Context) bool { return true }

func TestClassify_SingleDimension(t *testing.T) {
	c := NewClassifier(&stubClient{text: `[
		{"dimension_id": "S5", "level": "critical", "weight": 3,
		 "sub_aspect": "deadline presence", "rationale": "mentions deadlines"}
	]`}, nil)

	results, err := c.Classify(context.Background(), "The plan includes task deadlines", "")
	if err != nil {
		t.Fatalf("classify failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].DimensionID != "S5" {
		t.Errorf("expected S5, got %s", results[0].DimensionID)
	}
	if results[0].Level != model.LevelCritical {
		t.Errorf("expected critical level, got %s", results[0].Level)
	}
	if results[0].Weight != 3 {
		t.Errorf("expected weight 3, got %d", results[0].Weight)
	}
}

func TestClassify_CompoundAssertion(t *testing.T) {
	c := NewClassifier(&stubClient{text: "```json\n" + `[
		{"dimension_id": "S1", "sub_aspect": "title stated", "rationale": "title part"},
		{"dimension_id": "S3", "sub_aspect": "date stated", "rationale": "date part"}
	]` + "\n```"}, nil)

	results, err := c.Classify(context.Background(), "The plan states the title and date", "")
	if err != nil {
		t.Fatalf("classify failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].SubAspect != "title stated" || results[1].SubAspect != "date stated" {
		t.Errorf("sub-aspects not preserved: %+v", results)
	}
}

func TestClassify_ProviderError(t *testing.T) {
	c := NewClassifier(&stubClient{err: errors.New("connection refused")}, nil)

	_, err := c.Classify(context.Background(), "anything", "")
	var cf *ClassificationFailure
	if !errors.As(err, &cf) {
		t.Fatalf("expected ClassificationFailure, got %v", err)
	}
	if cf.Input != "anything" {
		t.Errorf("failure must carry the input, got %q", cf.Input)
	}
}

func TestClassify_UnparseableResponse(t *testing.T) {
	c := NewClassifier(&stubClient{text: "I refuse to answer in JSON."}, nil)

	_, err := c.Classify(context.Background(), "anything", "")
	var cf *ClassificationFailure
	if !errors.As(err, &cf) {
		t.Fatalf("expected ClassificationFailure, got %v", err)
	}
}

func TestClassify_EmptyArray(t *testing.T) {
	c := NewClassifier(&stubClient{text: `[]`}, nil)

	_, err := c.Classify(context.Background(), "unclassifiable noise", "")
	var cf *ClassificationFailure
	if !errors.As(err, &cf) {
		t.Fatalf("expected ClassificationFailure for empty assignment, got %v", err)
	}
}

func TestClassify_UnknownDimension(t *testing.T) {
	c := NewClassifier(&stubClient{text: `[{"dimension_id": "S99", "rationale": "invented"}]`}, nil)

	_, err := c.Classify(context.Background(), "anything", "")
	var cf *ClassificationFailure
	if !errors.As(err, &cf) {
		t.Fatalf("expected ClassificationFailure, got %v", err)
	}
	var unknown *taxonomy.UnknownDimensionError
	if !errors.As(err, &unknown) {
		t.Errorf("cause must be UnknownDimensionError, got %v", cf.Cause)
	}
}

func TestClassify_RejectsGroundingDimension(t *testing.T) {
	c := NewClassifier(&stubClient{text: `[{"dimension_id": "G3", "rationale": "temporal"}]`}, nil)

	_, err := c.Classify(context.Background(), "anything", "")
	var cf *ClassificationFailure
	if !errors.As(err, &cf) {
		t.Fatalf("expected ClassificationFailure for grounding dimension, got %v", err)
	}
}

func TestClassify_RejectsEmptyRationale(t *testing.T) {
	c := NewClassifier(&stubClient{text: `[{"dimension_id": "S5", "rationale": "  "}]`}, nil)

	_, err := c.Classify(context.Background(), "anything", "")
	var cf *ClassificationFailure
	if !errors.As(err, &cf) {
		t.Fatalf("expected ClassificationFailure for blank rationale, got %v", err)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected model.Level
	}{
		{"critical", model.LevelCritical},
		{" Expected ", model.LevelExpected},
		{"ASPIRATIONAL", model.LevelAspirational},
		{"unknown", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.input); got != tt.expected {
			t.Errorf("parseLevel(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}
