package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akorzun/planassay/internal/decompose"
	"github.com/akorzun/planassay/internal/llm"
	"github.com/akorzun/planassay/internal/model"
	"github.com/akorzun/planassay/internal/selector"
)

type stubClassifier struct {
	results []model.ClassificationResult
	err     error
}

func (s *stubClassifier) Classify(_ context.Context, _, _ string) ([]model.ClassificationResult, error) {
	return s.results, s.err
}

type stubDecider struct {
	byDim map[string][]model.SelectedGrounding
}

func (s *stubDecider) Decide(_ context.Context, unit model.AssertionUnit, _ []string) ([]model.SelectedGrounding, error) {
	return s.byDim[unit.DimensionID], nil
}

type stubVerifier struct {
	results []model.VerificationResult
	err     error
}

func (s *stubVerifier) Verify(_ context.Context, _ string, _ []model.AssertionUnit) ([]model.VerificationResult, error) {
	return s.results, s.err
}

func newTestPipeline(classifier decompose.Classifier, decider selector.Decider, verifier Verifier) *Pipeline {
	engine := decompose.NewEngine(classifier, selector.New(decider, nil), nil)
	return NewWithComponents(engine, nil, verifier, nil)
}

func TestAnalyze_SuccessfulRun(t *testing.T) {
	p := newTestPipeline(
		&stubClassifier{results: []model.ClassificationResult{
			{DimensionID: "S5", Rationale: "deadline check", SubAspect: "deadline presence"},
		}},
		&stubDecider{byDim: map[string][]model.SelectedGrounding{
			"S5": {{GroundingID: "G3", Rationale: "dates involved"}},
		}},
		nil)

	report := p.Analyze(context.Background(), 0, "The plan includes task deadlines", "", nil)

	require.False(t, report.Failed())
	assert.Equal(t, model.StageIDAssigned, report.Stage)
	require.Len(t, report.Units, 2)
	assert.Equal(t, "A0000_S5", report.Units[0].AssertionID)
	assert.Equal(t, "A0000_G3_0", report.Units[1].AssertionID)
	assert.Equal(t, "A0000_S5", report.Units[1].ParentAssertionID)
	assert.Equal(t, "The plan includes task deadlines", report.Input)
}

func TestAnalyze_ClassificationFailure(t *testing.T) {
	p := newTestPipeline(
		&stubClassifier{err: &llm.ClassificationFailure{Input: "junk", Cause: errors.New("no usable response")}},
		&stubDecider{},
		nil)

	report := p.Analyze(context.Background(), 0, "junk", "", nil)

	require.True(t, report.Failed())
	assert.Equal(t, model.StageClassificationFailed, report.Stage)
	assert.Equal(t, model.FailureClassification, report.Failure.Kind)
	assert.Equal(t, "junk", report.Input, "failed reports keep the original text")
	assert.Empty(t, report.Units, "no partially populated tree on failure")
}

func TestAnalyze_InvalidSelection(t *testing.T) {
	p := newTestPipeline(
		&stubClassifier{results: []model.ClassificationResult{
			{DimensionID: "S5", Rationale: "deadline check"},
		}},
		&stubDecider{byDim: map[string][]model.SelectedGrounding{
			"S5": {{GroundingID: "G9", Rationale: "invented"}},
		}},
		nil)

	report := p.Analyze(context.Background(), 0, "The plan includes task deadlines", "", nil)

	require.True(t, report.Failed())
	assert.Equal(t, model.StageInvalidSelection, report.Stage)
	assert.Equal(t, model.FailureSelection, report.Failure.Kind)
	assert.Empty(t, report.Units)
}

func TestAnalyze_Idempotent(t *testing.T) {
	build := func() *Pipeline {
		return newTestPipeline(
			&stubClassifier{results: []model.ClassificationResult{
				{DimensionID: "S1", Rationale: "title", SubAspect: "title stated"},
				{DimensionID: "S3", Rationale: "date", SubAspect: "date stated"},
			}},
			&stubDecider{byDim: map[string][]model.SelectedGrounding{
				"S1": {{GroundingID: "G1", Rationale: "title accuracy"}},
				"S3": {{GroundingID: "G3", Rationale: "date accuracy"}},
			}},
			nil)
	}

	scn := &model.Scenario{Title: "Launch Review", Date: "2026-09-14"}
	first := build().Analyze(context.Background(), 0, "The plan states the title and date", "", scn)
	second := build().Analyze(context.Background(), 0, "The plan states the title and date", "", scn)

	require.False(t, first.Failed())
	assert.Equal(t, first.Units, second.Units, "same input + scenario + deterministic stubs must reproduce the tree")
}

func TestAnalyze_BindsScenarioValues(t *testing.T) {
	p := newTestPipeline(
		&stubClassifier{results: []model.ClassificationResult{
			{DimensionID: "S5", Rationale: "deadline check"},
		}},
		&stubDecider{byDim: map[string][]model.SelectedGrounding{
			"S5": {{GroundingID: "G3", Rationale: "dates involved"}},
		}},
		nil)

	scn := &model.Scenario{Title: "Launch Review", Date: "2026-09-14"}
	report := p.Analyze(context.Background(), 0, "The plan includes task deadlines", "", scn)

	require.False(t, report.Failed())
	assert.Equal(t, model.StageIDAssigned, report.Stage)
	for _, u := range report.Units {
		assert.Contains(t, u.InstantiatedText, "2026-09-14",
			"unit %s must carry the scenario date after binding", u.AssertionID)
		assert.Contains(t, u.SlotTypesUsed, "DUE_DATE")
	}
}

func TestVerify_AttachesResults(t *testing.T) {
	p := newTestPipeline(
		&stubClassifier{results: []model.ClassificationResult{
			{DimensionID: "S5", Rationale: "deadline check"},
		}},
		&stubDecider{byDim: map[string][]model.SelectedGrounding{
			"S5": {{GroundingID: "G3", Rationale: "dates"}},
		}},
		&stubVerifier{results: []model.VerificationResult{
			{AssertionID: "A0000_S5", Status: model.VerificationPass, Evidence: "deadlines listed"},
			{AssertionID: "A0000_G3_0", Status: model.VerificationFail, Evidence: "date mismatch"},
		}})

	report := p.Analyze(context.Background(), 0, "The plan includes task deadlines", "", nil)
	require.False(t, report.Failed())

	require.NoError(t, p.Verify(context.Background(), "plan text", report))
	assert.Equal(t, model.StageVerified, report.Stage)

	require.NotNil(t, report.Units[0].Verification)
	assert.Equal(t, model.VerificationPass, report.Units[0].Verification.Status)
	require.NotNil(t, report.Units[1].Verification)
	assert.Equal(t, model.VerificationFail, report.Units[1].Verification.Status)
}

func TestVerify_SkipsFailedReport(t *testing.T) {
	p := newTestPipeline(&stubClassifier{}, &stubDecider{}, &stubVerifier{err: errors.New("should not be called")})

	report := &model.Report{
		Stage:   model.StageClassificationFailed,
		Failure: &model.Failure{Kind: model.FailureClassification, Message: "x"},
	}

	require.NoError(t, p.Verify(context.Background(), "plan", report))
}
