// Package pipeline orchestrates the per-assertion analysis:
// classification, grounding selection, decomposition, id assignment, and
// optional verification.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/akorzun/planassay/internal/cache"
	"github.com/akorzun/planassay/internal/decompose"
	"github.com/akorzun/planassay/internal/llm"
	"github.com/akorzun/planassay/internal/model"
	"github.com/akorzun/planassay/internal/record"
	"github.com/akorzun/planassay/internal/selector"
	"github.com/akorzun/planassay/internal/taxonomy"
)

// ScenarioGenerator synthesizes a reference scenario when none is supplied
type ScenarioGenerator interface {
	Generate(ctx context.Context, text, meetingCtx string) (*model.Scenario, error)
}

// Verifier checks assertion units against a plan document
type Verifier interface {
	Verify(ctx context.Context, planText string, units []model.AssertionUnit) ([]model.VerificationResult, error)
}

// Pipeline runs the full analysis for one input assertion at a time. It
// holds no per-input state: each run is idempotent-from-scratch given the
// same input text and reference scenario.
type Pipeline struct {
	engine      *decompose.Engine
	scenarioGen ScenarioGenerator
	verifier    Verifier
	runID       string
	logger      *zap.Logger
	config      *model.Config
}

// New wires a pipeline from configuration: provider client, response
// cache, capabilities, and the selection decider for the configured mode.
func New(cfg *model.Config, logger *zap.Logger) (*Pipeline, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	client, err := llm.NewClient(llm.ConfigFromModel(cfg.LLM), logger)
	if err != nil {
		return nil, fmt.Errorf("create LLM client: %w", err)
	}
	if client == nil {
		return nil, fmt.Errorf("no LLM provider configured (classification requires one)")
	}

	if cfg.Cache.Enabled && cfg.Cache.Dir != "" {
		store := cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
		client = llm.NewCachedClient(client, store, cfg.Cache.DiskTTL, logger)
	}

	var decider selector.Decider
	switch cfg.Selector.Mode {
	case "", "llm":
		decider = llm.NewSelectionDecider(client, logger)
	case "heuristic":
		decider = selector.NewHeuristic()
	default:
		return nil, fmt.Errorf("unknown selector mode: %s (supported: llm, heuristic)", cfg.Selector.Mode)
	}

	classifier := llm.NewClassifier(client, logger)
	sel := selector.New(decider, logger)

	return &Pipeline{
		engine:      decompose.NewEngine(classifier, sel, logger),
		scenarioGen: llm.NewScenarioGenerator(client, logger),
		verifier:    llm.NewVerifier(client, logger),
		runID:       uuid.NewString(),
		logger:      logger,
		config:      cfg,
	}, nil
}

// NewWithComponents wires a pipeline from explicit components; tests use
// this with deterministic stubs.
func NewWithComponents(engine *decompose.Engine, scenarioGen ScenarioGenerator, verifier Verifier, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		engine:      engine,
		scenarioGen: scenarioGen,
		verifier:    verifier,
		runID:       uuid.NewString(),
		logger:      logger,
	}
}

// RunID identifies this pipeline's batch run
func (p *Pipeline) RunID() string {
	return p.runID
}

// Analyze runs one input through the state machine. Errors never escape:
// a failed input yields a report in a terminal failure state carrying the
// original text and failure kind, never a partially populated tree.
func (p *Pipeline) Analyze(ctx context.Context, batchIndex int, text, meetingCtx string, scn *model.Scenario) *model.Report {
	report := &model.Report{
		RunID:      p.runID,
		BatchIndex: batchIndex,
		Input:      text,
		Context:    meetingCtx,
		AnalyzedAt: time.Now().UTC(),
		Stage:      model.StageReceived,
	}

	if scn == nil && p.scenarioGen != nil {
		generated, err := p.scenarioGen.Generate(ctx, text, meetingCtx)
		if err != nil {
			// Scenario synthesis failing means grounding templates stay
			// unbound; that is survivable, so analysis continues
			p.logger.Warn("scenario generation failed",
				zap.Int("batch_index", batchIndex),
				zap.Error(err))
		} else {
			scn = generated
		}
	}
	report.Scenario = scn

	classifications, err := p.engine.Classify(ctx, text, meetingCtx)
	if err != nil {
		return p.fail(report, err)
	}
	report.Stage = model.StageClassified

	trees, err := p.engine.Link(ctx, text, classifications)
	if err != nil {
		return p.fail(report, err)
	}
	report.Stage = model.StageGSelected

	trees = p.engine.Instantiate(trees, scn)
	report.Stage = model.StageDecomposed

	units, err := record.Build(batchIndex, trees)
	if err != nil {
		return p.fail(report, err)
	}
	report.Units = units
	report.Stage = model.StageIDAssigned

	return report
}

// Verify runs the verification capability over a report's units and
// attaches per-unit results
func (p *Pipeline) Verify(ctx context.Context, planText string, report *model.Report) error {
	if report.Failed() || len(report.Units) == 0 {
		return nil
	}

	results, err := p.verifier.Verify(ctx, planText, report.Units)
	if err != nil {
		return err
	}

	byID := make(map[string]model.VerificationResult, len(results))
	for _, r := range results {
		byID[r.AssertionID] = r
	}
	for i := range report.Units {
		if r, ok := byID[report.Units[i].AssertionID]; ok {
			res := r
			report.Units[i].Verification = &res
		}
	}

	report.Stage = model.StageVerified
	return nil
}

// fail records a terminal failure on the report, mapping the error to its
// failure kind and stage
func (p *Pipeline) fail(report *model.Report, err error) *model.Report {
	kind := model.FailureInternal
	stage := report.Stage

	var cf *llm.ClassificationFailure
	var ise *selector.InvalidSelectionError
	var ude *taxonomy.UnknownDimensionError
	var dre *record.DanglingReferenceError

	switch {
	case errors.As(err, &cf):
		kind = model.FailureClassification
		stage = model.StageClassificationFailed
	case errors.As(err, &ise):
		kind = model.FailureSelection
		stage = model.StageInvalidSelection
	case errors.As(err, &ude):
		kind = model.FailureUnknownDim
	case errors.As(err, &dre):
		kind = model.FailureInternal
	}

	p.logger.Error("analysis failed",
		zap.Int("batch_index", report.BatchIndex),
		zap.String("input", report.Input),
		zap.String("kind", string(kind)),
		zap.Error(err))

	report.Stage = stage
	report.Failure = &model.Failure{Kind: kind, Message: err.Error()}
	report.Units = nil
	return report
}
