// Package decompose splits possibly-compound assertions into atomic S+G
// unit trees, each testing exactly one fact.
package decompose

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/akorzun/planassay/internal/model"
	"github.com/akorzun/planassay/internal/taxonomy"
)

// Classifier maps free text to structural dimension assignments
type Classifier interface {
	Classify(ctx context.Context, text, meetingCtx string) ([]model.ClassificationResult, error)
}

// Selector narrows the static grounding candidates for one structural unit
type Selector interface {
	Select(ctx context.Context, unit model.AssertionUnit) ([]model.SelectedGrounding, error)
}

// Tree is one atomic assertion unit with its grounding children. Linkage
// is carried structurally here; string ids are assigned later by the
// record builder.
type Tree struct {
	Structural model.AssertionUnit
	Grounding  []model.AssertionUnit
}

// Engine is the atomic decomposition engine
type Engine struct {
	classifier Classifier
	selector   Selector
	logger     *zap.Logger
}

// NewEngine creates a decomposition engine
func NewEngine(classifier Classifier, selector Selector, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{classifier: classifier, selector: selector, logger: logger}
}

// Decompose turns one free-form assertion into independent unit trees,
// running the three phases in order: classify, link, instantiate. A
// classifier returning N>1 assignments marks the input compound: each
// assignment becomes its own structural unit keeping the full original
// text as provenance, with a distinct sub_aspect for the portion it
// covers. A single-dimension input takes exactly the same path.
func (e *Engine) Decompose(ctx context.Context, text, meetingCtx string, scn *model.Scenario) ([]Tree, error) {
	classifications, err := e.Classify(ctx, text, meetingCtx)
	if err != nil {
		return nil, err
	}

	trees, err := e.Link(ctx, text, classifications)
	if err != nil {
		return nil, err
	}

	return e.Instantiate(trees, scn), nil
}

// Classify maps the input to structural dimension assignments and drops
// exact (dimension_id, sub_aspect) duplicates
func (e *Engine) Classify(ctx context.Context, text, meetingCtx string) ([]model.ClassificationResult, error) {
	classifications, err := e.classifier.Classify(ctx, text, meetingCtx)
	if err != nil {
		return nil, err
	}
	return dedupe(classifications), nil
}

// Link builds one unit tree per classification: the structural unit plus
// the grounding children its specific wording selects. Templates ride
// along unbound until Instantiate.
func (e *Engine) Link(ctx context.Context, text string, classifications []model.ClassificationResult) ([]Tree, error) {
	trees := make([]Tree, 0, len(classifications))
	for _, cls := range classifications {
		tree, err := e.buildTree(ctx, text, cls)
		if err != nil {
			return nil, err
		}
		trees = append(trees, tree)
	}
	return trees, nil
}

// Instantiate binds every unit's template slots against the reference
// scenario. A nil scenario leaves all slot tokens in place.
func (e *Engine) Instantiate(trees []Tree, scn *model.Scenario) []Tree {
	out := make([]Tree, len(trees))
	for i, tree := range trees {
		tree.Structural = bindUnit(tree.Structural, scn)
		grounding := make([]model.AssertionUnit, len(tree.Grounding))
		for j, u := range tree.Grounding {
			grounding[j] = bindUnit(u, scn)
		}
		tree.Grounding = grounding
		out[i] = tree
	}
	return out
}

func bindUnit(u model.AssertionUnit, scn *model.Scenario) model.AssertionUnit {
	u.InstantiatedText, u.SlotTypesUsed = BindSlots(u.Template, scn)
	return u
}

func (e *Engine) buildTree(ctx context.Context, text string, cls model.ClassificationResult) (Tree, error) {
	dim, err := taxonomy.Get(cls.DimensionID)
	if err != nil {
		return Tree{}, err
	}

	structural := newUnit(dim, text)
	structural.SubAspect = cls.SubAspect
	if structural.SubAspect == "" {
		structural.SubAspect = dim.Name
	}
	structural.Rationale = cls.Rationale
	if cls.Level != "" {
		structural.Level = cls.Level
	}
	if cls.Weight >= 1 && cls.Weight <= 3 {
		structural.Weight = cls.Weight
	}

	selected, err := e.selector.Select(ctx, structural)
	if err != nil {
		return Tree{}, err
	}

	grounding := make([]model.AssertionUnit, 0, len(selected))
	for _, sel := range selected {
		gdim, err := taxonomy.Get(sel.GroundingID)
		if err != nil {
			return Tree{}, err
		}
		if gdim.Layer != model.LayerGrounding {
			return Tree{}, fmt.Errorf("dimension %s is not a grounding dimension", sel.GroundingID)
		}
		unit := newUnit(gdim, text)
		unit.SubAspect = structural.SubAspect
		unit.Rationale = sel.Rationale
		grounding = append(grounding, unit)
	}

	e.logger.Debug("decomposed assertion",
		zap.String("dimension_id", dim.ID),
		zap.String("sub_aspect", structural.SubAspect),
		zap.Int("grounding_units", len(grounding)))

	return Tree{Structural: structural, Grounding: grounding}, nil
}

// newUnit builds an unbound unit from a dimension definition; the template
// doubles as instantiated text until Instantiate binds its slots
func newUnit(dim taxonomy.Dimension, sourceText string) model.AssertionUnit {
	return model.AssertionUnit{
		DimensionID:      dim.ID,
		Layer:            dim.Layer,
		Level:            dim.DefaultLevel,
		Weight:           dim.DefaultWeight,
		Template:         dim.Template,
		InstantiatedText: dim.Template,
		SourceText:       sourceText,
	}
}

// dedupe drops redundant classifications sharing the same
// (dimension_id, sub_aspect) pair, keeping the first occurrence. The union
// of sub_aspects must still cover every testable claim in the input, so
// only exact duplicates go.
func dedupe(in []model.ClassificationResult) []model.ClassificationResult {
	type key struct {
		dim    string
		aspect string
	}
	seen := make(map[key]bool, len(in))
	out := make([]model.ClassificationResult, 0, len(in))
	for _, c := range in {
		k := key{dim: c.DimensionID, aspect: c.SubAspect}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, c)
	}
	return out
}
