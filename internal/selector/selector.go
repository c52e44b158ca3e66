package selector

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/akorzun/planassay/internal/model"
	"github.com/akorzun/planassay/internal/taxonomy"
)

// InvalidSelectionError means a decider chose a grounding id outside the
// static candidate set for the structural dimension. That is a contract
// violation, fatal for the input; it usually indicates a prompt/response
// mismatch worth debugging from the logged context.
type InvalidSelectionError struct {
	StructuralID string
	Selected     string
	Candidates   []string
}

func (e *InvalidSelectionError) Error() string {
	return fmt.Sprintf("selected grounding %s is not a candidate for %s (candidates: %s)",
		e.Selected, e.StructuralID, strings.Join(e.Candidates, ", "))
}

// Decider decides grounding relevance for one structural assertion. The
// LLM-backed implementation lives in the llm package; Heuristic is the
// deterministic fallback.
type Decider interface {
	Decide(ctx context.Context, unit model.AssertionUnit, candidates []string) ([]model.SelectedGrounding, error)
}

// Selector narrows the static S→G candidate set to the grounding
// dimensions a specific assertion's wording actually requires.
type Selector struct {
	decider Decider
	logger  *zap.Logger
}

// New creates a selector over a decider
func New(decider Decider, logger *zap.Logger) *Selector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Selector{decider: decider, logger: logger}
}

// Select returns the grounding dimensions to attach to the structural
// unit. The result is always a subset of the static table's candidates;
// an empty result is legitimate, even for critical assertions.
func (s *Selector) Select(ctx context.Context, unit model.AssertionUnit) ([]model.SelectedGrounding, error) {
	candidates, err := taxonomy.CandidatesFor(unit.DimensionID)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		// Operational dimensions carry no grounding linkage by design
		return nil, nil
	}

	selected, err := s.decider.Decide(ctx, unit, candidates)
	if err != nil {
		return nil, err
	}

	allowed := make(map[string]bool, len(candidates))
	for _, id := range candidates {
		allowed[id] = true
	}

	seen := make(map[string]bool, len(selected))
	out := make([]model.SelectedGrounding, 0, len(selected))
	for _, sel := range selected {
		if !allowed[sel.GroundingID] {
			s.logger.Error("grounding selection outside candidate set",
				zap.String("structural_id", unit.DimensionID),
				zap.String("selected", sel.GroundingID),
				zap.Strings("candidates", candidates),
				zap.String("input", unit.SourceText),
				zap.String("rationale", sel.Rationale))
			return nil, &InvalidSelectionError{
				StructuralID: unit.DimensionID,
				Selected:     sel.GroundingID,
				Candidates:   candidates,
			}
		}
		if seen[sel.GroundingID] {
			continue
		}
		seen[sel.GroundingID] = true
		out = append(out, sel)
	}

	return out, nil
}
