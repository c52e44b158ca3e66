package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/akorzun/planassay/internal/model"
	"github.com/akorzun/planassay/internal/taxonomy"
)

// SelectionDecider asks the model, per candidate grounding dimension,
// whether the specific wording of a structural assertion depends on that
// dimension's fact category. It satisfies selector.Decider.
type SelectionDecider struct {
	client Client
	logger *zap.Logger
}

// NewSelectionDecider creates an LLM-backed grounding decider
func NewSelectionDecider(client Client, logger *zap.Logger) *SelectionDecider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SelectionDecider{client: client, logger: logger}
}

type selectionItem struct {
	GroundingID string `json:"grounding_id"`
	Relevant    bool   `json:"relevant"`
	Rationale   string `json:"rationale"`
}

// Decide returns the grounding dimensions relevant to this assertion's
// specific wording. Selecting zero candidates is a legitimate outcome:
// some structural checks are purely about shape, not facts.
func (d *SelectionDecider) Decide(ctx context.Context, unit model.AssertionUnit, candidates []string) ([]model.SelectedGrounding, error) {
	if len(candidates) == 0 {
		return nil, nil
	}

	resp, err := d.client.Complete(ctx, CompletionRequest{
		System:      selectSystemPrompt,
		Prompt:      buildSelectPrompt(unit, candidates),
		Temperature: 0.1,
	})
	if err != nil {
		return nil, fmt.Errorf("selection call: %w", err)
	}

	var items []selectionItem
	if err := json.Unmarshal([]byte(extractJSON(resp.Text)), &items); err != nil {
		d.logger.Error("unparseable selection response",
			zap.String("structural_id", unit.DimensionID),
			zap.String("input", unit.SourceText),
			zap.String("response", resp.Text),
			zap.Error(err))
		return nil, fmt.Errorf("parse selection response: %w", err)
	}

	var selected []model.SelectedGrounding
	for _, item := range items {
		if !item.Relevant {
			continue
		}
		if strings.TrimSpace(item.Rationale) == "" {
			return nil, fmt.Errorf("empty rationale for grounding %s", item.GroundingID)
		}
		selected = append(selected, model.SelectedGrounding{
			GroundingID: item.GroundingID,
			Rationale:   strings.TrimSpace(item.Rationale),
		})
	}

	return selected, nil
}

const selectSystemPrompt = `You decide which grounding fact categories a specific plan assertion depends on. You respond with strict JSON only, no prose.`

func buildSelectPrompt(unit model.AssertionUnit, candidates []string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Structural assertion (%s", unit.DimensionID)
	if unit.SubAspect != "" {
		fmt.Fprintf(&b, ", %s", unit.SubAspect)
	}
	b.WriteString("):\n")
	b.WriteString(unit.SourceText)
	b.WriteString("\n\nCandidate grounding dimensions:\n")

	for _, id := range candidates {
		if dim, err := taxonomy.Get(id); err == nil {
			fmt.Fprintf(&b, "- %s %s: %s\n", dim.ID, dim.Name, dim.Template)
		}
	}

	b.WriteString(`
For each candidate, decide whether verifying this specific assertion's
wording requires that dimension's fact category. Include a candidate only
when the text actually depends on it; discarding all candidates is fine.
Do not add dimensions beyond the candidates.

Respond with a JSON array:
[{"grounding_id": "G3", "relevant": true, "rationale": "why kept or dropped"}]
`)

	return b.String()
}
