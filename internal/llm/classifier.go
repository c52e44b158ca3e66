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

// ClassificationFailure means the external model returned nothing usable
// for an input. The analysis for that input aborts; a wrong classification
// silently poisons all downstream grounding linkage, so there is no retry
// and no best-effort default dimension.
type ClassificationFailure struct {
	Input string
	Cause error
}

func (e *ClassificationFailure) Error() string {
	return fmt.Sprintf("classification failed for %q: %v", e.Input, e.Cause)
}

func (e *ClassificationFailure) Unwrap() error {
	return e.Cause
}

// Classifier maps free-text assertions to structural dimensions via the
// external reasoning model.
type Classifier struct {
	client Client
	logger *zap.Logger
}

// NewClassifier creates a classifier on top of a provider client
func NewClassifier(client Client, logger *zap.Logger) *Classifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Classifier{client: client, logger: logger}
}

type classificationItem struct {
	DimensionID string `json:"dimension_id"`
	Level       string `json:"level"`
	Weight      int    `json:"weight"`
	SubAspect   string `json:"sub_aspect"`
	Rationale   string `json:"rationale"`
}

// Classify returns one or more structural dimension assignments for the
// assertion text. Multiple assignments signal a compound assertion and
// trigger decomposition downstream.
func (c *Classifier) Classify(ctx context.Context, text, meetingCtx string) ([]model.ClassificationResult, error) {
	resp, err := c.client.Complete(ctx, CompletionRequest{
		System:      classifySystemPrompt,
		Prompt:      buildClassifyPrompt(text, meetingCtx),
		Temperature: 0.1,
	})
	if err != nil {
		return nil, &ClassificationFailure{Input: text, Cause: err}
	}

	var items []classificationItem
	if err := json.Unmarshal([]byte(extractJSON(resp.Text)), &items); err != nil {
		c.logger.Error("unparseable classification response",
			zap.String("input", text),
			zap.String("response", resp.Text),
			zap.Error(err))
		return nil, &ClassificationFailure{Input: text, Cause: fmt.Errorf("parse response: %w", err)}
	}

	if len(items) == 0 {
		return nil, &ClassificationFailure{Input: text, Cause: fmt.Errorf("model returned no dimension assignments")}
	}

	results := make([]model.ClassificationResult, 0, len(items))
	for _, item := range items {
		dim, err := taxonomy.Get(item.DimensionID)
		if err != nil {
			c.logger.Error("classifier returned unknown dimension",
				zap.String("input", text),
				zap.String("dimension_id", item.DimensionID),
				zap.String("response", resp.Text))
			return nil, &ClassificationFailure{Input: text, Cause: err}
		}
		if dim.Layer != model.LayerStructural {
			return nil, &ClassificationFailure{Input: text,
				Cause: fmt.Errorf("dimension %s is not structural", item.DimensionID)}
		}
		if strings.TrimSpace(item.Rationale) == "" {
			return nil, &ClassificationFailure{Input: text,
				Cause: fmt.Errorf("empty rationale for dimension %s", item.DimensionID)}
		}
		results = append(results, model.ClassificationResult{
			DimensionID: dim.ID,
			Level:       parseLevel(item.Level),
			Weight:      item.Weight,
			SubAspect:   strings.TrimSpace(item.SubAspect),
			Rationale:   strings.TrimSpace(item.Rationale),
		})
	}

	return results, nil
}

func parseLevel(s string) model.Level {
	switch model.Level(strings.ToLower(strings.TrimSpace(s))) {
	case model.LevelCritical:
		return model.LevelCritical
	case model.LevelExpected:
		return model.LevelExpected
	case model.LevelAspirational:
		return model.LevelAspirational
	default:
		return "" // caller falls back to the dimension default
	}
}

const classifySystemPrompt = `You classify assertions about meeting workback plans into a fixed taxonomy of structural dimensions. You respond with strict JSON only, no prose.`

func buildClassifyPrompt(text, meetingCtx string) string {
	var b strings.Builder

	b.WriteString("Structural dimensions:\n")
	for _, d := range taxonomy.ListByLayer(model.LayerStructural) {
		fmt.Fprintf(&b, "- %s %s: %s\n", d.ID, d.Name, d.Template)
	}

	b.WriteString("\nAssertion:\n")
	b.WriteString(text)
	b.WriteString("\n")

	if meetingCtx != "" {
		b.WriteString("\nMeeting context:\n")
		b.WriteString(meetingCtx)
		b.WriteString("\n")
	}

	b.WriteString(`
Assign the assertion to one or more structural dimensions. A compound
assertion testing several independent facts gets one entry per fact, each
with a sub_aspect naming the portion of the text it covers.

Respond with a JSON array:
[{"dimension_id": "S5", "level": "critical", "weight": 3,
  "sub_aspect": "deadline presence", "rationale": "why this dimension"}]
`)

	return b.String()
}
