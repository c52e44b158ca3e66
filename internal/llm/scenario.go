package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/akorzun/planassay/internal/model"
)

// ScenarioGenerator synthesizes a ground-truth reference scenario for an
// assertion when no scenario file is supplied.
type ScenarioGenerator struct {
	client Client
	logger *zap.Logger
}

// NewScenarioGenerator creates a scenario generator
func NewScenarioGenerator(client Client, logger *zap.Logger) *ScenarioGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScenarioGenerator{client: client, logger: logger}
}

// Generate produces a synthetic reference scenario consistent with the
// assertion and optional meeting context. The result is treated as
// read-only ground truth for the rest of that input's pipeline run.
func (g *ScenarioGenerator) Generate(ctx context.Context, text, meetingCtx string) (*model.Scenario, error) {
	resp, err := g.client.Complete(ctx, CompletionRequest{
		System:      scenarioSystemPrompt,
		Prompt:      buildScenarioPrompt(text, meetingCtx),
		Temperature: 0.4,
	})
	if err != nil {
		return nil, fmt.Errorf("scenario call: %w", err)
	}

	var scn model.Scenario
	if err := json.Unmarshal([]byte(extractJSON(resp.Text)), &scn); err != nil {
		g.logger.Error("unparseable scenario response",
			zap.String("input", text),
			zap.String("response", resp.Text),
			zap.Error(err))
		return nil, fmt.Errorf("parse scenario response: %w", err)
	}

	if scn.Title == "" || scn.Date == "" {
		return nil, fmt.Errorf("scenario missing title or date")
	}

	return &scn, nil
}

const scenarioSystemPrompt = `You generate realistic synthetic meeting facts used as ground truth for verifying workback plans. You respond with strict JSON only, no prose.`

func buildScenarioPrompt(text, meetingCtx string) string {
	var b strings.Builder

	b.WriteString("Generate a reference scenario for a meeting whose workback plan will be checked against this assertion:\n")
	b.WriteString(text)
	b.WriteString("\n")

	if meetingCtx != "" {
		b.WriteString("\nMeeting context:\n")
		b.WriteString(meetingCtx)
		b.WriteString("\n")
	}

	b.WriteString(`
Respond with a JSON object:
{"title": "...", "date": "2026-09-14", "time": "10:00", "timezone": "America/New_York",
 "organizer": "...", "attendees": [{"name": "...", "role": "..."}],
 "artifacts": ["..."], "action_items": ["..."]}

Include at least three attendees, two artifacts, and three action items.
`)

	return b.String()
}
