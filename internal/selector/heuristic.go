package selector

import (
	"context"
	"regexp"
	"strings"

	"github.com/akorzun/planassay/internal/model"
)

// Heuristic is the deterministic, offline fallback decider: a candidate is
// kept only when the assertion text contains a surface cue for that
// dimension's fact category (e.g. no G3 without a temporal expression).
type Heuristic struct{}

// NewHeuristic creates the keyword-based decider
func NewHeuristic() *Heuristic {
	return &Heuristic{}
}

// groundingCues maps each grounding dimension to the keywords that signal
// its fact category in assertion text. Matching is case-insensitive on
// whole words.
var groundingCues = map[string][]string{
	"G1": {"title", "subject", "named"},
	"G2": {"attendee", "attendees", "invitee", "invitees", "participant", "participants", "invite", "people"},
	"G3": {"date", "dates", "deadline", "deadlines", "time", "times", "day", "week", "schedule", "scheduled", "due", "by"},
	"G4": {"timezone", "utc", "zone"},
	"G5": {"organizer", "host", "owner"},
	"G6": {"before", "after", "order", "ordering", "sequence", "arranges", "first", "then", "precedes", "follows"},
	"G7": {"artifact", "artifacts", "deliverable", "deliverables", "document", "documents", "slides", "deck", "draft", "file", "files"},
	"G8": {"action", "task", "tasks", "item", "items", "follow-up", "followup", "todo"},
	"G9": {"assume", "assumes", "assumption", "assumptions", "risk", "risks", "contingent", "given"},
}

// temporalPattern complements the G3 keyword list: explicit dates, clock
// times, weekday and month names.
var temporalPattern = regexp.MustCompile(`(?i)\b(\d{4}-\d{2}-\d{2}|\d{1,2}[:.]\d{2}|\d{1,2}(st|nd|rd|th)|monday|tuesday|wednesday|thursday|friday|saturday|sunday|january|february|march|april|may|june|july|august|september|october|november|december)\b`)

// Decide keeps the candidates whose cues appear in the assertion text
func (h *Heuristic) Decide(_ context.Context, unit model.AssertionUnit, candidates []string) ([]model.SelectedGrounding, error) {
	words := tokenize(unit.SourceText)

	var selected []model.SelectedGrounding
	for _, id := range candidates {
		cue, ok := matchCue(id, words, unit.SourceText)
		if !ok {
			continue
		}
		selected = append(selected, model.SelectedGrounding{
			GroundingID: id,
			Rationale:   "keyword:" + cue,
		})
	}

	return selected, nil
}

func matchCue(groundingID string, words map[string]bool, raw string) (string, bool) {
	for _, cue := range groundingCues[groundingID] {
		if words[cue] {
			return cue, true
		}
	}
	if groundingID == "G3" && temporalPattern.MatchString(raw) {
		return "temporal-expression", true
	}
	return "", false
}

func tokenize(text string) map[string]bool {
	words := make(map[string]bool)
	for _, w := range strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9') && r != '-'
	}) {
		words[w] = true
	}
	return words
}
