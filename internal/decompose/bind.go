package decompose

import (
	"regexp"
	"strings"

	"github.com/akorzun/planassay/internal/model"
	"github.com/akorzun/planassay/internal/taxonomy"
)

var slotPattern = regexp.MustCompile(`\[([A-Z_]+)\]`)

// BindSlots instantiates a dimension template against the reference
// scenario. Repeated occurrences of the same slot type consume successive
// scenario values ("[TASK] before [TASK]" binds two different tasks).
// Slots whose value the scenario does not supply, and PLANNER_GEN slots,
// are left as-is. Returns the instantiated text and the slot types that
// were actually bound.
func BindSlots(template string, scn *model.Scenario) (string, []string) {
	if scn == nil {
		return template, nil
	}

	counters := make(map[taxonomy.SlotType]int)
	var used []string
	usedSet := make(map[string]bool)

	out := slotPattern.ReplaceAllStringFunc(template, func(token string) string {
		slot := taxonomy.SlotType(strings.Trim(token, "[]"))

		value, ok := slotValue(slot, scn, counters[slot])
		if !ok {
			return token
		}
		counters[slot]++

		if !usedSet[string(slot)] {
			usedSet[string(slot)] = true
			used = append(used, string(slot))
		}
		return value
	})

	return out, used
}

// slotValue resolves the i-th value for a slot type from the scenario
func slotValue(slot taxonomy.SlotType, scn *model.Scenario, i int) (string, bool) {
	pick := func(values []string) (string, bool) {
		if i < len(values) && values[i] != "" {
			return values[i], true
		}
		return "", false
	}

	switch slot {
	case taxonomy.SlotTitle:
		if i == 0 && scn.Title != "" {
			return scn.Title, true
		}
	case taxonomy.SlotDueDate:
		if i == 0 && scn.Date != "" {
			return scn.Date, true
		}
	case taxonomy.SlotTimezone:
		if i == 0 && scn.Timezone != "" {
			return scn.Timezone, true
		}
	case taxonomy.SlotOrganizer:
		if i == 0 && scn.Organizer != "" {
			return scn.Organizer, true
		}
	case taxonomy.SlotAttendee:
		return pick(scn.AttendeeNames())
	case taxonomy.SlotTask:
		// Planner-generated tasks bind to scenario action items when the
		// scenario supplies them; otherwise the token stays unbound
		return pick(scn.ActionItems)
	case taxonomy.SlotArtifact:
		return pick(scn.Artifacts)
	case taxonomy.SlotAssumption:
		// Assumptions are derived, not listed; nothing to bind directly
		return "", false
	}
	return "", false
}
