package taxonomy

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/akorzun/planassay/internal/model"
)

// UnknownDimensionError reports a lookup for an id that is not in the
// catalog. This is a programmer or configuration error, not a data problem.
type UnknownDimensionError struct {
	ID string
}

func (e *UnknownDimensionError) Error() string {
	return fmt.Sprintf("unknown dimension id: %q", e.ID)
}

// catalog is the full dimension taxonomy: 20 structural + 9 grounding.
// Built once at init and never mutated.
var catalog = []Dimension{
	// Structural layer: presence/shape checks
	{ID: "S1", Name: "Meeting Title Stated", Layer: model.LayerStructural,
		Template:     "The plan states the meeting title [TITLE].",
		DefaultLevel: model.LevelCritical, DefaultWeight: 3,
		SlotTypes: []SlotType{SlotTitle}},
	{ID: "S2", Name: "Task Ordering", Layer: model.LayerStructural,
		Template:     "The plan arranges [TASK] before [TASK].",
		DefaultLevel: model.LevelCritical, DefaultWeight: 3,
		SlotTypes: []SlotType{SlotTask}},
	{ID: "S3", Name: "Meeting Date Stated", Layer: model.LayerStructural,
		Template:     "The plan states the meeting date [DUE_DATE].",
		DefaultLevel: model.LevelCritical, DefaultWeight: 3,
		SlotTypes: []SlotType{SlotDueDate}},
	{ID: "S4", Name: "Attendee List Present", Layer: model.LayerStructural,
		Template:     "The plan lists [ATTENDEE] among the attendees.",
		DefaultLevel: model.LevelCritical, DefaultWeight: 3,
		SlotTypes: []SlotType{SlotAttendee}},
	{ID: "S5", Name: "Task Deadlines", Layer: model.LayerStructural,
		Template:     "Every task in the plan carries a deadline such as [DUE_DATE].",
		DefaultLevel: model.LevelCritical, DefaultWeight: 3,
		SlotTypes: []SlotType{SlotDueDate}},
	{ID: "S6", Name: "Owner Assignment", Layer: model.LayerStructural,
		Template:     "The plan assigns [TASK] to an owner such as [ATTENDEE].",
		DefaultLevel: model.LevelExpected, DefaultWeight: 2,
		SlotTypes: []SlotType{SlotTask, SlotAttendee}},
	{ID: "S7", Name: "Consistent Formatting", Layer: model.LayerStructural,
		Template:     "The plan presents its tasks in a consistent format.",
		DefaultLevel: model.LevelExpected, DefaultWeight: 1},
	{ID: "S8", Name: "Milestones Defined", Layer: model.LayerStructural,
		Template:     "The plan marks [TASK] as a milestone.",
		DefaultLevel: model.LevelExpected, DefaultWeight: 2,
		SlotTypes: []SlotType{SlotTask}},
	{ID: "S9", Name: "Deliverable Artifacts", Layer: model.LayerStructural,
		Template:     "The plan names [ARTIFACT] as a deliverable.",
		DefaultLevel: model.LevelExpected, DefaultWeight: 2,
		SlotTypes: []SlotType{SlotArtifact}},
	{ID: "S10", Name: "Dependencies Stated", Layer: model.LayerStructural,
		Template:     "The plan states that [TASK] depends on [TASK].",
		DefaultLevel: model.LevelExpected, DefaultWeight: 2,
		SlotTypes: []SlotType{SlotTask}},
	{ID: "S11", Name: "Buffer Time", Layer: model.LayerStructural,
		Template:     "The plan leaves buffer time ahead of [DUE_DATE].",
		DefaultLevel: model.LevelAspirational, DefaultWeight: 1,
		SlotTypes: []SlotType{SlotDueDate}},
	{ID: "S12", Name: "Agenda Present", Layer: model.LayerStructural,
		Template:     "The plan includes an agenda item covering [TASK].",
		DefaultLevel: model.LevelExpected, DefaultWeight: 2,
		SlotTypes: []SlotType{SlotTask}},
	{ID: "S13", Name: "Timezone Handling", Layer: model.LayerStructural,
		Template:     "The plan expresses times in [TIMEZONE].",
		DefaultLevel: model.LevelExpected, DefaultWeight: 2,
		SlotTypes: []SlotType{SlotTimezone}},
	{ID: "S14", Name: "Plain Language", Layer: model.LayerStructural,
		Template:     "The plan is written in plain, unambiguous language.",
		DefaultLevel: model.LevelAspirational, DefaultWeight: 1},
	{ID: "S15", Name: "Concise Length", Layer: model.LayerStructural,
		Template:     "The plan stays within a readable length.",
		DefaultLevel: model.LevelAspirational, DefaultWeight: 1},
	{ID: "S16", Name: "Risks Called Out", Layer: model.LayerStructural,
		Template:     "The plan calls out a risk tied to [ASSUMPTION].",
		DefaultLevel: model.LevelAspirational, DefaultWeight: 1,
		SlotTypes: []SlotType{SlotAssumption}},
	{ID: "S17", Name: "Assumptions Stated", Layer: model.LayerStructural,
		Template:     "The plan states the assumption [ASSUMPTION].",
		DefaultLevel: model.LevelExpected, DefaultWeight: 2,
		SlotTypes: []SlotType{SlotAssumption}},
	{ID: "S18", Name: "Action Item Coverage", Layer: model.LayerStructural,
		Template:     "The plan covers the action item [TASK].",
		DefaultLevel: model.LevelCritical, DefaultWeight: 3,
		SlotTypes: []SlotType{SlotTask}},
	{ID: "S19", Name: "Review Checkpoint", Layer: model.LayerStructural,
		Template:     "The plan schedules a review of [ARTIFACT] before [DUE_DATE].",
		DefaultLevel: model.LevelExpected, DefaultWeight: 2,
		SlotTypes: []SlotType{SlotArtifact, SlotDueDate}},
	{ID: "S20", Name: "Communication Plan", Layer: model.LayerStructural,
		Template:     "The plan says how [ATTENDEE] is kept informed about [ARTIFACT].",
		DefaultLevel: model.LevelAspirational, DefaultWeight: 1,
		SlotTypes: []SlotType{SlotAttendee, SlotArtifact}},

	// Grounding layer: factual checks against the reference scenario
	{ID: "G1", Name: "Title Accuracy", Layer: model.LayerGrounding,
		Template:     "The meeting title used by the plan matches [TITLE].",
		DefaultLevel: model.LevelCritical, DefaultWeight: 3,
		SlotTypes: []SlotType{SlotTitle}},
	{ID: "G2", Name: "Attendee Accuracy", Layer: model.LayerGrounding,
		Template:     "Attendees named in the plan appear in the invite list, including [ATTENDEE].",
		DefaultLevel: model.LevelCritical, DefaultWeight: 3,
		SlotTypes: []SlotType{SlotAttendee}},
	{ID: "G3", Name: "Date and Time Accuracy", Layer: model.LayerGrounding,
		Template:     "Dates and times in the plan are consistent with [DUE_DATE].",
		DefaultLevel: model.LevelCritical, DefaultWeight: 3,
		SlotTypes: []SlotType{SlotDueDate}},
	{ID: "G4", Name: "Timezone Accuracy", Layer: model.LayerGrounding,
		Template:     "The timezone used by the plan matches [TIMEZONE].",
		DefaultLevel: model.LevelExpected, DefaultWeight: 2,
		SlotTypes: []SlotType{SlotTimezone}},
	{ID: "G5", Name: "Organizer Accuracy", Layer: model.LayerGrounding,
		Template:     "The plan identifies [ORGANIZER] as the organizer.",
		DefaultLevel: model.LevelExpected, DefaultWeight: 2,
		SlotTypes: []SlotType{SlotOrganizer}},
	{ID: "G6", Name: "Sequence Consistency", Layer: model.LayerGrounding,
		Template:     "The ordering of [TASK] in the plan is internally consistent.",
		DefaultLevel: model.LevelCritical, DefaultWeight: 3,
		SlotTypes: []SlotType{SlotTask}},
	{ID: "G7", Name: "Artifact Accuracy", Layer: model.LayerGrounding,
		Template:     "Artifacts referenced by the plan trace to [ARTIFACT].",
		DefaultLevel: model.LevelExpected, DefaultWeight: 2,
		SlotTypes: []SlotType{SlotArtifact}},
	{ID: "G8", Name: "Action Item Accuracy", Layer: model.LayerGrounding,
		Template:     "Action items in the plan trace to [TASK].",
		DefaultLevel: model.LevelCritical, DefaultWeight: 3,
		SlotTypes: []SlotType{SlotTask}},
	{ID: "G9", Name: "Assumption Traceability", Layer: model.LayerGrounding,
		Template:     "Assumptions in the plan trace to [ASSUMPTION] or are flagged as new.",
		DefaultLevel: model.LevelExpected, DefaultWeight: 2,
		SlotTypes: []SlotType{SlotAssumption}},
}

var byID = func() map[string]Dimension {
	m := make(map[string]Dimension, len(catalog))
	for _, d := range catalog {
		m[d.ID] = d
	}
	return m
}()

// Get returns the dimension definition for the given id
func Get(id string) (Dimension, error) {
	d, ok := byID[id]
	if !ok {
		return Dimension{}, &UnknownDimensionError{ID: id}
	}
	return d, nil
}

// ListByLayer returns all dimensions in the given layer, ordered by the
// numeric suffix of their id (S1 before S2, never S10 before S2).
func ListByLayer(layer model.Layer) []Dimension {
	var out []Dimension
	for _, d := range catalog {
		if d.Layer == layer {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return numericSuffix(out[i].ID) < numericSuffix(out[j].ID)
	})
	return out
}

func numericSuffix(id string) int {
	if len(id) < 2 {
		return 0
	}
	n, err := strconv.Atoi(id[1:])
	if err != nil {
		return 0
	}
	return n
}
