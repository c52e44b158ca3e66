package taxonomy

import "github.com/akorzun/planassay/internal/model"

// Dimension is one immutable entry in the assertion taxonomy. Structural
// dimensions check that an element is present in a plan; grounding
// dimensions check a present element against the reference scenario.
type Dimension struct {
	ID            string
	Name          string
	Layer         model.Layer
	Template      string // contains [SLOT] placeholders
	DefaultLevel  model.Level
	DefaultWeight int
	SlotTypes     []SlotType
}

// SlotType tags the semantic category of a template placeholder
type SlotType string

const (
	SlotTitle      SlotType = "TITLE"
	SlotAttendee   SlotType = "ATTENDEE"
	SlotOrganizer  SlotType = "ORGANIZER"
	SlotDueDate    SlotType = "DUE_DATE"
	SlotTimezone   SlotType = "TIMEZONE"
	SlotTask       SlotType = "TASK"
	SlotArtifact   SlotType = "ARTIFACT"
	SlotAssumption SlotType = "ASSUMPTION"
)

// GroundingClass states how a slot's value relates to the reference scenario
type GroundingClass string

const (
	// ClassGrounded values must trace directly to the scenario
	ClassGrounded GroundingClass = "GROUNDED"
	// ClassDerived values are inferable from scenario facts
	ClassDerived GroundingClass = "DERIVED"
	// ClassConditional values bind only when the scenario supplies them
	ClassConditional GroundingClass = "CONDITIONAL"
	// ClassPlannerGen values may originate with the planner model and are
	// checked only for internal consistency
	ClassPlannerGen GroundingClass = "PLANNER_GEN"
	// ClassNA marks slots with no grounding relationship
	ClassNA GroundingClass = "N/A"
)

var slotClasses = map[SlotType]GroundingClass{
	SlotTitle:      ClassGrounded,
	SlotAttendee:   ClassGrounded,
	SlotOrganizer:  ClassGrounded,
	SlotDueDate:    ClassGrounded,
	SlotTimezone:   ClassConditional,
	SlotTask:       ClassPlannerGen,
	SlotArtifact:   ClassConditional,
	SlotAssumption: ClassDerived,
}

// Class returns the grounding classification for the slot type
func (s SlotType) Class() GroundingClass {
	if c, ok := slotClasses[s]; ok {
		return c
	}
	return ClassNA
}
