package decompose

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/akorzun/planassay/internal/model"
)

func testScenario() *model.Scenario {
	return &model.Scenario{
		Title:     "Q3 Launch Readiness Review",
		Date:      "2026-09-14",
		Time:      "10:00",
		Timezone:  "America/New_York",
		Organizer: "Dana Whitfield",
		Attendees: []model.Attendee{
			{Name: "Dana Whitfield", Role: "organizer"},
			{Name: "Priya Raman", Role: "engineering"},
			{Name: "Tomas Berg", Role: "marketing"},
		},
		Artifacts:   []string{"launch checklist", "readiness deck"},
		ActionItems: []string{"draft slides", "review slides", "send invites"},
	}
}

func TestBindSlots_SingleSlot(t *testing.T) {
	text, used := BindSlots("The plan states the meeting title [TITLE].", testScenario())
	assert.Equal(t, "The plan states the meeting title Q3 Launch Readiness Review.", text)
	assert.Equal(t, []string{"TITLE"}, used)
}

func TestBindSlots_RepeatedSlotConsumesSuccessiveValues(t *testing.T) {
	text, used := BindSlots("The plan arranges [TASK] before [TASK].", testScenario())
	assert.Equal(t, "The plan arranges draft slides before review slides.", text)
	assert.Equal(t, []string{"TASK"}, used)
}

func TestBindSlots_MissingValueLeavesToken(t *testing.T) {
	scn := testScenario()
	scn.Timezone = ""
	text, used := BindSlots("The plan expresses times in [TIMEZONE].", scn)
	assert.Equal(t, "The plan expresses times in [TIMEZONE].", text)
	assert.Empty(t, used)
}

func TestBindSlots_DerivedSlotStaysUnbound(t *testing.T) {
	text, _ := BindSlots("The plan states the assumption [ASSUMPTION].", testScenario())
	assert.Contains(t, text, "[ASSUMPTION]")
}

func TestBindSlots_NilScenario(t *testing.T) {
	text, used := BindSlots("The plan states the meeting date [DUE_DATE].", nil)
	assert.Equal(t, "The plan states the meeting date [DUE_DATE].", text)
	assert.Nil(t, used)
}

func TestBindSlots_MixedSlots(t *testing.T) {
	text, used := BindSlots("The plan assigns [TASK] to an owner such as [ATTENDEE].", testScenario())
	assert.Equal(t, "The plan assigns draft slides to an owner such as Dana Whitfield.", text)
	assert.Equal(t, []string{"TASK", "ATTENDEE"}, used)
}
