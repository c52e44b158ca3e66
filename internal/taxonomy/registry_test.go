package taxonomy

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akorzun/planassay/internal/model"
)

func TestGet_KnownDimensions(t *testing.T) {
	s5, err := Get("S5")
	require.NoError(t, err)
	assert.Equal(t, "S5", s5.ID)
	assert.Equal(t, model.LayerStructural, s5.Layer)
	assert.Equal(t, model.LevelCritical, s5.DefaultLevel)
	assert.Equal(t, 3, s5.DefaultWeight)

	g3, err := Get("G3")
	require.NoError(t, err)
	assert.Equal(t, model.LayerGrounding, g3.Layer)
	assert.Contains(t, g3.Template, "[DUE_DATE]")
}

func TestGet_UnknownDimension(t *testing.T) {
	_, err := Get("S99")
	require.Error(t, err)

	var ude *UnknownDimensionError
	require.True(t, errors.As(err, &ude))
	assert.Equal(t, "S99", ude.ID)
}

func TestListByLayer_CountsAndOrder(t *testing.T) {
	structural := ListByLayer(model.LayerStructural)
	require.Len(t, structural, 20)

	grounding := ListByLayer(model.LayerGrounding)
	require.Len(t, grounding, 9)

	// Numeric ordering: S2 before S10, never lexicographic
	ids := make([]string, len(structural))
	for i, d := range structural {
		ids[i] = d.ID
	}
	assert.Equal(t, "S1", ids[0])
	assert.Equal(t, "S2", ids[1])
	assert.Equal(t, "S10", ids[9])
	assert.Equal(t, "S20", ids[19])
}

func TestCatalog_TemplateSlotsMatchSlotTypes(t *testing.T) {
	for _, layer := range []model.Layer{model.LayerStructural, model.LayerGrounding} {
		for _, d := range ListByLayer(layer) {
			for _, s := range d.SlotTypes {
				assert.Contains(t, d.Template, "["+string(s)+"]",
					"dimension %s declares slot %s not present in template", d.ID, s)
			}
		}
	}
}

func TestSlotType_Class(t *testing.T) {
	assert.Equal(t, ClassGrounded, SlotAttendee.Class())
	assert.Equal(t, ClassGrounded, SlotDueDate.Class())
	assert.Equal(t, ClassPlannerGen, SlotTask.Class())
	assert.Equal(t, ClassConditional, SlotArtifact.Class())
	assert.Equal(t, ClassDerived, SlotAssumption.Class())
	assert.Equal(t, ClassNA, SlotType("BOGUS").Class())
}
