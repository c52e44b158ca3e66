package taxonomy

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akorzun/planassay/internal/model"
)

func TestCandidatesFor_KnownMappings(t *testing.T) {
	candidates, err := CandidatesFor("S2")
	require.NoError(t, err)
	assert.Equal(t, []string{"G3", "G6"}, candidates)

	candidates, err = CandidatesFor("S5")
	require.NoError(t, err)
	assert.Equal(t, []string{"G3"}, candidates)
}

func TestCandidatesFor_OperationalDimensionsEmpty(t *testing.T) {
	for _, id := range []string{"S7", "S14", "S15"} {
		candidates, err := CandidatesFor(id)
		require.NoError(t, err)
		assert.Empty(t, candidates, "operational dimension %s should have no grounding linkage", id)
	}
}

func TestCandidatesFor_UnknownID(t *testing.T) {
	_, err := CandidatesFor("S21")
	require.Error(t, err)

	var ude *UnknownDimensionError
	assert.True(t, errors.As(err, &ude))
}

func TestCandidatesFor_AllSubsetOfGroundingCatalog(t *testing.T) {
	for _, d := range ListByLayer(model.LayerStructural) {
		candidates, err := CandidatesFor(d.ID)
		require.NoError(t, err, "every structural dimension must be mapped")
		for _, g := range candidates {
			dim, err := Get(g)
			require.NoError(t, err, "candidate %s for %s is not in the catalog", g, d.ID)
			assert.Equal(t, model.LayerGrounding, dim.Layer,
				"candidate %s for %s is not a grounding dimension", g, d.ID)
		}
	}
}

func TestMappingTable_KeysMatchStructuralCatalog(t *testing.T) {
	structural := ListByLayer(model.LayerStructural)
	require.Len(t, sgTable, len(structural), "table must cover the structural catalog exactly")

	for id := range sgTable {
		dim, err := Get(id)
		require.NoError(t, err, "table key %s is not in the catalog", id)
		assert.Equal(t, model.LayerStructural, dim.Layer, "table key %s is not structural", id)
	}
}
