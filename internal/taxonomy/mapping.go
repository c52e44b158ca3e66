package taxonomy

import "sort"

// sgTable maps each structural dimension to the hand-curated superset of
// grounding dimensions historically linked to it. It is deliberately
// over-inclusive: narrowing to what a specific assertion actually needs is
// the selector's job, not this table's. Operational dimensions (S7, S14,
// S15) carry no grounding linkage at all.
var sgTable = map[string][]string{
	"S1":  {"G1"},
	"S2":  {"G3", "G6"},
	"S3":  {"G3"},
	"S4":  {"G2"},
	"S5":  {"G3"},
	"S6":  {"G2", "G8"},
	"S7":  {},
	"S8":  {"G3", "G6"},
	"S9":  {"G7"},
	"S10": {"G6"},
	"S11": {"G3"},
	"S12": {"G8"},
	"S13": {"G4"},
	"S14": {},
	"S15": {},
	"S16": {"G9"},
	"S17": {"G9"},
	"S18": {"G8"},
	"S19": {"G3", "G7"},
	"S20": {"G2", "G7"},
}

// CandidatesFor returns the static grounding candidate set for a structural
// dimension, ordered by numeric suffix. An empty result is legitimate; an
// unmapped id is an UnknownDimensionError.
func CandidatesFor(structuralID string) ([]string, error) {
	ids, ok := sgTable[structuralID]
	if !ok {
		return nil, &UnknownDimensionError{ID: structuralID}
	}
	out := make([]string, len(ids))
	copy(out, ids)
	sort.Slice(out, func(i, j int) bool {
		return numericSuffix(out[i]) < numericSuffix(out[j])
	})
	return out, nil
}
