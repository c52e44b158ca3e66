// Package record assigns final stable ids to decomposed assertion trees
// and serializes them into a flat, referentially closed sequence.
package record

import (
	"fmt"

	"github.com/akorzun/planassay/internal/decompose"
	"github.com/akorzun/planassay/internal/model"
)

// DanglingReferenceError means a unit's parent id does not appear earlier
// in the output sequence. This is an internal invariant, not a data
// problem: the builder itself is the only id producer.
type DanglingReferenceError struct {
	ID     string
	Parent string
}

func (e *DanglingReferenceError) Error() string {
	return fmt.Sprintf("unit %s references parent %s which does not precede it", e.ID, e.Parent)
}

// Build flattens the decomposed trees for one input into the final unit
// sequence. Id layout: the first structural unit is A{batch:04d}_{dim};
// later structural siblings and all grounding children append a zero-based
// ordinal. When the same dimension recurs under different parents, the
// ordinal advances past taken ids so every assertion_id stays unique
// within the batch.
func Build(batchIndex int, trees []decompose.Tree) ([]model.AssertionUnit, error) {
	var out []model.AssertionUnit
	taken := make(map[string]bool)

	claim := func(dimID string, ordinal int, bare bool) string {
		if bare {
			id := fmt.Sprintf("A%04d_%s", batchIndex, dimID)
			if !taken[id] {
				taken[id] = true
				return id
			}
		}
		for {
			id := fmt.Sprintf("A%04d_%s_%d", batchIndex, dimID, ordinal)
			if !taken[id] {
				taken[id] = true
				return id
			}
			ordinal++
		}
	}

	for i, tree := range trees {
		structural := tree.Structural
		structural.AssertionID = claim(structural.DimensionID, i, i == 0)
		structural.ParentAssertionID = ""
		out = append(out, structural)

		for j, child := range tree.Grounding {
			child.AssertionID = claim(child.DimensionID, j, false)
			child.ParentAssertionID = structural.AssertionID
			out = append(out, child)
		}
	}

	if err := checkClosure(out); err != nil {
		return nil, err
	}

	return out, nil
}

// checkClosure verifies that every parent reference points to an id that
// appears earlier in the sequence
func checkClosure(units []model.AssertionUnit) error {
	seen := make(map[string]bool, len(units))
	for _, u := range units {
		if u.ParentAssertionID != "" && !seen[u.ParentAssertionID] {
			return &DanglingReferenceError{ID: u.AssertionID, Parent: u.ParentAssertionID}
		}
		seen[u.AssertionID] = true
	}
	return nil
}
