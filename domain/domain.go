// Package domain models named populations of repeated elements and detects
// structural change between successive frames.
//
// A domain instance is one population (e.g. "the 50 circles") materialized
// by the evaluation engine once per frame. When the population grows,
// shrinks, or reorders, Detect builds an old→new continuity mapping so that
// downstream smoothing state can follow surviving elements instead of
// snapping to whatever now occupies their index.
package domain

import "golang.org/x/image/math/f32"

// IdentityMode selects how elements of a population are matched across
// structural change.
type IdentityMode uint8

// Identity mode constants.
const (
	// IdentityStable matches elements by persistent element id.
	IdentityStable IdentityMode = iota
	// IdentityPositional matches elements by proximity of position hints.
	// This is an assist, not an identity guarantee.
	IdentityPositional
)

// String returns a human-readable name for the identity mode.
func (m IdentityMode) String() string {
	switch m {
	case IdentityStable:
		return "Stable"
	case IdentityPositional:
		return "Positional"
	default:
		return "Unknown"
	}
}

// Instance describes one named population of repeated elements for a single
// frame. It is created or replaced once per frame by the evaluation engine
// and is read-only to this pipeline.
type Instance struct {
	// Count is the number of elements in the population.
	Count int

	// Identity selects the matching strategy across structural change.
	Identity IdentityMode

	// ElementIDs holds one persistent id per element in stable mode.
	// Ids are assumed unique within a snapshot; behavior under duplicate
	// ids is undefined upstream and not validated here.
	ElementIDs []uint32

	// PosHints holds one approximate position per element in positional
	// mode, used for nearest-neighbor matching.
	PosHints []f32.Vec2
}

// Clone returns a deep copy of the instance. The detector keeps the
// previous frame's snapshot across frames while the original buffers are
// reclaimed by the frame arena, so the snapshot must not alias them.
func (inst *Instance) Clone() *Instance {
	if inst == nil {
		return nil
	}
	c := &Instance{Count: inst.Count, Identity: inst.Identity}
	if inst.ElementIDs != nil {
		c.ElementIDs = make([]uint32, len(inst.ElementIDs))
		copy(c.ElementIDs, inst.ElementIDs)
	}
	if inst.PosHints != nil {
		c.PosHints = make([]f32.Vec2, len(inst.PosHints))
		copy(c.PosHints, inst.PosHints)
	}
	return c
}

// NoPrior is the mapping sentinel for an element with no prior state:
// it appeared this frame and carries nothing over.
const NoPrior = -1

// Mapping is an old→new index mapping built when a population changed.
// It is computed fresh on the frame a change is detected and is not kept
// beyond that frame's continuity application.
type Mapping struct {
	// Count is the new population count.
	Count int

	// NewToOld holds, for each new index, the old index its state came
	// from, or NoPrior. A nil slice means the identity mapping: every
	// element kept its index.
	NewToOld []int
}

// IdentityMapping returns the identity mapping for count elements.
func IdentityMapping(count int) Mapping {
	return Mapping{Count: count}
}

// IsIdentity reports whether the mapping is the identity mapping.
func (m Mapping) IsIdentity() bool {
	return m.NewToOld == nil
}

// Source returns the old index that new index i draws prior state from,
// or NoPrior.
func (m Mapping) Source(i int) int {
	if m.NewToOld == nil {
		return i
	}
	return m.NewToOld[i]
}
