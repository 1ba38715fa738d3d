// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package topology

// ShapeRef is a packed per-instance shape reference:
//
//	bits 0..15   topology id
//	bits 16..31  control-points slot (Custom topologies)
//	bits 32..47  control-point count
//	bits 48..63  flags
//
// Two instances with equal (topology id, control-points slot) pairs share a
// batch group.
type ShapeRef uint64

// ShapeRef flag bits.
const (
	// FlagEvenOdd selects the even-odd fill rule instead of non-zero.
	FlagEvenOdd uint16 = 1 << iota
)

// PackShapeRef packs the four shape reference fields.
func PackShapeRef(topo ID, slot, pointsCount, flags uint16) ShapeRef {
	return ShapeRef(uint64(topo) |
		uint64(slot)<<16 |
		uint64(pointsCount)<<32 |
		uint64(flags)<<48)
}

// Topology returns the referenced topology id.
func (r ShapeRef) Topology() ID { return ID(r & 0xffff) }

// Slot returns the control-points buffer slot.
func (r ShapeRef) Slot() uint16 { return uint16(r >> 16) }

// PointsCount returns the number of control points in the referenced slot.
func (r ShapeRef) PointsCount() uint16 { return uint16(r >> 32) }

// Flags returns the flag bits.
func (r ShapeRef) Flags() uint16 { return uint16(r >> 48) }

// Handle identifies a frame-arena buffer. Handles are assigned by the
// owning arena and recycled when the buffer is released; the group cache
// keys on (handle, generation) so a recycled handle never resurrects stale
// groups.
type Handle uint32

// ShapeBuffer is one frame's per-instance shape reference buffer together
// with the arena identity used for cache keying. The arena bumps Generation
// whenever it writes new content behind the same handle.
type ShapeBuffer struct {
	Handle     Handle
	Generation uint32
	Refs       []ShapeRef
}
