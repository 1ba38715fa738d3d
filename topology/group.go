// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package topology

// Group is the set of instance indices sharing one shape reference pair.
// Indices are ascending; across a grouping, the groups partition
// [0, count) exactly.
type Group struct {
	// Topology is the shared topology id.
	Topology ID
	// Slot is the shared control-points slot (Custom topologies).
	Slot uint16
	// Flags are the flag bits of the group's first instance.
	Flags uint16
	// Indices are the member instance indices, ascending.
	Indices []int
}

// groupKey identifies one batchable group.
type groupKey struct {
	topo ID
	slot uint16
}

// GroupByTopology partitions count instances by their (topology id,
// control-points slot) pair in a single O(N) pass. Groups are returned in
// order of first appearance; each group's index list is naturally sorted
// because indices are appended in scan order.
func GroupByTopology(refs []ShapeRef, count int) []Group {
	if count > len(refs) {
		count = len(refs)
	}

	var groups []Group
	byKey := make(map[groupKey]int)
	for i := 0; i < count; i++ {
		ref := refs[i]
		key := groupKey{topo: ref.Topology(), slot: ref.Slot()}
		gi, ok := byKey[key]
		if !ok {
			gi = len(groups)
			byKey[key] = gi
			groups = append(groups, Group{
				Topology: ref.Topology(),
				Slot:     ref.Slot(),
				Flags:    ref.Flags(),
			})
		}
		groups[gi].Indices = append(groups[gi].Indices, i)
	}
	return groups
}
