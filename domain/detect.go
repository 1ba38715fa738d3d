package domain

// Detect compares a population against its previous snapshot and, when the
// population changed, builds the continuity mapping that tells downstream
// state where each new element's prior state lives.
//
// The comparison is ordered: identical counts with identical element ids in
// the same order report changed=false and the identity mapping. Detect is
// best-effort by construction and never fails; unmatched new elements map
// to NoPrior and unmatched old elements are dropped.
//
// prev may be nil (first frame for this population); every element is then
// new.
func Detect(prev, next *Instance) (changed bool, m Mapping) {
	if next == nil {
		return false, IdentityMapping(0)
	}
	if prev == nil {
		m = Mapping{Count: next.Count, NewToOld: make([]int, next.Count)}
		for i := range m.NewToOld {
			m.NewToOld[i] = NoPrior
		}
		return true, m
	}

	if unchanged(prev, next) {
		return false, IdentityMapping(next.Count)
	}

	switch next.Identity {
	case IdentityPositional:
		return true, matchPositional(prev, next)
	default:
		return true, matchStable(prev, next)
	}
}

// unchanged reports whether the population is structurally identical to the
// previous snapshot: same count and, in stable mode, the same element ids in
// the same order. Positional populations carry no persistent identity, so
// only the count is compared; moving hints are motion, not restructuring.
func unchanged(prev, next *Instance) bool {
	if prev.Count != next.Count || prev.Identity != next.Identity {
		return false
	}
	if next.Identity == IdentityStable {
		if len(prev.ElementIDs) != len(next.ElementIDs) {
			return false
		}
		for i, id := range next.ElementIDs {
			if prev.ElementIDs[i] != id {
				return false
			}
		}
	}
	return true
}

// matchStable maps new elements to old ones by persistent element id.
// Ids are assumed unique within a snapshot; under duplicates the first
// occurrence wins, but that case is undefined upstream.
func matchStable(prev, next *Instance) Mapping {
	byID := make(map[uint32]int, len(prev.ElementIDs))
	for i := len(prev.ElementIDs) - 1; i >= 0; i-- {
		byID[prev.ElementIDs[i]] = i
	}

	m := Mapping{Count: next.Count, NewToOld: make([]int, next.Count)}
	for i := range m.NewToOld {
		m.NewToOld[i] = NoPrior
	}
	for i, id := range next.ElementIDs {
		if i >= next.Count {
			break
		}
		if old, ok := byID[id]; ok {
			m.NewToOld[i] = old
		}
	}
	return m
}

// matchPositional maps new elements to old ones greedily by nearest position
// hint. Each old element is consumed at most once; ties between equally near
// candidates are broken by scan order (lowest old index wins). This is an
// approximation: it keeps nearby elements visually continuous but makes no
// identity guarantee.
func matchPositional(prev, next *Instance) Mapping {
	m := Mapping{Count: next.Count, NewToOld: make([]int, next.Count)}
	used := make([]bool, len(prev.PosHints))

	for i := 0; i < next.Count; i++ {
		m.NewToOld[i] = NoPrior
		if i >= len(next.PosHints) {
			continue
		}
		p := next.PosHints[i]
		best := NoPrior
		var bestD float32
		for j, q := range prev.PosHints {
			if used[j] || j >= prev.Count {
				continue
			}
			dx := p[0] - q[0]
			dy := p[1] - q[1]
			d := dx*dx + dy*dy
			if best == NoPrior || d < bestD {
				best = j
				bestD = d
			}
		}
		if best != NoPrior {
			used[best] = true
			m.NewToOld[i] = best
		}
	}
	return m
}
