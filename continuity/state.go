package continuity

import (
	"math"

	"github.com/tanema/gween/ease"

	"github.com/gogpu/vivid/domain"
)

// State is one runtime session's continuity context. It owns every tracked
// target plus the last-seen population snapshot and element ages per
// instance id. It survives across frames and is mutated exclusively through
// Observe and Apply, once per instance / target per frame.
//
// State is an explicit context object: construct one per session (or per
// test) and pass it by reference. It is intentionally not a package-level
// singleton, so concurrent sessions stay isolated.
type State struct {
	targets map[TargetKey]*Target
	domains map[string]*domain.Instance
	ages    map[string][]float32
}

// NewState creates an empty continuity session.
func NewState() *State {
	return &State{
		targets: make(map[TargetKey]*Target),
		domains: make(map[string]*domain.Instance),
		ages:    make(map[string][]float32),
	}
}

// Observe records this frame's snapshot of a population and returns the
// change report against the previous frame. It must be called once per
// instance per frame, before Apply for any of that instance's targets.
//
// The returned mapping is only meaningful for this frame; pass it to Apply
// and drop it.
func (s *State) Observe(instanceID string, inst *domain.Instance, dtMs float32) (changed bool, m domain.Mapping) {
	prev := s.domains[instanceID]
	changed, m = domain.Detect(prev, inst)

	// Element ages follow the mapping: survivors keep their clock, new
	// elements start at zero.
	old := s.ages[instanceID]
	ages := make([]float32, inst.Count)
	for i := range ages {
		src := m.Source(i)
		if src >= 0 && src < len(old) {
			ages[i] = old[src]
		}
	}
	for i := range ages {
		ages[i] += dtMs
	}
	s.ages[instanceID] = ages

	s.domains[instanceID] = inst.Clone()
	return changed, m
}

// Domain returns the last observed snapshot for an instance id, or nil.
func (s *State) Domain(instanceID string) *domain.Instance {
	return s.domains[instanceID]
}

// Target returns the tracked target for key, or nil if Apply has never run
// for it.
func (s *State) Target(key TargetKey) *Target {
	return s.targets[key]
}

// Values returns the buffer downstream should consume for key: the slew
// buffer (which equals the gauge under PostNone). Nil if the key is
// untracked.
func (s *State) Values(key TargetKey) []float32 {
	if t := s.targets[key]; t != nil {
		return t.slew
	}
	return nil
}

// Apply feeds one frame of raw values into a target, remapping state across
// structural change and advancing the temporal filter.
//
// raw holds count×stride components, where stride derives from the key's
// semantic. mapping is the report from this frame's Observe call for the
// owning instance. Apply mutates the session in place and must run exactly
// once per target per frame.
func (s *State) Apply(key TargetKey, raw []float32, mapping domain.Mapping, pol Policy, dtMs float32) {
	stride := key.Semantic.Stride()
	count := len(raw) / stride

	t := s.targets[key]
	if t == nil {
		// First frame for this target: gauge and slew both start at
		// the raw values, no smoothing lag.
		t = &Target{
			gauge:  append([]float32(nil), raw...),
			slew:   append([]float32(nil), raw...),
			stride: stride,
		}
		s.targets[key] = t
		return
	}

	if !mapping.IsIdentity() {
		t.remap(raw, mapping, count)
	} else if len(t.gauge) != count*stride {
		// Count drifted without a detected mapping (e.g. the caller
		// skipped Observe). Fall back to an index-preserving resize.
		t.remap(raw, domain.Mapping{Count: count, NewToOld: trivialMapping(count, len(t.gauge)/stride)}, count)
	}

	// Latest authoritative values, regardless of whether a remap happened.
	copy(t.gauge, raw)

	switch pol.Post {
	case PostNone:
		copy(t.slew, t.gauge)
	default:
		coeff := slewCoeff(dtMs, pol.TauMs)
		for i := range t.slew {
			t.slew[i] += (t.gauge[i] - t.slew[i]) * coeff
		}
	}
}

// remap rebuilds the gauge/slew pair for a new population layout. Surviving
// elements copy their old state into their new slot; elements with no prior
// state initialize gauge=slew=this frame's raw sample.
func (t *Target) remap(raw []float32, mapping domain.Mapping, count int) {
	stride := t.stride
	gauge := make([]float32, count*stride)
	slew := make([]float32, count*stride)
	oldCount := len(t.gauge) / stride

	for i := 0; i < count; i++ {
		src := domain.NoPrior
		if i < mapping.Count {
			src = mapping.Source(i)
		}
		dst := i * stride
		if src >= 0 && src < oldCount {
			copy(gauge[dst:dst+stride], t.gauge[src*stride:src*stride+stride])
			copy(slew[dst:dst+stride], t.slew[src*stride:src*stride+stride])
		} else {
			copy(gauge[dst:dst+stride], raw[dst:dst+stride])
			copy(slew[dst:dst+stride], raw[dst:dst+stride])
		}
	}
	t.gauge = gauge
	t.slew = slew
}

// trivialMapping maps index i to i where the old population had an element
// there, NoPrior past its end.
func trivialMapping(count, oldCount int) []int {
	m := make([]int, count)
	for i := range m {
		if i < oldCount {
			m[i] = i
		} else {
			m[i] = domain.NoPrior
		}
	}
	return m
}

// slewCoeff converts the time constant into the per-frame blend factor
// 1 - exp(-dt/tau). Non-positive tau snaps.
func slewCoeff(dtMs, tauMs float32) float32 {
	if tauMs <= 0 {
		return 1
	}
	return 1 - float32(math.Exp(float64(-dtMs/tauMs)))
}

// Presence returns a per-element entrance weight in [0,1] for an instance:
// 0 at the moment an element appears, ramping to 1 over durationMs through
// the given easing function. Survivors of a remap keep their clock, so a
// population reshuffle does not retrigger entrances.
//
// Returns nil when durationMs <= 0 or the instance has never been observed;
// nil means "all elements fully present". fn defaults to linear when nil.
func (s *State) Presence(instanceID string, durationMs float32, fn ease.TweenFunc) []float32 {
	if durationMs <= 0 {
		return nil
	}
	ages := s.ages[instanceID]
	if ages == nil {
		return nil
	}
	if fn == nil {
		fn = ease.Linear
	}
	w := make([]float32, len(ages))
	for i, age := range ages {
		if age >= durationMs {
			w[i] = 1
			continue
		}
		w[i] = fn(age, 0, 1, durationMs)
	}
	return w
}
