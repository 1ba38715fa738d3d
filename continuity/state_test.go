package continuity

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"

	"github.com/gogpu/vivid/domain"
)

func scalarKey(instance, field string) TargetKey {
	return TargetKey{Instance: instance, Field: field, Semantic: SemanticScalar}
}

func TestSemantic_Stride(t *testing.T) {
	if SemanticPosition.Stride() != 2 {
		t.Errorf("position stride = %d, want 2", SemanticPosition.Stride())
	}
	if SemanticScalar.Stride() != 1 {
		t.Errorf("scalar stride = %d, want 1", SemanticScalar.Stride())
	}
}

func TestTargetKey_String(t *testing.T) {
	key := TargetKey{Instance: "ring", Field: "position", Semantic: SemanticPosition}
	if got := key.String(); got != "position:ring:pos" {
		t.Errorf("String() = %q, want %q", got, "position:ring:pos")
	}
}

func TestApply_FirstFrameNoLag(t *testing.T) {
	s := NewState()
	key := scalarKey("ring", "radius")
	raw := []float32{0.5, 0.7, 0.9}

	s.Apply(key, raw, domain.IdentityMapping(3), DefaultPolicy(), 16)

	tgt := s.Target(key)
	if tgt == nil {
		t.Fatal("target not created")
	}
	for i, want := range raw {
		if tgt.Gauge()[i] != want || tgt.Slew()[i] != want {
			t.Errorf("element %d: gauge=%v slew=%v, want both %v", i, tgt.Gauge()[i], tgt.Slew()[i], want)
		}
	}
}

func TestApply_SlewConverges(t *testing.T) {
	s := NewState()
	key := scalarKey("ring", "radius")
	pol := Policy{TauMs: 100, Post: PostSlew}

	s.Apply(key, []float32{0}, domain.IdentityMapping(1), pol, 16)
	// Step input jumps to 1; slew should approach it without reaching it
	// in one frame.
	s.Apply(key, []float32{1}, domain.IdentityMapping(1), pol, 16)

	slew := s.Values(key)[0]
	if slew <= 0 || slew >= 1 {
		t.Fatalf("slew after one frame = %v, want strictly between 0 and 1", slew)
	}
	wantCoeff := 1 - float32(math.Exp(-16.0/100.0))
	if math.Abs(float64(slew-wantCoeff)) > 1e-6 {
		t.Errorf("slew = %v, want %v", slew, wantCoeff)
	}

	// Many frames with a held input converge.
	for i := 0; i < 200; i++ {
		s.Apply(key, []float32{1}, domain.IdentityMapping(1), pol, 16)
	}
	if got := s.Values(key)[0]; math.Abs(float64(got-1)) > 1e-4 {
		t.Errorf("slew after convergence = %v, want ~1", got)
	}
}

func TestApply_PostNoneBypassesFilter(t *testing.T) {
	s := NewState()
	key := scalarKey("ring", "phase")
	pol := Policy{TauMs: 1000, Post: PostNone}

	s.Apply(key, []float32{0}, domain.IdentityMapping(1), pol, 16)
	s.Apply(key, []float32{5}, domain.IdentityMapping(1), pol, 16)

	if got := s.Values(key)[0]; got != 5 {
		t.Errorf("PostNone slew = %v, want raw value 5", got)
	}
}

func TestApply_RemapCarriesState(t *testing.T) {
	s := NewState()
	key := scalarKey("ring", "radius")
	pol := Policy{TauMs: 100, Post: PostSlew}

	// Four elements, slews mid-flight toward 1.
	s.Apply(key, []float32{0, 0, 0, 0}, domain.IdentityMapping(4), pol, 16)
	s.Apply(key, []float32{1, 1, 1, 1}, domain.IdentityMapping(4), pol, 16)
	before := append([]float32(nil), s.Values(key)...)

	// Population shrinks: element 0 dropped, survivors shift down.
	mapping := domain.Mapping{Count: 3, NewToOld: []int{1, 2, 3}}
	s.Apply(key, []float32{1, 1, 1}, mapping, pol, 16)

	tgt := s.Target(key)
	if tgt.Count() != 3 {
		t.Fatalf("Count = %d, want 3", tgt.Count())
	}
	// Survivors carried their mid-flight slew and advanced one more step;
	// they must not have snapped to the raw value.
	for i := 0; i < 3; i++ {
		got := tgt.Slew()[i]
		if got <= before[i+1] || got >= 1 {
			t.Errorf("survivor %d slew = %v, want between %v and 1", i, got, before[i+1])
		}
	}
}

func TestApply_NewElementInitializesFromRaw(t *testing.T) {
	s := NewState()
	key := scalarKey("ring", "radius")
	pol := Policy{TauMs: 100, Post: PostSlew}

	s.Apply(key, []float32{0, 0}, domain.IdentityMapping(2), pol, 16)

	// Grow by one; the new element's raw value is far from the others.
	mapping := domain.Mapping{Count: 3, NewToOld: []int{0, 1, domain.NoPrior}}
	s.Apply(key, []float32{0, 0, 7}, mapping, pol, 16)

	tgt := s.Target(key)
	if got := tgt.Gauge()[2]; got != 7 {
		t.Errorf("new element gauge = %v, want 7", got)
	}
	if got := tgt.Slew()[2]; got != 7 {
		t.Errorf("new element slew = %v, want 7 (no smoothing lag on first appearance)", got)
	}
}

func TestApply_PositionStride(t *testing.T) {
	s := NewState()
	key := TargetKey{Instance: "ring", Field: "position", Semantic: SemanticPosition}
	raw := []float32{0.1, 0.2, 0.3, 0.4} // two elements, stride 2

	s.Apply(key, raw, domain.IdentityMapping(2), Policy{Post: PostNone}, 16)

	tgt := s.Target(key)
	if tgt.Count() != 2 {
		t.Errorf("Count = %d, want 2", tgt.Count())
	}
	if len(tgt.Gauge()) != 4 {
		t.Errorf("gauge length = %d, want count*stride = 4", len(tgt.Gauge()))
	}

	// Remap swapping the two elements carries both components.
	mapping := domain.Mapping{Count: 2, NewToOld: []int{1, 0}}
	s.Apply(key, []float32{0.3, 0.4, 0.1, 0.2}, mapping, Policy{Post: PostNone}, 16)
	got := s.Values(key)
	want := []float32{0.3, 0.4, 0.1, 0.2}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("slew[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestObserve_ReportsChangeOnce(t *testing.T) {
	s := NewState()
	inst := &domain.Instance{Count: 3, Identity: domain.IdentityStable, ElementIDs: []uint32{10, 11, 12}}

	changed, _ := s.Observe("ring", inst, 16)
	if !changed {
		t.Error("first observation must report changed")
	}
	changed, m := s.Observe("ring", inst, 16)
	if changed {
		t.Error("identical population must report unchanged")
	}
	if !m.IsIdentity() {
		t.Error("unchanged population must map identically")
	}
}

func TestObserve_SnapshotDoesNotAliasInput(t *testing.T) {
	s := NewState()
	ids := []uint32{10, 11}
	inst := &domain.Instance{Count: 2, Identity: domain.IdentityStable, ElementIDs: ids}
	s.Observe("ring", inst, 16)

	// The arena recycles the id buffer; the stored snapshot must not see it.
	ids[0] = 99
	changed, _ := s.Observe("ring", &domain.Instance{Count: 2, Identity: domain.IdentityStable, ElementIDs: []uint32{10, 11}}, 16)
	if changed {
		t.Error("snapshot aliased the frame-scoped id buffer")
	}
}

func TestPresence_EntranceRamp(t *testing.T) {
	s := NewState()
	inst := &domain.Instance{Count: 2, Identity: domain.IdentityStable, ElementIDs: []uint32{1, 2}}

	s.Observe("ring", inst, 100)
	w := s.Presence("ring", 400, ease.Linear)
	if w == nil {
		t.Fatal("Presence returned nil for an observed instance")
	}
	for i, got := range w {
		if math.Abs(float64(got-0.25)) > 1e-5 {
			t.Errorf("weight[%d] = %v, want 0.25 after 100ms of 400ms", i, got)
		}
	}

	// A survivor keeps its clock across a remap; the newcomer restarts.
	grown := &domain.Instance{Count: 3, Identity: domain.IdentityStable, ElementIDs: []uint32{1, 2, 3}}
	s.Observe("ring", grown, 100)
	w = s.Presence("ring", 400, ease.Linear)
	if math.Abs(float64(w[0]-0.5)) > 1e-5 {
		t.Errorf("survivor weight = %v, want 0.5", w[0])
	}
	if math.Abs(float64(w[2]-0.25)) > 1e-5 {
		t.Errorf("newcomer weight = %v, want 0.25", w[2])
	}

	// Past the ramp, weights clamp to 1.
	for i := 0; i < 10; i++ {
		s.Observe("ring", grown, 100)
	}
	for i, got := range s.Presence("ring", 400, ease.Linear) {
		if got != 1 {
			t.Errorf("weight[%d] = %v, want 1 after ramp", i, got)
		}
	}
}

func TestPresence_DisabledReturnsNil(t *testing.T) {
	s := NewState()
	if s.Presence("ring", 0, ease.Linear) != nil {
		t.Error("Presence with zero duration should be nil")
	}
	if s.Presence("never-observed", 400, ease.Linear) != nil {
		t.Error("Presence for an unobserved instance should be nil")
	}
}
