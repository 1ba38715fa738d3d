package vivid

import (
	"math"
	"testing"

	"golang.org/x/image/math/f32"
)

func TestVecHelpers(t *testing.T) {
	a := V2(1, 2)
	b := V2(3, -1)

	if Add2(a, b) != (f32.Vec2{4, 1}) {
		t.Errorf("Add2 = %v", Add2(a, b))
	}
	if Sub2(a, b) != (f32.Vec2{-2, 3}) {
		t.Errorf("Sub2 = %v", Sub2(a, b))
	}
	if Mul2(a, 2) != (f32.Vec2{2, 4}) {
		t.Errorf("Mul2 = %v", Mul2(a, 2))
	}
	if Dot2(a, b) != 1 {
		t.Errorf("Dot2 = %v, want 1", Dot2(a, b))
	}
	if got := Length2(V2(3, 4)); math.Abs(float64(got-5)) > 1e-6 {
		t.Errorf("Length2 = %v, want 5", got)
	}
	if DistSq2(a, b) != 13 {
		t.Errorf("DistSq2 = %v, want 13", DistSq2(a, b))
	}
	if Lerp2(a, b, 0.5) != (f32.Vec2{2, 0.5}) {
		t.Errorf("Lerp2 = %v", Lerp2(a, b, 0.5))
	}
	if XY(V3(7, 8, 9)) != (f32.Vec2{7, 8}) {
		t.Errorf("XY = %v", XY(V3(7, 8, 9)))
	}
}
