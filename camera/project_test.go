// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package camera

import (
	"math"
	"reflect"
	"testing"

	"golang.org/x/image/math/f32"
)

func testWorld() []f32.Vec3 {
	return []f32.Vec3{
		{0.1, 0.1, 0.2},
		{0.5, 0.5, 0},
		{0.9, 0.25, -0.1},
	}
}

func TestProject_InputNeverMutated(t *testing.T) {
	world := testWorld()
	snapshot := append([]f32.Vec3(nil), world...)

	cams := []Params{DefaultOrthographic(), DefaultPerspective()}
	for _, cam := range cams {
		if _, err := Project(world, 0.03, len(world), cam); err != nil {
			t.Fatalf("Project(%v): %v", cam.Mode, err)
		}
		if !reflect.DeepEqual(world, snapshot) {
			t.Fatalf("Project(%v) mutated the world buffer", cam.Mode)
		}
	}
}

func TestProject_OutputDoesNotAliasInput(t *testing.T) {
	world := testWorld()
	out, err := Project(world, 0.03, len(world), DefaultOrthographic())
	if err != nil {
		t.Fatal(err)
	}

	// Writing into the output must not reach the input.
	out.Position[0] = f32.Vec2{99, 99}
	if world[0][0] == 99 {
		t.Error("output position buffer aliases the world buffer")
	}
}

func TestProject_ModeToggleIdempotent(t *testing.T) {
	world := testWorld()
	ortho := DefaultOrthographic()
	persp := DefaultPerspective()

	first, err := Project(world, 0.03, len(world), ortho)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Project(world, 0.03, len(world), persp); err != nil {
		t.Fatal(err)
	}
	again, err := Project(world, 0.03, len(world), ortho)
	if err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(first, again) {
		t.Error("ortho → persp → ortho did not reproduce the first output bit-identically")
	}
}

func TestProject_OrthoIdentityAtZZero(t *testing.T) {
	world := []f32.Vec3{{0.2, 0.8, 0}, {0.5, 0.5, 0}, {0, 1, 0}}
	out, err := Project(world, 0.04, len(world), DefaultOrthographic())
	if err != nil {
		t.Fatal(err)
	}
	for i, w := range world {
		if out.Position[i] != (f32.Vec2{w[0], w[1]}) {
			t.Errorf("position[%d] = %v, want %v", i, out.Position[i], f32.Vec2{w[0], w[1]})
		}
		if out.Radius[i] != 0.04 {
			t.Errorf("radius[%d] = %v, want 0.04", i, out.Radius[i])
		}
		if !out.Visible[i] {
			t.Errorf("visible[%d] = false, want true", i)
		}
	}
}

func TestProject_OrthoScenario(t *testing.T) {
	// World (0.1, 0.1, 0.2) with radius 0.03 under the default
	// orthographic camera stays where it is.
	world := []f32.Vec3{{0.1, 0.1, 0.2}}
	out, err := Project(world, 0.03, 1, DefaultOrthographic())
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(float64(out.Position[0][0]-0.1)) > 1e-6 || math.Abs(float64(out.Position[0][1]-0.1)) > 1e-6 {
		t.Errorf("position = %v, want ≈ (0.1, 0.1)", out.Position[0])
	}
	if math.Abs(float64(out.Radius[0]-0.03)) > 1e-6 {
		t.Errorf("radius = %v, want ≈ 0.03", out.Radius[0])
	}
	if !out.Visible[0] {
		t.Error("visible = false, want true")
	}
}

func TestProject_PerspectiveScenario(t *testing.T) {
	// The same point under a tilted perspective camera lands measurably
	// elsewhere but stays visible.
	world := []f32.Vec3{{0.1, 0.1, 0.2}}
	cam := DefaultPerspective()
	cam.Perspective.Tilt = 35 * math.Pi / 180

	out, err := Project(world, 0.03, 1, cam)
	if err != nil {
		t.Fatal(err)
	}
	if !out.Visible[0] {
		t.Fatal("visible = false, want true")
	}
	dx := math.Abs(float64(out.Position[0][0] - 0.1))
	dy := math.Abs(float64(out.Position[0][1] - 0.1))
	if dx < 0.01 && dy < 0.01 {
		t.Errorf("position = %v, want measurably different from (0.1, 0.1)", out.Position[0])
	}
	if out.Radius[0] <= 0 {
		t.Errorf("radius = %v, want > 0", out.Radius[0])
	}
}

func TestProject_PerspectiveForeshortens(t *testing.T) {
	// Two points at the camera center, one lifted toward the camera: the
	// nearer one projects larger.
	cam := DefaultPerspective()
	world := []f32.Vec3{{0.5, 0.5, 0}, {0.5, 0.5, 0.5}}
	out, err := Project(world, 0.03, 2, cam)
	if err != nil {
		t.Fatal(err)
	}
	if out.Radius[1] <= out.Radius[0] {
		t.Errorf("nearer radius %v should exceed farther radius %v", out.Radius[1], out.Radius[0])
	}
	if out.Depth[1] <= out.Depth[0] {
		t.Errorf("nearer depth %v should sort above farther depth %v", out.Depth[1], out.Depth[0])
	}
}

func TestProject_OrthoNearFarCulling(t *testing.T) {
	cam := Params{Mode: Orthographic, Orthographic: OrthoParams{Near: -1, Far: 1}}
	world := []f32.Vec3{{0.5, 0.5, 0}, {0.5, 0.5, 2}, {0.5, 0.5, -2}}
	out, err := Project(world, 0.03, 3, cam)
	if err != nil {
		t.Fatal(err)
	}
	want := []bool{true, false, false}
	for i := range want {
		if out.Visible[i] != want[i] {
			t.Errorf("visible[%d] = %v, want %v", i, out.Visible[i], want[i])
		}
	}
}

func TestProject_PerspectiveCulling(t *testing.T) {
	cam := DefaultPerspective()

	tests := []struct {
		name string
		pos  f32.Vec3
	}{
		{"behind near plane", f32.Vec3{0.5, 0.5, 1.95}},
		{"beyond far plane", f32.Vec3{0.5, 0.5, -200}},
		{"outside frustum", f32.Vec3{500, 0.5, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Project([]f32.Vec3{tt.pos}, 0.03, 1, cam)
			if err != nil {
				t.Fatal(err)
			}
			if out.Visible[0] {
				t.Errorf("visible = true for %v, want false", tt.pos)
			}
		})
	}
}

func TestProject_Errors(t *testing.T) {
	world := testWorld()

	if _, err := Project(world, 0.03, len(world)+1, DefaultOrthographic()); err != ErrShortBuffer {
		t.Errorf("err = %v, want ErrShortBuffer", err)
	}
	if _, err := Project(world, 0.03, len(world), Params{Mode: Mode(99)}); err != ErrUnknownMode {
		t.Errorf("err = %v, want ErrUnknownMode", err)
	}
}

func TestProject_Deterministic(t *testing.T) {
	world := testWorld()
	cam := DefaultPerspective()
	cam.Perspective.Yaw = 0.3
	cam.Perspective.Tilt = 0.6

	a, err := Project(world, 0.03, len(world), cam)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Project(world, 0.03, len(world), cam)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("repeated projection with identical inputs is not bit-identical")
	}
}
