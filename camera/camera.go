// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package camera provides pure world-space → screen-space projection.
//
// Camera parameters are a tagged union passed per call, never persisted as
// object state: switching between orthographic and perspective projection is
// just a different argument to the same function, with no state to
// reconstruct. Both kernels allocate fresh output buffers and never touch
// their input, so projection can be toggled freely without perturbing any
// upstream animation state.
package camera

import "golang.org/x/image/math/f32"

// Mode tags the camera parameter union.
type Mode uint8

// Camera mode constants.
const (
	// Orthographic projects world xy straight to screen xy, ignoring z
	// except for depth sorting and near/far culling.
	Orthographic Mode = iota
	// Perspective projects through yaw/tilt/distance extrinsics with a
	// vertical field of view, foreshortening size with depth.
	Perspective
)

// String returns a human-readable name for the mode.
func (m Mode) String() string {
	switch m {
	case Orthographic:
		return "Orthographic"
	case Perspective:
		return "Perspective"
	default:
		return "Unknown"
	}
}

// OrthoParams configures the orthographic kernel.
type OrthoParams struct {
	// Near and Far bound the visible z band. Elements with z outside
	// [Near, Far] are culled.
	Near, Far float32
}

// PerspParams configures the perspective kernel.
type PerspParams struct {
	// Distance is the camera's distance from the look-at center.
	Distance float32
	// FovY is the vertical field of view in radians.
	FovY float32
	// Yaw rotates the camera around the world z axis, in radians.
	Yaw float32
	// Tilt pitches the camera off the world plane, in radians.
	Tilt float32
	// Center is the world-space look-at point on the z=0 plane.
	Center f32.Vec2
	// Near and Far are the camera-space depth clip planes.
	Near, Far float32
}

// Params is the tagged camera union. Exactly one of the parameter sets is
// meaningful, selected by Mode. Params is a plain value: copy it, pass it
// per call, switch modes by passing a different value.
type Params struct {
	Mode         Mode
	Orthographic OrthoParams
	Perspective  PerspParams
}

// DefaultOrthographic returns an orthographic camera with a wide open z
// band, the passthrough camera used when a patch declares no projection of
// its own.
func DefaultOrthographic() Params {
	return Params{
		Mode:         Orthographic,
		Orthographic: OrthoParams{Near: -1000, Far: 1000},
	}
}

// DefaultPerspective returns a perspective camera looking straight down at
// the center of the unit square from distance 2 with a 45° vertical field
// of view.
func DefaultPerspective() Params {
	return Params{
		Mode: Perspective,
		Perspective: PerspParams{
			Distance: 2,
			FovY:     fovY45,
			Center:   f32.Vec2{0.5, 0.5},
			Near:     0.1,
			Far:      100,
		},
	}
}

// fovY45 is 45 degrees in radians.
const fovY45 = 0.7853981633974483

// Output is the result of projecting one population. All four buffers are
// freshly allocated by Project and never alias the world-space input.
type Output struct {
	// Position is the normalized [0,1] screen position per element.
	Position []f32.Vec2
	// Radius is the projected element radius in screen units.
	Radius []float32
	// Depth is a monotonic sorting aid; larger is nearer under both
	// modes. It is not a distance.
	Depth []float32
	// Visible reports whether the element survived near/far and frustum
	// culling.
	Visible []bool
}

func newOutput(count int) *Output {
	return &Output{
		Position: make([]f32.Vec2, count),
		Radius:   make([]float32, count),
		Depth:    make([]float32, count),
		Visible:  make([]bool, count),
	}
}
