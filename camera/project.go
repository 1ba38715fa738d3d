// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package camera

import (
	"errors"
	"math"

	"golang.org/x/image/math/f32"
)

// Projection errors.
var (
	// ErrUnknownMode is returned for a Params value whose Mode tag is not
	// a known projection mode.
	ErrUnknownMode = errors.New("camera: unknown projection mode")

	// ErrShortBuffer is returned when the world buffer holds fewer than
	// count positions.
	ErrShortBuffer = errors.New("camera: world buffer shorter than count")
)

// Project maps count world-space positions with a uniform world radius to
// screen space under the given camera.
//
// Project is a pure function: it never mutates world, allocates all output
// buffers fresh on every call, and is fully deterministic — calling it again
// with the same inputs yields bit-identical output, regardless of any other
// projections performed in between.
func Project(world []f32.Vec3, worldRadius float32, count int, p Params) (*Output, error) {
	if count < 0 || count > len(world) {
		return nil, ErrShortBuffer
	}
	switch p.Mode {
	case Orthographic:
		return projectOrthographic(world, worldRadius, count, p.Orthographic), nil
	case Perspective:
		return projectPerspective(world, worldRadius, count, p.Perspective), nil
	default:
		return nil, ErrUnknownMode
	}
}

// projectOrthographic passes world xy through unchanged. z contributes only
// a linear depth sorting aid and near/far culling; there is no
// foreshortening, so the uniform world radius is the screen radius.
func projectOrthographic(world []f32.Vec3, worldRadius float32, count int, p OrthoParams) *Output {
	out := newOutput(count)
	span := p.Far - p.Near
	if span == 0 {
		span = 1
	}
	for i := 0; i < count; i++ {
		w := world[i]
		out.Position[i] = f32.Vec2{w[0], w[1]}
		out.Radius[i] = worldRadius
		out.Depth[i] = (w[2] - p.Near) / span
		out.Visible[i] = w[2] >= p.Near && w[2] <= p.Far
	}
	return out
}

// projectPerspective transforms each position into camera space via the
// yaw/tilt/distance/center extrinsics, then perspective-divides using the
// vertical field of view. Screen radius shrinks with camera-space depth.
func projectPerspective(world []f32.Vec3, worldRadius float32, count int, p PerspParams) *Output {
	out := newOutput(count)

	sinYaw, cosYaw := sincos(p.Yaw)
	sinTilt, cosTilt := sincos(p.Tilt)
	focal := float32(1) / float32(math.Tan(float64(p.FovY)/2))

	for i := 0; i < count; i++ {
		w := world[i]

		// Center-relative, yaw about the world z axis.
		x := w[0] - p.Center[0]
		y := w[1] - p.Center[1]
		z := w[2]
		xr := x*cosYaw - y*sinYaw
		yr := x*sinYaw + y*cosYaw

		// Tilt about the camera x axis.
		yc := yr*cosTilt + z*sinTilt
		zc := -yr*sinTilt + z*cosTilt

		// Camera sits at +Distance on its local z axis looking down -z.
		d := p.Distance - zc
		if d <= p.Near || d >= p.Far {
			// Behind the near plane or beyond the far plane; leave
			// the zero output values in place.
			continue
		}

		inv := focal / d
		sx := 0.5 + 0.5*xr*inv
		sy := 0.5 + 0.5*yc*inv
		r := worldRadius * inv

		out.Position[i] = f32.Vec2{sx, sy}
		out.Radius[i] = r
		out.Depth[i] = -d
		out.Visible[i] = sx+r >= 0 && sx-r <= 1 && sy+r >= 0 && sy-r <= 1
	}
	return out
}

func sincos(a float32) (sin, cos float32) {
	s, c := math.Sincos(float64(a))
	return float32(s), float32(c)
}
