package vivid

import (
	"github.com/gogpu/gputypes"
	"golang.org/x/image/math/f32"

	"github.com/gogpu/vivid/camera"
	"github.com/gogpu/vivid/topology"
)

// FillRule selects how overlapping path regions fill.
type FillRule uint8

// Fill rule constants.
const (
	// FillNonZero fills by winding number.
	FillNonZero FillRule = iota
	// FillEvenOdd fills by crossing parity.
	FillEvenOdd
)

// String returns a human-readable name for the fill rule.
func (f FillRule) String() string {
	switch f {
	case FillNonZero:
		return "NonZero"
	case FillEvenOdd:
		return "EvenOdd"
	default:
		return "Unknown"
	}
}

// DrawOp is one batched unit of instanced geometry, transforms, and style
// handed to a rendering backend. Draw operations are created anew every
// frame, consumed immediately, and discarded.
//
// World-space fields are always present. When the frame carried a camera
// context, Screen holds the projection output alongside them — screen data
// never replaces world data.
type DrawOp struct {
	// Topology is the shared shape family of every instance in the op.
	Topology topology.ID

	// Verbs and ControlPoints describe the local-space outline of path
	// topologies. Empty for primitives.
	Verbs         []topology.Verb
	ControlPoints []f32.Vec2

	// Count is the number of instances drawn by this op.
	Count int

	// Position is the world-space instance position buffer,
	// PositionStride components per instance (2 or 3).
	Position       []float32
	PositionStride int

	// Screen is the projection output for these instances, nil when the
	// frame had no camera context. Backends must read Screen.Position
	// and Screen.Radius when present, falling back to Position and Size
	// otherwise, and perform only coordinate × viewport arithmetic.
	Screen *camera.Output

	// Color is the packed RGBA8 fill color buffer, 4 bytes per instance.
	Color []byte

	// Size is the uniform instance size (the step's scale signal).
	Size float64

	// SizePer optionally overrides Size per instance (entrance ramps).
	SizePer []float32

	// Rotation is an optional per-instance rotation buffer, radians.
	Rotation []float32

	// ScaleXY is an optional per-instance anisotropic scale buffer,
	// two components per instance.
	ScaleXY []float32

	// Fill is the fill rule for path topologies.
	Fill FillRule
}

// Target is the contract for backend rasterizer collaborators (canvas,
// SVG, GPU surfaces). Backends are screen-space only: they read
// `Screen.Position ?? Position` and `Screen.Radius ?? Size` as their
// coordinate source and perform nothing beyond coordinate × viewport
// arithmetic. No projection math, camera parameters, or world-space
// knowledge crosses this boundary.
type Target interface {
	// Width returns the target width in pixels.
	Width() int

	// Height returns the target height in pixels.
	Height() int

	// Format returns the pixel format of the target.
	Format() gputypes.TextureFormat

	// Draw rasterizes one frame's ordered draw operations.
	Draw(ops []DrawOp) error
}
