// Package vivid is the per-frame render core of a generative 2D animation
// engine built from a patch of signal/field blocks.
//
// # Overview
//
// Upstream evaluation materializes world-space buffers for each named
// population of repeated elements ("domain instances"). vivid turns those
// buffers into batched, screen-space draw operations while keeping element
// identity visually stable when the population grows, shrinks, or reorders,
// and while keeping camera projection fully decoupled from that continuity
// tracking. Switching between orthographic and perspective projection never
// perturbs animation state.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/vivid"
//	    "github.com/gogpu/vivid/camera"
//	)
//
//	asm := vivid.NewAssembler()
//	cam := camera.DefaultOrthographic()
//
//	// Per frame: the evaluation engine fills a Frame, the assembler
//	// emits draw operations for the backend rasterizer.
//	frame.Camera = &cam
//	ops, err := asm.Assemble(frame, step)
//
// # Architecture
//
// The pipeline is organized leaf-first:
//   - domain: population change detection and old→new continuity mapping
//   - continuity: gauge/slew buffers and temporal smoothing across remaps
//   - camera: pure orthographic and perspective projection kernels
//   - topology: shape registry, per-instance grouping, buffer slicing
//   - Root package: the render assembler orchestrating the above
//
// Rendering backends are external collaborators. They receive draw
// operations, are contractually screen-space only, and perform nothing but
// coordinate × viewport arithmetic. See [Target].
//
// # Coordinate System
//
// World space is the pre-projection, camera-independent frame produced by
// evaluation. Screen space is normalized [0,1] with origin at the top-left,
// X increasing right and Y increasing down. Angles are in radians.
//
// # Concurrency
//
// One call into the pipeline per animation frame, single-threaded and
// synchronous. The only state surviving across frames is the continuity
// session, owned by the caller and passed explicitly into every call.
package vivid

// Version information
const (
	// Version is the current version of the library
	Version = "0.2.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 2

	// VersionPatch is the patch version
	VersionPatch = 0
)
