package vivid

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/image/math/f32"

	"github.com/tanema/gween/ease"

	"github.com/gogpu/vivid/camera"
	"github.com/gogpu/vivid/continuity"
	"github.com/gogpu/vivid/topology"
)

// Declaration is one named population declared by the patch. Count is the
// evaluated count signal; it must be numeric, anything else is a compiler
// defect surfaced as ErrCountNotNumeric.
type Declaration struct {
	Count any
}

// Frame carries one frame's inputs from the evaluation engine.
type Frame struct {
	// Declarations maps instance ids to their evaluated declarations.
	Declarations map[string]Declaration

	// Buffers resolves slot ids to this frame's materialized buffers.
	Buffers BufferStore

	// Camera is the optional projection context. Nil means pure
	// world-space passthrough: no projection is performed and draw
	// operations carry no screen data.
	Camera *camera.Params

	// DeltaMs is the time since the previous frame in milliseconds.
	DeltaMs float32
}

// ShapeSpec declares a render step's shape: either a uniform topology by
// name with positional arguments, or a per-instance packed shape buffer.
type ShapeSpec struct {
	// Uniform is the topology name used when Slot is nil. Args are
	// mapped positionally onto the topology's named parameters, with
	// topology-defined defaults filling the rest.
	Uniform string
	Args    []float64

	// Slot, when set, selects per-instance shapes from a packed shape
	// reference buffer.
	Slot *Slot
}

// EntranceSpec opts a step into entrance ramping: newly appeared elements
// scale in over DurationMs through the easing function instead of popping.
type EntranceSpec struct {
	DurationMs float32
	Ease       ease.TweenFunc
}

// Step is one render sink of the patch: which population to draw and where
// its field buffers live.
type Step struct {
	// Instance names the population declaration this step draws.
	Instance string

	// PositionSlot holds world positions, stride 2 or 3.
	PositionSlot Slot

	// ColorSlot holds packed RGBA8 fill colors, 4 bytes per instance.
	ColorSlot Slot

	// ScaleSlot holds the uniform size signal. Required; per-instance
	// scale is unsupported and fails loudly.
	ScaleSlot *Slot

	// RotationSlot optionally holds per-instance rotation, stride 1.
	RotationSlot *Slot

	// ScaleXYSlot optionally holds per-instance anisotropic scale,
	// stride 2.
	ScaleXYSlot *Slot

	// Shape declares the step's shape. Required.
	Shape *ShapeSpec

	// Fill is the fill rule for uniform path shapes. Per-instance shapes
	// carry their rule in the shape reference flags.
	Fill FillRule

	// Entrance optionally enables entrance ramping for this step.
	Entrance *EntranceSpec
}

// Assembler turns a frame's world-space buffers into batched draw
// operations. It owns the continuity session and the topology group cache
// surviving across frames; construct one per runtime session.
type Assembler struct {
	session *continuity.State
	groups  *topology.GroupCache
	diag    Recorder
}

// NewAssembler creates an assembler with a fresh continuity session and an
// empty group cache.
func NewAssembler() *Assembler {
	return &Assembler{
		session: continuity.NewState(),
		groups:  topology.NewGroupCache(),
	}
}

// Session returns the assembler's continuity session. The caller runs
// Observe/Apply on it before assembly each frame.
func (a *Assembler) Session() *continuity.State { return a.session }

// GroupCache returns the topology group cache, exposed so the owning
// arena can evict recycled buffer handles.
func (a *Assembler) GroupCache() *topology.GroupCache { return a.groups }

// SetRecorder wires a diagnostics recorder. Nil disables recording.
func (a *Assembler) SetRecorder(r Recorder) { a.diag = r }

// Assemble runs one render step: resolves the step's population and
// buffers, optionally projects through the frame's camera, optionally
// groups per-instance shapes, and emits the frame's draw operations.
//
// Configuration errors abort the step and return a nil op list; the caller
// decides whether to skip the sink or abort the frame. Undrawable groups
// (primitive topologies under the per-instance path) are skipped with a
// logged warning and do not abort the step.
func (a *Assembler) Assemble(frame *Frame, step Step) ([]DrawOp, error) {
	start := time.Now()

	count, err := resolveCount(frame, step.Instance)
	if err != nil {
		return nil, err
	}

	pos, err := frame.Buffers.Floats(step.PositionSlot)
	if err != nil {
		return nil, fmt.Errorf("position: %w", err)
	}
	if pos.Stride != 2 && pos.Stride != 3 {
		return nil, fmt.Errorf("%w: position stride %d, want 2 or 3", ErrBufferType, pos.Stride)
	}
	if len(pos.Data) < count*pos.Stride {
		return nil, fmt.Errorf("%w: position buffer holds %d elements, step needs %d", ErrBufferType, pos.Count(), count)
	}

	col, err := frame.Buffers.Bytes(step.ColorSlot)
	if err != nil {
		return nil, fmt.Errorf("color: %w", err)
	}
	if col.Stride != 4 || len(col.Data) < count*4 {
		return nil, fmt.Errorf("%w: color buffer is not RGBA8 × count", ErrBufferType)
	}

	scale, err := a.resolveScale(frame, step)
	if err != nil {
		return nil, err
	}

	var rotation []float32
	if step.RotationSlot != nil {
		rb, err := frame.Buffers.Floats(*step.RotationSlot)
		if err != nil {
			return nil, fmt.Errorf("rotation: %w", err)
		}
		if rb.Stride != 1 || len(rb.Data) < count {
			return nil, fmt.Errorf("%w: rotation buffer is not scalar × count", ErrBufferType)
		}
		rotation = rb.Data[:count]
	}

	var scaleXY []float32
	if step.ScaleXYSlot != nil {
		sb, err := frame.Buffers.Floats(*step.ScaleXYSlot)
		if err != nil {
			return nil, fmt.Errorf("scale-xy: %w", err)
		}
		if sb.Stride != 2 || len(sb.Data) < count*2 {
			return nil, fmt.Errorf("%w: scale-xy buffer is not vec2 × count", ErrBufferType)
		}
		scaleXY = sb.Data[:count*2]
	}

	if step.Shape == nil {
		return nil, ErrMissingShape
	}

	// Projection attaches screen-space data alongside the world-space
	// fields; it never replaces them.
	var screen *camera.Output
	if frame.Camera != nil {
		world := promoteWorld(pos, count)
		screen, err = camera.Project(world, float32(scale), count, *frame.Camera)
		if err != nil {
			return nil, fmt.Errorf("projection: %w", err)
		}
	}

	var sizePer []float32
	if step.Entrance != nil {
		if w := a.session.Presence(step.Instance, step.Entrance.DurationMs, step.Entrance.Ease); w != nil && len(w) >= count {
			sizePer = make([]float32, count)
			for i := range sizePer {
				sizePer[i] = float32(scale) * w[i]
			}
		}
	}

	stats := FrameStats{}
	var ops []DrawOp
	if step.Shape.Slot != nil {
		ops, err = a.assembleGrouped(frame, step, count, pos, col, scale, rotation, scaleXY, sizePer, screen, &stats)
	} else {
		ops, err = assembleUniform(step, count, pos, col, scale, rotation, scaleXY, sizePer, screen)
	}
	if err != nil {
		return nil, err
	}

	stats.Total = time.Since(start)
	stats.Ops = len(ops)
	if a.diag != nil {
		a.diag.RecordFrame(stats)
	}
	Logger().Debug("assembled render step",
		"instance", step.Instance,
		"count", count,
		"ops", len(ops),
		"skipped", stats.Skipped,
		"total", stats.Total,
	)
	return ops, nil
}

// assembleUniform emits a single draw operation covering all instances of
// a uniformly shaped step.
func assembleUniform(step Step, count int, pos FloatBuffer, col ByteBuffer, scale float64, rotation, scaleXY, sizePer []float32, screen *camera.Output) ([]DrawOp, error) {
	resolved, err := topology.Resolve(step.Shape.Uniform, step.Shape.Args)
	if err != nil {
		return nil, err
	}

	op := DrawOp{
		Topology:       resolved.Topology.ID,
		Verbs:          resolved.Verbs,
		ControlPoints:  resolved.Points,
		Count:          count,
		Position:       pos.Data[:count*pos.Stride],
		PositionStride: pos.Stride,
		Screen:         screen,
		Color:          col.Data[:count*4],
		Size:           scale,
		SizePer:        sizePer,
		Rotation:       rotation,
		ScaleXY:        scaleXY,
		Fill:           step.Fill,
	}
	return []DrawOp{op}, nil
}

// assembleGrouped partitions per-instance shapes by topology and emits one
// draw operation per drawable group, each carrying its sliced buffer
// subsets.
func (a *Assembler) assembleGrouped(frame *Frame, step Step, count int, pos FloatBuffer, col ByteBuffer, scale float64, rotation, scaleXY, sizePer []float32, screen *camera.Output, stats *FrameStats) ([]DrawOp, error) {
	shapes, err := frame.Buffers.Shapes(*step.Shape.Slot)
	if err != nil {
		return nil, fmt.Errorf("shape: %w", err)
	}

	before := a.groups.Stats()
	groupStart := time.Now()
	groups := a.groups.GroupByTopology(shapes, count)
	stats.GroupingTime = time.Since(groupStart)
	after := a.groups.Stats()
	stats.CacheHits = after.Hits - before.Hits
	stats.CacheMisses = after.Misses - before.Misses

	sliceStart := time.Now()
	ops := make([]DrawOp, 0, len(groups))
	for _, g := range groups {
		topo := topology.Lookup(g.Topology)
		if topo == nil || topo.Kind == topology.KindPrimitive {
			// Primitive topologies are not yet drawable in the
			// batched per-instance path. Skip the group, keep the
			// frame.
			stats.Skipped++
			Logger().Warn("skipping per-instance group with undrawable topology",
				"instance", step.Instance,
				"topology", g.Topology,
				"instances", len(g.Indices),
			)
			continue
		}

		verbs, points, err := groupOutline(frame, topo, g, shapes)
		if err != nil {
			return nil, err
		}

		fill := step.Fill
		if g.Flags&topology.FlagEvenOdd != 0 {
			fill = FillEvenOdd
		}

		op := DrawOp{
			Topology:       g.Topology,
			Verbs:          verbs,
			ControlPoints:  points,
			Count:          len(g.Indices),
			Position:       topology.SliceStrided(pos.Data[:count*pos.Stride], pos.Stride, g.Indices),
			PositionStride: pos.Stride,
			Color:          topology.SliceStrided(col.Data[:count*4], 4, g.Indices),
			Size:           scale,
			Fill:           fill,
		}
		if screen != nil {
			op.Screen = &camera.Output{
				Position: topology.Slice(screen.Position, g.Indices),
				Radius:   topology.Slice(screen.Radius, g.Indices),
				Depth:    topology.Slice(screen.Depth, g.Indices),
				Visible:  topology.Slice(screen.Visible, g.Indices),
			}
		}
		if rotation != nil {
			op.Rotation = topology.Slice(rotation, g.Indices)
		}
		if scaleXY != nil {
			op.ScaleXY = topology.SliceStrided(scaleXY, 2, g.Indices)
		}
		if sizePer != nil {
			op.SizePer = topology.Slice(sizePer, g.Indices)
		}
		ops = append(ops, op)
	}
	stats.SlicingTime = time.Since(sliceStart)
	return ops, nil
}

// groupOutline resolves the verbs and local-space control points for one
// per-instance group. Registry path topologies use their default outline;
// Custom groups read their control points from the referenced slot.
func groupOutline(frame *Frame, topo *topology.Topology, g topology.Group, shapes *topology.ShapeBuffer) ([]topology.Verb, []f32.Vec2, error) {
	if topo.ID != topology.Custom {
		resolved, err := topology.Resolve(topo.Name, nil)
		if err != nil {
			return nil, nil, err
		}
		return resolved.Verbs, resolved.Points, nil
	}

	cp, err := frame.Buffers.Floats(Slot(g.Slot))
	if err != nil {
		return nil, nil, fmt.Errorf("control points: %w", err)
	}
	if cp.Stride != 2 {
		return nil, nil, fmt.Errorf("%w: control-point buffer stride %d, want 2", ErrBufferType, cp.Stride)
	}

	n := int(shapes.Refs[g.Indices[0]].PointsCount())
	if n > cp.Count() {
		n = cp.Count()
	}
	points := make([]f32.Vec2, n)
	verbs := make([]topology.Verb, 0, n+1)
	for i := 0; i < n; i++ {
		points[i] = f32.Vec2{cp.Data[i*2], cp.Data[i*2+1]}
		if i == 0 {
			verbs = append(verbs, topology.VerbMoveTo)
		} else {
			verbs = append(verbs, topology.VerbLineTo)
		}
	}
	verbs = append(verbs, topology.VerbClose)
	return verbs, points, nil
}

// resolveCount resolves a step's instance declaration to an element count.
func resolveCount(frame *Frame, instance string) (int, error) {
	decl, ok := frame.Declarations[instance]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownInstance, instance)
	}
	var n int
	switch v := decl.Count.(type) {
	case int:
		n = v
	case int64:
		n = int(v)
	case float64:
		n = int(v)
	case float32:
		n = int(v)
	default:
		return 0, fmt.Errorf("%w: %q count is %T", ErrCountNotNumeric, instance, decl.Count)
	}
	if n < 0 {
		n = 0
	}
	return n, nil
}

// resolveScale resolves the required uniform scale signal, rejecting
// per-instance buffers loudly.
func (a *Assembler) resolveScale(frame *Frame, step Step) (float64, error) {
	if step.ScaleSlot == nil {
		return 0, ErrMissingScale
	}
	v, err := frame.Buffers.Scalar(*step.ScaleSlot)
	if err == nil {
		return v, nil
	}
	if errors.Is(err, ErrBufferType) {
		if _, ferr := frame.Buffers.Floats(*step.ScaleSlot); ferr == nil {
			return 0, fmt.Errorf("%w: slot %d", ErrPerInstanceScale, *step.ScaleSlot)
		}
	}
	return 0, fmt.Errorf("scale: %w", err)
}

// promoteWorld lifts a stride-2 or stride-3 position buffer into the
// 3-component world layout projection expects, with z=0 for flat input.
func promoteWorld(pos FloatBuffer, count int) []f32.Vec3 {
	world := make([]f32.Vec3, count)
	if pos.Stride == 3 {
		for i := 0; i < count; i++ {
			world[i] = f32.Vec3{pos.Data[i*3], pos.Data[i*3+1], pos.Data[i*3+2]}
		}
		return world
	}
	for i := 0; i < count; i++ {
		world[i] = f32.Vec3{pos.Data[i*2], pos.Data[i*2+1], 0}
	}
	return world
}
