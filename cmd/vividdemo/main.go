// Command vividdemo drives the vivid render pipeline for a number of frames
// and prints the emitted draw operations and per-frame diagnostics.
//
// It animates a ring of elements whose population shrinks halfway through
// the run, demonstrating continuity-preserving remapping, and optionally
// tilts a perspective camera in over the first two seconds.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/gogpu/vivid"
	"github.com/gogpu/vivid/camera"
	"github.com/gogpu/vivid/continuity"
	"github.com/gogpu/vivid/domain"
)

const (
	slotPosition vivid.Slot = 1
	slotColor    vivid.Slot = 2
	slotScale    vivid.Slot = 3
)

func main() {
	var (
		frames = flag.Int("frames", 120, "number of frames to run")
		count  = flag.Int("count", 24, "initial element count")
		persp  = flag.Bool("persp", false, "use a perspective camera")
	)
	flag.Parse()

	asm := vivid.NewAssembler()
	ring := vivid.NewRing(*frames)
	asm.SetRecorder(ring)

	key := continuity.TargetKey{Instance: "ring", Field: "position", Semantic: continuity.SemanticPosition}
	pol := continuity.DefaultPolicy()

	// Tilt the perspective camera in over the first two seconds.
	tilt := gween.New(0, float32(35*math.Pi/180), 2.0, ease.OutQuad)

	const dtMs = 16.0
	for f := 0; f < *frames; f++ {
		n := *count
		if f >= *frames/2 {
			n = *count * 2 / 3
		}

		inst := ringInstance(n)
		_, m := asm.Session().Observe("ring", inst, dtMs)
		asm.Session().Apply(key, ringPositions(n, f), m, pol, dtMs)

		store := vivid.NewMapStore()
		store.Set(slotPosition, vivid.FloatBuffer{Handle: 1, Generation: uint32(f), Stride: 2, Data: asm.Session().Values(key)})
		store.Set(slotColor, vivid.ByteBuffer{Handle: 2, Generation: uint32(f), Stride: 4, Data: ringColors(n)})
		store.Set(slotScale, 0.02)

		frame := &vivid.Frame{
			Declarations: map[string]vivid.Declaration{"ring": {Count: n}},
			Buffers:      store,
			DeltaMs:      dtMs,
		}
		if *persp {
			cam := camera.DefaultPerspective()
			t, _ := tilt.Update(dtMs / 1000)
			cam.Perspective.Tilt = t
			frame.Camera = &cam
		} else {
			cam := camera.DefaultOrthographic()
			frame.Camera = &cam
		}

		scale := slotScale
		step := vivid.Step{
			Instance:     "ring",
			PositionSlot: slotPosition,
			ColorSlot:    slotColor,
			ScaleSlot:    &scale,
			Shape:        &vivid.ShapeSpec{Uniform: "polygon", Args: []float64{6}},
			Entrance:     &vivid.EntranceSpec{DurationMs: 500, Ease: ease.OutCubic},
		}

		ops, err := asm.Assemble(frame, step)
		if err != nil {
			log.Fatalf("frame %d: %v", f, err)
		}
		if f == 0 || f == *frames/2 || f == *frames-1 {
			describe(f, ops)
		}
	}

	var total, ops int
	for _, s := range ring.Frames() {
		total += int(s.Total)
		ops += s.Ops
	}
	fmt.Printf("ran %d frames, %d draw ops, avg %.2fµs/frame\n",
		ring.Len(), ops, float64(total)/float64(ring.Len())/1e3)
}

// ringInstance declares n elements with stable ids 100..100+n.
func ringInstance(n int) *domain.Instance {
	ids := make([]uint32, n)
	for i := range ids {
		ids[i] = uint32(100 + i)
	}
	return &domain.Instance{Count: n, Identity: domain.IdentityStable, ElementIDs: ids}
}

// ringPositions lays n elements on a slowly rotating circle.
func ringPositions(n, frame int) []float32 {
	pos := make([]float32, n*2)
	for i := 0; i < n; i++ {
		a := 2*math.Pi*float64(i)/float64(n) + float64(frame)*0.01
		pos[i*2] = float32(0.5 + 0.35*math.Cos(a))
		pos[i*2+1] = float32(0.5 + 0.35*math.Sin(a))
	}
	return pos
}

// ringColors cycles hues around the ring, packed RGBA8.
func ringColors(n int) []byte {
	col := make([]byte, n*4)
	for i := 0; i < n; i++ {
		col[i*4] = byte(255 * i / n)
		col[i*4+1] = byte(255 - 255*i/n)
		col[i*4+2] = 200
		col[i*4+3] = 255
	}
	return col
}

// describe prints a one-line summary of a frame's draw operations.
func describe(frame int, ops []vivid.DrawOp) {
	for _, op := range ops {
		visible := op.Count
		if op.Screen != nil {
			visible = 0
			for _, v := range op.Screen.Visible {
				if v {
					visible++
				}
			}
		}
		fmt.Printf("frame %3d: %v × %d (%d visible)\n", frame, op.Topology, op.Count, visible)
	}
}
