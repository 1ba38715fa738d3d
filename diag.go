package vivid

import (
	"sync"
	"time"
)

// FrameStats is the per-frame timing and cache breakdown of one assembly
// call.
type FrameStats struct {
	// GroupingTime is the time spent partitioning instances by topology.
	GroupingTime time.Duration
	// SlicingTime is the time spent slicing per-group instance buffers.
	SlicingTime time.Duration
	// Total is the wall time of the whole assembly call.
	Total time.Duration
	// CacheHits and CacheMisses are the group-cache deltas for this frame.
	CacheHits   uint64
	CacheMisses uint64
	// Ops is the number of draw operations emitted.
	Ops int
	// Skipped is the number of groups skipped as undrawable.
	Skipped int
}

// Recorder receives per-frame diagnostics. The authoring tool's inspector
// implements this; Ring is the library-provided implementation.
type Recorder interface {
	RecordFrame(FrameStats)
}

// DefaultRingCapacity is the default number of frames a Ring retains.
const DefaultRingCapacity = 240

// Ring is a fixed-capacity frame-stats ring buffer. Once full, each new
// frame overwrites the oldest. Safe for concurrent use so an inspector can
// read while the pipeline writes.
type Ring struct {
	mu     sync.Mutex
	frames []FrameStats
	next   int
	filled bool
}

// NewRing creates a ring retaining up to capacity frames. Non-positive
// capacities fall back to DefaultRingCapacity.
func NewRing(capacity int) *Ring {
	if capacity <= 0 {
		capacity = DefaultRingCapacity
	}
	return &Ring{frames: make([]FrameStats, capacity)}
}

// RecordFrame implements Recorder.
func (r *Ring) RecordFrame(s FrameStats) {
	r.mu.Lock()
	r.frames[r.next] = s
	r.next++
	if r.next == len(r.frames) {
		r.next = 0
		r.filled = true
	}
	r.mu.Unlock()
}

// Len returns the number of frames currently retained.
func (r *Ring) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.filled {
		return len(r.frames)
	}
	return r.next
}

// Frames returns the retained frames, oldest first, as a fresh copy.
func (r *Ring) Frames() []FrameStats {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.filled {
		return append([]FrameStats(nil), r.frames[:r.next]...)
	}
	out := make([]FrameStats, 0, len(r.frames))
	out = append(out, r.frames[r.next:]...)
	out = append(out, r.frames[:r.next]...)
	return out
}
