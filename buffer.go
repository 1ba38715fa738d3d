package vivid

import (
	"fmt"

	"github.com/gogpu/vivid/topology"
)

// Slot is an opaque buffer identifier assigned by the upstream graph
// compiler. The evaluation engine materializes one typed buffer per slot
// per frame.
type Slot int

// FloatBuffer is a frame-scoped float array with Stride components per
// element. Positions use stride 2 (world xy) or 3 (world xyz); scalars use
// stride 1. The Handle/Generation pair is the arena identity used for
// cache keying.
type FloatBuffer struct {
	Handle     topology.Handle
	Generation uint32
	Stride     int
	Data       []float32
}

// Count returns the number of elements in the buffer.
func (b FloatBuffer) Count() int {
	if b.Stride == 0 {
		return 0
	}
	return len(b.Data) / b.Stride
}

// ByteBuffer is a frame-scoped packed byte array, Stride bytes per element.
// Colors use stride 4 (RGBA8).
type ByteBuffer struct {
	Handle     topology.Handle
	Generation uint32
	Stride     int
	Data       []byte
}

// BufferStore resolves slot ids to this frame's typed buffers. It is
// implemented by the upstream evaluation engine's buffer arena; the
// pipeline only reads through it.
//
// Resolution failures are hard errors: a missing slot or a type mismatch
// signals a compiler bug upstream, never a condition to default around.
type BufferStore interface {
	// Floats resolves a slot to a float buffer.
	Floats(slot Slot) (FloatBuffer, error)

	// Bytes resolves a slot to a packed byte buffer.
	Bytes(slot Slot) (ByteBuffer, error)

	// Shapes resolves a slot to a per-instance shape reference buffer.
	Shapes(slot Slot) (*topology.ShapeBuffer, error)

	// Scalar resolves a slot holding a single uniform signal value.
	Scalar(slot Slot) (float64, error)
}

// MapStore is a map-backed BufferStore. The evaluation engine uses its own
// arena-backed store in production; MapStore serves tests and small hosts.
type MapStore struct {
	slots map[Slot]any
}

// NewMapStore creates an empty MapStore.
func NewMapStore() *MapStore {
	return &MapStore{slots: make(map[Slot]any)}
}

// Set stores a value under a slot. Accepted types: FloatBuffer, ByteBuffer,
// *topology.ShapeBuffer, float64.
func (s *MapStore) Set(slot Slot, v any) {
	s.slots[slot] = v
}

// Floats implements BufferStore.
func (s *MapStore) Floats(slot Slot) (FloatBuffer, error) {
	v, ok := s.slots[slot]
	if !ok {
		return FloatBuffer{}, fmt.Errorf("%w: slot %d", ErrMissingSlot, slot)
	}
	b, ok := v.(FloatBuffer)
	if !ok {
		return FloatBuffer{}, fmt.Errorf("%w: slot %d holds %T, want FloatBuffer", ErrBufferType, slot, v)
	}
	return b, nil
}

// Bytes implements BufferStore.
func (s *MapStore) Bytes(slot Slot) (ByteBuffer, error) {
	v, ok := s.slots[slot]
	if !ok {
		return ByteBuffer{}, fmt.Errorf("%w: slot %d", ErrMissingSlot, slot)
	}
	b, ok := v.(ByteBuffer)
	if !ok {
		return ByteBuffer{}, fmt.Errorf("%w: slot %d holds %T, want ByteBuffer", ErrBufferType, slot, v)
	}
	return b, nil
}

// Shapes implements BufferStore.
func (s *MapStore) Shapes(slot Slot) (*topology.ShapeBuffer, error) {
	v, ok := s.slots[slot]
	if !ok {
		return nil, fmt.Errorf("%w: slot %d", ErrMissingSlot, slot)
	}
	b, ok := v.(*topology.ShapeBuffer)
	if !ok {
		return nil, fmt.Errorf("%w: slot %d holds %T, want *topology.ShapeBuffer", ErrBufferType, slot, v)
	}
	return b, nil
}

// Scalar implements BufferStore.
func (s *MapStore) Scalar(slot Slot) (float64, error) {
	v, ok := s.slots[slot]
	if !ok {
		return 0, fmt.Errorf("%w: slot %d", ErrMissingSlot, slot)
	}
	f, ok := v.(float64)
	if !ok {
		return 0, fmt.Errorf("%w: slot %d holds %T, want float64", ErrBufferType, slot, v)
	}
	return f, nil
}
