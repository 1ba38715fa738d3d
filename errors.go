package vivid

import "errors"

// Assembly errors. All of these are configuration errors: they indicate an
// upstream compiler or wiring defect and abort assembly of the affected
// render step. They are never silently defaulted, since a default would mask
// the real bug.
var (
	// ErrUnknownInstance is returned when a render step references an
	// instance declaration that does not exist.
	ErrUnknownInstance = errors.New("vivid: unknown instance declaration")

	// ErrCountNotNumeric is returned when an instance declaration's count
	// did not evaluate to a number.
	ErrCountNotNumeric = errors.New("vivid: instance count is not numeric")

	// ErrMissingSlot is returned when a referenced buffer slot is absent
	// from the buffer store.
	ErrMissingSlot = errors.New("vivid: buffer slot not found")

	// ErrBufferType is returned when a slot holds a buffer of the wrong
	// underlying type or stride.
	ErrBufferType = errors.New("vivid: buffer has wrong type")

	// ErrMissingScale is returned when a render step declares no scale.
	ErrMissingScale = errors.New("vivid: scale is required")

	// ErrPerInstanceScale is returned when scale resolves to a
	// per-instance buffer. Scale must be a single uniform signal value.
	ErrPerInstanceScale = errors.New("vivid: per-instance scale is unsupported")

	// ErrMissingShape is returned when a render step declares no shape.
	ErrMissingShape = errors.New("vivid: shape is required")
)
