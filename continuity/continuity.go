// Package continuity keeps per-element animation state visually stable
// across frames.
//
// Each tracked (instance, field, semantic) combination owns a gauge buffer
// (latest authoritative values, reindexed to the current population) and a
// slew buffer (temporally filtered values consumed downstream). When the
// population is remapped, surviving elements carry their gauge/slew pair to
// their new index; newly appeared elements start from this frame's raw value
// with no smoothing lag.
//
// The package reads neither camera parameters nor projection output:
// continuity state is identical regardless of projection mode.
package continuity

// Semantic classifies what a tracked field means. The semantic is the single
// source of truth for the per-element component stride; it is never inferred
// from storage layout.
type Semantic uint8

// Semantic constants.
const (
	// SemanticScalar is a one-component value (radius, opacity, phase...).
	SemanticScalar Semantic = iota
	// SemanticPosition is a two-component world-space position.
	SemanticPosition
)

// Stride returns the number of float components per element.
func (s Semantic) Stride() int {
	if s == SemanticPosition {
		return 2
	}
	return 1
}

// String returns a short name for the semantic, used in target keys.
func (s Semantic) String() string {
	switch s {
	case SemanticPosition:
		return "pos"
	case SemanticScalar:
		return "scalar"
	default:
		return "unknown"
	}
}

// TargetKey identifies one tracked combination of instance, field, and
// semantic, e.g. {"ring", "position", SemanticPosition}.
type TargetKey struct {
	Instance string
	Field    string
	Semantic Semantic
}

// String renders the key in field:instance:semantic form.
func (k TargetKey) String() string {
	return k.Field + ":" + k.Instance + ":" + k.Semantic.String()
}

// PostMode selects the temporal filter applied after the gauge update.
type PostMode uint8

// Post mode constants.
const (
	// PostSlew applies the exponential slew filter; downstream consumes
	// the filtered buffer.
	PostSlew PostMode = iota
	// PostNone skips filtering; downstream consumes the gauge directly.
	PostNone
)

// Policy configures smoothing for one target.
type Policy struct {
	// TauMs is the slew filter time constant in milliseconds. Values
	// <= 0 snap immediately.
	TauMs float32

	// Post selects the filter mode.
	Post PostMode
}

// DefaultPolicy returns the policy used when a patch does not specify one:
// slew filtering with a 120ms time constant.
func DefaultPolicy() Policy {
	return Policy{TauMs: 120, Post: PostSlew}
}

// Target holds the gauge/slew buffer pair for one tracked key. Buffer
// length always equals the current population count times the semantic
// stride.
type Target struct {
	gauge  []float32
	slew   []float32
	stride int
}

// Gauge returns the latest authoritative values. The slice is owned by the
// target; callers must not mutate it.
func (t *Target) Gauge() []float32 { return t.gauge }

// Slew returns the temporally filtered values consumed downstream. The
// slice is owned by the target; callers must not mutate it.
func (t *Target) Slew() []float32 { return t.slew }

// Count returns the number of elements currently tracked.
func (t *Target) Count() int {
	if t.stride == 0 {
		return 0
	}
	return len(t.gauge) / t.stride
}
