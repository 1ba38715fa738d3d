// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package topology

// SliceStrided extracts the elements of buf selected by indices, where each
// element spans stride consecutive entries. indices must be ascending (as
// produced by GroupByTopology).
//
// When the indices form a contiguous run — checked in O(1) since the input
// is sorted — the result is a zero-copy sub-view of buf; otherwise the
// elements are copied into a freshly allocated buffer. The two paths are
// observationally identical to callers: same values, read-only use either
// way. Views are capacity-capped, so appending to one cannot clobber the
// original buffer.
func SliceStrided[T any](buf []T, stride int, indices []int) []T {
	if len(indices) == 0 {
		return nil
	}

	first, last := indices[0], indices[len(indices)-1]
	if last-first == len(indices)-1 {
		lo, hi := first*stride, (last+1)*stride
		return buf[lo:hi:hi]
	}

	out := make([]T, 0, len(indices)*stride)
	for _, i := range indices {
		out = append(out, buf[i*stride:(i+1)*stride]...)
	}
	return out
}

// Slice is SliceStrided for one-component elements.
func Slice[T any](buf []T, indices []int) []T {
	return SliceStrided(buf, 1, indices)
}
