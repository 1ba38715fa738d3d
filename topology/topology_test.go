// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package topology

import (
	"errors"
	"math"
	"testing"
)

func TestResolve_Defaults(t *testing.T) {
	r, err := Resolve("polygon", nil)
	if err != nil {
		t.Fatal(err)
	}
	if r.Args[0] != 5 {
		t.Errorf("sides = %v, want default 5", r.Args[0])
	}
	if r.Topology.Kind != KindPath {
		t.Error("polygon should be a path topology")
	}
	// Five vertices plus the closing verb.
	if len(r.Points) != 5 {
		t.Errorf("got %d control points, want 5", len(r.Points))
	}
	if r.Verbs[0] != VerbMoveTo || r.Verbs[len(r.Verbs)-1] != VerbClose {
		t.Errorf("verbs = %v, want MoveTo ... Close", r.Verbs)
	}
}

func TestResolve_PositionalArgs(t *testing.T) {
	r, err := Resolve("star", []float64{6, 0.3})
	if err != nil {
		t.Fatal(err)
	}
	if r.Args[0] != 6 || r.Args[1] != 0.3 {
		t.Errorf("args = %v, want [6 0.3 0]", r.Args)
	}
	if r.Args[2] != 0 {
		t.Errorf("rotation = %v, want default 0", r.Args[2])
	}
	if len(r.Points) != 12 {
		t.Errorf("got %d control points, want 12", len(r.Points))
	}

	// Inner vertices sit at the inner radius.
	innerLen := math.Hypot(float64(r.Points[1][0]), float64(r.Points[1][1]))
	if math.Abs(innerLen-0.3) > 1e-5 {
		t.Errorf("inner vertex radius = %v, want 0.3", innerLen)
	}
}

func TestResolve_Primitive(t *testing.T) {
	r, err := Resolve("circle", nil)
	if err != nil {
		t.Fatal(err)
	}
	if r.Topology.Kind != KindPrimitive {
		t.Error("circle should be a primitive topology")
	}
	if r.Verbs != nil || r.Points != nil {
		t.Error("primitives carry no path data")
	}
}

func TestResolve_Unknown(t *testing.T) {
	_, err := Resolve("dodecahedron", nil)
	if !errors.Is(err, ErrUnknownTopology) {
		t.Errorf("err = %v, want ErrUnknownTopology", err)
	}
}

func TestVerb_PointCount(t *testing.T) {
	tests := []struct {
		verb Verb
		want int
	}{
		{VerbMoveTo, 1},
		{VerbLineTo, 1},
		{VerbQuadTo, 2},
		{VerbCubicTo, 3},
		{VerbClose, 0},
	}
	for _, tt := range tests {
		if got := tt.verb.PointCount(); got != tt.want {
			t.Errorf("%v.PointCount() = %d, want %d", tt.verb, got, tt.want)
		}
	}
}

func TestLookup(t *testing.T) {
	if topo := Lookup(Circle); topo == nil || topo.Name != "circle" {
		t.Errorf("Lookup(Circle) = %v", topo)
	}
	if Lookup(ID(999)) != nil {
		t.Error("Lookup of unregistered id should be nil")
	}
}
