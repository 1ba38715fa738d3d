// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package topology describes shape families, partitions per-instance shape
// buffers into batchable groups, and slices instance buffers per group.
//
// A topology is a named shape family: either a primitive the backend draws
// analytically (circle, square) or a path family described by verbs and
// local-space control points. Shapes are referenced per instance through a
// packed ShapeRef; instances sharing a reference are grouped so they can be
// drawn in one batched operation.
package topology

import (
	"errors"
	"fmt"
	"math"

	"golang.org/x/image/math/f32"
)

// ID identifies a registered topology.
type ID uint16

// Built-in topology ids.
const (
	// Circle is an analytic circle primitive.
	Circle ID = iota
	// Square is an analytic axis-aligned square primitive.
	Square
	// Polygon is a regular polygon path with a configurable side count.
	Polygon
	// Star is a star path with configurable point count and inner radius.
	Star
	// Custom is a path whose control points live in a per-frame buffer
	// slot referenced by the ShapeRef.
	Custom
)

// String returns the registered name for the id.
func (id ID) String() string {
	if t := Lookup(id); t != nil {
		return t.Name
	}
	return unknownStr
}

// Kind distinguishes analytic primitives from path topologies.
type Kind uint8

// Kind constants.
const (
	// KindPrimitive shapes are drawn analytically by the backend and
	// carry no path data.
	KindPrimitive Kind = iota
	// KindPath shapes carry verbs and local-space control points.
	KindPath
)

// ParamDef is one named topology parameter with its default value.
type ParamDef struct {
	Name    string
	Default float64
}

// Topology is one registered shape family.
type Topology struct {
	ID     ID
	Name   string
	Kind   Kind
	Params []ParamDef

	// build constructs the local-space outline for a path topology from
	// its resolved parameter values. Nil for primitives and Custom.
	build func(args []float64) ([]Verb, []f32.Vec2)
}

// ErrUnknownTopology is returned when a patch references a topology name
// that is not registered.
var ErrUnknownTopology = errors.New("topology: unknown topology")

var registry = []*Topology{
	{ID: Circle, Name: "circle", Kind: KindPrimitive},
	{ID: Square, Name: "square", Kind: KindPrimitive},
	{
		ID: Polygon, Name: "polygon", Kind: KindPath,
		Params: []ParamDef{{Name: "sides", Default: 5}, {Name: "rotation", Default: 0}},
		build:  buildPolygon,
	},
	{
		ID: Star, Name: "star", Kind: KindPath,
		Params: []ParamDef{{Name: "points", Default: 5}, {Name: "inner", Default: 0.5}, {Name: "rotation", Default: 0}},
		build:  buildStar,
	},
	{ID: Custom, Name: "path", Kind: KindPath},
}

// Lookup returns the topology registered under id, or nil.
func Lookup(id ID) *Topology {
	if int(id) < len(registry) {
		return registry[id]
	}
	return nil
}

// Resolved is a uniform topology with its parameters bound and, for path
// topologies, its outline built in local space (unit scale, origin center).
type Resolved struct {
	Topology *Topology
	Args     []float64
	Verbs    []Verb
	Points   []f32.Vec2
}

// Resolve binds positional arguments onto a named topology's parameters.
// Missing trailing arguments fall back to the topology-defined defaults;
// extra arguments are ignored. Returns ErrUnknownTopology for an
// unregistered name.
func Resolve(name string, args []float64) (*Resolved, error) {
	var topo *Topology
	for _, t := range registry {
		if t.Name == name {
			topo = t
			break
		}
	}
	if topo == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTopology, name)
	}

	bound := make([]float64, len(topo.Params))
	for i, p := range topo.Params {
		if i < len(args) {
			bound[i] = args[i]
		} else {
			bound[i] = p.Default
		}
	}

	r := &Resolved{Topology: topo, Args: bound}
	if topo.build != nil {
		r.Verbs, r.Points = topo.build(bound)
	}
	return r, nil
}

// buildPolygon emits a closed regular polygon of unit circumradius.
func buildPolygon(args []float64) ([]Verb, []f32.Vec2) {
	sides := int(args[0])
	if sides < 3 {
		sides = 3
	}
	rotation := args[1]

	verbs := make([]Verb, 0, sides+1)
	points := make([]f32.Vec2, 0, sides)
	step := 2 * math.Pi / float64(sides)
	for i := 0; i < sides; i++ {
		a := rotation + step*float64(i)
		p := f32.Vec2{float32(math.Cos(a)), float32(math.Sin(a))}
		if i == 0 {
			verbs = append(verbs, VerbMoveTo)
		} else {
			verbs = append(verbs, VerbLineTo)
		}
		points = append(points, p)
	}
	verbs = append(verbs, VerbClose)
	return verbs, points
}

// buildStar emits a closed star alternating between unit outer radius and
// the inner radius parameter.
func buildStar(args []float64) ([]Verb, []f32.Vec2) {
	n := int(args[0])
	if n < 2 {
		n = 2
	}
	inner := args[1]
	rotation := args[2]

	verbs := make([]Verb, 0, 2*n+1)
	points := make([]f32.Vec2, 0, 2*n)
	step := math.Pi / float64(n)
	for i := 0; i < 2*n; i++ {
		r := 1.0
		if i%2 == 1 {
			r = inner
		}
		a := rotation + step*float64(i)
		p := f32.Vec2{float32(r * math.Cos(a)), float32(r * math.Sin(a))}
		if i == 0 {
			verbs = append(verbs, VerbMoveTo)
		} else {
			verbs = append(verbs, VerbLineTo)
		}
		points = append(points, p)
	}
	verbs = append(verbs, VerbClose)
	return verbs, points
}
