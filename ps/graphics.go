// Copyright (c) 2026 The psdf authors.

package ps

import "math"

// SegmentKind distinguishes the elements of a Path.
type SegmentKind int

const (
	MoveTo SegmentKind = iota
	LineTo
	CurveTo
	Close
)

// Segment is one element of an accumulated path.
type Segment struct {
	Kind SegmentKind
	// Points holds the segment's control/end points: one for MoveTo/LineTo,
	// three for CurveTo (c1, c2, endpoint), none for Close.
	Points [][2]float64
}

// Matrix is the 2x3 affine current transformation matrix [a b c d e f],
// mapping user space (x,y) to device space via
//
//	x' = a*x + c*y + e
//	y' = b*x + d*y + f
type Matrix [6]float64

// Identity is the initial CTM.
var Identity = Matrix{1, 0, 0, 1, 0, 0}

// Translate applies a pre-multiplication translate(tx,ty) to m, per the
// convention this interpreter uses: only the translation column changes.
func (m Matrix) Translate(tx, ty float64) Matrix {
	a, b, c, d, e, f := m[0], m[1], m[2], m[3], m[4], m[5]
	return Matrix{a, b, c, d, a*tx + c*ty + e, b*tx + d*ty + f}
}

// Scale applies a pre-multiplication scale(sx,sy) to m.
func (m Matrix) Scale(sx, sy float64) Matrix {
	return Matrix{m[0] * sx, m[1] * sx, m[2] * sy, m[3] * sy, m[4], m[5]}
}

// Rotate applies a pre-multiplication rotate(degrees) to m.
func (m Matrix) Rotate(degrees float64) Matrix {
	theta := degrees * math.Pi / 180
	cos, sin := math.Cos(theta), math.Sin(theta)
	a, b, c, d := m[0], m[1], m[2], m[3]
	return Matrix{
		cos*a - sin*c,
		cos*b - sin*d,
		sin*a + cos*c,
		sin*b + cos*d,
		m[4], m[5],
	}
}

// RGB is a stroke/fill color.
type RGB struct{ R, G, B float64 }

// GraphicsState is the bundle of state path construction and painting
// operators read and mutate.
type GraphicsState struct {
	CurrentPoint [2]float64
	Path         []Segment
	CTM          Matrix
	LineWidth    float64
	Color        RGB
}

// NewGraphicsState returns the default state per §3: identity CTM,
// line width 1, black.
func NewGraphicsState() GraphicsState {
	return GraphicsState{
		CTM:       Identity,
		LineWidth: 1,
	}
}

// Clone returns a deep copy of gs, including its path, for gsave.
func (gs GraphicsState) Clone() GraphicsState {
	cp := gs
	cp.Path = make([]Segment, len(gs.Path))
	for i, seg := range gs.Path {
		seg.Points = append([][2]float64(nil), seg.Points...)
		cp.Path[i] = seg
	}
	return cp
}

// GraphicsStack is a non-empty stack of GraphicsState, always containing
// at least one entry.
type GraphicsStack struct {
	states []GraphicsState
}

// NewGraphicsStack returns a stack seeded with one default state.
func NewGraphicsStack() *GraphicsStack {
	return &GraphicsStack{states: []GraphicsState{NewGraphicsState()}}
}

// Current returns a pointer to the top state for in-place mutation.
func (g *GraphicsStack) Current() *GraphicsState {
	return &g.states[len(g.states)-1]
}

// Depth reports the number of states on the stack.
func (g *GraphicsStack) Depth() int {
	return len(g.states)
}

// Save pushes a deep copy of the current state (gsave).
func (g *GraphicsStack) Save() {
	g.states = append(g.states, g.Current().Clone())
}

// Restore pops the top state (grestore). It errors rather than leave the
// stack empty.
func (g *GraphicsStack) Restore() error {
	if len(g.states) <= 1 {
		return errStackUnderflow("grestore")
	}
	g.states = g.states[:len(g.states)-1]
	return nil
}
