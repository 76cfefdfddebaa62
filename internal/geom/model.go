// Package geom holds the model geometry: a point arena, a triangle mesh
// indexing into it, one flat color per triangle, in place rotation,
// backface culling and orthographic projection to screen coordinates.
package geom

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"fortio.org/log"
	"fortio.org/safecast"
)

var (
	ErrColorCount = errors.New("geom: color count does not match triangle count")
	ErrIndexRange = errors.New("geom: mesh index out of range")
)

// Tri is a triangle as three indices into the model's points. The order is
// the winding (sign of the normal) and the paint order in the mesh.
type Tri [3]int

// camera is the fixed view direction used by the visibility test.
var camera = Vec3{0, 0, 1}

// edgeOn is the |cos| of the view angle below which a face is edge on.
const edgeOn = 1e-9

// Model is a mutable point set with an immutable mesh and color table.
// Only the point positions change after construction.
type Model struct {
	points []Vec3
	mesh   []Tri
	colors []color.NRGBA
}

// Face is a visible triangle with its position in the mesh.
type Face struct {
	Index int
	Tri   Tri
	Color color.NRGBA
}

// DrawCommand is one triangle in screen space, ready to fill.
type DrawCommand struct {
	Points [3]image.Point
	Color  color.NRGBA
	Face   int
}

// New copies points, mesh and colors into a new model after checking that
// every index is in range and there is exactly one color per triangle.
func New(points []Vec3, mesh []Tri, colors []color.NRGBA) (*Model, error) {
	m := newModel(points, mesh, colors)
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

func newModel(points []Vec3, mesh []Tri, colors []color.NRGBA) *Model {
	return &Model{
		points: append([]Vec3(nil), points...),
		mesh:   append([]Tri(nil), mesh...),
		colors: append([]color.NRGBA(nil), colors...),
	}
}

// Validate checks the topology invariants.
func (m *Model) Validate() error {
	if len(m.colors) != len(m.mesh) {
		return fmt.Errorf("%w: %d colors for %d triangles", ErrColorCount, len(m.colors), len(m.mesh))
	}
	for i, t := range m.mesh {
		for _, vi := range t {
			if vi < 0 || vi >= len(m.points) {
				return fmt.Errorf("%w: triangle %d references point %d of %d", ErrIndexRange, i, vi, len(m.points))
			}
		}
	}
	return nil
}

func (m *Model) NumPoints() int    { return len(m.points) }
func (m *Model) NumTriangles() int { return len(m.mesh) }

// Points returns a copy of the current (rotated) points.
func (m *Model) Points() []Vec3 { return append([]Vec3(nil), m.points...) }

// Point returns the current position of point i.
func (m *Model) Point(i int) Vec3 { return m.points[i] }

func (m *Model) Mesh() []Tri { return append([]Tri(nil), m.mesh...) }

func (m *Model) Colors() []color.NRGBA { return append([]color.NRGBA(nil), m.colors...) }

// RotateX rotates every point by theta radians about the x axis.
func (m *Model) RotateX(theta float64) {
	c, s := math.Cos(theta), math.Sin(theta)
	for i, p := range m.points {
		m.points[i] = Vec3{
			p[0],
			p[1]*c - p[2]*s,
			p[1]*s + p[2]*c,
		}
	}
}

// RotateY rotates every point by theta radians about the y axis.
func (m *Model) RotateY(theta float64) {
	c, s := math.Cos(theta), math.Sin(theta)
	for i, p := range m.points {
		m.points[i] = Vec3{
			p[0]*c + p[2]*s,
			p[1],
			-p[0]*s + p[2]*c,
		}
	}
}

// RotateZ rotates every point by theta radians about the z axis.
func (m *Model) RotateZ(theta float64) {
	c, s := math.Cos(theta), math.Sin(theta)
	for i, p := range m.points {
		m.points[i] = Vec3{
			p[0]*c - p[1]*s,
			p[0]*s + p[1]*c,
			p[2],
		}
	}
}

func (m *Model) Rotate(axis Axis, theta float64) {
	switch axis {
	case AxisX:
		m.RotateX(theta)
	case AxisY:
		m.RotateY(theta)
	case AxisZ:
		m.RotateZ(theta)
	}
}

// Normal is the non normalized face normal (p1-p0)x(p2-p0) of t.
func (m *Model) Normal(t Tri) Vec3 {
	p0 := m.points[t[0]]
	e1 := m.points[t[1]].Sub(p0)
	e2 := m.points[t[2]].Sub(p0)
	return e1.Cross(e2)
}

// facing reports whether the angle between n and the camera exceeds a
// right angle. Edge on faces are not visible. ok is false for a degenerate
// (zero or non finite) normal.
func facing(n Vec3) (visible, ok bool) {
	l := n.Len()
	if l == 0 || math.IsNaN(l) || math.IsInf(l, 0) {
		return false, false
	}
	cosA := max(-1, min(1, n.Dot(camera)/l))
	if math.Abs(cosA) < edgeOn {
		return false, true
	}
	return math.Acos(cosA) > math.Pi/2, true
}

// Visible returns the faces that pass the backface test, in mesh order.
// Degenerate triangles are skipped.
func (m *Model) Visible() []Face {
	faces := make([]Face, 0, len(m.mesh))
	for i, t := range m.mesh {
		visible, ok := facing(m.Normal(t))
		if !ok {
			log.Debugf("geom: skipping degenerate triangle %d %v", i, t)
			continue
		}
		if visible {
			faces = append(faces, Face{Index: i, Tri: t, Color: m.colors[i]})
		}
	}
	return faces
}

// Project drops z and maps p to screen space around center, flipping y.
func Project(p Vec3, center image.Point) (image.Point, error) {
	x, err := safecast.Round[int](p[0])
	if err != nil {
		return image.Point{}, err
	}
	y, err := safecast.Round[int](p[1])
	if err != nil {
		return image.Point{}, err
	}
	return image.Point{X: x + center.X, Y: -y + center.Y}, nil
}

// DrawList projects the visible faces. The result is in paint order and is
// only valid until the next rotation.
func (m *Model) DrawList(center image.Point) []DrawCommand {
	faces := m.Visible()
	cmds := make([]DrawCommand, 0, len(faces))
next:
	for _, f := range faces {
		cmd := DrawCommand{Color: f.Color, Face: f.Index}
		for k, vi := range f.Tri {
			sp, err := Project(m.points[vi], center)
			if err != nil {
				log.Debugf("geom: skipping triangle %d: %v", f.Index, err)
				continue next
			}
			cmd.Points[k] = sp
		}
		cmds = append(cmds, cmd)
	}
	return cmds
}
