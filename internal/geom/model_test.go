package geom

import (
	"errors"
	"image"
	"image/color"
	"math"
	"slices"
	"testing"

	"fortio.org/assert"
)

const eps = 1e-9

func near(a, b Vec3, tol float64) bool {
	return a.Sub(b).Len() <= tol
}

func probe() *Model {
	return newModel([]Vec3{{10, 20, 30}, {-7.5, 3, 0.25}, {0, 0, 0}, {123, -45, 6}}, nil, nil)
}

func TestRotationIsIsometry(t *testing.T) {
	for _, axis := range []Axis{AxisX, AxisY, AxisZ} {
		for _, theta := range []float64{0, 0.0025, -0.3, 1, math.Pi, 5.5, -12} {
			m := probe()
			before := m.Points()
			m.Rotate(axis, theta)
			for i, p := range m.Points() {
				if math.Abs(p.Len()-before[i].Len()) > eps {
					t.Fatalf("axis %v theta %v point %d: len %v, want %v", axis, theta, i, p.Len(), before[i].Len())
				}
			}
		}
	}
}

func TestRotationComposes(t *testing.T) {
	a, b := probe(), probe()
	a.RotateX(0.4)
	a.RotateX(1.1)
	b.RotateX(1.5)
	for i := range a.NumPoints() {
		if !near(a.Point(i), b.Point(i), eps) {
			t.Fatalf("point %d: %v, want %v", i, a.Point(i), b.Point(i))
		}
	}
}

func TestFullTurnIsIdentity(t *testing.T) {
	m := probe()
	before := m.Points()
	m.RotateY(2 * math.Pi)
	for i, p := range m.Points() {
		if !near(p, before[i], 1e-9) {
			t.Fatalf("point %d: %v, want %v", i, p, before[i])
		}
	}
}

func TestRotationFormulas(t *testing.T) {
	m := newModel([]Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}, nil, nil)
	m.RotateZ(math.Pi / 2)
	assert.True(t, near(m.Point(0), Vec3{0, 1, 0}, eps), "z: x axis goes to y")
	assert.True(t, near(m.Point(1), Vec3{-1, 0, 0}, eps), "z: y axis goes to -x")
	m.RotateX(math.Pi / 2)
	assert.True(t, near(m.Point(0), Vec3{0, 0, 1}, eps), "x: y axis goes to z")
	assert.True(t, near(m.Point(2), Vec3{0, -1, 0}, eps), "x: z axis goes to -y")
	m.RotateY(math.Pi / 2)
	assert.True(t, near(m.Point(0), Vec3{1, 0, 0}, eps), "y: z axis goes to x")
	assert.True(t, near(m.Point(1), Vec3{0, 0, 1}, eps), "y: -x axis goes to z")
}

func visibleIndices(m *Model) []int {
	var idx []int
	for _, f := range m.Visible() {
		idx = append(idx, f.Index)
	}
	return idx
}

func TestVisibilityStableUnderFullTurns(t *testing.T) {
	for _, m := range []*Model{Cube(150), Pyramid(150), TriangularPrism(150, 150)} {
		// Move off the axis aligned pose so no face is edge on.
		m.RotateX(0.3)
		m.RotateY(0.5)
		m.RotateZ(0.7)
		want := visibleIndices(m)
		assert.True(t, len(want) > 0, "something should be visible")
		for _, axis := range []Axis{AxisX, AxisY, AxisZ} {
			m.Rotate(axis, 2*math.Pi)
			m.Rotate(axis, -4*math.Pi)
			got := visibleIndices(m)
			if !slices.Equal(got, want) {
				t.Fatalf("axis %v: visible %v, want %v", axis, got, want)
			}
		}
	}
}

func TestVisibilityStableFromCanonicalPose(t *testing.T) {
	shapes := map[string]func() *Model{
		"cube":    func() *Model { return Cube(150) },
		"pyramid": func() *Model { return Pyramid(150) },
		"prism":   func() *Model { return TriangularPrism(150, 150) },
	}
	for name, build := range shapes {
		want := visibleIndices(build())
		for _, axis := range []Axis{AxisX, AxisY, AxisZ} {
			for _, turn := range []float64{2 * math.Pi, -2 * math.Pi, 4 * math.Pi} {
				m := build()
				m.Rotate(axis, turn)
				got := visibleIndices(m)
				if !slices.Equal(got, want) {
					t.Fatalf("%s axis %v turn %v: visible %v, want %v", name, axis, turn, got, want)
				}
			}
		}
	}
}

func TestEdgeOnFaceHidden(t *testing.T) {
	_, ok := facing(Vec3{1, 0, 0})
	assert.True(t, ok)
	visible, _ := facing(Vec3{1, 0, -1e-12})
	assert.False(t, visible, "drift around edge on stays hidden")
	visible, _ = facing(Vec3{1, 0, -1e-3})
	assert.True(t, visible)
}

func TestCubeStartsShowingBackFace(t *testing.T) {
	// Camera looks along +z; the z = -s side faces it. Side faces are edge on.
	assert.Equal(t, visibleIndices(Cube(150)), []int{0, 1})
}

func TestOppositeFacesNeverBothVisible(t *testing.T) {
	m := Cube(100)
	for range 200 {
		m.RotateX(0.05)
		m.RotateY(0.031)
		vis := visibleIndices(m)
		// mesh pairs: 0/1 back, 4/5 front; 2/3 right, 6/7 left; 8/9 top, 10/11 bottom.
		for _, pair := range [][2]int{{0, 4}, {2, 6}, {8, 10}} {
			if slices.Contains(vis, pair[0]) && slices.Contains(vis, pair[1]) {
				t.Fatalf("faces %d and %d both visible: %v", pair[0], pair[1], vis)
			}
		}
		assert.True(t, len(vis) <= 6, "at most three sides of a cube face the camera")
	}
}

func TestDegenerateFaceIsSkipped(t *testing.T) {
	m, err := New(
		[]Vec3{{0, 0, 0}, {10, 0, 0}, {0, -10, 0}},
		[]Tri{{0, 0, 1}, {0, 1, 2}},
		[]color.NRGBA{{1, 2, 3, 255}, {4, 5, 6, 255}},
	)
	assert.NoError(t, err)
	cmds := m.DrawList(image.Point{})
	assert.Equal(t, len(cmds), 1)
	assert.Equal(t, cmds[0].Face, 1)
	assert.Equal(t, cmds[0].Color, color.NRGBA{4, 5, 6, 255})
}

func TestCollinearFaceIsSkipped(t *testing.T) {
	m, err := New([]Vec3{{0, 0, 0}, {1, 1, 1}, {2, 2, 2}}, []Tri{{0, 1, 2}}, []color.NRGBA{{}})
	assert.NoError(t, err)
	assert.Equal(t, len(m.Visible()), 0)
	assert.Equal(t, len(m.DrawList(image.Pt(5, 5))), 0)
}

func TestNonFinitePointIsSkipped(t *testing.T) {
	m, err := New(
		[]Vec3{{0, 0, 0}, {math.Inf(1), 0, 0}, {0, -10, 0}},
		[]Tri{{0, 1, 2}},
		[]color.NRGBA{{}},
	)
	assert.NoError(t, err)
	assert.Equal(t, len(m.DrawList(image.Point{})), 0)
}

func TestProject(t *testing.T) {
	p, err := Project(Vec3{10, 20, 0}, image.Pt(300, 300))
	assert.NoError(t, err)
	assert.Equal(t, p, image.Pt(310, 280))
	p, err = Project(Vec3{-74.6, 12.4, 999}, image.Pt(300, 300))
	assert.NoError(t, err)
	assert.Equal(t, p, image.Pt(225, 288))
	_, err = Project(Vec3{math.NaN(), 0, 0}, image.Point{})
	assert.Error(t, err)
}

func TestDrawListProjectsVisibleFaces(t *testing.T) {
	cmds := Cube(150).DrawList(image.Pt(300, 300))
	assert.Equal(t, len(cmds), 2)
	// triangle {3, 0, 1}: (75,-75) (-75,-75) (-75,75)
	assert.Equal(t, cmds[0].Points, [3]image.Point{{375, 375}, {225, 375}, {225, 225}})
	assert.Equal(t, cmds[0].Color, color.NRGBA{255, 0, 0, 255})
	assert.Equal(t, cmds[1].Face, 1)
}

func TestNewValidates(t *testing.T) {
	_, err := New([]Vec3{{}, {}, {}}, []Tri{{0, 1, 2}}, nil)
	assert.True(t, errors.Is(err, ErrColorCount), "missing color")
	_, err = New([]Vec3{{}, {}, {}}, []Tri{{0, 1, 3}}, []color.NRGBA{{}})
	assert.True(t, errors.Is(err, ErrIndexRange), "index 3 of 3 points")
	_, err = New([]Vec3{{}, {}, {}}, []Tri{{-1, 1, 2}}, []color.NRGBA{{}})
	assert.True(t, errors.Is(err, ErrIndexRange), "negative index")
}

func TestNewCopiesInputs(t *testing.T) {
	pts := []Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	m, err := New(pts, []Tri{{0, 1, 2}}, []color.NRGBA{{}})
	assert.NoError(t, err)
	pts[0] = Vec3{9, 9, 9}
	assert.Equal(t, m.Point(0), Vec3{1, 0, 0})
	m.RotateZ(1)
	assert.Equal(t, pts[1], Vec3{0, 1, 0})
}
