package geom

import (
	"fmt"
	"image/color"
	"math"
	"strings"
)

func rgb(r, g, b uint8) color.NRGBA { return color.NRGBA{r, g, b, 255} }

// Cube returns an origin centered cube with edge size. Two shades per side
// make the triangle split visible.
func Cube(size float64) *Model {
	s := size / 2
	points := []Vec3{
		{-s, -s, -s},
		{-s, s, -s},
		{s, s, -s},
		{s, -s, -s},
		{-s, -s, s},
		{-s, s, s},
		{s, s, s},
		{s, -s, s},
	}
	mesh := []Tri{
		{3, 0, 1}, {1, 2, 3}, // z = -s
		{3, 2, 7}, {6, 7, 2}, // x = +s
		{4, 7, 6}, {6, 5, 4}, // z = +s
		{5, 1, 0}, {0, 4, 5}, // x = -s
		{2, 1, 5}, {5, 6, 2}, // y = +s
		{0, 3, 7}, {7, 4, 0}, // y = -s
	}
	colors := []color.NRGBA{
		rgb(255, 0, 0), rgb(235, 0, 0),
		rgb(0, 255, 0), rgb(0, 235, 0),
		rgb(0, 0, 255), rgb(0, 0, 235),
		rgb(200, 0, 200), rgb(185, 0, 185),
		rgb(255, 255, 0), rgb(235, 235, 0),
		rgb(0, 235, 235), rgb(0, 200, 200),
	}
	return newModel(points, mesh, colors)
}

// Pyramid returns a square based pyramid with base edge size and the apex
// at (0, h/2, 0), h being the height of an equilateral triangle of side size.
func Pyramid(size float64) *Model {
	s := size / 2
	h := math.Sqrt(size*size - s*s)
	points := []Vec3{
		{-s, -h / 2, -s},
		{-s, -h / 2, s},
		{s, -h / 2, s},
		{s, -h / 2, -s},
		{0, h / 2, 0},
	}
	mesh := []Tri{
		{0, 4, 3}, {1, 4, 0}, {2, 4, 1}, {3, 4, 2},
		{1, 0, 3}, {3, 2, 1}, // base
	}
	colors := []color.NRGBA{
		rgb(255, 0, 0), rgb(0, 255, 0), rgb(0, 0, 255), rgb(255, 255, 0),
		rgb(200, 0, 200), rgb(185, 0, 185),
	}
	return newModel(points, mesh, colors)
}

// TriangularPrism extrudes an equilateral triangle of side triSize along z
// by length.
func TriangularPrism(triSize, length float64) *Model {
	t, l := triSize/2, length/2
	h := math.Sqrt(triSize*triSize - t*t)
	points := []Vec3{
		{-t, -h / 2, -l},
		{0, h / 2, -l},
		{t, -h / 2, -l},
		{-t, -h / 2, l},
		{0, h / 2, l},
		{t, -h / 2, l},
	}
	mesh := []Tri{
		{0, 1, 2},
		{3, 1, 0}, {3, 4, 1},
		{2, 1, 4}, {4, 5, 2},
		{0, 2, 5}, {5, 3, 0},
		{5, 4, 3},
	}
	colors := []color.NRGBA{
		rgb(255, 255, 0),
		rgb(255, 0, 0), rgb(235, 0, 0),
		rgb(0, 255, 0), rgb(0, 235, 0),
		rgb(0, 0, 255), rgb(0, 0, 235),
		rgb(200, 0, 200),
	}
	return newModel(points, mesh, colors)
}

// Kind names one of the built in shapes.
type Kind int

const (
	KindCube Kind = iota
	KindPyramid
	KindPrism
)

// Kinds lists every shape in selection order.
var Kinds = []Kind{KindCube, KindPyramid, KindPrism}

func (k Kind) String() string {
	switch k {
	case KindCube:
		return "cube"
	case KindPyramid:
		return "pyramid"
	case KindPrism:
		return "prism"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind accepts the String form of a Kind, case insensitive.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cube":
		return KindCube, nil
	case "pyramid":
		return KindPyramid, nil
	case "prism", "triangularprism", "triangular-prism":
		return KindPrism, nil
	}
	return KindCube, fmt.Errorf("geom: unknown shape %q", s)
}

// Sizes holds the factory parameters for every Kind.
type Sizes struct {
	Cube        float64
	Pyramid     float64
	Prism       float64
	PrismLength float64
}

// Build returns a fresh model of kind k in its canonical orientation.
func (k Kind) Build(s Sizes) *Model {
	switch k {
	case KindPyramid:
		return Pyramid(s.Pyramid)
	case KindPrism:
		return TriangularPrism(s.Prism, s.PrismLength)
	default:
		return Cube(s.Cube)
	}
}
