package geom

import "math"

// Vec3 is a point or direction in model space (value type).
type Vec3 [3]float64

func (v Vec3) Sub(b Vec3) Vec3 {
	return Vec3{v[0] - b[0], v[1] - b[1], v[2] - b[2]}
}

func (v Vec3) Dot(b Vec3) float64 {
	return v[0]*b[0] + v[1]*b[1] + v[2]*b[2]
}

func (v Vec3) Cross(b Vec3) Vec3 {
	return Vec3{
		v[1]*b[2] - v[2]*b[1],
		v[2]*b[0] - v[0]*b[2],
		v[0]*b[1] - v[1]*b[0],
	}
}

func (v Vec3) Len() float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}

// Axis selects one of the model space axes.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	}
	return "?"
}
