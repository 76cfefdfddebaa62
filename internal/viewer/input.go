package viewer

import (
	"slices"

	"github.com/geofpwhite/modelviewer/internal/geom"
)

// Control is one user intent, either a discrete event or a held rotation.
type Control int

const (
	None Control = iota
	SelectCube
	SelectPyramid
	SelectPrism
	Quit
	RotateXPos
	RotateXNeg
	RotateYPos
	RotateYNeg
	RotateZPos
	RotateZNeg
)

// Rotation returns the axis and direction of a rotation control.
func (c Control) Rotation() (axis geom.Axis, sign float64, ok bool) {
	switch c {
	case RotateXPos:
		return geom.AxisX, 1, true
	case RotateXNeg:
		return geom.AxisX, -1, true
	case RotateYPos:
		return geom.AxisY, 1, true
	case RotateYNeg:
		return geom.AxisY, -1, true
	case RotateZPos:
		return geom.AxisZ, 1, true
	case RotateZNeg:
		return geom.AxisZ, -1, true
	}
	return 0, 0, false
}

// Shape returns the shape a select control picks.
func (c Control) Shape() (geom.Kind, bool) {
	switch c {
	case SelectCube:
		return geom.KindCube, true
	case SelectPyramid:
		return geom.KindPyramid, true
	case SelectPrism:
		return geom.KindPrism, true
	}
	return 0, false
}

// Bindings maps keys to controls.
var Bindings = map[rune]Control{
	'c': SelectCube,
	'p': SelectPyramid,
	't': SelectPrism,
	'w': RotateXPos,
	's': RotateXNeg,
	'd': RotateYPos,
	'a': RotateYNeg,
	'e': RotateZPos,
	'q': RotateZNeg,
}

// Help lists the bindings, one line each.
var Help = []string{
	"c cube  p pyramid  t prism",
	"w/s x  a/d y  q/e z",
	"esc quit",
}

// Input is what the shell sampled for one frame. Held rotations turn the
// model by Step radians each.
type Input struct {
	Events []Control
	Held   []Control
	Step   float64
}

const (
	keyCtrlC = 0x03
	keyCtrlD = 0x04
	keyEsc   = 0x1b
)

// KeyInput turns a terminal read buffer into one frame of input. A key seen
// in the buffer counts as held for this frame. Escape sequences (arrows,
// mouse reports) are skipped wherever they appear; an ESC at the end of the
// buffer, Ctrl-C or Ctrl-D quits.
func KeyInput(data []byte, step float64) Input {
	in := Input{Step: step}
	for i := 0; i < len(data); i++ {
		b := data[i]
		switch b {
		case keyEsc:
			if i == len(data)-1 {
				in.Events = append(in.Events, Quit)
				continue
			}
			i = skipEscape(data, i)
			continue
		case keyCtrlC, keyCtrlD:
			in.Events = append(in.Events, Quit)
			continue
		}
		if 'A' <= b && b <= 'Z' {
			b += 'a' - 'A'
		}
		ctl, ok := Bindings[rune(b)]
		if !ok {
			continue
		}
		if _, _, rot := ctl.Rotation(); rot {
			if !slices.Contains(in.Held, ctl) {
				in.Held = append(in.Held, ctl)
			}
			continue
		}
		in.Events = append(in.Events, ctl)
	}
	return in
}

// skipEscape returns the index of the last byte of the escape sequence
// starting at data[i]. CSI (ESC [) runs to its final byte in 0x40-0x7E,
// SS3 (ESC O) is one more byte, anything else is an Alt+key pair.
func skipEscape(data []byte, i int) int {
	i++ // introducer
	switch data[i] {
	case '[':
		for i++; i < len(data); i++ {
			if 0x40 <= data[i] && data[i] <= 0x7e {
				return i
			}
		}
		return len(data) - 1
	case 'O':
		return min(i+1, len(data)-1)
	}
	return i
}
