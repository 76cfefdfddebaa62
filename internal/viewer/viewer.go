// Package viewer is the frame loop core shared by the terminal, window and
// record front ends. It owns the active model; only the goroutine running
// the front end may call into it.
package viewer

import (
	"fmt"
	"image"

	"fortio.org/log"

	"github.com/geofpwhite/modelviewer/internal/config"
	"github.com/geofpwhite/modelviewer/internal/geom"
	"github.com/geofpwhite/modelviewer/internal/raster"
)

type Viewer struct {
	sizes   geom.Sizes
	kind    geom.Kind
	model   *geom.Model
	running bool
}

func New(cfg config.Config) (*Viewer, error) {
	kind, err := geom.ParseKind(cfg.Shape)
	if err != nil {
		return nil, fmt.Errorf("viewer: %w", err)
	}
	v := &Viewer{sizes: cfg.Sizes(), running: true}
	v.Select(kind)
	return v, nil
}

// NewCanvas returns the square logical surface for cfg.
func NewCanvas(cfg config.Config) *raster.Canvas {
	c := raster.New(cfg.ScreenSize, cfg.ScreenSize)
	c.Wireframe = cfg.Wireframe
	c.Outline = cfg.Outline
	return c
}

// Select replaces the active model with a fresh one of kind k; any
// rotation applied so far is dropped.
func (v *Viewer) Select(k geom.Kind) {
	v.kind = k
	v.model = k.Build(v.sizes)
	log.Debugf("viewer: selected %v (%d points, %d triangles)", k, v.model.NumPoints(), v.model.NumTriangles())
}

func (v *Viewer) Kind() geom.Kind    { return v.kind }
func (v *Viewer) Model() *geom.Model { return v.model }
func (v *Viewer) Running() bool      { return v.running }

func (v *Viewer) Rotate(a geom.Axis, theta float64) { v.model.Rotate(a, theta) }

// Step applies one frame of input: events in order, then held rotations.
// It returns false once a Quit has been seen.
func (v *Viewer) Step(in Input) bool {
	for _, ev := range in.Events {
		if ev == Quit {
			v.running = false
			continue
		}
		if k, ok := ev.Shape(); ok {
			v.Select(k)
		}
	}
	for _, h := range in.Held {
		if axis, sign, ok := h.Rotation(); ok {
			v.model.Rotate(axis, sign*in.Step)
		}
	}
	return v.running
}

// Render clears c and paints the visible faces around its center.
func (v *Viewer) Render(c *raster.Canvas) {
	c.Clear()
	c.Paint(v.model.DrawList(c.Center()))
}

// Annotate writes the shape name and the key help in the top left corner.
func (v *Viewer) Annotate(c *raster.Canvas) {
	lh := raster.LineHeight()
	c.Label(4, lh, v.kind.String())
	for i, line := range Help {
		c.Label(4, lh*(i+2), line)
	}
}

// Spin is a per frame rotation in radians about each axis.
type Spin struct {
	X, Y, Z float64
}

// Record renders frames frames into c, passing each to sink, then turns the
// model by spin. Frame 0 is the current orientation.
func (v *Viewer) Record(
	c *raster.Canvas,
	frames int,
	spin Spin,
	annotate bool,
	sink func(i int, img *image.NRGBA) error,
) error {
	for i := range frames {
		v.Render(c)
		if annotate {
			v.Annotate(c)
		}
		if err := sink(i, c.Img); err != nil {
			return fmt.Errorf("viewer: frame %d: %w", i, err)
		}
		v.model.RotateX(spin.X)
		v.model.RotateY(spin.Y)
		v.model.RotateZ(spin.Z)
	}
	return nil
}
