// Package gui runs the viewer in a desktop window using ebiten.
package gui

import (
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/geofpwhite/modelviewer/internal/config"
	"github.com/geofpwhite/modelviewer/internal/raster"
	"github.com/geofpwhite/modelviewer/internal/viewer"
)

var eventKeys = map[ebiten.Key]viewer.Control{
	ebiten.KeyC:      viewer.SelectCube,
	ebiten.KeyP:      viewer.SelectPyramid,
	ebiten.KeyT:      viewer.SelectPrism,
	ebiten.KeyEscape: viewer.Quit,
}

var heldKeys = map[ebiten.Key]viewer.Control{
	ebiten.KeyW: viewer.RotateXPos,
	ebiten.KeyS: viewer.RotateXNeg,
	ebiten.KeyD: viewer.RotateYPos,
	ebiten.KeyA: viewer.RotateYNeg,
	ebiten.KeyE: viewer.RotateZPos,
	ebiten.KeyQ: viewer.RotateZNeg,
}

// Run opens a window and blocks until it is closed or quit is pressed.
func Run(cfg config.Config, v *viewer.Viewer) error {
	g := &game{
		v:      v,
		canvas: viewer.NewCanvas(cfg),
		step:   cfg.RotateRate,
		help:   cfg.Help,
	}
	ebiten.SetWindowTitle("modelviewer")
	ebiten.SetWindowSize(cfg.ScreenSize, cfg.ScreenSize)
	ebiten.SetTPS(max(1, int(cfg.FPS)))
	return ebiten.RunGame(g)
}

type game struct {
	v      *viewer.Viewer
	canvas *raster.Canvas
	frame  *ebiten.Image
	step   float64
	help   bool
}

// input samples the keyboard once per tick, in a fixed key order so the
// rotation composition is deterministic.
func (g *game) input() viewer.Input {
	in := viewer.Input{Step: g.step}
	for _, k := range []ebiten.Key{ebiten.KeyC, ebiten.KeyP, ebiten.KeyT, ebiten.KeyEscape} {
		if inpututil.IsKeyJustPressed(k) {
			in.Events = append(in.Events, eventKeys[k])
		}
	}
	for _, k := range []ebiten.Key{ebiten.KeyD, ebiten.KeyA, ebiten.KeyW, ebiten.KeyS, ebiten.KeyQ, ebiten.KeyE} {
		if ebiten.IsKeyPressed(k) {
			in.Held = append(in.Held, heldKeys[k])
		}
	}
	return in
}

func (g *game) Update() error {
	if !g.v.Step(g.input()) {
		return ebiten.Termination
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.v.Render(g.canvas)
	b := g.canvas.Img.Bounds()
	if g.frame == nil {
		g.frame = ebiten.NewImage(b.Dx(), b.Dy())
	}
	g.frame.WritePixels(g.canvas.Img.Pix)
	screen.DrawImage(g.frame, nil)
	if g.help {
		ebitenutil.DebugPrint(screen, g.v.Kind().String()+"\n"+strings.Join(viewer.Help, "\n"))
	}
}

func (g *game) Layout(_, _ int) (int, int) {
	b := g.canvas.Img.Bounds()
	return b.Dx(), b.Dy()
}
