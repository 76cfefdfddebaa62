// Package termui runs the viewer in a terminal using ansipixels.
package termui

import (
	"context"
	"image"
	"image/color"
	"math"
	"strings"

	"fortio.org/log"
	"fortio.org/terminal/ansipixels"

	"github.com/geofpwhite/modelviewer/internal/config"
	"github.com/geofpwhite/modelviewer/internal/geom"
	"github.com/geofpwhite/modelviewer/internal/raster"
	"github.com/geofpwhite/modelviewer/internal/viewer"
)

// dragRate is radians per terminal cell of mouse drag.
const dragRate = math.Pi / 60 * .7

// Run shows v until quit or ctx is done. Each tick turns the pending key
// bytes into one frame of input, applies mouse drags, renders and draws.
func Run(ctx context.Context, cfg config.Config, v *viewer.Viewer) error {
	ap := ansipixels.NewAnsiPixels(cfg.FPS)
	if err := ap.Open(); err != nil {
		return err
	}
	ap.HideCursor()
	defer func() {
		ap.ShowCursor()
		ap.MouseTrackingOff()
		ap.ClearScreen()
		ap.Restore()
	}()
	ap.MouseTrackingOn()
	ap.ClearScreen()
	ap.SyncBackgroundColor()
	ap.OnResize = func() error {
		ap.ClearScreen()
		return nil
	}

	canvas := viewer.NewCanvas(cfg)
	canvas.Background = color.NRGBA{ap.Background.R, ap.Background.G, ap.Background.B, 255}
	prevMouse := image.Point{X: -1, Y: -1}
	var drawErr error

	err := ap.FPSTicks(ctx, func(context.Context) bool {
		if !v.Step(viewer.KeyInput(ap.Data, cfg.KeyStep)) {
			return false
		}
		mouse := image.Pt(ap.Mx, ap.My)
		if prevMouse.X >= 0 {
			drag(ap, v, mouse.Sub(prevMouse))
		}
		prevMouse = mouse

		v.Render(canvas)
		if drawErr = draw(ap, canvas, cfg.Help, v.Kind()); drawErr != nil {
			return false
		}
		return true
	})
	if drawErr != nil {
		return drawErr
	}
	if err != nil && ctx.Err() == nil {
		return err
	}
	log.Debugf("termui: stopped")
	return nil
}

// drag turns the model with the mouse: left drag about y (horizontal) and x
// (vertical), right drag about z.
func drag(ap *ansipixels.AnsiPixels, v *viewer.Viewer, d image.Point) {
	switch {
	case ap.LeftDrag():
		if d.X != 0 {
			v.Rotate(geom.AxisY, -dragRate*float64(d.X))
		}
		if d.Y != 0 {
			v.Rotate(geom.AxisX, dragRate*float64(d.Y))
		}
	case ap.RightDrag():
		if d.X != 0 {
			v.Rotate(geom.AxisZ, -dragRate*float64(d.X))
		}
	}
}

// draw fits the canvas to the terminal (two pixels per cell vertically) and
// writes it with the help line underneath.
func draw(ap *ansipixels.AnsiPixels, canvas *raster.Canvas, help bool, kind geom.Kind) error {
	rows := ap.H
	if help {
		rows--
	}
	img := raster.Fit(canvas.Img, ap.W, 2*max(1, rows), canvas.Background)
	rgba := &image.RGBA{Pix: img.Pix, Stride: img.Stride, Rect: img.Rect}
	ap.StartSyncMode()
	var err error
	if ap.ColorOutput.TrueColor {
		err = ap.DrawTrueColorImage(0, 0, rgba)
	} else {
		err = ap.Draw216ColorImage(0, 0, rgba)
	}
	if err != nil {
		return err
	}
	if help {
		line := kind.String() + "  " + strings.Join(viewer.Help, "  ")
		if len(line) > ap.W {
			line = line[:max(0, ap.W)]
		}
		ap.WriteAtStr(0, ap.H-1, line)
	}
	ap.EndSyncMode()
	return nil
}
