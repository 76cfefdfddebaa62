// Package raster fills screen space triangles onto an NRGBA surface.
package raster

import (
	"image"
	"image/color"
	"math"
	"slices"

	"fortio.org/terminal/ansipixels"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/geofpwhite/modelviewer/internal/geom"
)

var (
	Black = color.NRGBA{0, 0, 0, 255}
	White = color.NRGBA{255, 255, 255, 255}
)

// Canvas is the logical drawing surface. Triangles are painted in the order
// given, later ones over earlier ones.
type Canvas struct {
	Img        *image.NRGBA
	Background color.NRGBA
	Wireframe  bool        // stroke triangle edges instead of filling
	Outline    bool        // stroke edges over filled triangles
	EdgeColor  color.NRGBA // for Wireframe and Outline
	TextColor  color.NRGBA
}

func New(w, h int) *Canvas {
	return &Canvas{
		Img:        image.NewNRGBA(image.Rect(0, 0, w, h)),
		Background: Black,
		EdgeColor:  White,
		TextColor:  White,
	}
}

// Center is the screen point model space origin maps to.
func (c *Canvas) Center() image.Point {
	b := c.Img.Bounds()
	return image.Pt(b.Min.X+b.Dx()/2, b.Min.Y+b.Dy()/2)
}

func (c *Canvas) Clear() {
	draw.Draw(c.Img, c.Img.Bounds(), image.NewUniform(c.Background), image.Point{}, draw.Src)
}

// Paint draws each command in order.
func (c *Canvas) Paint(cmds []geom.DrawCommand) {
	for _, cmd := range cmds {
		poly := cmd.Points[:]
		if !c.Wireframe {
			FillPolygon(c.Img, poly, cmd.Color)
		}
		switch {
		case c.Wireframe:
			strokePolygon(c.Img, poly, cmd.Color)
		case c.Outline:
			strokePolygon(c.Img, poly, c.EdgeColor)
		}
	}
}

// Label writes text with its baseline at y.
func (c *Canvas) Label(x, y int, text string) {
	d := font.Drawer{
		Dst:  c.Img,
		Src:  image.NewUniform(c.TextColor),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

// LineHeight is the pixel height of one Label line.
func LineHeight() int { return basicfont.Face7x13.Height }

// FillPolygon fills a simple polygon on img using a scanline pass, clipped
// to the image bounds.
func FillPolygon(img *image.NRGBA, poly []image.Point, col color.NRGBA) {
	if len(poly) < 3 {
		return
	}
	minY, maxY := poly[0].Y, poly[0].Y
	for _, p := range poly {
		minY = min(minY, p.Y)
		maxY = max(maxY, p.Y)
	}
	r := img.Rect
	if minY > r.Max.Y-1 || maxY < r.Min.Y {
		return
	}
	minY = max(minY, r.Min.Y)
	maxY = min(maxY, r.Max.Y-1)

	n := len(poly)
	xs := make([]float64, 0, n)
	for y := minY; y <= maxY; y++ {
		xs = xs[:0]
		fy := float64(y)
		for i := range n {
			x0, y0 := float64(poly[i].X), float64(poly[i].Y)
			x1, y1 := float64(poly[(i+1)%n].X), float64(poly[(i+1)%n].Y)
			// lower endpoint in, upper out, so shared vertices count once
			if (fy >= y0 && fy < y1) || (fy >= y1 && fy < y0) {
				xs = append(xs, x0+(fy-y0)*(x1-x0)/(y1-y0))
			}
		}
		if len(xs) < 2 {
			continue
		}
		slices.Sort(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			xStart := max(int(math.Ceil(xs[i])), r.Min.X)
			xEnd := min(int(math.Floor(xs[i+1])), r.Max.X-1)
			for x := xStart; x <= xEnd; x++ {
				img.SetNRGBA(x, y, col)
			}
		}
	}
}

func strokePolygon(img *image.NRGBA, poly []image.Point, col color.NRGBA) {
	for i := range poly {
		a, b := poly[i], poly[(i+1)%len(poly)]
		ansipixels.DrawLine(img, float64(a.X), float64(a.Y), float64(b.X), float64(b.Y), col)
	}
}

// Fit scales src into a w x h image keeping its aspect ratio, centered and
// letterboxed with bg. Nearest neighbor keeps face edges hard.
func Fit(src *image.NRGBA, w, h int, bg color.NRGBA) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	sb := src.Bounds()
	if sb.Empty() || w <= 0 || h <= 0 {
		return dst
	}
	scale := min(float64(w)/float64(sb.Dx()), float64(h)/float64(sb.Dy()))
	dw := max(1, int(float64(sb.Dx())*scale))
	dh := max(1, int(float64(sb.Dy())*scale))
	x0, y0 := (w-dw)/2, (h-dh)/2
	draw.NearestNeighbor.Scale(dst, image.Rect(x0, y0, x0+dw, y0+dh), src, sb, draw.Src, nil)
	return dst
}
