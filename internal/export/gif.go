package export

import (
	"image"
	"image/color"
	"image/gif"
	"io"

	"golang.org/x/image/draw"
)

// Palette is built from the face colors plus a darker and a lighter shade
// of each, black, white and a gray ramp for edges and text.
func (r *Recorder) Palette() color.Palette {
	palette := color.Palette{color.Black, color.White}
	for _, c := range r.Colors {
		palette = append(palette,
			color.NRGBA{c.R, c.G, c.B, 255},
			color.NRGBA{c.R / 2, c.G / 2, c.B / 2, 255},
			color.NRGBA{
				uint8(min(255, int(c.R)*3/2)),
				uint8(min(255, int(c.G)*3/2)),
				uint8(min(255, int(c.B)*3/2)),
				255,
			})
	}
	for i := range 32 {
		gray := uint8(i * 8)
		palette = append(palette, color.NRGBA{gray, gray, gray, 255})
	}
	if len(palette) > 256 {
		palette = palette[:256]
	}
	return palette
}

func (r *Recorder) encodeGIF(w io.Writer) error {
	delay := max(1, int(r.Delay.Milliseconds()/10)) // centiseconds
	palette := r.Palette()
	out := &gif.GIF{
		LoopCount: 0, // forever
	}
	for _, fr := range r.frames {
		pm := image.NewPaletted(fr.Bounds(), palette)
		draw.Draw(pm, pm.Bounds(), fr, fr.Bounds().Min, draw.Src)
		out.Image = append(out.Image, pm)
		out.Delay = append(out.Delay, delay)
	}
	return gif.EncodeAll(w, out)
}
