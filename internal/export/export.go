// Package export writes recorded frames as an animation or a still image.
package export

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
)

var (
	ErrNoFrames      = errors.New("export: no frames recorded")
	ErrUnknownFormat = errors.New("export: unknown format")
)

type Format string

const (
	GIF  Format = "gif"
	WebP Format = "webp"
	PNG  Format = "png"
	TGA  Format = "tga"
)

// ParseFormat picks the format from a file extension.
func ParseFormat(path string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))); f {
	case GIF, WebP, PNG, TGA:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, path)
}

// Animated reports whether f keeps every frame (PNG and TGA keep the last).
func (f Format) Animated() bool { return f == GIF || f == WebP }

// Recorder accumulates frames for encoding.
type Recorder struct {
	Delay  time.Duration // per frame
	Colors []color.NRGBA // seeds the GIF palette
	frames []*image.NRGBA
}

// NewRecorder returns a recorder paced for fps frames per second.
func NewRecorder(fps float64, colors []color.NRGBA) *Recorder {
	return &Recorder{
		Delay:  time.Duration(float64(time.Second) / fps),
		Colors: colors,
	}
}

// Add keeps a copy of img.
func (r *Recorder) Add(img *image.NRGBA) {
	cp := image.NewNRGBA(img.Bounds())
	copy(cp.Pix, img.Pix)
	r.frames = append(r.frames, cp)
}

func (r *Recorder) Len() int { return len(r.frames) }

// Encode writes the recorded frames to w in format f.
func (r *Recorder) Encode(w io.Writer, f Format) error {
	if len(r.frames) == 0 {
		return ErrNoFrames
	}
	last := r.frames[len(r.frames)-1]
	var err error
	switch f {
	case GIF:
		err = r.encodeGIF(w)
	case WebP:
		err = r.encodeWebP(w)
	case PNG:
		err = png.Encode(w, last)
	case TGA:
		err = tga.Encode(w, last)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
	if err != nil {
		return fmt.Errorf("export: encode %s: %w", f, err)
	}
	return nil
}

// WriteFile encodes to path, the format coming from its extension.
func (r *Recorder) WriteFile(path string) error {
	f, err := ParseFormat(path)
	if err != nil {
		return err
	}
	if len(r.frames) == 0 {
		return ErrNoFrames
	}
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: create %s: %w", path, err)
	}
	if err := r.Encode(out, f); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("export: close %s: %w", path, err)
	}
	return nil
}

func (r *Recorder) encodeWebP(w io.Writer) error {
	if len(r.frames) == 1 {
		return nativewebp.Encode(w, r.frames[0], nil)
	}
	ms := uint(max(1, r.Delay.Milliseconds()))
	ani := &nativewebp.Animation{
		Images:    make([]image.Image, 0, len(r.frames)),
		Durations: make([]uint, 0, len(r.frames)),
		Disposals: make([]uint, 0, len(r.frames)),
		LoopCount: 0, // forever
	}
	for _, fr := range r.frames {
		ani.Images = append(ani.Images, fr)
		ani.Durations = append(ani.Durations, ms)
		ani.Disposals = append(ani.Disposals, 0)
	}
	return nativewebp.EncodeAll(w, ani, nil)
}
