// Package config loads viewer settings from defaults, an optional JSON file
// and MODELVIEWER_* environment variables, then applies command line flags.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"fortio.org/struct2env"

	"github.com/geofpwhite/modelviewer/internal/geom"
)

// EnvPrefix is prepended to every environment override, e.g. MODELVIEWER_FPS.
const EnvPrefix = "MODELVIEWER_"

// Config holds the viewer settings.
type Config struct {
	// Surface
	ScreenSize int  `json:"screen_size" env:"SCREEN_SIZE"`
	Help       bool `json:"help"        env:"HELP"`
	Wireframe  bool `json:"wireframe"   env:"WIREFRAME"`
	Outline    bool `json:"outline"     env:"OUTLINE"`

	// Shapes
	Shape       string  `json:"shape"        env:"SHAPE"`
	CubeSize    float64 `json:"cube_size"    env:"CUBE_SIZE"`
	PyramidSize float64 `json:"pyramid_size" env:"PYRAMID_SIZE"`
	PrismSize   float64 `json:"prism_size"   env:"PRISM_SIZE"`
	PrismLength float64 `json:"prism_length" env:"PRISM_LENGTH"`

	// Motion
	FPS        float64 `json:"fps"         env:"FPS"`
	RotateRate float64 `json:"rotate_rate" env:"ROTATE_RATE"` // radians per frame while a key is held
	KeyStep    float64 `json:"key_step"    env:"KEY_STEP"`    // radians per key press in the terminal

	// Recording
	Frames int     `json:"frames" env:"FRAMES"`
	SpinX  float64 `json:"spin_x" env:"SPIN_X"`
	SpinY  float64 `json:"spin_y" env:"SPIN_Y"`
	SpinZ  float64 `json:"spin_z" env:"SPIN_Z"`
}

// Default returns the stock settings: a 600x600 surface with 150 unit shapes.
func Default() Config {
	return Config{
		ScreenSize:  600,
		Help:        true,
		Shape:       geom.KindCube.String(),
		CubeSize:    150,
		PyramidSize: 150,
		PrismSize:   150,
		PrismLength: 150,
		FPS:         60,
		RotateRate:  0.03,
		KeyStep:     0.08,
		Frames:      120,
		SpinX:       0.02,
		SpinY:       0.035,
	}
}

// Load reads a JSON config file over the defaults.
// Fields not set in the file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// FromEnv applies MODELVIEWER_* environment variables to cfg.
func FromEnv(cfg *Config) error {
	return errors.Join(struct2env.SetFromEnv(EnvPrefix, cfg)...)
}

// Flags holds CLI flag values that override the file and environment.
type Flags struct {
	Shape     string
	FPS       float64
	Frames    int
	Wireframe bool
	Outline   bool
}

// Resolve applies non-zero flags, then replaces unusable values with
// defaults. An unknown shape name is an error.
func (c *Config) Resolve(flags Flags) error {
	if flags.Shape != "" {
		c.Shape = flags.Shape
	}
	if flags.FPS > 0 {
		c.FPS = flags.FPS
	}
	if flags.Frames > 0 {
		c.Frames = flags.Frames
	}
	c.Wireframe = c.Wireframe || flags.Wireframe
	c.Outline = c.Outline || flags.Outline

	def := Default()
	if c.ScreenSize <= 0 {
		c.ScreenSize = def.ScreenSize
	}
	if c.CubeSize <= 0 {
		c.CubeSize = def.CubeSize
	}
	if c.PyramidSize <= 0 {
		c.PyramidSize = def.PyramidSize
	}
	if c.PrismSize <= 0 {
		c.PrismSize = def.PrismSize
	}
	if c.PrismLength <= 0 {
		c.PrismLength = def.PrismLength
	}
	if c.FPS <= 0 {
		c.FPS = def.FPS
	}
	if c.RotateRate <= 0 {
		c.RotateRate = def.RotateRate
	}
	if c.KeyStep <= 0 {
		c.KeyStep = def.KeyStep
	}
	if c.Frames <= 0 {
		c.Frames = def.Frames
	}
	if c.Shape == "" {
		c.Shape = def.Shape
	}
	if _, err := geom.ParseKind(c.Shape); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

func (c Config) Sizes() geom.Sizes {
	return geom.Sizes{
		Cube:        c.CubeSize,
		Pyramid:     c.PyramidSize,
		Prism:       c.PrismSize,
		PrismLength: c.PrismLength,
	}
}
