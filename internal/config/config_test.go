package config

import (
	"os"
	"path/filepath"
	"testing"

	"fortio.org/assert"

	"github.com/geofpwhite/modelviewer/internal/geom"
)

func TestLoadOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(path, []byte(`{"shape": "pyramid", "cube_size": 90, "wireframe": true}`), 0o644)
	assert.NoError(t, err)
	cfg, err := Load(path)
	assert.NoError(t, err)
	assert.Equal(t, cfg.Shape, "pyramid")
	assert.Equal(t, cfg.CubeSize, 90.0)
	assert.True(t, cfg.Wireframe)
	assert.Equal(t, cfg.ScreenSize, 600, "unset fields keep defaults")
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
	path := filepath.Join(t.TempDir(), "bad.json")
	assert.NoError(t, os.WriteFile(path, []byte(`{"fps": "fast"}`), 0o644))
	_, err = Load(path)
	assert.Error(t, err)
}

func TestFromEnv(t *testing.T) {
	t.Setenv("MODELVIEWER_FPS", "30")
	t.Setenv("MODELVIEWER_SHAPE", "prism")
	t.Setenv("MODELVIEWER_OUTLINE", "true")
	cfg := Default()
	assert.NoError(t, FromEnv(&cfg))
	assert.Equal(t, cfg.FPS, 30.0)
	assert.Equal(t, cfg.Shape, "prism")
	assert.True(t, cfg.Outline)
	assert.Equal(t, cfg.KeyStep, 0.08)
}

func TestFromEnvBadValue(t *testing.T) {
	t.Setenv("MODELVIEWER_SCREEN_SIZE", "big")
	cfg := Default()
	assert.Error(t, FromEnv(&cfg))
}

func TestResolve(t *testing.T) {
	cfg := Config{ScreenSize: -1, Shape: "cube"}
	err := cfg.Resolve(Flags{Shape: "pyramid", FPS: 24, Outline: true})
	assert.NoError(t, err)
	assert.Equal(t, cfg.Shape, "pyramid")
	assert.Equal(t, cfg.FPS, 24.0)
	assert.True(t, cfg.Outline)
	assert.Equal(t, cfg.ScreenSize, 600)
	assert.Equal(t, cfg.Frames, 120)
	assert.Equal(t, cfg.Sizes(), geom.Sizes{Cube: 150, Pyramid: 150, Prism: 150, PrismLength: 150})
}

func TestResolveDefaultsRotationRates(t *testing.T) {
	cfg := Default()
	cfg.RotateRate = 0
	cfg.KeyStep = -0.5
	assert.NoError(t, cfg.Resolve(Flags{}))
	assert.Equal(t, cfg.RotateRate, 0.03)
	assert.Equal(t, cfg.KeyStep, 0.08)
}

func TestResolveRejectsUnknownShape(t *testing.T) {
	cfg := Default()
	assert.Error(t, cfg.Resolve(Flags{Shape: "torus"}))
}
