package main

import (
	"context"
	"flag"
	"image"
	"os"
	"os/signal"

	"fortio.org/log"

	"github.com/geofpwhite/modelviewer/internal/config"
	"github.com/geofpwhite/modelviewer/internal/export"
	"github.com/geofpwhite/modelviewer/internal/gui"
	"github.com/geofpwhite/modelviewer/internal/termui"
	"github.com/geofpwhite/modelviewer/internal/viewer"
)

func main() {
	configFile := flag.String("config", "", "Path to a JSON config file")
	window := flag.Bool("window", false, "Open a desktop window instead of drawing in the terminal")
	record := flag.String("record", "", "Render a spinning model to `file` (.gif, .webp, .png, .tga) and exit")
	frames := flag.Int("frames", 0, "Number of frames for -record (default 120)")
	shape := flag.String("shape", "", "Startup shape: cube, pyramid or prism")
	fps := flag.Float64("fps", 0, "Frames per second (default 60)")
	wireframe := flag.Bool("wireframe", false, "Draw triangle edges instead of filled faces")
	outline := flag.Bool("outline", false, "Outline filled faces")
	logLevel := flag.String("loglevel", "info", "Log level: debug, verbose, info, warning, error")
	flag.Parse()

	if err := log.SetLogLevelStr(*logLevel); err != nil {
		log.Errf("Bad -loglevel %q: %v", *logLevel, err)
		os.Exit(1)
	}

	cfg := config.Default()
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			log.Errf("Error loading config: %v", err)
			os.Exit(1)
		}
	}
	if err := config.FromEnv(&cfg); err != nil {
		log.Warnf("Ignoring bad environment override: %v", err)
	}
	err := cfg.Resolve(config.Flags{
		Shape:     *shape,
		FPS:       *fps,
		Frames:    *frames,
		Wireframe: *wireframe,
		Outline:   *outline,
	})
	if err != nil {
		log.Errf("Error: %v", err)
		os.Exit(1)
	}

	v, err := viewer.New(cfg)
	if err != nil {
		log.Errf("Error: %v", err)
		os.Exit(1)
	}

	switch {
	case *record != "":
		err = recordTo(*record, cfg, v)
	case *window:
		log.Infof("Opening %dx%d window, shape %s", cfg.ScreenSize, cfg.ScreenSize, cfg.Shape)
		err = gui.Run(cfg, v)
	default:
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		err = termui.Run(ctx, cfg, v)
	}
	if err != nil {
		log.Errf("Error: %v", err)
		os.Exit(1) //nolint:gocritic // stop() only resets signal handling
	}
}

func recordTo(path string, cfg config.Config, v *viewer.Viewer) error {
	format, err := export.ParseFormat(path)
	if err != nil {
		return err
	}
	rec := export.NewRecorder(cfg.FPS, v.Model().Colors())
	spin := viewer.Spin{X: cfg.SpinX, Y: cfg.SpinY, Z: cfg.SpinZ}
	log.Infof("Recording %d frames of %s to %s", cfg.Frames, cfg.Shape, path)
	err = v.Record(viewer.NewCanvas(cfg), cfg.Frames, spin, cfg.Help, func(i int, img *image.NRGBA) error {
		// stills only keep the final pose
		if format.Animated() || i == cfg.Frames-1 {
			rec.Add(img)
		}
		return nil
	})
	if err != nil {
		return err
	}
	if err := rec.WriteFile(path); err != nil {
		return err
	}
	log.Infof("Wrote %s (%d frames)", path, rec.Len())
	return nil
}
