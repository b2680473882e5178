// engine3d - software 3D renderer
// Spins a cube, a sphere or a glTF model and draws it with one of several
// shading effects, in the terminal, in a window, or to PNG files.
//
// Controls:
//
//	Tab/E  - Next effect
//	Space  - Random spin
//	R      - Reset rotation and distance
//	+/-    - Move closer/farther
//	Esc/Q  - Quit
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/taigrr/engine3d/pkg/render"
	"github.com/taigrr/engine3d/pkg/scene"
	"github.com/taigrr/engine3d/pkg/window"
)

var (
	configPath = flag.String("config", "", "Scene file (YAML)")
	effectName = flag.String("effect", "", "Effect: flat, gouraud, texture, color or wireframe")
	texture    = flag.String("texture", "", "Texture image (PNG/JPG/BMP)")
	background = flag.String("bg", "", "Background color (name, #RRGGBB or R,G,B)")
	distance   = flag.Float64("distance", 0, "Distance from camera to model")
	workers    = flag.Int("workers", 0, "Row bands rasterized in parallel")
	fps        = flag.Int("fps", 0, "Target FPS")
	width      = flag.Int("width", 0, "Image width (window and export)")
	height     = flag.Int("height", 0, "Image height (window and export)")

	useWindow = flag.Bool("window", false, "Open a desktop window instead of drawing in the terminal")
	scale     = flag.Int("scale", 1, "Window pixels per image pixel")
	frames    = flag.Int("frames", 0, "Render this many frames to PNG files and exit")
	outDir    = flag.String("out", ".", "Directory for exported frames")

	verbose = flag.Bool("v", false, "Debug logging")
	logPath = flag.String("log", "", "Write logs to this file")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "engine3d - software 3D renderer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: engine3d [options] [cube|sphere|model.glb|model.gltf]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nControls:\n")
		fmt.Fprintf(os.Stderr, "  Tab/E  - Next effect\n")
		fmt.Fprintf(os.Stderr, "  Space  - Random spin\n")
		fmt.Fprintf(os.Stderr, "  R      - Reset view\n")
		fmt.Fprintf(os.Stderr, "  +/-    - Zoom in/out\n")
		fmt.Fprintf(os.Stderr, "  Esc/Q  - Quit\n")
	}
	flag.Parse()

	if flag.NArg() > 1 {
		flag.Usage()
		os.Exit(1)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	closeLog, err := setupLogging(*frames == 0 && !*useWindow)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	switch {
	case *frames > 0:
		s, err := scene.New(cfg)
		if err != nil {
			return err
		}
		return export(ctx, s, *frames, *outDir)
	case *useWindow:
		s, err := scene.New(cfg)
		if err != nil {
			return err
		}
		return window.Run(ctx, s, window.Options{
			Title: "engine3d - " + cfg.Mesh,
			Scale: *scale,
			FPS:   cfg.FPS,
		})
	default:
		return runTerminal(ctx, cfg)
	}
}

// loadConfig layers the scene file and then any flags given on the command
// line over the defaults.
func loadConfig() (scene.Config, error) {
	cfg := scene.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = scene.LoadConfig(*configPath); err != nil {
			return cfg, err
		}
	}

	if flag.NArg() == 1 {
		cfg.Mesh = flag.Arg(0)
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "effect":
			cfg.Effect = *effectName
		case "texture":
			cfg.Texture = *texture
		case "bg":
			cfg.Background = *background
		case "distance":
			cfg.Distance = *distance
		case "workers":
			cfg.Workers = *workers
		case "fps":
			cfg.FPS = *fps
		case "width":
			cfg.Width = *width
		case "height":
			cfg.Height = *height
		}
	})
	return cfg, nil
}

// setupLogging routes the renderer's logs. The terminal frontend owns the
// screen, so it only logs to a file.
func setupLogging(terminal bool) (func(), error) {
	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}

	var out io.Writer = os.Stderr
	closeFn := func() {}
	switch {
	case *logPath != "":
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log: %w", err)
		}
		out = f
		closeFn = func() { f.Close() }
	case terminal:
		return closeFn, nil
	}

	render.SetLogger(slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level})))
	return closeFn, nil
}
