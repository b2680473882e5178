package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"

	"github.com/taigrr/engine3d/pkg/scene"
)

// export renders n frames of the animation to numbered PNG files in dir.
func export(ctx context.Context, s *scene.Scene, n int, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	var pb *progressbar.ProgressBar
	if term.IsTerminal(int(os.Stderr.Fd())) {
		pb = progressbar.Default(int64(n), "rendering")
		defer pb.Close()
	}

	for i := range n {
		if err := ctx.Err(); err != nil {
			return err
		}

		fb := s.Render()
		path := filepath.Join(dir, fmt.Sprintf("frame%04d.png", i))
		if err := fb.SavePNG(path); err != nil {
			return err
		}
		s.Step()

		if pb != nil {
			pb.Add(1)
		}
	}
	return nil
}
