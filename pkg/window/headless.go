//go:build headless

package window

import (
	"context"
	"errors"

	"github.com/taigrr/engine3d/pkg/scene"
)

// ErrHeadless is returned by Run in builds without window support.
var ErrHeadless = errors.New("window: built with the headless tag")

// Options configures the window.
type Options struct {
	Title string
	Scale int
	FPS   int
}

// Run always fails in headless builds.
func Run(ctx context.Context, s *scene.Scene, opts Options) error {
	return ErrHeadless
}
