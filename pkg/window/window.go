//go:build !headless

// Package window presents a scene in a desktop window using ebiten.
package window

import (
	"context"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/taigrr/engine3d/pkg/scene"
)

// Options configures the window.
type Options struct {
	Title string
	Scale int // window pixels per framebuffer pixel
	FPS   int
}

var bindings = []struct {
	key ebiten.Key
	cmd scene.Command
}{
	{ebiten.KeyTab, scene.CmdNextEffect},
	{ebiten.KeyE, scene.CmdNextEffect},
	{ebiten.KeySpace, scene.CmdImpulse},
	{ebiten.KeyR, scene.CmdReset},
	{ebiten.KeyEqual, scene.CmdCloser},
	{ebiten.KeyNumpadAdd, scene.CmdCloser},
	{ebiten.KeyMinus, scene.CmdFarther},
	{ebiten.KeyNumpadSubtract, scene.CmdFarther},
	{ebiten.KeyEscape, scene.CmdQuit},
	{ebiten.KeyQ, scene.CmdQuit},
}

// commandFor returns the command bound to key.
func commandFor(key ebiten.Key) scene.Command {
	for _, b := range bindings {
		if b.key == key {
			return b.cmd
		}
	}
	return scene.CmdNone
}

type game struct {
	ctx   context.Context
	scene *scene.Scene
	img   *ebiten.Image
	pix   []byte
}

func (g *game) Update() error {
	if ebiten.IsWindowBeingClosed() || g.ctx.Err() != nil {
		return ebiten.Termination
	}
	for _, key := range inpututil.AppendJustPressedKeys(nil) {
		if !g.scene.Apply(commandFor(key)) {
			return ebiten.Termination
		}
	}
	g.scene.Step()
	g.scene.Render()
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	fb := g.scene.Framebuffer()
	if g.img == nil || g.img.Bounds().Dx() != fb.Width || g.img.Bounds().Dy() != fb.Height {
		if g.img != nil {
			g.img.Deallocate()
		}
		g.img = ebiten.NewImage(fb.Width, fb.Height)
	}
	g.pix = fb.CopyRGBA(g.pix)
	g.img.WritePixels(g.pix)
	screen.DrawImage(g.img, nil)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	fb := g.scene.Framebuffer()
	return fb.Width, fb.Height
}

// Run opens a window showing s and blocks until it is closed, Escape is
// pressed or ctx is done.
func Run(ctx context.Context, s *scene.Scene, opts Options) error {
	if opts.Scale < 1 {
		opts.Scale = 1
	}
	if opts.FPS > 0 {
		ebiten.SetTPS(opts.FPS)
	}

	fb := s.Framebuffer()
	ebiten.SetWindowTitle(opts.Title)
	ebiten.SetWindowSize(fb.Width*opts.Scale, fb.Height*opts.Scale)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)

	if err := ebiten.RunGame(&game{ctx: ctx, scene: s}); err != nil {
		return fmt.Errorf("run window: %w", err)
	}
	return nil
}
