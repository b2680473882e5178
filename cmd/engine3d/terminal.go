package main

import (
	"context"
	"fmt"
	"time"

	uv "github.com/charmbracelet/ultraviolet"

	"github.com/taigrr/engine3d/pkg/render"
	"github.com/taigrr/engine3d/pkg/scene"
)

// keyCommand maps a key press to a scene command.
func keyCommand(ev uv.KeyPressEvent) scene.Command {
	switch {
	case ev.MatchString("escape", "q", "ctrl+c"):
		return scene.CmdQuit
	case ev.MatchString("tab", "e"):
		return scene.CmdNextEffect
	case ev.MatchString("space"):
		return scene.CmdImpulse
	case ev.MatchString("r"):
		return scene.CmdReset
	case ev.MatchString("+", "="):
		return scene.CmdCloser
	case ev.MatchString("-", "_"):
		return scene.CmdFarther
	}
	return scene.CmdNone
}

func runTerminal(ctx context.Context, cfg scene.Config) error {
	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	termRenderer := render.NewTerminalRenderer(term, width, height)
	cfg.Width, cfg.Height = termRenderer.FramebufferSize()
	s, err := scene.New(cfg)
	if err != nil {
		return err
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}
	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	cleanup := func() {
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}
	defer cleanup()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// The scene is only touched by the render loop; input arrives here.
	commands := make(chan scene.Command, 16)
	sizes := make(chan uv.WindowSizeEvent, 1)
	go func() {
		for ev := range term.Events() {
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				select {
				case <-sizes:
				default:
				}
				sizes <- ev
			case uv.KeyPressEvent:
				cmd := keyCommand(ev)
				if cmd == scene.CmdNone {
					continue
				}
				select {
				case commands <- cmd:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	frame := time.NewTicker(time.Second / time.Duration(cfg.FPS))
	defer frame.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case cmd := <-commands:
			if !s.Apply(cmd) {
				return nil
			}
			continue
		case ev := <-sizes:
			term.Erase()
			term.Resize(ev.Width, ev.Height)
			termRenderer = render.NewTerminalRenderer(term, ev.Width, ev.Height)
			s.Resize(termRenderer.FramebufferSize())
			continue
		case <-frame.C:
		}

		s.Step()
		termRenderer.Render(s.Render())
		if err := termRenderer.Flush(); err != nil {
			return fmt.Errorf("flush: %w", err)
		}
	}
}
