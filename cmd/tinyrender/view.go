package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	uv "github.com/charmbracelet/ultraviolet"

	"github.com/taigrr/tinyrender/pkg/models"
	"github.com/taigrr/tinyrender/pkg/render"
)

const (
	mouseOn  = "\x1b[?1000h\x1b[?1006h" // button events (wheel) + SGR encoding
	mouseOff = "\x1b[?1000l\x1b[?1006l"
)

// runTerminal shows mesh in the terminal until a quit key or ctx ends.
func runTerminal(ctx context.Context, mesh *models.Mesh, cfg *config) error {
	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	// Nothing may write to the terminal while the alt screen is up.
	opts, err := cfg.options(log.New(io.Discard))
	if err != nil {
		return err
	}
	opts.Width, opts.Height = render.FramebufferSize(width, height)
	p, err := render.NewPipeline(mesh, opts)
	if err != nil {
		return fmt.Errorf("create pipeline: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}
	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)
	fmt.Fprint(os.Stdout, mouseOn)

	defer func() {
		fmt.Fprint(os.Stdout, mouseOff)
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}()

	presenter := render.NewTerminalPresenter(term)
	keymap := render.DefaultKeymap()
	rig := newEyeRig(cfg.fps, p.Camera().Eye)

	ticker := time.NewTicker(time.Second / time.Duration(max(cfg.fps, 1)))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-term.Events():
			cmd, ok := terminalCommand(keymap, ev)
			if resize, isResize := ev.(uv.WindowSizeEvent); isResize {
				term.Erase()
				term.Resize(resize.Width, resize.Height)
				p.Resize(render.FramebufferSize(resize.Width, resize.Height))
			}
			if ok && !rig.apply(p, cmd) {
				return nil
			}

		case <-ticker.C:
			rig.step(p)
			if _, err := p.Frame(presenter); err != nil {
				return err
			}
		}
	}
}

// terminalCommand maps a terminal event to a command.
func terminalCommand(keymap render.Keymap, ev uv.Event) (render.Command, bool) {
	switch ev := ev.(type) {
	case uv.KeyPressEvent:
		// Printable keys such as "+" are matched by their text.
		if cmd, ok := keymap.Lookup(ev.String()); ok {
			return cmd, true
		}
		for name, cmd := range keymap {
			if ev.MatchString(name) {
				return cmd, true
			}
		}
	case uv.MouseWheelEvent:
		switch ev.Button {
		case uv.MouseWheelUp:
			return render.Zoom(0.9), true
		case uv.MouseWheelDown:
			return render.Zoom(1 / 0.9), true
		}
	}
	return render.Command{}, false
}
