// Package window shows pipeline frames in a desktop window and turns key
// presses into render commands.
package window

import (
	"errors"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/taigrr/tinyrender/pkg/render"
)

// keyBinding names a window key the way render.Keymap does.
type keyBinding struct {
	key  ebiten.Key
	name string
}

// bindings are polled in this order, so keys pressed in the same tick are
// applied in a fixed order.
var bindings = []keyBinding{
	{ebiten.KeyW, "w"},
	{ebiten.KeyA, "a"},
	{ebiten.KeyS, "s"},
	{ebiten.KeyD, "d"},
	{ebiten.KeyH, "h"},
	{ebiten.KeyJ, "j"},
	{ebiten.KeyK, "k"},
	{ebiten.KeyL, "l"},
	{ebiten.KeyArrowUp, "up"},
	{ebiten.KeyArrowDown, "down"},
	{ebiten.KeyArrowLeft, "left"},
	{ebiten.KeyArrowRight, "right"},
	{ebiten.KeyEqual, "="},
	{ebiten.KeyNumpadAdd, "+"},
	{ebiten.KeyMinus, "-"},
	{ebiten.KeyNumpadSubtract, "-"},
	{ebiten.KeyR, "r"},
	{ebiten.KeyX, "x"},
	{ebiten.KeyQ, "q"},
	{ebiten.KeyEscape, "escape"},
}

// pressedKeys returns the names of the bound keys for which pressed is true,
// in binding order.
func pressedKeys(pressed func(ebiten.Key) bool) []string {
	var names []string
	for _, b := range bindings {
		if pressed(b.key) {
			names = append(names, b.name)
		}
	}
	return names
}

// Window is an ebiten game that renders a pipeline on demand.
type Window struct {
	pipeline *render.Pipeline
	keymap   render.Keymap

	// Apply handles commands. It defaults to the pipeline's Apply.
	Apply func(render.Command) bool
	// Tick runs once per update before the frame is drawn.
	Tick func()

	Logger *log.Logger

	img     *ebiten.Image
	scratch []byte
}

// New creates a window for p using the default key bindings.
func New(p *render.Pipeline) *Window {
	return &Window{
		pipeline: p,
		keymap:   render.DefaultKeymap(),
		Apply:    p.Apply,
	}
}

// Run opens the window and blocks until it is closed or a quit key is pressed.
// Each framebuffer pixel is shown as a scale x scale block.
func (w *Window) Run(title string, scale, tps int) error {
	fb := w.pipeline.Framebuffer()
	scale = max(scale, 1)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(fb.Width*scale, fb.Height*scale)
	if tps > 0 {
		ebiten.SetTPS(tps)
	}
	err := ebiten.RunGame(w)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

// Update polls keys, advances Tick and renders if the pipeline is dirty.
func (w *Window) Update() error {
	for _, name := range pressedKeys(inpututil.IsKeyJustPressed) {
		cmd, ok := w.keymap.Lookup(name)
		if !ok {
			continue
		}
		if w.Logger != nil {
			w.Logger.Debug("key", "key", name, "command", cmd.Kind)
		}
		if !w.Apply(cmd) {
			return ebiten.Termination
		}
	}
	if w.Tick != nil {
		w.Tick()
	}
	_, err := w.pipeline.Frame(w)
	return err
}

// Present uploads fb to the window texture.
func (w *Window) Present(fb *render.Framebuffer) error {
	if w.img == nil || w.img.Bounds().Dx() != fb.Width || w.img.Bounds().Dy() != fb.Height {
		if w.img != nil {
			w.img.Deallocate()
		}
		w.img = ebiten.NewImage(fb.Width, fb.Height)
		w.scratch = make([]byte, 4*len(fb.Pixels))
	}
	for i, c := range fb.Pixels {
		j := i * 4
		w.scratch[j+0] = c.R
		w.scratch[j+1] = c.G
		w.scratch[j+2] = c.B
		w.scratch[j+3] = c.A
	}
	w.img.WritePixels(w.scratch)
	return nil
}

// Draw shows the last presented frame.
func (w *Window) Draw(screen *ebiten.Image) {
	if w.img != nil {
		screen.DrawImage(w.img, nil)
	}
}

// Layout keeps the logical screen at framebuffer size; ebiten scales it to the window.
func (w *Window) Layout(_, _ int) (int, int) {
	fb := w.pipeline.Framebuffer()
	return fb.Width, fb.Height
}
