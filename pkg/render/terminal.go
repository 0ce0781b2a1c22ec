package render

import (
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"
)

// TerminalPresenter shows frames as half-block cells: each cell is "▀" with
// the foreground taken from one pixel row and the background from the next.
type TerminalPresenter struct {
	Screen uv.Screen

	// Flush pushes drawn cells to the terminal. Nil skips flushing.
	Flush func() error
}

// NewTerminalPresenter creates a presenter that draws on term and displays
// after every frame.
func NewTerminalPresenter(term *uv.Terminal) *TerminalPresenter {
	return &TerminalPresenter{Screen: term, Flush: term.Display}
}

// FramebufferSize returns the framebuffer dimensions that fill a terminal of
// cols x rows cells.
func FramebufferSize(cols, rows int) (width, height int) {
	return cols, rows * 2
}

// Present draws fb over the whole screen.
func (p *TerminalPresenter) Present(fb *Framebuffer) error {
	fb.Draw(p.Screen, p.Screen.Bounds())
	if p.Flush == nil {
		return nil
	}
	return p.Flush()
}

// Draw converts the framebuffer to terminal cells and draws them on the
// screen. The framebuffer height should be 2x the terminal height.
func (fb *Framebuffer) Draw(scr uv.Screen, area uv.Rectangle) {
	for row := area.Min.Y; row < area.Max.Y; row++ {
		topY := row * 2
		botY := topY + 1

		for col := area.Min.X; col < area.Max.X && col < fb.Width; col++ {
			scr.SetCell(col, row, &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: cellColor(fb.GetPixel(col, topY)),
					Bg: cellColor(fb.GetPixel(col, botY)),
				},
			})
		}
	}
}

// cellColor maps transparent pixels to the terminal default.
func cellColor(c Color) color.Color {
	if c.A == 0 {
		return nil
	}
	return c
}
