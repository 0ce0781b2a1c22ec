package render

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"

	"golang.org/x/image/draw"
)

// PNGPresenter writes each frame to a PNG file, overwriting it.
type PNGPresenter struct {
	Path string

	// Scale > 1 enlarges the image by nearest-neighbor sampling.
	Scale int
}

// Present encodes fb to p.Path.
func (p *PNGPresenter) Present(fb *Framebuffer) error {
	f, err := os.Create(p.Path)
	if err != nil {
		return fmt.Errorf("create png: %w", err)
	}
	if err := EncodePNG(f, fb, p.Scale); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close png: %w", err)
	}
	return nil
}

// EncodePNG writes fb as a PNG to w, enlarged scale times when scale > 1.
func EncodePNG(w io.Writer, fb *Framebuffer, scale int) error {
	var img image.Image = fb.ToImage()
	if scale > 1 {
		dst := image.NewRGBA(image.Rect(0, 0, fb.Width*scale, fb.Height*scale))
		draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
		img = dst
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}
