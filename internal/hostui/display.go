package hostui

import (
	"image"

	"github.com/cocoemu/dragon64/internal/vdg"
	"github.com/hajimehoshi/ebiten/v2"
)

// display implements host.Display by handing the VDG a plain indexed
// byte slice and separately tracking the RGBA texture ebiten draws,
// rebuilt from the palette on every Draw.
type display struct {
	w, h  int
	index []byte
	tex   *ebiten.Image
}

func (d *display) Init(w, h int) []byte {
	d.w, d.h = w, h
	d.index = make([]byte, w*h)
	d.tex = ebiten.NewImage(w, h)
	return d.index
}

func (d *display) Resize(w, h int) []byte {
	return d.Init(w, h)
}

// texture re-renders the indexed buffer through vdg.Palette into the
// ebiten texture and returns it for drawing.
func (d *display) texture() *ebiten.Image {
	if d.tex == nil {
		return nil
	}
	rgba := image.NewRGBA(image.Rect(0, 0, d.w, d.h))
	for i, idx := range d.index {
		c := vdg.Palette[idx&0x0F]
		o := i * 4
		rgba.Pix[o+0] = c[2] // R
		rgba.Pix[o+1] = c[1] // G
		rgba.Pix[o+2] = c[0] // B
		rgba.Pix[o+3] = 0xFF
	}
	d.tex.WritePixels(rgba.Pix)
	return d.tex
}
