//go:build !tinygo && cgo

package preview

import (
	"image"

	"oled/hal"
	"oled/internal/buildinfo"

	"github.com/hajimehoshi/ebiten/v2"
)

const windowScale = 4

// RunWindow starts a desktop window that shows the emulated panel.
// It blocks until the window closes.
func RunWindow(newApp func(hal.HAL) func() error, pc hal.PanelConfig) error {
	h := hal.NewHost(pc)
	step := newApp(h)

	w, ht := h.Panel().Size()
	g := &game{h: h, step: step, w: w, ht: ht}
	ebiten.SetWindowTitle("OLED (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(w*windowScale, ht*windowScale)
	ebiten.SetTPS(60)
	return ebiten.RunGame(g)
}

type game struct {
	h     *hal.Host
	w, ht int
	img   *image.RGBA
	fbImg *ebiten.Image
	step  func() error
}

func (g *game) Update() error {
	g.h.Step()
	if g.step != nil {
		if err := g.step(); err != nil {
			return err
		}
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	if g.img == nil {
		g.img = image.NewRGBA(image.Rect(0, 0, g.w, g.ht))
		g.fbImg = ebiten.NewImage(g.w, g.ht)
	}

	p := g.h.Panel()
	level := 0x40 + p.Contrast()/4*3
	p.Render(func(x, y int, lit bool) {
		j := y*g.img.Stride + x*4
		var r, gg, b uint8
		if lit {
			r, gg, b = oledRGB(level)
		}
		g.img.Pix[j+0] = r
		g.img.Pix[j+1] = gg
		g.img.Pix[j+2] = b
		g.img.Pix[j+3] = 0xFF
	})

	g.fbImg.WritePixels(g.img.Pix)
	screen.DrawImage(g.fbImg, nil)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.w, g.ht
}
