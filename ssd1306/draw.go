package ssd1306

import (
	"image/color"

	"oled/fonts/hd44780"
	"oled/framebuffer"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
)

var (
	// White lights a pixel, Black clears it.
	White = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	Black = color.RGBA{A: 0xFF}
)

var _ drivers.Displayer = (*Device)(nil)

// DrawPixel turns the pixel at (x, y) on or off.
func (d *Device) DrawPixel(x, y int, on bool) error {
	if err := d.fb.Set(x, y, on); err != nil {
		return err
	}
	d.dmg.Mark(x, y)
	return nil
}

// Pixel reports whether the pixel at (x, y) is on in the framebuffer.
func (d *Device) Pixel(x, y int) (bool, error) {
	return d.fb.Get(x, y)
}

// Fill sets every pixel, marks the whole panel damaged and homes the
// teletype cursor.
func (d *Device) Fill(on bool) {
	d.fb.Fill(on)
	d.dmg.MarkAll()
	d.tty.col, d.tty.row = 0, 0
}

// FillPage sets every pixel of one page row and marks the row damaged.
func (d *Device) FillPage(page int, on bool) error {
	if err := d.fb.FillPage(page, on); err != nil {
		return err
	}
	y := page * framebuffer.PageHeight
	d.dmg.MarkRange(0, y, d.cfg.Width-1, y)
	return nil
}

// Size implements drivers.Displayer.
func (d *Device) Size() (x, y int16) {
	return int16(d.cfg.Width), int16(d.cfg.Height)
}

// SetPixel implements drivers.Displayer. Any non-black color lights the
// pixel; coordinates outside the panel are ignored.
func (d *Device) SetPixel(x, y int16, c color.RGBA) {
	if !d.fb.InBounds(int(x), int(y)) {
		return
	}
	_ = d.DrawPixel(int(x), int(y), lit(c))
}

// FillRectangle sets a clipped rectangle of pixels.
func (d *Device) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	x0 := clampInt(int(x), 0, d.cfg.Width)
	y0 := clampInt(int(y), 0, d.cfg.Height)
	x1 := clampInt(int(x)+int(width), 0, d.cfg.Width)
	y1 := clampInt(int(y)+int(height), 0, d.cfg.Height)
	if x0 >= x1 || y0 >= y1 {
		return nil
	}

	on := lit(c)
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			_ = d.fb.Set(px, py, on)
		}
	}
	d.dmg.MarkRange(x0, y0, x1-1, y1-1)
	return nil
}

// DrawText draws s with the 5x8 font at pixel position (x, y), where y is
// the baseline. Unlike Write it neither wraps nor moves the cursor.
func (d *Device) DrawText(x, y int16, s string, c color.RGBA) {
	tinyfont.WriteLine(d, hd44780.Font, x, y, s, c)
}

func lit(c color.RGBA) bool {
	return c.R != 0 || c.G != 0 || c.B != 0
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
