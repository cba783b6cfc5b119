// Package hd44780 is the 5x8 HD44780A00 bitmap character set.
//
// Glyphs are stored column-major, one byte per column with bit 0 at the
// top, which is the native layout of a page-addressed panel.
package hd44780

import (
	"image/color"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
)

const (
	Width  = 5
	Height = 8
	First  = 0x20
	Count  = 96
)

// Columns returns the glyph for code. Codes outside 0x20..0x7F map to the
// blank glyph.
func Columns(code byte) [Width]byte {
	if code < First || int(code) >= First+Count {
		return glyphs[0]
	}
	return glyphs[code-First]
}

// Font exposes the character set as a tinyfont.Fonter so it can be drawn at
// arbitrary pixel positions. Concurrent access is not safe due to internal
// glyph reuse.
var Font tinyfont.Fonter = &font5x8{}

type font5x8 struct {
	g glyph
}

type glyph struct {
	r rune
}

func (g *glyph) Draw(display drivers.Displayer, x, y int16, c color.RGBA) {
	code := byte(' ')
	if g.r >= First && g.r < First+Count {
		code = byte(g.r)
	}
	cols := Columns(code)
	for col := 0; col < Width; col++ {
		b := cols[col]
		for row := 0; row < Height; row++ {
			if b&(1<<row) == 0 {
				continue
			}
			display.SetPixel(x+int16(col), y-int16(Height-1-row), c)
		}
	}
}

func (g *glyph) Info() tinyfont.GlyphInfo {
	return tinyfont.GlyphInfo{
		Rune:     g.r,
		Width:    Width,
		Height:   Height,
		XAdvance: Width,
		XOffset:  0,
		YOffset:  -(Height - 1),
	}
}

func (f *font5x8) GetYAdvance() uint8 { return Height }

func (f *font5x8) GetGlyph(r rune) tinyfont.Glypher {
	f.g.r = r
	return &f.g
}
