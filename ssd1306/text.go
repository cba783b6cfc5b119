package ssd1306

import (
	"fmt"
	"io"

	"oled/fonts/hd44780"
	"oled/framebuffer"
)

const glyphWidth = hd44780.Width

var (
	_ io.Writer     = (*Device)(nil)
	_ io.ByteWriter = (*Device)(nil)
)

// teletype is the text cursor, in cells of glyphWidth columns by one page.
type teletype struct {
	col    int
	row    int
	invert bool
}

// DrawChar renders code into the cell at (col, row) and marks the cell
// damaged. Codes outside 0x20..0x7F render blank.
func (d *Device) DrawChar(col, row int, code byte, invert bool) error {
	if col < 0 || col >= d.textCols || row < 0 || row >= d.textRows {
		return fmt.Errorf("char cell (%d,%d): %w", col, row, framebuffer.ErrOutOfBounds)
	}
	page, err := d.fb.Page(row)
	if err != nil {
		return err
	}

	x := col * glyphWidth
	glyph := hd44780.Columns(code)
	for i, b := range glyph {
		if invert {
			b = ^b
		}
		page[x+i] = b
	}

	y := row * framebuffer.PageHeight
	d.dmg.MarkRange(x, y, x+glyphWidth-1, y)
	return nil
}

// Cursor returns the teletype cursor cell.
func (d *Device) Cursor() (col, row int) { return d.tty.col, d.tty.row }

// SetCursor moves the teletype cursor.
func (d *Device) SetCursor(col, row int) error {
	if col < 0 || col >= d.textCols || row < 0 || row >= d.textRows {
		return fmt.Errorf("cursor (%d,%d): %w", col, row, framebuffer.ErrOutOfBounds)
	}
	d.tty.col, d.tty.row = col, row
	return nil
}

// SetInvertText selects inverted glyphs for subsequent Write calls.
func (d *Device) SetInvertText(invert bool) { d.tty.invert = invert }

func (d *Device) InvertText() bool { return d.tty.invert }

// Write renders p as teletype output. '\r' is ignored, '\n' starts a new
// line, every other byte draws one cell. Lines wrap at the panel edge and
// the framebuffer scrolls up one page when the cursor passes the last row.
// Write never fails and always consumes all of p.
func (d *Device) Write(p []byte) (int, error) {
	start := d.tty.col
	for _, c := range p {
		switch c {
		case '\r':
		case '\n':
			d.markLine(start, d.tty.col*glyphWidth)
			d.newline()
			start = 0
		default:
			_ = d.DrawChar(d.tty.col, d.tty.row, c, d.tty.invert)
			d.tty.col++
		}

		if d.tty.col >= d.textCols {
			d.markLine(start, d.cfg.Width-1)
			d.newline()
			start = 0
		}
	}
	return len(p), nil
}

// WriteByte writes a single teletype byte.
func (d *Device) WriteByte(c byte) error {
	_, err := d.Write([]byte{c})
	return err
}

// markLine marks the current text row from cell start to pixel column end.
func (d *Device) markLine(start, end int) {
	y := d.tty.row * framebuffer.PageHeight
	d.dmg.MarkRange(start*glyphWidth, y, end, y)
}

func (d *Device) newline() {
	d.tty.col = 0
	d.tty.row++
	if d.tty.row < d.textRows {
		return
	}
	d.fb.ScrollUp()
	d.tty.row = d.textRows - 1
	d.dmg.MarkAll()
}
