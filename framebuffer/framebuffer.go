// Package framebuffer holds the pixel state of a page-addressed monochrome panel.
//
// The buffer is a grid of pages x columns bytes. Bit b of byte [page][column]
// is the pixel at (column, 8*page+b).
package framebuffer

import (
	"errors"
	"fmt"
)

// PageHeight is the number of pixel rows covered by one page.
const PageHeight = 8

// ErrOutOfBounds is returned for coordinates outside the buffer.
var ErrOutOfBounds = errors.New("framebuffer: out of bounds")

// PageOf returns the page index containing row y.
func PageOf(y int) int { return y / PageHeight }

// BitOf returns the bit offset of row y within its page byte.
func BitOf(y int) uint { return uint(y % PageHeight) }

// Buffer is a fixed-size page-organized monochrome framebuffer.
type Buffer struct {
	width int
	pages int
	buf   []byte
}

// New returns a cleared buffer of width columns and height rows.
// Height must be a positive multiple of PageHeight.
func New(width, height int) (*Buffer, error) {
	if width <= 0 || height <= 0 || height%PageHeight != 0 {
		return nil, fmt.Errorf("framebuffer: invalid size %dx%d", width, height)
	}
	pages := height / PageHeight
	return &Buffer{
		width: width,
		pages: pages,
		buf:   make([]byte, width*pages),
	}, nil
}

func (b *Buffer) Width() int  { return b.width }
func (b *Buffer) Height() int { return b.pages * PageHeight }
func (b *Buffer) Pages() int  { return b.pages }

// InBounds reports whether (x, y) addresses a pixel of the buffer.
func (b *Buffer) InBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.pages*PageHeight
}

// Set turns the pixel at (x, y) on or off.
func (b *Buffer) Set(x, y int, on bool) error {
	if !b.InBounds(x, y) {
		return fmt.Errorf("set pixel (%d,%d): %w", x, y, ErrOutOfBounds)
	}
	i := PageOf(y)*b.width + x
	if on {
		b.buf[i] |= 1 << BitOf(y)
	} else {
		b.buf[i] &^= 1 << BitOf(y)
	}
	return nil
}

// Get reports whether the pixel at (x, y) is on.
func (b *Buffer) Get(x, y int) (bool, error) {
	if !b.InBounds(x, y) {
		return false, fmt.Errorf("get pixel (%d,%d): %w", x, y, ErrOutOfBounds)
	}
	return b.buf[PageOf(y)*b.width+x]&(1<<BitOf(y)) != 0, nil
}

// Fill sets every pixel on or off. Callers own damage tracking.
func (b *Buffer) Fill(on bool) {
	fillBytes(b.buf, on)
}

// FillPage sets every pixel of one page row on or off.
func (b *Buffer) FillPage(page int, on bool) error {
	row, err := b.Page(page)
	if err != nil {
		return err
	}
	fillBytes(row, on)
	return nil
}

// Page returns the backing bytes of one page row. The slice aliases the buffer.
func (b *Buffer) Page(page int) ([]byte, error) {
	if page < 0 || page >= b.pages {
		return nil, fmt.Errorf("page %d: %w", page, ErrOutOfBounds)
	}
	return b.buf[page*b.width : (page+1)*b.width], nil
}

// ScrollUp moves every page row up by one page. Page 0 is discarded and the
// last page is cleared.
func (b *Buffer) ScrollUp() {
	copy(b.buf, b.buf[b.width:])
	clear(b.buf[(b.pages-1)*b.width:])
}

// AppendRegion appends the bytes of the rectangle starting at (column, page)
// to dst, page-major then column. The rectangle must lie inside the buffer.
func (b *Buffer) AppendRegion(dst []byte, column, page, width, pages int) ([]byte, error) {
	if width < 0 || pages < 0 || column < 0 || page < 0 ||
		column+width > b.width || page+pages > b.pages {
		return dst, fmt.Errorf("region %d,%d %dx%d: %w", column, page, width, pages, ErrOutOfBounds)
	}
	for p := page; p < page+pages; p++ {
		off := p*b.width + column
		dst = append(dst, b.buf[off:off+width]...)
	}
	return dst, nil
}

func fillBytes(buf []byte, on bool) {
	var v byte
	if on {
		v = 0xFF
	}
	for i := range buf {
		buf[i] = v
	}
}
