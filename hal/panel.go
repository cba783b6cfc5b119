package hal

import (
	"errors"
	"fmt"
	"sync"
)

var (
	ErrNack       = errors.New("panel: address not acknowledged")
	ErrTxTooLong  = errors.New("panel: transaction exceeds limit")
	ErrBadControl = errors.New("panel: unknown control byte")
)

// argCount is the number of argument bytes following each opcode.
var argCount = map[byte]int{
	0x20: 1, 0x21: 2, 0x22: 2,
	0x26: 6, 0x27: 6, 0x29: 5, 0x2A: 5,
	0x81: 1, 0x8D: 1, 0xA3: 2, 0xA8: 1,
	0xD3: 1, 0xD5: 1, 0xD9: 1, 0xDA: 1, 0xDB: 1,
}

// Panel emulates a page-addressed OLED controller on an I2C bus. It decodes
// command and data transactions into display memory. Command parsing state
// carries across transactions like on the real part.
//
// Panel is safe for concurrent use: the driver writes from one goroutine
// while a preview window reads from another.
type Panel struct {
	mu sync.Mutex

	addr  uint8
	width int
	pages int
	maxTx int

	ram []byte

	mode      byte
	colStart  int
	colEnd    int
	pageStart int
	pageEnd   int
	col       int
	page      int

	on        bool
	inverted  bool
	segRemap  bool
	comDec    bool
	startLine int
	contrast  byte

	op      byte
	args    []byte
	pending int

	txs uint64
}

// NewPanel returns a powered-down panel of width x height pixels at addr.
// Transactions longer than maxTx bytes are rejected.
func NewPanel(width, height int, addr uint8, maxTx int) *Panel {
	pages := height / 8
	return &Panel{
		addr:     addr,
		width:    width,
		pages:    pages,
		maxTx:    maxTx,
		ram:      make([]byte, width*pages),
		mode:     2,
		colEnd:   width - 1,
		pageEnd:  pages - 1,
		contrast: 0x7F,
	}
}

// Tx implements transport.I2C. Reads are not supported.
func (p *Panel) Tx(addr uint16, w, r []byte) error {
	if len(r) > 0 {
		return ErrNotImplemented
	}
	if addr != uint16(p.addr) {
		return fmt.Errorf("%w: %#02x", ErrNack, addr)
	}
	if len(w) == 0 {
		return nil
	}
	if p.maxTx > 0 && len(w) > p.maxTx {
		return fmt.Errorf("%w: %d > %d", ErrTxTooLong, len(w), p.maxTx)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	switch w[0] {
	case 0x00:
		for _, b := range w[1:] {
			p.commandByte(b)
		}
	case 0x40:
		for _, b := range w[1:] {
			p.dataByte(b)
		}
	default:
		return fmt.Errorf("%w: %#02x", ErrBadControl, w[0])
	}
	p.txs++
	return nil
}

func (p *Panel) commandByte(b byte) {
	if p.pending > 0 {
		p.args = append(p.args, b)
		p.pending--
		if p.pending == 0 {
			p.exec(p.op, p.args)
		}
		return
	}
	p.op = b
	p.args = p.args[:0]
	p.pending = argCount[b]
	if p.pending == 0 {
		p.exec(b, nil)
	}
}

func (p *Panel) exec(op byte, args []byte) {
	switch {
	case op == 0x20:
		p.mode = args[0] & 0x03
	case op == 0x21:
		p.colStart = min(int(args[0]), p.width-1)
		p.colEnd = min(int(args[1]), p.width-1)
		p.col = p.colStart
	case op == 0x22:
		p.pageStart = min(int(args[0]), p.pages-1)
		p.pageEnd = min(int(args[1]), p.pages-1)
		p.page = p.pageStart
	case op >= 0x40 && op <= 0x7F:
		p.startLine = int(op - 0x40)
	case op == 0x81:
		p.contrast = args[0]
	case op == 0xA0 || op == 0xA1:
		p.segRemap = op == 0xA1
	case op == 0xA6 || op == 0xA7:
		p.inverted = op == 0xA7
	case op == 0xAE || op == 0xAF:
		p.on = op == 0xAF
	case op&0xF8 == 0xB0 && p.mode == 2:
		p.page = int(op & 0x07)
	case op == 0xC0 || op == 0xC8:
		p.comDec = op == 0xC8
	}
}

func (p *Panel) dataByte(b byte) {
	if p.page < p.pages && p.col < p.width {
		p.ram[p.page*p.width+p.col] = b
	}
	p.col++
	if p.col <= p.colEnd {
		return
	}
	p.col = p.colStart
	if p.mode != 0 {
		return
	}
	p.page++
	if p.page > p.pageEnd {
		p.page = p.pageStart
	}
}

// Memory returns a copy of display memory, page-major.
func (p *Panel) Memory() []byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]byte(nil), p.ram...)
}

// Size returns the panel dimensions in pixels.
func (p *Panel) Size() (width, height int) { return p.width, p.pages * 8 }

// On reports whether the display is switched on.
func (p *Panel) On() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.on
}

func (p *Panel) Contrast() byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.contrast
}

// Transactions returns the number of accepted transactions.
func (p *Panel) Transactions() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.txs
}

// Visible reports what the viewer sees at (x, y), applying power,
// inversion, start line and orientation.
func (p *Panel) Visible(x, y int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.visible(x, y)
}

// Render calls set for every pixel with its visible state.
func (p *Panel) Render(set func(x, y int, lit bool)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	h := p.pages * 8
	for y := 0; y < h; y++ {
		for x := 0; x < p.width; x++ {
			set(x, y, p.visible(x, y))
		}
	}
}

func (p *Panel) visible(x, y int) bool {
	if !p.on || x < 0 || y < 0 || x >= p.width || y >= p.pages*8 {
		return false
	}
	h := p.pages * 8
	if !p.segRemap {
		x = p.width - 1 - x
	}
	if !p.comDec {
		y = h - 1 - y
	}
	y = (y + p.startLine) % h
	lit := p.ram[(y/8)*p.width+x]&(1<<(y%8)) != 0
	return lit != p.inverted
}
