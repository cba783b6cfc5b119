package hal

import (
	"errors"
	"testing"
)

func TestPanelRejectsBadTransactions(t *testing.T) {
	p := NewPanel(128, 64, 0x3C, 32)
	if err := p.Tx(0x3D, []byte{0x00, 0xAF}, nil); !errors.Is(err, ErrNack) {
		t.Fatalf("wrong address: %v", err)
	}
	if err := p.Tx(0x3C, make([]byte, 33), nil); !errors.Is(err, ErrTxTooLong) {
		t.Fatalf("long tx: %v", err)
	}
	if err := p.Tx(0x3C, []byte{0x80, 0xAF}, nil); !errors.Is(err, ErrBadControl) {
		t.Fatalf("bad control: %v", err)
	}
	if p.Transactions() != 0 {
		t.Fatalf("transactions=%d", p.Transactions())
	}
}

func TestPanelWindowedWrite(t *testing.T) {
	p := NewPanel(128, 64, 0x3C, 32)
	// Horizontal addressing, columns 10..12, pages 2..3.
	mustTx(t, p, 0x00, 0x20, 0x00, 0x21, 10, 12, 0x22, 2, 3)
	mustTx(t, p, 0x40, 1, 2, 3, 4, 5, 6, 7)

	mem := p.Memory()
	at := func(page, col int) byte { return mem[page*128+col] }
	if at(2, 11) != 2 || at(2, 12) != 3 || at(3, 10) != 4 || at(3, 12) != 6 {
		t.Fatalf("window contents wrong: %v %v %v %v", at(2, 11), at(2, 12), at(3, 10), at(3, 12))
	}
	// The seventh byte wraps to the window origin.
	if at(2, 10) != 7 {
		t.Fatalf("wrap: %v", at(2, 10))
	}
	if at(2, 13) != 0 || at(4, 10) != 0 {
		t.Fatal("write escaped window")
	}
}

func TestPanelCommandArgsSpanTransactions(t *testing.T) {
	p := NewPanel(128, 64, 0x3C, 32)
	mustTx(t, p, 0x00, 0x81)
	mustTx(t, p, 0x00, 0x10, 0xAF)
	if p.Contrast() != 0x10 {
		t.Fatalf("contrast=%#x", p.Contrast())
	}
	if !p.On() {
		t.Fatal("display should be on")
	}
}

func TestPanelVisible(t *testing.T) {
	p := NewPanel(128, 64, 0x3C, 32)
	mustTx(t, p, 0x00, 0x20, 0x00, 0xA1, 0xC8, 0x21, 0, 0, 0x22, 0, 0)
	mustTx(t, p, 0x40, 0x01)

	if p.Visible(0, 0) {
		t.Fatal("display off should show nothing")
	}
	mustTx(t, p, 0x00, 0xAF)
	if !p.Visible(0, 0) || p.Visible(1, 0) {
		t.Fatal("pixel (0,0) should be the only lit one")
	}

	mustTx(t, p, 0x00, 0xA7)
	if p.Visible(0, 0) || !p.Visible(1, 0) {
		t.Fatal("inverted display")
	}
	mustTx(t, p, 0x00, 0xA6)

	// Start line 1 moves memory row 0 to the bottom row.
	mustTx(t, p, 0x00, 0x41)
	if !p.Visible(0, 63) || p.Visible(0, 0) {
		t.Fatal("start line")
	}
	mustTx(t, p, 0x00, 0x40)

	mustTx(t, p, 0x00, 0xA0, 0xC0)
	if !p.Visible(127, 63) {
		t.Fatal("180 degree orientation")
	}
}

func mustTx(t *testing.T, p *Panel, w ...byte) {
	t.Helper()
	if err := p.Tx(0x3C, w, nil); err != nil {
		t.Fatalf("Tx(%x): %v", w, err)
	}
}
