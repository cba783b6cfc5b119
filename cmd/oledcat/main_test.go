//go:build !tinygo

package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"oled/fonts/hd44780"
	"oled/hal"
	"oled/ssd1306"
)

func cell(mem []byte, col, row int) []byte {
	i := row*128 + col*hd44780.Width
	return mem[i : i+hd44780.Width]
}

func TestCatWritesLines(t *testing.T) {
	p := hal.NewPanel(128, 64, ssd1306.DefaultAddress, 32)
	st, err := cat(p, ssd1306.Config{}, true, false, strings.NewReader("hi\nyo"))
	if err != nil {
		t.Fatalf("cat: %v", err)
	}
	mem := p.Memory()
	for _, c := range []struct {
		col, row int
		code     byte
	}{{0, 0, 'h'}, {1, 0, 'i'}, {0, 1, 'y'}, {1, 1, 'o'}} {
		want := hd44780.Columns(c.code)
		if got := cell(mem, c.col, c.row); !bytes.Equal(got, want[:]) {
			t.Fatalf("cell (%d,%d)=%x want %q", c.col, c.row, got, c.code)
		}
	}
	if st.Transactions != p.Transactions() {
		t.Fatalf("stats=%d panel=%d", st.Transactions, p.Transactions())
	}
}

func TestCatInverted(t *testing.T) {
	p := hal.NewPanel(128, 32, ssd1306.DefaultAddress, 32)
	if _, err := cat(p, ssd1306.Config{Height: 32}, true, true, strings.NewReader("A")); err != nil {
		t.Fatalf("cat: %v", err)
	}
	want := hd44780.Columns('A')
	got := cell(p.Memory(), 0, 0)
	for i := range want {
		if got[i] != ^want[i] {
			t.Fatalf("column %d=%#x want %#x", i, got[i], ^want[i])
		}
	}
}

func TestCatWrongAddress(t *testing.T) {
	p := hal.NewPanel(128, 64, ssd1306.DefaultAddress, 32)
	_, err := cat(p, ssd1306.Config{Address: 0x3D}, true, false, strings.NewReader("x\n"))
	if !errors.Is(err, hal.ErrNack) {
		t.Fatalf("err=%v", err)
	}
}
