//go:build !tinygo

package hal

import (
	"bytes"
	"context"
	"testing"
	"time"
)

func TestHostTimeTicks(t *testing.T) {
	now := time.Unix(0, 0)
	ht := newHostTime()
	ht.now = func() time.Time { return now }

	ht.step(1)
	now = now.Add(2500 * time.Microsecond)
	ht.step(1)
	now = now.Add(600 * time.Microsecond)
	ht.step(1)

	var last uint64
	for n := 0; n < 4; n++ {
		select {
		case last = <-ht.Ticks():
		default:
			t.Fatalf("only %d ticks", n)
		}
	}
	if last != 4 {
		t.Fatalf("last tick=%d", last)
	}
	select {
	case v := <-ht.Ticks():
		t.Fatalf("unexpected tick %d", v)
	default:
	}
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf)
	l.WriteLineString("a")
	l.WriteLineBytes([]byte("b"))
	if buf.String() != "a\nb\n" {
		t.Fatalf("log=%q", buf.String())
	}
}

func TestRunHeadlessStopsAfterTicks(t *testing.T) {
	steps := 0
	var bus *Panel
	newApp := func(h HAL) func() error {
		bus = h.I2C().(*Panel)
		return func() error {
			steps++
			return h.I2C().Tx(0x3C, []byte{0x00, 0xAF}, nil)
		}
	}
	cfg := HeadlessConfig{Hz: 1000, Ticks: 3}
	if err := RunHeadless(context.Background(), newApp, cfg); err != nil {
		t.Fatalf("RunHeadless: %v", err)
	}
	if steps != 3 {
		t.Fatalf("steps=%d", steps)
	}
	if !bus.On() || bus.Transactions() != 3 {
		t.Fatalf("panel on=%v txs=%d", bus.On(), bus.Transactions())
	}
}

func TestRunHeadlessHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := RunHeadless(ctx, func(HAL) func() error { return nil }, HeadlessConfig{})
	if err != context.Canceled {
		t.Fatalf("err=%v", err)
	}
}
