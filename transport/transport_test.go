package transport

import (
	"bytes"
	"errors"
	"testing"
)

type recordBus struct {
	txs   [][]byte
	addrs []uint8
	cur   []byte
	open  bool

	failAfter int // fail End of the n-th transaction (1-based); 0 = never
}

func (b *recordBus) Begin(addr uint8) error {
	if b.open {
		return errors.New("nested begin")
	}
	b.open = true
	b.cur = nil
	b.addrs = append(b.addrs, addr)
	return nil
}

func (b *recordBus) WriteByte(c byte) error {
	if !b.open {
		return errors.New("write outside transaction")
	}
	b.cur = append(b.cur, c)
	return nil
}

func (b *recordBus) End() error {
	b.open = false
	b.txs = append(b.txs, b.cur)
	if b.failAfter > 0 && len(b.txs) == b.failAfter {
		return errors.New("nack")
	}
	return nil
}

func TestNewChunkerRejectsTinyLimit(t *testing.T) {
	if _, err := NewChunker(&recordBus{}, 0x3C, 1); !errors.Is(err, ErrChunkSize) {
		t.Fatalf("err=%v", err)
	}
}

func TestSendChunking(t *testing.T) {
	for _, m := range []int{2, 3, 8, 32} {
		for l := 0; l <= 100; l++ {
			bus := &recordBus{}
			c, err := NewChunker(bus, 0x3C, m)
			if err != nil {
				t.Fatalf("NewChunker: %v", err)
			}
			payload := make([]byte, l)
			for i := range payload {
				payload[i] = byte(i*7 + 1)
			}
			if err := c.Send(ControlData, payload); err != nil {
				t.Fatalf("Send: %v", err)
			}

			want := (l + m - 2) / (m - 1)
			if len(bus.txs) != want || c.Transactions(l) != want {
				t.Fatalf("m=%d l=%d: %d transactions (predicted %d), want %d", m, l, len(bus.txs), c.Transactions(l), want)
			}
			var joined []byte
			for i, tx := range bus.txs {
				if len(tx) > m {
					t.Fatalf("m=%d l=%d: tx %d has %d bytes", m, l, i, len(tx))
				}
				if tx[0] != ControlData {
					t.Fatalf("m=%d l=%d: tx %d control %#x", m, l, i, tx[0])
				}
				if bus.addrs[i] != 0x3C {
					t.Fatalf("tx %d addr %#x", i, bus.addrs[i])
				}
				joined = append(joined, tx[1:]...)
			}
			if !bytes.Equal(joined, payload) {
				t.Fatalf("m=%d l=%d: payload not reproduced", m, l)
			}
			if st := c.Stats(); st.Transactions != uint64(want) || st.Bytes != uint64(l+want) {
				t.Fatalf("m=%d l=%d: stats %+v", m, l, st)
			}
		}
	}
}

func TestCommandPrefix(t *testing.T) {
	bus := &recordBus{}
	c, _ := NewChunker(bus, 0x3D, DefaultMaxChunk)
	if err := c.Command(0xAE); err != nil {
		t.Fatalf("Command: %v", err)
	}
	if len(bus.txs) != 1 || !bytes.Equal(bus.txs[0], []byte{0x00, 0xAE}) {
		t.Fatalf("txs=%x", bus.txs)
	}
}

func TestSendStopsOnError(t *testing.T) {
	bus := &recordBus{failAfter: 2}
	c, _ := NewChunker(bus, 0x3C, 4)
	err := c.Data(make([]byte, 12))
	if err == nil {
		t.Fatal("expected error")
	}
	if len(bus.txs) != 2 {
		t.Fatalf("transactions after failure: %d", len(bus.txs))
	}
	if st := c.Stats(); st.Transactions != 1 {
		t.Fatalf("stats counted failed transaction: %+v", st)
	}
}

type fakeI2C struct {
	addrs  []uint16
	writes [][]byte
	err    error
}

func (f *fakeI2C) Tx(addr uint16, w, r []byte) error {
	f.addrs = append(f.addrs, addr)
	f.writes = append(f.writes, append([]byte(nil), w...))
	return f.err
}

func TestTxBus(t *testing.T) {
	i2c := &fakeI2C{}
	bus := NewTxBus(i2c, 4)
	c, _ := NewChunker(bus, 0x3C, 4)
	if err := c.Data([]byte{1, 2, 3, 4, 5}); err != nil {
		t.Fatalf("Data: %v", err)
	}
	if len(i2c.writes) != 2 {
		t.Fatalf("writes=%x", i2c.writes)
	}
	if !bytes.Equal(i2c.writes[0], []byte{0x40, 1, 2, 3}) || !bytes.Equal(i2c.writes[1], []byte{0x40, 4, 5}) {
		t.Fatalf("writes=%x", i2c.writes)
	}
	if i2c.addrs[0] != 0x3C {
		t.Fatalf("addr=%#x", i2c.addrs[0])
	}
}

func TestTxBusMisuse(t *testing.T) {
	bus := NewTxBus(&fakeI2C{}, 2)
	if err := bus.WriteByte(1); !errors.Is(err, ErrNoTransaction) {
		t.Fatalf("WriteByte outside tx: %v", err)
	}
	if err := bus.End(); !errors.Is(err, ErrNoTransaction) {
		t.Fatalf("End outside tx: %v", err)
	}
	_ = bus.Begin(0x3C)
	if err := bus.Begin(0x3C); !errors.Is(err, ErrTxOpen) {
		t.Fatalf("nested Begin: %v", err)
	}
	_ = bus.WriteByte(1)
	_ = bus.WriteByte(2)
	if err := bus.WriteByte(3); !errors.Is(err, ErrTxOverflow) {
		t.Fatalf("overflow: %v", err)
	}
}

func TestTxBusNegativeLimit(t *testing.T) {
	bus := NewTxBus(&fakeI2C{}, -1)
	if err := bus.Begin(0x3C); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if err := bus.WriteByte(0); !errors.Is(err, ErrTxOverflow) {
		t.Fatalf("WriteByte: %v", err)
	}
}

func TestTxBusPropagatesError(t *testing.T) {
	nack := errors.New("nack")
	c, _ := NewChunker(NewTxBus(&fakeI2C{err: nack}, 32), 0x3C, 32)
	if err := c.Command(0xAF); !errors.Is(err, nack) {
		t.Fatalf("err=%v", err)
	}
}
