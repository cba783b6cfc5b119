package transport

import (
	"errors"
	"fmt"
)

// I2C is a bus that performs whole write/read transfers. It matches
// machine.I2C on TinyGo and periph.io's i2c.Bus on Linux.
type I2C interface {
	Tx(addr uint16, w, r []byte) error
}

var (
	ErrNoTransaction = errors.New("transport: no open transaction")
	ErrTxOverflow    = errors.New("transport: transaction exceeds buffer")
	ErrTxOpen        = errors.New("transport: transaction already open")
)

// TxBus adapts an I2C bus to the Begin/WriteByte/End capability by
// buffering one transaction and sending it with a single Tx on End.
type TxBus struct {
	i2c  I2C
	addr uint8
	open bool
	buf  []byte
}

// NewTxBus returns a Bus over i2c buffering up to maxChunk bytes per
// transaction. A negative maxChunk is treated as zero, so every write
// overflows.
func NewTxBus(i2c I2C, maxChunk int) *TxBus {
	maxChunk = max(maxChunk, 0)
	return &TxBus{i2c: i2c, buf: make([]byte, 0, maxChunk)}
}

func (b *TxBus) Begin(addr uint8) error {
	if b.open {
		return ErrTxOpen
	}
	b.addr = addr
	b.open = true
	b.buf = b.buf[:0]
	return nil
}

func (b *TxBus) WriteByte(c byte) error {
	if !b.open {
		return ErrNoTransaction
	}
	if len(b.buf) == cap(b.buf) {
		return ErrTxOverflow
	}
	b.buf = append(b.buf, c)
	return nil
}

func (b *TxBus) End() error {
	if !b.open {
		return ErrNoTransaction
	}
	b.open = false
	if err := b.i2c.Tx(uint16(b.addr), b.buf, nil); err != nil {
		return fmt.Errorf("i2c tx addr=%#02x len=%d: %w", b.addr, len(b.buf), err)
	}
	return nil
}
