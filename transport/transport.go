// Package transport splits command and data streams into bus transactions
// no larger than a controller-imposed limit.
package transport

import (
	"errors"
	"fmt"
)

// Control bytes prefixing every transaction.
const (
	ControlCommand byte = 0x00
	ControlData    byte = 0x40
)

// DefaultMaxChunk is the transaction ceiling in bytes, control byte included.
const DefaultMaxChunk = 32

var ErrChunkSize = errors.New("transport: chunk limit must be at least 2 bytes")

// Bus is the transaction-level capability the chunker needs.
//
// Begin opens a transaction to a device, WriteByte appends one byte to it
// and End closes it. Errors may surface from any of the three.
type Bus interface {
	Begin(addr uint8) error
	WriteByte(b byte) error
	End() error
}

// Stats counts emitted traffic.
type Stats struct {
	Transactions uint64
	Bytes        uint64
}

// Chunker writes control-prefixed streams to one device.
type Chunker struct {
	bus   Bus
	addr  uint8
	max   int
	stats Stats
}

// NewChunker returns a chunker for the device at addr. maxChunk is the
// largest transaction in bytes including the control byte.
func NewChunker(bus Bus, addr uint8, maxChunk int) (*Chunker, error) {
	if maxChunk < 2 {
		return nil, ErrChunkSize
	}
	return &Chunker{bus: bus, addr: addr, max: maxChunk}, nil
}

// MaxPayload is the largest payload slice carried by one transaction.
func (c *Chunker) MaxPayload() int { return c.max - 1 }

func (c *Chunker) Stats() Stats { return c.stats }

// Transactions returns how many transactions a payload of n bytes needs.
func (c *Chunker) Transactions(n int) int {
	if n <= 0 {
		return 0
	}
	return (n + c.MaxPayload() - 1) / c.MaxPayload()
}

// Send writes payload as a sequence of transactions, each starting with
// control. Bytes are delivered in order; a multi-byte logical message may
// span transactions. The first bus error stops the stream and is returned.
func (c *Chunker) Send(control byte, payload []byte) error {
	for off := 0; off < len(payload); {
		n := min(len(payload)-off, c.MaxPayload())
		if err := c.transaction(control, payload[off:off+n]); err != nil {
			return fmt.Errorf("transport: send %#02x at %d/%d: %w", control, off, len(payload), err)
		}
		off += n
	}
	return nil
}

// Command sends a command stream.
func (c *Chunker) Command(cmds ...byte) error {
	return c.Send(ControlCommand, cmds)
}

// Data sends a data stream.
func (c *Chunker) Data(p []byte) error {
	return c.Send(ControlData, p)
}

func (c *Chunker) transaction(control byte, p []byte) error {
	if err := c.bus.Begin(c.addr); err != nil {
		return err
	}
	if err := c.bus.WriteByte(control); err != nil {
		_ = c.bus.End()
		return err
	}
	for _, b := range p {
		if err := c.bus.WriteByte(b); err != nil {
			_ = c.bus.End()
			return err
		}
	}
	if err := c.bus.End(); err != nil {
		return err
	}
	c.stats.Transactions++
	c.stats.Bytes += uint64(len(p) + 1)
	return nil
}
