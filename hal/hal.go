package hal

import (
	"errors"

	"oled/transport"
)

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

// NopLogger discards everything.
type NopLogger struct{}

func (NopLogger) WriteLineString(string) {}
func (NopLogger) WriteLineBytes([]byte)  {}

var ErrNotImplemented = errors.New("not implemented")

// Time provides a base tick stream.
//
// The tick duration is platform-defined; higher-level timers live in userland.
type Time interface {
	Ticks() <-chan uint64
}

// HAL provides the only contact point between the driver and the outside world.
type HAL interface {
	Logger() Logger
	// I2C is the bus the panel is attached to.
	I2C() transport.I2C
	Time() Time
}

// PanelConfig describes the panel attached to the bus.
type PanelConfig struct {
	Width    int
	Height   int
	Address  uint8
	MaxChunk int
}

func (c PanelConfig) withDefaults() PanelConfig {
	if c.Width <= 0 {
		c.Width = 128
	}
	if c.Height <= 0 {
		c.Height = 64
	}
	if c.Address == 0 {
		c.Address = 0x3C
	}
	if c.MaxChunk <= 0 {
		c.MaxChunk = transport.DefaultMaxChunk
	}
	return c
}
