package ssd1306

import (
	"fmt"

	"tinygo.org/x/drivers"
)

// Controller opcodes.
const (
	cmdColumnAddr    = 0x21
	cmdPageAddr      = 0x22
	cmdMemoryMode    = 0x20
	cmdScrollOff     = 0x2E
	cmdStartLine     = 0x40
	cmdContrast      = 0x81
	cmdChargePump    = 0x8D
	cmdSegRemap      = 0xA0
	cmdResume        = 0xA4
	cmdNormal        = 0xA6
	cmdInverse       = 0xA7
	cmdMultiplex     = 0xA8
	cmdDisplayOff    = 0xAE
	cmdDisplayOn     = 0xAF
	cmdComScanInc    = 0xC0
	cmdComScanDec    = 0xC8
	cmdDisplayOffset = 0xD3
	cmdClockDiv      = 0xD5
	cmdPrecharge     = 0xD9
	cmdComPins       = 0xDA
	cmdVcomDetect    = 0xDB
)

// SetDisplayOn turns the panel on or off. Panel memory is retained.
func (d *Device) SetDisplayOn(on bool) error {
	op := byte(cmdDisplayOff)
	if on {
		op = cmdDisplayOn
	}
	return d.command(op)
}

// SetContrast sets the panel brightness.
func (d *Device) SetContrast(v uint8) error {
	return d.command(cmdContrast, v)
}

// SetInverted swaps lit and unlit pixels in hardware.
func (d *Device) SetInverted(inverted bool) error {
	op := byte(cmdNormal)
	if inverted {
		op = cmdInverse
	}
	return d.command(op)
}

// SetScroll sets the display start line, rotating the visible image
// vertically without touching panel memory. Pending damage is flushed
// first so the panel never shows the new start line over stale memory.
func (d *Device) SetScroll(line int16) {
	h := int16(d.cfg.Height)
	line %= h
	if line < 0 {
		line += h
	}
	if d.ready {
		// Display logs its own failure; the stale rows stay damaged.
		_ = d.Display()
	}
	if err := d.command(cmdStartLine | byte(line)&0x3F); err != nil {
		d.log.WriteLineString("ssd1306: set scroll: " + err.Error())
	}
}

// SetRotation flips the panel. Only 0 and 180 degrees are supported.
func (d *Device) SetRotation(rotation drivers.Rotation) error {
	switch rotation {
	case drivers.Rotation0:
		return d.command(cmdSegRemap|1, cmdComScanDec)
	case drivers.Rotation180:
		return d.command(cmdSegRemap, cmdComScanInc)
	default:
		return fmt.Errorf("%w: %d", ErrRotation, rotation)
	}
}

func (d *Device) command(cmds ...byte) error {
	if err := d.bus.Command(cmds...); err != nil {
		return fmt.Errorf("ssd1306: command %#02x: %w", cmds[0], err)
	}
	return nil
}
