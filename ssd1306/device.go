// Package ssd1306 drives a page-addressed monochrome OLED controller over a
// transaction-limited bus.
//
// All drawing goes to an in-memory framebuffer. Every change is merged into a
// damage rectangle, and Display sends only that rectangle to the panel.
// A Device has no internal locking: callers sharing one must serialize
// access themselves.
package ssd1306

import (
	"errors"
	"fmt"

	"oled/damage"
	"oled/framebuffer"
	"oled/hal"
	"oled/transport"
)

// DefaultAddress is the usual 7-bit I2C address of the controller.
const DefaultAddress = 0x3C

const (
	maxWidth  = 128
	maxHeight = 64
)

var (
	ErrNotInitialized = errors.New("ssd1306: device not initialized")
	ErrBadDimensions  = errors.New("ssd1306: unsupported panel dimensions")
	ErrRotation       = errors.New("ssd1306: unsupported rotation")
	ErrBadAddress     = errors.New("ssd1306: address is not 7-bit")
)

// Config describes the attached panel.
type Config struct {
	Width    int // columns, at most 128; default 128
	Height   int // rows, a multiple of 8, at most 64; default 64
	Address  uint8 // 7-bit; default 0x3C
	MaxChunk int // bytes per bus transaction including the control byte; default 32
	Logger   hal.Logger
}

// Device is one controller and its framebuffer.
type Device struct {
	cfg   Config
	bus   *transport.Chunker
	fb    *framebuffer.Buffer
	dmg   *damage.Tracker
	log   hal.Logger
	ready bool

	tty      teletype
	textCols int
	textRows int

	scratch []byte
}

// New returns a device talking through bus. Init must be called before
// Display.
func New(bus transport.Bus, cfg Config) (*Device, error) {
	if cfg.Width == 0 {
		cfg.Width = maxWidth
	}
	if cfg.Height == 0 {
		cfg.Height = maxHeight
	}
	if cfg.Address == 0 {
		cfg.Address = DefaultAddress
	}
	if cfg.MaxChunk == 0 {
		cfg.MaxChunk = transport.DefaultMaxChunk
	}
	if cfg.Logger == nil {
		cfg.Logger = hal.NopLogger{}
	}
	if cfg.Width < 0 || cfg.Width > maxWidth || cfg.Height < 0 || cfg.Height > maxHeight {
		return nil, fmt.Errorf("%w: %dx%d", ErrBadDimensions, cfg.Width, cfg.Height)
	}
	if cfg.Address > 0x7F {
		return nil, fmt.Errorf("%w: %#02x", ErrBadAddress, cfg.Address)
	}

	fb, err := framebuffer.New(cfg.Width, cfg.Height)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadDimensions, err)
	}
	chunker, err := transport.NewChunker(bus, cfg.Address, cfg.MaxChunk)
	if err != nil {
		return nil, err
	}

	return &Device{
		cfg:      cfg,
		bus:      chunker,
		fb:       fb,
		dmg:      damage.NewTracker(fb.Width(), fb.Pages()),
		log:      cfg.Logger,
		textCols: cfg.Width / glyphWidth,
		textRows: fb.Pages(),
		scratch:  make([]byte, 0, fb.Width()*fb.Pages()),
	}, nil
}

// NewI2C returns a device on an I2C bus that performs whole transfers.
func NewI2C(i2c transport.I2C, cfg Config) (*Device, error) {
	n := cfg.MaxChunk
	if n == 0 {
		n = transport.DefaultMaxChunk
	}
	if n < 2 {
		return nil, transport.ErrChunkSize
	}
	return New(transport.NewTxBus(i2c, n), cfg)
}

// Init sends the controller configuration and marks the whole framebuffer
// damaged, since panel memory is undefined after power-up.
func (d *Device) Init() error {
	for _, group := range initSequence(d.cfg.Width, d.cfg.Height) {
		if err := d.bus.Command(group...); err != nil {
			return fmt.Errorf("ssd1306: init: %w", err)
		}
	}
	d.ready = true
	d.dmg.MarkAll()
	d.log.WriteLineString(fmt.Sprintf("ssd1306: init %dx%d at %#02x", d.cfg.Width, d.cfg.Height, d.cfg.Address))
	return nil
}

// initSequence returns the power-up command groups for a panel.
func initSequence(width, height int) [][]byte {
	comPins, contrast := byte(0x02), byte(0x8F)
	switch {
	case width == 128 && height == 64:
		comPins, contrast = 0x12, 0xCF
	case width == 96 && height == 16:
		contrast = 0xAF
	}
	return [][]byte{
		{cmdDisplayOff, cmdClockDiv, 0x80, cmdMultiplex, byte(height - 1)},
		{cmdDisplayOffset, 0x00, cmdStartLine, cmdChargePump, 0x14},
		{cmdMemoryMode, 0x00, cmdSegRemap | 1, cmdComScanDec},
		{cmdComPins, comPins, cmdContrast, contrast},
		{cmdPrecharge, 0xF1, cmdVcomDetect, 0x40, cmdResume, cmdNormal, cmdScrollOff, cmdDisplayOn},
	}
}

func (d *Device) Width() int  { return d.cfg.Width }
func (d *Device) Height() int { return d.cfg.Height }

// TextSize returns the teletype grid in cells.
func (d *Device) TextSize() (cols, rows int) { return d.textCols, d.textRows }

// Stats reports bus traffic sent so far.
func (d *Device) Stats() transport.Stats { return d.bus.Stats() }
