//go:build !tinygo

package hal

import (
	"fmt"
	"io"
	"os"
	"sync"

	"oled/transport"
)

// Host is the desktop HAL: an emulated panel on the I2C bus, a stdout
// logger and a tick clock advanced by Step.
type Host struct {
	logger *hostLogger
	panel  *Panel
	t      *hostTime
}

// New returns a host HAL whose I2C bus has an emulated panel attached.
func New(pc PanelConfig) HAL {
	return NewHost(pc)
}

func NewHost(pc PanelConfig) *Host {
	pc = pc.withDefaults()
	return &Host{
		logger: &hostLogger{w: os.Stdout},
		panel:  NewPanel(pc.Width, pc.Height, pc.Address, pc.MaxChunk),
		t:      newHostTime(),
	}
}

func (h *Host) Logger() Logger     { return h.logger }
func (h *Host) I2C() transport.I2C { return h.panel }
func (h *Host) Time() Time         { return h.t }

// Panel returns the emulated controller behind I2C.
func (h *Host) Panel() *Panel { return h.panel }

// Step advances the tick clock by one runner frame.
func (h *Host) Step() { h.t.step(1) }

// NewLogger returns a Logger writing lines to w.
func NewLogger(w io.Writer) Logger {
	return &hostLogger{w: w}
}

type hostLogger struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}
