// Package console runs an ANSI/VT100 terminal on a monochrome panel.
//
// Unlike the device's built-in teletype it interprets the escape sequences
// tinyterm handles, draws with a proportional font, and scrolls with the
// controller's display start line instead of moving pixels.
package console

import (
	"oled/ssd1306"

	"tinygo.org/x/tinyfont/proggy"
	"tinygo.org/x/tinyterm"
)

// Console is a tinyterm terminal bound to a device.
type Console struct {
	dev  *ssd1306.Device
	term *tinyterm.Terminal
}

// New clears the device and configures a terminal on it.
func New(dev *ssd1306.Device) *Console {
	dev.Fill(false)
	t := tinyterm.NewTerminal(dev)
	t.Configure(&tinyterm.Config{
		Font:       &proggy.TinySZ8pt7b,
		FontHeight: 10,
		FontOffset: 6,
	})
	return &Console{dev: dev, term: t}
}

// Write feeds terminal output. It only draws into the framebuffer; call
// Flush to update the panel.
func (c *Console) Write(p []byte) (int, error) {
	return c.term.Write(p)
}

// Flush sends pending changes to the panel.
func (c *Console) Flush() error {
	return c.dev.Display()
}
