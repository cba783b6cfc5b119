// Package preview shows the emulated panel on the desktop, in an ebiten
// window or in a terminal. It is kept apart from hal so drivers and
// hardware tools do not link the GUI stack.
package preview

// oledRGB returns the color of a lit pixel at a brightness level, tinted
// like a white-on-blue OLED module.
func oledRGB(level uint8) (r, g, b uint8) {
	return uint8(uint16(level) * 0xD0 / 0xFF), uint8(uint16(level) * 0xE8 / 0xFF), level
}
