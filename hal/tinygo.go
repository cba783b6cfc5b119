//go:build tinygo && baremetal

package hal

import (
	"machine"

	"oled/transport"
)

type tinyGoHAL struct {
	logger *uartLogger
	i2c    *machine.I2C
	t      *tinyGoTime
}

// New returns a Pico HAL implementation.
//
// UART: UART0 on GP0 (TX) / GP1 (RX), 115200 8N1.
// I2C: I2C0 on GP4 (SDA) / GP5 (SCL), 400 kHz.
func New() HAL {
	uart := machine.UART0
	uart.Configure(machine.UARTConfig{
		BaudRate: 115200,
		TX:       machine.GP0,
		RX:       machine.GP1,
	})
	logger := &uartLogger{uart: uart}

	i2c := machine.I2C0
	if err := i2c.Configure(machine.I2CConfig{
		Frequency: 400_000,
		SDA:       machine.GP4,
		SCL:       machine.GP5,
	}); err != nil {
		logger.WriteLineString("hal: i2c configure: " + err.Error())
	}

	return &tinyGoHAL{
		logger: logger,
		i2c:    i2c,
		t:      newTinyGoTime(),
	}
}

func (h *tinyGoHAL) Logger() Logger     { return h.logger }
func (h *tinyGoHAL) I2C() transport.I2C { return h.i2c }
func (h *tinyGoHAL) Time() Time         { return h.t }
