//go:build !tinygo

// Command oledcat copies standard input to an OLED panel on a Linux I2C bus.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"oled/app"
	"oled/hal"
	"oled/ssd1306"
	"oled/transport"

	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

func main() {
	var (
		configPath string
		busName    string
		addr       uint
		clearFirst bool
		invert     bool
	)
	flag.StringVar(&configPath, "config", "oled.yaml", "YAML configuration file.")
	flag.StringVar(&busName, "bus", "", "I2C bus name (overrides config; empty = first bus).")
	flag.UintVar(&addr, "addr", 0, "7-bit device address (overrides config).")
	flag.BoolVar(&clearFirst, "clear", true, "Clear the panel before writing.")
	flag.BoolVar(&invert, "invert", false, "Draw inverted text.")
	flag.Parse()

	if err := run(configPath, busName, uint8(addr), clearFirst, invert, os.Stdin); err != nil {
		fmt.Fprintln(os.Stderr, "oledcat:", err)
		os.Exit(1)
	}
}

func run(configPath, busName string, addr uint8, clearFirst, invert bool, in io.Reader) error {
	cfg, err := app.LoadConfig(configPath)
	if err != nil {
		return err
	}
	if busName != "" {
		cfg.Bus = busName
	}
	if addr != 0 {
		cfg.Address = addr
	}

	if _, err := host.Init(); err != nil {
		return fmt.Errorf("periph init: %w", err)
	}
	bus, err := i2creg.Open(cfg.Bus)
	if err != nil {
		return fmt.Errorf("open i2c bus %q: %w", cfg.Bus, err)
	}
	defer bus.Close()

	log := hal.NewLogger(os.Stderr)
	st, err := cat(bus, cfg.Device(log), clearFirst, invert, in)
	if err != nil {
		return err
	}
	log.WriteLineString(fmt.Sprintf("oledcat: %d transactions, %d bytes", st.Transactions, st.Bytes))
	return nil
}

// cat initializes the panel on i2c and copies in to it, flushing after
// every line.
func cat(i2c transport.I2C, dc ssd1306.Config, clearFirst, invert bool, in io.Reader) (transport.Stats, error) {
	dev, err := ssd1306.NewI2C(i2c, dc)
	if err != nil {
		return transport.Stats{}, err
	}
	if err := dev.Init(); err != nil {
		return dev.Stats(), err
	}
	if clearFirst {
		dev.Fill(false)
	}
	dev.SetInvertText(invert)

	r := bufio.NewReader(in)
	for {
		line, err := r.ReadBytes('\n')
		if len(line) > 0 {
			_, _ = dev.Write(line)
			if ferr := dev.Display(); ferr != nil {
				return dev.Stats(), ferr
			}
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return dev.Stats(), fmt.Errorf("read input: %w", err)
		}
	}
	err = dev.Display()
	return dev.Stats(), err
}
