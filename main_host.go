//go:build !tinygo

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"oled/app"
	"oled/hal"
	"oled/hal/preview"
)

func main() {
	var hcfg hal.HeadlessConfig
	var configPath string
	var termPreview, console, stdin bool
	flag.BoolVar(&hcfg.Enabled, "headless", false, "Run without a window.")
	flag.IntVar(&hcfg.Hz, "hz", 60, "Tick rate in headless and terminal mode.")
	flag.Uint64Var(&hcfg.Ticks, "ticks", 0, "Stop after N ticks in headless mode (0 = run forever).")
	flag.BoolVar(&termPreview, "term", false, "Draw the emulated panel in the terminal.")
	flag.StringVar(&configPath, "config", "oled.yaml", "YAML configuration file.")
	flag.BoolVar(&console, "console", false, "Use the ANSI console instead of the teletype.")
	flag.BoolVar(&stdin, "stdin", false, "Copy standard input lines to the panel.")
	flag.Parse()

	cfg, err := app.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if console {
		cfg.Console = true
	}
	var input io.Reader
	if stdin {
		input = os.Stdin
	}
	newApp := func(h hal.HAL) func() error {
		return app.NewWithConfig(h, cfg, input)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch {
	case hcfg.Enabled:
		hcfg.Panel = cfg.Panel()
		err = hal.RunHeadless(ctx, newApp, hcfg)
	case termPreview:
		err = preview.RunTerminal(ctx, newApp, preview.TerminalConfig{Hz: hcfg.Hz, Panel: cfg.Panel()})
	default:
		err = preview.RunWindow(newApp, cfg.Panel())
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
