//go:build !tinygo

package preview

import (
	"context"
	"fmt"
	"time"

	"oled/hal"

	"github.com/gdamore/tcell/v2"
)

// TerminalConfig controls the terminal preview runner.
type TerminalConfig struct {
	Hz    int
	Panel hal.PanelConfig
}

// RunTerminal runs the driver against the emulated panel and draws the
// panel in the terminal, two pixel rows per character cell. Escape or
// Ctrl-C quits.
func RunTerminal(ctx context.Context, newApp func(hal.HAL) func() error, cfg TerminalConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 30
	}
	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid terminal hz: %d", cfg.Hz)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	defer screen.Fini()

	h := hal.NewHost(cfg.Panel)
	step := newApp(&quietHAL{h})

	quit := make(chan struct{})
	go func() {
		defer close(quit)
		for {
			switch ev := screen.PollEvent().(type) {
			case nil:
				return
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
					return
				}
			case *tcell.EventResize:
				screen.Sync()
			}
		}
	}()

	t := time.NewTicker(d)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-quit:
			return nil
		case <-t.C:
			h.Step()
			if step != nil {
				if err := step(); err != nil {
					return err
				}
			}
			drawPanel(screen, h.Panel())
			screen.Show()
		}
	}
}

// quietHAL drops log lines, which would corrupt the screen.
type quietHAL struct {
	*hal.Host
}

func (q *quietHAL) Logger() hal.Logger { return hal.NopLogger{} }

func drawPanel(screen tcell.Screen, p *hal.Panel) {
	w, h := p.Size()
	lit := make([]bool, w*h)
	p.Render(func(x, y int, on bool) { lit[y*w+x] = on })

	r, g, b := oledRGB(0xFF)
	on := tcell.NewRGBColor(int32(r), int32(g), int32(b))
	off := tcell.ColorBlack
	for y := 0; y < h; y += 2 {
		for x := 0; x < w; x++ {
			fg, bg := off, off
			if lit[y*w+x] {
				fg = on
			}
			if y+1 < h && lit[(y+1)*w+x] {
				bg = on
			}
			screen.SetContent(x, y/2, '▀', nil, tcell.StyleDefault.Foreground(fg).Background(bg))
		}
	}
}
