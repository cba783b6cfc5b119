package app

import (
	"bufio"
	"fmt"
	"io"
	"time"

	"oled/console"
	"oled/hal"
	"oled/internal/buildinfo"
	"oled/ssd1306"
)

type system struct {
	h   hal.HAL
	log hal.Logger
	cfg Config
	dev *ssd1306.Device
	con *console.Console
	out io.Writer

	lines    chan []byte
	hasInput bool

	now       uint64
	lastFlush uint64
	lastDemo  uint64
	demoSeq   int
}

// New initializes the display with default config.
func New(h hal.HAL) func() error {
	return NewWithConfig(h, DefaultConfig(), nil)
}

// Run initializes the display and steps it forever (TinyGo/native entrypoint).
func Run(h hal.HAL) {
	step := New(h)
	for {
		if err := step(); err != nil {
			h.Logger().WriteLineString("app: " + err.Error())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

// NewWithConfig initializes the display and returns a step function that
// copies pending input lines to the panel and flushes damage at
// cfg.FlushHz. A nil input runs the demo instead when cfg.Demo is set.
func NewWithConfig(h hal.HAL, cfg Config, input io.Reader) func() error {
	s, err := newSystem(h, cfg, input)
	if err != nil {
		h.Logger().WriteLineString("app: " + err.Error())
		return func() error { return err }
	}
	return s.step
}

func newSystem(h hal.HAL, cfg Config, input io.Reader) (*system, error) {
	if cfg.FlushHz <= 0 {
		cfg.FlushHz = DefaultConfig().FlushHz
	}
	log := h.Logger()
	dev, err := ssd1306.NewI2C(h.I2C(), cfg.Device(log))
	if err != nil {
		return nil, err
	}
	if err := dev.Init(); err != nil {
		return nil, err
	}
	log.WriteLineString(fmt.Sprintf("app: %s, flush %d Hz", buildinfo.Short(), cfg.FlushHz))

	s := &system{h: h, log: log, cfg: cfg, dev: dev, out: dev}
	if cfg.Console {
		s.con = console.New(dev)
		s.out = s.con
	} else {
		dev.Fill(false)
	}
	if cfg.Banner != "" {
		fmt.Fprintln(s.out, cfg.Banner)
	}

	if input != nil {
		s.hasInput = true
		s.lines = make(chan []byte, 64)
		go readLines(input, s.lines)
	}
	return s, nil
}

func readLines(r io.Reader, out chan<- []byte) {
	defer close(out)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := append([]byte(nil), sc.Bytes()...)
		out <- append(line, '\n')
	}
}

func (s *system) step() (err error) {
	defer s.recoverPanic(&err)

	s.drainTicks()
	s.drainInput()
	if !s.hasInput && s.cfg.Demo && s.con == nil {
		s.demo()
	}

	interval := uint64(1000 / s.cfg.FlushHz)
	if s.now-s.lastFlush < interval && s.lastFlush != 0 {
		return nil
	}
	s.lastFlush = s.now
	return s.dev.Display()
}

// drainTicks advances the millisecond clock without blocking.
func (s *system) drainTicks() {
	t := s.h.Time()
	if t == nil {
		return
	}
	ch := t.Ticks()
	for {
		select {
		case seq := <-ch:
			s.now = seq
		default:
			return
		}
	}
}

func (s *system) drainInput() {
	for s.lines != nil {
		select {
		case line, ok := <-s.lines:
			if !ok {
				s.lines = nil
				return
			}
			_, _ = s.out.Write(line)
		default:
			return
		}
	}
}

// demo redraws an inverted status row once per second.
func (s *system) demo() {
	if s.now-s.lastDemo < 1000 && s.demoSeq > 0 {
		return
	}
	s.lastDemo = s.now
	s.demoSeq++

	cols, rows := s.dev.TextSize()
	status := fmt.Sprintf(" up %ds tx %d", s.now/1000, s.dev.Stats().Transactions)
	for col := 0; col < cols; col++ {
		c := byte(' ')
		if col < len(status) {
			c = status[col]
		}
		_ = s.dev.DrawChar(col, rows-1, c, true)
	}
}
