//go:build !tinygo && !cgo

package preview

import (
	"errors"

	"oled/hal"
)

func RunWindow(_ func(h hal.HAL) func() error, _ hal.PanelConfig) error {
	return errors.New("window mode requires cgo (build/run with CGO_ENABLED=1)")
}
