//go:build tinygo && baremetal

package main

import (
	"oled/app"
	"oled/hal"
)

func main() {
	app.Run(hal.New())
}
