//go:build tinygo && baremetal

package main

import (
	"github.com/rs/zerolog"

	"kestrel/app"
	"kestrel/hal"
	"kestrel/internal/logging"
	"kestrel/kernel"
)

func main() {
	h := hal.New()
	kernel.SetLogger(zerolog.New(logging.LineWriter{Sink: h.Logger()}).Level(zerolog.InfoLevel))
	app.Run(h, app.DefaultConfig())
}
