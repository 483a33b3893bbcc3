package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/tclemos/bench-report/cmd"
	"github.com/tclemos/bench-report/viewer"
)

func main() {
	// Default to pretty console logger until a command picks its format
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	cmd.Display = viewer.Show
	cmd.Execute()
}
