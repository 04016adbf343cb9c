package logging

import (
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
)

// Sub-logger names used across the CLI.
const (
	NameHTTP = "http"
	NameAuth = "auth"
	NameCLI  = "cli"
)

// NewConsoleLogger creates the root logger. Debug forces the debug level and
// adds caller locations; an unknown level falls back to info.
func NewConsoleLogger(level string, debug bool, output io.Writer) hclog.Logger {
	if output == nil {
		output = os.Stderr
	}

	lvl := hclog.LevelFromString(level)
	if lvl == hclog.NoLevel {
		lvl = hclog.Info
	}
	if debug {
		lvl = hclog.Debug
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:            "momfit",
		Level:           lvl,
		Output:          output,
		IncludeLocation: debug,
		Color:           hclog.AutoColor,
	})
}
