// Package logging builds the zerolog logger shared by the CLI and the
// pipeline packages.
package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// New returns a console logger writing to w. verbose enables debug level;
// otherwise only warnings and errors are shown. noColor is set on Windows
// consoles. A nil w writes to os.Stderr.
func New(w io.Writer, verbose, noColor bool) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}

	output := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: "15:04:05",
		NoColor:    noColor,
	}

	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	return zerolog.New(output).
		Level(level).
		With().
		Timestamp().
		Logger()
}
