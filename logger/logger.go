package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// New creates a console logger writing to w. Debug output is only enabled
// when verbose is set.
func New(w io.Writer, verbose bool) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.Kitchen,
	}
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}

// Init installs the process-wide logger used by the extractor packages.
// Output goes to stderr so that JSON written to stdout stays clean.
func Init(verbose bool) {
	log.Logger = New(os.Stderr, verbose)
}

// ForFile returns a child logger tagged with the file being processed.
func ForFile(l zerolog.Logger, source string, statementType string) zerolog.Logger {
	ctx := l.With().Str("source", source)
	if statementType != "" {
		ctx = ctx.Str("type", statementType)
	}
	return ctx.Logger()
}
