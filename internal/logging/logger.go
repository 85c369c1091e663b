package logging

import (
	"io"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Options configures the process logger
type Options struct {
	Level      string
	Format     string
	Debug      bool
	Production bool
}

// New builds the process logger. Production logs JSON, everything else
// logs text unless Format says otherwise.
func New(opts Options) *log.Logger {
	return NewWithOutput(opts, os.Stdout)
}

// NewWithOutput is New with an explicit destination
func NewWithOutput(opts Options, out io.Writer) *log.Logger {
	logger := log.New()
	logger.SetOutput(out)

	level, err := log.ParseLevel(opts.Level)
	if err != nil {
		level = log.InfoLevel
	}
	if opts.Debug || DebugEnabled() {
		level = log.DebugLevel
	}
	logger.SetLevel(level)

	format := strings.ToLower(opts.Format)
	if format == "" && opts.Production {
		format = "json"
	}
	if format == "json" {
		logger.SetFormatter(&log.JSONFormatter{})
	} else {
		logger.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}

	return logger
}

// Discard returns a logger that drops everything, for tests
func Discard() *log.Logger {
	logger := log.New()
	logger.SetOutput(io.Discard)
	return logger
}
