// Where: internal/infra/logging/logging.go
// What: Debug logger construction for HTTP tracing.
// Why: --debug traces to stderr, or to a rotating file when --log-file is set.
package logging

import (
	"io"
	"log"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	maxLogSizeMB  = 10
	maxLogBackups = 3
	maxLogAgeDays = 28
)

// Options selects where debug output goes.
type Options struct {
	Debug   bool
	LogFile string
	Stderr  io.Writer
}

// NewDebugLogger returns nil when debugging is off. The returned closer is
// never nil and must be closed on exit.
func NewDebugLogger(opts Options) (*log.Logger, io.Closer) {
	if !opts.Debug {
		return nil, nopCloser{}
	}
	path := strings.TrimSpace(opts.LogFile)
	if path == "" {
		out := opts.Stderr
		if out == nil {
			out = io.Discard
		}
		return log.New(out, "[debug] ", log.LstdFlags|log.Lmicroseconds), nopCloser{}
	}
	rotating := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxLogSizeMB,
		MaxBackups: maxLogBackups,
		MaxAge:     maxLogAgeDays,
	}
	return log.New(rotating, "[debug] ", log.LstdFlags|log.Lmicroseconds), rotating
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
