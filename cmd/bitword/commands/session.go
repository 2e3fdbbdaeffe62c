// Package commands implements the bitword CLI commands.
package commands

import (
	"fmt"
	"log/slog"

	"github.com/bitword/bitword-go/pkg/instr"
	"github.com/bitword/bitword-go/pkg/layout"
	"github.com/bitword/bitword-go/pkg/log"
)

// SessionOptions configures a layout-backed codec session.
type SessionOptions struct {
	// Layout is a file path or "builtin:<name>".
	Layout string

	// EventLog, if set, appends codec events to this file.
	EventLog string

	// Logger receives codec events as slog records at Debug level.
	Logger *slog.Logger
}

// Session is a loaded layout plus a codec wired to the event loggers.
type Session struct {
	Layout *layout.Layout
	Codec  *instr.Codec

	file *log.FileLogger
}

// OpenSession loads the layout and builds its codec.
func OpenSession(opts SessionOptions) (*Session, error) {
	if opts.Layout == "" {
		return nil, fmt.Errorf("layout required (path or builtin:<name>)")
	}
	l, err := layout.Open(opts.Layout)
	if err != nil {
		return nil, err
	}

	s := &Session{Layout: l}
	var loggers []log.Logger
	if opts.Logger != nil {
		loggers = append(loggers, log.NewSlogAdapter(opts.Logger))
	}
	if opts.EventLog != "" {
		s.file, err = log.NewFileLogger(opts.EventLog)
		if err != nil {
			return nil, fmt.Errorf("opening event log: %w", err)
		}
		loggers = append(loggers, s.file)
	}

	s.Codec, err = l.Codec(instr.WithLogger(log.NewMultiLogger(loggers...)))
	if err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

// Close flushes and closes the event log, if any.
func (s *Session) Close() error {
	if s.file == nil {
		return nil
	}
	return s.file.Close()
}
