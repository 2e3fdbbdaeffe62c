package log

import (
	"context"
	"encoding/hex"
	"log/slog"
	"sort"
)

// SlogAdapter writes events to an slog.Logger at Debug level
// (errors at Warn).
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates an adapter writing to logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("session", event.SessionID),
		slog.String("op", event.Operation.String()),
		slog.String("category", event.Category.String()),
	}
	if event.Format != "" {
		attrs = append(attrs, slog.String("format", event.Format))
	}

	level := slog.LevelDebug
	switch {
	case event.Instruction != nil:
		attrs = append(attrs,
			slog.String("data", hex.EncodeToString(event.Instruction.Data)),
			slog.Int("size", len(event.Instruction.Data)),
		)
		if len(event.Instruction.Fields) > 0 {
			names := make([]string, 0, len(event.Instruction.Fields))
			for name := range event.Instruction.Fields {
				names = append(names, name)
			}
			sort.Strings(names)
			fields := make([]any, 0, len(names))
			for _, name := range names {
				fields = append(fields, slog.Int64(name, event.Instruction.Fields[name]))
			}
			attrs = append(attrs, slog.Group("fields", fields...))
		}
	case event.Error != nil:
		level = slog.LevelWarn
		attrs = append(attrs, slog.String("error", event.Error.Message))
		if event.Error.Context != "" {
			attrs = append(attrs, slog.String("context", event.Error.Context))
		}
	}

	a.logger.LogAttrs(context.Background(), level, "codec", attrs...)
}

var _ Logger = (*SlogAdapter)(nil)
