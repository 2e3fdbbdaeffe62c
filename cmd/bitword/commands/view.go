package commands

import (
	"encoding/hex"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/bitword/bitword-go/pkg/log"
)

// ViewFilter holds filter options for the log command.
type ViewFilter struct {
	SessionID string
	Format    string
	Operation *log.Operation
	Category  *log.Category
	TimeStart string // RFC3339
	TimeEnd   string // RFC3339
}

func (f ViewFilter) toLogFilter() (log.Filter, error) {
	lf := log.Filter{
		SessionID: f.SessionID,
		Format:    f.Format,
		Operation: f.Operation,
		Category:  f.Category,
	}
	if f.TimeStart != "" {
		t, err := time.Parse(time.RFC3339, f.TimeStart)
		if err != nil {
			return lf, fmt.Errorf("invalid time-start: %w", err)
		}
		lf.TimeStart = &t
	}
	if f.TimeEnd != "" {
		t, err := time.Parse(time.RFC3339, f.TimeEnd)
		if err != nil {
			return lf, fmt.Errorf("invalid time-end: %w", err)
		}
		lf.TimeEnd = &t
	}
	return lf, nil
}

// RunView prints the events of a codec event log.
func RunView(path string, filter ViewFilter, w io.Writer) error {
	lf, err := filter.toLogFilter()
	if err != nil {
		return err
	}
	reader, err := log.NewFilteredReader(path, lf)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		formatEvent(w, event)
	}
}

// RunStats prints per-format and per-session counts for an event log.
func RunStats(path string, w io.Writer) error {
	reader, err := log.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	var total, errs int
	byFormat := make(map[string]int)
	sessions := make(map[string]int)
	var start, end time.Time
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		total++
		if event.Category == log.CategoryError {
			errs++
		}
		byFormat[event.Format]++
		sessions[event.SessionID]++
		if start.IsZero() || event.Timestamp.Before(start) {
			start = event.Timestamp
		}
		if event.Timestamp.After(end) {
			end = event.Timestamp
		}
	}

	fmt.Fprintf(w, "Total events: %d\n", total)
	fmt.Fprintf(w, "Errors:       %d\n", errs)
	fmt.Fprintf(w, "Sessions:     %d\n", len(sessions))
	if total > 0 {
		fmt.Fprintf(w, "Time range:   %s .. %s\n", start.UTC().Format(time.RFC3339), end.UTC().Format(time.RFC3339))
	}
	if len(byFormat) > 0 {
		fmt.Fprintln(w, "\nBy format:")
		names := make([]string, 0, len(byFormat))
		for name := range byFormat {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			label := name
			if label == "" {
				label = "(none)"
			}
			fmt.Fprintf(w, "  %-12s %d\n", label, byFormat[name])
		}
	}
	return nil
}

func formatEvent(w io.Writer, event log.Event) {
	ts := event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z")
	session := event.SessionID
	if len(session) > 8 {
		session = session[:8]
	}
	fmt.Fprintf(w, "%s [%s] %-6s %-11s %s\n", ts, session, event.Operation, event.Category, event.Format)

	switch {
	case event.Instruction != nil:
		fmt.Fprintf(w, "  data: %s\n", hex.EncodeToString(event.Instruction.Data))
		if len(event.Instruction.Fields) > 0 {
			names := make([]string, 0, len(event.Instruction.Fields))
			for name := range event.Instruction.Fields {
				names = append(names, name)
			}
			sort.Strings(names)
			parts := make([]string, len(names))
			for i, name := range names {
				parts[i] = fmt.Sprintf("%s=%d", name, event.Instruction.Fields[name])
			}
			fmt.Fprintf(w, "  fields: %s\n", strings.Join(parts, " "))
		}
	case event.Error != nil:
		fmt.Fprintf(w, "  error: %s\n", event.Error.Message)
		if event.Error.Context != "" {
			fmt.Fprintf(w, "  context: %s\n", event.Error.Context)
		}
	}
}

// ParseOperationFlag parses an operation name (encode, decode).
func ParseOperationFlag(s string) (log.Operation, error) {
	switch strings.ToLower(s) {
	case "encode":
		return log.OperationEncode, nil
	case "decode":
		return log.OperationDecode, nil
	default:
		return 0, fmt.Errorf("invalid operation %q (want encode or decode)", s)
	}
}

// ParseCategoryFlag parses a category name (instruction, error).
func ParseCategoryFlag(s string) (log.Category, error) {
	switch strings.ToLower(s) {
	case "instruction":
		return log.CategoryInstruction, nil
	case "error":
		return log.CategoryError, nil
	default:
		return 0, fmt.Errorf("invalid category %q (want instruction or error)", s)
	}
}
