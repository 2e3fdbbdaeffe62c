package commands

import (
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/bitword/bitword-go/pkg/instr"
)

// ParseAssignments parses "name=value" arguments. Values accept Go integer
// syntax (decimal, 0x, 0b, 0o, negative).
func ParseAssignments(args []string) (instr.Values, error) {
	values := make(instr.Values, len(args))
	for _, arg := range args {
		name, raw, ok := strings.Cut(arg, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid assignment %q: expected name=value", arg)
		}
		v, err := ParseValue(raw)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", name, err)
		}
		values[name] = v
	}
	return values, nil
}

// ParseValue parses a signed integer, also accepting unsigned 64-bit values
// above the int64 range (stored as their two's-complement bit pattern).
func ParseValue(s string) (int64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), "_", "")
	if v, err := strconv.ParseInt(s, 0, 64); err == nil {
		return v, nil
	}
	u, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid value %q", s)
	}
	return int64(u), nil
}

// ParseHex decodes hex input. Whitespace, colons and a leading 0x are ignored.
func ParseHex(s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(s), "0x"), "0X")
	s = strings.NewReplacer(" ", "", "\t", "", ":", "", "\n", "").Replace(s)
	data, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid hex input: %w", err)
	}
	return data, nil
}

// WriteValues prints one "name = value (0xhex)" line per field, in the
// order given.
func WriteValues(w io.Writer, names []string, values instr.Values) {
	width := 0
	for _, name := range names {
		width = max(width, len(name))
	}
	for _, name := range names {
		v, ok := values[name]
		if !ok {
			continue
		}
		if v < 0 {
			fmt.Fprintf(w, "  %-*s = %d\n", width, name, v)
		} else {
			fmt.Fprintf(w, "  %-*s = %d (0x%X)\n", width, name, v, v)
		}
	}
}
