package token

import (
	"fmt"
	"strings"
)

// Endianness is the byte order used to pack a token.
type Endianness uint8

const (
	// EndianUnset defers to the parent type, or little endian.
	EndianUnset Endianness = 0
	// LittleEndian emits the least significant byte first.
	LittleEndian Endianness = 1
	// BigEndian emits the most significant byte first.
	BigEndian Endianness = 2
)

// String returns the endianness name.
func (e Endianness) String() string {
	switch e {
	case EndianUnset:
		return "unset"
	case LittleEndian:
		return "little"
	case BigEndian:
		return "big"
	default:
		return "unknown"
	}
}

// ParseEndianness parses "little"/"le" or "big"/"be". The empty string
// yields EndianUnset.
func ParseEndianness(s string) (Endianness, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return EndianUnset, nil
	case "little", "le":
		return LittleEndian, nil
	case "big", "be":
		return BigEndian, nil
	default:
		return EndianUnset, fmt.Errorf("unknown endianness %q", s)
	}
}
