// Package version parses and compares layout schema versions.
package version

import (
	"fmt"
	"strconv"
	"strings"
)

// Current is the layout schema version written and read by this library.
const Current = "1.0"

// SchemaVersion is a parsed "major.minor" version.
type SchemaVersion struct {
	Major uint16
	Minor uint16
}

// Parse parses a "major.minor" version string.
func Parse(s string) (SchemaVersion, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 2 {
		return SchemaVersion{}, fmt.Errorf("invalid version %q: expected major.minor", s)
	}

	major, err := strconv.ParseUint(parts[0], 10, 16)
	if err != nil || parts[0] == "" {
		return SchemaVersion{}, fmt.Errorf("invalid version %q: bad major component", s)
	}

	minor, err := strconv.ParseUint(parts[1], 10, 16)
	if err != nil || parts[1] == "" {
		return SchemaVersion{}, fmt.Errorf("invalid version %q: bad minor component", s)
	}

	return SchemaVersion{Major: uint16(major), Minor: uint16(minor)}, nil
}

// String returns the version as "major.minor".
func (v SchemaVersion) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// Compatible returns true if the other version has the same major version.
func (v SchemaVersion) Compatible(other SchemaVersion) bool {
	return v.Major == other.Major
}

// Check parses s and verifies it can be read by this library. Newer minor
// versions of the current major are accepted; unknown keys are ignored by
// the YAML decoder.
func Check(s string) (SchemaVersion, error) {
	v, err := Parse(s)
	if err != nil {
		return SchemaVersion{}, err
	}
	current, _ := Parse(Current)
	if !current.Compatible(v) {
		return SchemaVersion{}, fmt.Errorf("unsupported schema version %s (supported: %d.x)", v, current.Major)
	}
	return v, nil
}
