package layout

import (
	"embed"
	"fmt"
	"path"
	"sort"
	"strings"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// BuiltinNames returns the names of the embedded layouts.
func BuiltinNames() []string {
	entries, err := builtinFS.ReadDir("builtin")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	sort.Strings(names)
	return names
}

// Builtin builds an embedded layout by name.
func Builtin(name string) (*Layout, error) {
	data, err := builtinFS.ReadFile(path.Join("builtin", name+".yaml"))
	if err != nil {
		return nil, fmt.Errorf("unknown builtin layout %q (available: %s)", name, strings.Join(BuiltinNames(), ", "))
	}
	l, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("builtin %s: %w", name, err)
	}
	return l, nil
}

// Open builds a layout from a file path, or from an embedded layout when
// ref has the form "builtin:<name>".
func Open(ref string) (*Layout, error) {
	if name, ok := strings.CutPrefix(ref, "builtin:"); ok {
		return Builtin(name)
	}
	return Load(ref)
}
