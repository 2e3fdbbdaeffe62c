package commands

import (
	"fmt"
	"io"

	"github.com/bitword/bitword-go/pkg/layout"
)

// RunFields describes the token types and formats of a layout. With a
// non-empty typeName only that token type is shown.
func RunFields(l *layout.Layout, typeName string, w io.Writer) error {
	names := l.Registry.Names()
	if typeName != "" {
		if _, err := l.Registry.Lookup(typeName); err != nil {
			return err
		}
		names = []string{typeName}
	}

	if l.Name != "" {
		fmt.Fprintf(w, "Layout: %s (schema %s)\n", l.Name, l.Version)
	}
	for _, name := range names {
		typ, err := l.Registry.Lookup(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "\n%s  %d bits, %s", typ.Name(), typ.Size(), typ.Endianness())
		if p := typ.Parent(); p != nil {
			fmt.Fprintf(w, ", parent %s", p.Name())
		}
		fmt.Fprintln(w)
		if desc := l.TokenDescription(name); desc != "" {
			fmt.Fprintf(w, "  %s\n", desc)
		}
		for _, fname := range typ.FieldNames() {
			f, err := typ.Field(fname)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "  %-10s %-24s", fname, f.String())
			if desc := l.FieldDescription(name, fname); desc != "" {
				fmt.Fprintf(w, " %s", desc)
			}
			fmt.Fprintln(w)
		}
	}

	if typeName != "" {
		return nil
	}
	formats := l.Formats()
	if len(formats) == 0 {
		return nil
	}
	fmt.Fprintln(w, "\nFormats:")
	for _, f := range formats {
		var types []string
		for _, t := range f.Types() {
			types = append(types, t.Name())
		}
		fmt.Fprintf(w, "  %-10s %v", f.Name(), types)
		if f.Description() != "" {
			fmt.Fprintf(w, "  %s", f.Description())
		}
		fmt.Fprintln(w)
	}
	return nil
}
