// Command bitword-gen generates typed Go accessors for the token types of a
// layout file.
//
// Each token type becomes a struct wrapping *token.Token with one getter and
// one setter per field. Signed fields use int64, unsigned fields uint64.
//
// Usage:
//
//	bitword-gen -layout cpu.yaml -package cpu -output cpu/tokens_gen.go
//	bitword-gen -layout builtin:rv32 -package rv32 -output rv32/tokens_gen.go
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/tools/imports"

	"github.com/bitword/bitword-go/pkg/layout"
)

func main() {
	layoutRef := flag.String("layout", "", "Layout file or builtin:<name>")
	pkg := flag.String("package", "", "Package name of the generated file (default: layout name)")
	output := flag.String("output", "", "Output file path")
	flag.Parse()

	if *layoutRef == "" || *output == "" {
		fmt.Fprintln(os.Stderr, "Usage: bitword-gen -layout <path|builtin:name> -output <file> [-package <name>]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if err := run(*layoutRef, *pkg, *output); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(layoutRef, pkg, output string) error {
	l, err := layout.Open(layoutRef)
	if err != nil {
		return fmt.Errorf("loading layout: %w", err)
	}
	if pkg == "" {
		pkg = packageName(l.Name)
	}

	code, err := Generate(l, pkg, layoutRef)
	if err != nil {
		return fmt.Errorf("generating: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}
	if err := writeFormatted(output, code); err != nil {
		return err
	}
	fmt.Printf("  generated %s\n", output)
	return nil
}

// writeFormatted formats Go source code with goimports and writes it to a file.
func writeFormatted(path string, code string) error {
	formatted, err := imports.Process(path, []byte(code), nil)
	if err != nil {
		// Keep the raw output around for debugging the templates.
		_ = os.WriteFile(path+".broken", []byte(code), 0o644)
		return fmt.Errorf("goimports %s: %w", filepath.Base(path), err)
	}
	return os.WriteFile(path, formatted, 0o644)
}
