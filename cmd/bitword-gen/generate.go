package main

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/bitword/bitword-go/pkg/layout"
)

// reservedMethods are declared on every generated struct.
var reservedMethods = map[string]bool{
	"Token":  true,
	"Encode": true,
	"String": true,
}

// Generate renders the Go source for every token type of l.
func Generate(l *layout.Layout, pkg, source string) (string, error) {
	if !isIdent(pkg) {
		return "", fmt.Errorf("invalid package name %q", pkg)
	}

	data := fileData{Package: pkg, Source: source, Layout: l.Name}
	goNames := make(map[string]string)
	for _, name := range l.Registry.Names() {
		typ, err := l.Registry.Lookup(name)
		if err != nil {
			return "", err
		}
		td := typeData{
			GoName:      goTitleCase(name),
			Name:        name,
			Description: oneLine(l.TokenDescription(name)),
			Size:        typ.Size(),
		}
		if prev, ok := goNames[td.GoName]; ok {
			return "", fmt.Errorf("token types %s and %s both map to Go name %s", prev, name, td.GoName)
		}
		goNames[td.GoName] = name

		methods := make(map[string]string)
		for _, fname := range typ.FieldNames() {
			f, err := typ.Field(fname)
			if err != nil {
				return "", err
			}
			fd := fieldData{
				GoName:      goTitleCase(fname),
				Name:        fname,
				Description: oneLine(l.FieldDescription(name, fname)),
				Bits:        f.String(),
				Width:       f.Width(),
				Signed:      f.Signed(),
			}
			for _, m := range []string{fd.GoName, "Set" + fd.GoName} {
				if reservedMethods[m] {
					return "", fmt.Errorf("%s.%s: method %s is reserved", name, fname, m)
				}
				if prev, ok := methods[m]; ok {
					return "", fmt.Errorf("%s: fields %s and %s both generate method %s", name, prev, fname, m)
				}
				methods[m] = fname
			}
			td.Fields = append(td.Fields, fd)
		}
		data.Types = append(data.Types, td)
	}

	var b strings.Builder
	renderTemplate(&b, "file", data)
	return b.String(), nil
}

// goTitleCase converts "rv32_i" to "Rv32I" and "imm_hi" to "ImmHi".
func goTitleCase(name string) string {
	var b strings.Builder
	upper := true
	for _, r := range name {
		if r == '_' || r == '-' || r == '.' {
			upper = true
			continue
		}
		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}
		b.WriteRune(r)
	}
	out := b.String()
	if out == "" || unicode.IsDigit(rune(out[0])) {
		out = "T" + out
	}
	return out
}

// packageName derives a package name from a layout name ("RV32-Base" -> "rv32base").
func packageName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	out := b.String()
	if out == "" || unicode.IsDigit(rune(out[0])) {
		out = "tokens" + out
	}
	return out
}

// oneLine collapses whitespace so descriptions fit a line comment.
func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r != '_' && !unicode.IsLetter(r) && (i == 0 || !unicode.IsDigit(r)) {
			return false
		}
	}
	return true
}
