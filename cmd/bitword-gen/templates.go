package main

import (
	"fmt"
	"strings"
	"text/template"
)

// funcMap provides helper functions available to all templates.
var funcMap = template.FuncMap{
	"quote": func(s string) string { return fmt.Sprintf("%q", s) },
	"recv":  func(name string) string { return strings.ToLower(name[:1]) },
	"fieldCtx": func(typ, recv string, f fieldData) fieldContext {
		return fieldContext{Type: typ, Recv: recv, Field: f}
	},
}

// templates holds all parsed code generation templates.
var templates = template.Must(template.New("").Funcs(funcMap).Parse(
	fileTmpl + typeTmpl + fieldTmpl,
))

// renderTemplate executes a named template into the builder.
func renderTemplate(b *strings.Builder, name string, data any) {
	if err := templates.ExecuteTemplate(b, name, data); err != nil {
		panic(fmt.Sprintf("template %s: %v", name, err))
	}
}

type fileData struct {
	Package string
	Source  string
	Layout  string
	Types   []typeData
}

type typeData struct {
	GoName      string
	Name        string
	Description string
	Size        int
	Fields      []fieldData
}

type fieldData struct {
	GoName      string
	Name        string
	Description string
	Bits        string
	Width       int
	Signed      bool
}

const fileTmpl = `{{define "file"}}// Code generated by bitword-gen from {{.Source}}. DO NOT EDIT.

package {{.Package}}

import (
	"fmt"

	"github.com/bitword/bitword-go/pkg/token"
)

// Token type names{{if .Layout}} of layout {{.Layout}}{{end}}.
const (
{{- range .Types}}
	Type{{.GoName}} = {{quote .Name}}
{{- end}}
)

// derives reports whether typ is name or one of its descendants.
func derives(typ *token.Type, name string) bool {
	for ; typ != nil; typ = typ.Parent() {
		if typ.Name() == name {
			return true
		}
	}
	return false
}
{{range .Types}}{{template "type" .}}{{end}}{{end}}`

const typeTmpl = `{{define "type"}}{{$name := .GoName}}{{$recv := recv .GoName}}
// {{$name}} is a {{.Name}} token ({{.Size}} bits).{{if .Description}}
// {{.Description}}{{end}}
type {{$name}} struct {
	tok *token.Token
}

// New{{$name}} creates a zero {{.Name}} token using the type registered in reg.
func New{{$name}}(reg *token.Registry) ({{$name}}, error) {
	typ, err := reg.Lookup(Type{{$name}})
	if err != nil {
		return {{$name}}{}, err
	}
	return {{$name}}{tok: typ.New()}, nil
}

// As{{$name}} wraps tok, which must be a {{.Name}} token or derive from it.
func As{{$name}}(tok *token.Token) ({{$name}}, error) {
	if tok == nil || !derives(tok.Type(), Type{{$name}}) {
		return {{$name}}{}, fmt.Errorf("%w: token is not a %s", token.ErrTypeNotFound, Type{{$name}})
	}
	return {{$name}}{tok: tok}, nil
}

// Token returns the wrapped token.
func ({{$recv}} {{$name}}) Token() *token.Token {
	return {{$recv}}.tok
}

// Encode returns the token bytes.
func ({{$recv}} {{$name}}) Encode() []byte {
	return {{$recv}}.tok.Encode()
}

func ({{$recv}} {{$name}}) String() string {
	return {{$recv}}.tok.String()
}
{{range .Fields}}{{template "field" (fieldCtx $name $recv .)}}{{end}}{{end}}`

const fieldTmpl = `{{define "field"}}{{$f := .Field}}
// {{$f.GoName}} returns the {{$f.Name}} field {{$f.Bits}}.{{if $f.Description}}
// {{$f.Description}}{{end}}
func ({{.Recv}} {{.Type}}) {{$f.GoName}}() {{if $f.Signed}}int64{{else}}uint64{{end}} {
	value, _ := {{.Recv}}.tok.{{if $f.Signed}}FieldInt{{else}}Field{{end}}({{quote $f.Name}})
	return value
}

// Set{{$f.GoName}} sets the {{$f.Name}} field ({{$f.Width}} bits{{if $f.Signed}}, signed{{end}}).
func ({{.Recv}} {{.Type}}) Set{{$f.GoName}}(value {{if $f.Signed}}int64{{else}}uint64{{end}}) error {
	return {{.Recv}}.tok.{{if $f.Signed}}SetFieldInt{{else}}SetField{{end}}({{quote $f.Name}}, value)
}
{{end}}`

// fieldContext carries the enclosing type into the field template.
type fieldContext struct {
	Type  string
	Recv  string
	Field fieldData
}
