package instr

import (
	"errors"
	"fmt"
	"sort"

	"github.com/bitword/bitword-go/pkg/token"
)

// Format errors.
var (
	ErrFormatNotFound = errors.New("instruction format not found")
)

// Values maps field names to values.
type Values map[string]int64

// Names returns the field names, sorted.
func (v Values) Names() []string {
	names := make([]string, 0, len(v))
	for name := range v {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Format is an instruction layout: an ordered list of token types.
type Format struct {
	name        string
	description string
	types       []*token.Type
	fields      []string
}

// NewFormat creates a format from one or more token types.
func NewFormat(name string, types ...*token.Type) (*Format, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: instruction format has no name", token.ErrDefinition)
	}
	if len(types) == 0 {
		return nil, fmt.Errorf("%w: instruction format %q has no tokens", token.ErrDefinition, name)
	}

	f := &Format{name: name, types: types}
	seen := make(map[string]bool)
	for i, t := range types {
		if t == nil {
			return nil, fmt.Errorf("%w: instruction format %q token %d is nil", token.ErrDefinition, name, i)
		}
		for _, field := range t.FieldNames() {
			if !seen[field] {
				seen[field] = true
				f.fields = append(f.fields, field)
			}
		}
	}
	return f, nil
}

// WithDescription returns f with a human-readable description attached.
func (f *Format) WithDescription(desc string) *Format {
	f.description = desc
	return f
}

// Name returns the format name.
func (f *Format) Name() string {
	return f.name
}

// Description returns the format description.
func (f *Format) Description() string {
	return f.description
}

// Types returns the token types in order.
func (f *Format) Types() []*token.Type {
	return f.types
}

// FieldNames returns every addressable field, in token order. A name
// declared by several tokens appears once and refers to the first.
func (f *Format) FieldNames() []string {
	out := make([]string, len(f.fields))
	copy(out, f.fields)
	return out
}

// ByteSize returns the encoded instruction length.
func (f *Format) ByteSize() int {
	n := 0
	for _, t := range f.types {
		n += t.ByteSize()
	}
	return n
}

// NewSequence returns a zeroed token sequence for this format.
func (f *Format) NewSequence() *token.Sequence {
	tokens := make([]*token.Token, len(f.types))
	for i, t := range f.types {
		tokens[i] = t.New()
	}
	return token.NewSequence(tokens...)
}

// Encode builds an instruction from field values. Fields not mentioned
// are zero.
func (f *Format) Encode(values Values) ([]byte, error) {
	seq := f.NewSequence()
	for _, name := range values.Names() {
		if err := seq.SetFieldInt(name, values[name]); err != nil {
			return nil, fmt.Errorf("%s: %w", f.name, err)
		}
	}
	return seq.Encode(), nil
}

// Decode splits instruction bytes into field values.
func (f *Format) Decode(data []byte) (Values, error) {
	seq := f.NewSequence()
	if err := seq.Fill(data); err != nil {
		return nil, fmt.Errorf("%s: %w", f.name, err)
	}

	values := make(Values, len(f.fields))
	for _, name := range f.fields {
		v, err := seq.FieldInt(name)
		if err != nil {
			return nil, err
		}
		values[name] = v
	}
	return values, nil
}
