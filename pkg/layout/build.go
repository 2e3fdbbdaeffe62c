package layout

import (
	"errors"
	"fmt"

	"github.com/bitword/bitword-go/pkg/bitfield"
	"github.com/bitword/bitword-go/pkg/instr"
	"github.com/bitword/bitword-go/pkg/token"
	"github.com/bitword/bitword-go/pkg/version"
)

// ErrLayout is wrapped by every layout validation error. Errors from field
// and token definition also wrap token.ErrDefinition.
var ErrLayout = errors.New("invalid layout")

// Layout is a built layout: registered token types plus formats.
type Layout struct {
	Name        string
	Description string
	Version     version.SchemaVersion

	// Registry holds every token type in the file.
	Registry *token.Registry

	raw     map[string]*RawTokenDef
	formats []*instr.Format
	byName  map[string]*instr.Format
}

// Parse parses and builds a layout from YAML bytes.
func Parse(data []byte) (*Layout, error) {
	raw, err := ParseLayout(data)
	if err != nil {
		return nil, err
	}
	return Build(raw)
}

// Load reads, parses and builds a layout file.
func Load(path string) (*Layout, error) {
	raw, err := LoadLayout(path)
	if err != nil {
		return nil, err
	}
	l, err := Build(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return l, nil
}

// Build resolves a raw layout. Version defaults to version.Current.
func Build(raw *RawLayout) (*Layout, error) {
	v := raw.Version
	if v == "" {
		v = version.Current
	}
	ver, err := version.Check(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLayout, err)
	}

	b := &builder{
		defs:     make(map[string]*RawTokenDef, len(raw.Tokens)),
		reg:      token.NewRegistry(),
		visiting: make(map[string]bool),
	}
	for i := range raw.Tokens {
		def := &raw.Tokens[i]
		if def.Name == "" {
			return nil, fmt.Errorf("%w: token %d has no name", ErrLayout, i)
		}
		if _, dup := b.defs[def.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate token %q", ErrLayout, def.Name)
		}
		b.defs[def.Name] = def
	}
	for i := range raw.Tokens {
		if _, err := b.resolve(raw.Tokens[i].Name); err != nil {
			return nil, err
		}
	}

	l := &Layout{
		Name:        raw.Name,
		Description: raw.Description,
		Version:     ver,
		Registry:    b.reg,
		raw:         b.defs,
		byName:      make(map[string]*instr.Format, len(raw.Formats)),
	}
	for _, fd := range raw.Formats {
		f, err := l.buildFormat(fd)
		if err != nil {
			return nil, err
		}
		l.formats = append(l.formats, f)
		l.byName[f.Name()] = f
	}
	return l, nil
}

func (l *Layout) buildFormat(fd RawFormatDef) (*instr.Format, error) {
	if _, dup := l.byName[fd.Name]; dup {
		return nil, fmt.Errorf("%w: duplicate format %q", ErrLayout, fd.Name)
	}
	types := make([]*token.Type, 0, len(fd.Tokens))
	for _, name := range fd.Tokens {
		t, err := l.Registry.Lookup(name)
		if err != nil {
			return nil, fmt.Errorf("%w: format %q: %w", ErrLayout, fd.Name, err)
		}
		types = append(types, t)
	}
	f, err := instr.NewFormat(fd.Name, types...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLayout, err)
	}
	return f.WithDescription(fd.Description), nil
}

// Formats returns the formats in file order.
func (l *Layout) Formats() []*instr.Format {
	return l.formats
}

// Format returns the named format.
func (l *Layout) Format(name string) (*instr.Format, error) {
	f, ok := l.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", instr.ErrFormatNotFound, name)
	}
	return f, nil
}

// Codec returns a codec over all formats of the layout.
func (l *Layout) Codec(opts ...instr.Option) (*instr.Codec, error) {
	return instr.NewCodec(l.formats, opts...)
}

// TokenDescription returns the description of a token type.
func (l *Layout) TokenDescription(name string) string {
	if def, ok := l.raw[name]; ok {
		return def.Description
	}
	return ""
}

// FieldDescription returns the description of a field, following parents
// for inherited fields.
func (l *Layout) FieldDescription(tokenName, field string) string {
	for def, ok := l.raw[tokenName]; ok; def, ok = l.raw[def.Parent] {
		for _, f := range def.Fields {
			if f.Name == field {
				return f.Description
			}
		}
		if def.Parent == "" {
			break
		}
	}
	return ""
}

type builder struct {
	defs     map[string]*RawTokenDef
	reg      *token.Registry
	visiting map[string]bool
}

// resolve defines name and its ancestors, in dependency order.
func (b *builder) resolve(name string) (*token.Type, error) {
	if t, err := b.reg.Lookup(name); err == nil {
		return t, nil
	}
	def, ok := b.defs[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown token %q", ErrLayout, name)
	}
	if b.visiting[name] {
		return nil, fmt.Errorf("%w: token %q inherits from itself", ErrLayout, name)
	}
	b.visiting[name] = true
	defer delete(b.visiting, name)

	var parent *token.Type
	if def.Parent != "" {
		p, err := b.resolve(def.Parent)
		if err != nil {
			return nil, fmt.Errorf("token %q: %w", name, err)
		}
		parent = p
	}

	endian, err := token.ParseEndianness(def.Endianness)
	if err != nil {
		return nil, fmt.Errorf("%w: token %q: %v", ErrLayout, name, err)
	}

	fields, err := buildFields(def, parent)
	if err != nil {
		return nil, err
	}

	t, err := b.reg.Define(token.Definition{
		Name:       def.Name,
		Size:       def.Size,
		Endianness: endian,
		Parent:     parent,
		Fields:     fields,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLayout, err)
	}
	return t, nil
}

func buildFields(def *RawTokenDef, parent *token.Type) ([]token.NamedField, error) {
	local := make(map[string]*bitfield.Field, len(def.Fields))
	out := make([]token.NamedField, 0, len(def.Fields))

	visible := func(name string) (*bitfield.Field, bool) {
		if f, ok := local[name]; ok {
			return f, true
		}
		if parent != nil {
			if f, err := parent.Field(name); err == nil {
				return f, true
			}
		}
		return nil, false
	}

	for _, fd := range def.Fields {
		f, err := buildField(fd, visible)
		if err != nil {
			return nil, fmt.Errorf("%w: field %s.%s: %w", ErrLayout, def.Name, fd.Name, err)
		}
		if _, dup := local[fd.Name]; dup {
			return nil, fmt.Errorf("%w: field %s.%s declared twice", ErrLayout, def.Name, fd.Name)
		}
		local[fd.Name] = f
		out = append(out, token.NamedField{Name: fd.Name, Field: f})
	}
	return out, nil
}

func buildField(fd RawFieldDef, visible func(string) (*bitfield.Field, bool)) (*bitfield.Field, error) {
	if fd.Name == "" {
		return nil, fmt.Errorf("%w: missing name", token.ErrDefinition)
	}

	modes := 0
	if fd.Start != nil || fd.End != nil {
		modes++
	}
	if fd.Bit != nil {
		modes++
	}
	if len(fd.Concat) > 0 {
		modes++
	}
	if modes != 1 {
		return nil, fmt.Errorf("%w: need exactly one of start/end, bit or concat", token.ErrDefinition)
	}

	switch {
	case fd.Bit != nil:
		return bitfield.Range(*fd.Bit, *fd.Bit+1, fd.Signed)

	case len(fd.Concat) > 0:
		parts := make([]*bitfield.Field, 0, len(fd.Concat))
		for _, name := range fd.Concat {
			p, ok := visible(name)
			if !ok {
				return nil, fmt.Errorf("%w: concat part %q is not defined", token.ErrDefinition, name)
			}
			parts = append(parts, p)
		}
		f, err := bitfield.Concat(parts...)
		if err != nil {
			return nil, err
		}
		if fd.Signed && !f.Signed() {
			f = f.WithSigned(true)
		}
		return f, nil

	default:
		if fd.Start == nil || fd.End == nil {
			return nil, fmt.Errorf("%w: start and end must both be set", token.ErrDefinition)
		}
		return bitfield.Range(*fd.Start, *fd.End, fd.Signed)
	}
}
