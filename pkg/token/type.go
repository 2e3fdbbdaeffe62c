package token

import (
	"fmt"

	"github.com/bitword/bitword-go/pkg/bitfield"
)

// MaxSize is the widest token supported, in bits.
const MaxSize = bitfield.WordBits

// NamedField pairs a field name with its descriptor.
type NamedField struct {
	Name  string
	Field *bitfield.Field
}

// Definition describes a token type to be created with Define.
type Definition struct {
	// Name identifies the type in registries and error messages.
	Name string

	// Size is the token width in bits. Zero inherits the parent's size.
	Size int

	// Endianness is the byte order. EndianUnset inherits the parent's,
	// falling back to LittleEndian.
	Endianness Endianness

	// Parent is the type this one derives from (optional).
	Parent *Type

	// Fields declared by this type. They take precedence over parent
	// fields of the same name.
	Fields []NamedField
}

// Type is an immutable token type: size, endianness and field table.
type Type struct {
	name       string
	size       int
	endianness Endianness
	parent     *Type

	fields map[string]*bitfield.Field
	order  []string
}

// Define resolves a definition into a Type, merging inherited fields.
func Define(def Definition) (*Type, error) {
	t := &Type{
		name:       def.Name,
		size:       def.Size,
		endianness: def.Endianness,
		parent:     def.Parent,
		fields:     make(map[string]*bitfield.Field),
	}

	if t.parent != nil {
		if t.size == 0 {
			t.size = t.parent.size
		}
		if t.endianness == EndianUnset {
			t.endianness = t.parent.endianness
		}
	}
	if t.endianness == EndianUnset {
		t.endianness = LittleEndian
	}

	if t.size == 0 {
		return nil, fmt.Errorf("%w: token type %q has no size", ErrDefinition, def.Name)
	}
	if t.size < 0 || t.size%8 != 0 {
		return nil, fmt.Errorf("%w: token type %q size %d is not a positive multiple of 8", ErrDefinition, def.Name, t.size)
	}
	if t.size > MaxSize {
		return nil, fmt.Errorf("%w: token type %q size %d exceeds %d bits", ErrDefinition, def.Name, t.size, MaxSize)
	}
	if t.endianness != LittleEndian && t.endianness != BigEndian {
		return nil, fmt.Errorf("%w: token type %q has invalid endianness %d", ErrDefinition, def.Name, t.endianness)
	}

	for _, nf := range def.Fields {
		if nf.Name == "" {
			return nil, fmt.Errorf("%w: token type %q has an unnamed field", ErrDefinition, def.Name)
		}
		if nf.Field == nil {
			return nil, fmt.Errorf("%w: field %s.%s has no descriptor", ErrDefinition, def.Name, nf.Name)
		}
		if _, dup := t.fields[nf.Name]; dup {
			return nil, fmt.Errorf("%w: field %s.%s declared twice", ErrDefinition, def.Name, nf.Name)
		}
		t.add(nf.Name, nf.Field)
	}

	// Inherit whatever the parent has that we don't. The parent already
	// holds its own ancestors' fields.
	if t.parent != nil {
		for _, name := range t.parent.order {
			if _, ok := t.fields[name]; !ok {
				t.add(name, t.parent.fields[name])
			}
		}
	}

	for _, name := range t.order {
		f := t.fields[name]
		if f.HighestBit() >= t.size {
			return nil, fmt.Errorf("%w: field %s.%s %s exceeds %d-bit token", ErrDefinition, def.Name, name, f, t.size)
		}
	}

	return t, nil
}

// MustDefine is like Define but panics on error.
func MustDefine(def Definition) *Type {
	t, err := Define(def)
	if err != nil {
		panic(err)
	}
	return t
}

func (t *Type) add(name string, f *bitfield.Field) {
	t.fields[name] = f
	t.order = append(t.order, name)
}

// Name returns the type name.
func (t *Type) Name() string {
	return t.name
}

// Size returns the token width in bits.
func (t *Type) Size() int {
	return t.size
}

// ByteSize returns the encoded length in bytes.
func (t *Type) ByteSize() int {
	return t.size / 8
}

// Endianness returns the byte order.
func (t *Type) Endianness() Endianness {
	return t.endianness
}

// Parent returns the type this one was derived from, or nil.
func (t *Type) Parent() *Type {
	return t.parent
}

// Mask returns the mask of valid value bits.
func (t *Type) Mask() uint64 {
	if t.size >= MaxSize {
		return ^uint64(0)
	}
	return 1<<t.size - 1
}

// Field returns the descriptor for name.
func (t *Type) Field(name string) (*bitfield.Field, error) {
	f, ok := t.fields[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s", ErrFieldNotFound, t.name, name)
	}
	return f, nil
}

// HasField reports whether the type declares or inherits name.
func (t *Type) HasField(name string) bool {
	_, ok := t.fields[name]
	return ok
}

// FieldNames returns field names in declaration order, own fields first.
func (t *Type) FieldNames() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// DerivesFrom reports whether t is other or one of its descendants.
func (t *Type) DerivesFrom(other *Type) bool {
	for c := t; c != nil; c = c.parent {
		if c == other {
			return true
		}
	}
	return false
}

// String returns the type name and size, e.g. "base(16)".
func (t *Type) String() string {
	return fmt.Sprintf("%s(%d)", t.name, t.size)
}

// Pack converts value into ByteSize() bytes in the type's byte order.
// Bits above Size() are ignored.
func (t *Type) Pack(value uint64) []byte {
	n := t.ByteSize()
	out := make([]byte, n)
	for k := 0; k < n; k++ {
		b := byte(value >> (8 * k))
		if t.endianness == BigEndian {
			out[n-1-k] = b
		} else {
			out[k] = b
		}
	}
	return out
}

// Unpack converts exactly ByteSize() bytes into a value.
func (t *Type) Unpack(data []byte) (uint64, error) {
	n := t.ByteSize()
	if len(data) != n {
		return 0, &SizeMismatchError{Context: t.name, Expected: n, Actual: len(data)}
	}

	var v uint64
	for k := 0; k < n; k++ {
		var b byte
		if t.endianness == BigEndian {
			b = data[k]
		} else {
			b = data[n-1-k]
		}
		v = v<<8 | uint64(b)
	}
	return v, nil
}

// New returns a zero-valued token of this type.
func (t *Type) New() *Token {
	return &Token{typ: t}
}

// NewValue returns a token holding value.
func (t *Type) NewValue(value uint64) (*Token, error) {
	tok := t.New()
	if err := tok.SetValue(value); err != nil {
		return nil, err
	}
	return tok, nil
}

// FromData decodes a token from its byte encoding.
func (t *Type) FromData(data []byte) (*Token, error) {
	v, err := t.Unpack(data)
	if err != nil {
		return nil, err
	}
	return &Token{typ: t, value: v}, nil
}
