package bitfield

import (
	"fmt"
	"strings"
)

// WordBits is the width of the word fields are applied to.
const WordBits = 64

// Field describes a range of bits, or a concatenation of ranges, within a word.
type Field struct {
	start  int
	end    int
	width  int
	signed bool

	// parts is non-nil for composite fields, most significant first.
	parts []*Field
}

// Range creates a field covering bits [start, end).
func Range(start, end int, signed bool) (*Field, error) {
	if end-start < 1 {
		return nil, fmt.Errorf("%w: field [%d:%d) has less than 1 bit", ErrDefinition, start, end)
	}
	if start < 0 || end > WordBits {
		return nil, fmt.Errorf("%w: field [%d:%d) outside %d-bit word", ErrDefinition, start, end, WordBits)
	}
	return &Field{start: start, end: end, width: end - start, signed: signed}, nil
}

// Bit creates an unsigned single-bit field.
func Bit(i int) (*Field, error) {
	return Range(i, i+1, false)
}

// Concat combines fields into one composite field. The first field holds the
// most significant bits and decides the signedness of the result.
func Concat(fields ...*Field) (*Field, error) {
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: concat of no fields", ErrDefinition)
	}

	width := 0
	parts := make([]*Field, 0, len(fields))
	for i, f := range fields {
		if f == nil {
			return nil, fmt.Errorf("%w: concat part %d is nil", ErrDefinition, i)
		}
		if f.width < 1 {
			return nil, fmt.Errorf("%w: concat part %d has less than 1 bit", ErrDefinition, i)
		}
		width += f.width
		parts = append(parts, f)
	}
	if width > WordBits {
		return nil, fmt.Errorf("%w: concat width %d exceeds %d bits", ErrDefinition, width, WordBits)
	}

	return &Field{
		start:  -1,
		end:    -1,
		width:  width,
		signed: fields[0].signed,
		parts:  parts,
	}, nil
}

// MustRange is like Range but panics on error. Intended for static layouts.
func MustRange(start, end int, signed bool) *Field {
	f, err := Range(start, end, signed)
	if err != nil {
		panic(err)
	}
	return f
}

// MustBit is like Bit but panics on error.
func MustBit(i int) *Field {
	f, err := Bit(i)
	if err != nil {
		panic(err)
	}
	return f
}

// MustConcat is like Concat but panics on error.
func MustConcat(fields ...*Field) *Field {
	f, err := Concat(fields...)
	if err != nil {
		panic(err)
	}
	return f
}

// Width returns the number of bits in the field.
func (f *Field) Width() int {
	return f.width
}

// Signed reports whether values read through GetInt are sign-extended.
func (f *Field) Signed() bool {
	return f.signed
}

// Mask returns a mask of Width() low bits.
func (f *Field) Mask() uint64 {
	return lowMask(f.width)
}

// IsComposite reports whether the field was built with Concat.
func (f *Field) IsComposite() bool {
	return f.parts != nil
}

// Bounds returns the [start, end) bit interval of a range field.
// Composite fields return (-1, -1).
func (f *Field) Bounds() (start, end int) {
	return f.start, f.end
}

// Parts returns the underlying range fields, most significant first.
// A range field returns itself.
func (f *Field) Parts() []*Field {
	if f.parts == nil {
		return []*Field{f}
	}
	var out []*Field
	for _, p := range f.parts {
		out = append(out, p.Parts()...)
	}
	return out
}

// HighestBit returns the highest bit index touched by the field.
func (f *Field) HighestBit() int {
	if f.parts == nil {
		return f.end - 1
	}
	high := 0
	for _, p := range f.parts {
		high = max(high, p.HighestBit())
	}
	return high
}

// Get extracts the field value from word.
func (f *Field) Get(word uint64) uint64 {
	if f.parts == nil {
		return (word >> f.start) & lowMask(f.width)
	}

	var v uint64
	for _, p := range f.parts {
		v = v<<p.width | p.Get(word)
	}
	return v
}

// GetInt extracts the field value, sign-extending it when the field is signed.
func (f *Field) GetInt(word uint64) int64 {
	return SignExtend(f.Get(word), f.width, f.signed)
}

// Set returns word with the field replaced by value. The word is not
// modified when value does not fit the field width.
func (f *Field) Set(word, value uint64) (uint64, error) {
	if value > lowMask(f.width) {
		return word, fmt.Errorf("%w: value %d cannot be fit into %d bits", ErrValueOverflow, value, f.width)
	}
	return f.put(word, value), nil
}

// SetInt is like Set but accepts negative values, storing them as two's
// complement within the field width. Values below -2^(width-1) are rejected.
func (f *Field) SetInt(word uint64, value int64) (uint64, error) {
	u, err := FoldInt(value, f.width)
	if err != nil {
		return word, err
	}
	return f.Set(word, u)
}

// put writes a value already known to fit.
func (f *Field) put(word, value uint64) uint64 {
	if f.parts == nil {
		mask := lowMask(f.width) << f.start
		return word&^mask | (value<<f.start)&mask
	}

	for i := len(f.parts) - 1; i >= 0; i-- {
		p := f.parts[i]
		word = p.put(word, value&lowMask(p.width))
		value >>= p.width
	}
	return word
}

// String returns a compact description such as "[0:6)" or "s[4:8)+[0:2)".
func (f *Field) String() string {
	if f.parts == nil {
		sign := ""
		if f.signed {
			sign = "s"
		}
		return fmt.Sprintf("%s[%d:%d)", sign, f.start, f.end)
	}
	s := make([]string, len(f.parts))
	for i, p := range f.parts {
		s[i] = p.String()
	}
	return strings.Join(s, "+")
}

// FoldInt converts value into its unsigned representation within width bits.
// Non-negative values pass through unchanged (and may still overflow in Set).
func FoldInt(value int64, width int) (uint64, error) {
	if value >= 0 {
		return uint64(value), nil
	}
	if width < WordBits && value < -(int64(1)<<(width-1)) {
		return 0, fmt.Errorf("%w: value %d cannot be fit into %d signed bits", ErrValueOverflow, value, width)
	}
	return uint64(value) & lowMask(width), nil
}

// SignExtend interprets the low width bits of v as a two's-complement number
// when signed is set.
func SignExtend(v uint64, width int, signed bool) int64 {
	if !signed || width >= WordBits {
		return int64(v)
	}
	if v&(1<<(width-1)) != 0 {
		return int64(v | ^lowMask(width))
	}
	return int64(v)
}

// lowMask returns a mask with the n low bits set.
func lowMask(n int) uint64 {
	if n >= WordBits {
		return ^uint64(0)
	}
	return 1<<n - 1
}

// WithSigned returns a copy of f with the given signedness. The bit layout
// is shared.
func (f *Field) WithSigned(signed bool) *Field {
	c := *f
	c.signed = signed
	return &c
}
