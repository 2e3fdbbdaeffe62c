package token

import (
	"fmt"

	"github.com/bitword/bitword-go/pkg/bitfield"
)

// Token is a value of a token Type. The zero Token is not usable; create
// tokens with Type.New, Type.NewValue or Type.FromData.
//
// A Token is not safe for concurrent mutation.
type Token struct {
	typ   *Type
	value uint64
}

// Type returns the token's type.
func (t *Token) Type() *Type {
	return t.typ
}

// Value returns the raw word.
func (t *Token) Value() uint64 {
	return t.value
}

// SetValue replaces the raw word.
func (t *Token) SetValue(value uint64) error {
	if value&^t.typ.Mask() != 0 {
		return fmt.Errorf("%w: value 0x%X cannot be fit into %d-bit token %s", ErrValueOverflow, value, t.typ.size, t.typ.name)
	}
	t.value = value
	return nil
}

// Bit returns bit i.
func (t *Token) Bit(i int) (bool, error) {
	if err := t.checkBit(i); err != nil {
		return false, err
	}
	return t.value&(1<<i) != 0, nil
}

// SetBit sets or clears bit i.
func (t *Token) SetBit(i int, on bool) error {
	if err := t.checkBit(i); err != nil {
		return err
	}
	if on {
		t.value |= 1 << i
	} else {
		t.value &^= 1 << i
	}
	return nil
}

// Range returns bits [start, end) as an unsigned value.
func (t *Token) Range(start, end int) (uint64, error) {
	f, err := t.rangeField(start, end)
	if err != nil {
		return 0, err
	}
	return f.Get(t.value), nil
}

// SetRange replaces bits [start, end) with value.
func (t *Token) SetRange(start, end int, value uint64) error {
	f, err := t.rangeField(start, end)
	if err != nil {
		return err
	}
	return t.apply(f.Set(t.value, value))
}

// SetRangeInt is like SetRange but stores negative values as two's complement.
func (t *Token) SetRangeInt(start, end int, value int64) error {
	f, err := t.rangeField(start, end)
	if err != nil {
		return err
	}
	return t.apply(f.SetInt(t.value, value))
}

// HasField reports whether the token's type has the named field.
func (t *Token) HasField(name string) bool {
	return t.typ.HasField(name)
}

// Field reads the named field as an unsigned value.
func (t *Token) Field(name string) (uint64, error) {
	f, err := t.typ.Field(name)
	if err != nil {
		return 0, err
	}
	return f.Get(t.value), nil
}

// FieldInt reads the named field, sign-extended if the field is signed.
func (t *Token) FieldInt(name string) (int64, error) {
	f, err := t.typ.Field(name)
	if err != nil {
		return 0, err
	}
	return f.GetInt(t.value), nil
}

// SetField writes the named field.
func (t *Token) SetField(name string, value uint64) error {
	f, err := t.typ.Field(name)
	if err != nil {
		return err
	}
	if err := t.apply(f.Set(t.value, value)); err != nil {
		return fmt.Errorf("%s.%s: %w", t.typ.name, name, err)
	}
	return nil
}

// SetFieldInt writes the named field, folding negative values.
func (t *Token) SetFieldInt(name string, value int64) error {
	f, err := t.typ.Field(name)
	if err != nil {
		return err
	}
	if err := t.apply(f.SetInt(t.value, value)); err != nil {
		return fmt.Errorf("%s.%s: %w", t.typ.name, name, err)
	}
	return nil
}

// Encode returns the token's byte encoding.
func (t *Token) Encode() []byte {
	return t.typ.Pack(t.value)
}

// Fill replaces the value with the decoding of data.
func (t *Token) Fill(data []byte) error {
	v, err := t.typ.Unpack(data)
	if err != nil {
		return err
	}
	t.value = v
	return nil
}

// Clone returns an independent copy.
func (t *Token) Clone() *Token {
	c := *t
	return &c
}

// String returns e.g. "base:0x0245".
func (t *Token) String() string {
	return fmt.Sprintf("%s:0x%0*X", t.typ.name, t.typ.size/4, t.value)
}

func (t *Token) checkBit(i int) error {
	if i < 0 || i >= t.typ.size {
		return fmt.Errorf("%w: bit %d not in [0, %d)", ErrRange, i, t.typ.size)
	}
	return nil
}

func (t *Token) rangeField(start, end int) (*bitfield.Field, error) {
	if end <= start {
		return nil, fmt.Errorf("%w: empty range [%d:%d)", ErrRange, start, end)
	}
	if start < 0 || end > t.typ.size {
		return nil, fmt.Errorf("%w: range [%d:%d) not within %d-bit token", ErrRange, start, end, t.typ.size)
	}
	return bitfield.Range(start, end, false)
}

// apply stores the result of a field write, keeping the old value on error.
func (t *Token) apply(word uint64, err error) error {
	if err != nil {
		return err
	}
	t.value = word & t.typ.Mask()
	return nil
}
