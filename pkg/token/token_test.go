package token_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitword/bitword-go/pkg/bitfield"
	"github.com/bitword/bitword-go/pkg/token"
)

func opcodeType(t *testing.T) *token.Type {
	t.Helper()
	typ, err := token.Define(token.Definition{
		Name:       "op16",
		Size:       16,
		Endianness: token.LittleEndian,
		Fields: []token.NamedField{
			{Name: "opcode", Field: bitfield.MustRange(0, 6, false)},
			{Name: "reg", Field: bitfield.MustRange(6, 10, false)},
			{Name: "imm", Field: bitfield.MustRange(10, 16, true)},
		},
	})
	require.NoError(t, err)
	return typ
}

func TestEndToEndOpcodeReg(t *testing.T) {
	typ := opcodeType(t)

	tok := typ.New()
	require.NoError(t, tok.SetField("opcode", 5))
	require.NoError(t, tok.SetField("reg", 9))

	assert.Equal(t, uint64(581), tok.Value())
	assert.Equal(t, []byte{0x45, 0x02}, tok.Encode())

	decoded, err := typ.FromData([]byte{0x45, 0x02})
	require.NoError(t, err)

	opcode, err := decoded.Field("opcode")
	require.NoError(t, err)
	reg, err := decoded.Field("reg")
	require.NoError(t, err)
	assert.Equal(t, uint64(5), opcode)
	assert.Equal(t, uint64(9), reg)
}

func TestEndianness(t *testing.T) {
	little := token.MustDefine(token.Definition{Name: "le32", Size: 32, Endianness: token.LittleEndian})
	big := token.MustDefine(token.Definition{Name: "be32", Size: 32, Endianness: token.BigEndian})

	le, err := little.NewValue(0x01020304)
	require.NoError(t, err)
	be, err := big.NewValue(0x01020304)
	require.NoError(t, err)

	assert.Equal(t, []byte{0x04, 0x03, 0x02, 0x01}, le.Encode())
	assert.Equal(t, []byte{0x01, 0x02, 0x03, 0x04}, be.Encode())
}

func TestDefaultEndiannessIsLittle(t *testing.T) {
	typ := token.MustDefine(token.Definition{Name: "w", Size: 16})
	assert.Equal(t, token.LittleEndian, typ.Endianness())
}

func TestRoundTrip(t *testing.T) {
	values := []uint64{0, 1, 0x7F, 0x80, 0xFF, 0x1234, 0xDEADBEEF, 0x0123456789ABCDEF, ^uint64(0)}

	for _, size := range []int{8, 16, 24, 32, 48, 64} {
		for _, endian := range []token.Endianness{token.LittleEndian, token.BigEndian} {
			typ := token.MustDefine(token.Definition{Name: "rt", Size: size, Endianness: endian})
			for _, v := range values {
				v &= typ.Mask()
				tok, err := typ.NewValue(v)
				require.NoError(t, err)

				data := tok.Encode()
				require.Len(t, data, size/8)

				back, err := typ.FromData(data)
				require.NoError(t, err)
				assert.Equal(t, v, back.Value(), "size=%d endian=%s", size, endian)
			}
		}
	}
}

func TestDefinitionErrors(t *testing.T) {
	base := token.MustDefine(token.Definition{Name: "base", Size: 16})

	tests := []struct {
		name string
		def  token.Definition
	}{
		{"missing size", token.Definition{Name: "a"}},
		{"not multiple of 8", token.Definition{Name: "b", Size: 12}},
		{"negative size", token.Definition{Name: "c", Size: -8}},
		{"too wide", token.Definition{Name: "d", Size: 72}},
		{"field past size", token.Definition{Name: "e", Size: 8, Fields: []token.NamedField{
			{Name: "x", Field: bitfield.MustRange(4, 12, false)},
		}}},
		{"duplicate field", token.Definition{Name: "f", Size: 8, Fields: []token.NamedField{
			{Name: "x", Field: bitfield.MustBit(0)},
			{Name: "x", Field: bitfield.MustBit(1)},
		}}},
		{"nil descriptor", token.Definition{Name: "g", Size: 8, Fields: []token.NamedField{{Name: "x"}}}},
		{"bad endianness", token.Definition{Name: "h", Size: 8, Endianness: 7}},
		{"inherited field past shrunk size", token.Definition{Name: "i", Size: 8, Parent: token.MustDefine(token.Definition{
			Name: "wide", Size: 16, Parent: base,
			Fields: []token.NamedField{{Name: "hi", Field: bitfield.MustRange(8, 16, false)}},
		})}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := token.Define(tt.def)
			assert.ErrorIs(t, err, token.ErrDefinition)
		})
	}
}

func TestBitAccess(t *testing.T) {
	typ := opcodeType(t)
	tok := typ.New()

	require.NoError(t, tok.SetBit(0, true))
	require.NoError(t, tok.SetBit(15, true))
	assert.Equal(t, uint64(0x8001), tok.Value())

	on, err := tok.Bit(15)
	require.NoError(t, err)
	assert.True(t, on)

	require.NoError(t, tok.SetBit(15, false))
	assert.Equal(t, uint64(0x0001), tok.Value())

	assert.ErrorIs(t, tok.SetBit(16, true), token.ErrRange)
	assert.ErrorIs(t, tok.SetBit(-1, true), token.ErrRange)
	_, err = tok.Bit(16)
	assert.ErrorIs(t, err, token.ErrRange)
}

func TestRangeAccess(t *testing.T) {
	typ := opcodeType(t)
	tok, err := typ.NewValue(0xFFFF)
	require.NoError(t, err)

	require.NoError(t, tok.SetRange(4, 8, 0x5))
	assert.Equal(t, uint64(0xFF5F), tok.Value())

	v, err := tok.Range(4, 8)
	require.NoError(t, err)
	assert.Equal(t, uint64(5), v)

	require.NoError(t, tok.SetRangeInt(0, 4, -2))
	assert.Equal(t, uint64(0xFF5E), tok.Value())

	assert.ErrorIs(t, tok.SetRange(8, 8, 0), token.ErrRange)
	assert.ErrorIs(t, tok.SetRange(8, 4, 0), token.ErrRange)
	assert.ErrorIs(t, tok.SetRange(12, 20, 0), token.ErrRange)
	_, err = tok.Range(-1, 3)
	assert.ErrorIs(t, err, token.ErrRange)
}

func TestOverflowLeavesValueUnchanged(t *testing.T) {
	typ := opcodeType(t)
	tok, err := typ.NewValue(581)
	require.NoError(t, err)

	assert.ErrorIs(t, tok.SetField("reg", 16), token.ErrValueOverflow)
	assert.ErrorIs(t, tok.SetFieldInt("imm", -33), token.ErrValueOverflow)
	assert.ErrorIs(t, tok.SetRange(0, 6, 64), token.ErrValueOverflow)
	assert.Equal(t, uint64(581), tok.Value())

	_, err = typ.NewValue(0x10000)
	assert.ErrorIs(t, err, token.ErrValueOverflow)
}

func TestFieldRoundTripEveryValue(t *testing.T) {
	typ := opcodeType(t)
	for _, name := range typ.FieldNames() {
		f, err := typ.Field(name)
		require.NoError(t, err)

		tok, err := typ.NewValue(0xA5A5)
		require.NoError(t, err)
		for x := uint64(0); x <= f.Mask(); x++ {
			require.NoError(t, tok.SetField(name, x))
			got, err := tok.Field(name)
			require.NoError(t, err)
			require.Equal(t, x, got, "field %s", name)
		}
	}
}

func TestSignedField(t *testing.T) {
	typ := opcodeType(t)
	tok := typ.New()

	require.NoError(t, tok.SetFieldInt("imm", -1))
	raw, err := tok.Field("imm")
	require.NoError(t, err)
	assert.Equal(t, uint64(0x3F), raw)

	v, err := tok.FieldInt("imm")
	require.NoError(t, err)
	assert.Equal(t, int64(-1), v)

	require.NoError(t, tok.SetFieldInt("imm", -32))
	v, err = tok.FieldInt("imm")
	require.NoError(t, err)
	assert.Equal(t, int64(-32), v)
}

func TestFieldNotFound(t *testing.T) {
	typ := opcodeType(t)
	tok := typ.New()

	_, err := tok.Field("nope")
	assert.ErrorIs(t, err, token.ErrFieldNotFound)
	assert.ErrorIs(t, tok.SetField("nope", 1), token.ErrFieldNotFound)
	_, err = typ.Field("nope")
	assert.ErrorIs(t, err, token.ErrFieldNotFound)
}

func TestFillSizeMismatch(t *testing.T) {
	typ := opcodeType(t)
	tok, err := typ.NewValue(0x1234)
	require.NoError(t, err)

	err = tok.Fill([]byte{0x01})
	require.ErrorIs(t, err, token.ErrSizeMismatch)

	var sizeErr *token.SizeMismatchError
	require.True(t, errors.As(err, &sizeErr))
	assert.Equal(t, 2, sizeErr.Expected)
	assert.Equal(t, 1, sizeErr.Actual)
	assert.Equal(t, uint64(0x1234), tok.Value())

	_, err = typ.FromData([]byte{1, 2, 3})
	assert.ErrorIs(t, err, token.ErrSizeMismatch)
}

func TestInheritance(t *testing.T) {
	xField := bitfield.MustRange(0, 4, false)
	a := token.MustDefine(token.Definition{
		Name:       "A",
		Size:       16,
		Endianness: token.BigEndian,
		Fields:     []token.NamedField{{Name: "x", Field: xField}},
	})
	b := token.MustDefine(token.Definition{Name: "B", Parent: a})

	assert.Equal(t, 16, b.Size())
	assert.Equal(t, token.BigEndian, b.Endianness())
	assert.True(t, b.DerivesFrom(a))
	assert.False(t, a.DerivesFrom(b))

	f, err := b.Field("x")
	require.NoError(t, err)
	assert.Same(t, xField, f)

	ta, tb := a.New(), b.New()
	require.NoError(t, ta.SetField("x", 0xA))
	require.NoError(t, tb.SetField("x", 0xA))
	assert.Equal(t, ta.Value(), tb.Value())
	assert.Equal(t, ta.Encode(), tb.Encode())
	assert.ErrorIs(t, tb.SetField("x", 0x10), token.ErrValueOverflow)
}

func TestInheritanceOverride(t *testing.T) {
	a := token.MustDefine(token.Definition{
		Name: "A",
		Size: 16,
		Fields: []token.NamedField{
			{Name: "op", Field: bitfield.MustRange(0, 4, false)},
			{Name: "x", Field: bitfield.MustRange(4, 8, false)},
		},
	})
	own := bitfield.MustRange(8, 16, false)
	b := token.MustDefine(token.Definition{
		Name:   "B",
		Parent: a,
		Fields: []token.NamedField{{Name: "x", Field: own}},
	})
	c := token.MustDefine(token.Definition{
		Name:   "C",
		Size:   32,
		Parent: b,
		Fields: []token.NamedField{{Name: "y", Field: bitfield.MustRange(16, 32, false)}},
	})

	f, err := b.Field("x")
	require.NoError(t, err)
	assert.Same(t, own, f)
	assert.Equal(t, []string{"x", "op"}, b.FieldNames())

	f, err = c.Field("x")
	require.NoError(t, err)
	assert.Same(t, own, f)
	assert.True(t, c.HasField("op"))
	assert.Equal(t, 32, c.Size())

	// The parent's table is not affected by the child.
	assert.False(t, a.HasField("y"))
	f, err = a.Field("x")
	require.NoError(t, err)
	assert.NotSame(t, own, f)
}

func TestCompositeFieldOnToken(t *testing.T) {
	hi := bitfield.MustRange(12, 16, true)
	lo := bitfield.MustRange(0, 4, false)
	typ := token.MustDefine(token.Definition{
		Name: "split",
		Size: 16,
		Fields: []token.NamedField{
			{Name: "imm", Field: bitfield.MustConcat(hi, lo)},
		},
	})

	tok := typ.New()
	require.NoError(t, tok.SetFieldInt("imm", -3))
	assert.Equal(t, uint64(0xF00D), tok.Value())

	v, err := tok.FieldInt("imm")
	require.NoError(t, err)
	assert.Equal(t, int64(-3), v)
}

func TestClone(t *testing.T) {
	typ := opcodeType(t)
	tok, err := typ.NewValue(0x00FF)
	require.NoError(t, err)

	c := tok.Clone()
	require.NoError(t, c.SetField("opcode", 0))
	assert.Equal(t, uint64(0x00FF), tok.Value())
	assert.Equal(t, "op16:0x00FF", tok.String())
}

func TestParseEndianness(t *testing.T) {
	tests := []struct {
		in      string
		want    token.Endianness
		wantErr bool
	}{
		{"little", token.LittleEndian, false},
		{"LE", token.LittleEndian, false},
		{"big", token.BigEndian, false},
		{"be", token.BigEndian, false},
		{"", token.EndianUnset, false},
		{"middle", token.EndianUnset, true},
	}
	for _, tt := range tests {
		got, err := token.ParseEndianness(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}
