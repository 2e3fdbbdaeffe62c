package instr_test

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitword/bitword-go/pkg/bitfield"
	"github.com/bitword/bitword-go/pkg/instr"
	"github.com/bitword/bitword-go/pkg/log"
	"github.com/bitword/bitword-go/pkg/token"
)

type captureLogger struct {
	mu     sync.Mutex
	events []log.Event
}

func (c *captureLogger) Log(e log.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, e)
}

// rv32Formats builds the RISC-V I and S formats by hand.
func rv32Formats(t *testing.T) []*instr.Format {
	t.Helper()
	base := token.MustDefine(token.Definition{
		Name: "rv32",
		Size: 32,
		Fields: []token.NamedField{
			{Name: "opcode", Field: bitfield.MustRange(0, 7, false)},
			{Name: "rd", Field: bitfield.MustRange(7, 12, false)},
			{Name: "funct3", Field: bitfield.MustRange(12, 15, false)},
			{Name: "rs1", Field: bitfield.MustRange(15, 20, false)},
			{Name: "rs2", Field: bitfield.MustRange(20, 25, false)},
		},
	})
	iType := token.MustDefine(token.Definition{
		Name:   "rv32_i",
		Parent: base,
		Fields: []token.NamedField{
			{Name: "imm", Field: bitfield.MustRange(20, 32, true)},
		},
	})
	sType := token.MustDefine(token.Definition{
		Name:   "rv32_s",
		Parent: base,
		Fields: []token.NamedField{
			{Name: "imm", Field: bitfield.MustConcat(bitfield.MustRange(25, 32, true), bitfield.MustRange(7, 12, false))},
		},
	})

	i, err := instr.NewFormat("i_type", iType)
	require.NoError(t, err)
	s, err := instr.NewFormat("s_type", sType)
	require.NoError(t, err)
	return []*instr.Format{i, s}
}

func TestCodecEncodeDecode(t *testing.T) {
	codec, err := instr.NewCodec(rv32Formats(t))
	require.NoError(t, err)

	// addi x1, x0, -5
	data, err := codec.Encode("i_type", instr.Values{"opcode": 0x13, "rd": 1, "imm": -5})
	require.NoError(t, err)
	assert.Equal(t, []byte{0x93, 0x00, 0xB0, 0xFF}, data)

	values, err := codec.Decode("i_type", data)
	require.NoError(t, err)
	assert.Equal(t, int64(0x13), values["opcode"])
	assert.Equal(t, int64(1), values["rd"])
	assert.Equal(t, int64(-5), values["imm"])

	// sw x5, 8(x2)
	data, err = codec.Encode("s_type", instr.Values{"opcode": 0x23, "funct3": 2, "rs1": 2, "rs2": 5, "imm": 8})
	require.NoError(t, err)
	assert.Equal(t, []byte{0x23, 0x24, 0x51, 0x00}, data)

	// sw x5, -4(x2)
	data, err = codec.Encode("s_type", instr.Values{"opcode": 0x23, "funct3": 2, "rs1": 2, "rs2": 5, "imm": -4})
	require.NoError(t, err)
	values, err = codec.Decode("s_type", data)
	require.NoError(t, err)
	assert.Equal(t, int64(-4), values["imm"])
	assert.Equal(t, int64(5), values["rs2"])
}

func TestCodecErrors(t *testing.T) {
	capture := &captureLogger{}
	codec, err := instr.NewCodec(rv32Formats(t), instr.WithLogger(capture))
	require.NoError(t, err)

	_, err = codec.Encode("nope", nil)
	assert.ErrorIs(t, err, instr.ErrFormatNotFound)

	_, err = codec.Encode("i_type", instr.Values{"rd": 32})
	assert.ErrorIs(t, err, token.ErrValueOverflow)

	_, err = codec.Encode("i_type", instr.Values{"bogus": 1})
	assert.ErrorIs(t, err, token.ErrFieldNotFound)

	_, err = codec.Decode("i_type", []byte{1, 2, 3})
	assert.ErrorIs(t, err, token.ErrSizeMismatch)

	_, err = codec.Decode("nope", nil)
	assert.ErrorIs(t, err, instr.ErrFormatNotFound)

	require.Len(t, capture.events, 5)
	for _, e := range capture.events {
		assert.Equal(t, log.CategoryError, e.Category)
		require.NotNil(t, e.Error)
		assert.NotEmpty(t, e.Error.Message)
	}
	assert.Equal(t, "3 bytes", capture.events[3].Error.Context)
	assert.Equal(t, log.OperationDecode, capture.events[3].Operation)
}

func TestCodecLogsInstructions(t *testing.T) {
	capture := &captureLogger{}
	fixed := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	codec, err := instr.NewCodec(rv32Formats(t),
		instr.WithLogger(capture),
		instr.WithSessionID("session-1"),
		instr.WithClock(func() time.Time { return fixed }),
	)
	require.NoError(t, err)

	data, err := codec.Encode("i_type", instr.Values{"opcode": 0x13, "imm": 1})
	require.NoError(t, err)
	_, err = codec.Decode("i_type", data)
	require.NoError(t, err)

	require.Len(t, capture.events, 2)
	enc, dec := capture.events[0], capture.events[1]

	assert.Equal(t, log.OperationEncode, enc.Operation)
	assert.Equal(t, log.OperationDecode, dec.Operation)
	assert.Equal(t, "session-1", enc.SessionID)
	assert.Equal(t, fixed, enc.Timestamp)
	assert.Equal(t, "i_type", dec.Format)
	require.NotNil(t, dec.Instruction)
	assert.Equal(t, data, dec.Instruction.Data)
	assert.Equal(t, int64(1), dec.Instruction.Fields["imm"])
	assert.Len(t, dec.Instruction.Fields, 6)
}

func TestCodecSessionIDIsUUID(t *testing.T) {
	a, err := instr.NewCodec(nil)
	require.NoError(t, err)
	b, err := instr.NewCodec(nil)
	require.NoError(t, err)

	_, err = uuid.Parse(a.SessionID())
	assert.NoError(t, err)
	assert.NotEqual(t, a.SessionID(), b.SessionID())
}

func TestCodecDuplicateFormat(t *testing.T) {
	formats := rv32Formats(t)
	_, err := instr.NewCodec(append(formats, formats[0]))
	assert.ErrorIs(t, err, token.ErrDefinition)
}

func TestFormatMultiToken(t *testing.T) {
	head := token.MustDefine(token.Definition{
		Name: "op16",
		Size: 16,
		Fields: []token.NamedField{
			{Name: "opcode", Field: bitfield.MustRange(0, 6, false)},
			{Name: "reg", Field: bitfield.MustRange(6, 10, false)},
		},
	})
	imm := token.MustDefine(token.Definition{
		Name:       "imm16",
		Size:       16,
		Endianness: token.BigEndian,
		Fields: []token.NamedField{
			{Name: "value", Field: bitfield.MustRange(0, 16, true)},
		},
	})

	f, err := instr.NewFormat("load_imm", head, imm)
	require.NoError(t, err)
	f.WithDescription("load a 16-bit immediate")

	assert.Equal(t, 4, f.ByteSize())
	assert.Equal(t, []string{"opcode", "reg", "value"}, f.FieldNames())
	assert.Equal(t, "load a 16-bit immediate", f.Description())

	data, err := f.Encode(instr.Values{"opcode": 5, "reg": 9, "value": -2})
	require.NoError(t, err)
	assert.Equal(t, []byte{0x45, 0x02, 0xFF, 0xFE}, data)

	values, err := f.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, instr.Values{"opcode": 5, "reg": 9, "value": -2}, values)

	_, err = f.Decode(append(data, 0))
	assert.ErrorIs(t, err, token.ErrSizeMismatch)
}

func TestNewFormatErrors(t *testing.T) {
	typ := token.MustDefine(token.Definition{Name: "w", Size: 8})

	_, err := instr.NewFormat("", typ)
	assert.ErrorIs(t, err, token.ErrDefinition)
	_, err = instr.NewFormat("empty")
	assert.ErrorIs(t, err, token.ErrDefinition)
	_, err = instr.NewFormat("nil", typ, nil)
	assert.ErrorIs(t, err, token.ErrDefinition)
}
