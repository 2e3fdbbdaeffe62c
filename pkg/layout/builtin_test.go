package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitword/bitword-go/pkg/instr"
)

func TestBuiltinNames(t *testing.T) {
	assert.Equal(t, []string{"rv32", "toy16"}, BuiltinNames())
}

func TestBuiltinsBuild(t *testing.T) {
	for _, name := range BuiltinNames() {
		t.Run(name, func(t *testing.T) {
			l, err := Open("builtin:" + name)
			require.NoError(t, err)
			assert.NotEmpty(t, l.Formats())
		})
	}

	_, err := Builtin("nope")
	assert.Error(t, err)
}

func TestRV32Encodings(t *testing.T) {
	l, err := Builtin("rv32")
	require.NoError(t, err)
	codec, err := l.Codec()
	require.NoError(t, err)

	tests := []struct {
		name   string
		format string
		values instr.Values
		want   uint32
	}{
		{"add x3, x1, x2", "r_type", instr.Values{"opcode": 0x33, "rd": 3, "rs1": 1, "rs2": 2}, 0x002081B3},
		{"addi x1, x0, -5", "i_type", instr.Values{"opcode": 0x13, "rd": 1, "imm": -5}, 0xFFB00093},
		{"sw x5, 8(x2)", "s_type", instr.Values{"opcode": 0x23, "funct3": 2, "rs1": 2, "rs2": 5, "imm": 8}, 0x00512423},
		{"beq x1, x2, +8", "b_type", instr.Values{"opcode": 0x63, "rs1": 1, "rs2": 2, "offset": 4}, 0x00208463},
		{"beq x0, x0, -4", "b_type", instr.Values{"opcode": 0x63, "offset": -2}, 0xFE000EE3},
		{"lui x5, 0x12345", "u_type", instr.Values{"opcode": 0x37, "rd": 5, "imm": 0x12345}, 0x123452B7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := codec.Encode(tt.format, tt.values)
			require.NoError(t, err)
			want := []byte{byte(tt.want), byte(tt.want >> 8), byte(tt.want >> 16), byte(tt.want >> 24)}
			assert.Equal(t, want, data)

			back, err := codec.Decode(tt.format, data)
			require.NoError(t, err)
			for name, v := range tt.values {
				assert.Equal(t, v, back[name], name)
			}
		})
	}
}

func TestToy16LoadImmediate(t *testing.T) {
	l, err := Builtin("toy16")
	require.NoError(t, err)

	f, err := l.Format("load_imm")
	require.NoError(t, err)

	data, err := f.Encode(instr.Values{"opcode": 5, "reg": 9, "value": 0x0102})
	require.NoError(t, err)
	assert.Equal(t, []byte{0x45, 0x02, 0x01, 0x02}, data)

	wide, err := l.Format("load_wide")
	require.NoError(t, err)
	data, err = wide.Encode(instr.Values{"opcode": 1, "hi": 0xDEAD, "lo": 0xBEEF})
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x00, 0xDE, 0xAD, 0xBE, 0xEF}, data)
}
