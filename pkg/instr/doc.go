// Package instr encodes and decodes whole instructions.
//
// A Format lists the token types an instruction is made of, in order. A
// Codec holds a set of formats and converts between named field values and
// instruction bytes, reporting every operation to a log.Logger.
//
//	codec, _ := instr.NewCodec(formats, instr.WithLogger(logger))
//	data, err := codec.Encode("i_type", instr.Values{"opcode": 0x13, "rd": 1, "imm": -5})
//	values, err := codec.Decode("i_type", data)
//
// Field values are int64. Signed fields accept negative values and decode
// sign-extended; unsigned fields decode as their raw value.
package instr
