// Package bitfield describes named bit ranges inside a fixed-width word.
//
// A Field is a read-only descriptor: it knows where its bits live and how
// wide it is, but holds no value. Values live in the word the field is
// applied to (see package token). Descriptors are immutable once built and
// may be shared freely between goroutines.
//
// # Range Fields
//
// The basic field covers the half-open bit interval [start, end) of a
// 64-bit word, bit 0 being the least significant:
//
//	opcode := bitfield.MustRange(0, 6, false)
//	word, err := opcode.Set(0, 5)
//
// # Composite Fields
//
// Concat glues several fields into one virtual field. The first part is the
// most significant chunk. This is how split immediates are expressed:
//
//	imm := bitfield.MustConcat(immHi, immLo)
//
// # Signed Values
//
// Storage is always unsigned. SetInt folds a negative value into its
// two's-complement form within the field width and GetInt sign-extends it
// back when the field is declared signed. Negative values that cannot be
// represented in the width are rejected rather than wrapped.
package bitfield
