// Package token implements fixed-width binary words with named bit fields.
//
// A token Type is defined once with a size in bits (a multiple of 8, at most
// 64), an endianness, and a table of named bitfield.Field descriptors. A
// Token is a value of that type: a single unsigned integer plus a pointer to
// its Type.
//
// # Field Inheritance
//
// A Definition may name a Parent type. Size and endianness left unset are
// taken from the parent, and every parent field the definition does not
// declare itself is copied into the new type's table. This happens once, in
// Define; field lookups never walk the parent chain.
//
//	base, _ := token.Define(token.Definition{
//	    Name: "base",
//	    Size: 16,
//	    Fields: []token.NamedField{
//	        {Name: "opcode", Field: bitfield.MustRange(0, 6, false)},
//	    },
//	})
//	load, _ := token.Define(token.Definition{
//	    Name:   "load",
//	    Parent: base,
//	    Fields: []token.NamedField{
//	        {Name: "reg", Field: bitfield.MustRange(6, 10, false)},
//	    },
//	})
//
// # Byte Layout
//
// Encode emits exactly ByteSize() bytes. Little endian emits the least
// significant byte first, big endian the most significant byte first.
// Fill and FromData are the inverse and reject buffers of any other length.
//
// # Sequences
//
// A Sequence strings several tokens together into one instruction. Field
// access goes to the first member whose type declares the field, and Encode
// and Fill walk the members in order.
package token
