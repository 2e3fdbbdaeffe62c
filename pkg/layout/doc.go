// Package layout loads token types and instruction formats from YAML.
//
// A layout file looks like this:
//
//	version: "1.0"
//	name: toy16
//	tokens:
//	  - name: op16
//	    size: 16
//	    endianness: little
//	    fields:
//	      - {name: opcode, start: 0, end: 6}
//	      - {name: reg, start: 6, end: 10}
//	  - name: op16_wide
//	    parent: op16
//	    fields:
//	      - {name: flag, bit: 15}
//	      - {name: imm, concat: [reg, opcode], signed: true}
//	formats:
//	  - name: short
//	    tokens: [op16]
//
// A field is given by start/end, by a single bit, or by concat, which
// names fields already visible in the token (declared earlier in the same
// token or inherited), most significant first. Parents may appear anywhere
// in the file.
//
// ParseLayout and LoadLayout return the raw YAML structure; Build turns it
// into a token.Registry and instr.Format values.
package layout
