// Package wire defines the CBOR snapshot format for tokens.
//
// A snapshot records a token by type name and raw value, so it can be
// stored or sent and later rebuilt against a token.Registry holding the
// same type definitions. Encoding is deterministic (canonical CBOR with
// integer keys).
//
// # Records
//
//   - TokenRecord: {1: type name, 2: value}
//   - SequenceRecord: {1: format name (optional), 2: [TokenRecord...]}
package wire
