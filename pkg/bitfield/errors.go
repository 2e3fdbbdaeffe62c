package bitfield

import "errors"

// Field errors.
var (
	// ErrDefinition indicates an invalid field or word layout.
	ErrDefinition = errors.New("invalid definition")

	// ErrRange indicates a bit index or bit range outside the word.
	ErrRange = errors.New("bit index out of range")

	// ErrValueOverflow indicates a value that does not fit the target width.
	ErrValueOverflow = errors.New("value does not fit")
)
