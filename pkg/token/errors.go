package token

import (
	"errors"
	"fmt"

	"github.com/bitword/bitword-go/pkg/bitfield"
)

// Errors shared with package bitfield.
var (
	ErrDefinition    = bitfield.ErrDefinition
	ErrRange         = bitfield.ErrRange
	ErrValueOverflow = bitfield.ErrValueOverflow
)

// Token errors.
var (
	ErrSizeMismatch  = errors.New("size mismatch")
	ErrFieldNotFound = errors.New("field not found")
	ErrTypeNotFound  = errors.New("token type not found")
)

// SizeMismatchError reports a byte buffer of the wrong length.
type SizeMismatchError struct {
	// Context names what was being filled (a type name or "sequence").
	Context string

	// Expected is the byte count required.
	Expected int

	// Actual is the byte count provided.
	Actual int
}

// Error implements the error interface.
func (e *SizeMismatchError) Error() string {
	detail := "incorrect amount of data"
	switch {
	case e.Actual < e.Expected:
		detail = "not enough data"
	case e.Actual > e.Expected:
		detail = "too much data"
	}
	return fmt.Sprintf("%s: %s: expected %d bytes, got %d", e.Context, detail, e.Expected, e.Actual)
}

// Is reports whether target is ErrSizeMismatch.
func (e *SizeMismatchError) Is(target error) bool {
	return target == ErrSizeMismatch
}
