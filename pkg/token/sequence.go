package token

import (
	"fmt"
)

// Sequence is an ordered group of tokens encoding one instruction.
type Sequence struct {
	tokens []*Token
}

// NewSequence creates a sequence over the given tokens. The tokens are
// shared, not copied.
func NewSequence(tokens ...*Token) *Sequence {
	return &Sequence{tokens: tokens}
}

// Tokens returns the member tokens in order.
func (s *Sequence) Tokens() []*Token {
	return s.tokens
}

// Len returns the number of tokens.
func (s *Sequence) Len() int {
	return len(s.tokens)
}

// At returns token i.
func (s *Sequence) At(i int) *Token {
	return s.tokens[i]
}

// ByteSize returns the total encoded length.
func (s *Sequence) ByteSize() int {
	n := 0
	for _, t := range s.tokens {
		n += t.typ.ByteSize()
	}
	return n
}

// lookup returns the first token declaring name.
func (s *Sequence) lookup(name string) (*Token, error) {
	for _, t := range s.tokens {
		if t.HasField(name) {
			return t, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrFieldNotFound, name)
}

// HasField reports whether any member declares name.
func (s *Sequence) HasField(name string) bool {
	_, err := s.lookup(name)
	return err == nil
}

// Field reads name from the first token that declares it.
func (s *Sequence) Field(name string) (uint64, error) {
	t, err := s.lookup(name)
	if err != nil {
		return 0, err
	}
	return t.Field(name)
}

// FieldInt is like Field but sign-extends signed fields.
func (s *Sequence) FieldInt(name string) (int64, error) {
	t, err := s.lookup(name)
	if err != nil {
		return 0, err
	}
	return t.FieldInt(name)
}

// SetField writes name in the first token that declares it.
func (s *Sequence) SetField(name string, value uint64) error {
	t, err := s.lookup(name)
	if err != nil {
		return err
	}
	return t.SetField(name, value)
}

// SetFieldInt is like SetField but folds negative values.
func (s *Sequence) SetFieldInt(name string, value int64) error {
	t, err := s.lookup(name)
	if err != nil {
		return err
	}
	return t.SetFieldInt(name, value)
}

// Encode concatenates the member encodings.
func (s *Sequence) Encode() []byte {
	out := make([]byte, 0, s.ByteSize())
	for _, t := range s.tokens {
		out = append(out, t.Encode()...)
	}
	return out
}

// Fill distributes data over the member tokens in order. The length is
// checked up front, so on error no token is modified.
func (s *Sequence) Fill(data []byte) error {
	if n := s.ByteSize(); len(data) != n {
		return &SizeMismatchError{Context: "sequence", Expected: n, Actual: len(data)}
	}

	offset := 0
	for _, t := range s.tokens {
		size := t.typ.ByteSize()
		if err := t.Fill(data[offset : offset+size]); err != nil {
			return err
		}
		offset += size
	}
	return nil
}
