package wire

import (
	"errors"
	"fmt"

	"github.com/bitword/bitword-go/pkg/token"
)

// Snapshot errors.
var (
	ErrInvalidRecord = errors.New("invalid snapshot record")
)

// TokenRecord is the wire form of one token.
type TokenRecord struct {
	Type  string `cbor:"1,keyasint"`
	Value uint64 `cbor:"2,keyasint"`
}

// SequenceRecord is the wire form of a token sequence.
type SequenceRecord struct {
	Format string        `cbor:"1,keyasint,omitempty"`
	Tokens []TokenRecord `cbor:"2,keyasint"`
}

// Validate checks that the record has a type name.
func (r *TokenRecord) Validate() error {
	if r.Type == "" {
		return fmt.Errorf("%w: missing token type", ErrInvalidRecord)
	}
	return nil
}

// Validate checks every member record.
func (r *SequenceRecord) Validate() error {
	if len(r.Tokens) == 0 {
		return fmt.Errorf("%w: empty sequence", ErrInvalidRecord)
	}
	for i := range r.Tokens {
		if err := r.Tokens[i].Validate(); err != nil {
			return fmt.Errorf("token %d: %w", i, err)
		}
	}
	return nil
}

// RecordOf captures a token.
func RecordOf(t *token.Token) TokenRecord {
	return TokenRecord{Type: t.Type().Name(), Value: t.Value()}
}

// Rebuild resolves the record against reg.
func (r *TokenRecord) Rebuild(reg *token.Registry) (*token.Token, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	typ, err := reg.Lookup(r.Type)
	if err != nil {
		return nil, err
	}
	return typ.NewValue(r.Value)
}

// EncodeToken encodes a token snapshot.
func EncodeToken(t *token.Token) ([]byte, error) {
	return Marshal(RecordOf(t))
}

// DecodeToken decodes a token snapshot and rebuilds it against reg.
func DecodeToken(data []byte, reg *token.Registry) (*token.Token, error) {
	var rec TokenRecord
	if err := Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to decode token: %w", err)
	}
	t, err := rec.Rebuild(reg)
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	return t, nil
}

// EncodeSequence encodes a sequence snapshot. format may be empty.
func EncodeSequence(format string, seq *token.Sequence) ([]byte, error) {
	rec := SequenceRecord{Format: format}
	for _, t := range seq.Tokens() {
		rec.Tokens = append(rec.Tokens, RecordOf(t))
	}
	if err := rec.Validate(); err != nil {
		return nil, fmt.Errorf("invalid sequence: %w", err)
	}
	return Marshal(rec)
}

// DecodeSequence decodes a sequence snapshot, returning the format name
// and the rebuilt sequence.
func DecodeSequence(data []byte, reg *token.Registry) (string, *token.Sequence, error) {
	var rec SequenceRecord
	if err := Unmarshal(data, &rec); err != nil {
		return "", nil, fmt.Errorf("failed to decode sequence: %w", err)
	}
	if err := rec.Validate(); err != nil {
		return "", nil, fmt.Errorf("invalid sequence: %w", err)
	}

	tokens := make([]*token.Token, len(rec.Tokens))
	for i := range rec.Tokens {
		t, err := rec.Tokens[i].Rebuild(reg)
		if err != nil {
			return "", nil, fmt.Errorf("invalid sequence: token %d: %w", i, err)
		}
		tokens[i] = t
	}
	return rec.Format, token.NewSequence(tokens...), nil
}
