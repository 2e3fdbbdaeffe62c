package commands

import (
	"fmt"
	"io"

	"github.com/bitword/bitword-go/pkg/wire"
)

// DecodeConfig holds decode parameters.
type DecodeConfig struct {
	Format string
	Input  string // hex-encoded bytes
	Mode   string // hex (default) or cbor
}

// RunDecode decodes an instruction and prints its field values.
//
// In cbor mode the input is a wire sequence snapshot; the format is taken
// from the snapshot when Format is empty.
func RunDecode(s *Session, cfg DecodeConfig, w io.Writer) error {
	raw, err := ParseHex(cfg.Input)
	if err != nil {
		return err
	}

	format := cfg.Format
	data := raw
	switch cfg.Mode {
	case "", OutputHex:
	case OutputCBOR:
		name, seq, err := wire.DecodeSequence(raw, s.Layout.Registry)
		if err != nil {
			return err
		}
		if format == "" {
			format = name
		}
		data = seq.Encode()
	default:
		return fmt.Errorf("unknown input mode %q (want %s or %s)", cfg.Mode, OutputHex, OutputCBOR)
	}
	if format == "" {
		return fmt.Errorf("format required")
	}

	values, err := s.Codec.Decode(format, data)
	if err != nil {
		return err
	}
	f, err := s.Codec.Format(format)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%s (%d bytes)\n", f.Name(), len(data))
	WriteValues(w, f.FieldNames(), values)
	return nil
}
