package commands

import (
	"encoding/hex"
	"fmt"
	"io"

	"github.com/bitword/bitword-go/pkg/wire"
)

// Output encodings for encode and decode.
const (
	OutputHex  = "hex"
	OutputCBOR = "cbor"
)

// EncodeConfig holds encode parameters.
type EncodeConfig struct {
	Format string
	Values []string // name=value
	Output string   // hex (default) or cbor
}

// RunEncode encodes an instruction and writes it to w as hex.
// With Output "cbor" the hex is of a wire sequence snapshot instead.
func RunEncode(s *Session, cfg EncodeConfig, w io.Writer) error {
	if cfg.Format == "" {
		return fmt.Errorf("format required")
	}
	values, err := ParseAssignments(cfg.Values)
	if err != nil {
		return err
	}
	data, err := s.Codec.Encode(cfg.Format, values)
	if err != nil {
		return err
	}

	switch cfg.Output {
	case "", OutputHex:
		fmt.Fprintln(w, hex.EncodeToString(data))
	case OutputCBOR:
		f, err := s.Codec.Format(cfg.Format)
		if err != nil {
			return err
		}
		seq := f.NewSequence()
		if err := seq.Fill(data); err != nil {
			return err
		}
		snap, err := wire.EncodeSequence(f.Name(), seq)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, hex.EncodeToString(snap))
	default:
		return fmt.Errorf("unknown output %q (want %s or %s)", cfg.Output, OutputHex, OutputCBOR)
	}
	return nil
}
