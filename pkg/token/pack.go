package token

import (
	"encoding/binary"
	"fmt"
)

// Little-endian scalar packers for data emitted alongside instructions.
// U16, U32 and U64 accept both signed and unsigned ranges; negative values
// are written as two's complement. U8 is unsigned only.

// U8 packs v as a single byte.
func U8(v int64) ([]byte, error) {
	if v < 0 || v > 0xFF {
		return nil, fmt.Errorf("%w: %d is not an unsigned byte", ErrValueOverflow, v)
	}
	return []byte{byte(v)}, nil
}

// U16 packs v as a 16-bit little-endian value.
func U16(v int64) ([]byte, error) {
	if err := checkScalar(v, 16); err != nil {
		return nil, err
	}
	return binary.LittleEndian.AppendUint16(nil, uint16(v)), nil
}

// U32 packs v as a 32-bit little-endian value.
func U32(v int64) ([]byte, error) {
	if err := checkScalar(v, 32); err != nil {
		return nil, err
	}
	return binary.LittleEndian.AppendUint32(nil, uint32(v)), nil
}

// U64 packs v as a 64-bit little-endian value.
func U64(v int64) []byte {
	return binary.LittleEndian.AppendUint64(nil, uint64(v))
}

func checkScalar(v int64, bits int) error {
	if v < -(int64(1)<<(bits-1)) || v >= int64(1)<<bits {
		return fmt.Errorf("%w: %d cannot be packed into %d bits", ErrValueOverflow, v, bits)
	}
	return nil
}
