package log

import "time"

// Event is one codec event. CBOR encoding uses integer keys.
type Event struct {
	// Timestamp when the event occurred.
	Timestamp time.Time `cbor:"1,keyasint"`

	// SessionID identifies the codec instance that produced the event (UUID).
	SessionID string `cbor:"2,keyasint"`

	// Operation performed.
	Operation Operation `cbor:"3,keyasint"`

	// Category classifies the event.
	Category Category `cbor:"4,keyasint"`

	// Format is the instruction format name.
	Format string `cbor:"5,keyasint,omitempty"`

	// Exactly one payload is set.
	Instruction *InstructionEvent `cbor:"10,keyasint,omitempty"`
	Error       *ErrorEventData   `cbor:"11,keyasint,omitempty"`
}

// Operation is the codec operation an event belongs to.
type Operation uint8

const (
	// OperationEncode turns field values into bytes.
	OperationEncode Operation = 0
	// OperationDecode turns bytes into field values.
	OperationDecode Operation = 1
)

// String returns the operation name.
func (o Operation) String() string {
	switch o {
	case OperationEncode:
		return "ENCODE"
	case OperationDecode:
		return "DECODE"
	default:
		return "UNKNOWN"
	}
}

// Category classifies events.
type Category uint8

const (
	// CategoryInstruction is a successfully encoded or decoded instruction.
	CategoryInstruction Category = 0
	// CategoryError is a failed operation.
	CategoryError Category = 1
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryInstruction:
		return "INSTRUCTION"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// InstructionEvent holds both sides of a codec operation.
type InstructionEvent struct {
	// Data is the encoded instruction.
	Data []byte `cbor:"1,keyasint"`

	// Fields are the field values, sign-extended for signed fields.
	Fields map[string]int64 `cbor:"2,keyasint,omitempty"`
}

// ErrorEventData describes a failed operation.
type ErrorEventData struct {
	// Message is the error text.
	Message string `cbor:"1,keyasint"`

	// Context describes the input, e.g. the byte length or field name.
	Context string `cbor:"2,keyasint,omitempty"`
}
