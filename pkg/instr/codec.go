package instr

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bitword/bitword-go/pkg/log"
	"github.com/bitword/bitword-go/pkg/token"
)

// Codec encodes and decodes instructions of a fixed set of formats.
// It is safe for concurrent use as long as the logger is.
type Codec struct {
	formats   map[string]*Format
	order     []string
	logger    log.Logger
	sessionID string
	now       func() time.Time
}

// Option configures a Codec.
type Option func(*Codec)

// WithLogger sets the event logger. The default discards events.
func WithLogger(l log.Logger) Option {
	return func(c *Codec) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithSessionID overrides the generated session ID.
func WithSessionID(id string) Option {
	return func(c *Codec) {
		c.sessionID = id
	}
}

// WithClock overrides the event timestamp source.
func WithClock(now func() time.Time) Option {
	return func(c *Codec) {
		c.now = now
	}
}

// NewCodec creates a codec for formats. Format names must be unique.
func NewCodec(formats []*Format, opts ...Option) (*Codec, error) {
	c := &Codec{
		formats:   make(map[string]*Format, len(formats)),
		logger:    log.NoopLogger{},
		sessionID: uuid.NewString(),
		now:       time.Now,
	}
	for _, o := range opts {
		o(c)
	}

	for _, f := range formats {
		if _, dup := c.formats[f.name]; dup {
			return nil, fmt.Errorf("%w: duplicate instruction format %q", token.ErrDefinition, f.name)
		}
		c.formats[f.name] = f
		c.order = append(c.order, f.name)
	}
	return c, nil
}

// SessionID returns the ID stamped on this codec's events.
func (c *Codec) SessionID() string {
	return c.sessionID
}

// Formats returns the format names in registration order.
func (c *Codec) Formats() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Format returns the named format.
func (c *Codec) Format(name string) (*Format, error) {
	f, ok := c.formats[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrFormatNotFound, name)
	}
	return f, nil
}

// Encode encodes values using the named format.
func (c *Codec) Encode(format string, values Values) ([]byte, error) {
	f, err := c.Format(format)
	if err != nil {
		c.logError(log.OperationEncode, format, err, "")
		return nil, err
	}

	data, err := f.Encode(values)
	if err != nil {
		c.logError(log.OperationEncode, format, err, fmt.Sprintf("%d fields", len(values)))
		return nil, err
	}

	c.logInstruction(log.OperationEncode, format, data, values)
	return data, nil
}

// Decode decodes data using the named format.
func (c *Codec) Decode(format string, data []byte) (Values, error) {
	f, err := c.Format(format)
	if err != nil {
		c.logError(log.OperationDecode, format, err, "")
		return nil, err
	}

	values, err := f.Decode(data)
	if err != nil {
		c.logError(log.OperationDecode, format, err, fmt.Sprintf("%d bytes", len(data)))
		return nil, err
	}

	c.logInstruction(log.OperationDecode, format, data, values)
	return values, nil
}

func (c *Codec) logInstruction(op log.Operation, format string, data []byte, values Values) {
	fields := make(map[string]int64, len(values))
	for k, v := range values {
		fields[k] = v
	}
	c.logger.Log(log.Event{
		Timestamp: c.now(),
		SessionID: c.sessionID,
		Operation: op,
		Category:  log.CategoryInstruction,
		Format:    format,
		Instruction: &log.InstructionEvent{
			Data:   append([]byte(nil), data...),
			Fields: fields,
		},
	})
}

func (c *Codec) logError(op log.Operation, format string, err error, context string) {
	c.logger.Log(log.Event{
		Timestamp: c.now(),
		SessionID: c.sessionID,
		Operation: op,
		Category:  log.CategoryError,
		Format:    format,
		Error: &log.ErrorEventData{
			Message: err.Error(),
			Context: context,
		},
	})
}
