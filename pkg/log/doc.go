// Package log records codec activity as a stream of structured events.
//
// It is separate from operational logging (slog): every instruction
// encoded or decoded through an instr.Codec, and every failure, becomes an
// Event that can be written to the console, to a file, or both.
//
// # Basic Usage
//
//	// For development: events on the console via slog
//	logger := log.NewSlogAdapter(slog.Default())
//
//	// For later analysis: CBOR event file
//	file, _ := log.NewFileLogger("session.blog")
//	defer file.Close()
//
//	// Both
//	codec, _ := instr.NewCodec(formats, instr.WithLogger(
//	    log.NewMultiLogger(logger, file),
//	))
//
// # File Format
//
// Event files are a plain concatenation of CBOR-encoded events with
// integer keys (.blog extension by convention). Reader streams them back,
// optionally through a Filter. The "bitword log" command views them.
package log
