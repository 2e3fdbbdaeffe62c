// Command bitword encodes and decodes instructions described by a token
// layout file.
//
// Usage:
//
//	bitword <command> [flags] [args]
//
// Commands:
//
//	encode   Encode field values into instruction bytes
//	decode   Decode instruction bytes into field values
//	fields   Describe the token types and formats of a layout
//	log      View or summarize a codec event log
//	repl     Interactive encode/decode shell
//
// Examples:
//
//	# addi x1, x0, -5
//	bitword encode -format i_type opcode=0x13 rd=1 imm=-5
//
//	# Decode it back
//	bitword decode -format i_type 9300b0ff
//
//	# Use a custom layout and record events
//	bitword encode -layout cpu.yaml -event-log codec.blog -format load rd=2 imm=7
//
//	# Show recorded errors
//	bitword log -category error codec.blog
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/bitword/bitword-go/cmd/bitword/commands"
	"github.com/bitword/bitword-go/cmd/bitword/interactive"
)

const usage = `bitword - bit-field instruction codec

Usage:
  bitword <command> [flags] [args]

Commands:
  encode   Encode field values into instruction bytes
  decode   Decode instruction bytes into field values
  fields   Describe the token types and formats of a layout
  log      View or summarize a codec event log
  repl     Interactive encode/decode shell

Layouts are YAML files or built-ins (builtin:rv32, builtin:toy16).
Use "bitword <command> -help" for more information about a command.
`

const defaultLayout = "builtin:rv32"

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "encode":
		runEncode(args)
	case "decode":
		runDecode(args)
	case "fields":
		runFields(args)
	case "log":
		runLog(args)
	case "repl":
		runRepl(args)
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
}

// sessionFlags are shared by the commands that load a layout.
type sessionFlags struct {
	layout   *string
	eventLog *string
	verbose  *bool
}

func addSessionFlags(fs *flag.FlagSet) sessionFlags {
	return sessionFlags{
		layout:   fs.String("layout", defaultLayout, "Layout file or builtin:<name>"),
		eventLog: fs.String("event-log", "", "Append codec events to this CBOR file"),
		verbose:  fs.Bool("v", false, "Log codec events to stderr"),
	}
}

func (f sessionFlags) open() *commands.Session {
	opts := commands.SessionOptions{
		Layout:   *f.layout,
		EventLog: *f.eventLog,
	}
	if *f.verbose {
		opts.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	s, err := commands.OpenSession(opts)
	if err != nil {
		fatal(err)
	}
	return s
}

func runEncode(args []string) {
	fs := flag.NewFlagSet("encode", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `bitword encode - Encode field values into instruction bytes

Usage:
  bitword encode [flags] name=value...

Values accept decimal, 0x, 0b and 0o notation and may be negative.

Flags:
`)
		fs.PrintDefaults()
	}

	sf := addSessionFlags(fs)
	format := fs.String("format", "", "Instruction format (required)")
	output := fs.String("o", commands.OutputHex, "Output encoding (hex, cbor)")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if *format == "" {
		fmt.Fprintln(os.Stderr, "Error: -format required")
		fs.Usage()
		os.Exit(1)
	}

	s := sf.open()
	defer s.Close()

	cfg := commands.EncodeConfig{Format: *format, Values: fs.Args(), Output: *output}
	if err := commands.RunEncode(s, cfg, os.Stdout); err != nil {
		s.Close()
		fatal(err)
	}
}

func runDecode(args []string) {
	fs := flag.NewFlagSet("decode", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `bitword decode - Decode instruction bytes into field values

Usage:
  bitword decode [flags] <hex>...

Flags:
`)
		fs.PrintDefaults()
	}

	sf := addSessionFlags(fs)
	format := fs.String("format", "", "Instruction format (optional with -i cbor)")
	input := fs.String("i", commands.OutputHex, "Input encoding (hex, cbor)")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: input bytes required")
		fs.Usage()
		os.Exit(1)
	}

	s := sf.open()
	defer s.Close()

	cfg := commands.DecodeConfig{Format: *format, Input: strings.Join(fs.Args(), ""), Mode: *input}
	if err := commands.RunDecode(s, cfg, os.Stdout); err != nil {
		s.Close()
		fatal(err)
	}
}

func runFields(args []string) {
	fs := flag.NewFlagSet("fields", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `bitword fields - Describe the token types and formats of a layout

Usage:
  bitword fields [flags] [type]

Flags:
`)
		fs.PrintDefaults()
	}

	sf := addSessionFlags(fs)
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	s := sf.open()
	defer s.Close()

	if err := commands.RunFields(s.Layout, fs.Arg(0), os.Stdout); err != nil {
		s.Close()
		fatal(err)
	}
}

func runLog(args []string) {
	fs := flag.NewFlagSet("log", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `bitword log - View or summarize a codec event log

Usage:
  bitword log [flags] <file>

Flags:
`)
		fs.PrintDefaults()
	}

	stats := fs.Bool("stats", false, "Print statistics instead of events")
	session := fs.String("session", "", "Filter by session ID")
	format := fs.String("format", "", "Filter by instruction format")
	operation := fs.String("op", "", "Filter by operation (encode, decode)")
	category := fs.String("category", "", "Filter by category (instruction, error)")
	timeStart := fs.String("time-start", "", "Filter by start time (RFC3339)")
	timeEnd := fs.String("time-end", "", "Filter by end time (RFC3339)")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: log file path required")
		fs.Usage()
		os.Exit(1)
	}
	path := fs.Arg(0)

	if *stats {
		if err := commands.RunStats(path, os.Stdout); err != nil {
			fatal(err)
		}
		return
	}

	filter := commands.ViewFilter{
		SessionID: *session,
		Format:    *format,
		TimeStart: *timeStart,
		TimeEnd:   *timeEnd,
	}
	if *operation != "" {
		op, err := commands.ParseOperationFlag(*operation)
		if err != nil {
			fatal(err)
		}
		filter.Operation = &op
	}
	if *category != "" {
		c, err := commands.ParseCategoryFlag(*category)
		if err != nil {
			fatal(err)
		}
		filter.Category = &c
	}

	if err := commands.RunView(path, filter, os.Stdout); err != nil {
		fatal(err)
	}
}

func runRepl(args []string) {
	fs := flag.NewFlagSet("repl", flag.ExitOnError)
	sf := addSessionFlags(fs)
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	s := sf.open()
	defer s.Close()

	shell, err := interactive.New(s)
	if err != nil {
		s.Close()
		fatal(err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer cancel()
	shell.Run(ctx)
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
