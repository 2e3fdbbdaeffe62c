// Package interactive provides the bitword repl: an interactive shell for
// encoding and decoding instructions against one layout.
package interactive

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"github.com/bitword/bitword-go/cmd/bitword/commands"
)

// Shell handles interactive mode for bitword.
type Shell struct {
	session *commands.Session
	rl      *readline.Instance

	// lastFormat is reused when a command omits the format.
	lastFormat string
}

// New creates a shell over an open session.
func New(session *commands.Session) (*Shell, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "bitword> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete:    completer(session),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}
	return &Shell{session: session, rl: rl}, nil
}

func completer(session *commands.Session) *readline.PrefixCompleter {
	formats := make([]readline.PrefixCompleterInterface, 0)
	for _, name := range session.Codec.Formats() {
		formats = append(formats, readline.PcItem(name))
	}
	types := make([]readline.PrefixCompleterInterface, 0)
	for _, name := range session.Layout.Registry.Names() {
		types = append(types, readline.PcItem(name))
	}
	return readline.NewPrefixCompleter(
		readline.PcItem("encode", formats...),
		readline.PcItem("decode", formats...),
		readline.PcItem("fields", types...),
		readline.PcItem("formats"),
		readline.PcItem("help"),
		readline.PcItem("quit"),
	)
}

// Stdout returns a writer that coordinates with the readline prompt.
func (s *Shell) Stdout() io.Writer {
	return s.rl.Stdout()
}

// Run starts the interactive command loop. It returns when the user quits,
// input ends, or ctx is cancelled.
func (s *Shell) Run(ctx context.Context) {
	defer s.rl.Close()

	out := s.rl.Stdout()
	printHelp(out)

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := s.rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(out, "Exiting...")
			return
		}
		if s.Exec(line, out) {
			return
		}
	}
}

// Exec runs one command line, writing results to w. It reports whether the
// shell should exit.
func (s *Shell) Exec(line string, w io.Writer) bool {
	parts := strings.Fields(strings.TrimSpace(line))
	if len(parts) == 0 {
		return false
	}
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	var err error
	switch cmd {
	case "help", "?":
		printHelp(w)
	case "formats", "ls":
		s.cmdFormats(w)
	case "fields", "f":
		name := ""
		if len(args) > 0 {
			name = args[0]
		}
		err = commands.RunFields(s.session.Layout, name, w)
	case "encode", "e":
		err = s.cmdEncode(args, w)
	case "decode", "d":
		err = s.cmdDecode(args, w)
	case "quit", "exit", "q":
		return true
	default:
		fmt.Fprintf(w, "Unknown command: %s (type 'help')\n", cmd)
	}
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
	}
	return false
}

// cmdEncode handles "encode [format] name=value...".
func (s *Shell) cmdEncode(args []string, w io.Writer) error {
	format, args := s.formatArg(args)
	if format == "" {
		return fmt.Errorf("usage: encode <format> name=value...")
	}
	if err := commands.RunEncode(s.session, commands.EncodeConfig{Format: format, Values: args}, w); err != nil {
		return err
	}
	s.lastFormat = format
	return nil
}

// cmdDecode handles "decode [format] <hex>".
func (s *Shell) cmdDecode(args []string, w io.Writer) error {
	format, args := s.formatArg(args)
	if format == "" || len(args) == 0 {
		return fmt.Errorf("usage: decode <format> <hex>")
	}
	cfg := commands.DecodeConfig{Format: format, Input: strings.Join(args, "")}
	if err := commands.RunDecode(s.session, cfg, w); err != nil {
		return err
	}
	s.lastFormat = format
	return nil
}

// formatArg consumes a leading format name, falling back to the last one
// used.
func (s *Shell) formatArg(args []string) (string, []string) {
	if len(args) > 0 {
		if _, err := s.session.Codec.Format(args[0]); err == nil {
			return args[0], args[1:]
		}
	}
	return s.lastFormat, args
}

func (s *Shell) cmdFormats(w io.Writer) {
	for _, name := range s.session.Codec.Formats() {
		f, err := s.session.Codec.Format(name)
		if err != nil {
			continue
		}
		fmt.Fprintf(w, "  %-10s %2d bytes  %s\n", name, f.ByteSize(), f.Description())
	}
}

func printHelp(w io.Writer) {
	fmt.Fprint(w, `Commands:
  formats                       List instruction formats
  fields [type]                 Show token types and their fields
  encode [format] name=value... Encode an instruction to hex
  decode [format] <hex>         Decode hex into field values
  help                          Show this help
  quit                          Exit

The format may be omitted to reuse the last one.
`)
}
