package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"github.com/backplane/insort/model"
)

// ErrHelp is returned when usage was requested with -h/--help.
var ErrHelp = pflag.ErrHelp

// Config holds all the command-line flag values.
type Config struct {
	Filename  string
	Additions []string

	Create    bool
	NoCreate  bool
	Stdin     bool
	Clipboard bool
	NoReload  bool
	Verbose   bool
	Version   bool
}

// Policy maps the creation flags to a creation policy.
func (c *Config) Policy() model.CreationPolicy {
	switch {
	case c.Create:
		return model.AlwaysCreate
	case c.NoCreate:
		return model.NeverCreate
	default:
		return model.Prompt
	}
}

// ParseFlags defines and parses command-line flags using pflag. Usage and
// parse errors, including failed validation, are written to output.
func ParseFlags(args []string, output io.Writer) (*Config, error) {
	cfg := &Config{}

	flags := pflag.NewFlagSet("insort", pflag.ContinueOnError)
	flags.SetOutput(output)

	// Mutually exclusive creation group
	flags.BoolVarP(&cfg.Create, "create", "c", false, "Create the file if it does not exist.")
	flags.BoolVarP(&cfg.NoCreate, "no-create", "n", false, "Fail if the file does not exist (default: ask).")

	flags.BoolVarP(&cfg.Stdin, "stdin", "i", false, "Also read additions from stdin, one per line. Requires --create or --no-create.")
	flags.BoolVarP(&cfg.Clipboard, "clipboard", "p", false, "Also read additions from the clipboard, one per line.")
	flags.BoolVar(&cfg.NoReload, "no-reload", false, "Do not ask a running Neovim to reload the rewritten file.")
	flags.BoolVarP(&cfg.Verbose, "verbose", "v", false, "Print debug logging to stderr.")
	flags.BoolVarP(&cfg.Version, "version", "V", false, "Print version and exit.")

	flags.Usage = func() {
		fmt.Fprintln(output, "Usage: insort [flags] <filename> [additions...]")
		fmt.Fprintln(output, "\nSort the given file in place, removing duplicate and empty lines,")
		fmt.Fprintln(output, "and optionally insert the given additions.")
		fmt.Fprintln(output, "\nExample: insort -c .gitignore node_modules dist")
		fmt.Fprintln(output, "\nFlags:")
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		return nil, err
	}
	if cfg.Version {
		return cfg, nil
	}

	// Validate mutually exclusive flags
	if cfg.Create && cfg.NoCreate {
		return nil, usageError(flags, output, "--create and --no-create are mutually exclusive")
	}
	if cfg.Stdin && !cfg.Create && !cfg.NoCreate {
		return nil, usageError(flags, output, "--stdin requires --create or --no-create")
	}

	positional := flags.Args()
	if len(positional) == 0 {
		return nil, usageError(flags, output, "missing required argument: filename")
	}
	cfg.Filename = positional[0]
	cfg.Additions = positional[1:]

	return cfg, nil
}

// usageError reports a validation failure the way pflag reports parse errors.
func usageError(flags *pflag.FlagSet, output io.Writer, msg string) error {
	err := errors.New(msg)
	fmt.Fprintln(output, err)
	flags.Usage()
	return err
}
