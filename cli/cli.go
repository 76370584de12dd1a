package cli

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/pflag"
)

// Config holds all the command-line flag values.
type Config struct {
	Manifest     string   `env:"LINTFIX_MANIFEST"`
	Roots        []string `env:"LINTFIX_ROOT" envSeparator:":"`
	Batches      []string
	Clipboard    bool
	Diff         bool `env:"LINTFIX_DIFF"`
	TUI          bool
	NoColor      bool
	PrintDefault bool
}

// ParseFlags parses the process arguments.
func ParseFlags() (*Config, error) {
	return Parse(os.Args[1:])
}

// Parse reads defaults from the environment and then applies flags from args,
// so flags win over environment variables.
func Parse(args []string) (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment variables: %w", err)
	}

	flags := pflag.NewFlagSet("lintfix", pflag.ContinueOnError)
	flags.StringVarP(&cfg.Manifest, "manifest", "m", cfg.Manifest, "Manifest file (YAML or Markdown with yaml blocks). Use '-' for stdin. Defaults to the built-in manifest.")
	flags.StringSliceVarP(&cfg.Roots, "root", "C", cfg.Roots, "Directory that relative target paths resolve against (default: current directory). Repeat to search several.")
	flags.StringSliceVarP(&cfg.Batches, "batch", "b", nil, "Run only the named batches (e.g., 'unused_imports').")
	flags.BoolVarP(&cfg.Clipboard, "clipboard", "c", false, "Read the manifest from the clipboard.")
	flags.BoolVarP(&cfg.Diff, "diff", "d", cfg.Diff, "Print a unified diff of every modified file.")
	flags.BoolVar(&cfg.TUI, "tui", false, "Show a spinner while running and a styled summary.")
	flags.BoolVar(&cfg.NoColor, "no-color", false, "Disable coloured output.")
	flags.BoolVar(&cfg.PrintDefault, "print-default", false, "Print the built-in manifest and exit.")

	flags.Usage = func() {
		fmt.Println("Usage: lintfix [flags]")
		fmt.Println("\nApply the guarded text patches of a manifest to files, writing only what changes.")
		fmt.Println("\nExample: lintfix -C ~/src/app -b unused_imports")
		fmt.Println("\nFlags:")
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	// Validate mutually exclusive flags
	var err error
	switch {
	case cfg.Clipboard && cfg.Manifest != "":
		err = fmt.Errorf("--clipboard and --manifest are mutually exclusive")
	case cfg.TUI && cfg.Diff:
		err = fmt.Errorf("--diff is not available with --tui")
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return nil, err
	}

	return cfg, nil
}
