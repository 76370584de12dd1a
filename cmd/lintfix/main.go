package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/sokinpui/lintfix/cli"
	"github.com/sokinpui/lintfix/internal/fs"
	"github.com/sokinpui/lintfix/internal/tui"
	"github.com/sokinpui/lintfix/internal/ui"
	"github.com/sokinpui/lintfix/lintfix"
	"github.com/sokinpui/lintfix/model"
)

type pendingDiff struct {
	path, before, after string
}

func main() {
	cfg, err := cli.ParseFlags()
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		// pflag already prints the error message.
		os.Exit(1)
	}

	if cfg.NoColor {
		ui.DisableColor()
	}

	if cfg.PrintDefault {
		os.Stdout.Write(lintfix.DefaultManifest())
		return
	}

	app, err := lintfix.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize application: %v\n", err)
		os.Exit(1)
	}

	if cfg.TUI {
		if err := tui.Run(app); err != nil {
			os.Exit(1)
		}
		return
	}

	if err := runPlain(app, cfg.Diff); err != nil {
		ui.Error("Error: %v", err)
		var detailed *lintfix.DetailedError
		if errors.As(err, &detailed) {
			fmt.Fprintf(os.Stderr, "\n--- Stack Trace ---\n%s\n", detailed.Stack)
		}
		os.Exit(1)
	}
}

// runPlain prints each batch as soon as it finishes, followed by the diffs
// of the files it wrote when showDiff is set.
func runPlain(app *lintfix.App, showDiff bool) error {
	var pending []pendingDiff
	if showDiff {
		app.SetWriteCallback(func(path, before, after string) {
			pending = append(pending, pendingDiff{path: fs.Relative(path), before: before, after: after})
		})
	}
	flush := func() {
		for _, d := range pending {
			ui.PrintDiff(d.path, d.before, d.after)
		}
		pending = nil
	}

	ui.PrintBanner()
	printed := 0
	app.SetBatchCallback(func(r model.BatchReport) {
		ui.PrintBatch(r)
		flush()
		printed++
	})

	summary, err := app.Execute()
	if err != nil {
		// The failing batch never reached the callback.
		if len(summary.Batches) > printed {
			ui.PrintFailedBatch(summary.Batches[len(summary.Batches)-1])
			flush()
		}
		return err
	}

	ui.PrintTotal(summary.Total())
	return nil
}
