package ui

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/pmezard/go-difflib/difflib"

	"github.com/sokinpui/lintfix/model"
)

var (
	HeaderColor  = color.New(color.FgBlue, color.Bold)
	InfoColor    = color.New(color.FgCyan)
	SuccessColor = color.New(color.FgGreen)
	WarningColor = color.New(color.FgYellow)
	ErrorColor   = color.New(color.FgRed)
	PathColor    = color.New(color.FgYellow)
	FaintColor   = color.New(color.Faint)
	AddColor     = color.New(color.FgGreen)
	DelColor     = color.New(color.FgRed)
)

// Progress lines go to stdout, diagnostics to stderr.
var (
	stdout io.Writer = color.Output
	stderr io.Writer = color.Error
)

// SetOutput redirects console output. Nil keeps the current writer.
func SetOutput(out, errOut io.Writer) {
	if out != nil {
		stdout = out
	}
	if errOut != nil {
		stderr = errOut
	}
}

// DisableColor turns off ANSI colours for every helper in this package.
func DisableColor() {
	color.NoColor = true
}

func Header(format string, a ...interface{}) {
	HeaderColor.Fprintf(stdout, format+"\n", a...)
}

func Info(format string, a ...interface{}) {
	InfoColor.Fprintf(stdout, format+"\n", a...)
}

func Success(format string, a ...interface{}) {
	SuccessColor.Fprintf(stdout, format+"\n", a...)
}

func Warning(format string, a ...interface{}) {
	WarningColor.Fprintf(stderr, format+"\n", a...)
}

func Error(format string, a ...interface{}) {
	ErrorColor.Fprintf(stderr, format+"\n", a...)
}

func Path(format string, a ...interface{}) {
	PathColor.Fprintf(stdout, "  "+format+"\n", a...)
}

// --- Run output ---

// PrintBanner prints the opening line of a run.
func PrintBanner() {
	Header("=== Lint fixes ===")
}

// PrintBatch prints a batch title followed by one line per change, or a
// single "already fixed" line when nothing changed.
func PrintBatch(r model.BatchReport) {
	fmt.Fprintln(stdout)
	Header("%s", r.Title)
	if len(r.Lines) == 0 {
		FaintColor.Fprintln(stdout, "[OK] Already fixed")
		return
	}
	for _, line := range r.Lines {
		Success("[OK] %s", line)
	}
}

// PrintFailedBatch prints a batch that aborted: its title and the lines it
// produced before the error, never the "already fixed" line.
func PrintFailedBatch(r model.BatchReport) {
	fmt.Fprintln(stdout)
	Header("%s", r.Title)
	for _, line := range r.Lines {
		Success("[OK] %s", line)
	}
}

// PrintTotal prints the closing summary count.
func PrintTotal(total int) {
	fmt.Fprintln(stdout)
	Header("=== Total: %d files modified ===", total)
}

// PrintSummary prints every batch of a finished run and the total.
func PrintSummary(s model.Summary) {
	PrintBanner()
	for _, b := range s.Batches {
		PrintBatch(b)
	}
	PrintTotal(s.Total())
}

// --- Diffs ---

// UnifiedDiff renders the change from before to after for path.
func UnifiedDiff(path, before, after string) (string, error) {
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: "a/" + path,
		ToFile:   "b/" + path,
		Context:  3,
	})
}

// PrintDiff writes a coloured unified diff of a written file.
func PrintDiff(path, before, after string) {
	diff, err := UnifiedDiff(path, before, after)
	if err != nil {
		Warning("  -> could not render diff for %s: %v", path, err)
		return
	}
	for _, line := range difflib.SplitLines(diff) {
		switch {
		case len(line) >= 3 && (line[:3] == "---" || line[:3] == "+++"):
			FaintColor.Fprint(stdout, line)
		case line[0] == '+':
			AddColor.Fprint(stdout, line)
		case line[0] == '-':
			DelColor.Fprint(stdout, line)
		default:
			fmt.Fprint(stdout, line)
		}
	}
}
