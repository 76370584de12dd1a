package runner

import (
	"bytes"
	"fmt"
	"path/filepath"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/sokinpui/lintfix/internal/fs"
	"github.com/sokinpui/lintfix/internal/patch"
	"github.com/sokinpui/lintfix/model"
)

// DefaultMessage is used for targets that do not declare a message.
const DefaultMessage = "{{ .Name }}: updated"

// Target is one file and the ordered patches applied to it within a batch.
type Target struct {
	Path    string
	Message *template.Template
	Patches []patch.Patch
}

// Batch is a named group of targets addressing one category of lint warning.
type Batch struct {
	Name    string
	Title   string
	Targets []Target
}

// MessageData is the template data available to a target's message.
type MessageData struct {
	Path         string
	Abs          string
	Name         string
	Batch        string
	Replacements int
}

// ParseMessage parses a report message template with the sprig functions.
func ParseMessage(text string) (*template.Template, error) {
	if text == "" {
		text = DefaultMessage
	}
	return template.New("message").Funcs(sprig.TxtFuncMap()).Parse(text)
}

// Runner applies batches to files on disk.
type Runner struct {
	resolver *fs.PathResolver
	onBatch  func(model.BatchReport)
	onWrite  func(path, before, after string)
}

// New creates a Runner resolving relative target paths with resolver.
func New(resolver *fs.PathResolver) *Runner {
	return &Runner{resolver: resolver}
}

// OnBatch registers a function called after each completed batch.
func (r *Runner) OnBatch(fn func(model.BatchReport)) {
	r.onBatch = fn
}

// OnWrite registers a function called after each file write.
func (r *Runner) OnWrite(fn func(path, before, after string)) {
	r.onWrite = fn
}

// Run executes batches in order. The first I/O error aborts the run; the
// returned summary still holds every batch up to and including the failing
// one, since files already written stay written.
func (r *Runner) Run(batches []Batch) (model.Summary, error) {
	var summary model.Summary
	for _, b := range batches {
		report, err := r.RunBatch(b)
		summary.Batches = append(summary.Batches, report)
		if err != nil {
			return summary, err
		}
		if r.onBatch != nil {
			r.onBatch(report)
		}
	}
	return summary, nil
}

type workingFile struct {
	original string
	current  string
}

// RunBatch applies one batch. Each file is read the first time a target names
// it and written at most once, after the last target naming it, and only
// when its content differs from what was read.
func (r *Runner) RunBatch(b Batch) (model.BatchReport, error) {
	report := model.BatchReport{Name: b.Name, Title: b.Title}
	if report.Title == "" {
		report.Title = b.Name
	}

	paths := make([]string, len(b.Targets))
	lastUse := make(map[string]int, len(b.Targets))
	for i, t := range b.Targets {
		paths[i] = r.resolver.Resolve(t.Path)
		lastUse[paths[i]] = i
	}

	open := make(map[string]*workingFile)
	for i, t := range b.Targets {
		path := paths[i]
		wf, ok := open[path]
		if !ok {
			content, err := fs.ReadText(path)
			if err != nil {
				return report, fmt.Errorf("batch %q: %w", b.Name, err)
			}
			wf = &workingFile{original: content, current: content}
			open[path] = wf
		}

		next, n := patch.Apply(wf.current, t.Patches)
		if next != wf.current {
			wf.current = next
			report.Lines = append(report.Lines, renderMessage(t, MessageData{
				Path:         t.Path,
				Abs:          path,
				Name:         filepath.Base(path),
				Batch:        b.Name,
				Replacements: n,
			}))
		}

		if lastUse[path] != i {
			continue
		}
		delete(open, path)
		if wf.current == wf.original {
			continue
		}
		if err := fs.WriteText(path, wf.current); err != nil {
			return report, fmt.Errorf("batch %q: %w", b.Name, err)
		}
		report.Written = append(report.Written, path)
		if r.onWrite != nil {
			r.onWrite(path, wf.original, wf.current)
		}
	}
	return report, nil
}

func renderMessage(t Target, data MessageData) string {
	tmpl := t.Message
	if tmpl == nil {
		tmpl = template.Must(ParseMessage(""))
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Sprintf("%s: updated (message error: %v)", data.Name, err)
	}
	return buf.String()
}
