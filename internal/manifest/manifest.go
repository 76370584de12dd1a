package manifest

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/sokinpui/lintfix/internal/patch"
	"github.com/sokinpui/lintfix/internal/runner"
)

//go:embed default.yaml
var defaultManifest []byte

// DefaultName is the display name of the built-in manifest.
const DefaultName = "default.yaml"

// Default returns the built-in manifest.
func Default() []byte {
	return bytes.Clone(defaultManifest)
}

var batchNameRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// Manifest is the declarative description of every batch to run.
type Manifest struct {
	Batches []Batch `yaml:"batches" validate:"required,min=1,dive"`
}

// Batch is a named, ordered group of targets.
type Batch struct {
	Name    string   `yaml:"name" validate:"required"`
	Title   string   `yaml:"title"`
	Targets []Target `yaml:"targets" validate:"required,min=1,dive"`
}

// Target is one file and its ordered patches.
type Target struct {
	Path    string  `yaml:"path" validate:"required"`
	Message string  `yaml:"message"`
	Patches []Patch `yaml:"patches" validate:"required,min=1,dive"`
}

// Patch is a literal or regex replacement with an optional guard.
type Patch struct {
	Literal   string `yaml:"literal"`
	Regex     string `yaml:"regex"`
	Replace   string `yaml:"replace"`
	Count     int    `yaml:"count" validate:"gte=0"`
	Verbatim  bool   `yaml:"verbatim"`
	AppliedIf *Guard `yaml:"applied_if"`
}

// Guard describes how to tell that a patch is already applied. Exactly one
// field is set.
type Guard struct {
	Contains   string      `yaml:"contains"`
	Matches    string      `yaml:"matches"`
	FollowedBy *FollowedBy `yaml:"followed_by"`
}

// FollowedBy is the adjacency guard: Marker on the line after Anchor.
type FollowedBy struct {
	Anchor string `yaml:"anchor" validate:"required"`
	Marker string `yaml:"marker" validate:"required"`
}

// Decode parses manifest data. Markdown files contribute every yaml fenced
// code block, and batches without a title take the nearest heading above
// their block; anything else is read as a YAML stream.
func Decode(data []byte, filename string) (*Manifest, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".md", ".markdown":
		blocks, err := ExtractYAMLBlocks(data)
		if err != nil {
			return nil, fmt.Errorf("error parsing markdown manifest: %w", err)
		}
		if len(blocks) == 0 {
			return nil, fmt.Errorf("markdown manifest %s has no yaml code blocks", filename)
		}
		m := &Manifest{}
		for i, block := range blocks {
			var part Manifest
			if err := decodeYAML([]byte(block.Content), &part); err != nil {
				return nil, fmt.Errorf("yaml block %d: %w", i+1, err)
			}
			// Untitled batches take the heading of their section.
			for j := range part.Batches {
				if part.Batches[j].Title == "" {
					part.Batches[j].Title = block.Heading
				}
			}
			m.Batches = append(m.Batches, part.Batches...)
		}
		return m, nil
	default:
		m := &Manifest{}
		if err := decodeYAML(data, m); err != nil {
			return nil, err
		}
		return m, nil
	}
}

// decodeYAML appends the batches of every document in data to m.
func decodeYAML(data []byte, m *Manifest) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	for {
		var doc Manifest
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("error parsing YAML manifest: %w", err)
		}
		m.Batches = append(m.Batches, doc.Batches...)
	}
}

// Load decodes and validates manifest data.
func Load(data []byte, filename string) (*Manifest, error) {
	m, err := Decode(data, filename)
	if err != nil {
		return nil, err
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Validate checks struct constraints and the rules the tags cannot express.
func (m *Manifest) Validate() error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(m); err != nil {
		return fmt.Errorf("invalid manifest: %w", err)
	}

	var errs []error
	seen := make(map[string]bool, len(m.Batches))
	for bi, b := range m.Batches {
		if !batchNameRegex.MatchString(b.Name) {
			errs = append(errs, fmt.Errorf("batches[%d].name %q: use lowercase letters, digits, '_' or '-'", bi, b.Name))
		}
		if seen[b.Name] {
			errs = append(errs, fmt.Errorf("batches[%d].name %q: duplicate batch name", bi, b.Name))
		}
		seen[b.Name] = true

		for ti, t := range b.Targets {
			field := fmt.Sprintf("batches[%d].targets[%d]", bi, ti)
			if _, err := runner.ParseMessage(t.Message); err != nil {
				errs = append(errs, fmt.Errorf("%s.message: %w", field, err))
			}
			for pi, p := range t.Patches {
				if err := p.validate(); err != nil {
					errs = append(errs, fmt.Errorf("%s.patches[%d]: %w", field, pi, err))
				}
			}
		}
	}
	return errors.Join(errs...)
}

func (p Patch) validate() error {
	switch {
	case p.Literal == "" && p.Regex == "":
		return errors.New("one of literal or regex is required")
	case p.Literal != "" && p.Regex != "":
		return errors.New("literal and regex are mutually exclusive")
	}
	if p.Regex != "" {
		if _, err := regexp.Compile(p.Regex); err != nil {
			return fmt.Errorf("regex: %w", err)
		}
	}
	if p.AppliedIf == nil {
		return nil
	}
	g := p.AppliedIf
	set := 0
	for _, ok := range []bool{g.Contains != "", g.Matches != "", g.FollowedBy != nil} {
		if ok {
			set++
		}
	}
	if set != 1 {
		return errors.New("applied_if needs exactly one of contains, matches or followed_by")
	}
	if g.Matches != "" {
		if _, err := regexp.Compile(g.Matches); err != nil {
			return fmt.Errorf("applied_if.matches: %w", err)
		}
	}
	return nil
}

// Select returns a manifest holding only the named batches, in manifest
// order. No names selects everything.
func (m *Manifest) Select(names []string) (*Manifest, error) {
	if len(names) == 0 {
		return m, nil
	}
	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		wanted[n] = true
	}
	out := &Manifest{}
	for _, b := range m.Batches {
		if wanted[b.Name] {
			out.Batches = append(out.Batches, b)
			delete(wanted, b.Name)
		}
	}
	if len(wanted) > 0 {
		var unknown []string
		for _, n := range names {
			if wanted[n] {
				unknown = append(unknown, n)
			}
		}
		return nil, fmt.Errorf("unknown batch(es): %s", strings.Join(unknown, ", "))
	}
	return out, nil
}

// Names lists the batch names in order.
func (m *Manifest) Names() []string {
	names := make([]string, len(m.Batches))
	for i, b := range m.Batches {
		names[i] = b.Name
	}
	return names
}

// Compile turns a validated manifest into runnable batches.
func (m *Manifest) Compile() ([]runner.Batch, error) {
	batches := make([]runner.Batch, 0, len(m.Batches))
	for _, b := range m.Batches {
		rb := runner.Batch{Name: b.Name, Title: b.Title}
		if rb.Title == "" {
			rb.Title = b.Name
		}
		for _, t := range b.Targets {
			tmpl, err := runner.ParseMessage(t.Message)
			if err != nil {
				return nil, fmt.Errorf("batch %q, target %s: %w", b.Name, t.Path, err)
			}
			rt := runner.Target{Path: t.Path, Message: tmpl}
			for _, p := range t.Patches {
				cp, err := p.compile()
				if err != nil {
					return nil, fmt.Errorf("batch %q, target %s: %w", b.Name, t.Path, err)
				}
				rt.Patches = append(rt.Patches, cp)
			}
			rb.Targets = append(rb.Targets, rt)
		}
		batches = append(batches, rb)
	}
	return batches, nil
}

func (p Patch) compile() (patch.Patch, error) {
	var out patch.Patch
	if p.Regex != "" {
		r, err := patch.NewRegex(p.Regex, p.Replace)
		if err != nil {
			return out, err
		}
		r.Count = p.Count
		r.Verbatim = p.Verbatim
		out.Edit = r
	} else {
		out.Edit = patch.Literal{Old: p.Literal, New: p.Replace, Count: p.Count}
	}

	if g := p.AppliedIf; g != nil {
		switch {
		case g.Contains != "":
			out.Guard = patch.Contains{Text: g.Contains}
		case g.Matches != "":
			re, err := regexp.Compile(g.Matches)
			if err != nil {
				return out, fmt.Errorf("applied_if.matches: %w", err)
			}
			out.Guard = patch.Matches{Pattern: re}
		case g.FollowedBy != nil:
			out.Guard = patch.FollowedBy{Anchor: g.FollowedBy.Anchor, Marker: g.FollowedBy.Marker}
		}
	}
	return out, nil
}
