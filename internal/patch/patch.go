package patch

import (
	"fmt"
	"regexp"
	"strings"
)

// Edit is a single find-and-replace transformation over a file's text.
type Edit interface {
	// Apply returns the transformed content and the number of replacements made.
	Apply(content string) (string, int)
}

// Patch pairs an edit with an optional guard. When the guard reports that the
// edit's effect is already present, the edit is not attempted.
type Patch struct {
	Edit  Edit
	Guard Guard
}

// Apply runs the edit unless its guard says the content is already fixed.
func (p Patch) Apply(content string) (string, int) {
	if p.Guard != nil && p.Guard.Applied(content) {
		return content, 0
	}
	return p.Edit.Apply(content)
}

// Apply runs patches in order, each one seeing the output of the previous.
// It returns the final content and the total number of replacements.
func Apply(content string, patches []Patch) (string, int) {
	total := 0
	for _, p := range patches {
		var n int
		content, n = p.Apply(content)
		total += n
	}
	return content, total
}

// Literal replaces a fixed substring. Count limits the number of
// replacements; zero replaces every occurrence.
type Literal struct {
	Old   string
	New   string
	Count int
}

func (l Literal) Apply(content string) (string, int) {
	if l.Old == "" {
		return content, 0
	}
	found := strings.Count(content, l.Old)
	if found == 0 {
		return content, 0
	}
	if l.Count > 0 && found > l.Count {
		found = l.Count
	}
	return strings.Replace(content, l.Old, l.New, found), found
}

// Regex replaces matches of a compiled pattern. Template is expanded per match
// with regexp.Expand syntax (${1}, ${name}) unless Verbatim is set, in which
// case it is inserted as-is. Count limits the number of replacements; zero
// replaces every match.
type Regex struct {
	Pattern  *regexp.Regexp
	Template string
	Count    int
	Verbatim bool
}

// NewRegex compiles expr into a Regex edit.
func NewRegex(expr, template string) (Regex, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return Regex{}, fmt.Errorf("invalid pattern %q: %w", expr, err)
	}
	return Regex{Pattern: re, Template: template}, nil
}

func (r Regex) Apply(content string) (string, int) {
	limit := -1
	if r.Count > 0 {
		limit = r.Count
	}
	matches := r.Pattern.FindAllStringSubmatchIndex(content, limit)
	if len(matches) == 0 {
		return content, 0
	}

	var b strings.Builder
	b.Grow(len(content))
	last := 0
	var buf []byte
	for _, m := range matches {
		b.WriteString(content[last:m[0]])
		if r.Verbatim {
			b.WriteString(r.Template)
		} else {
			buf = r.Pattern.ExpandString(buf[:0], r.Template, content, m)
			b.Write(buf)
		}
		last = m[1]
	}
	b.WriteString(content[last:])

	out := b.String()
	if out == content {
		// Replacement produced identical text; nothing was really changed.
		return content, 0
	}
	return out, len(matches)
}
