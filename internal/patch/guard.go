package patch

import (
	"regexp"
	"strings"
)

// Guard is an idempotence predicate: given the current content, it reports
// whether a patch's effect has already been achieved.
type Guard interface {
	Applied(content string) bool
}

// GuardFunc adapts a plain function to the Guard interface.
type GuardFunc func(content string) bool

func (f GuardFunc) Applied(content string) bool { return f(content) }

// Contains treats the patch as applied once Text appears anywhere.
type Contains struct {
	Text string
}

func (c Contains) Applied(content string) bool {
	return strings.Contains(content, c.Text)
}

// Matches treats the patch as applied once Pattern matches.
type Matches struct {
	Pattern *regexp.Regexp
}

func (m Matches) Applied(content string) bool {
	return m.Pattern.MatchString(content)
}

// FollowedBy checks the line right after the first occurrence of Anchor.
// The patch counts as applied when that line contains Marker. Occurrences of
// Marker anywhere else in the content are irrelevant. Content without the
// anchor has nothing to fix and also counts as applied.
type FollowedBy struct {
	Anchor string
	Marker string
}

func (f FollowedBy) Applied(content string) bool {
	idx := strings.Index(content, f.Anchor)
	if idx < 0 {
		return true
	}
	return strings.Contains(nextLine(content[idx+len(f.Anchor):]), f.Marker)
}

// nextLine returns the line following the first newline in s, without its
// terminator, or "" when s has no further line.
func nextLine(s string) string {
	nl := strings.IndexByte(s, '\n')
	if nl < 0 {
		return ""
	}
	s = s[nl+1:]
	if end := strings.IndexByte(s, '\n'); end >= 0 {
		s = s[:end]
	}
	return s
}
