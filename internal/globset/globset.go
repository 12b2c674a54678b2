// Package globset translates an `include` glob pattern (spec.md §4.3,
// §6 "Source-schema binding") into an anchored regexp, the same
// translate-to-regexp strategy the teacher's validate.go/query.go use
// throughout for pattern-shaped text. No pack repo depends on a
// dedicated glob-matching library as application code, so this stays on
// the standard library (see DESIGN.md).
package globset

import (
	"regexp"
	"strings"
)

// Glob is a compiled include pattern.
type Glob struct {
	re  *regexp.Regexp
	raw string
}

// Compile translates pattern into a Glob. A pattern without `*` is
// implicitly prefixed with `**/` (spec.md §6), matching it anywhere
// under the base directory rather than only at the root.
func Compile(pattern string) (*Glob, error) {
	raw := pattern
	if !strings.Contains(pattern, "*") {
		pattern = "**/" + pattern
	}
	re, err := regexp.Compile("^" + translate(pattern) + "$")
	if err != nil {
		return nil, err
	}
	return &Glob{re: re, raw: raw}, nil
}

// Match reports whether path satisfies the glob.
func (g *Glob) Match(path string) bool { return g.re.MatchString(path) }

func (g *Glob) String() string { return g.raw }

// translate converts one glob pattern into the body of an anchored
// regexp: `**` matches across path separators, `*` matches within one
// segment, `?` matches one rune, and everything else is escaped.
func translate(pattern string) string {
	var b strings.Builder
	runes := []rune(pattern)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch r {
		case '*':
			if i+1 < len(runes) && runes[i+1] == '*' {
				b.WriteString("(?:.*)")
				i++
				if i+1 < len(runes) && runes[i+1] == '/' {
					i++
				}
			} else {
				b.WriteString("[^/]*")
			}
		case '?':
			b.WriteString("[^/]")
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	return b.String()
}
