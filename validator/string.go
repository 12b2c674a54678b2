package validator

import (
	"net/mail"
	"net/url"
	"regexp"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/tombi-toml/tombi/diagnostic"
	"github.com/tombi-toml/tombi/schema"
)

// validateString applies minLength/maxLength (byte length, spec.md §4.5
// "String"), pattern, and the four supported format validators.
func (w *walker) validateString(f frame, vs *schema.ValueSchema) {
	s := f.value.Str
	n := len(s)

	if vs.MinLength != nil && n < *vs.MinLength {
		w.report(diagnostic.StringMinLength, f.value.Range, "string is shorter than minLength", f.value.Directive)
	}
	if vs.MaxLength != nil && n > *vs.MaxLength {
		w.report(diagnostic.StringMaxLength, f.value.Range, "string is longer than maxLength", f.value.Directive)
	}
	if vs.Pattern != "" {
		re, err := compilePattern(vs.Pattern)
		if err != nil || !re.MatchString(s) {
			w.report(diagnostic.StringPattern, f.value.Range, "string does not match pattern "+vs.Pattern, f.value.Directive)
		}
	}
	if vs.Format != "" && !formatMatches(vs.Format, s) {
		w.report(diagnostic.StringFormat, f.value.Range, "string is not a valid "+vs.Format, f.value.Directive)
	}
}

// compilePattern caches compiled `pattern` regexes: a table schema may
// apply the same pattern to many sibling values (spec.md §6 "pattern").
var (
	patternCacheMu sync.Mutex
	patternCache   = map[string]*regexp.Regexp{}
)

func compilePattern(pat string) (*regexp.Regexp, error) {
	patternCacheMu.Lock()
	defer patternCacheMu.Unlock()
	if re, ok := patternCache[pat]; ok {
		return re, nil
	}
	re, err := regexp.Compile(pat)
	if err != nil {
		return nil, err
	}
	patternCache[pat] = re
	return re, nil
}

func formatMatches(format, s string) bool {
	switch format {
	case "email":
		_, err := mail.ParseAddress(s)
		return err == nil
	case "hostname":
		return isValidHostname(s)
	case "uri":
		u, err := url.Parse(s)
		return err == nil && u.IsAbs()
	case "uuid":
		_, err := uuid.Parse(s)
		return err == nil
	}
	return true
}

func isValidHostname(s string) bool {
	if s == "" || len(s) > 253 {
		return false
	}
	labels := strings.Split(s, ".")
	for _, l := range labels {
		if l == "" || len(l) > 63 {
			return false
		}
		for i, r := range l {
			ok := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-'
			if !ok || (r == '-' && (i == 0 || i == len(l)-1)) {
				return false
			}
		}
	}
	return true
}
