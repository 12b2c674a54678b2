package query

import (
	"regexp"
	"sync"
)

var (
	patMu    sync.Mutex
	patCache = map[string]*regexp.Regexp{}
)

func patternMatches(pattern, s string) bool {
	patMu.Lock()
	re, ok := patCache[pattern]
	if !ok {
		re, _ = regexp.Compile(pattern)
		patCache[pattern] = re
	}
	patMu.Unlock()
	if re == nil {
		return false
	}
	return re.MatchString(s)
}
