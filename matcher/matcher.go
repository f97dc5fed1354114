// Package matcher provides custom matchers that grammars refer to with the
// {Name} syntax.
package matcher

import (
	"unicode/utf8"

	"github.com/naucera/iambic/grammar"
)

// MatchFunc returns the length of the text matched at offset.
type MatchFunc func(text string, offset int) (int, bool)

type funcMatcher struct {
	name string
	fn   MatchFunc
}

// Func makes a matcher of a function. Its lenient matching tries fn at every
// character boundary from the offset onwards.
func Func(name string, fn MatchFunc) grammar.Matcher {
	return &funcMatcher{
		name: name,
		fn:   fn,
	}
}

func (m *funcMatcher) Name() string {
	return m.name
}

func (m *funcMatcher) Match(text string, offset int) (int, bool) {
	return m.fn(text, offset)
}

func (m *funcMatcher) MatchLeniently(text string, offset int) (int, int, bool) {
	return scan(text, offset, m.fn)
}

// scan finds the first offset from offset onwards where fn matches.
func scan(text string, offset int, fn MatchFunc) (int, int, bool) {
	for i := offset; ; {
		if n, ok := fn(text, i); ok {
			return i, n, true
		}
		if i >= len(text) {
			return 0, 0, false
		}
		_, size := utf8.DecodeRuneInString(text[i:])
		i += size
	}
}
