package driver

import (
	"unicode/utf8"

	"github.com/naucera/iambic/grammar"
	"github.com/tliron/commonlog"
)

type memoKey struct {
	rule   int
	offset int
}

type memoEntry struct {
	accepted bool
	token    *Token
	end      int

	// speculative is true when the entry was computed where failures are not
	// reported. Such a failure may turn into a recovered match when a
	// committed caller evaluates the rule again.
	speculative bool
}

// Context is the state of a single parse. Tag functions and conversion
// functions receive it to inspect the parsed text and the external arguments.
type Context struct {
	gram      *grammar.Grammar
	tags      []TagFunc
	text      string
	args      []any
	offset    int
	maxErrors int
	errors    []*ParseError

	// recovering is true while terminals scan ahead for their next
	// occurrence after a syntax error.
	recovering bool

	// speculative is true where a failure is an expected outcome, such as in
	// an alternative of an ordered choice that is not the last one.
	speculative bool

	// lookahead counts the not-match expressions being evaluated.
	lookahead int

	// abandoned is true once the error budget has been exceeded or a tag
	// function has failed.
	abandoned bool
	tagErr    error

	memo map[memoKey]*memoEntry

	furthest int
	expected []*grammar.Expr
}

func newContext(g *grammar.Grammar, tags []TagFunc, maxErrors int, text string, args []any) *Context {
	return &Context{
		gram:      g,
		tags:      tags,
		text:      text,
		args:      args,
		maxErrors: maxErrors,
		memo:      map[memoKey]*memoEntry{},
		furthest:  -1,
	}
}

// Text returns the text being parsed.
func (c *Context) Text() string {
	return c.text
}

// Args returns the arguments passed to Parse.
func (c *Context) Args() []any {
	return c.args
}

func (c *Context) Offset() int {
	return c.offset
}

func (c *Context) ErrorCount() int {
	return len(c.errors)
}

func (c *Context) Errors() []*ParseError {
	return c.errors
}

func (c *Context) Recovering() bool {
	return c.recovering
}

func (c *Context) MatchedText(t *Token) string {
	return t.MatchedText(c.text)
}

// fail notes a terminal that did not match at the cursor. Only the failures
// at the furthest offset are kept; they become the expected terminals of the
// next syntax error.
func (c *Context) fail(e *grammar.Expr) {
	if c.lookahead > 0 {
		return
	}
	switch {
	case c.offset < c.furthest:
		return
	case c.offset > c.furthest:
		c.furthest = c.offset
		c.expected = nil
	}
	for _, x := range c.expected {
		if x == e {
			return
		}
	}
	c.expected = append(c.expected, e)
}

// recordError reports a syntax error found while matching failed in rule. It
// returns false when the error exceeds the budget and the parse is abandoned.
func (c *Context) recordError(rule *grammar.Rule, failed *grammar.Expr) bool {
	pe := &ParseError{
		Offset: c.offset,
		Rule:   rule.Name(),
	}
	if c.furthest >= c.offset && len(c.expected) > 0 {
		pe.Offset = c.furthest
		for _, e := range c.expected {
			pe.ExpectedTerminals = append(pe.ExpectedTerminals, e.String())
		}
	} else {
		pe.ExpectedTerminals = []string{failed.String()}
	}
	pe.Row, pe.Col = Position(c.text, pe.Offset)
	if pe.Offset < len(c.text) {
		r, _ := utf8.DecodeRuneInString(c.text[pe.Offset:])
		pe.Found = string(r)
	}
	c.furthest = -1
	c.expected = nil

	c.errors = append(c.errors, pe)

	log := commonlog.GetLogger("iambic.driver")
	log.Debugf("syntax error #%v in %v: %v", len(c.errors), rule.Name(), pe)
	if len(c.errors) > c.maxErrors {
		log.Debugf("abandoning the parse: %v errors exceed the budget of %v", len(c.errors), c.maxErrors)
		c.abandoned = true
		return false
	}
	return true
}

func (c *Context) abort(err error) {
	c.tagErr = err
	c.abandoned = true
}

// Position returns the zero-based row and column of offset in text. The
// column counts runes.
func Position(text string, offset int) (int, int) {
	row, col := 0, 0
	for _, r := range text[:offset] {
		if r == '\n' {
			row++
			col = 0
			continue
		}
		col++
	}
	return row, col
}
