package driver

import (
	"strings"

	"github.com/naucera/iambic/grammar"
)

// match evaluates e at the cursor on behalf of rule. On success the cursor
// moves past the matched text; on failure it is left where it was.
func (c *Context) match(e *grammar.Expr, rule *grammar.Rule) (bool, *Token) {
	if c.abandoned {
		return false, nil
	}

	switch e.Kind() {
	case grammar.KindLiteral:
		return c.matchLiteral(e)
	case grammar.KindPattern:
		return c.matchPattern(e)
	case grammar.KindCustom:
		return c.matchCustom(e)
	case grammar.KindRuleRef:
		return c.parseRule(c.gram.Rule(e.Index()))
	case grammar.KindSequence:
		return c.matchSequence(e, rule)
	case grammar.KindChoice:
		return c.matchChoice(e, rule)
	case grammar.KindZeroOrMore:
		return c.matchZeroOrMore(e, rule)
	case grammar.KindOneOrMore:
		return c.matchOneOrMore(e, rule)
	case grammar.KindOptional:
		return c.matchOptional(e, rule)
	case grammar.KindNotMatch:
		return c.matchNot(e, rule)
	}
	return false, nil
}

// parseRule is the only way rules get evaluated. Outcomes are memoized per
// offset except while recovering, and a result gets wrapped in a token of the
// rule only if no syntax error occurred while matching it.
func (c *Context) parseRule(r *grammar.Rule) (bool, *Token) {
	if c.abandoned {
		return false, nil
	}

	start := c.offset
	key := memoKey{
		rule:   r.Index(),
		offset: start,
	}
	useCache := !c.recovering
	if useCache {
		if m, ok := c.memo[key]; ok && (m.accepted || c.speculative || !m.speculative) {
			c.offset = m.end
			return m.accepted, m.token
		}
	}

	errCount := len(c.errors)
	ok, tok := c.match(r.Expr(), r)
	if c.abandoned {
		return false, tok
	}
	clean := len(c.errors) == errCount

	if ok && clean {
		rt := newRuleToken(r, start, c.offset)
		rt.add(tok)
		if err := c.annotate(rt); err != nil {
			c.abort(err)
			return false, rt
		}
		tok = rt
	}

	if useCache && clean {
		c.memo[key] = &memoEntry{
			accepted:    ok,
			token:       tok,
			end:         c.offset,
			speculative: c.speculative,
		}
	}

	return ok, tok
}

// annotate runs the tag function of the token's rule. Tags are computed only
// while the parse is free of syntax errors since a parse with errors is never
// converted.
func (c *Context) annotate(t *Token) error {
	fn := c.tags[t.rule.Index()]
	if fn == nil || len(c.errors) > 0 {
		return nil
	}
	v, err := fn(t, c, c.args)
	if err != nil {
		return &TagError{
			Rule:   t.rule.Name(),
			Offset: t.Offset,
			Cause:  err,
		}
	}
	t.Tag = v
	return nil
}

func (c *Context) accept(e *grammar.Expr, start, end int) (bool, *Token) {
	c.offset = end
	return true, newTerminalToken(e, start, end)
}

// Terminals in recovering mode look for their first occurrence at or after
// the cursor and resynchronize the parse when they find one.

func (c *Context) matchLiteral(e *grammar.Expr) (bool, *Token) {
	lit := e.Text()
	rest := c.text[c.offset:]
	if c.recovering {
		i := strings.Index(rest, lit)
		if i < 0 {
			return false, nil
		}
		c.recovering = false
		start := c.offset + i
		return c.accept(e, start, start+len(lit))
	}
	if !strings.HasPrefix(rest, lit) {
		c.fail(e)
		return false, nil
	}
	return c.accept(e, c.offset, c.offset+len(lit))
}

func (c *Context) matchPattern(e *grammar.Expr) (bool, *Token) {
	rest := c.text[c.offset:]
	if c.recovering {
		loc := e.Search().FindStringIndex(rest)
		if loc == nil {
			return false, nil
		}
		c.recovering = false
		return c.accept(e, c.offset+loc[0], c.offset+loc[1])
	}
	loc := e.Anchored().FindStringIndex(rest)
	if loc == nil {
		c.fail(e)
		return false, nil
	}
	return c.accept(e, c.offset, c.offset+loc[1])
}

func (c *Context) matchCustom(e *grammar.Expr) (bool, *Token) {
	m := c.gram.Matcher(e.Index())
	if c.recovering {
		start, n, ok := m.MatchLeniently(c.text, c.offset)
		if !ok {
			return false, nil
		}
		c.recovering = false
		return c.accept(e, start, start+n)
	}
	n, ok := m.Match(c.text, c.offset)
	if !ok {
		c.fail(e)
		return false, nil
	}
	return c.accept(e, c.offset, c.offset+n)
}

// matchSequence matches the sub-expressions in order. When one of them fails
// where failures are not expected, the error is recorded and the sequence
// recovers: the failed sub-expression and the following ones are matched
// leniently until one of them finds its text, and sub-expressions that still
// fail are skipped.
func (c *Context) matchSequence(e *grammar.Expr, rule *grammar.Rule) (bool, *Token) {
	start := c.offset
	tok := newGroupToken(e, start)
	resyncing := false
	for _, sub := range e.Subs() {
		ok, t := c.match(sub, rule)
		if c.abandoned {
			tok.add(t)
			tok.EndOffset = c.offset
			return false, tok
		}
		if ok {
			tok.add(t)
			if !c.recovering {
				resyncing = false
			}
			continue
		}
		if resyncing {
			continue
		}
		if c.recovering || c.speculative {
			c.offset = start
			return false, nil
		}

		if !c.recordError(rule, sub) {
			tok.EndOffset = c.offset
			return false, tok
		}
		c.recovering = true
		resyncing = true
		ok, t = c.match(sub, rule)
		if c.abandoned {
			tok.add(t)
			tok.EndOffset = c.offset
			return false, tok
		}
		if ok {
			tok.add(t)
			if !c.recovering {
				resyncing = false
			}
		}
	}
	if resyncing {
		c.recovering = false
	}
	tok.EndOffset = c.offset
	return true, tok
}

// matchChoice tries the alternatives in order. Every alternative but the last
// one is evaluated speculatively.
func (c *Context) matchChoice(e *grammar.Expr, rule *grammar.Rule) (bool, *Token) {
	start := c.offset
	alts := e.Subs()
	last := len(alts) - 1
	for i, alt := range alts {
		var ok bool
		var t *Token
		if i < last {
			ok, t = c.speculate(alt, rule)
		} else {
			ok, t = c.match(alt, rule)
		}
		if c.abandoned {
			return false, t
		}
		if ok {
			return true, t
		}
		c.offset = start
	}
	return false, nil
}

func (c *Context) matchZeroOrMore(e *grammar.Expr, rule *grammar.Rule) (bool, *Token) {
	tok := newGroupToken(e, c.offset)
	c.repeat(e.Sub(), rule, tok)
	tok.EndOffset = c.offset
	if c.abandoned {
		return false, tok
	}
	return true, tok
}

// matchOneOrMore evaluates the first iteration like its caller would and the
// following ones speculatively.
func (c *Context) matchOneOrMore(e *grammar.Expr, rule *grammar.Rule) (bool, *Token) {
	start := c.offset
	ok, t := c.match(e.Sub(), rule)
	if c.abandoned {
		return false, t
	}
	if !ok {
		c.offset = start
		return false, nil
	}
	tok := newGroupToken(e, start)
	tok.add(t)
	if c.offset > start {
		c.repeat(e.Sub(), rule, tok)
	}
	tok.EndOffset = c.offset
	if c.abandoned {
		return false, tok
	}
	return true, tok
}

// repeat matches sub until it fails or matches an empty text.
func (c *Context) repeat(sub *grammar.Expr, rule *grammar.Rule, tok *Token) {
	for {
		before := c.offset
		ok, t := c.speculate(sub, rule)
		if c.abandoned {
			tok.add(t)
			return
		}
		if !ok {
			c.offset = before
			return
		}
		tok.add(t)
		if c.offset == before {
			return
		}
	}
}

func (c *Context) matchOptional(e *grammar.Expr, rule *grammar.Rule) (bool, *Token) {
	start := c.offset
	ok, t := c.speculate(e.Sub(), rule)
	if c.abandoned {
		return false, t
	}
	if !ok {
		c.offset = start
		return true, nil
	}
	return true, t
}

// matchNot never consumes text nor produces a token, and its operand can
// neither report nor recover from syntax errors.
func (c *Context) matchNot(e *grammar.Expr, rule *grammar.Rule) (bool, *Token) {
	start := c.offset
	c.lookahead++
	ok, _ := c.speculate(e.Sub(), rule)
	c.lookahead--
	c.offset = start
	if c.abandoned {
		return false, nil
	}
	return !ok, nil
}

// speculate evaluates e where a failure is an expected outcome: errors are
// not recorded and terminals match exactly even while recovering.
func (c *Context) speculate(e *grammar.Expr, rule *grammar.Rule) (bool, *Token) {
	recovering, speculative := c.recovering, c.speculative
	c.recovering, c.speculative = false, true
	ok, t := c.match(e, rule)
	c.recovering, c.speculative = recovering, speculative
	return ok, t
}
