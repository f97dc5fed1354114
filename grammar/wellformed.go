package grammar

// checkWellFormed rejects left recursion. For every rule it walks the left
// edge of the rule's expression, that is, every sub-expression that may be
// tried before any text has been consumed, and fails when a rule already on
// the walk is reached again. It returns the nullability of every rule.
func checkWellFormed(g *Grammar) ([]bool, error) {
	c := &wellFormedChecker{
		g:        g,
		onPath:   make([]bool, len(g.rules)),
		done:     make([]bool, len(g.rules)),
		nullable: make([]bool, len(g.rules)),
	}
	for i, r := range g.rules {
		if c.done[i] {
			continue
		}
		c.onPath[i] = true
		n, err := c.check(r.expr, r.name)
		if err != nil {
			return nil, err
		}
		c.onPath[i] = false
		c.done[i] = true
		c.nullable[i] = n
	}
	return c.nullable, nil
}

type wellFormedChecker struct {
	g        *Grammar
	onPath   []bool
	done     []bool
	nullable []bool
}

// check returns whether e can succeed without consuming text. base is the
// name of the rule whose expression holds e.
func (c *wellFormedChecker) check(e *Expr, base string) (bool, error) {
	switch e.kind {
	case KindLiteral:
		return e.text == "", nil
	case KindPattern:
		return e.anchored.MatchString(""), nil
	case KindCustom:
		return false, nil
	case KindRuleRef:
		i := e.index
		if c.onPath[i] {
			return false, &CircularDefinitionError{
				Rule:   base,
				Target: e.text,
			}
		}
		if c.done[i] {
			return c.nullable[i], nil
		}
		target := c.g.rules[i]
		c.onPath[i] = true
		n, err := c.check(target.expr, target.name)
		if err != nil {
			return false, err
		}
		c.onPath[i] = false
		c.done[i] = true
		c.nullable[i] = n
		return n, nil
	case KindSequence:
		for _, sub := range e.subs {
			n, err := c.check(sub, base)
			if err != nil {
				return false, err
			}
			if !n {
				return false, nil
			}
		}
		return true, nil
	case KindChoice:
		nullable := false
		for _, alt := range e.subs {
			n, err := c.check(alt, base)
			if err != nil {
				return false, err
			}
			nullable = nullable || n
		}
		return nullable, nil
	case KindOneOrMore:
		return c.check(e.subs[0], base)
	case KindZeroOrMore, KindOptional, KindNotMatch:
		if _, err := c.check(e.subs[0], base); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}
