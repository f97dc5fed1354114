package driver

import (
	"github.com/naucera/iambic/grammar"
)

// Token is a node of a parse tree. It holds offsets into the parsed text
// rather than the text itself.
//
// A token is produced by a rule, by a terminal expression, or, transiently,
// by a composite expression. Tokens of composite expressions never appear as
// children: adding one to another token adds its children instead.
type Token struct {
	Offset    int
	EndOffset int

	// Tag is the value computed by the tag function of the rule that
	// produced the token.
	Tag any

	rule     *grammar.Rule
	expr     *grammar.Expr
	children []*Token
}

func newTerminalToken(expr *grammar.Expr, start, end int) *Token {
	return &Token{
		Offset:    start,
		EndOffset: end,
		expr:      expr,
	}
}

func newGroupToken(expr *grammar.Expr, start int) *Token {
	return &Token{
		Offset:    start,
		EndOffset: start,
		expr:      expr,
	}
}

func newRuleToken(rule *grammar.Rule, start, end int) *Token {
	return &Token{
		Offset:    start,
		EndOffset: end,
		rule:      rule,
	}
}

func (t *Token) add(child *Token) {
	if child == nil {
		return
	}
	if child.IsGroup() {
		t.children = append(t.children, child.children...)
		return
	}
	t.children = append(t.children, child)
}

// Rule returns the rule that produced the token or nil.
func (t *Token) Rule() *grammar.Rule {
	return t.rule
}

// Expr returns the expression that produced the token. It is nil for tokens
// produced by rules.
func (t *Token) Expr() *grammar.Expr {
	return t.expr
}

// Name returns the name of the producing rule, or the rendering of the
// producing expression.
func (t *Token) Name() string {
	switch {
	case t.rule != nil:
		return t.rule.Name()
	case t.expr != nil:
		return t.expr.String()
	}
	return ""
}

func (t *Token) IsTerminal() bool {
	return t.rule == nil && t.expr != nil && t.expr.Kind().IsTerminal()
}

// IsGroup reports whether the token was produced by a composite expression.
func (t *Token) IsGroup() bool {
	return t.rule == nil && (t.expr == nil || !t.expr.Kind().IsTerminal())
}

func (t *Token) Len() int {
	return t.EndOffset - t.Offset
}

func (t *Token) Children() []*Token {
	return t.children
}

func (t *Token) ChildCount() int {
	return len(t.children)
}

func (t *Token) Child(i int) *Token {
	return t.children[i]
}

// ChildTags returns the tags of the children in order.
func (t *Token) ChildTags() []any {
	tags := make([]any, len(t.children))
	for i, c := range t.children {
		tags[i] = c.Tag
	}
	return tags
}

// ChildrenOf returns the children produced by the rule named name.
func (t *Token) ChildrenOf(name string) []*Token {
	var cs []*Token
	for _, c := range t.children {
		if c.rule != nil && c.rule.Name() == name {
			cs = append(cs, c)
		}
	}
	return cs
}

// MatchedText returns the part of text the token spans. text must be the
// text the token was parsed from.
func (t *Token) MatchedText(text string) string {
	return text[t.Offset:t.EndOffset]
}
