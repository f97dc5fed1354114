package grammar

import (
	"fmt"
	"regexp"
	"strings"
)

type Kind int

const (
	KindLiteral Kind = iota
	KindPattern
	KindCustom
	KindRuleRef
	KindSequence
	KindChoice
	KindZeroOrMore
	KindOneOrMore
	KindOptional
	KindNotMatch
)

var kindNames = [...]string{
	KindLiteral:    "literal",
	KindPattern:    "pattern",
	KindCustom:     "custom matcher",
	KindRuleRef:    "rule reference",
	KindSequence:   "sequence",
	KindChoice:     "ordered choice",
	KindZeroOrMore: "zero-or-more",
	KindOneOrMore:  "one-or-more",
	KindOptional:   "optional",
	KindNotMatch:   "not-match",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// IsTerminal reports whether expressions of this kind consume text by themselves.
func (k Kind) IsTerminal() bool {
	return k == KindLiteral || k == KindPattern || k == KindCustom
}

// IsComposite reports whether expressions of this kind own sub-expressions.
func (k Kind) IsComposite() bool {
	return k >= KindSequence
}

// Expr is a node of a parse expression graph. The set of variants is closed and
// selected by Kind. An Expr is immutable once the grammar holding it has been
// built.
type Expr struct {
	kind Kind

	// text holds the literal text, the pattern source, the matcher name or the
	// referenced rule name depending on kind.
	text string
	subs []*Expr

	anchored *regexp.Regexp
	search   *regexp.Regexp
	reErr    error

	// index is the resolved rule or matcher index, -1 before linking.
	index int
	owner *Grammar
}

func newExpr(kind Kind, text string, subs ...*Expr) *Expr {
	return &Expr{
		kind:  kind,
		text:  text,
		subs:  subs,
		index: -1,
	}
}

// Literal matches text exactly.
func Literal(text string) *Expr {
	return newExpr(KindLiteral, text)
}

// Pattern matches a regular expression in dot-matches-newline mode. An invalid
// source is reported when the grammar is built; use NewPattern to check it
// right away.
//
// The expression sees the text from the cursor on, so ^, \A and \b treat the
// cursor as the start of the text: 'a' /^b/ accepts "ab".
func Pattern(src string) *Expr {
	e := newExpr(KindPattern, src)
	e.anchored, e.reErr = regexp.Compile(`^(?s:` + src + `)`)
	if e.reErr == nil {
		e.search, e.reErr = regexp.Compile(`(?s:` + src + `)`)
	}
	if e.reErr != nil {
		e.anchored = nil
		e.search = nil
	}
	return e
}

func NewPattern(src string) (*Expr, error) {
	e := Pattern(src)
	if e.reErr != nil {
		return nil, &InvalidPatternError{
			Pattern: src,
			Cause:   e.reErr,
		}
	}
	return e, nil
}

// Custom delegates matching to the matcher registered under name.
func Custom(name string) *Expr {
	return newExpr(KindCustom, name)
}

// Ref refers to the rule named name. The reference is resolved when the
// grammar is built.
func Ref(name string) *Expr {
	return newExpr(KindRuleRef, name)
}

func Seq(subs ...*Expr) *Expr {
	return newExpr(KindSequence, "", subs...)
}

func Choice(alts ...*Expr) *Expr {
	return newExpr(KindChoice, "", alts...)
}

func ZeroOrMore(e *Expr) *Expr {
	return newExpr(KindZeroOrMore, "", nonNil(e)...)
}

func OneOrMore(e *Expr) *Expr {
	return newExpr(KindOneOrMore, "", nonNil(e)...)
}

func Optional(e *Expr) *Expr {
	return newExpr(KindOptional, "", nonNil(e)...)
}

// Not succeeds without consuming text when e does not match.
func Not(e *Expr) *Expr {
	return newExpr(KindNotMatch, "", nonNil(e)...)
}

// And succeeds without consuming text when e matches.
func And(e *Expr) *Expr {
	return Not(Not(e))
}

func nonNil(e *Expr) []*Expr {
	if e == nil {
		return nil
	}
	return []*Expr{e}
}

func (e *Expr) Kind() Kind {
	return e.kind
}

// Text returns the literal text, the pattern source, the matcher name or the
// referenced rule name.
func (e *Expr) Text() string {
	return e.text
}

func (e *Expr) Subs() []*Expr {
	return e.subs
}

// Sub returns the single operand of a quantifier or a lookahead.
func (e *Expr) Sub() *Expr {
	if len(e.subs) == 0 {
		return nil
	}
	return e.subs[0]
}

// Index returns the arena index of the referenced rule or matcher.
func (e *Expr) Index() int {
	return e.index
}

// Anchored returns the pattern compiled to match at the start of a text only.
func (e *Expr) Anchored() *regexp.Regexp {
	return e.anchored
}

// Search returns the pattern compiled to match anywhere in a text.
func (e *Expr) Search() *regexp.Regexp {
	return e.search
}

// IsAnd reports whether e is a positive lookahead, that is, a double negation.
func (e *Expr) IsAnd() bool {
	return e.kind == KindNotMatch && len(e.subs) == 1 && e.subs[0].kind == KindNotMatch && len(e.subs[0].subs) == 1
}

// String renders e in the grammar language. Compiling the rendered text yields
// an equivalent expression that renders identically.
func (e *Expr) String() string {
	var b strings.Builder
	e.write(&b)
	return b.String()
}

func (e *Expr) write(b *strings.Builder) {
	switch e.kind {
	case KindLiteral:
		b.WriteString(EscapeLiteral(e.text))
	case KindPattern:
		b.WriteString(EscapePattern(e.text))
	case KindCustom:
		b.WriteString("{")
		b.WriteString(e.text)
		b.WriteString("}")
	case KindRuleRef:
		b.WriteString(e.text)
	case KindSequence, KindChoice:
		sep := " "
		if e.kind == KindChoice {
			sep = " || "
		}
		b.WriteString("(")
		for i, sub := range e.subs {
			if i > 0 {
				b.WriteString(sep)
			}
			sub.write(b)
		}
		b.WriteString(")")
	case KindZeroOrMore, KindOneOrMore, KindOptional:
		if sub := e.Sub(); sub != nil {
			writeOperand(b, sub, sub.kind == KindNotMatch || isQuantifier(sub.kind))
		}
		switch e.kind {
		case KindZeroOrMore:
			b.WriteString("*")
		case KindOneOrMore:
			b.WriteString("+")
		default:
			b.WriteString("?")
		}
	case KindNotMatch:
		sub := e.Sub()
		if e.IsAnd() {
			b.WriteString("&")
			sub = sub.Sub()
		} else {
			b.WriteString("!")
		}
		if sub != nil {
			writeOperand(b, sub, sub.kind == KindNotMatch)
		}
	}
}

func writeOperand(b *strings.Builder, e *Expr, paren bool) {
	if paren {
		b.WriteString("(")
	}
	e.write(b)
	if paren {
		b.WriteString(")")
	}
}

func isQuantifier(k Kind) bool {
	return k == KindZeroOrMore || k == KindOneOrMore || k == KindOptional
}

// walk visits e and its sub-expressions depth first.
func (e *Expr) walk(fn func(e *Expr) error) error {
	if err := fn(e); err != nil {
		return err
	}
	for _, sub := range e.subs {
		if sub == nil {
			continue
		}
		if err := sub.walk(fn); err != nil {
			return err
		}
	}
	return nil
}
