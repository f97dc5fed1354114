package grammar

import (
	"fmt"
	"strings"
)

// Matcher recognises text that the grammar language cannot describe with
// literals and patterns. A Matcher is shared by every parse of a grammar, so
// it must be safe for concurrent use.
type Matcher interface {
	Name() string

	// Match returns the length of the text matched at offset.
	Match(text string, offset int) (n int, ok bool)

	// MatchLeniently returns the first match found at or after offset.
	MatchLeniently(text string, offset int) (start, n int, ok bool)
}

type Rule struct {
	name  string
	expr  *Expr
	index int
	owner *Grammar
}

func NewRule(name string, expr *Expr) *Rule {
	return &Rule{
		name:  name,
		expr:  expr,
		index: -1,
	}
}

func (r *Rule) Name() string {
	return r.name
}

func (r *Rule) Expr() *Expr {
	return r.expr
}

// Index returns the position of the rule in its grammar, -1 when the rule
// does not belong to a grammar yet.
func (r *Rule) Index() int {
	return r.index
}

func (r *Rule) String() string {
	return fmt.Sprintf("%v := %v", r.name, r.expr)
}

// Grammar is a linked, well-formed set of rules. The first rule is the root.
// A Grammar is read-only and can be shared between goroutines.
type Grammar struct {
	rules        []*Rule
	ruleIndex    map[string]int
	matchers     []Matcher
	matcherIndex map[string]int
	nullable     []bool
}

type Builder struct {
	Rules    []*Rule
	Matchers []Matcher
}

// New builds a grammar that needs no matchers.
func New(rules ...*Rule) (*Grammar, error) {
	b := Builder{
		Rules: rules,
	}
	return b.Build()
}

func (b *Builder) Build() (*Grammar, error) {
	if len(b.Rules) == 0 {
		return nil, ErrNoRules
	}

	g := &Grammar{
		ruleIndex:    map[string]int{},
		matcherIndex: map[string]int{},
	}
	for _, r := range b.Rules {
		if r == nil {
			return nil, ErrNilExpr
		}
		if r.owner != nil && r.owner != g {
			return nil, &OwnedRuleError{
				Rule: r.name,
			}
		}
		if _, ok := g.ruleIndex[r.name]; ok {
			return nil, &DuplicateConstructError{
				Name: r.name,
			}
		}
		g.ruleIndex[r.name] = len(g.rules)
		g.rules = append(g.rules, r)
	}
	for _, m := range b.Matchers {
		if m == nil {
			return nil, ErrNilMatcher
		}
		if _, ok := g.matcherIndex[m.Name()]; ok {
			return nil, &DuplicateConstructError{
				Name: m.Name(),
			}
		}
		g.matcherIndex[m.Name()] = len(g.matchers)
		g.matchers = append(g.matchers, m)
	}

	for _, r := range g.rules {
		if err := g.validate(r); err != nil {
			return nil, err
		}
	}
	for _, r := range g.rules {
		if err := g.link(r); err != nil {
			return nil, err
		}
	}

	nullable, err := checkWellFormed(g)
	if err != nil {
		return nil, err
	}
	g.nullable = nullable

	for i, r := range g.rules {
		r.index = i
		r.owner = g
		r.expr.walk(func(e *Expr) error {
			e.owner = g
			return nil
		})
	}

	return g, nil
}

func (g *Grammar) validate(r *Rule) error {
	if r.expr == nil {
		return fmt.Errorf("rule %v: %w", r.name, ErrNilExpr)
	}
	return r.expr.walk(func(e *Expr) error {
		if e.owner != nil && e.owner != g {
			return &OwnedRuleError{
				Rule: r.name,
			}
		}
		if e.kind.IsComposite() {
			if len(e.subs) == 0 {
				return &EmptyCompositeError{
					Rule: r.name,
					Kind: e.kind,
				}
			}
			for _, sub := range e.subs {
				if sub == nil {
					return fmt.Errorf("rule %v: %w", r.name, ErrNilExpr)
				}
			}
		}
		if e.kind == KindPattern && e.reErr != nil {
			return &InvalidPatternError{
				Rule:    r.name,
				Pattern: e.text,
				Cause:   e.reErr,
			}
		}
		return nil
	})
}

// link resolves rule references and custom matchers by name.
func (g *Grammar) link(r *Rule) error {
	return r.expr.walk(func(e *Expr) error {
		var index map[string]int
		switch e.kind {
		case KindRuleRef:
			index = g.ruleIndex
		case KindCustom:
			index = g.matcherIndex
		default:
			return nil
		}
		i, ok := index[e.text]
		if !ok {
			return &UndefinedConstructError{
				Name: e.text,
				Rule: r.name,
				Kind: e.kind,
			}
		}
		e.index = i
		return nil
	})
}

func (g *Grammar) Root() *Rule {
	return g.rules[0]
}

func (g *Grammar) Rules() []*Rule {
	return g.rules
}

func (g *Grammar) Rule(index int) *Rule {
	return g.rules[index]
}

func (g *Grammar) RuleByName(name string) (*Rule, bool) {
	i, ok := g.ruleIndex[name]
	if !ok {
		return nil, false
	}
	return g.rules[i], true
}

func (g *Grammar) Matchers() []Matcher {
	return g.matchers
}

func (g *Grammar) Matcher(index int) Matcher {
	return g.matchers[index]
}

// Nullable reports whether the rule at index can succeed without consuming
// any text. Custom matchers are assumed to consume text.
func (g *Grammar) Nullable(index int) bool {
	return g.nullable[index]
}

// String renders the grammar in the grammar language, one rule per line.
func (g *Grammar) String() string {
	var b strings.Builder
	for _, r := range g.rules {
		b.WriteString(r.String())
		b.WriteString("\n")
	}
	return b.String()
}
