package grammar

import (
	"errors"
	"fmt"
)

var (
	ErrNoRules    = errors.New("a grammar needs at least one rule")
	ErrNilExpr    = errors.New("a rule or a composite expression holds a nil expression")
	ErrNilMatcher = errors.New("a nil matcher cannot be registered")
)

// EmptyCompositeError reports a composite expression without sub-expressions.
type EmptyCompositeError struct {
	Rule string
	Kind Kind
}

func (e *EmptyCompositeError) Error() string {
	return fmt.Sprintf("rule %v: an empty %v is not allowed", e.Rule, e.Kind)
}

// CircularDefinitionError reports left recursion: Target is reached again from
// the expression of Rule without consuming any text.
type CircularDefinitionError struct {
	Rule   string
	Target string
}

func (e *CircularDefinitionError) Error() string {
	if e.Rule == e.Target {
		return fmt.Sprintf("rule %v is left-recursive", e.Rule)
	}
	return fmt.Sprintf("rule %v refers back to %v without consuming any text; left recursion is not allowed", e.Rule, e.Target)
}

// UndefinedConstructError reports a reference to a rule or a matcher that the
// grammar does not define.
type UndefinedConstructError struct {
	Name string
	Rule string
	Kind Kind
}

func (e *UndefinedConstructError) Error() string {
	what := "rule"
	if e.Kind == KindCustom {
		what = "matcher"
	}
	if e.Rule == "" {
		return fmt.Sprintf("undefined %v: %v", what, e.Name)
	}
	return fmt.Sprintf("rule %v: undefined %v: %v", e.Rule, what, e.Name)
}

type InvalidPatternError struct {
	Rule    string
	Pattern string
	Cause   error
}

func (e *InvalidPatternError) Error() string {
	if e.Rule == "" {
		return fmt.Sprintf("invalid pattern /%v/: %v", e.Pattern, e.Cause)
	}
	return fmt.Sprintf("rule %v: invalid pattern /%v/: %v", e.Rule, e.Pattern, e.Cause)
}

func (e *InvalidPatternError) Unwrap() error {
	return e.Cause
}

// DuplicateConstructError reports two rules or two matchers sharing a name.
type DuplicateConstructError struct {
	Name string
}

func (e *DuplicateConstructError) Error() string {
	return fmt.Sprintf("duplicate name: %v", e.Name)
}

// OwnedRuleError reports a rule or an expression that already belongs to
// another grammar.
type OwnedRuleError struct {
	Rule string
}

func (e *OwnedRuleError) Error() string {
	return fmt.Sprintf("rule %v already belongs to another grammar", e.Rule)
}
