package spec

import (
	"fmt"

	"github.com/naucera/iambic/driver"
	"github.com/naucera/iambic/grammar"
)

// The tag functions below build the expression of every construct of the
// grammar language from the tags of its parts.

func convertGrammar(tok *driver.Token, _ *driver.Context, _ []any) ([]*definition, error) {
	defs, ok := tok.Tag.([]*definition)
	if !ok {
		return nil, fmt.Errorf("a grammar text yielded no definitions")
	}
	return defs, nil
}

func tagGrammar(tok *driver.Token, _ *driver.Context, _ []any) (any, error) {
	var defs []*definition
	for _, c := range tok.ChildrenOf("Definition") {
		defs = append(defs, c.Tag.(*definition))
	}
	return defs, nil
}

func tagDefinition(tok *driver.Token, _ *driver.Context, _ []any) (any, error) {
	return &definition{
		name:   tok.Child(0).Tag.(string),
		expr:   tok.Child(2).Tag.(*grammar.Expr),
		offset: tok.Offset,
	}, nil
}

func tagFirstChild(tok *driver.Token, _ *driver.Context, _ []any) (any, error) {
	return tok.Child(0).Tag, nil
}

func tagOrderedChoice(tok *driver.Token, _ *driver.Context, _ []any) (any, error) {
	var alts []*grammar.Expr
	for _, c := range tok.ChildrenOf("Sequence") {
		alts = append(alts, c.Tag.(*grammar.Expr))
	}
	return grammar.Choice(alts...), nil
}

// tagSequence collapses a sequence of a single expression into the expression.
func tagSequence(tok *driver.Token, _ *driver.Context, _ []any) (any, error) {
	subs := make([]*grammar.Expr, tok.ChildCount())
	for i, c := range tok.Children() {
		subs[i] = c.Tag.(*grammar.Expr)
	}
	if len(subs) == 1 {
		return subs[0], nil
	}
	return grammar.Seq(subs...), nil
}

func tagPrefix(tok *driver.Token, _ *driver.Context, _ []any) (any, error) {
	n := tok.ChildCount()
	e := tok.Child(n - 1).Tag.(*grammar.Expr)
	if n == 1 {
		return e, nil
	}
	if tok.Child(0).Rule().Name() == "AND" {
		return grammar.And(e), nil
	}
	return grammar.Not(e), nil
}

func tagSuffix(tok *driver.Token, _ *driver.Context, _ []any) (any, error) {
	e := tok.Child(0).Tag.(*grammar.Expr)
	if tok.ChildCount() == 1 {
		return e, nil
	}
	switch tok.Child(1).Rule().Name() {
	case "QUESTION":
		return grammar.Optional(e), nil
	case "STAR":
		return grammar.ZeroOrMore(e), nil
	default:
		return grammar.OneOrMore(e), nil
	}
}

func tagPrimary(tok *driver.Token, _ *driver.Context, _ []any) (any, error) {
	first := tok.Child(0)
	switch first.Rule().Name() {
	case "Identifier":
		return grammar.Ref(first.Tag.(string)), nil
	case "OPEN":
		return tok.Child(1).Tag, nil
	default:
		return first.Tag, nil
	}
}

func tagIdentifier(tok *driver.Token, ctx *driver.Context, _ []any) (any, error) {
	return ctx.MatchedText(tok.Child(0)), nil
}

func tagBasicLiteral(tok *driver.Token, ctx *driver.Context, _ []any) (any, error) {
	return grammar.Literal(grammar.UnescapeLiteral(ctx.MatchedText(tok.Child(0)))), nil
}

func tagRegexLiteral(tok *driver.Token, ctx *driver.Context, _ []any) (any, error) {
	return grammar.NewPattern(grammar.UnescapePattern(ctx.MatchedText(tok.Child(0))))
}

func tagCustomMatcher(tok *driver.Token, ctx *driver.Context, _ []any) (any, error) {
	text := ctx.MatchedText(tok.Child(0))
	return grammar.Custom(text[1 : len(text)-1]), nil
}
