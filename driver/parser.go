package driver

import (
	"errors"
	"fmt"

	"github.com/naucera/iambic/grammar"
)

// TagFunc computes the tag of a token produced by a rule. The tags of the
// token's descendants have already been computed when it is called.
type TagFunc func(tok *Token, ctx *Context, args []any) (any, error)

// ConvertFunc turns the tagged root token into the result of a parse.
type ConvertFunc[T any] func(tok *Token, ctx *Context, args []any) (T, error)

type parserConfig struct {
	maxErrors int
	tags      map[string]TagFunc
	tagOrder  []string
}

type ParserOption func(c *parserConfig) error

// MaxErrors sets how many syntax errors a parse recovers from before it gives
// up. With the default of 0 the first syntax error ends the parse.
func MaxErrors(n int) ParserOption {
	return func(c *parserConfig) error {
		if n < 0 {
			return fmt.Errorf("the error budget must be 0 or greater: %v", n)
		}
		c.maxErrors = n
		return nil
	}
}

// Tag registers a tag function for the rule named rule.
func Tag(rule string, fn TagFunc) ParserOption {
	return func(c *parserConfig) error {
		if fn == nil {
			return fmt.Errorf("a tag function of %v is nil", rule)
		}
		if _, ok := c.tags[rule]; !ok {
			c.tagOrder = append(c.tagOrder, rule)
		}
		c.tags[rule] = fn
		return nil
	}
}

// Parser runs a grammar against texts and converts the resulting parse trees
// into values of type T.
//
// Tag functions must be registered before the first call of Parse. After
// that, a Parser can be used by multiple goroutines at once.
type Parser[T any] struct {
	gram      *grammar.Grammar
	convert   ConvertFunc[T]
	maxErrors int
	tags      []TagFunc
}

func NewParser[T any](g *grammar.Grammar, convert ConvertFunc[T], opts ...ParserOption) (*Parser[T], error) {
	if g == nil {
		return nil, errors.New("a parser needs a grammar")
	}
	if convert == nil {
		return nil, errors.New("a parser needs a conversion function")
	}

	c := &parserConfig{
		tags: map[string]TagFunc{},
	}
	for _, opt := range opts {
		err := opt(c)
		if err != nil {
			return nil, err
		}
	}

	p := &Parser[T]{
		gram:      g,
		convert:   convert,
		maxErrors: c.maxErrors,
		tags:      make([]TagFunc, len(g.Rules())),
	}
	for _, name := range c.tagOrder {
		err := p.Tagging(name, c.tags[name])
		if err != nil {
			return nil, err
		}
	}

	return p, nil
}

// Tagging registers a tag function for the rule named rule, replacing the
// one registered before.
func (p *Parser[T]) Tagging(rule string, fn TagFunc) error {
	r, ok := p.gram.RuleByName(rule)
	if !ok {
		return &grammar.UndefinedConstructError{
			Name: rule,
			Kind: grammar.KindRuleRef,
		}
	}
	p.tags[r.Index()] = fn
	return nil
}

func (p *Parser[T]) Grammar() *grammar.Grammar {
	return p.gram
}

// String renders the grammar of the parser.
func (p *Parser[T]) String() string {
	return p.gram.String()
}

// Parse parses text and converts the tagged parse tree. args are passed to
// every tag function and to the conversion function.
//
// When a syntax error occurs, Parse returns a *SyntaxError holding the partial
// parse tree, whether or not the parse recovered from the errors.
func (p *Parser[T]) Parse(text string, args ...any) (T, error) {
	tok, ctx, err := p.run(text, args)
	if err != nil {
		var zero T
		return zero, err
	}
	return p.convert(tok, ctx, ctx.args)
}

// ParseToken parses text and returns the tagged parse tree without converting
// it. On a syntax error the partial tree is returned along with the error.
func (p *Parser[T]) ParseToken(text string, args ...any) (*Token, error) {
	tok, _, err := p.run(text, args)
	return tok, err
}

func (p *Parser[T]) run(text string, args []any) (*Token, *Context, error) {
	ctx := newContext(p.gram, p.tags, p.maxErrors, text, args)
	root := p.gram.Root()
	ok, tok := ctx.parseRule(root)
	if ctx.tagErr != nil {
		return nil, ctx, ctx.tagErr
	}
	if !ok && !ctx.abandoned && len(ctx.errors) == 0 {
		ctx.offset = 0
		ctx.recordError(root, root.Expr())
	}
	if tok == nil {
		tok = newGroupToken(nil, 0)
	}
	if len(ctx.errors) > 0 {
		return tok, ctx, &SyntaxError{
			Errors:    ctx.errors,
			Token:     tok,
			Abandoned: ctx.abandoned,
			MaxErrors: p.maxErrors,
		}
	}
	return tok, ctx, nil
}
