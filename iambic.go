// Package iambic compiles grammars written in a parsing expression grammar
// language into parsers.
//
//	p, err := iambic.Compile(`Sum := Number ('+' Number)*  Number := /\d+/`)
//	...
//	tok, err := p.Parse("1+2")
//
// The grammar language is described by itself in spec.MetaGrammar.
package iambic

import (
	"github.com/naucera/iambic/driver"
	"github.com/naucera/iambic/grammar"
	"github.com/naucera/iambic/spec"
)

type config struct {
	compileOpts []spec.CompileOption
	parserOpts  []driver.ParserOption
}

type Option func(c *config)

// MaxErrors sets the number of syntax errors a parse recovers from.
func MaxErrors(n int) Option {
	return func(c *config) {
		c.parserOpts = append(c.parserOpts, driver.MaxErrors(n))
	}
}

// Tag registers a tag function for a rule.
func Tag(rule string, fn driver.TagFunc) Option {
	return func(c *config) {
		c.parserOpts = append(c.parserOpts, driver.Tag(rule, fn))
	}
}

// Matchers registers the custom matchers a grammar refers to.
func Matchers(ms ...grammar.Matcher) Option {
	return func(c *config) {
		c.compileOpts = append(c.compileOpts, spec.Matchers(ms...))
	}
}

// Compile compiles a grammar into a parser returning the tagged parse tree.
func Compile(src string, opts ...Option) (*driver.Parser[*driver.Token], error) {
	return CompileTo[*driver.Token](src, func(tok *driver.Token, _ *driver.Context, _ []any) (*driver.Token, error) {
		return tok, nil
	}, opts...)
}

// CompileTo compiles a grammar into a parser converting the tagged parse tree
// with convert.
func CompileTo[T any](src string, convert driver.ConvertFunc[T], opts ...Option) (*driver.Parser[T], error) {
	c := &config{}
	for _, opt := range opts {
		opt(c)
	}

	g, err := spec.Compile(src, c.compileOpts...)
	if err != nil {
		return nil, err
	}
	return driver.NewParser(g, convert, c.parserOpts...)
}
