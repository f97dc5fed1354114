package spec

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/naucera/iambic/driver"
	verr "github.com/naucera/iambic/error"
	"github.com/naucera/iambic/grammar"
	"github.com/tliron/commonlog"
)

type definition struct {
	name   string
	expr   *grammar.Expr
	offset int
}

var meta struct {
	once sync.Once
	g    *grammar.Grammar
	err  error
}

func metaGrammar() (*grammar.Grammar, error) {
	meta.once.Do(func() {
		meta.g, meta.err = Bootstrap()
	})
	return meta.g, meta.err
}

type compileConfig struct {
	maxErrors  int
	matchers   []grammar.Matcher
	sourceName string
}

type CompileOption func(c *compileConfig)

// MaxErrors sets how many syntax errors in a grammar text are reported before
// the compilation gives up.
func MaxErrors(n int) CompileOption {
	return func(c *compileConfig) {
		c.maxErrors = n
	}
}

// Matchers registers the custom matchers the grammar refers to.
func Matchers(ms ...grammar.Matcher) CompileOption {
	return func(c *compileConfig) {
		c.matchers = append(c.matchers, ms...)
	}
}

// SourceName names the grammar text in error messages.
func SourceName(name string) CompileOption {
	return func(c *compileConfig) {
		c.sourceName = name
	}
}

// Compile compiles a grammar text. Syntax errors and errors in the definitions
// are returned as verr.SpecErrors.
func Compile(src string, opts ...CompileOption) (*grammar.Grammar, error) {
	c := &compileConfig{}
	for _, opt := range opts {
		opt(c)
	}

	mg, err := metaGrammar()
	if err != nil {
		return nil, err
	}
	p, err := driver.NewParser[[]*definition](mg, convertGrammar, driver.MaxErrors(c.maxErrors),
		driver.Tag("Grammar", tagGrammar),
		driver.Tag("Definition", tagDefinition),
		driver.Tag("Expression", tagFirstChild),
		driver.Tag("OrderedChoice", tagOrderedChoice),
		driver.Tag("Sequence", tagSequence),
		driver.Tag("Prefix", tagPrefix),
		driver.Tag("Suffix", tagSuffix),
		driver.Tag("Primary", tagPrimary),
		driver.Tag("Identifier", tagIdentifier),
		driver.Tag("Literal", tagFirstChild),
		driver.Tag("BasicLiteral", tagBasicLiteral),
		driver.Tag("RegexLiteral", tagRegexLiteral),
		driver.Tag("CustomMatcher", tagCustomMatcher),
	)
	if err != nil {
		return nil, err
	}

	defs, err := p.Parse(src)
	if err != nil {
		return nil, c.specErrors(src, err)
	}

	rules := make([]*grammar.Rule, len(defs))
	for i, d := range defs {
		rules[i] = grammar.NewRule(d.name, d.expr)
	}
	b := grammar.Builder{
		Rules:    rules,
		Matchers: c.matchers,
	}
	g, err := b.Build()
	if err != nil {
		return nil, c.definitionError(src, defs, err)
	}

	commonlog.GetLogger("iambic.spec").Debugf("compiled a grammar of %v rules", len(rules))

	return g, nil
}

func (c *compileConfig) specErrors(src string, err error) error {
	var synErr *driver.SyntaxError
	if errors.As(err, &synErr) {
		var errs verr.SpecErrors
		for _, pe := range synErr.Errors {
			errs = append(errs, &verr.SpecError{
				Cause:      synErrUnexpected,
				Detail:     syntaxErrorDetail(pe),
				SourceName: c.sourceName,
				Source:     src,
				Row:        pe.Row + 1,
				Col:        pe.Col + 1,
			})
		}
		if synErr.Abandoned && c.maxErrors > 0 {
			errs = append(errs, &verr.SpecError{
				Cause:      synErrTooMany,
				Detail:     fmt.Sprintf("gave up after %v errors", c.maxErrors),
				SourceName: c.sourceName,
			})
		}
		return errs
	}

	var tagErr *driver.TagError
	if errors.As(err, &tagErr) {
		row, col := driver.Position(src, tagErr.Offset)
		return verr.SpecErrors{
			{
				Cause:      tagErr.Cause,
				SourceName: c.sourceName,
				Source:     src,
				Row:        row + 1,
				Col:        col + 1,
			},
		}
	}

	return err
}

func syntaxErrorDetail(pe *driver.ParseError) string {
	var b strings.Builder
	if pe.Found == "" {
		b.WriteString("<eof>")
	} else {
		fmt.Fprintf(&b, "%q", pe.Found)
	}
	if len(pe.ExpectedTerminals) > 0 {
		fmt.Fprintf(&b, "; expected: %v", strings.Join(pe.ExpectedTerminals, ", "))
	}
	return b.String()
}

// definitionError points an error found while building the grammar at the
// definition of the rule it concerns.
func (c *compileConfig) definitionError(src string, defs []*definition, err error) error {
	var name string
	var (
		undefErr *grammar.UndefinedConstructError
		circErr  *grammar.CircularDefinitionError
		dupErr   *grammar.DuplicateConstructError
		emptyErr *grammar.EmptyCompositeError
		patErr   *grammar.InvalidPatternError
	)
	switch {
	case errors.As(err, &undefErr):
		name = undefErr.Rule
	case errors.As(err, &circErr):
		name = circErr.Rule
	case errors.As(err, &dupErr):
		name = dupErr.Name
	case errors.As(err, &emptyErr):
		name = emptyErr.Rule
	case errors.As(err, &patErr):
		name = patErr.Rule
	}

	specErr := &verr.SpecError{
		Cause:      err,
		SourceName: c.sourceName,
		Source:     src,
	}
	for _, d := range defs {
		if d.name != name {
			continue
		}
		row, col := driver.Position(src, d.offset)
		specErr.Row = row + 1
		specErr.Col = col + 1
	}
	return verr.SpecErrors{specErr}
}
