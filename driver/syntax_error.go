package driver

import (
	"fmt"
	"strings"
)

// ParseError describes one syntax error. Row and Col are zero-based.
type ParseError struct {
	Offset int
	Row    int
	Col    int

	// Rule is the rule being matched when the error was found.
	Rule string

	// Found is the character at Offset; it is empty at the end of the text.
	Found             string
	ExpectedTerminals []string
}

func (e *ParseError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%v:%v: unexpected ", e.Row+1, e.Col+1)
	if e.Found == "" {
		b.WriteString("<eof>")
	} else {
		fmt.Fprintf(&b, "%q", e.Found)
	}
	if len(e.ExpectedTerminals) > 0 {
		fmt.Fprintf(&b, "; expected: %v", strings.Join(e.ExpectedTerminals, ", "))
	}
	return b.String()
}

// SyntaxError is returned by a parse that found syntax errors. Token is the
// partial parse tree: the whole recovered tree when the parse stayed within
// its error budget, and the tree built up to the error that exceeded it when
// Abandoned is true.
type SyntaxError struct {
	Errors    []*ParseError
	Token     *Token
	Abandoned bool
	MaxErrors int
}

func (e *SyntaxError) ErrorCount() int {
	return len(e.Errors)
}

func (e *SyntaxError) Error() string {
	var b strings.Builder
	b.WriteString("syntax error: ")
	b.WriteString(e.Errors[0].Error())
	if n := len(e.Errors) - 1; n > 0 {
		fmt.Fprintf(&b, " (and %v more)", n)
	}
	if e.Abandoned && e.MaxErrors > 0 {
		fmt.Fprintf(&b, "; gave up after exceeding %v errors", e.MaxErrors)
	}
	return b.String()
}

// TagError is returned when a tag function fails.
type TagError struct {
	Rule string

	// Offset is where the token being tagged starts.
	Offset int
	Cause  error
}

func (e *TagError) Error() string {
	return fmt.Sprintf("rule %v: %v", e.Rule, e.Cause)
}

func (e *TagError) Unwrap() error {
	return e.Cause
}
