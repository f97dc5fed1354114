package lsp

import (
	"errors"

	verr "github.com/naucera/iambic/error"
	"github.com/naucera/iambic/grammar"
	"github.com/naucera/iambic/matcher"
	"github.com/naucera/iambic/spec"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

const diagSource = "iambic"

// diagnose compiles text and returns the errors as diagnostics along with the
// grammar when it compiles. The custom matchers a grammar refers to are not
// known to the server, so each of them is replaced by one matching nothing.
func diagnose(text string, maxErrors int) ([]protocol.Diagnostic, *grammar.Grammar) {
	var placeholders []grammar.Matcher
	known := map[string]struct{}{}
	for {
		g, err := spec.Compile(text, spec.MaxErrors(maxErrors), spec.Matchers(placeholders...))
		if err == nil {
			return []protocol.Diagnostic{}, g
		}
		var undefErr *grammar.UndefinedConstructError
		if errors.As(err, &undefErr) && undefErr.Kind == grammar.KindCustom {
			if _, ok := known[undefErr.Name]; !ok {
				known[undefErr.Name] = struct{}{}
				placeholders = append(placeholders, matcher.Func(undefErr.Name, matchNothing))
				continue
			}
		}
		return diagnostics(err), nil
	}
}

func matchNothing(text string, offset int) (int, bool) {
	return 0, false
}

func diagnostics(err error) []protocol.Diagnostic {
	var specErrs verr.SpecErrors
	if !errors.As(err, &specErrs) {
		return []protocol.Diagnostic{newDiagnostic(0, 0, err.Error())}
	}
	diags := make([]protocol.Diagnostic, 0, len(specErrs))
	for _, e := range specErrs {
		msg := e.Cause.Error()
		if e.Detail != "" {
			msg += ": " + e.Detail
		}
		diags = append(diags, newDiagnostic(e.Row-1, e.Col-1, msg))
	}
	return diags
}

// newDiagnostic makes a diagnostic of one character at a zero-based
// position. A negative position stands for the beginning of the document.
func newDiagnostic(row, col int, msg string) protocol.Diagnostic {
	if row < 0 {
		row = 0
	}
	if col < 0 {
		col = 0
	}
	severity := protocol.DiagnosticSeverityError
	source := diagSource
	return protocol.Diagnostic{
		Range: protocol.Range{
			Start: protocol.Position{
				Line:      protocol.UInteger(row),
				Character: protocol.UInteger(col),
			},
			End: protocol.Position{
				Line:      protocol.UInteger(row),
				Character: protocol.UInteger(col + 1),
			},
		},
		Severity: &severity,
		Source:   &source,
		Message:  msg,
	}
}
