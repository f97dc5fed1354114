package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	verr "github.com/naucera/iambic/error"
	"github.com/naucera/iambic/grammar"
	"github.com/naucera/iambic/matcher"
	"github.com/naucera/iambic/spec"
	mlspec "github.com/nihei9/maleeni/spec"
	"github.com/spf13/cobra"
)

// matcherFlags holds the flags defining the custom matchers a grammar refers
// to with {Name}.
type matcherFlags struct {
	lexSpec  *string
	machines *[]string
}

func addMatcherFlags(cmd *cobra.Command) *matcherFlags {
	return &matcherFlags{
		lexSpec:  cmd.Flags().String("lexspec", "", "maleeni lexical specification (JSON) whose kinds become custom matchers"),
		machines: cmd.Flags().StringArray("machine", nil, "custom matcher defined by a lexmachine pattern in the form Name=pattern"),
	}
}

func (f *matcherFlags) matchers() ([]grammar.Matcher, error) {
	var ms []grammar.Matcher
	if *f.lexSpec != "" {
		lms, err := readLexSpec(*f.lexSpec)
		if err != nil {
			return nil, err
		}
		ms = append(ms, lms...)
	}
	for _, def := range *f.machines {
		name, pattern, ok := strings.Cut(def, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("A matcher must be defined in the form Name=pattern: %v", def)
		}
		m, err := matcher.NewMachine(name, pattern)
		if err != nil {
			return nil, err
		}
		ms = append(ms, m)
	}
	return ms, nil
}

func readLexSpec(path string) ([]grammar.Matcher, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("Cannot read the lexical specification %s: %w", path, err)
	}
	lspec := &mlspec.LexSpec{}
	err = json.Unmarshal(data, lspec)
	if err != nil {
		return nil, fmt.Errorf("Cannot read the lexical specification %s: %w", path, err)
	}

	ls, err := matcher.CompileLexSpec(lspec.Entries)
	if err != nil {
		return nil, fmt.Errorf("Cannot compile the lexical specification %s: %w", path, err)
	}
	var ms []grammar.Matcher
	for _, kind := range ls.Kinds() {
		m, err := ls.Matcher(kind, kind)
		if err != nil {
			return nil, err
		}
		ms = append(ms, m)
	}
	return ms, nil
}

// readGrammar compiles the grammar file at path, or the standard input when
// path is empty.
func readGrammar(path string, opts ...spec.CompileOption) (*grammar.Grammar, error) {
	var src []byte
	var err error
	sourceName := path
	if path == "" {
		sourceName = "stdin"
		src, err = io.ReadAll(os.Stdin)
	} else {
		src, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("Cannot open the grammar file %s: %w", sourceName, err)
	}

	opts = append(opts, spec.SourceName(sourceName))
	g, err := spec.Compile(string(src), opts...)
	if err != nil {
		if specErrs, ok := err.(verr.SpecErrors); ok {
			for _, e := range specErrs {
				e.FilePath = path
			}
		}
		return nil, err
	}
	return g, nil
}
