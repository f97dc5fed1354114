package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	verr "github.com/naucera/iambic/error"
	"github.com/naucera/iambic/grammar"
	"github.com/naucera/iambic/spec"
	"github.com/spf13/cobra"
)

func Execute() error {
	return generateCmd.Execute()
}

var generateFlags = struct {
	pkgName  *string
	funcName *string
	output   *string
}{}

var generateCmd = &cobra.Command{
	Use:           "iambic-go",
	Short:         "Generate Go code building a grammar",
	Long:          `iambic-go generates a Go function that builds a grammar without compiling its text at run time.`,
	Example:       `  iambic-go expr.iambic`,
	Args:          cobra.ExactArgs(1),
	RunE:          runGenerate,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	generateFlags.pkgName = generateCmd.Flags().StringP("package", "p", "main", "package name")
	generateFlags.funcName = generateCmd.Flags().StringP("func", "f", "NewGrammar", "function name")
	generateFlags.output = generateCmd.Flags().StringP("output", "o", "", "output file path (default <grammar name>_grammar.go)")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	src, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("Cannot open the grammar file %s: %w", args[0], err)
	}

	// The matchers are supplied to the generated function, so any name is
	// accepted here.
	g, err := compileWithPlaceholders(string(src), args[0])
	if err != nil {
		return err
	}

	b, err := grammar.GenGo(g, *generateFlags.pkgName, *generateFlags.funcName)
	if err != nil {
		return fmt.Errorf("Failed to generate a grammar: %w", err)
	}

	filePath := *generateFlags.output
	if filePath == "" {
		base := filepath.Base(args[0])
		filePath = fmt.Sprintf("%v_grammar.go", strings.TrimSuffix(base, filepath.Ext(base)))
	}

	f, err := os.OpenFile(filePath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("Failed to create an output file: %v", err)
	}
	defer f.Close()

	_, err = f.Write(b)
	if err != nil {
		return fmt.Errorf("Failed to write grammar source code: %v", err)
	}

	return nil
}

type placeholder string

func (p placeholder) Name() string {
	return string(p)
}

func (p placeholder) Match(text string, offset int) (int, bool) {
	return 0, false
}

func (p placeholder) MatchLeniently(text string, offset int) (int, int, bool) {
	return 0, 0, false
}

func compileWithPlaceholders(src, path string) (*grammar.Grammar, error) {
	var ms []grammar.Matcher
	known := map[string]bool{}
	for {
		g, err := spec.Compile(src, spec.SourceName(path), spec.Matchers(ms...))
		if err == nil {
			return g, nil
		}
		if specErrs, ok := err.(verr.SpecErrors); ok {
			for _, e := range specErrs {
				e.FilePath = path
			}
			if len(specErrs) == 1 {
				if undefErr, ok := specErrs[0].Cause.(*grammar.UndefinedConstructError); ok && undefErr.Kind == grammar.KindCustom && !known[undefErr.Name] {
					known[undefErr.Name] = true
					ms = append(ms, placeholder(undefErr.Name))
					continue
				}
			}
		}
		return nil, err
	}
}
