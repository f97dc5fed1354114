package main

import (
	"fmt"
	"io"
	"os"

	"github.com/naucera/iambic/spec"
	"github.com/spf13/cobra"
)

var compileFlags = struct {
	output    *string
	maxErrors *int
	matchers  *matcherFlags
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "compile [grammar file path]",
		Short:   "Compile a grammar and print it in the canonical form",
		Example: `  iambic compile grammar.iambic -o grammar.canonical.iambic`,
		Args:    cobra.MaximumNArgs(1),
		RunE:    runCompile,
	}
	compileFlags.output = cmd.Flags().StringP("output", "o", "", "output file path (default stdout)")
	compileFlags.maxErrors = cmd.Flags().Int("max-errors", 10, "number of syntax errors reported before giving up")
	compileFlags.matchers = addMatcherFlags(cmd)
	rootCmd.AddCommand(cmd)
}

func runCompile(cmd *cobra.Command, args []string) error {
	var grmPath string
	if len(args) > 0 {
		grmPath = args[0]
	}

	ms, err := compileFlags.matchers.matchers()
	if err != nil {
		return err
	}
	g, err := readGrammar(grmPath, spec.MaxErrors(*compileFlags.maxErrors), spec.Matchers(ms...))
	if err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if *compileFlags.output != "" {
		f, err := os.OpenFile(*compileFlags.output, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			return fmt.Errorf("Cannot create an output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	_, err = fmt.Fprint(w, g.String())
	if err != nil {
		return fmt.Errorf("Cannot write an output file: %w", err)
	}
	return nil
}
