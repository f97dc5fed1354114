package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/naucera/iambic/driver"
	"github.com/naucera/iambic/spec"
	"github.com/spf13/cobra"
)

var parseFlags = struct {
	source    *string
	xml       *bool
	onlyParse *bool
	maxErrors *int
	matchers  *matcherFlags
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "parse <grammar file path>",
		Short:   "Parse a text stream",
		Example: `  cat src | iambic parse grammar.iambic`,
		Args:    cobra.ExactArgs(1),
		RunE:    runParse,
	}
	parseFlags.source = cmd.Flags().StringP("source", "s", "", "source file path (default stdin)")
	parseFlags.xml = cmd.Flags().Bool("xml", false, "print the parse tree in XML")
	parseFlags.onlyParse = cmd.Flags().Bool("only-parse", false, "when this option is enabled, the parser performs only parse and doesn't print the parse tree")
	parseFlags.maxErrors = cmd.Flags().Int("max-errors", 0, "number of syntax errors the parser recovers from")
	parseFlags.matchers = addMatcherFlags(cmd)
	rootCmd.AddCommand(cmd)
}

func runParse(cmd *cobra.Command, args []string) (retErr error) {
	defer func() {
		panicked := false
		v := recover()
		if v != nil {
			err, ok := v.(error)
			if !ok {
				retErr = fmt.Errorf("an unexpected error occurred: %v", v)
				fmt.Fprintf(os.Stderr, "%v:\n%v", retErr, string(debug.Stack()))
				return
			}

			retErr = err
			panicked = true
		}

		if retErr != nil {
			if panicked {
				fmt.Fprintf(os.Stderr, "%v:\n%v", retErr, string(debug.Stack()))
			} else {
				fmt.Fprintf(os.Stderr, "%v\n", retErr)
			}
		}
	}()

	if *parseFlags.onlyParse && *parseFlags.xml {
		return fmt.Errorf("You cannot enable --only-parse and --xml at the same time")
	}

	ms, err := parseFlags.matchers.matchers()
	if err != nil {
		return err
	}
	g, err := readGrammar(args[0], spec.Matchers(ms...))
	if err != nil {
		return fmt.Errorf("Cannot read a grammar: %w", err)
	}

	p, err := driver.NewParser[*driver.Token](g, func(tok *driver.Token, _ *driver.Context, _ []any) (*driver.Token, error) {
		return tok, nil
	}, driver.MaxErrors(*parseFlags.maxErrors))
	if err != nil {
		return err
	}

	var src []byte
	if *parseFlags.source != "" {
		src, err = os.ReadFile(*parseFlags.source)
		if err != nil {
			return fmt.Errorf("Cannot open the source file %s: %w", *parseFlags.source, err)
		}
	} else {
		src, err = io.ReadAll(os.Stdin)
		if err != nil {
			return err
		}
	}
	text := string(src)

	tok, err := p.ParseToken(text)
	if err != nil {
		var synErr *driver.SyntaxError
		if !errors.As(err, &synErr) {
			return err
		}
		for _, pe := range synErr.Errors {
			fmt.Fprintf(os.Stderr, "%v\n", pe)
		}
		if synErr.Abandoned {
			return fmt.Errorf("%v syntax errors; gave up", synErr.ErrorCount())
		}
	}

	if *parseFlags.onlyParse {
		return nil
	}
	if *parseFlags.xml {
		fmt.Fprintln(os.Stdout, tok.XML(text))
		return nil
	}
	driver.PrintTree(os.Stdout, tok, text)
	return nil
}
