package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/naucera/iambic/driver"
	"github.com/naucera/iambic/spec"
	"github.com/naucera/iambic/tester"
	"github.com/spf13/cobra"
)

var testFlags = struct {
	elide     *[]string
	maxErrors *int
	matchers  *matcherFlags
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "test <grammar file path> <test file path>|<test directory path>",
		Short:   "Test a grammar",
		Example: `  iambic test grammar.iambic test`,
		Args:    cobra.ExactArgs(2),
		RunE:    runTest,
	}
	testFlags.elide = cmd.Flags().StringSlice("elide", nil, "rules whose tokens are left out of the parse trees")
	testFlags.maxErrors = cmd.Flags().Int("max-errors", 0, "number of syntax errors the parser recovers from")
	testFlags.matchers = addMatcherFlags(cmd)
	rootCmd.AddCommand(cmd)
}

func runTest(cmd *cobra.Command, args []string) error {
	ms, err := testFlags.matchers.matchers()
	if err != nil {
		return err
	}
	g, err := readGrammar(args[0], spec.Matchers(ms...))
	if err != nil {
		return fmt.Errorf("Cannot read a grammar: %w", err)
	}
	p, err := driver.NewParser[*driver.Token](g, func(tok *driver.Token, _ *driver.Context, _ []any) (*driver.Token, error) {
		return tok, nil
	}, driver.MaxErrors(*testFlags.maxErrors))
	if err != nil {
		return err
	}

	var cs []*tester.TestCaseWithMetadata
	{
		cs = tester.ListTestCases(args[1])
		errOccurred := false
		for _, c := range cs {
			if c.Error != nil {
				fmt.Fprintf(os.Stderr, "Failed to read a test case or a directory: %v\n%v\n", c.FilePath, c.Error)
				errOccurred = true
			}
		}
		if errOccurred {
			return errors.New("Cannot run test")
		}
	}

	t := &tester.Tester{
		Parser: p,
		Cases:  cs,
		Elide:  *testFlags.elide,
	}
	rs := t.Run()
	testFailed := false
	for _, r := range rs {
		fmt.Fprintln(os.Stdout, r)
		if r.Error != nil {
			testFailed = true
		}
	}
	if testFailed {
		return errors.New("Test failed")
	}
	return nil
}
