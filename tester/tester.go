package tester

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"

	"github.com/naucera/iambic/driver"
	tspec "github.com/naucera/iambic/spec/test"
)

type TestResult struct {
	TestCasePath string
	Error        error
	Diffs        []*tspec.TreeDiff
}

func (r *TestResult) String() string {
	if r.Error != nil {
		const indent1 = "    "
		const indent2 = indent1 + indent1

		msgLines := strings.Split(r.Error.Error(), "\n")
		msg := fmt.Sprintf("Failed %v:\n%v%v", r.TestCasePath, indent1, strings.Join(msgLines, "\n"+indent1))
		if len(r.Diffs) == 0 {
			return msg
		}
		var diffLines []string
		for _, diff := range r.Diffs {
			diffLines = append(diffLines, diff.Message)
			diffLines = append(diffLines, fmt.Sprintf("%vexpected path: %v", indent1, diff.ExpectedPath))
			diffLines = append(diffLines, fmt.Sprintf("%vactual path:   %v", indent1, diff.ActualPath))
		}
		return fmt.Sprintf("%v\n%v%v", msg, indent2, strings.Join(diffLines, "\n"+indent2))
	}
	return fmt.Sprintf("Passed %v", r.TestCasePath)
}

type TestCaseWithMetadata struct {
	TestCase *tspec.TestCase
	FilePath string
	Error    error
}

func ListTestCases(testPath string) []*TestCaseWithMetadata {
	fi, err := os.Stat(testPath)
	if err != nil {
		return []*TestCaseWithMetadata{
			{
				FilePath: testPath,
				Error:    err,
			},
		}
	}
	if !fi.IsDir() {
		c, err := parseTestCase(testPath)
		return []*TestCaseWithMetadata{
			{
				TestCase: c,
				FilePath: testPath,
				Error:    err,
			},
		}
	}

	es, err := os.ReadDir(testPath)
	if err != nil {
		return []*TestCaseWithMetadata{
			{
				FilePath: testPath,
				Error:    err,
			},
		}
	}
	var cases []*TestCaseWithMetadata
	for _, e := range es {
		cs := ListTestCases(filepath.Join(testPath, e.Name()))
		cases = append(cases, cs...)
	}
	return cases
}

func parseTestCase(testCasePath string) (*tspec.TestCase, error) {
	f, err := os.Open(testCasePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return tspec.ParseTestCase(f)
}

type Tester struct {
	Parser *driver.Parser[*driver.Token]
	Cases  []*TestCaseWithMetadata

	// Elide names the rules whose tokens are left out of the parse trees
	// compared with the expected trees, such as rules matching white spaces.
	Elide []string
}

func (t *Tester) Run() []*TestResult {
	elide := map[string]struct{}{}
	for _, name := range t.Elide {
		elide[name] = struct{}{}
	}
	var rs []*TestResult
	for _, c := range t.Cases {
		rs = append(rs, runTest(t.Parser, elide, c))
	}
	return rs
}

func runTest(p *driver.Parser[*driver.Token], elide map[string]struct{}, c *TestCaseWithMetadata) *TestResult {
	if c.Error != nil {
		return &TestResult{
			TestCasePath: c.FilePath,
			Error:        c.Error,
		}
	}

	src := string(c.TestCase.Source)
	tok, err := p.ParseToken(src)
	if err != nil {
		synErr, ok := err.(*driver.SyntaxError)
		if !ok {
			return &TestResult{
				TestCasePath: c.FilePath,
				Error:        err,
			}
		}
		if synErr.Abandoned {
			return &TestResult{
				TestCasePath: c.FilePath,
				Error:        fmt.Errorf("parse tree was not generated: %w", synErr),
			}
		}
	}
	if tok == nil {
		// The parser always returns a parse tree unless a tag function fails, so if there is no parse
		// tree, it is a bug. We also include a stack trace in the error message to be sure.
		return &TestResult{
			TestCasePath: c.FilePath,
			Error:        fmt.Errorf("parse tree was not generated: no syntax error:\n%v", string(debug.Stack())),
		}
	}

	// When a parse tree exists, the test continues regardless of whether or not syntax errors occurred.
	diffs := tspec.DiffTree(c.TestCase.Output, genTree(tok, src, elide).Fill())
	if len(diffs) > 0 {
		return &TestResult{
			TestCasePath: c.FilePath,
			Error:        fmt.Errorf("output mismatch"),
			Diffs:        diffs,
		}
	}
	return &TestResult{
		TestCasePath: c.FilePath,
	}
}

func genTree(tok *driver.Token, text string, elide map[string]struct{}) *tspec.Tree {
	if tok.IsTerminal() {
		return tspec.NewTerminalNode(tok.MatchedText(text))
	}
	var children []*tspec.Tree
	for _, c := range tok.Children() {
		if r := c.Rule(); r != nil {
			if _, ok := elide[r.Name()]; ok {
				continue
			}
		}
		children = append(children, genTree(c, text, elide))
	}
	// A root that could not be wrapped in a token of its rule has no kind.
	kind := "_"
	if r := tok.Rule(); r != nil {
		kind = r.Name()
	}
	return tspec.NewNonTerminalTree(kind, children...)
}
