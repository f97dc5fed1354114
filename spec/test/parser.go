package test

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

type TreeDiff struct {
	ExpectedPath string
	ActualPath   string
	Message      string
}

func newTreeDiff(expected, actual *Tree, message string) *TreeDiff {
	return &TreeDiff{
		ExpectedPath: expected.path(),
		ActualPath:   actual.path(),
		Message:      message,
	}
}

// Tree is a parse tree of a test case. A node with an empty Kind stands for
// a terminal token and holds the matched text in Lexeme.
type Tree struct {
	Parent   *Tree
	Offset   int
	Kind     string
	Children []*Tree
	Lexeme   string
}

func NewNonTerminalTree(kind string, children ...*Tree) *Tree {
	return &Tree{
		Kind:     kind,
		Children: children,
	}
}

func NewTerminalNode(lexeme string) *Tree {
	return &Tree{
		Lexeme: lexeme,
	}
}

func (t *Tree) IsTerminal() bool {
	return t.Kind == "" && len(t.Children) == 0
}

func (t *Tree) Fill() *Tree {
	for i, c := range t.Children {
		c.Parent = t
		c.Offset = i
		c.Fill()
	}
	return t
}

func (t *Tree) path() string {
	name := t.Kind
	if t.IsTerminal() {
		name = quote(t.Lexeme)
	}
	if t.Parent == nil {
		return name
	}
	return fmt.Sprintf("%v.[%v]%v", t.Parent.path(), t.Offset, name)
}

func (t *Tree) Format() []byte {
	var b bytes.Buffer
	t.format(&b, 0)
	return b.Bytes()
}

func (t *Tree) format(buf *bytes.Buffer, depth int) {
	for i := 0; i < depth; i++ {
		buf.WriteString("    ")
	}
	if t.IsTerminal() {
		buf.WriteString(quote(t.Lexeme))
		return
	}
	buf.WriteString("(")
	if t.Kind == "" {
		buf.WriteString("_")
	} else {
		buf.WriteString(t.Kind)
	}
	if len(t.Children) > 0 {
		buf.WriteString("\n")
		for i, c := range t.Children {
			c.format(buf, depth+1)
			if i < len(t.Children)-1 {
				buf.WriteString("\n")
			}
		}
	}
	buf.WriteString(")")
}

var quoteReplacer = strings.NewReplacer(`\`, `\\`, `'`, `\'`, "\n", `\n`, "\r", `\r`, "\t", `\t`)

func quote(s string) string {
	return "'" + quoteReplacer.Replace(s) + "'"
}

func DiffTree(expected, actual *Tree) []*TreeDiff {
	if expected == nil && actual == nil {
		return nil
	}
	if expected.IsTerminal() != actual.IsTerminal() {
		msg := fmt.Sprintf("unexpected node: expected %v but got %v", describe(expected), describe(actual))
		return []*TreeDiff{
			newTreeDiff(expected, actual, msg),
		}
	}
	// _ matches any rules.
	if expected.Kind != "_" && actual.Kind != expected.Kind {
		msg := fmt.Sprintf("unexpected kind: expected '%v' but got '%v'", expected.Kind, actual.Kind)
		return []*TreeDiff{
			newTreeDiff(expected, actual, msg),
		}
	}
	if expected.Lexeme != actual.Lexeme {
		msg := fmt.Sprintf("unexpected lexeme: expected %v but got %v", quote(expected.Lexeme), quote(actual.Lexeme))
		return []*TreeDiff{
			newTreeDiff(expected, actual, msg),
		}
	}
	if len(actual.Children) != len(expected.Children) {
		msg := fmt.Sprintf("unexpected node count: expected %v but got %v", len(expected.Children), len(actual.Children))
		return []*TreeDiff{
			newTreeDiff(expected, actual, msg),
		}
	}
	var diffs []*TreeDiff
	for i, exp := range expected.Children {
		if ds := DiffTree(exp, actual.Children[i]); len(ds) > 0 {
			diffs = append(diffs, ds...)
		}
	}
	return diffs
}

func describe(t *Tree) string {
	if t.IsTerminal() {
		return fmt.Sprintf("the text %v", quote(t.Lexeme))
	}
	return fmt.Sprintf("the rule '%v'", t.Kind)
}

type TestCase struct {
	Description string
	Source      []byte
	Output      *Tree
}

func ParseTestCase(r io.Reader) (*TestCase, error) {
	parts, err := splitIntoParts(r)
	if err != nil {
		return nil, err
	}
	if len(parts) != 3 {
		return nil, fmt.Errorf("too many or too few part delimiters: a test case consists of just tree parts: %v parts found", len(parts))
	}

	tp := &treeParser{
		lineOffset: parts[0].lineCount + parts[1].lineCount + 2,
	}
	tree, err := tp.parseTree(parts[2].buf)
	if err != nil {
		return nil, err
	}

	return &TestCase{
		Description: string(parts[0].buf),
		Source:      parts[1].buf,
		Output:      tree,
	}, nil
}

type testCasePart struct {
	buf       []byte
	lineCount int
}

func splitIntoParts(r io.Reader) ([]*testCasePart, error) {
	var bufs []*testCasePart
	s := bufio.NewScanner(r)
	for {
		buf, lineCount, err := readPart(s)
		if err != nil {
			return nil, err
		}
		if buf == nil {
			break
		}
		bufs = append(bufs, &testCasePart{
			buf:       buf,
			lineCount: lineCount,
		})
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return bufs, nil
}

var reDelim = regexp.MustCompile(`^\s*---+\s*$`)

func readPart(s *bufio.Scanner) ([]byte, int, error) {
	if !s.Scan() {
		return nil, 0, s.Err()
	}
	buf := &bytes.Buffer{}
	line := s.Bytes()
	if reDelim.Match(line) {
		// Return an empty slice because (*bytes.Buffer).Bytes() returns nil if we have never written data.
		return []byte{}, 0, nil
	}
	_, err := buf.Write(line)
	if err != nil {
		return nil, 0, err
	}
	lineCount := 1
	for s.Scan() {
		line := s.Bytes()
		if reDelim.Match(line) {
			return buf.Bytes(), lineCount, nil
		}
		_, err := buf.Write([]byte("\n"))
		if err != nil {
			return nil, 0, err
		}
		_, err = buf.Write(line)
		if err != nil {
			return nil, 0, err
		}
		lineCount++
	}
	if err := s.Err(); err != nil {
		return nil, 0, err
	}
	return buf.Bytes(), lineCount, nil
}

// The expected tree of a test case is an s-expression: (Rule child...) for a
// token of a rule, where a child is either a tree or the quoted text of a
// terminal token. (_ child...) matches a token of any rule.

type treeNode struct {
	Kind     string       `parser:"'(' @Ident"`
	Children []*treeChild `parser:"@@* ')'"`
}

type treeChild struct {
	Node *treeNode `parser:"  @@"`
	Text *string   `parser:"| @String"`
}

var treeLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "String", Pattern: `'(\\.|[^'\\])*'`},
	{Name: "Ident", Pattern: `\w+`},
	{Name: "Punct", Pattern: `[()]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var treeNodeParser = participle.MustBuild[treeNode](
	participle.Lexer(treeLexer),
	participle.Elide("Whitespace"),
	participle.Unquote("String"),
)

type treeParser struct {
	lineOffset int
}

func (tp *treeParser) parseTree(src []byte) (*Tree, error) {
	node, err := treeNodeParser.ParseBytes("", src)
	if err != nil {
		var perr participle.Error
		if errors.As(err, &perr) {
			pos := perr.Position()
			return nil, fmt.Errorf("%v:%v: %v", tp.lineOffset+pos.Line, pos.Column, perr.Message())
		}
		return nil, err
	}
	return genTree(node).Fill(), nil
}

func genTree(node *treeNode) *Tree {
	var children []*Tree
	if len(node.Children) > 0 {
		children = make([]*Tree, len(node.Children))
		for i, c := range node.Children {
			if c.Node != nil {
				children[i] = genTree(c.Node)
			} else {
				children[i] = NewTerminalNode(*c.Text)
			}
		}
	}
	return NewNonTerminalTree(node.Kind, children...)
}
