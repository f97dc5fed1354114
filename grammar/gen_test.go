package grammar

import (
	"go/parser"
	"go/token"
	"strings"
	"testing"
)

func TestGenGo(t *testing.T) {
	b := Builder{
		Rules: []*Rule{
			NewRule("Sum", Seq(Ref("Num"), ZeroOrMore(Seq(Literal("+"), Ref("Num"))))),
			NewRule("Num", Choice(Pattern(`\d+`), Custom("Hex"))),
			NewRule("Peek", Seq(And(Literal("\"")), Not(Pattern("`")))),
		},
		Matchers: []Matcher{
			testMatcher("Hex"),
		},
	}
	g, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}

	src, err := GenGo(g, "expr", "NewExprGrammar")
	if err != nil {
		t.Fatal(err)
	}

	_, err = parser.ParseFile(token.NewFileSet(), "expr_grammar.go", src, parser.ParseComments)
	if err != nil {
		t.Fatalf("the generated code is not valid Go: %v\n%s", err, src)
	}

	for _, want := range []string{
		"// Code generated by iambic-go. DO NOT EDIT.",
		"package expr",
		"func NewExprGrammar(matchers ...grammar.Matcher) (*grammar.Grammar, error) {",
		`grammar.NewRule("Sum", grammar.Seq(grammar.Ref("Num"), grammar.ZeroOrMore(grammar.Seq(grammar.Literal("+"), grammar.Ref("Num"))))),`,
		"grammar.NewRule(\"Num\", grammar.Choice(grammar.Pattern(`\\d+`), grammar.Custom(\"Hex\"))),",
		`grammar.NewRule("Peek", grammar.Seq(grammar.And(grammar.Literal("\"")), grammar.Not(grammar.Pattern("` + "`" + `")))),`,
	} {
		if !strings.Contains(string(src), want) {
			t.Fatalf("the generated code lacks %v:\n%s", want, src)
		}
	}
}
