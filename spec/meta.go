package spec

import (
	g "github.com/naucera/iambic/grammar"
)

// MetaGrammar is the grammar of the grammar language, written in the grammar
// language. Bootstrap builds the same grammar without parsing it.
const MetaGrammar = `Grammar := (Ignorable? Definition+ EndOfInput)
Definition := (Identifier ASSIGN Expression)
Expression := (OrderedChoice || Sequence)
OrderedChoice := (Sequence (OR Sequence)+)
Sequence := Prefix+
Prefix := ((AND || NOT)? Suffix)
Suffix := (Primary (QUESTION || STAR || PLUS)?)
Primary := ((Identifier !ASSIGN) || (OPEN Expression CLOSE) || Literal)
Identifier := (/\w+/ Ignorable?)
Literal := (BasicLiteral || RegexLiteral || CustomMatcher)
BasicLiteral := (/'(\\\\|\\'|[^'])*'/ Ignorable?)
RegexLiteral := (/\/(\\\\|\\\/|[^\/])*\// Ignorable?)
CustomMatcher := (/\{\w+\}/ Ignorable?)
EndOfInput := /$/
ASSIGN := (':=' Ignorable?)
OR := ('||' Ignorable?)
AND := ('&' Ignorable?)
NOT := ('!' Ignorable?)
QUESTION := ('?' Ignorable?)
STAR := ('*' Ignorable?)
PLUS := ('+' Ignorable?)
OPEN := ('(' Ignorable?)
CLOSE := (')' Ignorable?)
Ignorable := (Spacing || LineComment || BlockComment)+
Spacing := /\s+/
LineComment := ('//' (!EndOfLine /./)* EndOfLine)
BlockComment := ('/*' (!'*/' /./)* '*/')
EndOfLine := (/$/ || /\r?\n/)
`

// Bootstrap builds the grammar of the grammar language by hand.
func Bootstrap() (*g.Grammar, error) {
	return g.New(metaRules()...)
}

// lexeme is e followed by anything the grammar language ignores.
func lexeme(e *g.Expr) *g.Expr {
	return g.Seq(e, g.Optional(g.Ref("Ignorable")))
}

func metaRules() []*g.Rule {
	return []*g.Rule{
		g.NewRule("Grammar", g.Seq(g.Optional(g.Ref("Ignorable")), g.OneOrMore(g.Ref("Definition")), g.Ref("EndOfInput"))),
		g.NewRule("Definition", g.Seq(g.Ref("Identifier"), g.Ref("ASSIGN"), g.Ref("Expression"))),
		g.NewRule("Expression", g.Choice(g.Ref("OrderedChoice"), g.Ref("Sequence"))),
		g.NewRule("OrderedChoice", g.Seq(g.Ref("Sequence"), g.OneOrMore(g.Seq(g.Ref("OR"), g.Ref("Sequence"))))),
		g.NewRule("Sequence", g.OneOrMore(g.Ref("Prefix"))),
		g.NewRule("Prefix", g.Seq(g.Optional(g.Choice(g.Ref("AND"), g.Ref("NOT"))), g.Ref("Suffix"))),
		g.NewRule("Suffix", g.Seq(g.Ref("Primary"), g.Optional(g.Choice(g.Ref("QUESTION"), g.Ref("STAR"), g.Ref("PLUS"))))),
		g.NewRule("Primary", g.Choice(
			g.Seq(g.Ref("Identifier"), g.Not(g.Ref("ASSIGN"))),
			g.Seq(g.Ref("OPEN"), g.Ref("Expression"), g.Ref("CLOSE")),
			g.Ref("Literal"),
		)),
		g.NewRule("Identifier", lexeme(g.Pattern(`\w+`))),
		g.NewRule("Literal", g.Choice(g.Ref("BasicLiteral"), g.Ref("RegexLiteral"), g.Ref("CustomMatcher"))),
		g.NewRule("BasicLiteral", lexeme(g.Pattern(`'(\\\\|\\'|[^'])*'`))),
		g.NewRule("RegexLiteral", lexeme(g.Pattern(`\/(\\\\|\\\/|[^\/])*\/`))),
		g.NewRule("CustomMatcher", lexeme(g.Pattern(`\{\w+\}`))),
		g.NewRule("EndOfInput", g.Pattern(`$`)),
		g.NewRule("ASSIGN", lexeme(g.Literal(":="))),
		g.NewRule("OR", lexeme(g.Literal("||"))),
		g.NewRule("AND", lexeme(g.Literal("&"))),
		g.NewRule("NOT", lexeme(g.Literal("!"))),
		g.NewRule("QUESTION", lexeme(g.Literal("?"))),
		g.NewRule("STAR", lexeme(g.Literal("*"))),
		g.NewRule("PLUS", lexeme(g.Literal("+"))),
		g.NewRule("OPEN", lexeme(g.Literal("("))),
		g.NewRule("CLOSE", lexeme(g.Literal(")"))),
		g.NewRule("Ignorable", g.OneOrMore(g.Choice(g.Ref("Spacing"), g.Ref("LineComment"), g.Ref("BlockComment")))),
		g.NewRule("Spacing", g.Pattern(`\s+`)),
		g.NewRule("LineComment", g.Seq(g.Literal("//"), g.ZeroOrMore(g.Seq(g.Not(g.Ref("EndOfLine")), g.Pattern(`.`))), g.Ref("EndOfLine"))),
		g.NewRule("BlockComment", g.Seq(g.Literal("/*"), g.ZeroOrMore(g.Seq(g.Not(g.Literal("*/")), g.Pattern(`.`))), g.Literal("*/"))),
		g.NewRule("EndOfLine", g.Choice(g.Pattern(`$`), g.Pattern(`\r?\n`))),
	}
}
