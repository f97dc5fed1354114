package grammar

import (
	"bytes"
	"go/format"
	"strconv"
	"strings"
	"text/template"
)

const goSourceTemplate = `// Code generated by iambic-go. DO NOT EDIT.

package {{ .Package }}

import "github.com/naucera/iambic/grammar"

// {{ .Func }} builds the following grammar.
//
{{- range .Rules }}
//	{{ comment .String }}
{{- end }}
func {{ .Func }}(matchers ...grammar.Matcher) (*grammar.Grammar, error) {
	b := grammar.Builder{
		Rules: []*grammar.Rule{
{{- range .Rules }}
			grammar.NewRule({{ quote .Name }}, {{ genExpr .Expr }}),
{{- end }}
		},
		Matchers: matchers,
	}
	return b.Build()
}
`

// GenGo generates Go source code of a function that rebuilds g with the
// constructors of this package.
func GenGo(g *Grammar, pkgName, funcName string) ([]byte, error) {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"quote":   strconv.Quote,
		"genExpr": genGoExpr,
		"comment": commentReplacer.Replace,
	}).Parse(goSourceTemplate)
	if err != nil {
		return nil, err
	}

	var b bytes.Buffer
	err = tmpl.Execute(&b, map[string]interface{}{
		"Package": pkgName,
		"Func":    funcName,
		"Rules":   g.rules,
	})
	if err != nil {
		return nil, err
	}

	return format.Source(b.Bytes())
}

var commentReplacer = strings.NewReplacer("\r", `\r`, "\n", `\n`)

func genGoExpr(e *Expr) string {
	var b strings.Builder
	writeGoExpr(&b, e)
	return b.String()
}

func writeGoExpr(b *strings.Builder, e *Expr) {
	switch e.kind {
	case KindLiteral:
		b.WriteString("grammar.Literal(")
		b.WriteString(strconv.Quote(e.text))
		b.WriteString(")")
	case KindPattern:
		b.WriteString("grammar.Pattern(")
		if strconv.CanBackquote(e.text) {
			b.WriteString("`" + e.text + "`")
		} else {
			b.WriteString(strconv.Quote(e.text))
		}
		b.WriteString(")")
	case KindCustom:
		b.WriteString("grammar.Custom(")
		b.WriteString(strconv.Quote(e.text))
		b.WriteString(")")
	case KindRuleRef:
		b.WriteString("grammar.Ref(")
		b.WriteString(strconv.Quote(e.text))
		b.WriteString(")")
	default:
		var fn string
		subs := e.subs
		switch e.kind {
		case KindSequence:
			fn = "Seq"
		case KindChoice:
			fn = "Choice"
		case KindZeroOrMore:
			fn = "ZeroOrMore"
		case KindOneOrMore:
			fn = "OneOrMore"
		case KindOptional:
			fn = "Optional"
		case KindNotMatch:
			fn = "Not"
			if e.IsAnd() {
				fn = "And"
				subs = e.subs[0].subs
			}
		}
		b.WriteString("grammar.")
		b.WriteString(fn)
		b.WriteString("(")
		for i, sub := range subs {
			if i > 0 {
				b.WriteString(", ")
			}
			writeGoExpr(b, sub)
		}
		b.WriteString(")")
	}
}
