package driver

import (
	"fmt"
	"io"
	"strings"
)

// PrintTree writes a parse tree with ruled lines. Terminal tokens are printed
// with the text they matched.
func PrintTree(w io.Writer, tok *Token, text string) {
	printTree(w, tok, text, "", "")
}

func printTree(w io.Writer, tok *Token, text string, ruledLine string, childRuledLinePrefix string) {
	if tok == nil {
		return
	}

	switch {
	case tok.IsTerminal():
		fmt.Fprintf(w, "%v%v %#v\n", ruledLine, tok.Name(), tok.MatchedText(text))
	case tok.Name() == "":
		fmt.Fprintf(w, "%v<anonymous>\n", ruledLine)
	default:
		fmt.Fprintf(w, "%v%v\n", ruledLine, tok.Name())
	}

	num := len(tok.children)
	for i, child := range tok.children {
		var line string
		if num > 1 && i < num-1 {
			line = "├─ "
		} else {
			line = "└─ "
		}

		var prefix string
		if i >= num-1 {
			prefix = "   "
		} else {
			prefix = "│  "
		}

		printTree(w, child, text, childRuledLinePrefix+line, childRuledLinePrefix+prefix)
	}
}

var xmlReplacer = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// XML renders a parse tree as XML. Tokens produced by rules become elements
// named after the rules, and terminal tokens become text. An element holding
// only elements puts each of them on its own indented line; an element holding
// text is written on a single line so that no whitespace is added to it.
func (t *Token) XML(text string) string {
	var b strings.Builder
	writeXML(&b, t, text, 0, false)
	return b.String()
}

func writeXML(b *strings.Builder, t *Token, text string, depth int, inline bool) {
	if t.IsTerminal() {
		b.WriteString(xmlReplacer.Replace(t.MatchedText(text)))
		return
	}

	if t.rule == nil {
		for i, c := range t.children {
			if i > 0 && !inline {
				b.WriteString("\n")
				b.WriteString(strings.Repeat("  ", depth))
			}
			writeXML(b, c, text, depth, inline)
		}
		return
	}

	name := t.rule.Name()
	fmt.Fprintf(b, "<%v>", name)
	if !inline {
		for _, c := range t.children {
			if c.IsTerminal() {
				inline = true
				break
			}
		}
	}
	if inline || len(t.children) == 0 {
		for _, c := range t.children {
			writeXML(b, c, text, depth+1, true)
		}
	} else {
		indent := strings.Repeat("  ", depth+1)
		for _, c := range t.children {
			b.WriteString("\n")
			b.WriteString(indent)
			writeXML(b, c, text, depth+1, false)
		}
		b.WriteString("\n")
		b.WriteString(strings.Repeat("  ", depth))
	}
	fmt.Fprintf(b, "</%v>", name)
}
