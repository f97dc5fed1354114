package grammar

import "strings"

// EscapeLiteral quotes text as a literal of the grammar language.
func EscapeLiteral(text string) string {
	var b strings.Builder
	b.Grow(len(text) + 2)
	b.WriteByte('\'')
	for i := 0; i < len(text); i++ {
		switch c := text[i]; c {
		case '\\', '\'':
			b.WriteByte('\\')
			b.WriteByte(c)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte('\'')
	return b.String()
}

// UnescapeLiteral is the inverse of EscapeLiteral. Only \\ and \' are escape
// sequences; any other backslash stands for itself.
func UnescapeLiteral(s string) string {
	if len(s) >= 2 && s[0] == '\'' && s[len(s)-1] == '\'' {
		s = s[1 : len(s)-1]
	}
	if strings.IndexByte(s, '\\') < 0 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\\' && i+1 < len(s) && (s[i+1] == '\\' || s[i+1] == '\'') {
			i++
			c = s[i]
		}
		b.WriteByte(c)
	}
	return b.String()
}

// EscapePattern delimits a regular expression source with slashes. Slashes
// that are not already escaped get a backslash; every other escape sequence is
// kept as is.
func EscapePattern(src string) string {
	var b strings.Builder
	b.Grow(len(src) + 2)
	b.WriteByte('/')
	for i := 0; i < len(src); i++ {
		c := src[i]
		switch {
		case c == '\\' && i+1 < len(src):
			b.WriteByte(c)
			i++
			b.WriteByte(src[i])
		case c == '/':
			b.WriteString(`\/`)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte('/')
	return b.String()
}

// UnescapePattern strips the delimiting slashes and turns \/ back into /.
func UnescapePattern(s string) string {
	if len(s) >= 2 && s[0] == '/' && s[len(s)-1] == '/' {
		s = s[1 : len(s)-1]
	}
	if !strings.Contains(s, `\/`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\\' && i+1 < len(s) {
			if s[i+1] != '/' {
				b.WriteByte(c)
			}
			i++
			c = s[i]
		}
		b.WriteByte(c)
	}
	return b.String()
}
