package matcher

import (
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	mlcompiler "github.com/nihei9/maleeni/compiler"
	mldriver "github.com/nihei9/maleeni/driver"
	mlspec "github.com/nihei9/maleeni/spec"
)

// LexSpec is a compiled maleeni lexical specification. The matchers of its
// kinds share one token stream per text, so a token is lexed once however
// many kinds ask for it.
type LexSpec struct {
	spec  *mlspec.CompiledLexSpec
	kinds []string

	mu      sync.Mutex
	text    string
	tokens  map[int]lexToken
	lex     *mldriver.Lexer
	lexNext int
}

// lexToken is the token starting at an offset. n is the length of an invalid
// token as well, and zero at the end of the text.
type lexToken struct {
	kind string
	n    int
	ok   bool
}

// CompileLexSpec compiles entries. Lexical modes are rejected because matchers
// lex from arbitrary offsets and cannot know the mode there.
func CompileLexSpec(entries []*mlspec.LexEntry) (*LexSpec, error) {
	var kinds []string
	for _, e := range entries {
		if len(e.Modes) > 0 || e.Push != "" || e.Pop {
			return nil, fmt.Errorf("kind %v: lexical modes are not supported", e.Kind)
		}
		if !e.Fragment {
			kinds = append(kinds, string(e.Kind))
		}
	}

	lexSpec := &mlspec.LexSpec{
		Name:    "iambic",
		Entries: entries,
	}
	clspec, err, cErrs := mlcompiler.Compile(lexSpec, mlcompiler.CompressionLevel(mlcompiler.CompressionLevelMax))
	if err != nil {
		if len(cErrs) > 0 {
			var b strings.Builder
			writeCompileError(&b, cErrs[0])
			for _, cerr := range cErrs[1:] {
				fmt.Fprintf(&b, "\n")
				writeCompileError(&b, cerr)
			}
			return nil, fmt.Errorf("%v", b.String())
		}
		return nil, err
	}

	return &LexSpec{
		spec:  clspec,
		kinds: kinds,
	}, nil
}

func writeCompileError(w *strings.Builder, cErr *mlcompiler.CompileError) {
	if cErr.Fragment {
		fmt.Fprintf(w, "fragment ")
	}
	fmt.Fprintf(w, "%v: %v", cErr.Kind, cErr.Cause)
	if cErr.Detail != "" {
		fmt.Fprintf(w, ": %v", cErr.Detail)
	}
}

// Kinds returns the names of the kinds that are not fragments, in the order
// of the entries.
func (s *LexSpec) Kinds() []string {
	return s.kinds
}

// Matcher returns a matcher named name for the tokens of kind.
func (s *LexSpec) Matcher(name, kind string) (*LexKind, error) {
	for _, k := range s.kinds {
		if k == kind {
			return &LexKind{
				name: name,
				kind: kind,
				spec: s,
			}, nil
		}
	}
	return nil, fmt.Errorf("matcher %v: the lexical specification has no kind %v", name, kind)
}

// tokenAt returns the token starting at offset. A lexer left at offset by the
// previous call continues from there, so scanning a text token by token lexes
// it once.
func (s *LexSpec) tokenAt(text string, offset int) lexToken {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tokens == nil || s.text != text {
		s.text = text
		s.tokens = map[int]lexToken{}
		s.lex = nil
	}
	if tok, ok := s.tokens[offset]; ok {
		return tok
	}

	if s.lex == nil || s.lexNext != offset {
		lex, err := mldriver.NewLexer(mldriver.NewLexSpec(s.spec), strings.NewReader(text[offset:]))
		if err != nil {
			return lexToken{}
		}
		s.lex = lex
		s.lexNext = offset
	}

	var tok lexToken
	t, err := s.lex.Next()
	switch {
	case err != nil || t.EOF:
		s.lex = nil
	case t.Invalid:
		tok = lexToken{n: len(t.Lexeme)}
	default:
		tok = lexToken{
			kind: s.spec.KindNames[t.KindID].String(),
			n:    len(t.Lexeme),
			ok:   true,
		}
	}
	if tok.n == 0 {
		s.lex = nil
	} else {
		s.lexNext = offset + tok.n
	}
	s.tokens[offset] = tok
	return tok
}

// LexKind matches the tokens of one kind of a maleeni lexical specification.
// The lexer runs from the offset being matched, so the other kinds of the
// specification only decide where the token ends.
type LexKind struct {
	name string
	kind string
	spec *LexSpec
}

// NewLexKind compiles entries for a single matcher. Use CompileLexSpec and
// LexSpec.Matcher when more than one kind is matched.
func NewLexKind(name string, entries []*mlspec.LexEntry, kind string) (*LexKind, error) {
	s, err := CompileLexSpec(entries)
	if err != nil {
		return nil, fmt.Errorf("matcher %v: %w", name, err)
	}
	return s.Matcher(name, kind)
}

func (m *LexKind) Name() string {
	return m.name
}

func (m *LexKind) Match(text string, offset int) (int, bool) {
	tok := m.spec.tokenAt(text, offset)
	if !tok.ok || tok.kind != m.kind {
		return 0, false
	}
	return tok.n, true
}

// MatchLeniently follows the token stream from offset, skipping invalid text,
// and returns the first token of the kind.
func (m *LexKind) MatchLeniently(text string, offset int) (int, int, bool) {
	for o := offset; o < len(text); {
		tok := m.spec.tokenAt(text, o)
		if tok.ok && tok.kind == m.kind {
			return o, tok.n, true
		}
		if tok.n > 0 {
			o += tok.n
			continue
		}
		_, size := utf8.DecodeRuneInString(text[o:])
		o += size
	}
	return 0, 0, false
}
