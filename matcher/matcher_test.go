package matcher

import (
	"fmt"
	"testing"

	"github.com/naucera/iambic/grammar"
	mlspec "github.com/nihei9/maleeni/spec"
)

func digits(text string, offset int) (int, bool) {
	n := 0
	for offset+n < len(text) && text[offset+n] >= '0' && text[offset+n] <= '9' {
		n++
	}
	return n, n > 0
}

type matchTest struct {
	text   string
	offset int
	length int
	ok     bool
}

type lenientMatchTest struct {
	text   string
	offset int
	start  int
	length int
	ok     bool
}

func testMatch(t *testing.T, m grammar.Matcher, tests []matchTest) {
	t.Helper()
	for i, tt := range tests {
		t.Run(fmt.Sprintf("#%v", i), func(t *testing.T) {
			n, ok := m.Match(tt.text, tt.offset)
			if ok != tt.ok {
				t.Fatalf("unexpected result; want: %v, got: %v", tt.ok, ok)
			}
			if ok && n != tt.length {
				t.Fatalf("unexpected length; want: %v, got: %v", tt.length, n)
			}
		})
	}
}

func testMatchLeniently(t *testing.T, m grammar.Matcher, tests []lenientMatchTest) {
	t.Helper()
	for i, tt := range tests {
		t.Run(fmt.Sprintf("#%v", i), func(t *testing.T) {
			start, n, ok := m.MatchLeniently(tt.text, tt.offset)
			if ok != tt.ok {
				t.Fatalf("unexpected result; want: %v, got: %v", tt.ok, ok)
			}
			if !ok {
				return
			}
			if start != tt.start || n != tt.length {
				t.Fatalf("unexpected match; want: %v+%v, got: %v+%v", tt.start, tt.length, start, n)
			}
		})
	}
}

func TestFunc(t *testing.T) {
	m := Func("Digits", digits)
	if m.Name() != "Digits" {
		t.Fatalf("unexpected name; want: Digits, got: %v", m.Name())
	}
	testMatch(t, m, []matchTest{
		{text: "123a", offset: 0, length: 3, ok: true},
		{text: "a123", offset: 1, length: 3, ok: true},
		{text: "a123", offset: 0, ok: false},
		{text: "", offset: 0, ok: false},
	})
	testMatchLeniently(t, m, []lenientMatchTest{
		{text: "ab12c", offset: 0, start: 2, length: 2, ok: true},
		{text: "12", offset: 0, start: 0, length: 2, ok: true},
		{text: "αβ7", offset: 0, start: 4, length: 1, ok: true},
		{text: "abc", offset: 0, ok: false},
		{text: "", offset: 0, ok: false},
	})
}

func TestFunc_MatchLeniently_EndOfText(t *testing.T) {
	eot := Func("End", func(text string, offset int) (int, bool) {
		return 0, offset == len(text)
	})
	start, n, ok := eot.MatchLeniently("abc", 1)
	if !ok || start != 3 || n != 0 {
		t.Fatalf("unexpected match; want: 3+0, got: %v+%v (%v)", start, n, ok)
	}
}

func TestMachine(t *testing.T) {
	m, err := NewMachine("Word", `[0-9]+`, `[a-z]+`)
	if err != nil {
		t.Fatal(err)
	}
	if m.Name() != "Word" {
		t.Fatalf("unexpected name; want: Word, got: %v", m.Name())
	}
	testMatch(t, m, []matchTest{
		{text: "12ab", offset: 0, length: 2, ok: true},
		{text: "12ab", offset: 2, length: 2, ok: true},
		{text: "!12", offset: 0, ok: false},
		{text: "12", offset: 2, ok: false},
	})
	testMatchLeniently(t, m, []lenientMatchTest{
		{text: "!!12", offset: 0, start: 2, length: 2, ok: true},
		{text: "x!ab", offset: 1, start: 2, length: 2, ok: true},
		{text: "!!!", offset: 0, ok: false},
	})
}

func TestMachine_Texts(t *testing.T) {
	m, err := NewMachine("Word", `[a-z]+`)
	if err != nil {
		t.Fatal(err)
	}
	// Matches at offsets out of order and over alternating texts report
	// offsets into the text being matched.
	steps := []struct {
		text   string
		offset int
		start  int
		length int
		ok     bool
	}{
		{text: "ab cd ef", offset: 6, start: 6, length: 2, ok: true},
		{text: "ab cd ef", offset: 0, start: 0, length: 2, ok: true},
		{text: "xyz", offset: 1, start: 1, length: 2, ok: true},
		{text: "ab cd ef", offset: 3, start: 3, length: 2, ok: true},
		{text: "ab cd ef", offset: 2, ok: false},
		{text: "ab cd ef", offset: 8, ok: false},
	}
	for i, tt := range steps {
		t.Run(fmt.Sprintf("#%v", i), func(t *testing.T) {
			n, ok := m.Match(tt.text, tt.offset)
			if ok != tt.ok {
				t.Fatalf("unexpected result; want: %v, got: %v", tt.ok, ok)
			}
			if ok && n != tt.length {
				t.Fatalf("unexpected length; want: %v, got: %v", tt.length, n)
			}
			if !ok {
				return
			}
			start, n, ok := m.MatchLeniently(tt.text, tt.offset)
			if !ok || start != tt.start || n != tt.length {
				t.Fatalf("unexpected match; want: %v+%v, got: %v+%v (%v)", tt.start, tt.length, start, n, ok)
			}
		})
	}
	start, n, ok := m.MatchLeniently("ab cd ef", 2)
	if !ok || start != 3 || n != 2 {
		t.Fatalf("unexpected match; want: 3+2, got: %v+%v (%v)", start, n, ok)
	}
}

func TestNewMachine_Error(t *testing.T) {
	if _, err := NewMachine("Nothing"); err == nil {
		t.Fatal("a machine without patterns must be rejected")
	}
}

func TestLexKind(t *testing.T) {
	entries := []*mlspec.LexEntry{
		{
			Kind:    mlspec.LexKindName("int"),
			Pattern: mlspec.LexPattern(`[0-9]+`),
		},
		{
			Kind:    mlspec.LexKindName("id"),
			Pattern: mlspec.LexPattern(`[a-z]+`),
		},
	}

	intMatcher, err := NewLexKind("Int", entries, "int")
	if err != nil {
		t.Fatal(err)
	}
	if intMatcher.Name() != "Int" {
		t.Fatalf("unexpected name; want: Int, got: %v", intMatcher.Name())
	}
	testMatch(t, intMatcher, []matchTest{
		{text: "12ab", offset: 0, length: 2, ok: true},
		{text: "12ab", offset: 2, ok: false},
		{text: "!", offset: 0, ok: false},
	})

	idMatcher, err := NewLexKind("Id", entries, "id")
	if err != nil {
		t.Fatal(err)
	}
	testMatch(t, idMatcher, []matchTest{
		{text: "12ab", offset: 2, length: 2, ok: true},
		{text: "12ab", offset: 0, ok: false},
	})
	testMatchLeniently(t, idMatcher, []lenientMatchTest{
		{text: "12ab", offset: 0, start: 2, length: 2, ok: true},
		{text: "123", offset: 0, ok: false},
	})

	if _, err := NewLexKind("Float", entries, "float"); err == nil {
		t.Fatal("an unknown kind must be rejected")
	}
}

func TestLexSpec(t *testing.T) {
	s, err := CompileLexSpec([]*mlspec.LexEntry{
		{
			Kind:     mlspec.LexKindName("digit"),
			Pattern:  mlspec.LexPattern(`[0-9]`),
			Fragment: true,
		},
		{
			Kind:    mlspec.LexKindName("int"),
			Pattern: mlspec.LexPattern(`\f{digit}+`),
		},
		{
			Kind:    mlspec.LexKindName("id"),
			Pattern: mlspec.LexPattern(`[a-z]+`),
		},
		{
			Kind:    mlspec.LexKindName("ws"),
			Pattern: mlspec.LexPattern(`[ ]+`),
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	kinds := s.Kinds()
	if len(kinds) != 3 || kinds[0] != "int" || kinds[1] != "id" || kinds[2] != "ws" {
		t.Fatalf("unexpected kinds; want: [int id ws], got: %v", kinds)
	}
	intMatcher, err := s.Matcher("Int", "int")
	if err != nil {
		t.Fatal(err)
	}
	idMatcher, err := s.Matcher("Id", "id")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Matcher("Digit", "digit"); err == nil {
		t.Fatal("a fragment must not be matched on its own")
	}

	// The matchers share one token stream; each step reads it at a different
	// offset, sometimes going back, sometimes switching texts.
	text := "ab 12 cd 34"
	steps := []struct {
		m      grammar.Matcher
		text   string
		offset int
		length int
		ok     bool
	}{
		{m: idMatcher, text: text, offset: 0, length: 2, ok: true},
		{m: intMatcher, text: text, offset: 3, length: 2, ok: true},
		{m: idMatcher, text: text, offset: 3, ok: false},
		{m: intMatcher, text: text, offset: 9, length: 2, ok: true},
		{m: idMatcher, text: text, offset: 6, length: 2, ok: true},
		{m: intMatcher, text: "7", offset: 0, length: 1, ok: true},
		{m: idMatcher, text: text, offset: 0, length: 2, ok: true},
		{m: intMatcher, text: text, offset: 4, length: 1, ok: true},
		{m: intMatcher, text: text, offset: 11, ok: false},
	}
	for i, tt := range steps {
		t.Run(fmt.Sprintf("#%v", i), func(t *testing.T) {
			n, ok := tt.m.Match(tt.text, tt.offset)
			if ok != tt.ok {
				t.Fatalf("unexpected result; want: %v, got: %v", tt.ok, ok)
			}
			if ok && n != tt.length {
				t.Fatalf("unexpected length; want: %v, got: %v", tt.length, n)
			}
		})
	}

	testMatchLeniently(t, intMatcher, []lenientMatchTest{
		{text: text, offset: 0, start: 3, length: 2, ok: true},
		{text: text, offset: 5, start: 9, length: 2, ok: true},
		{text: "ab !! 5", offset: 0, start: 6, length: 1, ok: true},
		{text: "ab cd", offset: 0, ok: false},
	})
}

func TestCompileLexSpec_Modes(t *testing.T) {
	tests := []*mlspec.LexEntry{
		{
			Kind:    mlspec.LexKindName("quote"),
			Pattern: mlspec.LexPattern(`"`),
			Push:    mlspec.LexModeName("string"),
		},
		{
			Kind:    mlspec.LexKindName("close"),
			Pattern: mlspec.LexPattern(`"`),
			Pop:     true,
		},
		{
			Kind:    mlspec.LexKindName("char"),
			Pattern: mlspec.LexPattern(`[a-z]`),
			Modes:   []mlspec.LexModeName{"string"},
		},
	}
	for i, e := range tests {
		t.Run(fmt.Sprintf("#%v", i), func(t *testing.T) {
			_, err := CompileLexSpec([]*mlspec.LexEntry{
				{
					Kind:    mlspec.LexKindName("id"),
					Pattern: mlspec.LexPattern(`[a-z]+`),
				},
				e,
			})
			if err == nil {
				t.Fatal("an entry using lexical modes must be rejected")
			}
		})
	}
}
