package matcher

import (
	"fmt"
	"sync"
	"unicode/utf8"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// Machine matches the longest text accepted by any of a set of lexmachine
// patterns.
type Machine struct {
	name  string
	lexer *lexmachine.Lexer

	mu      sync.Mutex
	text    string
	scanner *lexmachine.Scanner
}

func NewMachine(name string, patterns ...string) (*Machine, error) {
	if len(patterns) == 0 {
		return nil, fmt.Errorf("matcher %v: at least one pattern is needed", name)
	}
	lexer := lexmachine.NewLexer()
	for _, p := range patterns {
		lexer.Add([]byte(p), func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
			return m, nil
		})
	}
	if err := lexer.Compile(); err != nil {
		return nil, fmt.Errorf("matcher %v: %w", name, err)
	}
	return &Machine{
		name:  name,
		lexer: lexer,
	}, nil
}

func (m *Machine) Name() string {
	return m.name
}

// scannerAt returns a scanner over the whole text positioned at offset. The
// scanner of the last text is kept, so the text is copied once per parse and
// the offsets of matches are offsets into text. The caller must hold m.mu.
func (m *Machine) scannerAt(text string, offset int) (*lexmachine.Scanner, error) {
	if m.scanner == nil || m.text != text {
		s, err := m.lexer.Scanner([]byte(text))
		if err != nil {
			return nil, err
		}
		m.text = text
		m.scanner = s
	}
	m.scanner.TC = offset
	return m.scanner, nil
}

func (m *Machine) Match(text string, offset int) (int, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.scannerAt(text, offset)
	if err != nil {
		return 0, false
	}
	tok, err, eof := s.Next()
	if err != nil || eof {
		return 0, false
	}
	match := tok.(*machines.Match)
	if match.TC != offset {
		return 0, false
	}
	return len(match.Bytes), true
}

func (m *Machine) MatchLeniently(text string, offset int) (int, int, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.scannerAt(text, offset)
	if err != nil {
		return 0, 0, false
	}
	for {
		tok, err, eof := s.Next()
		if eof {
			return 0, 0, false
		}
		if ui, ok := err.(*machines.UnconsumedInput); ok {
			if ui.StartTC >= len(text) {
				return 0, 0, false
			}
			_, size := utf8.DecodeRuneInString(text[ui.StartTC:])
			s.TC = ui.StartTC + size
			continue
		}
		if err != nil {
			return 0, 0, false
		}
		match := tok.(*machines.Match)
		return match.TC, len(match.Bytes), true
	}
}
