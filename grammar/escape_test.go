package grammar

import (
	"fmt"
	"testing"
)

func TestEscapeLiteral(t *testing.T) {
	tests := []struct {
		text    string
		escaped string
	}{
		{
			text:    ``,
			escaped: `''`,
		},
		{
			text:    `abc`,
			escaped: `'abc'`,
		},
		{
			text:    `'`,
			escaped: `'\''`,
		},
		{
			text:    `\`,
			escaped: `'\\'`,
		},
		{
			text:    `\n`,
			escaped: `'\\n'`,
		},
		{
			text:    "line\nbreak",
			escaped: "'line\nbreak'",
		},
	}
	for i, tt := range tests {
		t.Run(fmt.Sprintf("#%v", i), func(t *testing.T) {
			escaped := EscapeLiteral(tt.text)
			if escaped != tt.escaped {
				t.Fatalf("unexpected escaped text; want: %v, got: %v", tt.escaped, escaped)
			}
			text := UnescapeLiteral(escaped)
			if text != tt.text {
				t.Fatalf("unexpected unescaped text; want: %v, got: %v", tt.text, text)
			}
		})
	}
}

func TestUnescapeLiteral(t *testing.T) {
	tests := []struct {
		escaped string
		text    string
	}{
		{
			escaped: `'a\b'`,
			text:    `a\b`,
		},
		{
			escaped: `'\\\''`,
			text:    `\'`,
		},
	}
	for i, tt := range tests {
		t.Run(fmt.Sprintf("#%v", i), func(t *testing.T) {
			text := UnescapeLiteral(tt.escaped)
			if text != tt.text {
				t.Fatalf("unexpected unescaped text; want: %v, got: %v", tt.text, text)
			}
		})
	}
}

func TestEscapePattern(t *testing.T) {
	tests := []struct {
		src     string
		escaped string
	}{
		{
			src:     `\d+`,
			escaped: `/\d+/`,
		},
		{
			src:     `a/b`,
			escaped: `/a\/b/`,
		},
		{
			src:     `a\/b`,
			escaped: `/a\/b/`,
		},
		{
			src:     `\\`,
			escaped: `/\\/`,
		},
		{
			src:     `'(\\\\|\\'|[^'])*'`,
			escaped: `/'(\\\\|\\'|[^'])*'/`,
		},
	}
	for i, tt := range tests {
		t.Run(fmt.Sprintf("#%v", i), func(t *testing.T) {
			escaped := EscapePattern(tt.src)
			if escaped != tt.escaped {
				t.Fatalf("unexpected escaped pattern; want: %v, got: %v", tt.escaped, escaped)
			}
		})
	}
}

func TestUnescapePattern(t *testing.T) {
	tests := []struct {
		escaped string
		src     string
	}{
		{
			escaped: `/\d+/`,
			src:     `\d+`,
		},
		{
			escaped: `/a\/b/`,
			src:     `a/b`,
		},
		{
			escaped: `/\\\//`,
			src:     `\\/`,
		},
		{
			escaped: `/\/(\\\\|\\\/|[^\/])*\//`,
			src:     `/(\\\\|\\/|[^/])*/`,
		},
	}
	for i, tt := range tests {
		t.Run(fmt.Sprintf("#%v", i), func(t *testing.T) {
			src := UnescapePattern(tt.escaped)
			if src != tt.src {
				t.Fatalf("unexpected pattern; want: %v, got: %v", tt.src, src)
			}
		})
	}
}
