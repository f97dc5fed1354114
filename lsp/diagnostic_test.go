package lsp

import (
	"fmt"
	"strings"
	"testing"
)

func TestDiagnose(t *testing.T) {
	tests := []struct {
		src       string
		maxErrors int
		diags     int
		line      uint32
		message   string
		compiled  bool
	}{
		{
			src:      `A := 'a'`,
			compiled: true,
		},
		{
			src:      `A := {Digits} 'x'`,
			compiled: true,
		},
		{
			src:     "A := 'a'\nB := 'b' C",
			diags:   1,
			line:    1,
			message: "undefined rule: C",
		},
		{
			src:     "A := 'a'\nB := :",
			diags:   1,
			line:    1,
			message: "unexpected input",
		},
		{
			src:     "A := B\nB := A",
			diags:   1,
			line:    1,
			message: "left recursion",
		},
	}
	for i, tt := range tests {
		t.Run(fmt.Sprintf("#%v", i), func(t *testing.T) {
			diags, g := diagnose(tt.src, tt.maxErrors)
			if tt.compiled != (g != nil) {
				t.Fatalf("unexpected grammar; want compiled: %v, got: %v", tt.compiled, g)
			}
			if len(diags) != tt.diags {
				t.Fatalf("unexpected diagnostic count; want: %v, got: %v (%v)", tt.diags, len(diags), diags)
			}
			if tt.diags == 0 {
				return
			}
			d := diags[0]
			if d.Range.Start.Line != tt.line {
				t.Fatalf("unexpected line; want: %v, got: %v", tt.line, d.Range.Start.Line)
			}
			if !strings.Contains(d.Message, tt.message) {
				t.Fatalf("unexpected message; want: %v, got: %v", tt.message, d.Message)
			}
			if d.Source == nil || *d.Source != diagSource {
				t.Fatalf("unexpected source: %v", d.Source)
			}
		})
	}
}

func TestCompletions(t *testing.T) {
	_, g := diagnose("Sum := Num ('+' Num)*\nNum := /\\d+/", 0)
	if g == nil {
		t.Fatal("the grammar must compile")
	}
	items := completions(g)
	if len(items) != 2 {
		t.Fatalf("unexpected completion count; want: 2, got: %v", len(items))
	}
	for i, name := range []string{"Sum", "Num"} {
		if items[i].Label != name {
			t.Fatalf("unexpected label; want: %v, got: %v", name, items[i].Label)
		}
	}
	if *items[1].Detail != `/\d+/` {
		t.Fatalf("unexpected detail; want: %v, got: %v", `/\d+/`, *items[1].Detail)
	}
}
