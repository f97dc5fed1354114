package driver

import (
	"errors"
	"fmt"
	"testing"
)

func TestPosition(t *testing.T) {
	tests := []struct {
		text   string
		offset int
		row    int
		col    int
	}{
		{
			text:   "abc",
			offset: 0,
		},
		{
			text:   "abc",
			offset: 3,
			col:    3,
		},
		{
			text:   "a\nbc",
			offset: 3,
			row:    1,
			col:    1,
		},
		{
			text:   "a\n\nb",
			offset: 2,
			row:    1,
		},
		{
			text:   "a\n\nb",
			offset: 3,
			row:    2,
		},
		{
			text:   "αβγ",
			offset: 4,
			col:    2,
		},
	}
	for i, tt := range tests {
		t.Run(fmt.Sprintf("#%v", i), func(t *testing.T) {
			row, col := Position(tt.text, tt.offset)
			if row != tt.row || col != tt.col {
				t.Fatalf("unexpected position; want: %v:%v, got: %v:%v", tt.row, tt.col, row, col)
			}
		})
	}
}

func TestSyntaxError_Error(t *testing.T) {
	pe1 := &ParseError{
		Row:               1,
		Col:               4,
		Found:             "x",
		ExpectedTerminals: []string{`'a'`, `/\d/`},
	}
	pe2 := &ParseError{
		Row: 2,
	}
	if pe1.Error() != `2:5: unexpected "x"; expected: 'a', /\d/` {
		t.Fatalf("unexpected message: %v", pe1)
	}
	if pe2.Error() != `3:1: unexpected <eof>` {
		t.Fatalf("unexpected message: %v", pe2)
	}

	synErr := &SyntaxError{
		Errors: []*ParseError{pe1, pe2},
	}
	if synErr.Error() != `syntax error: 2:5: unexpected "x"; expected: 'a', /\d/ (and 1 more)` {
		t.Fatalf("unexpected message: %v", synErr)
	}
	synErr.Abandoned = true
	synErr.MaxErrors = 1
	if synErr.Error() != `syntax error: 2:5: unexpected "x"; expected: 'a', /\d/ (and 1 more); gave up after exceeding 1 errors` {
		t.Fatalf("unexpected message: %v", synErr)
	}

	cause := errors.New("bad value")
	tagErr := &TagError{
		Rule:  "Value",
		Cause: cause,
	}
	if !errors.Is(tagErr, cause) || tagErr.Error() != "rule Value: bad value" {
		t.Fatalf("unexpected tag error: %v", tagErr)
	}
}
