package scanner_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/marcuscaisey/loxygen/scanner"
	"github.com/marcuscaisey/loxygen/token"
)

func TestScanTokenKinds(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []token.Kind
	}{
		{
			name: "operators",
			src:  "+ - * / == != <= >= < > = !",
			want: []token.Kind{
				token.Plus, token.Minus, token.Star, token.Slash,
				token.EqualEqual, token.BangEqual, token.LessEqual, token.GreaterEqual,
				token.Less, token.Greater, token.Equal, token.Bang,
				token.EOF,
			},
		},
		{
			name: "keywords and identifiers",
			src:  "var foo = fun class this super nil true false",
			want: []token.Kind{
				token.Var, token.Ident, token.Equal, token.Fun, token.Class,
				token.This, token.Super, token.Nil, token.True, token.False,
				token.EOF,
			},
		},
		{
			name: "comment is ignored",
			src:  "1 // a comment\n2",
			want: []token.Kind{token.Number, token.Number, token.EOF},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, errs := scanner.Scan(tt.src)
			if len(errs) > 0 {
				t.Fatalf("unexpected errors: %v", errs)
			}
			var got []token.Kind
			for _, tok := range tokens {
				got = append(got, tok.Kind)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("token kinds mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestScanLiterals(t *testing.T) {
	tokens, errs := scanner.Scan(`"hello" 3.14 42`)
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}

	want := []any{"hello", 3.14, float64(42)}
	var got []any
	for _, tok := range tokens {
		if tok.Literal != nil {
			got = append(got, tok.Literal)
		}
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("literals mismatch (-want +got):\n%s", diff)
	}
}

func TestScanErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{
			name: "unexpected character",
			src:  "1 @ 2",
			want: []string{"Unexpected character."},
		},
		{
			name: "unterminated string",
			src:  `"abc`,
			want: []string{"Unterminated string."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, errs := scanner.Scan(tt.src)
			var got []string
			for _, e := range errs {
				got = append(got, e.Msg)
			}
			if diff := cmp.Diff(tt.want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("errors mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestScanAlwaysEndsWithEOF(t *testing.T) {
	tokens, _ := scanner.Scan("")
	if len(tokens) != 1 || tokens[0].Kind != token.EOF {
		t.Fatalf("scanning empty source = %v, want a single EOF token", tokens)
	}
}

func TestUnterminatedStringReportsOpeningLine(t *testing.T) {
	_, errs := scanner.Scan("\n\n\"abc")
	if len(errs) != 1 {
		t.Fatalf("got %d errors, want 1", len(errs))
	}
	if errs[0].Line != 3 {
		t.Errorf("error line = %d, want 3", errs[0].Line)
	}
}
