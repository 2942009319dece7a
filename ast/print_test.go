package ast_test

import (
	"testing"

	"github.com/marcuscaisey/loxygen/ast"
	"github.com/marcuscaisey/loxygen/parser"
	"github.com/marcuscaisey/loxygen/scanner"
)

func TestPrint(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "precedence",
			src:  "1 + 2 * 3",
			want: "(+ 1 (* 2 3))",
		},
		{
			name: "grouping",
			src:  "(1 + 2) * 3",
			want: "(* (group (+ 1 2)) 3)",
		},
		{
			name: "unary",
			src:  "-1",
			want: "(- 1)",
		},
		{
			name: "string literal",
			src:  `"hi"`,
			want: `hi`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, errs := scanner.Scan(tt.src)
			if len(errs) > 0 {
				t.Fatalf("scan errors: %v", errs)
			}
			expr, parseErrs := parser.New(tokens).Expression()
			if len(parseErrs) > 0 {
				t.Fatalf("parse errors: %v", parseErrs)
			}
			if got := ast.Print(expr); got != tt.want {
				t.Errorf("Print() = %q, want %q", got, tt.want)
			}
		})
	}
}
