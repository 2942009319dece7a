package parser_test

import (
	"testing"

	"github.com/marcuscaisey/loxygen/ast"
	"github.com/marcuscaisey/loxygen/parser"
	"github.com/marcuscaisey/loxygen/scanner"
)

func parseExpr(t *testing.T, src string) ast.Expr {
	t.Helper()
	tokens, errs := scanner.Scan(src)
	if len(errs) > 0 {
		t.Fatalf("scan errors: %v", errs)
	}
	expr, parseErrs := parser.New(tokens).Expression()
	if len(parseErrs) > 0 {
		t.Fatalf("parse errors: %v", parseErrs)
	}
	return expr
}

func TestExpressionPrecedence(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"addition and multiplication", "1 + 2 * 3", "(+ 1 (* 2 3))"},
		{"grouping overrides precedence", "(1 + 2) * 3", "(* (group (+ 1 2)) 3)"},
		{"unary binds tighter than binary", "-1 + 2", "(+ (- 1) 2)"},
		{"comparison binds tighter than equality", "1 < 2 == 3 < 4", "(== (< 1 2) (< 3 4))"},
		{"logical or lower precedence than and", "1 or 2 and 3", "(or 1 (and 2 3))"},
		{"call", "f(1, 2)", "(call f 1 2)"},
		{"property access", "a.b.c", "(get c (get b a))"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr := parseExpr(t, tt.src)
			if got := ast.Print(expr); got != tt.want {
				t.Errorf("Print() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseProgram(t *testing.T) {
	src := `
	var a = 1;
	fun f(x) {
		return x + a;
	}
	print f(2);
	`
	tokens, errs := scanner.Scan(src)
	if len(errs) > 0 {
		t.Fatalf("scan errors: %v", errs)
	}
	program, parseErrs := parser.Parse(tokens)
	if len(parseErrs) > 0 {
		t.Fatalf("parse errors: %v", parseErrs)
	}
	if len(program.Stmts) != 3 {
		t.Fatalf("got %d statements, want 3", len(program.Stmts))
	}
	if _, ok := program.Stmts[0].(*ast.VarStmt); !ok {
		t.Errorf("statement 0 = %T, want *ast.VarStmt", program.Stmts[0])
	}
	if _, ok := program.Stmts[1].(*ast.FunctionDecl); !ok {
		t.Errorf("statement 1 = %T, want *ast.FunctionDecl", program.Stmts[1])
	}
	if _, ok := program.Stmts[2].(*ast.PrintStmt); !ok {
		t.Errorf("statement 2 = %T, want *ast.PrintStmt", program.Stmts[2])
	}
}

func TestParseErrorsAccumulateAcrossDeclarations(t *testing.T) {
	src := `
	var a = ;
	var b = ;
	var c = 3;
	`
	tokens, _ := scanner.Scan(src)
	_, errs := parser.Parse(tokens)
	if len(errs) != 2 {
		t.Fatalf("got %d errors, want 2 (one per malformed declaration): %v", len(errs), errs)
	}
}

func TestInvalidAssignmentTargetIsReportedNotThrown(t *testing.T) {
	tokens, _ := scanner.Scan("1 + 2 = 3;")
	program, errs := parser.Parse(tokens)
	if len(errs) != 1 {
		t.Fatalf("got %d errors, want 1: %v", len(errs), errs)
	}
	if len(program.Stmts) != 1 {
		t.Fatalf("got %d statements, want 1 (parsing should recover, not abort)", len(program.Stmts))
	}
}
