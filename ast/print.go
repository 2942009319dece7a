package ast

import (
	"fmt"
	"strings"
)

// Print returns a Lisp-style, fully-parenthesised representation of expr,
// in the style described by spec.md §8 (e.g. parsing "1 + 2 * 3" gives
// "(+ 1 (* 2 3))").
//
// It only handles expressions: it exists as the diagnostic tool that
// spec.md §1 calls out as a thin external collaborator of the core, applied
// to the result of the parser's Expression entry point and used by the "-p"
// flag of the CLI.
func Print(expr Expr) string {
	var b strings.Builder
	printExpr(&b, expr)
	return b.String()
}

func printExpr(b *strings.Builder, e Expr) {
	switch e := e.(type) {
	case *AssignExpr:
		parenthesise(b, "= "+e.Name.Lexeme, e.Value)
	case *BinaryExpr:
		parenthesise(b, e.Op.Lexeme, e.Left, e.Right)
	case *CallExpr:
		args := make([]Expr, 0, len(e.Args)+1)
		args = append(args, e.Callee)
		args = append(args, e.Args...)
		parenthesise(b, "call", args...)
	case *GetExpr:
		parenthesise(b, "get "+e.Name.Lexeme, e.Object)
	case *GroupingExpr:
		parenthesise(b, "group", e.Inner)
	case *LiteralExpr:
		b.WriteString(literalString(e.Value))
	case *LogicalExpr:
		parenthesise(b, e.Op.Lexeme, e.Left, e.Right)
	case *SetExpr:
		parenthesise(b, "set "+e.Name.Lexeme, e.Object, e.Value)
	case *SuperExpr:
		b.WriteString("(super " + e.Method.Lexeme + ")")
	case *ThisExpr:
		b.WriteString("this")
	case *UnaryExpr:
		parenthesise(b, e.Op.Lexeme, e.Right)
	case *VariableExpr:
		b.WriteString(e.Name.Lexeme)
	default:
		panic(fmt.Sprintf("ast.Print: unhandled expression type %T", e))
	}
}

func parenthesise(b *strings.Builder, name string, exprs ...Expr) {
	b.WriteString("(")
	b.WriteString(name)
	for _, e := range exprs {
		b.WriteString(" ")
		printExpr(b, e)
	}
	b.WriteString(")")
}

func literalString(v any) string {
	if v == nil {
		return "nil"
	}
	return fmt.Sprintf("%v", v)
}
