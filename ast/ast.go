// Package ast defines the types used to represent the abstract syntax tree
// of a Lox program.
//
// Every node is always handled through a pointer, never a value: this gives
// each occurrence of, say, a VariableExpr in the source a distinct identity
// (the pointer itself), which is exactly what the resolver's side table
// (see the resolver package) needs in order to tell two textually identical
// variable references in different scopes apart.
package ast

import "github.com/marcuscaisey/loxygen/token"

// Node is the interface implemented by all AST nodes.
type Node interface {
	// Line returns the source line that best represents this node, used for
	// error reporting.
	Line() int
}

// Expr is the interface implemented by all expression nodes.
//
//sumtype:decl
type Expr interface {
	Node
	isExpr()
}

type expr struct{}

func (expr) isExpr() {}

// Stmt is the interface implemented by all statement nodes.
//
//sumtype:decl
type Stmt interface {
	Node
	isStmt()
}

type stmt struct{}

func (stmt) isStmt() {}

// Program is the root node produced by the parser.
type Program struct {
	Stmts []Stmt
}

// AssignExpr is an assignment expression, such as a = 2.
type AssignExpr struct {
	Name  token.Token
	Value Expr
	expr
}

func (e *AssignExpr) Line() int { return e.Name.Line }

// BinaryExpr is a binary operator expression, such as a + b.
type BinaryExpr struct {
	Left  Expr
	Op    token.Token
	Right Expr
	expr
}

func (e *BinaryExpr) Line() int { return e.Op.Line }

// CallExpr is a function or method call, such as f(1, 2).
type CallExpr struct {
	Callee Expr
	Paren  token.Token // the closing ')', used to report arity errors
	Args   []Expr
	expr
}

func (e *CallExpr) Line() int { return e.Paren.Line }

// GetExpr is a property access, such as a.b.
type GetExpr struct {
	Object Expr
	Name   token.Token
	expr
}

func (e *GetExpr) Line() int { return e.Name.Line }

// GroupingExpr is a parenthesised expression, such as (a + b).
type GroupingExpr struct {
	Inner Expr
	expr
}

func (e *GroupingExpr) Line() int { return e.Inner.Line() }

// LiteralExpr is a literal value, such as 123, "abc", true, or nil.
type LiteralExpr struct {
	Value any // float64, string, bool, or nil
	Tok   token.Token
	expr
}

func (e *LiteralExpr) Line() int { return e.Tok.Line }

// LogicalExpr is a short-circuiting and/or expression.
type LogicalExpr struct {
	Left  Expr
	Op    token.Token
	Right Expr
	expr
}

func (e *LogicalExpr) Line() int { return e.Op.Line }

// SetExpr is a property assignment, such as a.b = c.
type SetExpr struct {
	Object Expr
	Name   token.Token
	Value  Expr
	expr
}

func (e *SetExpr) Line() int { return e.Name.Line }

// SuperExpr is a superclass method reference, such as super.m.
type SuperExpr struct {
	Keyword token.Token
	Method  token.Token
	expr
}

func (e *SuperExpr) Line() int { return e.Keyword.Line }

// ThisExpr is a this reference.
type ThisExpr struct {
	Keyword token.Token
	expr
}

func (e *ThisExpr) Line() int { return e.Keyword.Line }

// UnaryExpr is a unary operator expression, such as -a or !a.
type UnaryExpr struct {
	Op    token.Token
	Right Expr
	expr
}

func (e *UnaryExpr) Line() int { return e.Op.Line }

// VariableExpr is a variable reference, such as a.
type VariableExpr struct {
	Name token.Token
	expr
}

func (e *VariableExpr) Line() int { return e.Name.Line }

// BlockStmt is a brace-delimited sequence of statements introducing a new scope.
type BlockStmt struct {
	LeftBrace token.Token
	Stmts     []Stmt
	stmt
}

func (s *BlockStmt) Line() int { return s.LeftBrace.Line }

// ExprStmt is an expression evaluated for its side effects, such as a function call.
type ExprStmt struct {
	Expr Expr
	stmt
}

func (s *ExprStmt) Line() int { return s.Expr.Line() }

// FunctionDecl is a named function declaration, such as fun f(a, b) { ... },
// or a method inside a ClassDecl's Methods.
type FunctionDecl struct {
	Name   token.Token
	Params []token.Token
	Body   []Stmt
	stmt
}

func (s *FunctionDecl) Line() int { return s.Name.Line }

// ClassDecl is a class declaration, such as class C < Base { ... }.
type ClassDecl struct {
	Name       token.Token
	Superclass *VariableExpr // nil if there is no superclass
	Methods    []*FunctionDecl
	stmt
}

func (s *ClassDecl) Line() int { return s.Name.Line }

// IfStmt is a conditional statement, such as if (c) s1 else s2.
type IfStmt struct {
	If   token.Token
	Cond Expr
	Then Stmt
	Else Stmt // nil if there is no else branch
	stmt
}

func (s *IfStmt) Line() int { return s.If.Line }

// PrintStmt is a print statement, such as print a.
type PrintStmt struct {
	Print token.Token
	Expr  Expr
	stmt
}

func (s *PrintStmt) Line() int { return s.Print.Line }

// ReturnStmt is a return statement, such as return a or a bare return.
type ReturnStmt struct {
	Keyword token.Token
	Value   Expr // nil for a bare return
	stmt
}

func (s *ReturnStmt) Line() int { return s.Keyword.Line }

// VarStmt is a variable declaration, such as var a = 123 or var b.
type VarStmt struct {
	Name        token.Token
	Initialiser Expr // nil if there is no initialiser
	stmt
}

func (s *VarStmt) Line() int { return s.Name.Line }

// WhileStmt is a while loop, such as while (c) body.
//
// for loops are desugared into WhileStmt by the parser (see spec.md §4.2);
// there is no separate ForStmt node.
type WhileStmt struct {
	While token.Token
	Cond  Expr
	Body  Stmt
	stmt
}

func (s *WhileStmt) Line() int { return s.While.Line }
