// Package resolver implements the static analysis pass that runs between
// parsing and interpretation (spec.md §4.3). It walks the AST once, binds
// every variable-referencing expression to a lexical scope depth, and
// enforces the language's static rules (illegal this/super/return,
// self-inheriting classes, re-declaration in the same scope, reading a local
// in its own initialiser).
package resolver

import (
	"github.com/marcuscaisey/loxygen/ast"
	"github.com/marcuscaisey/loxygen/loxerr"
	"github.com/marcuscaisey/loxygen/token"
)

// Locals is the side table mapping a variable-referencing expression
// (Variable, Assign, This, or Super) to the number of enclosing scopes to
// walk at lookup time. An absent entry means "resolve through the global
// environment" (spec.md §3).
//
// Expressions are always *ast.XxxExpr pointers (see the ast package's
// doc comment), so the map key is pointer identity: two textually
// identical variable references never collide.
type Locals map[ast.Expr]int

type functionType int

const (
	functionNone functionType = iota
	functionFunction
	functionInitialiser
	functionMethod
)

type classType int

const (
	classNone classType = iota
	classClass
	classSubclass
)

type scope map[string]bool // name -> defined

// Resolver performs the single pre-pass described in spec.md §4.3.
type Resolver struct {
	scopes          []scope
	locals          Locals
	currentFunction functionType
	currentClass    classType
	errs            loxerr.List
}

// New constructs a Resolver.
func New() *Resolver {
	return &Resolver{locals: Locals{}}
}

// Resolve resolves program and returns the locals side table together with
// any static errors found.
func Resolve(program *ast.Program) (Locals, loxerr.List) {
	r := New()
	r.ResolveProgram(program)
	return r.locals, r.errs
}

// ResolveProgram resolves every statement in program at the top level
// (global scope, no enclosing scopes pushed).
func (r *Resolver) ResolveProgram(program *ast.Program) {
	r.resolveStmts(program.Stmts)
}

func (r *Resolver) errorAt(tok token.Token, format string, args ...any) {
	r.errs = append(r.errs, loxerr.NewAtToken(tok, format, args...))
}

// --- scope stack ---

func (r *Resolver) beginScope() {
	r.scopes = append(r.scopes, scope{})
}

func (r *Resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

func (r *Resolver) peekScope() scope {
	return r.scopes[len(r.scopes)-1]
}

func (r *Resolver) declare(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	scope := r.peekScope()
	if _, ok := scope[name.Lexeme]; ok {
		r.errorAt(name, "Already a variable with this name in this scope.")
	}
	scope[name.Lexeme] = false
}

func (r *Resolver) define(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	r.peekScope()[name.Lexeme] = true
}

// resolveLocal walks the scope stack from innermost outward, recording the
// depth at which name is found in locals[expr]. If name isn't found in any
// scope, it's assumed global and no entry is recorded.
func (r *Resolver) resolveLocal(expr ast.Expr, name token.Token) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name.Lexeme]; ok {
			r.locals[expr] = len(r.scopes) - 1 - i
			return
		}
	}
}

// --- statements ---

func (r *Resolver) resolveStmts(stmts []ast.Stmt) {
	for _, stmt := range stmts {
		r.resolveStmt(stmt)
	}
}

func (r *Resolver) resolveStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.BlockStmt:
		r.beginScope()
		r.resolveStmts(s.Stmts)
		r.endScope()
	case *ast.ClassDecl:
		r.resolveClassDecl(s)
	case *ast.ExprStmt:
		r.resolveExpr(s.Expr)
	case *ast.FunctionDecl:
		r.declare(s.Name)
		r.define(s.Name)
		r.resolveFunction(s, functionFunction)
	case *ast.IfStmt:
		r.resolveExpr(s.Cond)
		r.resolveStmt(s.Then)
		if s.Else != nil {
			r.resolveStmt(s.Else)
		}
	case *ast.PrintStmt:
		r.resolveExpr(s.Expr)
	case *ast.ReturnStmt:
		r.resolveReturnStmt(s)
	case *ast.VarStmt:
		r.declare(s.Name)
		if s.Initialiser != nil {
			r.resolveExpr(s.Initialiser)
		}
		r.define(s.Name)
	case *ast.WhileStmt:
		r.resolveExpr(s.Cond)
		r.resolveStmt(s.Body)
	default:
		panic("resolver: unhandled statement type")
	}
}

func (r *Resolver) resolveReturnStmt(s *ast.ReturnStmt) {
	if r.currentFunction == functionNone {
		r.errorAt(s.Keyword, "Can't return from top-level code.")
	}
	if s.Value != nil {
		if r.currentFunction == functionInitialiser {
			r.errorAt(s.Keyword, "Can't return a value from an initializer.")
		}
		r.resolveExpr(s.Value)
	}
}

func (r *Resolver) resolveClassDecl(s *ast.ClassDecl) {
	enclosingClass := r.currentClass
	r.currentClass = classClass

	r.declare(s.Name)
	r.define(s.Name)

	if s.Superclass != nil {
		if s.Superclass.Name.Lexeme == s.Name.Lexeme {
			r.errorAt(s.Superclass.Name, "A class can't inherit from itself.")
		}
		r.currentClass = classSubclass
		r.resolveExpr(s.Superclass)

		r.beginScope()
		r.peekScope()["super"] = true
	}

	r.beginScope()
	r.peekScope()["this"] = true

	for _, method := range s.Methods {
		fnType := functionMethod
		if method.Name.Lexeme == "init" {
			fnType = functionInitialiser
		}
		r.resolveFunction(method, fnType)
	}

	r.endScope()

	if s.Superclass != nil {
		r.endScope()
	}

	r.currentClass = enclosingClass
}

func (r *Resolver) resolveFunction(fn *ast.FunctionDecl, fnType functionType) {
	enclosingFunction := r.currentFunction
	r.currentFunction = fnType

	r.beginScope()
	for _, param := range fn.Params {
		r.declare(param)
		r.define(param)
	}
	r.resolveStmts(fn.Body)
	r.endScope()

	r.currentFunction = enclosingFunction
}

// --- expressions ---

func (r *Resolver) resolveExpr(expr ast.Expr) {
	switch e := expr.(type) {
	case *ast.AssignExpr:
		r.resolveExpr(e.Value)
		r.resolveLocal(e, e.Name)
	case *ast.BinaryExpr:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)
	case *ast.CallExpr:
		r.resolveExpr(e.Callee)
		for _, arg := range e.Args {
			r.resolveExpr(arg)
		}
	case *ast.GetExpr:
		r.resolveExpr(e.Object)
	case *ast.GroupingExpr:
		r.resolveExpr(e.Inner)
	case *ast.LiteralExpr:
		// nothing to resolve
	case *ast.LogicalExpr:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)
	case *ast.SetExpr:
		r.resolveExpr(e.Value)
		r.resolveExpr(e.Object)
	case *ast.SuperExpr:
		r.resolveSuperExpr(e)
	case *ast.ThisExpr:
		if r.currentClass == classNone {
			r.errorAt(e.Keyword, "Can't use 'this' outside of a class.")
			return
		}
		r.resolveLocal(e, e.Keyword)
	case *ast.UnaryExpr:
		r.resolveExpr(e.Right)
	case *ast.VariableExpr:
		r.resolveVariableExpr(e)
	default:
		panic("resolver: unhandled expression type")
	}
}

func (r *Resolver) resolveSuperExpr(e *ast.SuperExpr) {
	switch r.currentClass {
	case classNone:
		r.errorAt(e.Keyword, "Can't use 'super' outside of a class.")
	case classClass:
		r.errorAt(e.Keyword, "Can't use 'super' in a class with no superclass.")
	}
	r.resolveLocal(e, e.Keyword)
}

func (r *Resolver) resolveVariableExpr(e *ast.VariableExpr) {
	if len(r.scopes) > 0 {
		if defined, ok := r.peekScope()[e.Name.Lexeme]; ok && !defined {
			r.errorAt(e.Name, "Can't read local variable in its own initializer.")
			return
		}
	}
	r.resolveLocal(e, e.Name)
}
