// Package interpreter implements the tree-walking evaluator described in
// spec.md §4.4: it evaluates statements for their side effects and
// expressions for their values, against a chain of lexically-scoped
// environments and the runtime value types defined in objects.go.
package interpreter

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/marcuscaisey/loxygen/ast"
	"github.com/marcuscaisey/loxygen/loxerr"
	"github.com/marcuscaisey/loxygen/resolver"
	"github.com/marcuscaisey/loxygen/token"
)

// returnSignal is the non-error unwind mechanism used to implement return
// (spec.md §5). It is never surfaced to callers of Interpret/Interpret
// methods: LoxFunction.Call always recovers it.
type returnSignal struct {
	value LoxObject
}

// Interpreter evaluates a Lox program's AST. An Interpreter instance owns
// the global environment and outlives individual Interpret calls so that
// global state (and the REPL's bindings) persists across lines (spec.md §5).
type Interpreter struct {
	globals *environment
	env     *environment
	locals  resolver.Locals

	Stdout io.Writer

	// Trace enables capturing a call stack trace (see callstack.go) whenever
	// a runtime error is raised, retrievable afterwards with StackTrace.
	Trace     bool
	callStack *callStack
	trace     string
}

// New constructs an Interpreter with the clock() native bound in the global
// environment.
func New() *Interpreter {
	globals := newEnvironment(nil)
	interp := &Interpreter{
		globals:   globals,
		env:       globals,
		locals:    resolver.Locals{},
		Stdout:    os.Stdout,
		callStack: &callStack{},
	}
	defineBuiltins(globals)
	return interp
}

// StackTrace returns the call stack captured at the most recent runtime
// error, or "" if Trace was disabled or no runtime error has occurred yet.
func (interp *Interpreter) StackTrace() string {
	return interp.trace
}

// Interpret merges locals, the resolver's side table for program, into any
// previously merged locals (so that a REPL session which re-resolves
// closures over previous lines keeps working) and then executes program's
// statements. A
// runtime error aborts the run and is returned; it is never panicked back
// out to the caller.
func (interp *Interpreter) Interpret(program *ast.Program, locals resolver.Locals) (err error) {
	for expr, depth := range locals {
		interp.locals[expr] = depth
	}

	defer func() {
		if r := recover(); r != nil {
			loxErr, ok := r.(*loxerr.Error)
			if !ok {
				panic(r)
			}
			if interp.Trace {
				interp.trace = interp.callStack.String()
			}
			err = loxErr
		}
	}()

	interp.executeStmts(program.Stmts)
	return nil
}

func (interp *Interpreter) executeStmts(stmts []ast.Stmt) {
	for _, stmt := range stmts {
		interp.execute(stmt)
	}
}

func (interp *Interpreter) execute(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.BlockStmt:
		interp.executeBlock(s.Stmts, newEnvironment(interp.env))
	case *ast.ClassDecl:
		interp.executeClassDecl(s)
	case *ast.ExprStmt:
		interp.evaluate(s.Expr)
	case *ast.FunctionDecl:
		fn := &LoxFunction{decl: s, closure: interp.env}
		interp.env.define(s.Name.Lexeme, fn)
	case *ast.IfStmt:
		if isTruthy(interp.evaluate(s.Cond)) {
			interp.execute(s.Then)
		} else if s.Else != nil {
			interp.execute(s.Else)
		}
	case *ast.PrintStmt:
		fmt.Fprintln(interp.Stdout, interp.evaluate(s.Expr).String())
	case *ast.ReturnStmt:
		var value LoxObject = Nil
		if s.Value != nil {
			value = interp.evaluate(s.Value)
		}
		panic(returnSignal{value: value})
	case *ast.VarStmt:
		var value LoxObject = Nil
		if s.Initialiser != nil {
			value = interp.evaluate(s.Initialiser)
		}
		interp.env.define(s.Name.Lexeme, value)
	case *ast.WhileStmt:
		for isTruthy(interp.evaluate(s.Cond)) {
			interp.execute(s.Body)
		}
	default:
		panic("interpreter: unhandled statement type")
	}
}

// executeBlock runs stmts with env as the current environment, always
// restoring the previous environment afterwards (including when a
// returnSignal or runtime error unwinds through it).
func (interp *Interpreter) executeBlock(stmts []ast.Stmt, env *environment) {
	previous := interp.env
	interp.env = env
	defer func() { interp.env = previous }()
	interp.executeStmts(stmts)
}

// executeClassDecl implements spec.md §4.4's class declaration semantics:
// evaluate the superclass expression (if any) and check it names a class,
// bind "super" in a scope wrapping the method closures, build the method
// table, then bind the class's name to the resulting LoxClass value.
func (interp *Interpreter) executeClassDecl(s *ast.ClassDecl) {
	var superclass *LoxClass
	if s.Superclass != nil {
		obj := interp.evaluate(s.Superclass)
		class, ok := obj.(*LoxClass)
		if !ok {
			panic(loxerr.NewRuntime(s.Superclass.Name, "Superclass must be a class."))
		}
		superclass = class
	}

	interp.env.define(s.Name.Lexeme, Nil)

	methodEnv := interp.env
	if s.Superclass != nil {
		methodEnv = newEnvironment(interp.env)
		methodEnv.define("super", superclass)
	}

	methods := make(map[string]*LoxFunction, len(s.Methods))
	for _, m := range s.Methods {
		methods[m.Name.Lexeme] = &LoxFunction{
			decl:          m,
			closure:       methodEnv,
			isInitialiser: m.Name.Lexeme == "init",
		}
	}

	class := &LoxClass{Name: s.Name.Lexeme, Superclass: superclass, Methods: methods}
	interp.env.assign(s.Name, class)
}

func (interp *Interpreter) evaluate(expr ast.Expr) LoxObject {
	switch e := expr.(type) {
	case *ast.AssignExpr:
		value := interp.evaluate(e.Value)
		if depth, ok := interp.locals[e]; ok {
			interp.env.assignAt(depth, e.Name, value)
		} else {
			interp.globals.assign(e.Name, value)
		}
		return value
	case *ast.BinaryExpr:
		return interp.evalBinary(e)
	case *ast.CallExpr:
		return interp.evalCall(e)
	case *ast.GetExpr:
		return interp.evalGet(e)
	case *ast.GroupingExpr:
		return interp.evaluate(e.Inner)
	case *ast.LiteralExpr:
		return literalObject(e.Value)
	case *ast.LogicalExpr:
		return interp.evalLogical(e)
	case *ast.SetExpr:
		return interp.evalSet(e)
	case *ast.SuperExpr:
		return interp.evalSuper(e)
	case *ast.ThisExpr:
		return interp.lookUpVariable(e.Keyword, e)
	case *ast.UnaryExpr:
		return interp.evalUnary(e)
	case *ast.VariableExpr:
		return interp.lookUpVariable(e.Name, e)
	default:
		panic("interpreter: unhandled expression type")
	}
}

func literalObject(v any) LoxObject {
	switch v := v.(type) {
	case nil:
		return Nil
	case bool:
		return LoxBool(v)
	case float64:
		return LoxNumber(v)
	case string:
		return LoxString(v)
	default:
		panic(fmt.Sprintf("interpreter: unhandled literal type %T", v))
	}
}

// lookUpVariable implements spec.md §4.4's variable lookup: read via
// env.ancestor(d).values[name] if e has a resolved depth, otherwise fall
// through to the global environment.
func (interp *Interpreter) lookUpVariable(name token.Token, e ast.Expr) LoxObject {
	if depth, ok := interp.locals[e]; ok {
		return interp.env.getAt(depth, name.Lexeme)
	}
	return interp.globals.get(name)
}

func (interp *Interpreter) evalLogical(e *ast.LogicalExpr) LoxObject {
	left := interp.evaluate(e.Left)
	if e.Op.Kind == token.Or {
		if isTruthy(left) {
			return left
		}
	} else {
		if !isTruthy(left) {
			return left
		}
	}
	return interp.evaluate(e.Right)
}

func (interp *Interpreter) evalUnary(e *ast.UnaryExpr) LoxObject {
	right := interp.evaluate(e.Right)
	switch e.Op.Kind {
	case token.Minus:
		n, ok := right.(LoxNumber)
		if !ok {
			panic(loxerr.NewRuntime(e.Op, "Operand must be a number."))
		}
		return -n
	case token.Bang:
		return LoxBool(!isTruthy(right))
	default:
		panic("interpreter: unhandled unary operator")
	}
}

// evalBinary implements spec.md §4.4's arithmetic and comparison rules: '+'
// works on two numbers or two strings only, '- * /' and the comparisons
// require both operands to be numbers, and division by 0.0 yields NaN
// rather than an error.
func (interp *Interpreter) evalBinary(e *ast.BinaryExpr) LoxObject {
	left := interp.evaluate(e.Left)
	right := interp.evaluate(e.Right)

	switch e.Op.Kind {
	case token.BangEqual:
		return LoxBool(!isEqual(left, right))
	case token.EqualEqual:
		return LoxBool(isEqual(left, right))
	case token.Plus:
		if ln, ok := left.(LoxNumber); ok {
			if rn, ok := right.(LoxNumber); ok {
				return ln + rn
			}
		}
		if ls, ok := left.(LoxString); ok {
			if rs, ok := right.(LoxString); ok {
				return ls + rs
			}
		}
		panic(loxerr.NewRuntime(e.Op, "Operands must be two numbers or two strings."))
	}

	ln, lok := left.(LoxNumber)
	rn, rok := right.(LoxNumber)
	if !lok || !rok {
		panic(loxerr.NewRuntime(e.Op, "Operands must be numbers."))
	}
	switch e.Op.Kind {
	case token.Minus:
		return ln - rn
	case token.Slash:
		if rn == 0 {
			return LoxNumber(math.NaN()) // division by 0 yields NaN, never an error
		}
		return ln / rn
	case token.Star:
		return ln * rn
	case token.Greater:
		return LoxBool(ln > rn)
	case token.GreaterEqual:
		return LoxBool(ln >= rn)
	case token.Less:
		return LoxBool(ln < rn)
	case token.LessEqual:
		return LoxBool(ln <= rn)
	default:
		panic("interpreter: unhandled binary operator")
	}
}

func (interp *Interpreter) evalCall(e *ast.CallExpr) LoxObject {
	callee := interp.evaluate(e.Callee)

	args := make([]LoxObject, len(e.Args))
	for i, a := range e.Args {
		args[i] = interp.evaluate(a)
	}

	fn, ok := callee.(loxCallable)
	if !ok {
		panic(loxerr.NewRuntime(e.Paren, "Can only call functions and classes."))
	}
	if len(args) != fn.Arity() {
		panic(loxerr.NewRuntime(e.Paren, "Expected %d arguments but got %d.", fn.Arity(), len(args)))
	}
	return fn.Call(interp, args)
}

func (interp *Interpreter) evalGet(e *ast.GetExpr) LoxObject {
	obj := interp.evaluate(e.Object)
	instance, ok := obj.(*LoxInstance)
	if !ok {
		panic(loxerr.NewRuntime(e.Name, "Only instances have properties."))
	}
	return instance.Get(e.Name)
}

func (interp *Interpreter) evalSet(e *ast.SetExpr) LoxObject {
	obj := interp.evaluate(e.Object)
	instance, ok := obj.(*LoxInstance)
	if !ok {
		panic(loxerr.NewRuntime(e.Name, "Only instances have fields."))
	}
	value := interp.evaluate(e.Value)
	instance.Set(e.Name.Lexeme, value)
	return value
}

// evalSuper implements spec.md §4.4's super.method dispatch: at depth d,
// "super" lives at ancestor(d) and "this" at ancestor(d-1).
func (interp *Interpreter) evalSuper(e *ast.SuperExpr) LoxObject {
	depth := interp.locals[e] // always present: the resolver always resolves super
	superclass := interp.env.getAt(depth, "super").(*LoxClass)
	instance := interp.env.getAt(depth-1, "this").(*LoxInstance)

	method, ok := superclass.findMethod(e.Method.Lexeme)
	if !ok {
		panic(loxerr.NewRuntime(e.Method, "Undefined property '%s'.", e.Method.Lexeme))
	}
	return method.bind(instance)
}
