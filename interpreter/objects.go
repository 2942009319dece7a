package interpreter

import (
	"fmt"
	"strconv"

	"github.com/marcuscaisey/loxygen/ast"
	"github.com/marcuscaisey/loxygen/loxerr"
	"github.com/marcuscaisey/loxygen/token"
)

// LoxObject is the interface implemented by every Lox runtime value
// (spec.md §3's "Value (LoxObject)" tagged union). Rather than a closed sum
// type, loxygen follows the teacher's approach of modelling the union as an
// interface with a handful of optional capability interfaces (loxCallable,
// below) that a concrete type may or may not implement.
type LoxObject interface {
	String() string
	Type() string
}

// LoxNil is the Lox nil value. There is exactly one: Nil.
type LoxNil struct{}

// Nil is the singleton Lox nil value.
var Nil = LoxNil{}

func (LoxNil) String() string { return "nil" }
func (LoxNil) Type() string   { return "nil" }

// LoxBool is a Lox boolean value.
type LoxBool bool

func (b LoxBool) String() string {
	if b {
		return "true"
	}
	return "false"
}
func (LoxBool) Type() string { return "bool" }

// LoxNumber is a Lox number value, always a 64-bit float (spec.md §3).
type LoxNumber float64

// String formats n the way spec.md §4.4 requires: a whole-valued number
// prints without a trailing ".0", anything else keeps its decimal point.
func (n LoxNumber) String() string {
	return strconv.FormatFloat(float64(n), 'f', -1, 64)
}
func (LoxNumber) Type() string { return "number" }

// LoxString is a Lox string value.
type LoxString string

func (s LoxString) String() string { return string(s) }
func (LoxString) Type() string    { return "string" }

// isTruthy implements spec.md §4.4's truthiness rule: nil and false are
// falsy, everything else (including 0 and "") is truthy.
func isTruthy(v LoxObject) bool {
	switch v := v.(type) {
	case LoxNil:
		return false
	case LoxBool:
		return bool(v)
	default:
		return true
	}
}

// isEqual implements spec.md §4.4's equality rule: nil equals only nil,
// and numbers never equal booleans (or vice versa) even when the
// underlying scalar coincides.
func isEqual(a, b LoxObject) bool {
	switch a := a.(type) {
	case LoxNil:
		_, ok := b.(LoxNil)
		return ok
	case LoxBool:
		bb, ok := b.(LoxBool)
		return ok && a == bb
	case LoxNumber:
		bb, ok := b.(LoxNumber)
		return ok && a == bb
	case LoxString:
		bb, ok := b.(LoxString)
		return ok && a == bb
	default:
		return a == b
	}
}

// loxCallable is implemented by every value which can appear as the callee
// of a CallExpr: native functions, user-defined functions, and classes
// (calling a class constructs an instance).
type loxCallable interface {
	LoxObject
	Arity() int
	Call(interp *Interpreter, args []LoxObject) LoxObject
}

// NativeFunction is a built-in function implemented in Go, such as clock().
type NativeFunction struct {
	Name string
	Fn   func(interp *Interpreter, args []LoxObject) LoxObject
	Ar   int
}

func (f *NativeFunction) String() string            { return fmt.Sprintf("<native fn %s>", f.Name) }
func (f *NativeFunction) Type() string               { return "function" }
func (f *NativeFunction) Arity() int                 { return f.Ar }
func (f *NativeFunction) Call(interp *Interpreter, args []LoxObject) LoxObject {
	return f.Fn(interp, args)
}

// LoxFunction is a user-defined function or method. It holds a reference to
// the environment captured at its declaration site (its closure), which is
// never garbage-collected while the function is reachable (spec.md §3).
type LoxFunction struct {
	decl          *ast.FunctionDecl
	closure       *environment
	isInitialiser bool
}

func (f *LoxFunction) String() string { return fmt.Sprintf("<fn %s>", f.decl.Name.Lexeme) }
func (f *LoxFunction) Type() string   { return "function" }
func (f *LoxFunction) Arity() int     { return len(f.decl.Params) }

// Call binds the arguments positionally in a fresh environment rooted at
// the function's closure and executes its body. A returnSignal unwinds to
// here, where its value becomes the call's result, except for an
// initialiser, which always returns the bound instance regardless of
// whether a return signal was raised (spec.md §4.4).
func (f *LoxFunction) Call(interp *Interpreter, args []LoxObject) (result LoxObject) {
	if interp.Trace {
		interp.callStack.push(f.decl.Name.Lexeme, f.decl.Name)
		defer interp.callStack.pop()
	}

	env := newEnvironment(f.closure)
	for i, param := range f.decl.Params {
		env.define(param.Lexeme, args[i])
	}

	if f.isInitialiser {
		defer func() {
			if r := recover(); r != nil {
				if _, ok := r.(returnSignal); !ok {
					panic(r)
				}
			}
			result = f.closure.getAt(0, "this")
		}()
	} else {
		defer func() {
			if r := recover(); r != nil {
				ret, ok := r.(returnSignal)
				if !ok {
					panic(r)
				}
				result = ret.value
			}
		}()
	}

	interp.executeBlock(f.decl.Body, env)
	if f.isInitialiser {
		return f.closure.getAt(0, "this")
	}
	return Nil
}

// bind returns a copy of f whose closure has an extra innermost frame
// binding "this" to instance (spec.md §4.4's "bound method").
func (f *LoxFunction) bind(instance *LoxInstance) *LoxFunction {
	env := newEnvironment(f.closure)
	env.define("this", instance)
	return &LoxFunction{decl: f.decl, closure: env, isInitialiser: f.isInitialiser}
}

// LoxClass is a Lox class value. Calling it constructs a LoxInstance.
type LoxClass struct {
	Name       string
	Superclass *LoxClass
	Methods    map[string]*LoxFunction
}

func (c *LoxClass) String() string { return c.Name }
func (c *LoxClass) Type() string   { return "class" }

// findMethod looks up a method by name, walking the superclass chain.
func (c *LoxClass) findMethod(name string) (*LoxFunction, bool) {
	if m, ok := c.Methods[name]; ok {
		return m, true
	}
	if c.Superclass != nil {
		return c.Superclass.findMethod(name)
	}
	return nil, false
}

// Arity is the arity of "init", or 0 if the class has no initialiser.
func (c *LoxClass) Arity() int {
	if init, ok := c.findMethod("init"); ok {
		return init.Arity()
	}
	return 0
}

// Call constructs a new instance and, if the class (or a superclass) has an
// "init" method, binds it and calls it with args before returning the
// instance (spec.md §4.4).
func (c *LoxClass) Call(interp *Interpreter, args []LoxObject) LoxObject {
	instance := &LoxInstance{class: c, fields: map[string]LoxObject{}}
	if init, ok := c.findMethod("init"); ok {
		init.bind(instance).Call(interp, args)
	}
	return instance
}

// LoxInstance is an instance of a LoxClass. It owns its field mapping and
// holds a reference to its class (spec.md §5).
type LoxInstance struct {
	class  *LoxClass
	fields map[string]LoxObject
}

func (i *LoxInstance) String() string { return i.class.Name + " instance" }
func (i *LoxInstance) Type() string   { return "instance" }

// Get looks up a field first, then a method (bound to this instance),
// raising a runtime error if neither is found (spec.md §4.4).
func (i *LoxInstance) Get(name token.Token) LoxObject {
	if v, ok := i.fields[name.Lexeme]; ok {
		return v
	}
	if m, ok := i.class.findMethod(name.Lexeme); ok {
		return m.bind(i)
	}
	panic(loxerr.NewRuntime(name, "Undefined property '%s'.", name.Lexeme))
}

// Set unconditionally writes a field (spec.md §4.4).
func (i *LoxInstance) Set(name string, value LoxObject) {
	i.fields[name] = value
}

var (
	_ loxCallable = (*NativeFunction)(nil)
	_ loxCallable = (*LoxFunction)(nil)
	_ loxCallable = (*LoxClass)(nil)
)
