package interpreter

import (
	"github.com/marcuscaisey/loxygen/loxerr"
	"github.com/marcuscaisey/loxygen/token"
)

// environment is a scope frame of name -> value bindings, linked to an
// enclosing frame (spec.md §3/§4.5). The root of the chain is the global
// environment.
type environment struct {
	enclosing *environment
	values    map[string]LoxObject
}

func newEnvironment(enclosing *environment) *environment {
	return &environment{enclosing: enclosing, values: map[string]LoxObject{}}
}

// define binds name to value in this environment, overwriting any existing
// binding. Re-declaration is legal at the environment level (the resolver
// already rejects it statically within a single lexical scope).
func (e *environment) define(name string, value LoxObject) {
	e.values[name] = value
}

// ancestor returns the environment d frames out from e. The caller
// guarantees d is within the chain's length (spec.md §4.5).
func (e *environment) ancestor(d int) *environment {
	env := e
	for range d {
		env = env.enclosing
	}
	return env
}

// get walks the chain looking for tok.Lexeme, raising a runtime error at
// tok's line if it's never defined.
func (e *environment) get(tok token.Token) LoxObject {
	for env := e; env != nil; env = env.enclosing {
		if v, ok := env.values[tok.Lexeme]; ok {
			return v
		}
	}
	panic(loxerr.NewRuntime(tok, "Undefined variable '%s'.", tok.Lexeme))
}

// getAt returns the value of name in the d-th enclosing environment,
// without walking further (used once the resolver has supplied a depth).
func (e *environment) getAt(d int, name string) LoxObject {
	return e.ancestor(d).values[name]
}

// assign walks the chain looking for an existing binding of tok.Lexeme and
// overwrites it, raising a runtime error at tok's line if it's never
// defined. Unlike define, assign never creates a new binding.
func (e *environment) assign(tok token.Token, value LoxObject) {
	for env := e; env != nil; env = env.enclosing {
		if _, ok := env.values[tok.Lexeme]; ok {
			env.values[tok.Lexeme] = value
			return
		}
	}
	panic(loxerr.NewRuntime(tok, "Undefined variable '%s'.", tok.Lexeme))
}

// assignAt overwrites the binding of tok.Lexeme in the d-th enclosing
// environment.
func (e *environment) assignAt(d int, tok token.Token, value LoxObject) {
	e.ancestor(d).values[tok.Lexeme] = value
}
