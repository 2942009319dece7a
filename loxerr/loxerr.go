// Package loxerr defines the error type used to report static and runtime
// errors in the format specified by spec.md §6-7:
//
//	[line N] Error: MESSAGE
//	[line N] Error at 'lexeme': MESSAGE
//	[line N] Error at end: MESSAGE
//
// and, for runtime errors, the shorter:
//
//	[line N] MESSAGE
//
// Colour is applied with github.com/fatih/color, which disables itself
// automatically when stdout/stderr aren't connected to a terminal (see the
// ansi package), so the literal text above is exactly what a non-interactive
// caller (a pipe, a test harness) observes.
package loxerr

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/marcuscaisey/loxygen/token"
)

var (
	bold = color.New(color.Bold)
	red  = color.New(color.FgRed)
)

// Error is a single error tied to a source line, optionally further
// localised to a specific token.
type Error struct {
	Line    int
	AtToken bool // whether Tok should be rendered as the "at LOC" segment
	Tok     token.Token
	Msg     string
	Runtime bool
}

// New creates a line-only static error (the scanner's style: no offending
// token, just a line number).
func New(line int, format string, args ...any) *Error {
	return &Error{Line: line, Msg: fmt.Sprintf(format, args...)}
}

// NewAtToken creates a static error localised to tok (the parser/resolver's
// style).
func NewAtToken(tok token.Token, format string, args ...any) *Error {
	return &Error{Line: tok.Line, AtToken: true, Tok: tok, Msg: fmt.Sprintf(format, args...)}
}

// NewRuntime creates a runtime error localised to tok, reported in the
// shorter "[line N] MESSAGE" form per spec.md §6.
func NewRuntime(tok token.Token, format string, args ...any) *Error {
	return &Error{Line: tok.Line, Tok: tok, Msg: fmt.Sprintf(format, args...), Runtime: true}
}

func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[line %d] ", e.Line)
	if e.Runtime {
		b.WriteString(e.Msg)
		return b.String()
	}

	bold.Fprint(&b, "Error")
	if e.AtToken {
		if e.Tok.Kind == token.EOF {
			b.WriteString(" at end")
		} else {
			fmt.Fprintf(&b, " at '%s'", e.Tok.Lexeme)
		}
	}
	fmt.Fprint(&b, ": ", red.Sprint(e.Msg))
	return b.String()
}

// List is an accumulated list of static errors, in the order they were
// reported. A non-empty List halts the pipeline at the stage that produced
// it (spec.md §7).
type List []*Error

func (l List) Error() string {
	lines := make([]string, len(l))
	for i, e := range l {
		lines[i] = e.Error()
	}
	return strings.Join(lines, "\n")
}

// HasErrors reports whether any errors have been accumulated.
func (l List) HasErrors() bool {
	return len(l) > 0
}
