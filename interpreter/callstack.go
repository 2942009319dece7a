package interpreter

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"github.com/marcuscaisey/loxygen/token"
)

// callStack tracks the chain of user-defined function calls currently in
// progress, purely for diagnostics: the CLI's "-trace" flag prints it after
// an uncaught runtime error to show the caller chain,
// which bare "[line N] MESSAGE" runtime errors otherwise don't convey.
//
// It plays no part in evaluation itself; LoxFunction.Call pushes/pops a
// frame around the body it executes, and the Interpreter snapshots the
// stack into a string at the moment a runtime error is recovered.
type callStack struct {
	frames []stackFrame
}

type stackFrame struct {
	function string
	callSite token.Token
}

func (cs *callStack) push(function string, callSite token.Token) {
	cs.frames = append(cs.frames, stackFrame{function: function, callSite: callSite})
}

func (cs *callStack) pop() {
	cs.frames = cs.frames[:len(cs.frames)-1]
}

var (
	traceBold  = color.New(color.Bold)
	traceFaint = color.New(color.Faint)
)

// String renders the stack, most recent call first, with the function
// names column-aligned using rune-width-aware padding (multi-width
// identifiers aren't valid Lox, so in practice this pads ASCII names).
func (cs *callStack) String() string {
	if len(cs.frames) == 0 {
		return ""
	}

	var b strings.Builder
	traceBold.Fprintln(&b, "Stack trace (most recent call first):")

	nameWidth := 0
	for _, f := range cs.frames {
		nameWidth = max(nameWidth, runewidth.StringWidth(f.function))
	}

	for i := len(cs.frames) - 1; i >= 0; i-- {
		f := cs.frames[i]
		fmt.Fprintf(&b, "  %s  %s\n", runewidth.FillRight(f.function, nameWidth), traceFaint.Sprintf("[line %d]", f.callSite.Line))
	}

	return strings.TrimSuffix(b.String(), "\n")
}
