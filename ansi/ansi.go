// Package ansi reports whether ANSI colour output should be used, based on
// whether both stdout and stderr are connected to a terminal. It exists so
// that the rest of loxygen (loxerr, the interpreter's call-stack trace) can
// decide, once, whether fatih/color output will actually render as colour or
// as plain text.
package ansi

import (
	"os"

	"golang.org/x/term"
)

// Enabled reports whether stdout and stderr are both connected to a
// terminal. github.com/fatih/color already disables itself in this
// situation by default, but packages which build their own escape
// sequences (rather than going through fatih/color) can consult this
// directly.
var Enabled = term.IsTerminal(int(os.Stdout.Fd())) && term.IsTerminal(int(os.Stderr.Fd()))
