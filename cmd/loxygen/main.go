// Command loxygen is the entry point for the Lox interpreter described in
// spec.md §6: run a script file, run a program passed with -c, print a
// program's AST with -p, or start a REPL when no script is given.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/marcuscaisey/loxygen/ansi"
	"github.com/marcuscaisey/loxygen/ast"
	"github.com/marcuscaisey/loxygen/interpreter"
	"github.com/marcuscaisey/loxygen/loxerr"
	"github.com/marcuscaisey/loxygen/parser"
	"github.com/marcuscaisey/loxygen/resolver"
	"github.com/marcuscaisey/loxygen/scanner"
)

// Exit codes, per spec.md §6.
const (
	exitOK      = 0
	exitUsage   = 64
	exitStatic  = 65
	exitRuntime = 70
)

var (
	cmd      = flag.String("c", "", "Program passed in as a string")
	printAST = flag.Bool("p", false, "Print the parsed expression's AST instead of running it")
	trace    = flag.Bool("trace", false, "Print a call stack trace alongside an uncaught runtime error")
)

// usage prints to stdout, not stderr: spec.md §6 requires the
// too-many-arguments usage message go to stdout.
func usage() {
	fmt.Fprintln(os.Stdout, "Usage: loxygen [script]")
}

func main() {
	flag.Usage = usage
	flag.Parse()

	if *cmd != "" {
		interp := interpreter.New()
		interp.Trace = *trace
		os.Exit(runSource(*cmd, interp))
	}

	switch len(flag.Args()) {
	case 0:
		os.Exit(runREPL())
	case 1:
		os.Exit(runFile(flag.Arg(0)))
	default:
		flag.Usage()
		os.Exit(exitUsage)
	}
}

// run executes src's statements against interp, returning:
//   - exitStatic if scanning, parsing, or resolving reported any errors
//   - exitRuntime if a runtime error occurred
//   - exitOK otherwise
//
// It implements the "-p" flag by printing each top-level expression
// statement's AST instead of evaluating the program, using ast.Print (the
// diagnostic AST-printer tool spec.md §1 calls out as a thin collaborator).
func run(src string, interp *interpreter.Interpreter) int {
	tokens, scanErrs := scanner.Scan(src)
	if len(scanErrs) > 0 {
		for _, e := range scanErrs {
			fmt.Fprintln(os.Stderr, loxerr.New(e.Line, "%s", e.Error()))
		}
		return exitStatic
	}

	program, parseErrs := parser.Parse(tokens)
	if len(parseErrs) > 0 {
		printErrors(parseErrs)
		return exitStatic
	}

	if *printAST {
		for _, stmt := range program.Stmts {
			if exprStmt, ok := stmt.(*ast.ExprStmt); ok {
				fmt.Fprintln(interp.Stdout, ast.Print(exprStmt.Expr))
			}
		}
		return exitOK
	}

	locals, resolveErrs := resolver.Resolve(program)
	if len(resolveErrs) > 0 {
		printErrors(resolveErrs)
		return exitStatic
	}

	if err := interp.Interpret(program, locals); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if interp.Trace {
			if trace := interp.StackTrace(); trace != "" {
				fmt.Fprintln(os.Stderr, trace)
			}
		}
		return exitRuntime
	}

	return exitOK
}

func runSource(src string, interp *interpreter.Interpreter) int {
	return run(src, interp)
}

func printErrors(errs loxerr.List) {
	for _, e := range errs {
		fmt.Fprintln(os.Stderr, e)
	}
}

func runFile(name string) int {
	src, err := os.ReadFile(name)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitRuntime
	}
	interp := interpreter.New()
	interp.Trace = *trace
	return run(string(src), interp)
}

// runREPL reads one line at a time from standard input, running each with
// the same *interpreter.Interpreter so that global state (variables,
// functions, classes) persists across lines, per spec.md §5 and §6. It stops
// on EOF (Ctrl-D) or an empty line.
func runREPL() int {
	cfg := &readline.Config{Prompt: ">>> "}
	if home, err := os.UserHomeDir(); err == nil {
		cfg.HistoryFile = path.Join(home, ".lox_history")
	}

	rl, err := readline.NewEx(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitRuntime
	}
	defer rl.Close()

	banner := "Welcome to loxygen."
	if ansi.Enabled {
		banner = color.New(color.Bold).Sprint(banner)
	}
	fmt.Fprintln(os.Stderr, banner)

	interp := interpreter.New()
	interp.Trace = *trace
	for {
		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			if errors.Is(err, io.EOF) {
				break
			}
			fmt.Fprintln(os.Stderr, err)
			return exitRuntime
		}
		if strings.TrimSpace(line) == "" {
			break
		}
		run(line, interp)
	}

	return exitOK
}
