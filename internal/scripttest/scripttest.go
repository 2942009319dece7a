// Package scripttest drives the testdata/*.lox scenario fixtures described
// in spec.md §6: each file is run through the full scan -> parse -> resolve
// -> interpret pipeline and its stdout/stderr are checked against
// expectations embedded as comments in the file itself, in the style of the
// teacher's test/loxtest package.
//
// A fixture line may carry one of three comment conventions:
//
//	print "hi";              // expect: hi
//	"a" + 1;                 // expect runtime error: Operands must be two numbers or two strings.
//	{ var a = a; }           // [line 1] Error at 'a': Can't read local variable in its own initializer.
//
// "expect" lines are matched against a line of stdout, in order. An "expect
// runtime error" or a bare "[line N] Error..." line is matched against
// stderr: the former also asserts the process's conceptual exit status is a
// runtime error, the latter a static one.
package scripttest

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"

	"github.com/marcuscaisey/loxygen/interpreter"
	"github.com/marcuscaisey/loxygen/loxerr"
	"github.com/marcuscaisey/loxygen/parser"
	"github.com/marcuscaisey/loxygen/resolver"
	"github.com/marcuscaisey/loxygen/scanner"
)

const (
	expectPrefix        = "// expect: "
	expectRuntimePrefix = "// expect runtime error: "
	expectStaticPrefix  = "// [line "
)

// Expectation is a single parsed expectation line from a fixture file.
type Expectation struct {
	Line        int
	WantStdout  string
	WantRuntime string
	WantStatic  string
}

// ParseExpectations scans src's comments for the expectation conventions
// documented in the package doc comment.
func ParseExpectations(src string) []Expectation {
	var exps []Expectation
	sc := bufio.NewScanner(strings.NewReader(src))
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		idx := strings.Index(line, "//")
		if idx == -1 {
			continue
		}
		comment := line[idx:]
		switch {
		case strings.HasPrefix(comment, expectPrefix):
			exps = append(exps, Expectation{Line: lineNo, WantStdout: strings.TrimPrefix(comment, expectPrefix)})
		case strings.HasPrefix(comment, expectRuntimePrefix):
			exps = append(exps, Expectation{Line: lineNo, WantRuntime: strings.TrimPrefix(comment, expectRuntimePrefix)})
		case strings.HasPrefix(comment, expectStaticPrefix):
			exps = append(exps, Expectation{Line: lineNo, WantStatic: strings.TrimPrefix(comment, "// ")})
		}
	}
	return exps
}

// Result is what running a fixture through the pipeline produced.
type Result struct {
	Stdout      string
	StaticErrs  loxerr.List
	RuntimeErr  error
}

// Run executes src through the scanner, parser, resolver, and interpreter,
// stopping at the first stage that reports errors, exactly as
// cmd/loxygen's run does.
func Run(src string) Result {
	var out strings.Builder

	tokens, scanErrs := scanner.Scan(src)
	if len(scanErrs) > 0 {
		var errs loxerr.List
		for _, e := range scanErrs {
			errs = append(errs, loxerr.New(e.Line, "%s", e.Error()))
		}
		return Result{StaticErrs: errs}
	}

	program, parseErrs := parser.Parse(tokens)
	if len(parseErrs) > 0 {
		return Result{StaticErrs: parseErrs}
	}

	locals, resolveErrs := resolver.Resolve(program)
	if len(resolveErrs) > 0 {
		return Result{StaticErrs: resolveErrs}
	}

	interp := interpreter.New()
	interp.Stdout = &out
	err := interp.Interpret(program, locals)
	return Result{Stdout: out.String(), RuntimeErr: err}
}

// Check runs the fixture at path and fails t if its actual output doesn't
// match the expectations parsed from it.
func Check(t *testing.T, path string) {
	t.Helper()

	src, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	exps := ParseExpectations(string(src))
	result := Run(string(src))

	var wantStdoutLines []string
	var wantStatic, wantRuntime string
	for _, exp := range exps {
		switch {
		case exp.WantStdout != "":
			wantStdoutLines = append(wantStdoutLines, exp.WantStdout)
		case exp.WantRuntime != "":
			wantRuntime = exp.WantRuntime
		case exp.WantStatic != "":
			wantStatic = exp.WantStatic
		}
	}
	wantStdout := strings.Join(wantStdoutLines, "\n")
	if len(wantStdoutLines) > 0 {
		wantStdout += "\n"
	}

	if diff := textDiff(wantStdout, result.Stdout); diff != "" {
		t.Errorf("stdout mismatch for %s (-want +got):\n%s", filepath.Base(path), diff)
	}

	switch {
	case wantRuntime != "":
		if result.RuntimeErr == nil {
			t.Errorf("%s: expected runtime error %q, got none", filepath.Base(path), wantRuntime)
		} else if !strings.Contains(result.RuntimeErr.Error(), wantRuntime) {
			t.Errorf("%s: runtime error mismatch (-want +got):\n%s", filepath.Base(path), structDiff(wantRuntime, result.RuntimeErr.Error()))
		}
	case wantStatic != "":
		if !result.StaticErrs.HasErrors() {
			t.Errorf("%s: expected static error %q, got none", filepath.Base(path), wantStatic)
		} else {
			got := result.StaticErrs.Error()
			if !strings.Contains(stripANSI(got), wantStatic) {
				t.Errorf("%s: static error mismatch (-want +got):\n%s", filepath.Base(path), structDiff(wantStatic, got))
			}
		}
	default:
		if result.StaticErrs.HasErrors() {
			t.Errorf("%s: unexpected static errors: %s", filepath.Base(path), result.StaticErrs)
		}
		if result.RuntimeErr != nil {
			t.Errorf("%s: unexpected runtime error: %s", filepath.Base(path), result.RuntimeErr)
		}
	}
}

// RunAll runs Check as a subtest for every *.lox file under dir.
func RunAll(t *testing.T, dir string) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.lox"))
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) == 0 {
		t.Fatalf("no .lox fixtures found in %s", dir)
	}
	for _, path := range matches {
		path := path
		name := strings.TrimSuffix(filepath.Base(path), ".lox")
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			Check(t, path)
		})
	}
}

func textDiff(want, got string) string {
	if want == got {
		return ""
	}
	edits := myers.ComputeEdits(span.URIFromPath("want"), want, got)
	return fmt.Sprint(gotextdiff.ToUnified("want", "got", want, edits))
}

func structDiff(want, got any) string {
	return cmp.Diff(want, got)
}

func stripANSI(s string) string {
	var b strings.Builder
	inEscape := false
	for _, r := range s {
		switch {
		case inEscape:
			if r == 'm' {
				inEscape = false
			}
		case r == '\x1b':
			inEscape = true
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
