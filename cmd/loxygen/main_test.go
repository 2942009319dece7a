package main_test

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// buildLoxygen builds the loxygen binary into a fresh temporary directory for
// the calling test (each test that calls it gets its own build), grounded on
// the teacher's loxtest.MustBuildBinary pattern (golox/main_test.go).
func buildLoxygen(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	bin := filepath.Join(dir, "loxygen")
	cmd := exec.Command("go", "build", "-o", bin, "github.com/marcuscaisey/loxygen/cmd/loxygen")
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("building loxygen: %v\n%s", err, out)
	}
	return bin
}

func TestExitCodes(t *testing.T) {
	bin := buildLoxygen(t)

	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStdout string // asserted only when non-empty
		wantStderr string // asserted only when non-empty
	}{
		{
			name:     "success",
			args:     []string{"-c", "print 1 + 2;"},
			wantCode: 0,
		},
		{
			name:     "static error",
			args:     []string{"-c", "var a = a;"},
			wantCode: 65,
		},
		{
			name:     "runtime error",
			args:     []string{"-c", `"foo" + 1;`},
			wantCode: 70,
		},
		{
			name:       "usage error",
			args:       []string{"a.lox", "b.lox"},
			wantCode:   64,
			wantStdout: "Usage: loxygen [script]\n",
			wantStderr: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := exec.Command(bin, tt.args...)
			var stdout, stderr bytes.Buffer
			cmd.Stdout = &stdout
			cmd.Stderr = &stderr
			err := cmd.Run()

			var exitErr *exec.ExitError
			gotCode := 0
			if err != nil {
				if !errors.As(err, &exitErr) {
					t.Fatalf("running loxygen: %v", err)
				}
				gotCode = exitErr.ExitCode()
			}

			if gotCode != tt.wantCode {
				t.Errorf("exit code = %d, want %d\nstdout:\n%s\nstderr:\n%s", gotCode, tt.wantCode, stdout.String(), stderr.String())
			}
			if tt.wantStdout != "" && stdout.String() != tt.wantStdout {
				t.Errorf("stdout = %q, want %q", stdout.String(), tt.wantStdout)
			}
			if tt.name == "usage error" && stderr.String() != tt.wantStderr {
				t.Errorf("stderr = %q, want %q (usage message must go to stdout, not stderr)", stderr.String(), tt.wantStderr)
			}
		})
	}
}

func TestRunFile(t *testing.T) {
	bin := buildLoxygen(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "hello.lox")
	if err := os.WriteFile(path, []byte(`print "hello";`), 0644); err != nil {
		t.Fatal(err)
	}

	cmd := exec.Command(bin, path)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	if err := cmd.Run(); err != nil {
		t.Fatalf("running loxygen: %v", err)
	}

	if want, got := "hello\n", stdout.String(); got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}
}

func TestREPLStopsOnEmptyLine(t *testing.T) {
	bin := buildLoxygen(t)

	cmd := exec.Command(bin)
	cmd.Stdin = strings.NewReader("print 1;\n\nprint 2;\n")
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	if err := cmd.Run(); err != nil {
		t.Fatalf("running loxygen: %v", err)
	}

	// The blank line ends the REPL before "print 2;" is ever read.
	if want, got := "1\n", stdout.String(); got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}
}

func TestPrintAST(t *testing.T) {
	bin := buildLoxygen(t)

	cmd := exec.Command(bin, "-p", "-c", "1 + 2 * 3;")
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	if err := cmd.Run(); err != nil {
		t.Fatalf("running loxygen: %v", err)
	}

	if want, got := "(+ 1 (* 2 3))\n", stdout.String(); got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}
}
