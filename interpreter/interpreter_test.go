package interpreter_test

import (
	"strings"
	"testing"

	"github.com/marcuscaisey/loxygen/interpreter"
	"github.com/marcuscaisey/loxygen/parser"
	"github.com/marcuscaisey/loxygen/resolver"
	"github.com/marcuscaisey/loxygen/scanner"
)

func interpret(t *testing.T, src string) (string, error) {
	t.Helper()
	tokens, scanErrs := scanner.Scan(src)
	if len(scanErrs) > 0 {
		t.Fatalf("scan errors: %v", scanErrs)
	}
	program, parseErrs := parser.Parse(tokens)
	if len(parseErrs) > 0 {
		t.Fatalf("parse errors: %v", parseErrs)
	}
	locals, resolveErrs := resolver.Resolve(program)
	if len(resolveErrs) > 0 {
		t.Fatalf("resolve errors: %v", resolveErrs)
	}

	var out strings.Builder
	interp := interpreter.New()
	interp.Stdout = &out
	err := interp.Interpret(program, locals)
	return out.String(), err
}

func TestInterpretPrograms(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "arithmetic precedence",
			src:  `print 1 + 2 * 3;`,
			want: "7\n",
		},
		{
			name: "whole numbers print without trailing .0",
			src:  `print 6 / 2;`,
			want: "3\n",
		},
		{
			name: "string concatenation",
			src:  `print "foo" + "bar";`,
			want: "foobar\n",
		},
		{
			name: "closures capture by reference",
			src: `
			fun makeCounter() {
				var i = 0;
				fun count() {
					i = i + 1;
					return i;
				}
				return count;
			}
			var c = makeCounter();
			print c();
			print c();
			`,
			want: "1\n2\n",
		},
		{
			name: "block shadowing leaves closed-over variable untouched",
			src: `
			var a = "global";
			fun showA() { print a; }
			showA();
			{
				var a = "block";
				showA();
			}
			`,
			want: "global\nglobal\n",
		},
		{
			name: "class fields and methods",
			src: `
			class Counter {
				init() { this.count = 0; }
				increment() {
					this.count = this.count + 1;
					return this.count;
				}
			}
			var c = Counter();
			print c.increment();
			print c.increment();
			`,
			want: "1\n2\n",
		},
		{
			name: "inheritance and super",
			src: `
			class Animal {
				init(name) { this.name = name; }
				speak() { return this.name + " makes a noise."; }
			}
			class Dog < Animal {
				speak() { return super.speak() + " Woof!"; }
			}
			print Dog("Rex").speak();
			`,
			want: "Rex makes a noise. Woof!\n",
		},
		{
			name: "while and for loops",
			src: `
			var i = 0;
			while (i < 3) {
				print i;
				i = i + 1;
			}
			for (var j = 0; j < 2; j = j + 1) print j;
			`,
			want: "0\n1\n2\n0\n1\n",
		},
		{
			name: "logical operators short-circuit and return operand value",
			src:  `print nil or "fallback"; print "a" and "b";`,
			want: "fallback\nb\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := interpret(t, tt.src)
			if err != nil {
				t.Fatalf("unexpected runtime error: %v", err)
			}
			if got != tt.want {
				t.Errorf("stdout = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestInterpretRuntimeErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"adding string and number", `"foo" + 1;`, "Operands must be two numbers or two strings."},
		{"negating a string", `-"foo";`, "Operand must be a number."},
		{"calling a non-callable", `var a = 1; a();`, "Can only call functions and classes."},
		{"wrong arity", `fun f(a, b) { return a + b; } f(1);`, "Expected 2 arguments but got 1."},
		{"undefined property", `class C {} C().x;`, "Undefined property 'x'."},
		{"division by zero yields NaN not an error", `print 1 / 0;`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := interpret(t, tt.src)
			if tt.want == "" {
				if err != nil {
					t.Fatalf("unexpected runtime error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected runtime error containing %q, got none", tt.want)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want it to contain %q", err.Error(), tt.want)
			}
		})
	}
}

func TestClockBuiltinReturnsANumber(t *testing.T) {
	tokens, _ := scanner.Scan(`print clock();`)
	program, _ := parser.Parse(tokens)
	locals, _ := resolver.Resolve(program)

	var out strings.Builder
	interp := interpreter.New()
	interp.Stdout = &out
	if err := interp.Interpret(program, locals); err != nil {
		t.Fatalf("unexpected runtime error: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got == "" {
		t.Error("clock() printed nothing")
	}
}
