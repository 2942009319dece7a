package interpreter

import "time"

// defineBuiltins binds the single native function the Lox standard library
// provides, clock() (spec.md §4.4 and §1's Non-goals: "standard library
// beyond a single clock() builtin").
func defineBuiltins(globals *environment) {
	start := time.Now()
	globals.define("clock", &NativeFunction{
		Name: "clock",
		Ar:   0,
		Fn: func(_ *Interpreter, _ []LoxObject) LoxObject {
			// Microseconds as a float, matching the open question in spec.md §9:
			// callers should only rely on this being monotonically non-decreasing,
			// not on any particular epoch or precision. time.Since reads Go's
			// monotonic clock, so wall-clock adjustments don't move it backwards.
			return LoxNumber(float64(time.Since(start).Nanoseconds()) / 1000)
		},
	})
}
