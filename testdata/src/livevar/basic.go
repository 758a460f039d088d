// Package livevar exercises the live-in report of the analyzer.
package livevar

func add(a, b int) int { // want "live-in at entry of add: a b"
	return a + b
}

func unusedParam(a, b int) int { // want "live-in at entry of unusedParam: a"
	return a * 2
}

// constant needs nothing on entry, so nothing is reported.
func constant() int {
	return 42
}

func noParams() {
	x := 1
	_ = x
}

func loop(n int) int { // want "live-in at entry of loop: n"
	s := 0
	for i := 0; i < n; i++ {
		s += i
	}
	return s
}

func branch(c bool, x, y int) int { // want "live-in at entry of branch: c x y"
	if c {
		return x
	}
	return y
}
