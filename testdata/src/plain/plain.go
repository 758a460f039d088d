// Package plain is analyzed without any reporting; tests inspect the result.
package plain

func sum(n int) int {
	s := 0
	for i := 0; i < n; i++ {
		s += i
	}
	return s
}

func pick(c bool, x, y int) int {
	if c {
		return x
	}
	return y
}
