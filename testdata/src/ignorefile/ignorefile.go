// Package ignorefile is silenced as a whole.
//
//livevar:ignore
package ignorefile

func add(a, b int) int {
	return a + b
}

func keep(a int) func() int {
	return func() int {
		return a
	}
}
