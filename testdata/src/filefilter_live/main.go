// Package filefilter_live checks that generated files are skipped.
package filefilter_live

func regular(a int) int { // want "live-in at entry of regular: a"
	return a
}
