// Code generated by hand for tests. DO NOT EDIT.

package filefilter_live

func generated(a int) int {
	return a
}
