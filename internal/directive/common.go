// Package directive handles livevar comment directives.
//
// The only directive is
//
//	//livevar:ignore
//
// which suppresses the live-in report of a function. It may be placed in
// the function's doc comment, on the line before the function, on the same
// line as the function (the usual place for closures), or in the package
// doc comment to silence a whole file.
package directive

import (
	"strings"
)

// IsIgnoreDirective checks if a comment is an ignore directive.
// Both "//livevar:ignore" and "// livevar:ignore" are accepted.
func IsIgnoreDirective(text string) bool {
	text = strings.TrimPrefix(text, "//")
	text = strings.TrimSpace(text)
	return strings.HasPrefix(text, "livevar:ignore")
}
