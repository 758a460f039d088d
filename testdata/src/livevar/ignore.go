package livevar

// ignoredDoc is silenced from its doc comment.
//
//livevar:ignore
func ignoredDoc(a int) int {
	return a
}

//livevar:ignore
func ignoredAbove(a int) int {
	return a
}

func ignoredClosure(a int) func() int { // want "live-in at entry of ignoredClosure: a"
	return func() int { //livevar:ignore
		return a
	}
}

//livevar:ignore // want "unused livevar:ignore directive"
func nothingLive() int {
	return 1
}
