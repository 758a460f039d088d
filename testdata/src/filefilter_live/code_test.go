package filefilter_live

func inTest(b int) int { // want "live-in at entry of inTest: b"
	return b + 1
}
