package livevar

func closure(a int) func() int { // want "live-in at entry of closure: a"
	return func() int { // want `live-in at entry of closure\$1: a`
		return a
	}
}

type counter struct {
	n int
}

func (c *counter) inc(by int) { // want "live-in at entry of inc: c by"
	c.n += by
}
