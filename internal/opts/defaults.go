package opts

import (
	"os"
	"strconv"
)

const (
	_DefaultOrder      = "postorder"
	_DefaultSweepLimit = 0 // derived from the size of the function
)

var (
	DefaultOrder      = orderOrDefault("LIVEVAR_ORDER", _DefaultOrder)
	DefaultSweepLimit = parseOrDefault("LIVEVAR_SWEEP_LIMIT", _DefaultSweepLimit, 1)
)

func parseOrDefault(key string, def int, min int) int {
	if env := os.Getenv(key); env == "" {
		return def
	} else if val, err := strconv.ParseUint(env, 0, 64); err != nil {
		panic("livevar: invalid value for " + key)
	} else if ret := int(val); ret < min {
		panic("livevar: value too small for " + key)
	} else {
		return ret
	}
}

func orderOrDefault(key string, def string) Order {
	env := os.Getenv(key)
	if env == "" {
		env = def
	}
	ord, err := ParseOrder(env)
	if err != nil {
		panic("livevar: invalid value for " + key)
	}
	return ord
}
