// Package opts holds the tunables of the liveness engine and their
// environment-provided defaults.
package opts

import (
	"fmt"
)

// Order selects the sequence in which the solver visits blocks during a
// sweep. The fixed point does not depend on it; only the number of sweeps
// needed to reach it does.
type Order uint8

const (
	// Postorder visits every block after its successors, so a backward
	// problem sees fresh IN sets of successors within the same sweep.
	Postorder Order = iota

	// ReversePostorder visits blocks in reverse postorder.
	ReversePostorder

	// Layout visits blocks in layout order.
	Layout
)

var orderNames = [...]string{
	Postorder:        "postorder",
	ReversePostorder: "rpo",
	Layout:           "layout",
}

func (o Order) String() string {
	if int(o) < len(orderNames) {
		return orderNames[o]
	}
	return fmt.Sprintf("Order(%d)", o)
}

// ParseOrder parses the name printed by Order.String.
func ParseOrder(s string) (Order, error) {
	for i, name := range orderNames {
		if s == name {
			return Order(i), nil
		}
	}
	return 0, fmt.Errorf("unknown visit order %q (want postorder, rpo or layout)", s)
}

// Set implements flag.Value.
func (o *Order) Set(s string) error {
	v, err := ParseOrder(s)
	if err != nil {
		return err
	}
	*o = v
	return nil
}

// Options configures one liveness run.
type Options struct {
	Order Order

	// SweepLimit caps the number of solver sweeps. Zero selects a bound
	// derived from the function size.
	SweepLimit int
}

// SweepBound returns the sweep cap for a function with the given number of
// blocks and variables.
func (o *Options) SweepBound(blocks int, vars int) int {
	if o.SweepLimit != 0 {
		return o.SweepLimit
	}
	return 2*blocks*(vars+1) + 2
}

func GetDefaultOptions() Options {
	return Options{
		Order:      DefaultOrder,
		SweepLimit: DefaultSweepLimit,
	}
}
