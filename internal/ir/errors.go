package ir

import (
	"fmt"
)

// InvariantViolation reports a Func that breaks the structural contract the
// liveness engine relies on, or an engine state that should be impossible.
type InvariantViolation struct {
	Func   string
	Block  string
	Reason string
}

func (e *InvariantViolation) Error() string {
	switch {
	case e.Func == "":
		return fmt.Sprintf("invariant violation: %s", e.Reason)
	case e.Block == "":
		return fmt.Sprintf("invariant violation in %s: %s", e.Func, e.Reason)
	default:
		return fmt.Sprintf("invariant violation in %s, block %s: %s", e.Func, e.Block, e.Reason)
	}
}

func violation(f *Func, b *Block, format string, args ...any) *InvariantViolation {
	e := &InvariantViolation{
		Func:   f.Name,
		Reason: fmt.Sprintf(format, args...),
	}
	if b != nil {
		e.Block = b.Name
	}
	return e
}
