package shape

import "github.com/Sumatoshi-tech/errshape/pkg/errtree"

// Check is a caller-supplied predicate over a raised exception. String is the
// token embedded in representations and diagnostics; the matcher treats it as
// opaque text.
type Check interface {
	Check(n *errtree.Node) bool
	String() string
}

type funcCheck struct {
	name string
	fn   func(*errtree.Node) bool
}

// CheckFunc wraps fn as a [Check] displayed as name.
func CheckFunc(name string, fn func(*errtree.Node) bool) Check {
	return funcCheck{name: name, fn: fn}
}

func (c funcCheck) Check(n *errtree.Node) bool { return c.fn(n) }

func (c funcCheck) String() string { return c.name }

// CheckSet resolves check display tokens when parsing representations.
type CheckSet map[string]Check

// NewCheckSet indexes checks by their display token.
func NewCheckSet(checks ...Check) CheckSet {
	set := make(CheckSet, len(checks))

	for _, c := range checks {
		set[c.String()] = c
	}

	return set
}
