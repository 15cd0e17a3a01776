package shape

import (
	"regexp"
	"strings"

	"github.com/Sumatoshi-tech/errshape/pkg/textutil"
)

// Constructor tokens used by the canonical representation.
const (
	matcherToken            = "Matcher"
	exceptionGroupToken     = "ExceptionGroup"
	baseExceptionGroupToken = "BaseExceptionGroup"

	flattenKey   = "flatten_subgroups"
	unwrappedKey = "allow_unwrapped"
	typeKey      = "exception_type"
	matchKey     = "match"
	checkKey     = "check"

	trueToken  = "True"
	falseToken = "False"
)

// String returns the class name.
func (s *TypeSpec) String() string {
	return s.typ.Name()
}

// String returns Matcher(<type>, match='<pattern>', check=<check>) with
// absent parts omitted.
func (s *PredicateSpec) String() string {
	var parts []string

	if s.typ != nil {
		parts = append(parts, s.typ.Name())
	}

	if s.pattern != nil {
		parts = append(parts, matchKey+"="+textutil.Quote(s.pattern.String()))
	}

	if s.check != nil {
		parts = append(parts, checkKey+"="+s.check.String())
	}

	return matcherToken + "(" + strings.Join(parts, ", ") + ")"
}

// String returns ExceptionGroup(<children>, <options>), or BaseExceptionGroup
// when a child is base-only. Options equal to their default are omitted.
func (g *GroupSpec) String() string {
	parts := make([]string, 0, len(g.children)+4)

	for _, child := range g.children {
		parts = append(parts, child.String())
	}

	if g.flatten {
		parts = append(parts, flattenKey+"="+trueToken)
	}

	if g.unwrapped {
		parts = append(parts, unwrappedKey+"="+trueToken)
	}

	if g.pattern != nil {
		parts = append(parts, matchKey+"="+textutil.Quote(g.pattern.String()))
	}

	if g.check != nil {
		parts = append(parts, checkKey+"="+g.check.String())
	}

	return g.ExceptionType().Name() + "(" + strings.Join(parts, ", ") + ")"
}

// Equal reports whether a and b are structurally equal. Classes compare by
// identity, patterns by source and checks by display token.
func Equal(a, b Spec) bool {
	switch x := a.(type) {
	case *TypeSpec:
		y, ok := b.(*TypeSpec)

		return ok && x.typ == y.typ
	case *PredicateSpec:
		y, ok := b.(*PredicateSpec)

		return ok && x.typ == y.typ && samePattern(x.pattern, y.pattern) && sameCheck(x.check, y.check)
	case *GroupSpec:
		y, ok := b.(*GroupSpec)
		if !ok || x.flatten != y.flatten || x.unwrapped != y.unwrapped || len(x.children) != len(y.children) {
			return false
		}

		if !samePattern(x.pattern, y.pattern) || !sameCheck(x.check, y.check) {
			return false
		}

		for i := range x.children {
			if !Equal(x.children[i], y.children[i]) {
				return false
			}
		}

		return true
	case nil:
		return b == nil
	default:
		return false
	}
}

func samePattern(a, b *regexp.Regexp) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	return a.String() == b.String()
}

func sameCheck(a, b Check) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	return a.String() == b.String()
}
