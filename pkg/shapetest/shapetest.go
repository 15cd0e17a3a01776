// Package shapetest provides testify-style assertions for expected exception
// shapes.
//
//	err := runTasks(ctx)
//	shapetest.Matches(t, shape.MustGroup([]shape.Spec{
//		shape.MustType(errtree.ValueError),
//		shape.MustType(errtree.KeyError),
//	}), err)
package shapetest

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/errshape/pkg/match"
	"github.com/Sumatoshi-tech/errshape/pkg/shape"
)

const notRaised = "DID NOT RAISE any exception, expected "

type tHelper interface {
	Helper()
}

// Asserter runs assertions with a specific engine.
type Asserter struct {
	engine *match.Engine
}

// New returns an Asserter using e, or the default engine when e is nil.
func New(e *match.Engine) *Asserter {
	if e == nil {
		e = match.New()
	}

	return &Asserter{engine: e}
}

var defaultAsserter = New(nil)

// Matches asserts that err conforms to spec.
func Matches(t assert.TestingT, spec shape.Spec, err error, msgAndArgs ...any) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}

	return defaultAsserter.Matches(t, spec, err, msgAndArgs...)
}

// Require is like [Matches] but stops the test on failure.
func Require(t require.TestingT, spec shape.Spec, err error, msgAndArgs ...any) {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}

	defaultAsserter.Require(t, spec, err, msgAndArgs...)
}

// Raises calls fn and asserts that the error it returns conforms to spec. It
// returns the error for further inspection.
func Raises(t assert.TestingT, spec shape.Spec, fn func() error, msgAndArgs ...any) error {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}

	return defaultAsserter.Raises(t, spec, fn, msgAndArgs...)
}

// Matches asserts that err conforms to spec.
func (a *Asserter) Matches(t assert.TestingT, spec shape.Spec, err error, msgAndArgs ...any) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}

	if msg, ok := a.failure(spec, err); !ok {
		return assert.Fail(t, msg, msgAndArgs...)
	}

	return true
}

// Require is like [Asserter.Matches] but stops the test on failure.
func (a *Asserter) Require(t require.TestingT, spec shape.Spec, err error, msgAndArgs ...any) {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}

	if !a.Matches(t, spec, err, msgAndArgs...) {
		t.FailNow()
	}
}

// Raises calls fn and asserts that the error it returns conforms to spec.
func (a *Asserter) Raises(t assert.TestingT, spec shape.Spec, fn func() error, msgAndArgs ...any) error {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}

	err := fn()
	a.Matches(t, spec, err, msgAndArgs...)

	return err
}

func (a *Asserter) failure(spec shape.Spec, err error) (string, bool) {
	if err == nil {
		return notRaised + describe(spec), false
	}

	outcome := a.engine.MatchError(spec, err)
	if outcome.Success {
		return "", true
	}

	return outcome.Report(match.Headline(spec)), false
}

func describe(spec shape.Spec) string {
	if spec == nil {
		return "<nil>"
	}

	return spec.String()
}
