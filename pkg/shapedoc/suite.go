package shapedoc

import (
	"github.com/Sumatoshi-tech/errshape/pkg/match"
)

// Result is the verdict on one case.
type Result struct {
	Name    string        `json:"name"`
	Outcome match.Outcome `json:"outcome"`
	Passed  bool          `json:"passed"`
	// Problem says why a case failed.
	Problem string `json:"problem,omitempty"`
	// Golden is the expected diagnostic when it differed from the actual one.
	Golden *string `json:"golden,omitempty"`
}

// Case failure descriptions.
const (
	ProblemWantMatch    = "expected a match"
	ProblemWantMismatch = "expected a mismatch"
	ProblemDiagnostic   = "diagnostic differs from golden"
)

// Match evaluates the top-level shape against the top-level raised tree.
func (c *Compiled) Match(e *match.Engine) (match.Outcome, error) {
	if c.Shape == nil {
		return match.Outcome{}, ErrNoShape
	}

	return e.Match(c.Shape, c.Raised), nil
}

// Run evaluates every case in order. failFast stops after the first failed
// case.
func (c *Compiled) Run(e *match.Engine, failFast bool) []Result {
	results := make([]Result, 0, len(c.Cases))

	for _, tc := range c.Cases {
		r := tc.Run(e)
		results = append(results, r)

		if failFast && !r.Passed {
			break
		}
	}

	return results
}

// Run evaluates one case.
func (tc CompiledCase) Run(e *match.Engine) Result {
	outcome := e.Match(tc.Shape, tc.Raised)
	r := Result{Name: tc.Name, Outcome: outcome}

	switch {
	case tc.WantMatch && !outcome.Success:
		r.Problem = ProblemWantMatch
	case !tc.WantMatch && outcome.Success:
		r.Problem = ProblemWantMismatch
	case !tc.WantMatch && tc.Diagnostic != nil && *tc.Diagnostic != outcome.Diagnostic:
		r.Problem = ProblemDiagnostic
		r.Golden = tc.Diagnostic
	default:
		r.Passed = true
	}

	return r
}

// Summary counts passed and failed results.
func Summary(results []Result) (passed, failed int) {
	for _, r := range results {
		if r.Passed {
			passed++
		} else {
			failed++
		}
	}

	return passed, failed
}
