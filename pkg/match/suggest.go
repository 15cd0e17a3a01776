package match

import (
	"regexp"

	"github.com/Sumatoshi-tech/errshape/pkg/errtree"
	"github.com/Sumatoshi-tech/errshape/pkg/shape"
)

// Suggestions are only offered when the changed shape fully matches.
const (
	unwrapSuggestion  = ", but would match with `allow_unwrapped=True`"
	flattenSuggestion = "Did you mean to use `flatten_subgroups=True`?"
	escapeSuggestion  = "Did you mean to `regexp.QuoteMeta()` the pattern?"
)

func (r *run) unwrappedGroupMatches(g *shape.GroupSpec, n *errtree.Node) bool {
	if _, nested := g.Children()[0].(*shape.GroupSpec); nested {
		return false
	}

	unwrapped, err := g.WithAllowUnwrapped(true)
	if err != nil {
		return false
	}

	return r.quiet().spec(unwrapped, n) == nil
}

// flattenedGroupMatches reports whether flattening the raised children would
// have matched g. actuals is the view g was matched against.
func (r *run) flattenedGroupMatches(g *shape.GroupSpec, n *errtree.Node, actuals []*errtree.Node) bool {
	if g.FlattenSubgroups() || !hasGroup(actuals) {
		return false
	}

	for _, child := range g.Children() {
		if _, nested := child.(*shape.GroupSpec); nested {
			return false
		}
	}

	flattened, err := g.WithFlattenSubgroups(true)
	if err != nil {
		return false
	}

	return r.quiet().spec(flattened, n) == nil
}

// escapable reports whether pattern failed only because it is the literal
// text written as a pattern.
func escapable(pattern string, n *errtree.Node) bool {
	return pattern == n.Display() && regexp.QuoteMeta(pattern) != pattern
}

func (r *run) escapedPredicateMatches(s *shape.PredicateSpec, n *errtree.Node) bool {
	pattern, _ := s.Pattern()
	if !escapable(pattern, n) {
		return false
	}

	escaped, err := s.WithOptions(shape.Matching(regexp.QuoteMeta(pattern)))
	if err != nil {
		return false
	}

	return r.quiet().spec(escaped, n) == nil
}

func (r *run) escapedGroupMatches(g *shape.GroupSpec, n *errtree.Node) bool {
	pattern, _ := g.Pattern()
	if !escapable(pattern, n) {
		return false
	}

	escaped, err := g.WithOptions(shape.GroupMatching(regexp.QuoteMeta(pattern)))
	if err != nil {
		return false
	}

	return r.quiet().spec(escaped, n) == nil
}
