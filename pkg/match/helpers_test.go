package match_test

import (
	"strings"

	"github.com/Sumatoshi-tech/errshape/pkg/errtree"
	"github.com/Sumatoshi-tech/errshape/pkg/shape"
)

func exc(t *errtree.Type, message ...string) *errtree.Node {
	return errtree.New(t, strings.Join(message, ""))
}

func eg(message string, children ...*errtree.Node) *errtree.Node {
	return errtree.NewGroup(message, children...)
}

func ty(t *errtree.Type) shape.Spec {
	return shape.MustType(t)
}

func grp(children ...shape.Spec) *shape.GroupSpec {
	return shape.MustGroup(children)
}

func grpWith(opts []shape.GroupOption, children ...shape.Spec) *shape.GroupSpec {
	return shape.MustGroup(children, opts...)
}

func matcher(opts ...shape.MatcherOption) *shape.PredicateSpec {
	return shape.MustMatcher(opts...)
}

func lines(ls ...string) string {
	return strings.Join(ls, "\n")
}

func flat() []shape.GroupOption {
	return []shape.GroupOption{shape.FlattenSubgroups()}
}

func unwrapped() []shape.GroupOption {
	return []shape.GroupOption{shape.AllowUnwrapped()}
}
