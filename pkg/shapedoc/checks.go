package shapedoc

import (
	"github.com/Sumatoshi-tech/errshape/pkg/errtree"
	"github.com/Sumatoshi-tech/errshape/pkg/shape"
)

// BuiltinChecks returns the checks every document may refer to by name.
func BuiltinChecks() shape.CheckSet {
	return shape.NewCheckSet(
		shape.CheckFunc("has_notes", func(n *errtree.Node) bool { return len(n.Notes()) > 0 }),
		shape.CheckFunc("has_message", func(n *errtree.Node) bool { return n.Message() != "" }),
		shape.CheckFunc("is_group", (*errtree.Node).IsGroup),
		shape.CheckFunc("is_base_only", (*errtree.Node).BaseOnly),
	)
}
