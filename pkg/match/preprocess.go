package match

import "github.com/Sumatoshi-tech/errshape/pkg/errtree"

// flatten replaces every group among nodes by its children, recursively, so
// that only leaf exceptions remain. Order is preserved depth-first.
func flatten(nodes []*errtree.Node) []*errtree.Node {
	out := make([]*errtree.Node, 0, len(nodes))

	for _, n := range nodes {
		if n.IsGroup() {
			out = append(out, flatten(n.Children())...)

			continue
		}

		out = append(out, n)
	}

	return out
}

func hasGroup(nodes []*errtree.Node) bool {
	for _, n := range nodes {
		if n.IsGroup() {
			return true
		}
	}

	return false
}
