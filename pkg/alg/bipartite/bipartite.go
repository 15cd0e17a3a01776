// Package bipartite computes maximum matchings in bipartite graphs.
//
// The graph is given as a left and right vertex count plus an edge predicate.
// Matching uses Kuhn's augmenting path algorithm, O(V*E), which is ample for
// the small, dense graphs it serves. Left vertices are processed in index
// order and right candidates are tried in index order, so the result is fully
// determined by the inputs.
package bipartite

// Unmatched marks a vertex without a partner.
const Unmatched = -1

// Matching is a set of vertex-disjoint edges.
type Matching struct {
	// Left maps each left vertex to its right partner, or Unmatched.
	Left []int
	// Right maps each right vertex to its left partner, or Unmatched.
	Right []int
	// Size is the number of matched pairs.
	Size int
}

// Complete reports whether every left vertex is matched.
func (m Matching) Complete() bool {
	return m.Size == len(m.Left)
}

// UnmatchedLeft returns the unmatched left vertices in index order.
func (m Matching) UnmatchedLeft() []int {
	return unmatched(m.Left)
}

// UnmatchedRight returns the unmatched right vertices in index order.
func (m Matching) UnmatchedRight() []int {
	return unmatched(m.Right)
}

func unmatched(partners []int) []int {
	var out []int

	for i, p := range partners {
		if p == Unmatched {
			out = append(out, i)
		}
	}

	return out
}

// Graph is a dense adjacency matrix indexed [left][right].
type Graph [][]bool

// NewGraph evaluates edge for every (left, right) pair once.
func NewGraph(left, right int, edge func(l, r int) bool) Graph {
	g := make(Graph, left)

	for l := range left {
		g[l] = make([]bool, right)

		for r := range right {
			g[l][r] = edge(l, r)
		}
	}

	return g
}

// Match returns a maximum matching between left and right vertices where
// edge reports which pairs may be matched. edge may be called more than once
// per pair; use [NewGraph] and [Graph.Match] when it is expensive.
func Match(left, right int, edge func(l, r int) bool) Matching {
	m := Matching{
		Left:  filled(left),
		Right: filled(right),
	}

	seen := make([]bool, right)

	for l := range left {
		clear(seen)

		if augment(l, edge, &m, seen) {
			m.Size++
		}
	}

	return m
}

// Match returns a maximum matching over g. The right vertex count is taken
// from the first row.
func (g Graph) Match() Matching {
	right := 0
	if len(g) > 0 {
		right = len(g[0])
	}

	return Match(len(g), right, func(l, r int) bool { return g[l][r] })
}

func augment(l int, edge func(l, r int) bool, m *Matching, seen []bool) bool {
	for r := range seen {
		if seen[r] || !edge(l, r) {
			continue
		}

		seen[r] = true

		if m.Right[r] == Unmatched || augment(m.Right[r], edge, m, seen) {
			m.Left[l] = r
			m.Right[r] = l

			return true
		}
	}

	return false
}

func filled(n int) []int {
	s := make([]int, n)

	for i := range s {
		s[i] = Unmatched
	}

	return s
}
