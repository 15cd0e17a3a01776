// Package match decides whether a raised exception tree conforms to an
// expected shape and explains why not.
//
// Each group level is matched by building the full compatibility matrix of
// expected children against raised children, recursing into nested groups,
// and pairing them with a maximum bipartite matching. A failed level is
// rendered from the same matrix: matched counts, unmatched specs, the reasons
// every leftover exception was rejected and near-miss hints for exceptions
// that would have matched a spec already claimed by another.
//
// Matching is synchronous and deterministic. Equal inputs always produce
// byte-identical diagnostics, except for the check display tokens supplied
// by callers.
package match
