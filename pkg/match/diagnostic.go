package match

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize/english"

	"github.com/Sumatoshi-tech/errshape/pkg/alg/bipartite"
	"github.com/Sumatoshi-tech/errshape/pkg/errtree"
	"github.com/Sumatoshi-tech/errshape/pkg/shape"
	"github.com/Sumatoshi-tech/errshape/pkg/textutil"
)

const (
	headUnmatchedSpecs   = "The following expected exceptions did not find a match: "
	headUnmatchedActuals = "The following raised exceptions did not find a match"
)

func typeReason(t *errtree.Type, n *errtree.Node) *reason {
	if n.Type().IsSubtypeOf(t) {
		return nil
	}

	inner := ""
	if n.IsGroup() {
		inner = "inner "
	}

	return inline(fmt.Sprintf("%s'%s' is not of type '%s'", inner, n.TypeName(), t.Name()))
}

func patternReason(pattern string, n *errtree.Node) *reason {
	return inline(fmt.Sprintf("Regex pattern %s did not match %s",
		textutil.Quote(pattern), textutil.Quote(n.Display())))
}

func notGroupReason(n *errtree.Node) *reason {
	return inline(fmt.Sprintf("'%s' is not an exception group", n.TypeName()))
}

// checkReason runs c on n. A panicking check rejects the pair instead of
// unwinding the match.
func checkReason(c shape.Check, n *errtree.Node, named bool) *reason {
	ok, panicked := runCheck(c, n)

	switch {
	case panicked != nil:
		return inline(fmt.Sprintf("check %s panicked: %v", c, panicked))
	case ok:
		return nil
	case named:
		return inline(fmt.Sprintf("check %s did not return True", c))
	default:
		return inline("check did not return True")
	}
}

func runCheck(c shape.Check, n *errtree.Node) (ok bool, panicked any) {
	defer func() {
		if v := recover(); v != nil {
			ok, panicked = false, v
		}
	}()

	return c.Check(n), nil
}

func matchedCount(k int) string {
	return english.Plural(k, "matched exception", "") + "."
}

func joinLines(lines []string) string {
	return strings.Join(lines, "\n")
}

// attempt is one failed level: the compatibility matrix indexed
// [spec][actual] and the maximum pairing derived from it.
type attempt struct {
	specs   []shape.Spec
	actuals []*errtree.Node
	cells   [][]*reason
	pairing bipartite.Matching
	render  func(*errtree.Node) string
}

func (a *attempt) report() *reason {
	if len(a.specs) == 1 && len(a.actuals) == 1 {
		return a.cells[0][0]
	}

	failedSpecs := a.pairing.UnmatchedLeft()
	extra := a.pairing.UnmatchedRight()
	matched := a.pairing.Size

	switch {
	case len(failedSpecs) == 0:
		return inline("Unexpected exception(s): " + a.actualList(extra)).counted(matched)
	case len(extra) == 0:
		return inline("Too few exceptions raised, found no match for: " + a.specList(failedSpecs)).counted(matched)
	case len(failedSpecs) == 1 && len(extra) == 1 && len(a.nearMisses(extra[0])) == 0:
		return a.cells[failedSpecs[0]][extra[0]].counted(matched)
	}

	return a.table(failedSpecs, extra)
}

func (a *attempt) table(failedSpecs, extra []int) *reason {
	var lines []string

	if a.pairing.Size > 0 {
		lines = append(lines, matchedCount(a.pairing.Size))
	}

	lines = append(lines, headUnmatchedSpecs+a.specList(failedSpecs), headUnmatchedActuals)

	cellIndent := textutil.Indent + textutil.Indent

	for _, j := range extra {
		lines = append(lines, textutil.Indent+a.render(a.actuals[j])+":")

		for _, i := range failedSpecs {
			lines = append(lines, textutil.IndentLines(a.cells[i][j].lines, cellIndent)...)
		}

		lines = append(lines, textutil.IndentLines(a.nearMisses(j), cellIndent)...)
	}

	return &reason{lines: lines, itemized: true}
}

// nearMisses lists the paired specs that actual j would also have satisfied.
func (a *attempt) nearMisses(j int) []string {
	var hints []string

	for i, partner := range a.pairing.Left {
		if partner == bipartite.Unmatched || a.cells[i][j] != nil {
			continue
		}

		hints = append(hints, fmt.Sprintf("It matches %s which was paired with %s",
			a.specs[i], a.render(a.actuals[partner])))
	}

	return hints
}

func (a *attempt) specList(idx []int) string {
	items := make([]string, len(idx))

	for k, i := range idx {
		items[k] = a.specs[i].String()
	}

	return "[" + strings.Join(items, ", ") + "]"
}

func (a *attempt) actualList(idx []int) string {
	items := make([]string, len(idx))

	for k, j := range idx {
		items[k] = a.render(a.actuals[j])
	}

	return "[" + strings.Join(items, ", ") + "]"
}
