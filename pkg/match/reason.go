package match

import (
	"github.com/Sumatoshi-tech/errshape/pkg/shape"
	"github.com/Sumatoshi-tech/errshape/pkg/textutil"
)

// reason explains why one spec rejected one exception. A nil reason means
// the pair is compatible.
//
// An inline reason reads as a sentence and may carry trailing suggestion
// lines. An itemized reason is a block report that starts on its own line
// when nested under a label.
type reason struct {
	lines    []string
	itemized bool
}

func inline(text string) *reason {
	return &reason{lines: []string{text}}
}

// suggest appends a trailing hint line.
func (r *reason) suggest(line string) *reason {
	r.lines = append(r.lines, line)

	return r
}

// labelled nests r under label, the canonical form of the spec that
// produced it.
func (r *reason) labelled(label string) *reason {
	if r.itemized {
		return &reason{
			lines:    append([]string{label + ":"}, textutil.IndentLines(r.lines, textutil.Indent)...),
			itemized: true,
		}
	}

	lines := make([]string, 0, len(r.lines))
	lines = append(lines, label+": "+r.lines[0])
	lines = append(lines, textutil.IndentLines(r.lines[1:], textutil.Indent)...)

	return &reason{lines: lines}
}

// counted prefixes r with the matched-count sentence. A zero count is
// omitted.
func (r *reason) counted(matched int) *reason {
	if matched == 0 {
		return r
	}

	head := matchedCount(matched)

	if r.itemized {
		return &reason{lines: append([]string{head}, r.lines...), itemized: true}
	}

	lines := append([]string{head + " " + r.lines[0]}, r.lines[1:]...)

	return &reason{lines: lines}
}

// cellReason labels the reason of a nested spec. Plain class expectations are
// left unlabelled since their reason already names the class.
func cellReason(s shape.Spec, r *reason) *reason {
	if r == nil {
		return nil
	}

	if _, plain := s.(*shape.TypeSpec); plain {
		return r
	}

	return r.labelled(s.String())
}
