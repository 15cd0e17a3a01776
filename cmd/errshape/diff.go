package main

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

const (
	markDelete = "-"
	markInsert = "+"
	markEqual  = " "
)

// lineDiff renders a line-level diff from want to got. Every line carries a
// one-character marker: "-" for golden-only, "+" for actual-only.
func lineDiff(want, got string) string {
	dmp := diffmatchpatch.New()
	src, dst, lines := dmp.DiffLinesToChars(want, got)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(src, dst, false), lines)

	var sb strings.Builder

	for _, d := range diffs {
		marker := markEqual

		switch d.Type {
		case diffmatchpatch.DiffDelete:
			marker = markDelete
		case diffmatchpatch.DiffInsert:
			marker = markInsert
		case diffmatchpatch.DiffEqual:
		}

		for line := range strings.Lines(d.Text) {
			sb.WriteString(marker)
			sb.WriteString(strings.TrimSuffix(line, "\n"))
			sb.WriteByte('\n')
		}
	}

	return sb.String()
}
