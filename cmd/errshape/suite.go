package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/dustin/go-humanize/english"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Sumatoshi-tech/errshape/pkg/match"
	"github.com/Sumatoshi-tech/errshape/pkg/shapedoc"
)

const (
	flagFailFast = "fail-fast"
	flagNoDiff   = "no-diff"

	resultPass = "PASS"
	resultFail = "FAIL"
)

// ErrNoCases is returned when a suite document declares no cases.
var ErrNoCases = errors.New("document has no cases")

// suiteReport is the JSON form of a suite run.
type suiteReport struct {
	Results []shapedoc.Result `json:"results"`
	Passed  int               `json:"passed"`
	Failed  int               `json:"failed"`
}

func (a *app) suiteCommand() *cobra.Command {
	var (
		format   string
		failFast bool
		noDiff   bool
	)

	cmd := &cobra.Command{
		Use:   "suite <document|->",
		Short: "Run every case in a document",
		Long: `Run every case of a shape document and print a summary table.

Cases that expect a mismatch may pin the exact diagnostic; when it differs a
line diff against the golden text is printed. Exits with status 1 when any
case fails.

Examples:
  errshape suite cases.yaml
  errshape suite --fail-fast cases.toml
  errshape suite -o json cases.json
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed(flagFailFast) {
				a.cfg.Suite.FailFast = failFast
			}

			if cmd.Flags().Changed(flagNoDiff) {
				a.cfg.Suite.ShowDiff = !noDiff
			}

			return a.track(cmd, func(ctx context.Context, span trace.Span) error {
				return a.runSuite(ctx, cmd, span, args[0], format)
			}, attribute.String("document.path", args[0]))
		},
	}

	cmd.Flags().StringVar(&format, flagFormat, "", "document format: yaml, json or toml (default from extension)")
	cmd.Flags().BoolVar(&failFast, flagFailFast, false, "stop after the first failing case")
	cmd.Flags().BoolVar(&noDiff, flagNoDiff, false, "do not print golden diagnostic diffs")

	return cmd
}

func (a *app) runSuite(ctx context.Context, cmd *cobra.Command, span trace.Span, path, format string) error {
	compiled, err := loadDocument(cmd.InOrStdin(), path, format)
	if err != nil {
		return err
	}

	if len(compiled.Cases) == 0 {
		return fmt.Errorf("%s: %w", path, ErrNoCases)
	}

	engine := match.New(match.WithRegistry(compiled.Registry))
	results := compiled.Run(engine, a.cfg.Suite.FailFast)
	passed, failed := shapedoc.Summary(results)

	span.SetAttributes(
		attribute.Int("suite.cases", len(compiled.Cases)),
		attribute.Int("suite.passed", passed),
		attribute.Int("suite.failed", failed),
	)
	a.obs.Logger.DebugContext(ctx, "suite finished", "passed", passed, "failed", failed)

	if a.jsonOutput() {
		err = writeSuiteJSON(cmd.OutOrStdout(), suiteReport{Results: results, Passed: passed, Failed: failed})
	} else {
		err = a.writeSuiteText(cmd.OutOrStdout(), results, passed, failed)
	}

	if err != nil {
		return err
	}

	if failed > 0 {
		return ErrSuiteFailed
	}

	return nil
}

func writeSuiteJSON(w io.Writer, report suiteReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	err := enc.Encode(report)
	if err != nil {
		return fmt.Errorf("encode suite report: %w", err)
	}

	return nil
}

func (a *app) writeSuiteText(w io.Writer, results []shapedoc.Result, passed, failed int) error {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Format.Footer = text.FormatDefault
	tbl.AppendHeader(table.Row{"#", "Case", "Result", "Problem"})

	for i, r := range results {
		verdict := resultPass
		if !r.Passed {
			verdict = resultFail
		}

		tbl.AppendRow(table.Row{strconv.Itoa(i + 1), r.Name, verdict, r.Problem})
	}

	tbl.AppendFooter(table.Row{"", summaryLine(passed, failed)})

	_, err := fmt.Fprintln(w, tbl.Render())
	if err != nil {
		return fmt.Errorf("write suite table: %w", err)
	}

	for _, r := range results {
		detail := a.failureDetail(r)
		if detail == "" {
			continue
		}

		_, err = fmt.Fprintf(w, "\n%s: %s\n%s", r.Name, r.Problem, detail)
		if err != nil {
			return fmt.Errorf("write suite detail: %w", err)
		}
	}

	return nil
}

// failureDetail explains a failed case: the diagnostic for an unexpected
// mismatch, or the golden diff when the diagnostic drifted.
func (a *app) failureDetail(r shapedoc.Result) string {
	switch {
	case r.Passed:
		return ""
	case r.Problem == shapedoc.ProblemWantMatch:
		return r.Outcome.Diagnostic + "\n"
	case r.Golden != nil && a.cfg.Suite.ShowDiff:
		return lineDiff(*r.Golden, r.Outcome.Diagnostic)
	default:
		return ""
	}
}

func summaryLine(passed, failed int) string {
	total := english.Plural(passed+failed, "case", "")

	if failed == 0 {
		return total + ", all passed"
	}

	return fmt.Sprintf("%s, %d passed, %d failed", total, passed, failed)
}
