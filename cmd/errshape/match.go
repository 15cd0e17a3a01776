package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Sumatoshi-tech/errshape/pkg/match"
	"github.com/Sumatoshi-tech/errshape/pkg/shape"
)

const flagFormat = "format"

// matchReport is the JSON form of a match outcome.
type matchReport struct {
	Shape string `json:"shape"`
	match.Outcome
}

func (a *app) matchCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "match <document|->",
		Short: "Match a document's shape against its raised tree",
		Long: `Match the top-level shape of a document against its raised exception tree.

Exits with status 1 when the tree does not match.

Examples:
  errshape match shape.yaml
  errshape match --format json - < shape.json
  errshape match -o json shape.toml
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.track(cmd, func(ctx context.Context, span trace.Span) error {
				return a.runMatch(ctx, cmd, span, args[0], format)
			}, attribute.String("document.path", args[0]))
		},
	}

	cmd.Flags().StringVar(&format, flagFormat, "", "document format: yaml, json or toml (default from extension)")

	return cmd
}

func (a *app) runMatch(ctx context.Context, cmd *cobra.Command, span trace.Span, path, format string) error {
	compiled, err := loadDocument(cmd.InOrStdin(), path, format)
	if err != nil {
		return err
	}

	outcome, err := compiled.Match(match.New(match.WithRegistry(compiled.Registry)))
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	span.SetAttributes(attribute.Bool("outcome.success", outcome.Success))
	a.obs.Logger.DebugContext(ctx, "shape evaluated", "shape", compiled.Shape.String(), "success", outcome.Success)

	err = a.printOutcome(cmd.OutOrStdout(), compiled.Shape, outcome)
	if err != nil {
		return err
	}

	if !outcome.Success {
		return ErrMismatch
	}

	return nil
}

func (a *app) printOutcome(w io.Writer, spec shape.Spec, outcome match.Outcome) error {
	if a.jsonOutput() {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		err := enc.Encode(matchReport{Shape: spec.String(), Outcome: outcome})
		if err != nil {
			return fmt.Errorf("encode outcome: %w", err)
		}

		return nil
	}

	var err error
	if outcome.Success {
		_, err = fmt.Fprintf(w, "Raised exception matches %s\n", spec)
	} else {
		_, err = fmt.Fprintln(w, outcome.Report(match.Headline(spec)))
	}

	if err != nil {
		return fmt.Errorf("write outcome: %w", err)
	}

	return nil
}
