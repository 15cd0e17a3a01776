package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Sumatoshi-tech/errshape/pkg/shape"
	"github.com/Sumatoshi-tech/errshape/pkg/shapedoc"
)

func (a *app) reprCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "repr <expression>",
		Short: "Print the canonical form of a shape expression",
		Long: `Parse a shape expression and print its canonical representation.

Checks may name the builtin predicates has_notes, has_message, is_group and
is_base_only.

Examples:
  errshape repr 'ExceptionGroup(ValueError,TypeError)'
  errshape repr "ExceptionGroup(Matcher(ValueError, match='bad'), flatten_subgroups=True)"
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.track(cmd, func(ctx context.Context, span trace.Span) error {
				spec, err := shape.Parse(args[0], shape.Resolver{Checks: shapedoc.BuiltinChecks()})
				if err != nil {
					return err
				}

				canonical := spec.String()
				span.SetAttributes(attribute.Int("errshape.expression_length", len(canonical)))
				a.obs.Logger.DebugContext(ctx, "expression parsed", "canonical", canonical)

				_, err = fmt.Fprintln(cmd.OutOrStdout(), canonical)

				return err
			})
		},
	}
}
