package main

import (
	"bytes"
	"context"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/trace"

	"github.com/Sumatoshi-tech/errshape/pkg/shapedoc"
)

func (a *app) schemaCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON schema for shape documents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.track(cmd, func(_ context.Context, _ trace.Span) error {
				schema := shapedoc.Schema()
				if !bytes.HasSuffix(schema, []byte("\n")) {
					schema = append(schema, '\n')
				}

				_, err := cmd.OutOrStdout().Write(schema)

				return err
			})
		},
	}
}
