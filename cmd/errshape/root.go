package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Sumatoshi-tech/errshape/pkg/config"
	"github.com/Sumatoshi-tech/errshape/pkg/observability"
	"github.com/Sumatoshi-tech/errshape/pkg/version"
)

const (
	formatText = "text"
	formatJSON = "json"

	flagConfig    = "config"
	flagLogLevel  = "log-level"
	flagLogFormat = "log-format"
	flagOutput    = "output"
)

// app carries the state shared by all subcommands of one invocation.
type app struct {
	cfgFile   string
	logLevel  string
	logFormat string
	output    string

	cfg *config.Config
	obs observability.Providers
}

func (a *app) rootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "errshape",
		Short: "Exception group shape matcher",
		Long: `errshape checks raised exception trees against expected shapes and
explains every mismatch.

Commands:
  match    Match a document's shape against its raised tree
  suite    Run every case in a document
  repr     Print the canonical form of a shape expression
  schema   Print the JSON schema for shape documents`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, flagConfig, "", "config file (default is ./errshape.yaml)")
	flags.StringVar(&a.logLevel, flagLogLevel, "", "log level: debug, info, warn or error")
	flags.StringVar(&a.logFormat, flagLogFormat, "", "log format: text or json")
	flags.StringVarP(&a.output, flagOutput, "o", "", "output format: text or json")

	rootCmd.AddCommand(a.matchCommand())
	rootCmd.AddCommand(a.suiteCommand())
	rootCmd.AddCommand(a.reprCommand())
	rootCmd.AddCommand(a.schemaCommand())
	rootCmd.AddCommand(a.versionCommand())

	return rootCmd
}

// setup loads configuration, applies flag overrides and starts observability.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadConfig(a.cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	flags := cmd.Flags()

	if flags.Changed(flagLogLevel) {
		cfg.Logging.Level = a.logLevel
	}

	if flags.Changed(flagLogFormat) {
		cfg.Logging.Format = a.logFormat
	}

	if flags.Changed(flagOutput) {
		cfg.Output.Format = a.output
	}

	err = cfg.Validate()
	if err != nil {
		return err
	}

	obsCfg := observability.DefaultConfig()
	obsCfg.ServiceName = cfg.Tracing.ServiceName
	obsCfg.ServiceVersion = version.Version
	obsCfg.Environment = cfg.Tracing.Environment
	obsCfg.OTLPEndpoint = cfg.Tracing.OTLPEndpoint
	obsCfg.OTLPInsecure = cfg.Tracing.OTLPInsecure
	obsCfg.OTLPHeaders = cfg.Tracing.OTLPHeaders
	obsCfg.LogLevel = cfg.Logging.SlogLevel()
	obsCfg.LogJSON = cfg.Logging.JSON()
	obsCfg.LogOutput = cmd.ErrOrStderr()

	providers, err := observability.Init(obsCfg)
	if err != nil {
		return fmt.Errorf("init observability: %w", err)
	}

	a.cfg = cfg
	a.obs = providers

	return nil
}

func (a *app) shutdown(ctx context.Context) error {
	if a.obs.Shutdown == nil {
		return nil
	}

	return a.obs.Shutdown(ctx)
}

func (a *app) jsonOutput() bool {
	return a.cfg.Output.Format == formatJSON
}

// track runs fn inside a span named after the command and logs its start and
// finish at debug level.
func (a *app) track(
	cmd *cobra.Command, fn func(ctx context.Context, span trace.Span) error, attrs ...attribute.KeyValue,
) error {
	name := cmd.CommandPath()
	attrs = append(attrs, attribute.String("errshape.command", cmd.Name()))

	return observability.Track(cmd.Context(), a.obs.Tracer, name, func(ctx context.Context, span trace.Span) error {
		start := time.Now()

		a.obs.Logger.DebugContext(ctx, "command started", "command", name)

		err := fn(ctx, span)
		if err != nil {
			a.obs.Logger.DebugContext(ctx, "command failed", "command", name, "elapsed", time.Since(start), "error", err)

			return err
		}

		a.obs.Logger.DebugContext(ctx, "command finished", "command", name, "elapsed", time.Since(start))

		return nil
	}, attrs...)
}

func (a *app) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), version.String())

			return err
		},
	}
}
