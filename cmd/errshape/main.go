// Package main provides the entry point for the errshape CLI tool.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Sumatoshi-tech/errshape/pkg/version"
)

// Exit codes.
const (
	exitOK       = 0
	exitMismatch = 1
	exitError    = 2
)

// ErrMismatch is returned when a raised tree does not conform to its shape.
var ErrMismatch = errors.New("exception did not match the expected shape")

// ErrSuiteFailed is returned when at least one suite case failed.
var ErrSuiteFailed = errors.New("suite has failing cases")

func main() {
	version.InitBinaryVersion()

	os.Exit(execute(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// execute runs the CLI and maps the outcome to an exit code. Match failures
// are already reported on stdout, so only other errors are printed.
func execute(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a := &app{}

	rootCmd := a.rootCommand()
	rootCmd.SetArgs(args)
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.ExecuteContext(ctx)

	shutdownErr := a.shutdown(ctx)
	if shutdownErr != nil {
		fmt.Fprintf(stderr, "Warning: %v\n", shutdownErr)
	}

	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, ErrMismatch), errors.Is(err, ErrSuiteFailed):
		return exitMismatch
	default:
		fmt.Fprintf(stderr, "Error: %v\n", err)

		return exitError
	}
}
