// Package cli implements the apidocs command tree.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

// Build metadata, overridden at link time.
var (
	version = "dev"
	commit  = "none"
)

// Exit codes.
const (
	exitOK          = 0
	exitFailure     = 1
	exitInterrupted = 130
)

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd := newRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) || ctx.Err() != nil {
			fmt.Fprintln(os.Stderr, "operation cancelled")
			return exitInterrupted
		}
		verbose, _ := rootCmd.PersistentFlags().GetBool("verbose")
		printError(err, verbose)
		return exitFailure
	}
	return exitOK
}

// printError prints a single-line message; verbose mode additionally surfaces
// the full causal chain.
func printError(err error, verbose bool) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	if !verbose {
		return
	}
	for cause := errors.Unwrap(err); cause != nil; cause = errors.Unwrap(cause) {
		fmt.Fprintf(os.Stderr, "  caused by: %v\n", cause)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		verbose    bool
	)

	rootCmd := &cobra.Command{
		Use:           "apidocs",
		Short:         "Versioned OpenAPI documentation snapshots",
		Long:          "apidocs generates versioned OpenAPI documentation snapshots and renders a static HTML index over them.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
			slog.SetDefault(logger)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	rootCmd.AddCommand(newGenerateCmd(&configPath))
	rootCmd.AddCommand(newRenderHTMLCmd(&configPath))
	rootCmd.AddCommand(newValidateCmd(&configPath))
	rootCmd.AddCommand(newListCmd(&configPath))
	rootCmd.AddCommand(newServeCmd(&configPath))
	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "apidocs %s (commit %s)\n", version, commit)
		},
	}
}
