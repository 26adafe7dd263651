// Package cli implements the threatforge command-line interface.
//
// This package provides commands for converting threat model diagram files
// to and from the graph JSON format, rendering models as diagrams, and
// serving the conversion API over HTTP. The CLI is built using cobra and
// supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - import: Convert a diagram file into graph JSON
//   - export: Convert graph JSON into a diagram file
//   - render: Generate DOT or SVG drawings of a model
//   - serve: Run the HTTP conversion and model-store API
//   - cache: Manage the conversion result cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context so subcommands share one configured logger.
package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/threatforge/threatforge/pkg/buildinfo"
)

// appName is the application name used for directories and display.
const appName = "threatforge"

// Execute runs the threatforge CLI and returns an error if any command
// fails. The logger is attached to the context and accessible to all
// commands via loggerFromContext.
func Execute() error {
	return ExecuteContext(context.Background())
}

// ExecuteContext runs the CLI under ctx. Cancelling ctx interrupts
// long-running commands such as serve.
func ExecuteContext(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:          appName,
		Short:        "Threatforge converts threat model diagrams to and from graph JSON",
		Long:         `Threatforge is a converter between threat modeling diagram files and a graph JSON format, with rendering and an HTTP API on top.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newImportCmd())
	root.AddCommand(newExportCmd())
	root.AddCommand(newRenderCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newCacheCmd())
	root.AddCommand(newCompletionCmd())

	return root
}
