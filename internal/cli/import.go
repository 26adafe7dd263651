package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/threatforge/threatforge/pkg/modelio"
	"github.com/threatforge/threatforge/pkg/tmx"
)

// importOpts holds the command-line flags for the import command.
type importOpts struct {
	output string // output file path (stdout if empty)
}

// newImportCmd creates the import command. It reads a diagram file,
// decodes it into the graph model, and writes graph JSON. Malformed
// elements inside a well-formed document are skipped with a warning
// rather than failing the whole import.
func newImportCmd() *cobra.Command {
	var opts importOpts

	cmd := &cobra.Command{
		Use:   "import <file.tm7>",
		Short: "Convert a diagram file into graph JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runImport(c.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")

	return cmd
}

func runImport(ctx context.Context, input string, opts *importOpts) error {
	logger := loggerFromContext(ctx)
	logger.Infof("Importing %s", input)

	st := startStage(logger)
	g, err := modelio.ImportTMX(input, tmx.Options{Warnf: conversionWarnf(ctx)})
	if err != nil {
		return err
	}
	st.done(fmt.Sprintf("Imported %d nodes, %d edges, %d boundaries",
		len(g.Nodes), len(g.Edges), len(g.Boundaries)))

	out, err := openOutput(opts.output)
	if err != nil {
		return err
	}
	defer out.Close()

	if err := modelio.WriteJSON(g, out); err != nil {
		return err
	}
	if opts.output != "" {
		logger.Infof("Wrote graph to %s", opts.output)
	}
	return nil
}

// nopCloser wraps an io.Writer with a no-op Close method so os.Stdout can
// be used where an io.WriteCloser is expected.
type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path, or stdout if the
// path is empty. An existing file at path is overwritten.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}
