package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/threatforge/threatforge/pkg/modelio"
	"github.com/threatforge/threatforge/pkg/tmx"
)

// exportOpts holds the command-line flags for the export command.
type exportOpts struct {
	output string // output file path (stdout if empty)
}

// newExportCmd creates the export command. It reads graph JSON, validates
// it, and writes a diagram file that re-parses under the import path.
func newExportCmd() *cobra.Command {
	var opts exportOpts

	cmd := &cobra.Command{
		Use:   "export <file.json>",
		Short: "Convert graph JSON into a diagram file",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runExport(c.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")

	return cmd
}

func runExport(ctx context.Context, input string, opts *exportOpts) error {
	logger := loggerFromContext(ctx)
	logger.Infof("Exporting %s", input)

	g, err := modelio.ImportJSON(input)
	if err != nil {
		return err
	}

	st := startStage(logger)
	text, err := tmx.Encode(g)
	if err != nil {
		return err
	}
	st.done(fmt.Sprintf("Exported %d nodes, %d edges, %d boundaries",
		len(g.Nodes), len(g.Edges), len(g.Boundaries)))

	out, err := openOutput(opts.output)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.WriteString(out, text); err != nil {
		return err
	}
	if opts.output != "" {
		logger.Infof("Wrote diagram to %s", opts.output)
	}
	return nil
}
