package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/threatforge/threatforge/pkg/modelio"
	"github.com/threatforge/threatforge/pkg/render"
)

const (
	formatSVG = "svg"
	formatDOT = "dot"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string // output file path (derived from input if empty)
	format   string // output format: "svg" or "dot"
	detailed bool   // include element properties in node labels
}

// newRenderCmd creates the render command for drawing a model as a
// node-link diagram via Graphviz.
func newRenderCmd() *cobra.Command {
	opts := renderOpts{format: formatSVG}

	cmd := &cobra.Command{
		Use:   "render <file.json>",
		Short: "Render a threat model as an SVG or DOT diagram",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			if opts.format != formatSVG && opts.format != formatDOT {
				return fmt.Errorf("invalid format: %s (must be 'svg' or 'dot')", opts.format)
			}
			return runRender(c.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (derived from input if empty)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: svg (default), dot")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "include element properties in labels")

	return cmd
}

func runRender(ctx context.Context, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	logger.Infof("Rendering %s", input)

	g, err := modelio.ImportJSON(input)
	if err != nil {
		return err
	}
	logger.Infof("Loaded model: %d nodes, %d edges, %d boundaries",
		len(g.Nodes), len(g.Edges), len(g.Boundaries))

	dot := render.ToDOT(g, render.Options{Detailed: opts.detailed})

	var data []byte
	switch opts.format {
	case formatDOT:
		data = []byte(dot)
	case formatSVG:
		sp := newSpinner(ctx, "Rendering SVG")
		sp.start()
		data, err = render.RenderSVG(ctx, dot)
		if err != nil {
			sp.fail(err.Error())
			return err
		}
		sp.succeed("Rendered SVG")
	}
	logger.Debugf("Generated %s: %d bytes", opts.format, len(data))

	outputPath := opts.output
	if outputPath == "" {
		outputPath = strings.TrimSuffix(input, filepath.Ext(input)) + "." + opts.format
	}

	out, err := openOutput(outputPath)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := out.Write(data); err != nil {
		return err
	}

	logger.Infof("Generated %s", outputPath)
	return nil
}
