// Package render produces diagram previews of threat-model graphs.
//
// Graphs are converted to Graphviz DOT with [ToDOT] and rasterized to SVG
// with [RenderSVG]. The preview is a quick node-link sketch for CLI and API
// use; the editor's canvas does its own drawing.
package render

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/threatforge/threatforge/pkg/model"
)

// Options configures DOT generation.
type Options struct {
	// Detailed includes element kinds and property counts in labels.
	Detailed bool
}

// shapeByKind maps node kinds to Graphviz shapes following data-flow
// diagram conventions: round processes, open-ended stores, square external
// actors.
var shapeByKind = map[model.NodeKind]string{
	model.KindProcess:      "ellipse",
	model.KindMultiProcess: "doublecircle",
	model.KindStore:        "cylinder",
	model.KindActor:        "box",
}

// ToDOT converts a graph to Graphviz DOT format. Boundaries are drawn as
// dashed grey shapes so trust edges stay visible without implying
// containment, which the model does not track.
func ToDOT(g model.Graph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph ThreatModel {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [style=filled, fillcolor=white, fontsize=14];\n")
	buf.WriteString("  edge [fontsize=11];\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes {
		shape := shapeByKind[n.Kind]
		if shape == "" {
			shape = "box"
		}
		fmt.Fprintf(&buf, "  %q [label=%q, shape=%s];\n", n.ID, nodeLabel(n, opts.Detailed), shape)
	}

	for _, b := range g.Boundaries {
		label := b.Name
		if label == "" {
			label = string(b.Kind)
		}
		fmt.Fprintf(&buf, "  %q [label=%q, shape=box, style=\"dashed,rounded\", color=grey, fontcolor=grey];\n", b.ID, label)
	}

	buf.WriteString("\n")
	for _, e := range g.Edges {
		attrs := ""
		if e.Kind == model.KindBidirectionalFlow {
			attrs = " [dir=both]"
		}
		for _, target := range e.Targets {
			fmt.Fprintf(&buf, "  %q -> %q%s;\n", e.Source, target, attrs)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeLabel(n model.Node, detailed bool) string {
	label := n.Name
	if label == "" {
		label = n.ID
	}
	if !detailed {
		return label
	}
	parts := []string{label, fmt.Sprintf("kind: %s", n.Kind)}
	if len(n.Properties) > 0 {
		parts = append(parts, fmt.Sprintf("props: %d", len(n.Properties)))
	}
	return strings.Join(parts, "\n")
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	graph, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer graph.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, graph, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
