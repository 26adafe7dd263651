package modelio

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/threatforge/threatforge/pkg/model"
)

// ReadJSON decodes a JSON graph from r and validates its structural
// invariants. The returned graph is independent of r and safe to modify;
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (model.Graph, error) {
	var g model.Graph
	if err := json.NewDecoder(r).Decode(&g); err != nil {
		return model.Graph{}, fmt.Errorf("decode: %w", err)
	}
	if err := g.Validate(); err != nil {
		return model.Graph{}, fmt.Errorf("validate: %w", err)
	}
	normalize(&g)
	return g, nil
}

// WriteJSON encodes a graph as indented JSON on w. The output can be
// re-imported with [ReadJSON] for round-trip processing.
func WriteJSON(g model.Graph, w io.Writer) error {
	normalize(&g)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(g); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ImportJSON reads the JSON file at path and returns the decoded graph.
// Errors wrap the underlying cause with the file path for context.
func ImportJSON(path string) (model.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.Graph{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	g, err := ReadJSON(f)
	if err != nil {
		return model.Graph{}, fmt.Errorf("import %s: %w", path, err)
	}
	return g, nil
}

// ExportJSON writes a graph to a JSON file at path. The file is created
// with 0644 permissions.
func ExportJSON(g model.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(g, f)
}

// normalize replaces nil collections with empty slices so serialized output
// always carries the three arrays.
func normalize(g *model.Graph) {
	if g.Nodes == nil {
		g.Nodes = []model.Node{}
	}
	if g.Edges == nil {
		g.Edges = []model.Edge{}
	}
	if g.Boundaries == nil {
		g.Boundaries = []model.Boundary{}
	}
}
