package modelio

import (
	"fmt"
	"io"
	"os"

	"github.com/threatforge/threatforge/pkg/model"
	"github.com/threatforge/threatforge/pkg/tmx"
)

// DecodeTMX reads a handle to completion and decodes its text as a TMX
// document. It is the convenience wrapper the rest of the application uses
// for drag-and-drop style intake; callers that already hold the text should
// call [tmx.Decode] directly. DecodeTMX does not close r.
func DecodeTMX(r io.Reader) (model.Graph, error) {
	return DecodeTMXWithOptions(r, tmx.Options{})
}

// DecodeTMXWithOptions is [DecodeTMX] with explicit conversion options.
func DecodeTMXWithOptions(r io.Reader, opts tmx.Options) (model.Graph, error) {
	text, err := io.ReadAll(r)
	if err != nil {
		return model.Graph{}, fmt.Errorf("read: %w", err)
	}
	return tmx.DecodeWithOptions(string(text), opts)
}

// ImportTMX reads the TMX file at path and returns the decoded graph.
func ImportTMX(path string, opts tmx.Options) (model.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.Graph{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	g, err := DecodeTMXWithOptions(f, opts)
	if err != nil {
		return model.Graph{}, fmt.Errorf("import %s: %w", path, err)
	}
	return g, nil
}

// ExportTMX encodes a graph and writes the TMX text to a file at path.
func ExportTMX(g model.Graph, path string) error {
	text, err := tmx.Encode(g)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
