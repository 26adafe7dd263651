package modelio

import (
	"bytes"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/threatforge/threatforge/pkg/model"
	"github.com/threatforge/threatforge/pkg/tmx"
)

func sampleGraph() model.Graph {
	return model.Graph{
		Nodes: []model.Node{
			{ID: "n1", Kind: model.KindProcess, Name: "API", Position: model.Position{X: 10, Y: 20}},
			{ID: "n2", Kind: model.KindStore, Name: "DB", Properties: model.Properties{"engine": "postgres"}},
		},
		Edges: []model.Edge{
			{ID: "e1", Kind: model.KindFlow, Source: "n1", Targets: []string{"n2"}},
		},
		Boundaries: []model.Boundary{
			{ID: "b1", Kind: model.KindTrustBoundary, Name: "Perimeter", Shape: model.ShapeLine, Bounds: model.Bounds{Width: 200, Height: 5}},
		},
		Metadata: model.Metadata{Name: "Sample"},
	}
}

func TestJSONRoundTrip(t *testing.T) {
	g := sampleGraph()

	var buf bytes.Buffer
	if err := WriteJSON(g, &buf); err != nil {
		t.Fatalf("WriteJSON() = %v, want nil", err)
	}

	got, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON() = %v, want nil", err)
	}

	if !reflect.DeepEqual(got.Edges, g.Edges) {
		t.Errorf("edges = %+v, want %+v", got.Edges, g.Edges)
	}
	if !reflect.DeepEqual(got.Boundaries, g.Boundaries) {
		t.Errorf("boundaries = %+v, want %+v", got.Boundaries, g.Boundaries)
	}
	if got.Metadata.Name != "Sample" {
		t.Errorf("metadata name = %q, want Sample", got.Metadata.Name)
	}
	if len(got.Nodes) != 2 || got.Nodes[0].Name != "API" {
		t.Errorf("nodes = %+v", got.Nodes)
	}
}

func TestReadJSONRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "Malformed", text: `{"nodes": [`, want: "decode"},
		{name: "DuplicateIDs", text: `{"nodes": [{"id": "a"}, {"id": "a"}]}`, want: "validate"},
		{name: "EdgeWithoutTargets", text: `{"edges": [{"id": "e", "source": "a", "targets": []}]}`, want: "validate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(tt.text))
			if err == nil {
				t.Fatal("ReadJSON() = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestWriteJSONEmitsEmptyArrays(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(model.Graph{}, &buf); err != nil {
		t.Fatalf("WriteJSON() = %v, want nil", err)
	}
	out := buf.String()
	for _, key := range []string{`"nodes": []`, `"edges": []`, `"boundaries": []`} {
		if !strings.Contains(out, key) {
			t.Errorf("output missing %s:\n%s", key, out)
		}
	}
}

func TestImportExportFiles(t *testing.T) {
	dir := t.TempDir()
	g := sampleGraph()

	jsonPath := filepath.Join(dir, "model.json")
	if err := ExportJSON(g, jsonPath); err != nil {
		t.Fatalf("ExportJSON() = %v, want nil", err)
	}
	got, err := ImportJSON(jsonPath)
	if err != nil {
		t.Fatalf("ImportJSON() = %v, want nil", err)
	}
	if len(got.Nodes) != 2 {
		t.Errorf("got %d nodes, want 2", len(got.Nodes))
	}

	tmxPath := filepath.Join(dir, "model.tmx")
	if err := ExportTMX(g, tmxPath); err != nil {
		t.Fatalf("ExportTMX() = %v, want nil", err)
	}
	got, err = ImportTMX(tmxPath, tmx.Options{})
	if err != nil {
		t.Fatalf("ImportTMX() = %v, want nil", err)
	}
	if len(got.Nodes) != 2 || len(got.Edges) != 1 || len(got.Boundaries) != 1 {
		t.Errorf("TMX round trip: %d nodes, %d edges, %d boundaries", len(got.Nodes), len(got.Edges), len(got.Boundaries))
	}

	if _, err := ImportJSON(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("ImportJSON(missing) = nil, want error")
	}
}

func TestDecodeTMXReader(t *testing.T) {
	g := sampleGraph()
	text, err := tmx.Encode(g)
	if err != nil {
		t.Fatalf("Encode() = %v, want nil", err)
	}

	got, err := DecodeTMX(strings.NewReader(text))
	if err != nil {
		t.Fatalf("DecodeTMX() = %v, want nil", err)
	}
	if len(got.Nodes) != 2 {
		t.Errorf("got %d nodes, want 2", len(got.Nodes))
	}

	if _, err := DecodeTMX(strings.NewReader("not xml at all <")); err == nil {
		t.Error("DecodeTMX(garbage) = nil, want error")
	}
}
