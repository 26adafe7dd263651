package render

import (
	"strings"
	"testing"

	"github.com/threatforge/threatforge/pkg/model"
)

func TestToDOT(t *testing.T) {
	g := model.Graph{
		Nodes: []model.Node{
			{ID: "api", Kind: model.KindProcess, Name: "API Gateway"},
			{ID: "db", Kind: model.KindStore, Name: "Orders DB"},
			{ID: "user", Kind: model.KindActor, Name: "Customer"},
		},
		Edges: []model.Edge{
			{ID: "e1", Kind: model.KindFlow, Source: "user", Targets: []string{"api"}},
			{ID: "e2", Kind: model.KindBidirectionalFlow, Source: "api", Targets: []string{"db"}},
		},
		Boundaries: []model.Boundary{
			{ID: "b1", Kind: model.KindTrustBoundary, Name: "Perimeter", Shape: model.ShapeLine},
		},
	}

	dot := ToDOT(g, Options{})

	for _, want := range []string{
		`"api" [label="API Gateway", shape=ellipse]`,
		`"db" [label="Orders DB", shape=cylinder]`,
		`"user" [label="Customer", shape=box]`,
		`"user" -> "api";`,
		`"api" -> "db" [dir=both];`,
		`"b1" [label="Perimeter"`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT output missing %q:\n%s", want, dot)
		}
	}
}

func TestToDOTFanOut(t *testing.T) {
	g := model.Graph{
		Edges: []model.Edge{
			{ID: "e1", Kind: model.KindFlow, Source: "a", Targets: []string{"b", "c"}},
		},
	}

	dot := ToDOT(g, Options{})
	if !strings.Contains(dot, `"a" -> "b";`) || !strings.Contains(dot, `"a" -> "c";`) {
		t.Errorf("fan-out edge not expanded:\n%s", dot)
	}
}

func TestToDOTDetailedLabels(t *testing.T) {
	g := model.Graph{
		Nodes: []model.Node{
			{ID: "n", Kind: model.KindProcess, Name: "Svc", Properties: model.Properties{"a": "1", "b": "2"}},
		},
	}

	dot := ToDOT(g, Options{Detailed: true})
	if !strings.Contains(dot, "kind: process") || !strings.Contains(dot, "props: 2") {
		t.Errorf("detailed label missing metadata:\n%s", dot)
	}
}
