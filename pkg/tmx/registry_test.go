package tmx

import (
	"testing"

	"github.com/beevik/etree"

	"github.com/threatforge/threatforge/pkg/model"
)

func TestRegistryLookups(t *testing.T) {
	t.Run("StencilRoundTrip", func(t *testing.T) {
		for disc, kind := range nodeKindByStencil {
			if got := stencilForNodeKind(kind); got != disc {
				t.Errorf("stencilForNodeKind(%s) = %s, want %s", kind, got, disc)
			}
		}
	})

	t.Run("UnknownStencilNotFound", func(t *testing.T) {
		if _, ok := nodeKindForStencil("StencilOctagon"); ok {
			t.Error("unknown stencil resolved to a node kind")
		}
	})

	t.Run("UnmappedNodeKindFallsBack", func(t *testing.T) {
		if got := stencilForNodeKind(model.NodeKind("blimp")); got != fallbackStencil {
			t.Errorf("got %s, want %s", got, fallbackStencil)
		}
	})

	t.Run("EdgeKindsCollapse", func(t *testing.T) {
		if connectorForEdgeKind(model.KindFlow) != discConnector ||
			connectorForEdgeKind(model.KindBidirectionalFlow) != discConnector {
			t.Error("both edge kinds must collapse to the Connector discriminator")
		}
	})

	t.Run("BoundaryTableIsOneToOne", func(t *testing.T) {
		for disc, kind := range boundaryKindByDisc {
			if got := discByBoundaryKind[kind]; got != disc {
				t.Errorf("discByBoundaryKind[%s] = %s, want %s", kind, got, disc)
			}
		}
	})
}

func TestLookupFieldAliasPriority(t *testing.T) {
	// When both eras are present the namespace-qualified spelling wins.
	doc := etree.NewDocument()
	if err := doc.ReadFromString(`<w xmlns:a="urn:a"><Key>legacy</Key><a:Key>qualified</a:Key></w>`); err != nil {
		t.Fatalf("fixture did not parse: %v", err)
	}

	if got := textField(doc.Root(), "Key"); got != "qualified" {
		t.Errorf("textField(Key) = %q, want qualified", got)
	}
}

func TestTypeDiscriminatorStripsPrefix(t *testing.T) {
	tests := []struct {
		name string
		xml  string
		want string
	}{
		{name: "Qualified", xml: `<v xmlns:i="urn:i" i:type="StencilEllipse"/>`, want: "StencilEllipse"},
		{name: "PrefixedValue", xml: `<v xmlns:i="urn:i" i:type="b:boolean"/>`, want: "boolean"},
		{name: "LegacyBare", xml: `<v type="Connector"/>`, want: "Connector"},
		{name: "Absent", xml: `<v/>`, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := etree.NewDocument()
			if err := doc.ReadFromString(tt.xml); err != nil {
				t.Fatalf("fixture did not parse: %v", err)
			}
			if got := typeDiscriminator(doc.Root()); got != tt.want {
				t.Errorf("typeDiscriminator() = %q, want %q", got, tt.want)
			}
		})
	}
}
