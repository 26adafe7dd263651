package tmx

import (
	"fmt"
	"maps"
	"strconv"
	"strings"

	"github.com/threatforge/threatforge/pkg/model"
)

// Default size of an emitted node wrapper. The external tool lays elements
// out itself; only the position is meaningful on import.
const (
	defaultNodeWidth  = 100.0
	defaultNodeHeight = 100.0
)

// documentSkeleton is the fixed shell every export starts from. The
// placeholder tokens are substituted with a fresh drawing-surface
// identifier, the escaped model name, and the generated wrapper blocks.
const documentSkeleton = `<?xml version="1.0" encoding="utf-8"?>
<ThreatModel xmlns:a="http://schemas.microsoft.com/2003/10/Serialization/Arrays" xmlns:b="http://schemas.datacontract.org/2004/07/ThreatModeling.Model" xmlns:i="http://www.w3.org/2001/XMLSchema-instance">
  <DrawingSurfaceList>
    <DrawingSurfaceModel>
      <GenericTypeId>DRAWINGSURFACE</GenericTypeId>
      <Guid>{{SURFACE_GUID}}</Guid>
      <Borders>{{BORDERS}}</Borders>
      <Header>{{MODEL_NAME}}</Header>
      <Lines>{{LINES}}</Lines>
      <Zoom>1</Zoom>
    </DrawingSurfaceModel>
  </DrawingSurfaceList>
  <MetaInformation>
    <ThreatModelName>{{MODEL_NAME}}</ThreatModelName>
  </MetaInformation>
</ThreatModel>`

// Encode renders a graph snapshot as TMX text.
//
// Nodes and rectangle boundaries are written to the shared Borders
// container, connectors and line boundaries to Lines. An internal edge with
// N targets expands to N point-to-point connector wrappers, each keyed by
// edgeID:targetID, because the dialect cannot express fan-out. Node kinds
// without a stencil mapping fall back to the default stencil, and both edge
// kinds collapse to the single connector discriminator.
//
// The assembled text is re-parsed once before returning; if that check
// fails, Encode returns an [ExportError] instead of corrupt output. The
// input graph is never mutated.
func Encode(g model.Graph) (string, error) {
	var borders, lines strings.Builder

	for _, n := range g.Nodes {
		writeNodeWrapper(&borders, n)
	}
	for _, b := range g.Boundaries {
		switch b.Shape {
		case model.ShapeLine:
			writeBoundaryWrapper(&lines, b)
		default:
			writeBoundaryWrapper(&borders, b)
		}
	}
	for _, e := range g.Edges {
		for _, target := range e.Targets {
			writeConnectorWrapper(&lines, e, target)
		}
	}

	text := strings.NewReplacer(
		"{{SURFACE_GUID}}", NewIdentifier(),
		"{{MODEL_NAME}}", escapeXML(g.Metadata.Name),
		"{{BORDERS}}", borders.String(),
		"{{LINES}}", lines.String(),
	).Replace(documentSkeleton)

	if err := recheck(text); err != nil {
		return "", &ExportError{Message: "generated document failed well-formedness check", Cause: err}
	}
	return text, nil
}

// recheck re-parses generated output and inspects it for the parser's error
// marker. Cheap relative to the conversion, and the only way to promise
// callers a loadable file.
func recheck(text string) error {
	_, err := loadDocument(text)
	return err
}

func writeNodeWrapper(b *strings.Builder, n model.Node) {
	disc := stencilForNodeKind(n.Kind)
	left, top := toExternal(n.Position)

	fmt.Fprintf(b,
		`<a:KeyValueOfguidanyType><a:Key>%s</a:Key><a:Value i:type="%s"><GenericTypeId>%s</GenericTypeId><Guid>%s</Guid><Properties>%s</Properties><Height>%s</Height><Left>%s</Left><Top>%s</Top><Width>%s</Width></a:Value></a:KeyValueOfguidanyType>`,
		escapeXML(n.ID), disc, genericTypeIDByDisc[disc], escapeXML(n.ID),
		encodeProperties(withName(n.Properties, n.Name)),
		num(defaultNodeHeight), num(left), num(top), num(defaultNodeWidth))
}

func writeBoundaryWrapper(b *strings.Builder, bd model.Boundary) {
	disc := discByBoundaryKind[bd.Kind]
	if disc == "" {
		disc = discLineBoundary
	}
	left, top := toExternal(bd.Position)

	fmt.Fprintf(b,
		`<a:KeyValueOfguidanyType><a:Key>%s</a:Key><a:Value i:type="%s"><GenericTypeId>%s</GenericTypeId><Guid>%s</Guid><Properties>%s</Properties><Height>%s</Height><Left>%s</Left><Top>%s</Top><Width>%s</Width></a:Value></a:KeyValueOfguidanyType>`,
		escapeXML(bd.ID), disc, genericTypeIDByDisc[disc], escapeXML(bd.ID),
		encodeProperties(withName(bd.Properties, bd.Name)),
		num(bd.Bounds.Height), num(left), num(top), num(bd.Bounds.Width))
}

func writeConnectorWrapper(b *strings.Builder, e model.Edge, target string) {
	disc := connectorForEdgeKind(e.Kind)
	key := e.ID + ":" + target

	fmt.Fprintf(b,
		`<a:KeyValueOfguidanyType><a:Key>%s</a:Key><a:Value i:type="%s"><GenericTypeId>%s</GenericTypeId><Guid>%s</Guid><Properties>%s</Properties><HandleX>0</HandleX><HandleY>0</HandleY><PortSource>0</PortSource><PortTarget>0</PortTarget><SourceGuid>%s</SourceGuid><SourceX>0</SourceX><SourceY>0</SourceY><TargetGuid>%s</TargetGuid><TargetX>0</TargetX><TargetY>0</TargetY></a:Value></a:KeyValueOfguidanyType>`,
		escapeXML(key), disc, genericTypeIDByDisc[disc], escapeXML(key),
		encodeProperties(e.Properties),
		escapeXML(e.Source), escapeXML(target))
}

// withName returns the property record with the element's display name
// folded in as the machine Name entry, so decode can recover it.
func withName(props model.Properties, name string) model.Properties {
	if name == "" {
		return props
	}
	merged := maps.Clone(props)
	if merged == nil {
		merged = model.Properties{}
	}
	merged["Name"] = name
	return merged
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
