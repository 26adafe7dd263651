package tmx

import (
	"strings"

	"github.com/beevik/etree"

	"github.com/threatforge/threatforge/pkg/model"
)

// unnamedNode is the display name for nodes whose properties carry no
// usable name.
const unnamedNode = "Unnamed Node"

// internetBoundarySubstring triggers the one layout nudge decode performs:
// line boundaries carrying the external tool's default internet-boundary
// label land on top of the default node layout, so they are shifted clear.
// This is a heuristic for one well-known template label, not a general
// repositioning rule.
const internetBoundarySubstring = "Internet"

// internetBoundaryNudge is the vertical offset applied by that heuristic.
const internetBoundaryNudge = 40.0

// warnFunc receives one message per skipped or degraded element.
type warnFunc func(format string, args ...any)

// Options tunes a conversion. The zero value is valid.
type Options struct {
	// Warnf, when non-nil, receives a message for every element the
	// converter skips or degrades. Skips are otherwise silent; whether they
	// should surface to end users is an open product question, so the
	// converter only reports, never fails, through this hook.
	Warnf func(format string, args ...any)
}

func (o Options) warnf() warnFunc {
	if o.Warnf != nil {
		return o.Warnf
	}
	return func(string, ...any) {}
}

// Decode parses TMX text into a fresh [model.Graph].
//
// It returns a [ParseError] with kind [SyntaxFailure] for text that is not
// well-formed XML, and with kind [SchemaFailure] when the ThreatModel root
// is missing. Individual malformed node, edge, or boundary elements never
// fail the call: each is skipped and extraction of its siblings continues.
//
// The returned graph is independent of the input and of any previous call.
func Decode(text string) (model.Graph, error) {
	return DecodeWithOptions(text, Options{})
}

// DecodeWithOptions is [Decode] with explicit conversion options.
func DecodeWithOptions(text string, opts Options) (model.Graph, error) {
	doc, err := loadDocument(text)
	if err != nil {
		return model.Graph{}, err
	}

	warnf := opts.warnf()
	borders := doc.section(bordersContainer)
	lines := doc.section(linesContainer)

	g := model.Graph{
		Nodes:      extractNodes(borders, warnf),
		Edges:      extractEdges(lines, warnf),
		Boundaries: extractBoundaries(borders, lines, warnf),
		Metadata:   extractMetadata(doc),
	}
	return g, nil
}

// extractMetadata pulls model-level metadata from wherever the document
// carries it; newer files use MetaInformation/ThreatModelName, older ones
// only the drawing surface Header.
func extractMetadata(doc *document) model.Metadata {
	meta := model.Metadata{}
	if e := findDescendant(doc.root, "ThreatModelName"); e != nil {
		meta.Name = strings.TrimSpace(e.Text())
	}
	if meta.Name == "" {
		if e := findDescendant(doc.root, "Header"); e != nil {
			meta.Name = strings.TrimSpace(e.Text())
		}
	}
	if e := findDescendant(doc.root, "Version"); e != nil {
		meta.Version = strings.TrimSpace(e.Text())
	}
	return meta
}

// extractNodes walks the shared node/boundary container. Wrappers whose
// discriminator names a boundary shape are left for extractBoundaries;
// unmapped stencil discriminators are skipped with a warning.
func extractNodes(borders *etree.Element, warnf warnFunc) []model.Node {
	nodes := []model.Node{}

	for _, w := range wrappers(borders, warnf) {
		id := textField(w, "Key")
		val := lookupField(w, "Value")
		if id == "" || val == nil {
			warnf("skipping element without key in %s section", bordersContainer)
			continue
		}

		disc := typeDiscriminator(val)
		if isBoundaryDisc(disc) {
			continue // boundary pass picks these up
		}

		kind, ok := nodeKindForStencil(disc)
		if !ok {
			warnf("skipping element %s: unknown stencil type %q", id, disc)
			continue
		}

		props := decodeProperties(lookupField(val, "Properties"), warnf)
		nodes = append(nodes, model.Node{
			ID:         id,
			Kind:       kind,
			Name:       elementName(props, unnamedNode),
			Position:   toInternal(floatField(val, "Left", 0), floatField(val, "Top", 0)),
			Properties: props,
		})
	}

	return nodes
}

// extractEdges walks the edge container. A wrapper missing either endpoint,
// or referencing the all-zero sentinel identifier, is dropped entirely;
// such connectors occur routinely in real files and must not produce
// phantom edges. Unknown connector discriminators default to the canonical
// flow kind rather than being rejected.
func extractEdges(lines *etree.Element, warnf warnFunc) []model.Edge {
	edges := []model.Edge{}

	for _, w := range wrappers(lines, warnf) {
		val := lookupField(w, "Value")
		disc := typeDiscriminator(val)
		if isBoundaryDisc(disc) {
			continue // boundary pass picks these up
		}

		id := textField(w, "Key")
		source := textField(val, "SourceGuid")
		target := textField(val, "TargetGuid")

		if id == "" || source == "" || target == "" || source == sentinelID || target == sentinelID {
			warnf("skipping connector %q: unresolved endpoint (source %q, target %q)", id, source, target)
			continue
		}

		// Exports key fan-out edges as edgeID:targetID; fold the key back
		// to the edge id so our own output round-trips.
		id, _, _ = strings.Cut(id, ":")

		edges = append(edges, model.Edge{
			ID:         id,
			Kind:       edgeKindForConnector(disc),
			Source:     source,
			Targets:    []string{target},
			Properties: decodeProperties(lookupField(val, "Properties"), warnf),
		})
	}

	return edges
}

// extractBoundaries scans both containers: rectangle boundaries live among
// the nodes, line boundaries among the edges, by external-format
// convention.
func extractBoundaries(borders, lines *etree.Element, warnf warnFunc) []model.Boundary {
	boundaries := []model.Boundary{}
	discard := func(string, ...any) {} // stray elements already reported by the node/edge passes

	for _, container := range []*etree.Element{borders, lines} {
		for _, w := range wrappers(container, discard) {
			val := lookupField(w, "Value")
			disc := typeDiscriminator(val)
			kind, ok := boundaryKindForDisc(disc)
			if !ok {
				continue
			}

			id := textField(w, "Key")
			if id == "" {
				warnf("skipping boundary without key in %s section", container.Tag)
				continue
			}

			shape := shapeByBoundaryDisc[disc]
			props := decodeProperties(lookupField(val, "Properties"), warnf)
			name := elementName(props, "")
			pos := toInternal(floatField(val, "Left", 0), floatField(val, "Top", 0))

			if shape == model.ShapeLine && strings.Contains(name, internetBoundarySubstring) {
				pos.Y -= internetBoundaryNudge
			}

			def := defaultBounds(shape)
			boundaries = append(boundaries, model.Boundary{
				ID:       id,
				Kind:     kind,
				Name:     name,
				Position: pos,
				Bounds: model.Bounds{
					Width:  nonNegative(floatField(val, "Width", def.Width)),
					Height: nonNegative(floatField(val, "Height", def.Height)),
				},
				Shape:      shape,
				Properties: props,
			})
		}
	}

	return boundaries
}

// elementName derives a display name from a decoded property record,
// preferring the machine Name entry over the human DisplayName entry.
func elementName(props model.Properties, fallback string) string {
	if s, ok := props["Name"].(string); ok && s != "" {
		return s
	}
	if s, ok := props["DisplayName"].(string); ok && s != "" {
		return s
	}
	return fallback
}

func nonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
