package tmx

import "github.com/threatforge/threatforge/pkg/model"

// Type discriminators used by the external dialect. The discriminator is
// carried as the i:type attribute of a wrapper's value element.
const (
	stencilEllipse       = "StencilEllipse"
	stencilEllipseDashed = "StencilEllipseDashed"
	stencilParallelLines = "StencilParallelLines"
	stencilRectangle     = "StencilRectangle"

	discConnector      = "Connector"
	discLineBoundary   = "LineBoundary"
	discBorderBoundary = "BorderBoundary"
)

// fallbackStencil is emitted on encode for node kinds without an explicit
// stencil mapping, so exports never fail on an unknown kind.
const fallbackStencil = stencilRectangle

// sentinelID is the external dialect's all-zero placeholder meaning
// "no reference". Connectors carrying it on either endpoint are decorative
// leftovers and must not become edges.
const sentinelID = "00000000-0000-0000-0000-000000000000"

// nodeKindByStencil maps stencil discriminators to internal node kinds.
var nodeKindByStencil = map[string]model.NodeKind{
	stencilEllipse:       model.KindProcess,
	stencilEllipseDashed: model.KindMultiProcess,
	stencilParallelLines: model.KindStore,
	stencilRectangle:     model.KindActor,
}

// stencilByNodeKind is the encode direction of nodeKindByStencil.
var stencilByNodeKind = map[model.NodeKind]string{
	model.KindProcess:      stencilEllipse,
	model.KindMultiProcess: stencilEllipseDashed,
	model.KindStore:        stencilParallelLines,
	model.KindActor:        stencilRectangle,
}

// boundaryKindByDisc maps boundary discriminators to internal boundary
// kinds. Unlike stencils, this table is one-to-one in both directions.
var boundaryKindByDisc = map[string]model.BoundaryKind{
	discLineBoundary:   model.KindTrustBoundary,
	discBorderBoundary: model.KindNetworkZone,
}

// discByBoundaryKind is the encode direction of boundaryKindByDisc.
var discByBoundaryKind = map[model.BoundaryKind]string{
	model.KindTrustBoundary: discLineBoundary,
	model.KindNetworkZone:   discBorderBoundary,
}

// shapeByBoundaryDisc derives the drawing shape hint from a boundary
// discriminator.
var shapeByBoundaryDisc = map[string]model.BoundaryShape{
	discLineBoundary:   model.ShapeLine,
	discBorderBoundary: model.ShapeRectangle,
}

// genericTypeIDByDisc supplies the GenericTypeId element the external tool
// stores alongside each discriminator. Decode ignores these; encode emits
// them for compatibility.
var genericTypeIDByDisc = map[string]string{
	stencilEllipse:       "GE.P",
	stencilEllipseDashed: "GE.P.B",
	stencilParallelLines: "GE.DS",
	stencilRectangle:     "GE.EI",
	discConnector:        "GE.DF",
	discLineBoundary:     "GE.TB.L",
	discBorderBoundary:   "GE.TB.B",
}

// nodeKindForStencil resolves a stencil discriminator to a node kind.
// Lookup never fails hard: the second return reports whether the
// discriminator is known, and callers skip-and-log on false.
func nodeKindForStencil(disc string) (model.NodeKind, bool) {
	k, ok := nodeKindByStencil[disc]
	return k, ok
}

// stencilForNodeKind resolves a node kind to its stencil discriminator,
// falling back to fallbackStencil for unmapped kinds.
func stencilForNodeKind(kind model.NodeKind) string {
	if s, ok := stencilByNodeKind[kind]; ok {
		return s
	}
	return fallbackStencil
}

// edgeKindForConnector resolves a connector discriminator to an edge kind.
// Every connector decodes to the canonical flow kind: the dialect has a
// single connector type, and rejecting unknown discriminators would drop
// real flows from files written by newer tool versions.
func edgeKindForConnector(string) model.EdgeKind {
	return model.KindFlow
}

// connectorForEdgeKind resolves an edge kind to its connector
// discriminator. Both internal edge kinds collapse to the one connector the
// external tool understands; the distinction is lost on export by design.
func connectorForEdgeKind(model.EdgeKind) string {
	return discConnector
}

// boundaryKindForDisc resolves a boundary discriminator.
func boundaryKindForDisc(disc string) (model.BoundaryKind, bool) {
	k, ok := boundaryKindByDisc[disc]
	return k, ok
}

// isBoundaryDisc reports whether a discriminator names a boundary shape.
func isBoundaryDisc(disc string) bool {
	_, ok := boundaryKindByDisc[disc]
	return ok
}

// fieldName identifies an element by namespace prefix and local name as the
// two naming eras of the dialect wrote it.
type fieldName struct {
	space string
	tag   string
}

// fieldAliases lists, per logical field, the element names to try in
// priority order: the namespace-qualified spelling of newer documents
// first, the bare legacy spelling second. Every field lookup in this
// package resolves through this table instead of hard-coding one era.
var fieldAliases = map[string][]fieldName{
	"Key":           {{"a", "Key"}, {"", "Key"}},
	"Value":         {{"a", "Value"}, {"", "Value"}},
	"Name":          {{"b", "Name"}, {"", "Name"}},
	"DisplayName":   {{"b", "DisplayName"}, {"", "DisplayName"}},
	"PropertyValue": {{"b", "Value"}, {"", "Value"}},
	"SelectedIndex": {{"b", "SelectedIndex"}, {"", "SelectedIndex"}},
	"SourceGuid":    {{"a", "SourceGuid"}, {"", "SourceGuid"}},
	"TargetGuid":    {{"a", "TargetGuid"}, {"", "TargetGuid"}},
	"Left":          {{"a", "Left"}, {"", "Left"}},
	"Top":           {{"a", "Top"}, {"", "Top"}},
	"Width":         {{"a", "Width"}, {"", "Width"}},
	"Height":        {{"a", "Height"}, {"", "Height"}},
	"Properties":    {{"a", "Properties"}, {"", "Properties"}},
}

// aliasesFor returns the alias list for a logical field. Fields without a
// registered list fall back to qualified-then-bare with the common wrapper
// prefixes.
func aliasesFor(field string) []fieldName {
	if names, ok := fieldAliases[field]; ok {
		return names
	}
	return []fieldName{{"a", field}, {"b", field}, {"", field}}
}
