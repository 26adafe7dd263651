// Package tmx converts between the in-memory threat-model [model.Graph] and
// the TMX XML dialect read and written by the external desktop modeling tool.
//
// # Overview
//
// The dialect is undocumented and has drifted across tool versions: two
// element-naming conventions coexist (namespace-qualified and bare legacy
// names), element properties are nested in a dictionary of typed entries,
// nodes and boundaries share one container while line-shaped boundaries also
// appear among the edges, and connectors are strictly point-to-point where
// the internal model allows fan-out. This package absorbs all of that at the
// conversion boundary so the rest of the application only ever sees a clean
// [model.Graph].
//
// # Entry Points
//
// [Decode] parses TMX text into a fresh graph. [Encode] renders a graph
// snapshot back to TMX text. Both are pure, synchronous functions with no
// shared state; concurrent calls are safe.
//
//	g, err := tmx.Decode(text)
//	...
//	out, err := tmx.Encode(g)
//
// # Fault Tolerance
//
// A structurally broken document fails loudly: [Decode] returns a
// [ParseError] with kind [SyntaxFailure] for malformed XML or [SchemaFailure]
// for a missing root element, and [Encode] returns an [ExportError] if its
// own output does not re-parse. A single bad node, edge, or boundary element,
// by contrast, is skipped with a warning and never blocks the rest of the
// file; pass [Options.Warnf] to observe the skips.
//
// # Lossy Mapping
//
// Interoperating with the external tool loses information by design: both
// internal edge kinds collapse to one connector discriminator, and property
// values round-trip as plain strings (a boolean true comes back as "true").
// Callers must not treat these as defects to correct.
package tmx
