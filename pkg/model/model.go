// Package model defines the in-memory threat-model graph: nodes, edges,
// boundaries, and model metadata.
//
// The graph is format-independent. Converters (see [tmx]) and serializers
// (see [modelio]) produce and consume Graph values but never share or mutate
// one after handing it over; use [Graph.Clone] when a snapshot is needed.
//
// Coordinates follow the mathematical convention: the Y axis increases
// upward. File formats with a screen-oriented axis are reconciled at their
// conversion boundary, not here.
//
// [tmx]: github.com/threatforge/threatforge/pkg/tmx
// [modelio]: github.com/threatforge/threatforge/pkg/modelio
package model

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"time"
)

var (
	// ErrEmptyID is returned by [Graph.Validate] when a node, edge, or
	// boundary has an empty identifier.
	ErrEmptyID = errors.New("identifier must not be empty")

	// ErrDuplicateID is returned by [Graph.Validate] when two elements of the
	// same collection share an identifier. Identifiers must be unique per
	// collection.
	ErrDuplicateID = errors.New("duplicate identifier")

	// ErrNoTargets is returned by [Graph.Validate] for an edge with an empty
	// target list. Edges fan out to one or more targets, never zero.
	ErrNoTargets = errors.New("edge must have at least one target")

	// ErrNegativeBounds is returned by [Graph.Validate] for a boundary with a
	// negative width or height.
	ErrNegativeBounds = errors.New("boundary bounds must be non-negative")
)

// NodeKind enumerates the element types a node can represent.
type NodeKind string

// Known node kinds.
const (
	KindProcess      NodeKind = "process"
	KindMultiProcess NodeKind = "multi-process"
	KindStore        NodeKind = "store"
	KindActor        NodeKind = "actor"
)

// EdgeKind enumerates the flow types an edge can represent.
type EdgeKind string

// Known edge kinds.
const (
	KindFlow              EdgeKind = "flow"
	KindBidirectionalFlow EdgeKind = "bidirectional-flow"
)

// BoundaryKind enumerates the boundary types.
type BoundaryKind string

// Known boundary kinds.
const (
	KindTrustBoundary BoundaryKind = "trust-boundary"
	KindNetworkZone   BoundaryKind = "network-zone"
)

// BoundaryShape hints how a boundary is drawn.
type BoundaryShape string

// Known boundary shapes.
const (
	ShapeLine      BoundaryShape = "line"
	ShapeRectangle BoundaryShape = "rectangle"
)

// Properties stores flat, string-keyed element attributes. Values are
// scalars: string, bool, int, or float64. Non-scalar values are rejected by
// serializers rather than here.
type Properties map[string]any

// Position is a point on the drawing surface. Y increases upward.
type Position struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// Bounds is the extent of a boundary shape. Both dimensions are
// non-negative for valid graphs.
type Bounds struct {
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`
}

// Node is a single element on the diagram: a process, store, or actor.
type Node struct {
	ID         string     `json:"id" bson:"id"`
	Kind       NodeKind   `json:"kind" bson:"kind"`
	Name       string     `json:"name" bson:"name"`
	Position   Position   `json:"position" bson:"position"`
	Properties Properties `json:"properties,omitempty" bson:"properties,omitempty"`
}

// Edge is a directed flow from one source to one or more targets. The
// target list is ordered and never empty in a valid graph. Fan-out is a
// property of this model only; point-to-point file formats expand it on
// export.
type Edge struct {
	ID         string     `json:"id" bson:"id"`
	Kind       EdgeKind   `json:"kind" bson:"kind"`
	Source     string     `json:"source" bson:"source"`
	Targets    []string   `json:"targets" bson:"targets"`
	Properties Properties `json:"properties,omitempty" bson:"properties,omitempty"`
}

// Boundary is a trust boundary or network zone overlaid on the diagram.
type Boundary struct {
	ID         string        `json:"id" bson:"id"`
	Kind       BoundaryKind  `json:"kind" bson:"kind"`
	Name       string        `json:"name" bson:"name"`
	Position   Position      `json:"position" bson:"position"`
	Bounds     Bounds        `json:"bounds" bson:"bounds"`
	Shape      BoundaryShape `json:"shape" bson:"shape"`
	Properties Properties    `json:"properties,omitempty" bson:"properties,omitempty"`
}

// Metadata describes the model as a whole.
type Metadata struct {
	Name     string    `json:"name" bson:"name"`
	Version  string    `json:"version,omitempty" bson:"version,omitempty"`
	Created  time.Time `json:"created,omitempty" bson:"created,omitempty"`
	Modified time.Time `json:"modified,omitempty" bson:"modified,omitempty"`
}

// Graph is the complete threat model: all nodes, edges, and boundaries plus
// model metadata. Identifiers are unique within each collection.
//
// Graph values are plain data; they carry no internal locking and are not
// safe for concurrent mutation. Converters treat them as snapshots.
type Graph struct {
	Nodes      []Node     `json:"nodes" bson:"nodes"`
	Edges      []Edge     `json:"edges" bson:"edges"`
	Boundaries []Boundary `json:"boundaries" bson:"boundaries"`
	Metadata   Metadata   `json:"metadata" bson:"metadata"`
}

// Validate checks the structural invariants of the graph: non-empty unique
// identifiers per collection, at least one target per edge, and non-negative
// boundary bounds. It returns the first violation found, wrapped with the
// offending element's identifier.
func (g *Graph) Validate() error {
	nodeIDs := make(map[string]struct{}, len(g.Nodes))
	for _, n := range g.Nodes {
		if n.ID == "" {
			return fmt.Errorf("node: %w", ErrEmptyID)
		}
		if _, ok := nodeIDs[n.ID]; ok {
			return fmt.Errorf("node %s: %w", n.ID, ErrDuplicateID)
		}
		nodeIDs[n.ID] = struct{}{}
	}

	edgeIDs := make(map[string]struct{}, len(g.Edges))
	for _, e := range g.Edges {
		if e.ID == "" {
			return fmt.Errorf("edge: %w", ErrEmptyID)
		}
		if _, ok := edgeIDs[e.ID]; ok {
			return fmt.Errorf("edge %s: %w", e.ID, ErrDuplicateID)
		}
		edgeIDs[e.ID] = struct{}{}
		if len(e.Targets) == 0 {
			return fmt.Errorf("edge %s: %w", e.ID, ErrNoTargets)
		}
	}

	boundaryIDs := make(map[string]struct{}, len(g.Boundaries))
	for _, b := range g.Boundaries {
		if b.ID == "" {
			return fmt.Errorf("boundary: %w", ErrEmptyID)
		}
		if _, ok := boundaryIDs[b.ID]; ok {
			return fmt.Errorf("boundary %s: %w", b.ID, ErrDuplicateID)
		}
		boundaryIDs[b.ID] = struct{}{}
		if b.Bounds.Width < 0 || b.Bounds.Height < 0 {
			return fmt.Errorf("boundary %s: %w", b.ID, ErrNegativeBounds)
		}
	}

	return nil
}

// Clone returns a deep copy of the graph. Property maps and target lists are
// copied, so mutating the clone never affects the original.
func (g *Graph) Clone() Graph {
	out := Graph{
		Nodes:      make([]Node, len(g.Nodes)),
		Edges:      make([]Edge, len(g.Edges)),
		Boundaries: make([]Boundary, len(g.Boundaries)),
		Metadata:   g.Metadata,
	}
	for i, n := range g.Nodes {
		n.Properties = maps.Clone(n.Properties)
		out.Nodes[i] = n
	}
	for i, e := range g.Edges {
		e.Targets = slices.Clone(e.Targets)
		e.Properties = maps.Clone(e.Properties)
		out.Edges[i] = e
	}
	for i, b := range g.Boundaries {
		b.Properties = maps.Clone(b.Properties)
		out.Boundaries[i] = b
	}
	return out
}

// Node returns the node with the given id, or nil if absent.
func (g *Graph) Node(id string) *Node {
	for i := range g.Nodes {
		if g.Nodes[i].ID == id {
			return &g.Nodes[i]
		}
	}
	return nil
}

// Boundary returns the boundary with the given id, or nil if absent.
func (g *Graph) Boundary(id string) *Boundary {
	for i := range g.Boundaries {
		if g.Boundaries[i].ID == id {
			return &g.Boundaries[i]
		}
	}
	return nil
}
