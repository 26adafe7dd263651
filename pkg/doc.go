// Package pkg provides the core libraries for Threatforge threat model
// conversion.
//
// # Overview
//
// Threatforge converts between a third-party threat modeling diagram
// format and an in-memory graph model with a stable JSON form. The pkg
// directory is organized into a few areas:
//
//  1. [model] - The graph data model (nodes, edges, boundaries, metadata)
//  2. [tmx] - The diagram file codec (decode, encode, fault tolerance)
//  3. [modelio] - File and stream adapters for both formats
//  4. [render] - Graphviz node-link rendering
//  5. [cache], [store], [config] - Infrastructure for the HTTP API
//
// # Architecture
//
// The typical data flow through Threatforge:
//
//	Diagram file (.tm7)
//	         ↓
//	    [tmx] package (tolerant decode)
//	         ↓
//	    [model] package (graph structure + validation)
//	         ↓
//	    [modelio] package (JSON in/out) or [render] package (DOT/SVG)
//
// Encoding runs the same path in reverse: a validated graph is expanded
// into point-to-point diagram wrappers and re-parsed before it is
// handed back.
package pkg
