// Package pkg provides the core libraries for genomap sequence map rendering.
//
// # Overview
//
// Genomap draws annotated maps of DNA sequences from GenBank records:
// features stacked into non-overlapping rows, restriction sites, and
// labels pushed apart until none collide, in linear or circular form.
// The pkg directory is organized into five main areas:
//
//  1. [genbank] - GenBank flat-file parsing (locus, features, origin)
//  2. [seqmap] - Layout engine (bounds, rows, labels, shapes)
//  3. [digest] - Restriction enzyme site scanning
//  4. [plot] - Serialization types for computed layouts
//  5. [render] - Output backends (SVG, PNG, PDF, JSON, Graphviz debug views)
//
// # Architecture
//
// The typical data flow through genomap:
//
//	GenBank record
//	         ↓
//	    [genbank] package (parse locus, feature table, origin)
//	         ↓
//	    [seqmap] package (resolve bounds, assign rows, place labels)
//	         ↓
//	    [plot] package (serializable layout geometry)
//	         ↓
//	    [render] package (SVG/PDF/PNG/JSON output)
//
// The [pipeline] package orchestrates the stages with caching and is the
// entry point used by both the CLI and the HTTP API. Supporting packages
// provide cross-cutting infrastructure: [cache] for content-addressed
// result caching, [errors] for coded errors, [observability] for
// pluggable instrumentation hooks, and [buildinfo] for version metadata.
package pkg
