// Package pkg provides the core libraries for gefftracks lineage processing.
//
// # Overview
//
// gefftracks turns directed lineage graphs from cell tracking experiments
// into viewer-ready tracks tables and back. The pkg directory is organized
// into a handful of focused packages:
//
//  1. [graph] - Directed graph structure with insertion-order iteration
//  2. [axis] - Axis schema for spatiotemporal node attributes
//  3. [geff] - The geff JSON document format (read, write, detect)
//  4. [tracklet] - Tracklet decomposition and edge reconstruction
//  5. [layer] - Viewer-facing tracks tables
//  6. [render] - Tracklet lineage diagrams via Graphviz
//  7. [pipeline] - Orchestration (read → decompose → build) with caching
//  8. [cache] - Result caching (file, Redis, null backends)
//
// # Architecture
//
// The typical data flow on load:
//
//	geff document
//	     ↓
//	[geff] package (decode + validate)
//	     ↓
//	[tracklet] package (decompose into tracklets)
//	     ↓
//	[layer] package (build tracks table)
//	     ↓
//	tracks table (JSON) for a viewer host
//
// Saving runs the inverse: a tracks table is reconstructed into a lineage
// graph by [tracklet.Reconstruct] and written back out as a geff document.
//
// # Quick Start
//
// Load a file and decompose it:
//
//	import (
//	    "github.com/live-image-tracking-tools/gefftracks/pkg/geff"
//	    "github.com/live-image-tracking-tools/gefftracks/pkg/layer"
//	    "github.com/live-image-tracking-tools/gefftracks/pkg/tracklet"
//	)
//
//	// 1. Read the lineage graph
//	g, axes, _ := geff.ImportFile("cells.geff.json")
//
//	// 2. Decompose into tracklets
//	res, _ := tracklet.Decompose(g)
//
//	// 3. Build the tracks table
//	tracks, _ := layer.Build(g, res, axes)
//
// Or use the pipeline, which adds caching and logging:
//
//	runner := pipeline.NewRunner(cache, logger)
//	result, _ := runner.Load(ctx, pipeline.Options{Input: "cells.geff.json"})
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/tracklet/... # Specific package
//	go test -run Example       # Examples only
//
// [graph]: https://pkg.go.dev/github.com/live-image-tracking-tools/gefftracks/pkg/graph
// [axis]: https://pkg.go.dev/github.com/live-image-tracking-tools/gefftracks/pkg/axis
// [geff]: https://pkg.go.dev/github.com/live-image-tracking-tools/gefftracks/pkg/geff
// [tracklet]: https://pkg.go.dev/github.com/live-image-tracking-tools/gefftracks/pkg/tracklet
// [layer]: https://pkg.go.dev/github.com/live-image-tracking-tools/gefftracks/pkg/layer
// [render]: https://pkg.go.dev/github.com/live-image-tracking-tools/gefftracks/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/live-image-tracking-tools/gefftracks/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/live-image-tracking-tools/gefftracks/pkg/cache
package pkg
