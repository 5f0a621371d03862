// Package pipeline provides the core tracks pipeline for gefftracks.
//
// This package implements the complete read → decompose → build pipeline
// that can be used by CLI and server components. By centralizing this
// logic, we ensure consistent behavior across all entry points and avoid
// code duplication.
//
// # Architecture
//
// The load path consists of three stages:
//
//  1. Read: Parse the lineage graph and axis schema from a geff document
//  2. Decompose: Partition the graph into tracklets
//  3. Build: Assemble the viewer-facing tracks table
//
// The save path runs in reverse: a tracks table is reconstructed into a
// lineage graph and written back out as a geff document.
//
// # Usage
//
// Create a Runner and load a file:
//
//	runner := pipeline.NewRunner(cache, logger)
//	result, err := runner.Load(ctx, pipeline.Options{Input: "cells.geff.json"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	tracks := result.Tracks
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/live-image-tracking-tools/gefftracks/pkg/layer"
)

// Options contains configuration for a pipeline load.
type Options struct {
	// Input is the path of the geff document to load.
	Input string `json:"input"`

	// Refresh bypasses the cache lookup and overwrites the cached entry.
	Refresh bool `json:"refresh,omitempty"`

	// Logger overrides the runner's logger for this run (not serialized).
	Logger *log.Logger `json:"-"`
}

// Validate checks required fields and applies defaults.
func (o *Options) Validate() error {
	if o.Input == "" {
		return fmt.Errorf("input path is required")
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// Result contains the outputs of a pipeline load.
type Result struct {
	// Tracks is the built tracks table.
	Tracks *layer.Tracks

	// ContentHash is the hash of the source document, used as the cache key
	// for derived artifacts.
	ContentHash string

	// Stats contains counts and timing information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics. Timings are zero when the
// result came from cache.
type Stats struct {
	NodeCount     int           `json:"node_count"`
	EdgeCount     int           `json:"edge_count"`
	TrackletCount int           `json:"tracklet_count"`
	Divisions     int           `json:"divisions"`
	Merges        int           `json:"merges"`
	ReadTime      time.Duration `json:"-"`
	DecomposeTime time.Duration `json:"-"`
	BuildTime     time.Duration `json:"-"`
}

// CacheInfo tracks cache hits for the pipeline stages.
type CacheInfo struct {
	TracksHit bool // Whether the tracks table came from cache
}

// envelope is the cached form of a load result: the tracks table plus the
// counts that would otherwise require re-reading the graph.
type envelope struct {
	Tracks *layer.Tracks `json:"tracks"`
	Stats  Stats         `json:"stats"`
}
