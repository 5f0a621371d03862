package geff

import (
	"os"

	"github.com/live-image-tracking-tools/gefftracks/pkg/axis"
	"github.com/live-image-tracking-tools/gefftracks/pkg/graph"
)

// ReaderFunc loads a lineage file. It is returned by [Detect] once a path
// has passed the validity gate.
type ReaderFunc func(path string) (*graph.DirectedGraph, axis.Axes, error)

// Detect is the reader gate for a viewer host. It inspects the file at path
// and returns a reader function if the file is a loadable lineage document,
// or (nil, false) if the path is not applicable: missing file, malformed
// JSON, undirected graph, or an axis list without a valid time axis and at
// least one space axis.
//
// Detect never returns an error for unsupported input - declining is the
// contract, so hard structural errors surface only from the returned reader
// on files that already passed the gate.
func Detect(path string) (ReaderFunc, bool) {
	f, err := os.Open(path)
	if err != nil {
		return nil, false
	}
	defer f.Close()

	if _, _, err := ReadJSON(f); err != nil {
		return nil, false
	}

	return ImportFile, true
}
