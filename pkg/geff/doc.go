// Package geff reads and writes lineage graph documents in a JSON exchange
// format.
//
// # Format
//
// A document has a "geff" metadata block plus "nodes" and "edges" arrays:
//
//	{
//	  "geff": {
//	    "version": "0.1",
//	    "directed": true,
//	    "axes": [
//	      {"name": "t", "type": "time", "unit": "second"},
//	      {"name": "y", "type": "space", "unit": "micrometer"},
//	      {"name": "x", "type": "space", "unit": "micrometer"}
//	    ]
//	  },
//	  "nodes": [{"id": "a", "attrs": {"t": 0, "y": 10.5, "x": 3.2}}],
//	  "edges": [{"from": "a", "to": "b", "attrs": {"score": 0.9}}]
//	}
//
// Node attrs must include a value for every declared axis; additional keys
// are carried through untouched. Edge attrs are optional.
//
// # Loading
//
// [Detect] implements the reader gate: it declines files that are not
// loadable lineage documents by returning (nil, false) instead of an error.
// Once a file passes the gate, [ImportFile] and [ReadJSON] perform full
// validation - directedness, axis schema, node/edge integrity, acyclicity -
// and fail fast with wrapped errors naming the offending node or edge.
//
// # Writing
//
// [ExportFile] and [WriteJSON] emit documents that re-import identically,
// enabling full round-trip fidelity through decomposition and
// reconstruction.
package geff
