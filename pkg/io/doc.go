// Package io serializes diagram descriptions and writes rendered output.
//
// # Overview
//
// [FromDiagram] flattens a built diagram into a [Descriptor]: its
// [diagram.Spec] settings, every cluster with its parent and ordered
// children, every node with its kind and enclosing clusters, and every edge
// with both endpoint IDs and labels. Building the same diagram twice yields
// byte-identical JSON and TOML.
//
//	err := io.WriteJSON(d, os.Stdout)
//	err := io.WriteTOML(d, os.Stdout)
//
// # JSON Format
//
//	{
//	  "title": "T",
//	  "direction": "TB",
//	  "filename": "out",
//	  "format": "png",
//	  "clusters": [
//	    {"id": 1, "label": "gcp", "parent": -1, "children": [2]}
//	  ],
//	  "nodes": [
//	    {"id": 0, "label": "user", "kind": "onprem.compute.server", "parent": -1, "path": []},
//	    {"id": 2, "label": "web", "kind": "gcp.compute.compute_engine", "parent": 1, "path": ["gcp"]}
//	  ],
//	  "edges": [
//	    {"from": 0, "to": 2, "from_label": "user", "to_label": "web"}
//	  ]
//	}
//
// A parent of -1 marks a top-level element.
//
// # Output Files
//
// [WriteFile] writes rendered bytes atomically: the data goes to a uniquely
// named temporary file in the target directory and is renamed into place, so
// a failed run never leaves a partial image or a stray temporary file.
package io
