// Package io provides JSON import and export for tilings and separation
// results.
//
// # JSON Format
//
// A tiling has one required and two optional top-level arrays. Cells are
// written as [col, row] pairs with (0,0) the bottom-left cell:
//
//	{
//	  "obstructions": [
//	    {"patt": [0], "pos": [[1, 1]]},
//	    {"patt": [0, 1], "pos": [[0, 0], [1, 0]]}
//	  ],
//	  "requirements": [
//	    [{"patt": [0], "pos": [[0, 0]]}]
//	  ],
//	  "assumptions": [
//	    [{"patt": [0], "pos": [[0, 0]]}, {"patt": [0], "pos": [[1, 0]]}]
//	  ]
//	}
//
// "patt" lists the relative values of the points from left to right and
// "pos" the cell of each point. A point obstruction empties its cell. Each
// requirement is a list of alternatives; each assumption a list of points.
//
// # Import
//
// Use [ImportTiling] to read a tiling from a file path, or [ReadTiling] to
// read from any io.Reader:
//
//	t, err := io.ImportTiling("tiling.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Malformed input is reported with INVALID_FORMAT or INVALID_TILING codes
// from [github.com/matzehuels/gridsep/pkg/errors]. Valid input goes through
// [tiling.Build], so what comes back is the cleaned-up tiling.
//
// # Export
//
// [WriteTiling], [MarshalTiling] and [ExportTiling] write the canonical form
// of a tiling. [Result] bundles a separated tiling with its cell map for the
// CLI, the HTTP API and the cache:
//
//	{
//	  "run_id": "5f0c…",
//	  "separable": true,
//	  "passes": 1,
//	  "tiling": {...},
//	  "cell_map": [{"from": [1, 0], "to": [1, 0]}]
//	}
package io
