// Package pkg holds the gridsep libraries.
//
// # Overview
//
// gridsep refines tilings of gridded permutations. When the points of
// several cells in one row always appear in a fixed vertical order, that
// row can be split into several rows, one per class of cells. The same holds
// for columns. Repeating this until nothing splits yields the separated
// tiling.
//
// The pkg directory is organized into four areas:
//
//  1. [tiling] and [order] - Domain types: tilings, gridded permutations,
//     order graphs and the search over their orders
//  2. [separation] - One separation pass and the loop that repeats it
//  3. [pipeline], [cache], [io] - Orchestration, result caching and the JSON
//     wire format
//  4. [server], [config], [observability], [errors] - HTTP API, settings,
//     hooks and error codes
//
// # Architecture
//
// The typical data flow:
//
//	JSON tiling
//	     ↓
//	[io] package (decode and validate)
//	     ↓
//	[separation] package (passes over [order] graphs)
//	     ↓
//	[pipeline] package (cache lookup, run, cache store)
//	     ↓
//	CLI output, JSON result or HTTP response
package pkg
