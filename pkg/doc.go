// Package pkg provides the core libraries for penpath pen-plotter path optimization.
//
// # Overview
//
// penpath reads HPGL documents, reorders the strokes of each pen so the pen
// travels as little as possible while lifted, and writes the result back out
// in a canonical one-instruction-per-line form. The pkg directory is
// organized into these areas:
//
//  1. [hpgl] and [optimize] - Domain logic (parsing, canonical form, shape
//     extraction, tour ordering, re-emission)
//  2. [pipeline] - Orchestration (parse → canonicalize → extract → optimize → emit → render)
//  3. [render] - Previews (SVG, G-code, PDF, PNG, Graphviz tour)
//  4. [transport] - Streaming documents to a serial plotter
//  5. [source] and [integrations] - Document producers (OpenStreetMap, text)
//  6. [cache], [jobs], [server] - Infrastructure (caching, job records, HTTP API)
//
// # Architecture
//
// The typical data flow through penpath:
//
//	HPGL document (file, stdin, HTTP body, OSM extract, text)
//	         ↓
//	    [hpgl] package (parse + canonicalize)
//	         ↓
//	    [optimize] package (extract shapes per pen + nearest-neighbour tour)
//	         ↓
//	    [optimize.Emit] (canonical text)
//	         ↓
//	    [transport] to a plotter, or [render] to SVG/G-code/PDF/PNG
//
// # Quick Start
//
// Optimize a document:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/penpath/pkg/hpgl"
//	    "github.com/matzehuels/penpath/pkg/optimize"
//	)
//
//	// 1. Parse and canonicalize
//	cmds, _ := hpgl.Parse("SP1;PU0,0;PD10,0;PU500,500;PD510,500;PU;")
//	canonical, _ := hpgl.Canonicalize(cmds)
//
//	// 2. Extract shapes and reorder them
//	plot, _ := optimize.Extract(canonical)
//	plot, _ = optimize.Optimize(context.Background(), plot, optimize.Options{})
//
//	// 3. Emit
//	text := hpgl.Render(optimize.Emit(plot))
//
// Or let the pipeline do all of it, with caching:
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	text, _ := runner.Optimize(ctx, doc, pipeline.Options{})
//
// # Main Packages
//
// [hpgl] - The command model. Parse splits a document into typed commands
// and reports every unrecognized fragment; Canonicalize rewrites moves into
// single-point absolute plots.
//
// [optimize] - Shape extraction, per-pen nearest-neighbour ordering (pens in
// parallel) and re-emission.
//
// [pipeline] - The Runner used by both the CLI and the server. Caches the
// optimized text by document hash and rendered artifacts by plot hash.
//
// [cache] - File, Redis and null caches behind one interface, plus the key
// scheme and retry helpers.
//
// [errors] - Structured errors with codes that map to exit statuses and
// HTTP responses.
package pkg
