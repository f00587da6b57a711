// Package pkg provides the core libraries for radialstack charts.
//
// # Overview
//
// Radialstack draws a segment/layer/value table as a radial stacked chart:
// every segment is a slice of the disc and every layer a band stacked
// outward from a central hole, so the outer edge of a slice is the
// segment's total. The pkg directory is organized into these areas:
//
//  1. [table] - Input tables (CSV, JSON, Parquet) with column roles
//  2. [transform] - Rows to one record per segment
//  3. [render/radial] - Layout, animation, scene and output sinks
//  4. [host] - Dashboard host lifecycle (init, update, style options)
//  5. [pipeline] - Orchestration (transform → layout → render)
//  6. [cache] - Rendered-artifact caches (file, memory, Redis)
//  7. [errors], [observability], [fonts], [buildinfo] - Shared support
//
// # Architecture
//
//	CSV / JSON / Parquet table
//	         ↓
//	    [table] package (column roles, typed cells)
//	         ↓
//	    [transform] package (segment records, first-seen order)
//	         ↓
//	    [render/radial] package (layout + animation → scene)
//	         ↓
//	    SVG/JSON/PNG/PDF output
//
// # Quick Start
//
//	import (
//	    "context"
//
//	    "github.com/matzehuels/radialstack/pkg/pipeline"
//	    "github.com/matzehuels/radialstack/pkg/table"
//	)
//
//	tbl, _ := table.Load("sales.csv", table.Bindings{})
//	runner := pipeline.NewRunner(nil)
//	result, _ := runner.Execute(context.Background(), tbl, nil, pipeline.Options{
//	    Formats: []string{pipeline.FormatSVG},
//	})
//	svg := result.Artifacts[pipeline.FormatSVG]
//
// A nil palette host leaves every layer on the ordinal color scheme.
package pkg
