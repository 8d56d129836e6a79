// Package platefile reads and writes plate design documents.
//
// # Overview
//
// A plate document describes a complete calibration plate: the physical
// plate dimensions and one pattern per section. Documents are stored as
// TOML for files the CLI and wizard work with, and the same structure
// decodes from JSON for API request bodies.
//
// # Format
//
// The TOML form has an optional name, an optional [plate] table and
// either zero or exactly four section entries:
//
//	name = "demo"
//
//	[plate]
//	width = 50.0
//	height = 50.0
//	margin = 5.0
//
//	[[section]]
//	pattern = "dots"
//	spacing_um = 2.0
//	diameter_um = 0.5
//
//	[[section]]
//	pattern = "checker"
//	grid_mm = 1.0
//
//	[[section]]
//	pattern = "linepairs"
//	mode = "multi"
//
//	[[section]]
//	pattern = "marker"
//	kind = "crosshair"
//	size_mm = 3.0
//
// # Defaults
//
// Omitted values fall back to the standard 4 inch plate (101.6 x 101.6 mm,
// 10 mm margin) and per-pattern defaults: dots 250/125 µm, checker 1 mm,
// single line pairs 5/1 µm vertical, crosshair marker 2 mm. An omitted
// margin defaults to 10 mm; an explicit margin of 0 is honored. A document
// with no sections at all gets the standard demonstration layout.
//
// # Reading and writing
//
// Use [Load] to read a document from a file path, or [Parse] to read from
// any io.Reader. [Document.Resolve] turns a document into the typed plate
// and section configurations the planner consumes, applying defaults.
// [Save] and [Write] go the other way, and [FromConfigs] rebuilds a
// document from resolved values for wizard output and library storage.
package platefile
