// Package sink provides output format serializers for plate plans.
//
// # Overview
//
// A sink transforms a generated [plan.Plan] into a final output format.
// This package provides:
//
//   - SVG: true-scale vector preview in millimeter units
//   - DXF: AutoCAD R12 interchange with one layer per section
//   - JSON: complete plan data for archival and external tools
//   - PDF: print-ready output (requires rsvg-convert)
//   - PNG: raster preview (requires rsvg-convert)
//
// Sinks never re-run pattern generators. They serialize the plan's
// primitive list as-is, so the same plan rendered to two formats always
// shows identical geometry.
//
// Basic usage:
//
//	svg := sink.RenderSVG(p, sink.WithSVGTitle("4 inch wafer"))
//	dxf := sink.RenderDXF(p)
//	data, err := sink.RenderJSON(p, sink.WithJSONGenerator("plateforge v1.0.0"))
//
// # PDF and PNG Output
//
// [RenderPDF] and [RenderPNG] first render SVG, then convert via
// [render.ToPDF] and [render.ToPNG]. These require librsvg to be
// installed:
//   - macOS: brew install librsvg
//   - Linux: apt install librsvg2-bin
//
// # Adding New Formats
//
// To add a new output format:
//
//  1. Create a renderer function: func RenderFoo(p *plan.Plan, opts ...FooOption) ([]byte, error)
//  2. Define option types for configuration
//  3. Walk p.Primitives for geometry and p.Sections for structure
//  4. Register the format in pkg/pipeline for CLI and API support
//
// [plan.Plan]: github.com/plateforge/plateforge/pkg/plan.Plan
// [render.ToPDF]: github.com/plateforge/plateforge/pkg/render.ToPDF
// [render.ToPNG]: github.com/plateforge/plateforge/pkg/render.ToPNG
package sink
