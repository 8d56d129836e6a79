// Package render turns generated plate plans into output files.
//
// # Overview
//
// Rendering is split in two:
//
//   - Format sinks (in [sink]) serialize a [plan.Plan] to SVG, DXF or
//     JSON without re-running any generator.
//   - Generic conversion ([ToPDF], [ToPNG]) turns SVG bytes into print
//     and raster formats using the external rsvg-convert tool.
//
// Because every sink reads the same primitive list, the SVG preview,
// the DXF handed to a CAM tool and the JSON archive of one plan always
// show identical geometry.
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] require librsvg:
//
//	svg := sink.RenderSVG(p)
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// [sink]: github.com/plateforge/plateforge/pkg/render/sink
// [plan.Plan]: github.com/plateforge/plateforge/pkg/plan.Plan
package render
