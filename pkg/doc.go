// Package pkg provides the core libraries for plateforge calibration plate generation.
//
// # Overview
//
// Plateforge turns a small TOML description of a calibration plate into
// deterministic test patterns for microscope and lithography calibration.
// The pkg directory is organized into four main areas:
//
//  1. Domain - plate model, pattern generators, plan assembly
//  2. Formats - plate files in, rendered artifacts out
//  3. Pipeline - orchestration with caching
//  4. Infrastructure - cache backends, design library, errors, hooks
//
// # Architecture
//
// The typical data flow through plateforge:
//
//	plate.toml (or built-in default)
//	         ↓
//	    [platefile] package (parse + resolve defaults)
//	         ↓
//	    [pattern] package (generate section primitives)
//	         ↓
//	    [plan] package (assemble plate, frame, annotations)
//	         ↓
//	    [render/sink] package (serialize)
//	         ↓
//	    SVG/DXF/JSON/PDF/PNG output
//
// # Quick Start
//
// Build a plan for the default plate and render it to SVG:
//
//	import (
//	    "github.com/plateforge/plateforge/pkg/plan"
//	    "github.com/plateforge/plateforge/pkg/plate"
//	    "github.com/plateforge/plateforge/pkg/render/sink"
//	)
//
//	// 1. Build the generation plan
//	p, _ := plan.Build(plate.Default(), plan.DefaultConfigs(), 0)
//
//	// 2. Serialize it
//	svg := sink.RenderSVG(p)
//
// Or run the whole cached pipeline the way the CLI and API do:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, _ := runner.Execute(ctx, pipeline.Options{
//	    Formats: []string{pipeline.FormatSVG, pipeline.FormatDXF},
//	})
//
// # Main Packages
//
// ## Domain
//
// [plate] - The physical substrate: outer dimensions, clear margin, and
// the quartering of the usable area into four numbered sections.
//
// [pattern] - The four pattern generators (resolution dots, distortion
// checkerboard, line-pair gratings, alignment markers) plus density
// reduction when a section would exceed its element cap.
//
// [plan] - Assembles validated section configurations into a complete
// plan: plate outline, section frames, labels, and every primitive with
// per-section element accounting.
//
// [geom] - Millimeter-based primitives and unit formatting shared by
// the generators and sinks.
//
// ## Formats
//
// [platefile] - TOML plate designs: parsing, defaulting, validation,
// and round-trip writing.
//
// [render/sink] - Format sinks serializing a plan to SVG, DXF and JSON.
// Every sink reads the same primitive list, so all formats of one plan
// show identical geometry.
//
// [render] - SVG to PDF/PNG conversion via the external rsvg-convert
// tool.
//
// ## Pipeline
//
// [pipeline] - The plan-then-render pipeline used by CLI and API, with
// content-addressed caching of both plans and rendered artifacts.
//
// ## Infrastructure
//
// [cache] - Cache backends: file (CLI), Redis (server deployments),
// null (disabled), plus scoped key prefixing.
//
// [library] - Named design stores: file (CLI), MongoDB (shared
// deployments), memory (testing).
//
// [errors] - Coded errors with user-facing messages and input
// validation helpers.
//
// [observability] - Process-wide hook registry for pipeline, cache and
// API instrumentation.
//
// [buildinfo] - Version metadata stamped at build time.
//
// [plate]: https://pkg.go.dev/github.com/plateforge/plateforge/pkg/plate
// [pattern]: https://pkg.go.dev/github.com/plateforge/plateforge/pkg/pattern
// [plan]: https://pkg.go.dev/github.com/plateforge/plateforge/pkg/plan
// [geom]: https://pkg.go.dev/github.com/plateforge/plateforge/pkg/geom
// [platefile]: https://pkg.go.dev/github.com/plateforge/plateforge/pkg/platefile
// [render]: https://pkg.go.dev/github.com/plateforge/plateforge/pkg/render
// [render/sink]: https://pkg.go.dev/github.com/plateforge/plateforge/pkg/render/sink
// [pipeline]: https://pkg.go.dev/github.com/plateforge/plateforge/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/plateforge/plateforge/pkg/cache
// [library]: https://pkg.go.dev/github.com/plateforge/plateforge/pkg/library
// [errors]: https://pkg.go.dev/github.com/plateforge/plateforge/pkg/errors
// [observability]: https://pkg.go.dev/github.com/plateforge/plateforge/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/plateforge/plateforge/pkg/buildinfo
package pkg
