package pipeline

import (
	"encoding/json"

	"github.com/plateforge/plateforge/pkg/buildinfo"
	"github.com/plateforge/plateforge/pkg/errors"
	"github.com/plateforge/plateforge/pkg/plan"
	"github.com/plateforge/plateforge/pkg/render/sink"
)

// renderFormats generates output artifacts in the requested formats.
// Every format draws from the same plan, so outputs are geometrically
// identical across formats.
func renderFormats(pl *plan.Plan, opts Options) (map[string][]byte, error) {
	svgOpts := buildSVGOptions(opts)
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = sink.RenderSVG(pl, svgOpts...)
		case FormatDXF:
			data = sink.RenderDXF(pl, buildDXFOptions(opts)...)
		case FormatJSON:
			data, err = sink.RenderJSON(pl, buildJSONOptions(opts)...)
		case FormatPDF:
			data, err = sink.RenderPDF(pl, sink.WithPDFSVGOptions(svgOpts...))
		case FormatPNG:
			data, err = sink.RenderPNG(pl, sink.WithPNGSVGOptions(svgOpts...), sink.WithScale(opts.Scale))
		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s", format)
		}

		if err != nil {
			return nil, err
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// RenderFromPlanData renders output from a serialized plan.
// This is useful when the plan was computed elsewhere (e.g., cached).
func RenderFromPlanData(planData []byte, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}
	var pl plan.Plan
	if err := json.Unmarshal(planData, &pl); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "parse plan")
	}
	return renderFormats(&pl, opts)
}

// buildSVGOptions builds the SVG rendering options shared by the SVG,
// PDF and PNG formats.
func buildSVGOptions(opts Options) []sink.SVGOption {
	var svgOpts []sink.SVGOption
	if opts.Title != "" {
		svgOpts = append(svgOpts, sink.WithSVGTitle(opts.Title))
	}
	if opts.Background != "" {
		svgOpts = append(svgOpts, sink.WithSVGBackground(opts.Background))
	}
	return svgOpts
}

// buildDXFOptions builds the DXF rendering options.
func buildDXFOptions(opts Options) []sink.DXFOption {
	var dxfOpts []sink.DXFOption
	if opts.FlatLayers {
		dxfOpts = append(dxfOpts, sink.WithDXFFlat())
	}
	return dxfOpts
}

// buildJSONOptions builds the JSON rendering options. Exports carry the
// generator version so plans can be traced back to the build that
// produced them.
func buildJSONOptions(opts Options) []sink.JSONOption {
	jsonOpts := []sink.JSONOption{sink.WithJSONGenerator(buildinfo.Generator())}
	if opts.Compact {
		jsonOpts = append(jsonOpts, sink.WithJSONCompact())
	}
	return jsonOpts
}
