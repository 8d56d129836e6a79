// Package plan assembles a complete plate layout from a plate
// description and one pattern configuration per section.
//
// A Plan is the renderer-independent drawing: a flat primitive list in
// emission order plus per-section bookkeeping. Sinks turn a Plan into
// SVG, DXF or JSON without re-running any generator, so every output
// format of the same plan shows identical geometry.
package plan

import (
	"fmt"

	"github.com/plateforge/plateforge/pkg/errors"
	"github.com/plateforge/plateforge/pkg/geom"
	"github.com/plateforge/plateforge/pkg/pattern"
	"github.com/plateforge/plateforge/pkg/plate"
)

// Drawing style for the plate frame and section annotations.
const (
	plateOutlineStroke   = 0.1
	sectionOutlineStroke = 0.05
	sectionOutlineColor  = "gray"
	sectionNumberSize    = 3.0
	sectionNumberColor   = "blue"
	sectionLabelSize     = 1.5
	sectionLabelColor    = "gray"
	annotationInsetX     = 2.0
	numberBaselineY      = 4.0
	labelBaselineY       = 6.5
)

// SectionPlan records what one section contributed to the plan.
type SectionPlan struct {
	// Number is the 1-based section number in reading order.
	Number int `json:"number" bson:"number"`

	// Rect is the section's area on the plate.
	Rect geom.Rect `json:"rect" bson:"rect"`

	// Config is the pattern that was generated into the section.
	Config pattern.Config `json:"config" bson:"config"`

	// Report is the generator's element count and density outcome.
	Report pattern.Report `json:"report" bson:"report"`

	// Offset and Count delimit this section's primitives, annotations
	// included, within Plan.Primitives.
	Offset int `json:"offset" bson:"offset"`
	Count  int `json:"count" bson:"count"`
}

// Plan is a fully generated plate layout.
type Plan struct {
	Plate       plate.Plate                     `json:"plate" bson:"plate"`
	MaxElements int                             `json:"max_elements" bson:"max_elements"`
	Sections    [plate.SectionCount]SectionPlan `json:"sections" bson:"sections"`
	Primitives  []pattern.Primitive             `json:"primitives" bson:"primitives"`
}

// Build validates the plate and all four section configurations, then
// generates the complete layout. Configuration problems are returned
// before any primitive is produced; density overruns are not errors and
// are reported per section instead.
//
// maxElements caps each section's generator. Zero or negative selects
// pattern.DefaultCap.
func Build(p plate.Plate, configs [plate.SectionCount]pattern.Config, maxElements int) (*Plan, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	for i, cfg := range configs {
		if err := cfg.Validate(); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidPattern, err,
				"section %d (%s)", i+1, plate.SectionName(i+1))
		}
	}
	if maxElements <= 0 {
		maxElements = pattern.DefaultCap
	}

	pl := &Plan{Plate: p, MaxElements: maxElements}
	pl.Primitives = append(pl.Primitives, pattern.NewOutline(p.Outline(), plateOutlineStroke, false, "black"))

	sections := p.Sections()
	for i, rect := range sections {
		offset := len(pl.Primitives)
		number := i + 1
		cfg := configs[i]

		pl.Primitives = append(pl.Primitives,
			pattern.NewOutline(rect, sectionOutlineStroke, true, sectionOutlineColor),
			pattern.NewText(geom.Pt(rect.X+annotationInsetX, rect.Y+numberBaselineY),
				fmt.Sprintf("%d", number), sectionNumberColor, sectionNumberSize),
			pattern.NewText(geom.Pt(rect.X+annotationInsetX, rect.Y+labelBaselineY),
				cfg.Kind.DisplayName(), sectionLabelColor, sectionLabelSize),
		)

		prims, report := pattern.Generate(rect, cfg, maxElements)
		pl.Primitives = append(pl.Primitives, prims...)

		pl.Sections[i] = SectionPlan{
			Number: number,
			Rect:   rect,
			Config: cfg,
			Report: report,
			Offset: offset,
			Count:  len(pl.Primitives) - offset,
		}
	}
	return pl, nil
}

// DefaultConfigs returns the standard demonstration layout: resolution
// dots, a distortion grid, vertical line pairs and a crosshair.
func DefaultConfigs() [plate.SectionCount]pattern.Config {
	return [plate.SectionCount]pattern.Config{
		pattern.NewDots(250, 125),
		pattern.NewChecker(1.0),
		pattern.NewSingleLines(5, 1, pattern.OrientationVertical),
		pattern.NewMarker(pattern.MarkerCrosshair, 2.0),
	}
}

// TotalElements returns the number of primitives in the plan, frame
// and annotations included.
func (p *Plan) TotalElements() int { return len(p.Primitives) }

// PatternElements returns the number of primitives emitted by the
// pattern generators alone.
func (p *Plan) PatternElements() int {
	n := 0
	for _, s := range p.Sections {
		n += s.Report.Count
	}
	return n
}

// Reduced reports whether any section was density limited.
func (p *Plan) Reduced() bool {
	for _, s := range p.Sections {
		if s.Report.Reduced {
			return true
		}
	}
	return false
}

// Warnings returns one human readable line per density-limited
// section, in section order. An empty slice means every pattern fit
// under the element cap.
func (p *Plan) Warnings() []string {
	var out []string
	for _, s := range p.Sections {
		if !s.Report.Reduced {
			continue
		}
		out = append(out, fmt.Sprintf(
			"section %d (%s): density reduced %.1fx, %d elements emitted",
			s.Number, s.Config.Kind.DisplayName(), s.Report.Factor, s.Report.Count))
	}
	return out
}

// SectionPrimitives returns the primitive slice for a 1-based section
// number, annotations included. It returns nil for numbers outside
// 1 to 4.
func (p *Plan) SectionPrimitives(number int) []pattern.Primitive {
	if number < 1 || number > plate.SectionCount {
		return nil
	}
	s := p.Sections[number-1]
	return p.Primitives[s.Offset : s.Offset+s.Count]
}
