package platefile

import (
	"github.com/plateforge/plateforge/pkg/errors"
	"github.com/plateforge/plateforge/pkg/pattern"
	"github.com/plateforge/plateforge/pkg/plan"
	"github.com/plateforge/plateforge/pkg/plate"
)

// Per-pattern parameter defaults applied when a section omits fields.
const (
	DefaultDotSpacingUM  = 250.0
	DefaultDotDiameterUM = 125.0
	DefaultCheckerGridMM = 1.0
	DefaultLineSpacingUM = 5.0
	DefaultLineWidthUM   = 1.0
	DefaultMarkerSizeMM  = 2.0
)

// Document is a plate design as stored on disk or sent to the API.
type Document struct {
	Name     string    `toml:"name,omitempty" json:"name,omitempty" bson:"name,omitempty"`
	Plate    Plate     `toml:"plate" json:"plate,omitempty" bson:"plate,omitempty"`
	Sections []Section `toml:"section" json:"sections,omitempty" bson:"sections,omitempty"`
}

// Plate is the physical plate description. Zero width or height selects
// the default plate dimension. Margin is a pointer so an explicit zero
// margin survives the round trip; nil selects the default margin.
type Plate struct {
	Width  float64  `toml:"width,omitempty" json:"width,omitempty" bson:"width,omitempty"`
	Height float64  `toml:"height,omitempty" json:"height,omitempty" bson:"height,omitempty"`
	Margin *float64 `toml:"margin,omitempty" json:"margin,omitempty" bson:"margin,omitempty"`
}

// Section is one section's pattern selection with its flat parameter
// set. Which parameters apply depends on the pattern name; the rest are
// ignored.
type Section struct {
	Pattern     string  `toml:"pattern" json:"pattern" bson:"pattern"`
	SpacingUM   float64 `toml:"spacing_um,omitempty" json:"spacing_um,omitempty" bson:"spacing_um,omitempty"`
	DiameterUM  float64 `toml:"diameter_um,omitempty" json:"diameter_um,omitempty" bson:"diameter_um,omitempty"`
	GridMM      float64 `toml:"grid_mm,omitempty" json:"grid_mm,omitempty" bson:"grid_mm,omitempty"`
	Mode        string  `toml:"mode,omitempty" json:"mode,omitempty" bson:"mode,omitempty"`
	WidthUM     float64 `toml:"width_um,omitempty" json:"width_um,omitempty" bson:"width_um,omitempty"`
	Orientation string  `toml:"orientation,omitempty" json:"orientation,omitempty" bson:"orientation,omitempty"`
	Kind        string  `toml:"kind,omitempty" json:"kind,omitempty" bson:"kind,omitempty"`
	SizeMM      float64 `toml:"size_mm,omitempty" json:"size_mm,omitempty" bson:"size_mm,omitempty"`
}

// Resolve turns the document into the typed plate and section
// configurations the planner consumes, applying defaults for omitted
// values. Unknown pattern names and wrong section counts are rejected;
// numeric validation is left to the pattern configurations themselves.
func (d *Document) Resolve() (plate.Plate, [plate.SectionCount]pattern.Config, error) {
	p := plate.Plate{
		WidthMM:  d.Plate.Width,
		HeightMM: d.Plate.Height,
		MarginMM: plate.DefaultMarginMM,
	}
	if p.WidthMM == 0 {
		p.WidthMM = plate.DefaultWidthMM
	}
	if p.HeightMM == 0 {
		p.HeightMM = plate.DefaultHeightMM
	}
	if d.Plate.Margin != nil {
		p.MarginMM = *d.Plate.Margin
	}

	var configs [plate.SectionCount]pattern.Config
	switch len(d.Sections) {
	case 0:
		configs = plan.DefaultConfigs()
	case plate.SectionCount:
		for i, s := range d.Sections {
			cfg, err := resolveSection(s, i+1)
			if err != nil {
				return plate.Plate{}, configs, err
			}
			configs[i] = cfg
		}
	default:
		return plate.Plate{}, configs, errors.New(errors.ErrCodeInvalidPlateFile,
			"expected %d sections, got %d", plate.SectionCount, len(d.Sections))
	}
	return p, configs, nil
}

// resolveSection maps one section entry to a pattern configuration,
// filling defaults for omitted parameters.
func resolveSection(s Section, number int) (pattern.Config, error) {
	switch pattern.Kind(s.Pattern) {
	case pattern.KindDots:
		spacing := s.SpacingUM
		if spacing == 0 {
			spacing = DefaultDotSpacingUM
		}
		diameter := s.DiameterUM
		if diameter == 0 {
			diameter = DefaultDotDiameterUM
		}
		return pattern.NewDots(spacing, diameter), nil

	case pattern.KindChecker:
		grid := s.GridMM
		if grid == 0 {
			grid = DefaultCheckerGridMM
		}
		return pattern.NewChecker(grid), nil

	case pattern.KindLinePairs:
		switch pattern.LineMode(s.Mode) {
		case pattern.LineModeMulti:
			return pattern.NewMultiLines(), nil
		case pattern.LineModeSingle, "":
			spacing := s.SpacingUM
			if spacing == 0 {
				spacing = DefaultLineSpacingUM
			}
			width := s.WidthUM
			if width == 0 {
				width = DefaultLineWidthUM
			}
			orientation := pattern.Orientation(s.Orientation)
			if orientation == "" {
				orientation = pattern.OrientationVertical
			}
			return pattern.NewSingleLines(spacing, width, orientation), nil
		default:
			return pattern.Config{}, errors.New(errors.ErrCodeInvalidPlateFile,
				"section %d: unknown mode %q (must be single or multi)", number, s.Mode)
		}

	case pattern.KindMarker:
		kind := pattern.MarkerKind(s.Kind)
		if kind == "" {
			kind = pattern.MarkerCrosshair
		}
		size := s.SizeMM
		if size == 0 {
			size = DefaultMarkerSizeMM
		}
		return pattern.NewMarker(kind, size), nil

	case "":
		return pattern.Config{}, errors.New(errors.ErrCodeInvalidPlateFile,
			"section %d: missing pattern", number)
	}
	return pattern.Config{}, errors.New(errors.ErrCodeInvalidPlateFile,
		"section %d: unknown pattern %q (must be one of: dots, checker, linepairs, marker)",
		number, s.Pattern)
}
