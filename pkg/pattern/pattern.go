// Package pattern generates the primitive geometry for calibration plate
// sections.
//
// Each of the four pattern kinds maps a section rectangle and a
// configuration to an ordered list of drawing primitives:
//
//   - Resolution dots: a centered grid of filled circles
//   - Distortion grid: a checkerboard of filled squares
//   - Line pairs: alternating line/gap gratings, single spacing or a
//     fixed 3x3 multi-spacing catalog
//   - Alignment markers: crosshair, fiducial, or graduated scale bar
//
// Generators are pure functions: the same rectangle and configuration
// always produce bit-identical output. They assume pre-validated,
// positive, unit-converted inputs (see Config.Validate) and never fail;
// the only signal they raise is a density reduction recorded in the
// returned Report.
//
// # Density limiting
//
// Pathological configurations (nanometer spacing over a centimeter
// section) would emit millions of primitives. Every grid-like generator
// checks its naive element count against a cap before emitting, and
// scales its spacing up by the factor from Limit so the realized count
// stays at or below the cap. The correction is closed-form and applied
// once; there is no retry loop.
//
// All dimensions are millimeters. Configuration fields suffixed UM are
// micrometers and are converted on entry.
package pattern

import (
	"fmt"

	"github.com/plateforge/plateforge/pkg/errors"
	"github.com/plateforge/plateforge/pkg/geom"
)

// Kind identifies one of the four pattern types.
type Kind string

// The closed set of pattern kinds.
const (
	KindDots      Kind = "dots"
	KindChecker   Kind = "checker"
	KindLinePairs Kind = "linepairs"
	KindMarker    Kind = "marker"
)

// Kinds lists all pattern kinds in display order.
func Kinds() []Kind {
	return []Kind{KindDots, KindChecker, KindLinePairs, KindMarker}
}

// DisplayName returns the human-readable name used on section labels.
func (k Kind) DisplayName() string {
	switch k {
	case KindDots:
		return "Resolution Dots"
	case KindChecker:
		return "Distortion Grid"
	case KindLinePairs:
		return "Line Pairs"
	case KindMarker:
		return "Alignment Marker"
	}
	return string(k)
}

// LineMode selects between the two line-pair sub-modes.
type LineMode string

// Line-pair modes. The mode is fixed per section at configuration time.
const (
	LineModeSingle LineMode = "single"
	LineModeMulti  LineMode = "multi"
)

// Orientation is the direction single-mode lines run.
type Orientation string

// Single-mode orientations. Vertical lines are spaced along x,
// horizontal lines along y.
const (
	OrientationVertical   Orientation = "vertical"
	OrientationHorizontal Orientation = "horizontal"
)

// MarkerKind identifies one of the three alignment marker shapes.
type MarkerKind string

// Alignment marker kinds.
const (
	MarkerCrosshair MarkerKind = "crosshair"
	MarkerFiducial  MarkerKind = "fiducial"
	MarkerScaleBar  MarkerKind = "scalebar"
)

// DotsConfig configures a resolution dot array.
type DotsConfig struct {
	SpacingUM  float64 `json:"spacing_um" bson:"spacing_um"`
	DiameterUM float64 `json:"diameter_um" bson:"diameter_um"`
}

// CheckerConfig configures a distortion checkerboard.
type CheckerConfig struct {
	GridMM float64 `json:"grid_mm" bson:"grid_mm"`
}

// LinePairsConfig configures a line-pair grating. Spacing, width and
// orientation apply to single mode only; multi mode uses a fixed catalog.
type LinePairsConfig struct {
	Mode        LineMode    `json:"mode" bson:"mode"`
	SpacingUM   float64     `json:"spacing_um,omitempty" bson:"spacing_um,omitempty"`
	WidthUM     float64     `json:"width_um,omitempty" bson:"width_um,omitempty"`
	Orientation Orientation `json:"orientation,omitempty" bson:"orientation,omitempty"`
}

// MarkerConfig configures an alignment marker.
type MarkerConfig struct {
	Kind   MarkerKind `json:"kind" bson:"kind"`
	SizeMM float64    `json:"size_mm" bson:"size_mm"`
}

// Config is the tagged variant of the four pattern configurations.
// Kind selects the variant; exactly the matching pointer field is set.
type Config struct {
	Kind      Kind             `json:"kind" bson:"kind"`
	Dots      *DotsConfig      `json:"dots,omitempty" bson:"dots,omitempty"`
	Checker   *CheckerConfig   `json:"checker,omitempty" bson:"checker,omitempty"`
	LinePairs *LinePairsConfig `json:"linepairs,omitempty" bson:"linepairs,omitempty"`
	Marker    *MarkerConfig    `json:"marker,omitempty" bson:"marker,omitempty"`
}

// NewDots builds a resolution dot configuration. Spacing and diameter
// are micrometers.
func NewDots(spacingUM, diameterUM float64) Config {
	return Config{Kind: KindDots, Dots: &DotsConfig{SpacingUM: spacingUM, DiameterUM: diameterUM}}
}

// NewChecker builds a distortion grid configuration. Grid size is
// millimeters.
func NewChecker(gridMM float64) Config {
	return Config{Kind: KindChecker, Checker: &CheckerConfig{GridMM: gridMM}}
}

// NewSingleLines builds a single-spacing line-pair configuration.
// Spacing and width are micrometers.
func NewSingleLines(spacingUM, widthUM float64, o Orientation) Config {
	return Config{Kind: KindLinePairs, LinePairs: &LinePairsConfig{
		Mode:        LineModeSingle,
		SpacingUM:   spacingUM,
		WidthUM:     widthUM,
		Orientation: o,
	}}
}

// NewMultiLines builds the fixed 3x3 multi-spacing line-pair
// configuration.
func NewMultiLines() Config {
	return Config{Kind: KindLinePairs, LinePairs: &LinePairsConfig{Mode: LineModeMulti}}
}

// NewMarker builds an alignment marker configuration. Size is
// millimeters.
func NewMarker(kind MarkerKind, sizeMM float64) Config {
	return Config{Kind: KindMarker, Marker: &MarkerConfig{Kind: kind, SizeMM: sizeMM}}
}

// Validate checks that the configuration is complete and every numeric
// parameter is strictly positive. Generators assume a validated config.
func (c Config) Validate() error {
	v := errors.NewValidator(errors.ErrCodeInvalidPattern)
	switch c.Kind {
	case KindDots:
		if c.Dots == nil {
			return errors.New(errors.ErrCodeInvalidPattern, "dots pattern missing parameters")
		}
		v.Positive("spacing_um", c.Dots.SpacingUM)
		v.Positive("diameter_um", c.Dots.DiameterUM)
	case KindChecker:
		if c.Checker == nil {
			return errors.New(errors.ErrCodeInvalidPattern, "checker pattern missing parameters")
		}
		v.Positive("grid_mm", c.Checker.GridMM)
	case KindLinePairs:
		if c.LinePairs == nil {
			return errors.New(errors.ErrCodeInvalidPattern, "linepairs pattern missing parameters")
		}
		switch c.LinePairs.Mode {
		case LineModeSingle:
			v.Positive("spacing_um", c.LinePairs.SpacingUM)
			v.Positive("width_um", c.LinePairs.WidthUM)
			o := c.LinePairs.Orientation
			v.Check(o == OrientationVertical || o == OrientationHorizontal,
				"orientation must be vertical or horizontal, got %q", o)
		case LineModeMulti:
			// The catalog carries all parameters.
		default:
			v.Check(false, "mode must be single or multi, got %q", c.LinePairs.Mode)
		}
	case KindMarker:
		if c.Marker == nil {
			return errors.New(errors.ErrCodeInvalidPattern, "marker pattern missing parameters")
		}
		k := c.Marker.Kind
		v.Check(k == MarkerCrosshair || k == MarkerFiducial || k == MarkerScaleBar,
			"marker kind must be crosshair, fiducial or scalebar, got %q", k)
		v.Positive("size_mm", c.Marker.SizeMM)
	default:
		return errors.New(errors.ErrCodeInvalidPattern, "unknown pattern kind %q", c.Kind)
	}
	return v.Err()
}

// Describe returns a short parameter summary for tables and labels.
func (c Config) Describe() string {
	switch c.Kind {
	case KindDots:
		if c.Dots != nil {
			return fmt.Sprintf("%s / %s",
				geom.FormatLength(geom.FromMicrons(c.Dots.SpacingUM)),
				geom.FormatLength(geom.FromMicrons(c.Dots.DiameterUM)))
		}
	case KindChecker:
		if c.Checker != nil {
			return fmt.Sprintf("%s cells", geom.FormatLength(c.Checker.GridMM))
		}
	case KindLinePairs:
		if c.LinePairs != nil {
			if c.LinePairs.Mode == LineModeMulti {
				return "3x3 multi catalog"
			}
			return fmt.Sprintf("%s %s",
				geom.FormatLength(geom.FromMicrons(c.LinePairs.SpacingUM)),
				c.LinePairs.Orientation)
		}
	case KindMarker:
		if c.Marker != nil {
			return fmt.Sprintf("%s %s", c.Marker.Kind, geom.FormatLength(c.Marker.SizeMM))
		}
	}
	return string(c.Kind)
}

// Report summarizes a single generator run.
type Report struct {
	// Count is the number of primitives the generator emitted.
	Count int `json:"count" bson:"count"`

	// Cols and Rows describe the realized grid for grid-shaped patterns.
	Cols int `json:"cols,omitempty" bson:"cols,omitempty"`
	Rows int `json:"rows,omitempty" bson:"rows,omitempty"`

	// Reduced is true when the density limiter had to scale spacing up.
	Reduced bool `json:"reduced" bson:"reduced"`

	// Factor is the spacing scale factor that was applied (1 when none).
	Factor float64 `json:"factor" bson:"factor"`

	// Subs holds per-cell results for the multi-mode line grating.
	Subs []SubReport `json:"subs,omitempty" bson:"subs,omitempty"`
}

// SubReport describes one cell of the multi-mode line grating.
type SubReport struct {
	Label   string  `json:"label" bson:"label"`
	Count   int     `json:"count" bson:"count"`
	Reduced bool    `json:"reduced" bson:"reduced"`
	Factor  float64 `json:"factor" bson:"factor"`
}

// Generate dispatches to the generator matching the configuration kind.
// The section rectangle and all primitives are in millimeters; cap
// bounds the element count per pattern (DefaultCap when zero or
// negative). The configuration must have been validated.
func Generate(section geom.Rect, c Config, cap int) ([]Primitive, Report) {
	switch c.Kind {
	case KindDots:
		return Dots(section, *c.Dots, cap)
	case KindChecker:
		return Checker(section, *c.Checker, cap)
	case KindLinePairs:
		return LinePairs(section, *c.LinePairs, cap)
	case KindMarker:
		return Marker(section, *c.Marker)
	}
	return nil, Report{Factor: 1}
}
