// Package plate models the physical calibration plate: its outer
// dimensions, the margin kept clear around the edge, and the quartering
// of the usable area into four numbered sections.
//
// Sections are numbered 1 to 4 in reading order: top-left, top-right,
// bottom-left, bottom-right. All dimensions are millimeters.
package plate

import (
	"fmt"

	"github.com/plateforge/plateforge/pkg/errors"
	"github.com/plateforge/plateforge/pkg/geom"
)

// SectionCount is the fixed number of pattern sections on a plate.
const SectionCount = 4

// Default dimensions, a four inch square plate with a 10 mm margin.
const (
	DefaultWidthMM  = 101.6
	DefaultHeightMM = 101.6
	DefaultMarginMM = 10.0
)

// Plate describes the physical substrate being patterned.
type Plate struct {
	WidthMM  float64 `json:"width_mm" bson:"width_mm" toml:"width_mm"`
	HeightMM float64 `json:"height_mm" bson:"height_mm" toml:"height_mm"`
	MarginMM float64 `json:"margin_mm" bson:"margin_mm" toml:"margin_mm"`
}

// Default returns the standard four inch plate.
func Default() Plate {
	return Plate{WidthMM: DefaultWidthMM, HeightMM: DefaultHeightMM, MarginMM: DefaultMarginMM}
}

// Validate checks that the plate has positive dimensions and that the
// margin leaves a usable area. The margin may be zero.
func (p Plate) Validate() error {
	v := errors.NewValidator(errors.ErrCodeInvalidPlate)
	v.Positive("width_mm", p.WidthMM)
	v.Positive("height_mm", p.HeightMM)
	v.Check(p.MarginMM >= 0, "margin_mm must not be negative, got %v", p.MarginMM)
	if err := v.Err(); err != nil {
		return err
	}
	if p.WidthMM <= 2*p.MarginMM || p.HeightMM <= 2*p.MarginMM {
		return errors.New(errors.ErrCodeInvalidPlate,
			"margin %v mm leaves no usable area on a %v x %v mm plate",
			p.MarginMM, p.WidthMM, p.HeightMM)
	}
	return nil
}

// Outline returns the full plate rectangle with its origin at (0,0).
func (p Plate) Outline() geom.Rect {
	return geom.NewRect(0, 0, p.WidthMM, p.HeightMM)
}

// Usable returns the patternable area, the plate inset by the margin
// on all four sides.
func (p Plate) Usable() geom.Rect {
	return p.Outline().Inset(p.MarginMM)
}

// Sections quarters the usable area into the four pattern sections in
// reading order. Section n is Sections()[n-1].
func (p Plate) Sections() [SectionCount]geom.Rect {
	u := p.Usable()
	halfW, halfH := u.W/2, u.H/2
	return [SectionCount]geom.Rect{
		geom.NewRect(u.X, u.Y, halfW, halfH),
		geom.NewRect(u.X+halfW, u.Y, halfW, halfH),
		geom.NewRect(u.X, u.Y+halfH, halfW, halfH),
		geom.NewRect(u.X+halfW, u.Y+halfH, halfW, halfH),
	}
}

// SectionName returns the human readable position of a 1-based section
// number.
func SectionName(n int) string {
	switch n {
	case 1:
		return "top-left"
	case 2:
		return "top-right"
	case 3:
		return "bottom-left"
	case 4:
		return "bottom-right"
	}
	return fmt.Sprintf("section %d", n)
}

// String renders the plate as "101.6x101.6mm (margin 10mm)".
func (p Plate) String() string {
	return fmt.Sprintf("%gx%gmm (margin %gmm)", p.WidthMM, p.HeightMM, p.MarginMM)
}
