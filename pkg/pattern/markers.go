package pattern

import "github.com/plateforge/plateforge/pkg/geom"

// Marker stroke widths in millimeters. Scale bar ticks are drawn
// thinner than the main feature strokes.
const (
	markerStroke = 0.1
	tickStroke   = 0.05
)

// Scale bar tick layout: 26 ticks across the bar, every fifth one
// taller. Heights are fractions of the configured size so the marker
// scales as one piece.
const (
	scaleBarTicks     = 25
	scaleBarMajorStep = 5
	majorTickRatio    = 1.0 / 20
	minorTickRatio    = 1.0 / 40
)

// Marker draws a single alignment feature centered in the section.
// Marker primitive counts are fixed and tiny, so no density cap
// applies.
func Marker(section geom.Rect, cfg MarkerConfig) ([]Primitive, Report) {
	center := section.Center()
	size := cfg.SizeMM

	var prims []Primitive
	switch cfg.Kind {
	case MarkerCrosshair:
		prims = crosshair(center, size)
	case MarkerFiducial:
		prims = fiducial(center, size)
	case MarkerScaleBar:
		prims = scaleBar(center, size)
	}
	return prims, Report{Count: len(prims), Factor: 1}
}

// crosshair draws two centered perpendicular lines of the given
// length.
func crosshair(c geom.Point, size float64) []Primitive {
	half := size / 2
	return []Primitive{
		NewLine(geom.Pt(c.X-half, c.Y), geom.Pt(c.X+half, c.Y), markerStroke),
		NewLine(geom.Pt(c.X, c.Y-half), geom.Pt(c.X, c.Y+half), markerStroke),
	}
}

// fiducial draws an open ring with a filled center dot one fifth the
// ring's radius.
func fiducial(c geom.Point, size float64) []Primitive {
	return []Primitive{
		NewRing(c, size/2, markerStroke),
		NewDot(c, size/10),
	}
}

// scaleBar draws a horizontal bar of the given length with evenly
// spaced ticks, every fifth tick doubled in height.
func scaleBar(c geom.Point, size float64) []Primitive {
	half := size / 2
	prims := make([]Primitive, 0, scaleBarTicks+2)
	prims = append(prims, NewLine(geom.Pt(c.X-half, c.Y), geom.Pt(c.X+half, c.Y), markerStroke))

	step := size / scaleBarTicks
	for i := 0; i <= scaleBarTicks; i++ {
		x := c.X - half + float64(i)*step
		tickHalf := size * minorTickRatio
		if i%scaleBarMajorStep == 0 {
			tickHalf = size * majorTickRatio
		}
		prims = append(prims, NewLine(geom.Pt(x, c.Y-tickHalf), geom.Pt(x, c.Y+tickHalf), tickStroke))
	}
	return prims
}
