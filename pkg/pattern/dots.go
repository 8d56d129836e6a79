package pattern

import (
	"math"

	"github.com/plateforge/plateforge/pkg/geom"
)

// clampRatio is applied to the spacing when a configured dot diameter
// would make neighboring dots touch or overlap.
const clampRatio = 0.9

// Dots generates a centered grid of filled circles.
//
// The grid fits floor(dim/spacing)+1 points along each axis. When the
// naive point count exceeds cap, the spacing is scaled up by the
// limiter factor and the grid recomputed once. A diameter at or above
// the realized spacing is clamped to 0.9x spacing so neighboring dots
// stay distinct.
func Dots(section geom.Rect, cfg DotsConfig, cap int) ([]Primitive, Report) {
	cap = effectiveCap(cap)
	spacing := geom.FromMicrons(cfg.SpacingUM)
	diameter := geom.FromMicrons(cfg.DiameterUM)

	naive := (math.Floor(section.W/spacing) + 1) * (math.Floor(section.H/spacing) + 1)
	factor, reduced := limitCount(naive, cap)
	if reduced {
		spacing *= factor
	}
	cols := int(section.W/spacing) + 1
	rows := int(section.H/spacing) + 1
	if reduced && cols*rows > cap {
		// Flooring drift can leave the corrected grid one row or
		// column over budget; shave it back once.
		maxCols, maxRows := gridAxisCap(cap, section.W, section.H)
		cols = min(cols, maxCols)
		rows = min(rows, maxRows)
	}

	if diameter >= spacing {
		diameter = clampRatio * spacing
	}

	spanX := float64(cols-1) * spacing
	spanY := float64(rows-1) * spacing
	start := geom.Pt(section.X+(section.W-spanX)/2, section.Y+(section.H-spanY)/2)

	prims := make([]Primitive, 0, cols*rows)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			center := start.Translate(float64(c)*spacing, float64(r)*spacing)
			prims = append(prims, NewDot(center, diameter/2))
		}
	}

	return prims, Report{
		Count:   len(prims),
		Cols:    cols,
		Rows:    rows,
		Reduced: reduced,
		Factor:  factor,
	}
}
