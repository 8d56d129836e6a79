package pattern

import (
	"math"

	"github.com/plateforge/plateforge/pkg/geom"
)

// Checker generates a checkerboard of filled cells for distortion
// measurement.
//
// The board has ceil(w/grid) x ceil(h/grid) cells, fitted so the board
// exactly tiles the section; the configured grid size is an upper bound
// on the realized cell size. Cell (r,c) is filled when r+c is even,
// which pins the top-left cell to filled. Unfilled cells are omitted:
// against a blank background an absent cell and an explicitly unfilled
// one are indistinguishable.
func Checker(section geom.Rect, cfg CheckerConfig, cap int) ([]Primitive, Report) {
	cap = effectiveCap(cap)
	grid := cfg.GridMM

	naive := math.Ceil(section.W/grid) * math.Ceil(section.H/grid)
	factor, reduced := limitCount(naive, cap)
	if reduced {
		grid *= factor
	}
	cols := int(math.Ceil(section.W / grid))
	rows := int(math.Ceil(section.H / grid))
	if reduced && cols*rows > cap {
		maxCols, maxRows := gridAxisCap(cap, section.W, section.H)
		cols = min(cols, maxCols)
		rows = min(rows, maxRows)
	}

	cellW := section.W / float64(cols)
	cellH := section.H / float64(rows)

	prims := make([]Primitive, 0, (cols*rows+1)/2)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if (r+c)%2 != 0 {
				continue
			}
			origin := geom.Pt(section.X+float64(c)*cellW, section.Y+float64(r)*cellH)
			prims = append(prims, NewFilledRect(origin, cellW, cellH))
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
