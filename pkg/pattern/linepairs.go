package pattern

import (
	"fmt"
	"math"

	"github.com/plateforge/plateforge/pkg/geom"
)

// Multi-mode layout constants. Line width tracks the realized spacing,
// and each of the nine cells carries a thin border and an identifying
// label near its top edge.
const (
	multiWidthRatio = 0.3
	subBorderStroke = 0.02
	subBorderColor  = "lightgray"
	subLabelSize    = 0.8
	subLabelColor   = "gray"
	subLabelInsetX  = 0.5
	subLabelInsetY  = 1.0
)

// MultiEntry is one cell of the fixed multi-mode catalog.
type MultiEntry struct {
	SpacingUM float64 `json:"spacing_um" bson:"spacing_um"`
	AngleDeg  int     `json:"angle_deg" bson:"angle_deg"`
}

// Label renders the catalog entry the way it is printed on the plate.
func (e MultiEntry) Label() string {
	return fmt.Sprintf("%s %d°", geom.FormatLength(geom.FromMicrons(e.SpacingUM)), e.AngleDeg)
}

// multiCatalog assigns a spacing/orientation pair to each cell of the
// 3x3 sub-grid, row-major, spacings descending from 7µm to 250nm with
// orientations cycling 0°, 45°, 90°. 0° lines run horizontally, 90°
// vertically.
var multiCatalog = [9]MultiEntry{
	{SpacingUM: 7, AngleDeg: 0},
	{SpacingUM: 5, AngleDeg: 45},
	{SpacingUM: 3, AngleDeg: 90},
	{SpacingUM: 2, AngleDeg: 0},
	{SpacingUM: 1, AngleDeg: 45},
	{SpacingUM: 0.7, AngleDeg: 90},
	{SpacingUM: 0.5, AngleDeg: 0},
	{SpacingUM: 0.3, AngleDeg: 45},
	{SpacingUM: 0.25, AngleDeg: 90},
}

// MultiCatalog returns the fixed multi-mode recipe in emission order.
func MultiCatalog() []MultiEntry {
	return multiCatalog[:]
}

// LinePairs generates an alternating line/gap grating. Single mode
// draws one spacing across the whole section; multi mode partitions
// the section into the fixed 3x3 catalog of sub-patterns.
func LinePairs(section geom.Rect, cfg LinePairsConfig, cap int) ([]Primitive, Report) {
	if cfg.Mode == LineModeMulti {
		return multiLines(section, cap)
	}
	return singleLines(section, cfg, cap)
}

// singleLines draws every other line of a fence-post grating centered
// in the section. Lines span the full dimension perpendicular to their
// spacing axis.
func singleLines(section geom.Rect, cfg LinePairsConfig, cap int) ([]Primitive, Report) {
	cap = effectiveCap(cap)
	spacing := geom.FromMicrons(cfg.SpacingUM)
	width := geom.FromMicrons(cfg.WidthUM)

	dim := section.W
	if cfg.Orientation == OrientationHorizontal {
		dim = section.H
	}
	n, spacing, factor, reduced := linePositions(dim, spacing, cap)
	prims := emitGrating(section, n, spacing, width, cfg.Orientation)
	return prims, Report{Count: len(prims), Reduced: reduced, Factor: factor}
}

// linePositions computes the fence-post grating along one axis:
// floor(dim/spacing) positions (at least one), of which only the
// even-indexed ones are drawn, giving floor((floor(dim/spacing)+1)/2)
// emitted lines. When that emitted count exceeds cap, the spacing is
// scaled by the squared limiter factor (line counts scale inversely
// with spacing, not with its square) and the positions recomputed once.
func linePositions(dim, spacing float64, cap int) (n int, corrected, factor float64, reduced bool) {
	count := math.Max(1, math.Floor(dim/spacing))
	drawn := math.Floor((count + 1) / 2)
	factor, reduced = limitCount(drawn, cap)
	if reduced {
		spacing *= factor * factor
		count = math.Max(1, math.Floor(dim/spacing))
		if limit := float64(2 * cap); count > limit {
			count = limit
		}
	}
	return int(count), spacing, factor, reduced
}

// multiLines partitions the section into the 3x3 catalog grid.
// Each cell is density-limited independently against cap/9 so no
// single sub-pattern can starve the others.
func multiLines(section geom.Rect, cap int) ([]Primitive, Report) {
	cap = effectiveCap(cap)
	subCap := cap / 9
	if subCap < 1 {
		subCap = 1
	}
	subW := section.W / 3
	subH := section.H / 3

	var prims []Primitive
	report := Report{Factor: 1, Subs: make([]SubReport, 0, len(multiCatalog))}
	for idx, entry := range multiCatalog {
		row, col := idx/3, idx%3
		sub := geom.NewRect(section.X+float64(col)*subW, section.Y+float64(row)*subH, subW, subH)
		cellPrims, sr := multiCell(sub, entry, subCap)
		prims = append(prims, cellPrims...)
		if sr.Reduced {
			report.Reduced = true
			if sr.Factor > report.Factor {
				report.Factor = sr.Factor
			}
		}
		report.Subs = append(report.Subs, sr)
	}
	report.Count = len(prims)
	return prims, report
}

// multiCell emits one catalog sub-pattern plus its border and label.
func multiCell(sub geom.Rect, entry MultiEntry, subCap int) ([]Primitive, SubReport) {
	spacing := geom.FromMicrons(entry.SpacingUM)
	label := entry.Label()

	var lines []Primitive
	var factor float64
	var reduced bool
	switch entry.AngleDeg {
	case 0:
		lines, factor, reduced = axisGrating(sub, spacing, OrientationHorizontal, subCap)
	case 90:
		lines, factor, reduced = axisGrating(sub, spacing, OrientationVertical, subCap)
	case 45:
		lines, factor, reduced = diagonalGrating(sub, spacing, subCap)
	}

	prims := make([]Primitive, 0, len(lines)+2)
	prims = append(prims, lines...)
	prims = append(prims,
		NewOutline(sub, subBorderStroke, false, subBorderColor),
		NewText(geom.Pt(sub.X+subLabelInsetX, sub.Y+subLabelInsetY), label, subLabelColor, subLabelSize),
	)
	return prims, SubReport{Label: label, Count: len(lines), Reduced: reduced, Factor: factor}
}

// emitGrating draws the even-indexed positions of an n-position
// grating centered in r, one full-span line each.
func emitGrating(r geom.Rect, n int, spacing, width float64, o Orientation) []Primitive {
	dim := r.W
	if o == OrientationHorizontal {
		dim = r.H
	}
	span := float64(n-1) * spacing
	start := (dim - span) / 2
	prims := make([]Primitive, 0, (n+1)/2)
	for i := 0; i < n; i += 2 {
		offset := start + float64(i)*spacing
		if o == OrientationHorizontal {
			y := r.Y + offset
			prims = append(prims, NewLine(geom.Pt(r.Left(), y), geom.Pt(r.Right(), y), width))
		} else {
			x := r.X + offset
			prims = append(prims, NewLine(geom.Pt(x, r.Top()), geom.Pt(x, r.Bottom()), width))
		}
	}
	return prims
}

// axisGrating draws an axis-aligned catalog grating scoped to a
// sub-rectangle, with line width derived from the realized spacing.
func axisGrating(sub geom.Rect, spacing float64, o Orientation, cap int) ([]Primitive, float64, bool) {
	dim := sub.W
	if o == OrientationHorizontal {
		dim = sub.H
	}
	n, corrected, factor, reduced := linePositions(dim, spacing, cap)
	return emitGrating(sub, n, corrected, corrected*multiWidthRatio, o), factor, reduced
}

// diagonalGrating draws the 45° catalog variant: horizontal positions
// are computed as in the 0° case, each segment's endpoints are rotated
// 45° about the sub-rectangle center, and the segment length is bounded
// so every rotated line stays inside the sub-rectangle. Positions whose
// rotated midpoint leaves no room are skipped.
func diagonalGrating(sub geom.Rect, spacing float64, cap int) ([]Primitive, float64, bool) {
	n, corrected, factor, reduced := linePositions(sub.H, spacing, cap)
	width := corrected * multiWidthRatio

	center := sub.Center()
	halfW, halfH := sub.W/2, sub.H/2
	sin, cos := math.Sincos(math.Pi / 4)

	span := float64(n-1) * corrected
	start := sub.Y + (sub.H-span)/2
	prims := make([]Primitive, 0, (n+1)/2)
	for i := 0; i < n; i += 2 {
		y := start + float64(i)*corrected
		mid := geom.Pt(center.X, y).RotateAround(center, math.Pi/4)
		half := math.Min(halfW, math.Min(
			(halfW-math.Abs(mid.X-center.X))/cos,
			(halfH-math.Abs(mid.Y-center.Y))/sin,
		))
		if half <= 0 {
			continue
		}
		p1 := geom.Pt(mid.X-half*cos, mid.Y-half*sin)
		p2 := geom.Pt(mid.X+half*cos, mid.Y+half*sin)
		prims = append(prims, NewLine(p1, p2, width))
	}
	return prims, factor, reduced
}
