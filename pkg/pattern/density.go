package pattern

import "math"

// DefaultCap is the maximum number of elements a single pattern may
// emit before its spacing is scaled up. Matches the per-pattern element
// budget used for fabrication files.
const DefaultCap = 10000

// effectiveCap normalizes a caller-supplied cap.
func effectiveCap(cap int) int {
	if cap <= 0 {
		return DefaultCap
	}
	return cap
}

// Limit computes the spacing scale factor that brings a requested
// element count down to the cap. It returns (1, false) when no
// reduction is needed, including for non-positive requested counts.
//
// The factor is the smallest f with requested/f^2 <= cap, i.e.
// sqrt(requested/cap). Grid patterns, whose element count scales with
// the inverse square of spacing, apply f directly; line gratings, whose
// count scales with the inverse of spacing, apply f twice so the
// realized count lands at requested/f^2 as well. Either way the caller
// recomputes its counts exactly once after scaling.
func Limit(requested, cap int) (factor float64, reduced bool) {
	return limitCount(float64(requested), cap)
}

// limitCount is Limit over a float64 count. Naive counts are computed
// in float64 so nanometer spacings over large sections cannot overflow
// before the correction is applied.
func limitCount(requested float64, cap int) (factor float64, reduced bool) {
	c := float64(effectiveCap(cap))
	if requested <= 0 || requested <= c {
		return 1, false
	}
	return math.Sqrt(requested / c), true
}

// gridAxisCap splits a total element cap into per-axis bounds that
// preserve the w:h aspect of the section. Used as the one-shot re-check
// after density correction, where flooring can leave the recomputed
// grid a row or column over the cap.
func gridAxisCap(cap int, w, h float64) (maxCols, maxRows int) {
	maxCols = int(math.Sqrt(float64(cap) * w / h))
	if maxCols < 1 {
		maxCols = 1
	}
	maxRows = cap / maxCols
	if maxRows < 1 {
		maxRows = 1
	}
	return maxCols, maxRows
}
