package geom

import (
	"math"
	"strconv"
)

// Conversion factors to millimeters, the canonical unit for all geometry.
const (
	MillimetersPerMicron    = 1e-3
	MillimetersPerNanometer = 1e-6
)

// FromMicrons converts a length in micrometers to millimeters.
func FromMicrons(um float64) float64 { return um * MillimetersPerMicron }

// FromNanometers converts a length in nanometers to millimeters.
func FromNanometers(nm float64) float64 { return nm * MillimetersPerNanometer }

// FormatLength renders a millimeter length in the most readable unit,
// e.g. 0.007 → "7µm" and 0.0007 → "700nm". Used for pattern labels.
func FormatLength(mm float64) string {
	switch {
	case mm >= 1:
		return trimFloat(mm) + "mm"
	case mm >= MillimetersPerMicron:
		return trimFloat(mm/MillimetersPerMicron) + "µm"
	default:
		return trimFloat(mm/MillimetersPerNanometer) + "nm"
	}
}

// trimFloat formats v with float conversion artifacts rounded away.
func trimFloat(v float64) string {
	v = math.Round(v*1000) / 1000
	return strconv.FormatFloat(v, 'f', -1, 64)
}
