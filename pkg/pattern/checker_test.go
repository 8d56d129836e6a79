package pattern

import (
	"math"
	"testing"

	"github.com/plateforge/plateforge/pkg/geom"
)

func TestCheckerBoard(t *testing.T) {
	section := geom.NewRect(0, 0, 20, 20)
	prims, report := Checker(section, CheckerConfig{GridMM: 1.0}, DefaultCap)

	if report.Reduced {
		t.Fatalf("report.Reduced = true, want false (factor %v)", report.Factor)
	}
	if report.Cols != 20 || report.Rows != 20 {
		t.Errorf("grid = %dx%d, want 20x20", report.Cols, report.Rows)
	}
	// Half of a 20x20 board is filled, starting with the corner cell.
	if got, want := len(prims), 200; got != want {
		t.Fatalf("len(prims) = %d, want %d", got, want)
	}

	first := prims[0].Rect
	if first == nil || !first.Filled {
		t.Fatal("first primitive is not a filled rect")
	}
	if first.Origin != section.Origin() {
		t.Errorf("corner cell origin = %v, want %v", first.Origin, section.Origin())
	}
	if math.Abs(first.W-1) > 1e-9 || math.Abs(first.H-1) > 1e-9 {
		t.Errorf("cell size = %vx%v, want 1x1", first.W, first.H)
	}
}

func TestCheckerTilesExactly(t *testing.T) {
	// 5x3 mm at 2 mm grid does not divide evenly. Cells shrink so the
	// board still covers the whole section with no overhang.
	section := geom.NewRect(2, 3, 5, 3)
	prims, report := Checker(section, CheckerConfig{GridMM: 2.0}, DefaultCap)

	if report.Cols != 3 || report.Rows != 2 {
		t.Fatalf("grid = %dx%d, want 3x2", report.Cols, report.Rows)
	}
	if got, want := len(prims), 3; got != want {
		t.Fatalf("len(prims) = %d, want %d", got, want)
	}

	wantW, wantH := 5.0/3, 1.5
	for i, p := range prims {
		r := p.Rect
		if math.Abs(r.W-wantW) > 1e-9 || math.Abs(r.H-wantH) > 1e-9 {
			t.Errorf("prims[%d] cell = %vx%v, want %vx%v", i, r.W, r.H, wantW, wantH)
		}
		if r.Origin.X+r.W > section.Right()+1e-9 || r.Origin.Y+r.H > section.Bottom()+1e-9 {
			t.Errorf("prims[%d] at %v overhangs the section", i, r.Origin)
		}
	}
}

func TestCheckerParity(t *testing.T) {
	section := geom.NewRect(0, 0, 6, 6)
	prims, _ := Checker(section, CheckerConfig{GridMM: 1.0}, DefaultCap)

	// Filled cells alternate: no two share an edge.
	for i, a := range prims {
		for j, b := range prims {
			if i >= j {
				continue
			}
			dx := math.Abs(a.Rect.Origin.X - b.Rect.Origin.X)
			dy := math.Abs(a.Rect.Origin.Y - b.Rect.Origin.Y)
			if (dx < 1e-9 && math.Abs(dy-1) < 1e-9) || (dy < 1e-9 && math.Abs(dx-1) < 1e-9) {
				t.Fatalf("cells %d and %d are edge neighbors at %v / %v", i, j, a.Rect.Origin, b.Rect.Origin)
			}
		}
	}
}

func TestCheckerDensityReduced(t *testing.T) {
	section := geom.NewRect(0, 0, 40, 40)
	prims, report := Checker(section, CheckerConfig{GridMM: 0.1}, DefaultCap)

	if !report.Reduced {
		t.Fatal("report.Reduced = false, want true")
	}
	if report.Factor < 3.9 || report.Factor > 4.1 {
		t.Errorf("report.Factor = %v, want about 4", report.Factor)
	}
	// The cap bounds total cells; roughly half of them are filled.
	if total := report.Cols * report.Rows; total > DefaultCap {
		t.Errorf("total cells = %d, over cap %d", total, DefaultCap)
	}
	if len(prims) > DefaultCap/2+1 {
		t.Errorf("filled cells = %d, want at most %d", len(prims), DefaultCap/2+1)
	}
}
