package pattern

import (
	"math"
	"testing"

	"github.com/plateforge/plateforge/pkg/geom"
)

func TestMarkerCrosshair(t *testing.T) {
	section := geom.NewRect(0, 0, 10, 10)
	prims, report := Marker(section, MarkerConfig{Kind: MarkerCrosshair, SizeMM: 2})

	if got, want := len(prims), 2; got != want {
		t.Fatalf("len(prims) = %d, want %d", got, want)
	}
	if report.Count != 2 || report.Reduced {
		t.Errorf("report = %+v, want count 2 and no reduction", report)
	}

	h, v := prims[0].Line, prims[1].Line
	if h == nil || v == nil {
		t.Fatal("crosshair primitives are not lines")
	}
	if h.P1.Y != 5 || h.P2.Y != 5 || h.P1.X != 4 || h.P2.X != 6 {
		t.Errorf("horizontal arm %v -> %v, want (4,5) -> (6,5)", h.P1, h.P2)
	}
	if v.P1.X != 5 || v.P2.X != 5 || v.P1.Y != 4 || v.P2.Y != 6 {
		t.Errorf("vertical arm %v -> %v, want (5,4) -> (5,6)", v.P1, v.P2)
	}
	if h.Width != markerStroke || v.Width != markerStroke {
		t.Errorf("arm widths %v/%v, want %v", h.Width, v.Width, markerStroke)
	}
}

func TestMarkerFiducial(t *testing.T) {
	section := geom.NewRect(10, 10, 10, 10)
	prims, _ := Marker(section, MarkerConfig{Kind: MarkerFiducial, SizeMM: 2})

	if got, want := len(prims), 2; got != want {
		t.Fatalf("len(prims) = %d, want %d", got, want)
	}

	ring, dot := prims[0].Circle, prims[1].Circle
	if ring == nil || dot == nil {
		t.Fatal("fiducial primitives are not circles")
	}
	center := geom.Pt(15, 15)
	if ring.Center != center || dot.Center != center {
		t.Errorf("centers %v/%v, want %v", ring.Center, dot.Center, center)
	}
	if ring.Filled || ring.Radius != 1 || ring.Stroke != markerStroke {
		t.Errorf("ring = %+v, want open circle radius 1 stroke %v", ring, markerStroke)
	}
	if !dot.Filled || math.Abs(dot.Radius-0.2) > 1e-9 {
		t.Errorf("dot = %+v, want filled circle radius 0.2", dot)
	}
}

func TestMarkerScaleBar(t *testing.T) {
	section := geom.NewRect(0, 0, 10, 10)
	prims, _ := Marker(section, MarkerConfig{Kind: MarkerScaleBar, SizeMM: 2})

	// One bar plus 26 ticks.
	if got, want := len(prims), 27; got != want {
		t.Fatalf("len(prims) = %d, want %d", got, want)
	}

	bar := prims[0].Line
	if bar.P1.Y != 5 || bar.P2.Y != 5 || bar.P1.X != 4 || bar.P2.X != 6 {
		t.Errorf("bar %v -> %v, want (4,5) -> (6,5)", bar.P1, bar.P2)
	}
	if bar.Width != markerStroke {
		t.Errorf("bar width = %v, want %v", bar.Width, markerStroke)
	}

	majors, minors := 0, 0
	for i, p := range prims[1:] {
		tick := p.Line
		if tick == nil || tick.P1.X != tick.P2.X {
			t.Fatalf("tick %d is not a vertical line", i)
		}
		if tick.Width != tickStroke {
			t.Errorf("tick %d width = %v, want %v", i, tick.Width, tickStroke)
		}
		height := tick.P2.Y - tick.P1.Y
		switch {
		case math.Abs(height-0.2) < 1e-9:
			majors++
		case math.Abs(height-0.1) < 1e-9:
			minors++
		default:
			t.Errorf("tick %d height = %v, want 0.2 or 0.1", i, height)
		}
	}
	if majors != 6 || minors != 20 {
		t.Errorf("majors = %d, minors = %d, want 6 and 20", majors, minors)
	}

	// Ticks are evenly spaced across the bar.
	firstX := prims[1].Line.P1.X
	lastX := prims[26].Line.P1.X
	if math.Abs(firstX-4) > 1e-9 || math.Abs(lastX-6) > 1e-9 {
		t.Errorf("tick run %v to %v, want 4 to 6", firstX, lastX)
	}
}

func TestMarkerSizeScales(t *testing.T) {
	section := geom.NewRect(0, 0, 40, 40)
	for _, size := range []float64{0.5, 2, 5} {
		prims, _ := Marker(section, MarkerConfig{Kind: MarkerCrosshair, SizeMM: size})
		h := prims[0].Line
		if got := h.P2.X - h.P1.X; math.Abs(got-size) > 1e-9 {
			t.Errorf("size %v: arm length = %v", size, got)
		}
	}
}
