package sink

import (
	"bytes"
	"strings"
	"testing"

	"github.com/plateforge/plateforge/pkg/pattern"
	"github.com/plateforge/plateforge/pkg/plan"
	"github.com/plateforge/plateforge/pkg/plate"
)

// testPlan builds a small plan with known primitive counts: 25 dots,
// 8 checker cells, 10 grating lines, one crosshair, plus the plate
// frame and per-section annotations.
func testPlan(t *testing.T) *plan.Plan {
	t.Helper()
	p := plate.Plate{WidthMM: 50, HeightMM: 50, MarginMM: 5}
	configs := [plate.SectionCount]pattern.Config{
		pattern.NewDots(5000, 2000),
		pattern.NewChecker(5),
		pattern.NewSingleLines(1000, 100, pattern.OrientationVertical),
		pattern.NewMarker(pattern.MarkerCrosshair, 2),
	}
	pl, err := plan.Build(p, configs, 0)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return pl
}

func TestRenderSVGDocument(t *testing.T) {
	out := string(RenderSVG(testPlan(t)))

	if !strings.HasPrefix(out, "<?xml") {
		t.Errorf("output does not start with an XML declaration: %.40q", out)
	}
	if !strings.Contains(out, `viewBox="0 0 50 50"`) {
		t.Error("viewBox does not span the plate")
	}
	if !strings.Contains(out, `mm"`) {
		t.Error("document size is not in millimeters")
	}
	if !strings.HasSuffix(strings.TrimSpace(out), "</svg>") {
		t.Error("document is not closed")
	}

	counts := map[string]int{
		"<circle": 25,
		"<rect":   13,
		"<line":   12,
		"<text":   8,
	}
	for tag, want := range counts {
		if got := strings.Count(out, tag); got != want {
			t.Errorf("%s count = %d, want %d", tag, got, want)
		}
	}

	// Section outlines are dashed, the plate outline is not.
	if got := strings.Count(out, "stroke-dasharray"); got != 4 {
		t.Errorf("dashed outline count = %d, want 4", got)
	}
}

func TestRenderSVGOptions(t *testing.T) {
	p := testPlan(t)
	out := string(RenderSVG(p,
		WithSVGTitle("4 inch wafer"),
		WithSVGDescription("calibration layout"),
		WithSVGBackground("white"),
	))

	if !strings.Contains(out, "<title>4 inch wafer</title>") {
		t.Error("title element missing")
	}
	if !strings.Contains(out, "<desc>calibration layout</desc>") {
		t.Error("desc element missing")
	}
	if got := strings.Count(out, "<rect"); got != 14 {
		t.Errorf("rect count with background = %d, want 14", got)
	}
	if !strings.Contains(out, `fill="white"`) {
		t.Error("background fill missing")
	}
}

func TestRenderSVGDeterministic(t *testing.T) {
	p := testPlan(t)
	a := RenderSVG(p, WithSVGTitle("x"))
	b := RenderSVG(p, WithSVGTitle("x"))
	if !bytes.Equal(a, b) {
		t.Error("two renders of the same plan differ")
	}
}

func TestRenderSVGMicronPrecision(t *testing.T) {
	// A 1 µm line width must not round away.
	p := plate.Plate{WidthMM: 50, HeightMM: 50, MarginMM: 5}
	configs := [plate.SectionCount]pattern.Config{
		pattern.NewSingleLines(5, 1, pattern.OrientationVertical),
		pattern.NewChecker(5),
		pattern.NewChecker(5),
		pattern.NewChecker(5),
	}
	pl, err := plan.Build(p, configs, 0)
	if err != nil {
		t.Fatal(err)
	}
	out := string(RenderSVG(pl))
	if !strings.Contains(out, `stroke-width="0.001"`) {
		t.Error("micron line width missing from output")
	}
}
