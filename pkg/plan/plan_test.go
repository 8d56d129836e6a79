package plan

import (
	"reflect"
	"strconv"
	"strings"
	"testing"

	"github.com/plateforge/plateforge/pkg/errors"
	"github.com/plateforge/plateforge/pkg/pattern"
	"github.com/plateforge/plateforge/pkg/plate"
)

func TestBuildDefaultLayout(t *testing.T) {
	p, err := Build(plate.Default(), DefaultConfigs(), 0)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if p.MaxElements != pattern.DefaultCap {
		t.Errorf("MaxElements = %d, want %d", p.MaxElements, pattern.DefaultCap)
	}

	// The first primitive is the plate outline at the true origin.
	outline := p.Primitives[0].Rect
	if outline == nil || outline.Filled {
		t.Fatal("first primitive is not the open plate outline")
	}
	if outline.Origin.X != 0 || outline.Origin.Y != 0 ||
		outline.W != plate.DefaultWidthMM || outline.H != plate.DefaultHeightMM {
		t.Errorf("plate outline = %+v", outline)
	}

	for i, s := range p.Sections {
		if s.Number != i+1 {
			t.Errorf("section %d numbered %d", i, s.Number)
		}
		if s.Count < 3 {
			t.Fatalf("section %d has %d primitives, want annotations plus pattern", s.Number, s.Count)
		}

		prims := p.SectionPrimitives(s.Number)
		if len(prims) != s.Count {
			t.Fatalf("SectionPrimitives(%d) length %d, want %d", s.Number, len(prims), s.Count)
		}

		// Emission order within a section: dashed outline, number,
		// kind label, then the pattern itself.
		border := prims[0].Rect
		if border == nil || !border.Dashed {
			t.Errorf("section %d does not start with its dashed outline", s.Number)
		}
		number := prims[1].Text
		if number == nil || number.Content != strconv.Itoa(s.Number) {
			t.Errorf("section %d number annotation = %+v", s.Number, prims[1])
		}
		label := prims[2].Text
		if label == nil || label.Content != s.Config.Kind.DisplayName() {
			t.Errorf("section %d label = %+v, want %q", s.Number, prims[2], s.Config.Kind.DisplayName())
		}
	}

	// Section ranges tile the primitive list after the outline.
	if p.Sections[0].Offset != 1 {
		t.Errorf("first section offset = %d, want 1", p.Sections[0].Offset)
	}
	for i := 1; i < plate.SectionCount; i++ {
		prev := p.Sections[i-1]
		if p.Sections[i].Offset != prev.Offset+prev.Count {
			t.Errorf("section %d offset = %d, want %d", i+1, p.Sections[i].Offset, prev.Offset+prev.Count)
		}
	}
	last := p.Sections[plate.SectionCount-1]
	if last.Offset+last.Count != len(p.Primitives) {
		t.Errorf("section ranges end at %d, want %d", last.Offset+last.Count, len(p.Primitives))
	}

	// The default dots section overruns the cap and is reported.
	if !p.Reduced() {
		t.Error("Reduced() = false, want true for default dots density")
	}
	warnings := p.Warnings()
	if len(warnings) == 0 {
		t.Fatal("Warnings() empty, want at least the dots section")
	}
	if !strings.Contains(warnings[0], "section 1") || !strings.Contains(warnings[0], "density reduced") {
		t.Errorf("warnings[0] = %q", warnings[0])
	}
}

func TestBuildRejectsBadPlate(t *testing.T) {
	bad := plate.Plate{WidthMM: 20, HeightMM: 20, MarginMM: 10}
	_, err := Build(bad, DefaultConfigs(), 0)
	if err == nil {
		t.Fatal("Build() = nil error, want plate validation failure")
	}
	if !errors.Is(err, errors.ErrCodeInvalidPlate) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidPlate)
	}
}

func TestBuildRejectsBadPattern(t *testing.T) {
	configs := DefaultConfigs()
	configs[2] = pattern.NewSingleLines(0, 1, pattern.OrientationVertical)

	_, err := Build(plate.Default(), configs, 0)
	if err == nil {
		t.Fatal("Build() = nil error, want pattern validation failure")
	}
	if !errors.Is(err, errors.ErrCodeInvalidPattern) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidPattern)
	}
	// The failing section is named so the message is actionable.
	if msg := err.Error(); !strings.Contains(msg, "section 3") {
		t.Errorf("error = %q, want section 3 named", msg)
	}
}

func TestBuildHonorsElementCap(t *testing.T) {
	configs := [plate.SectionCount]pattern.Config{
		pattern.NewDots(20, 10),
		pattern.NewChecker(0.1),
		pattern.NewSingleLines(0.5, 0.15, pattern.OrientationVertical),
		pattern.NewMultiLines(),
	}

	for _, cap := range []int{100, 2500, 10000} {
		p, err := Build(plate.Default(), configs, cap)
		if err != nil {
			t.Fatalf("cap %d: Build() error = %v", cap, err)
		}
		if p.MaxElements != cap {
			t.Errorf("cap %d: MaxElements = %d", cap, p.MaxElements)
		}
		for _, s := range p.Sections {
			if s.Config.Kind == pattern.KindLinePairs && s.Config.LinePairs.Mode == pattern.LineModeMulti {
				continue
			}
			if s.Report.Count > cap {
				t.Errorf("cap %d: section %d emitted %d pattern elements", cap, s.Number, s.Report.Count)
			}
		}
	}
}

func TestBuildDemoPlate(t *testing.T) {
	p, err := Build(
		plate.Plate{WidthMM: 50, HeightMM: 50, MarginMM: 5},
		[plate.SectionCount]pattern.Config{
			pattern.NewDots(2, 0.5),
			pattern.NewChecker(1.0),
			pattern.NewMultiLines(),
			pattern.NewMarker(pattern.MarkerCrosshair, 3.0),
		},
		0,
	)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	for _, s := range p.Sections {
		if s.Report.Count == 0 {
			t.Errorf("section %d emitted no pattern primitives", s.Number)
		}
	}

	// 2 um dots on a 20x20 mm section overrun any reasonable cap.
	dots := p.Sections[0].Report
	if !dots.Reduced || dots.Count > pattern.DefaultCap {
		t.Errorf("dots report = %+v, want reduced and capped", dots)
	}

	// The 20x20 mm section holds a 20x20 board, half of it filled.
	checker := p.Sections[1].Report
	if checker.Cols != 20 || checker.Rows != 20 {
		t.Errorf("checker grid = %dx%d, want 20x20", checker.Cols, checker.Rows)
	}
	if checker.Count != 200 {
		t.Errorf("checker count = %d, want 200 filled cells", checker.Count)
	}
	if checker.Reduced {
		t.Error("checker reduced at 1 mm grid, want untouched")
	}

	if subs := p.Sections[2].Report.Subs; len(subs) != 9 {
		t.Errorf("multi grating has %d sub-cells, want 9", len(subs))
	}

	// A crosshair is exactly its two arms.
	if got := p.Sections[3].Report.Count; got != 2 {
		t.Errorf("crosshair count = %d, want 2", got)
	}
	prims := p.SectionPrimitives(4)
	for i, pr := range prims[3:] {
		if pr.Line == nil {
			t.Errorf("crosshair primitive %d is not a line", i)
		}
	}
}

func TestBuildDeterministic(t *testing.T) {
	a, err := Build(plate.Default(), DefaultConfigs(), 0)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Build(plate.Default(), DefaultConfigs(), 0)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("two builds of the same request differ")
	}
}
