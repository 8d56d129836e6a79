package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/plateforge/plateforge/pkg/cache"
	"github.com/plateforge/plateforge/pkg/errors"
	"github.com/plateforge/plateforge/pkg/pattern"
	"github.com/plateforge/plateforge/pkg/plate"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"dxf", false},
		{"json", false},
		{"pdf", false},
		{"png", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %v, want %v", tt.format, errors.GetCode(err), errors.ErrCodeInvalidFormat)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "dxf"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{}

	if err := opts.ValidateForPlan(); err != nil {
		t.Errorf("Empty options should pass: %v", err)
	}

	// Check defaults were set
	if opts.Plate == nil {
		t.Fatal("Plate should default to the standard plate")
	}
	if opts.Plate.WidthMM != plate.DefaultWidthMM {
		t.Errorf("Plate width should be %v, got %v", plate.DefaultWidthMM, opts.Plate.WidthMM)
	}
	if len(opts.Sections) != plate.SectionCount {
		t.Errorf("Sections should default to %d patterns, got %d", plate.SectionCount, len(opts.Sections))
	}
	if opts.MaxElements != DefaultMaxElements {
		t.Errorf("MaxElements should be %d, got %d", DefaultMaxElements, opts.MaxElements)
	}
}

func TestOptionsValidateForPlan(t *testing.T) {
	// Invalid plate
	opts := Options{Plate: &plate.Plate{WidthMM: -1, HeightMM: 100, MarginMM: 10}}
	err := opts.ValidateForPlan()
	if err == nil {
		t.Error("Negative plate width should fail")
	}
	if !errors.Is(err, errors.ErrCodeInvalidPlate) {
		t.Errorf("Plate error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidPlate)
	}

	// Wrong section count
	opts = Options{Sections: []pattern.Config{pattern.NewChecker(1)}}
	err = opts.ValidateForPlan()
	if err == nil {
		t.Error("One section should fail")
	}
	if !errors.Is(err, errors.ErrCodeInvalidPattern) {
		t.Errorf("Section count error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidPattern)
	}

	// Invalid section config reports its position
	opts = Options{Sections: []pattern.Config{
		pattern.NewDots(250, 125),
		pattern.NewChecker(0),
		pattern.NewSingleLines(5, 1, pattern.OrientationVertical),
		pattern.NewMarker(pattern.MarkerCrosshair, 2),
	}}
	err = opts.ValidateForPlan()
	if err == nil {
		t.Fatal("Zero checker grid should fail")
	}
	if !bytes.Contains([]byte(err.Error()), []byte("section 2")) {
		t.Errorf("Error should name section 2: %v", err)
	}
}

func TestOptionsValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{}

	// First call
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("First validation failed: %v", err)
	}

	originalMaxElements := opts.MaxElements
	originalFormats := len(opts.Formats)
	originalScale := opts.Scale

	// Second call should be idempotent
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Second validation failed: %v", err)
	}

	if opts.MaxElements != originalMaxElements {
		t.Error("MaxElements changed on second call")
	}
	if len(opts.Formats) != originalFormats {
		t.Error("Formats changed on second call")
	}
	if opts.Scale != originalScale {
		t.Error("Scale changed on second call")
	}
}

func TestSetRenderDefaults(t *testing.T) {
	opts := Options{}
	opts.SetRenderDefaults()

	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats should be [svg], got %v", opts.Formats)
	}
	if opts.Scale != DefaultScale {
		t.Errorf("Scale should be %v, got %v", DefaultScale, opts.Scale)
	}
}

func TestNeedsConversion(t *testing.T) {
	opts := Options{Formats: []string{"svg", "dxf", "json"}}
	if opts.NeedsConversion() {
		t.Error("Native formats should not need conversion")
	}

	opts.Formats = []string{"svg", "pdf"}
	if !opts.NeedsConversion() {
		t.Error("PDF should need conversion")
	}

	opts.Formats = []string{"png"}
	if !opts.NeedsConversion() {
		t.Error("PNG should need conversion")
	}
}

func TestDesignHash(t *testing.T) {
	a := Options{}
	a.SetPlanDefaults()
	b := Options{}
	b.SetPlanDefaults()

	if a.DesignHash() != b.DesignHash() {
		t.Error("Identical designs should hash identically")
	}

	// The element cap is a generation parameter, not part of the design
	b.MaxElements = 500
	if a.DesignHash() != b.DesignHash() {
		t.Error("MaxElements should not change the design hash")
	}

	// Pattern changes are design changes
	c := Options{Sections: []pattern.Config{
		pattern.NewDots(500, 125),
		pattern.NewChecker(1.0),
		pattern.NewSingleLines(5, 1, pattern.OrientationVertical),
		pattern.NewMarker(pattern.MarkerCrosshair, 2.0),
	}}
	c.SetPlanDefaults()
	if a.DesignHash() == c.DesignHash() {
		t.Error("Different dot spacing should change the design hash")
	}
}

func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func testOptions() Options {
	p := plate.Plate{WidthMM: 50, HeightMM: 50, MarginMM: 5}
	return Options{
		Plate:   &p,
		Formats: []string{FormatSVG, FormatDXF, FormatJSON},
	}
}

func TestRunnerExecute(t *testing.T) {
	ctx := context.Background()
	r := NewRunner(nil, nil, testLogger())
	defer r.Close()

	result, err := r.Execute(ctx, testOptions())
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}

	if result.Plan == nil {
		t.Fatal("Result should carry the plan")
	}
	if result.Stats.ElementCount != result.Plan.TotalElements() {
		t.Errorf("ElementCount = %d, want %d", result.Stats.ElementCount, result.Plan.TotalElements())
	}
	if len(result.PlanHash) != 64 {
		t.Errorf("PlanHash should be a sha256 hex string, got %q", result.PlanHash)
	}
	for _, format := range []string{FormatSVG, FormatDXF, FormatJSON} {
		if len(result.Artifacts[format]) == 0 {
			t.Errorf("Artifact %q should not be empty", format)
		}
	}
	if len(result.Warnings) != 0 {
		t.Errorf("Default-density patterns should not warn: %v", result.Warnings)
	}

	// NullCache never hits
	if result.CacheInfo.PlanHit || result.CacheInfo.RenderHit {
		t.Error("NullCache should never report cache hits")
	}
}

func TestRunnerExecuteCacheHit(t *testing.T) {
	ctx := context.Background()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	r := NewRunner(c, nil, testLogger())
	defer r.Close()

	first, err := r.Execute(ctx, testOptions())
	if err != nil {
		t.Fatalf("First Execute error: %v", err)
	}
	if first.CacheInfo.PlanHit || first.CacheInfo.RenderHit {
		t.Error("First run should miss the cache")
	}

	second, err := r.Execute(ctx, testOptions())
	if err != nil {
		t.Fatalf("Second Execute error: %v", err)
	}
	if !second.CacheInfo.PlanHit {
		t.Error("Second run should hit the plan cache")
	}
	if !second.CacheInfo.RenderHit {
		t.Error("Second run should hit the artifact cache")
	}

	if second.PlanHash != first.PlanHash {
		t.Errorf("PlanHash changed across cached runs: %s vs %s", first.PlanHash, second.PlanHash)
	}
	for format, data := range first.Artifacts {
		if !bytes.Equal(second.Artifacts[format], data) {
			t.Errorf("Cached %q artifact differs from the original", format)
		}
	}
}

func TestRunnerRefreshBypassesCache(t *testing.T) {
	ctx := context.Background()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	r := NewRunner(c, nil, testLogger())
	defer r.Close()

	if _, err := r.Execute(ctx, testOptions()); err != nil {
		t.Fatalf("First Execute error: %v", err)
	}

	opts := testOptions()
	opts.Refresh = true
	result, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Refresh Execute error: %v", err)
	}
	if result.CacheInfo.PlanHit {
		t.Error("Refresh run should regenerate the plan")
	}
}

func TestRunnerPlanRejectsBadConfig(t *testing.T) {
	ctx := context.Background()
	r := NewRunner(nil, nil, testLogger())
	defer r.Close()

	opts := testOptions()
	opts.Sections = []pattern.Config{
		pattern.NewDots(0, 125),
		pattern.NewChecker(1),
		pattern.NewSingleLines(5, 1, pattern.OrientationVertical),
		pattern.NewMarker(pattern.MarkerCrosshair, 2),
	}

	_, err := r.Execute(ctx, opts)
	if err == nil {
		t.Fatal("Zero dot spacing should fail")
	}
	if !errors.Is(err, errors.ErrCodeInvalidPattern) {
		t.Errorf("Error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidPattern)
	}
}

func TestRunnerDensityWarnings(t *testing.T) {
	ctx := context.Background()
	r := NewRunner(nil, nil, testLogger())
	defer r.Close()

	opts := testOptions()
	opts.Sections = []pattern.Config{
		pattern.NewDots(20, 10), // far over the cap on a 20mm section
		pattern.NewChecker(1),
		pattern.NewSingleLines(1000, 100, pattern.OrientationVertical),
		pattern.NewMarker(pattern.MarkerCrosshair, 2),
	}

	result, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if len(result.Warnings) != 1 {
		t.Fatalf("Expected one density warning, got %v", result.Warnings)
	}
	if !bytes.Contains([]byte(result.Warnings[0]), []byte("section 1")) {
		t.Errorf("Warning should name section 1: %s", result.Warnings[0])
	}
}

func TestRenderFromPlanData(t *testing.T) {
	ctx := context.Background()
	r := NewRunner(nil, nil, testLogger())
	defer r.Close()

	opts := testOptions()
	result, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}

	planData, err := json.Marshal(result.Plan)
	if err != nil {
		t.Fatalf("marshal plan: %v", err)
	}

	renderOpts := testOptions()
	artifacts, err := RenderFromPlanData(planData, renderOpts)
	if err != nil {
		t.Fatalf("RenderFromPlanData error: %v", err)
	}
	if !bytes.Equal(artifacts[FormatSVG], result.Artifacts[FormatSVG]) {
		t.Error("Rendering a round-tripped plan should reproduce the SVG byte for byte")
	}
}
