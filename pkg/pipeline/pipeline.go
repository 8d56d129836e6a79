// Package pipeline provides the core generation pipeline for Plateforge.
//
// This package implements the complete plan → render pipeline that can
// be used by CLI and API components. By centralizing this logic, we
// ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Plan: Validate the plate and section patterns, then generate the
//     complete primitive layout
//  2. Render: Produce output in various formats (SVG, DXF, JSON, PDF, PNG)
//
// Each stage can be run independently or as part of the complete pipeline.
// Both stages are deterministic, so results are cached by content hash.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Sections: []pattern.Config{
//	        pattern.NewDots(250, 125),
//	        pattern.NewChecker(1.0),
//	        pattern.NewSingleLines(5, 1, pattern.OrientationVertical),
//	        pattern.NewMarker(pattern.MarkerCrosshair, 2.0),
//	    },
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	// Plan only
//	pl, err := runner.Plan(ctx, opts)
//
//	// Render with existing plan
//	artifacts, err := runner.Render(ctx, pl, opts)
package pipeline

import (
	"encoding/json"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/plateforge/plateforge/pkg/cache"
	"github.com/plateforge/plateforge/pkg/errors"
	"github.com/plateforge/plateforge/pkg/pattern"
	"github.com/plateforge/plateforge/pkg/plan"
	"github.com/plateforge/plateforge/pkg/plate"
	"github.com/plateforge/plateforge/pkg/render/sink"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultMaxElements is the per-section primitive cap. It matches
	// pattern.DefaultCap so direct generator calls and pipeline runs
	// thin dense patterns identically.
	DefaultMaxElements = pattern.DefaultCap

	// DefaultScale is the default PNG rasterization scale.
	DefaultScale = sink.DefaultPNGScale
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatDXF  = "dxf"
	FormatJSON = "json"
	FormatPDF  = "pdf"
	FormatPNG  = "png"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatDXF:  true,
	FormatJSON: true,
	FormatPDF:  true,
	FormatPNG:  true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the generation pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Plan options
	Plate       *plate.Plate     `json:"plate,omitempty"`    // nil selects the default 4 inch plate
	Sections    []pattern.Config `json:"sections,omitempty"` // empty selects the default layout, otherwise exactly 4
	MaxElements int              `json:"max_elements,omitempty"`
	Refresh     bool             `json:"refresh,omitempty"`

	// Render options
	Formats    []string `json:"formats,omitempty"`
	Title      string   `json:"title,omitempty"`
	Background string   `json:"background,omitempty"`
	Compact    bool     `json:"compact,omitempty"`     // compact JSON output
	FlatLayers bool     `json:"flat_layers,omitempty"` // single-layer DXF output
	Scale      float64  `json:"scale,omitempty"`       // PNG rasterization scale

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Plan is the generated plate layout.
	Plan *plan.Plan

	// PlanHash is the content hash of the serialized plan.
	PlanHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Warnings lists density reductions, one line per affected section.
	Warnings []string

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	ElementCount int
	PlanTime     time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	PlanHit   bool // Whether the plan came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format %q (must be one of: svg, dxf, json, pdf, png)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForPlan(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetPlanDefaults sets default values for plan generation.
func (o *Options) SetPlanDefaults() {
	if o.Plate == nil {
		p := plate.Default()
		o.Plate = &p
	}
	if len(o.Sections) == 0 {
		defaults := plan.DefaultConfigs()
		o.Sections = defaults[:]
	}
	if o.MaxElements == 0 {
		o.MaxElements = DefaultMaxElements
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForPlan validates and sets defaults for plan generation.
// Configuration problems are reported before any geometry is produced.
func (o *Options) ValidateForPlan() error {
	o.SetPlanDefaults()
	if err := o.Plate.Validate(); err != nil {
		return err
	}
	if len(o.Sections) != plate.SectionCount {
		return errors.New(errors.ErrCodeInvalidPattern,
			"expected %d section patterns, got %d", plate.SectionCount, len(o.Sections))
	}
	for i, cfg := range o.Sections {
		if err := cfg.Validate(); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidPattern, err,
				"section %d (%s)", i+1, plate.SectionName(i+1))
		}
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	return ValidateFormats(o.Formats)
}

// NeedsConversion reports whether any requested format requires the
// external rsvg-convert binary.
func (o *Options) NeedsConversion() bool {
	for _, f := range o.Formats {
		if f == FormatPDF || f == FormatPNG {
			return true
		}
	}
	return false
}

// DesignHash returns the content hash identifying the plate and its
// section patterns. Two option sets with the same design hash generate
// the same plan for a given element cap.
func (o *Options) DesignHash() string {
	data, _ := json.Marshal(struct {
		Plate    *plate.Plate     `json:"plate"`
		Sections []pattern.Config `json:"sections"`
	}{o.Plate, o.Sections})
	return cache.Hash(data)
}

// PlanKeyOpts returns cache key options for plan generation.
func (o *Options) PlanKeyOpts() cache.PlanKeyOpts {
	return cache.PlanKeyOpts{
		MaxElements: o.MaxElements,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:     format,
		Title:      o.Title,
		Background: o.Background,
		Compact:    o.Compact,
		FlatLayers: o.FlatLayers,
		Scale:      o.Scale,
	}
}

// sectionArray converts the section slice to the fixed-size array the
// planner takes. ValidateForPlan has checked the length.
func (o *Options) sectionArray() [plate.SectionCount]pattern.Config {
	var out [plate.SectionCount]pattern.Config
	copy(out[:], o.Sections)
	return out
}
