package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/plateforge/plateforge/pkg/buildinfo"
	"github.com/plateforge/plateforge/pkg/errors"
	"github.com/plateforge/plateforge/pkg/library"
	"github.com/plateforge/plateforge/pkg/pattern"
	"github.com/plateforge/plateforge/pkg/pipeline"
	"github.com/plateforge/plateforge/pkg/platefile"
)

// contentTypes maps render formats to their MIME types.
var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatDXF:  "image/vnd.dxf",
	pipeline.FormatJSON: "application/json",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatPNG:  "image/png",
}

// =============================================================================
// Health
// =============================================================================

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, healthResponse{Status: "ok", Version: buildinfo.Version})
}

// =============================================================================
// Pattern catalog
// =============================================================================

type patternParameter struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Default     any    `json:"default,omitempty"`
}

type patternInfo struct {
	Kind        string             `json:"kind"`
	DisplayName string             `json:"display_name"`
	Description string             `json:"description"`
	Parameters  []patternParameter `json:"parameters"`
	MultiRecipe []multiRecipeEntry `json:"multi_recipe,omitempty"`
}

type multiRecipeEntry struct {
	pattern.MultiEntry
	Label string `json:"label"`
}

func patternCatalog() []patternInfo {
	kinds := pattern.Kinds()
	infos := make([]patternInfo, 0, len(kinds))
	for _, k := range kinds {
		info := patternInfo{Kind: string(k), DisplayName: k.DisplayName()}
		switch k {
		case pattern.KindDots:
			info.Description = "uniform dot grid for resolution measurement"
			info.Parameters = []patternParameter{
				{Name: "spacing_um", Description: "center-to-center dot spacing", Default: platefile.DefaultDotSpacingUM},
				{Name: "diameter_um", Description: "dot diameter", Default: platefile.DefaultDotDiameterUM},
			}
		case pattern.KindChecker:
			info.Description = "filled checkerboard for distortion mapping"
			info.Parameters = []patternParameter{
				{Name: "grid_mm", Description: "nominal cell size", Default: platefile.DefaultCheckerGridMM},
			}
		case pattern.KindLinePairs:
			info.Description = "alternating line/gap gratings"
			info.Parameters = []patternParameter{
				{Name: "mode", Description: "single or multi", Default: string(pattern.LineModeSingle)},
				{Name: "spacing_um", Description: "line pitch, single mode", Default: platefile.DefaultLineSpacingUM},
				{Name: "width_um", Description: "line width, single mode", Default: platefile.DefaultLineWidthUM},
				{Name: "orientation", Description: "vertical or horizontal, single mode", Default: string(pattern.OrientationVertical)},
			}
			for _, e := range pattern.MultiCatalog() {
				info.MultiRecipe = append(info.MultiRecipe, multiRecipeEntry{MultiEntry: e, Label: e.Label()})
			}
		case pattern.KindMarker:
			info.Description = "alignment and scale references"
			info.Parameters = []patternParameter{
				{Name: "kind", Description: "crosshair, fiducial or scalebar", Default: string(pattern.MarkerCrosshair)},
				{Name: "size_mm", Description: "marker size", Default: platefile.DefaultMarkerSizeMM},
			}
		}
		infos = append(infos, info)
	}
	return infos
}

func (s *Server) handlePatterns(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, struct {
		Patterns []patternInfo `json:"patterns"`
	}{patternCatalog()})
}

// =============================================================================
// Plates
// =============================================================================

func decodeDocument(w http.ResponseWriter, r *http.Request) (*platefile.Document, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var doc platefile.Document
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPlateFile, err, "parsing plate document")
	}
	return &doc, nil
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	doc, err := decodeDocument(w, r)
	if err != nil {
		respondError(w, err)
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		respondError(w, err)
		return
	}

	p, configs, err := doc.Resolve()
	if err != nil {
		respondError(w, err)
		return
	}

	result, err := s.runner.Execute(r.Context(), pipeline.Options{
		Plate:    &p,
		Sections: configs[:],
		Formats:  []string{format},
		Logger:   s.logger,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	for _, warning := range result.Warnings {
		w.Header().Add(WarningsHeader, warning)
	}
	w.Header().Set("Content-Type", contentTypes[format])
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[format])
}

func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	doc, err := decodeDocument(w, r)
	if err != nil {
		respondError(w, err)
		return
	}

	p, configs, err := doc.Resolve()
	if err != nil {
		respondError(w, err)
		return
	}

	pl, err := s.runner.Plan(r.Context(), pipeline.Options{
		Plate:    &p,
		Sections: configs[:],
		Logger:   s.logger,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, pl.Summarize())
}

// =============================================================================
// Library
// =============================================================================

func (s *Server) handleLibraryList(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		respondError(w, errors.New(errors.ErrCodeUnsupported, "no design library configured"))
		return
	}

	entries, err := s.store.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	if entries == nil {
		entries = []*library.Entry{}
	}
	respondJSON(w, http.StatusOK, struct {
		Designs []*library.Entry `json:"designs"`
	}{entries})
}

func (s *Server) handleLibraryGet(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		respondError(w, errors.New(errors.ErrCodeUnsupported, "no design library configured"))
		return
	}

	entry, err := s.store.Get(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, entry)
}
