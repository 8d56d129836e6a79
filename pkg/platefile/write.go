package platefile

import (
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/plateforge/plateforge/pkg/errors"
	"github.com/plateforge/plateforge/pkg/pattern"
	"github.com/plateforge/plateforge/pkg/plate"
)

// Write encodes the document as TOML and writes it to w.
func Write(d *Document, w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(d); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPlateFile, err, "encoding plate document")
	}
	return nil
}

// Save writes the document to a TOML file at path.
// This is a convenience wrapper around [Write] for file-based output.
func Save(d *Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "create %s", path)
	}
	defer f.Close()
	return Write(d, f)
}

// FromConfigs rebuilds a document from a resolved plate and section
// set. It is the inverse of [Document.Resolve] and backs wizard output
// and library storage.
func FromConfigs(name string, p plate.Plate, configs [plate.SectionCount]pattern.Config) *Document {
	margin := p.MarginMM
	doc := &Document{
		Name: name,
		Plate: Plate{
			Width:  p.WidthMM,
			Height: p.HeightMM,
			Margin: &margin,
		},
	}
	for _, cfg := range configs {
		doc.Sections = append(doc.Sections, sectionFromConfig(cfg))
	}
	return doc
}

func sectionFromConfig(cfg pattern.Config) Section {
	s := Section{Pattern: string(cfg.Kind)}
	switch cfg.Kind {
	case pattern.KindDots:
		if cfg.Dots != nil {
			s.SpacingUM = cfg.Dots.SpacingUM
			s.DiameterUM = cfg.Dots.DiameterUM
		}
	case pattern.KindChecker:
		if cfg.Checker != nil {
			s.GridMM = cfg.Checker.GridMM
		}
	case pattern.KindLinePairs:
		if cfg.LinePairs != nil {
			s.Mode = string(cfg.LinePairs.Mode)
			if cfg.LinePairs.Mode == pattern.LineModeSingle {
				s.SpacingUM = cfg.LinePairs.SpacingUM
				s.WidthUM = cfg.LinePairs.WidthUM
				s.Orientation = string(cfg.LinePairs.Orientation)
			}
		}
	case pattern.KindMarker:
		if cfg.Marker != nil {
			s.Kind = string(cfg.Marker.Kind)
			s.SizeMM = cfg.Marker.SizeMM
		}
	}
	return s
}
