package sink

import (
	"encoding/json"

	"github.com/plateforge/plateforge/pkg/errors"
	"github.com/plateforge/plateforge/pkg/pattern"
	"github.com/plateforge/plateforge/pkg/plan"
	"github.com/plateforge/plateforge/pkg/plate"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	compact   bool
	generator string
}

// WithJSONCompact emits the document without indentation.
func WithJSONCompact() JSONOption { return func(r *jsonRenderer) { r.compact = true } }

// WithJSONGenerator records the producing tool and version in the
// output, e.g. "plateforge v1.2.0".
func WithJSONGenerator(g string) JSONOption { return func(r *jsonRenderer) { r.generator = g } }

type jsonOutput struct {
	Generator   string                               `json:"generator,omitempty"`
	Plate       plate.Plate                          `json:"plate"`
	MaxElements int                                  `json:"max_elements"`
	Sections    [plate.SectionCount]plan.SectionPlan `json:"sections"`
	Warnings    []string                             `json:"warnings,omitempty"`
	Primitives  []pattern.Primitive                  `json:"primitives"`
}

// RenderJSON exports the complete plan as a JSON document: the plate,
// each section's configuration and density report, any density
// warnings, and the full primitive list in emission order. The output
// is stable for a given plan, so it doubles as a cacheable archive
// format that external tools can re-render.
func RenderJSON(p *plan.Plan, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		Generator:   r.generator,
		Plate:       p.Plate,
		MaxElements: p.MaxElements,
		Sections:    p.Sections,
		Warnings:    p.Warnings(),
		Primitives:  p.Primitives,
	}

	var (
		data []byte
		err  error
	)
	if r.compact {
		data, err = json.Marshal(out)
	} else {
		data, err = json.MarshalIndent(out, "", "  ")
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "encoding plan to JSON")
	}
	return data, nil
}
