package plan

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/plateforge/plateforge/pkg/plate"
)

// Summary is a compact description of a generated plan without the
// primitive list. It backs plan inspection and library storage, where
// the full geometry would be dead weight.
type Summary struct {
	Plate         plate.Plate                        `json:"plate" bson:"plate"`
	PlanHash      string                             `json:"plan_hash" bson:"plan_hash"`
	MaxElements   int                                `json:"max_elements" bson:"max_elements"`
	TotalElements int                                `json:"total_elements" bson:"total_elements"`
	Reduced       bool                               `json:"reduced" bson:"reduced"`
	Sections      [plate.SectionCount]SectionSummary `json:"sections" bson:"sections"`
	Warnings      []string                           `json:"warnings,omitempty" bson:"warnings,omitempty"`
}

// SectionSummary is the per-section slice of a [Summary].
type SectionSummary struct {
	Number   int     `json:"number" bson:"number"`
	Name     string  `json:"name" bson:"name"`
	Pattern  string  `json:"pattern" bson:"pattern"`
	Elements int     `json:"elements" bson:"elements"`
	Reduced  bool    `json:"reduced" bson:"reduced"`
	Factor   float64 `json:"factor" bson:"factor"`
}

// Hash returns the content hash identifying this exact plan. Two
// builds of the same request hash identically, so the value keys
// artifact caches and correlates inspect output with rendered files.
func (p *Plan) Hash() string {
	data, _ := json.Marshal(p)
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Summarize condenses the plan into counts and density outcomes.
func (p *Plan) Summarize() Summary {
	s := Summary{
		Plate:         p.Plate,
		PlanHash:      p.Hash(),
		MaxElements:   p.MaxElements,
		TotalElements: p.TotalElements(),
		Reduced:       p.Reduced(),
		Warnings:      p.Warnings(),
	}
	for i, sec := range p.Sections {
		s.Sections[i] = SectionSummary{
			Number:   sec.Number,
			Name:     plate.SectionName(sec.Number),
			Pattern:  string(sec.Config.Kind),
			Elements: sec.Report.Count,
			Reduced:  sec.Report.Reduced,
			Factor:   sec.Report.Factor,
		}
	}
	return s
}
