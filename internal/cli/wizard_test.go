package cli

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/plateforge/plateforge/pkg/pattern"
)

func pressKey(t *testing.T, m wizardModel, keyType tea.KeyType) wizardModel {
	t.Helper()
	next, _ := m.Update(tea.KeyMsg{Type: keyType})
	return next.(wizardModel)
}

func typeText(t *testing.T, m wizardModel, s string) wizardModel {
	t.Helper()
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return next.(wizardModel)
}

func TestWizardAcceptAllDefaults(t *testing.T) {
	m := newWizardModel()

	// Pressing enter through every prompt accepts all defaults,
	// including the spliced-in dots parameter prompts per section.
	for i := 0; i < 40 && !m.done; i++ {
		m = pressKey(t, m, tea.KeyEnter)
	}
	if !m.done {
		t.Fatal("wizard did not finish on defaults")
	}

	want := map[string]string{
		"name":       "custom-plate",
		"width":      "101.6",
		"height":     "101.6",
		"margin":     "10",
		"s1.pattern": "dots",
		"s1.spacing": "250",
		"s4.pattern": "dots",
		"output":     "custom-plate.toml",
	}
	for key, val := range want {
		if m.answers[key] != val {
			t.Errorf("answers[%q] = %q, want %q", key, m.answers[key], val)
		}
	}

	doc, err := buildDocument(m.answers)
	if err != nil {
		t.Fatalf("buildDocument() error: %v", err)
	}
	if doc.Name != "custom-plate" {
		t.Errorf("doc.Name = %q, want %q", doc.Name, "custom-plate")
	}

	_, configs, err := doc.Resolve()
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	for i, cfg := range configs {
		if cfg.Kind != pattern.KindDots {
			t.Errorf("section %d kind = %q, want dots", i+1, cfg.Kind)
		}
	}
}

func TestWizardPatternChoiceSplicesPrompts(t *testing.T) {
	m := newWizardModel()
	for i := 0; i < 4; i++ {
		m = pressKey(t, m, tea.KeyEnter) // name, width, height, margin
	}
	if got := m.prompts[m.index].key; got != "s1.pattern" {
		t.Fatalf("prompt after plate questions = %q, want s1.pattern", got)
	}

	// dots, checker, linepairs, marker: two downs select linepairs.
	m = pressKey(t, m, tea.KeyDown)
	m = pressKey(t, m, tea.KeyDown)
	m = pressKey(t, m, tea.KeyEnter)

	if m.answers["s1.pattern"] != "linepairs" {
		t.Fatalf("s1.pattern = %q, want linepairs", m.answers["s1.pattern"])
	}
	if got := m.prompts[m.index].key; got != "s1.mode" {
		t.Fatalf("prompt after linepairs = %q, want s1.mode", got)
	}

	// Multi mode needs no further parameters.
	m = pressKey(t, m, tea.KeyEnter)
	if m.answers["s1.mode"] != "multi" {
		t.Errorf("s1.mode = %q, want multi", m.answers["s1.mode"])
	}
	if got := m.prompts[m.index].key; got != "s2.pattern" {
		t.Errorf("prompt after multi mode = %q, want s2.pattern", got)
	}
}

func TestWizardSingleModeSplicesLinePrompts(t *testing.T) {
	m := newWizardModel()
	for i := 0; i < 4; i++ {
		m = pressKey(t, m, tea.KeyEnter)
	}
	m = pressKey(t, m, tea.KeyDown)
	m = pressKey(t, m, tea.KeyDown)
	m = pressKey(t, m, tea.KeyEnter) // linepairs
	m = pressKey(t, m, tea.KeyDown)
	m = pressKey(t, m, tea.KeyEnter) // single

	wantKeys := []string{"s1.spacing", "s1.width", "s1.orientation"}
	for _, want := range wantKeys {
		if got := m.prompts[m.index].key; got != want {
			t.Fatalf("prompt = %q, want %q", got, want)
		}
		m = pressKey(t, m, tea.KeyEnter)
	}

	if m.answers["s1.orientation"] != "vertical" {
		t.Errorf("s1.orientation = %q, want vertical", m.answers["s1.orientation"])
	}
}

func TestWizardRejectsNonNumericInput(t *testing.T) {
	m := newWizardModel()
	m = pressKey(t, m, tea.KeyEnter) // name

	m = typeText(t, m, "abc")
	m = pressKey(t, m, tea.KeyEnter)

	if m.errMsg == "" {
		t.Error("non-numeric width should set an error message")
	}
	if got := m.prompts[m.index].key; got != "width" {
		t.Errorf("wizard advanced past invalid input to %q", got)
	}
}

func TestWizardRejectsZero(t *testing.T) {
	m := newWizardModel()
	m = pressKey(t, m, tea.KeyEnter) // name

	m = typeText(t, m, "0")
	m = pressKey(t, m, tea.KeyEnter)

	if m.errMsg == "" {
		t.Error("zero width should set an error message")
	}
}

func TestWizardRejectsOversizedMargin(t *testing.T) {
	m := newWizardModel()
	m = pressKey(t, m, tea.KeyEnter) // name
	m = typeText(t, m, "50")
	m = pressKey(t, m, tea.KeyEnter) // width
	m = typeText(t, m, "50")
	m = pressKey(t, m, tea.KeyEnter) // height
	m = typeText(t, m, "25")
	m = pressKey(t, m, tea.KeyEnter) // margin eats the whole plate

	if m.errMsg == "" {
		t.Error("margin that leaves no usable area should set an error message")
	}
}

func TestWizardRejectsBadDesignName(t *testing.T) {
	m := newWizardModel()
	m = typeText(t, m, "../escape")
	m = pressKey(t, m, tea.KeyEnter)

	if m.errMsg == "" {
		t.Error("path-like design name should set an error message")
	}
}

func TestWizardBackspace(t *testing.T) {
	m := newWizardModel()
	m = typeText(t, m, "abc")
	m = pressKey(t, m, tea.KeyBackspace)

	if m.input != "ab" {
		t.Errorf("input after backspace = %q, want %q", m.input, "ab")
	}
}

func TestWizardEscQuitsWithoutFinishing(t *testing.T) {
	m := newWizardModel()
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	if cmd == nil {
		t.Error("esc should return a quit command")
	}
	if next.(wizardModel).done {
		t.Error("esc should not mark the wizard done")
	}
}

func TestBuildDocumentMixedPatterns(t *testing.T) {
	answers := map[string]string{
		"name": "mixed", "width": "60", "height": "60", "margin": "5",
		"s1.pattern": "dots", "s1.spacing": "200", "s1.diameter": "100",
		"s2.pattern": "checker", "s2.grid": "2",
		"s3.pattern": "linepairs", "s3.mode": "single",
		"s3.spacing": "8", "s3.width": "2", "s3.orientation": "horizontal",
		"s4.pattern": "marker", "s4.kind": "fiducial", "s4.size": "3",
		"output": "mixed.toml",
	}

	doc, err := buildDocument(answers)
	if err != nil {
		t.Fatalf("buildDocument() error: %v", err)
	}

	p, configs, err := doc.Resolve()
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if p.WidthMM != 60 || p.HeightMM != 60 || p.MarginMM != 5 {
		t.Errorf("plate = %v, want 60x60 margin 5", p)
	}
	if configs[0].Kind != pattern.KindDots || configs[0].Dots.SpacingUM != 200 {
		t.Errorf("section 1 = %+v, want dots spacing 200", configs[0])
	}
	if configs[1].Kind != pattern.KindChecker {
		t.Errorf("section 2 kind = %q, want checker", configs[1].Kind)
	}
	if configs[2].LinePairs.Orientation != pattern.OrientationHorizontal {
		t.Errorf("section 3 orientation = %q, want horizontal", configs[2].LinePairs.Orientation)
	}
	if configs[3].Marker.Kind != pattern.MarkerFiducial {
		t.Errorf("section 4 marker kind = %q, want fiducial", configs[3].Marker.Kind)
	}
}

func TestBuildDocumentMissingPattern(t *testing.T) {
	answers := map[string]string{
		"name": "partial", "width": "60", "height": "60", "margin": "5",
		"s1.pattern": "dots", "s1.spacing": "200", "s1.diameter": "100",
	}

	if _, err := buildDocument(answers); err == nil {
		t.Error("buildDocument() should fail when a section has no pattern")
	}
}
