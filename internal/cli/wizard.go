package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/plateforge/plateforge/pkg/errors"
	"github.com/plateforge/plateforge/pkg/pattern"
	"github.com/plateforge/plateforge/pkg/plate"
	"github.com/plateforge/plateforge/pkg/platefile"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
)

// wizardCommand creates the wizard command for interactive plate design.
func (c *CLI) wizardCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "wizard",
		Short: "Interactively compose a plate file",
		Long: `Interactively compose a plate file.

The wizard walks through the plate dimensions and the four pattern sections,
then writes the result as a TOML plate file ready for 'plateforge generate'.
Defaults are accepted with enter; esc cancels without writing anything.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runWizard(cmd.Context())
		},
	}
}

// runWizard drives the interactive prompt queue and writes the result.
func (c *CLI) runWizard(ctx context.Context) error {
	p := tea.NewProgram(newWizardModel())
	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("wizard: %w", err)
	}

	m, ok := finalModel.(wizardModel)
	if !ok || !m.done {
		printInfo("Wizard cancelled, nothing written")
		return nil
	}

	doc, err := buildDocument(m.answers)
	if err != nil {
		return err
	}

	path := m.answers["output"]
	if err := platefile.Save(doc, path); err != nil {
		return err
	}

	printSuccess("Saved plate design %q", doc.Name)
	printFile(path)
	printNewline()
	printNextStep("Render it", "plateforge generate "+path)
	return nil
}

// =============================================================================
// WizardModel - Prompt queue
// =============================================================================

// wizardPrompt is a single question: free text (optionally numeric) or
// a fixed choice list.
type wizardPrompt struct {
	key     string   // answer key, e.g. "width" or "s1.spacing"
	label   string   // question shown to the user
	hint    string   // unit or format hint
	def     string   // default applied when the input is empty
	choices []string // non-nil selects list navigation instead of text input
	numeric bool     // require a positive number
}

// wizardModel is the bubbletea model for the plate wizard. Prompts are
// answered in order; pattern choices insert their parameter prompts
// right after themselves.
type wizardModel struct {
	prompts []wizardPrompt
	index   int
	input   string
	cursor  int
	answers map[string]string
	errMsg  string
	done    bool
}

// newWizardModel creates the wizard with the fixed opening prompts.
func newWizardModel() wizardModel {
	prompts := []wizardPrompt{
		{key: "name", label: "Design name", def: "custom-plate"},
		{key: "width", label: "Plate width", hint: "mm", def: formatDefault(plate.DefaultWidthMM), numeric: true},
		{key: "height", label: "Plate height", hint: "mm", def: formatDefault(plate.DefaultHeightMM), numeric: true},
		{key: "margin", label: "Margin", hint: "mm", def: formatDefault(plate.DefaultMarginMM), numeric: true},
	}
	for i := 1; i <= plate.SectionCount; i++ {
		prompts = append(prompts, wizardPrompt{
			key:     fmt.Sprintf("s%d.pattern", i),
			label:   fmt.Sprintf("Section %d (%s) pattern", i, plate.SectionName(i)),
			choices: []string{"dots", "checker", "linepairs", "marker"},
		})
	}
	prompts = append(prompts, wizardPrompt{key: "output", label: "Write plate file to"})

	return wizardModel{
		prompts: prompts,
		answers: make(map[string]string),
	}
}

func (m wizardModel) Init() tea.Cmd {
	return nil
}

func (m wizardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit
	case tea.KeyEnter:
		return m.commit()
	}

	cur := m.prompts[m.index]
	if cur.choices != nil {
		switch keyMsg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(cur.choices)-1 {
				m.cursor++
			}
		}
		return m, nil
	}

	switch keyMsg.Type {
	case tea.KeyBackspace:
		if r := []rune(m.input); len(r) > 0 {
			m.input = string(r[:len(r)-1])
		}
	case tea.KeySpace:
		m.input += " "
	case tea.KeyRunes:
		m.input += string(keyMsg.Runes)
	}
	return m, nil
}

// commit validates the current answer, stores it, and advances. Pattern
// and mode choices splice their follow-up prompts into the queue.
func (m wizardModel) commit() (tea.Model, tea.Cmd) {
	cur := m.prompts[m.index]

	var val string
	if cur.choices != nil {
		val = cur.choices[m.cursor]
	} else {
		val = strings.TrimSpace(m.input)
		if val == "" {
			val = m.promptDefault(cur)
		}
		if err := m.checkAnswer(cur, val); err != nil {
			m.errMsg = err.Error()
			return m, nil
		}
	}

	m.answers[cur.key] = val
	m.errMsg = ""
	m.input = ""
	m.cursor = 0

	if extra := followupPrompts(cur.key, val); len(extra) > 0 {
		rest := append([]wizardPrompt{}, m.prompts[m.index+1:]...)
		m.prompts = append(append(m.prompts[:m.index+1], extra...), rest...)
	}

	m.index++
	if m.index >= len(m.prompts) {
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

// promptDefault resolves the effective default for a prompt. The output
// path default depends on the chosen design name.
func (m wizardModel) promptDefault(p wizardPrompt) string {
	if p.key == "output" {
		return m.answers["name"] + ".toml"
	}
	return p.def
}

// checkAnswer validates a text answer before it is accepted.
func (m wizardModel) checkAnswer(p wizardPrompt, val string) error {
	if p.numeric {
		f, err := strconv.ParseFloat(val, 64)
		if err != nil || f <= 0 {
			return fmt.Errorf("enter a positive number")
		}
	}
	if p.key == "name" {
		if err := errors.ValidateDesignName(val); err != nil {
			return fmt.Errorf("%s", errors.UserMessage(err))
		}
	}
	// The margin must leave a usable area between the section grid and
	// the plate edge.
	if p.key == "margin" {
		w := num(m.answers["width"])
		h := num(m.answers["height"])
		mm := num(val)
		if 2*mm >= w || 2*mm >= h {
			return fmt.Errorf("margin %gmm leaves no usable area on a %gx%gmm plate", mm, w, h)
		}
	}
	return nil
}

func (m wizardModel) View() string {
	if m.done {
		return ""
	}
	cur := m.prompts[m.index]

	var b strings.Builder
	b.WriteString(StyleTitle.Render("Plate wizard"))
	b.WriteString("  ")
	b.WriteString(StyleDim.Render(fmt.Sprintf("[%d/%d]", m.index+1, len(m.prompts))))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("enter accept  esc cancel"))
	b.WriteString("\n\n")

	b.WriteString(cur.label)
	if cur.hint != "" {
		b.WriteString(" " + StyleDim.Render("("+cur.hint+")"))
	}
	b.WriteString("\n")

	if cur.choices != nil {
		for i, choice := range cur.choices {
			if i == m.cursor {
				b.WriteString("▸ " + listSelectedStyle.Render(choice))
			} else {
				b.WriteString("  " + listNormalStyle.Render(choice))
			}
			b.WriteString("\n")
		}
	} else {
		b.WriteString("> ")
		if m.input == "" {
			b.WriteString(StyleDim.Render(m.promptDefault(cur)))
		} else {
			b.WriteString(StyleValue.Render(m.input))
		}
		b.WriteString(StyleHighlight.Render("▌"))
		b.WriteString("\n")
	}

	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(styleIconError.Render(iconError) + " " + m.errMsg)
		b.WriteString("\n")
	}
	return b.String()
}

// =============================================================================
// Prompt construction
// =============================================================================

// followupPrompts returns the parameter prompts a pattern or mode choice
// pulls into the queue.
func followupPrompts(key, val string) []wizardPrompt {
	dot := strings.LastIndex(key, ".")
	if dot < 0 {
		return nil
	}
	prefix := key[:dot+1]
	sec := "Section " + strings.TrimPrefix(key[:dot], "s")

	switch {
	case strings.HasSuffix(key, ".pattern"):
		switch val {
		case "dots":
			return []wizardPrompt{
				{key: prefix + "spacing", label: sec + " dot spacing", hint: "µm", def: formatDefault(platefile.DefaultDotSpacingUM), numeric: true},
				{key: prefix + "diameter", label: sec + " dot diameter", hint: "µm", def: formatDefault(platefile.DefaultDotDiameterUM), numeric: true},
			}
		case "checker":
			return []wizardPrompt{
				{key: prefix + "grid", label: sec + " cell size", hint: "mm", def: formatDefault(platefile.DefaultCheckerGridMM), numeric: true},
			}
		case "linepairs":
			return []wizardPrompt{
				{key: prefix + "mode", label: sec + " line mode", choices: []string{"multi", "single"}},
			}
		case "marker":
			return []wizardPrompt{
				{key: prefix + "kind", label: sec + " marker kind", choices: []string{"crosshair", "fiducial", "scalebar"}},
				{key: prefix + "size", label: sec + " marker size", hint: "mm", def: formatDefault(platefile.DefaultMarkerSizeMM), numeric: true},
			}
		}
	case strings.HasSuffix(key, ".mode") && val == "single":
		return []wizardPrompt{
			{key: prefix + "spacing", label: sec + " line spacing", hint: "µm", def: formatDefault(platefile.DefaultLineSpacingUM), numeric: true},
			{key: prefix + "width", label: sec + " line width", hint: "µm", def: formatDefault(platefile.DefaultLineWidthUM), numeric: true},
			{key: prefix + "orientation", label: sec + " orientation", choices: []string{"vertical", "horizontal"}},
		}
	}
	return nil
}

// =============================================================================
// Document assembly
// =============================================================================

// buildDocument turns completed wizard answers into a plate document.
// Resolving it applies the same validation the generate command uses.
func buildDocument(answers map[string]string) (*platefile.Document, error) {
	p := plate.Plate{
		WidthMM:  num(answers["width"]),
		HeightMM: num(answers["height"]),
		MarginMM: num(answers["margin"]),
	}

	var configs [plate.SectionCount]pattern.Config
	for i := 1; i <= plate.SectionCount; i++ {
		prefix := fmt.Sprintf("s%d.", i)
		get := func(field string) string { return answers[prefix+field] }

		switch get("pattern") {
		case "dots":
			configs[i-1] = pattern.NewDots(num(get("spacing")), num(get("diameter")))
		case "checker":
			configs[i-1] = pattern.NewChecker(num(get("grid")))
		case "linepairs":
			if get("mode") == string(pattern.LineModeSingle) {
				configs[i-1] = pattern.NewSingleLines(num(get("spacing")), num(get("width")), pattern.Orientation(get("orientation")))
			} else {
				configs[i-1] = pattern.NewMultiLines()
			}
		case "marker":
			configs[i-1] = pattern.NewMarker(pattern.MarkerKind(get("kind")), num(get("size")))
		default:
			return nil, errors.New(errors.ErrCodeInvalidPattern, "section %d has no pattern", i)
		}
	}

	doc := platefile.FromConfigs(answers["name"], p, configs)
	if _, _, err := doc.Resolve(); err != nil {
		return nil, err
	}
	return doc, nil
}

// num parses a wizard answer already validated as numeric.
func num(s string) float64 {
	f, _ := strconv.ParseFloat(s, 64)
	return f
}

// formatDefault renders a numeric default for prompt display.
func formatDefault(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
