package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/plateforge/plateforge/pkg/geom"
	"github.com/plateforge/plateforge/pkg/pattern"
	"github.com/plateforge/plateforge/pkg/platefile"
)

// patternsCommand creates the patterns command listing pattern types.
func (c *CLI) patternsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "patterns",
		Short: "List available pattern types and their parameters",
		Long: `List available pattern types and their parameters.

Shows the four section pattern types with their TOML parameter names and
defaults, plus the fixed 3x3 sub-pattern catalog used by line pairs in
multi mode.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			printPatternCatalog()
			return nil
		},
	}
}

// printPatternCatalog prints the pattern kind and multi recipe tables.
func printPatternCatalog() {
	fmt.Println(StyleTitle.Render("Pattern types"))
	fmt.Println(renderTable(
		[]string{"Kind", "Pattern", "Parameters (defaults)", "Description"},
		patternRows(),
	))

	printNewline()
	fmt.Println(StyleTitle.Render("Multi-mode recipe"))
	printDetail("3x3 sub-pattern grid used by linepairs with mode = \"multi\"")
	fmt.Println(renderTable(
		[]string{"#", "Spacing", "Angle"},
		multiRecipeRows(),
	))
}

// patternRows builds one table row per pattern kind.
func patternRows() [][]string {
	rows := [][]string{}
	for _, k := range pattern.Kinds() {
		var params, desc string
		switch k {
		case pattern.KindDots:
			params = fmt.Sprintf("spacing_um=%g, diameter_um=%g",
				platefile.DefaultDotSpacingUM, platefile.DefaultDotDiameterUM)
			desc = "uniform dot grid for resolution measurement"
		case pattern.KindChecker:
			params = fmt.Sprintf("grid_mm=%g", platefile.DefaultCheckerGridMM)
			desc = "filled checkerboard for distortion mapping"
		case pattern.KindLinePairs:
			params = fmt.Sprintf("mode=%s, spacing_um=%g, width_um=%g, orientation=%s",
				pattern.LineModeSingle, platefile.DefaultLineSpacingUM,
				platefile.DefaultLineWidthUM, pattern.OrientationVertical)
			desc = "alternating line/gap gratings"
		case pattern.KindMarker:
			params = fmt.Sprintf("kind=%s, size_mm=%g",
				pattern.MarkerCrosshair, platefile.DefaultMarkerSizeMM)
			desc = "alignment and scale references"
		}
		rows = append(rows, []string{string(k), k.DisplayName(), params, desc})
	}
	return rows
}

// multiRecipeRows builds one table row per multi-mode sub-pattern.
func multiRecipeRows() [][]string {
	rows := [][]string{}
	for i, e := range pattern.MultiCatalog() {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			geom.FormatLength(geom.FromMicrons(e.SpacingUM)),
			fmt.Sprintf("%d°", e.AngleDeg),
		})
	}
	return rows
}
