package cli

import (
	"strings"
	"testing"

	"github.com/plateforge/plateforge/pkg/pattern"
)

func TestPatternRows(t *testing.T) {
	rows := patternRows()

	if len(rows) != len(pattern.Kinds()) {
		t.Fatalf("patternRows() returned %d rows, want %d", len(rows), len(pattern.Kinds()))
	}

	for i, k := range pattern.Kinds() {
		if rows[i][0] != string(k) {
			t.Errorf("row %d kind = %q, want %q", i, rows[i][0], k)
		}
		if rows[i][1] != k.DisplayName() {
			t.Errorf("row %d name = %q, want %q", i, rows[i][1], k.DisplayName())
		}
		if rows[i][2] == "" {
			t.Errorf("row %d has no parameters", i)
		}
	}
}

func TestPatternRowsParameters(t *testing.T) {
	rows := patternRows()

	byKind := map[string]string{}
	for _, row := range rows {
		byKind[row[0]] = row[2]
	}

	if !strings.Contains(byKind["dots"], "spacing_um=250") {
		t.Errorf("dots parameters = %q, missing default spacing", byKind["dots"])
	}
	if !strings.Contains(byKind["checker"], "grid_mm=1") {
		t.Errorf("checker parameters = %q, missing default grid", byKind["checker"])
	}
	if !strings.Contains(byKind["linepairs"], "orientation=vertical") {
		t.Errorf("linepairs parameters = %q, missing default orientation", byKind["linepairs"])
	}
	if !strings.Contains(byKind["marker"], "kind=crosshair") {
		t.Errorf("marker parameters = %q, missing default kind", byKind["marker"])
	}
}

func TestMultiRecipeRows(t *testing.T) {
	rows := multiRecipeRows()

	if len(rows) != len(pattern.MultiCatalog()) {
		t.Fatalf("multiRecipeRows() returned %d rows, want %d", len(rows), len(pattern.MultiCatalog()))
	}

	// The catalog is the fixed 3x3 grid.
	if len(rows) != 9 {
		t.Errorf("multiRecipeRows() returned %d rows, want 9", len(rows))
	}

	if rows[0][0] != "1" {
		t.Errorf("first row index = %q, want %q", rows[0][0], "1")
	}
	for i, row := range rows {
		if !strings.HasSuffix(row[2], "°") {
			t.Errorf("row %d angle = %q, want degree suffix", i, row[2])
		}
	}
}
