package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/plateforge/plateforge/pkg/plan"
	"github.com/plateforge/plateforge/pkg/plate"
)

func TestFormatRelativeTime(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{"seconds ago", now.Add(-30 * time.Second), "just now"},
		{"minutes ago", now.Add(-5 * time.Minute), "5m ago"},
		{"hours ago", now.Add(-3 * time.Hour), "3h ago"},
		{"days ago", now.Add(-2 * 24 * time.Hour), "2d ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatRelativeTime(tt.t); got != tt.want {
				t.Errorf("formatRelativeTime() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatRelativeTimeOld(t *testing.T) {
	old := time.Date(2023, time.March, 14, 12, 0, 0, 0, time.UTC)
	want := "Mar 14, 2023"
	if got := formatRelativeTime(old); got != want {
		t.Errorf("formatRelativeTime() = %q, want %q", got, want)
	}
}

func TestReducedMarker(t *testing.T) {
	if got := reducedMarker(false, 2.5); got != "" {
		t.Errorf("reducedMarker(false) = %q, want empty string", got)
	}
	if got := reducedMarker(true, 2.5); got != "×2.5" {
		t.Errorf("reducedMarker(true, 2.5) = %q, want %q", got, "×2.5")
	}
}

func TestSectionTable(t *testing.T) {
	pl, err := plan.Build(plate.Default(), plan.DefaultConfigs(), 0)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	out := sectionTable(pl)
	for _, want := range []string{"top-left", "top-right", "bottom-left", "bottom-right"} {
		if !strings.Contains(out, want) {
			t.Errorf("sectionTable() missing section name %q", want)
		}
	}
}

func TestSummaryTable(t *testing.T) {
	pl, err := plan.Build(plate.Default(), plan.DefaultConfigs(), 0)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	out := summaryTable(pl.Summarize())
	for _, want := range []string{"top-left", "dots", "checker"} {
		if !strings.Contains(out, want) {
			t.Errorf("summaryTable() missing %q", want)
		}
	}
}
