package report

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"visual-analyzer/internal/analyze"
)

func sampleResult() *analyze.Result {
	return &analyze.Result{
		MatchPercentage:     96.0,
		DiffPixelCount:      400,
		AntiAliasPixelCount: 12,
		TotalPixelCount:     10000,
		Regions: []analyze.Region{
			{
				Bounds:            analyze.Rectangle{X: 10, Y: 10, Width: 20, Height: 20},
				PixelCount:        400,
				AverageColorDelta: 441.67,
				Severity:          analyze.SeverityHigh,
				Type:              analyze.DiffTypeColor,
				Zone:              analyze.ZoneContent,
			},
		},
		ColorDifferences: []analyze.ColorDifference{
			{
				Expected:   analyze.Color{R: 255, G: 255, B: 255, A: 255},
				Actual:     analyze.Color{R: 0, G: 0, B: 0, A: 255},
				PixelCount: 400,
			},
		},
		Heatmap: &analyze.Heatmap{GridSize: 10, Cols: 10, Rows: 10, Values: make([]float64, 100)},
		Suggestions: []analyze.Suggestion{
			{
				Type:        "color",
				Priority:    analyze.PriorityMedium,
				Description: "Expected #ffffff but found #000000 on 400 pixels",
				Hint:        "Change the color #000000 to #ffffff where it is used",
				Area:        "400 pixels",
			},
		},
		Config:    analyze.DefaultConfig(),
		Timestamp: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestJSONRenderer_Render(t *testing.T) {
	renderer := NewJSONRenderer()

	data, err := renderer.Render(sampleResult())
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Rendered JSON is invalid: %v", err)
	}

	if decoded["matchPercentage"] != 96.0 {
		t.Errorf("Expected matchPercentage 96.0, got %v", decoded["matchPercentage"])
	}
	if _, ok := decoded["regions"]; !ok {
		t.Error("Expected a regions field")
	}
	if _, ok := decoded["heatmap"]; !ok {
		t.Error("Expected a heatmap field")
	}
	if renderer.Extension() != "json" {
		t.Errorf("Unexpected extension %q", renderer.Extension())
	}
}

func TestMarkdownRenderer_Render(t *testing.T) {
	renderer := NewMarkdownRenderer()

	data, err := renderer.Render(sampleResult())
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	markdown := string(data)

	for _, want := range []string{
		"# Visual Analysis Report",
		"## Summary",
		"96.00%",
		"## Regions",
		"(10,10) 20x20",
		"## Color Differences",
		"#ffffff",
		"## Suggestions",
		"[medium] color",
	} {
		if !strings.Contains(markdown, want) {
			t.Errorf("Expected rendered markdown to contain %q", want)
		}
	}
	if renderer.Extension() != "md" {
		t.Errorf("Unexpected extension %q", renderer.Extension())
	}
}

func TestMarkdownRenderer_OmitsEmptySections(t *testing.T) {
	result := sampleResult()
	result.Regions = nil
	result.ColorDifferences = nil
	result.Suggestions = nil

	data, err := NewMarkdownRenderer().Render(result)
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	markdown := string(data)

	for _, section := range []string{"## Regions", "## Color Differences", "## Suggestions"} {
		if strings.Contains(markdown, section) {
			t.Errorf("Expected %q to be omitted for an empty result", section)
		}
	}
}
