package report

import (
	"fmt"
	"strings"

	"visual-analyzer/internal/analyze"
)

type markdownRenderer struct{}

// NewMarkdownRenderer renders a human-readable summary with regions, color
// shifts and suggestions.
func NewMarkdownRenderer() Renderer {
	return &markdownRenderer{}
}

func (r *markdownRenderer) Render(result *analyze.Result) ([]byte, error) {
	var b strings.Builder

	b.WriteString("# Visual Analysis Report\n\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", result.Timestamp.Format("2006-01-02 15:04:05 UTC"))

	b.WriteString("## Summary\n\n")
	fmt.Fprintf(&b, "| Metric | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Match percentage | %.2f%% |\n", result.MatchPercentage)
	fmt.Fprintf(&b, "| Differing pixels | %d / %d |\n", result.DiffPixelCount, result.TotalPixelCount)
	fmt.Fprintf(&b, "| Anti-aliased pixels | %d |\n", result.AntiAliasPixelCount)
	fmt.Fprintf(&b, "| Regions | %d |\n\n", len(result.Regions))

	if len(result.Regions) > 0 {
		b.WriteString("## Regions\n\n")
		b.WriteString("| # | Bounds | Pixels | Severity | Type | Zone | Avg color delta |\n")
		b.WriteString("|---|---|---|---|---|---|---|\n")
		for i, region := range result.Regions {
			fmt.Fprintf(&b, "| %d | (%d,%d) %dx%d | %d | %s | %s | %s | %.1f |\n",
				i+1,
				region.Bounds.X, region.Bounds.Y, region.Bounds.Width, region.Bounds.Height,
				region.PixelCount, region.Severity, region.Type, region.Zone, region.AverageColorDelta)
		}
		b.WriteString("\n")
	}

	if len(result.ColorDifferences) > 0 {
		b.WriteString("## Color Differences\n\n")
		b.WriteString("| Expected | Actual | Pixels |\n|---|---|---|\n")
		for _, difference := range result.ColorDifferences {
			fmt.Fprintf(&b, "| #%02x%02x%02x | #%02x%02x%02x | %d |\n",
				difference.Expected.R, difference.Expected.G, difference.Expected.B,
				difference.Actual.R, difference.Actual.G, difference.Actual.B,
				difference.PixelCount)
		}
		b.WriteString("\n")
	}

	if len(result.Suggestions) > 0 {
		b.WriteString("## Suggestions\n\n")
		for _, suggestion := range result.Suggestions {
			fmt.Fprintf(&b, "- **[%s] %s** (%s): %s\n  - %s\n",
				suggestion.Priority, suggestion.Type, suggestion.Area,
				suggestion.Description, suggestion.Hint)
		}
		b.WriteString("\n")
	}

	return []byte(b.String()), nil
}

func (r *markdownRenderer) Extension() string {
	return "md"
}
