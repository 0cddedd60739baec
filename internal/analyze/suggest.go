package analyze

import (
	"fmt"
	"sort"
)

// Priority orders suggestions for the consumer.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func priorityRank(p Priority) int {
	switch p {
	case PriorityHigh:
		return 2
	case PriorityMedium:
		return 1
	default:
		return 0
	}
}

// Suggestion is one ranked remediation hint.
type Suggestion struct {
	Type        string   `json:"type"`
	Priority    Priority `json:"priority"`
	Description string   `json:"description"`
	Hint        string   `json:"hint"`
	Area        string   `json:"area"`
}

// buildSuggestions merges the annotated data into a ranked suggestion list.
// The rules fire independently and are not mutually exclusive; duplicate
// categories across rules are expected and never deduplicated.
func buildSuggestions(matchPercentage float64, regions []Region, colorDifferences []ColorDifference) []Suggestion {
	var suggestions []Suggestion

	if matchPercentage < 80 {
		suggestions = append(suggestions, Suggestion{
			Type:        "layout",
			Priority:    PriorityHigh,
			Description: fmt.Sprintf("The rendering matches only %.1f%% of the reference design", matchPercentage),
			Hint:        "Review the overall structure: display mode, flex or grid settings, and the dimensions of the outermost containers",
			Area:        "entire layout",
		})
	}

	reported := 0
	for _, difference := range colorDifferences {
		if reported >= 5 {
			break
		}
		if difference.PixelCount <= 100 {
			continue
		}

		priority := PriorityMedium
		if difference.PixelCount > 1000 {
			priority = PriorityHigh
		}
		suggestions = append(suggestions, Suggestion{
			Type:     "color",
			Priority: priority,
			Description: fmt.Sprintf("Expected %s but found %s on %d pixels",
				hexColor(difference.Expected), hexColor(difference.Actual), difference.PixelCount),
			Hint: fmt.Sprintf("Change the color %s to %s where it is used",
				hexColor(difference.Actual), hexColor(difference.Expected)),
			Area: fmt.Sprintf("%d pixels", difference.PixelCount),
		})
		reported++
	}

	highSeverity := 0
	for _, region := range regions {
		if highSeverity >= 3 {
			break
		}
		if region.Severity != SeverityHigh {
			continue
		}

		suggestions = append(suggestions, regionSuggestion(region))
		highSeverity++
	}

	if matchPercentage >= 95 {
		suggestions = append(suggestions, Suggestion{
			Type:        "polish",
			Priority:    PriorityLow,
			Description: fmt.Sprintf("The rendering is %.1f%% accurate; only minor polish remains", matchPercentage),
			Hint:        "Fine-tune spacing, font rendering and subtle color shades",
			Area:        "entire layout",
		})
	} else if matchPercentage >= 90 {
		suggestions = append(suggestions, Suggestion{
			Type:        "focus",
			Priority:    PriorityMedium,
			Description: fmt.Sprintf("The rendering is %.1f%% accurate with a few problem areas", matchPercentage),
			Hint:        "Focus on the largest differing regions before polishing details",
			Area:        "major regions",
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return priorityRank(suggestions[i].Priority) > priorityRank(suggestions[j].Priority)
	})

	return suggestions
}

func regionSuggestion(region Region) Suggestion {
	area := fmt.Sprintf("%s zone, x=%d y=%d w=%d h=%d",
		region.Zone, region.Bounds.X, region.Bounds.Y, region.Bounds.Width, region.Bounds.Height)

	var description string
	var hint string
	switch region.Type {
	case DiffTypeColor:
		description = fmt.Sprintf("A %d-pixel area differs strongly in color from the reference", region.PixelCount)
		hint = "Compare background-color, color and border-color of the element in this area against the design tokens"
	case DiffTypeShape:
		description = fmt.Sprintf("A %d-pixel elongated area differs in shape from the reference", region.PixelCount)
		hint = "Check border, border-radius and overflow clipping of the element in this area"
	case DiffTypeSize:
		description = fmt.Sprintf("A %d-pixel area suggests an element with the wrong size", region.PixelCount)
		hint = "Verify width, height, box-sizing and intrinsic content size of the element in this area"
	default:
		description = fmt.Sprintf("A %d-pixel area suggests an element that moved", region.PixelCount)
		hint = "Verify margins, padding, positioning offsets and alignment of the element in this area"
	}

	return Suggestion{
		Type:        string(region.Type),
		Priority:    PriorityHigh,
		Description: description,
		Hint:        hint,
		Area:        area,
	}
}

func hexColor(c Color) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
