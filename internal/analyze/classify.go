package analyze

import "math"

type classifier struct {
	rules Ruleset
}

func newClassifier(rules Ruleset) *classifier {
	return &classifier{rules: rules}
}

// classify samples every member pixel of the region from both buffers,
// accumulates per-buffer color histograms, and derives the average color
// delta, the semantic type and the severity.
func (c *classifier) classify(region *Region, expected *PixelBuffer, actual *PixelBuffer) {
	region.ExpectedHistogram = make(map[Color]int)
	region.ActualHistogram = make(map[Color]int)

	var totalDistance float64
	for _, index := range region.pixels {
		expectedColor := expected.colorAt(index)
		actualColor := actual.colorAt(index)

		region.ExpectedHistogram[quantizeColor(expectedColor)]++
		region.ActualHistogram[quantizeColor(actualColor)]++

		totalDistance += colorDistance(expectedColor, actualColor)
	}

	if len(region.pixels) > 0 {
		region.AverageColorDelta = totalDistance / float64(len(region.pixels))
	}

	region.Type = c.semanticType(region)
	region.Severity = c.severity(region)
}

// semanticType applies the fixed rule order color > shape > size > position.
// The ordering feeds suggestion prioritization and must not change.
func (c *classifier) semanticType(region *Region) DiffType {
	if region.AverageColorDelta > c.rules.ColorDeltaHigh {
		return DiffTypeColor
	}

	aspect := float64(region.Bounds.Width) / float64(region.Bounds.Height)
	if aspect > c.rules.ExtremeAspectRatio || aspect < 1/c.rules.ExtremeAspectRatio {
		return DiffTypeShape
	}

	if region.Bounds.Width*region.Bounds.Height > c.rules.SizeAreaThreshold {
		return DiffTypeSize
	}

	return DiffTypePosition
}

func (c *classifier) severity(region *Region) Severity {
	if region.PixelCount >= c.rules.HighSeverityPixels && region.AverageColorDelta >= c.rules.HighSeverityDelta {
		return SeverityHigh
	}
	if region.PixelCount >= c.rules.MediumSeverityPixels || region.AverageColorDelta >= c.rules.MediumSeverityDelta {
		return SeverityMedium
	}
	return SeverityLow
}

// colorDistance is the Euclidean distance in RGB space, range [0, ~441.67].
func colorDistance(a Color, b Color) float64 {
	dr := float64(int(a.R) - int(b.R))
	dg := float64(int(a.G) - int(b.G))
	db := float64(int(a.B) - int(b.B))
	return math.Sqrt(dr*dr + dg*dg + db*db)
}

// quantizeColor buckets each channel into 16 levels so histogram and
// color-difference keys group sub-pixel noise together. The mapping keeps 0
// and 255 exact.
func quantizeColor(c Color) Color {
	return Color{
		R: (c.R >> 4) * 17,
		G: (c.G >> 4) * 17,
		B: (c.B >> 4) * 17,
		A: (c.A >> 4) * 17,
	}
}
