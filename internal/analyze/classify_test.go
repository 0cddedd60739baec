package analyze

import (
	"math"
	"testing"
)

// regionOver builds a region whose members are the pixels of the given
// rectangle, the way the clusterer would produce it.
func regionOver(width int, rect Rectangle) *Region {
	var pixels []int
	for y := rect.Y; y < rect.Y+rect.Height; y++ {
		for x := rect.X; x < rect.X+rect.Width; x++ {
			pixels = append(pixels, y*width+x)
		}
	}
	return &Region{
		Bounds:     rect,
		PixelCount: len(pixels),
		pixels:     pixels,
	}
}

func TestClassifier_SemanticType(t *testing.T) {
	gray := Color{R: 100, G: 100, B: 100, A: 255}
	grayShift := Color{R: 140, G: 100, B: 100, A: 255} // RGB distance 40, below ColorDeltaHigh

	classifier := newClassifier(DefaultRuleset())

	t.Run("Color", func(t *testing.T) {
		expected := solidBuffer(100, 100, white)
		actual := solidBuffer(100, 100, black)
		region := regionOver(100, Rectangle{X: 10, Y: 10, Width: 20, Height: 20})

		classifier.classify(region, expected, actual)

		if region.Type != DiffTypeColor {
			t.Errorf("Expected %q, got %q", DiffTypeColor, region.Type)
		}
		if math.Abs(region.AverageColorDelta-441.67) > 0.01 {
			t.Errorf("Expected average delta ~441.67, got %f", region.AverageColorDelta)
		}
	})

	t.Run("Shape", func(t *testing.T) {
		expected := solidBuffer(100, 100, gray)
		actual := solidBuffer(100, 100, grayShift)
		region := regionOver(100, Rectangle{X: 0, Y: 0, Width: 60, Height: 2})

		classifier.classify(region, expected, actual)

		if region.Type != DiffTypeShape {
			t.Errorf("Expected %q, got %q", DiffTypeShape, region.Type)
		}
	})

	t.Run("ShapeTall", func(t *testing.T) {
		expected := solidBuffer(100, 100, gray)
		actual := solidBuffer(100, 100, grayShift)
		region := regionOver(100, Rectangle{X: 0, Y: 0, Width: 2, Height: 60})

		classifier.classify(region, expected, actual)

		if region.Type != DiffTypeShape {
			t.Errorf("Expected %q, got %q", DiffTypeShape, region.Type)
		}
	})

	t.Run("Size", func(t *testing.T) {
		expected := solidBuffer(200, 200, gray)
		actual := solidBuffer(200, 200, grayShift)
		region := regionOver(200, Rectangle{X: 0, Y: 0, Width: 150, Height: 150})

		classifier.classify(region, expected, actual)

		if region.Type != DiffTypeSize {
			t.Errorf("Expected %q, got %q", DiffTypeSize, region.Type)
		}
	})

	t.Run("PositionFallback", func(t *testing.T) {
		expected := solidBuffer(100, 100, gray)
		actual := solidBuffer(100, 100, grayShift)
		region := regionOver(100, Rectangle{X: 40, Y: 40, Width: 4, Height: 4})

		classifier.classify(region, expected, actual)

		if region.Type != DiffTypePosition {
			t.Errorf("Expected %q, got %q", DiffTypePosition, region.Type)
		}
	})

	// Color wins over shape and size even when their conditions also hold.
	t.Run("RuleOrder", func(t *testing.T) {
		expected := solidBuffer(200, 200, white)
		actual := solidBuffer(200, 200, black)
		region := regionOver(200, Rectangle{X: 0, Y: 0, Width: 180, Height: 2})

		classifier.classify(region, expected, actual)

		if region.Type != DiffTypeColor {
			t.Errorf("Expected color to take precedence, got %q", region.Type)
		}
	})
}

func TestClassifier_Severity(t *testing.T) {
	classifier := newClassifier(DefaultRuleset())

	cases := []struct {
		name     string
		actual   Color
		rect     Rectangle
		severity Severity
	}{
		{
			name:     "HighOnBothBreakpoints",
			actual:   black,
			rect:     Rectangle{X: 0, Y: 0, Width: 20, Height: 20},
			severity: SeverityHigh,
		},
		{
			name:     "MediumOnPixelCountAlone",
			actual:   Color{R: 245, G: 255, B: 255, A: 255}, // distance 10
			rect:     Rectangle{X: 0, Y: 0, Width: 15, Height: 10},
			severity: SeverityMedium,
		},
		{
			name:     "MediumOnDeltaAlone",
			actual:   Color{R: 195, G: 255, B: 255, A: 255}, // distance 60
			rect:     Rectangle{X: 0, Y: 0, Width: 4, Height: 4},
			severity: SeverityMedium,
		},
		{
			name:     "LowOtherwise",
			actual:   Color{R: 245, G: 255, B: 255, A: 255},
			rect:     Rectangle{X: 0, Y: 0, Width: 4, Height: 4},
			severity: SeverityLow,
		},
		{
			name:     "LargeButFaintIsMedium",
			actual:   Color{R: 245, G: 255, B: 255, A: 255},
			rect:     Rectangle{X: 0, Y: 0, Width: 30, Height: 30},
			severity: SeverityMedium,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			expected := solidBuffer(100, 100, white)
			actual := solidBuffer(100, 100, tc.actual)
			region := regionOver(100, tc.rect)

			classifier.classify(region, expected, actual)

			if region.Severity != tc.severity {
				t.Errorf("Expected severity %q, got %q (pixels=%d delta=%f)",
					tc.severity, region.Severity, region.PixelCount, region.AverageColorDelta)
			}
		})
	}
}

func TestClassifier_Histograms(t *testing.T) {
	expected := solidBuffer(10, 10, white)
	actual := solidBuffer(10, 10, white)
	fillRect(actual, 0, 0, 10, 5, black)

	region := regionOver(10, Rectangle{X: 0, Y: 0, Width: 10, Height: 10})
	newClassifier(DefaultRuleset()).classify(region, expected, actual)

	if region.ExpectedHistogram[white] != 100 {
		t.Errorf("Expected 100 white samples in the expected histogram, got %d", region.ExpectedHistogram[white])
	}
	if region.ActualHistogram[black] != 50 || region.ActualHistogram[white] != 50 {
		t.Errorf("Expected a 50/50 actual histogram, got %+v", region.ActualHistogram)
	}
}
