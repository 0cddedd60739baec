package analyze

import "sort"

// ColorDifference is one expected-to-actual color shift aggregated across all
// significant-diff pixels, independent of region membership. Colors are
// quantized to group sub-pixel noise.
type ColorDifference struct {
	Expected   Color `json:"expected"`
	Actual     Color `json:"actual"`
	PixelCount int   `json:"pixelCount"`
}

type colorPair struct {
	expected Color
	actual   Color
}

func aggregateColorDifferences(mask *DiffMask, expected *PixelBuffer, actual *PixelBuffer) []ColorDifference {
	counts := make(map[colorPair]int)
	for index, state := range mask.States {
		if state != PixelSignificant {
			continue
		}
		pair := colorPair{
			expected: quantizeColor(expected.colorAt(index)),
			actual:   quantizeColor(actual.colorAt(index)),
		}
		counts[pair]++
	}

	differences := make([]ColorDifference, 0, len(counts))
	for pair, count := range counts {
		differences = append(differences, ColorDifference{
			Expected:   pair.expected,
			Actual:     pair.actual,
			PixelCount: count,
		})
	}

	// Map iteration order is random; break count ties on the color keys so
	// repeated runs return identical lists.
	sort.Slice(differences, func(i, j int) bool {
		if differences[i].PixelCount != differences[j].PixelCount {
			return differences[i].PixelCount > differences[j].PixelCount
		}
		if differences[i].Expected != differences[j].Expected {
			return colorKey(differences[i].Expected) < colorKey(differences[j].Expected)
		}
		return colorKey(differences[i].Actual) < colorKey(differences[j].Actual)
	})

	return differences
}

func colorKey(c Color) uint32 {
	return uint32(c.R)<<24 | uint32(c.G)<<16 | uint32(c.B)<<8 | uint32(c.A)
}
