package analyze

// Heatmap is a coarse density grid of significant differences, normalized to
// [0,1] by the single maximum cell count. Computed independently of region
// extraction, so cells inside discarded sub-minimum regions still show up.
type Heatmap struct {
	GridSize int       `json:"gridSize"`
	Cols     int       `json:"cols"`
	Rows     int       `json:"rows"`
	Values   []float64 `json:"values"`
}

// At returns the normalized density of grid cell (cx,cy).
func (h *Heatmap) At(cx int, cy int) float64 {
	return h.Values[cy*h.Cols+cx]
}

func buildHeatmap(mask *DiffMask, gridSize int) *Heatmap {
	cols := (mask.Width + gridSize - 1) / gridSize
	rows := (mask.Height + gridSize - 1) / gridSize

	counts := make([]int, cols*rows)
	maxCount := 0
	for y := 0; y < mask.Height; y++ {
		for x := 0; x < mask.Width; x++ {
			if mask.States[y*mask.Width+x] != PixelSignificant {
				continue
			}
			cell := (y/gridSize)*cols + x/gridSize
			counts[cell]++
			if counts[cell] > maxCount {
				maxCount = counts[cell]
			}
		}
	}

	values := make([]float64, cols*rows)
	if maxCount > 0 {
		for i, count := range counts {
			values[i] = float64(count) / float64(maxCount)
		}
	}

	return &Heatmap{
		GridSize: gridSize,
		Cols:     cols,
		Rows:     rows,
		Values:   values,
	}
}
