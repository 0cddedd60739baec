package analyze

// PixelState classifies the comparison outcome of a single pixel pair.
type PixelState uint8

const (
	// PixelUnchanged means the pair is within the configured tolerance.
	PixelUnchanged PixelState = iota
	// PixelAntiAlias means the pair differs but is attributed to sub-pixel
	// antialiasing. Tracked separately, excluded from the significant count
	// unless IncludeAntiAliasing is set.
	PixelAntiAlias
	// PixelSignificant means the pair differs structurally.
	PixelSignificant
)

// DiffMask is the per-pixel classification grid. Same dimensions as the
// compared buffers.
type DiffMask struct {
	Width  int
	Height int
	States []PixelState
}

func newDiffMask(width int, height int) *DiffMask {
	return &DiffMask{
		Width:  width,
		Height: height,
		States: make([]PixelState, width*height),
	}
}

// At returns the state at (x,y).
func (m *DiffMask) At(x int, y int) PixelState {
	return m.States[y*m.Width+x]
}
