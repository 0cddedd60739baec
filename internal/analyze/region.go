package analyze

// Rectangle is a bounding box in pixel coordinates.
type Rectangle struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Severity grades how strongly a region diverges from the reference.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

func severityRank(s Severity) int {
	switch s {
	case SeverityHigh:
		return 2
	case SeverityMedium:
		return 1
	default:
		return 0
	}
}

// DiffType is the semantic kind of divergence a region represents.
type DiffType string

const (
	DiffTypeColor    DiffType = "color"
	DiffTypeShape    DiffType = "shape"
	DiffTypePosition DiffType = "position"
	DiffTypeSize     DiffType = "size"
)

// Zone is the coarse layout area a region falls into.
type Zone string

const (
	ZoneBorder  Zone = "border"
	ZoneText    Zone = "text"
	ZoneContent Zone = "content"
)

// Region is a connected component of significant-diff pixels together with
// its classification.
type Region struct {
	Bounds            Rectangle     `json:"bounds"`
	PixelCount        int           `json:"pixelCount"`
	ExpectedHistogram map[Color]int `json:"-"`
	ActualHistogram   map[Color]int `json:"-"`
	AverageColorDelta float64       `json:"averageColorDelta"`
	Severity          Severity      `json:"severity"`
	Type              DiffType      `json:"type"`
	Zone              Zone          `json:"zone"`

	// pixels holds the member indices into the mask, in scan order.
	pixels []int
}
