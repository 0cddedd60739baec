package analyze

// Config controls a single analysis run.
type Config struct {
	// Threshold is the per-channel tolerance in [0,1] below which a pixel
	// pair is considered unchanged.
	Threshold float64 `json:"threshold"`
	// IncludeAntiAliasing counts pixels attributed to sub-pixel antialiasing
	// as significant differences instead of tracking them separately.
	IncludeAntiAliasing bool `json:"includeAntiAliasing"`
	// Alpha widens the tolerance used by the antialiasing neighbor check for
	// near-threshold pixels.
	Alpha float64 `json:"alpha"`
	// GridSize is the heatmap cell size in pixels.
	GridSize int `json:"gridSize"`
	// MinRegionSize drops connected components smaller than this many pixels
	// as noise.
	MinRegionSize int `json:"minRegionSize"`
	// MaxReportedRegions caps the region list in the result.
	MaxReportedRegions int `json:"maxReportedRegions"`
	Rules              Ruleset `json:"rules"`
}

// Ruleset holds the classification breakpoints and spatial-zone ratios. They
// are configuration rather than constants so the rule tables stay tunable and
// testable; the exact values are calibrated heuristics, not semantics.
type Ruleset struct {
	// ColorDeltaHigh is the average RGB distance (0..~441) above which a
	// region is classified as a color change.
	ColorDeltaHigh float64 `json:"colorDeltaHigh"`
	// ExtremeAspectRatio classifies a region as a shape change when its
	// bounding box is wider than ratio:1 or taller than 1:ratio.
	ExtremeAspectRatio float64 `json:"extremeAspectRatio"`
	// SizeAreaThreshold classifies a region as a size change when its
	// bounding-box area exceeds this many pixels.
	SizeAreaThreshold int `json:"sizeAreaThreshold"`

	HighSeverityPixels   int     `json:"highSeverityPixels"`
	HighSeverityDelta    float64 `json:"highSeverityDelta"`
	MediumSeverityPixels int     `json:"mediumSeverityPixels"`
	MediumSeverityDelta  float64 `json:"mediumSeverityDelta"`

	// BorderMarginRatio is the border-band width as a fraction of
	// min(width, height).
	BorderMarginRatio float64 `json:"borderMarginRatio"`
	// TextBandWidthRatio and TextBandHeightRatio describe the centered band
	// assumed to hold text.
	TextBandWidthRatio  float64 `json:"textBandWidthRatio"`
	TextBandHeightRatio float64 `json:"textBandHeightRatio"`
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		Threshold:           0.1,
		IncludeAntiAliasing: false,
		Alpha:               0.1,
		GridSize:            10,
		MinRegionSize:       10,
		MaxReportedRegions:  50,
		Rules:               DefaultRuleset(),
	}
}

// DefaultRuleset returns the default classification breakpoints.
func DefaultRuleset() Ruleset {
	return Ruleset{
		ColorDeltaHigh:       100,
		ExtremeAspectRatio:   5,
		SizeAreaThreshold:    10000,
		HighSeverityPixels:   300,
		HighSeverityDelta:    100,
		MediumSeverityPixels: 100,
		MediumSeverityDelta:  50,
		BorderMarginRatio:    0.05,
		TextBandWidthRatio:   0.6,
		TextBandHeightRatio:  0.3,
	}
}

func (c Config) validate() error {
	if c.Threshold < 0 || c.Threshold > 1 {
		return &InvalidConfigurationError{Field: "threshold", Reason: "must be in [0,1]"}
	}
	if c.Alpha < 0 {
		return &InvalidConfigurationError{Field: "alpha", Reason: "must be >= 0"}
	}
	if c.GridSize < 1 {
		return &InvalidConfigurationError{Field: "gridSize", Reason: "must be >= 1"}
	}
	if c.MinRegionSize < 0 {
		return &InvalidConfigurationError{Field: "minRegionSize", Reason: "must be >= 0"}
	}
	if c.MaxReportedRegions < 0 {
		return &InvalidConfigurationError{Field: "maxReportedRegions", Reason: "must be >= 0"}
	}
	if c.Rules.ExtremeAspectRatio <= 1 {
		return &InvalidConfigurationError{Field: "rules.extremeAspectRatio", Reason: "must be > 1"}
	}
	if c.Rules.BorderMarginRatio < 0 || c.Rules.BorderMarginRatio >= 0.5 {
		return &InvalidConfigurationError{Field: "rules.borderMarginRatio", Reason: "must be in [0,0.5)"}
	}
	if c.Rules.TextBandWidthRatio <= 0 || c.Rules.TextBandWidthRatio > 1 {
		return &InvalidConfigurationError{Field: "rules.textBandWidthRatio", Reason: "must be in (0,1]"}
	}
	if c.Rules.TextBandHeightRatio <= 0 || c.Rules.TextBandHeightRatio > 1 {
		return &InvalidConfigurationError{Field: "rules.textBandHeightRatio", Reason: "must be in (0,1]"}
	}
	return nil
}
