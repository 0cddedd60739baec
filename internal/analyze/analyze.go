// Package analyze compares two equally-sized RGBA renderings and produces a
// structured diagnosis of how and where they diverge: a per-pixel diff mask,
// connected regions of differing pixels with severity and semantic type,
// spatial zones, a coarse heatmap, global color shifts and a ranked list of
// remediation suggestions.
//
// The engine is pure and synchronous: it performs no I/O, keeps no state
// between calls, and either returns a complete result or fails atomically.
// Callers that need to process many image pairs concurrently run independent
// invocations.
package analyze

import (
	"sort"
	"time"
)

// Result is the complete outcome of one analysis. Consumers read it without
// mutating it.
type Result struct {
	MatchPercentage     float64           `json:"matchPercentage"`
	DiffPixelCount      int               `json:"diffPixelCount"`
	AntiAliasPixelCount int               `json:"antiAliasPixelCount"`
	TotalPixelCount     int               `json:"totalPixelCount"`
	Regions             []Region          `json:"regions"`
	ColorDifferences    []ColorDifference `json:"colorDifferences"`
	Heatmap             *Heatmap          `json:"heatmap"`
	Suggestions         []Suggestion      `json:"suggestions"`
	Config              Config            `json:"config"`
	Timestamp           time.Time         `json:"timestamp"`
}

// Analyzer runs the visual-diff pipeline with a fixed configuration.
type Analyzer struct {
	config Config
}

// NewAnalyzer validates the configuration before any pixel work can begin.
func NewAnalyzer(config Config) (*Analyzer, error) {
	if err := config.validate(); err != nil {
		return nil, err
	}
	return &Analyzer{config: config}, nil
}

// Analyze is the convenience form of NewAnalyzer followed by Analyzer.Analyze.
func Analyze(expected *PixelBuffer, actual *PixelBuffer, config Config) (*Result, error) {
	analyzer, err := NewAnalyzer(config)
	if err != nil {
		return nil, err
	}
	return analyzer.Analyze(expected, actual)
}

// Analyze compares the expected rendering against the actual one. The buffers
// must share identical dimensions; the engine fails fast rather than
// resizing.
func (a *Analyzer) Analyze(expected *PixelBuffer, actual *PixelBuffer) (*Result, error) {
	if err := expected.validate("expected"); err != nil {
		return nil, err
	}
	if err := actual.validate("actual"); err != nil {
		return nil, err
	}
	if expected.Width != actual.Width || expected.Height != actual.Height {
		return nil, &DimensionMismatchError{
			ExpectedWidth:  expected.Width,
			ExpectedHeight: expected.Height,
			ActualWidth:    actual.Width,
			ActualHeight:   actual.Height,
		}
	}

	mask, significantCount, antiAliasCount := newComparator(a.config).compare(expected, actual)

	totalPixelCount := expected.Width * expected.Height
	matchPercentage := float64(totalPixelCount-significantCount) / float64(totalPixelCount) * 100

	regions := newClusterer(a.config.MinRegionSize).extract(mask)

	classifier := newClassifier(a.config.Rules)
	tagger := newSpatialTagger(expected.Width, expected.Height, a.config.Rules)
	for i := range regions {
		classifier.classify(&regions[i], expected, actual)
		regions[i].Zone = tagger.zoneOf(&regions[i])
	}

	// Rank by severity then pixel count; the suggestion engine consumes the
	// head of this ordering.
	sort.SliceStable(regions, func(i, j int) bool {
		if severityRank(regions[i].Severity) != severityRank(regions[j].Severity) {
			return severityRank(regions[i].Severity) > severityRank(regions[j].Severity)
		}
		return regions[i].PixelCount > regions[j].PixelCount
	})

	colorDifferences := aggregateColorDifferences(mask, expected, actual)
	heatmap := buildHeatmap(mask, a.config.GridSize)
	suggestions := buildSuggestions(matchPercentage, regions, colorDifferences)

	if len(regions) > a.config.MaxReportedRegions {
		regions = regions[:a.config.MaxReportedRegions]
	}

	return &Result{
		MatchPercentage:     matchPercentage,
		DiffPixelCount:      significantCount,
		AntiAliasPixelCount: antiAliasCount,
		TotalPixelCount:     totalPixelCount,
		Regions:             regions,
		ColorDifferences:    colorDifferences,
		Heatmap:             heatmap,
		Suggestions:         suggestions,
		Config:              a.config,
		Timestamp:           time.Now().UTC(),
	}, nil
}
