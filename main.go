package main

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"visual-analyzer/internal/analyze"
	"visual-analyzer/internal/fetch"
	"visual-analyzer/internal/report"
	"visual-analyzer/internal/storage"
)

type AnalyzeOutput struct {
	ReportPath      string  `json:"reportPath"`
	MatchPercentage float64 `json:"matchPercentage"`
	DiffPixelCount  int     `json:"diffPixelCount"`
	RegionCount     int     `json:"regionCount"`
	SuggestionCount int     `json:"suggestionCount"`
}

func envOrDefaultValue[T any](key string, defaultValue T) T {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}

	switch any(defaultValue).(type) {
	case string:
		return any(value).(T)
	case int:
		if intValue, err := strconv.Atoi(value); err == nil {
			return any(intValue).(T)
		}
	case float64:
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return any(floatValue).(T)
		}
	case bool:
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return any(boolValue).(T)
		}
	case time.Duration:
		if durationValue, err := time.ParseDuration(value); err == nil {
			return any(durationValue).(T)
		}
	}

	return defaultValue
}

func main() {
	var directory string
	var format string
	var storageBackend string
	var s3Bucket string
	var threshold float64
	var includeAntiAliasing bool
	var alpha float64
	var gridSize int
	var minRegionSize int
	var maxRegions int
	flag.StringVar(&directory, "directory", envOrDefaultValue("DIRECTORY", "/tmp"), "Output directory for reports")
	flag.StringVar(&format, "format", envOrDefaultValue("FORMAT", "json"), "Report format (json or markdown)")
	flag.StringVar(&storageBackend, "storage-backend", envOrDefaultValue("STORAGE_BACKEND", "file"), "Storage backend (file or s3)")
	flag.StringVar(&s3Bucket, "s3-bucket", envOrDefaultValue("S3_BUCKET", ""), "S3 bucket for the s3 backend")
	flag.Float64Var(&threshold, "threshold", envOrDefaultValue("THRESHOLD", 0.1), "Per-channel tolerance in [0,1]")
	flag.BoolVar(&includeAntiAliasing, "include-anti-aliasing", envOrDefaultValue("INCLUDE_ANTI_ALIASING", false), "Count antialiased pixels as significant")
	flag.Float64Var(&alpha, "alpha", envOrDefaultValue("ALPHA", 0.1), "Antialiasing tolerance weighting")
	flag.IntVar(&gridSize, "grid-size", envOrDefaultValue("GRID_SIZE", 10), "Heatmap cell size in pixels")
	flag.IntVar(&minRegionSize, "min-region-size", envOrDefaultValue("MIN_REGION_SIZE", 10), "Minimum region size in pixels")
	flag.IntVar(&maxRegions, "max-regions", envOrDefaultValue("MAX_REGIONS", 50), "Maximum regions in the report")

	flag.Parse()

	args := flag.Args()
	if len(args) < 2 {
		log.Fatalf("expected, actual not specified")
	}

	ctx := context.Background()

	var s storage.Storage
	var err error
	switch storageBackend {
	case "file":
		s, err = storage.NewFileStorage(ctx, storage.FileConfig{Directory: directory})
	case "s3":
		s, err = storage.NewS3Storage(ctx, storage.S3Config{Bucket: s3Bucket})
	default:
		log.Fatalf("Unknown storage backend: %s", storageBackend)
	}
	if err != nil {
		log.Fatalf("Failed to create storage backend: %v", err)
	}

	var renderer report.Renderer
	switch format {
	case "json":
		renderer = report.NewJSONRenderer()
	case "markdown":
		renderer = report.NewMarkdownRenderer()
	default:
		log.Fatalf("Unknown report format: %s", format)
	}

	expectedRef := args[0]
	actualRef := args[1]

	loader := fetch.NewLoader()
	expected, err := loader.Load(ctx, expectedRef)
	if err != nil {
		log.Fatalf("Failed to load expected rendering: %v", err)
	}
	actual, err := loader.Load(ctx, actualRef)
	if err != nil {
		log.Fatalf("Failed to load actual rendering: %v", err)
	}

	config := analyze.DefaultConfig()
	config.Threshold = threshold
	config.IncludeAntiAliasing = includeAntiAliasing
	config.Alpha = alpha
	config.GridSize = gridSize
	config.MinRegionSize = minRegionSize
	config.MaxReportedRegions = maxRegions

	result, err := analyze.Analyze(expected, actual, config)
	if err != nil {
		log.Fatalf("Analysis failed: %v", err)
	}

	rendered, err := renderer.Render(result)
	if err != nil {
		log.Fatalf("Failed to render report: %v", err)
	}

	h := sha256.New()
	h.Write([]byte(expectedRef + actualRef))
	hash := fmt.Sprintf("%x", h.Sum(nil))[:16]
	timestamp := time.Now().Format("20060102150405")

	key := fmt.Sprintf("VisualAnalysis/%s/%s.%s", hash, timestamp, renderer.Extension())
	reportPath, err := s.Put(ctx, key, rendered)
	if err != nil {
		log.Fatalf("Failed to save report: %v", err)
	}

	if err := json.NewEncoder(os.Stdout).Encode(AnalyzeOutput{
		ReportPath:      reportPath,
		MatchPercentage: result.MatchPercentage,
		DiffPixelCount:  result.DiffPixelCount,
		RegionCount:     len(result.Regions),
		SuggestionCount: len(result.Suggestions),
	}); err != nil {
		log.Fatalf("Failed to encode result: %v", err)
	}
}
