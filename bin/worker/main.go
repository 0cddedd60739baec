package main

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"
	"golang.org/x/xerrors"

	"visual-analyzer/internal/analyze"
	"visual-analyzer/internal/fetch"
	"visual-analyzer/internal/report"
	"visual-analyzer/internal/retry"
	"visual-analyzer/internal/storage"
)

type PairResult struct {
	Name            string  `json:"name"`
	ReportPath      string  `json:"reportPath"`
	MatchPercentage float64 `json:"matchPercentage"`
	DiffPixelCount  int     `json:"diffPixelCount"`
	RegionCount     int     `json:"regionCount"`
}

type Worker struct {
	Loader         *fetch.Loader
	Storage        storage.Storage
	Renderer       report.Renderer
	Config         analyze.Config
	PairsDirectory string
	CallbackURL    string
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
	_ = godotenv.Load()

	var pairsDirectory string
	var schedule string
	var once bool
	var format string
	var storageBackend string
	var directory string
	var s3Bucket string
	var callbackURL string
	var threshold float64
	flag.StringVar(&pairsDirectory, "pairs-directory", envOrDefaultValue("PAIRS_DIRECTORY", "/var/lib/visual-analyzer/pairs"), "Directory holding <name>.expected.png and <name>.actual.png pairs")
	flag.StringVar(&schedule, "schedule", envOrDefaultValue("SCHEDULE", "*/5 * * * *"), "Cron schedule for sweeps")
	flag.BoolVar(&once, "once", envOrDefaultValue("ONCE", false), "Run a single sweep and exit")
	flag.StringVar(&format, "format", envOrDefaultValue("FORMAT", "json"), "Report format (json or markdown)")
	flag.StringVar(&storageBackend, "storage-backend", envOrDefaultValue("STORAGE_BACKEND", "file"), "Storage backend (file or s3)")
	flag.StringVar(&directory, "directory", envOrDefaultValue("DIRECTORY", "/tmp"), "Output directory for the file backend")
	flag.StringVar(&s3Bucket, "s3-bucket", envOrDefaultValue("S3_BUCKET", ""), "S3 bucket for the s3 backend")
	flag.StringVar(&callbackURL, "callback-url", envOrDefaultValue("CALLBACK_URL", ""), "Callback URL to send pair results to")
	flag.Float64Var(&threshold, "threshold", envOrDefaultValue("THRESHOLD", 0.1), "Per-channel tolerance in [0,1]")

	flag.Parse()

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

	config := analyze.DefaultConfig()
	config.Threshold = threshold

	worker := &Worker{
		Loader:         fetch.NewLoader(),
		Storage:        s,
		Renderer:       renderer,
		Config:         config,
		PairsDirectory: pairsDirectory,
		CallbackURL:    callbackURL,
	}

	if once {
		if err := worker.sweep(ctx); err != nil {
			log.Fatalf("Sweep failed: %v", err)
		}
		return
	}

	c := cron.New()
	if _, err := c.AddFunc(schedule, func() {
		if err := worker.sweep(ctx); err != nil {
			log.Printf("Sweep failed: %v", err)
		}
	}); err != nil {
		log.Fatalf("Invalid schedule %q: %v", schedule, err)
	}
	c.Start()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	<-c.Stop().Done()
}

func (w *Worker) sweep(ctx context.Context) error {
	expectedPaths, err := filepath.Glob(filepath.Join(w.PairsDirectory, "*.expected.png"))
	if err != nil {
		return xerrors.Errorf("failed to list pairs directory: %w", err)
	}

	eg, ctx := errgroup.WithContext(ctx)
	for _, expectedPath := range expectedPaths {
		name := strings.TrimSuffix(filepath.Base(expectedPath), ".expected.png")
		actualPath := filepath.Join(w.PairsDirectory, name+".actual.png")
		if _, err := os.Stat(actualPath); err != nil {
			log.Printf("Skipping %s: missing actual rendering", name)
			continue
		}

		eg.Go(func() error {
			result, err := w.processPair(ctx, name, expectedPath, actualPath)
			if err != nil {
				return xerrors.Errorf("failed to process pair %s: %w", name, err)
			}
			if w.CallbackURL != "" {
				if err := w.callback(ctx, result); err != nil {
					return xerrors.Errorf("failed to send callback for pair %s: %w", name, err)
				}
			}
			log.Printf("Analyzed %s: %.2f%% match, %d regions, report at %s", name, result.MatchPercentage, result.RegionCount, result.ReportPath)
			return nil
		})
	}

	return eg.Wait()
}

func (w *Worker) processPair(ctx context.Context, name string, expectedPath string, actualPath string) (*PairResult, error) {
	expected, err := w.Loader.Load(ctx, expectedPath)
	if err != nil {
		return nil, xerrors.Errorf("failed to load expected rendering: %w", err)
	}
	actual, err := w.Loader.Load(ctx, actualPath)
	if err != nil {
		return nil, xerrors.Errorf("failed to load actual rendering: %w", err)
	}

	result, err := analyze.Analyze(expected, actual, w.Config)
	if err != nil {
		return nil, xerrors.Errorf("failed to analyze pair: %w", err)
	}

	rendered, err := w.Renderer.Render(result)
	if err != nil {
		return nil, xerrors.Errorf("failed to render report: %w", err)
	}

	timestamp := time.Now().Format("20060102150405")
	h := sha256.New()
	h.Write([]byte(name))
	hash := fmt.Sprintf("%x", h.Sum(nil))[:16]
	key := fmt.Sprintf("VisualAnalysis/%s/%s.%s", hash, timestamp, w.Renderer.Extension())

	reportPath, err := w.Storage.Put(ctx, key, rendered)
	if err != nil {
		return nil, xerrors.Errorf("failed to save report: %w", err)
	}

	return &PairResult{
		Name:            name,
		ReportPath:      reportPath,
		MatchPercentage: result.MatchPercentage,
		DiffPixelCount:  result.DiffPixelCount,
		RegionCount:     len(result.Regions),
	}, nil
}

func (w *Worker) callback(ctx context.Context, result *PairResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return xerrors.Errorf("failed to marshal result: %w", err)
	}

	request, err := http.NewRequestWithContext(ctx, "PATCH", w.CallbackURL, bytes.NewReader(data))
	if err != nil {
		return xerrors.Errorf("failed to create request: %w", err)
	}
	request.Header.Set("Content-Type", "application/json")

	client := &http.Client{
		Timeout: 10 * time.Second,
		Transport: &retry.Transport{
			Base:    http.DefaultTransport,
			Backoff: retry.NewExponential(10*time.Millisecond, 1*time.Second, 3, nil),
			Policy:  retry.NewDefaultPolicy(),
		},
	}

	response, err := client.Do(request)
	if err != nil {
		return xerrors.Errorf("failed to send request: %w", err)
	}
	defer response.Body.Close()

	return nil
}
