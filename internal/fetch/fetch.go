// Package fetch loads renderings from local paths or HTTP URLs and decodes
// them into pixel buffers for the analysis engine.
package fetch

import (
	"context"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/xerrors"

	"visual-analyzer/internal/analyze"
	"visual-analyzer/internal/retry"
)

type Loader struct {
	client *http.Client
}

// NewLoader builds a loader whose HTTP client retries transient failures.
func NewLoader() *Loader {
	return &Loader{
		client: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &retry.Transport{
				Backoff: retry.NewExponential(100*time.Millisecond, 2*time.Second, 3, nil),
				Policy:  retry.NewDefaultPolicy(),
			},
		},
	}
}

// Load reads the rendering at ref, which is either a local file path or an
// http(s) URL, and converts it into a pixel buffer.
func (l *Loader) Load(ctx context.Context, ref string) (*analyze.PixelBuffer, error) {
	img, err := l.loadImage(ctx, ref)
	if err != nil {
		return nil, err
	}
	return analyze.FromImage(img), nil
}

func (l *Loader) loadImage(ctx context.Context, ref string) (image.Image, error) {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return l.loadRemote(ctx, ref)
	}
	return loadLocal(ref)
}

func (l *Loader) loadRemote(ctx context.Context, url string) (image.Image, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, xerrors.Errorf("failed to build request for %s: %w", url, err)
	}

	response, err := l.client.Do(request)
	if err != nil {
		return nil, xerrors.Errorf("failed to fetch %s: %w", url, err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, xerrors.Errorf("failed to fetch %s: status %d", url, response.StatusCode)
	}

	img, _, err := image.Decode(response.Body)
	if err != nil {
		return nil, xerrors.Errorf("failed to decode %s: %w", url, err)
	}
	return img, nil
}

func loadLocal(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, xerrors.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, xerrors.Errorf("failed to decode %s: %w", path, err)
	}
	return img, nil
}
