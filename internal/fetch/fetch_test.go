package fetch

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func encodePNG(t *testing.T, width int, height int, c color.Color) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: c}, image.Point{}, draw.Src)

	var buffer bytes.Buffer
	if err := png.Encode(&buffer, img); err != nil {
		t.Fatal(err)
	}
	return buffer.Bytes()
}

func TestLoader_Load(t *testing.T) {
	ctx := context.Background()

	t.Run("LocalFile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "expected.png")
		if err := os.WriteFile(path, encodePNG(t, 12, 8, color.White), 0644); err != nil {
			t.Fatal(err)
		}

		buffer, err := NewLoader().Load(ctx, path)
		if err != nil {
			t.Fatalf("Load returned error: %v", err)
		}
		if buffer.Width != 12 || buffer.Height != 8 {
			t.Errorf("Expected 12x8, got %dx%d", buffer.Width, buffer.Height)
		}
	})

	t.Run("RemoteURL", func(t *testing.T) {
		payload := encodePNG(t, 6, 6, color.Black)
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write(payload)
		}))
		defer server.Close()

		buffer, err := NewLoader().Load(ctx, server.URL+"/actual.png")
		if err != nil {
			t.Fatalf("Load returned error: %v", err)
		}
		if buffer.Width != 6 || buffer.Height != 6 {
			t.Errorf("Expected 6x6, got %dx%d", buffer.Width, buffer.Height)
		}
	})

	t.Run("RemoteRetriesServerError", func(t *testing.T) {
		payload := encodePNG(t, 4, 4, color.White)
		calls := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			if calls == 1 {
				http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
				return
			}
			_, _ = w.Write(payload)
		}))
		defer server.Close()

		if _, err := NewLoader().Load(ctx, server.URL); err != nil {
			t.Fatalf("Load returned error: %v", err)
		}
		if calls != 2 {
			t.Errorf("Expected the loader to retry once, got %d calls", calls)
		}
	})

	t.Run("RemoteNotFound", func(t *testing.T) {
		server := httptest.NewServer(http.NotFoundHandler())
		defer server.Close()

		if _, err := NewLoader().Load(ctx, server.URL); err == nil {
			t.Error("Expected an error for a 404 response")
		}
	})

	t.Run("MissingFile", func(t *testing.T) {
		if _, err := NewLoader().Load(ctx, filepath.Join(t.TempDir(), "missing.png")); err == nil {
			t.Error("Expected an error for a missing file")
		}
	})

	t.Run("NotAnImage", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "report.txt")
		if err := os.WriteFile(path, []byte("not an image"), 0644); err != nil {
			t.Fatal(err)
		}

		if _, err := NewLoader().Load(ctx, path); err == nil {
			t.Error("Expected a decode error")
		}
	})
}
