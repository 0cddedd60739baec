package storage

import (
	"context"
	"path/filepath"
	"testing"
)

func TestFileStorage_PutGet(t *testing.T) {
	ctx := context.Background()
	directory := t.TempDir()

	s, err := NewFileStorage(ctx, FileConfig{Directory: directory})
	if err != nil {
		t.Fatalf("NewFileStorage returned error: %v", err)
	}

	data := []byte(`{"matchPercentage":96.0}`)
	location, err := s.Put(ctx, "reports/abc/20260101000000.json", data)
	if err != nil {
		t.Fatalf("Put returned error: %v", err)
	}

	want := filepath.Join(directory, "reports", "abc", "20260101000000.json")
	if location != want {
		t.Errorf("Expected location %q, got %q", want, location)
	}

	got, err := s.Get(ctx, location)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if string(got) != string(data) {
		t.Errorf("Expected %q, got %q", data, got)
	}
}

func TestFileStorage_GetMissing(t *testing.T) {
	ctx := context.Background()

	s, err := NewFileStorage(ctx, FileConfig{Directory: t.TempDir()})
	if err != nil {
		t.Fatalf("NewFileStorage returned error: %v", err)
	}

	if _, err := s.Get(ctx, filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("Expected an error for a missing report")
	}
}
