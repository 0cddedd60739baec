package storage

import (
	"context"
	"os"
	"path/filepath"

	"golang.org/x/xerrors"
)

type fileStorage struct {
	config FileConfig
}

type FileConfig struct {
	// Directory is the root under which report keys become paths.
	Directory string
}

// NewFileStorage creates a local-filesystem storage backend.
func NewFileStorage(ctx context.Context, f FileConfig) (Storage, error) {
	if f.Directory == "" {
		f.Directory = "."
	}

	return &fileStorage{
		config: f,
	}, nil
}

func (f *fileStorage) Put(ctx context.Context, key string, data []byte) (string, error) {
	path := filepath.Join(f.config.Directory, key)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", xerrors.Errorf("failed to create report directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", xerrors.Errorf("failed to write report: %w", err)
	}

	return path, nil
}

func (f *fileStorage) Get(ctx context.Context, location string) ([]byte, error) {
	data, err := os.ReadFile(location)
	if err != nil {
		return nil, xerrors.Errorf("failed to read report: %w", err)
	}

	return data, nil
}
