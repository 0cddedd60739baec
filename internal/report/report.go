// Package report renders analysis results for human and machine consumers.
// Renderers read the result without mutating it.
package report

import (
	"encoding/json"

	"golang.org/x/xerrors"

	"visual-analyzer/internal/analyze"
)

type Renderer interface {
	Render(result *analyze.Result) ([]byte, error)
	// Extension is the file extension of the rendered format, without dot.
	Extension() string
}

type jsonRenderer struct{}

// NewJSONRenderer renders the full result as indented JSON.
func NewJSONRenderer() Renderer {
	return &jsonRenderer{}
}

func (r *jsonRenderer) Render(result *analyze.Result) ([]byte, error) {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, xerrors.Errorf("failed to encode result: %w", err)
	}
	return data, nil
}

func (r *jsonRenderer) Extension() string {
	return "json"
}
