// Package output provides output formatting for catalog summaries.
// This package produces human and machine-readable renderings; it never
// recomputes aggregation results.
package output

import (
	"io"

	"addon-catalog/core/analysis"
	"addon-catalog/internal/errors"
)

// Format represents output format type
type Format string

const (
	// FormatText is a human-readable console rendering
	FormatText Format = "text"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"
)

// Report pairs a summary with its provenance for rendering.
type Report struct {
	*analysis.Summary

	// CatalogPath is the local cache file the catalog was read from
	CatalogPath string `json:"catalog_path"`

	// URL is the catalog source
	URL string `json:"url"`
}

// Formatter produces output in a specific format
type Formatter interface {
	// Format returns the format type
	Format() Format

	// Render writes the report to w
	Render(w io.Writer, report *Report) error
}

// New returns the formatter for the given format.
func New(format Format) (Formatter, error) {
	switch format {
	case FormatText:
		return &TextFormatter{}, nil
	case FormatJSON:
		return &JSONFormatter{}, nil
	default:
		return nil, errors.Newf(errors.TypeConfig, "unknown output format: %q", format)
	}
}
