// Package render persists mapped slides to an output file. The docx
// renderer is the primary target; the html renderer produces a
// single-file preview.
package render

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/dgallion1/deckgen/internal/slides"
)

// Renderer persists an ordered slide sequence to a file.
type Renderer interface {
	Render(descs []slides.Descriptor, outputPath string) error
}

// Options carry renderer inputs that come from configuration.
type Options struct {
	// TemplatePath optionally names a .docx file whose layouts seed the
	// output document. Read-only.
	TemplatePath string
	// ChartFont optionally names a .ttf file for chart text.
	ChartFont string
}

// ForPath picks a renderer for an output path, defaulting the extension
// to .docx when the path has none. It returns the renderer and the
// resolved output path.
func ForPath(path string, log *slog.Logger, opts Options) (Renderer, string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		ext = ".docx"
		path += ".docx"
	}

	charts, err := NewChartRenderer(opts.ChartFont)
	if err != nil {
		return nil, "", fmt.Errorf("chart renderer: %w", err)
	}

	switch ext {
	case ".docx":
		return &DocxRenderer{log: log, templatePath: opts.TemplatePath, charts: charts}, path, nil
	case ".html", ".htm":
		return &HTMLRenderer{log: log, charts: charts}, path, nil
	default:
		return nil, "", fmt.Errorf("unsupported output extension: %s", ext)
	}
}

// fitRow pads or truncates a row to the header count so tables stay
// rectangular regardless of what the generator produced. An optional
// fill value replaces the empty-string padding.
func fitRow(row []string, cols int, fill ...string) []string {
	out := make([]string, cols)
	n := copy(out, row)
	if len(fill) > 0 {
		for i := n; i < cols; i++ {
			out[i] = fill[0]
		}
	}
	return out
}
