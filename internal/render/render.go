// Package render turns a validated lease document into downloadable file
// bytes. Rendering is stateless: bytes are produced per request and never
// written to disk by the service.
package render

import (
	"fmt"

	"github.com/dshills/leasedraft/internal/document"
)

// Options control which trailing sections are rendered. Both default to
// true via DefaultOptions.
type Options struct {
	IncludeDisclaimer bool
	IncludeSignatures bool
}

// DefaultOptions renders the full document.
func DefaultOptions() Options {
	return Options{IncludeDisclaimer: true, IncludeSignatures: true}
}

// Renderer produces file bytes for one output format.
type Renderer interface {
	Render(lease *document.Lease, opts Options) ([]byte, error)
	// MimeType is the Content-Type for the rendered bytes.
	MimeType() string
	// Extension is the file extension including the dot.
	Extension() string
}

// NewRenderer returns the renderer for the requested format. The "pdf"
// format is accepted for compatibility but produces a Word document and
// reports docx media type and extension, so downloads are never
// mislabeled.
func NewRenderer(format string) (Renderer, error) {
	switch format {
	case "docx", "", "pdf":
		return &docxRenderer{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s (supported: docx)", format)
	}
}
