// Package document provides page-addressable access to a source
// document. The pipeline consumes the Document interface only, so
// tests can substitute in-memory fakes for the MuPDF-backed reader.
package document

import (
	"context"
	"image"
)

// Document is a page-addressable handle over a source file.
type Document interface {
	// PageCount returns the number of pages.
	PageCount() int

	// PageText extracts the text layer of the 0-based page.
	PageText(ctx context.Context, page int) (string, error)

	// RenderPage rasterizes the 0-based page at the given upscale
	// factor (1.0 = native size) for optical recognition.
	RenderPage(ctx context.Context, page int, scale float64) (image.Image, error)

	// Close releases the underlying handle. Safe to call once.
	Close() error
}

// Opener opens a Document from a path. The batch processor takes an
// Opener so the handle is acquired once per run and released on every
// exit path.
type Opener interface {
	Open(path string) (Document, error)
}
