package document

import (
	"context"
	"fmt"
	"image"

	"github.com/gen2brain/go-fitz"
)

// MuPDF renders pages at 72 DPI for a 1.0 scale matrix.
const baseDPI = 72

// FitzDocument reads PDFs through MuPDF (go-fitz).
type FitzDocument struct {
	doc *fitz.Document
}

// FitzOpener opens PDF files with MuPDF.
type FitzOpener struct{}

func (FitzOpener) Open(path string) (Document, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	return &FitzDocument{doc: doc}, nil
}

func (d *FitzDocument) PageCount() int {
	return d.doc.NumPage()
}

func (d *FitzDocument) PageText(_ context.Context, page int) (string, error) {
	text, err := d.doc.Text(page)
	if err != nil {
		return "", fmt.Errorf("extract text of page %d: %w", page, err)
	}
	return text, nil
}

func (d *FitzDocument) RenderPage(_ context.Context, page int, scale float64) (image.Image, error) {
	if scale <= 0 {
		scale = 1.0
	}
	img, err := d.doc.ImageDPI(page, baseDPI*scale)
	if err != nil {
		return nil, fmt.Errorf("render page %d: %w", page, err)
	}
	return img, nil
}

func (d *FitzDocument) Close() error {
	return d.doc.Close()
}
