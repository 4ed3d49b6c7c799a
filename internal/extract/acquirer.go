// Package extract acquires machine-readable text from document pages.
// Direct text-layer extraction is tried first; pages whose text yield
// is below a threshold are treated as image-only and re-rendered at an
// upscale factor for optical recognition.
package extract

import (
	"context"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/payrollkit/slipsort/constants"
	"github.com/payrollkit/slipsort/internal/document"
	"github.com/payrollkit/slipsort/internal/ocr"
)

type Config struct {
	// TextThreshold is the minimum trimmed rune count for direct
	// extraction to be accepted. Below it the page falls back to OCR.
	TextThreshold int
	// UpscaleFactor is the render scale for the OCR fallback.
	UpscaleFactor float64
}

// Acquirer implements PageTextAcquirer over a Document plus an
// optional Recognizer. A nil Recognizer disables the OCR fallback.
type Acquirer struct {
	cfg    Config
	rec    ocr.Recognizer
	logger *slog.Logger
}

func NewAcquirer(cfg Config, rec ocr.Recognizer, logger *slog.Logger) *Acquirer {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.TextThreshold <= 0 {
		cfg.TextThreshold = 50
	}
	if cfg.UpscaleFactor <= 0 {
		cfg.UpscaleFactor = 2.0
	}
	return &Acquirer{cfg: cfg, rec: rec, logger: logger}
}

// Acquire extracts text for the 0-based page. Both extraction paths
// swallow their own failures: a bad page yields empty text and falls
// through to "unidentified" instead of aborting the batch.
func (a *Acquirer) Acquire(ctx context.Context, doc document.Document, page int) Result {
	start := time.Now()
	res := Result{Method: constants.AcquisitionDirect}

	text, err := doc.PageText(ctx, page)
	if err != nil {
		a.logger.Error("extract.direct.failed", "page", page, "error", err)
		res.Warnings = append(res.Warnings, err.Error())
		text = ""
	}

	if utf8.RuneCountInString(strings.TrimSpace(text)) >= a.cfg.TextThreshold {
		res.Text = text
		res.Duration = time.Since(start)
		return res
	}

	if a.rec == nil {
		res.Text = text
		res.Duration = time.Since(start)
		return res
	}

	a.logger.Info("extract.ocr.fallback", "page", page, "direct_chars", utf8.RuneCountInString(strings.TrimSpace(text)))
	ocrText, warns := a.recognizePage(ctx, doc, page)
	if ocrText != "" {
		res.Text = ocrText
		res.Method = constants.AcquisitionOCR
	} else {
		// keep whatever the direct pass produced
		res.Text = text
	}
	res.Warnings = append(res.Warnings, warns...)
	res.Duration = time.Since(start)
	return res
}

func (a *Acquirer) recognizePage(ctx context.Context, doc document.Document, page int) (string, []string) {
	img, err := doc.RenderPage(ctx, page, a.cfg.UpscaleFactor)
	if err != nil {
		a.logger.Error("extract.render.failed", "page", page, "error", err)
		return "", []string{err.Error()}
	}
	text, err := a.rec.Recognize(ctx, img)
	if err != nil {
		a.logger.Error("extract.ocr.failed", "page", page, "error", err)
		return "", []string{err.Error()}
	}
	return text, nil
}
