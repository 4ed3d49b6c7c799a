// Package route materializes classified pages into per-identity output
// PDFs. Destinations are deterministic: an identity-scoped directory
// under the output root, with a filename composed of identity, document
// label, period and a second-resolution timestamp. Routing failures are
// surfaced, not swallowed, since they represent data loss risk.
package route

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Period labels the payroll period the batch belongs to.
type Period struct {
	Month string // two-digit month, e.g. "03"
	Year  string // four-digit year, e.g. "2026"
}

func (p Period) Label() string { return p.Month + "-" + p.Year }

// PageRange is an inclusive range of 0-based page indexes.
type PageRange struct {
	Start int
	End   int
}

// Router copies pages of a source document into per-identity outputs.
type Router interface {
	// RoutePage writes a single-page document for the 0-based page.
	RoutePage(ctx context.Context, sourcePath string, page int, identity string, period Period) (string, error)
	// RouteRanges concatenates the given ranges, in order, into one
	// document. Each range is clamped to the document bounds.
	RouteRanges(ctx context.Context, sourcePath string, ranges []PageRange, identity string, period Period) (string, error)
}

// PDFRouter implements Router with pdfcpu.
type PDFRouter struct {
	outputRoot string
	label      string
	conf       *model.Configuration
	logger     *slog.Logger
	now        func() time.Time
}

type Option func(*PDFRouter)

// WithLabel overrides the document label in output filenames.
func WithLabel(label string) Option {
	return func(r *PDFRouter) {
		if label != "" {
			r.label = label
		}
	}
}

// WithClock overrides the timestamp source. Tests use this for
// deterministic filenames.
func WithClock(now func() time.Time) Option {
	return func(r *PDFRouter) {
		if now != nil {
			r.now = now
		}
	}
}

func NewPDFRouter(outputRoot string, logger *slog.Logger, opts ...Option) *PDFRouter {
	if logger == nil {
		logger = slog.Default()
	}
	r := &PDFRouter{
		outputRoot: outputRoot,
		label:      "Recibo",
		conf:       model.NewDefaultConfiguration(),
		logger:     logger,
		now:        time.Now,
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

func (r *PDFRouter) RoutePage(ctx context.Context, sourcePath string, page int, identity string, period Period) (string, error) {
	return r.RouteRanges(ctx, sourcePath, []PageRange{{Start: page, End: page}}, identity, period)
}

func (r *PDFRouter) RouteRanges(ctx context.Context, sourcePath string, ranges []PageRange, identity string, period Period) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if identity == "" {
		return "", fmt.Errorf("route: empty identity")
	}

	pageCount, err := api.PageCountFile(sourcePath)
	if err != nil {
		return "", fmt.Errorf("page count of %s: %w", sourcePath, err)
	}
	selection := pageSelection(ranges, pageCount)
	if len(selection) == 0 {
		return "", fmt.Errorf("route: no pages within document bounds")
	}

	destDir := filepath.Join(r.outputRoot, identity)
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", fmt.Errorf("create destination dir: %w", err)
	}
	destPath := filepath.Join(destDir, destFileName(identity, r.label, period, r.now()))

	if err := api.CollectFile(sourcePath, destPath, selection, r.conf); err != nil {
		return "", fmt.Errorf("write %s: %w", destPath, err)
	}

	r.logger.Info("route.page.saved", "identity", identity, "dest", destPath, "pages", selection)
	return destPath, nil
}

// MergeFiles concatenates existing PDF files, in order, into outPath.
func (r *PDFRouter) MergeFiles(ctx context.Context, paths []string, outPath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	existing := make([]string, 0, len(paths))
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			r.logger.Warn("route.merge.missing_input", "path", p)
			continue
		}
		existing = append(existing, p)
	}
	if len(existing) == 0 {
		return fmt.Errorf("merge: no readable inputs")
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create merge dir: %w", err)
	}
	if err := api.MergeCreateFile(existing, outPath, false, r.conf); err != nil {
		return fmt.Errorf("merge into %s: %w", outPath, err)
	}
	r.logger.Info("route.merge.saved", "dest", outPath, "inputs", len(existing))
	return nil
}

// destFileName composes "<identity> - <label> - <mm>-<yyyy>_<yyyyMMddHHmmss>.pdf".
func destFileName(identity, label string, period Period, ts time.Time) string {
	return fmt.Sprintf("%s - %s - %s_%s.pdf", identity, label, period.Label(), ts.Format("20060102150405"))
}

// pageSelection converts 0-based inclusive ranges into pdfcpu's
// 1-based selection strings, clamping each range independently to the
// document bounds and preserving range order. Ranges entirely outside
// the document are dropped.
func pageSelection(ranges []PageRange, pageCount int) []string {
	var sel []string
	for _, pr := range ranges {
		start, end := pr.Start, pr.End
		if start < 0 {
			start = 0
		}
		if end > pageCount-1 {
			end = pageCount - 1
		}
		if start > end || start >= pageCount || end < 0 {
			continue
		}
		if start == end {
			sel = append(sel, strconv.Itoa(start+1))
			continue
		}
		sel = append(sel, fmt.Sprintf("%d-%d", start+1, end+1))
	}
	return sel
}
