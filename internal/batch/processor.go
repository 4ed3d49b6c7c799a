// Package batch orchestrates a run: it walks the source document page
// by page, drives text acquisition, identity matching and routing, and
// aggregates statistics. Pages are processed strictly in ascending
// order; cancellation is polled at page boundaries only.
package batch

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/payrollkit/slipsort/constants"
	"github.com/payrollkit/slipsort/internal/common"
	"github.com/payrollkit/slipsort/internal/document"
	"github.com/payrollkit/slipsort/internal/extract"
	"github.com/payrollkit/slipsort/internal/match"
	"github.com/payrollkit/slipsort/internal/roster"
	"github.com/payrollkit/slipsort/internal/route"
)

// Request describes one batch run.
type Request struct {
	SourcePath string
	Period     route.Period
	Roster     *roster.Roster

	// Progress, if set, is invoked with (currentPageOneIndexed,
	// totalPages) before each page is processed.
	Progress func(current, total int)

	// CancelRequested, if set, is polled before each page. A true
	// return stops the run at that page boundary; already-routed
	// output is not rolled back.
	CancelRequested func() bool
}

// Processor runs batches. All collaborators are interfaces so tests
// run against fakes.
type Processor struct {
	opener    document.Opener
	acquirer  extract.PageTextAcquirer
	matcher   *match.Matcher
	router    route.Router
	unmatched *UnmatchedLog
	logger    *slog.Logger
}

func NewProcessor(opener document.Opener, acquirer extract.PageTextAcquirer, matcher *match.Matcher, router route.Router, unmatched *UnmatchedLog, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		opener:    opener,
		acquirer:  acquirer,
		matcher:   matcher,
		router:    router,
		unmatched: unmatched,
		logger:    logger,
	}
}

// Run executes the batch. Fatal preconditions (source missing) return
// a nil result. Aborting errors (routing failures) return both the
// statistics gathered so far and the error. Per-page failures are
// folded into Result.Errors and processing continues.
func (p *Processor) Run(ctx context.Context, req Request) (*Result, error) {
	if req.Roster == nil {
		req.Roster = roster.New(nil)
	}
	if _, err := os.Stat(req.SourcePath); err != nil {
		return nil, common.NewAppError("SOURCE_NOT_FOUND",
			fmt.Sprintf("source document %q", req.SourcePath),
			fmt.Errorf("%w: %v", common.ErrSourceNotFound, err))
	}

	doc, err := p.opener.Open(req.SourcePath)
	if err != nil {
		return nil, common.NewAppError("SOURCE_NOT_FOUND",
			fmt.Sprintf("open source document %q", req.SourcePath),
			fmt.Errorf("%w: %v", common.ErrSourceNotFound, err))
	}
	defer func() { _ = doc.Close() }()

	total := doc.PageCount()
	res := newResult(total)
	p.logger.Info("batch.run.started", "run_id", res.RunID, "source", req.SourcePath, "pages", total, "roster_size", req.Roster.Len())

	for page := 0; page < total; page++ {
		if cancelled(ctx, req) {
			res.Status = constants.RunStatusCancelled
			p.logger.Info("batch.run.cancelled", "run_id", res.RunID, "pages_processed", res.PagesProcessed)
			return res, nil
		}
		if req.Progress != nil {
			req.Progress(page+1, total)
		}

		if err := p.processPage(ctx, doc, req, res, page); err != nil {
			// Routing failures indicate a systemic output problem and
			// abort the remaining batch.
			res.Status = constants.RunStatusFailed
			res.addError(err.Error())
			p.logger.Error("batch.run.aborted", "run_id", res.RunID, "page", page, "error", err)
			return res, common.NewAppError("OUTPUT_WRITE",
				fmt.Sprintf("routing page %d", page+1),
				fmt.Errorf("%w: %v", common.ErrOutputWrite, err))
		}
		res.PagesProcessed++
	}

	res.Status = constants.RunStatusCompleted
	p.logger.Info("batch.run.completed",
		"run_id", res.RunID,
		"identified", res.IdentifiedPages,
		"unidentified", res.UnidentifiedPages,
		"identities", len(res.IdentitiesFound),
	)
	return res, nil
}

// processPage classifies and routes one page. The returned error is
// non-nil only for routing failures; everything else degrades into the
// unidentified outcome.
func (p *Processor) processPage(ctx context.Context, doc document.Document, req Request, res *Result, page int) error {
	rec := PageRecord{Page: page}

	acq := p.acquirer.Acquire(ctx, doc, page)
	rec.Text = acq.Text
	rec.Acquisition = acq.Method
	for _, w := range acq.Warnings {
		res.addError(fmt.Sprintf("page %d: %s", page+1, w))
	}

	rec.Match = p.matcher.Identify(rec.Text, req.Roster)
	if rec.Match.Unknown() {
		res.UnidentifiedPages++
		if p.unmatched != nil {
			p.unmatched.Record(page+1, rec.Text)
		}
		p.logger.Warn("batch.page.unmatched", "page", page+1, "acquisition", rec.Acquisition)
		return nil
	}

	dest, err := p.router.RoutePage(ctx, req.SourcePath, page, rec.Match.Identity, req.Period)
	if err != nil {
		return err
	}

	res.IdentifiedPages++
	res.addIdentity(rec.Match.Identity)
	p.logger.Info("batch.page.routed",
		"page", page+1,
		"identity", rec.Match.Identity,
		"method", rec.Match.Method,
		"score", rec.Match.Score,
		"dest", dest,
	)
	return nil
}

func cancelled(ctx context.Context, req Request) bool {
	if ctx.Err() != nil {
		return true
	}
	return req.CancelRequested != nil && req.CancelRequested()
}
