package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/payrollkit/slipsort/constants"
	"github.com/payrollkit/slipsort/internal/async"
	"github.com/payrollkit/slipsort/internal/batch"
	"github.com/payrollkit/slipsort/internal/document"
	"github.com/payrollkit/slipsort/internal/extract"
	"github.com/payrollkit/slipsort/internal/jobfile"
	"github.com/payrollkit/slipsort/internal/match"
	"github.com/payrollkit/slipsort/internal/ocr"
	"github.com/payrollkit/slipsort/internal/roster"
	"github.com/payrollkit/slipsort/internal/route"
)

var processFlags struct {
	source     string
	month      string
	year       string
	rosterPath string
	fuzzy      bool
	noOCR      bool
	backup     bool
}

var processCmd = &cobra.Command{
	Use:   "process [job.json]",
	Short: "Classify and split a batch payroll PDF",
	Long: `Process a multi-page payroll PDF: extract each page's text (falling
back to OCR for scanned pages), match it against the employee roster,
and write one output PDF per identified page under
<output-root>/<employee>/.

A run is described either by a JSON job file or by flags:

  slipsort process job.json
  slipsort process --source folha.pdf --month 03 --year 2026 --roster nomes.txt

Pages no roster entry matches are counted and appended to the
unmatched-pages log. Interrupting with Ctrl-C cancels at the next page
boundary; pages already written stay in place.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runProcess,
}

func init() {
	f := processCmd.Flags()
	f.StringVar(&processFlags.source, "source", "", "Path to the batch PDF")
	f.StringVar(&processFlags.month, "month", "", "Two-digit period month, e.g. 03")
	f.StringVar(&processFlags.year, "year", "", "Four-digit period year, e.g. 2026")
	f.StringVar(&processFlags.rosterPath, "roster", "", "Roster source: .txt/.csv list, .xlsx sheet, or .db employee table")
	f.BoolVar(&processFlags.fuzzy, "fuzzy", false, "Enable the fuzzy matching fallback")
	f.BoolVar(&processFlags.noOCR, "no-ocr", false, "Disable the OCR fallback for sparse pages")
	f.BoolVar(&processFlags.backup, "backup", false, "Copy the source PDF to the backup dir before processing")
}

func runProcess(cmd *cobra.Command, args []string) error {
	req, opts, rosterPath, err := buildRequest(args)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	r, err := loadRoster(ctx, rosterPath)
	if err != nil {
		return err
	}
	if r.Len() == 0 {
		return fmt.Errorf("roster %q has no usable names", rosterPath)
	}
	req.Roster = r

	if processFlags.backup || cfg.Backup.Enabled {
		path, err := batch.BackupSource(req.SourcePath, cfg.Backup.Dir)
		if err != nil {
			return err
		}
		slog.Info("process.backup.created", "path", path)
	}

	var recognizer ocr.Recognizer
	if !processFlags.noOCR {
		client, err := ocr.NewClient(ocr.Config{
			Language:    opts.OCRLanguage,
			TessdataDir: cfg.OCR.TessdataDir,
		}, nil)
		if err != nil {
			slog.Warn("process.ocr.unavailable", "error", err)
		} else {
			recognizer = client
			defer func() { _ = client.Close() }()
		}
	}

	acquirer := extract.NewAcquirer(extract.Config{
		TextThreshold: opts.OCRTextThreshold,
		UpscaleFactor: opts.OCRUpscaleFactor,
	}, recognizer, nil)

	matcher := match.NewMatcher(match.Options{
		UseFuzzy:        opts.UseFuzzyMatching,
		ScoreThreshold:  opts.FuzzyScoreThreshold,
		CandidateLimit:  opts.FuzzyCandidateLimit,
		StripDiacritics: opts.StripDiacritics,
	}, nil, nil)

	router := route.NewPDFRouter(cfg.Output.Root, nil, route.WithLabel(opts.DocumentLabel))
	unmatched := batch.NewUnmatchedLog(cfg.Output.LogsDir, nil)
	processor := batch.NewProcessor(document.FitzOpener{}, acquirer, matcher, router, unmatched, nil)

	queue := async.NewBatchQueue(processor, nil,
		async.WithQueueSize(cfg.Queue.Size),
		async.WithJobTimeout(cfg.Queue.JobTimeout),
	)
	defer queue.Shutdown(context.Background())

	req.Progress = func(current, total int) {
		fmt.Fprintf(os.Stderr, "\rprocessing page %d/%d", current, total)
	}

	ticket, err := queue.Submit(ctx, req)
	if err != nil {
		return err
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigs)

	var out async.Outcome
	select {
	case out = <-ticket.Done():
	case <-sigs:
		slog.Info("process.cancel.requested")
		ticket.Cancel()
		out = <-ticket.Done()
	}
	fmt.Fprintln(os.Stderr)

	if out.Err != nil {
		return out.Err
	}
	printSummary(out.Result, unmatched.Path())
	return nil
}

// buildRequest resolves the job file or flags into a batch request
// plus the matching/acquisition options.
func buildRequest(args []string) (batch.Request, jobfile.Options, string, error) {
	var (
		req        batch.Request
		opts       jobfile.Options
		rosterPath string
	)

	if len(args) == 1 {
		job, err := jobfile.Load(args[0])
		if err != nil {
			return req, opts, "", err
		}
		req.SourcePath = job.Source
		req.Period = route.Period{Month: job.Month, Year: job.Year}
		rosterPath = job.Roster
		opts = job.Options
	} else {
		if processFlags.source == "" || processFlags.month == "" || processFlags.year == "" {
			return req, opts, "", fmt.Errorf("either a job file or --source, --month and --year are required")
		}
		req.SourcePath = processFlags.source
		req.Period = route.Period{Month: processFlags.month, Year: processFlags.year}
		rosterPath = processFlags.rosterPath
		opts.UseFuzzyMatching = processFlags.fuzzy
	}

	// config supplies whatever the job left unset
	if opts.OCRTextThreshold == 0 {
		opts.OCRTextThreshold = cfg.OCR.TextThreshold
	}
	if opts.OCRUpscaleFactor == 0 {
		opts.OCRUpscaleFactor = cfg.OCR.UpscaleFactor
	}
	if opts.OCRLanguage == "" {
		opts.OCRLanguage = cfg.OCR.Language
	}
	if opts.FuzzyScoreThreshold == 0 {
		opts.FuzzyScoreThreshold = cfg.Match.ScoreThreshold
	}
	if opts.FuzzyCandidateLimit == 0 {
		opts.FuzzyCandidateLimit = cfg.Match.CandidateLimit
	}
	if opts.DocumentLabel == "" {
		opts.DocumentLabel = cfg.Output.DocumentLabel
	}
	if !opts.UseFuzzyMatching {
		opts.UseFuzzyMatching = cfg.Match.UseFuzzy
	}
	if !opts.StripDiacritics {
		opts.StripDiacritics = cfg.Match.StripDiacritics
	}

	if rosterPath == "" {
		return req, opts, "", fmt.Errorf("a roster source is required (--roster or job file \"roster\")")
	}
	ext := constants.NormalizeExt(filepath.Ext(req.SourcePath))
	if _, ok := constants.AllowedSourceExtensions[ext]; !ok {
		return req, opts, "", fmt.Errorf("unsupported source extension %q", ext)
	}
	return req, opts, rosterPath, nil
}

func loadRoster(ctx context.Context, path string) (*roster.Roster, error) {
	ext := constants.NormalizeExt(filepath.Ext(path))
	if _, ok := constants.AllowedRosterExtensions[ext]; !ok {
		return nil, fmt.Errorf("unsupported roster extension %q", ext)
	}
	switch ext {
	case "xlsx":
		return roster.LoadXLSX(path, "", 0, 0)
	case "db", "sqlite", "sqlite3":
		return roster.LoadSQLite(ctx, path)
	default:
		return roster.LoadFile(path)
	}
}

func printSummary(res *batch.Result, unmatchedLog string) {
	fmt.Printf("run %s: %s\n", res.RunID, res.Status)
	fmt.Printf("  pages:        %d/%d processed\n", res.PagesProcessed, res.TotalPages)
	fmt.Printf("  identified:   %d\n", res.IdentifiedPages)
	fmt.Printf("  unidentified: %d\n", res.UnidentifiedPages)
	if len(res.IdentitiesFound) > 0 {
		fmt.Printf("  employees:    %s\n", strings.Join(res.IdentitiesFound, ", "))
	}
	if res.UnidentifiedPages > 0 {
		fmt.Printf("  unmatched log: %s\n", unmatchedLog)
	}
	if len(res.Errors) > 0 {
		fmt.Printf("  errors (%d):\n", len(res.Errors))
		for _, e := range res.Errors {
			fmt.Printf("    - %s\n", e)
		}
	}
}
