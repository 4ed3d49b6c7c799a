package batch

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// maxUnmatchedTextPrefix bounds log growth per unmatched page.
const maxUnmatchedTextPrefix = 500

// UnmatchedLog appends a plain-text record for every page no roster
// entry matched, so an operator can inspect why and extend the roster.
type UnmatchedLog struct {
	path   string
	logger *slog.Logger
	now    func() time.Time
}

func NewUnmatchedLog(logsDir string, logger *slog.Logger) *UnmatchedLog {
	if logger == nil {
		logger = slog.Default()
	}
	return &UnmatchedLog{
		path:   filepath.Join(logsDir, "unmatched_pages.log"),
		logger: logger,
		now:    time.Now,
	}
}

func (l *UnmatchedLog) Path() string { return l.path }

// Record appends one entry: timestamp, 1-based page number, and up to
// 500 characters of the page's extracted text. A write failure is
// logged, never propagated — the record is advisory.
func (l *UnmatchedLog) Record(pageNumber int, text string) {
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		l.logger.Error("batch.unmatched_log.mkdir_failed", "error", err)
		return
	}
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		l.logger.Error("batch.unmatched_log.open_failed", "error", err)
		return
	}
	defer func() { _ = f.Close() }()

	ts := l.now().Format("2006-01-02 15:04:05")
	entry := fmt.Sprintf("=== unmatched page (%s) ===\npage: %d\ntext:\n%s\n\n",
		ts, pageNumber, truncateRunes(text, maxUnmatchedTextPrefix))
	if _, err := f.WriteString(entry); err != nil {
		l.logger.Error("batch.unmatched_log.write_failed", "error", err)
	}
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
