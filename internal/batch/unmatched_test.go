package batch

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestUnmatchedLogRecord(t *testing.T) {
	dir := t.TempDir()
	l := NewUnmatchedLog(dir, nil)
	l.now = func() time.Time { return time.Date(2026, 3, 31, 10, 0, 0, 0, time.UTC) }

	l.Record(4, "texto extraído da página")
	l.Record(7, "outra página")

	data, err := os.ReadFile(l.Path())
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	got := string(data)
	if !strings.Contains(got, "=== unmatched page (2026-03-31 10:00:00) ===") {
		t.Errorf("missing timestamp header:\n%s", got)
	}
	if !strings.Contains(got, "page: 4") || !strings.Contains(got, "page: 7") {
		t.Errorf("missing page numbers:\n%s", got)
	}
	if !strings.Contains(got, "texto extraído da página") {
		t.Errorf("missing extracted text:\n%s", got)
	}
	if strings.Count(got, "===") != 4 { // two records, opening/closing fence each
		t.Errorf("expected two appended records:\n%s", got)
	}
}

func TestUnmatchedLogTruncatesText(t *testing.T) {
	dir := t.TempDir()
	l := NewUnmatchedLog(dir, nil)

	long := strings.Repeat("ã", 600)
	l.Record(1, long)

	data, err := os.ReadFile(l.Path())
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	got := string(data)
	if strings.Contains(got, strings.Repeat("ã", 501)) {
		t.Errorf("text not truncated to 500 runes")
	}
	if !strings.Contains(got, strings.Repeat("ã", 500)+"...") {
		t.Errorf("expected 500-rune prefix with ellipsis")
	}
}

func TestUnmatchedLogPath(t *testing.T) {
	l := NewUnmatchedLog("/var/logs", nil)
	if got := l.Path(); got != filepath.Join("/var/logs", "unmatched_pages.log") {
		t.Errorf("Path = %q", got)
	}
}

func TestBackupSource(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "folha.pdf")
	if err := os.WriteFile(source, []byte("conteúdo"), 0o644); err != nil {
		t.Fatal(err)
	}

	backupDir := filepath.Join(dir, "backup")
	path, err := BackupSource(source, backupDir)
	if err != nil {
		t.Fatalf("BackupSource: %v", err)
	}
	if !strings.HasSuffix(path, "_folha.pdf") {
		t.Errorf("backup name %q lacks timestamp prefix + original name", filepath.Base(path))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read backup: %v", err)
	}
	if string(data) != "conteúdo" {
		t.Errorf("backup content = %q", data)
	}
}
