package batch

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// BackupSource copies the source document into backupDir under a
// timestamped name before a run touches it. Returns the backup path.
func BackupSource(sourcePath, backupDir string) (string, error) {
	if err := os.MkdirAll(backupDir, 0o755); err != nil {
		return "", fmt.Errorf("create backup dir: %w", err)
	}

	src, err := os.Open(sourcePath)
	if err != nil {
		return "", fmt.Errorf("open source for backup: %w", err)
	}
	defer func() { _ = src.Close() }()

	name := fmt.Sprintf("%s_%s", time.Now().Format("20060102150405"), filepath.Base(sourcePath))
	backupPath := filepath.Join(backupDir, name)

	dst, err := os.Create(backupPath)
	if err != nil {
		return "", fmt.Errorf("create backup file: %w", err)
	}
	defer func() { _ = dst.Close() }()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("copy backup: %w", err)
	}
	return backupPath, nil
}
