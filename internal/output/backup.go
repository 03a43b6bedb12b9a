package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"marcframeview/internal/errors"
)

// backupFile copies filePath to a timestamped sibling and returns its path.
// The copy keeps the original file mode.
func backupFile(filePath string, now time.Time) (string, error) {
	backupPath := generateBackupPath(filePath, now)

	srcFile, err := os.Open(filePath)
	if err != nil {
		return "", errors.NewOutputError(filePath, "failed to open file for backup", err)
	}
	defer srcFile.Close()

	dstFile, err := os.Create(backupPath)
	if err != nil {
		return "", errors.NewOutputError(backupPath, "failed to create backup file", err)
	}
	defer dstFile.Close()

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		_ = os.Remove(backupPath)
		return "", errors.NewOutputError(backupPath, "failed to copy file content", err)
	}

	if info, err := os.Stat(filePath); err == nil {
		_ = os.Chmod(backupPath, info.Mode())
	}

	return backupPath, nil
}

func generateBackupPath(originalPath string, now time.Time) string {
	dir := filepath.Dir(originalPath)
	base := filepath.Base(originalPath)
	timestamp := now.Format("20060102_150405")

	return filepath.Join(dir, fmt.Sprintf("%s.%s.bak", base, timestamp))
}
