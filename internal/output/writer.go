// Package output delivers the rendered document.
// The whole document is written once: to stdout, or to a file that is
// replaced atomically through a temporary sibling, optionally after taking
// a timestamped backup of the previous version.
package output

import (
	"io"
	"io/fs"
	"os"
	"time"

	"marcframeview/internal/config"
	"marcframeview/internal/errors"
)

const defaultFileMode fs.FileMode = 0o644

// Writer writes rendered documents according to the configuration.
type Writer struct {
	config *config.Config
	stdout io.Writer
	now    func() time.Time
}

// NewWriter creates a Writer that falls back to stdout when no output file
// is configured.
func NewWriter(cfg *config.Config, stdout io.Writer) *Writer {
	return &Writer{
		config: cfg,
		stdout: stdout,
		now:    time.Now,
	}
}

// Write delivers doc and returns the backup path when a backup was taken.
func (w *Writer) Write(doc []byte) (string, error) {
	if w.config.OutputFile == "" {
		if _, err := w.stdout.Write(doc); err != nil {
			return "", errors.NewOutputError("stdout", "failed to write document", err)
		}
		return "", nil
	}

	return w.writeFile(w.config.OutputFile, doc)
}

func (w *Writer) writeFile(filePath string, doc []byte) (string, error) {
	mode := defaultFileMode
	exists := false
	info, err := os.Stat(filePath)
	switch {
	case err == nil:
		if info.IsDir() {
			return "", errors.NewOutputError(filePath, "output path is a directory", nil)
		}
		mode = info.Mode().Perm()
		exists = true
	case !os.IsNotExist(err):
		return "", errors.NewOutputError(filePath, "failed to stat output file", err)
	}

	backupPath := ""
	if exists && w.config.ShouldCreateBackup() {
		backupPath, err = backupFile(filePath, w.now())
		if err != nil {
			return "", err
		}
	}

	tempFile := filePath + ".tmp"

	file, err := os.OpenFile(tempFile, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return backupPath, errors.NewOutputError(filePath, "failed to create temporary file", err)
	}
	defer file.Close()
	defer os.Remove(tempFile)

	if _, err := file.Write(doc); err != nil {
		return backupPath, errors.NewOutputError(filePath, "failed to write document", err)
	}

	if err := file.Sync(); err != nil {
		return backupPath, errors.NewOutputError(filePath, "failed to sync document", err)
	}

	_ = file.Close()

	if err := os.Chmod(tempFile, mode); err != nil {
		return backupPath, errors.NewOutputError(filePath, "failed to set file mode", err)
	}

	if err := os.Rename(tempFile, filePath); err != nil {
		return backupPath, errors.NewOutputError(filePath, "failed to replace output file", err)
	}

	return backupPath, nil
}
