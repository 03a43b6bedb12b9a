// Package log traces a rendering pass and reports on it.
// Per-tag trace lines and the final report go to the log file when one is
// configured and to stderr otherwise, so stdout only ever carries the document.
package log

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"marcframeview/internal/config"
	"marcframeview/internal/errors"
)

// Entry records one projected tag and the subfield codes it carries.
type Entry struct {
	Category string   `json:"category"`
	Tag      string   `json:"tag"`
	Codes    []string `json:"codes"`
}

// Summary holds the aggregate statistics of a rendering pass.
type Summary struct {
	FramePath      string        `json:"frame_path"`
	Categories     int           `json:"categories"`
	Tags           int           `json:"tags"`
	Codes          int           `json:"codes"`
	OutputFile     string        `json:"output_file,omitempty"`
	BackupPath     string        `json:"backup_path,omitempty"`
	OutputBytes    int           `json:"output_bytes"`
	ProcessingTime time.Duration `json:"processing_time"`
}

// Logger collects trace entries during the pass and writes the report at the end.
type Logger struct {
	config    *config.Config
	writer    io.Writer
	highlight *color.Color
	entries   []Entry
	summary   Summary
}

// NewLogger creates a Logger writing to cfg.LogFile, or to stderr when no log
// file is configured.
func NewLogger(cfg *config.Config, stderr io.Writer) (*Logger, error) {
	writer := stderr

	if cfg.LogFile != "" {
		file, err := os.Create(cfg.LogFile)
		if err != nil {
			return nil, errors.NewFileNotWritableError(cfg.LogFile, err)
		}
		writer = file
	}

	highlight := color.New(color.FgCyan, color.Bold)
	if isTerminal(writer) && os.Getenv("NO_COLOR") == "" {
		highlight.EnableColor()
	} else {
		highlight.DisableColor()
	}

	return &Logger{
		config:    cfg,
		writer:    writer,
		highlight: highlight,
		entries:   []Entry{},
		summary: Summary{
			FramePath:  cfg.FramePath,
			OutputFile: cfg.OutputFile,
		},
	}, nil
}

// LogCategory records a category section of the report.
func (l *Logger) LogCategory(name string) {
	l.summary.Categories++

	if l.config.IsVerbose() || l.config.IsDebug() {
		fmt.Fprintf(l.writer, "%s %s\n", l.label("CATEGORY:"), name)
	}
}

// LogTag records a tag with its subfield codes. Verbose mode prints one line
// per tag; debug mode lists the codes as well.
func (l *Logger) LogTag(category, tag string, codes []string) {
	entry := Entry{
		Category: category,
		Tag:      tag,
		Codes:    codes,
	}
	if entry.Codes == nil {
		entry.Codes = []string{}
	}

	l.entries = append(l.entries, entry)
	l.summary.Tags++
	l.summary.Codes += len(codes)

	if l.config.IsVerbose() || l.config.IsDebug() {
		fmt.Fprintf(l.writer, "%s %s/%s (%d codes)\n", l.label("TAG:"), category, tag, len(codes))
	}
	if l.config.IsDebug() {
		for _, code := range codes {
			fmt.Fprintf(l.writer, "  %s\n", code)
		}
	}
}

func (l *Logger) label(s string) string {
	if l.highlight == nil {
		return s
	}
	return l.highlight.Sprint(s)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// SetOutput records how many bytes were written and where any backup went.
func (l *Logger) SetOutput(size int, backupPath string) {
	l.summary.OutputBytes = size
	l.summary.BackupPath = backupPath
}

// SetProcessingTime records the total duration of the pass.
func (l *Logger) SetProcessingTime(duration time.Duration) {
	l.summary.ProcessingTime = duration
}

// WriteReport writes the run report in the configured format. Nothing is
// written unless a report was asked for.
func (l *Logger) WriteReport() error {
	if !l.config.ShouldReport() {
		return nil
	}

	switch l.config.LogFormat {
	case config.LogFormatJSON:
		return l.writeJSONReport()
	case config.LogFormatCSV:
		return l.writeCSVReport()
	default:
		return l.writeTextReport()
	}
}

func (l *Logger) writeJSONReport() error {
	report := struct {
		Summary Summary `json:"summary"`
		Entries []Entry `json:"entries"`
	}{
		Summary: l.summary,
		Entries: l.entries,
	}

	encoder := json.NewEncoder(l.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}

func (l *Logger) writeCSVReport() error {
	writer := csv.NewWriter(l.writer)

	if err := writer.Write([]string{"category", "tag", "codes", "code_count"}); err != nil {
		return err
	}
	for _, entry := range l.entries {
		record := []string{
			entry.Category,
			entry.Tag,
			strings.Join(entry.Codes, " "),
			strconv.Itoa(len(entry.Codes)),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	// Statistics follow the records as comment lines.
	writer.Flush()
	if err := writer.Error(); err != nil {
		return err
	}
	fmt.Fprintf(l.writer, "# Marcframe CSV Report\n")
	fmt.Fprintf(l.writer, "# Frame: %s\n", l.summary.FramePath)
	fmt.Fprintf(l.writer, "# Categories: %d\n", l.summary.Categories)
	fmt.Fprintf(l.writer, "# Tags: %d\n", l.summary.Tags)
	fmt.Fprintf(l.writer, "# Codes: %d\n", l.summary.Codes)
	fmt.Fprintf(l.writer, "# Output bytes: %d\n", l.summary.OutputBytes)
	fmt.Fprintf(l.writer, "# Processing time: %v\n", l.summary.ProcessingTime)

	return nil
}

func (l *Logger) writeTextReport() error {
	output := l.summary.OutputFile
	if output == "" {
		output = "stdout"
	}

	fmt.Fprintf(l.writer, "\n=== Marcframe Summary ===\n")
	fmt.Fprintf(l.writer, "Frame: %s\n", l.summary.FramePath)
	fmt.Fprintf(l.writer, "Categories: %d\n", l.summary.Categories)
	fmt.Fprintf(l.writer, "Tags: %d\n", l.summary.Tags)
	fmt.Fprintf(l.writer, "Codes: %d\n", l.summary.Codes)
	fmt.Fprintf(l.writer, "Output: %s (%d bytes)\n", output, l.summary.OutputBytes)
	if l.summary.BackupPath != "" {
		fmt.Fprintf(l.writer, "Backup: %s\n", l.summary.BackupPath)
	}
	fmt.Fprintf(l.writer, "Processing time: %v\n", l.summary.ProcessingTime)

	return nil
}

// Close releases the log file, if one was opened.
func (l *Logger) Close() error {
	if l.config.LogFile == "" {
		return nil
	}
	if closer, ok := l.writer.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
