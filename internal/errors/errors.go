// Package errors provides a hierarchical error system for marcframeview operations.
// It implements typed errors that can be inspected and handled differently
// based on their category, enabling precise reporting of why a run aborted.
package errors

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"path/filepath"
)

// ErrorType represents the category of error for classification and handling.
// Every category ends the run; the type only drives how the failure is reported.
type ErrorType string

// Error type constants define the categories of errors that can occur while
// loading a frame, rendering it and writing the resulting document.
const (
	ErrTypeFile     ErrorType = "file"
	ErrTypeConfig   ErrorType = "config"
	ErrTypeParsing  ErrorType = "parsing"
	ErrTypeTemplate ErrorType = "template"
	ErrTypeOutput   ErrorType = "output"
)

// MarcframeError is the base error type that provides structured error information.
// The embedded path and cause keep the underlying failure visible to the caller,
// so the message printed at exit always carries the original error text.
type MarcframeError struct {
	Type    ErrorType
	Path    string
	Message string
	Cause   error
}

func (e *MarcframeError) Error() string {
	msg := e.Message
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s error for %s: %s", e.Type, e.Path, msg)
	}
	return fmt.Sprintf("%s error: %s", e.Type, msg)
}

func (e *MarcframeError) Unwrap() error {
	return e.Cause
}

// Is implements error identity checking for errors.Is.
// Two MarcframeErrors match when they share the same category.
func (e *MarcframeError) Is(target error) bool {
	t, ok := target.(*MarcframeError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// FileError represents file system operation errors and embeds MarcframeError
// to provide file-specific context.
type FileError struct {
	*MarcframeError
}

// NewFileError creates a file operation error with context.
func NewFileError(path, message string, cause error) *FileError {
	return &FileError{
		MarcframeError: &MarcframeError{
			Type:    ErrTypeFile,
			Path:    path,
			Message: message,
			Cause:   cause,
		},
	}
}

// FileNotFoundError represents errors when files cannot be located.
type FileNotFoundError struct {
	*FileError
}

// NewFileNotFoundError creates a file not found error.
func NewFileNotFoundError(path string, cause error) *FileNotFoundError {
	return &FileNotFoundError{
		FileError: NewFileError(path, "file not found", cause),
	}
}

// FileNotWritableError represents errors when files cannot be written to.
type FileNotWritableError struct {
	*FileError
}

// NewFileNotWritableError creates a file write permission error.
func NewFileNotWritableError(path string, cause error) *FileNotWritableError {
	return &FileNotWritableError{
		FileError: NewFileError(path, "file not writable", cause),
	}
}

// FileNotReadableError represents errors when files cannot be read from.
type FileNotReadableError struct {
	*FileError
}

// NewFileNotReadableError creates a file read permission error.
func NewFileNotReadableError(path string, cause error) *FileNotReadableError {
	return &FileNotReadableError{
		FileError: NewFileError(path, "file not readable", cause),
	}
}

// ConfigError represents command-line and configuration validation errors.
// These are raised before the frame is read, so a bad invocation never touches
// the input file.
type ConfigError struct {
	*MarcframeError
}

// NewConfigError creates a configuration error without path context.
func NewConfigError(message string, cause error) *ConfigError {
	return &ConfigError{
		MarcframeError: &MarcframeError{
			Type:    ErrTypeConfig,
			Message: message,
			Cause:   cause,
		},
	}
}

// NewConfigErrorWithPath creates a configuration error with file context.
func NewConfigErrorWithPath(path, message string, cause error) *ConfigError {
	return &ConfigError{
		MarcframeError: &MarcframeError{
			Type:    ErrTypeConfig,
			Path:    path,
			Message: message,
			Cause:   cause,
		},
	}
}

// ParsingError represents a frame document that could not be decoded, or a
// frame value that does not have the shape the projections require.
type ParsingError struct {
	*MarcframeError
}

// NewParsingError creates a parsing error with file and context information.
func NewParsingError(path, message string, cause error) *ParsingError {
	return &ParsingError{
		MarcframeError: &MarcframeError{
			Type:    ErrTypeParsing,
			Path:    path,
			Message: message,
			Cause:   cause,
		},
	}
}

// TemplateError represents a missing template, a template syntax error or a
// failure while executing a template.
type TemplateError struct {
	*MarcframeError
}

// NewTemplateError creates a template error. The path is the template name.
func NewTemplateError(name, message string, cause error) *TemplateError {
	return &TemplateError{
		MarcframeError: &MarcframeError{
			Type:    ErrTypeTemplate,
			Path:    name,
			Message: message,
			Cause:   cause,
		},
	}
}

// OutputError represents a failure to deliver the rendered document,
// including failures to back up a previous report.
type OutputError struct {
	*MarcframeError
}

// NewOutputError creates an output error.
func NewOutputError(path, message string, cause error) *OutputError {
	return &OutputError{
		MarcframeError: &MarcframeError{
			Type:    ErrTypeOutput,
			Path:    path,
			Message: message,
			Cause:   cause,
		},
	}
}

// WrapFileError converts standard Go errors into typed MarcframeError instances.
// This function provides centralized error classification logic, ensuring
// consistent error typing across the application.
func WrapFileError(path string, err error) error {
	if err == nil {
		return nil
	}

	absPath, absErr := filepath.Abs(path)
	if absErr != nil {
		absPath = path
	}
	switch {
	case stderrors.Is(err, fs.ErrNotExist):
		return NewFileNotFoundError(absPath, err)
	case stderrors.Is(err, fs.ErrPermission):
		return NewFileNotReadableError(absPath, err)
	default:
		return NewFileError(absPath, "file operation failed", err)
	}
}
