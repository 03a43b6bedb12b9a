// Package config provides configuration management and validation for marcframeview.
// It centralizes all command-line options and runtime settings, providing
// validation logic to catch configuration errors before the frame is read.
package config

import (
	"path/filepath"
	"strings"

	"marcframeview/internal/errors"
)

// DefaultTemplateName is the template rendered when no --template is given.
// It is always available from the templates embedded in the binary.
const DefaultTemplateName = "template.html"

// FrameFormat names the decoder used for the frame document.
type FrameFormat string

// Supported frame formats. An empty format is inferred from the file extension.
const (
	FrameFormatAuto FrameFormat = ""
	FrameFormatJSON FrameFormat = "json"
	FrameFormatYAML FrameFormat = "yaml"
)

// LogFormat represents the supported output formats for the run report.
type LogFormat string

// Supported log format constants.
const (
	LogFormatText LogFormat = "text"
	LogFormatJSON LogFormat = "json"
	LogFormatCSV  LogFormat = "csv"
)

// Config holds all runtime configuration options for a rendering pass.
// It provides a single source of truth for all settings, so the loader,
// renderer, output writer and run log never read flags directly.
type Config struct {
	FramePath    string
	FrameFormat  FrameFormat
	TemplateDir  string
	TemplateName string
	OutputFile   string
	Backup       bool
	Verbose      bool
	Debug        bool
	Quiet        bool
	LogFile      string
	LogFormat    LogFormat
}

// Validate performs validation of configuration settings and fills in defaults.
// Paths are resolved to absolute paths so error messages name the exact file.
func (c *Config) Validate() error {
	if err := c.validateFramePath(); err != nil {
		return err
	}

	if err := c.validateFrameFormat(); err != nil {
		return err
	}

	if err := c.validateTemplateDir(); err != nil {
		return err
	}

	if err := c.validateOutput(); err != nil {
		return err
	}

	if err := c.validateLogFormat(); err != nil {
		return err
	}

	c.normalizeConfig()
	return nil
}

func (c *Config) validateFramePath() error {
	if c.FramePath == "" {
		return errors.NewConfigError("marcframe path is required", nil)
	}

	absPath, err := filepath.Abs(c.FramePath)
	if err != nil {
		return errors.NewConfigErrorWithPath(c.FramePath, "invalid marcframe path", err)
	}
	c.FramePath = absPath
	return nil
}

func (c *Config) validateFrameFormat() error {
	switch c.FrameFormat {
	case FrameFormatAuto, FrameFormatJSON, FrameFormatYAML:
		return nil
	default:
		return errors.NewConfigError("frame format must be 'json' or 'yaml'", nil)
	}
}

func (c *Config) validateTemplateDir() error {
	if c.TemplateDir == "" {
		return nil
	}

	absDir, err := filepath.Abs(c.TemplateDir)
	if err != nil {
		return errors.NewConfigErrorWithPath(c.TemplateDir, "invalid template directory", err)
	}
	c.TemplateDir = absDir
	return nil
}

func (c *Config) validateOutput() error {
	if c.Backup && c.OutputFile == "" {
		return errors.NewConfigError("--backup requires --output", nil)
	}

	if c.OutputFile != "" {
		absOutput, err := filepath.Abs(c.OutputFile)
		if err != nil {
			return errors.NewConfigErrorWithPath(c.OutputFile, "invalid output path", err)
		}
		c.OutputFile = absOutput
	}
	return nil
}

func (c *Config) validateLogFormat() error {
	switch c.LogFormat {
	case "", LogFormatText, LogFormatJSON, LogFormatCSV:
		return nil
	default:
		return errors.NewConfigError("log format must be 'text', 'json' or 'csv'", nil)
	}
}

func (c *Config) normalizeConfig() {
	if c.LogFormat == "" {
		c.LogFormat = LogFormatText
	}
	c.TemplateName = strings.TrimSpace(c.TemplateName)
	if c.TemplateName == "" {
		c.TemplateName = DefaultTemplateName
	}
}

// ResolvedFrameFormat returns the decoder to use for FramePath.
// An explicit format wins; otherwise .yaml and .yml select YAML and every
// other extension selects JSON.
func (c *Config) ResolvedFrameFormat() FrameFormat {
	if c.FrameFormat != FrameFormatAuto {
		return c.FrameFormat
	}

	switch strings.ToLower(filepath.Ext(c.FramePath)) {
	case ".yaml", ".yml":
		return FrameFormatYAML
	default:
		return FrameFormatJSON
	}
}

// IsVerbose determines if verbose logging is enabled.
// Quiet mode overrides Verbose mode.
func (c *Config) IsVerbose() bool {
	return c.Verbose && !c.Quiet
}

// IsDebug determines if debug logging is enabled.
// Quiet mode overrides Debug mode.
func (c *Config) IsDebug() bool {
	return c.Debug && !c.Quiet
}

// ShouldLog determines if any logging should occur.
func (c *Config) ShouldLog() bool {
	return !c.Quiet
}

// ShouldReport determines if a run report is written at the end of the pass.
// A report goes out when one was asked for, either with --log or --verbose.
func (c *Config) ShouldReport() bool {
	if !c.ShouldLog() {
		return false
	}
	return c.LogFile != "" || c.IsVerbose() || c.IsDebug()
}

// ShouldCreateBackup determines if an existing output file is backed up
// before it is replaced.
func (c *Config) ShouldCreateBackup() bool {
	return c.Backup && c.OutputFile != ""
}
