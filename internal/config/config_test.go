package config

import (
	"path/filepath"
	"testing"
)

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		expectError bool
	}{
		{
			name: "valid config",
			config: Config{
				FramePath: "marcframe.json",
			},
			expectError: false,
		},
		{
			name:        "missing frame path",
			config:      Config{},
			expectError: true,
		},
		{
			name: "valid yaml format",
			config: Config{
				FramePath:   "marcframe.yaml",
				FrameFormat: FrameFormatYAML,
			},
			expectError: false,
		},
		{
			name: "invalid frame format",
			config: Config{
				FramePath:   "marcframe.json",
				FrameFormat: "xml",
			},
			expectError: true,
		},
		{
			name: "backup without output",
			config: Config{
				FramePath: "marcframe.json",
				Backup:    true,
			},
			expectError: true,
		},
		{
			name: "backup with output",
			config: Config{
				FramePath:  "marcframe.json",
				OutputFile: "report.html",
				Backup:     true,
			},
			expectError: false,
		},
		{
			name: "invalid log format",
			config: Config{
				FramePath: "marcframe.json",
				LogFormat: "xml",
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.expectError && err == nil {
				t.Errorf("expected error, got nil")
			}
			if !tt.expectError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidateNormalizes(t *testing.T) {
	cfg := Config{
		FramePath:   "frames/marcframe.json",
		TemplateDir: "templates",
		OutputFile:  "out/report.html",
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for name, path := range map[string]string{
		"frame path":   cfg.FramePath,
		"template dir": cfg.TemplateDir,
		"output file":  cfg.OutputFile,
	} {
		if !filepath.IsAbs(path) {
			t.Errorf("expected absolute %s, got %q", name, path)
		}
	}
	if cfg.TemplateName != DefaultTemplateName {
		t.Errorf("expected template name %q, got %q", DefaultTemplateName, cfg.TemplateName)
	}
	if cfg.LogFormat != LogFormatText {
		t.Errorf("expected log format %q, got %q", LogFormatText, cfg.LogFormat)
	}
}

func TestResolvedFrameFormat(t *testing.T) {
	tests := []struct {
		path     string
		format   FrameFormat
		expected FrameFormat
	}{
		{"marcframe.json", FrameFormatAuto, FrameFormatJSON},
		{"marcframe.yaml", FrameFormatAuto, FrameFormatYAML},
		{"marcframe.YML", FrameFormatAuto, FrameFormatYAML},
		{"marcframe", FrameFormatAuto, FrameFormatJSON},
		{"marcframe.yaml", FrameFormatJSON, FrameFormatJSON},
		{"marcframe.txt", FrameFormatYAML, FrameFormatYAML},
	}

	for _, tt := range tests {
		cfg := Config{FramePath: tt.path, FrameFormat: tt.format}
		if got := cfg.ResolvedFrameFormat(); got != tt.expected {
			t.Errorf("ResolvedFrameFormat(%q, %q) = %q, expected %q", tt.path, tt.format, got, tt.expected)
		}
	}
}

func TestLoggingPrecedence(t *testing.T) {
	tests := []struct {
		name         string
		config       Config
		verbose      bool
		debug        bool
		shouldLog    bool
		shouldReport bool
		shouldBackup bool
	}{
		{
			name:      "defaults do not report",
			config:    Config{},
			shouldLog: true,
		},
		{
			name:         "verbose reports",
			config:       Config{Verbose: true},
			verbose:      true,
			shouldLog:    true,
			shouldReport: true,
		},
		{
			name:         "log file reports",
			config:       Config{LogFile: "run.log"},
			shouldLog:    true,
			shouldReport: true,
		},
		{
			name:   "quiet overrides verbose and debug",
			config: Config{Verbose: true, Debug: true, Quiet: true, LogFile: "run.log"},
		},
		{
			name:         "debug reports",
			config:       Config{Debug: true},
			debug:        true,
			shouldLog:    true,
			shouldReport: true,
		},
		{
			name:         "backup with output",
			config:       Config{Backup: true, OutputFile: "report.html"},
			shouldLog:    true,
			shouldBackup: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.config.IsVerbose(); got != tt.verbose {
				t.Errorf("IsVerbose() = %v, expected %v", got, tt.verbose)
			}
			if got := tt.config.IsDebug(); got != tt.debug {
				t.Errorf("IsDebug() = %v, expected %v", got, tt.debug)
			}
			if got := tt.config.ShouldLog(); got != tt.shouldLog {
				t.Errorf("ShouldLog() = %v, expected %v", got, tt.shouldLog)
			}
			if got := tt.config.ShouldReport(); got != tt.shouldReport {
				t.Errorf("ShouldReport() = %v, expected %v", got, tt.shouldReport)
			}
			if got := tt.config.ShouldCreateBackup(); got != tt.shouldBackup {
				t.Errorf("ShouldCreateBackup() = %v, expected %v", got, tt.shouldBackup)
			}
		})
	}
}
