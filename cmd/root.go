package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"marcframeview/internal/config"
)

func newRootCmd() *cobra.Command {
	cfg := &config.Config{}

	rootCmd := &cobra.Command{
		Use:   "marcframeview [flags] <marcframe-path>",
		Short: "Render a MARC frame as an HTML report",
		Long: `Marcframeview reads a MARC frame, the JSON description of how MARC
bibliographic, authority and holdings fields map onto the data model, and
renders its categories, numeric tags and subfield codes as an HTML report.
The report is written to stdout unless --output names a file.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, cfg, args)
		},
	}

	flags := rootCmd.Flags()
	flags.Var((*frameFormatFlag)(&cfg.FrameFormat), "format", "Frame format (json, yaml; default: from extension)")
	flags.StringVar(&cfg.TemplateDir, "template-dir", "", "Directory searched for templates before the built-in ones")
	flags.StringVar(&cfg.TemplateName, "template", config.DefaultTemplateName, "Template to render")
	flags.StringVarP(&cfg.OutputFile, "output", "o", "", "Output file (default: stdout)")
	flags.BoolVar(&cfg.Backup, "backup", false, "Keep a timestamped .bak copy of an existing output file")
	flags.BoolVarP(&cfg.Verbose, "verbose", "v", false, "Verbose mode")
	flags.BoolVar(&cfg.Debug, "debug", false, "Debug mode")
	flags.BoolVarP(&cfg.Quiet, "quiet", "q", false, "Quiet mode")
	flags.StringVar(&cfg.LogFile, "log", "", "Log file (default: stderr)")
	flags.Var((*logFormatFlag)(&cfg.LogFormat), "log-format", "Log format (text, json, csv)")

	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")
	rootCmd.MarkFlagsMutuallyExclusive("debug", "quiet")

	return rootCmd
}

// Execute runs the root command and handles top-level error reporting.
// Any failure is printed once on stderr and ends the process with status 1.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err.Error())
		os.Exit(1)
	}
}

func runRender(cmd *cobra.Command, cfg *config.Config, args []string) error {
	cfg.FramePath = args[0]

	if err := cfg.Validate(); err != nil {
		return err
	}

	return executeRender(cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
}

type frameFormatFlag config.FrameFormat

func (f *frameFormatFlag) String() string {
	return string(*f)
}

func (f *frameFormatFlag) Set(v string) error {
	switch config.FrameFormat(v) {
	case config.FrameFormatJSON, config.FrameFormatYAML:
		*f = frameFormatFlag(v)
		return nil
	default:
		return fmt.Errorf("must be 'json' or 'yaml'")
	}
}

func (f *frameFormatFlag) Type() string {
	return "string"
}

type logFormatFlag config.LogFormat

func (f *logFormatFlag) String() string {
	return string(*f)
}

func (f *logFormatFlag) Set(v string) error {
	switch config.LogFormat(v) {
	case config.LogFormatText, config.LogFormatJSON, config.LogFormatCSV:
		*f = logFormatFlag(v)
		return nil
	default:
		return fmt.Errorf("must be 'text', 'json' or 'csv'")
	}
}

func (f *logFormatFlag) Type() string {
	return "string"
}
