// Package cmd implements the command-line interface of marcframeview.
// It wires configuration, frame loading, rendering, output and the run log
// into a single pass that either writes the whole report or fails.
package cmd

import (
	"io"
	"time"

	"marcframeview/internal/config"
	"marcframeview/internal/frame"
	"marcframeview/internal/log"
	"marcframeview/internal/output"
	"marcframeview/internal/render"
)

func executeRender(cfg *config.Config, stdout, stderr io.Writer) error {
	startTime := time.Now()

	marcframe, err := frame.Load(cfg.FramePath, cfg.ResolvedFrameFormat())
	if err != nil {
		return err
	}

	var options []render.Option
	if cfg.TemplateDir != "" {
		options = append(options, render.WithBaseDir(cfg.TemplateDir))
	}
	engine, err := render.New(options...)
	if err != nil {
		return err
	}

	doc, err := engine.Render(cfg.TemplateName, render.Context{Frame: marcframe})
	if err != nil {
		return err
	}

	// The log file is only opened once there is a document to report on.
	logger, err := log.NewLogger(cfg, stderr)
	if err != nil {
		return err
	}
	defer logger.Close()

	if cfg.ShouldReport() {
		traceFrame(logger, marcframe)
	}

	backupPath, err := output.NewWriter(cfg, stdout).Write(doc)
	if err != nil {
		return err
	}

	logger.SetOutput(len(doc), backupPath)
	logger.SetProcessingTime(time.Since(startTime))
	return logger.WriteReport()
}

// traceFrame feeds the projected structure to the run log. Definitions that
// are not objects are left for the template to report.
func traceFrame(logger *log.Logger, marcframe frame.Frame) {
	for category, value := range frame.Categories(marcframe) {
		logger.LogCategory(category)

		catDef, err := frame.AsDefinition(value)
		if err != nil {
			continue
		}
		for tag, tagValue := range frame.Tags(catDef) {
			var codes []string
			if tagDef, err := frame.AsDefinition(tagValue); err == nil {
				for code := range frame.Codes(tagDef) {
					codes = append(codes, code)
				}
			}
			logger.LogTag(category, tag, codes)
		}
	}
}
