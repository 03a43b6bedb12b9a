// Package render turns a loaded frame into the HTML report.
// It wraps a pongo2 template set whose templates are written in the report
// dialect (${ } interpolation, %-prefixed line statements), resolves them
// from an optional directory and from the templates embedded in the binary,
// and renders into memory so nothing is emitted unless rendering succeeds.
package render

import (
	"bytes"
	"io/fs"
	"strings"

	"github.com/flosch/pongo2/v6"

	"marcframeview/internal/errors"
)

// Option configures the Engine before construction.
type Option func(*engineConfig)

type engineConfig struct {
	baseDir   string
	templates fs.FS
}

// WithBaseDir loads templates from a directory on disk before falling back
// to the embedded templates.
func WithBaseDir(dir string) Option {
	return func(cfg *engineConfig) {
		cfg.baseDir = strings.TrimSpace(dir)
	}
}

// withFS loads templates from an fs.FS before falling back to the embedded
// templates. A base directory, when also set, takes precedence.
func withFS(files fs.FS) Option {
	return func(cfg *engineConfig) {
		cfg.templates = files
	}
}

// Engine renders report templates.
type Engine struct {
	templateSet *pongo2.TemplateSet
	loaders     []*dialectLoader
}

// New constructs an Engine. The embedded templates are always the last loader.
func New(options ...Option) (*Engine, error) {
	cfg := &engineConfig{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}

	var loaders []*dialectLoader
	if cfg.baseDir != "" {
		loader, err := pongo2.NewLocalFileSystemLoader(cfg.baseDir)
		if err != nil {
			return nil, errors.NewTemplateError(cfg.baseDir, "failed to open template directory", err)
		}
		loaders = append(loaders, newDialectLoader(loader))
	}
	if cfg.templates != nil {
		loaders = append(loaders, newDialectLoader(pongo2.NewFSLoader(cfg.templates)))
	}
	loaders = append(loaders, newDialectLoader(pongo2.NewFSLoader(Templates())))

	setLoaders := make([]pongo2.TemplateLoader, len(loaders))
	for i, loader := range loaders {
		setLoaders[i] = loader
	}

	registerDefaultFilters()

	return &Engine{
		templateSet: pongo2.NewSet("marcframeview", setLoaders...),
		loaders:     loaders,
	}, nil
}

// Render executes the named template against ctx and returns the whole
// document. Template lookup, syntax and execution failures are TemplateErrors.
func (e *Engine) Render(name string, ctx Context) ([]byte, error) {
	for _, loader := range e.loaders {
		loader.lastErr = nil
	}

	// A loader that found the template but could not translate it shadows
	// every loader after it, even when a later one resolved the name.
	tmpl, err := e.templateSet.FromFile(name)
	if syntaxErr := e.translationError(); syntaxErr != nil {
		return nil, errors.NewTemplateError(name, "failed to parse template", syntaxErr)
	}
	if err != nil {
		return nil, errors.NewTemplateError(name, "failed to load template", err)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteWriter(ctx.namespace(), &buf); err != nil {
		return nil, errors.NewTemplateError(name, "failed to execute template", err)
	}

	return buf.Bytes(), nil
}

func (e *Engine) translationError() error {
	for _, loader := range e.loaders {
		if loader.lastErr != nil {
			return loader.lastErr
		}
	}
	return nil
}
