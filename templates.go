package formblock

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/goliatone/go-formblock/pkg/render/template/gotemplate"
	"github.com/goliatone/go-formblock/pkg/sanitize"
)

//go:embed templates/*.tpl
var embeddedTemplates embed.FS

// EmbeddedTemplates exposes the built-in block wrapper templates (block.tpl,
// list-item.tpl) so callers can reuse them or layer their own on top.
func EmbeddedTemplates() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return embeddedTemplates
	}
	return sub
}

// NewTemplateEngine returns a wrapper engine that resolves the built-in
// templates. Extra options (for example gotemplate.WithBaseDir) add loaders
// that are searched first. Templates can use the strip_markup filter to turn
// stored values into plain text.
func NewTemplateEngine(options ...gotemplate.Option) (*gotemplate.Engine, error) {
	all := make([]gotemplate.Option, 0, len(options)+1)
	all = append(all, options...)
	all = append(all, gotemplate.WithFS(EmbeddedTemplates()))

	engine, err := gotemplate.New(all...)
	if err != nil {
		return nil, err
	}
	if err := engine.RegisterFilter("strip_markup", stripMarkupFilter); err != nil {
		return nil, fmt.Errorf("formblock: register strip_markup: %w", err)
	}
	return engine, nil
}

func stripMarkupFilter(input any, _ any) (any, error) {
	if input == nil {
		return "", nil
	}
	return sanitize.StripMarkup(fmt.Sprint(input)), nil
}
