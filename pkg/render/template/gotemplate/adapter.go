package gotemplate

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-formblock/pkg/render/template"
)

// DefaultExtension is appended to template names given without it.
const DefaultExtension = ".tpl"

// Option configures an Engine.
type Option func(*settings)

type settings struct {
	baseDir   string
	fsys      fs.FS
	extension string
	globals   map[string]any
}

// WithBaseDir resolves template names against a directory on disk. It is
// searched before any fs.FS given with WithFS.
func WithBaseDir(dir string) Option {
	return func(s *settings) {
		s.baseDir = strings.TrimSpace(dir)
	}
}

// WithFS resolves template names against fsys.
func WithFS(fsys fs.FS) Option {
	return func(s *settings) {
		s.fsys = fsys
	}
}

// WithExtension overrides DefaultExtension. A missing leading dot is added.
func WithExtension(ext string) Option {
	return func(s *settings) {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			return
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		s.extension = ext
	}
}

// WithGlobalData exposes data to every template next to the per-block
// context. Per-block keys win on collision.
func WithGlobalData(data map[string]any) Option {
	return func(s *settings) {
		for key, value := range data {
			key = strings.TrimSpace(key)
			if key == "" {
				continue
			}
			if s.globals == nil {
				s.globals = make(map[string]any, len(data))
			}
			s.globals[key] = value
		}
	}
}

// Engine renders block wrappers with pongo2. Compiled templates, named and
// inline, are cached for the lifetime of the engine.
type Engine struct {
	set       *pongo2.TemplateSet
	extension string

	mu       sync.RWMutex
	compiled map[string]*pongo2.Template
}

var _ template.TemplateRenderer = (*Engine)(nil)

// New builds an Engine. A base directory or an fs.FS is required.
func New(options ...Option) (*Engine, error) {
	s := settings{extension: DefaultExtension}
	for _, opt := range options {
		if opt != nil {
			opt(&s)
		}
	}

	var loaders []pongo2.TemplateLoader
	if s.baseDir != "" {
		loader, err := pongo2.NewLocalFileSystemLoader(s.baseDir)
		if err != nil {
			return nil, fmt.Errorf("gotemplate: template dir %s: %w", s.baseDir, err)
		}
		loaders = append(loaders, loader)
	}
	if s.fsys != nil {
		loaders = append(loaders, pongo2.NewFSLoader(s.fsys))
	}
	if len(loaders) == 0 {
		return nil, errors.New("gotemplate: need to provide either base dir or fs.FS")
	}

	set := pongo2.NewSet("formblock", loaders...)
	if len(s.globals) > 0 {
		set.Globals.Update(pongo2.Context(s.globals))
	}

	return &Engine{
		set:       set,
		extension: s.extension,
		compiled:  make(map[string]*pongo2.Template),
	}, nil
}

// Render treats name as inline template content when it contains template
// tags and as a template name otherwise.
func (e *Engine) Render(name string, data any, out ...io.Writer) (string, error) {
	if strings.Contains(name, "{{") || strings.Contains(name, "{%") {
		return e.RenderString(name, data, out...)
	}
	return e.RenderTemplate(name, data, out...)
}

// RenderTemplate renders the named template, appending the engine extension
// when name lacks it.
func (e *Engine) RenderTemplate(name string, data any, out ...io.Writer) (string, error) {
	path := strings.TrimSpace(name)
	if !strings.HasSuffix(path, e.extension) {
		path += e.extension
	}
	tmpl, err := e.compile("file:"+path, func() (*pongo2.Template, error) {
		return e.set.FromFile(path)
	})
	if err != nil {
		return "", fmt.Errorf("gotemplate: load template %q: %w", path, err)
	}
	return execute(tmpl, data, out)
}

// RenderString renders inline template content.
func (e *Engine) RenderString(content string, data any, out ...io.Writer) (string, error) {
	tmpl, err := e.compile("inline:"+content, func() (*pongo2.Template, error) {
		return e.set.FromString(content)
	})
	if err != nil {
		return "", fmt.Errorf("gotemplate: compile inline template: %w", err)
	}
	return execute(tmpl, data, out)
}

// RegisterFilter makes fn available to templates as name. pongo2 filters are
// process-wide; registering an existing name replaces it.
func (e *Engine) RegisterFilter(name string, fn func(input any, param any) (any, error)) error {
	name = strings.TrimSpace(name)
	if name == "" || fn == nil {
		return errors.New("gotemplate: filter name and function required")
	}

	filter := func(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
		var arg any
		if param != nil {
			arg = param.Interface()
		}
		result, err := fn(in.Interface(), arg)
		if err != nil {
			return nil, &pongo2.Error{Sender: "filter:" + name, OrigError: err}
		}
		return pongo2.AsValue(result), nil
	}

	if pongo2.FilterExists(name) {
		return pongo2.ReplaceFilter(name, filter)
	}
	return pongo2.RegisterFilter(name, filter)
}

func (e *Engine) compile(key string, build func() (*pongo2.Template, error)) (*pongo2.Template, error) {
	e.mu.RLock()
	tmpl, ok := e.compiled[key]
	e.mu.RUnlock()
	if ok {
		return tmpl, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if tmpl, ok := e.compiled[key]; ok {
		return tmpl, nil
	}
	tmpl, err := build()
	if err != nil {
		return nil, err
	}
	e.compiled[key] = tmpl
	return tmpl, nil
}

func execute(tmpl *pongo2.Template, data any, out []io.Writer) (string, error) {
	ctx, err := viewContext(data)
	if err != nil {
		return "", err
	}
	rendered, err := tmpl.Execute(ctx)
	if err != nil {
		return "", fmt.Errorf("gotemplate: execute: %w", err)
	}
	for _, w := range out {
		if _, err := io.WriteString(w, rendered); err != nil {
			return "", fmt.Errorf("gotemplate: write output: %w", err)
		}
	}
	return rendered, nil
}

// viewContext accepts the map shapes the block renderer produces.
func viewContext(data any) (pongo2.Context, error) {
	switch v := data.(type) {
	case nil:
		return pongo2.Context{}, nil
	case pongo2.Context:
		return v, nil
	case map[string]any:
		return pongo2.Context(v), nil
	default:
		return nil, fmt.Errorf("gotemplate: unsupported template data %T", data)
	}
}
