// Package render assembles a list of blocks by decorating the same form
// fragment once per stored block and joining the results.
package render

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-formblock/pkg/block"
	"github.com/goliatone/go-formblock/pkg/decorator"
	"github.com/goliatone/go-formblock/pkg/render/template"
)

// DefaultSeparator joins blocks when no wrapper template is configured.
const DefaultSeparator = "\n"

// Option customises the Renderer.
type Option func(*Renderer)

// WithDecorator injects the decorator applied to each block.
func WithDecorator(d *decorator.Decorator) Option {
	return func(r *Renderer) {
		if d != nil {
			r.decorator = d
		}
	}
}

// WithWrapper renders each decorated block through wrapper, either a template
// name known to engine or inline template content. The template receives
// block.id, block.index (1-based), block.first, block.last, block.html,
// block.values and blocks.count. Use {{ block.html|safe }} to emit the markup.
func WithWrapper(engine template.TemplateRenderer, wrapper string) Option {
	return func(r *Renderer) {
		r.engine = engine
		r.wrapper = strings.TrimSpace(wrapper)
	}
}

// WithSeparator overrides the string placed between blocks.
func WithSeparator(separator string) Option {
	return func(r *Renderer) {
		r.separator = separator
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// Renderer decorates a fragment for every item of a block list.
type Renderer struct {
	decorator *decorator.Decorator
	engine    template.TemplateRenderer
	wrapper   string
	separator string
	logger    *zap.Logger
}

// New constructs a Renderer using the default decorator and separator.
func New(options ...Option) *Renderer {
	r := &Renderer{
		decorator: decorator.New(),
		separator: DefaultSeparator,
		logger:    zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r
}

// Render decorates fragment once per item, in order. An empty item list
// renders an empty string. Cancellation is checked between blocks.
func (r *Renderer) Render(ctx context.Context, fragment string, items []block.Item) (string, error) {
	if ctx == nil {
		return "", errors.New("render: context is required")
	}
	if r.wrapper != "" && r.engine == nil {
		return "", errors.New("render: wrapper configured without a template engine")
	}

	parts := make([]string, 0, len(items))
	for idx, item := range items {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		if item == nil {
			return "", fmt.Errorf("render: block %d is nil", idx+1)
		}

		markup, err := r.decorator.Decorate(fragment, item)
		if err != nil {
			return "", fmt.Errorf("render: block %q: %w", item.ID(), err)
		}
		if r.wrapper != "" {
			markup, err = r.engine.Render(r.wrapper, wrapperData(item, markup, idx, len(items)))
			if err != nil {
				return "", fmt.Errorf("render: wrap block %q: %w", item.ID(), err)
			}
		}
		parts = append(parts, markup)
	}

	r.logger.Debug("render: blocks rendered", zap.Int("count", len(parts)))
	return strings.Join(parts, r.separator), nil
}

// Blocks renders records with a default Renderer.
func Blocks(ctx context.Context, fragment string, records []block.Record, options ...Option) (string, error) {
	return New(options...).Render(ctx, fragment, Items(records))
}

// Items converts records into the Item slice Render expects.
func Items(records []block.Record) []block.Item {
	items := make([]block.Item, len(records))
	for i, record := range records {
		items[i] = record
	}
	return items
}

func wrapperData(item block.Item, markup string, idx, count int) map[string]any {
	values := make(map[string]any, len(item.Values()))
	for key, value := range item.Values() {
		values[key] = value
	}
	return map[string]any{
		"block": map[string]any{
			"id":     item.ID(),
			"index":  idx + 1,
			"first":  idx == 0,
			"last":   idx == count-1,
			"html":   markup,
			"values": values,
		},
		"blocks": map[string]any{
			"count": count,
		},
	}
}
