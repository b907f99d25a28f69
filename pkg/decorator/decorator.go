package decorator

import (
	"errors"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/goliatone/go-formblock/pkg/block"
)

// Option customises a Decorator.
type Option func(*Decorator)

// WithSkipPolicy replaces the skip policy.
func WithSkipPolicy(policy SkipPolicy) Option {
	return func(d *Decorator) {
		d.skip = policy
	}
}

// WithSkipMarkers replaces the skip markers.
func WithSkipMarkers(markers ...string) Option {
	return func(d *Decorator) {
		d.skip = NewSkipPolicy(markers...)
	}
}

// WithExtraSkipMarkers adds markers on top of the current policy.
func WithExtraSkipMarkers(markers ...string) Option {
	return func(d *Decorator) {
		d.skip = d.skip.With(markers...)
	}
}

// WithValueFilter registers a function applied to stored values before they
// are written into a value attribute or textarea. Checked/selected matching
// always uses the unfiltered value.
func WithValueFilter(filter func(string) string) Option {
	return func(d *Decorator) {
		d.filter = filter
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *zap.Logger) Option {
	return func(d *Decorator) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// Decorator rewrites form fragments for one block at a time. It keeps no
// state between calls and is safe for concurrent use.
type Decorator struct {
	skip   SkipPolicy
	filter func(string) string
	logger *zap.Logger
}

// New constructs a Decorator with the default skip policy.
func New(options ...Option) *Decorator {
	d := &Decorator{
		skip:   DefaultSkipPolicy(),
		logger: zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(d)
	}
	return d
}

var defaultDecorator = New()

// Transform decorates fragment for item using the default configuration.
func Transform(fragment string, item block.Item) (string, error) {
	return defaultDecorator.Decorate(fragment, item)
}

// SkipPolicy returns the configured skip policy.
func (d *Decorator) SkipPolicy() SkipPolicy {
	return d.skip
}

// Decorate parses fragment, rewrites its controls for item and returns the
// serialised markup.
func (d *Decorator) Decorate(fragment string, item block.Item) (string, error) {
	return d.DecorateReader(strings.NewReader(fragment), item)
}

// DecorateReader is Decorate for a fragment read from r.
func (d *Decorator) DecorateReader(r io.Reader, item block.Item) (string, error) {
	if item == nil {
		return "", errors.New("decorator: item is required")
	}
	doc, err := parseFragment(r)
	if err != nil {
		return "", err
	}
	stats := d.apply(doc, item)
	d.logger.Debug("decorator: fragment decorated",
		zap.String("instance", item.ID()),
		zap.Int("controls", stats.controls),
		zap.Int("ids", stats.ids),
		zap.Int("names", stats.names),
		zap.Int("bound", stats.bound),
		zap.Int("skipped_selects", stats.skippedSelects),
	)
	return renderFragment(doc)
}

type passStats struct {
	controls       int
	ids            int
	names          int
	bound          int
	skippedSelects int
}

// apply runs the id, name and value steps for each control kind in turn:
// inputs, then textareas, then selects.
func (d *Decorator) apply(doc *goquery.Document, item block.Item) passStats {
	instanceID := item.ID()
	controls := Discover(doc)
	var stats passStats

	prepare := func(control *goquery.Selection) {
		stats.controls++
		if d.disambiguate(doc, control, instanceID) {
			stats.ids++
		}
		if reindex(control, instanceID) {
			stats.names++
		}
	}

	controls.Inputs.Each(func(_ int, input *goquery.Selection) {
		prepare(input)
		var bound bool
		switch inputKind(input) {
		case KindCheckable:
			bound = d.bindChecked(input, item)
		default:
			bound = d.bindValue(input, item)
		}
		if bound {
			stats.bound++
		}
	})

	controls.Textareas.Each(func(_ int, textarea *goquery.Selection) {
		prepare(textarea)
		if d.bindTextarea(textarea, item) {
			stats.bound++
		}
	})

	controls.Selects.Each(func(_ int, sel *goquery.Selection) {
		if marker, skip := d.skip.Match(sel.AttrOr("id", "")); skip {
			d.logger.Debug("decorator: select skipped",
				zap.String("id", sel.AttrOr("id", "")),
				zap.String("marker", marker),
			)
			stats.skippedSelects++
			return
		}
		prepare(sel)
		if d.bindOptions(sel, item) {
			stats.bound++
		}
	})

	return stats
}
