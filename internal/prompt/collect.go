package prompt

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/goliatone/go-formblock/pkg/block"
	"github.com/goliatone/go-formblock/pkg/decorator"
)

// Collect asks one question per distinct field key, in fragment order, and
// returns the answers keyed by field key. Fields whose id carries a skip
// marker are still asked: only their id is left alone by the decorator.
// Defaults pre-fill the prompts.
func Collect(ctx context.Context, driver Driver, fields []decorator.Field, defaults map[string]any) (map[string]any, error) {
	if driver == nil {
		return nil, errors.New("prompt: driver is required")
	}

	values := make(map[string]any)
	for _, e := range group(fields) {
		q := Question{
			Message:   e.key,
			Help:      e.help,
			Default:   defaultFor(defaults, e.key),
			Multiline: e.kind == decorator.KindTextarea,
		}
		if len(e.options) > 0 {
			q.Options = e.options
			if e.kind == decorator.KindCheckable {
				// unchecked
				q.Options = append([]string{""}, e.options...)
			}
		}

		answer, err := driver.Ask(ctx, q)
		if err != nil {
			return nil, fmt.Errorf("prompt: field %q: %w", e.key, err)
		}
		values[e.key] = answer
	}
	return values, nil
}

type entry struct {
	key     string
	kind    decorator.Kind
	options []string
	help    string
}

// group merges controls sharing a key: radio groups and checkbox values
// become the options of a single choice question.
func group(fields []decorator.Field) []entry {
	var out []entry
	index := make(map[string]int)
	for _, field := range fields {
		if field.Key == "" {
			continue
		}
		pos, seen := index[field.Key]
		if !seen {
			pos = len(out)
			index[field.Key] = pos
			out = append(out, entry{key: field.Key, kind: field.Kind})
		}
		e := &out[pos]
		switch field.Kind {
		case decorator.KindSelect, decorator.KindCheckable:
			for _, option := range field.Options {
				if !slices.Contains(e.options, option) {
					e.options = append(e.options, option)
				}
			}
		case decorator.KindTextarea:
			e.kind = decorator.KindTextarea
		}
		if field.Skipped && e.help == "" {
			e.help = "managed by an external widget; value is still written"
		}
	}
	return out
}

func defaultFor(defaults map[string]any, key string) string {
	value, ok := defaults[key]
	if !ok {
		return ""
	}
	return block.String(value)
}
