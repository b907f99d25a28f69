// Package formblock repeats one HTML form fragment once per stored content
// block, rewriting control ids, label targets and name indexes per instance
// and writing each block's stored values into its controls.
package formblock

import (
	"context"

	"github.com/goliatone/go-formblock/pkg/block"
	"github.com/goliatone/go-formblock/pkg/decorator"
	"github.com/goliatone/go-formblock/pkg/render"
)

// Item is a stored block: an instance id plus values keyed by field key.
type Item = block.Item

// Record is the map-backed Item returned by the block loaders.
type Record = block.Record

// Field describes one bindable control of a fragment.
type Field = decorator.Field

// NewRecord builds a Record from an instance id and its values.
func NewRecord(id string, values map[string]any) Record {
	return block.NewRecord(id, values)
}

// Transform decorates fragment for a single block using the default skip
// markers.
func Transform(fragment string, item Item) (string, error) {
	return decorator.Transform(fragment, item)
}

// Inspect lists the bindable controls of fragment.
func Inspect(fragment string) ([]Field, error) {
	return decorator.New().Inspect(fragment)
}

// RenderBlocks decorates fragment once per record and joins the results.
func RenderBlocks(ctx context.Context, fragment string, records []Record, options ...render.Option) (string, error) {
	return render.Blocks(ctx, fragment, records, options...)
}
