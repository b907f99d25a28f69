// Package block defines the per-instance data a repeated form fragment is
// decorated with. An Item pairs the identifier of one rendered copy with the
// stored values keyed by field name. Items are read-only during a decoration
// pass and are discarded afterwards.
package block

import (
	"strconv"
	"strings"
)

// Item supplies the instance identifier and the stored field values for one
// rendered copy of a form fragment.
type Item interface {
	ID() string
	Values() map[string]any
}

// Record is the default Item implementation.
type Record struct {
	id     string
	values map[string]any
}

var _ Item = Record{}

// NewRecord builds a Record. The values map is copied so later mutations by
// the caller do not leak into an in-flight decoration pass.
func NewRecord(id string, values map[string]any) Record {
	return Record{
		id:     strings.TrimSpace(id),
		values: cloneValues(values),
	}
}

// NewIndexedRecord builds a Record whose identifier is the provided number.
func NewIndexedRecord(id int, values map[string]any) Record {
	return NewRecord(strconv.Itoa(id), values)
}

// ID returns the instance identifier.
func (r Record) ID() string {
	return r.id
}

// Values returns the stored values keyed by field key.
func (r Record) Values() map[string]any {
	return r.values
}

// Lookup returns the stored value for key and whether it was present. A
// present key with an empty value reports true.
func Lookup(item Item, key string) (any, bool) {
	if item == nil || key == "" {
		return nil, false
	}
	values := item.Values()
	if values == nil {
		return nil, false
	}
	value, ok := values[key]
	return value, ok
}

func cloneValues(src map[string]any) map[string]any {
	if len(src) == 0 {
		return map[string]any{}
	}
	out := make(map[string]any, len(src))
	for key, value := range src {
		out[key] = value
	}
	return out
}
