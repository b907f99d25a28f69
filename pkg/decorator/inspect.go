package decorator

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Field describes one bindable control found in a fragment. Options holds the
// option values of a select or the value of a checkbox/radio.
type Field struct {
	Kind    Kind     `json:"kind"`
	Type    string   `json:"type,omitempty"`
	ID      string   `json:"id,omitempty"`
	Name    string   `json:"name,omitempty"`
	Key     string   `json:"key,omitempty"`
	Options []string `json:"options,omitempty"`
	Skipped bool     `json:"skipped,omitempty"`
}

// Inspect lists the bindable controls of fragment in processing order
// (inputs, textareas, selects) without rewriting anything. Skipped reports
// whether the skip policy matched the control id.
func (d *Decorator) Inspect(fragment string) ([]Field, error) {
	doc, err := parseFragment(strings.NewReader(fragment))
	if err != nil {
		return nil, err
	}
	controls := Discover(doc)
	var fields []Field

	describe := func(kind Kind, control *goquery.Selection) Field {
		field := Field{
			Kind: kind,
			ID:   control.AttrOr("id", ""),
			Name: control.AttrOr("name", ""),
		}
		field.Key, _ = FieldKey(field.Name)
		_, field.Skipped = d.skip.Match(field.ID)
		return field
	}

	controls.Inputs.Each(func(_ int, input *goquery.Selection) {
		field := describe(inputKind(input), input)
		field.Type = strings.ToLower(strings.TrimSpace(input.AttrOr("type", "")))
		if value, ok := input.Attr("value"); ok && field.Kind == KindCheckable {
			field.Options = []string{value}
		}
		fields = append(fields, field)
	})
	controls.Textareas.Each(func(_ int, textarea *goquery.Selection) {
		fields = append(fields, describe(KindTextarea, textarea))
	})
	controls.Selects.Each(func(_ int, sel *goquery.Selection) {
		field := describe(KindSelect, sel)
		for _, option := range Options(sel) {
			if value, ok := option.Attr("value"); ok {
				field.Options = append(field.Options, value)
			}
		}
		fields = append(fields, field)
	})
	return fields, nil
}

// Keys returns the distinct field keys of fields in first-seen order.
func Keys(fields []Field) []string {
	var keys []string
	seen := make(map[string]struct{}, len(fields))
	for _, field := range fields {
		if field.Key == "" {
			continue
		}
		if _, ok := seen[field.Key]; ok {
			continue
		}
		seen[field.Key] = struct{}{}
		keys = append(keys, field.Key)
	}
	return keys
}
