package decorator

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/goliatone/go-formblock/pkg/block"
)

// storedValue resolves the field key from name and looks it up in the item.
// A key present with an empty value is a hit.
func storedValue(name string, item block.Item) (any, bool) {
	key, ok := FieldKey(name)
	if !ok {
		return nil, false
	}
	return block.Lookup(item, key)
}

// bindValue writes the stored value into the value attribute.
func (d *Decorator) bindValue(control *goquery.Selection, item block.Item) bool {
	value, ok := storedValue(control.AttrOr("name", ""), item)
	if !ok {
		return false
	}
	control.SetAttr("value", d.display(value))
	return true
}

// bindChecked clears checked and sets it again when the stored value matches
// the control value.
func (d *Decorator) bindChecked(control *goquery.Selection, item block.Item) bool {
	value, ok := storedValue(control.AttrOr("name", ""), item)
	if !ok {
		return false
	}
	control.RemoveAttr("checked")
	if current, has := control.Attr("value"); has && matches(value, current) {
		control.SetAttr("checked", "checked")
	}
	return true
}

// bindTextarea replaces the textarea content with the stored value.
func (d *Decorator) bindTextarea(control *goquery.Selection, item block.Item) bool {
	value, ok := storedValue(control.AttrOr("name", ""), item)
	if !ok {
		return false
	}
	control.SetText(d.display(value))
	return true
}

// bindOptions applies the stored value of the select to each option. The key
// comes from the select name, never from the option.
func (d *Decorator) bindOptions(sel *goquery.Selection, item block.Item) bool {
	value, ok := storedValue(sel.AttrOr("name", ""), item)
	if !ok {
		return false
	}
	for _, option := range Options(sel) {
		option.RemoveAttr("selected")
		if current, has := option.Attr("value"); has && matches(value, current) {
			option.SetAttr("selected", "selected")
		}
	}
	return true
}

func (d *Decorator) display(value any) string {
	var out string
	switch v := value.(type) {
	case []any:
		parts := make([]string, len(v))
		for i, entry := range v {
			parts[i] = block.String(entry)
		}
		out = strings.Join(parts, ",")
	case []string:
		out = strings.Join(v, ",")
	default:
		out = block.String(value)
	}
	if d.filter != nil {
		out = d.filter(out)
	}
	return out
}

// matches compares a stored value against a control value as strings. A list
// matches when any of its entries does.
func matches(stored any, current string) bool {
	switch v := stored.(type) {
	case []any:
		for _, entry := range v {
			if block.String(entry) == current {
				return true
			}
		}
		return false
	case []string:
		for _, entry := range v {
			if entry == current {
				return true
			}
		}
		return false
	default:
		return block.String(stored) == current
	}
}
