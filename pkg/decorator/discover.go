package decorator

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Kind classifies a bindable control.
type Kind string

const (
	KindInput     Kind = "input"
	KindCheckable Kind = "checkable"
	KindTextarea  Kind = "textarea"
	KindSelect    Kind = "select"
	KindOption    Kind = "option"
)

// Controls groups the bindable controls of a fragment in document order.
type Controls struct {
	Inputs    *goquery.Selection
	Textareas *goquery.Selection
	Selects   *goquery.Selection
}

// Discover locates inputs, textareas and selects. It does not mutate the
// document.
func Discover(doc *goquery.Document) Controls {
	return Controls{
		Inputs:    doc.Find("input"),
		Textareas: doc.Find("textarea"),
		Selects:   doc.Find("select"),
	}
}

// Options returns the option elements of a select in document order. Options
// nested in an optgroup take the optgroup's place; any other child is ignored.
func Options(sel *goquery.Selection) []*goquery.Selection {
	var out []*goquery.Selection
	sel.Children().Each(func(_ int, child *goquery.Selection) {
		switch goquery.NodeName(child) {
		case "option":
			out = append(out, child)
		case "optgroup":
			child.Children().Each(func(_ int, nested *goquery.Selection) {
				if goquery.NodeName(nested) == "option" {
					out = append(out, nested)
				}
			})
		}
	})
	return out
}

func inputKind(control *goquery.Selection) Kind {
	switch strings.ToLower(strings.TrimSpace(control.AttrOr("type", ""))) {
	case "checkbox", "radio":
		return KindCheckable
	default:
		return KindInput
	}
}
