package decorator

import (
	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

// FindLabelsByFor returns every label whose for attribute equals id, in
// document order. The lookup runs against the live tree on each call.
func FindLabelsByFor(doc *goquery.Document, id string) *goquery.Selection {
	return doc.Find("label").FilterFunction(func(_ int, label *goquery.Selection) bool {
		target, ok := label.Attr("for")
		return ok && target == id
	})
}

// disambiguate suffixes the control id with the instance id and repoints the
// labels that referenced the original id. It reports false when the control
// has no id or carries a skip marker.
func (d *Decorator) disambiguate(doc *goquery.Document, control *goquery.Selection, instanceID string) bool {
	id, ok := control.Attr("id")
	if !ok || id == "" {
		return false
	}
	if marker, skip := d.skip.Match(id); skip {
		d.logger.Debug("decorator: id rewrite skipped",
			zap.String("tag", goquery.NodeName(control)),
			zap.String("id", id),
			zap.String("marker", marker),
		)
		return false
	}

	newID := id + "_" + instanceID
	control.SetAttr("id", newID)
	FindLabelsByFor(doc, id).SetAttr("for", newID)
	return true
}
