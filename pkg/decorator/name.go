package decorator

import (
	"regexp"

	"github.com/PuerkitoBio/goquery"
)

var (
	// "][12][" inside REX_INPUT_VALUE[1][12][title].
	nestedIndexPattern = regexp.MustCompile(`\]\[\d+\]\[`)
	// "[12][" when the index is the first segment, as in blocks[12][title].
	leadingIndexPattern = regexp.MustCompile(`\[\d+\]\[`)
	fieldKeyPattern     = regexp.MustCompile(`(?i)^.*?\[(\w+)\]$`)
)

// IndexName replaces the numeric index segment of a control name with
// instanceID. An index enclosed by other segments ("][n][") wins; otherwise
// the first "[n][" is used. Only the first match is rewritten. Names without
// an index segment are returned unchanged with ok set to false.
func IndexName(name, instanceID string) (string, bool) {
	if loc := nestedIndexPattern.FindStringIndex(name); loc != nil {
		return name[:loc[0]] + "][" + instanceID + "][" + name[loc[1]:], true
	}
	if loc := leadingIndexPattern.FindStringIndex(name); loc != nil {
		return name[:loc[0]] + "[" + instanceID + "][" + name[loc[1]:], true
	}
	return name, false
}

// FieldKey returns the trailing bracketed word segment of a control name:
// "title" for "REX_INPUT_VALUE[1][0][title]". Names ending in "[]" or without
// brackets have no key.
func FieldKey(name string) (string, bool) {
	match := fieldKeyPattern.FindStringSubmatch(name)
	if match == nil {
		return "", false
	}
	return match[1], true
}

// reindex rewrites the index segment of the control name.
func reindex(control *goquery.Selection, instanceID string) bool {
	name, ok := control.Attr("name")
	if !ok {
		return false
	}
	indexed, changed := IndexName(name, instanceID)
	if changed {
		control.SetAttr("name", indexed)
	}
	return changed
}
