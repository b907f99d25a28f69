package decorator_test

import (
	"strconv"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/goliatone/go-formblock/pkg/block"
	"github.com/goliatone/go-formblock/pkg/decorator"
	"github.com/goliatone/go-formblock/pkg/testsupport"
)

func transform(t *testing.T, fragment, id string, values map[string]any) string {
	t.Helper()
	out, err := decorator.Transform(fragment, block.NewRecord(id, values))
	if err != nil {
		t.Fatalf("transform: %v", err)
	}
	return out
}

func parse(t *testing.T, markup string) *html.Node {
	t.Helper()
	return testsupport.ParseHTML(t, markup)
}

func newDocument(t *testing.T, markup string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		t.Fatalf("new document: %v", err)
	}
	return doc
}

func countElements(root *html.Node) map[string]int {
	counts := make(map[string]int)
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.ElementNode {
			counts[node.Data]++
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(root)
	return counts
}

func itoa(i int) string {
	return strconv.Itoa(i)
}
