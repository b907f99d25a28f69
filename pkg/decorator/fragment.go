package decorator

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrParse reports that the fragment could not be parsed.
var ErrParse = errors.New("decorator: parse fragment")

// parseFragment builds a goquery document over the markup read from r.
// Complete documents (doctype or <html> first) are parsed as such. Anything
// else is parsed in a <template> context, which accepts table rows, cells and
// option lists at the top level, and hangs off a synthetic document root.
func parseFragment(r io.Reader) (*goquery.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	markup := string(data)

	if isDocument(markup) {
		root, err := html.Parse(strings.NewReader(markup))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrParse, err)
		}
		return goquery.NewDocumentFromNode(root), nil
	}

	context := &html.Node{
		Type:     html.ElementNode,
		Data:     "template",
		DataAtom: atom.Template,
	}
	nodes, err := html.ParseFragment(strings.NewReader(markup), context)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}

	root := &html.Node{Type: html.DocumentNode}
	for _, node := range nodes {
		root.AppendChild(node)
	}
	return goquery.NewDocumentFromNode(root), nil
}

func isDocument(markup string) bool {
	head := strings.ToLower(strings.TrimLeft(markup, " \t\r\n\f\ufeff"))
	return strings.HasPrefix(head, "<!doctype") || strings.HasPrefix(head, "<html")
}

// renderFragment serialises the children of the document root in order.
func renderFragment(doc *goquery.Document) (string, error) {
	var buf strings.Builder
	for _, root := range doc.Nodes {
		for node := root.FirstChild; node != nil; node = node.NextSibling {
			if err := html.Render(&buf, node); err != nil {
				return "", fmt.Errorf("decorator: render fragment: %w", err)
			}
		}
	}
	return buf.String(), nil
}
