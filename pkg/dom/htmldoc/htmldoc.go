// Package htmldoc loads HTML markup into an in-memory document.
package htmldoc

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/recera/sitekit/pkg/dom/memdom"
)

// Parse reads an HTML document
func Parse(r io.Reader) (*memdom.Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	doc := memdom.NewDocument()
	htmlNode := findAtom(root, atom.Html)
	if htmlNode == nil {
		return doc, nil
	}
	copyAttrs(doc.HTML(), htmlNode)

	for c := htmlNode.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch c.DataAtom {
		case atom.Head:
			head := doc.HTML().Find("head")
			appendChildren(doc, head, c)
		case atom.Body:
			copyAttrs(doc.Body(), c)
			appendChildren(doc, doc.Body(), c)
		}
	}
	return doc, nil
}

// ParseString parses markup held in memory
func ParseString(markup string) (*memdom.Document, error) {
	return Parse(strings.NewReader(markup))
}

// ParseFile parses the HTML file at path
func ParseFile(path string) (*memdom.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

func findAtom(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findAtom(c, a); found != nil {
			return found
		}
	}
	return nil
}

func copyAttrs(dst *memdom.Node, src *html.Node) {
	for _, a := range src.Attr {
		dst.SetAttr(a.Key, a.Val)
	}
}

func appendChildren(doc *memdom.Document, dst *memdom.Node, src *html.Node) {
	for c := src.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.ElementNode:
			el := doc.Element(c.Data)
			copyAttrs(el, c)
			if v, ok := el.Attr("value"); ok {
				el.SetValue(v)
			}
			dst.Append(el)
			appendChildren(doc, el, c)
		case html.TextNode:
			if strings.TrimSpace(c.Data) != "" {
				dst.AppendText(c.Data)
			}
		}
	}
}
