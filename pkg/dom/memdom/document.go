package memdom

import (
	"github.com/recera/sitekit/pkg/dom"
)

// Document is an in-memory document rooted at an <html> element
type Document struct {
	root   *Node
	body   *Node
	win    *Window
	loaded bool
}

// NewDocument creates a document with empty head and body
func NewDocument() *Document {
	d := &Document{}
	d.root = d.newNode("html")
	d.root.append(d.newNode("head"))
	d.body = d.newNode("body")
	d.root.append(d.body)
	return d
}

// Element creates a detached element. Attributes are given as name/value
// pairs; a trailing odd name is set with an empty value.
func (d *Document) Element(tag string, attrs ...string) *Node {
	n := d.newNode(tag)
	for i := 0; i < len(attrs); i += 2 {
		v := ""
		if i+1 < len(attrs) {
			v = attrs[i+1]
		}
		n.SetAttr(attrs[i], v)
	}
	return n
}

// HTML returns the root element
func (d *Document) HTML() *Node { return d.root }

// Body returns the body element
func (d *Document) Body() *Node { return d.body }

// SetBody replaces the body element
func (d *Document) SetBody(body *Node) {
	d.root.removeChild(d.body)
	d.body = body
	d.root.append(body)
}

func (d *Document) Root() dom.Element { return d.root }

func (d *Document) Query(selector string) dom.Element { return d.root.Query(selector) }

func (d *Document) QueryAll(selector string) []dom.Element { return d.root.QueryAll(selector) }

func (d *Document) ByID(id string) dom.Element {
	if n := d.FindID(id); n != nil {
		return n
	}
	return nil
}

// FindID returns the element with the given id
func (d *Document) FindID(id string) *Node {
	if id == "" {
		return nil
	}
	var found *Node
	d.root.walk(func(c *Node) bool {
		if v, ok := c.Attr("id"); ok && v == id {
			found = c
			return false
		}
		return true
	})
	return found
}

func (d *Document) CreateElement(tag string) dom.Element { return d.newNode(tag) }

func (d *Document) Loaded() bool { return d.loaded }
