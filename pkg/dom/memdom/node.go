// Package memdom is an in-memory implementation of the dom package. It keeps
// enough layout state (element boxes, scroll offset, viewport height) for
// scroll and intersection driven behaviour to be exercised without a browser.
package memdom

import (
	"strings"

	"github.com/recera/sitekit/pkg/dom"
	"github.com/recera/sitekit/pkg/events"
)

const textTag = "#text"

// Node is an element or text node
type Node struct {
	tag      string
	attrs    map[string]string
	style    map[string]string
	text     string
	value    string
	rect     dom.Rect
	parent   *Node
	children []*Node
	bus      *events.Bus
	doc      *Document
}

func (d *Document) newNode(tag string) *Node {
	return &Node{
		tag:   strings.ToLower(tag),
		attrs: make(map[string]string),
		style: make(map[string]string),
		bus:   events.NewBus(),
		doc:   d,
	}
}

func (n *Node) isText() bool { return n.tag == textTag }

// Tag returns the lower-case tag name
func (n *Node) Tag() string { return n.tag }

// Parent returns the parent node, or nil at the root
func (n *Node) Parent() *Node { return n.parent }

// Children returns the element children of n
func (n *Node) Children() []*Node {
	out := make([]*Node, 0, len(n.children))
	for _, c := range n.children {
		if !c.isText() {
			out = append(out, c)
		}
	}
	return out
}

func (n *Node) walk(fn func(*Node) bool) bool {
	for _, c := range n.children {
		if c.isText() {
			continue
		}
		if !fn(c) || !c.walk(fn) {
			return false
		}
	}
	return true
}

// Find returns the first descendant matching selector as a *Node
func (n *Node) Find(selector string) *Node {
	sel, err := Compile(selector)
	if err != nil {
		return nil
	}
	var found *Node
	n.walk(func(c *Node) bool {
		if sel.Match(c) {
			found = c
			return false
		}
		return true
	})
	return found
}

// FindAll returns every descendant matching selector in document order
func (n *Node) FindAll(selector string) []*Node {
	sel, err := Compile(selector)
	if err != nil {
		return nil
	}
	var out []*Node
	n.walk(func(c *Node) bool {
		if sel.Match(c) {
			out = append(out, c)
		}
		return true
	})
	return out
}

func (n *Node) Query(selector string) dom.Element {
	if found := n.Find(selector); found != nil {
		return found
	}
	return nil
}

func (n *Node) QueryAll(selector string) []dom.Element {
	found := n.FindAll(selector)
	out := make([]dom.Element, len(found))
	for i, f := range found {
		out[i] = f
	}
	return out
}

func (n *Node) Attr(name string) (string, bool) {
	v, ok := n.attrs[strings.ToLower(name)]
	return v, ok
}

func (n *Node) SetAttr(name, value string) { n.attrs[strings.ToLower(name)] = value }
func (n *Node) RemoveAttr(name string)     { delete(n.attrs, strings.ToLower(name)) }

func (n *Node) classes() []string { return strings.Fields(n.attrs["class"]) }

func (n *Node) HasClass(name string) bool {
	for _, c := range n.classes() {
		if c == name {
			return true
		}
	}
	return false
}

func (n *Node) AddClass(names ...string) {
	list := n.classes()
	for _, name := range names {
		if !n.HasClass(name) {
			list = append(list, name)
			n.attrs["class"] = strings.Join(list, " ")
		}
	}
}

func (n *Node) RemoveClass(names ...string) {
	if _, ok := n.attrs["class"]; !ok {
		return
	}
	list := n.classes()
	kept := list[:0]
	for _, c := range list {
		drop := false
		for _, name := range names {
			if c == name {
				drop = true
				break
			}
		}
		if !drop {
			kept = append(kept, c)
		}
	}
	n.attrs["class"] = strings.Join(kept, " ")
}

func (n *Node) ToggleClass(name string, on bool) {
	if on {
		n.AddClass(name)
	} else {
		n.RemoveClass(name)
	}
}

func (n *Node) SetStyle(property, value string) { n.style[property] = value }
func (n *Node) Style(property string) string    { return n.style[property] }

// Text returns the concatenated text of n and its descendants
func (n *Node) Text() string {
	if n.isText() {
		return n.text
	}
	var b strings.Builder
	for _, c := range n.children {
		b.WriteString(c.Text())
	}
	return b.String()
}

func (n *Node) SetText(text string) {
	n.clear()
	if text == "" {
		return
	}
	t := n.doc.newNode(textTag)
	t.text = text
	n.append(t)
}

func (n *Node) append(child *Node) {
	if child.parent != nil {
		child.parent.removeChild(child)
	}
	child.parent = n
	n.children = append(n.children, child)
}

func (n *Node) removeChild(child *Node) {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			child.parent = nil
			return
		}
	}
}

func (n *Node) clear() {
	for _, c := range n.children {
		c.parent = nil
	}
	n.children = nil
}

// Append adds child as the last child of n and returns child
func (n *Node) Append(child *Node) *Node {
	n.append(child)
	return child
}

func (n *Node) AppendChild(child dom.Element) {
	if c, ok := child.(*Node); ok {
		n.append(c)
	}
}

func (n *Node) Clear() { n.clear() }

// SetRect places n's box in document coordinates
func (n *Node) SetRect(r dom.Rect) { n.rect = r }

// BoundingRect returns the box relative to the viewport
func (n *Node) BoundingRect() dom.Rect {
	r := n.rect
	if w := n.doc.win; w != nil {
		r.Top -= w.scrollY
	}
	return r
}

// ScrollIntoView scrolls the owning window so that n sits at the top
func (n *Node) ScrollIntoView(smooth bool) {
	w := n.doc.win
	if w == nil {
		return
	}
	w.lastSmooth = smooth
	w.ScrollTo(n.rect.Top)
}

// Value returns the current value of a form field
func (n *Node) Value() string { return n.value }

// SetValue sets the current value of a form field
func (n *Node) SetValue(v string) { n.value = v }

var fieldTags = map[string]bool{"input": true, "textarea": true, "select": true}

// Reset clears every field value under n
func (n *Node) Reset() {
	n.walk(func(c *Node) bool {
		if fieldTags[c.tag] {
			c.value = ""
		}
		return true
	})
}

func (n *Node) On(kind string, h events.Handler) func() {
	return n.bus.On(kind, h)
}

// Dispatch emits a new event of the given kind on n and returns it so that
// callers can inspect DefaultPrevented.
func (n *Node) Dispatch(kind string) *events.Basic {
	ev := events.New(kind)
	n.bus.Emit(ev)
	return ev
}

// Click dispatches a click event
func (n *Node) Click() *events.Basic { return n.Dispatch(events.Click) }

// Submit dispatches a submit event
func (n *Node) Submit() *events.Basic { return n.Dispatch(events.Submit) }

// Listeners returns the number of handlers registered for kind
func (n *Node) Listeners(kind string) int { return n.bus.Len(kind) }

// AppendText adds a text node to n
func (n *Node) AppendText(text string) {
	t := n.doc.newNode(textTag)
	t.text = text
	n.append(t)
}
