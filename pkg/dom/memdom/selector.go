package memdom

import (
	"fmt"
	"strings"
	"sync"
)

type attrSel struct {
	name  string
	op    string // "", "=", "^=", "$=", "*=", "~="
	value string
}

type compound struct {
	tag     string
	id      string
	classes []string
	attrs   []attrSel
}

type complexSel struct {
	parts []compound
	// combs[i] joins parts[i] and parts[i+1]: ' ' for descendant, '>' for child
	combs []byte
}

// Selector is a compiled CSS selector list
type Selector []complexSel

var (
	selCacheMu sync.Mutex
	selCache   = make(map[string]Selector)
)

// Compile parses a selector list. Supported: type, universal, #id, .class,
// attribute tests (=, ^=, $=, *=, ~=), descendant and child combinators and
// comma-separated lists.
func Compile(src string) (Selector, error) {
	selCacheMu.Lock()
	if s, ok := selCache[src]; ok {
		selCacheMu.Unlock()
		return s, nil
	}
	selCacheMu.Unlock()

	var out Selector
	for _, part := range splitList(src) {
		c, err := parseComplex(part)
		if err != nil {
			return nil, fmt.Errorf("selector %q: %w", src, err)
		}
		out = append(out, c)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("selector %q: empty", src)
	}

	selCacheMu.Lock()
	selCache[src] = out
	selCacheMu.Unlock()
	return out, nil
}

// splitList splits on commas outside brackets and quotes
func splitList(src string) []string {
	var parts []string
	depth := 0
	var quote byte
	start := 0
	for i := 0; i < len(src); i++ {
		c := src[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '[':
			depth++
		case c == ']':
			depth--
		case c == ',' && depth == 0:
			parts = append(parts, strings.TrimSpace(src[start:i]))
			start = i + 1
		}
	}
	if last := strings.TrimSpace(src[start:]); last != "" {
		parts = append(parts, last)
	}
	return parts
}

func parseComplex(src string) (complexSel, error) {
	var c complexSel
	p := &parser{src: src}

	for {
		p.skipSpace()
		if p.done() {
			break
		}
		if len(c.parts) > 0 {
			comb := byte(' ')
			if p.peek() == '>' {
				comb = '>'
				p.pos++
				p.skipSpace()
				if p.done() {
					return c, fmt.Errorf("dangling combinator")
				}
			}
			c.combs = append(c.combs, comb)
		}
		before := p.pos
		cp, err := p.compound()
		if err != nil {
			return c, err
		}
		if p.pos == before {
			return c, fmt.Errorf("unexpected %q at %d", p.peek(), p.pos)
		}
		c.parts = append(c.parts, cp)
	}

	if len(c.parts) == 0 || len(c.combs) != len(c.parts)-1 {
		return c, fmt.Errorf("malformed")
	}
	return c, nil
}

type parser struct {
	src string
	pos int
}

func (p *parser) done() bool { return p.pos >= len(p.src) }
func (p *parser) peek() byte { return p.src[p.pos] }

func (p *parser) skipSpace() {
	for !p.done() && (p.peek() == ' ' || p.peek() == '\t' || p.peek() == '\n') {
		p.pos++
	}
}

func isIdent(c byte) bool {
	return c == '-' || c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func (p *parser) ident() string {
	start := p.pos
	for !p.done() && isIdent(p.peek()) {
		p.pos++
	}
	return p.src[start:p.pos]
}

func (p *parser) compound() (compound, error) {
	var c compound

	if p.peek() == '*' {
		p.pos++
	} else if isIdent(p.peek()) {
		c.tag = strings.ToLower(p.ident())
	}

	for !p.done() {
		switch p.peek() {
		case '#':
			p.pos++
			c.id = p.ident()
			if c.id == "" {
				return c, fmt.Errorf("empty id at %d", p.pos)
			}
		case '.':
			p.pos++
			cls := p.ident()
			if cls == "" {
				return c, fmt.Errorf("empty class at %d", p.pos)
			}
			c.classes = append(c.classes, cls)
		case '[':
			a, err := p.attr()
			if err != nil {
				return c, err
			}
			c.attrs = append(c.attrs, a)
		case ' ', '\t', '\n', '>':
			return c, nil
		default:
			return c, fmt.Errorf("unexpected %q at %d", p.peek(), p.pos)
		}
	}
	return c, nil
}

func (p *parser) attr() (attrSel, error) {
	var a attrSel
	p.pos++ // [
	p.skipSpace()
	a.name = strings.ToLower(p.ident())
	if a.name == "" {
		return a, fmt.Errorf("empty attribute name at %d", p.pos)
	}
	p.skipSpace()
	if p.done() {
		return a, fmt.Errorf("unterminated attribute")
	}

	if p.peek() != ']' {
		if strings.HasPrefix(p.src[p.pos:], "=") {
			a.op = "="
		} else if len(p.src)-p.pos >= 2 && p.src[p.pos+1] == '=' && strings.IndexByte("^$*~", p.peek()) >= 0 {
			a.op = p.src[p.pos : p.pos+2]
		} else {
			return a, fmt.Errorf("bad attribute operator at %d", p.pos)
		}
		p.pos += len(a.op)
		p.skipSpace()

		if p.done() {
			return a, fmt.Errorf("unterminated attribute")
		}
		if q := p.peek(); q == '"' || q == '\'' {
			end := strings.IndexByte(p.src[p.pos+1:], q)
			if end < 0 {
				return a, fmt.Errorf("unterminated string")
			}
			a.value = p.src[p.pos+1 : p.pos+1+end]
			p.pos += end + 2
		} else {
			a.value = p.ident()
		}
		p.skipSpace()
	}

	if p.done() || p.peek() != ']' {
		return a, fmt.Errorf("expected ] at %d", p.pos)
	}
	p.pos++
	return a, nil
}

// Match reports whether n matches any selector in the list
func (s Selector) Match(n *Node) bool {
	for _, c := range s {
		if c.match(n, len(c.parts)-1) {
			return true
		}
	}
	return false
}

func (c complexSel) match(n *Node, i int) bool {
	if !c.parts[i].match(n) {
		return false
	}
	if i == 0 {
		return true
	}
	if c.combs[i-1] == '>' {
		return n.parent != nil && c.match(n.parent, i-1)
	}
	for anc := n.parent; anc != nil; anc = anc.parent {
		if c.match(anc, i-1) {
			return true
		}
	}
	return false
}

func (cp compound) match(n *Node) bool {
	if n.isText() {
		return false
	}
	if cp.tag != "" && cp.tag != n.tag {
		return false
	}
	if cp.id != "" {
		if id, _ := n.Attr("id"); id != cp.id {
			return false
		}
	}
	for _, cls := range cp.classes {
		if !n.HasClass(cls) {
			return false
		}
	}
	for _, a := range cp.attrs {
		v, ok := n.Attr(a.name)
		if !ok {
			return false
		}
		switch a.op {
		case "=":
			ok = v == a.value
		case "^=":
			ok = a.value != "" && strings.HasPrefix(v, a.value)
		case "$=":
			ok = a.value != "" && strings.HasSuffix(v, a.value)
		case "*=":
			ok = a.value != "" && strings.Contains(v, a.value)
		case "~=":
			ok = false
			for _, f := range strings.Fields(v) {
				if f == a.value {
					ok = true
					break
				}
			}
		}
		if !ok {
			return false
		}
	}
	return true
}
