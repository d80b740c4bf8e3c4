package dom

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Document is a parsed HTML tree. Element and Decoration values are cached per
// node, so the same node always maps to the same wrapper.
type Document struct {
	root        *html.Node
	body        *html.Node
	elements    map[*html.Node]*Element
	decorations map[*html.Node]*Decoration
}

// Parse parses a full page or a fragment. Fragments end up inside <body>.
func Parse(markup string) (*Document, error) {
	return ParseReader(strings.NewReader(markup))
}

// ParseReader parses HTML from r.
func ParseReader(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParseMarkup, err)
	}
	body := find(root, isElement(atom.Body))
	if body == nil {
		return nil, fmt.Errorf("%w: document has no body", ErrParseMarkup)
	}
	return &Document{
		root:        root,
		body:        body,
		elements:    make(map[*html.Node]*Element),
		decorations: make(map[*html.Node]*Decoration),
	}, nil
}

// Body returns the <body> element.
func (d *Document) Body() *Element { return d.element(d.body) }

// Form returns the form whose name or id is name.
func (d *Document) Form(name string) (*Element, error) {
	n := find(d.root, func(n *html.Node) bool {
		return n.DataAtom == atom.Form && (attrVal(n, "name") == name || attrVal(n, "id") == name)
	})
	if n == nil {
		return nil, fmt.Errorf("%w: form %q", ErrNotFound, name)
	}
	return d.element(n), nil
}

// Forms returns every form in document order.
func (d *Document) Forms() []*Element {
	nodes := findAll(d.root, isElement(atom.Form))
	out := make([]*Element, len(nodes))
	for i, n := range nodes {
		out[i] = d.element(n)
	}
	return out
}

// Element returns the element with the given id.
func (d *Document) Element(id string) (*Element, error) {
	n := find(d.root, func(n *html.Node) bool { return attrVal(n, "id") == id })
	if n == nil {
		return nil, fmt.Errorf("%w: #%s", ErrNotFound, id)
	}
	return d.element(n), nil
}

// FieldByName returns the first form control named name.
func (d *Document) FieldByName(name string) (*Element, error) {
	n := find(d.root, func(n *html.Node) bool { return isControl(n) && attrVal(n, "name") == name })
	if n == nil {
		return nil, fmt.Errorf("%w: field %q", ErrNotFound, name)
	}
	return d.element(n), nil
}

// Render writes the body content, which round-trips a parsed fragment.
func (d *Document) Render(w io.Writer) error {
	for c := d.body.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(w, c); err != nil {
			return fmt.Errorf("%w: %w", ErrRenderElement, err)
		}
	}
	return nil
}

// String renders the body content.
func (d *Document) String() string {
	var sb strings.Builder
	_ = d.Render(&sb)
	return sb.String()
}

func (d *Document) element(n *html.Node) *Element {
	if e, ok := d.elements[n]; ok {
		return e
	}
	e := &Element{doc: d, node: n}
	d.elements[n] = e
	return e
}

func (d *Document) decoration(n *html.Node) *Decoration {
	if dec, ok := d.decorations[n]; ok {
		return dec
	}
	dec := &Decoration{node: n}
	d.decorations[n] = dec
	return dec
}
