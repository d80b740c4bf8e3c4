package dom

import (
	"golang.org/x/net/html"
)

// Decoration is a message node in the document.
type Decoration struct {
	node *html.Node
	// text is the text node holding the message. Nil until the first message
	// on author-placed nodes, and for templates that never print the message.
	text *html.Node
	last string
	// static is set on template nodes without a message slot; their content
	// belongs to the template.
	static bool
}

// Node returns the underlying HTML node.
func (d *Decoration) Node() *html.Node { return d.node }

// ID returns the association key of the node.
func (d *Decoration) ID() string { return attrVal(d.node, "id") }

// SetMessage replaces the displayed message. Only the message's own text node
// changes; template markup and static text around it are kept.
func (d *Decoration) SetMessage(message string) {
	if message == d.last || d.static {
		d.last = message
		return
	}
	d.last = message
	if d.text != nil && d.text.Parent != nil {
		d.text.Data = message
		return
	}
	setText(d.node, message)
	d.text = d.node.FirstChild
}

// Message returns the displayed text.
func (d *Decoration) Message() string { return textContent(d.node) }

// Show makes the node visible.
func (d *Decoration) Show() { setHidden(d.node, false) }

// Hide hides the node with an inline style; the node stays in the tree.
func (d *Decoration) Hide() { setHidden(d.node, true) }

// Visible reports whether the node is displayed.
func (d *Decoration) Visible() bool {
	return !hasAttr(d.node, "hidden") && !styleHidden(d.node)
}
