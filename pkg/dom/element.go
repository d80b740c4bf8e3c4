package dom

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/dmitrymomot/formguard/pkg/validation"
)

const (
	// InvalidClass marks fields that failed validation.
	InvalidClass = "invalid"
	// MessageClass marks message nodes. Authors can pre-place a node with this
	// class and data-for="<field name>" to control where a message appears.
	MessageClass = "invalid-msg"
)

var (
	_ validation.Field          = (*Element)(nil)
	_ validation.Markable       = (*Element)(nil)
	_ validation.Target         = (*Element)(nil)
	_ validation.DecorationHost = (*Element)(nil)
	_ validation.Decoration     = (*Decoration)(nil)
)

// Element wraps an HTML element. A form control acts as a single field; any
// other element is a container of the controls below it.
type Element struct {
	doc  *Document
	node *html.Node
}

// Node returns the underlying HTML node.
func (e *Element) Node() *html.Node { return e.node }

// Document returns the owning document.
func (e *Element) Document() *Document { return e.doc }

// Tag returns the lowercase tag name.
func (e *Element) Tag() string { return e.node.Data }

// Attr returns an attribute value.
func (e *Element) Attr(key string) (string, bool) { return attr(e.node, key) }

// SetAttr sets an attribute.
func (e *Element) SetAttr(key, val string) { setAttr(e.node, key, val) }

// HasClass reports whether the element carries class.
func (e *Element) HasClass(class string) bool { return hasClass(e.node, class) }

// IsForm reports whether the element is a <form>.
func (e *Element) IsForm() bool { return e.node.DataAtom == atom.Form }

// IsControl reports whether the element is a form control.
func (e *Element) IsControl() bool { return isControl(e.node) }

// Invalid reports whether the element carries the invalid marker.
func (e *Element) Invalid() bool { return hasClass(e.node, InvalidClass) }

// Render writes the element's outer HTML.
func (e *Element) Render(w io.Writer) error {
	if err := html.Render(w, e.node); err != nil {
		return fmt.Errorf("%w: %w", ErrRenderElement, err)
	}
	return nil
}

// Type returns the control type the way browsers report it.
func (e *Element) Type() string {
	switch e.node.DataAtom {
	case atom.Select:
		if hasAttr(e.node, "multiple") {
			return "select-multiple"
		}
		return "select-one"
	case atom.Textarea:
		return "textarea"
	case atom.Button:
		if t := strings.ToLower(attrVal(e.node, "type")); t != "" {
			return t
		}
		return "submit"
	case atom.Input:
		if t := strings.ToLower(attrVal(e.node, "type")); t != "" {
			return t
		}
		return "text"
	}
	return ""
}

// SetValue sets the current value. For selects it selects the matching option.
func (e *Element) SetValue(v string) {
	switch e.node.DataAtom {
	case atom.Textarea:
		setText(e.node, v)
	case atom.Select:
		e.SetSelected(v)
	default:
		setAttr(e.node, "value", v)
	}
}

// SetSelected selects exactly the options whose values are listed.
func (e *Element) SetSelected(values ...string) {
	want := make(map[string]bool, len(values))
	for _, v := range values {
		want[v] = true
	}
	for _, o := range findAll(e.node, isElement(atom.Option)) {
		if want[optionValue(o)] {
			setAttr(o, "selected", "")
		} else {
			removeAttr(o, "selected")
		}
	}
}

// SetChecked sets the checked state of a checkbox or radio.
func (e *Element) SetChecked(checked bool) {
	if checked {
		setAttr(e.node, "checked", "")
		return
	}
	removeAttr(e.node, "checked")
}

// Checked reports the checked state.
func (e *Element) Checked() bool { return hasAttr(e.node, "checked") }

// Name implements validation.Field.
func (e *Element) Name() string { return attrVal(e.node, "name") }

// Value implements validation.Field. A radio reports Checked when any radio
// of its group is checked, so one selection satisfies a required group.
func (e *Element) Value() validation.Value {
	switch e.node.DataAtom {
	case atom.Textarea:
		return validation.Value{Text: textContent(e.node)}
	case atom.Select:
		options := findAll(e.node, isElement(atom.Option))
		if hasAttr(e.node, "multiple") {
			v := validation.Value{Multiple: true}
			for _, o := range options {
				if hasAttr(o, "selected") {
					v.Selected = append(v.Selected, optionValue(o))
				}
			}
			return v
		}
		for _, o := range options {
			if hasAttr(o, "selected") {
				return validation.Value{Text: optionValue(o)}
			}
		}
		if len(options) > 0 {
			return validation.Value{Text: optionValue(options[0])}
		}
		return validation.Value{}
	}
	switch typ := e.Type(); typ {
	case "checkbox", "radio":
		v, ok := attr(e.node, "value")
		if !ok {
			v = "on"
		}
		checked := e.Checked()
		if typ == "radio" && !checked {
			checked = e.radioGroupChecked()
		}
		return validation.Value{Text: v, Checkbox: true, Checked: checked}
	}
	return validation.Value{Text: attrVal(e.node, "value")}
}

// radioGroupChecked reports whether any radio sharing e's name within the same
// form, or the document when e has no form, is checked.
func (e *Element) radioGroupChecked() bool {
	name := e.Name()
	if name == "" {
		return false
	}
	scope := e.doc.root
	for p := e.node.Parent; p != nil; p = p.Parent {
		if p.DataAtom == atom.Form {
			scope = p
			break
		}
	}
	return find(scope, func(n *html.Node) bool {
		return n.DataAtom == atom.Input && strings.EqualFold(attrVal(n, "type"), "radio") &&
			attrVal(n, "name") == name && hasAttr(n, "checked")
	}) != nil
}

// Constraints implements validation.Field.
func (e *Element) Constraints() validation.Constraints {
	return validation.Constraints{
		Required: hasAttr(e.node, "required"),
		Pattern:  attrVal(e.node, "pattern"),
		Min:      attrVal(e.node, "min"),
		Max:      attrVal(e.node, "max"),
		Step:     attrVal(e.node, "step"),
		Type:     e.Type(),
		DataType: attrVal(e.node, "data-type"),
	}
}

// Annotations implements validation.Field. Rule specific messages are read
// from data-<rule>-msg attributes. HTML lowercases attribute names, so the
// rule names come out lowercased and the engine matches them ignoring case.
func (e *Element) Annotations() validation.Annotations {
	a := validation.Annotations{
		ValidationMessage: attrVal(e.node, "validationmessage"),
		Title:             attrVal(e.node, "title"),
	}
	for _, at := range e.node.Attr {
		rule, ok := strings.CutPrefix(at.Key, "data-")
		if !ok {
			continue
		}
		if rule, ok = strings.CutSuffix(rule, "-msg"); !ok || rule == "" {
			continue
		}
		if a.RuleMessages == nil {
			a.RuleMessages = make(map[string]string)
		}
		a.RuleMessages[rule] = at.Val
	}
	return a
}

// Eligible implements validation.Field.
func (e *Element) Eligible() bool {
	if !isControl(e.node) || hasAttr(e.node, "disabled") || hasAttr(e.node, "readonly") {
		return false
	}
	return validation.IsDataControl(e.Tag(), e.Type())
}

// SetInvalid implements validation.Markable.
func (e *Element) SetInvalid(invalid bool) {
	if invalid {
		addClass(e.node, InvalidClass)
		setAttr(e.node, "aria-invalid", "true")
		return
	}
	removeClass(e.node, InvalidClass)
	removeAttr(e.node, "aria-invalid")
}

// Fields implements validation.Target.
func (e *Element) Fields() []validation.Field {
	if isControl(e.node) {
		return []validation.Field{e}
	}
	nodes := findAll(e.node, isControl)
	out := make([]validation.Field, len(nodes))
	for i, n := range nodes {
		out[i] = e.doc.element(n)
	}
	return out
}

// FindDecoration implements validation.DecorationHost. The whole document is
// searched so message nodes may live outside the validated container.
func (e *Element) FindDecoration(fieldName, key string) validation.Decoration {
	n := find(e.doc.root, func(n *html.Node) bool {
		if attrVal(n, "id") == key {
			return true
		}
		return fieldName != "" && hasClass(n, MessageClass) && attrVal(n, "data-for") == fieldName
	})
	if n == nil {
		return nil
	}
	return e.doc.decoration(n)
}

// AttachDecoration implements validation.DecorationHost. The rendered markup is
// inserted right after the field. The template is rendered around a unique
// slot so the node holding the message is known exactly.
func (e *Element) AttachDecoration(ctx context.Context, f validation.Field, key string, tmpl validation.ErrorTemplate, message string) (validation.Decoration, error) {
	field, ok := f.(*Element)
	if !ok || field.doc != e.doc {
		return nil, ErrForeignField
	}
	parent := field.node.Parent
	if parent == nil {
		return nil, fmt.Errorf("%w: field has no parent", ErrNotFound)
	}

	slot := uuid.NewString()
	var buf bytes.Buffer
	if err := tmpl(slot).Render(ctx, &buf); err != nil {
		return nil, err
	}
	ctxNode := parent
	if ctxNode.Type != html.ElementNode {
		ctxNode = e.doc.body
	}
	nodes, err := html.ParseFragment(&buf, ctxNode)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParseMarkup, err)
	}

	var n *html.Node
	for _, c := range nodes {
		if c.Type == html.ElementNode {
			n = c
			break
		}
	}
	if n == nil {
		n = &html.Node{Type: html.ElementNode, Data: "span", DataAtom: atom.Span}
		for _, c := range nodes {
			n.AppendChild(c)
		}
	}
	text := fillSlot(n, slot, message)

	addClass(n, MessageClass)
	setAttr(n, "data-for", field.Name())
	setAttr(n, "id", key)
	setAttr(n, "role", "alert")
	parent.InsertBefore(n, field.node.NextSibling)

	d := e.doc.decoration(n)
	d.text = text
	d.last = message
	d.static = text == nil
	return d, nil
}

// fillSlot writes message wherever slot was rendered under root. The first
// text occurrence gets a text node of its own, which is returned; nil means
// the template never printed the message.
func fillSlot(root *html.Node, slot, message string) *html.Node {
	var msg *html.Node
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		for i := range n.Attr {
			n.Attr[i].Val = strings.ReplaceAll(n.Attr[i].Val, slot, message)
		}
		for c := n.FirstChild; c != nil; {
			next := c.NextSibling
			switch {
			case c.Type == html.TextNode && msg == nil && strings.Contains(c.Data, slot):
				before, after, _ := strings.Cut(c.Data, slot)
				if before != "" {
					n.InsertBefore(&html.Node{Type: html.TextNode, Data: before}, c)
				}
				msg = &html.Node{Type: html.TextNode, Data: message}
				n.InsertBefore(msg, c)
				if after != "" {
					n.InsertBefore(&html.Node{Type: html.TextNode, Data: strings.ReplaceAll(after, slot, message)}, c)
				}
				n.RemoveChild(c)
			case c.Type == html.TextNode:
				c.Data = strings.ReplaceAll(c.Data, slot, message)
			case c.Type == html.ElementNode:
				walk(c)
			}
			c = next
		}
	}
	walk(root)
	return msg
}

func optionValue(o *html.Node) string {
	if v, ok := attr(o, "value"); ok {
		return v
	}
	return strings.TrimSpace(textContent(o))
}

// contains reports whether n is root or one of its descendants.
func contains(root, n *html.Node) bool {
	for ; n != nil; n = n.Parent {
		if n == root {
			return true
		}
	}
	return false
}
