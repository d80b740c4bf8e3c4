package validation_test

import (
	"context"
	"strings"

	"github.com/dmitrymomot/formguard/pkg/validation"
)

// field is an in-memory validation.Field used across the package tests.
type field struct {
	name     string
	value    validation.Value
	c        validation.Constraints
	a        validation.Annotations
	disabled bool
	readonly bool
	tag      string
	invalid  bool
}

func (f *field) Name() string { return f.name }
func (f *field) Value() validation.Value { return f.value }
func (f *field) Constraints() validation.Constraints { return f.c }
func (f *field) Annotations() validation.Annotations { return f.a }
func (f *field) SetInvalid(invalid bool) { f.invalid = invalid }
func (f *field) Eligible() bool {
	return !f.disabled && !f.readonly && validation.IsDataControl(f.tag, f.c.Type)
}

func text(name, value string) *field {
	return &field{name: name, value: validation.Value{Text: value}, c: validation.Constraints{Type: "text"}}
}

func required(name, value string) *field {
	f := text(name, value)
	f.c.Required = true
	return f
}

func typed(name, typ, value string) *field {
	f := text(name, value)
	f.c.Type = typ
	return f
}

// node is an in-memory decoration.
type node struct {
	fieldName string
	key       string
	markup    string
	message   string
	visible   bool
	decorated []string
}

func (n *node) SetMessage(m string) { n.message = m }
func (n *node) Message() string { return n.message }
func (n *node) Show() { n.visible = true }
func (n *node) Hide() { n.visible = false }
func (n *node) Visible() bool { return n.visible }

// form is an in-memory container implementing Target and DecorationHost.
type form struct {
	fields []*field
	nodes  []*node
}

func newForm(fields ...*field) *form { return &form{fields: fields} }

func (f *form) Fields() []validation.Field {
	out := make([]validation.Field, len(f.fields))
	for i, ff := range f.fields {
		out[i] = ff
	}
	return out
}

func (f *form) FindDecoration(_, key string) validation.Decoration {
	for _, n := range f.nodes {
		if n.key == key {
			return n
		}
	}
	return nil
}

func (f *form) AttachDecoration(ctx context.Context, ff validation.Field, key string, tmpl validation.ErrorTemplate, message string) (validation.Decoration, error) {
	var sb strings.Builder
	if err := tmpl(message).Render(ctx, &sb); err != nil {
		return nil, err
	}
	n := &node{fieldName: ff.Name(), key: key, markup: sb.String()}
	f.nodes = append(f.nodes, n)
	return n, nil
}

func (f *form) visibleNodes() int {
	count := 0
	for _, n := range f.nodes {
		if n.visible {
			count++
		}
	}
	return count
}

// headless is a Target without decoration support.
type headless []*field

func (h headless) Fields() []validation.Field {
	out := make([]validation.Field, len(h))
	for i, f := range h {
		out[i] = f
	}
	return out
}
