package validation

import (
	"strconv"
	"strings"
)

// MessageFunc computes a message for a failing field. bound is the failing rule's
// configured value (for example the minimum), or "" when the rule has none.
type MessageFunc func(f Field, bound string) string

// Message is either a literal template or a computed function.
// Literal templates substitute {0} with the field display name and {1} with the bound.
type Message struct {
	template string
	fn       MessageFunc
}

// Literal returns a template message.
func Literal(template string) Message {
	return Message{template: template}
}

// Computed returns a message produced by fn on every resolution.
func Computed(fn MessageFunc) Message {
	return Message{fn: fn}
}

// IsZero reports whether the message carries neither a template nor a function.
func (m Message) IsZero() bool {
	return m.template == "" && m.fn == nil
}

// Resolve turns the message into text for the given field.
func (m Message) Resolve(f Field, bound string) string {
	if m.fn != nil {
		return m.fn(f, bound)
	}
	return Format(m.template, DisplayName(f), bound)
}

// Format applies positional substitution to a message template.
func Format(template string, args ...string) string {
	if !strings.Contains(template, "{") {
		return template
	}
	pairs := make([]string, 0, len(args)*2)
	for i, a := range args {
		pairs = append(pairs, "{"+strconv.Itoa(i)+"}", a)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}
