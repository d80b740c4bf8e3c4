package validation

import (
	"context"
	"slices"
	"strings"
)

// Value is the current state of a field as seen by rules.
type Value struct {
	Text     string
	Checkbox bool
	Checked  bool
	Multiple bool
	Selected []string
}

// Empty reports whether the value counts as missing for the required rule.
func (v Value) Empty() bool {
	switch {
	case v.Checkbox:
		return !v.Checked
	case v.Multiple:
		return len(v.Selected) == 0
	default:
		return v.Text == ""
	}
}

// Constraints are the declarative checks attached to a field.
// Bound values are kept as raw text; an empty string means the constraint is absent.
type Constraints struct {
	Required bool
	Pattern  string
	Min      string
	Max      string
	Step     string
	Type     string
	DataType string
}

// EffectiveType returns the type used for typed comparisons.
// The custom type hint wins over the declared control type.
func (c Constraints) EffectiveType() string {
	if c.DataType != "" {
		return strings.ToLower(c.DataType)
	}
	return strings.ToLower(c.Type)
}

// Bound returns the raw bound of the named built-in rule.
func (c Constraints) Bound(rule string) string {
	switch rule {
	case RuleMin:
		return c.Min
	case RuleMax:
		return c.Max
	case RuleStep:
		return c.Step
	case RulePattern:
		return c.Pattern
	}
	return ""
}

// Annotations carry the author-supplied texts used when building a message.
type Annotations struct {
	// RuleMessages maps rule names to message templates. Names are matched
	// case-insensitively, since HTML hosts lowercase attribute names.
	RuleMessages      map[string]string
	ValidationMessage string
	Title             string
}

// RuleMessage returns the template registered for rule, preferring an exact
// name match over a case-insensitive one.
func (a Annotations) RuleMessage(rule string) string {
	if t := a.RuleMessages[rule]; t != "" {
		return t
	}
	for name, t := range a.RuleMessages {
		if t != "" && strings.EqualFold(name, rule) {
			return t
		}
	}
	return ""
}

// Field is the capability set a host adapter supplies for one data-entry unit.
type Field interface {
	// Name is the stable identity of the field. Unnamed fields return "".
	Name() string
	Value() Value
	Constraints() Constraints
	Annotations() Annotations
	// Eligible is false for disabled, read-only and non-data controls.
	Eligible() bool
}

// Markable is implemented by fields that carry an invalid-state marker.
type Markable interface {
	SetInvalid(invalid bool)
}

// Target is what an engine is bound to: a single field or a container of fields.
type Target interface {
	// Fields lists candidate fields in document order.
	Fields() []Field
}

// Decoration is the node that displays a field's message.
type Decoration interface {
	SetMessage(message string)
	Message() string
	Show()
	Hide()
	Visible() bool
}

// DecorationHost is implemented by targets able to look up and materialize decorations.
type DecorationHost interface {
	// FindDecoration returns an existing node tagged for the field, or nil.
	// fieldName is empty for unnamed fields.
	FindDecoration(fieldName, key string) Decoration
	// AttachDecoration renders tmpl for message next to the field and tags the
	// result with key.
	AttachDecoration(ctx context.Context, f Field, key string, tmpl ErrorTemplate, message string) (Decoration, error)
}

var nonDataTypes = []string{"submit", "button", "reset", "image"}

// IsDataControl reports whether a control type carries data.
// Hosts use it when computing Field.Eligible.
func IsDataControl(tag, typ string) bool {
	if strings.EqualFold(tag, "button") {
		return false
	}
	return !slices.Contains(nonDataTypes, strings.ToLower(typ))
}

// DisplayName returns the name substituted into message templates.
func DisplayName(f Field) string {
	if name := f.Name(); name != "" {
		return name
	}
	return "This field"
}
