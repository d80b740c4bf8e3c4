package validation

import (
	"strconv"

	"github.com/google/uuid"
)

// FieldID identifies a field within its target: by name, or by position when
// the field is unnamed. A named identity never equals a positional one, even
// when the name reads like a position.
type FieldID struct {
	Name  string
	Index int
}

// Named returns the identity of the field called name.
func Named(name string) FieldID { return FieldID{Name: name} }

// Positional returns the identity of the unnamed field at index.
func Positional(index int) FieldID { return FieldID{Index: index} }

// IsPositional reports whether id identifies an unnamed field.
func (id FieldID) IsPositional() bool { return id.Name == "" }

// String returns the name, or "#<index>" for unnamed fields. Use it for
// display; compare FieldID values for lookups.
func (id FieldID) String() string {
	if id.Name != "" {
		return id.Name
	}
	return "#" + strconv.Itoa(id.Index)
}

// DecorationKey returns the association key tying a decoration node to the
// field. Names and positions hash in separate namespaces, so any character is
// allowed in a name and distinct identities never share a node.
func (id FieldID) DecorationKey() string {
	tagged := "i:" + strconv.Itoa(id.Index)
	if id.Name != "" {
		tagged = "n:" + id.Name
	}
	return "msg-" + uuid.NewSHA1(decorationNamespace, []byte(tagged)).String()
}

// decorationNamespace scopes decoration keys; changing it changes every key.
var decorationNamespace = uuid.MustParse("4f0f6a52-8a59-4c2b-9b83-0b5d1c2c7e41")

// DecorationKey returns the association key of the field called fieldName.
func DecorationKey(fieldName string) string {
	return Named(fieldName).DecorationKey()
}

// identity is the field name, or its position for unnamed fields.
func identity(f Field, index int) FieldID {
	if name := f.Name(); name != "" {
		return Named(name)
	}
	return Positional(index)
}
