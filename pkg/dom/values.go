package dom

import (
	"net/url"
	"slices"
)

// ApplyValues writes submitted values into the controls under e. Checkboxes
// and radios are checked exactly when their value was submitted, multiple
// selects select every submitted option, and repeated names take values in
// document order. Controls whose name is absent keep their markup value.
func (e *Element) ApplyValues(values url.Values) {
	seen := make(map[string]int)
	for _, f := range e.Fields() {
		el := f.(*Element)
		name := el.Name()
		if name == "" {
			continue
		}
		submitted, present := values[name]
		switch el.Type() {
		case "submit", "reset", "button", "image", "file":
		case "checkbox", "radio":
			el.SetChecked(slices.Contains(submitted, el.Value().Text))
		case "select-multiple":
			if present {
				el.SetSelected(submitted...)
			}
		default:
			if !present {
				continue
			}
			i := seen[name]
			seen[name]++
			if i < len(submitted) {
				el.SetValue(submitted[i])
			}
		}
	}
}
