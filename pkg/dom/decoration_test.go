package dom_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formguard/pkg/dom"
	"github.com/dmitrymomot/formguard/pkg/validation"
)

func TestDecoration_MessageSlot(t *testing.T) {
	t.Parallel()

	t.Run("static text containing the previous message is kept", func(t *testing.T) {
		tmpl, err := validation.TemplateFromString("<span>Age is required to enter. <b>${message}</b></span>")
		require.NoError(t, err)
		_, input, b := setup(t, `<input id="in" name="Age" type="number" required min="18">`, "in", validation.WithErrorTemplate(tmpl))

		validate(t, b)
		next := nextElement(input.Node())
		assert.Equal(t, "Age is required to enter. Age is required", text(next))

		input.SetValue("3")
		validate(t, b)
		assert.Equal(t, "Age is required to enter. Age should be greater than or equal to 18", text(next))
	})

	t.Run("message sharing a text node with static text", func(t *testing.T) {
		tmpl, err := validation.TemplateFromString("<p>Age is required: ${message}!</p>")
		require.NoError(t, err)
		_, input, b := setup(t, `<input id="in" name="Age" type="number" required min="18">`, "in", validation.WithErrorTemplate(tmpl))

		validate(t, b)
		next := nextElement(input.Node())
		assert.Equal(t, "Age is required: Age is required!", text(next))

		input.SetValue("3")
		validate(t, b)
		assert.Equal(t, "Age is required: Age should be greater than or equal to 18!", text(next))
	})

	t.Run("message in an attribute is filled", func(t *testing.T) {
		tmpl, err := validation.TemplateFromString(`<span title="${message}">${message}</span>`)
		require.NoError(t, err)
		_, input, b := setup(t, `<input id="in" name="a" required>`, "in", validation.WithErrorTemplate(tmpl))

		validate(t, b)
		next := nextElement(input.Node())
		title, _ := getAttr(next, "title")
		assert.Equal(t, "a is required", title)
		assert.Equal(t, "a is required", text(next))
	})
}

func TestValidate_CamelCaseRuleMessage(t *testing.T) {
	t.Parallel()

	_, _, b := setup(t, `<input id="in" name="a" data-customRule-msg="custom text">`, "in",
		validation.WithRule("customRule", func(validation.Field) bool { return false }))
	validate(t, b)
	assert.Equal(t, []string{"custom text"}, b.Engine().Errors())
}

func TestValidate_NameLikePosition(t *testing.T) {
	t.Parallel()

	doc, _, b := setup(t, `<div id="c"><input type="text" required><input type="text" name="#0" required></div>`, "c")

	assert.False(t, validate(t, b))
	assert.Equal(t, []string{"This field is required", "#0 is required"}, b.Engine().Errors())
	nodes := messageNodes(doc)
	require.Len(t, nodes, 2)
	assert.NotSame(t, nodes[0].Node(), nodes[1].Node())
	for0, _ := nodes[0].Attr("data-for")
	for1, _ := nodes[1].Attr("data-for")
	assert.Equal(t, []string{"", "#0"}, []string{for0, for1})
}

func TestValidate_RadioGroup(t *testing.T) {
	t.Parallel()

	markup := `<form id="f">
		<input type="radio" name="size" value="s" required>
		<input type="radio" name="size" value="m" required>
		<input type="radio" name="size" value="l" required>
	</form>
	<form id="g"><input type="radio" name="size" value="s" checked></form>`

	doc, form, b := setup(t, markup, "f")
	assert.False(t, validate(t, b), "no member checked")
	assert.Equal(t, []string{"size is required"}, b.Engine().Errors())

	radios := form.Fields()
	radios[1].(*dom.Element).SetChecked(true)
	assert.True(t, validate(t, b), "one checked member satisfies the group")
	for _, r := range radios {
		assert.False(t, r.(*dom.Element).Invalid())
	}
	assert.True(t, radios[0].Value().Checked)
	assert.False(t, radios[0].(*dom.Element).Checked())

	other, err := doc.Element("g")
	require.NoError(t, err)
	radios[1].(*dom.Element).SetChecked(false)
	assert.False(t, validate(t, b), "a radio in another form does not count")
	assert.True(t, other.Fields()[0].Value().Checked)
}
