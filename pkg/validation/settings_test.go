package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formguard/pkg/validation"
)

func TestSettings_Parser(t *testing.T) {
	t.Parallel()

	t.Run("locale", func(t *testing.T) {
		p, err := validation.Settings{Locale: "de"}.Parser()
		require.NoError(t, err)
		assert.Equal(t, ",", p.Decimal)
		assert.Equal(t, ".", p.Group)
	})

	t.Run("explicit separators win", func(t *testing.T) {
		p, err := validation.Settings{Locale: "de", DecimalSeparator: ".", GroupSeparator: "'"}.Parser()
		require.NoError(t, err)
		assert.Equal(t, ".", p.Decimal)
		assert.Equal(t, "'", p.Group)

		v, err := p.ParseNumber("1'000.5")
		require.NoError(t, err)
		assert.InDelta(t, 1000.5, v, 1e-9)

		d, err := p.ParseDate("2.3.2001")
		require.NoError(t, err)
		assert.Equal(t, 2, d.Day())
	})

	t.Run("empty locale uses defaults", func(t *testing.T) {
		p, err := validation.Settings{}.Parser()
		require.NoError(t, err)
		assert.Equal(t, validation.DefaultParser(), p)
	})

	t.Run("bad locale", func(t *testing.T) {
		_, err := validation.Settings{Locale: "!!"}.Parser()
		assert.ErrorIs(t, err, validation.ErrUnknownLocale)
	})
}

func TestSettings_EngineOptions(t *testing.T) {
	t.Parallel()

	opts, err := validation.Settings{ValidateOnBlur: false, ErrorTemplate: "<b>${message}</b>"}.EngineOptions()
	require.NoError(t, err)
	assert.Len(t, opts, 2)

	host := newForm(required("a", ""))
	e, err := validation.New(host, nil, opts...)
	require.NoError(t, err)
	assert.False(t, e.ValidateOnBlur())
	validate(t, e)
	require.Len(t, host.nodes, 1)
	assert.Equal(t, "<b>a is required</b>", host.nodes[0].markup)

	_, err = validation.Settings{ErrorTemplate: "{{"}.EngineOptions()
	assert.ErrorIs(t, err, validation.ErrTemplate)
}
