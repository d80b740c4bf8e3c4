package validation_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/dmitrymomot/formguard/pkg/validation"
)

func TestLocaleParser_ParseNumber(t *testing.T) {
	t.Parallel()

	en := validation.DefaultParser()
	de := validation.NewLocaleParser(",", ".")
	fr := validation.NewLocaleParser(",", " ")

	tests := []struct {
		name    string
		parser  validation.LocaleParser
		input   string
		want    float64
		wantErr bool
	}{
		{"integer", en, "10", 10, false},
		{"decimal", en, "10.5", 10.5, false},
		{"grouped", en, "1,234.5", 1234.5, false},
		{"negative", en, "-3", -3, false},
		{"surrounding space", en, " 7 ", 7, false},
		{"letters", en, "abc", 0, true},
		{"empty", en, "", 0, true},
		{"not a number", en, "NaN", 0, true},
		{"infinity", en, "Inf", 0, true},
		{"comma decimal", de, "10,6", 10.6, false},
		{"dot grouped comma decimal", de, "1.234,5", 1234.5, false},
		{"space grouped", fr, "1 234,5", 1234.5, false},
		{"non-breaking space grouped", fr, "1\u00a0234,5", 1234.5, false},
		{"dot rejected when decimal is comma", fr, "1.5", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.parser.ParseNumber(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, validation.ErrParseNumber)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestLocaleParser_ParseDate(t *testing.T) {
	t.Parallel()

	en := validation.DefaultParser()

	d, err := en.ParseDate("1/1/2001")
	require.NoError(t, err)
	assert.True(t, d.Equal(time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC)))

	d, err = en.ParseDate("2/3/2001")
	require.NoError(t, err)
	assert.Equal(t, time.February, d.Month())

	d, err = en.ParseDate("2001-01-02")
	require.NoError(t, err)
	assert.Equal(t, 2, d.Day())

	_, err = en.ParseDate("2001-01-02T10:30")
	assert.NoError(t, err)

	_, err = en.ParseDate("foo")
	assert.ErrorIs(t, err, validation.ErrParseDate)

	de := validation.NewLocaleParser(",", ".", "2.1.2006")
	d, err = de.ParseDate("2.3.2001")
	require.NoError(t, err)
	assert.Equal(t, time.March, d.Month())
}

func TestParseBound(t *testing.T) {
	t.Parallel()

	v, err := validation.ParseBound("10.5")
	require.NoError(t, err)
	assert.InDelta(t, 10.5, v, 1e-9)

	_, err = validation.ParseBound("10,5")
	assert.ErrorIs(t, err, validation.ErrParseNumber)
}

func TestParserForLocale(t *testing.T) {
	t.Parallel()

	tests := []struct {
		tag     string
		decimal string
		group   string
	}{
		{"en-US", ".", ","},
		{"de-AT", ",", "."},
		{"fr-CA", ",", " "},
		{"sv", ",", " "},
		{"ja", ".", ","},
	}
	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			p := validation.ParserForLocale(language.MustParse(tt.tag))
			assert.Equal(t, tt.decimal, p.Decimal)
			assert.Equal(t, tt.group, p.Group)
		})
	}

	t.Run("unsupported falls back to english", func(t *testing.T) {
		p := validation.ParserForLocale(language.Und)
		assert.Equal(t, ".", p.Decimal)
	})

	t.Run("by name", func(t *testing.T) {
		p, err := validation.ParserForLocaleName("de")
		require.NoError(t, err)
		v, err := p.ParseNumber("10,6")
		require.NoError(t, err)
		assert.InDelta(t, 10.6, v, 1e-9)

		_, err = validation.ParserForLocaleName("!!")
		assert.ErrorIs(t, err, validation.ErrUnknownLocale)
	})
}
