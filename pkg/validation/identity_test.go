package validation_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formguard/pkg/logger"
	"github.com/dmitrymomot/formguard/pkg/validation"
)

func TestFieldID(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "email", validation.Named("email").String())
	assert.Equal(t, "#3", validation.Positional(3).String())
	assert.True(t, validation.Positional(0).IsPositional())
	assert.False(t, validation.Named("#0").IsPositional())

	assert.NotEqual(t, validation.Named("#0"), validation.Positional(0))
	assert.NotEqual(t, validation.Named("#0").DecorationKey(), validation.Positional(0).DecorationKey())
	assert.NotEqual(t, validation.Named("i:0").DecorationKey(), validation.Positional(0).DecorationKey())
	assert.Equal(t, validation.DecorationKey("a"), validation.Named("a").DecorationKey())
}

func TestEngine_Identity(t *testing.T) {
	t.Parallel()

	t.Run("name that reads like a position keeps its own entry", func(t *testing.T) {
		unnamed := required("", "")
		unnamed.a.Title = "unnamed"
		hashed := required("#0", "")
		host := newForm(unnamed, hashed)
		e := newEngine(t, host, nil)

		assert.False(t, validate(t, e))
		assert.Equal(t, []string{"unnamed", "#0 is required"}, e.Errors())
		assert.Equal(t, []validation.FieldID{validation.Positional(0), validation.Named("#0")}, e.InvalidFields())

		require.Len(t, host.nodes, 2)
		assert.NotEqual(t, host.nodes[0].key, host.nodes[1].key)
		assert.Equal(t, "unnamed", host.nodes[0].message)
		assert.Equal(t, "#0 is required", host.nodes[1].message)
	})

	t.Run("fixing one leaves the other invalid", func(t *testing.T) {
		unnamed, hashed := required("", ""), required("#0", "")
		e := newEngine(t, newForm(unnamed, hashed), nil)
		validate(t, e)

		unnamed.value.Text = "x"
		ok, err := e.ValidateField(context.Background(), unnamed)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, []string{"#0 is required"}, e.Errors())
		_, ok = e.ErrorFor(validation.Named("#0"))
		assert.True(t, ok)
		_, ok = e.ErrorFor(validation.Positional(0))
		assert.False(t, ok)
	})
}

func TestEngine_RuleMessageCase(t *testing.T) {
	t.Parallel()

	fail := func(validation.Field) bool { return false }

	t.Run("lowercased annotation matches a camelCase rule", func(t *testing.T) {
		f := text("a", "")
		f.a.RuleMessages = map[string]string{"customrule": "custom text"}
		e := newEngine(t, newForm(f), nil, validation.WithRule("customRule", fail))
		validate(t, e)
		assert.Equal(t, []string{"custom text"}, e.Errors())
	})

	t.Run("exact match wins", func(t *testing.T) {
		f := text("a", "")
		f.a.RuleMessages = map[string]string{"customrule": "lower", "customRule": "exact"}
		e := newEngine(t, newForm(f), nil, validation.WithRule("customRule", fail))
		validate(t, e)
		assert.Equal(t, []string{"exact"}, e.Errors())
	})
}

func TestEngine_CheckValidityNil(t *testing.T) {
	t.Parallel()

	e := newEngine(t, newForm(required("a", "")), nil)
	assert.NotPanics(t, func() {
		assert.True(t, e.CheckValidity(nil))
	})
}

func TestEngine_Logging(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(
		logger.WithOutput(&buf),
		logger.WithFormat(logger.FormatJSON),
		logger.WithLevel(slog.LevelDebug),
	)
	e := newEngine(t, newForm(required("a", ""), text("b", "")), nil, validation.WithLogger(log))
	validate(t, e)

	var records []map[string]any
	for line := range bytes.Lines(buf.Bytes()) {
		var rec map[string]any
		require.NoError(t, json.Unmarshal(line, &rec))
		records = append(records, rec)
	}
	require.Len(t, records, 2)

	assert.Equal(t, "rule failed", records[0]["msg"])
	assert.Equal(t, "a", records[0]["field"])
	assert.Equal(t, "required", records[0]["rule"])
	assert.Equal(t, "validation", records[0]["component"])

	assert.Equal(t, "validation pass", records[1]["msg"])
	pass, ok := records[1]["pass"].(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 2, pass["fields"])
	assert.EqualValues(t, 1, pass["invalid"])
	assert.Equal(t, false, pass["valid"])
}
