package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const signupForm = `<form name="signup">
	<input type="text" name="name" required />
	<input type="email" name="email" />
	<input type="number" name="age" min="18" />
</form>`

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := rootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestCheck(t *testing.T) {
	t.Run("invalid form from stdin", func(t *testing.T) {
		out, err := execute(t, signupForm, "check", "--set", "email=nope", "--set", "age=12")

		assert.ErrorIs(t, err, errInvalidForm)
		assert.Equal(t, "name: name is required\nemail: email is not valid email\nage: age should be greater than or equal to 18\n", out)
	})

	t.Run("valid form from file", func(t *testing.T) {
		path := writeFile(t, "form.html", signupForm)
		out, err := execute(t, "", "check", "--file", path, "--set", "name=Bob", "--set", "age=30")

		assert.NoError(t, err)
		assert.Empty(t, out)
	})

	t.Run("single field", func(t *testing.T) {
		out, err := execute(t, signupForm, "check", "--field", "email", "--set", "email=nope")

		assert.ErrorIs(t, err, errInvalidForm)
		assert.Equal(t, "email: email is not valid email\n", out)
	})

	t.Run("locale aware numbers", func(t *testing.T) {
		form := `<form><input type="number" name="price" max="10" /></form>`
		_, err := execute(t, form, "check", "--locale", "de", "--set", "price=9,5")
		assert.NoError(t, err)
	})

	t.Run("render", func(t *testing.T) {
		out, err := execute(t, signupForm, "check", "--render")

		assert.ErrorIs(t, err, errInvalidForm)
		assert.Contains(t, out, `novalidate="novalidate"`)
		assert.Contains(t, out, `class="invalid-msg"`)
		assert.Contains(t, out, "name is required")
	})

	t.Run("message catalog", func(t *testing.T) {
		path := writeFile(t, "messages.yaml", "de:\n  required: \"{0} ist erforderlich\"\n")
		out, err := execute(t, signupForm, "check", "--messages", path, "--lang", "de")

		assert.ErrorIs(t, err, errInvalidForm)
		assert.Equal(t, "name: name ist erforderlich\n", out)
	})

	t.Run("malformed assignment", func(t *testing.T) {
		_, err := execute(t, signupForm, "check", "--set", "novalue")
		require.Error(t, err)
		assert.NotErrorIs(t, err, errInvalidForm)
	})

	t.Run("unknown form", func(t *testing.T) {
		_, err := execute(t, signupForm, "check", "--form", "login")
		require.Error(t, err)
	})
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "formguard version dev (build: unknown)\n", out)
}

func TestRun_ExitCodes(t *testing.T) {
	valid := writeFile(t, "valid.html", `<form><input name="a" /></form>`)
	invalid := writeFile(t, "invalid.html", `<form><input name="a" required /></form>`)

	assert.Equal(t, 0, run([]string{"check", "--file", valid}))
	assert.Equal(t, 1, run([]string{"check", "--file", invalid}))
	assert.Equal(t, 2, run([]string{"check", "--file", filepath.Join(t.TempDir(), "missing.html")}))
}
