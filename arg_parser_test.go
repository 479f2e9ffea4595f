package scriptutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildSpec(t *testing.T) *ArgSpec {
	t.Helper()
	spec := NewArgSpec()
	require.NoError(t, spec.Flags("venv", "-q"))
	require.NoError(t, spec.Options(
		Option{Name: "venv_name", Default: ".venv"},
		Option{Name: "port", Default: 22},
		Option{Name: "ratio", Default: 0.5},
		Option{Name: "color", Default: true},
	))
	require.NoError(t, spec.Positionals("target"))
	return spec
}

func TestParseDefaults(t *testing.T) {
	args, err := buildSpec(t).Parse([]string{"out.txt"})
	require.NoError(t, err)

	assert.False(t, args.Bool("venv"))
	assert.False(t, args.Bool("q"))
	assert.Equal(t, ".venv", args.String("venv-name"))
	assert.Equal(t, 22, args.Int("port"))
	assert.Equal(t, 0.5, args.Float("ratio"))
	assert.True(t, args.Bool("color"))
	assert.Equal(t, "out.txt", args.String("target"))
}

func TestParseOverrides(t *testing.T) {
	args, err := buildSpec(t).Parse([]string{
		"--venv", "-q",
		"--venv-name", "env",
		"--port=2222",
		"--ratio", "0.75",
		"--color", "false",
		"out.txt",
	})
	require.NoError(t, err)

	assert.True(t, args.Bool("venv"))
	assert.True(t, args.Bool("q"))
	assert.Equal(t, "env", args.String("venv-name"))
	assert.Equal(t, 2222, args.Int("port"))
	assert.Equal(t, 0.75, args.Float("ratio"))
	assert.False(t, args.Bool("color"))
}

func TestParseCoercionFailures(t *testing.T) {
	tests := []struct {
		name   string
		tokens []string
	}{
		{"non-integer for int option", []string{"--port", "abc", "out.txt"}},
		{"non-float for float option", []string{"--ratio", "half", "out.txt"}},
		{"non-boolean for bool option", []string{"--color", "maybe", "out.txt"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := buildSpec(t).Parse(tt.tokens)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidValue)
			assert.ErrorIs(t, err, ErrUsage)

			var usageErr *UsageError
			require.ErrorAs(t, err, &usageErr)
			assert.Contains(t, usageErr.Usage(), "Usage:")
		})
	}
}

func TestParseUnknownToken(t *testing.T) {
	_, err := buildSpec(t).Parse([]string{"--bogus", "out.txt"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownToken)
	assert.ErrorIs(t, err, ErrUsage)
}

func TestParseMissingPositional(t *testing.T) {
	_, err := buildSpec(t).Parse(nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingPositional)

	var usageErr *UsageError
	require.ErrorAs(t, err, &usageErr)
	assert.Contains(t, usageErr.Usage(), "<target>")
}

func TestParseVariadicPositionals(t *testing.T) {
	t.Run("one-or-more binds the remainder", func(t *testing.T) {
		spec := NewArgSpec()
		require.NoError(t, spec.Positionals("dest"))
		require.NoError(t, spec.Rest("files", OneOrMoreArity))

		args, err := spec.Parse([]string{"out/", "a.txt", "b.txt"})
		require.NoError(t, err)
		assert.Equal(t, "out/", args.String("dest"))
		assert.Equal(t, []string{"a.txt", "b.txt"}, args.Strings("files"))
	})
	t.Run("one-or-more requires at least one", func(t *testing.T) {
		spec := NewArgSpec()
		require.NoError(t, spec.Rest("files", OneOrMoreArity))
		_, err := spec.Parse(nil)
		assert.ErrorIs(t, err, ErrMissingPositional)
	})
	t.Run("zero-or-more may be empty", func(t *testing.T) {
		spec := NewArgSpec()
		require.NoError(t, spec.Rest("files", ZeroOrMoreArity))
		args, err := spec.Parse(nil)
		require.NoError(t, err)
		assert.Empty(t, args.Strings("files"))
	})
	t.Run("optional binds one when present", func(t *testing.T) {
		spec := NewArgSpec()
		require.NoError(t, spec.Rest("file", OptionalArity))
		args, err := spec.Parse([]string{"a.txt"})
		require.NoError(t, err)
		assert.Equal(t, "a.txt", args.String("file"))
	})
}

func TestParseExcessPositionalsRejected(t *testing.T) {
	spec := NewArgSpec()
	require.NoError(t, spec.Positionals("target"))

	_, err := spec.Parse([]string{"a", "b"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownToken)
}

func TestParseDoubleDashEndsFlagProcessing(t *testing.T) {
	spec := NewArgSpec()
	require.NoError(t, spec.Flags("force"))
	require.NoError(t, spec.Rest("files", ZeroOrMoreArity))

	args, err := spec.Parse([]string{"--force", "--", "--not-a-flag"})
	require.NoError(t, err)
	assert.True(t, args.Bool("force"))
	assert.Equal(t, []string{"--not-a-flag"}, args.Strings("files"))
}

func TestParseConsumesSpecExactlyOnce(t *testing.T) {
	spec := NewArgSpec()
	require.NoError(t, spec.Flags("force"))

	_, err := spec.Parse(nil)
	require.NoError(t, err)

	_, err = spec.Parse(nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSpecConsumed)
	assert.ErrorIs(t, err, ErrConfiguration)
	assert.NotErrorIs(t, err, ErrUsage)
}

func TestParsedArgsPanicsOnUndeclaredKey(t *testing.T) {
	spec := NewArgSpec()
	require.NoError(t, spec.Flags("force"))
	args, err := spec.Parse(nil)
	require.NoError(t, err)

	assert.Panics(t, func() { args.String("nope") })
	assert.Panics(t, func() { args.Int("force") }, "wrong requested type")
}

func TestUsageSummaryListsDeclarations(t *testing.T) {
	spec := buildSpec(t)
	require.NoError(t, spec.Rest("files", ZeroOrMoreArity))
	spec.SetScriptName("mytool")

	summary := spec.UsageSummary()
	assert.True(t, strings.HasPrefix(summary, "Usage: mytool"))
	assert.Contains(t, summary, "--venv")
	assert.Contains(t, summary, "--venv-name <string>")
	assert.Contains(t, summary, "--port <int>")
	assert.Contains(t, summary, "(default: 22)")
	assert.Contains(t, summary, "<target>")
	assert.Contains(t, summary, "[files...]")
}
